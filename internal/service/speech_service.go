package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ai-chat-be/internal/dto"
	"ai-chat-be/internal/pkg/apperr"
	"ai-chat-be/internal/pkg/logger"
	"ai-chat-be/internal/repository/memory"
	"ai-chat-be/pkg/speech"

	"github.com/google/uuid"
)

type ISpeechService interface {
	Synthesize(ctx context.Context, req *dto.SynthesizeRequest) (*dto.SynthesizeResponse, error)
	GetAudioPath(filename string) (string, error)
	DeleteAudio(filename string) error
	ListVoices(ctx context.Context) ([]*dto.VoiceResponse, error)
	ListLanguages(ctx context.Context) ([]string, error)
}

type speechService struct {
	provider   speech.SpeechProvider
	voiceCache *memory.VoiceCache
	audioDir   string
	baseURL    string
	logger     logger.ILogger
}

func NewSpeechService(
	provider speech.SpeechProvider,
	voiceCache *memory.VoiceCache,
	audioDir string,
	baseURL string,
	logger logger.ILogger,
) ISpeechService {
	return &speechService{
		provider:   provider,
		voiceCache: voiceCache,
		audioDir:   audioDir,
		baseURL:    baseURL,
		logger:     logger,
	}
}

func (s *speechService) Synthesize(ctx context.Context, req *dto.SynthesizeRequest) (*dto.SynthesizeResponse, error) {
	audio, err := s.provider.Synthesize(ctx, req.Text, req.Voice, req.Speed)
	if err != nil {
		return nil, apperr.Upstream("speech synthesis failed", err)
	}

	if err := os.MkdirAll(s.audioDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create audio directory: %w", err)
	}

	filename := fmt.Sprintf("%s.wav", uuid.New().String())
	dstPath := filepath.Join(s.audioDir, filename)
	if err := os.WriteFile(dstPath, audio, 0644); err != nil {
		return nil, fmt.Errorf("failed to save audio file: %w", err)
	}

	s.logger.Info("SPEECH", "Synthesized audio", map[string]interface{}{
		"filename": filename,
		"bytes":    len(audio),
	})

	return &dto.SynthesizeResponse{
		Filename: filename,
		AudioUrl: fmt.Sprintf("%s/uploads/audio/%s", s.baseURL, filename),
	}, nil
}

// GetAudioPath resolves a stored audio file. The filename is flattened with
// filepath.Base so clients cannot traverse outside the audio directory.
func (s *speechService) GetAudioPath(filename string) (string, error) {
	path := filepath.Join(s.audioDir, filepath.Base(filename))
	if _, err := os.Stat(path); err != nil {
		return "", apperr.NotFound("audio file not found")
	}
	return path, nil
}

func (s *speechService) DeleteAudio(filename string) error {
	path, err := s.GetAudioPath(filename)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

func (s *speechService) ListVoices(ctx context.Context) ([]*dto.VoiceResponse, error) {
	voices, found := s.voiceCache.GetVoices()
	if !found {
		fetched, err := s.provider.ListVoices(ctx)
		if err != nil {
			return nil, apperr.Upstream("failed to list voices", err)
		}
		s.voiceCache.SaveVoices(fetched)
		voices = fetched
	}

	result := make([]*dto.VoiceResponse, 0, len(voices))
	for _, v := range voices {
		result = append(result, &dto.VoiceResponse{
			Id:       v.Id,
			Name:     v.Name,
			Language: v.Language,
		})
	}
	return result, nil
}

func (s *speechService) ListLanguages(ctx context.Context) ([]string, error) {
	if languages, found := s.voiceCache.GetLanguages(); found {
		return languages, nil
	}
	languages, err := s.provider.ListLanguages(ctx)
	if err != nil {
		return nil, apperr.Upstream("failed to list languages", err)
	}
	s.voiceCache.SaveLanguages(languages)
	return languages, nil
}
