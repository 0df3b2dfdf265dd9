package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider talks to a self-hosted TTS server over its REST API.
type HTTPProvider struct {
	BaseURL string
	Client  *http.Client
}

var _ SpeechProvider = &HTTPProvider{}

func NewHTTPProvider(baseURL string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type synthesizeRequest struct {
	Text  string  `json:"text"`
	Voice string  `json:"voice,omitempty"`
	Speed float64 `json:"speed,omitempty"`
}

func (p *HTTPProvider) Synthesize(ctx context.Context, text, voice string, speed float64) ([]byte, error) {
	payload := synthesizeRequest{
		Text:  text,
		Voice: voice,
		Speed: speed,
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", p.BaseURL+"/api/synthesize", bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read audio: %w", err)
	}
	return audio, nil
}

func (p *HTTPProvider) ListVoices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", p.BaseURL+"/api/voices", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tts error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var voices []Voice
	if err := json.NewDecoder(resp.Body).Decode(&voices); err != nil {
		return nil, fmt.Errorf("unmarshal voices: %w", err)
	}
	return voices, nil
}

func (p *HTTPProvider) ListLanguages(ctx context.Context) ([]string, error) {
	voices, err := p.ListVoices(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	languages := make([]string, 0)
	for _, v := range voices {
		if v.Language == "" || seen[v.Language] {
			continue
		}
		seen[v.Language] = true
		languages = append(languages, v.Language)
	}
	return languages, nil
}
