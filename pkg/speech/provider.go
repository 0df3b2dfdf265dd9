package speech

import "context"

// Voice describes a single synthesizer voice exposed by the TTS backend.
type Voice struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}

// SpeechProvider abstracts the text-to-speech backend.
type SpeechProvider interface {
	Synthesize(ctx context.Context, text, voice string, speed float64) ([]byte, error)
	ListVoices(ctx context.Context) ([]Voice, error)
	ListLanguages(ctx context.Context) ([]string, error)
}
