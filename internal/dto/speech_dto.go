package dto

type SynthesizeRequest struct {
	Text  string  `json:"text" validate:"required,max=5000"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed" validate:"omitempty,min=0.5,max=2"`
}

type SynthesizeResponse struct {
	Filename string `json:"filename"`
	AudioUrl string `json:"audio_url"`
}

type VoiceResponse struct {
	Id       string `json:"id"`
	Name     string `json:"name"`
	Language string `json:"language"`
}
