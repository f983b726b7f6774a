package dto

type SpeechRequest struct {
	Input    string  `json:"input" example:"Tell me about yourself."`
	Voice    string  `json:"voice,omitempty" example:"alloy"`
	Language string  `json:"language,omitempty" example:"en-US"`
	Speed    float64 `json:"speed,omitempty" example:"1.0"`
	Format   string  `json:"format,omitempty" example:"mp3" enums:"mp3,wav"`
}

type TranscriptionResponse struct {
	Text string `json:"text" example:"I handled the outage by..."`
}
