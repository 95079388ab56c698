package api

import (
	"time"

	"github.com/lateraugment/server/domain/entities"
	"github.com/lateraugment/server/domain/repositories"
)

// SynthesizeRequest is the payload for both the create and preview endpoints.
type SynthesizeRequest struct {
	Text         string  `json:"text"`
	VoiceName    string  `json:"voice_name"`
	LanguageCode string  `json:"language_code"`
	SpeakingRate float64 `json:"speaking_rate"`
	Pitch        float64 `json:"pitch"`
}

// SpeechResponse is the JSON shape of a persisted speech record.
type SpeechResponse struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	AudioURL     *string   `json:"audio_url"`
	CreatedAt    time.Time `json:"created_at"`
	VoiceName    string    `json:"voice_name"`
	SpeakingRate float64   `json:"speaking_rate"`
	Pitch        float64   `json:"pitch"`
}

// VoicesResponse wraps the provider's voice catalog.
type VoicesResponse struct {
	Voices []repositories.Voice `json:"voices"`
}

// PreviewResponse carries base64-encoded preview audio.
type PreviewResponse struct {
	AudioContent string `json:"audioContent"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// newSpeechResponse derives the response shape, including the retrievable
// audio locator. Records without an attached blob report a null locator.
func newSpeechResponse(speech *entities.Speech) SpeechResponse {
	resp := SpeechResponse{
		ID:           speech.ID,
		Text:         speech.Text,
		CreatedAt:    speech.CreatedAt,
		VoiceName:    speech.VoiceName,
		SpeakingRate: speech.SpeakingRate,
		Pitch:        speech.Pitch,
	}
	if speech.HasAudio() {
		url := audioRoutePrefix + speech.AudioFile
		resp.AudioURL = &url
	}
	return resp
}
