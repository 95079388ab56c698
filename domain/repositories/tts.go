package repositories

import "context"

// SynthesisRequest carries one text-to-speech call's parameters.
// Zero-valued voice fields mean "use the configured defaults".
type SynthesisRequest struct {
	Text         string  `json:"text"`
	VoiceName    string  `json:"voice_name"`
	LanguageCode string  `json:"language_code"`
	SpeakingRate float64 `json:"speaking_rate"`
	Pitch        float64 `json:"pitch"`
}

// Voice describes one selectable synthetic voice as reported by the provider.
type Voice struct {
	Name                   string   `json:"name"`
	LanguageCodes          []string `json:"language_codes"`
	SsmlGender             string   `json:"ssml_gender"`
	NaturalSampleRateHertz int32    `json:"natural_sample_rate_hertz"`
}

// TextToSpeech abstracts the external speech-synthesis provider.
type TextToSpeech interface {
	// Synthesize converts text to MP3 audio bytes. Text wrapped in
	// <speak>...</speak> is submitted as SSML, anything else as plain text.
	Synthesize(ctx context.Context, req SynthesisRequest) ([]byte, error)
	// ListVoices queries the provider's voice catalog, optionally filtered
	// by language code. Every call is a live round-trip; nothing is cached.
	ListVoices(ctx context.Context, languageCode string) ([]Voice, error)
}
