package entities

import (
	"errors"
	"strings"
	"time"
)

// Synthesis parameter bounds enforced by Google Cloud Text-to-Speech.
const (
	MinSpeakingRate = 0.25
	MaxSpeakingRate = 4.0
	MinPitch        = -20.0
	MaxPitch        = 20.0
)

var (
	ErrEmptyText              = errors.New("text is required")
	ErrSpeakingRateOutOfRange = errors.New("speaking rate must be between 0.25 and 4.0")
	ErrPitchOutOfRange        = errors.New("pitch must be between -20.0 and 20.0")
)

// VoiceSettings identifies the synthetic voice and prosody for a synthesis request.
// A zero VoiceSettings means "use the provider defaults".
type VoiceSettings struct {
	VoiceName    string  `json:"voice_name"`
	LanguageCode string  `json:"language_code"`
	SpeakingRate float64 `json:"speaking_rate"`
	Pitch        float64 `json:"pitch"`
}

// Speech represents one synthesis request and its stored outcome.
// Records are immutable after creation; the audio file association is set
// at most once, when the record is created.
type Speech struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	VoiceName    string    `json:"voice_name"`
	LanguageCode string    `json:"language_code"`
	SpeakingRate float64   `json:"speaking_rate"`
	Pitch        float64   `json:"pitch"`
	AudioFile    string    `json:"audio_file"` // blob filename, empty when no audio is attached
	CreatedAt    time.Time `json:"created_at"`
}

// NewSpeech creates a speech record for the given text and voice settings.
// The ID and CreatedAt are assigned by the repository on create.
func NewSpeech(text string, settings VoiceSettings) *Speech {
	return &Speech{
		Text:         text,
		VoiceName:    settings.VoiceName,
		LanguageCode: settings.LanguageCode,
		SpeakingRate: settings.SpeakingRate,
		Pitch:        settings.Pitch,
	}
}

// Validate checks the record's invariants before persistence.
func (s *Speech) Validate() error {
	if strings.TrimSpace(s.Text) == "" {
		return ErrEmptyText
	}
	if s.SpeakingRate != 0 && (s.SpeakingRate < MinSpeakingRate || s.SpeakingRate > MaxSpeakingRate) {
		return ErrSpeakingRateOutOfRange
	}
	if s.Pitch < MinPitch || s.Pitch > MaxPitch {
		return ErrPitchOutOfRange
	}
	return nil
}

// HasAudio reports whether an audio blob is attached to this record.
func (s *Speech) HasAudio() bool {
	return s.AudioFile != ""
}
