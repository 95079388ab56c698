package tts

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lateraugment/server/domain/repositories"
)

// MockTextToSpeech is a scripted implementation of TextToSpeech for tests
// and local development without provider credentials.
type MockTextToSpeech struct {
	logger *zap.Logger

	// Audio is returned from Synthesize when Err is nil.
	Audio []byte
	// Err is returned from both Synthesize and ListVoices when set.
	Err error
	// Voices is returned from ListVoices, filtered by language code.
	Voices []repositories.Voice

	// LastRequest records the most recent synthesis request.
	LastRequest repositories.SynthesisRequest
}

// Ensure MockTextToSpeech implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*MockTextToSpeech)(nil)

// NewMockTextToSpeech creates a mock synthesizer that returns the given audio.
func NewMockTextToSpeech(audio []byte, logger *zap.Logger) *MockTextToSpeech {
	return &MockTextToSpeech{
		logger: logger,
		Audio:  audio,
	}
}

// Synthesize implements repositories.TextToSpeech
func (m *MockTextToSpeech) Synthesize(ctx context.Context, req repositories.SynthesisRequest) ([]byte, error) {
	m.LastRequest = req
	if m.Err != nil {
		return nil, m.Err
	}

	m.logger.Info("Mock synthesis",
		zap.Int("textLength", len(req.Text)),
		zap.String("voiceName", req.VoiceName))
	return m.Audio, nil
}

// ListVoices implements repositories.TextToSpeech
func (m *MockTextToSpeech) ListVoices(ctx context.Context, languageCode string) ([]repositories.Voice, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if languageCode == "" {
		return m.Voices, nil
	}

	filtered := make([]repositories.Voice, 0, len(m.Voices))
	for _, v := range m.Voices {
		for _, code := range v.LanguageCodes {
			if strings.EqualFold(code, languageCode) {
				filtered = append(filtered, v)
				break
			}
		}
	}
	return filtered, nil
}
