package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lateraugment/server/domain/entities"
	"github.com/lateraugment/server/domain/repositories"
)

// SpeechService orchestrates synthesis and persistence of speech records.
type SpeechService struct {
	textToSpeech repositories.TextToSpeech
	speechRepo   repositories.SpeechRepository
	audioStore   repositories.AudioStore
	logger       *zap.Logger
}

// NewSpeechService creates a new speech service
func NewSpeechService(
	tts repositories.TextToSpeech,
	speechRepo repositories.SpeechRepository,
	audioStore repositories.AudioStore,
	logger *zap.Logger,
) *SpeechService {
	return &SpeechService{
		textToSpeech: tts,
		speechRepo:   speechRepo,
		audioStore:   audioStore,
		logger:       logger,
	}
}

// CreateSpeech synthesizes the text and persists the record together with its
// audio blob. The blob is written first and removed again if the metadata row
// fails, so a record is either fully created or not created at all. Returns
// the created record and the raw audio bytes.
func (s *SpeechService) CreateSpeech(ctx context.Context, text string, settings entities.VoiceSettings) (*entities.Speech, []byte, error) {
	speech := entities.NewSpeech(text, settings)
	if err := speech.Validate(); err != nil {
		return nil, nil, err
	}

	audio, err := s.textToSpeech.Synthesize(ctx, repositories.SynthesisRequest{
		Text:         speech.Text,
		VoiceName:    speech.VoiceName,
		LanguageCode: speech.LanguageCode,
		SpeakingRate: speech.SpeakingRate,
		Pitch:        speech.Pitch,
	})
	if err != nil {
		return nil, nil, err
	}
	// The provider contract does not explain when a successful call carries
	// no audio; treat it as a failed synthesis rather than storing an empty blob.
	if len(audio) == 0 {
		return nil, nil, repositories.ErrNoAudioContent
	}

	filename := uuid.New().String() + ".mp3"
	if err := s.audioStore.Save(filename, audio); err != nil {
		return nil, nil, fmt.Errorf("failed to store audio: %w", err)
	}

	speech.AudioFile = filename
	if err := s.speechRepo.Create(ctx, speech); err != nil {
		if removeErr := s.audioStore.Remove(filename); removeErr != nil {
			s.logger.Error("Failed to remove orphaned audio blob",
				zap.String("filename", filename),
				zap.Error(removeErr))
		}
		return nil, nil, err
	}

	s.logger.Info("Created speech record",
		zap.String("id", speech.ID),
		zap.String("audioFile", filename),
		zap.Int("audioBytes", len(audio)))
	return speech, audio, nil
}

// PreviewSpeech synthesizes audio without persisting anything.
func (s *SpeechService) PreviewSpeech(ctx context.Context, req repositories.SynthesisRequest) ([]byte, error) {
	return s.textToSpeech.Synthesize(ctx, req)
}

// ListVoices returns the provider's voice catalog, optionally filtered by
// language code.
func (s *SpeechService) ListVoices(ctx context.Context, languageCode string) ([]repositories.Voice, error) {
	return s.textToSpeech.ListVoices(ctx, languageCode)
}

// ListSpeeches returns all persisted records, newest first.
func (s *SpeechService) ListSpeeches(ctx context.Context) ([]*entities.Speech, error) {
	return s.speechRepo.List(ctx)
}

// DeleteSpeech removes the record and its audio blob. The row goes first;
// a blob left behind by a crash between the two steps is removable by a
// retried delete of a then-unknown ID, which reports ErrSpeechNotFound.
func (s *SpeechService) DeleteSpeech(ctx context.Context, id string) error {
	speech, err := s.speechRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.speechRepo.Delete(ctx, id); err != nil {
		return err
	}

	if speech.HasAudio() {
		if err := s.audioStore.Remove(speech.AudioFile); err != nil {
			s.logger.Error("Failed to remove audio blob for deleted speech",
				zap.String("id", id),
				zap.String("filename", speech.AudioFile),
				zap.Error(err))
		}
	}

	s.logger.Info("Deleted speech record", zap.String("id", id))
	return nil
}
