package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"go.uber.org/zap"
	"google.golang.org/grpc/status"

	"github.com/lateraugment/server/domain/repositories"
)

const (
	defaultLanguageCode = "en-US"
	defaultSpeakingRate = 1.0
	defaultPitch        = 0.0

	ssmlOpenTag  = "<speak>"
	ssmlCloseTag = "</speak>"
)

// GoogleConfig holds defaults applied when a synthesis request omits
// voice parameters. Credentials are resolved by the client library from
// GOOGLE_APPLICATION_CREDENTIALS.
type GoogleConfig struct {
	DefaultLanguageCode string  // default: "en-US"
	DefaultSpeakingRate float64 // default: 1.0
	DefaultPitch        float64 // default: 0.0
}

func (c GoogleConfig) withDefaults() GoogleConfig {
	if c.DefaultLanguageCode == "" {
		c.DefaultLanguageCode = defaultLanguageCode
	}
	if c.DefaultSpeakingRate == 0 {
		c.DefaultSpeakingRate = defaultSpeakingRate
	}
	return c
}

// GoogleTextToSpeech implements TextToSpeech using Google Cloud Text-to-Speech.
// The client is created once at startup and reused for every request.
type GoogleTextToSpeech struct {
	client *texttospeech.Client
	config GoogleConfig
	logger *zap.Logger
}

// Ensure GoogleTextToSpeech implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*GoogleTextToSpeech)(nil)

// NewGoogleTextToSpeech creates a Google Cloud Text-to-Speech gateway.
func NewGoogleTextToSpeech(ctx context.Context, config GoogleConfig, logger *zap.Logger) (*GoogleTextToSpeech, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}

	return &GoogleTextToSpeech{
		client: client,
		config: config.withDefaults(),
		logger: logger,
	}, nil
}

// Close releases the underlying client connection.
func (g *GoogleTextToSpeech) Close() error {
	return g.client.Close()
}

// Synthesize converts text to MP3 audio bytes.
func (g *GoogleTextToSpeech) Synthesize(ctx context.Context, req repositories.SynthesisRequest) ([]byte, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	g.logger.Info("Synthesizing speech",
		zap.Int("textLength", len(req.Text)),
		zap.String("voiceName", req.VoiceName),
		zap.String("languageCode", req.LanguageCode))

	resp, err := g.client.SynthesizeSpeech(ctx, g.buildRequest(req))
	if err != nil {
		return nil, classifyError(err)
	}

	g.logger.Info("Synthesis complete", zap.Int("audioBytes", len(resp.AudioContent)))
	return resp.AudioContent, nil
}

// ListVoices queries the provider's voice catalog, optionally filtered by
// language code.
func (g *GoogleTextToSpeech) ListVoices(ctx context.Context, languageCode string) ([]repositories.Voice, error) {
	resp, err := g.client.ListVoices(ctx, &texttospeechpb.ListVoicesRequest{
		LanguageCode: languageCode,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	voices := make([]repositories.Voice, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		voices = append(voices, repositories.Voice{
			Name:                   v.Name,
			LanguageCodes:          v.LanguageCodes,
			SsmlGender:             v.SsmlGender.String(),
			NaturalSampleRateHertz: v.NaturalSampleRateHertz,
		})
	}

	g.logger.Info("Retrieved voice catalog",
		zap.Int("count", len(voices)),
		zap.String("languageCode", languageCode))
	return voices, nil
}

// buildRequest assembles the provider request, applying configured defaults
// for omitted voice parameters. A request without a voice name asks the
// provider to pick any neutral voice for the language.
func (g *GoogleTextToSpeech) buildRequest(req repositories.SynthesisRequest) *texttospeechpb.SynthesizeSpeechRequest {
	languageCode := req.LanguageCode
	if languageCode == "" {
		languageCode = g.config.DefaultLanguageCode
	}
	speakingRate := req.SpeakingRate
	if speakingRate == 0 {
		speakingRate = g.config.DefaultSpeakingRate
	}
	pitch := req.Pitch
	if pitch == 0 {
		pitch = g.config.DefaultPitch
	}

	voice := &texttospeechpb.VoiceSelectionParams{
		LanguageCode: languageCode,
		Name:         req.VoiceName,
	}
	if req.VoiceName == "" {
		voice.SsmlGender = texttospeechpb.SsmlVoiceGender_NEUTRAL
	}

	return &texttospeechpb.SynthesizeSpeechRequest{
		Input: buildSynthesisInput(req.Text),
		Voice: voice,
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
			SpeakingRate:  speakingRate,
			Pitch:         pitch,
		},
	}
}

// buildSynthesisInput submits text wrapped in <speak>...</speak> as SSML and
// everything else as plain text. This is a tag-delimiter heuristic, not a
// validator; malformed markup is passed through and rejected by the provider.
func buildSynthesisInput(text string) *texttospeechpb.SynthesisInput {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, ssmlOpenTag) && strings.HasSuffix(trimmed, ssmlCloseTag) {
		return &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Ssml{Ssml: text},
		}
	}
	return &texttospeechpb.SynthesisInput{
		InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
	}
}

// classifyError separates provider-reported failures (gRPC status errors:
// invalid voice, quota exceeded, malformed SSML) from transport or
// programming failures.
func classifyError(err error) error {
	if _, ok := status.FromError(err); ok {
		return repositories.NewProviderError(err)
	}
	return err
}
