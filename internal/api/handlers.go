package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lateraugment/server/domain/entities"
	"github.com/lateraugment/server/domain/repositories"
)

// ListVoices handles GET /api/v1/voices
func (h *Handler) ListVoices(c echo.Context) error {
	languageCode := c.QueryParam("language_code")

	voices, err := h.service.ListVoices(c.Request().Context(), languageCode)
	if err != nil {
		h.logger.Error("Failed to list voices",
			zap.String("languageCode", languageCode),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, VoicesResponse{Voices: voices})
}

// PreviewSpeech handles POST /api/v1/preview_tts. It synthesizes audio for
// auditioning a voice and persists nothing.
func (h *Handler) PreviewSpeech(c echo.Context) error {
	var req SynthesizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format."})
	}

	text := req.Text
	if strings.TrimSpace(text) == "" {
		text = h.previewText
	}
	if req.VoiceName == "" || req.LanguageCode == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Text, voice name, and language code are required for preview.",
		})
	}

	audio, err := h.service.PreviewSpeech(c.Request().Context(), repositories.SynthesisRequest{
		Text:         text,
		VoiceName:    req.VoiceName,
		LanguageCode: req.LanguageCode,
		SpeakingRate: req.SpeakingRate,
		Pitch:        req.Pitch,
	})
	if err != nil {
		h.logger.Error("Failed to generate preview", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, PreviewResponse{
		AudioContent: base64.StdEncoding.EncodeToString(audio),
	})
}

// CreateSpeech handles POST /api/v1/tts. It synthesizes the text, persists
// the record with its audio blob, and responds 201 with the record. A client
// that accepts audio/mpeg receives the raw MP3 inline instead.
func (h *Handler) CreateSpeech(c echo.Context) error {
	var req SynthesizeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format."})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Text is required."})
	}

	speech, audio, err := h.service.CreateSpeech(c.Request().Context(), req.Text, entities.VoiceSettings{
		VoiceName:    req.VoiceName,
		LanguageCode: req.LanguageCode,
		SpeakingRate: req.SpeakingRate,
		Pitch:        req.Pitch,
	})
	if err != nil {
		return h.createError(c, err)
	}

	if strings.Contains(c.Request().Header.Get(echo.HeaderAccept), "audio/mpeg") {
		c.Response().Header().Set(echo.HeaderContentDisposition, "inline")
		return c.Blob(http.StatusCreated, "audio/mpeg", audio)
	}

	return c.JSON(http.StatusCreated, newSpeechResponse(speech))
}

// createError maps the failure kinds of the create flow to status codes.
func (h *Handler) createError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, entities.ErrEmptyText),
		errors.Is(err, entities.ErrSpeakingRateOutOfRange),
		errors.Is(err, entities.ErrPitchOutOfRange):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, repositories.ErrNoAudioContent):
		h.logger.Error("Provider returned no audio content")
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case repositories.IsProviderError(err):
		h.logger.Error("Synthesis failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	default:
		h.logger.Error("Unexpected error creating speech", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred: " + err.Error(),
		})
	}
}

// ListSpeeches handles GET /api/v1/speeches (and the top-level alias),
// returning persisted records newest-first.
func (h *Handler) ListSpeeches(c echo.Context) error {
	speeches, err := h.service.ListSpeeches(c.Request().Context())
	if err != nil {
		h.logger.Error("Failed to list speeches", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred while fetching speeches: " + err.Error(),
		})
	}

	responses := make([]SpeechResponse, 0, len(speeches))
	for _, speech := range speeches {
		responses = append(responses, newSpeechResponse(speech))
	}
	return c.JSON(http.StatusOK, responses)
}

// DeleteSpeech handles DELETE /api/v1/speeches/:id
func (h *Handler) DeleteSpeech(c echo.Context) error {
	id := c.Param("id")

	err := h.service.DeleteSpeech(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrSpeechNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Speech not found"})
		}
		h.logger.Error("Failed to delete speech", zap.String("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred while deleting speech: " + err.Error(),
		})
	}

	return c.NoContent(http.StatusNoContent)
}
