package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lateraugment/server/usecase"
)

// audioRoutePrefix is where the blob store directory is mounted.
const audioRoutePrefix = "/audio/"

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, h *Handler, audioDir, webDir string) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": "lateraugment-server",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")
	v1.GET("/voices", h.ListVoices)
	v1.POST("/preview_tts", h.PreviewSpeech)
	v1.POST("/tts", h.CreateSpeech)
	v1.GET("/speeches", h.ListSpeeches)
	v1.DELETE("/speeches/:id", h.DeleteSpeech)

	// Top-level alias for listing speeches
	e.GET("/speeches", h.ListSpeeches)

	// Stored audio blobs and the browser client
	e.Static("/audio", audioDir)
	if webDir != "" {
		e.Static("/", webDir)
	}
}

// Handler exposes the speech service over HTTP. The service and its provider
// client are constructed once at startup and reused for every request.
type Handler struct {
	service     *usecase.SpeechService
	previewText string
	logger      *zap.Logger
}

// NewHandler creates the HTTP handler.
func NewHandler(service *usecase.SpeechService, previewText string, logger *zap.Logger) *Handler {
	return &Handler{
		service:     service,
		previewText: previewText,
		logger:      logger,
	}
}
