package api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap/zaptest"

	"github.com/lateraugment/server/adapters"
	"github.com/lateraugment/server/adapters/storage"
	"github.com/lateraugment/server/adapters/tts"
	"github.com/lateraugment/server/domain/repositories"
	"github.com/lateraugment/server/usecase"
)

const testPreviewText = "This is a voice preview."

func newTestHandler(t *testing.T, synth *tts.MockTextToSpeech) (*Handler, *adapters.MemorySpeechRepository) {
	t.Helper()
	logger := zaptest.NewLogger(t)

	repo := adapters.NewMemorySpeechRepository()
	store, err := storage.NewFileStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("Failed to create file store: %v", err)
	}

	service := usecase.NewSpeechService(synth, repo, store, logger)
	return NewHandler(service, testPreviewText, logger), repo
}

func doJSON(h echo.HandlerFunc, method, target, body string, header http.Header) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, values := range header {
		for _, v := range values {
			req.Header.Set(key, v)
		}
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, h(c)
}

func TestCreateSpeechHandler(t *testing.T) {
	synth := tts.NewMockTextToSpeech([]byte("mp3 bytes"), zaptest.NewLogger(t))
	h, _ := newTestHandler(t, synth)

	rec, err := doJSON(h.CreateSpeech, http.MethodPost, "/api/v1/tts", `{"text":"Hello world"}`, nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SpeechResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("Expected non-empty id")
	}
	if resp.Text != "Hello world" {
		t.Errorf("Expected text 'Hello world', got '%s'", resp.Text)
	}
	if resp.AudioURL == nil {
		t.Fatal("Expected non-null audio_url")
	}
	if !strings.HasPrefix(*resp.AudioURL, "/audio/") {
		t.Errorf("Expected audio_url under /audio/, got %s", *resp.AudioURL)
	}
}

func TestCreateSpeechHandlerBlankText(t *testing.T) {
	synth := tts.NewMockTextToSpeech([]byte("mp3"), zaptest.NewLogger(t))
	h, _ := newTestHandler(t, synth)

	for _, body := range []string{`{"text":""}`, `{"text":"   "}`, `{}`} {
		rec, err := doJSON(h.CreateSpeech, http.MethodPost, "/api/v1/tts", body, nil)
		if err != nil {
			t.Fatalf("Handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for body %s, got %d", body, rec.Code)
		}

		var resp ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}
		if resp.Error == "" {
			t.Error("Expected error message in body")
		}
	}

	// No record may exist after rejected creates.
	rec, err := doJSON(h.ListSpeeches, http.MethodGet, "/api/v1/speeches", "", nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	var speeches []SpeechResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &speeches); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(speeches) != 0 {
		t.Errorf("Expected no records, got %d", len(speeches))
	}
}

func TestCreateSpeechHandlerRawAudio(t *testing.T) {
	synth := tts.NewMockTextToSpeech([]byte("raw mp3"), zaptest.NewLogger(t))
	h, _ := newTestHandler(t, synth)

	header := http.Header{}
	header.Set(echo.HeaderAccept, "audio/mpeg")
	rec, err := doJSON(h.CreateSpeech, http.MethodPost, "/api/v1/tts", `{"text":"Hello"}`, header)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "audio/mpeg") {
		t.Errorf("Expected audio/mpeg content type, got %s", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != "inline" {
		t.Errorf("Expected inline disposition, got %s", cd)
	}
	if rec.Body.String() != "raw mp3" {
		t.Errorf("Expected raw audio body, got %q", rec.Body.String())
	}
}

func TestCreateSpeechHandlerProviderError(t *testing.T) {
	synth := tts.NewMockTextToSpeech(nil, zaptest.NewLogger(t))
	synth.Err = repositories.NewProviderError(errors.New("invalid voice name"))
	h, _ := newTestHandler(t, synth)

	rec, err := doJSON(h.CreateSpeech, http.MethodPost, "/api/v1/tts", `{"text":"Hello"}`, nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	if !strings.Contains(resp.Error, "invalid voice name") {
		t.Errorf("Expected provider message surfaced verbatim, got %q", resp.Error)
	}
}

func TestCreateSpeechHandlerNoAudioContent(t *testing.T) {
	synth := tts.NewMockTextToSpeech([]byte{}, zaptest.NewLogger(t))
	h, _ := newTestHandler(t, synth)

	rec, err := doJSON(h.CreateSpeech, http.MethodPost, "/api/v1/tts", `{"text":"Hello"}`, nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("Expected 422, got %d", rec.Code)
	}
}

func TestPreviewSpeechHandler(t *testing.T) {
	synth := tts.NewMockTextToSpeech([]byte("preview audio"), zaptest.NewLogger(t))
	h, _ := newTestHandler(t, synth)

	body := `{"voice_name":"en-US-Standard-C","language_code":"en-US","speaking_rate":1.5,"pitch":2}`
	rec, err := doJSON(h.PreviewSpeech, http.MethodPost, "/api/v1/preview_tts", body, nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp PreviewResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		t.Fatalf("Expected valid base64 audio content: %v", err)
	}
	if string(decoded) != "preview audio" {
		t.Errorf("Expected decoded preview audio, got %q", decoded)
	}

	// Omitted text falls back to the configured preview phrase.
	if synth.LastRequest.Text != testPreviewText {
		t.Errorf("Expected preview text %q, got %q", testPreviewText, synth.LastRequest.Text)
	}
	if synth.LastRequest.SpeakingRate != 1.5 {
		t.Errorf("Expected speaking rate 1.5, got %f", synth.LastRequest.SpeakingRate)
	}

	// Previews persist nothing.
	listRec, err := doJSON(h.ListSpeeches, http.MethodGet, "/api/v1/speeches", "", nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	var speeches []SpeechResponse
	if err := json.Unmarshal(listRec.Body.Bytes(), &speeches); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(speeches) != 0 {
		t.Errorf("Expected no persisted records after preview, got %d", len(speeches))
	}
}

func TestPreviewSpeechHandlerMissingVoice(t *testing.T) {
	synth := tts.NewMockTextToSpeech([]byte("audio"), zaptest.NewLogger(t))
	h, _ := newTestHandler(t, synth)

	for _, body := range []string{
		`{"text":"hi","language_code":"en-US"}`,
		`{"text":"hi","voice_name":"en-US-Standard-C"}`,
	} {
		rec, err := doJSON(h.PreviewSpeech, http.MethodPost, "/api/v1/preview_tts", body, nil)
		if err != nil {
			t.Fatalf("Handler returned error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for body %s, got %d", body, rec.Code)
		}
	}
}

func TestListVoicesHandler(t *testing.T) {
	synth := tts.NewMockTextToSpeech(nil, zaptest.NewLogger(t))
	synth.Voices = []repositories.Voice{
		{Name: "en-US-Standard-C", LanguageCodes: []string{"en-US"}, SsmlGender: "FEMALE", NaturalSampleRateHertz: 24000},
		{Name: "de-DE-Standard-A", LanguageCodes: []string{"de-DE"}, SsmlGender: "FEMALE", NaturalSampleRateHertz: 24000},
	}
	h, _ := newTestHandler(t, synth)

	rec, err := doJSON(h.ListVoices, http.MethodGet, "/api/v1/voices?language_code=en-US", "", nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var resp VoicesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Voices) != 1 {
		t.Fatalf("Expected 1 voice, got %d", len(resp.Voices))
	}
	for _, v := range resp.Voices {
		found := false
		for _, code := range v.LanguageCodes {
			if code == "en-US" {
				found = true
			}
		}
		if !found {
			t.Errorf("Expected every voice to support en-US, %s does not", v.Name)
		}
	}
}

func TestListVoicesHandlerProviderError(t *testing.T) {
	synth := tts.NewMockTextToSpeech(nil, zaptest.NewLogger(t))
	synth.Err = repositories.NewProviderError(errors.New("quota exceeded"))
	h, _ := newTestHandler(t, synth)

	rec, err := doJSON(h.ListVoices, http.MethodGet, "/api/v1/voices", "", nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
}

func TestListSpeechesHandlerNewestFirst(t *testing.T) {
	synth := tts.NewMockTextToSpeech([]byte("mp3"), zaptest.NewLogger(t))
	h, _ := newTestHandler(t, synth)

	for _, text := range []string{"first", "second", "third"} {
		rec, err := doJSON(h.CreateSpeech, http.MethodPost, "/api/v1/tts", `{"text":"`+text+`"}`, nil)
		if err != nil {
			t.Fatalf("Handler returned error: %v", err)
		}
		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d", rec.Code)
		}
		time.Sleep(time.Millisecond)
	}

	rec, err := doJSON(h.ListSpeeches, http.MethodGet, "/api/v1/speeches", "", nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var speeches []SpeechResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &speeches); err != nil {
		t.Fatalf("Failed to decode list: %v", err)
	}
	if len(speeches) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(speeches))
	}
	if speeches[0].Text != "third" {
		t.Errorf("Expected newest first, got %s", speeches[0].Text)
	}
	for i := 1; i < len(speeches); i++ {
		if speeches[i].CreatedAt.After(speeches[i-1].CreatedAt) {
			t.Errorf("Expected descending created_at at index %d", i)
		}
	}
}

func TestDeleteSpeechHandler(t *testing.T) {
	synth := tts.NewMockTextToSpeech([]byte("mp3"), zaptest.NewLogger(t))
	h, _ := newTestHandler(t, synth)

	createRec, err := doJSON(h.CreateSpeech, http.MethodPost, "/api/v1/tts", `{"text":"to delete"}`, nil)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	var created SpeechResponse
	if err := json.Unmarshal(createRec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	deleteByID := func(id string) *httptest.ResponseRecorder {
		e := echo.New()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/speeches/"+id, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		if err := h.DeleteSpeech(c); err != nil {
			t.Fatalf("Handler returned error: %v", err)
		}
		return rec
	}

	if rec := deleteByID(created.ID); rec.Code != http.StatusNoContent {
		t.Errorf("Expected 204, got %d", rec.Code)
	}
	// Deleting the same record again reports not-found.
	if rec := deleteByID(created.ID); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 on second delete, got %d", rec.Code)
	}
	// An unused random ID is also not-found.
	if rec := deleteByID("f3a1c8e2-0000-0000-0000-000000000000"); rec.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown id, got %d", rec.Code)
	}
}
