package speechapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sashabaranov/go-openai"

	"github.com/vedannt004/careerprep-chatbot/internal/dto"
)

type fakeClient struct {
	audio       []byte
	text        string
	err         error
	speechReq   openai.CreateSpeechRequest
	audioReq    openai.AudioRequest
	uploadBytes []byte
}

func (f *fakeClient) CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error) {
	f.speechReq = req
	if f.err != nil {
		return openai.RawResponse{}, f.err
	}
	return openai.RawResponse{ReadCloser: io.NopCloser(bytes.NewReader(f.audio))}, nil
}

func (f *fakeClient) CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error) {
	f.audioReq = req
	if f.err != nil {
		return openai.AudioResponse{}, f.err
	}
	f.uploadBytes, _ = io.ReadAll(req.Reader)
	return openai.AudioResponse{Text: f.text}, nil
}

func newTestHandler(client Client) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(client, Config{}, logger)
}

func speechRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/speech", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func transcriptionRequest(t *testing.T, withFile bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if withFile {
		fw, err := mw.CreateFormFile("file", "utterance.wav")
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte("RIFF....WAVE"))
	}
	mw.WriteField("language", "en-US")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/transcriptions", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return req
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d", want)
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != want {
		t.Errorf("expected status %d, got %d", want, httpErr.Code)
	}
}

func TestHandler_RegisterRoutes(t *testing.T) {
	h := newTestHandler(nil)
	e := echo.New()
	h.RegisterRoutes(e.Group(""))

	routePaths := make(map[string]bool)
	for _, r := range e.Routes() {
		routePaths[r.Path] = true
	}
	for _, path := range []string{"/speech", "/transcriptions"} {
		if !routePaths[path] {
			t.Errorf("expected route %s to be registered", path)
		}
	}
}

func TestHandleSpeech_Disabled(t *testing.T) {
	h := newTestHandler(nil)
	e := echo.New()
	rec := httptest.NewRecorder()

	err := h.HandleSpeech(e.NewContext(speechRequest(`{"input":"hi"}`), rec))
	assertStatus(t, err, http.StatusServiceUnavailable)
}

func TestHandleSpeech(t *testing.T) {
	fc := &fakeClient{audio: []byte("ID3audio")}
	h := newTestHandler(fc)
	e := echo.New()
	rec := httptest.NewRecorder()

	if err := h.HandleSpeech(e.NewContext(speechRequest(`{"input":"  Tell me about yourself. ","speed":9}`), rec)); err != nil {
		t.Fatalf("HandleSpeech() error = %v", err)
	}
	if rec.Header().Get(echo.HeaderContentType) != "audio/mpeg" {
		t.Errorf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}
	if rec.Body.String() != "ID3audio" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
	if fc.speechReq.Input != "Tell me about yourself." {
		t.Errorf("expected trimmed input, got %q", fc.speechReq.Input)
	}
	if fc.speechReq.Voice != openai.SpeechVoice(DefaultVoice) {
		t.Errorf("expected default voice, got %q", fc.speechReq.Voice)
	}
	if fc.speechReq.Speed != 1.0 {
		t.Errorf("expected out-of-range speed to reset, got %v", fc.speechReq.Speed)
	}
}

func TestHandleSpeech_Validation(t *testing.T) {
	h := newTestHandler(&fakeClient{audio: []byte("x")})
	e := echo.New()

	tests := []struct {
		name string
		body string
	}{
		{"empty input", `{"input":"   "}`},
		{"too long", `{"input":"` + strings.Repeat("a", maxInputLength+1) + `"}`},
		{"bad json", `{"input":`},
		{"unknown format", `{"input":"hi","format":"ogg"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			err := h.HandleSpeech(e.NewContext(speechRequest(tt.body), rec))
			assertStatus(t, err, http.StatusBadRequest)
		})
	}
}

func TestHandleSpeech_Wav(t *testing.T) {
	fc := &fakeClient{audio: []byte("RIFFdata")}
	h := newTestHandler(fc)
	e := echo.New()
	rec := httptest.NewRecorder()

	if err := h.HandleSpeech(e.NewContext(speechRequest(`{"input":"hi","format":"WAV"}`), rec)); err != nil {
		t.Fatalf("HandleSpeech() error = %v", err)
	}
	if rec.Header().Get(echo.HeaderContentType) != "audio/wav" {
		t.Errorf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}
	if fc.speechReq.ResponseFormat != openai.SpeechResponseFormatWav {
		t.Errorf("expected wav response format, got %q", fc.speechReq.ResponseFormat)
	}
}

func TestHandleSpeech_UpstreamError(t *testing.T) {
	h := newTestHandler(&fakeClient{err: errors.New("boom")})
	e := echo.New()
	rec := httptest.NewRecorder()

	err := h.HandleSpeech(e.NewContext(speechRequest(`{"input":"hi"}`), rec))
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestHandleSpeech_EmptyAudio(t *testing.T) {
	h := newTestHandler(&fakeClient{})
	e := echo.New()
	rec := httptest.NewRecorder()

	err := h.HandleSpeech(e.NewContext(speechRequest(`{"input":"hi"}`), rec))
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestHandleTranscriptions(t *testing.T) {
	fc := &fakeClient{text: "  I handled the outage.  "}
	h := newTestHandler(fc)
	e := echo.New()
	rec := httptest.NewRecorder()

	if err := h.HandleTranscriptions(e.NewContext(transcriptionRequest(t, true), rec)); err != nil {
		t.Fatalf("HandleTranscriptions() error = %v", err)
	}

	var resp dto.TranscriptionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if resp.Text != "I handled the outage." {
		t.Errorf("unexpected text %q", resp.Text)
	}
	if fc.audioReq.Language != "en" {
		t.Errorf("expected base language en, got %q", fc.audioReq.Language)
	}
	if fc.audioReq.Model != openai.Whisper1 {
		t.Errorf("expected whisper model, got %q", fc.audioReq.Model)
	}
	if fc.audioReq.FilePath != "utterance.wav" {
		t.Errorf("unexpected file path %q", fc.audioReq.FilePath)
	}
	if string(fc.uploadBytes) != "RIFF....WAVE" {
		t.Errorf("expected upload bytes to be forwarded, got %q", fc.uploadBytes)
	}
}

func TestHandleTranscriptions_MissingFile(t *testing.T) {
	h := newTestHandler(&fakeClient{})
	e := echo.New()
	rec := httptest.NewRecorder()

	err := h.HandleTranscriptions(e.NewContext(transcriptionRequest(t, false), rec))
	assertStatus(t, err, http.StatusBadRequest)
}

func TestHandleTranscriptions_Disabled(t *testing.T) {
	h := newTestHandler(nil)
	e := echo.New()
	rec := httptest.NewRecorder()

	err := h.HandleTranscriptions(e.NewContext(transcriptionRequest(t, true), rec))
	assertStatus(t, err, http.StatusServiceUnavailable)
}

func TestBaseLanguage(t *testing.T) {
	tests := map[string]string{
		"en-US": "en",
		"pt_BR": "pt",
		"FR":    "fr",
		"":      "",
	}
	for in, want := range tests {
		if got := baseLanguage(in); got != want {
			t.Errorf("baseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
