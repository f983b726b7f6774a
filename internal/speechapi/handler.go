package speechapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sashabaranov/go-openai"

	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

const (
	maxFileSize      = 25 * 1024 * 1024
	maxInputLength   = 4096
	maxAudioDataSize = 50 * 1024 * 1024
	maxSpeed         = 4.0
	minSpeed         = 0.25
	synthesisTimeout = 2 * time.Minute
	initialBufSize   = 64 * 1024

	DefaultVoice    = "alloy"
	DefaultTTSModel = string(openai.TTSModel1)
	DefaultSTTModel = openai.Whisper1
)

var audioBufferPool = sync.Pool{
	New: func() any {
		b := &bytes.Buffer{}
		b.Grow(initialBufSize)
		return b
	},
}

// Client is the slice of the OpenAI client used for speech.
type Client interface {
	CreateSpeech(ctx context.Context, req openai.CreateSpeechRequest) (openai.RawResponse, error)
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

type Config struct {
	TTSModel string
	STTModel string
	Voice    string
}

type Handler struct {
	client Client
	cfg    Config
	logger *slog.Logger
}

// NewHandler returns a handler that answers 503 on every route when client
// is nil.
func NewHandler(client Client, cfg Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.TTSModel == "" {
		cfg.TTSModel = DefaultTTSModel
	}
	if cfg.STTModel == "" {
		cfg.STTModel = DefaultSTTModel
	}
	if cfg.Voice == "" {
		cfg.Voice = DefaultVoice
	}
	return &Handler{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/speech", h.HandleSpeech)
	g.POST("/transcriptions", h.HandleTranscriptions)
}

func (h *Handler) Enabled() bool {
	return h.client != nil
}

// baseLanguage reduces a BCP 47 tag such as en-US to the ISO 639-1 code
// the transcription API expects.
func baseLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	return strings.ToLower(lang)
}

func responseFormat(format string) (openai.SpeechResponseFormat, string, bool) {
	switch strings.ToLower(format) {
	case "", "mp3":
		return openai.SpeechResponseFormatMp3, "audio/mpeg", true
	case "wav":
		return openai.SpeechResponseFormatWav, "audio/wav", true
	default:
		return "", "", false
	}
}

// HandleSpeech godoc
// @Summary      Create speech
// @Description  Synthesizes the input text and returns mp3 (default) or wav audio
// @Tags         speech
// @Accept       json
// @Produce      audio/mpeg
// @Produce      audio/wav
// @Param        request  body  dto.SpeechRequest  true  "Speech synthesis request"
// @Success      200  {file}    binary  "Audio data"
// @Failure      400  {object}  shared.APIError
// @Failure      503  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /speech [post]
func (h *Handler) HandleSpeech(c echo.Context) error {
	if !h.Enabled() {
		return shared.ServiceUnavailable("speech_disabled", "speech synthesis is not configured")
	}

	var req dto.SpeechRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_body", "Invalid request body")
	}

	req.Input = strings.TrimSpace(req.Input)
	if req.Input == "" {
		return shared.BadRequest("missing_input", "Input text is required")
	}
	if len(req.Input) > maxInputLength {
		return shared.BadRequest("input_too_long", fmt.Sprintf("Input text exceeds maximum length of %d characters", maxInputLength))
	}
	if req.Voice == "" {
		req.Voice = h.cfg.Voice
	}
	if req.Speed < minSpeed || req.Speed > maxSpeed {
		req.Speed = 1.0
	}
	format, contentType, ok := responseFormat(req.Format)
	if !ok {
		return shared.BadRequest("invalid_format", "Format must be mp3 or wav")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), synthesisTimeout)
	defer cancel()

	resp, err := h.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(h.cfg.TTSModel),
		Input:          req.Input,
		Voice:          openai.SpeechVoice(req.Voice),
		ResponseFormat: format,
		Speed:          req.Speed,
	})
	if err != nil {
		h.logger.Error("synthesis failed", "error", err)
		return shared.InternalError("synthesis_failed", "Speech synthesis failed")
	}
	defer resp.Close()

	buf := audioBufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer audioBufferPool.Put(buf)

	n, err := buf.ReadFrom(io.LimitReader(resp, maxAudioDataSize+1))
	if err != nil {
		h.logger.Error("reading synthesized audio failed", "error", err)
		return shared.InternalError("synthesis_failed", "Speech synthesis failed")
	}
	if n > maxAudioDataSize {
		return shared.InternalError("synthesis_failed", "audio data exceeds maximum size")
	}
	if n == 0 {
		return shared.InternalError("synthesis_failed", "No audio data generated")
	}

	h.logger.Debug("TTS synthesis complete", "bytes", n, "text_length", len(req.Input))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// HandleTranscriptions godoc
// @Summary      Create transcription
// @Description  Transcribes a recorded utterance into text
// @Tags         speech
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "Audio file to transcribe (max 25MB)"
// @Param        language  formData  string  false  "Language of the audio (e.g. en-US)"
// @Success      200  {object}  dto.TranscriptionResponse
// @Failure      400  {object}  shared.APIError
// @Failure      413  {object}  shared.APIError
// @Failure      503  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /transcriptions [post]
func (h *Handler) HandleTranscriptions(c echo.Context) error {
	if !h.Enabled() {
		return shared.ServiceUnavailable("speech_disabled", "speech recognition is not configured")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return shared.BadRequest("missing_file", "File is required")
	}
	if file.Size > maxFileSize {
		return shared.TooLarge("file_too_large", "File too large (max 25MB)")
	}

	src, err := file.Open()
	if err != nil {
		return shared.InternalError("file_error", "Failed to open file")
	}
	defer src.Close()

	filename := filepath.Base(file.Filename)
	if filename == "." || filename == "/" {
		filename = "audio.wav"
	}

	result, err := h.client.CreateTranscription(c.Request().Context(), openai.AudioRequest{
		Model:    h.cfg.STTModel,
		FilePath: filename,
		Reader:   src,
		Language: baseLanguage(c.FormValue("language")),
	})
	if err != nil {
		h.logger.Error("transcription failed", "error", err)
		return shared.InternalError("transcription_failed", "Transcription failed")
	}

	return c.JSON(http.StatusOK, dto.TranscriptionResponse{
		Text: strings.TrimSpace(result.Text),
	})
}
