package resume

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vedannt004/careerprep-chatbot/internal/ats"
	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/history"
	"github.com/vedannt004/careerprep-chatbot/internal/session"
	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

const (
	maxUploadSize = 10 * 1024 * 1024

	msgNoFile      = "No file provided"
	msgUnreadable  = "Could not read file. Use PDF, DOCX, or TXT."
	msgFileTooBig  = "File too large (max 10MB)"
	maxJobDescSize = 100000
)

type Handler struct {
	scorer   *ats.Scorer
	sessions *session.Store
	history  *history.Store
	logger   *slog.Logger
}

// NewHandler wires the resume endpoints. sessions and history may be nil.
func NewHandler(scorer *ats.Scorer, sessions *session.Store, historyStore *history.Store, logger *slog.Logger) *Handler {
	return &Handler{
		scorer:   scorer,
		sessions: sessions,
		history:  historyStore,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/upload_resume", h.Upload)
	g.POST("/ats_score", h.ATSScore)
}

func uploadError(c echo.Context, status int, msg string) error {
	return c.JSON(status, dto.UploadResumeResponse{Error: msg})
}

// Upload godoc
// @Summary      Extract resume text
// @Description  Extracts plain text from a PDF, DOCX or text resume. Errors use the {error} shape.
// @Tags         resume
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Resume file (max 10MB)"
// @Success      200  {object}  dto.UploadResumeResponse
// @Failure      400  {object}  dto.UploadResumeResponse
// @Failure      413  {object}  dto.UploadResumeResponse
// @Router       /upload_resume [post]
func (h *Handler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return uploadError(c, http.StatusBadRequest, msgNoFile)
	}
	if file.Size > maxUploadSize {
		return uploadError(c, http.StatusRequestEntityTooLarge, msgFileTooBig)
	}

	src, err := file.Open()
	if err != nil {
		return uploadError(c, http.StatusBadRequest, msgUnreadable)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return uploadError(c, http.StatusBadRequest, msgUnreadable)
	}

	text, err := ExtractText(file.Filename, data)
	if err != nil {
		if !errors.Is(err, ErrEmpty) {
			h.logger.Warn("resume extraction failed", "error", err, "filename", file.Filename)
		}
		return uploadError(c, http.StatusBadRequest, msgUnreadable)
	}

	if h.sessions != nil {
		if err := h.sessions.IncrementResumesUploaded(c.Request().Context()); err != nil {
			h.logger.Warn("failed to count upload", "error", err)
		}
	}

	return c.JSON(http.StatusOK, dto.UploadResumeResponse{Text: text})
}

// ATSScore godoc
// @Summary      Score a resume against a job description
// @Description  Returns a 0-100 score plus the job keywords found and missing in the resume
// @Tags         resume
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header  string               false  "Practice session ID"
// @Param        request       body    dto.ATSScoreRequest  true   "Resume and job description"
// @Success      200  {object}  dto.ATSScoreResponse
// @Failure      400  {object}  shared.APIError
// @Failure      413  {object}  shared.APIError
// @Router       /ats_score [post]
func (h *Handler) ATSScore(c echo.Context) error {
	var req dto.ATSScoreRequest
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}
	if len(req.ResumeText) > MaxTextLength*4 || len(req.JobDesc) > maxJobDescSize {
		return shared.TooLarge("input_too_large", "resume or job description too large")
	}

	ctx := c.Request().Context()
	start := time.Now()

	result, cached, err := h.scorer.Score(ctx, req.ResumeText, req.JobDesc)
	if err != nil {
		h.logger.Warn("ats cache unavailable", "error", err)
	}
	h.logger.Debug("ats scored", "score", result.Score, "cached", cached, "duration", time.Since(start))

	if h.sessions != nil {
		if err := h.sessions.IncrementATSScores(ctx); err != nil {
			h.logger.Warn("failed to count ats score", "error", err)
		}
	}

	if sessionID := c.Request().Header.Get(dto.SessionHeader); sessionID != "" && h.history != nil {
		err := h.history.RecordReport(ctx, &history.Report{
			SessionID:       sessionID,
			Score:           result.Score,
			PresentKeywords: result.Present,
			MissingKeywords: result.Missing,
			ResumeChars:     len([]rune(req.ResumeText)),
		})
		if err != nil {
			h.logger.Warn("failed to record report", "error", err, "session_id", sessionID)
		}
	}

	return c.JSON(http.StatusOK, dto.ATSScoreResponse{
		Score:           result.Score,
		PresentKeywords: result.Present,
		MissingKeywords: result.Missing,
	})
}
