package session

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

const maxMetricsHours = 168

type Handler struct {
	store  *Store
	logger *slog.Logger
}

func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes mounts the metrics endpoints on g.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetMetrics)
	g.GET("/summary", h.GetSummary)
}

// RegisterPracticeRoutes mounts the practice session lookup on g.
func (h *Handler) RegisterPracticeRoutes(g *echo.Group) {
	g.GET("/:session_id", h.GetPractice)
}

func metricsToResponse(m *Metrics) dto.MetricsResponse {
	return dto.MetricsResponse{
		Date:              m.Date,
		Hour:              m.Hour,
		InterviewsStarted: m.InterviewsStarted,
		Answers:           m.Answers,
		AIFallbacks:       m.AIFallbacks,
		ResumesUploaded:   m.ResumesUploaded,
		ATSScores:         m.ATSScores,
		AvgLatencyMs:      m.AvgLatencyMs,
		ErrorCount:        m.ErrorCount,
	}
}

func parseHours(c echo.Context) int {
	hours := 24
	if v := c.QueryParam("hours"); v != "" {
		if hr, err := strconv.Atoi(v); err == nil && hr > 0 && hr <= maxMetricsHours {
			hours = hr
		}
	}
	return hours
}

// GetMetrics godoc
// @Summary      Hourly practice metrics
// @Description  Returns the non-empty hourly counter buckets, newest first
// @Tags         metrics
// @Produce      json
// @Param        hours  query  int  false  "Window in hours (1-168, default 24)"
// @Success      200  {object}  dto.MetricsListResponse
// @Failure      500  {object}  shared.APIError
// @Router       /metrics [get]
func (h *Handler) GetMetrics(c echo.Context) error {
	hours := parseHours(c)

	metrics, err := h.store.GetMetrics(c.Request().Context(), hours)
	if err != nil {
		h.logger.Error("failed to get metrics", "error", err)
		return shared.InternalError("get_metrics_failed", "failed to get metrics")
	}

	response := make([]dto.MetricsResponse, len(metrics))
	for i, m := range metrics {
		response[i] = metricsToResponse(m)
	}

	return c.JSON(http.StatusOK, dto.MetricsListResponse{
		Hours:   hours,
		Metrics: response,
	})
}

// GetSummary godoc
// @Summary      Practice metrics summary
// @Description  Aggregates the hourly counters over the requested window
// @Tags         metrics
// @Produce      json
// @Param        hours  query  int  false  "Window in hours (1-168, default 24)"
// @Success      200  {object}  dto.SummaryResponse
// @Failure      500  {object}  shared.APIError
// @Router       /metrics/summary [get]
func (h *Handler) GetSummary(c echo.Context) error {
	hours := parseHours(c)

	metrics, err := h.store.GetMetrics(c.Request().Context(), hours)
	if err != nil {
		h.logger.Error("failed to get metrics summary", "error", err)
		return shared.InternalError("get_metrics_failed", "failed to get metrics")
	}

	return c.JSON(http.StatusOK, summarize(hours, metrics))
}

func summarize(hours int, metrics []*Metrics) dto.SummaryResponse {
	summary := dto.SummaryResponse{
		Hours:   hours,
		Metrics: make([]dto.MetricsResponse, len(metrics)),
	}

	var totalLatency, latencyCount, fallbacks int64
	for i, m := range metrics {
		summary.Metrics[i] = metricsToResponse(m)
		summary.TotalInterviewsStarted += m.InterviewsStarted
		summary.TotalAnswers += m.Answers
		summary.TotalATSScores += m.ATSScores
		summary.TotalResumesUploaded += m.ResumesUploaded
		fallbacks += m.AIFallbacks

		if m.AvgLatencyMs > 0 {
			totalLatency += m.AvgLatencyMs
			latencyCount++
		}
	}

	if latencyCount > 0 {
		summary.AvgLatencyMs = totalLatency / latencyCount
	}
	if summary.TotalAnswers > 0 {
		summary.AIFallbackRate = float64(fallbacks) / float64(summary.TotalAnswers) * 100
	}

	return summary
}

// GetPractice godoc
// @Summary      Practice session
// @Description  Returns the live state of a practice session
// @Tags         sessions
// @Produce      json
// @Param        session_id  path  string  true  "Practice session ID"
// @Success      200  {object}  dto.PracticeResponse
// @Failure      404  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /sessions/{session_id} [get]
func (h *Handler) GetPractice(c echo.Context) error {
	id := c.Param("session_id")

	p, err := h.store.GetPractice(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NotFound("session_not_found", "practice session not found")
		}
		h.logger.Error("failed to get practice session", "error", err, "session_id", id)
		return shared.InternalError("get_session_failed", "failed to get practice session")
	}

	return c.JSON(http.StatusOK, dto.PracticeResponse{
		ID:           p.ID,
		Role:         p.Role,
		Company:      p.Company,
		Difficulty:   p.Difficulty,
		Answers:      p.Answers,
		AskedIdx:     p.AskedIdx,
		StartedAt:    p.StartedAt.Format(time.RFC3339),
		LastActiveAt: p.LastActiveAt.Format(time.RFC3339),
	})
}
