package history

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

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

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/:session_id", h.Get)
	g.DELETE("/:session_id", h.Delete)
}

func turnToResponse(t *Turn) dto.TurnResponse {
	return dto.TurnResponse{
		ID:           t.ID,
		Mode:         t.Mode,
		Role:         t.Role,
		Answer:       t.Answer,
		Reply:        t.Reply,
		NextQuestion: t.NextQuestion,
		AskedIdx:     t.AskedIdx,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}

func reportToResponse(r *Report) dto.ReportResponse {
	present := []string(r.PresentKeywords)
	if present == nil {
		present = []string{}
	}
	missing := []string(r.MissingKeywords)
	if missing == nil {
		missing = []string{}
	}
	return dto.ReportResponse{
		ID:              r.ID,
		Score:           r.Score,
		PresentKeywords: present,
		MissingKeywords: missing,
		CreatedAt:       r.CreatedAt.Format(time.RFC3339),
	}
}

// Get godoc
// @Summary      Practice history
// @Description  Returns the recorded interview turns and ATS reports of a practice session
// @Tags         history
// @Produce      json
// @Param        session_id  path   string  true   "Practice session ID"
// @Param        limit       query  int     false  "Maximum items per list (default 100)"
// @Success      200  {object}  dto.HistoryResponse
// @Failure      400  {object}  shared.APIError
// @Failure      500  {object}  shared.APIError
// @Router       /history/{session_id} [get]
func (h *Handler) Get(c echo.Context) error {
	sessionID := c.Param("session_id")
	if sessionID == "" {
		return shared.BadRequest("missing_session", "session id is required")
	}

	limit := DefaultListLimit
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	ctx := c.Request().Context()
	turns, err := h.store.Turns(ctx, sessionID, limit)
	if err != nil {
		h.logger.Error("failed to list turns", "error", err, "session_id", sessionID)
		return shared.InternalError("history_failed", "failed to load history")
	}
	reports, err := h.store.Reports(ctx, sessionID, limit)
	if err != nil {
		h.logger.Error("failed to list reports", "error", err, "session_id", sessionID)
		return shared.InternalError("history_failed", "failed to load history")
	}

	resp := dto.HistoryResponse{
		SessionID: sessionID,
		Turns:     make([]dto.TurnResponse, len(turns)),
		Reports:   make([]dto.ReportResponse, len(reports)),
	}
	for i, t := range turns {
		resp.Turns[i] = turnToResponse(t)
	}
	for i, r := range reports {
		resp.Reports[i] = reportToResponse(r)
	}

	return c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Forget a practice session
// @Description  Deletes every recorded turn and report of a practice session
// @Tags         history
// @Param        session_id  path  string  true  "Practice session ID"
// @Success      204  "No Content"
// @Failure      500  {object}  shared.APIError
// @Router       /history/{session_id} [delete]
func (h *Handler) Delete(c echo.Context) error {
	sessionID := c.Param("session_id")
	if err := h.store.DeleteSession(c.Request().Context(), sessionID); err != nil {
		h.logger.Error("failed to delete history", "error", err, "session_id", sessionID)
		return shared.InternalError("delete_failed", "failed to delete history")
	}
	return c.NoContent(http.StatusNoContent)
}
