package chat

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vedannt004/careerprep-chatbot/internal/coach"
	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/history"
	"github.com/vedannt004/careerprep-chatbot/internal/interviewer"
	"github.com/vedannt004/careerprep-chatbot/internal/session"
	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

const (
	defaultRole       = "general"
	defaultDifficulty = "Medium"
	fallbackCategory  = "hr"

	Greeting = "I'm your career prep assistant. Choose Interview Practice or upload a resume to get an ATS score."
)

type Handler struct {
	bank        coach.Bank
	interviewer *interviewer.Interviewer
	sessions    *session.Store
	history     *history.Store
	version     string
	logger      *slog.Logger
}

// NewHandler wires the chat endpoint. sessions and history may be nil, in
// which case in-flight guarding and persistence are skipped.
func NewHandler(bank coach.Bank, iv *interviewer.Interviewer, sessions *session.Store, historyStore *history.Store, version string, logger *slog.Logger) *Handler {
	return &Handler{
		bank:        bank,
		interviewer: iv,
		sessions:    sessions,
		history:     historyStore,
		version:     version,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/chat", h.Chat)
	g.GET("/status", h.Status)
}

// reply is the outcome of one chat turn before it is rendered.
type reply struct {
	resp       dto.ChatResponse
	aiUsed     bool
	aiFallback bool
}

// Chat godoc
// @Summary      Send a chat message
// @Description  Interview mode returns feedback plus the next question and the advanced index. Soft-skills mode returns feedback with a tip. Any other mode returns a greeting.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        X-Session-ID  header  string           false  "Practice session ID"
// @Param        request       body    dto.ChatRequest  true   "Chat message"
// @Success      200  {object}  dto.ChatResponse
// @Failure      400  {object}  shared.APIError
// @Failure      409  {object}  shared.APIError
// @Router       /chat [post]
func (h *Handler) Chat(c echo.Context) error {
	req := newChatRequest()
	if err := c.Bind(&req); err != nil {
		return shared.BadRequest("invalid_request", "invalid request body")
	}

	ctx := c.Request().Context()
	sessionID := c.Request().Header.Get(dto.SessionHeader)

	if sessionID != "" && h.sessions != nil {
		release, err := h.sessions.AcquireInFlight(ctx, sessionID, "chat")
		switch {
		case errors.Is(err, shared.ErrInFlight):
			return shared.Conflict("request_in_flight", "a chat request for this session is already in progress")
		case err != nil:
			h.logger.Warn("in-flight guard unavailable", "error", err, "session_id", sessionID)
		default:
			defer release(context.WithoutCancel(ctx))
		}
	}

	start := time.Now()
	out := h.respond(ctx, req)
	h.record(ctx, sessionID, req, out, time.Since(start))

	return c.JSON(http.StatusOK, out.resp)
}

// newChatRequest holds the defaults for keys the body leaves out. A key
// sent as an empty string keeps its empty value.
func newChatRequest() dto.ChatRequest {
	return dto.ChatRequest{
		Mode:       dto.ModeGeneral,
		Role:       defaultRole,
		Difficulty: defaultDifficulty,
	}
}

func (h *Handler) respond(ctx context.Context, req dto.ChatRequest) reply {
	switch req.Mode {
	case dto.ModeInterview:
		return h.interview(ctx, req)
	case dto.ModeSoftSkills:
		return reply{resp: dto.ChatResponse{Reply: coach.Feedback(req.Message) + " " + coach.SoftSkillTip}}
	default:
		return reply{resp: dto.ChatResponse{Reply: Greeting}}
	}
}

func (h *Handler) interview(ctx context.Context, req dto.ChatRequest) reply {
	askedIdx := int(req.AskedIdx)
	next := askedIdx + 1

	if h.interviewer.Enabled() {
		turn, err := h.interviewer.Next(ctx, interviewer.Request{
			Role:       req.Role,
			Company:    req.Company,
			Difficulty: req.Difficulty,
			AskedIdx:   askedIdx,
			Answer:     req.Message,
		})
		if err == nil {
			return reply{
				resp:   dto.ChatResponse{Reply: turn.Feedback, NextQuestion: turn.Question, AskedIdx: &next},
				aiUsed: true,
			}
		}
		h.logger.Warn("interviewer failed, using local questions", "error", err)
		out := h.localInterview(req, next)
		out.aiFallback = true
		return out
	}

	return h.localInterview(req, next)
}

func (h *Handler) localInterview(req dto.ChatRequest, next int) reply {
	return reply{resp: dto.ChatResponse{
		Reply:        "Feedback: " + coach.Feedback(req.Message),
		NextQuestion: h.bank.NextQuestion(fallbackCategory, req.Role, next),
		AskedIdx:     &next,
	}}
}

// record updates metrics and history. Failures are logged only; the reply
// has already been computed and is still returned to the caller.
func (h *Handler) record(ctx context.Context, sessionID string, req dto.ChatRequest, out reply, latency time.Duration) {
	if req.Mode != dto.ModeInterview {
		return
	}

	if h.sessions != nil {
		if err := h.sessions.RecordLatency(ctx, latency); err != nil {
			h.logger.Warn("failed to record latency", "error", err)
		}
		if out.aiFallback {
			if err := h.sessions.IncrementAIFallbacks(ctx); err != nil {
				h.logger.Warn("failed to record fallback", "error", err)
			}
		}
		if sessionID != "" {
			h.trackPractice(ctx, sessionID, req, *out.resp.AskedIdx)
		}
	}

	if h.history != nil && sessionID != "" {
		err := h.history.RecordTurn(ctx, &history.Turn{
			SessionID:    sessionID,
			Mode:         req.Mode,
			Role:         req.Role,
			Company:      req.Company,
			Difficulty:   req.Difficulty,
			Answer:       req.Message,
			Reply:        out.resp.Reply,
			NextQuestion: out.resp.NextQuestion,
			AskedIdx:     *out.resp.AskedIdx,
			AIGenerated:  out.aiUsed,
		})
		if err != nil {
			h.logger.Warn("failed to record turn", "error", err, "session_id", sessionID)
		}
	}
}

// trackPractice treats an empty answer at index 0 as the start of a new
// interview and anything else as an answer.
func (h *Handler) trackPractice(ctx context.Context, sessionID string, req dto.ChatRequest, askedIdx int) {
	var err error
	if req.AskedIdx == 0 && shared.CleanText(req.Message) == "" {
		err = h.sessions.StartPractice(ctx, &session.Practice{
			ID:         sessionID,
			Role:       req.Role,
			Company:    req.Company,
			Difficulty: req.Difficulty,
		})
	} else {
		_, err = h.sessions.RecordAnswer(ctx, sessionID, askedIdx)
	}
	if err != nil {
		h.logger.Warn("failed to track practice session", "error", err, "session_id", sessionID)
	}
}

// Status godoc
// @Summary      Assistant status
// @Description  Reports whether the AI interviewer is enabled and which question categories exist
// @Tags         chat
// @Produce      json
// @Success      200  {object}  dto.StatusResponse
// @Router       /status [get]
func (h *Handler) Status(c echo.Context) error {
	resp := dto.StatusResponse{
		AIEnabled: h.interviewer.Enabled(),
		Version:   h.version,
		Roles:     h.bank.Categories(),
	}
	if resp.AIEnabled {
		resp.Model = h.interviewer.Model()
	}
	return c.JSON(http.StatusOK, resp)
}
