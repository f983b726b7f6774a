package bootstrap

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vedannt004/careerprep-chatbot/internal/ats"
	"github.com/vedannt004/careerprep-chatbot/internal/chat"
	"github.com/vedannt004/careerprep-chatbot/internal/coach"
	"github.com/vedannt004/careerprep-chatbot/internal/dto"
	"github.com/vedannt004/careerprep-chatbot/internal/history"
	"github.com/vedannt004/careerprep-chatbot/internal/resume"
	"github.com/vedannt004/careerprep-chatbot/internal/session"
)

func TestOpenDialector(t *testing.T) {
	tests := []struct {
		driver  string
		wantErr bool
	}{
		{"sqlite", false},
		{"", false},
		{"postgres", false},
		{"oracle", true},
	}
	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := openDialector(&Config{DatabaseDriver: tt.driver, DatabaseDSN: ":memory:"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("openDialector() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && d == nil {
				t.Error("expected dialector")
			}
		})
	}
}

func TestProvideOpenAIClient_Disabled(t *testing.T) {
	if c := ProvideOpenAIClient(&Config{}); c != nil {
		t.Error("expected nil client without key")
	}
	if iv := ProvideInterviewer(nil, &Config{}); iv.Enabled() {
		t.Error("expected interviewer disabled without client")
	}
}

func TestProvideOpenAIClient_Enabled(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-test"}
	client := ProvideOpenAIClient(cfg)
	if client == nil {
		t.Fatal("expected client")
	}
	iv := ProvideInterviewer(client, cfg)
	if !iv.Enabled() || iv.Model() != "gpt-test" {
		t.Errorf("unexpected interviewer state: enabled=%v model=%q", iv.Enabled(), iv.Model())
	}
}

func TestRegisterRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &Config{RateLimitRPS: 100, RateLimitBurst: 100}

	e := NewEchoServer(&Config{CORSOrigins: []string{"*"}})
	RegisterRoutes(e, HandlerParams{
		ChatHandler:    chat.NewHandler(coach.DefaultBank(), nil, nil, nil, version, logger),
		ResumeHandler:  resume.NewHandler(ats.NewScorer(nil, 0), nil, nil, logger),
		SpeechHandler:  ProvideSpeechHandler(nil, cfg, logger),
		HistoryHandler: history.NewHandler(nil, logger),
		SessionHandler: session.NewHandler(nil, logger),
		Config:         cfg,
	})

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"POST /chat",
		"GET /status",
		"POST /upload_resume",
		"POST /ats_score",
		"POST /speech",
		"POST /transcriptions",
		"GET /history/:session_id",
		"DELETE /history/:session_id",
		"GET /metrics/summary",
		"GET /sessions/:session_id",
		"GET /swagger/*",
	} {
		if !routes[want] {
			t.Errorf("expected route %s", want)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET /status = %d, want 200", rec.Code)
	}
}

func TestCORSAllowsSessionHeader(t *testing.T) {
	e := NewEchoServer(&Config{CORSOrigins: []string{"http://app.test"}})
	e.POST("/chat", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set(echo.HeaderOrigin, "http://app.test")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	req.Header.Set(echo.HeaderAccessControlRequestHeaders, dto.SessionHeader)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowHeaders); got == "" {
		t.Error("expected allowed headers in preflight response")
	}
}
