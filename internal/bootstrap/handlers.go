package bootstrap

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/sashabaranov/go-openai"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/fx"

	"github.com/vedannt004/careerprep-chatbot/internal/ats"
	"github.com/vedannt004/careerprep-chatbot/internal/chat"
	"github.com/vedannt004/careerprep-chatbot/internal/coach"
	"github.com/vedannt004/careerprep-chatbot/internal/history"
	"github.com/vedannt004/careerprep-chatbot/internal/interviewer"
	"github.com/vedannt004/careerprep-chatbot/internal/middleware"
	"github.com/vedannt004/careerprep-chatbot/internal/resume"
	"github.com/vedannt004/careerprep-chatbot/internal/session"
	"github.com/vedannt004/careerprep-chatbot/internal/speechapi"
)

type HandlerParams struct {
	fx.In

	ChatHandler    *chat.Handler
	ResumeHandler  *resume.Handler
	SpeechHandler  *speechapi.Handler
	HistoryHandler *history.Handler
	SessionHandler *session.Handler
	Config         *Config
}

func RegisterRoutes(e *echo.Echo, params HandlerParams) {
	limiter := middleware.DefaultRateLimiterConfig()
	limiter.RequestsPerSecond = params.Config.RateLimitRPS
	limiter.Burst = params.Config.RateLimitBurst

	e.Use(middleware.RateLimiter(limiter))

	root := e.Group("")
	params.ChatHandler.RegisterRoutes(root)
	params.ResumeHandler.RegisterRoutes(root)
	params.SpeechHandler.RegisterRoutes(root)

	params.HistoryHandler.RegisterRoutes(e.Group("/history"))
	params.SessionHandler.RegisterRoutes(e.Group("/metrics"))
	params.SessionHandler.RegisterPracticeRoutes(e.Group("/sessions"))

	e.GET("/swagger/*", echoSwagger.EchoWrapHandler())

	if params.Config.StaticDir != "" {
		e.Static("/assets", params.Config.StaticDir)
	}
	if params.Config.IndexHTML != "" {
		e.File("/", params.Config.IndexHTML)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ProvideLogger(cfg *Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
}

func ProvideInterviewer(client *openai.Client, cfg *Config) *interviewer.Interviewer {
	if client == nil {
		return nil
	}
	return interviewer.NewWithClient(client, cfg.OpenAIModel)
}

func ProvideChatHandler(bank coach.Bank, iv *interviewer.Interviewer, sessions *session.Store, historyStore *history.Store, logger *slog.Logger) *chat.Handler {
	return chat.NewHandler(bank, iv, sessions, historyStore, version, logger.With("handler", "chat"))
}

func ProvideResumeHandler(scorer *ats.Scorer, sessions *session.Store, historyStore *history.Store, logger *slog.Logger) *resume.Handler {
	return resume.NewHandler(scorer, sessions, historyStore, logger.With("handler", "resume"))
}

func ProvideSpeechHandler(client *openai.Client, cfg *Config, logger *slog.Logger) *speechapi.Handler {
	speechCfg := speechapi.Config{
		TTSModel: cfg.TTSModel,
		STTModel: cfg.STTModel,
		Voice:    cfg.TTSVoice,
	}
	if client == nil {
		return speechapi.NewHandler(nil, speechCfg, logger.With("handler", "speech"))
	}
	return speechapi.NewHandler(client, speechCfg, logger.With("handler", "speech"))
}

func ProvideHistoryHandler(store *history.Store, logger *slog.Logger) *history.Handler {
	return history.NewHandler(store, logger.With("handler", "history"))
}

func ProvideSessionHandler(store *session.Store, logger *slog.Logger) *session.Handler {
	return session.NewHandler(store, logger.With("handler", "session"))
}

var HandlersModule = fx.Options(
	fx.Provide(
		ProvideLogger,
		ProvideInterviewer,
		ProvideChatHandler,
		ProvideResumeHandler,
		ProvideSpeechHandler,
		ProvideHistoryHandler,
		ProvideSessionHandler,
	),
	fx.Invoke(RegisterRoutes),
)
