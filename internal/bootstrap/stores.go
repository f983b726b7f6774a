package bootstrap

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/vedannt004/careerprep-chatbot/internal/ats"
	"github.com/vedannt004/careerprep-chatbot/internal/coach"
	"github.com/vedannt004/careerprep-chatbot/internal/history"
	"github.com/vedannt004/careerprep-chatbot/internal/session"
)

func ProvideHistoryStore(db *gorm.DB) *history.Store {
	return history.NewStore(db)
}

func ProvideSessionStore(redisClient *redis.Client, cfg *Config) *session.Store {
	store := session.NewStore(redisClient)
	store.SetInFlightTTL(cfg.InFlightTTL)
	return store
}

func ProvideATSScorer(redisClient *redis.Client, cfg *Config) *ats.Scorer {
	return ats.NewScorer(redisClient, cfg.ATSCacheTTL)
}

func ProvideQuestionBank(cfg *Config) (coach.Bank, error) {
	return coach.LoadBank(cfg.QuestionBankPath)
}

func RunMigrations(historyStore *history.Store) error {
	return historyStore.Migrate()
}

var StoresModule = fx.Options(
	fx.Provide(
		ProvideHistoryStore,
		ProvideSessionStore,
		ProvideATSScorer,
		ProvideQuestionBank,
	),
	fx.Invoke(RunMigrations),
)
