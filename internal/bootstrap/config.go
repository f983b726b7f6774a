package bootstrap

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr  string
	LogLevel    string
	CORSOrigins []string

	DatabaseDriver string
	DatabaseDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	TTSModel      string
	TTSVoice      string
	STTModel      string

	QuestionBankPath string
	ATSCacheTTL      time.Duration
	InFlightTTL      time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	StaticDir string
	IndexHTML string
}

// LoadConfig reads the environment, after loading a .env file from the
// working directory when one exists.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerAddr:  getEnv("SERVER_ADDR", ":"+getEnv("PORT", "5000")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "careerprep.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		TTSModel:      getEnv("OPENAI_TTS_MODEL", "tts-1"),
		TTSVoice:      getEnv("OPENAI_TTS_VOICE", "alloy"),
		STTModel:      getEnv("OPENAI_STT_MODEL", "whisper-1"),

		QuestionBankPath: getEnv("QUESTION_BANK_PATH", ""),
		ATSCacheTTL:      getEnvDuration("ATS_CACHE_TTL", time.Hour),
		InFlightTTL:      getEnvDuration("INFLIGHT_TTL", 2*time.Minute),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		StaticDir: getEnv("STATIC_DIR", ""),
		IndexHTML: getEnv("INDEX_HTML", ""),
	}
}

func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func splitList(envValue string) []string {
	var out []string
	for _, item := range strings.Split(envValue, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
