package ats

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = time.Hour

// Scorer memoizes Score results in Redis keyed by a digest of both inputs.
// A nil Redis client disables caching.
type Scorer struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewScorer(redisClient *redis.Client, ttl time.Duration) *Scorer {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Scorer{redis: redisClient, ttl: ttl}
}

type cachedResult struct {
	Score   int      `json:"score"`
	Present []string `json:"present"`
	Missing []string `json:"missing"`
}

func CacheKey(resumeText, jobDesc string) string {
	h := sha256.New()
	h.Write([]byte(resumeText))
	h.Write([]byte{0})
	h.Write([]byte(jobDesc))
	return "ats:" + hex.EncodeToString(h.Sum(nil))
}

// Score returns the cached result when present. Cache failures never fail
// scoring; they are returned alongside a freshly computed result.
func (s *Scorer) Score(ctx context.Context, resumeText, jobDesc string) (Result, bool, error) {
	if s.redis == nil {
		return Score(resumeText, jobDesc), false, nil
	}

	key := CacheKey(resumeText, jobDesc)
	data, err := s.redis.Get(ctx, key).Bytes()
	if err == nil {
		var cr cachedResult
		if jsonErr := json.Unmarshal(data, &cr); jsonErr == nil {
			return Result{Score: cr.Score, Present: nonNil(cr.Present), Missing: nonNil(cr.Missing)}, true, nil
		}
	}

	result := Score(resumeText, jobDesc)
	if err != nil && !errors.Is(err, redis.Nil) {
		return result, false, err
	}

	payload, err := json.Marshal(cachedResult{Score: result.Score, Present: result.Present, Missing: result.Missing})
	if err != nil {
		return result, false, err
	}
	if err := s.redis.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return result, false, err
	}
	return result, false, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
