package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

const (
	practiceTTL = 24 * time.Hour
	metricsTTL  = 7 * 24 * time.Hour

	// DefaultInFlightTTL bounds how long a crashed request can hold a lock.
	DefaultInFlightTTL = 2 * time.Minute
)

const (
	FieldInterviewsStarted = "interviews_started"
	FieldAnswers           = "answers"
	FieldAIFallbacks       = "ai_fallbacks"
	FieldResumesUploaded   = "resumes_uploaded"
	FieldATSScores         = "ats_scores"
	FieldErrors            = "error_count"
)

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type Store struct {
	redis       *redis.Client
	inFlightTTL time.Duration
}

func NewStore(redisClient *redis.Client) *Store {
	return &Store{redis: redisClient, inFlightTTL: DefaultInFlightTTL}
}

func (s *Store) SetInFlightTTL(ttl time.Duration) {
	if ttl > 0 {
		s.inFlightTTL = ttl
	}
}

// StartPractice creates a practice session or resets an existing one.
func (s *Store) StartPractice(ctx context.Context, p *Practice) error {
	if p.ID == "" {
		p.ID = shared.NewID("prep_")
	}
	now := time.Now()
	p.Answers = 0
	p.AskedIdx = 0
	p.StartedAt = now
	p.LastActiveAt = now

	if err := s.save(ctx, p); err != nil {
		return err
	}
	return s.IncrementMetric(ctx, FieldInterviewsStarted, 1)
}

func (s *Store) GetPractice(ctx context.Context, id string) (*Practice, error) {
	data, err := s.redis.Get(ctx, PracticeRedisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var p Practice
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordAnswer bumps the answer count of a practice session, creating the
// session when the client never started one explicitly.
func (s *Store) RecordAnswer(ctx context.Context, id string, askedIdx int) (*Practice, error) {
	p, err := s.GetPractice(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		p = &Practice{ID: id, StartedAt: time.Now()}
	} else if err != nil {
		return nil, err
	}
	p.Answers++
	p.AskedIdx = askedIdx
	p.LastActiveAt = time.Now()

	if err := s.save(ctx, p); err != nil {
		return nil, err
	}
	return p, s.IncrementMetric(ctx, FieldAnswers, 1)
}

func (s *Store) DeletePractice(ctx context.Context, id string) error {
	return s.redis.Del(ctx, PracticeRedisKey(id)).Err()
}

func (s *Store) save(ctx context.Context, p *Practice) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, p.RedisKey(), data, practiceTTL).Err()
}

// AcquireInFlight takes the per-session lock for endpoint. It returns
// shared.ErrInFlight while another request holds it. The returned release
// func only drops the lock if it is still ours.
func (s *Store) AcquireInFlight(ctx context.Context, id, endpoint string) (func(context.Context), error) {
	key := InFlightRedisKey(id, endpoint)
	token := shared.NewID("")

	ok, err := s.redis.SetNX(ctx, key, token, s.inFlightTTL).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrInFlight
	}

	return func(ctx context.Context) {
		releaseScript.Run(ctx, s.redis, []string{key}, token)
	}, nil
}

func (s *Store) IncrementMetric(ctx context.Context, field string, value int64) error {
	now := time.Now().UTC()
	key := MetricsRedisKey(now.Format("2006-01-02"), now.Hour())

	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, field, value)
	pipe.Expire(ctx, key, metricsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) IncrementAIFallbacks(ctx context.Context) error {
	return s.IncrementMetric(ctx, FieldAIFallbacks, 1)
}

func (s *Store) IncrementResumesUploaded(ctx context.Context) error {
	return s.IncrementMetric(ctx, FieldResumesUploaded, 1)
}

func (s *Store) IncrementATSScores(ctx context.Context) error {
	return s.IncrementMetric(ctx, FieldATSScores, 1)
}

func (s *Store) IncrementErrors(ctx context.Context) error {
	return s.IncrementMetric(ctx, FieldErrors, 1)
}

func (s *Store) RecordLatency(ctx context.Context, latency time.Duration) error {
	now := time.Now().UTC()
	key := MetricsRedisKey(now.Format("2006-01-02"), now.Hour())

	pipe := s.redis.Pipeline()
	pipe.HIncrBy(ctx, key, "total_latency_ms", latency.Milliseconds())
	pipe.HIncrBy(ctx, key, "latency_count", 1)
	pipe.Expire(ctx, key, metricsTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// GetMetrics returns the hourly buckets of the last hours, newest first.
// Empty hours are skipped.
func (s *Store) GetMetrics(ctx context.Context, hours int) ([]*Metrics, error) {
	now := time.Now().UTC()
	var metrics []*Metrics

	for i := 0; i < hours; i++ {
		t := now.Add(-time.Duration(i) * time.Hour)
		key := MetricsRedisKey(t.Format("2006-01-02"), t.Hour())

		data, err := s.redis.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		if len(data) == 0 {
			continue
		}

		m := &Metrics{
			Date: t.Format("2006-01-02"),
			Hour: t.Hour(),
		}
		m.InterviewsStarted = parseCount(data, FieldInterviewsStarted)
		m.Answers = parseCount(data, FieldAnswers)
		m.AIFallbacks = parseCount(data, FieldAIFallbacks)
		m.ResumesUploaded = parseCount(data, FieldResumesUploaded)
		m.ATSScores = parseCount(data, FieldATSScores)
		m.ErrorCount = parseCount(data, FieldErrors)

		totalLatency := parseCount(data, "total_latency_ms")
		latencyCount := parseCount(data, "latency_count")
		if latencyCount > 0 {
			m.AvgLatencyMs = totalLatency / latencyCount
		}

		metrics = append(metrics, m)
	}

	return metrics, nil
}

func parseCount(data map[string]string, field string) int64 {
	v, ok := data[field]
	if !ok {
		return 0
	}
	n, _ := strconv.ParseInt(v, 10, 64)
	return n
}
