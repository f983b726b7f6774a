package session

import (
	"strconv"
	"time"
)

// Practice is a single mock-interview run, keyed by the X-Session-ID the
// client sends.
type Practice struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	Company      string    `json:"company"`
	Difficulty   string    `json:"difficulty"`
	Answers      int       `json:"answers"`
	AskedIdx     int       `json:"asked_idx"`
	StartedAt    time.Time `json:"started_at"`
	LastActiveAt time.Time `json:"last_active_at"`
}

func (p *Practice) RedisKey() string {
	return PracticeRedisKey(p.ID)
}

func PracticeRedisKey(id string) string {
	return "practice:" + id
}

func InFlightRedisKey(id, endpoint string) string {
	return "practice:" + id + ":inflight:" + endpoint
}

type Metrics struct {
	Date              string `json:"date"`
	Hour              int    `json:"hour"`
	InterviewsStarted int64  `json:"interviews_started"`
	Answers           int64  `json:"answers"`
	AIFallbacks       int64  `json:"ai_fallbacks"`
	ResumesUploaded   int64  `json:"resumes_uploaded"`
	ATSScores         int64  `json:"ats_scores"`
	AvgLatencyMs      int64  `json:"avg_latency_ms"`
	ErrorCount        int64  `json:"error_count"`
}

func MetricsRedisKey(date string, hour int) string {
	return "metrics:" + date + ":" + strconv.Itoa(hour)
}
