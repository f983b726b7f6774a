package dto

type MetricsResponse struct {
	Date              string `json:"date" example:"2024-01-15"`
	Hour              int    `json:"hour" example:"14"`
	InterviewsStarted int64  `json:"interviews_started" example:"12"`
	Answers           int64  `json:"answers" example:"40"`
	AIFallbacks       int64  `json:"ai_fallbacks" example:"1"`
	ResumesUploaded   int64  `json:"resumes_uploaded" example:"5"`
	ATSScores         int64  `json:"ats_scores" example:"9"`
	AvgLatencyMs      int64  `json:"avg_latency_ms" example:"150"`
	ErrorCount        int64  `json:"error_count" example:"2"`
}

type SummaryResponse struct {
	Hours                  int               `json:"hours" example:"24"`
	TotalInterviewsStarted int64             `json:"total_interviews_started" example:"100"`
	TotalAnswers           int64             `json:"total_answers" example:"420"`
	TotalATSScores         int64             `json:"total_ats_scores" example:"80"`
	TotalResumesUploaded   int64             `json:"total_resumes_uploaded" example:"60"`
	AvgLatencyMs           int64             `json:"avg_latency_ms" example:"145"`
	AIFallbackRate         float64           `json:"ai_fallback_rate" example:"1.5"`
	Metrics                []MetricsResponse `json:"metrics"`
}

type MetricsListResponse struct {
	Hours   int               `json:"hours" example:"24"`
	Metrics []MetricsResponse `json:"metrics"`
}

type PracticeResponse struct {
	ID           string `json:"id" example:"prep_4b1f..."`
	Role         string `json:"role" example:"software_engineer"`
	Company      string `json:"company" example:"Acme"`
	Difficulty   string `json:"difficulty" example:"Medium"`
	Answers      int    `json:"answers" example:"3"`
	AskedIdx     int    `json:"asked_idx" example:"3"`
	StartedAt    string `json:"started_at" example:"2024-01-15T10:30:00Z"`
	LastActiveAt string `json:"last_active_at" example:"2024-01-15T10:42:00Z"`
}
