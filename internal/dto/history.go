package dto

type TurnResponse struct {
	ID           string `json:"id" example:"turn_abc123"`
	Mode         string `json:"mode" example:"interview"`
	Role         string `json:"role" example:"hr"`
	Answer       string `json:"answer"`
	Reply        string `json:"reply"`
	NextQuestion string `json:"next_question"`
	AskedIdx     int    `json:"asked_idx" example:"2"`
	CreatedAt    string `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

type ReportResponse struct {
	ID              string   `json:"id" example:"rpt_abc123"`
	Score           int      `json:"score" example:"64"`
	PresentKeywords []string `json:"present_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
	CreatedAt       string   `json:"created_at" example:"2024-01-15T10:30:00Z"`
}

type HistoryResponse struct {
	SessionID string           `json:"session_id" example:"prep_4b1f..."`
	Turns     []TurnResponse   `json:"turns"`
	Reports   []ReportResponse `json:"reports"`
}
