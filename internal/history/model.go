package history

import (
	"time"

	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

// Turn is one answered exchange of a practice session.
type Turn struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	SessionID    string    `gorm:"not null;index" json:"session_id"`
	Mode         string    `gorm:"not null" json:"mode"`
	Role         string    `json:"role"`
	Company      string    `json:"company"`
	Difficulty   string    `json:"difficulty"`
	Answer       string    `gorm:"type:text" json:"answer"`
	Reply        string    `gorm:"type:text" json:"reply"`
	NextQuestion string    `gorm:"type:text" json:"next_question"`
	AskedIdx     int       `json:"asked_idx"`
	AIGenerated  bool      `json:"ai_generated"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

// Report is a stored ATS scoring result.
type Report struct {
	ID              string             `gorm:"primaryKey" json:"id"`
	SessionID       string             `gorm:"not null;index" json:"session_id"`
	Score           int                `json:"score"`
	PresentKeywords shared.StringSlice `gorm:"type:text" json:"present_keywords"`
	MissingKeywords shared.StringSlice `gorm:"type:text" json:"missing_keywords"`
	ResumeChars     int                `json:"resume_chars"`
	CreatedAt       time.Time          `gorm:"index" json:"created_at"`
}
