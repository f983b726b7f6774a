package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SessionHeader ties a request to a practice session.
const SessionHeader = "X-Session-ID"

// Chat modes understood by POST /chat.
const (
	ModeInterview  = "interview"
	ModeSoftSkills = "softskills"
	ModeGeneral    = "general"
)

type ChatRequest struct {
	Mode       string `json:"mode" example:"interview"`
	Message    string `json:"message" example:"I led a migration of our billing service..."`
	Role       string `json:"role" example:"software_engineer"`
	Company    string `json:"company" example:"Acme"`
	Difficulty string `json:"difficulty" example:"Medium"`
	AskedIdx   Index  `json:"asked_idx" swaggertype:"integer" example:"0"`
}

// Index is a question index. It also accepts a numeric string or a
// fractional number, which is truncated.
type Index int

func (i *Index) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("invalid index %q", s)
		}
		*i = Index(n)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid index %s", raw)
	}
	*i = Index(int(f))
	return nil
}

// ChatResponse carries whatever the mode produced. AskedIdx is only present
// in interview mode; clients must leave their index untouched when it is nil.
type ChatResponse struct {
	Reply        string `json:"reply,omitempty" example:"Feedback: Good length."`
	NextQuestion string `json:"next_question,omitempty" example:"What motivates you at work?"`
	AskedIdx     *int   `json:"asked_idx,omitempty" example:"1"`
}

type StatusResponse struct {
	AIEnabled bool     `json:"ai_enabled" example:"false"`
	Model     string   `json:"model,omitempty" example:"gpt-4o-mini"`
	Version   string   `json:"version" example:"1.0.0"`
	Roles     []string `json:"roles"`
}
