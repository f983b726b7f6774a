package interviewer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

const (
	DefaultModel      = "gpt-4o-mini"
	defaultTemp       = 0.5
	defaultCompany    = "a top tech company"
	defaultRole       = "Generalist"
	defaultDifficulty = "Medium"
)

var ErrNoQuestion = errors.New("interviewer returned no question")

// Completer is the slice of the OpenAI client the interviewer needs.
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Turn is the interviewer's reaction to one answer.
type Turn struct {
	Feedback string
	Question string
}

type Request struct {
	Role       string
	Company    string
	Difficulty string
	AskedIdx   int
	Answer     string
}

type Interviewer struct {
	client Completer
	model  string
}

// New returns nil when no API key is configured; callers treat a nil
// interviewer as AI disabled.
func New(cfg Config) *Interviewer {
	if cfg.APIKey == "" {
		return nil
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return NewWithClient(openai.NewClientWithConfig(oc), cfg.Model)
}

func NewWithClient(client Completer, model string) *Interviewer {
	if model == "" {
		model = DefaultModel
	}
	return &Interviewer{client: client, model: model}
}

func (i *Interviewer) Enabled() bool {
	return i != nil && i.client != nil
}

func (i *Interviewer) Model() string {
	return i.model
}

// Next asks the model for feedback on the answer and the next question.
func (i *Interviewer) Next(ctx context.Context, req Request) (*Turn, error) {
	if !i.Enabled() {
		return nil, errors.New("interviewer not configured")
	}

	userPrompt, err := buildUserPrompt(req)
	if err != nil {
		return nil, err
	}

	resp, err := i.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: i.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: defaultTemp,
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoQuestion
	}

	turn, err := parseTurn(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if turn.Question == "" {
		return nil, ErrNoQuestion
	}
	return turn, nil
}

func systemPrompt(req Request) string {
	return fmt.Sprintf("You are a senior interviewer conducting a mock interview for %s (%s). "+
		"Keep it realistic and job-ready. Ask one question at a time. "+
		"Provide concise, actionable feedback. Maintain a professional tone.",
		orDefault(req.Company, defaultCompany), orDefault(req.Role, defaultRole))
}

type instructions struct {
	AskedIndex   int               `json:"asked_index"`
	Company      string            `json:"company"`
	Role         string            `json:"role"`
	Difficulty   string            `json:"difficulty"`
	UserAnswer   string            `json:"user_answer"`
	Requirements map[string]string `json:"requirements"`
}

func buildUserPrompt(req Request) (string, error) {
	ctxJSON, err := json.Marshal(instructions{
		AskedIndex: req.AskedIdx,
		Company:    req.Company,
		Role:       req.Role,
		Difficulty: titleCase(orDefault(req.Difficulty, defaultDifficulty)),
		UserAnswer: req.Answer,
		Requirements: map[string]string{
			"feedback_style": "bullet points, at most 6 bullets; include STAR and quantification guidance",
			"next_question":  "role and company specific, realistic, difficulty-appropriate",
			"length":         "feedback <= 120 words",
		},
	})
	if err != nil {
		return "", err
	}

	return "You will return strict JSON with keys 'feedback' and 'question'. " +
		"If there is no user answer yet, set 'feedback' to an empty string and only provide the first 'question'. " +
		"Context:\n" + string(ctxJSON), nil
}

// parseTurn accepts either a bare JSON object or prose wrapping one.
func parseTurn(content string) (*Turn, error) {
	content = strings.TrimSpace(content)

	var raw struct {
		Feedback flexText `json:"feedback"`
		Question flexText `json:"question"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		start := strings.Index(content, "{")
		end := strings.LastIndex(content, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("no JSON object in completion: %w", err)
		}
		if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
			return nil, fmt.Errorf("decode completion JSON: %w", err)
		}
	}

	return &Turn{
		Feedback: shared.CleanText(string(raw.Feedback)),
		Question: shared.CleanText(string(raw.Question)),
	}, nil
}

// flexText decodes a JSON string, or a list of strings joined by spaces.
// Models regularly answer bullet feedback as an array.
type flexText string

func (f *flexText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexText(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*f = flexText(strings.Join(list, " "))
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
