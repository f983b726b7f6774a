package coach

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const defaultCategory = "general"

//go:embed bank.yaml
var defaultBankYAML []byte

// Bank maps a role or mode name to its ordered interview questions.
type Bank map[string][]string

func DefaultBank() Bank {
	b, err := ParseBank(defaultBankYAML)
	if err != nil {
		panic("embedded question bank is invalid: " + err.Error())
	}
	return b
}

func ParseBank(data []byte) (Bank, error) {
	var b Bank
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	if len(b[defaultCategory]) == 0 {
		return nil, errors.New("question bank must define a non-empty general category")
	}
	return b, nil
}

// LoadBank reads a bank from path, falling back to the embedded bank when path is empty.
func LoadBank(path string) (Bank, error) {
	if path == "" {
		return DefaultBank(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %s: %w", path, err)
	}
	return ParseBank(data)
}

// NextQuestion prefers the role's questions, then the mode's, then general.
// The index wraps around the chosen list.
func (b Bank) NextQuestion(mode, role string, askedIdx int) string {
	questions := b[role]
	if len(questions) == 0 {
		questions = b[mode]
	}
	if len(questions) == 0 {
		questions = b[defaultCategory]
	}
	idx := askedIdx % len(questions)
	if idx < 0 {
		idx += len(questions)
	}
	return questions[idx]
}

func (b Bank) Categories() []string {
	out := make([]string, 0, len(b))
	for k := range b {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
