package speech

import (
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/vedannt004/careerprep-chatbot/internal/shared"
)

// clipSentences cuts text to at most limit runes, dropping whole trailing
// sentences where possible so the spoken reply never stops mid-sentence.
func clipSentences(text string, limit int) string {
	if len([]rune(text)) <= limit {
		return text
	}

	doc, err := prose.NewDocument(text,
		prose.WithTokenization(false),
		prose.WithTagging(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return shared.Truncate(text, limit)
	}

	var b strings.Builder
	n := 0
	for _, s := range doc.Sentences() {
		sentence := strings.TrimSpace(s.Text)
		if sentence == "" {
			continue
		}
		size := len([]rune(sentence))
		if n > 0 {
			size++
		}
		if n+size > limit {
			break
		}
		if n > 0 {
			b.WriteString(" ")
		}
		b.WriteString(sentence)
		n += size
	}
	if n == 0 {
		return shared.Truncate(text, limit)
	}
	return b.String()
}
