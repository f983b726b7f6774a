package coach

import (
	"fmt"
	"regexp"
	"strings"
)

// SoftSkillTip is appended to feedback in soft-skills mode.
const SoftSkillTip = "Tip: Practice in front of a camera, slow down your pace, and emphasize key results. " +
	"Structure answers with STAR and quantify impact."

var (
	fillerWords = []string{"um", "uh", "like", "you know", "sort of", "kinda", "actually", "basically", "literally"}
	starHints   = []string{"situation", "task", "action", "result"}

	softSkills = []struct {
		name string
		keys []string
	}{
		{"communication", []string{"communicat", "present", "verbal", "written", "storytell"}},
		{"teamwork", []string{"team", "collaborat", "cross-functional", "stakeholder"}},
		{"leadership", []string{"lead", "mentor", "coach", "manage", "ownership"}},
		{"problem solving", []string{"problem", "solve", "optimiz", "debug", "root cause"}},
		{"adaptability", []string{"adapt", "learn", "fast", "agile", "flexible"}},
		{"time management", []string{"deadline", "priorit", "time", "schedule"}},
	}

	answerWord      = regexp.MustCompile(`[a-zA-Z']+`)
	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
	quantifiedClaim = regexp.MustCompile(`\b(\d+%?|\$\d+|[0-9]+k)\b`)
)

const (
	shortAnswerWords   = 60
	longAnswerWords    = 220
	maxAvgSentenceLen  = 28
	minStarCoverageHit = 1
)

// Feedback produces heuristic coaching for a spoken or typed interview answer.
func Feedback(answer string) string {
	text := strings.TrimSpace(answer)
	lower := strings.ToLower(text)
	wordCount := len(answerWord.FindAllString(lower, -1))

	var out []string

	switch {
	case wordCount < shortAnswerWords:
		out = append(out, "Your answer is quite short. Aim for 90–150 words to add context and impact.")
	case wordCount > longAnswerWords:
		out = append(out, "Your answer is long. Try 120–180 words and trim tangents.")
	default:
		out = append(out, "Good length.")
	}

	var fillers []string
	for _, w := range fillerWords {
		if strings.Contains(lower, w) {
			fillers = append(fillers, w)
		}
	}
	if len(fillers) > 0 {
		out = append(out, fmt.Sprintf("Reduce filler words (%s). Pause briefly instead.", strings.Join(fillers, ", ")))
	}

	starCoverage := 0
	for _, h := range starHints {
		if strings.Contains(lower, h) {
			starCoverage++
		}
	}
	if starCoverage <= minStarCoverageHit {
		out = append(out, "Use the STAR method: briefly outline Situation, Task, Action, Result.")
	} else {
		out = append(out, "Nice use of the STAR structure—ensure the Result is quantified.")
	}

	if !quantifiedClaim.MatchString(text) {
		out = append(out, "Add numbers to demonstrate impact (e.g., 'reduced time by 20%').")
	}

	if averageSentenceLength(text) > maxAvgSentenceLen {
		out = append(out, "Shorten long sentences for clarity (aim for 15–22 words each).")
	}

	var found []string
	for _, skill := range softSkills {
		for _, k := range skill.keys {
			if strings.Contains(lower, k) {
				found = append(found, skill.name)
				break
			}
		}
	}
	if len(found) > 0 {
		out = append(out, "Strengths noted: "+strings.Join(found, ", ")+".")
	}

	return strings.Join(out, " ")
}

func averageSentenceLength(text string) float64 {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 0
	}
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	return float64(total) / float64(len(sentences))
}

func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplit.Split(text, -1) {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
