package ats

import (
	"strings"
	"testing"
)

func TestScore_NoJobTerms(t *testing.T) {
	r := Score("", "")
	if r.Score != noTermsScore+6 {
		t.Errorf("expected %d, got %d", noTermsScore+6, r.Score)
	}
	if r.Present == nil || r.Missing == nil {
		t.Error("keyword lists must never be nil")
	}
}

func TestScore_PresentAndMissing(t *testing.T) {
	resume := "I value teamwork and shipped features with my team."
	job := "teamwork SQL"

	r := Score(resume, job)
	if len(r.Present) != 1 || r.Present[0] != "teamwork" {
		t.Errorf("expected present [teamwork], got %v", r.Present)
	}
	if len(r.Missing) != 1 || r.Missing[0] != "sql" {
		t.Errorf("expected missing [sql], got %v", r.Missing)
	}
	// 60*1/2 keywords + 6 length + 0 sections
	if r.Score != 36 {
		t.Errorf("expected score 36, got %d", r.Score)
	}
}

func TestScore_StopWordsAndShortTokensIgnored(t *testing.T) {
	r := Score("", "the and go js kubernetes")
	if len(r.Missing) != 1 || r.Missing[0] != "kubernetes" {
		t.Errorf("expected only kubernetes, got %v", r.Missing)
	}
}

func TestScore_FrequencyOrdering(t *testing.T) {
	job := "python docker python kubernetes docker python"
	r := Score("", job)
	expected := []string{"python", "docker", "kubernetes"}
	if len(r.Missing) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, r.Missing)
	}
	for i := range expected {
		if r.Missing[i] != expected[i] {
			t.Errorf("index %d: expected %s, got %s", i, expected[i], r.Missing[i])
		}
	}
}

func TestScore_TiesKeepFirstSeenOrder(t *testing.T) {
	r := Score("", "zebra apple mango")
	expected := []string{"zebra", "apple", "mango"}
	for i := range expected {
		if r.Missing[i] != expected[i] {
			t.Errorf("index %d: expected %s, got %s", i, expected[i], r.Missing[i])
		}
	}
}

func TestScore_CapsJobTerms(t *testing.T) {
	var words []string
	for i := 0; i < 40; i++ {
		words = append(words, "term"+string(rune('a'+i%26))+string(rune('a'+i/26)))
	}
	r := Score("", strings.Join(words, " "))
	if len(r.Missing) != maxJobTerms {
		t.Errorf("expected %d terms, got %d", maxJobTerms, len(r.Missing))
	}
}

func TestScore_Hyphenated(t *testing.T) {
	r := Score("cross-functional work", "cross-functional")
	if len(r.Present) != 1 || r.Present[0] != "cross-functional" {
		t.Errorf("expected hyphenated term to match, got %v", r.Present)
	}
}

func TestLengthScore(t *testing.T) {
	tests := []struct {
		words    int
		expected int
	}{
		{0, 6},
		{149, 6},
		{150, 12},
		{249, 12},
		{250, 20},
		{900, 20},
		{901, 12},
		{1500, 12},
		{1501, 6},
	}
	for _, tt := range tests {
		if got := lengthScore(tt.words); got != tt.expected {
			t.Errorf("lengthScore(%d) = %d, want %d", tt.words, got, tt.expected)
		}
	}
}

func TestSectionScore(t *testing.T) {
	if got := sectionScore("Education Experience Projects"); got != 10 {
		t.Errorf("expected 10, got %d", got)
	}
	all := "education experience projects skills certifications achievements"
	if got := sectionScore(all); got != 20 {
		t.Errorf("expected 20, got %d", got)
	}
	if got := sectionScore("Skills"); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
}

func TestScore_Clamped(t *testing.T) {
	resume := strings.Repeat("golang ", 300) + "education experience projects skills certifications achievements"
	r := Score(resume, "golang")
	if r.Score != maxScore {
		t.Errorf("expected %d, got %d", maxScore, r.Score)
	}
}
