package coach

import (
	"strings"
	"testing"
)

func TestFeedback_ShortAnswer(t *testing.T) {
	fb := Feedback("I solved a bug.")
	if !strings.HasPrefix(fb, "Your answer is quite short.") {
		t.Errorf("expected short-answer guidance first, got %q", fb)
	}
	if !strings.Contains(fb, "Use the STAR method") {
		t.Error("expected STAR advice")
	}
	if !strings.Contains(fb, "Add numbers to demonstrate impact") {
		t.Error("expected quantification advice")
	}
	if !strings.Contains(fb, "Strengths noted: problem solving.") {
		t.Errorf("expected problem solving strength, got %q", fb)
	}
}

func TestFeedback_Empty(t *testing.T) {
	fb := Feedback("   ")
	if !strings.HasPrefix(fb, "Your answer is quite short.") {
		t.Errorf("unexpected feedback %q", fb)
	}
	if strings.Contains(fb, "Strengths noted") {
		t.Error("empty answer should not list strengths")
	}
}

func TestFeedback_LongAnswer(t *testing.T) {
	answer := strings.Repeat("word ", 230)
	fb := Feedback(answer)
	if !strings.HasPrefix(fb, "Your answer is long.") {
		t.Errorf("expected long-answer guidance, got %q", fb)
	}
}

func TestFeedback_GoodStructuredAnswer(t *testing.T) {
	var b strings.Builder
	b.WriteString("The situation was a failing release. My task was to stabilize it. ")
	b.WriteString("The action I took was to collaborate with the team and debug the root cause. ")
	b.WriteString("The result was a 30% drop in incidents. ")
	for b.Len() < 500 {
		b.WriteString("We kept improving the process each sprint. ")
	}

	fb := Feedback(b.String())
	if !strings.HasPrefix(fb, "Good length.") {
		t.Errorf("expected good length, got %q", fb)
	}
	if !strings.Contains(fb, "Nice use of the STAR structure") {
		t.Error("expected STAR praise")
	}
	if strings.Contains(fb, "Add numbers") {
		t.Error("quantified answer should not get quantification advice")
	}
	if !strings.Contains(fb, "teamwork") || !strings.Contains(fb, "problem solving") {
		t.Errorf("expected teamwork and problem solving strengths, got %q", fb)
	}
}

func TestFeedback_Fillers(t *testing.T) {
	fb := Feedback("Um, I basically just did it, you know.")
	if !strings.Contains(fb, "Reduce filler words (um, you know, basically)") {
		t.Errorf("expected filler words in fixed order, got %q", fb)
	}
}

func TestFeedback_LongSentences(t *testing.T) {
	answer := strings.TrimSpace(strings.Repeat("very ", 35)) + " long sentence."
	fb := Feedback(answer)
	if !strings.Contains(fb, "Shorten long sentences") {
		t.Errorf("expected sentence length advice, got %q", fb)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two!  Three?? ")
	if len(got) != 3 {
		t.Fatalf("expected 3 sentences, got %d: %v", len(got), got)
	}
	if got[2] != "Three" {
		t.Errorf("unexpected sentence %q", got[2])
	}
}

func TestAverageSentenceLength_Empty(t *testing.T) {
	if avg := averageSentenceLength(""); avg != 0 {
		t.Errorf("expected 0, got %v", avg)
	}
}

func TestFeedback_DecimalsSplitSentences(t *testing.T) {
	// 37 words in one clause; the decimal points split it into three fragments
	answer := "Our build took 9.5 minutes on every commit and blocked the whole team for most of the day, " +
		"so I cached the dependencies and split the test suite until it took 4.2 minutes instead"
	if avg := averageSentenceLength(answer); avg > maxAvgSentenceLen {
		t.Fatalf("average sentence length = %v, want <= %d", avg, maxAvgSentenceLen)
	}
	if fb := Feedback(answer); strings.Contains(fb, "Shorten long sentences") {
		t.Errorf("decimal points must count as sentence breaks, got %q", fb)
	}
}
