package ats

import (
	"regexp"
	"sort"
	"strings"
)

const (
	candidatePool = 300
	maxJobTerms   = 30
	minTermLength = 3
	keywordWeight = 60
	noTermsScore  = 50
	sectionWeight = 20
	maxScore      = 100
)

var (
	tokenPattern = regexp.MustCompile(`[a-zA-Z][a-zA-Z\-]+`)

	stopWords = toSet(strings.Fields(`a an the and or of to in for with on at by from is are were was be been
		being as it this that these those i you we they he she them us our your their`))

	resumeSections = []string{"education", "experience", "projects", "skills", "certifications", "achievements"}
)

// Result is the outcome of matching a resume against a job description.
type Result struct {
	Score   int
	Present []string
	Missing []string
}

// Score rates resumeText against jobDesc on a 0-100 scale: keyword overlap
// contributes up to 60 points, resume length 20 and section headings 20.
func Score(resumeText, jobDesc string) Result {
	resumeCounts := keywordCounts(resumeText)
	terms := jobTerms(jobDesc)

	present := make([]string, 0, len(terms))
	missing := make([]string, 0, len(terms))
	for _, term := range terms {
		if resumeCounts[term] > 0 {
			present = append(present, term)
		} else {
			missing = append(missing, term)
		}
	}

	kwScore := noTermsScore
	if len(terms) > 0 {
		kwScore = keywordWeight * len(present) / len(terms)
	}

	score := kwScore + lengthScore(len(strings.Fields(resumeText))) + sectionScore(resumeText)
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}

	return Result{Score: score, Present: present, Missing: missing}
}

func lengthScore(words int) int {
	switch {
	case words >= 250 && words <= 900:
		return 20
	case words >= 150 && words < 250, words > 900 && words <= 1500:
		return 12
	default:
		return 6
	}
}

func sectionScore(resumeText string) int {
	lower := strings.ToLower(resumeText)
	hits := 0
	for _, s := range resumeSections {
		if strings.Contains(lower, s) {
			hits++
		}
	}
	score := hits * sectionWeight / len(resumeSections)
	if score > sectionWeight {
		score = sectionWeight
	}
	return score
}

type termCount struct {
	term  string
	count int
}

// rankedTerms orders tokens by descending frequency; ties keep first-seen order.
func rankedTerms(text string) []termCount {
	index := make(map[string]int)
	var ranked []termCount
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if i, ok := index[tok]; ok {
			ranked[i].count++
			continue
		}
		index[tok] = len(ranked)
		ranked = append(ranked, termCount{term: tok, count: 1})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	return ranked
}

func keywordCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		counts[tok]++
	}
	return counts
}

func jobTerms(jobDesc string) []string {
	ranked := rankedTerms(jobDesc)
	if len(ranked) > candidatePool {
		ranked = ranked[:candidatePool]
	}

	terms := make([]string, 0, maxJobTerms)
	for _, tc := range ranked {
		if _, stop := stopWords[tc.term]; stop || len(tc.term) < minTermLength {
			continue
		}
		terms = append(terms, tc.term)
		if len(terms) == maxJobTerms {
			break
		}
	}
	return terms
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
