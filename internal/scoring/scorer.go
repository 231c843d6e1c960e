package scoring

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultLengthNorm is the character count that earns full length credit
	// when a question does not set its own normalization.
	DefaultLengthNorm = 400

	// minEvaluableLength is the shortest answer worth scoring at all.
	minEvaluableLength = 10

	lengthWeight  = 0.6
	keywordWeight = 0.4
)

// Result is the scorer output returned to clients and snapshotted onto
// stored answers. Score is an integer percentage.
type Result struct {
	Score      int      `json:"score"`
	Feedback   []string `json:"feedback"`
	Confidence float64  `json:"confidence"`
}

// Input carries one free-text answer plus the scoring hints from its
// question definition.
type Input struct {
	AssessmentID string
	QuestionID   string
	Text         string
	Keywords     []string
	LengthNorm   int
}

// Heuristic grades a free-text answer by length and keyword coverage. The
// length component is capped at 1 and weighted 0.6; the keyword hit ratio
// is weighted 0.4. With no keywords configured the length component carries
// the full weight. The same formula backs both the API endpoint and the
// fallback path when the remote grader is unavailable.
func Heuristic(in Input) Result {
	text := strings.TrimSpace(in.Text)
	length := utf8.RuneCountInString(text)

	if length < minEvaluableLength {
		return Result{
			Score:      0,
			Feedback:   []string{"Insufficient content to evaluate. Please provide a fuller answer."},
			Confidence: 0.9,
		}
	}

	norm := in.LengthNorm
	if norm <= 0 {
		norm = DefaultLengthNorm
	}
	lengthComponent := math.Min(1, float64(length)/float64(norm))

	lower := strings.ToLower(text)
	matched := 0
	missing := make([]string, 0, len(in.Keywords))
	for _, keyword := range in.Keywords {
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			matched++
		} else {
			missing = append(missing, keyword)
		}
	}
	total := matched + len(missing)

	var weighted float64
	var keywordRatio float64
	if total == 0 {
		weighted = lengthComponent
	} else {
		keywordRatio = float64(matched) / float64(total)
		weighted = lengthWeight*lengthComponent + keywordWeight*keywordRatio
	}

	feedback := make([]string, 0, 2)
	if lengthComponent >= 1 {
		feedback = append(feedback, "Good level of detail.")
	} else {
		feedback = append(feedback, "The answer could be more detailed.")
	}
	if total > 0 {
		if len(missing) == 0 {
			feedback = append(feedback, "Covers all expected topics.")
		} else {
			feedback = append(feedback, fmt.Sprintf("Consider addressing: %s.", strings.Join(missing, ", ")))
		}
	}

	confidence := 0.4 + 0.3*lengthComponent + 0.3*keywordRatio
	if total == 0 {
		// Without keywords the heuristic has less to go on.
		confidence = 0.3 + 0.3*lengthComponent
	}
	confidence = math.Round(confidence*100) / 100

	return Result{
		Score:      int(math.Round(weighted * 100)),
		Feedback:   feedback,
		Confidence: confidence,
	}
}

// Clamp forces a result into the documented ranges. Remote grader output
// passes through here before being trusted.
func Clamp(r Result) Result {
	if r.Score < 0 {
		r.Score = 0
	}
	if r.Score > 100 {
		r.Score = 100
	}
	if r.Confidence < 0 || math.IsNaN(r.Confidence) {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
	if r.Feedback == nil {
		r.Feedback = []string{}
	}
	return r
}
