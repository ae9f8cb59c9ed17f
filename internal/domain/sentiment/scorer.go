package sentiment

import "strings"

// Label enum
type Label string

const (
	LabelPositive Label = "Positive"
	LabelNegative Label = "Negative"
	LabelNeutral  Label = "Neutral"
)

// LabelFor derives the label from the sign of the polarity score.
// Exact zero is Neutral, there is no threshold band.
func LabelFor(score float64) Label {
	switch {
	case score > 0:
		return LabelPositive
	case score < 0:
		return LabelNegative
	default:
		return LabelNeutral
	}
}

// Score computes the polarity of text in [-1,1] plus its label.
// Pure and deterministic: empty or unscored text yields 0.0 / Neutral.
func Score(text string) (float64, Label) {
	tokens := tokenize(text)

	var sum float64
	var matched int
	negated := false
	for _, tok := range tokens {
		if _, ok := negators[tok]; ok {
			negated = true
			continue
		}
		pol, ok := lexicon[tok]
		if !ok {
			negated = false
			continue
		}
		if negated {
			// negation dampens and flips, it does not fully invert
			pol *= -0.5
			negated = false
		}
		sum += pol
		matched++
	}
	if matched == 0 {
		return 0.0, LabelNeutral
	}

	score := sum / float64(matched)
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}
	return score, LabelFor(score)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9') && r != '\''
	})
}
