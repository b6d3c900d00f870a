package sentiment

// Label is one of the closed sentiment classes.
type Label string

const (
	Positive Label = "POS"
	Neutral  Label = "NEU"
	Negative Label = "NEG"
)

// Labels returns the closed label set in display order.
func Labels() []Label {
	return []Label{Positive, Neutral, Negative}
}

// ParseLabel maps classifier output to a known label.
func ParseLabel(raw string) (Label, bool) {
	switch Label(raw) {
	case Positive, Neutral, Negative:
		return Label(raw), true
	default:
		return "", false
	}
}

// Prediction carries the chosen label plus the probability mass per class.
// Probabilities sum to at most 1.
type Prediction struct {
	Label  Label
	Probas map[Label]float64
}

// NeutralDefault is the recovery prediction substituted when inference fails
// for a single message, so one bad message never aborts a batch.
func NeutralDefault() Prediction {
	return Prediction{
		Label:  Neutral,
		Probas: map[Label]float64{Positive: 0, Neutral: 1, Negative: 0},
	}
}
