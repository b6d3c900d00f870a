package sentiment

import (
	"context"

	analysis "github.com/DomRamond/feeling-whatsapp-app/internal/analysis/sentiment"
)

// Classifier produces one sentiment prediction per message text. It is
// invoked many times per run and must be safe for concurrent use.
type Classifier interface {
	Predict(ctx context.Context, text string) (analysis.Prediction, error)
}

// LexiconClassifier scores messages against the built-in Portuguese lexicon.
// It keeps the service usable without model credentials and backs the tests.
type LexiconClassifier struct{}

// Predict implements Classifier. The lexicon never fails.
func (LexiconClassifier) Predict(_ context.Context, text string) (analysis.Prediction, error) {
	return analysis.Analyze(text), nil
}
