package sentiment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	analysis "github.com/DomRamond/feeling-whatsapp-app/internal/analysis/sentiment"
	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/transcript"
)

// scriptedClassifier fails on texts listed in failOn and otherwise labels
// everything positive.
type scriptedClassifier struct {
	failOn map[string]bool
}

func (c scriptedClassifier) Predict(_ context.Context, text string) (analysis.Prediction, error) {
	if c.failOn[text] {
		return analysis.Prediction{}, errors.New("model unavailable")
	}
	return analysis.Prediction{
		Label:  analysis.Positive,
		Probas: map[analysis.Label]float64{analysis.Positive: 0.9, analysis.Neutral: 0.1},
	}, nil
}

func messages(n int) []transcript.Message {
	msgs := make([]transcript.Message, n)
	for i := range msgs {
		msgs[i] = transcript.Message{Author: "Alice", Text: fmt.Sprintf("mensagem %d", i)}
	}
	return msgs
}

func TestLabelAllFailureYieldsNeutralDefault(t *testing.T) {
	msgs := messages(3)
	labeler := NewLabeler(scriptedClassifier{failOn: map[string]bool{"mensagem 1": true}}, 1)

	labeled := labeler.LabelAll(context.Background(), msgs, nil)
	if len(labeled) != 3 {
		t.Fatalf("expected 3 labeled messages, got %d", len(labeled))
	}
	if labeled[1].Sentiment != analysis.Neutral {
		t.Fatalf("failed message should be NEU, got %s", labeled[1].Sentiment)
	}
	if labeled[1].ProbNEU != 1 || labeled[1].ProbPOS != 0 || labeled[1].ProbNEG != 0 {
		t.Fatalf("expected full neutral mass, got %+v", labeled[1])
	}
	// Failure must not stop later messages.
	if labeled[2].Sentiment != analysis.Positive {
		t.Fatalf("subsequent message not processed: %+v", labeled[2])
	}
}

func TestLabelAllPreservesOrderWithConcurrency(t *testing.T) {
	msgs := messages(50)
	labeler := NewLabeler(scriptedClassifier{}, 8)

	labeled := labeler.LabelAll(context.Background(), msgs, nil)
	for i, lm := range labeled {
		if lm.Text != fmt.Sprintf("mensagem %d", i) {
			t.Fatalf("order broken at %d: %q", i, lm.Text)
		}
	}
}

func TestLabelAllReportsProgress(t *testing.T) {
	msgs := messages(5)
	labeler := NewLabeler(scriptedClassifier{}, 2)

	final := 0
	labeler.LabelAll(context.Background(), msgs, func(done, total int) {
		if total != 5 {
			t.Fatalf("unexpected total %d", total)
		}
		if done > final {
			final = done
		}
	})
	if final != 5 {
		t.Fatalf("expected progress to reach 5, got %d", final)
	}
}

func TestLabelAllEmptyInput(t *testing.T) {
	labeler := NewLabeler(scriptedClassifier{}, 4)
	if labeled := labeler.LabelAll(context.Background(), nil, nil); len(labeled) != 0 {
		t.Fatalf("expected empty result, got %d", len(labeled))
	}
}
