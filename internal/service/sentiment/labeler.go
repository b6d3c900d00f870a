package sentiment

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	analysis "github.com/DomRamond/feeling-whatsapp-app/internal/analysis/sentiment"
	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/transcript"
	model "github.com/DomRamond/feeling-whatsapp-app/internal/model/analysis"
)

// Labeler runs a classifier over a parsed transcript. Per-message failures
// are isolated behind the neutral default so one bad message never aborts a
// run.
type Labeler struct {
	classifier Classifier
	concurrency int
}

// NewLabeler wraps a classifier. Concurrency below 1 means sequential.
func NewLabeler(classifier Classifier, concurrency int) *Labeler {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Labeler{classifier: classifier, concurrency: concurrency}
}

// LabelAll classifies every message. Classifier calls are independent and may
// run in parallel up to the configured limit; results are written by index so
// the returned slice always preserves transcript order. onProgress, when not
// nil, is called after each finished message.
func (l *Labeler) LabelAll(ctx context.Context, msgs []transcript.Message, onProgress func(done, total int)) []model.LabeledMessage {
	labeled := make([]model.LabeledMessage, len(msgs))

	var group errgroup.Group
	group.SetLimit(l.concurrency)

	var mu sync.Mutex
	completed := 0

	for i, msg := range msgs {
		i, msg := i, msg
		group.Go(func() error {
			pred, err := l.classifier.Predict(ctx, msg.Text)
			if err != nil {
				log.Printf("[sentiment] message %d: inference failed, using neutral default: %v", i, err)
				pred = analysis.NeutralDefault()
			}
			labeled[i] = model.NewLabeledMessage(msg, pred)

			if onProgress != nil {
				mu.Lock()
				completed++
				done := completed
				mu.Unlock()
				onProgress(done, len(msgs))
			}
			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = group.Wait()
	return labeled
}
