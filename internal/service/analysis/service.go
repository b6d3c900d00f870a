package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/report"
	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/transcript"
	"github.com/DomRamond/feeling-whatsapp-app/internal/encoding"
	model "github.com/DomRamond/feeling-whatsapp-app/internal/model/analysis"
	sentimentservice "github.com/DomRamond/feeling-whatsapp-app/internal/service/sentiment"
)

var (
	// ErrNoMessages means parsing recognized nothing; the upload is likely
	// not a WhatsApp chat export.
	ErrNoMessages = errors.New("no messages recognized in transcript")
	// ErrAllFiltered means every parsed message was a system notice or too
	// short to classify.
	ErrAllFiltered = errors.New("no messages left after filtering")
	// ErrNotFound reports an unknown analysis id.
	ErrNotFound = errors.New("analysis not found")
)

// Options tunes the pipeline around the classifier.
type Options struct {
	FilterEnabled bool
	Filter        transcript.FilterOptions
}

// DefaultOptions enables the hardening filter pass.
func DefaultOptions() Options {
	return Options{FilterEnabled: true, Filter: transcript.DefaultFilterOptions()}
}

// Service runs the full transcript pipeline, tracks run progress and retains
// finished analyses for later retrieval.
type Service struct {
	labeler *sentimentservice.Labeler
	store   model.Store
	opts    Options

	mu       sync.RWMutex
	progress map[string]model.Progress
}

// NewService wires the pipeline around an already-built labeler.
func NewService(labeler *sentimentservice.Labeler, store model.Store, opts Options) *Service {
	return &Service{
		labeler:  labeler,
		store:    store,
		opts:     opts,
		progress: make(map[string]model.Progress),
	}
}

// Run executes decode -> parse -> filter -> label -> aggregate for one
// upload. The id is client-suppliable so a progress watcher can attach while
// the run is still labeling; an empty id gets a fresh uuid. All state created
// here is per-run, so concurrent uploads never share mutable data.
func (s *Service) Run(ctx context.Context, id, fileName string, raw []byte) (model.Analysis, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	s.setProgress(id, model.Progress{Stage: model.StageDecoding})

	resolved := encoding.Resolve(raw)

	s.setProgress(id, model.Progress{Stage: model.StageParsing})
	msgs := transcript.Parse(strings.Split(resolved.Text, "\n"))
	if len(msgs) == 0 {
		s.setProgress(id, model.Progress{Stage: model.StageFailed})
		return model.Analysis{}, ErrNoMessages
	}

	if s.opts.FilterEnabled {
		msgs = transcript.Filter(msgs, s.opts.Filter)
		if len(msgs) == 0 {
			s.setProgress(id, model.Progress{Stage: model.StageFailed})
			return model.Analysis{}, ErrAllFiltered
		}
	}

	s.setProgress(id, model.Progress{Stage: model.StageLabeling, Total: len(msgs)})
	labeled := s.labeler.LabelAll(ctx, msgs, func(done, total int) {
		s.setProgress(id, model.Progress{Stage: model.StageLabeling, Done: done, Total: total})
	})

	result := model.Analysis{
		ID:        id,
		FileName:  fileName,
		Charset:   resolved.Charset,
		CreatedAt: time.Now().UTC(),
		Messages:  labeled,
		Report:    report.Build(labeled),
	}
	s.store.Put(result)
	s.setProgress(id, model.Progress{Stage: model.StageDone, Done: len(labeled), Total: len(labeled)})
	return result, nil
}

// Find retrieves a finished analysis.
func (s *Service) Find(id string) (model.Analysis, error) {
	a, ok := s.store.FindByID(id)
	if !ok {
		return model.Analysis{}, ErrNotFound
	}
	return a, nil
}

// Progress reports the current stage of a run.
func (s *Service) Progress(id string) (model.Progress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.progress[id]
	return p, ok
}

func (s *Service) setProgress(id string, p model.Progress) {
	s.mu.Lock()
	s.progress[id] = p
	s.mu.Unlock()
}
