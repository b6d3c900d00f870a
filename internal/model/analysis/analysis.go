package analysis

import (
	"time"

	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/sentiment"
	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/transcript"
)

// LabeledMessage is a parsed transcript message plus its sentiment verdict.
// Immutable once created.
type LabeledMessage struct {
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Author    string          `json:"author"`
	Text      string          `json:"text"`
	Sentiment sentiment.Label `json:"sentiment"`
	ProbPOS   float64         `json:"probPos"`
	ProbNEU   float64         `json:"probNeu"`
	ProbNEG   float64         `json:"probNeg"`
}

// NewLabeledMessage joins a parsed message with its prediction.
func NewLabeledMessage(msg transcript.Message, pred sentiment.Prediction) LabeledMessage {
	return LabeledMessage{
		Date:      msg.Date,
		Time:      msg.Time,
		Author:    msg.Author,
		Text:      msg.Text,
		Sentiment: pred.Label,
		ProbPOS:   pred.Probas[sentiment.Positive],
		ProbNEU:   pred.Probas[sentiment.Neutral],
		ProbNEG:   pred.Probas[sentiment.Negative],
	}
}

// DayPoint is the per-day slice of the sentiment trend. Share values for one
// day sum to 1.
type DayPoint struct {
	Date  time.Time                 `json:"date"`
	Total int                       `json:"total"`
	Share map[sentiment.Label]float64 `json:"share"`
}

// AuthorStat summarises one participant. Share values sum to 1 across the
// labels observed for that author.
type AuthorStat struct {
	Author string                      `json:"author"`
	Total  int                         `json:"total"`
	Share  map[sentiment.Label]float64 `json:"share"`
}

// Report bundles the three read-only projections computed over a labeled run.
type Report struct {
	Distribution map[sentiment.Label]int `json:"distribution"`
	Daily        []DayPoint              `json:"daily"`
	Authors      []AuthorStat            `json:"authors"`
}

// Analysis is the retained result of one transcript run.
type Analysis struct {
	ID        string           `json:"id"`
	FileName  string           `json:"fileName"`
	Charset   string           `json:"charset"`
	CreatedAt time.Time        `json:"createdAt"`
	Messages  []LabeledMessage `json:"-"`
	Report    Report           `json:"report"`
}

// Progress reports how far a run has advanced, for the live progress feed.
type Progress struct {
	Stage string `json:"stage"`
	Done  int    `json:"done"`
	Total int    `json:"total"`
}

// Progress stages.
const (
	StageDecoding = "decoding"
	StageParsing  = "parsing"
	StageLabeling = "labeling"
	StageDone     = "done"
	StageFailed   = "failed"
)
