package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	analysis "github.com/DomRamond/feeling-whatsapp-app/internal/analysis/sentiment"
)

// Config controls the model-backed classifier.
type Config struct {
	// Language of the transcript, passed to the model so the pretrained
	// classifier judges idiom correctly ("pt" in the default deployment).
	Language string
	// MaxChars truncates message text before inference. Zero disables.
	MaxChars int
	// Timeout bounds a single Predict call. Zero disables.
	Timeout time.Duration
}

// LLMClassifier asks a pretrained chat model for a strict-JSON sentiment
// verdict per message.
type LLMClassifier struct {
	chain    compose.Runnable[map[string]any, *schema.Message]
	language string
	maxChars int
	timeout  time.Duration
}

// NewLLMClassifier compiles the prompt/model chain. A nil model or a compile
// failure is fatal for startup, not for individual messages.
func NewLLMClassifier(ctx context.Context, chatModel model.ChatModel, cfg Config) (*LLMClassifier, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}

	language := strings.TrimSpace(cfg.Language)
	if language == "" {
		language = "pt"
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(classifierSystemPrompt),
		schema.UserMessage(classifierUserPrompt),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile sentiment classifier chain: %w", err)
	}

	return &LLMClassifier{
		chain:    runnable,
		language: language,
		maxChars: cfg.MaxChars,
		timeout:  cfg.Timeout,
	}, nil
}

// Predict implements Classifier. Errors are returned to the caller, which
// substitutes the neutral default; nothing here aborts a batch.
func (c *LLMClassifier) Predict(ctx context.Context, text string) (analysis.Prediction, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg, err := c.chain.Invoke(ctx, map[string]any{
		"language": c.language,
		"message":  truncate(text, c.maxChars),
	})
	if err != nil {
		return analysis.Prediction{}, fmt.Errorf("classifier invoke: %w", err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return analysis.Prediction{}, errors.New("empty classifier response")
	}

	return parseClassifierOutput(msg.Content)
}

type classifierPayload struct {
	Label string  `json:"label"`
	POS   float64 `json:"pos"`
	NEU   float64 `json:"neu"`
	NEG   float64 `json:"neg"`
}

// parseClassifierOutput tolerates prose around the JSON object by slicing
// from the first "{" to the last "}".
func parseClassifierOutput(content string) (analysis.Prediction, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return analysis.Prediction{}, errors.New("missing json object in classifier output")
	}

	var payload classifierPayload
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &payload); err != nil {
		return analysis.Prediction{}, fmt.Errorf("parse classifier output: %w", err)
	}

	label, ok := analysis.ParseLabel(strings.ToUpper(strings.TrimSpace(payload.Label)))
	if !ok {
		return analysis.Prediction{}, fmt.Errorf("unknown sentiment label %q", payload.Label)
	}

	probas := map[analysis.Label]float64{
		analysis.Positive: clampProba(payload.POS),
		analysis.Neutral:  clampProba(payload.NEU),
		analysis.Negative: clampProba(payload.NEG),
	}
	normalizeProbas(probas)

	return analysis.Prediction{Label: label, Probas: probas}, nil
}

func clampProba(val float64) float64 {
	if val < 0 {
		return 0
	}
	if val > 1 {
		return 1
	}
	return val
}

// normalizeProbas rescales mass that sums above 1; sums below 1 are left
// alone, the contract only caps the total.
func normalizeProbas(probas map[analysis.Label]float64) {
	total := 0.0
	for _, p := range probas {
		total += p
	}
	if total <= 1 {
		return
	}
	for label, p := range probas {
		probas[label] = p / total
	}
}

func truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	return string(runes[:maxChars])
}

const classifierSystemPrompt = "You are a sentiment classifier for short chat messages written in {language}. " +
	"Classify the overall sentiment of each message as POS (positive), NEU (neutral) or NEG (negative). " +
	"Reply with a single JSON object and nothing else. Fields: label (one of POS/NEU/NEG), " +
	"pos, neu and neg (class probabilities between 0 and 1 that sum to 1). " +
	"Slang, emoji and typos are common; judge the intent, not the spelling."

const classifierUserPrompt = "Message:\n{message}\n\nReturn the JSON object."
