package sentiment

import (
	"testing"

	analysis "github.com/DomRamond/feeling-whatsapp-app/internal/analysis/sentiment"
)

func TestParseClassifierOutput(t *testing.T) {
	pred, err := parseClassifierOutput(`{"label":"POS","pos":0.8,"neu":0.15,"neg":0.05}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Label != analysis.Positive {
		t.Fatalf("expected POS, got %s", pred.Label)
	}
	if pred.Probas[analysis.Positive] != 0.8 {
		t.Fatalf("unexpected POS mass: %f", pred.Probas[analysis.Positive])
	}
}

func TestParseClassifierOutputWithSurroundingProse(t *testing.T) {
	content := "Sure! Here is the result:\n{\"label\":\"neg\",\"pos\":0.1,\"neu\":0.2,\"neg\":0.7}\nDone."
	pred, err := parseClassifierOutput(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Label != analysis.Negative {
		t.Fatalf("expected NEG, got %s", pred.Label)
	}
}

func TestParseClassifierOutputRejectsUnknownLabel(t *testing.T) {
	if _, err := parseClassifierOutput(`{"label":"MEH","pos":0,"neu":1,"neg":0}`); err == nil {
		t.Fatal("expected error for unknown label")
	}
}

func TestParseClassifierOutputRejectsMissingJSON(t *testing.T) {
	if _, err := parseClassifierOutput("no object here"); err == nil {
		t.Fatal("expected error for missing json")
	}
}

func TestParseClassifierOutputCapsProbabilityMass(t *testing.T) {
	pred, err := parseClassifierOutput(`{"label":"POS","pos":0.9,"neu":0.9,"neg":0.9}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := 0.0
	for _, p := range pred.Probas {
		sum += p
	}
	if sum > 1.0001 {
		t.Fatalf("probability mass above 1: %f", sum)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("até amanhã", 5); got != "até a" {
		t.Fatalf("rune truncation wrong: %q", got)
	}
	if got := truncate("oi", 5); got != "oi" {
		t.Fatalf("short text must pass through: %q", got)
	}
	if got := truncate("oi", 0); got != "oi" {
		t.Fatalf("zero limit must disable truncation: %q", got)
	}
}
