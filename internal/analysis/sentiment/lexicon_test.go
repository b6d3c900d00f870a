package sentiment

import "testing"

func TestAnalyzePositiveMessage(t *testing.T) {
	pred := Analyze("Bom dia pessoal! Adorei a festa, obrigado!")
	if pred.Label != Positive {
		t.Fatalf("expected POS, got %s", pred.Label)
	}
	if pred.Probas[Positive] <= pred.Probas[Negative] {
		t.Fatalf("positive mass should dominate: %+v", pred.Probas)
	}
}

func TestAnalyzeNegativeMessage(t *testing.T) {
	pred := Analyze("que absurdo, estou com muita raiva disso")
	if pred.Label != Negative {
		t.Fatalf("expected NEG, got %s", pred.Label)
	}
}

func TestAnalyzeNegatedPositive(t *testing.T) {
	pred := Analyze("não gostei do resultado")
	if pred.Label != Negative {
		t.Fatalf("negation should flip polarity, got %s", pred.Label)
	}
}

func TestAnalyzeNeutralMessage(t *testing.T) {
	pred := Analyze("a reunião começa às 15h na sala 2")
	if pred.Label != Neutral {
		t.Fatalf("expected NEU, got %s", pred.Label)
	}
	if pred.Probas[Neutral] != 1 {
		t.Fatalf("unmatched text should carry full neutral mass: %+v", pred.Probas)
	}
}

func TestAnalyzeProbabilitiesSumToOne(t *testing.T) {
	for _, text := range []string{"", "adorei!", "péssimo dia", "oi"} {
		pred := Analyze(text)
		sum := 0.0
		for _, p := range pred.Probas {
			sum += p
		}
		if sum < 0.999 || sum > 1.001 {
			t.Fatalf("probabilities for %q sum to %f", text, sum)
		}
	}
}

func TestNeutralDefaultShape(t *testing.T) {
	pred := NeutralDefault()
	if pred.Label != Neutral {
		t.Fatalf("expected NEU, got %s", pred.Label)
	}
	if pred.Probas[Neutral] != 1 || pred.Probas[Positive] != 0 || pred.Probas[Negative] != 0 {
		t.Fatalf("unexpected probability mass: %+v", pred.Probas)
	}
}
