package sentiment

import "strings"

// Keyword buckets tuned for pt-BR group chats, with the English terms that
// commonly leak into them.
var keywordBuckets = map[Label][]string{
	Positive: {
		"bom dia", "boa noite", "boa tarde", "obrigado", "obrigada", "valeu", "parabéns",
		"ótimo", "ótima", "otimo", "excelente", "maravilha", "maravilhoso", "perfeito",
		"adorei", "amei", "gostei", "feliz", "alegria", "sucesso", "lindo", "linda",
		"top", "show", "massa", "legal", "haha", "kkk", "rsrs", "❤", "😍", "😂", "🎉",
		"great", "awesome", "thanks", "love", "nice",
	},
	Negative: {
		"triste", "chateado", "chateada", "raiva", "ódio", "odio", "péssimo", "pessimo",
		"horrível", "horrivel", "terrível", "terrivel", "ruim", "problema", "briga",
		"absurdo", "vergonha", "decepção", "decepcao", "decepcionado", "cansado de",
		"não aguento", "nao aguento", "infelizmente", "lamento", "sinto muito", "perdi",
		"morreu", "doente", "😡", "😢", "😭", "💔",
		"bad", "terrible", "hate", "awful", "sad",
	},
}

// Negation markers flip a positive hit into a negative one when they precede
// the matched keyword ("não gostei").
var negationMarkers = []string{"não ", "nao ", "nunca ", "jamais ", "nem "}

const hitWeight = 3

// Analyze scores text against the lexicon and returns a prediction with
// pseudo-probabilities derived from the bucket scores. Empty or unmatched
// text yields the neutral default.
func Analyze(text string) Prediction {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return NeutralDefault()
	}

	scores := map[Label]int{}
	for label, keywords := range keywordBuckets {
		for _, word := range keywords {
			idx := strings.Index(normalized, word)
			if idx < 0 {
				continue
			}
			if label == Positive && isNegated(normalized, idx) {
				scores[Negative] += hitWeight
				continue
			}
			scores[label] += hitWeight
		}
	}

	// Exclamation marks amplify whichever polarity is already leading.
	if exclamations := strings.Count(text, "!"); exclamations > 0 {
		if scores[Positive] > scores[Negative] {
			scores[Positive] += exclamations
		} else if scores[Negative] > scores[Positive] {
			scores[Negative] += exclamations
		}
	}

	pos, neg := scores[Positive], scores[Negative]
	if pos == 0 && neg == 0 {
		return NeutralDefault()
	}

	// A fixed neutral floor keeps single weak hits from looking certain.
	const neutralFloor = 2
	total := float64(pos + neg + neutralFloor)
	probas := map[Label]float64{
		Positive: float64(pos) / total,
		Neutral:  neutralFloor / total,
		Negative: float64(neg) / total,
	}

	label := Neutral
	switch {
	case pos > neg:
		label = Positive
	case neg > pos:
		label = Negative
	}
	return Prediction{Label: label, Probas: probas}
}

func isNegated(text string, idx int) bool {
	for _, marker := range negationMarkers {
		start := idx - len(marker)
		if start >= 0 && text[start:idx] == marker {
			return true
		}
	}
	return false
}
