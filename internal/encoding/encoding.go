// Package encoding turns uploaded transcript bytes into text on a best-effort
// basis. pt-BR WhatsApp exports are frequently Latin-1 while claiming UTF-8,
// so detection feeds an ordered candidate chain whose terminal step cannot
// fail.
package encoding

import (
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
)

// Result is the decoded transcript plus the charset that produced it.
type Result struct {
	Text    string
	Charset string
}

const (
	fallbackCharset = "ISO-8859-1"
	// chardet reports confidence on a 0-100 scale; below this the detector
	// is guessing and the locale fallback is the better bet.
	minimumConfidence = 40
)

// Resolve decodes raw bytes. It never fails: candidates are tried in
// priority order and the final Latin-1 step accepts any byte sequence.
func Resolve(raw []byte) Result {
	raw = stripBOM(raw)
	for _, charset := range candidateChain(detectCharset(raw)) {
		if text, ok := decode(raw, charset); ok {
			return Result{Text: text, Charset: charset}
		}
	}
	// Latin-1 maps every byte to a code point; this step cannot fail.
	text, _ := decode(raw, fallbackCharset)
	return Result{Text: text, Charset: fallbackCharset}
}

func detectCharset(raw []byte) string {
	best, err := chardet.NewTextDetector().DetectBest(raw)
	if err != nil || best == nil || best.Confidence < minimumConfidence {
		return fallbackCharset
	}
	return best.Charset
}

// candidateChain puts the detected charset first and ends with the charsets
// that decode anything.
func candidateChain(detected string) []string {
	chain := []string{detected, "UTF-8", "windows-1252", fallbackCharset}
	seen := make(map[string]bool, len(chain))
	out := chain[:0]
	for _, charset := range chain {
		key := strings.ToLower(charset)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, charset)
	}
	return out
}

func decode(raw []byte, charset string) (string, bool) {
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "ascii":
		if !utf8.Valid(raw) {
			return "", false
		}
		return string(raw), true
	case "windows-1252":
		return decodeCharmap(raw, charmap.Windows1252)
	case "iso-8859-1", "latin-1", "latin1":
		return decodeCharmap(raw, charmap.ISO8859_1)
	case "iso-8859-15":
		return decodeCharmap(raw, charmap.ISO8859_15)
	default:
		// Charsets the fallback chain does not cover (UTF-16 variants,
		// CJK encodings chardet sometimes reports) fall through to the
		// next candidate.
		return "", false
	}
}

func decodeCharmap(raw []byte, cm *charmap.Charmap) (string, bool) {
	decoded, err := cm.NewDecoder().Bytes(raw)
	if err != nil {
		return "", false
	}
	return string(decoded), true
}

func stripBOM(raw []byte) []byte {
	if len(raw) >= 3 && raw[0] == 0xEF && raw[1] == 0xBB && raw[2] == 0xBF {
		return raw[3:]
	}
	return raw
}
