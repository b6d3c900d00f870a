package transcript

import "strings"

// FilterOptions controls the hardening pass applied after parsing.
type FilterOptions struct {
	DropSystemNotices bool
	// MinTextLength drops messages shorter than this many runes. Zero
	// disables the length check.
	MinTextLength int
}

// DefaultFilterOptions drops platform notices and near-empty messages.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{DropSystemNotices: true, MinTextLength: 3}
}

// Notices generated by the platform itself rather than a participant, in the
// pt-BR and English export wordings. Matched case-insensitively as substrings.
var systemNoticeKeywords = []string{
	"criptografia de ponta a ponta",
	"end-to-end encrypted",
	"<mídia oculta>",
	"mídia omitida",
	"<media omitted>",
	"criou o grupo",
	"created group",
	"adicionou você",
	"added you",
	"entrou usando o link",
	"joined using this group's invite link",
	"saiu do grupo",
	"left the group",
	"removeu você",
	"mudou o nome do grupo",
	"changed the subject",
	"mudou a descrição do grupo",
	"changed the group description",
}

// Filter removes system notices and messages below the minimum length. The
// transcript order of surviving messages is preserved.
func Filter(msgs []Message, opts FilterOptions) []Message {
	out := make([]Message, 0, len(msgs))
	for _, msg := range msgs {
		if opts.MinTextLength > 0 && len([]rune(msg.Text)) < opts.MinTextLength {
			continue
		}
		if opts.DropSystemNotices && isSystemNotice(msg.Text) {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func isSystemNotice(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range systemNoticeKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
