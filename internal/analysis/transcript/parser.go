package transcript

import (
	"regexp"
	"strings"
)

// Message is one parsed transcript entry. Date and Time keep the exact text
// found in the export; day-first interpretation happens downstream when a
// projection needs a calendar date.
type Message struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Author string `json:"author"`
	Text   string `json:"text"`
}

// Header patterns tried in priority order, first match wins. Each captures
// date, time, author and message start.
var headerPatterns = []*regexp.Regexp{
	// iOS export: [12/05/2023, 09:15:42] Alice: Bom dia
	regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4})[,\s]+(\d{1,2}:\d{2}(?::\d{2})?)\]\s*(.*?):\s*(.*)$`),
	// Android export: 12/05/2023, 09:15 - Alice: Bom dia (dash or en-dash)
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4})[\s,]*(\d{1,2}:\d{2})\s*[-–]\s*(.*?):\s*(.*)$`),
}

// Parse turns decoded transcript lines into ordered messages. Lines that match
// no header pattern continue the previous message (multi-line pastes); a
// continuation with no open message is dropped. Parse never fails: when
// nothing matches it returns an empty slice.
func Parse(lines []string) []Message {
	var msgs []Message
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if msg, ok := matchHeader(line); ok {
			msgs = append(msgs, msg)
			continue
		}

		if len(msgs) == 0 {
			continue
		}
		msgs[len(msgs)-1].Text += " " + line
	}
	return msgs
}

func matchHeader(line string) (Message, bool) {
	for _, pattern := range headerPatterns {
		groups := pattern.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		return Message{
			Date:   strings.TrimSpace(groups[1]),
			Time:   strings.TrimSpace(groups[2]),
			Author: strings.TrimSpace(groups[3]),
			Text:   strings.TrimSpace(groups[4]),
		}, true
	}
	return Message{}, false
}
