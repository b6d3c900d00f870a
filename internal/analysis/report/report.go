// Package report computes the read-only projections over a labeled
// transcript: overall distribution, daily trend and per-author ranking. All
// functions are pure and may be recomputed freely.
package report

import (
	"sort"
	"time"

	"github.com/DomRamond/feeling-whatsapp-app/internal/analysis/sentiment"
	model "github.com/DomRamond/feeling-whatsapp-app/internal/model/analysis"
)

// Build computes all three projections in one pass-friendly bundle.
func Build(labeled []model.LabeledMessage) model.Report {
	return model.Report{
		Distribution: Distribution(labeled),
		Daily:        DailyTrend(labeled),
		Authors:      AuthorRanking(labeled),
	}
}

// Distribution counts messages per label.
func Distribution(labeled []model.LabeledMessage) map[sentiment.Label]int {
	counts := make(map[sentiment.Label]int, len(sentiment.Labels()))
	for _, msg := range labeled {
		counts[msg.Sentiment]++
	}
	return counts
}

// Transcript dates are day-first; two- and four-digit years both occur.
var dateLayouts = []string{"2/1/2006", "2/1/06"}

func parseDay(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if day, err := time.Parse(layout, raw); err == nil {
			return day, true
		}
	}
	return time.Time{}, false
}

// DailyTrend returns, per calendar date, the proportion of messages per label
// that day, sorted ascending. Messages whose date cannot be parsed are
// excluded from this projection only.
func DailyTrend(labeled []model.LabeledMessage) []model.DayPoint {
	counts := map[time.Time]map[sentiment.Label]int{}
	for _, msg := range labeled {
		day, ok := parseDay(msg.Date)
		if !ok {
			continue
		}
		if counts[day] == nil {
			counts[day] = map[sentiment.Label]int{}
		}
		counts[day][msg.Sentiment]++
	}

	points := make([]model.DayPoint, 0, len(counts))
	for day, perLabel := range counts {
		points = append(points, model.DayPoint{
			Date:  day,
			Total: sum(perLabel),
			Share: shares(perLabel),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

// AuthorRanking returns per-author label proportions plus total message
// count, sorted by total descending with name as tiebreak for stable output.
func AuthorRanking(labeled []model.LabeledMessage) []model.AuthorStat {
	counts := map[string]map[sentiment.Label]int{}
	for _, msg := range labeled {
		if counts[msg.Author] == nil {
			counts[msg.Author] = map[sentiment.Label]int{}
		}
		counts[msg.Author][msg.Sentiment]++
	}

	stats := make([]model.AuthorStat, 0, len(counts))
	for author, perLabel := range counts {
		stats = append(stats, model.AuthorStat{
			Author: author,
			Total:  sum(perLabel),
			Share:  shares(perLabel),
		})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Total != stats[j].Total {
			return stats[i].Total > stats[j].Total
		}
		return stats[i].Author < stats[j].Author
	})
	return stats
}

func sum(perLabel map[sentiment.Label]int) int {
	total := 0
	for _, n := range perLabel {
		total += n
	}
	return total
}

func shares(perLabel map[sentiment.Label]int) map[sentiment.Label]float64 {
	total := sum(perLabel)
	out := make(map[sentiment.Label]float64, len(perLabel))
	if total == 0 {
		return out
	}
	for label, n := range perLabel {
		out[label] = float64(n) / float64(total)
	}
	return out
}
