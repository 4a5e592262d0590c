// Package trends derives keywords from an article title and collects the
// sentiment-over-time series for each of them.
package trends

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"git.tdpain.net/codemicro/newsPortal/models"
	"github.com/samber/lo"
)

const (
	minKeywordLength = 3
	stopWord         = "and"
)

// Lookup fetches the trend series for a single word.
type Lookup interface {
	TopicTrends(ctx context.Context, word string) ([]models.TrendPoint, error)
}

// Keywords splits title on whitespace and keeps the lower-cased words that are
// at least three characters long and are not "and". Order and duplicates are
// kept.
func Keywords(title string) []string {
	words := lo.Map(strings.Fields(title), func(word string, _ int) string {
		return strings.ToLower(word)
	})
	return lo.Filter(words, func(word string, _ int) bool {
		return utf8.RuneCountInString(word) >= minKeywordLength && word != stopWord
	})
}

// Collect looks up every keyword of title, one request at a time and in
// keyword order. A failed lookup is logged and its keyword left out; the
// remaining keywords are still looked up. Collect stops early only if ctx is
// done.
func Collect(ctx context.Context, lookup Lookup, title string) []models.KeywordSeries {
	var out []models.KeywordSeries
	for _, keyword := range Keywords(title) {
		if ctx.Err() != nil {
			slog.Debug("trend collection cancelled", "error", ctx.Err(), "title", title)
			break
		}

		points, err := lookup.TopicTrends(ctx, keyword)
		if err != nil {
			slog.Warn("unable to fetch topic trend", "keyword", keyword, "error", err)
			continue
		}

		out = append(out, models.KeywordSeries{Keyword: keyword, Points: points})
	}
	return out
}

// DefaultKeyword is the first keyword with a non-empty series.
func DefaultKeyword(series []models.KeywordSeries) (string, bool) {
	found, ok := lo.Find(series, func(s models.KeywordSeries) bool {
		return len(s.Points) != 0
	})
	return found.Keyword, ok
}

// Select returns the series for keyword, or the default series when keyword
// is empty or unknown.
func Select(series []models.KeywordSeries, keyword string) (models.KeywordSeries, bool) {
	if keyword != "" {
		if found, ok := lo.Find(series, func(s models.KeywordSeries) bool {
			return s.Keyword == keyword
		}); ok {
			return found, true
		}
	}

	def, ok := DefaultKeyword(series)
	if !ok {
		return models.KeywordSeries{}, false
	}
	return Select(series, def)
}

// ChartPoints drops every point whose sentiment is not exactly -1, 0 or 1.
func ChartPoints(points []models.TrendPoint) []models.TrendPoint {
	return lo.Filter(points, func(p models.TrendPoint, _ int) bool {
		return IsChartable(p.SentimentScore)
	})
}

func IsChartable(score float64) bool {
	return score == models.SentimentNegative || score == models.SentimentNeutral || score == models.SentimentPositive
}
