package models

import (
	"encoding/json"
	"math"
)

// TrendPoint is one (date, sentiment) sample of a word's sentiment over time.
type TrendPoint struct {
	Word           string  `json:"word" csv:"word"`
	Date           string  `json:"date" csv:"date"`
	SentimentScore float64 `json:"sentiment_score" csv:"sentiment"`
	ArticlesCount  int     `json:"articles_count" csv:"articles,omitempty"`
}

// UnmarshalJSON accepts both the chart field names (date, sentiment_score)
// and the trend table's own (time_period, sentiment_average).
func (p *TrendPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		Word             string   `json:"word"`
		Date             string   `json:"date"`
		TimePeriod       string   `json:"time_period"`
		SentimentScore   *float64 `json:"sentiment_score"`
		SentimentAverage *float64 `json:"sentiment_average"`
		ArticlesCount    int      `json:"articles_count"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = TrendPoint{
		Word:          raw.Word,
		Date:          raw.Date,
		ArticlesCount: raw.ArticlesCount,
	}
	if p.Date == "" {
		p.Date = raw.TimePeriod
	}
	switch {
	case raw.SentimentScore != nil:
		p.SentimentScore = *raw.SentimentScore
	case raw.SentimentAverage != nil:
		p.SentimentScore = *raw.SentimentAverage
	default:
		// a point without a score never matches a chartable sentiment
		p.SentimentScore = math.NaN()
	}
	return nil
}

// KeywordSeries is the trend series returned for one keyword.
type KeywordSeries struct {
	Keyword string
	Points  []TrendPoint
}
