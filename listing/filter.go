package listing

import (
	"fmt"
	"strconv"

	"git.tdpain.net/codemicro/newsPortal/models"
	"github.com/samber/lo"
)

// SentimentFilter selects articles by sentiment score. The zero value matches
// everything.
type SentimentFilter struct {
	score *int
}

// AllSentiments matches every article.
var AllSentiments = SentimentFilter{}

func SentimentFilterFor(score int) SentimentFilter {
	return SentimentFilter{score: &score}
}

// ParseSentimentFilter reads the category view's dropdown value: "all" (or
// empty), "1", "0" or "-1".
func ParseSentimentFilter(raw string) (SentimentFilter, error) {
	if raw == "" || raw == "all" {
		return AllSentiments, nil
	}
	score, err := strconv.Atoi(raw)
	if err != nil || score < models.SentimentNegative || score > models.SentimentPositive {
		return AllSentiments, fmt.Errorf("invalid sentiment filter %q", raw)
	}
	return SentimentFilterFor(score), nil
}

func (f SentimentFilter) IsAll() bool {
	return f.score == nil
}

// String is the inverse of ParseSentimentFilter.
func (f SentimentFilter) String() string {
	if f.score == nil {
		return "all"
	}
	return strconv.Itoa(*f.score)
}

func (f SentimentFilter) Matches(article *models.NewsArticle) bool {
	return f.score == nil || article.SentimentScore == *f.score
}

// FilterBySentiment keeps the articles whose score equals the filter's,
// preserving order.
func FilterBySentiment(articles []*models.NewsArticle, filter SentimentFilter) []*models.NewsArticle {
	if filter.IsAll() {
		return articles
	}
	return lo.Filter(articles, func(article *models.NewsArticle, _ int) bool {
		return filter.Matches(article)
	})
}
