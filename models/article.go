package models

import (
	"encoding/json"
	"strings"
)

// Sentiment scores as assigned by the upstream analysis.
const (
	SentimentNegative = -1
	SentimentNeutral  = 0
	SentimentPositive = 1
)

// NewsArticle is a scraped and translated news item.
type NewsArticle struct {
	ID                int               `json:"id"`
	Source            string            `json:"source"`
	Category          string            `json:"category"`
	Link              string            `json:"link"`
	OriginalTitle     string            `json:"original_title"`
	TranslatedTitle   string            `json:"translated_title"`
	OriginalContent   string            `json:"original_content"`
	TranslatedContent string            `json:"translated_content"`
	ImageSource       string            `json:"image_source"`
	SentimentScore    int               `json:"sentiment_score"`
	Timestamp         Timestamp         `json:"en_timestamp"`
	Date              Timestamp         `json:"date"`
	Likes             []json.RawMessage `json:"likes"`
	Views             int               `json:"view"`
	RawTags           string            `json:"tags"`
	Comments          []*Comment        `json:"news_article_comments"`
	LegacyComments    []*Comment        `json:"comments"`
}

// Normalize fills the fields the API leaves out depending on serializer depth.
func (a *NewsArticle) Normalize() {
	if len(a.Comments) == 0 && len(a.LegacyComments) != 0 {
		a.Comments = a.LegacyComments
	}
	a.LegacyComments = nil
	if a.Date.IsZero() {
		a.Date = a.Timestamp
	}
}

// DisplayTitle returns the translated or original title, falling back to
// whichever one is set.
func (a *NewsArticle) DisplayTitle(translated bool) string {
	if translated {
		if a.TranslatedTitle != "" {
			return a.TranslatedTitle
		}
		return a.OriginalTitle
	}
	if a.OriginalTitle != "" {
		return a.OriginalTitle
	}
	return a.TranslatedTitle
}

// DisplayContent is DisplayTitle for the article body.
func (a *NewsArticle) DisplayContent(translated bool) string {
	if translated {
		if a.TranslatedContent != "" {
			return a.TranslatedContent
		}
		return a.OriginalContent
	}
	if a.OriginalContent != "" {
		return a.OriginalContent
	}
	return a.TranslatedContent
}

func (a *NewsArticle) LikeCount() int {
	return len(a.Likes)
}

func (a *NewsArticle) Tags() []string {
	return splitTags(a.RawTags)
}

func (a *NewsArticle) SentimentLabel() string {
	return SentimentLabel(a.SentimentScore)
}

// SentimentLabel names a sentiment score. Anything that is not positive or
// negative is reported as neutral.
func SentimentLabel(score int) string {
	switch score {
	case SentimentPositive:
		return "Positive"
	case SentimentNegative:
		return "Negative"
	default:
		return "Neutral"
	}
}

// Post is a blog post written through the author dashboard.
type Post struct {
	ID          int               `json:"id"`
	Title       string            `json:"title"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Image       string            `json:"image"`
	RawTags     string            `json:"tags"`
	Status      string            `json:"status"`
	Views       int               `json:"view"`
	Likes       []json.RawMessage `json:"likes"`
	Date        Timestamp         `json:"date"`
	Category    *Category         `json:"category"`
	User        *User             `json:"user"`
	Profile     *Profile          `json:"profile"`
	Comments    []*Comment        `json:"comments"`
}

// Normalize replaces absent nested objects with empty ones so views can read
// through them.
func (p *Post) Normalize() {
	if p.Category == nil {
		p.Category = new(Category)
	}
	p.Category.Normalize()
	if p.User == nil {
		p.User = new(User)
	}
	if p.Profile == nil {
		p.Profile = new(Profile)
	}
	if p.Profile.FullName == "" {
		p.Profile.FullName = p.User.FullName
	}
	p.Profile.Normalize()
}

func (p *Post) LikeCount() int {
	return len(p.Likes)
}

func (p *Post) Tags() []string {
	return splitTags(p.RawTags)
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// CategoryFeed is everything published under one category.
type CategoryFeed struct {
	NewsArticles []*NewsArticle `json:"news_articles"`
	Posts        []*Post        `json:"posts"`
}

func (f *CategoryFeed) Normalize() {
	for _, a := range f.NewsArticles {
		a.Normalize()
	}
	for _, p := range f.Posts {
		p.Normalize()
	}
}
