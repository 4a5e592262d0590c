package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"git.tdpain.net/codemicro/newsPortal/listing"
	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	"git.tdpain.net/codemicro/newsPortal/trends"
	"github.com/jszwec/csvutil"
	"github.com/samber/lo"
)

const defaultExportFile = "articles.csv"

type articleRow struct {
	ID            int    `csv:"id"`
	Title         string `csv:"title,omitempty"`
	OriginalTitle string `csv:"original_title,omitempty"`
	Source        string `csv:"source,omitempty"`
	Category      string `csv:"category,omitempty"`
	Sentiment     int    `csv:"sentiment"`
	Date          string `csv:"date,omitempty"`
	Link          string `csv:"link,omitempty"`
}

func newArticleRow(a *models.NewsArticle) *articleRow {
	return &articleRow{
		ID:            a.ID,
		Title:         strings.ReplaceAll(a.DisplayTitle(true), "\n", " "),
		OriginalTitle: strings.ReplaceAll(a.OriginalTitle, "\n", " "),
		Source:        a.Source,
		Category:      a.Category,
		Sentiment:     a.SentimentScore,
		Date:          a.Date.String(),
		Link:          a.Link,
	}
}

// ExportCategory appends the category's news articles matching filter to the
// CSV file at filename, creating it with a header if needed. Articles already
// in the file are skipped. It returns the number of rows written.
func ExportCategory(ctx context.Context, client *portalapi.Client, category string, filter listing.SentimentFilter, filename string) (int, error) {
	feed, err := client.CategoryFeed(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("fetch category %q: %w", category, err)
	}

	existing, err := readArticleRows(filename)
	if err != nil {
		return 0, err
	}
	seen := lo.SliceToMap(existing, func(row *articleRow) (int, struct{}) {
		return row.ID, struct{}{}
	})

	var rows []*articleRow
	for _, article := range listing.FilterBySentiment(feed.NewsArticles, filter) {
		if _, found := seen[article.ID]; found {
			continue
		}
		seen[article.ID] = struct{}{}
		rows = append(rows, newArticleRow(article))
	}

	if len(rows) == 0 {
		return 0, nil
	}

	b, err := csvutil.Marshal(rows)
	if err != nil {
		return 0, fmt.Errorf("marshal rows: %w", err)
	}

	// the file already has a header, so only append the data lines
	if existing != nil {
		b = b[bytes.IndexByte(b, '\n')+1:]
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}

	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return 0, err
	}

	if err := f.Close(); err != nil {
		return 0, err
	}

	return len(rows), nil
}

// readArticleRows returns nil, not an empty slice, when filename does not
// exist or holds no header.
func readArticleRows(filename string) ([]*articleRow, error) {
	fcont, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) || (err == nil && len(bytes.TrimSpace(fcont)) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows := []*articleRow{}
	if err := csvutil.Unmarshal(fcont, &rows); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return rows, nil
}

// PrintTrends writes every keyword of title with its chartable trend points.
func PrintTrends(ctx context.Context, w io.Writer, client trends.Lookup, title string) error {
	series := trends.Collect(ctx, client, title)
	if len(series) == 0 {
		_, err := fmt.Fprintln(w, "no trend data")
		return err
	}

	for _, s := range series {
		points := trends.ChartPoints(s.Points)
		if _, err := fmt.Fprintf(w, "%s (%d points)\n", s.Keyword, len(points)); err != nil {
			return err
		}
		for _, p := range points {
			if _, err := fmt.Fprintf(w, "  %s\t%s\n", p.Date, models.SentimentLabel(int(p.SentimentScore))); err != nil {
				return err
			}
		}
	}
	return ctx.Err()
}
