package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.tdpain.net/codemicro/newsPortal/listing"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *portalapi.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := portalapi.New(server.URL + "/api/v1/")
	require.NoError(t, err)
	return client
}

func categoryHandler(t *testing.T, articles ...map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/post/category/posts/politics/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{{"news_articles": articles}})
	}
}

func article(id, score int) map[string]any {
	return map[string]any{
		"id":               id,
		"translated_title": fmt.Sprintf("Article %d", id),
		"sentiment_score":  score,
		"category":         "politics",
	}
}

func TestExportCategory(t *testing.T) {
	ctx := context.Background()
	filename := filepath.Join(t.TempDir(), "articles.csv")

	client := newTestClient(t, categoryHandler(t, article(1, 1), article(2, -1), article(3, 1)))

	n, err := ExportCategory(ctx, client, "politics", listing.SentimentFilterFor(1), filename)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// a second run only adds what is missing
	n, err = ExportCategory(ctx, client, "politics", listing.AllSentiments, filename)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = ExportCategory(ctx, client, "politics", listing.AllSentiments, filename)
	require.NoError(t, err)
	assert.Zero(t, n)

	rows, err := readArticleRows(filename)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []int{1, 3, 2}, []int{rows[0].ID, rows[1].ID, rows[2].ID})
	assert.Equal(t, "Article 2", rows[2].Title)
	assert.Equal(t, -1, rows[2].Sentiment)

	fcont, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(fcont), "id,title"), "header written once")
}

func TestExportCategory_NothingMatches(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "articles.csv")
	client := newTestClient(t, categoryHandler(t, article(1, 1)))

	n, err := ExportCategory(context.Background(), client, "politics", listing.SentimentFilterFor(-1), filename)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = os.Stat(filename)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerateSnapshot(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/post/list-by-views/", r.URL.Path)
		var posts []map[string]any
		for i := 1; i <= 10; i++ {
			posts = append(posts, map[string]any{"id": i, "title": fmt.Sprintf("post-%02d", i), "slug": fmt.Sprintf("post-%02d", i)})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(posts)
	})

	outputDir := t.TempDir()
	require.NoError(t, GenerateSnapshot(context.Background(), client, outputDir))

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	second, err := os.ReadFile(filepath.Join(outputDir, "page-2.html"))
	require.NoError(t, err)
	assert.Contains(t, string(second), "post-05")
	assert.Contains(t, string(second), "post-08")
	assert.NotContains(t, string(second), "post-09")
	assert.Contains(t, string(second), `href="index.html"`)
	assert.Contains(t, string(second), `href="page-3.html"`)
}

func TestPrintTrends(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("words") == "flood" {
			_, _ = w.Write([]byte(`[{"word":"flood","time_period":"2024-01-01","sentiment_average":1},{"word":"flood","time_period":"2024-01-02","sentiment_average":0.3}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	})

	out := new(bytes.Buffer)
	require.NoError(t, PrintTrends(context.Background(), out, client, "Flood in the valley"))

	assert.Equal(t, "flood (1 points)\n  2024-01-01\tPositive\nthe (0 points)\nvalley (0 points)\n", out.String())
}
