package listing

import (
	"testing"

	"git.tdpain.net/codemicro/newsPortal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, size, want int
	}{
		{0, 4, 0},
		{1, 4, 1},
		{4, 4, 1},
		{5, 4, 2},
		{10, 4, 3},
		{48, 24, 2},
		{49, 24, 3},
		{10, 0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.total, tt.size), "total=%d size=%d", tt.total, tt.size)
	}
}

func TestPaginate(t *testing.T) {
	items := numbers(10)

	t.Run("ten items in pages of four", func(t *testing.T) {
		page := Paginate(items, 2, HomePageSize)

		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, []int{5, 6, 7, 8}, page.Items)
		assert.True(t, page.HasPrevious())
		assert.True(t, page.HasNext())
		assert.Equal(t, []int{1, 2, 3}, page.Numbers())
	})

	t.Run("last page is short", func(t *testing.T) {
		page := Paginate(items, 3, HomePageSize)

		assert.Equal(t, []int{9, 10}, page.Items)
		assert.False(t, page.HasNext())
	})

	t.Run("first page has no previous", func(t *testing.T) {
		page := Paginate(items, 1, HomePageSize)

		assert.Equal(t, []int{1, 2, 3, 4}, page.Items)
		assert.False(t, page.HasPrevious())
	})

	t.Run("out of range pages are empty and not clamped", func(t *testing.T) {
		for _, n := range []int{0, -2, 4, 100} {
			page := Paginate(items, n, HomePageSize)
			assert.Empty(t, page.Items, "page %d", n)
			assert.Equal(t, n, page.Number)
			assert.Equal(t, 3, page.TotalPages)
		}
	})

	t.Run("huge page numbers are empty", func(t *testing.T) {
		number := ParsePageNumber("1537228672809129302")
		page := Paginate(numbers(30), number, CategoryPageSize)

		assert.Empty(t, page.Items)
		assert.Equal(t, number, page.Number)
		assert.Equal(t, 2, page.TotalPages)
		assert.False(t, page.HasNext())
	})

	t.Run("every page matches the slice bounds", func(t *testing.T) {
		for size := 1; size <= 12; size++ {
			for k := 1; k <= PageCount(len(items), size); k++ {
				page := Paginate(items, k, size)
				end := min(k*size, len(items))
				assert.Equal(t, items[(k-1)*size:end], page.Items, "size=%d page=%d", size, k)
			}
		}
	})

	t.Run("empty list", func(t *testing.T) {
		page := Paginate([]int{}, 1, CategoryPageSize)

		assert.Empty(t, page.Items)
		assert.Equal(t, 0, page.TotalPages)
		assert.Empty(t, page.Numbers())
		assert.False(t, page.HasNext())
	})
}

func TestParsePageNumber(t *testing.T) {
	assert.Equal(t, 1, ParsePageNumber(""))
	assert.Equal(t, 1, ParsePageNumber("two"))
	assert.Equal(t, 3, ParsePageNumber("3"))
	assert.Equal(t, 99, ParsePageNumber("99"))
	assert.Equal(t, -1, ParsePageNumber("-1"))
}

func articlesWithScores(scores ...int) []*models.NewsArticle {
	out := make([]*models.NewsArticle, len(scores))
	for i, score := range scores {
		out[i] = &models.NewsArticle{ID: i + 1, SentimentScore: score}
	}
	return out
}

func TestParseSentimentFilter(t *testing.T) {
	for _, raw := range []string{"all", "", "1", "0", "-1"} {
		f, err := ParseSentimentFilter(raw)
		require.NoError(t, err, raw)
		if raw == "" {
			assert.Equal(t, "all", f.String())
		} else {
			assert.Equal(t, raw, f.String())
		}
	}

	for _, raw := range []string{"2", "-2", "positive", "1.0"} {
		_, err := ParseSentimentFilter(raw)
		assert.Error(t, err, raw)
	}
}

func TestFilterBySentiment(t *testing.T) {
	articles := articlesWithScores(1, 0, -1, 1, 0, 1)

	all := FilterBySentiment(articles, AllSentiments)
	assert.Equal(t, articles, all)

	for _, score := range []int{-1, 0, 1} {
		filtered := FilterBySentiment(articles, SentimentFilterFor(score))
		var want []int
		for _, a := range articles {
			if a.SentimentScore == score {
				want = append(want, a.ID)
			}
		}
		var got []int
		for _, a := range filtered {
			got = append(got, a.ID)
		}
		assert.Equal(t, want, got, "score %d", score)
	}
}

func TestFilterThenPaginate(t *testing.T) {
	scores := make([]int, 60)
	for i := range scores {
		scores[i] = i%3 - 1
	}
	articles := articlesWithScores(scores...)

	all := Paginate(FilterBySentiment(articles, AllSentiments), 1, CategoryPageSize)
	assert.Equal(t, 3, all.TotalPages)

	positive := Paginate(FilterBySentiment(articles, SentimentFilterFor(1)), 1, CategoryPageSize)
	assert.Equal(t, 1, positive.TotalPages)
	assert.Len(t, positive.Items, 20)
}
