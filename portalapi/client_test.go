package portalapi

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"git.tdpain.net/codemicro/newsPortal/transport"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL + "/api/v1")
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNew(t *testing.T) {
	t.Run("defaults the base URL", func(t *testing.T) {
		client, err := New("")
		require.NoError(t, err)
		assert.Equal(t, DefaultBaseURL, client.BaseURL())
	})

	t.Run("adds a trailing slash", func(t *testing.T) {
		client, err := New("https://portal.example.com/api/v1")
		require.NoError(t, err)
		assert.Equal(t, "https://portal.example.com/api/v1/", client.BaseURL())
	})

	t.Run("rejects relative URLs", func(t *testing.T) {
		_, err := New("api/v1/")
		assert.Error(t, err)
	})
}

func TestClient_NewsArticle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/news-article/detail/42/", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"id":               42,
			"original_title":   "बाढी",
			"translated_title": "Floods hit the valley",
			"sentiment_score":  -1,
			"en_timestamp":     "2024-07-01T09:30:00",
			"likes":            []int{1, 2, 3},
			"tags":             "flood, monsoon,,",
			"comments": []map[string]any{
				{"id": 1, "name": "Hari", "comment": "Stay safe", "date": "2024-07-01T10:00:00Z"},
			},
		})
	})

	article, err := client.NewsArticle(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, "Floods hit the valley", article.DisplayTitle(true))
	assert.Equal(t, "बाढी", article.DisplayTitle(false))
	assert.Equal(t, "Negative", article.SentimentLabel())
	assert.Equal(t, 3, article.LikeCount())
	assert.Equal(t, []string{"flood", "monsoon"}, article.Tags())
	assert.Equal(t, "2024-07-01", article.Date.String())
	require.Len(t, article.Comments, 1)
	assert.Equal(t, "Hari", article.Comments[0].Name)
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	})

	_, err := client.PostDetail(context.Background(), "missing")

	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "/api/v1/post/detail/missing/", se.Path)
	assert.Contains(t, se.Body, "Not found.")
}

func TestClient_PathSegmentsStayInTheirEndpoint(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.EscapedPath())
		if strings.HasPrefix(r.URL.Path, "/api/v1/post/detail/") {
			writeJSON(t, w, http.StatusOK, map[string]any{"title": "a post"})
			return
		}
		writeJSON(t, w, http.StatusOK, []map[string]any{})
	})
	ctx := context.Background()

	_, err := client.PostDetail(ctx, "../../author/dashboard/comment-list")
	require.NoError(t, err)
	_, err = client.CategoryFeed(ctx, "../../user/profile/1")
	require.NoError(t, err)
	_, err = client.PostDetail(ctx, "what? a #slug")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/api/v1/post/detail/..%2F..%2Fauthor%2Fdashboard%2Fcomment-list/",
		"/api/v1/post/category/posts/..%2F..%2Fuser%2Fprofile%2F1/",
		"/api/v1/post/detail/what%3F%20a%20%23slug/",
	}, paths)

	for _, segment := range []string{"", ".", ".."} {
		_, err := client.PostDetail(ctx, segment)
		assert.ErrorIs(t, err, ErrInvalidPathSegment, "slug %q", segment)
		assert.True(t, IsNotFound(err))

		_, err = client.CategoryFeed(ctx, segment)
		assert.ErrorIs(t, err, ErrInvalidPathSegment, "category %q", segment)
	}
	assert.Len(t, paths, 3, "invalid segments never reach the API")
}

func TestClient_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type"})
	})

	_, err := client.WithToken("stale").Profile(context.Background(), 7)

	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsNotFound(err))
}

func TestClient_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Categories(context.Background())

	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}

func TestClient_CategoryFeed(t *testing.T) {
	t.Run("unwraps the one-element array", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/post/category/posts/politics/", r.URL.Path)
			writeJSON(t, w, http.StatusOK, []map[string]any{{
				"news_articles": []map[string]any{
					{"id": 1, "sentiment_score": 1},
					{"id": 2, "sentiment_score": 0},
				},
				"posts": []map[string]any{
					{"id": 9, "title": "Opinion", "category": nil},
				},
			}})
		})

		feed, err := client.CategoryFeed(context.Background(), "politics")
		require.NoError(t, err)

		assert.Len(t, feed.NewsArticles, 2)
		require.Len(t, feed.Posts, 1)
		assert.NotNil(t, feed.Posts[0].Category)
		assert.NotNil(t, feed.Posts[0].Profile)
	})

	t.Run("empty array is an empty feed", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, []any{})
		})

		feed, err := client.CategoryFeed(context.Background(), "sport")
		require.NoError(t, err)
		assert.Empty(t, feed.NewsArticles)
		assert.Empty(t, feed.Posts)
	})
}

func TestClient_TopicTrends(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/topic-trends-by-words/", r.URL.Path)
		assert.Equal(t, "flood", r.URL.Query().Get("words"))

		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"word": "flood", "time_period": "2024-07-01", "sentiment_average": -1, "articles_count": 4},
			{"word": "flood", "date": "2024-07-02", "sentiment_score": 0.5},
			{"word": "flood", "date": "2024-07-03"},
		})
	})

	points, err := client.TopicTrends(context.Background(), "flood")
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-07-01", points[0].Date)
	assert.Equal(t, -1.0, points[0].SentimentScore)
	assert.Equal(t, 4, points[0].ArticlesCount)
	assert.Equal(t, 0.5, points[1].SentimentScore)
	assert.True(t, math.IsNaN(points[2].SentimentScore))
}

func TestClient_LikeNewsArticle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/news-article/like-article/", r.URL.Path)
		assert.Equal(t, "Bearer access-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]int{"user_id": 7, "news_article_id": 42}, body)

		writeJSON(t, w, http.StatusCreated, map[string]string{"message": "Post Liked"})
	})

	msg, err := client.WithToken("access-token").LikeNewsArticle(context.Background(), 7, 42)
	require.NoError(t, err)
	assert.Equal(t, "Post Liked", msg)
}

func TestClient_WithTokenDoesNotModifyReceiver(t *testing.T) {
	var sawAuth atomic.Value
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		sawAuth.Store(r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, []any{})
	})

	_ = client.WithToken("secret")
	_, err := client.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "", sawAuth.Load())
}

func TestClient_CommentOnNewsArticle(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/news-article/comment-article/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(42), body["news_article_id"])
		assert.Equal(t, "Gita", body["name"])
		assert.Equal(t, "gita@example.com", body["email"])
		assert.Equal(t, "Thanks", body["comment"])

		writeJSON(t, w, http.StatusCreated, map[string]string{"message": "Comment Sent"})
	})

	err := client.CommentOnNewsArticle(context.Background(), 42, &transport.CommentInputs{
		Name:    "Gita",
		Email:   "gita@example.com",
		Comment: "Thanks",
	})
	require.NoError(t, err)
}

func TestClient_DashboardStats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/author/dashboard/stats/7/", r.URL.Path)
		writeJSON(t, w, http.StatusOK, []map[string]int{{"views": 120, "posts": 3, "likes": 9, "bookmarks": 2}})
	})

	stats, err := client.DashboardStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 120, stats.Views)
	assert.Equal(t, 2, stats.Bookmarks)
}

func TestClient_UpdatePost(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/author/dashboard/post-detail/7/3/", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Draft", body["post_status"])
		assert.Equal(t, float64(2), body["category"])

		writeJSON(t, w, http.StatusOK, map[string]string{"message": "Post Updated Successfully"})
	})

	err := client.UpdatePost(context.Background(), 7, 3, &transport.PostInputs{
		Title:       "t",
		Description: "d",
		CategoryID:  2,
		Status:      "Draft",
	})
	require.NoError(t, err)
}

func TestClient_RateLimit(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(t, w, http.StatusOK, []any{})
	}))
	defer server.Close()

	client, err := New(server.URL, WithRateLimit(1))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	_, err = client.Categories(ctx)
	require.NoError(t, err)

	_, err = client.Categories(ctx)
	assert.Error(t, err, "second request should not fit in the limiter window")
	assert.Equal(t, int32(1), calls.Load())
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not-the-server-key"))
	require.NoError(t, err)
	return token
}

func TestUserFromToken(t *testing.T) {
	t.Run("numeric user id", func(t *testing.T) {
		token := signedToken(t, jwt.MapClaims{
			"user_id":   7,
			"full_name": "Sita Sharma",
			"email":     "sita@example.com",
			"username":  "sita",
		})

		user, err := UserFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.Equal(t, "Sita Sharma", user.FullName)
		assert.Equal(t, "sita", user.Username)
	})

	t.Run("string user id", func(t *testing.T) {
		user, err := UserFromToken(signedToken(t, jwt.MapClaims{"user_id": "12"}))
		require.NoError(t, err)
		assert.Equal(t, 12, user.ID)
	})

	t.Run("missing user id", func(t *testing.T) {
		_, err := UserFromToken(signedToken(t, jwt.MapClaims{"email": "x@example.com"}))
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := UserFromToken("not.a.token")
		assert.Error(t, err)
	})
}

func TestClient_ObtainToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/user/token/", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "hunter22" {
			writeJSON(t, w, http.StatusUnauthorized, map[string]string{"detail": "No active account"})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]string{"access": "a", "refresh": "r"})
	})

	pair, err := client.ObtainToken(context.Background(), &transport.LoginInputs{Email: "a@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, "a", pair.Access)

	_, err = client.ObtainToken(context.Background(), &transport.LoginInputs{Email: "a@example.com", Password: "wrong"})
	require.Error(t, err)
}
