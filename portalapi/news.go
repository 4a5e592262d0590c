package portalapi

import (
	"context"
	"net/url"
	"strconv"

	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/transport"
)

// NewsArticlesByViews lists news articles, most viewed first.
func (c *Client) NewsArticlesByViews(ctx context.Context) ([]*models.NewsArticle, error) {
	var articles []*models.NewsArticle
	if err := c.get(ctx, "news-article/list-by-views", "news-article/list-by-views/", nil, &articles); err != nil {
		return nil, err
	}
	for _, a := range articles {
		a.Normalize()
	}
	return articles, nil
}

func (c *Client) NewsArticle(ctx context.Context, id int) (*models.NewsArticle, error) {
	article := new(models.NewsArticle)
	if err := c.get(ctx, "news-article/detail", "news-article/detail/"+strconv.Itoa(id)+"/", nil, article); err != nil {
		return nil, err
	}
	article.Normalize()
	return article, nil
}

func (c *Client) CommentOnNewsArticle(ctx context.Context, articleID int, inputs *transport.CommentInputs) error {
	body := struct {
		NewsArticleID int `json:"news_article_id"`
		*transport.CommentInputs
	}{articleID, inputs}
	return c.post(ctx, "news-article/comment-article", "news-article/comment-article/", body, nil)
}

type userArticleRequest struct {
	UserID        int `json:"user_id"`
	NewsArticleID int `json:"news_article_id"`
}

// LikeNewsArticle toggles userID's like on an article and returns the API's
// message describing which way it went.
func (c *Client) LikeNewsArticle(ctx context.Context, userID, articleID int) (string, error) {
	var resp message
	if err := c.post(ctx, "news-article/like-article", "news-article/like-article/", userArticleRequest{userID, articleID}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// BookmarkNewsArticle toggles userID's bookmark on an article.
func (c *Client) BookmarkNewsArticle(ctx context.Context, userID, articleID int) (string, error) {
	var resp message
	if err := c.post(ctx, "news-article/bookmark-news-article", "news-article/bookmark-news-article/", userArticleRequest{userID, articleID}, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

// TopicTrends returns the sentiment series recorded for word.
func (c *Client) TopicTrends(ctx context.Context, word string) ([]models.TrendPoint, error) {
	var points []models.TrendPoint
	if err := c.get(ctx, "topic-trends-by-words", "topic-trends-by-words/", url.Values{"words": {word}}, &points); err != nil {
		return nil, err
	}
	return points, nil
}
