package portalapi

import (
	"context"

	"git.tdpain.net/codemicro/newsPortal/models"
)

func normalizePosts(posts []*models.Post) []*models.Post {
	for _, p := range posts {
		p.Normalize()
	}
	return posts
}

// PostsByViews lists blog posts, most viewed first.
func (c *Client) PostsByViews(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := c.get(ctx, "post/list-by-views", "post/list-by-views/", nil, &posts); err != nil {
		return nil, err
	}
	return normalizePosts(posts), nil
}

// Posts lists every active blog post.
func (c *Client) Posts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	if err := c.get(ctx, "post/lists", "post/lists/", nil, &posts); err != nil {
		return nil, err
	}
	return normalizePosts(posts), nil
}

func (c *Client) PostDetail(ctx context.Context, slug string) (*models.Post, error) {
	segment, err := pathSegment(slug)
	if err != nil {
		return nil, err
	}
	post := new(models.Post)
	if err := c.get(ctx, "post/detail", "post/detail/"+segment+"/", nil, post); err != nil {
		return nil, err
	}
	post.Normalize()
	return post, nil
}

func (c *Client) Categories(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := c.get(ctx, "post/category/list", "post/category/list/", nil, &categories); err != nil {
		return nil, err
	}
	for _, cat := range categories {
		cat.Normalize()
	}
	return categories, nil
}

// CategoryFeed returns the news articles and posts filed under category.
func (c *Client) CategoryFeed(ctx context.Context, category string) (*models.CategoryFeed, error) {
	segment, err := pathSegment(category)
	if err != nil {
		return nil, err
	}
	feed, err := getFirst[*models.CategoryFeed](ctx, c, "post/category/posts", "post/category/posts/"+segment+"/")
	if err != nil {
		return nil, err
	}
	if feed == nil {
		feed = new(models.CategoryFeed)
	}
	feed.Normalize()
	return feed, nil
}
