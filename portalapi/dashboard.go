package portalapi

import (
	"context"
	"fmt"
	"net/http"

	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/transport"
)

func (c *Client) DashboardStats(ctx context.Context, userID int) (*models.AuthorStats, error) {
	stats, err := getFirst[*models.AuthorStats](ctx, c, "author/dashboard/stats", fmt.Sprintf("author/dashboard/stats/%d/", userID))
	if err != nil {
		return nil, err
	}
	if stats == nil {
		stats = new(models.AuthorStats)
	}
	return stats, nil
}

// DashboardPosts lists userID's posts, newest first.
func (c *Client) DashboardPosts(ctx context.Context, userID int) ([]*models.Post, error) {
	var posts []*models.Post
	if err := c.get(ctx, "author/dashboard/post-list", fmt.Sprintf("author/dashboard/post-list/%d/", userID), nil, &posts); err != nil {
		return nil, err
	}
	return normalizePosts(posts), nil
}

func (c *Client) DashboardComments(ctx context.Context) ([]*models.Comment, error) {
	var comments []*models.Comment
	if err := c.get(ctx, "author/dashboard/comment-list", "author/dashboard/comment-list/", nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DashboardNotifications lists userID's unseen notifications.
func (c *Client) DashboardNotifications(ctx context.Context, userID int) ([]*models.Notification, error) {
	var notifications []*models.Notification
	if err := c.get(ctx, "author/dashboard/noti-list", fmt.Sprintf("author/dashboard/noti-list/%d/", userID), nil, &notifications); err != nil {
		return nil, err
	}
	for _, n := range notifications {
		n.Normalize()
	}
	return notifications, nil
}

func (c *Client) MarkNotificationSeen(ctx context.Context, notificationID int) error {
	body := struct {
		NotificationID int `json:"noti_id"`
	}{notificationID}
	return c.post(ctx, "author/dashboard/noti-mark-seen", "author/dashboard/noti-mark-seen/", body, nil)
}

func (c *Client) ReplyToComment(ctx context.Context, inputs *transport.ReplyInputs) error {
	body := struct {
		CommentID int    `json:"comment_id"`
		Reply     string `json:"reply"`
	}{inputs.CommentID, inputs.Reply}
	return c.post(ctx, "author/dashboard/reply-comment", "author/dashboard/reply-comment/", body, nil)
}

type postRequest struct {
	UserID      int    `json:"user_id"`
	Title       string `json:"title"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description"`
	Tags        string `json:"tags"`
	Category    int    `json:"category"`
	Status      string `json:"post_status"`
}

func newPostRequest(userID int, inputs *transport.PostInputs) postRequest {
	return postRequest{
		UserID:      userID,
		Title:       inputs.Title,
		Image:       inputs.Image,
		Description: inputs.Description,
		Tags:        inputs.Tags,
		Category:    inputs.CategoryID,
		Status:      inputs.Status,
	}
}

func (c *Client) CreatePost(ctx context.Context, userID int, inputs *transport.PostInputs) error {
	return c.post(ctx, "author/dashboard/post-create", "author/dashboard/post-create/", newPostRequest(userID, inputs), nil)
}

// DashboardPost fetches one of userID's posts for editing.
func (c *Client) DashboardPost(ctx context.Context, userID, postID int) (*models.Post, error) {
	post := new(models.Post)
	if err := c.get(ctx, "author/dashboard/post-detail", fmt.Sprintf("author/dashboard/post-detail/%d/%d/", userID, postID), nil, post); err != nil {
		return nil, err
	}
	post.Normalize()
	return post, nil
}

func (c *Client) UpdatePost(ctx context.Context, userID, postID int, inputs *transport.PostInputs) error {
	return c.do(
		ctx,
		http.MethodPatch,
		"author/dashboard/post-detail",
		fmt.Sprintf("author/dashboard/post-detail/%d/%d/", userID, postID),
		nil,
		newPostRequest(userID, inputs),
		nil,
	)
}
