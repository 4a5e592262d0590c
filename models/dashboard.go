package models

// AuthorStats summarises an author's posts.
type AuthorStats struct {
	Views     int `json:"views"`
	Posts     int `json:"posts"`
	Likes     int `json:"likes"`
	Bookmarks int `json:"bookmarks"`
}

// Notification tells an author about activity on one of their posts.
type Notification struct {
	ID   int       `json:"id"`
	Type string    `json:"type"`
	Seen bool      `json:"seen"`
	Post *Post     `json:"post"`
	Date Timestamp `json:"date"`
}

func (n *Notification) Normalize() {
	if n.Post == nil {
		n.Post = new(Post)
	}
	n.Post.Normalize()
}

// Post statuses accepted by the dashboard.
var PostStatuses = []string{"Active", "Draft", "Disabled"}
