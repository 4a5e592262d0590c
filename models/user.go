package models

import "encoding/json"

// User is the portal's view of an account. For the logged in user the
// identity fields come from the access token's claims; posts embed their
// author's as a nested object.
type User struct {
	ID       int    `json:"id" bson:"user_id"`
	FullName string `json:"full_name" bson:"full_name"`
	Email    string `json:"email" bson:"email"`
	Username string `json:"username" bson:"username"`
}

// UnmarshalJSON accepts the id as either id (nested user objects) or user_id.
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var raw struct {
		plain
		UserID *int `json:"user_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*u = User(raw.plain)
	if u.ID == 0 && raw.UserID != nil {
		u.ID = *raw.UserID
	}
	return nil
}

// Profile is an author profile as returned by user/profile/{id}/.
type Profile struct {
	ID       int       `json:"id"`
	Image    string    `json:"image"`
	FullName string    `json:"full_name"`
	Bio      string    `json:"bio"`
	About    string    `json:"about"`
	Author   bool      `json:"author"`
	Country  string    `json:"country"`
	Facebook string    `json:"facebook"`
	Twitter  string    `json:"twitter"`
	Date     Timestamp `json:"date"`
}

func (p *Profile) Normalize() {
	if p.FullName == "" {
		p.FullName = "Anonymous"
	}
}

// Comment is a reader comment on a post or news article.
type Comment struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Comment string    `json:"comment"`
	Reply   string    `json:"reply"`
	Date    Timestamp `json:"date"`
}

// Category groups posts and news articles.
type Category struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Slug      string `json:"slug"`
	PostCount int    `json:"post_count"`
}

func (c *Category) Normalize() {
	if c.Title == "" {
		c.Title = c.Slug
	}
}

// Bookmarks holds everything a user has saved.
type Bookmarks struct {
	Posts        []*PostBookmark        `json:"post_bookmarks"`
	NewsArticles []*NewsArticleBookmark `json:"news_article_bookmarks"`
}

type PostBookmark struct {
	ID   int       `json:"id"`
	Post *Post     `json:"post"`
	Date Timestamp `json:"date"`
}

type NewsArticleBookmark struct {
	ID          int          `json:"id"`
	NewsArticle *NewsArticle `json:"news_article"`
	Date        Timestamp    `json:"date"`
}

// Normalize drops bookmarks whose target is missing.
func (b *Bookmarks) Normalize() {
	posts := b.Posts[:0]
	for _, bm := range b.Posts {
		if bm == nil || bm.Post == nil {
			continue
		}
		bm.Post.Normalize()
		posts = append(posts, bm)
	}
	b.Posts = posts

	articles := b.NewsArticles[:0]
	for _, bm := range b.NewsArticles {
		if bm == nil || bm.NewsArticle == nil {
			continue
		}
		bm.NewsArticle.Normalize()
		articles = append(articles, bm)
	}
	b.NewsArticles = articles
}
