package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"git.tdpain.net/codemicro/newsPortal/listing"
	"git.tdpain.net/codemicro/newsPortal/models"
	g "github.com/maragudk/gomponents"
	c "github.com/maragudk/gomponents/components"
	. "github.com/maragudk/gomponents/html"
)

const styles = `body {
	font-family: sans-serif;
	font-size: 1.05rem;
	margin: 0;
}
header, main, footer { padding: 0.5em 1em; }
header { border-bottom: 1px solid #ddd; display: flex; gap: 1em; align-items: center; flex-wrap: wrap; }
header .spacer { flex-grow: 1; }
footer { border-top: 1px solid #ddd; color: #666; font-size: 0.9rem; }
.notice { background-color: #d4efdf; padding: 0.5em 1em; }
.unavailable { color: #a93226; font-style: italic; }
.cards { display: grid; grid-template-columns: repeat(auto-fill, minmax(16em, 1fr)); gap: 1em; }
.card { border: 1px solid #ddd; padding: 0.5em; }
.card img { max-width: 100%; }
.meta { color: #666; font-size: 0.9rem; }
.sentiment-1 { color: #1e8449; }
.sentiment--1 { color: #a93226; }
.pagination { display: flex; gap: 0.5em; list-style: none; padding: 0; }
.pagination .active { font-weight: bold; }
.pagination .disabled { color: #aaa; }
form.inline { display: inline; }
label { display: block; margin-top: 0.5em; }
`

type pageProps struct {
	Title string
	User  *models.User
}

// renderPage writes a complete HTML page with the site header and footer.
func renderPage(rw http.ResponseWriter, req *http.Request, status int, props pageProps, content ...g.Node) error {
	rw.Header().Set("Content-Type", "text/html; charset=utf-8")
	rw.WriteHeader(status)

	return c.HTML5(c.HTML5Props{
		Title:    props.Title + " - News Portal",
		Language: "en-GB",
		Head: []g.Node{
			Meta(g.Attr("name", "viewport"), g.Attr("content", "width=device-width, initial-scale=1")),
			StyleEl(g.Text(styles)),
		},
		Body: []g.Node{
			siteHeader(props.User),
			noticeBanner(req.URL.Query().Get("notice")),
			Main(content...),
			Footer(g.Text("News Portal")),
		},
	}).Render(rw)
}

func siteHeader(user *models.User) g.Node {
	return Header(
		A(Href("/"), Strong(g.Text("News Portal"))),
		A(Href("/posts"), g.Text("Posts")),
		Span(Class("spacer")),
		g.If(user == nil, g.Group([]g.Node{
			A(Href("/login"), g.Text("Log in")),
			A(Href("/register"), g.Text("Register")),
		})),
		g.If(user != nil, g.Group([]g.Node{
			A(Href("/bookmarks"), g.Text("Bookmarks")),
			A(Href("/dashboard"), g.Text("Dashboard")),
			A(Href("/profile"), g.Text(displayName(user))),
			FormEl(Class("inline"), Method("post"), Action("/logout"),
				Button(Type("submit"), g.Text("Log out")),
			),
		})),
	)
}

func displayName(user *models.User) string {
	if user == nil {
		return ""
	}
	if user.FullName != "" {
		return user.FullName
	}
	if user.Username != "" {
		return user.Username
	}
	return user.Email
}

func noticeBanner(notice string) g.Node {
	if notice == "" {
		return nil
	}
	return Div(Class("notice"), g.Attr("role", "status"), g.Text(notice))
}

// unavailable stands in for a list that could not be fetched.
func unavailable(what string) g.Node {
	return P(Class("unavailable"), g.Textf("%s could not be loaded.", what))
}

func errorPage(rw http.ResponseWriter, req *http.Request, status int, user *models.User, message string) error {
	return renderPage(rw, req, status, pageProps{Title: http.StatusText(status), User: user},
		H1(g.Text(http.StatusText(status))),
		P(g.Text(message)),
		P(A(Href("/"), g.Text("Back to the home page"))),
	)
}

// paginationLinks renders previous, numbered and next links for page. Every
// link keeps the rest of base's query.
func paginationLinks[T any](base *url.URL, page listing.Page[T]) g.Node {
	if page.TotalPages <= 1 {
		return nil
	}

	link := func(number int, label string, enabled, active bool) g.Node {
		if !enabled {
			return Li(Class("disabled"), g.Text(label))
		}
		u := *base
		q := u.Query()
		q.Set("page", fmt.Sprint(number))
		q.Del("notice")
		u.RawQuery = q.Encode()
		return Li(g.If(active, Class("active")), A(Href(u.String()), g.Text(label)))
	}

	items := []g.Node{link(page.Number-1, "Previous", page.HasPrevious(), false)}
	items = append(items, g.Map(page.Numbers(), func(n int) g.Node {
		return link(n, fmt.Sprint(n), true, n == page.Number)
	})...)
	items = append(items, link(page.Number+1, "Next", page.HasNext(), false))

	return Nav(g.Attr("aria-label", "pagination"), Ul(Class("pagination"), g.Group(items)))
}

func postCard(post *models.Post) g.Node {
	return Div(Class("card"),
		g.If(post.Image != "", Img(Src(post.Image), Alt(post.Title), g.Attr("loading", "lazy"))),
		H3(A(Href("/post/"+url.PathEscape(post.Slug)), g.Text(post.Title))),
		P(Class("meta"),
			g.Text(post.Profile.FullName),
			g.If(post.Date.String() != "", g.Text(" · "+post.Date.String())),
			g.Textf(" · %d views", post.Views),
		),
	)
}

func newsCard(article *models.NewsArticle) g.Node {
	return Div(Class("card"),
		g.If(article.ImageSource != "", Img(Src(article.ImageSource), Alt(article.DisplayTitle(true)), g.Attr("loading", "lazy"))),
		H3(A(Href(fmt.Sprintf("/news/%d", article.ID)), g.Text(article.DisplayTitle(true)))),
		P(Class("meta"),
			g.If(article.Source != "", g.Text(article.Source+" · ")),
			g.If(article.Date.String() != "", g.Text(article.Date.String()+" · ")),
			sentimentBadge(article.SentimentScore),
		),
	)
}

func sentimentBadge(score int) g.Node {
	return Span(Class(fmt.Sprintf("sentiment-%d", score)), g.Text(models.SentimentLabel(score)))
}

func tagList(tags []string) g.Node {
	if len(tags) == 0 {
		return nil
	}
	return P(Class("meta"), g.Text("Tags: "+strings.Join(tags, ", ")))
}

func commentList(comments []*models.Comment) g.Node {
	if len(comments) == 0 {
		return P(I(g.Text("No comments yet.")))
	}
	return Ul(g.Map(comments, func(comment *models.Comment) g.Node {
		return Li(
			Strong(g.Text(comment.Name)),
			g.If(comment.Date.String() != "", Span(Class("meta"), g.Text(" "+comment.Date.String()))),
			P(g.Text(comment.Comment)),
			g.If(comment.Reply != "", P(Class("meta"), g.Text("Reply: "+comment.Reply))),
		)
	})...)
}
