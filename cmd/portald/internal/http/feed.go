package http

import (
	"log/slog"
	"net/http"

	"git.tdpain.net/codemicro/newsPortal/listing"
	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

func (e endpoints) home(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.session(req)
	if err != nil {
		return err
	}
	client := e.Client
	ctx := req.Context()

	var (
		posts      []*models.Post
		categories []*models.Category
		news       []*models.NewsArticle

		postsErr, categoriesErr, newsErr error
	)

	// each section degrades on its own, so the group is not given a context
	// to cancel
	var eg errgroup.Group
	eg.Go(func() error {
		posts, postsErr = client.PostsByViews(ctx)
		return postsErr
	})
	eg.Go(func() error {
		categories, categoriesErr = client.Categories(ctx)
		return categoriesErr
	})
	eg.Go(func() error {
		news, newsErr = client.NewsArticlesByViews(ctx)
		return newsErr
	})
	if err := eg.Wait(); err != nil {
		slog.Warn("unable to load every home page section", "error", err)
	}

	page := listing.Paginate(posts, listing.ParsePageNumber(req.URL.Query().Get("page")), listing.HomePageSize)

	return renderPage(rw, req, http.StatusOK, pageProps{Title: "Home", User: sessionUser(session)},
		Section(
			H2(g.Text("Trending blogs")),
			g.If(postsErr != nil, unavailable("Posts")),
			g.If(postsErr == nil && len(page.Items) == 0, P(I(g.Text("No posts on this page.")))),
			Div(Class("cards"), g.Group(g.Map(page.Items, postCard))),
			paginationLinks(req.URL, page),
		),
		Section(
			H2(g.Text("Trending news")),
			g.If(newsErr != nil, unavailable("News articles")),
			Div(Class("cards"), g.Group(g.Map(lo.Slice(news, 0, listing.HomePageSize), newsCard))),
		),
		Section(
			H2(g.Text("Categories")),
			g.If(categoriesErr != nil, unavailable("Categories")),
			Ul(g.Map(categories, func(category *models.Category) g.Node {
				return Li(
					A(Href("/category/"+category.Slug), g.Text(category.Title)),
					g.If(category.PostCount != 0, Span(Class("meta"), g.Textf(" (%d)", category.PostCount))),
				)
			})...),
		),
	)
}

func (e endpoints) posts(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.session(req)
	if err != nil {
		return err
	}

	posts, postsErr := e.Client.Posts(req.Context())
	logListFailure("posts", postsErr)

	page := listing.Paginate(posts, listing.ParsePageNumber(req.URL.Query().Get("page")), listing.CategoryPageSize)

	return renderPage(rw, req, http.StatusOK, pageProps{Title: "Posts", User: sessionUser(session)},
		H1(g.Text("All posts")),
		g.If(postsErr != nil, unavailable("Posts")),
		g.If(postsErr == nil && len(page.Items) == 0, P(I(g.Text("No posts on this page.")))),
		Div(Class("cards"), g.Group(g.Map(page.Items, postCard))),
		paginationLinks(req.URL, page),
	)
}

func (e endpoints) category(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.session(req)
	if err != nil {
		return err
	}
	user := sessionUser(session)
	categorySlug := req.PathValue("category")

	filter, err := listing.ParseSentimentFilter(req.URL.Query().Get("sentiment"))
	if err != nil {
		return errorPage(rw, req, http.StatusBadRequest, user, err.Error())
	}

	feed, feedErr := e.Client.CategoryFeed(req.Context(), categorySlug)
	if feedErr != nil {
		if portalapi.IsNotFound(feedErr) {
			return errorPage(rw, req, http.StatusNotFound, user, "That category does not exist.")
		}
		logListFailure("category feed", feedErr)
		feed = new(models.CategoryFeed)
	}

	// filter before paginating so the page count follows the filter
	filtered := listing.FilterBySentiment(feed.NewsArticles, filter)
	page := listing.Paginate(filtered, listing.ParsePageNumber(req.URL.Query().Get("page")), listing.CategoryPageSize)

	return renderPage(rw, req, http.StatusOK, pageProps{Title: categorySlug, User: user},
		H1(g.Text(categorySlug)),
		sentimentFilterForm(filter),
		g.If(feedErr != nil, unavailable("News articles")),
		g.If(feedErr == nil && len(page.Items) == 0, P(I(g.Text("No news articles match.")))),
		Div(Class("cards"), g.Group(g.Map(page.Items, newsCard))),
		paginationLinks(req.URL, page),
		g.If(len(feed.Posts) != 0, Section(
			H2(g.Text("Blog posts")),
			Div(Class("cards"), g.Group(g.Map(feed.Posts, postCard))),
		)),
	)
}

// sentimentFilterForm is the dropdown that reloads the category view. Changing
// the filter always returns to the first page.
func sentimentFilterForm(current listing.SentimentFilter) g.Node {
	option := func(value, label string) g.Node {
		return Option(Value(value), g.If(current.String() == value, Selected()), g.Text(label))
	}
	return FormEl(Method("get"),
		Label(For("sentiment"), g.Text("Sentiment")),
		Select(ID("sentiment"), Name("sentiment"), g.Attr("onchange", "this.form.submit()"),
			option("all", "All"),
			option("1", "Positive"),
			option("0", "Neutral"),
			option("-1", "Negative"),
		),
		NoScript(Button(Type("submit"), g.Text("Filter"))),
	)
}

func (e endpoints) postDetail(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.session(req)
	if err != nil {
		return err
	}
	user := sessionUser(session)

	post, err := e.Client.PostDetail(req.Context(), req.PathValue("slug"))
	if err != nil {
		return upstreamFailurePage(rw, req, user, "post", err)
	}

	return renderPage(rw, req, http.StatusOK, pageProps{Title: post.Title, User: user},
		Article(
			H1(g.Text(post.Title)),
			P(Class("meta"),
				g.Text(post.Profile.FullName),
				g.If(post.Date.String() != "", g.Text(" · "+post.Date.String())),
				g.If(post.Category.Slug != "", g.Group([]g.Node{
					g.Text(" · "),
					A(Href("/category/"+post.Category.Slug), g.Text(post.Category.Title)),
				})),
				g.Textf(" · %d views · %d likes", post.Views, post.LikeCount()),
			),
			g.If(post.Image != "", Img(Src(post.Image), Alt(post.Title))),
			P(g.Text(post.Description)),
			tagList(post.Tags()),
		),
		Section(
			H2(g.Textf("Comments (%d)", len(post.Comments))),
			commentList(post.Comments),
		),
	)
}

func logListFailure(what string, err error) {
	if err != nil {
		slog.Warn("unable to load list", "list", what, "error", err)
	}
}

// upstreamFailurePage answers 404 when the API reported the thing missing and
// 502 for every other failure.
func upstreamFailurePage(rw http.ResponseWriter, req *http.Request, user *models.User, what string, err error) error {
	if portalapi.IsNotFound(err) {
		return errorPage(rw, req, http.StatusNotFound, user, "That "+what+" does not exist.")
	}
	slog.Error("unable to fetch from upstream", "what", what, "error", err)
	return errorPage(rw, req, http.StatusBadGateway, user, "The "+what+" could not be loaded.")
}
