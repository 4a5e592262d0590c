package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	"git.tdpain.net/codemicro/newsPortal/transport"
	"git.tdpain.net/codemicro/newsPortal/trends"
	"github.com/jszwec/csvutil"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
	"github.com/samber/lo"
)

// articleTrends is the trend data shown alongside one news article.
type articleTrends struct {
	All      []models.KeywordSeries
	Selected models.KeywordSeries
	Found    bool
}

func loadArticleTrends(ctx context.Context, client *portalapi.Client, article *models.NewsArticle, keyword string) *articleTrends {
	all := trends.Collect(ctx, client, article.DisplayTitle(true))
	selected, found := trends.Select(all, keyword)
	return &articleTrends{All: all, Selected: selected, Found: found}
}

func (e endpoints) newsDetail(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.session(req)
	if err != nil {
		return err
	}
	user := sessionUser(session)

	id, ok := pathID(req)
	if !ok {
		return errorPage(rw, req, http.StatusNotFound, user, "That news article does not exist.")
	}

	client := e.Client
	ctx := req.Context()

	article, err := client.NewsArticle(ctx, id)
	if err != nil {
		return upstreamFailurePage(rw, req, user, "news article", err)
	}

	query := req.URL.Query()
	translated := query.Get("lang") != "original"
	trendData := loadArticleTrends(ctx, client, article, query.Get("keyword"))

	return renderPage(rw, req, http.StatusOK, pageProps{Title: article.DisplayTitle(translated), User: user},
		Article(
			H1(g.Text(article.DisplayTitle(translated))),
			P(Class("meta"),
				g.If(article.Source != "", g.Text(article.Source+" · ")),
				g.If(article.Category != "", g.Group([]g.Node{
					A(Href("/category/"+url.PathEscape(article.Category)), g.Text(article.Category)),
					g.Text(" · "),
				})),
				g.If(article.Date.String() != "", g.Text(article.Date.String()+" · ")),
				sentimentBadge(article.SentimentScore),
				g.Textf(" · %d views · %d likes", article.Views, article.LikeCount()),
			),
			languageToggle(req.URL, translated),
			g.If(article.ImageSource != "", Img(Src(article.ImageSource), Alt(article.DisplayTitle(translated)))),
			P(g.Text(article.DisplayContent(translated))),
			g.If(article.Link != "", P(A(Href(article.Link), Rel("noopener"), g.Text("Read at the source")))),
			tagList(article.Tags()),
			articleActions(article.ID),
		),
		trendSection(req.URL, article.ID, trendData),
		Section(ID("comments"),
			H2(g.Textf("Comments (%d)", len(article.Comments))),
			commentList(article.Comments),
			commentForm(article.ID, user),
		),
	)
}

func languageToggle(current *url.URL, translated bool) g.Node {
	u := *current
	q := u.Query()
	q.Del("notice")
	label := "Show original"
	if translated {
		q.Set("lang", "original")
	} else {
		q.Del("lang")
		label = "Show translation"
	}
	u.RawQuery = q.Encode()
	return P(A(Href(u.String()), g.Text(label)))
}

func articleActions(articleID int) g.Node {
	return Div(
		FormEl(Class("inline"), Method("post"), Action(fmt.Sprintf("/news/%d/like", articleID)),
			Button(Type("submit"), g.Text("Like")),
		),
		g.Text(" "),
		FormEl(Class("inline"), Method("post"), Action(fmt.Sprintf("/news/%d/bookmark", articleID)),
			Button(Type("submit"), g.Text("Bookmark")),
		),
	)
}

func trendSection(current *url.URL, articleID int, t *articleTrends) g.Node {
	if !t.Found {
		return Section(
			H2(g.Text("Sentiment trend")),
			P(I(g.Text("No trend data for this article."))),
		)
	}

	// a repeated title word is looked up twice but listed once
	withPoints := lo.Filter(t.All, func(series models.KeywordSeries, _ int) bool {
		return len(series.Points) != 0
	})
	keywords := g.Map(lo.UniqBy(withPoints, func(series models.KeywordSeries) string {
		return series.Keyword
	}), func(series models.KeywordSeries) g.Node {
		return Option(
			Value(series.Keyword),
			g.If(series.Keyword == t.Selected.Keyword, Selected()),
			g.Text(series.Keyword),
		)
	})

	csvURL := fmt.Sprintf("/news/%d/trends.csv?", articleID) + url.Values{"keyword": {t.Selected.Keyword}}.Encode()

	return Section(
		H2(g.Text("Sentiment trend")),
		FormEl(Method("get"), Action(current.Path),
			g.If(current.Query().Get("lang") == "original", Input(Type("hidden"), Name("lang"), Value("original"))),
			Label(For("keyword"), g.Text("Keyword")),
			Select(ID("keyword"), Name("keyword"), g.Attr("onchange", "this.form.submit()"), g.Group(keywords)),
			NoScript(Button(Type("submit"), g.Text("Show"))),
		),
		trendChart(trends.ChartPoints(t.Selected.Points)),
		P(A(Href(csvURL), g.Text("Download as CSV"))),
	)
}

func commentForm(articleID int, user *models.User) g.Node {
	var name, email string
	if user != nil {
		name, email = user.FullName, user.Email
	}
	return FormEl(Method("post"), Action(fmt.Sprintf("/news/%d/comment", articleID)),
		H3(g.Text("Leave a comment")),
		Label(For("full_name"), g.Text("Name")),
		Input(Type("text"), ID("full_name"), Name("full_name"), Value(name), Required()),
		Label(For("email"), g.Text("Email")),
		Input(Type("email"), ID("email"), Name("email"), Value(email), Required()),
		Label(For("comment"), g.Text("Comment")),
		Textarea(ID("comment"), Name("comment"), Required()),
		P(Button(Type("submit"), g.Text("Post comment"))),
	)
}

// trendsCSV serves the chart points of the selected keyword. Articles without
// trend data get a header-only file.
func (e endpoints) trendsCSV(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.session(req)
	if err != nil {
		return err
	}
	user := sessionUser(session)

	id, ok := pathID(req)
	if !ok {
		return errorPage(rw, req, http.StatusNotFound, user, "That news article does not exist.")
	}

	client := e.Client
	article, err := client.NewsArticle(req.Context(), id)
	if err != nil {
		return upstreamFailurePage(rw, req, user, "news article", err)
	}

	trendData := loadArticleTrends(req.Context(), client, article, req.URL.Query().Get("keyword"))
	points := trends.ChartPoints(trendData.Selected.Points)
	if points == nil {
		points = []models.TrendPoint{}
	}

	b, err := csvutil.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshal trend points: %w", err)
	}

	filename := fmt.Sprintf("trends-%d.csv", id)
	if trendData.Found {
		filename = fmt.Sprintf("trends-%d-%s.csv", id, url.PathEscape(trendData.Selected.Keyword))
	}

	rw.Header().Set("Content-Type", "text/csv; charset=utf-8")
	rw.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = rw.Write(b)
	return nil
}

func (e endpoints) comment(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.session(req)
	if err != nil {
		return err
	}

	id, ok := pathID(req)
	if !ok {
		return errorPage(rw, req, http.StatusNotFound, sessionUser(session), "That news article does not exist.")
	}
	target := fmt.Sprintf("/news/%d", id)

	if err := req.ParseForm(); err != nil {
		return errorPage(rw, req, http.StatusBadRequest, sessionUser(session), "Malformed form submission.")
	}

	inputs := transport.CommentInputsFromForm(req.PostForm)
	if err := inputs.Validate(); err != nil {
		redirectWithNotice(rw, req, target, "Please give your name, a valid email address and a comment.")
		return nil
	}

	if err := e.Client.CommentOnNewsArticle(req.Context(), id, inputs); err != nil {
		slog.Error("unable to post comment", "error", err, "article", id)
		redirectWithNotice(rw, req, target, "Your comment could not be posted.")
		return nil
	}

	redirectWithNotice(rw, req, target, "Comment posted.")
	return nil
}

func (e endpoints) like(rw http.ResponseWriter, req *http.Request) error {
	return e.articleAction(rw, req, "like", (*portalapi.Client).LikeNewsArticle)
}

func (e endpoints) bookmark(rw http.ResponseWriter, req *http.Request) error {
	return e.articleAction(rw, req, "bookmark", (*portalapi.Client).BookmarkNewsArticle)
}

type articleActionFunc func(c *portalapi.Client, ctx context.Context, userID, articleID int) (string, error)

// articleAction runs a logged-in action against a news article and reports
// the API's message back as a notice.
func (e endpoints) articleAction(rw http.ResponseWriter, req *http.Request, name string, action articleActionFunc) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}

	id, ok := pathID(req)
	if !ok {
		return errorPage(rw, req, http.StatusNotFound, session.User(), "That news article does not exist.")
	}
	target := fmt.Sprintf("/news/%d", id)

	message, err := action(e.authedClient(session), req.Context(), session.UserID, id)
	if e.expireSession(rw, req, session, err) {
		return nil
	}
	if err != nil {
		slog.Error("unable to "+name+" news article", "error", err, "article", id, "user", session.UserID)
		redirectWithNotice(rw, req, target, "Could not "+name+" the article.")
		return nil
	}
	if message == "" {
		message = "Done."
	}

	redirectWithNotice(rw, req, target, message)
	return nil
}
