package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"git.tdpain.net/codemicro/newsPortal/cmd/portald/internal/database"
	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	"git.tdpain.net/codemicro/newsPortal/transport"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
	"github.com/samber/lo"
)

func (e endpoints) loginForm(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.session(req)
	if err != nil {
		return err
	}
	if session != nil {
		redirectWithNotice(rw, req, "/", "You are already logged in.")
		return nil
	}

	return renderPage(rw, req, http.StatusOK, pageProps{Title: "Log in"},
		H1(g.Text("Log in")),
		FormEl(Method("post"), Action("/login"),
			Input(Type("hidden"), Name("next"), Value(localPath(req.URL.Query().Get("next")))),
			Label(For("email"), g.Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Required()),
			Label(For("password"), g.Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), Required()),
			P(Button(Type("submit"), g.Text("Log in"))),
		),
		P(g.Text("No account? "), A(Href("/register"), g.Text("Register"))),
	)
}

func (e endpoints) login(rw http.ResponseWriter, req *http.Request) error {
	if err := req.ParseForm(); err != nil {
		return errorPage(rw, req, http.StatusBadRequest, nil, "Malformed form submission.")
	}
	next := localPath(req.PostForm.Get("next"))

	inputs := transport.LoginInputsFromForm(req.PostForm)
	if err := inputs.Validate(); err != nil {
		redirectWithNotice(rw, req, "/login", "Please give a valid email address and your password.")
		return nil
	}

	if notice := e.startSession(rw, req, inputs); notice != "" {
		redirectWithNotice(rw, req, "/login", notice)
		return nil
	}

	redirectWithNotice(rw, req, next, "Logged in.")
	return nil
}

// startSession exchanges inputs for a token pair and stores a new session for
// it. On failure it returns the notice to show the user.
func (e endpoints) startSession(rw http.ResponseWriter, req *http.Request, inputs *transport.LoginInputs) string {
	tokens, err := e.Client.ObtainToken(req.Context(), inputs)
	if err != nil {
		var statusErr *portalapi.StatusError
		if errors.As(err, &statusErr) && (statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusBadRequest) {
			return "Incorrect email address or password."
		}
		slog.Error("unable to obtain token", "error", err)
		return "Logging in failed. Please try again later."
	}

	user, err := portalapi.UserFromToken(tokens.Access)
	if err != nil {
		slog.Error("unable to read access token", "error", err)
		return "Logging in failed. Please try again later."
	}

	session := database.NewSession(tokens, user)
	if err := e.DB.InsertSession(req.Context(), session); err != nil {
		slog.Error("unable to store session", "error", err)
		return "Logging in failed. Please try again later."
	}

	e.setSessionCookie(rw, session)
	return ""
}

func (e endpoints) registerForm(rw http.ResponseWriter, req *http.Request) error {
	return renderPage(rw, req, http.StatusOK, pageProps{Title: "Register"},
		H1(g.Text("Register")),
		FormEl(Method("post"), Action("/register"),
			Label(For("full_name"), g.Text("Full name")),
			Input(Type("text"), ID("full_name"), Name("full_name"), Required()),
			Label(For("email"), g.Text("Email")),
			Input(Type("email"), ID("email"), Name("email"), Required()),
			Label(For("password"), g.Text("Password")),
			Input(Type("password"), ID("password"), Name("password"), g.Attr("minlength", "8"), Required()),
			Label(For("password2"), g.Text("Confirm password")),
			Input(Type("password"), ID("password2"), Name("password2"), Required()),
			P(Button(Type("submit"), g.Text("Register"))),
		),
		P(g.Text("Already registered? "), A(Href("/login"), g.Text("Log in"))),
	)
}

func (e endpoints) register(rw http.ResponseWriter, req *http.Request) error {
	if err := req.ParseForm(); err != nil {
		return errorPage(rw, req, http.StatusBadRequest, nil, "Malformed form submission.")
	}

	inputs := transport.RegisterInputsFromForm(req.PostForm)
	if err := inputs.Validate(); err != nil {
		redirectWithNotice(rw, req, "/register", "Please fill in every field. Passwords must match and be at least 8 characters long.")
		return nil
	}

	if err := e.Client.Register(req.Context(), inputs); err != nil {
		var statusErr *portalapi.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusBadRequest {
			redirectWithNotice(rw, req, "/register", "That account could not be registered. The email address may already be in use.")
			return nil
		}
		slog.Error("unable to register user", "error", err)
		redirectWithNotice(rw, req, "/register", "Registration failed. Please try again later.")
		return nil
	}

	if notice := e.startSession(rw, req, &transport.LoginInputs{Email: inputs.Email, Password: inputs.Password}); notice != "" {
		redirectWithNotice(rw, req, "/login", "Registered. "+notice)
		return nil
	}

	redirectWithNotice(rw, req, "/", "Welcome, "+inputs.FullName+".")
	return nil
}

func (e endpoints) logout(rw http.ResponseWriter, req *http.Request) error {
	if cookie, err := req.Cookie(sessionCookieName); err == nil {
		if err := e.DB.DeleteSession(req.Context(), cookie.Value); err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
	}
	e.clearSessionCookie(rw)
	redirectWithNotice(rw, req, "/", "Logged out.")
	return nil
}

func (e endpoints) profile(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}
	user := session.User()

	profile, err := e.authedClient(session).Profile(req.Context(), session.UserID)
	if e.expireSession(rw, req, session, err) {
		return nil
	}
	if err != nil {
		return upstreamFailurePage(rw, req, user, "profile", err)
	}

	return renderPage(rw, req, http.StatusOK, pageProps{Title: "Profile", User: user},
		H1(g.Text(profile.FullName)),
		g.If(profile.Image != "", Img(Src(profile.Image), Alt(profile.FullName), Width("160"))),
		Dl(
			Dt(g.Text("Email")), Dd(g.Text(user.Email)),
			g.If(user.Username != "", g.Group([]g.Node{Dt(g.Text("Username")), Dd(g.Text(user.Username))})),
			g.If(profile.Country != "", g.Group([]g.Node{Dt(g.Text("Country")), Dd(g.Text(profile.Country))})),
			g.If(profile.Date.String() != "", g.Group([]g.Node{Dt(g.Text("Joined")), Dd(g.Text(profile.Date.String()))})),
		),
		g.If(profile.Bio != "", P(Strong(g.Text(profile.Bio)))),
		g.If(profile.About != "", P(g.Text(profile.About))),
		g.If(profile.Facebook != "" || profile.Twitter != "", P(
			g.If(profile.Facebook != "", A(Href(profile.Facebook), Rel("noopener"), g.Text("Facebook"))),
			g.If(profile.Facebook != "" && profile.Twitter != "", g.Text(" · ")),
			g.If(profile.Twitter != "", A(Href(profile.Twitter), Rel("noopener"), g.Text("Twitter"))),
		)),
	)
}

func (e endpoints) bookmarks(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}

	bookmarks, bookmarksErr := e.authedClient(session).Bookmarks(req.Context(), session.UserID)
	if e.expireSession(rw, req, session, bookmarksErr) {
		return nil
	}
	if bookmarksErr != nil {
		logListFailure("bookmarks", bookmarksErr)
		bookmarks = new(models.Bookmarks)
	}

	posts := lo.Map(bookmarks.Posts, func(bm *models.PostBookmark, _ int) *models.Post {
		return bm.Post
	})
	articles := lo.Map(bookmarks.NewsArticles, func(bm *models.NewsArticleBookmark, _ int) *models.NewsArticle {
		return bm.NewsArticle
	})

	return renderPage(rw, req, http.StatusOK, pageProps{Title: "Bookmarks", User: session.User()},
		H1(g.Text("Bookmarks")),
		g.If(bookmarksErr != nil, unavailable("Bookmarks")),
		Section(
			H2(g.Text("News articles")),
			g.If(bookmarksErr == nil && len(articles) == 0, P(I(g.Text("No bookmarked news articles.")))),
			Div(Class("cards"), g.Group(g.Map(articles, newsCard))),
		),
		Section(
			H2(g.Text("Blog posts")),
			g.If(bookmarksErr == nil && len(posts) == 0, P(I(g.Text("No bookmarked posts.")))),
			Div(Class("cards"), g.Group(g.Map(posts, postCard))),
		),
	)
}
