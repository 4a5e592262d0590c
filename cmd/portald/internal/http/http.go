package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"git.tdpain.net/codemicro/newsPortal/cmd/portald/internal/config"
	"git.tdpain.net/codemicro/newsPortal/cmd/portald/internal/database"
	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const sessionCookieName = "newsportal_session"

// Listen serves the portal on conf.HTTPAddress until ctx is cancelled.
func Listen(ctx context.Context, conf *config.Config, client *portalapi.Client, db database.DB) error {
	slog.Info("starting HTTP server", "address", conf.HTTPAddress)

	server := &http.Server{
		Addr:              conf.HTTPAddress,
		Handler:           NewHandler(conf, client, db),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("unable to shut down HTTP server cleanly", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func NewHandler(conf *config.Config, client *portalapi.Client, db database.DB) http.Handler {
	e := &endpoints{Client: client, DB: db, Config: conf}

	mux := http.NewServeMux()

	handle := func(pattern, name string, fn func(http.ResponseWriter, *http.Request) error) {
		mux.Handle(pattern, http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			if err := fn(rw, req); err != nil {
				slog.Error("error in "+name+" HTTP handler", "error", err, "method", req.Method, "url", req.URL.String())
				rw.WriteHeader(http.StatusInternalServerError)
			}
		}))
	}

	handle("GET /{$}", "home", e.home)
	handle("GET /posts", "posts", e.posts)
	handle("GET /category/{category}", "category", e.category)
	handle("GET /post/{slug}", "postDetail", e.postDetail)

	handle("GET /news/{id}", "newsDetail", e.newsDetail)
	handle("GET /news/{id}/trends.csv", "trendsCSV", e.trendsCSV)
	handle("POST /news/{id}/comment", "comment", e.comment)
	handle("POST /news/{id}/like", "like", e.like)
	handle("POST /news/{id}/bookmark", "bookmark", e.bookmark)

	handle("GET /bookmarks", "bookmarks", e.bookmarks)
	handle("GET /profile", "profile", e.profile)

	handle("GET /dashboard", "dashboard", e.dashboard)
	handle("POST /dashboard/notifications/{id}/seen", "markNotificationSeen", e.markNotificationSeen)
	handle("POST /dashboard/comments/{id}/reply", "replyToComment", e.replyToComment)
	handle("GET /dashboard/posts/new", "newPostForm", e.newPostForm)
	handle("POST /dashboard/posts/new", "createPost", e.createPost)
	handle("GET /dashboard/posts/{id}/edit", "editPostForm", e.editPostForm)
	handle("POST /dashboard/posts/{id}/edit", "updatePost", e.updatePost)

	handle("GET /login", "loginForm", e.loginForm)
	handle("POST /login", "login", e.login)
	handle("GET /register", "registerForm", e.registerForm)
	handle("POST /register", "register", e.register)
	handle("POST /logout", "logout", e.logout)

	mux.Handle("GET /healthz", http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusNoContent)
	}))
	mux.Handle("GET /metrics", promhttp.Handler())

	return mux
}

type endpoints struct {
	Client *portalapi.Client
	DB     database.DB
	Config *config.Config
}

// session returns the session attached to req, or nil if the request is
// anonymous or its cookie is stale.
func (e endpoints) session(req *http.Request) (*database.Session, error) {
	cookie, err := req.Cookie(sessionCookieName)
	if err != nil {
		return nil, nil
	}
	session, err := e.DB.GetSession(req.Context(), cookie.Value)
	if errors.Is(err, database.ErrSessionNotFound) {
		return nil, nil
	}
	return session, err
}

// authedClient carries session's access token. Public endpoints use e.Client
// so a stale token never breaks them.
func (e endpoints) authedClient(session *database.Session) *portalapi.Client {
	return e.Client.WithToken(session.AccessToken)
}

// expireSession ends session when err shows the API no longer accepts its
// token, and sends the browser to log in again. It reports whether it did so.
func (e endpoints) expireSession(rw http.ResponseWriter, req *http.Request, session *database.Session, err error) bool {
	if !portalapi.IsUnauthorized(err) {
		return false
	}
	if err := e.DB.DeleteSession(req.Context(), session.ID); err != nil {
		slog.Error("unable to delete expired session", "error", err)
	}
	e.clearSessionCookie(rw)
	redirectToLogin(rw, req, "Your session has expired. Please log in again.")
	return true
}

func (e endpoints) setSessionCookie(rw http.ResponseWriter, session *database.Session) {
	http.SetCookie(rw, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   e.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (e endpoints) clearSessionCookie(rw http.ResponseWriter) {
	http.SetCookie(rw, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   e.Config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// requireSession returns the request's session. If there is none, it
// redirects to the login page and returns nil.
func (e endpoints) requireSession(rw http.ResponseWriter, req *http.Request) (*database.Session, error) {
	session, err := e.session(req)
	if err != nil {
		return nil, err
	}
	if session == nil {
		redirectToLogin(rw, req, "Please log in to continue")
		return nil, nil
	}
	return session, nil
}

// redirectToLogin sends the browser to the login page, coming back to the
// current page (or, for form posts, the page the form was on) afterwards.
func redirectToLogin(rw http.ResponseWriter, req *http.Request, notice string) {
	next := req.URL.Path
	if req.Method != http.MethodGet {
		next = req.Referer()
	}
	target := "/login?" + url.Values{"next": {localPath(next)}, "notice": {notice}}.Encode()
	http.Redirect(rw, req, target, http.StatusSeeOther)
}

func sessionUser(session *database.Session) *models.User {
	if session == nil {
		return nil
	}
	return session.User()
}

// redirectWithNotice sends the browser to target with a one-off notice banner.
func redirectWithNotice(rw http.ResponseWriter, req *http.Request, target, notice string) {
	u, err := url.Parse(localPath(target))
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	if notice != "" {
		q := u.Query()
		q.Set("notice", notice)
		u.RawQuery = q.Encode()
	}
	http.Redirect(rw, req, u.String(), http.StatusSeeOther)
}

// localPath keeps redirects on this site.
func localPath(target string) string {
	u, err := url.Parse(target)
	if err != nil || target == "" {
		return "/"
	}
	if u.Path == "" || u.Path[0] != '/' || (len(u.Path) > 1 && u.Path[1] == '/') {
		return "/"
	}
	out := &url.URL{Path: u.Path, RawQuery: u.RawQuery}
	q := out.Query()
	q.Del("notice")
	out.RawQuery = q.Encode()
	return out.String()
}
