package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/transport"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
	"golang.org/x/sync/errgroup"
)

func (e endpoints) dashboard(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}
	client := e.authedClient(session)
	ctx := req.Context()

	var (
		stats         *models.AuthorStats
		posts         []*models.Post
		comments      []*models.Comment
		notifications []*models.Notification

		statsErr, postsErr, commentsErr, notificationsErr error
	)

	// every section is fetched even when another fails, so the group is not
	// given a context to cancel
	var eg errgroup.Group
	eg.Go(func() error {
		stats, statsErr = client.DashboardStats(ctx, session.UserID)
		return statsErr
	})
	eg.Go(func() error {
		posts, postsErr = client.DashboardPosts(ctx, session.UserID)
		return postsErr
	})
	eg.Go(func() error {
		comments, commentsErr = client.DashboardComments(ctx)
		return commentsErr
	})
	eg.Go(func() error {
		notifications, notificationsErr = client.DashboardNotifications(ctx, session.UserID)
		return notificationsErr
	})
	if err := eg.Wait(); err != nil {
		if e.expireSession(rw, req, session, err) {
			return nil
		}
		slog.Warn("unable to load every dashboard section", "error", err)
	}

	return renderPage(rw, req, http.StatusOK, pageProps{Title: "Dashboard", User: session.User()},
		H1(g.Text("Dashboard")),
		Section(
			H2(g.Text("Statistics")),
			g.If(statsErr != nil, unavailable("Statistics")),
			g.If(stats != nil, statsTable(stats)),
		),
		Section(
			H2(g.Text("Posts")),
			P(A(Href("/dashboard/posts/new"), g.Text("Write a new post"))),
			g.If(postsErr != nil, unavailable("Posts")),
			g.If(postsErr == nil && len(posts) == 0, P(I(g.Text("You have not written any posts yet.")))),
			Ul(g.Map(posts, func(post *models.Post) g.Node {
				return Li(
					A(Href("/post/"+url.PathEscape(post.Slug)), g.Text(post.Title)),
					Span(Class("meta"), g.Textf(" %s · %d views · %d likes ", post.Status, post.Views, post.LikeCount())),
					A(Href(fmt.Sprintf("/dashboard/posts/%d/edit", post.ID)), g.Text("Edit")),
				)
			})...),
		),
		Section(
			H2(g.Text("Comments")),
			g.If(commentsErr != nil, unavailable("Comments")),
			g.If(commentsErr == nil && len(comments) == 0, P(I(g.Text("No comments yet.")))),
			Ul(g.Map(comments, commentWithReplyForm)...),
		),
		Section(
			H2(g.Text("Notifications")),
			g.If(notificationsErr != nil, unavailable("Notifications")),
			g.If(notificationsErr == nil && len(notifications) == 0, P(I(g.Text("Nothing new.")))),
			Ul(g.Map(notifications, func(n *models.Notification) g.Node {
				return Li(
					g.Text(n.Type),
					g.If(n.Post.Title != "", g.Text(" on "+n.Post.Title)),
					g.If(n.Date.String() != "", Span(Class("meta"), g.Text(" "+n.Date.String()))),
					g.Text(" "),
					FormEl(Class("inline"), Method("post"), Action(fmt.Sprintf("/dashboard/notifications/%d/seen", n.ID)),
						Button(Type("submit"), g.Text("Mark as seen")),
					),
				)
			})...),
		),
	)
}

func statsTable(stats *models.AuthorStats) g.Node {
	return Table(
		THead(Tr(Th(g.Text("Views")), Th(g.Text("Posts")), Th(g.Text("Likes")), Th(g.Text("Bookmarks")))),
		TBody(Tr(
			Td(g.Textf("%d", stats.Views)),
			Td(g.Textf("%d", stats.Posts)),
			Td(g.Textf("%d", stats.Likes)),
			Td(g.Textf("%d", stats.Bookmarks)),
		)),
	)
}

func commentWithReplyForm(comment *models.Comment) g.Node {
	return Li(
		Strong(g.Text(comment.Name)),
		g.If(comment.Date.String() != "", Span(Class("meta"), g.Text(" "+comment.Date.String()))),
		P(g.Text(comment.Comment)),
		g.If(comment.Reply != "", P(Class("meta"), g.Text("Your reply: "+comment.Reply))),
		g.If(comment.Reply == "", FormEl(Method("post"), Action(fmt.Sprintf("/dashboard/comments/%d/reply", comment.ID)),
			Label(For(fmt.Sprintf("reply-%d", comment.ID)), g.Text("Reply")),
			Textarea(ID(fmt.Sprintf("reply-%d", comment.ID)), Name("reply"), Required()),
			Button(Type("submit"), g.Text("Send reply")),
		)),
	)
}

func pathID(req *http.Request) (int, bool) {
	id, err := strconv.Atoi(req.PathValue("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func (e endpoints) markNotificationSeen(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}

	id, ok := pathID(req)
	if !ok {
		return errorPage(rw, req, http.StatusNotFound, session.User(), "That notification does not exist.")
	}

	err = e.authedClient(session).MarkNotificationSeen(req.Context(), id)
	if e.expireSession(rw, req, session, err) {
		return nil
	}
	if err != nil {
		slog.Error("unable to mark notification seen", "error", err, "notification", id)
		redirectWithNotice(rw, req, "/dashboard", "The notification could not be updated.")
		return nil
	}

	redirectWithNotice(rw, req, "/dashboard", "Notification marked as seen.")
	return nil
}

func (e endpoints) replyToComment(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}

	id, ok := pathID(req)
	if !ok {
		return errorPage(rw, req, http.StatusNotFound, session.User(), "That comment does not exist.")
	}

	if err := req.ParseForm(); err != nil {
		return errorPage(rw, req, http.StatusBadRequest, session.User(), "Malformed form submission.")
	}

	inputs := &transport.ReplyInputs{CommentID: id, Reply: strings.TrimSpace(req.PostForm.Get("reply"))}
	if err := inputs.Validate(); err != nil {
		redirectWithNotice(rw, req, "/dashboard", "A reply cannot be empty.")
		return nil
	}

	err = e.authedClient(session).ReplyToComment(req.Context(), inputs)
	if e.expireSession(rw, req, session, err) {
		return nil
	}
	if err != nil {
		slog.Error("unable to reply to comment", "error", err, "comment", id)
		redirectWithNotice(rw, req, "/dashboard", "Your reply could not be sent.")
		return nil
	}

	redirectWithNotice(rw, req, "/dashboard", "Reply sent.")
	return nil
}

func (e endpoints) newPostForm(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}

	categories, err := e.Client.Categories(req.Context())
	logListFailure("categories", err)

	return renderPage(rw, req, http.StatusOK, pageProps{Title: "New post", User: session.User()},
		H1(g.Text("New post")),
		g.If(err != nil, unavailable("Categories")),
		postForm("/dashboard/posts/new", &transport.PostInputs{Status: models.PostStatuses[0]}, categories),
	)
}

func (e endpoints) createPost(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}

	if err := req.ParseForm(); err != nil {
		return errorPage(rw, req, http.StatusBadRequest, session.User(), "Malformed form submission.")
	}

	inputs := transport.PostInputsFromForm(req.PostForm)
	if err := inputs.Validate(); err != nil {
		redirectWithNotice(rw, req, "/dashboard/posts/new", "Please give a title, a description, a category and a status.")
		return nil
	}

	err = e.authedClient(session).CreatePost(req.Context(), session.UserID, inputs)
	if e.expireSession(rw, req, session, err) {
		return nil
	}
	if err != nil {
		slog.Error("unable to create post", "error", err, "user", session.UserID)
		redirectWithNotice(rw, req, "/dashboard/posts/new", "The post could not be created.")
		return nil
	}

	redirectWithNotice(rw, req, "/dashboard", "Post created.")
	return nil
}

func (e endpoints) editPostForm(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}
	user := session.User()

	id, ok := pathID(req)
	if !ok {
		return errorPage(rw, req, http.StatusNotFound, user, "That post does not exist.")
	}

	post, err := e.authedClient(session).DashboardPost(req.Context(), session.UserID, id)
	if e.expireSession(rw, req, session, err) {
		return nil
	}
	if err != nil {
		return upstreamFailurePage(rw, req, user, "post", err)
	}

	categories, categoriesErr := e.Client.Categories(req.Context())
	logListFailure("categories", categoriesErr)

	inputs := &transport.PostInputs{
		Title:       post.Title,
		Image:       post.Image,
		Description: post.Description,
		Tags:        post.RawTags,
		CategoryID:  post.Category.ID,
		Status:      post.Status,
	}

	return renderPage(rw, req, http.StatusOK, pageProps{Title: "Edit " + post.Title, User: user},
		H1(g.Text("Edit post")),
		g.If(categoriesErr != nil, unavailable("Categories")),
		postForm(fmt.Sprintf("/dashboard/posts/%d/edit", id), inputs, categories),
	)
}

func (e endpoints) updatePost(rw http.ResponseWriter, req *http.Request) error {
	session, err := e.requireSession(rw, req)
	if err != nil || session == nil {
		return err
	}

	id, ok := pathID(req)
	if !ok {
		return errorPage(rw, req, http.StatusNotFound, session.User(), "That post does not exist.")
	}
	target := fmt.Sprintf("/dashboard/posts/%d/edit", id)

	if err := req.ParseForm(); err != nil {
		return errorPage(rw, req, http.StatusBadRequest, session.User(), "Malformed form submission.")
	}

	inputs := transport.PostInputsFromForm(req.PostForm)
	if err := inputs.Validate(); err != nil {
		redirectWithNotice(rw, req, target, "Please give a title, a description, a category and a status.")
		return nil
	}

	err = e.authedClient(session).UpdatePost(req.Context(), session.UserID, id, inputs)
	if e.expireSession(rw, req, session, err) {
		return nil
	}
	if err != nil {
		slog.Error("unable to update post", "error", err, "post", id, "user", session.UserID)
		redirectWithNotice(rw, req, target, "The post could not be updated.")
		return nil
	}

	redirectWithNotice(rw, req, "/dashboard", "Post updated.")
	return nil
}

func postForm(action string, current *transport.PostInputs, categories []*models.Category) g.Node {
	return FormEl(Method("post"), Action(action),
		Label(For("title"), g.Text("Title")),
		Input(Type("text"), ID("title"), Name("title"), Value(current.Title), Required()),
		Label(For("image"), g.Text("Image URL")),
		Input(Type("url"), ID("image"), Name("image"), Value(current.Image)),
		Label(For("description"), g.Text("Description")),
		Textarea(ID("description"), Name("description"), g.Attr("rows", "10"), Required(), g.Text(current.Description)),
		Label(For("tags"), g.Text("Tags (comma separated)")),
		Input(Type("text"), ID("tags"), Name("tags"), Value(current.Tags)),
		Label(For("category"), g.Text("Category")),
		Select(ID("category"), Name("category"), Required(),
			Option(Value(""), g.Text("Choose a category")),
			g.Group(g.Map(categories, func(category *models.Category) g.Node {
				return Option(
					Value(strconv.Itoa(category.ID)),
					g.If(category.ID == current.CategoryID, Selected()),
					g.Text(category.Title),
				)
			})),
		),
		Label(For("post_status"), g.Text("Status")),
		Select(ID("post_status"), Name("post_status"),
			g.Group(g.Map(models.PostStatuses, func(status string) g.Node {
				return Option(Value(status), g.If(status == current.Status, Selected()), g.Text(status))
			})),
		),
		P(Button(Type("submit"), g.Text("Save"))),
	)
}
