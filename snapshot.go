package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"git.tdpain.net/codemicro/newsPortal/listing"
	"git.tdpain.net/codemicro/newsPortal/models"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	g "github.com/maragudk/gomponents"
	c "github.com/maragudk/gomponents/components"
	. "github.com/maragudk/gomponents/html"
	"github.com/schollz/progressbar/v3"
)

const snapshotDir = ".site"

// renderHTMLPage renders a complete HTML page
func renderHTMLPage(title string, body []g.Node) ([]byte, error) {
	b := new(bytes.Buffer)
	err := c.HTML5(c.HTML5Props{
		Title:    title,
		Language: "en-GB",
		Head:     []g.Node{Meta(g.Attr("name", "viewport"), g.Attr("content", "width=device-width, initial-scale=1"))},
		Body:     []g.Node{Div(g.Attr("class", "container"), g.Group(body))},
	}).Render(b)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func snapshotPageName(number int) string {
	if number == 1 {
		return "index.html"
	}
	return fmt.Sprintf("page-%d.html", number)
}

func snapshotPostComponent(post *models.Post) g.Node {
	return Li(
		g.Text(post.Title),
		g.If(post.Date.String() != "", g.Text(" - "+post.Date.String())),
		g.Text(" - "+post.Profile.FullName),
		g.Textf(" - %d views", post.Views),
		g.If(post.Description != "", Span(g.Attr("class", "secondary"), g.Text(" - "+truncate(post.Description, 200)))),
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func snapshotPagination(page listing.Page[*models.Post]) g.Node {
	return P(
		g.If(page.HasPrevious(), A(g.Attr("href", snapshotPageName(page.Number-1)), g.Text("Previous"))),
		g.Textf(" Page %d of %d ", page.Number, page.TotalPages),
		g.If(page.HasNext(), A(g.Attr("href", snapshotPageName(page.Number+1)), g.Text("Next"))),
	)
}

// GenerateSnapshot renders the home feed, most viewed posts first, into
// outputDir as one HTML file per page.
func GenerateSnapshot(ctx context.Context, client *portalapi.Client, outputDir string) error {
	posts, err := client.PostsByViews(ctx)
	if err != nil {
		return fmt.Errorf("fetch posts: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0777); err != nil {
		return err
	}

	totalPages := max(listing.PageCount(len(posts), listing.HomePageSize), 1)

	const pageTitle = "Trending blogs"
	generated := time.Now().Format(models.DateFormat)

	pb := progressbar.NewOptions(totalPages,
		progressbar.OptionSetDescription("rendering pages"),
	)

	for number := 1; number <= totalPages; number++ {
		page := listing.Paginate(posts, number, listing.HomePageSize)

		head := Div(
			H1(g.Text(pageTitle)),
			P(g.Textf("%d posts, generated %s", len(posts), generated)),
		)

		outputContent, err := renderHTMLPage(pageTitle, []g.Node{
			head,
			Hr(),
			Ul(g.Map(page.Items, snapshotPostComponent)...),
			snapshotPagination(page),
		})
		if err != nil {
			return err
		}

		if err := os.WriteFile(filepath.Join(outputDir, snapshotPageName(number)), outputContent, 0644); err != nil {
			return err
		}

		_ = pb.Add(1)
	}

	fmt.Println() // the progress bars do weird newline things

	return nil
}
