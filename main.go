package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"git.tdpain.net/codemicro/newsPortal/listing"
	"git.tdpain.net/codemicro/newsPortal/portalapi"
	"go.akpain.net/cfger"
)

const usage = `usage: %s <command>

commands:
  trends <title...>          print the sentiment trend of every keyword in title
  export <category> [file]   append a category's news articles to a CSV file
  snapshot                   render the home feed to static HTML in .site/
`

func newClient() (*portalapi.Client, error) {
	cl := cfger.New()
	return portalapi.New(cl.GetEnv("NEWSPORTAL_API_URL").WithDefault(portalapi.DefaultBaseURL).AsString())
}

func run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf(usage, args[0])
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	switch args[1] {
	case "trends":
		if len(args) < 3 {
			return errors.New("trends: missing article title")
		}
		return PrintTrends(ctx, os.Stdout, client, strings.Join(args[2:], " "))
	case "export":
		if len(args) < 3 {
			return errors.New("export: missing category")
		}
		filename := defaultExportFile
		if len(args) > 3 {
			filename = args[3]
		}
		filter, err := listing.ParseSentimentFilter(os.Getenv("NEWSPORTAL_SENTIMENT"))
		if err != nil {
			return fmt.Errorf("NEWSPORTAL_SENTIMENT: %w", err)
		}
		n, err := ExportCategory(ctx, client, args[2], filter, filename)
		if err != nil {
			return err
		}
		fmt.Printf("%d new articles written to %s\n", n, filename)
		return nil
	case "snapshot":
		return GenerateSnapshot(ctx, client, snapshotDir)
	default:
		return fmt.Errorf(usage, args[0])
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
