package http

import (
	"fmt"
	"strings"

	"git.tdpain.net/codemicro/newsPortal/models"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const (
	chartWidth   = 640
	chartHeight  = 240
	chartPadding = 40
)

// trendChart draws points as an SVG line chart of sentiment (-1 to 1) against
// date, in the order given.
func trendChart(points []models.TrendPoint) g.Node {
	if len(points) == 0 {
		return P(I(g.Text("No chartable sentiment values for this keyword.")))
	}

	plotWidth := float64(chartWidth - 2*chartPadding)
	plotHeight := float64(chartHeight - 2*chartPadding)

	x := func(i int) float64 {
		if len(points) == 1 {
			return chartPadding + plotWidth/2
		}
		return chartPadding + float64(i)*plotWidth/float64(len(points)-1)
	}
	y := func(score float64) float64 {
		return chartPadding + (1-(score+1)/2)*plotHeight
	}

	var grid []g.Node
	for _, score := range []int{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
		lineY := y(float64(score))
		grid = append(grid,
			g.El("line",
				g.Attr("x1", fmt.Sprint(chartPadding)), g.Attr("x2", fmt.Sprint(chartWidth-chartPadding)),
				g.Attr("y1", formatCoord(lineY)), g.Attr("y2", formatCoord(lineY)),
				g.Attr("stroke", "#ddd"),
			),
			g.El("text",
				g.Attr("x", fmt.Sprint(chartPadding-6)), g.Attr("y", formatCoord(lineY+4)),
				g.Attr("text-anchor", "end"), g.Attr("font-size", "11"),
				g.Text(models.SentimentLabel(score)),
			),
		)
	}

	coords := make([]string, len(points))
	markers := make([]g.Node, len(points))
	for i, point := range points {
		px, py := x(i), y(point.SentimentScore)
		coords[i] = formatCoord(px) + "," + formatCoord(py)
		markers[i] = g.El("circle",
			g.Attr("cx", formatCoord(px)), g.Attr("cy", formatCoord(py)), g.Attr("r", "3"),
			g.Attr("fill", "#2471a3"),
			g.El("title", g.Textf("%s: %s", point.Date, models.SentimentLabel(int(point.SentimentScore)))),
		)
	}

	dateLabel := func(i int, anchor string) g.Node {
		return g.El("text",
			g.Attr("x", formatCoord(x(i))), g.Attr("y", fmt.Sprint(chartHeight-chartPadding/2)),
			g.Attr("text-anchor", anchor), g.Attr("font-size", "11"),
			g.Text(points[i].Date),
		)
	}

	return SVG(
		g.Attr("viewBox", fmt.Sprintf("0 0 %d %d", chartWidth, chartHeight)),
		g.Attr("width", "100%"),
		g.Attr("role", "img"),
		g.Attr("aria-label", "Sentiment over time"),
		g.Group(grid),
		g.El("polyline",
			g.Attr("points", strings.Join(coords, " ")),
			g.Attr("fill", "none"), g.Attr("stroke", "#2471a3"), g.Attr("stroke-width", "2"),
		),
		g.Group(markers),
		dateLabel(0, "start"),
		g.If(len(points) > 1, dateLabel(len(points)-1, "end")),
	)
}

func formatCoord(f float64) string {
	return fmt.Sprintf("%.1f", f)
}
