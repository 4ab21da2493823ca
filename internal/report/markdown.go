// Package report builds markdown survey reports and renders them to HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"likertlab/app"
)

// Section is one comparison block in the report.
type Section struct {
	Heading    string
	Comparison *app.Comparison
}

// BuildMarkdown renders a full survey report as markdown: one heading
// per section, a frequency table per panel, the shared axis bound,
// descriptive statistics, and the split verdict where present.
func BuildMarkdown(title string, sections []Section) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title)

	for _, section := range sections {
		fmt.Fprintf(&b, "## %s\n\n", section.Heading)
		cmp := section.Comparison

		for _, panel := range cmp.Panels {
			fmt.Fprintf(&b, "### %s\n\n", panel.Title)
			b.WriteString("| Response | Percent |\n")
			b.WriteString("|---|---:|\n")
			for _, point := range panel.Series {
				fmt.Fprintf(&b, "| %s | %.1f%% |\n", point.Label, point.Percent)
			}
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "Shared y-axis bound: %.0f%%\n\n", cmp.YAxisMax)

		if len(cmp.Summaries) > 0 {
			b.WriteString("| Column | N | Mean | Median | Std dev | Skewness |\n")
			b.WriteString("|---|---:|---:|---:|---:|---:|\n")
			for _, s := range cmp.Summaries {
				fmt.Fprintf(&b, "| %s | %d | %.2f | %.2f | %.2f | %.2f |\n",
					s.Column, s.N, s.Mean, s.Median, s.StdDev, s.Skewness)
			}
			b.WriteString("\n")
		}

		if cmp.Split != nil {
			verdict := "no significant difference between groups"
			if cmp.Split.Significant {
				verdict = "groups differ significantly"
			}
			fmt.Fprintf(&b, "Chi-square test on %s: χ²=%.2f (df=%d), p=%.4f, V=%.3f. Verdict: %s.\n\n",
				cmp.Split.Column, cmp.Split.ChiSquare, cmp.Split.DF,
				cmp.Split.PValue, cmp.Split.CramerV, verdict)
		}
	}

	return b.String()
}

// RenderHTML converts a markdown report to an HTML fragment.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}
