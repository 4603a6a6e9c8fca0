// Package report renders recommendation records as markdown or HTML for planners.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gosupply/domain/core"
	"gosupply/domain/planning"
)

// Output formats
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var scenarioTitles = map[planning.Scenario]string{
	planning.ScenarioTrimMix:    "Trim mix rebalance",
	planning.ScenarioSourcing:   "Sourcing mitigation",
	planning.ScenarioRoute:      "Route optimization",
	planning.ScenarioEOLBuy:     "End-of-life buy",
	planning.ScenarioTransfer:   "Inventory transfer",
	planning.ScenarioProduction: "Production feasibility",
	planning.ScenarioForecast:   "Demand forecast",
}

// Renderer turns recommendation records into documents
type Renderer struct {
	title   string
	printer *message.Printer
}

// NewRenderer creates a renderer; an empty title uses "Planning report".
func NewRenderer(title string) *Renderer {
	if title == "" {
		title = "Planning report"
	}
	return &Renderer{title: title, printer: message.NewPrinter(language.English)}
}

// Render produces the document in the requested format and its content type
func (r *Renderer) Render(format string, records []planning.RecommendationRecord) ([]byte, string, error) {
	md := r.Markdown(records)
	switch strings.ToLower(format) {
	case "", FormatMarkdown, "md":
		return []byte(md), "text/markdown; charset=utf-8", nil
	case FormatHTML:
		return ToHTML(md), "text/html; charset=utf-8", nil
	default:
		return nil, "", core.NewInvalidArgument("format", fmt.Sprintf("unsupported report format %q", format))
	}
}

// Markdown renders records in the given order, one section each
func (r *Renderer) Markdown(records []planning.RecommendationRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.title)
	if len(records) == 0 {
		b.WriteString("No recommendations.\n")
		return b.String()
	}
	for _, rec := range records {
		r.writeRecord(&b, rec)
	}
	return b.String()
}

func (r *Renderer) writeRecord(b *strings.Builder, rec planning.RecommendationRecord) {
	title, ok := scenarioTitles[rec.Scenario]
	if !ok {
		title = string(rec.Scenario)
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "Record `%s`, created %s\n\n", rec.ID, rec.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))

	if len(rec.Actions) > 0 {
		b.WriteString("| Action | Target | Quantity | Note |\n|---|---|---:|---|\n")
		for _, a := range rec.Actions {
			qty := ""
			if a.Quantity != nil {
				qty = r.printer.Sprintf("%d", *a.Quantity)
			}
			fmt.Fprintf(b, "| %s | %s | %s | %s |\n", a.Kind, cell(a.Target), qty, cell(a.Note))
		}
		b.WriteString("\n")
	}

	if rec.Justification != "" {
		b.WriteString(rec.Justification)
		b.WriteString("\n\n")
	}

	if impact := r.impact(rec.Details); len(impact) > 0 {
		b.WriteString("### Impact\n\n")
		for _, line := range impact {
			fmt.Fprintf(b, "- %s\n", line)
		}
		b.WriteString("\n")
	}

	if len(rec.Details.Metrics) > 0 {
		b.WriteString("### Metrics\n\n| Metric | Keys | Value |\n|---|---|---:|\n")
		for _, m := range rec.Details.Metrics {
			fmt.Fprintf(b, "| %s | %s | %s |\n", m.Name, cell(keys(m.Keys)), r.value(m.Value))
		}
		b.WriteString("\n")
	}
}

func (r *Renderer) impact(d planning.Details) []string {
	var lines []string
	money := func(label string, v *float64) {
		if v != nil {
			lines = append(lines, r.printer.Sprintf("%s: %.2f", label, *v))
		}
	}
	money("Projected net margin gain", d.ProjectedNetMarginGain)
	money("Expected cost savings", d.ExpectedCostSavings)
	money("Projected total cost", d.ProjectedTotalCost)
	money("Baseline cost", d.BaselineCost)
	if d.Quantity != nil {
		lines = append(lines, r.printer.Sprintf("Quantity: %d", *d.Quantity))
	}
	if d.Score != nil {
		lines = append(lines, fmt.Sprintf("Score: %.3f", *d.Score))
	}
	if d.BindingConstraint != "" {
		lines = append(lines, "Binding constraint: "+d.BindingConstraint)
	}
	return lines
}

func (r *Renderer) value(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4g", *v)
}

func keys(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// ToHTML converts markdown to an HTML fragment
func ToHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	return markdown.ToHTML([]byte(md), p, renderer)
}
