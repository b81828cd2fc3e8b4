// Package renderer renders portfolio data structures to markdown.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/etnz/stockmarket"
)

//go:embed templates/*.md
var templates embed.FS

// Report renders a portfolio report to a markdown string.
func Report(r *stockmarket.Report) string {
	partials := map[string]string{
		"report_positions": "templates/report_positions.md",
		"report_totals":    "templates/report_totals.md",
	}
	return renderTemplate("report", "templates/report.md", partials, r)
}

// Sale renders the per-lot breakdown of a completed sale to a markdown string.
func Sale(res stockmarket.SaleResult) string {
	return renderTemplate("sale", "templates/sale.md", nil, res)
}

// WatchList renders the watch list to a markdown string.
func WatchList(w *stockmarket.WatchList) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Watch List (%d)\n\n", w.Len())
	for symbol := range w.Symbols() {
		fmt.Fprintf(&b, "* %s\n", symbol)
	}
	return b.String()
}

// renderTemplate is a generic utility to render a main template that
// depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := templates.ReadFile(mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := templates.ReadFile(file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
