package export

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/agrifaas/farmledger/internal/reports"
)

// Markdown renders t as a GitHub-flavoured Markdown table with amounts
// formatted in currency. Section headers and totals are bold.
func Markdown(t reports.Table, currency string) string {
	var b strings.Builder
	if t.Title != "" {
		fmt.Fprintf(&b, "## %s\n\n", t.Title)
	}

	b.WriteString("| " + strings.Join(escapeAll(t.Columns), " | ") + " |\n")
	b.WriteString("|---")
	for range t.Columns[1:] {
		b.WriteString("|---:")
	}
	b.WriteString("|\n")

	for _, r := range t.Rows {
		cells := make([]string, len(t.Columns))
		cells[0] = escape(r.Text())
		for i, v := range r.Amounts() {
			if i+1 >= len(cells) {
				break
			}
			cells[i+1] = Amount(v, currency)
		}
		if r.Kind() != reports.KindData {
			for i, c := range cells {
				if c != "" {
					cells[i] = "**" + c + "**"
				}
			}
		}
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	if len(t.Notes) > 0 {
		b.WriteString("\n")
		for _, n := range t.Notes {
			fmt.Fprintf(&b, "> %s\n", escape(n))
		}
	}
	return b.String()
}

// Render renders Markdown for a terminal. style is a glamour standard style
// name ("dark", "light", "notty", ...); empty picks one from the terminal.
func Render(md, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func escapeAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = escape(s)
	}
	return out
}
