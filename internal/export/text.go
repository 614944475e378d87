package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/agrifaas/farmledger/internal/reports"
)

// Text writes t as an aligned plain-text table: labels left-aligned, amounts
// right-aligned, data rows indented under their section header and a rule
// above every subtotal and total.
func Text(w io.Writer, t reports.Table) error {
	recs := t.Records()
	widths := make([]int, len(t.Columns))
	for i, rec := range recs {
		for j, cell := range rec {
			n := utf8.RuneCountInString(cell)
			if j == 0 && i > 0 && t.Rows[i-1].Kind() == reports.KindData {
				n += 2
			}
			widths[j] = max(widths[j], n)
		}
	}

	bw := bufio.NewWriter(w)
	if t.Title != "" {
		fmt.Fprintln(bw, t.Title)
		fmt.Fprintln(bw)
	}
	writeLine(bw, recs[0], widths)
	writeRule(bw, widths, '=')
	for i, r := range t.Rows {
		rec := recs[i+1]
		switch r.Kind() {
		case reports.KindHeader:
			if i > 0 {
				fmt.Fprintln(bw)
			}
		case reports.KindData:
			rec[0] = "  " + rec[0]
		case reports.KindSubtotal, reports.KindTotal:
			writeRule(bw, widths, '-')
		}
		writeLine(bw, rec, widths)
	}
	if len(t.Notes) > 0 {
		fmt.Fprintln(bw)
		for _, n := range t.Notes {
			fmt.Fprintln(bw, n)
		}
	}
	return bw.Flush()
}

func writeLine(w io.Writer, rec []string, widths []int) {
	var b strings.Builder
	for j, cell := range rec {
		pad := strings.Repeat(" ", widths[j]-utf8.RuneCountInString(cell))
		if j == 0 {
			b.WriteString(cell + pad)
			continue
		}
		b.WriteString("  " + pad + cell)
	}
	fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
}

func writeRule(w io.Writer, widths []int, ch rune) {
	total := 0
	for j, n := range widths {
		total += n
		if j > 0 {
			total += 2
		}
	}
	fmt.Fprintln(w, strings.Repeat(string(ch), total))
}
