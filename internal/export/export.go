// Package export writes report tables as plain text, CSV, XLSX or Markdown.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/reports"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatCSV      Format = "csv"
	FormatXLSX     Format = "xlsx"
	FormatMarkdown Format = "md"
)

// Formats lists every supported format.
var Formats = []Format{FormatText, FormatCSV, FormatXLSX, FormatMarkdown}

// ParseFormat parses a format name. "markdown" is accepted for md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown format %q (want text, csv, xlsx or md)", s)
}

// Binary reports whether the format cannot be written to a terminal.
func (f Format) Binary() bool { return f == FormatXLSX }

// Write renders t to w in format f. currency selects the money formatting
// used by the Markdown writer.
func Write(w io.Writer, t reports.Table, f Format, currency string) error {
	switch f {
	case FormatText:
		return Text(w, t)
	case FormatCSV:
		return CSV(w, t)
	case FormatXLSX:
		return XLSX(w, t)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(t, currency))
		return err
	}
	return fmt.Errorf("unknown format %q", f)
}

// CSV writes the table's records followed by one record per note.
func CSV(w io.Writer, t reports.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	for _, n := range t.Notes {
		if err := cw.Write([]string{n}); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Amount formats v in currency using its ISO symbol and grouping. Unknown
// currencies fall back to two fixed decimals.
func Amount(v decimal.Decimal, currency string) string {
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return v.StringFixed(2)
	}
	minor := v.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}
