package reports

import (
	"github.com/shopspring/decimal"
)

// RowKind tags the variant of a table row.
type RowKind int

const (
	KindHeader RowKind = iota
	KindData
	KindSubtotal
	KindTotal
)

func (k RowKind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindData:
		return "data"
	case KindSubtotal:
		return "subtotal"
	case KindTotal:
		return "total"
	}
	return "unknown"
}

// Row is one line of a report table. The concrete types are HeaderRow,
// DataRow, SubtotalRow and TotalRow.
type Row interface {
	Kind() RowKind
	Text() string
	Amounts() []decimal.Decimal
}

// HeaderRow opens a section and carries no amounts.
type HeaderRow struct {
	Label string
}

// DataRow is a line item.
type DataRow struct {
	Label  string
	Values []decimal.Decimal
}

// SubtotalRow closes a section.
type SubtotalRow struct {
	Label  string
	Values []decimal.Decimal
}

// TotalRow is a report-level total.
type TotalRow struct {
	Label  string
	Values []decimal.Decimal
}

func (HeaderRow) Kind() RowKind              { return KindHeader }
func (r HeaderRow) Text() string             { return r.Label }
func (HeaderRow) Amounts() []decimal.Decimal { return nil }

func (DataRow) Kind() RowKind                { return KindData }
func (r DataRow) Text() string               { return r.Label }
func (r DataRow) Amounts() []decimal.Decimal { return r.Values }

func (SubtotalRow) Kind() RowKind                { return KindSubtotal }
func (r SubtotalRow) Text() string               { return r.Label }
func (r SubtotalRow) Amounts() []decimal.Decimal { return r.Values }

func (TotalRow) Kind() RowKind                { return KindTotal }
func (r TotalRow) Text() string               { return r.Label }
func (r TotalRow) Amounts() []decimal.Decimal { return r.Values }

// Table is the presentation shape shared by every report: a title, column
// headings and typed rows. Columns[0] heads the label column.
type Table struct {
	Title   string
	Columns []string
	Rows    []Row
	Notes   []string
}

// Records flattens the table to a header record followed by one record per
// row, amounts fixed at two decimals. This is the shape spreadsheet and CSV
// writers consume.
func (t Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Columns...))
	width := len(t.Columns)
	for _, r := range t.Rows {
		rec := make([]string, width)
		rec[0] = r.Text()
		for i, v := range r.Amounts() {
			if i+1 >= width {
				break
			}
			rec[i+1] = v.StringFixed(2)
		}
		out = append(out, rec)
	}
	return out
}

// Total returns the table's last TotalRow, if any.
func (t Table) Total() (TotalRow, bool) {
	for i := len(t.Rows) - 1; i >= 0; i-- {
		if tr, ok := t.Rows[i].(TotalRow); ok {
			return tr, true
		}
	}
	return TotalRow{}, false
}

func amounts(v ...decimal.Decimal) []decimal.Decimal {
	return v
}
