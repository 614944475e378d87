package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/agrifaas/farmledger/internal/reports"
)

// numFmtAmount is excelize's built-in "#,##0.00" format.
const numFmtAmount = 4

// XLSX writes t as a single-sheet workbook. Amounts are stored as numbers so
// the sheet can be recalculated; header, subtotal and total rows are bold.
func XLSX(w io.Writer, t reports.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	amount, err := f.NewStyle(&excelize.Style{NumFmt: numFmtAmount})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}
	boldAmount, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, NumFmt: numFmtAmount})
	if err != nil {
		return fmt.Errorf("creating style: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := styleRow(f, sheet, 1, len(t.Columns), bold, bold); err != nil {
		return err
	}

	for i, r := range t.Rows {
		row := i + 2
		values := []any{r.Text()}
		for j, v := range r.Amounts() {
			if j+1 >= len(t.Columns) {
				break
			}
			values = append(values, v.InexactFloat64())
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		if r.Kind() == reports.KindData {
			err = styleRow(f, sheet, row, len(t.Columns), 0, amount)
		} else {
			err = styleRow(f, sheet, row, len(t.Columns), bold, boldAmount)
		}
		if err != nil {
			return err
		}
	}

	next := len(t.Rows) + 3
	for i, n := range t.Notes {
		cell, err := excelize.CoordinatesToCellName(1, next+i)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, n); err != nil {
			return fmt.Errorf("writing note: %w", err)
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 40); err != nil {
		return err
	}
	if len(t.Columns) > 1 {
		last, err := excelize.ColumnNumberToName(len(t.Columns))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "B", last, 16); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func styleRow(f *excelize.File, sheet string, row, cols, labelStyle, amountStyle int) error {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if labelStyle != 0 {
		if err := f.SetCellStyle(sheet, first, first, labelStyle); err != nil {
			return fmt.Errorf("styling row %d: %w", row, err)
		}
	}
	if cols < 2 {
		return nil
	}
	from, _ := excelize.CoordinatesToCellName(2, row)
	to, _ := excelize.CoordinatesToCellName(cols, row)
	if err := f.SetCellStyle(sheet, from, to, amountStyle); err != nil {
		return fmt.Errorf("styling row %d: %w", row, err)
	}
	return nil
}

// SheetName turns a report title into a valid worksheet name: at most 31
// characters with none of : \ / ? * [ ].
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(title))
	if name == "" {
		return "Report"
	}
	if r := []rune(name); len(r) > 31 {
		name = strings.TrimSpace(string(r[:31]))
	}
	return name
}
