package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

// Header is the CSV header for journal.csv. Each row is one line of an
// entry; rows sharing an entry_id form one entry.
const Header = "entry_id,date,description,category,currency,account_id,debit,credit,plot_id,season_id"

// DateFormat is the date layout used in journal files.
const DateFormat = "2006-01-02"

const (
	numFields  = 10
	colEntryID = 0
	colDate    = 1
	colDesc    = 2
	colCat     = 3
	colCurr    = 4
	colAcctID  = 5
	colDebit   = 6
	colCredit  = 7
	colPlot    = 8
	colSeason  = 9
)

// ReadEntries reads a journal.csv and groups its rows into entries in
// first-seen order. Entry fields come from the entry's first row.
func ReadEntries(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading journal CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var entries []model.JournalEntry
	pos := make(map[string]int)
	for i, rec := range records[1:] {
		e, l, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		j, seen := pos[e.ID]
		if !seen {
			j = len(entries)
			pos[e.ID] = j
			entries = append(entries, e)
		}
		entries[j].Lines = append(entries[j].Lines, l)
	}
	return entries, nil
}

// WriteEntries writes entries to a journal.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range entries {
		for i, row := range MarshalEntry(e) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing entry %s line %d: %w", e.ID, i+1, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendEntries appends entries to an existing journal.csv writer (no header).
func AppendEntries(w io.Writer, entries []model.JournalEntry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for _, e := range entries {
		for i, row := range MarshalEntry(e) {
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing entry %s line %d: %w", e.ID, i+1, err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalEntry converts an entry to one CSV row per line.
func MarshalEntry(e model.JournalEntry) [][]string {
	rows := make([][]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		row := make([]string, numFields)
		row[colEntryID] = e.ID
		row[colDate] = e.Date.Format(DateFormat)
		row[colDesc] = e.Description
		row[colCat] = e.Category
		row[colCurr] = e.Currency
		row[colAcctID] = l.AccountID
		switch l.Type {
		case model.Debit:
			row[colDebit] = l.Amount.StringFixed(2)
		case model.Credit:
			row[colCredit] = l.Amount.StringFixed(2)
		}
		row[colPlot] = l.PlotID
		row[colSeason] = l.SeasonID
		rows = append(rows, row)
	}
	return rows
}

// UnmarshalRow converts a CSV row into the entry it belongs to (without
// lines) and the line it carries.
func UnmarshalRow(record []string) (model.JournalEntry, model.JournalEntryLine, error) {
	if len(record) != numFields {
		return model.JournalEntry{}, model.JournalEntryLine{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	if record[colEntryID] == "" {
		return model.JournalEntry{}, model.JournalEntryLine{}, fmt.Errorf("missing entry_id")
	}

	date, err := time.Parse(DateFormat, record[colDate])
	if err != nil {
		return model.JournalEntry{}, model.JournalEntryLine{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	line := model.JournalEntryLine{
		AccountID: record[colAcctID],
		PlotID:    record[colPlot],
		SeasonID:  record[colSeason],
	}
	switch {
	case record[colDebit] != "" && record[colCredit] != "":
		return model.JournalEntry{}, model.JournalEntryLine{}, fmt.Errorf("line has both debit and credit")
	case record[colDebit] != "":
		line.Type = model.Debit
		line.Amount, err = decimal.NewFromString(record[colDebit])
		if err != nil {
			return model.JournalEntry{}, model.JournalEntryLine{}, fmt.Errorf("parsing debit %q: %w", record[colDebit], err)
		}
	case record[colCredit] != "":
		line.Type = model.Credit
		line.Amount, err = decimal.NewFromString(record[colCredit])
		if err != nil {
			return model.JournalEntry{}, model.JournalEntryLine{}, fmt.Errorf("parsing credit %q: %w", record[colCredit], err)
		}
	default:
		return model.JournalEntry{}, model.JournalEntryLine{}, fmt.Errorf("line has neither debit nor credit")
	}

	return model.JournalEntry{
		ID:          record[colEntryID],
		Date:        date,
		Description: record[colDesc],
		Category:    record[colCat],
		Currency:    model.NormalizeCurrency(record[colCurr]),
	}, line, nil
}
