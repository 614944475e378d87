package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

// CashbookParser parses a simple cashbook export where every row is one
// two-line entry: the amount is debited to one account and credited to
// another. Accounts may be given by ID or by name.
type CashbookParser struct{}

// CashbookHeader is the expected header of a cashbook CSV.
var CashbookHeader = []string{"date", "description", "category", "amount", "debit_account", "credit_account", "currency", "plot_id", "season_id"}

const (
	cbNumFields = 9
	cbColDate   = 0
	cbColDesc   = 1
	cbColCat    = 2
	cbColAmount = 3
	cbColDebit  = 4
	cbColCredit = 5
	cbColCurr   = 6
	cbColPlot   = 7
	cbColSeason = 8
)

// cashbookDateFormats are tried in order.
var cashbookDateFormats = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

// Format returns the parser name.
func (p *CashbookParser) Format() string { return "cashbook" }

// Detect reports whether header is a cashbook header.
func (p *CashbookParser) Detect(header []string) bool {
	return headerEquals(header, CashbookHeader)
}

// Parse reads a cashbook CSV and returns one entry per row.
func (p *CashbookParser) Parse(r io.Reader) ([]model.JournalEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = cbNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading cashbook CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.JournalEntry
	for i, rec := range records[1:] {
		e, err := parseCashbookRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func parseCashbookRow(rec []string) (model.JournalEntry, error) {
	date, err := parseDate(rec[cbColDate])
	if err != nil {
		return model.JournalEntry{}, err
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(rec[cbColAmount], ",", ""))
	if err != nil {
		return model.JournalEntry{}, fmt.Errorf("parsing amount %q: %w", rec[cbColAmount], err)
	}

	plot := strings.TrimSpace(rec[cbColPlot])
	season := strings.TrimSpace(rec[cbColSeason])

	return model.JournalEntry{
		Date:        date,
		Description: strings.TrimSpace(rec[cbColDesc]),
		Category:    strings.TrimSpace(rec[cbColCat]),
		Currency:    model.NormalizeCurrency(rec[cbColCurr]),
		Lines: []model.JournalEntryLine{
			{AccountID: strings.TrimSpace(rec[cbColDebit]), Type: model.Debit, Amount: amount, PlotID: plot, SeasonID: season},
			{AccountID: strings.TrimSpace(rec[cbColCredit]), Type: model.Credit, Amount: amount, PlotID: plot, SeasonID: season},
		},
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range cashbookDateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing date %q", s)
}
