package sqlstore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrifaas/farmledger/internal/model"
)

// Amounts are stored as decimal text so no precision is lost.

type accountRow struct {
	ID             string `gorm:"primaryKey;size:64"`
	Position       int    `gorm:"index"`
	Name           string `gorm:"size:128;not null"`
	Type           string `gorm:"size:16;index;not null"`
	InitialBalance string `gorm:"size:32;not null;default:0"`
	Currency       string `gorm:"size:8;not null"`
	Description    string `gorm:"type:text"`
}

func (accountRow) TableName() string { return "accounts" }

type entryRow struct {
	ID          string    `gorm:"primaryKey;size:64"`
	Date        time.Time `gorm:"index;not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"size:64;index"`
	Currency    string    `gorm:"size:8;not null"`
	CreatedAt   time.Time
	Lines       []lineRow `gorm:"foreignKey:EntryID;constraint:OnDelete:CASCADE"`
}

func (entryRow) TableName() string { return "journal_entries" }

type lineRow struct {
	ID        uint   `gorm:"primaryKey"`
	EntryID   string `gorm:"size:64;index;not null"`
	Position  int    `gorm:"not null"`
	AccountID string `gorm:"size:64;index;not null"`
	Side      string `gorm:"size:8;not null"`
	Amount    string `gorm:"size:32;not null"`
	PlotID    string `gorm:"size:64;index"`
	SeasonID  string `gorm:"size:64;index"`
}

func (lineRow) TableName() string { return "journal_lines" }

func fromAccount(a model.Account, pos int) accountRow {
	return accountRow{
		ID:             a.ID,
		Position:       pos,
		Name:           a.Name,
		Type:           string(a.Type),
		InitialBalance: a.InitialBalance.String(),
		Currency:       a.Currency,
		Description:    a.Description,
	}
}

func (r accountRow) toAccount() (model.Account, error) {
	typ, err := model.ParseAccountType(r.Type)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s: %w", r.ID, err)
	}
	initial, err := decimal.NewFromString(r.InitialBalance)
	if err != nil {
		return model.Account{}, fmt.Errorf("account %s initial balance: %w", r.ID, err)
	}
	return model.Account{
		ID:             r.ID,
		Name:           r.Name,
		Type:           typ,
		InitialBalance: initial,
		Currency:       r.Currency,
		Description:    r.Description,
	}, nil
}

func fromEntry(e model.JournalEntry) entryRow {
	row := entryRow{
		ID:          e.ID,
		Date:        model.Day(e.Date),
		Description: e.Description,
		Category:    e.Category,
		Currency:    e.Currency,
	}
	for i, l := range e.Lines {
		row.Lines = append(row.Lines, lineRow{
			EntryID:   e.ID,
			Position:  i,
			AccountID: l.AccountID,
			Side:      string(l.Type),
			Amount:    l.Amount.String(),
			PlotID:    l.PlotID,
			SeasonID:  l.SeasonID,
		})
	}
	return row
}

func (r entryRow) toEntry() (model.JournalEntry, error) {
	e := model.JournalEntry{
		ID:          r.ID,
		Date:        model.Day(r.Date),
		Description: r.Description,
		Category:    r.Category,
		Currency:    r.Currency,
	}
	for _, l := range r.Lines {
		side, err := model.ParseLineType(l.Side)
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("entry %s: %w", r.ID, err)
		}
		amount, err := decimal.NewFromString(l.Amount)
		if err != nil {
			return model.JournalEntry{}, fmt.Errorf("entry %s amount: %w", r.ID, err)
		}
		e.Lines = append(e.Lines, model.JournalEntryLine{
			AccountID: l.AccountID,
			Type:      side,
			Amount:    amount,
			PlotID:    l.PlotID,
			SeasonID:  l.SeasonID,
		})
	}
	return e, nil
}
