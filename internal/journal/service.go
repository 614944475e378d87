package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/agrifaas/farmledger/internal/id"
	"github.com/agrifaas/farmledger/internal/model"
)

// Service stores journal entries in month-partitioned CSV files under a
// workspace root: YYYY/MM/journal.csv.
type Service struct {
	root     string
	accounts AccountLookup
}

// NewService creates a journal Service.
func NewService(root string, accounts AccountLookup) *Service {
	return &Service{root: root, accounts: accounts}
}

// AddEntry validates e and appends it to its month's journal.csv. An entry
// without an ID gets the month's next sequential ID. Returns the entry as
// stored.
func (s *Service) AddEntry(e model.JournalEntry) (model.JournalEntry, error) {
	e.Currency = model.NormalizeCurrency(e.Currency)
	year, month := e.Date.Year(), int(e.Date.Month())

	existing, err := s.ReadMonth(year, month)
	if err != nil {
		return model.JournalEntry{}, err
	}
	ids := make([]string, len(existing))
	for i, x := range existing {
		ids[i] = x.ID
	}

	if e.ID == "" {
		e.ID = id.NextEntryID(e.Date, ids)
	} else if slices.Contains(ids, e.ID) {
		return model.JournalEntry{}, fmt.Errorf("%w: entry %s already exists", ErrValidation, e.ID)
	}

	if err := Err(ValidateEntry(e, s.accounts)); err != nil {
		return model.JournalEntry{}, err
	}

	if err := s.appendMonth(year, month, []model.JournalEntry{e}); err != nil {
		return model.JournalEntry{}, err
	}
	return e, nil
}

func (s *Service) appendMonth(year, month int, entries []model.JournalEntry) (err error) {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing journal: %w", cerr)
		}
	}()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendEntries(f, entries); err != nil {
		return fmt.Errorf("appending entries: %w", err)
	}
	return nil
}

// ReadMonth reads all entries for a given year/month. A missing file yields
// no entries.
func (s *Service) ReadMonth(year, month int) ([]model.JournalEntry, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

// ReadAll reads every month's journal in chronological file order.
func (s *Service) ReadAll() ([]model.JournalEntry, error) {
	paths, err := filepath.Glob(filepath.Join(s.root, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "journal.csv"))
	if err != nil {
		return nil, fmt.Errorf("listing journals: %w", err)
	}
	sort.Strings(paths)

	var all []model.JournalEntry
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening journal %s: %w", path, err)
		}
		entries, err := ReadEntries(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("reading journal %s: %w", path, err)
		}
		all = append(all, entries...)
	}
	return all, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.root, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}

// AddEntries validates every entry first and stores none if any is rejected.
// Explicit IDs must not already exist in their month or collide with another
// ID of the batch. Entries are stored in order, each receiving the next ID of
// its month when it has none.
func (s *Service) AddEntries(entries []model.JournalEntry) ([]model.JournalEntry, error) {
	var verrs []ValidationError
	months := make(map[string][]string)
	for _, e := range entries {
		key := e.Date.Format("2006-01")
		ids, err := s.monthIDs(e.Date, months)
		if err != nil {
			return nil, err
		}
		if e.ID == "" {
			e.ID = id.NextEntryID(e.Date, ids)
		} else if slices.Contains(ids, e.ID) {
			verrs = append(verrs, ValidationError{Rule: RuleDuplicate, EntryID: e.ID, Description: "entry already exists"})
		}
		months[key] = append(ids, e.ID)
		e.Currency = model.NormalizeCurrency(e.Currency)
		verrs = append(verrs, ValidateEntry(e, s.accounts)...)
	}
	if err := Err(verrs); err != nil {
		return nil, err
	}

	stored := make([]model.JournalEntry, 0, len(entries))
	for _, e := range entries {
		out, err := s.AddEntry(e)
		if err != nil {
			return stored, err
		}
		stored = append(stored, out)
	}
	return stored, nil
}

// monthIDs returns the stored IDs of d's month, reading each month once.
func (s *Service) monthIDs(d time.Time, cache map[string][]string) ([]string, error) {
	key := d.Format("2006-01")
	if ids, ok := cache[key]; ok {
		return ids, nil
	}
	existing, err := s.ReadMonth(d.Year(), int(d.Month()))
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(existing))
	for i, x := range existing {
		ids[i] = x.ID
	}
	cache[key] = ids
	return ids, nil
}
