// Package importer reads journal entries in bulk from CSV files dropped into
// a workspace's import/ directory.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agrifaas/farmledger/internal/journal"
	"github.com/agrifaas/farmledger/internal/model"
)

// Parser converts an import CSV into journal entries.
type Parser interface {
	Parse(r io.Reader) ([]model.JournalEntry, error)
	Format() string
	Detect(header []string) bool
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
	order   []string
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
	r.order = append(r.order, key)
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Detect returns the first registered parser accepting header, or nil.
func (r *Registry) Detect(header []string) Parser {
	for _, key := range r.order {
		if p := r.parsers[key]; p.Detect(header) {
			return p
		}
	}
	return nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&JournalParser{})
	r.Register(&CashbookParser{})
	return r
}

// JournalParser reads files in the workspace's own journal.csv format.
// Source entry IDs only group rows; stored entries get fresh IDs.
type JournalParser struct{}

// Format returns the parser name.
func (p *JournalParser) Format() string { return "journal" }

// Detect reports whether header is a journal.csv header.
func (p *JournalParser) Detect(header []string) bool {
	return headerEquals(header, strings.Split(journal.Header, ","))
}

// Parse reads a journal.csv and clears the entry IDs.
func (p *JournalParser) Parse(r io.Reader) ([]model.JournalEntry, error) {
	entries, err := journal.ReadEntries(r)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].ID = ""
	}
	return entries, nil
}

// ParseFile detects the format of the CSV at path and parses it.
func (r *Registry) ParseFile(path string) ([]model.JournalEntry, Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	p := r.Detect(header)
	if p == nil {
		return nil, nil, fmt.Errorf("unrecognized import format in %s (header %q)", filepath.Base(path), strings.Join(header, ","))
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, nil, fmt.Errorf("rewinding %s: %w", path, err)
	}
	entries, err := p.Parse(f)
	if err != nil {
		return nil, p, fmt.Errorf("parsing %s as %s: %w", filepath.Base(path), p.Format(), err)
	}
	return entries, p, nil
}

// AccountResolver resolves an account reference given by ID or name.
type AccountResolver interface {
	Resolve(ref string) (model.Account, bool)
}

// ResolveAccounts rewrites line account references given by name to account
// IDs, and fills a missing entry currency from its first resolvable account.
// Unresolvable references are left untouched for validation to reject.
func ResolveAccounts(entries []model.JournalEntry, accounts AccountResolver) {
	for i := range entries {
		e := &entries[i]
		for j := range e.Lines {
			acct, ok := accounts.Resolve(e.Lines[j].AccountID)
			if !ok {
				continue
			}
			e.Lines[j].AccountID = acct.ID
			if e.Currency == "" {
				e.Currency = model.NormalizeCurrency(acct.Currency)
			}
		}
	}
}

func headerEquals(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		h := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(got[i], "\ufeff")))
		if h != want[i] {
			return false
		}
	}
	return true
}

// importDir is the subdirectory for import CSVs.
const importDir = "import"

// processedDir is the subdirectory for processed CSVs.
const processedDir = "import/processed"

// Scan returns CSV files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
