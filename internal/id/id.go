// Package id formats and parses journal entry identifiers.
package id

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EntryPrefix starts every generated journal entry ID.
const EntryPrefix = "JE"

// FormatEntryID returns an entry ID like "JE-2025-01-001".
func FormatEntryID(year, month, seq int) string {
	return fmt.Sprintf("%s-%04d-%02d-%03d", EntryPrefix, year, month, seq)
}

// FormatLineRef returns a reference to the n-th line (1-based) of an entry,
// e.g. "JE-2025-01-001#2". Used in validation messages.
func FormatLineRef(entryID string, n int) string {
	return entryID + "#" + strconv.Itoa(n)
}

// ParseEntryID parses "JE-2025-01-001" into year, month, seq. A line
// reference suffix is ignored.
func ParseEntryID(id string) (year, month, seq int, err error) {
	base := EntryOf(id)

	rest, ok := strings.CutPrefix(base, EntryPrefix+"-")
	if !ok {
		return 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	parts := strings.SplitN(rest, "-", 3)
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid year in entry ID %q: %w", id, err)
	}

	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ID %q: %w", id, err)
	}
	if month < 1 || month > 12 {
		return 0, 0, 0, fmt.Errorf("invalid month in entry ID %q", id)
	}

	seq, err = strconv.Atoi(parts[2])
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}

	return year, month, seq, nil
}

// EntryOf strips a line reference suffix.
// "JE-2025-01-001#2" -> "JE-2025-01-001"
func EntryOf(ref string) string {
	if i := strings.IndexByte(ref, '#'); i >= 0 {
		return ref[:i]
	}
	return ref
}

// NextEntryID returns the next sequential ID for the month of date, given the
// IDs already used. IDs that do not parse, or belong to another month, are
// ignored.
func NextEntryID(date time.Time, existing []string) string {
	maxSeq := 0
	for _, e := range existing {
		y, m, seq, err := ParseEntryID(e)
		if err != nil || y != date.Year() || m != int(date.Month()) {
			continue
		}
		maxSeq = max(maxSeq, seq)
	}
	return FormatEntryID(date.Year(), int(date.Month()), maxSeq+1)
}

// NewRunID returns a random identifier for one CLI invocation, recorded in
// the audit log.
func NewRunID() string {
	return uuid.NewString()
}
