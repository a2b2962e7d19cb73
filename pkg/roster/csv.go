package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads raw roster entries from a two-column CSV file. The first row
// is treated as a header and skipped; the first column holds names, the
// second email addresses. Fields are whitespace-trimmed. Validation is the
// caller's job via Validate.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open roster: %w", err)
	}
	defer f.Close()
	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster %s: %w", path, err)
	}
	return entries, nil
}

// ReadEntries parses roster entries from CSV data. Extra columns beyond the
// second are ignored; a record with a name but no email column yields an
// entry with an empty address so that Validate can report it.
func ReadEntries(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var entries []Entry
	first := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if first {
			first = false
			continue
		}
		if len(record) == 0 {
			continue
		}
		entry := Entry{Name: strings.TrimSpace(record[0])}
		if len(record) > 1 {
			entry.Email = strings.TrimSpace(record[1])
		}
		if entry.Name == "" && entry.Email == "" {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
