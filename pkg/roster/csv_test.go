package roster

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEntriesSkipsHeaderAndTrims(t *testing.T) {
	data := "name,email\n" +
		"Alice , alice@example.com\n" +
		"Bob,bob@example.com \n"

	entries, err := ReadEntries(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, Entry{Name: "Alice", Email: "alice@example.com"}, entries[0])
	assert.Equal(t, Entry{Name: "Bob", Email: "bob@example.com"}, entries[1])
}

func TestReadEntriesMissingEmailColumn(t *testing.T) {
	data := "name,email\nAlice\nBob,bob@example.com\n"

	entries, err := ReadEntries(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "", entries[0].Email, "a missing column becomes an empty address for Validate to report")
}

func TestReadEntriesIgnoresExtraColumns(t *testing.T) {
	data := "name,email,team\nAlice,alice@example.com,elves\n"

	entries, err := ReadEntries(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, Entry{Name: "Alice", Email: "alice@example.com"}, entries[0])
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "roster.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,email\nAlice,alice@example.com\nBob,bob@example.com\n"), 0o600))

	entries, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open roster")
}
