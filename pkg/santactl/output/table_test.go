package output

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santactl/santactl/pkg/pairing"
	"github.com/santactl/santactl/pkg/roster"
)

func TestWriteRosterTable(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteRosterTable(buf, []roster.Participant{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})

	out := buf.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "EMAIL")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "bob@example.com")
}

func TestWritePairingTable(t *testing.T) {
	r, _, err := roster.Validate([]roster.Entry{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})
	require.NoError(t, err)
	p, err := pairing.New().Assign(r)
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	WritePairingTable(buf, p)

	out := buf.String()
	assert.Contains(t, out, "GIVER")
	assert.Contains(t, out, "RECEIVER")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
}

func TestWriteDispatchTable(t *testing.T) {
	buf := &bytes.Buffer{}
	WriteDispatchTable(buf, []string{"Alice"}, map[string]error{
		"Bob": errors.New("mailbox unavailable"),
	})

	out := buf.String()
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "sent")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "mailbox unavailable")
}
