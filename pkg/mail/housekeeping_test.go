package mail

import (
	"errors"
	"testing"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeIMAP struct {
	loggedIn  bool
	selected  string
	searches  []string
	stored    *imap.SeqSet
	expunged  bool
	loggedOut bool

	// byMessageID maps a Message-ID header value to sequence numbers.
	byMessageID map[string][]uint32
	searchErr   error
}

func (f *fakeIMAP) Login(username, password string) error {
	f.loggedIn = true
	return nil
}

func (f *fakeIMAP) Select(name string, readOnly bool) (*imap.MailboxStatus, error) {
	f.selected = name
	return &imap.MailboxStatus{Name: name}, nil
}

func (f *fakeIMAP) Search(criteria *imap.SearchCriteria) ([]uint32, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	ids := criteria.Header.Get("Message-Id")
	f.searches = append(f.searches, ids)
	return f.byMessageID[ids], nil
}

func (f *fakeIMAP) Store(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error {
	f.stored = seqset
	return nil
}

func (f *fakeIMAP) Expunge(ch chan uint32) error {
	f.expunged = true
	return nil
}

func (f *fakeIMAP) Logout() error {
	f.loggedOut = true
	return nil
}

func newTestHousekeeper(fake *fakeIMAP) *Housekeeper {
	h := NewHousekeeper(IMAPConfig{
		Host:     "imap.example.com",
		Username: "santa@example.com",
		Password: "secret",
	}, zap.NewNop().Sugar())
	h.dial = func(addr string) (imapClient, error) {
		return fake, nil
	}
	return h
}

func TestCleanupFlagsAndExpunges(t *testing.T) {
	fake := &fakeIMAP{byMessageID: map[string][]uint32{
		"<id-1@example.com>": {3},
		"<id-2@example.com>": {7},
	}}
	h := newTestHousekeeper(fake)

	removed, err := h.Cleanup([]string{"<id-1@example.com>", "<id-2@example.com>"})
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.True(t, fake.loggedIn)
	assert.Equal(t, "[Gmail]/Sent Mail", fake.selected, "default sent mailbox")
	require.NotNil(t, fake.stored)
	assert.True(t, fake.stored.Contains(3))
	assert.True(t, fake.stored.Contains(7))
	assert.True(t, fake.expunged)
	assert.True(t, fake.loggedOut)
}

func TestCleanupNoMessageIDs(t *testing.T) {
	fake := &fakeIMAP{}
	h := newTestHousekeeper(fake)

	removed, err := h.Cleanup(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.False(t, fake.loggedIn, "no connection without letters to tidy")
}

func TestCleanupNothingFound(t *testing.T) {
	fake := &fakeIMAP{byMessageID: map[string][]uint32{}}
	h := newTestHousekeeper(fake)

	removed, err := h.Cleanup([]string{"<missing@example.com>"})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Nil(t, fake.stored)
	assert.False(t, fake.expunged)
}

func TestCleanupSearchFailureIsNonFatalPerMessage(t *testing.T) {
	fake := &fakeIMAP{searchErr: errors.New("server busy")}
	h := newTestHousekeeper(fake)

	removed, err := h.Cleanup([]string{"<id@example.com>"})
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestCleanupDialFailure(t *testing.T) {
	h := NewHousekeeper(IMAPConfig{Host: "imap.example.com"}, zap.NewNop().Sugar())
	h.dial = func(addr string) (imapClient, error) {
		return nil, errors.New("connection refused")
	}

	_, err := h.Cleanup([]string{"<id@example.com>"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect")
}
