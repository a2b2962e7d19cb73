package mail

import (
	"fmt"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"go.uber.org/zap"
)

// IMAPConfig holds the settings for sent-mail housekeeping.
type IMAPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	// SentMailbox is the folder holding sent letters, e.g. "[Gmail]/Sent Mail".
	SentMailbox string
}

// Housekeeper deletes the sent letters from the outgoing mailbox, so the
// operator cannot reconstruct the pairing from their sent folder.
type Housekeeper struct {
	cfg IMAPConfig
	log *zap.SugaredLogger

	// dial is swapped in tests.
	dial func(addr string) (imapClient, error)
}

// imapClient is the slice of go-imap's client used by the housekeeper.
type imapClient interface {
	Login(username, password string) error
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	Search(criteria *imap.SearchCriteria) ([]uint32, error)
	Store(seqset *imap.SeqSet, item imap.StoreItem, value interface{}, ch chan *imap.Message) error
	Expunge(ch chan uint32) error
	Logout() error
}

// NewHousekeeper creates a Housekeeper for the given IMAP mailbox.
func NewHousekeeper(cfg IMAPConfig, log *zap.SugaredLogger) *Housekeeper {
	if cfg.SentMailbox == "" {
		cfg.SentMailbox = "[Gmail]/Sent Mail"
	}
	if cfg.Port == 0 {
		cfg.Port = 993
	}
	return &Housekeeper{
		cfg: cfg,
		log: log.Named("housekeeping"),
		dial: func(addr string) (imapClient, error) {
			return client.DialTLS(addr, nil)
		},
	}
}

// Cleanup flags every message with one of the given Message-IDs for deletion
// and expunges the mailbox. It returns the number of messages removed.
func (h *Housekeeper) Cleanup(messageIDs []string) (int, error) {
	if len(messageIDs) == 0 {
		return 0, nil
	}

	addr := fmt.Sprintf("%s:%d", h.cfg.Host, h.cfg.Port)
	h.log.Infow("Calling housekeeping to tidy away the letters", "mailbox", h.cfg.SentMailbox, "letters", len(messageIDs))

	c, err := h.dial(addr)
	if err != nil {
		return 0, fmt.Errorf("failed to connect to IMAP server %s: %w", addr, err)
	}
	defer func() {
		if err := c.Logout(); err != nil {
			h.log.Debugw("IMAP logout failed", "error", err)
		}
	}()

	if err := c.Login(h.cfg.Username, h.cfg.Password); err != nil {
		return 0, fmt.Errorf("IMAP login failed: %w", err)
	}
	if _, err := c.Select(h.cfg.SentMailbox, false); err != nil {
		return 0, fmt.Errorf("failed to select mailbox %s: %w", h.cfg.SentMailbox, err)
	}

	seqset := new(imap.SeqSet)
	found := 0
	for _, id := range messageIDs {
		criteria := imap.NewSearchCriteria()
		criteria.Header.Add("Message-Id", id)
		nums, err := c.Search(criteria)
		if err != nil {
			h.log.Warnw("Search for sent letter failed", "messageID", id, "error", err)
			continue
		}
		if len(nums) == 0 {
			continue
		}
		seqset.AddNum(nums...)
		found += len(nums)
	}

	if found == 0 {
		h.log.Infow("No sent letters found to tidy away")
		return 0, nil
	}

	item := imap.FormatFlagsOp(imap.AddFlags, true)
	flags := []interface{}{imap.DeletedFlag}
	if err := c.Store(seqset, item, flags, nil); err != nil {
		return 0, fmt.Errorf("failed to flag letters for deletion: %w", err)
	}
	if err := c.Expunge(nil); err != nil {
		return 0, fmt.Errorf("failed to expunge mailbox: %w", err)
	}

	h.log.Infow("Housekeeping done", "removed", found)
	return found, nil
}
