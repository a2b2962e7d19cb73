package mail

import (
	"crypto/tls"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the SMTP connection and sender identity settings.
type SMTPConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	SenderAddress      string
	SenderName         string
	InsecureSkipVerify bool
}

// Letter is one fully composed message to a single giver.
type Letter struct {
	To        string
	ToName    string
	Subject   string
	TextBody  string
	HTMLBody  string
	MessageID string

	// EmbedName and EmbedData attach an inline image; the HTML body
	// references it as cid:EmbedName. Both empty means no embed.
	EmbedName string
	EmbedData []byte
}

// Sender delivers letters over a single connection per run.
type Sender interface {
	Send(letter *Letter) error
	Close() error
	Host() string
}

type sender struct {
	dialer        *gomail.Dialer
	sc            gomail.SendCloser
	senderAddress string
	senderName    string
	log           *zap.SugaredLogger
}

// NewSender creates an SMTP sender. The connection is opened lazily on the
// first Send and reused for the rest of the batch.
func NewSender(cfg SMTPConfig, log *zap.SugaredLogger) Sender {
	log.Infow("Initializing mail sender", "host", cfg.Host, "port", cfg.Port, "user", cfg.Username)
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.InsecureSkipVerify {
		log.Warnw("InsecureSkipVerify is enabled for mail TLS connection")
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	senderAddr := cfg.SenderAddress
	if senderAddr == "" {
		senderAddr = cfg.Username
	}
	senderName := cfg.SenderName
	if senderName == "" {
		senderName = "Secret Santa"
	}

	return &sender{
		dialer:        d,
		senderAddress: senderAddr,
		senderName:    senderName,
		log:           log.Named("smtp"),
	}
}

func (s *sender) Send(letter *Letter) error {
	if letter.To == "" {
		return fmt.Errorf("letter has no recipient")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", s.senderAddress, s.senderName)
	msg.SetAddressHeader("To", letter.To, letter.ToName)
	msg.SetHeader("Subject", letter.Subject)
	if letter.MessageID != "" {
		msg.SetHeader("Message-ID", letter.MessageID)
	}
	msg.SetBody("text/plain", letter.TextBody)
	if letter.HTMLBody != "" {
		msg.AddAlternative("text/html", letter.HTMLBody)
	}
	if letter.EmbedName != "" && len(letter.EmbedData) > 0 {
		data := letter.EmbedData
		msg.Embed(letter.EmbedName, gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(data)
			return err
		}))
	}

	if s.sc == nil {
		sc, err := s.dialer.Dial()
		if err != nil {
			return fmt.Errorf("failed to connect to %s:%d: %w", s.dialer.Host, s.dialer.Port, err)
		}
		s.sc = sc
	}

	if err := gomail.Send(s.sc, msg); err != nil {
		return fmt.Errorf("failed to send letter to %s: %w", letter.To, err)
	}
	s.log.Debugw("Letter sent", "to", letter.To)
	return nil
}

func (s *sender) Close() error {
	if s.sc == nil {
		return nil
	}
	err := s.sc.Close()
	s.sc = nil
	return err
}

func (s *sender) Host() string {
	return s.dialer.Host
}

// SenderDomain extracts the domain part of a mailbox address, used when
// generating Message-IDs.
func SenderDomain(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 && i < len(address)-1 {
		return address[i+1:]
	}
	return "localhost"
}
