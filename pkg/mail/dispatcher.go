package mail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/santactl/santactl/pkg/giphy"
	"github.com/santactl/santactl/pkg/pairing"
)

// GIFSource supplies a festive image per letter. It is satisfied by
// *giphy.Client; a nil source means letters go out without an image.
type GIFSource interface {
	Random(ctx context.Context) (*giphy.GIF, error)
}

// Result summarises one dispatch run. The pairing itself is never part of
// the result; only who could and could not be notified.
type Result struct {
	// Sent lists the givers whose letters were accepted by the server.
	Sent []string
	// Failed maps giver name to the delivery error.
	Failed map[string]error
	// MessageIDs of all sent letters, for housekeeping.
	MessageIDs []string
}

// Dispatcher composes and sends one letter per giver. Delivery failures are
// collected per letter; a failed letter never aborts the rest of the run and
// never invalidates the already computed pairing.
type Dispatcher struct {
	sender       Sender
	gifs         GIFSource
	subject      string
	brandingName string
	senderDomain string
	keepDir      string
	log          *zap.SugaredLogger
}

// DispatcherConfig configures a Dispatcher.
type DispatcherConfig struct {
	// Subject of every letter. Defaults to "Secret Santa".
	Subject string
	// BrandingName signs the letters.
	BrandingName string
	// SenderAddress is used to derive the Message-ID domain.
	SenderAddress string
	// KeepDir, when set, saves every fetched GIF under this directory.
	KeepDir string
}

// NewDispatcher creates a Dispatcher. gifs may be nil to send letters
// without embedded images.
func NewDispatcher(sender Sender, gifs GIFSource, cfg DispatcherConfig, log *zap.SugaredLogger) *Dispatcher {
	subject := cfg.Subject
	if subject == "" {
		subject = "Secret Santa"
	}
	return &Dispatcher{
		sender:       sender,
		gifs:         gifs,
		subject:      subject,
		brandingName: cfg.BrandingName,
		senderDomain: SenderDomain(cfg.SenderAddress),
		keepDir:      cfg.KeepDir,
		log:          log.Named("dispatcher"),
	}
}

// Dispatch sends one letter per pair, in pairing order. It returns an error
// only when composing letters is impossible; individual delivery failures
// are reported through the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, p pairing.Pairing) (*Result, error) {
	result := &Result{Failed: map[string]error{}}
	defer func() {
		if err := d.sender.Close(); err != nil {
			d.log.Warnw("Failed to close mail connection", "error", err)
		}
	}()

	for _, pair := range p {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		letter, err := d.compose(ctx, pair)
		if err != nil {
			d.log.Errorw("Failed to compose letter", "giver", pair.Giver.Name, "error", err)
			result.Failed[pair.Giver.Name] = err
			continue
		}

		d.log.Infow("Sending letter to a Secret Santa...", "to", pair.Giver.Email)
		if err := d.sender.Send(letter); err != nil {
			d.log.Errorw("Failed to send letter", "giver", pair.Giver.Name, "error", err)
			result.Failed[pair.Giver.Name] = err
			continue
		}
		result.Sent = append(result.Sent, pair.Giver.Name)
		result.MessageIDs = append(result.MessageIDs, letter.MessageID)
	}

	return result, nil
}

func (d *Dispatcher) compose(ctx context.Context, pair pairing.Pair) (*Letter, error) {
	params := LetterParams{
		Giver:        pair.Giver.Name,
		Receiver:     pair.Receiver.Name,
		BrandingName: d.brandingName,
	}

	var gif *giphy.GIF
	if d.gifs != nil {
		var err error
		gif, err = d.gifs.Random(ctx)
		if err != nil {
			// A letter without a GIF still names the receiver; do not lose
			// the notification over a missing image.
			d.log.Warnw("Could not fetch festive GIF, sending letter without one", "error", err)
			gif = nil
		}
	}

	if gif != nil {
		params.GIFURL = gif.URL
		params.GIFCID = gif.ID + ".gif"
		if d.keepDir != "" {
			if err := d.saveGIF(gif); err != nil {
				d.log.Warnw("Could not keep GIF", "id", gif.ID, "error", err)
			}
		}
	}

	text, err := RenderLetterText(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render letter text: %w", err)
	}
	html, err := RenderLetterHTML(params)
	if err != nil {
		return nil, fmt.Errorf("failed to render letter html: %w", err)
	}

	letter := &Letter{
		To:        pair.Giver.Email,
		ToName:    pair.Giver.Name,
		Subject:   d.subject,
		TextBody:  text,
		HTMLBody:  html,
		MessageID: fmt.Sprintf("<%s@%s>", uuid.NewString(), d.senderDomain),
	}
	if gif != nil {
		letter.EmbedName = params.GIFCID
		letter.EmbedData = gif.Data
	}
	return letter, nil
}

func (d *Dispatcher) saveGIF(gif *giphy.GIF) error {
	if err := os.MkdirAll(d.keepDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.keepDir, gif.ID+".gif"), gif.Data, 0o644)
}
