package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/santactl/santactl/pkg/pairing"
	"github.com/santactl/santactl/pkg/roster"
)

func WriteRosterTable(w io.Writer, participants []roster.Participant) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tEMAIL")
	for _, p := range participants {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", p.Name, p.Email)
	}
	_ = tw.Flush()
}

// WritePairingTable prints the full assignment. Only dry runs use this; a
// real run never reveals the pairing.
func WritePairingTable(w io.Writer, p pairing.Pairing) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "GIVER\tRECEIVER\tNOTIFY")
	for _, pair := range p {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", pair.Giver.Name, pair.Receiver.Name, pair.Giver.Email)
	}
	_ = tw.Flush()
}

// WriteDispatchTable prints per-giver delivery outcomes without naming any
// receiver.
func WriteDispatchTable(w io.Writer, sent []string, failed map[string]error) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "GIVER\tSTATUS")
	for _, name := range sent {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", name, "sent")
	}
	for name, err := range failed {
		_, _ = fmt.Fprintf(tw, "%s\tfailed: %v\n", name, err)
	}
	_ = tw.Flush()
}
