package cmd

import (
	"github.com/spf13/cobra"

	"github.com/santactl/santactl/pkg/pairing"
	"github.com/santactl/santactl/pkg/santactl/output"
)

type pairingRow struct {
	Giver    string `json:"giver" yaml:"giver"`
	Receiver string `json:"receiver" yaml:"receiver"`
}

func NewPairCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair <roster.csv>",
		Short: "Draw a pairing offline and print it (spoils the secret!)",
		Long: "Validates the roster and prints one random pairing without sending\n" +
			"any mail. This reveals who gives to whom, so only use it for testing\n" +
			"a roster file, never for a real draw.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}

			r, warnings, err := loadAndValidate(args[0])
			if err != nil {
				return err
			}
			for _, warning := range warnings {
				rt.logger.Warnw("Roster warning", "warning", warning.Message)
			}

			assignment, err := pairing.New().Assign(r)
			if err != nil {
				return err
			}

			switch format := output.Format(rt.OutputFormat()); format {
			case output.FormatTable:
				output.WritePairingTable(rt.Writer(), assignment)
				return nil
			default:
				rows := make([]pairingRow, 0, len(assignment))
				for _, pair := range assignment {
					rows = append(rows, pairingRow{Giver: pair.Giver.Name, Receiver: pair.Receiver.Name})
				}
				return output.WriteObject(rt.Writer(), format, rows)
			}
		},
	}
	return cmd
}
