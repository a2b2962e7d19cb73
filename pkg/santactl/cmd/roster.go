package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/santactl/santactl/pkg/santactl/output"
)

func NewRosterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect and validate roster files",
	}

	cmd.AddCommand(
		newRosterCheckCommand(),
		newRosterShowCommand(),
	)

	return cmd
}

func newRosterCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <roster.csv>",
		Short: "Validate a roster file, reporting every fault at once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			r, warnings, err := loadAndValidate(args[0])
			if err != nil {
				return err
			}
			w := rt.Writer()
			for _, warning := range warnings {
				_, _ = fmt.Fprintf(w, "warning: %s\n", warning.Message)
			}
			_, _ = fmt.Fprintf(w, "Roster OK: %d participants, all sleighs ready to go!\n", r.Len())
			return nil
		},
	}
}

func newRosterShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <roster.csv>",
		Short: "Print a validated roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			r, _, err := loadAndValidate(args[0])
			if err != nil {
				return err
			}
			switch format := output.Format(rt.OutputFormat()); format {
			case output.FormatTable:
				output.WriteRosterTable(rt.Writer(), r.Participants())
				return nil
			default:
				return output.WriteObject(rt.Writer(), format, r.Participants())
			}
		},
	}
}
