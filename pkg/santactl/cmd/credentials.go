package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/santactl/santactl/pkg/credentials"
)

var credentialNames = map[string]string{
	"smtp-password": credentials.SMTPPassword,
	"giphy-api-key": credentials.GiphyAPIKey,
}

func NewCredentialsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credentials",
		Short: "Manage secrets in the system keychain",
		Long: "Stores the SMTP mailbox password and the GIPHY API key in the\n" +
			"system keychain, scoped to the configured SMTP username. Secrets\n" +
			"never land in the config file.",
	}

	cmd.AddCommand(
		newCredentialsSetCommand(),
		newCredentialsClearCommand(),
	)

	return cmd
}

func credentialStore(cmd *cobra.Command) (*credentials.Store, *runtimeState, error) {
	rt, err := getRuntime(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := rt.EnsureConfigLoaded(); err != nil {
		return nil, nil, err
	}
	return credentials.NewStore(rt.cfg.SMTP.Username, rt.nonInteractive), rt, nil
}

func newCredentialsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "set <smtp-password|giphy-api-key>",
		Short:     "Prompt for a secret and store it in the keychain",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"smtp-password", "giphy-api-key"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name, ok := credentialNames[args[0]]
			if !ok {
				return fmt.Errorf("unknown credential %q", args[0])
			}
			store, rt, err := credentialStore(cmd)
			if err != nil {
				return err
			}
			value, err := store.Prompt(name)
			if err != nil {
				return err
			}
			if err := store.Set(name, value); err != nil {
				return fmt.Errorf("failed to store %s: %w", args[0], err)
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Stored %s in the keychain\n", args[0])
			return nil
		},
	}
}

func newCredentialsClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "clear [smtp-password|giphy-api-key]",
		Short:     "Remove stored secrets from the keychain",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"smtp-password", "giphy-api-key"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, rt, err := credentialStore(cmd)
			if err != nil {
				return err
			}
			targets := []string{credentials.SMTPPassword, credentials.GiphyAPIKey}
			if len(args) == 1 {
				name, ok := credentialNames[args[0]]
				if !ok {
					return fmt.Errorf("unknown credential %q", args[0])
				}
				targets = []string{name}
			}
			for _, name := range targets {
				if err := store.Delete(name); err != nil {
					return fmt.Errorf("failed to clear %s: %w", name, err)
				}
			}
			_, _ = fmt.Fprintln(rt.Writer(), "Cleared")
			return nil
		},
	}
}
