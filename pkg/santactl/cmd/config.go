package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/santactl/santactl/pkg/santactl/config"
	"github.com/santactl/santactl/pkg/santactl/output"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage santactl configuration",
	}

	cmd.AddCommand(
		newConfigInitCommand(),
		newConfigViewCommand(),
		newConfigPathCommand(),
	)

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		smtpHost   string
		smtpPort   int
		smtpUser   string
		sender     string
		senderName string
		imapHost   string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a santactl config file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			path := rt.configPathValue()
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s", path)
				}
			}
			cfg := config.DefaultConfig()
			if smtpHost != "" {
				cfg.SMTP.Host = smtpHost
			}
			if smtpPort != 0 {
				cfg.SMTP.Port = smtpPort
			}
			cfg.SMTP.Username = smtpUser
			if sender != "" {
				cfg.SMTP.SenderAddress = sender
			}
			cfg.SMTP.SenderName = senderName
			if imapHost != "" {
				cfg.IMAP.Host = imapHost
			}
			if err := config.Save(path, &cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(rt.Writer(), "Initialized config at %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&smtpHost, "smtp-host", "", "SMTP host")
	cmd.Flags().IntVar(&smtpPort, "smtp-port", 0, "SMTP port")
	cmd.Flags().StringVar(&smtpUser, "smtp-user", "", "SMTP username (the outgoing mailbox)")
	cmd.Flags().StringVar(&sender, "sender", "", "Sender address, defaults to the SMTP username")
	cmd.Flags().StringVar(&senderName, "sender-name", "", "Sender display name")
	cmd.Flags().StringVar(&imapHost, "imap-host", "", "IMAP host for sent-mail housekeeping")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")

	_ = cmd.MarkFlagRequired("smtp-user")
	return cmd
}

func newConfigViewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			return output.WriteObject(rt.Writer(), output.FormatYAML, rt.cfg)
		},
	}
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(rt.Writer(), rt.configPathValue())
			return nil
		},
	}
}
