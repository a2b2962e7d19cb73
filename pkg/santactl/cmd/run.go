package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/santactl/santactl/pkg/credentials"
	"github.com/santactl/santactl/pkg/giphy"
	"github.com/santactl/santactl/pkg/mail"
	"github.com/santactl/santactl/pkg/pairing"
	"github.com/santactl/santactl/pkg/roster"
	"github.com/santactl/santactl/pkg/santactl/output"
)

func NewRunCommand() *cobra.Command {
	var (
		sender         string
		smtpHost       string
		smtpPort       int
		smtpUser       string
		subject        string
		keepGIFs       bool
		noGIF          bool
		noHousekeeping bool
	)

	cmd := &cobra.Command{
		Use:   "run <roster.csv>",
		Short: "Draw names and email every Secret Santa their receiver",
		Long: "Validates the roster, draws a random double-blind pairing and emails\n" +
			"each giver the name of their receiver. The pairing is never printed\n" +
			"or stored; once the letters are gone, nobody can reconstruct it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := getRuntime(cmd)
			if err != nil {
				return err
			}
			if err := rt.EnsureConfigLoaded(); err != nil {
				return err
			}
			cfg := rt.cfg
			if smtpHost != "" {
				cfg.SMTP.Host = smtpHost
			}
			if smtpPort != 0 {
				cfg.SMTP.Port = smtpPort
			}
			if smtpUser != "" {
				cfg.SMTP.Username = smtpUser
			}
			if sender != "" {
				cfg.SMTP.SenderAddress = sender
			}
			if subject != "" {
				cfg.Settings.Subject = subject
			}
			if cfg.SMTP.SenderAddress == "" {
				cfg.SMTP.SenderAddress = cfg.SMTP.Username
			}
			if cfg.SMTP.Username == "" {
				return errors.New("no SMTP username configured (set smtp.username or pass --smtp-user)")
			}

			r, warnings, err := loadAndValidate(args[0])
			if err != nil {
				return err
			}

			w := rt.Writer()
			_, _ = fmt.Fprintln(w, "Here's our Secret Santas:")
			_, _ = fmt.Fprintln(w)
			output.WriteRosterTable(w, r.Participants())
			_, _ = fmt.Fprintln(w)

			for _, warning := range warnings {
				ok, err := rt.Confirm("Some reindeers are twins! " + warning.Message)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("aborted: duplicate email addresses in roster")
				}
			}

			ok, err := rt.Confirm("All data loaded, ready to check the sleighs!")
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(w, "OK, maybe next time then!")
				return nil
			}

			engine := pairing.New()
			assignment, err := engine.Assign(r)
			if err != nil {
				return err
			}

			ok, err = rt.Confirm("Secret Santa randomisation complete! Time to call the postman!")
			if err != nil {
				return err
			}
			if !ok {
				_, _ = fmt.Fprintln(w, "OK, maybe next time then!")
				return nil
			}

			store := credentials.NewStore(cfg.SMTP.Username, rt.nonInteractive)
			smtpPassword, err := store.Resolve(credentials.SMTPPassword)
			if err != nil {
				return err
			}

			var gifs mail.GIFSource
			if !noGIF && !cfg.Giphy.Disabled {
				apiKey, err := store.Resolve(credentials.GiphyAPIKey)
				if err != nil {
					return err
				}
				gifs = giphy.NewClient(apiKey,
					giphy.WithTag(cfg.Giphy.Tag),
					giphy.WithRating(cfg.Giphy.Rating),
				)
			}

			smtpSender := mail.NewSender(mail.SMTPConfig{
				Host:               cfg.SMTP.Host,
				Port:               cfg.SMTP.Port,
				Username:           cfg.SMTP.Username,
				Password:           smtpPassword,
				SenderAddress:      cfg.SMTP.SenderAddress,
				SenderName:         cfg.SMTP.SenderName,
				InsecureSkipVerify: cfg.SMTP.InsecureSkipTLS,
			}, rt.logger)

			keepDir := cfg.Settings.KeepGIFsDir
			if keepGIFs && keepDir == "" {
				keepDir = "images"
			}

			dispatcher := mail.NewDispatcher(smtpSender, gifs, mail.DispatcherConfig{
				Subject:       cfg.Settings.Subject,
				BrandingName:  cfg.Settings.BrandingName,
				SenderAddress: cfg.SMTP.SenderAddress,
				KeepDir:       keepDir,
			}, rt.logger)

			result, err := dispatcher.Dispatch(cmd.Context(), assignment)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(w)
			output.WriteDispatchTable(w, result.Sent, result.Failed)

			if !noHousekeeping && !cfg.IMAP.Disabled && len(result.MessageIDs) > 0 {
				housekeeper := mail.NewHousekeeper(mail.IMAPConfig{
					Host:        cfg.IMAP.Host,
					Port:        cfg.IMAP.Port,
					Username:    cfg.SMTP.Username,
					Password:    smtpPassword,
					SentMailbox: cfg.IMAP.SentMailbox,
				}, rt.logger)
				if _, err := housekeeper.Cleanup(result.MessageIDs); err != nil {
					// Letters are already out; a failed tidy-up is not fatal.
					rt.logger.Warnw("Sent-mail housekeeping failed", "error", err)
				}
			}

			if len(result.Failed) > 0 {
				names := make([]string, 0, len(result.Failed))
				for name := range result.Failed {
					names = append(names, name)
				}
				return fmt.Errorf("%d letter(s) could not be delivered (givers: %s)", len(result.Failed), strings.Join(names, ", "))
			}

			_, _ = fmt.Fprintln(w, "All letters sent - Merry Christmas!")
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "Sender address override")
	cmd.Flags().StringVar(&smtpHost, "smtp-host", "", "SMTP host override")
	cmd.Flags().IntVar(&smtpPort, "smtp-port", 0, "SMTP port override")
	cmd.Flags().StringVar(&smtpUser, "smtp-user", "", "SMTP username override")
	cmd.Flags().StringVar(&subject, "subject", "", "Letter subject override")
	cmd.Flags().BoolVar(&keepGIFs, "keep-gifs", false, "Save fetched GIFs to the images directory")
	cmd.Flags().BoolVar(&noGIF, "no-gif", false, "Send letters without an embedded GIF")
	cmd.Flags().BoolVar(&noHousekeeping, "no-housekeeping", false, "Skip deleting sent letters over IMAP")

	return cmd
}

// loadAndValidate runs the full validation pipeline: CSV load, roster
// invariants, then the layered address syntax check.
func loadAndValidate(path string) (*roster.Roster, []roster.Warning, error) {
	entries, err := roster.LoadCSV(path)
	if err != nil {
		return nil, nil, err
	}
	r, warnings, err := roster.Validate(entries)
	if err != nil {
		return nil, nil, err
	}
	if err := roster.CheckAddresses(r); err != nil {
		return nil, nil, err
	}
	return r, warnings, nil
}
