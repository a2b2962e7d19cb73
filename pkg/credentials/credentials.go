// Package credentials resolves the secrets the mailer needs (the SMTP
// mailbox password and the GIPHY API key) without ever writing them to the
// config file. Resolution order: environment variable, system keychain,
// interactive terminal prompt. Prompted values are offered to the keychain so
// subsequent runs are non-interactive.
package credentials

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/zalando/go-keyring"
	"golang.org/x/term"
)

const service = "santactl"

// Known credential names.
const (
	SMTPPassword = "smtp-password"
	GiphyAPIKey  = "giphy-api-key"
)

var envVars = map[string]string{
	SMTPPassword: "SANTACTL_SMTP_PASSWORD",
	GiphyAPIKey:  "SANTACTL_GIPHY_API_KEY",
}

var prompts = map[string]string{
	SMTPPassword: "Santa's secret key [SMTP password]: ",
	GiphyAPIKey:  "Santa's photo album key [GIPHY API key]: ",
}

// ErrNotFound is returned when a credential is not available and prompting
// is disabled.
var ErrNotFound = errors.New("credential not found")

// Store resolves and persists credentials.
type Store struct {
	// Account scopes keychain entries, normally the sender mailbox address.
	Account string

	// NonInteractive disables the terminal prompt fallback.
	NonInteractive bool

	// PromptOut receives prompt text; defaults to stderr so prompts do not
	// mix with piped output.
	PromptOut io.Writer

	// readPassword is swapped in tests.
	readPassword func(fd int) ([]byte, error)
}

// NewStore returns a Store for the given account.
func NewStore(account string, nonInteractive bool) *Store {
	return &Store{
		Account:        account,
		NonInteractive: nonInteractive,
		PromptOut:      os.Stderr,
		readPassword:   term.ReadPassword,
	}
}

// Resolve returns the named credential, trying environment, keychain, then
// an interactive prompt. A prompted value is saved to the keychain on a best
// effort basis; keychain failures never fail the run.
func (s *Store) Resolve(name string) (string, error) {
	if env := envVars[name]; env != "" {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}

	if v, err := keyring.Get(service, s.key(name)); err == nil && v != "" {
		return v, nil
	}

	if s.NonInteractive {
		return "", fmt.Errorf("%w: %s (set %s or store it with 'santactl credentials set')", ErrNotFound, name, envVars[name])
	}

	v, err := s.Prompt(name)
	if err != nil {
		return "", err
	}
	if err := keyring.Set(service, s.key(name), v); err != nil {
		fmt.Fprintf(s.promptOut(), "warning: could not store %s in keychain: %v\n", name, err)
	}
	return v, nil
}

// Set stores a credential in the system keychain.
func (s *Store) Set(name, value string) error {
	return keyring.Set(service, s.key(name), value)
}

// Delete removes a credential from the system keychain. Missing entries are
// not an error.
func (s *Store) Delete(name string) error {
	err := keyring.Delete(service, s.key(name))
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func (s *Store) key(name string) string {
	if s.Account == "" {
		return name
	}
	return s.Account + "/" + name
}

// Prompt reads the named credential from the terminal without echo.
func (s *Store) Prompt(name string) (string, error) {
	promptText := prompts[name]
	if promptText == "" {
		promptText = name + ": "
	}
	fmt.Fprint(s.promptOut(), promptText)
	read := s.readPassword
	if read == nil {
		read = term.ReadPassword
	}
	value, err := read(int(syscall.Stdin))
	fmt.Fprintln(s.promptOut())
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(value) == 0 {
		return "", fmt.Errorf("%w: %s (empty input)", ErrNotFound, name)
	}
	return string(value), nil
}

func (s *Store) promptOut() io.Writer {
	if s.PromptOut != nil {
		return s.PromptOut
	}
	return os.Stderr
}
