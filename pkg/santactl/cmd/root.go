package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/santactl/santactl/pkg/santactl/config"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
	InputReader  io.Reader
}

type runtimeState struct {
	configPath     string
	cfg            *config.Config
	outputFormat   string
	nonInteractive bool
	assumeYes      bool
	verbose        bool
	writer         io.Writer
	reader         io.Reader
	scanner        *bufio.Scanner
	logger         *zap.SugaredLogger
}

type runtimeKey struct{}

func DefaultConfig() Config {
	return Config{
		ConfigPath:   config.DefaultConfigPath(),
		OutputWriter: os.Stdout,
		InputReader:  os.Stdin,
	}
}

func NewRootCommand(cfg Config) *cobra.Command {
	rt := &runtimeState{configPath: cfg.ConfigPath, writer: cfg.OutputWriter, reader: cfg.InputReader}

	root := &cobra.Command{
		Use:   "santactl",
		Short: "Double-blind Secret Santa pairing and mailer",
		Long: "santactl draws random Secret Santa pairings from a CSV roster and\n" +
			"emails each giver the name of their receiver, with a festive GIF\n" +
			"embedded. The draw is double-blind: nobody, including the operator,\n" +
			"learns who gives to whom.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if rt.writer == nil {
				rt.writer = os.Stdout
			}
			if rt.reader == nil {
				rt.reader = os.Stdin
			}
			if rt.configPath == "" {
				rt.configPath = config.DefaultConfigPath()
			}
			if rt.outputFormat == "" {
				rt.outputFormat = os.Getenv("SANTACTL_OUTPUT")
			}
			if !rt.nonInteractive {
				rt.nonInteractive = strings.EqualFold(os.Getenv("SANTACTL_NON_INTERACTIVE"), "true")
			}
			if !rt.verbose {
				rt.verbose = strings.EqualFold(os.Getenv("SANTACTL_VERBOSE"), "true")
			}
			rt.logger = newLogger(rt.verbose)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&rt.configPath, "config", rt.configPath, "Path to config file")
	root.PersistentFlags().StringVarP(&rt.outputFormat, "output", "o", "", "Output format: table, json, yaml")
	root.PersistentFlags().BoolVar(&rt.nonInteractive, "non-interactive", false, "Fail instead of prompting")
	root.PersistentFlags().BoolVarP(&rt.assumeYes, "yes", "y", false, "Answer yes to confirmation prompts")
	root.PersistentFlags().BoolVarP(&rt.verbose, "verbose", "v", false, "Enable verbose logging")

	root.SetContext(context.WithValue(context.Background(), runtimeKey{}, rt))

	root.AddCommand(
		NewRunCommand(),
		NewPairCommand(),
		NewRosterCommand(),
		NewConfigCommand(),
		NewCredentialsCommand(),
		NewCompletionCommand(),
		NewVersionCommand(),
	)

	return root
}

func getRuntime(cmd *cobra.Command) (*runtimeState, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtimeState)
	if !ok || rt == nil {
		return nil, errors.New("runtime not initialized")
	}
	return rt, nil
}

func (rt *runtimeState) Writer() io.Writer {
	if rt.writer != nil {
		return rt.writer
	}
	return os.Stdout
}

func (rt *runtimeState) OutputFormat() string {
	if rt.outputFormat != "" {
		return rt.outputFormat
	}
	if rt.cfg != nil && rt.cfg.Settings.OutputFormat != "" {
		return rt.cfg.Settings.OutputFormat
	}
	return "table"
}

// EnsureConfigLoaded loads the config file, falling back to defaults when no
// file exists yet so that offline commands work out of the box.
func (rt *runtimeState) EnsureConfigLoaded() error {
	if rt.cfg != nil {
		return nil
	}
	cfg, err := config.Load(rt.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			def := config.DefaultConfig()
			rt.cfg = &def
			return nil
		}
		return err
	}
	rt.cfg = cfg
	return nil
}

func (rt *runtimeState) configPathValue() string {
	if rt.configPath == "" {
		return config.DefaultConfigPath()
	}
	return rt.configPath
}

// Confirm asks the operator a yes/no question, re-asking until the answer is
// recognisable. --yes answers every prompt; --non-interactive refuses to
// prompt and fails instead.
func (rt *runtimeState) Confirm(message string) (bool, error) {
	if rt.assumeYes {
		return true, nil
	}
	if rt.nonInteractive {
		return false, fmt.Errorf("confirmation required for %q (use --yes in non-interactive mode)", message)
	}
	// One scanner for the whole run; a scanner per prompt would swallow
	// input it buffered past the first answer.
	if rt.scanner == nil {
		rt.scanner = bufio.NewScanner(rt.reader)
	}
	scanner := rt.scanner
	_, _ = fmt.Fprintf(rt.Writer(), "%s\nDo you wish to continue? [Y/N]: ", message)
	for scanner.Scan() {
		switch strings.ToUpper(strings.TrimSpace(scanner.Text())) {
		case "Y":
			return true, nil
		case "N":
			return false, nil
		}
		_, _ = fmt.Fprint(rt.Writer(), "Try again. Do you wish to continue? [Y/N]: ")
	}
	if err := scanner.Err(); err != nil {
		return false, err
	}
	return false, errors.New("no confirmation received")
}

func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}
