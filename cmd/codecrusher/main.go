package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sagarc03/codecrusher"
	"github.com/sagarc03/codecrusher/config"
	"github.com/sagarc03/codecrusher/output"
)

var version = "dev"

// app holds the state of a single invocation.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	prompter prompter

	viper    *viper.Viper
	settings *settings
	logger   *slog.Logger
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:   stdout,
		stderr:   stderr,
		prompter: &promptuiPrompter{},
		viper:    viper.New(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Version: version,
		Use:     "codecrusher",
		Short:   "A CLI tool for code generation and transformation",
		Long: `CodeCrusher resolves its run configuration from a JSON file
(default: ` + config.DefaultPath + `) and command-line flags, then prints it.

Flags always win over the file. Fields that neither source sets are left out.

Examples:
  codecrusher
  codecrusher --config team.json --provider openai --model gpt-4-turbo
  codecrusher --no-cache --tags api backend
  codecrusher --output json`,
		Args:          noArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(a.viper, cmd.Flags())
			if err != nil {
				return err
			}
			a.settings = s
			a.logger = setupLogging(a.stderr, s)
			return nil
		},
		RunE: a.runResolve,
	}

	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(flagError)

	config.RegisterFlags(cmd.Flags())
	cmd.Flags().StringP("output", "o", output.FormatText, "output format: text, json, yaml (env: CODECRUSHER_OUTPUT)")
	cmd.Flags().BoolP("quiet", "q", false, "omit the header line in text output")
	cmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error (env: CODECRUSHER_LOG_LEVEL)")

	cmd.AddCommand(a.initCmd())

	return cmd
}

func (a *app) runResolve(cmd *cobra.Command, _ []string) error {
	args, err := config.ArgsFromFlags(cmd.Flags())
	if err != nil {
		if errors.Is(err, codecrusher.ErrInvalidProvider) {
			return &usageError{err: err}
		}
		return err
	}

	formatter, err := output.NewFormatter(a.settings.Output, a.settings.Quiet)
	if err != nil {
		return &usageError{err: err}
	}

	cfg := config.NewResolver(a.logger).Resolve(args)

	if err := formatter.FormatConfig(a.stdout, cfg); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

// run executes the command line and returns the process exit code.
func (a *app) run(args []string) int {
	root := a.rootCmd()
	root.SetArgs(expandTagArgs(args))

	cmd, err := root.ExecuteC()
	if err == nil {
		return exitOK
	}
	if cmd == nil {
		cmd = root
	}

	_, _ = fmt.Fprintf(a.stderr, "Error: %v\n", err)

	var uerr *usageError
	if errors.As(err, &uerr) {
		_, _ = fmt.Fprint(a.stderr, cmd.UsageString())
		return exitUsage
	}
	return exitError
}

func main() {
	os.Exit(newApp(os.Stdout, os.Stderr).run(os.Args[1:]))
}
