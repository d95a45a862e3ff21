package cli

import (
	"errors"
	"fmt"

	"github.com/op/go-logging"
	"github.com/spf13/cobra"

	"github.com/rdc-cli/rdc/internal/adapters/outbound/config"
	"github.com/rdc-cli/rdc/internal/domain"
	"github.com/rdc-cli/rdc/internal/logger"
)

var log = logging.MustGetLogger("rdc.cli")

var (
	version = "dev"
	commit  = "none"
)

// globalOptions holds the persistent flags and the config they resolve to.
type globalOptions struct {
	configPath string
	logLevel   string
	logFile    string

	cfg domain.Config
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{cfg: domain.DefaultConfig()}

	cmd := &cobra.Command{
		Use:   "rdc",
		Short: "Compare RenderDoc captures from the command line",
		Long:  "rdc diffs the draw calls of two RenderDoc captures and reports which draws were added, deleted or modified.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default: ./"+config.FileName+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG")
	cmd.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "Also write logs to this file, rotated daily")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDiffCmd(opts))
	cmd.AddCommand(newMCPCmd(opts))
	return cmd
}

// load reads the config file and sets up logging. Flags override config values.
func (o *globalOptions) load(cmd *cobra.Command) error {
	loader := config.New()

	var (
		cfg domain.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = loader.LoadFile(o.configPath)
	} else {
		cfg, err = loader.Load(".")
	}
	if err != nil {
		return failure(fmt.Errorf("loading config: %w", err))
	}

	if cmd.Flags().Changed("log-level") {
		if !domain.IsValidLogLevel(o.logLevel) {
			return failure(fmt.Errorf("unknown log level %q", o.logLevel))
		}
		cfg.Log.Level = o.logLevel
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = o.logFile
	}

	if err := logger.Init(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.File); err != nil {
		return failure(err)
	}

	o.cfg = cfg
	log.Debugf("config loaded: format=%s fallback=%s timeout=%s", cfg.Diff.Format, cfg.Diff.Fallback, cfg.Diff.Timeout)
	return nil
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the root command and prints any error worth reporting to
// stderr. Use ExitCode to turn the result into a process exit status.
func Execute() error {
	cmd := newRootCmd()
	err := cmd.Execute()

	var exitErr *ExitError
	if err != nil && !(errors.As(err, &exitErr) && exitErr.Err == nil) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}
