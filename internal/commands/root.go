package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ledgerworks/simpnl/internal/buildinfo"
	"github.com/ledgerworks/simpnl/internal/config"
	"github.com/ledgerworks/simpnl/internal/importer"
	"github.com/ledgerworks/simpnl/internal/logging"
	"github.com/ledgerworks/simpnl/internal/model"
)

type globalOptions struct {
	configPath string
	logLevel   string
	logJSON    bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "simpnl",
		Short:   "Per-business profit and loss from Big Ambitions ledger exports",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), opts.logLevel, opts.logJSON)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.FileName+" when present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or warn)")
	flags.BoolVar(&opts.logJSON, "log-json", false, "log as JSON")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAnalyzeCommand(opts))
	rootCmd.AddCommand(newRecordsCommand(opts))
	rootCmd.AddCommand(newDirectoryCommand(opts))

	return rootCmd
}

// loadConfig reads --config, or ./simpnl.yaml when it exists, or the defaults.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.Load(o.configPath)
	}
	cfg, err := config.Load(config.FileName)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}

// readRecords parses path ("-" for stdin) with the parser registered for format.
func readRecords(cmd *cobra.Command, path, format string) ([]model.Record, error) {
	parser := importer.DefaultRegistry().Get(format)
	if parser == nil {
		return nil, fmt.Errorf("unknown input format %q", format)
	}

	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening ledger: %w", err)
		}
		defer f.Close()
		r = f
	}

	records, err := parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return records, nil
}
