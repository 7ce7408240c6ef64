package commands

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/insightdelivered/statement-parser/internal/buildinfo"
	"github.com/insightdelivered/statement-parser/internal/config"
	"github.com/insightdelivered/statement-parser/internal/logging"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	envPath    string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "statement-parser",
		Short: "Extract debits and credits from bank statement PDFs",
		Long: `statement-parser reads multi-page bank statement PDFs and extracts the
transactions listed under the debits and credits sections, following
sections across page breaks and inferring the year of each date.

Supported banks:
  truist - Truist checking statements (MM/DD dates)

Example:
  statement-parser init
  statement-parser parse statement.pdf
  statement-parser parse --format csv --output october.csv statement.pdf
  statement-parser serve --addr :8080`,
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.envPath, "env", "", "dotenv file (default is ./.env when present)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newParseCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.Resolve(a.configPath, a.envPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}
