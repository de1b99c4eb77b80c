package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Mohsinsiddi/universe/internal/config"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/universe/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir  string
	cfg     *config.Config
	verbose bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "universe",
	Short: "Client for the universe Dojo world",
	Long: `universe drives the game contract of the universe Dojo world on Starknet.

  Create players and users, record logins, move currency and update
  attributes. Transactions are submitted through a wallet endpoint that
  signs on behalf of the selected account.

Start with:
  universe config set-manifest ./manifest_dev.json
  universe account add dev 0x... --wallet-url http://localhost:5050/wallet`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging(verbose)
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
}

// setupLogging routes the root logger to stderr. Only warnings and errors are
// shown unless verbose is set.
func setupLogging(verbose bool) {
	level := slog.Level(log.LevelWarn)
	if verbose {
		level = log.LevelDebug
	}
	useColor := isatty.IsTerminal(os.Stderr.Fd()) && os.Getenv("NO_COLOR") == ""
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, useColor)))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

func init() {
	// UNIVERSE_CONFIG_DIR env var overrides --config flag default.
	if envDir := os.Getenv("UNIVERSE_CONFIG_DIR"); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.universe)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	rootCmd.AddCommand(
		gameCmd,
		calldataCmd,
		schemaCmd,
		decodeCmd,
		accountCmd,
		statusCmd,
		historyCmd,
		syncCmd,
		configCmd,
	)
}
