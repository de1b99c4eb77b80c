package cmd

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mohsinsiddi/universe/internal/sync"
	"github.com/Mohsinsiddi/universe/internal/ui"
	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"
)

var syncWatchFlag time.Duration

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download the world manifest from its published URL",
	Long: `Download the world manifest from its published URL.

The manifest is validated, stored in the config directory and becomes the
manifest every other command uses. Set the URL once with
` + "`universe sync set-source <url>`" + `.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		s := sync.New(cfg, log.Root())

		if syncWatchFlag > 0 {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			fmt.Fprintln(out, ui.Info(fmt.Sprintf("Syncing every %s, Ctrl+C to stop", syncWatchFlag)))
			return s.Watch(ctx, syncWatchFlag, func(res *sync.Result) { printSync(out, res) })
		}

		res, err := s.Run(cmd.Context())
		if err != nil {
			return err
		}
		printSync(out, res)
		return nil
	},
}

func printSync(out io.Writer, res *sync.Result) {
	msg := fmt.Sprintf("Manifest synced: world %s, %d contract(s), %d model(s)",
		ui.TruncateAddr(res.Manifest.World.Address.Hex()), len(res.Manifest.Contracts), len(res.Manifest.Models))
	fmt.Fprintln(out, ui.Success(msg))
	if res.Changed {
		fmt.Fprintln(out, ui.Warn("World class hash changed since the last sync"))
	}
}

var syncSetSourceCmd = &cobra.Command{
	Use:   "set-source <url>",
	Short: "Set the URL the manifest is published at",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sync.New(cfg, log.Root()).SetSource(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Sync source set to "+args[0]))
		return nil
	},
}

func init() {
	syncCmd.Flags().DurationVar(&syncWatchFlag, "watch", 0, "keep syncing at this interval")
	syncCmd.AddCommand(syncSetSourceCmd)
}
