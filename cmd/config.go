package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/rpc"
	"github.com/Mohsinsiddi/universe/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n\n", ui.StyleTitle.Render("Current Configuration"))
		fmt.Fprintln(out, string(data))
		fmt.Fprintln(out, ui.Meta("Config directory: "+cfg.Dir()))
		return nil
	},
}

var configSetRPCCmd = &cobra.Command{
	Use:   "set-rpc <url> [url...]",
	Short: "Replace the RPC endpoint list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.RPCURLs = nil
		for _, u := range args {
			if err := cfg.AddRPC(u); err != nil {
				return err
			}
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("%d RPC endpoint(s) configured", len(args))))
		return nil
	},
}

var configAddRPCCmd = &cobra.Command{
	Use:   "add-rpc <url>",
	Short: "Add an RPC endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.AddRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Added "+args[0]))
		return nil
	},
}

var configRemoveRPCCmd = &cobra.Command{
	Use:   "remove-rpc <url>",
	Short: "Remove an RPC endpoint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.RemoveRPC(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("Removed "+args[0]))
		return nil
	},
}

var configSetAlgorithmCmd = &cobra.Command{
	Use:   "set-algorithm <fastest|round-robin|failover>",
	Short: "Set how an RPC endpoint is chosen",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := rpc.ParseAlgorithm(args[0]); !ok || args[0] == "" {
			return fmt.Errorf("unknown algorithm %q (want fastest, round-robin or failover)", args[0])
		}
		cfg.RPCAlgorithm = args[0]
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success("RPC algorithm set to "+args[0]))
		return nil
	},
}

var configSetManifestCmd = &cobra.Command{
	Use:   "set-manifest <path>",
	Short: "Set the Dojo manifest used to address the world",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		m, err := dojo.LoadManifest(path)
		if err != nil {
			return err
		}
		cfg.ManifestPath = path
		if err := cfg.Save(); err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, ui.Success("Manifest set to "+path))
		fmt.Fprintln(out, ui.Meta(fmt.Sprintf("world %s, %d contract(s), %d model(s)",
			m.World.Address.Hex(), len(m.Contracts), len(m.Models))))
		return nil
	},
}

func init() {
	configCmd.AddCommand(
		configShowCmd,
		configSetRPCCmd,
		configAddRPCCmd,
		configRemoveRPCCmd,
		configSetAlgorithmCmd,
		configSetManifestCmd,
	)
}
