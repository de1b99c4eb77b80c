package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/universe/internal/config"
	"github.com/Mohsinsiddi/universe/internal/rpc"
	"github.com/Mohsinsiddi/universe/internal/starknet"
	"github.com/Mohsinsiddi/universe/internal/ui"
	"github.com/Mohsinsiddi/universe/internal/universe"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show node health, chain and deployed world",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		ctx := cmd.Context()

		// Endpoint health.
		checkCtx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
		endpoints := rpc.CheckAll(checkCtx, cfg.RPCURLs)
		cancel()

		t := ui.NewTable([]ui.Column{
			{Title: "Endpoint", Width: 40},
			{Title: "Latency", Width: 10, Align: ui.AlignRight},
			{Title: "Block", Width: 10, Align: ui.AlignRight},
			{Title: "Health", Width: 8},
		})
		for _, ep := range endpoints {
			health := "down"
			if ep.Healthy {
				health = "ok"
			}
			t.AddRow(ui.Row{ep.URL, ep.Latency.Round(time.Millisecond).String(), fmt.Sprint(ep.BlockNumber), health})
		}
		fmt.Fprint(out, t.Render())
		fmt.Fprintln(out)

		algo, ok := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
		if !ok {
			return fmt.Errorf("unknown rpc_algorithm %q", cfg.RPCAlgorithm)
		}
		ep, err := rpc.NewPicker(algo).Pick(endpoints)
		if err != nil {
			return err
		}
		client := starknet.NewClient(ep.URL)

		chainID, err := client.ChainID(ctx)
		if err != nil {
			return fmt.Errorf("chain id: %w", err)
		}
		pairs := [][2]string{
			{"RPC", ep.URL},
			{"Chain", ui.World(starknet.ChainName(chainID))},
			{"Block", fmt.Sprintf("#%d", ep.BlockNumber)},
		}

		manifest, err := loadManifest()
		if err != nil {
			pairs = append(pairs, [2]string{"Manifest", ui.StyleWarning.Render(err.Error())})
			fmt.Fprintln(out, ui.KeyValueBlock("Status", pairs))
			return nil
		}
		pairs = append(pairs,
			[2]string{"World", ui.Addr(manifest.World.Address.Hex())},
			[2]string{"Namespace", universe.Namespace},
		)

		game, err := manifest.ContractByName(universe.Namespace, universe.GameContract)
		if err != nil {
			pairs = append(pairs, [2]string{"Game", ui.StyleError.Render(err.Error())})
		} else {
			pairs = append(pairs, [2]string{"Game", ui.Addr(game.Address.Hex())})
			onChain, err := client.GetClassHashAt(ctx, game.Address)
			switch {
			case err != nil:
				pairs = append(pairs, [2]string{"Class hash", ui.StyleError.Render("not deployed: " + err.Error())})
			case onChain != game.ClassHash:
				pairs = append(pairs, [2]string{"Class hash", ui.StyleWarning.Render(onChain.Hex() + " (manifest differs)")})
			default:
				pairs = append(pairs, [2]string{"Class hash", ui.StyleSuccess.Render(onChain.Hex())})
			}
		}
		fmt.Fprintln(out, ui.KeyValueBlock("Status", pairs))
		return nil
	},
}
