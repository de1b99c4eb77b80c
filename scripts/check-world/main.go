// check-world: pings a set of Starknet endpoints in parallel and, for each
// one that answers, checks whether the world and game contract from a
// manifest are deployed there with the expected class hashes.
//
// Run from the module root:
//
//	go run ./scripts/check-world [manifest.json] [rpc-url...]
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/starknet"
	"github.com/Mohsinsiddi/universe/internal/universe"
)

// ── config ────────────────────────────────────────────────────────────────────

var defaultRPCs = []string{
	"http://localhost:5050",
	"https://starknet-sepolia.public.blastapi.io/rpc/v0_7",
	"https://starknet-mainnet.public.blastapi.io/rpc/v0_7",
}

const rpcTimeout = 12 * time.Second

// ── types ─────────────────────────────────────────────────────────────────────

type result struct {
	url     string
	chain   string
	block   string
	world   string
	game    string
	latency time.Duration
}

// ── main ──────────────────────────────────────────────────────────────────────

func main() {
	manifestPath := "manifest_dev.json"
	rpcs := defaultRPCs
	if len(os.Args) > 1 {
		manifestPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		rpcs = os.Args[2:]
	}

	m, err := dojo.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	game, err := m.ContractByName(universe.Namespace, universe.GameContract)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results []result
	)

	for _, url := range rpcs {
		url := url
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), rpcTimeout)
			defer cancel()

			client := starknet.NewClient(url)
			r := result{url: url, chain: "—", block: "—", world: "—", game: "—"}

			latency, block, pingErr := client.Ping(ctx)
			if pingErr == nil {
				r.latency = latency
				r.block = fmt.Sprint(block)
				if id, err := client.ChainID(ctx); err == nil {
					r.chain = starknet.ChainName(id)
				}
				r.world = deployed(ctx, client, m.World.Address, m.World.ClassHash)
				r.game = deployed(ctx, client, game.Address, game.ClassHash)
			} else {
				r.world = "unreachable"
			}

			mu.Lock()
			results = append(results, r)
			mu.Unlock()
		}()
	}

	wg.Wait()

	printTable(results)
}

func deployed(ctx context.Context, c *starknet.Client, addr, want felt.Felt) string {
	got, err := c.GetClassHashAt(ctx, addr)
	switch {
	case err != nil:
		return "missing"
	case got != want:
		return "class differs"
	default:
		return "ok"
	}
}

// ── output ────────────────────────────────────────────────────────────────────

func printTable(results []result) {
	sort.Slice(results, func(i, j int) bool { return results[i].url < results[j].url })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RPC\tCHAIN\tBLOCK\tLATENCY\tWORLD\tGAME")
	for _, r := range results {
		latency := "—"
		if r.latency > 0 {
			latency = r.latency.Round(time.Millisecond).String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", r.url, r.chain, r.block, latency, r.world, r.game)
	}
	w.Flush()
}
