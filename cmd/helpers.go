package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Mohsinsiddi/universe/internal/config"
	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/rpc"
	"github.com/Mohsinsiddi/universe/internal/starknet"
	"github.com/Mohsinsiddi/universe/internal/ui"
	"github.com/Mohsinsiddi/universe/internal/universe"
	"github.com/Mohsinsiddi/universe/internal/wallet"
)

// newKeystore is swapped out in tests to keep them off the OS keychain.
var newKeystore = func() wallet.KeystoreBackend { return wallet.DefaultKeystore() }

// newAccountManager creates a Manager backed by the config-dir JSON store.
func newAccountManager() *wallet.Manager {
	return wallet.NewManager(
		wallet.WithStore(wallet.NewJSONStore(cfg.AccountsPath())),
		wallet.WithKeystore(newKeystore()),
	)
}

// resolveAccount picks the account named by flag, then the configured
// default, then the account store's default.
func resolveAccount(mgr *wallet.Manager, flag string) (*wallet.Account, error) {
	name := flag
	if name == "" {
		name = cfg.DefaultAccount
	}
	a, err := mgr.Resolve(name)
	if errors.Is(err, wallet.ErrNoDefault) {
		return nil, fmt.Errorf("no account selected; add one with `universe account add <name> <address> --wallet-url <url>`")
	}
	if errors.Is(err, wallet.ErrAccountNotFound) {
		return nil, fmt.Errorf("account %q not found; run `universe account list`", name)
	}
	return a, err
}

// loadManifest reads the configured Dojo manifest.
func loadManifest() (*dojo.Manifest, error) {
	path := cfg.ManifestPath
	if path == "" {
		return nil, errors.New("no manifest configured; run `universe config set-manifest <path>`")
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err == nil {
			path = abs
		}
	}
	return dojo.LoadManifest(path)
}

// pickRPC selects a node endpoint using the configured algorithm.
func pickRPC(ctx context.Context) (*starknet.Client, error) {
	algo, ok := rpc.ParseAlgorithm(cfg.RPCAlgorithm)
	if !ok {
		return nil, fmt.Errorf("unknown rpc_algorithm %q (want fastest, round-robin or failover)", cfg.RPCAlgorithm)
	}
	ctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()
	url, err := rpc.Best(ctx, cfg.RPCURLs, algo)
	if err != nil {
		return nil, err
	}
	return starknet.NewClient(url), nil
}

// parseArgs reads textual arguments for op according to each parameter's
// kind. This is the only place user input becomes felts.
func parseArgs(op universe.Operation, args []string) ([]felt.Felt, error) {
	if len(args) != len(op.Params) {
		return nil, fmt.Errorf("%s takes %d argument(s) (%s), got %d", op.Name, len(op.Params), paramList(op), len(args))
	}
	out := make([]felt.Felt, len(args))
	for i, p := range op.Params {
		v, err := parseParam(p, args[i])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p.Name, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseParam(p universe.Param, s string) (felt.Felt, error) {
	switch p.Kind {
	case universe.KindAddress:
		if !hasHexPrefix(s) {
			return felt.Zero, fmt.Errorf("%w: address must be 0x-prefixed hex: %q", felt.ErrInvalidFelt, s)
		}
		return felt.Parse(s)
	case universe.KindShortString:
		if hasHexPrefix(s) {
			return felt.Parse(s)
		}
		return felt.EncodeShortString(s)
	default:
		return felt.Parse(s)
	}
}

func hasHexPrefix(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")
}

// paramList renders "playerId, amount" for usage strings.
func paramList(op universe.Operation) string {
	names := make([]string, len(op.Params))
	for i, p := range op.Params {
		names[i] = p.Name
	}
	return strings.Join(names, ", ")
}

// commandName turns an entrypoint into a subcommand name: add_currency -> add-currency.
func commandName(op universe.Operation) string {
	return strings.ReplaceAll(op.Entrypoint, "_", "-")
}

// lookupOperation accepts the subcommand form as well as the binding and
// entrypoint names.
func lookupOperation(name string) (universe.Operation, error) {
	if op, ok := universe.LookupOperation(strings.ReplaceAll(name, "-", "_")); ok {
		return op, nil
	}
	if op, ok := universe.LookupOperation(name); ok {
		return op, nil
	}
	return universe.Operation{}, fmt.Errorf("%w: %q", universe.ErrUnknownOperation, name)
}

func errorLine(err error) string {
	return ui.Err(err.Error())
}
