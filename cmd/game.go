package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Mohsinsiddi/universe/internal/config"
	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/starknet"
	"github.com/Mohsinsiddi/universe/internal/ui"
	"github.com/Mohsinsiddi/universe/internal/universe"
	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	gameAccountFlag string
	gameYesFlag     bool
	gameWaitFlag    bool
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Invoke an entrypoint of the game contract",
	Long: `Invoke an entrypoint of the game contract.

Numeric arguments accept decimal or 0x-hex. Addresses must be 0x-hex.
Usernames are ASCII text of at most 31 characters, or a raw 0x felt.`,
}

func newGameOpCmd(op universe.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <%s>", commandName(op), paramList(op)),
		Short: fmt.Sprintf("Call %s on the game contract", op.Entrypoint),
		Args:  cobra.ExactArgs(len(op.Params)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGameOp(cmd, op, args)
		},
	}
}

func runGameOp(cmd *cobra.Command, op universe.Operation, args []string) error {
	out := cmd.OutOrStdout()

	calldata, err := parseArgs(op, args)
	if err != nil {
		return err
	}
	manifest, err := loadManifest()
	if err != nil {
		return err
	}
	contract, err := manifest.ContractByName(universe.Namespace, universe.GameContract)
	if err != nil {
		return err
	}

	mgr := newAccountManager()
	account, err := resolveAccount(mgr, gameAccountFlag)
	if err != nil {
		return err
	}
	remote, err := mgr.Open(account)
	if err != nil {
		return err
	}

	pairs := [][2]string{
		{"Account", account.Name + "  " + ui.TruncateAddr(account.Address)},
		{"Contract", contract.Tag + "  " + ui.TruncateAddr(contract.Address.Hex())},
		{"Entrypoint", op.Entrypoint},
	}
	for i, p := range op.Params {
		pairs = append(pairs, [2]string{p.Name, calldata[i].Hex()})
	}
	fmt.Fprintln(out, ui.KeyValueBlock(op.Name, pairs))

	if !gameYesFlag && !ui.ConfirmFrom(cmd.InOrStdin(), out, ui.StyleWarning.Render("Submit transaction?")) {
		fmt.Fprintln(out, ui.Info("Cancelled."))
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), config.WalletSubmitTimeout)
	defer cancel()

	game := universe.NewGame(dojo.NewProvider(manifest, log.Root()), log.Root())
	res, err := game.Invoke(ctx, remote, op.Name, calldata...)
	if err != nil {
		return err
	}

	hash := res.TransactionHash.Hex()
	fmt.Fprintln(out, ui.Success("Submitted "+ui.Addr(hash)))

	entry := config.HistoryEntry{
		Operation:       op.Name,
		Account:         account.Name,
		TransactionHash: hash,
		SubmittedAt:     time.Now().UTC().Format(time.RFC3339),
	}

	if gameWaitFlag {
		receipt, err := waitForReceipt(cmd.Context(), out, op.Name, res.TransactionHash)
		if err != nil {
			entry.Status = "unknown"
			recordHistory(log.Root(), entry)
			return err
		}
		entry.Status = receipt.ExecutionStatus
		printReceipt(out, receipt)
	} else {
		fmt.Fprintln(out, ui.Hint("Follow it with: universe game "+commandName(op)+" ... --wait, or `universe status`"))
	}

	recordHistory(log.Root(), entry)
	return nil
}

// recordHistory appends entry to the history file. A write failure is logged
// and never fails the command.
func recordHistory(logger log.Logger, entry config.HistoryEntry) {
	if err := cfg.AppendHistory(entry); err != nil {
		logger.Warn("Could not record history", "tx", entry.TransactionHash, "err", err)
	}
}

// waitForReceipt follows the transaction with the TUI on a terminal and with
// a plain poll loop otherwise.
func waitForReceipt(ctx context.Context, out io.Writer, opName string, hash felt.Felt) (*starknet.Receipt, error) {
	client, err := pickRPC(ctx)
	if err != nil {
		return nil, err
	}
	poll := func(ctx context.Context) (*starknet.Receipt, error) {
		return client.GetTransactionReceipt(ctx, hash)
	}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		return ui.WatchReceipt(hash.Hex(), opName, poll, config.ReceiptPollInterval, cfg.ReceiptWait())
	}
	fmt.Fprintln(out, ui.Meta("Waiting for receipt…"))
	return client.WaitForReceipt(ctx, hash, config.ReceiptPollInterval, cfg.ReceiptWait())
}

func printReceipt(out io.Writer, r *starknet.Receipt) {
	status := ui.StyleSuccess.Render(r.ExecutionStatus)
	if !r.Succeeded() {
		status = ui.StyleError.Render(r.ExecutionStatus)
	}
	pairs := [][2]string{
		{"Status", status},
		{"Finality", r.FinalityStatus},
		{"Block", fmt.Sprintf("#%d", r.BlockNumber)},
		{"Fee", fmt.Sprintf("%s %s", r.ActualFee.Amount.String(), r.ActualFee.Unit)},
	}
	if r.RevertReason != "" {
		pairs = append(pairs, [2]string{"Revert reason", r.RevertReason})
	}
	fmt.Fprintln(out, ui.KeyValueBlock("Receipt", pairs))
}

func init() {
	gameCmd.PersistentFlags().StringVar(&gameAccountFlag, "account", "", "account to submit from (default: configured default)")
	gameCmd.PersistentFlags().BoolVarP(&gameYesFlag, "yes", "y", false, "skip the confirmation prompt")
	gameCmd.PersistentFlags().BoolVar(&gameWaitFlag, "wait", false, "wait for the transaction receipt")

	for _, op := range universe.Operations() {
		gameCmd.AddCommand(newGameOpCmd(op))
	}
}
