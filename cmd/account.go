package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/universe/internal/ui"
	"github.com/Mohsinsiddi/universe/internal/wallet"
	"github.com/spf13/cobra"
)

var (
	accountWalletURLFlag  string
	accountTokenFlag      string
	accountTokenStdinFlag bool
	accountYesFlag        bool
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the accounts transactions are submitted from",
}

var accountAddCmd = &cobra.Command{
	Use:   "add <name> <address>",
	Short: "Add an account backed by a wallet endpoint",
	Long: `Add an account backed by a wallet endpoint.

The endpoint must speak the Starknet wallet API (wallet_addInvokeTransaction)
and sign for <address>. An optional bearer token is kept in the OS keychain.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		token := accountTokenFlag
		if accountTokenStdinFlag {
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("reading token from stdin: %w", err)
			}
			token = strings.TrimSpace(line)
		}

		mgr := newAccountManager()
		a, err := mgr.Add(args[0], args[1], accountWalletURLFlag, token)
		if errors.Is(err, wallet.ErrAccountExists) {
			return fmt.Errorf("account %q already exists; remove it first with `universe account remove %s`", args[0], args[0])
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Account %q added: %s", a.Name, ui.Addr(a.Address))))
		if a.WalletURL == "" {
			fmt.Fprintln(out, ui.Warn("No --wallet-url given; this account cannot submit transactions."))
		}
		if !a.IsDefault {
			fmt.Fprintln(out, ui.Hint("Make it the default with: universe account default "+a.Name))
		}
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		accounts, err := newAccountManager().List()
		if err != nil {
			return err
		}
		if len(accounts) == 0 {
			fmt.Fprintln(out, ui.Info("No accounts configured yet."))
			fmt.Fprintln(out, ui.Hint("Add one with: universe account add dev 0x... --wallet-url http://localhost:5050/wallet"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 14},
			{Title: "Address", Width: 14},
			{Title: "Wallet", Width: 36},
			{Title: "Token", Width: 6},
			{Title: "Default", Width: 7},
		})
		for _, a := range accounts {
			def, tok := "", ""
			if a.TokenRef != "" {
				tok = "✓"
			}
			isDefault := isDefaultAccount(a, accounts)
			if isDefault {
				def = "✓"
			}
			row := t.AddRow(ui.Row{a.Name, ui.TruncateAddr(a.Address), a.WalletURL, tok, def})
			if isDefault {
				t.Highlight(row)
			}
		}
		fmt.Fprint(out, t.Render())
		return nil
	},
}

// isDefaultAccount honours default_account from config over the store's flag.
func isDefaultAccount(a *wallet.Account, all []*wallet.Account) bool {
	if cfg.DefaultAccount != "" {
		for _, o := range all {
			if o.Name == cfg.DefaultAccount {
				return a.Name == cfg.DefaultAccount
			}
		}
	}
	return a.IsDefault
}

var accountRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove an account and its stored token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		name := args[0]
		if !accountYesFlag && !ui.ConfirmFrom(cmd.InOrStdin(), out, ui.StyleError.Render(fmt.Sprintf("⚠ Remove account %q?", name))) {
			fmt.Fprintln(out, ui.Info("Cancelled."))
			return nil
		}
		if err := newAccountManager().Remove(name); err != nil {
			return err
		}
		if cfg.DefaultAccount == name {
			cfg.DefaultAccount = ""
			if err := cfg.Save(); err != nil {
				return err
			}
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("Account %q removed", name)))
		return nil
	},
}

var accountDefaultCmd = &cobra.Command{
	Use:   "default [name]",
	Short: "Set the default account (pick interactively without a name)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newAccountManager()

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			accounts, err := mgr.List()
			if err != nil {
				return err
			}
			items := make([]ui.PickerItem, len(accounts))
			for i, a := range accounts {
				items[i] = ui.PickerItem{Label: a.Name, SubLabel: ui.TruncateAddr(a.Address), Value: a.Name}
			}
			if name, err = ui.PickItem("Default account", items); err != nil {
				return err
			}
			if name == "" {
				return nil
			}
		}

		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultAccount = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.Success(fmt.Sprintf("Default account set to %q", name)))
		return nil
	},
}

func init() {
	accountAddCmd.Flags().StringVar(&accountWalletURLFlag, "wallet-url", "", "wallet API endpoint that signs for this account")
	accountAddCmd.Flags().StringVar(&accountTokenFlag, "token", "", "bearer token for the wallet endpoint")
	accountAddCmd.Flags().BoolVar(&accountTokenStdinFlag, "token-stdin", false, "read the bearer token from stdin")
	accountAddCmd.MarkFlagsMutuallyExclusive("token", "token-stdin")
	accountRemoveCmd.Flags().BoolVarP(&accountYesFlag, "yes", "y", false, "skip the confirmation prompt")

	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountRemoveCmd, accountDefaultCmd)
}
