package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/universe/internal/ui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List transactions submitted from this machine",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		h, err := cfg.LoadHistory()
		if err != nil {
			return err
		}
		if len(h.Entries) == 0 {
			fmt.Fprintln(out, ui.Info("No transactions submitted yet."))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Submitted", Width: 20},
			{Title: "Operation", Width: 16},
			{Title: "Account", Width: 12},
			{Title: "Hash", Width: 14},
			{Title: "Status", Width: 10},
		})
		// newest first
		for i := len(h.Entries) - 1; i >= 0; i-- {
			e := h.Entries[i]
			t.AddRow(ui.Row{e.SubmittedAt, e.Operation, e.Account, ui.TruncateAddr(e.TransactionHash), e.Status})
		}
		fmt.Fprint(out, t.Render())
		return nil
	},
}
