package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/universe"
	"github.com/spf13/cobra"
)

var calldataResolveFlag bool

// resolvedCall is the call with its manifest address and entrypoint selector.
type resolvedCall struct {
	ContractAddress felt.Felt   `json:"contract_address"`
	Entrypoint      string      `json:"entry_point"`
	Selector        felt.Felt   `json:"selector"`
	Calldata        []felt.Felt `json:"calldata"`
}

var calldataCmd = &cobra.Command{
	Use:   "calldata <operation> [args...]",
	Short: "Print the call an operation would submit, without submitting it",
	Long: `Print the call an operation would submit, without submitting it.

The operation may be given as add-currency, addCurrency or add_currency.
With --resolve the contract address comes from the manifest and the
entrypoint selector is included.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		op, err := lookupOperation(args[0])
		if err != nil {
			return err
		}
		vals, err := parseArgs(op, args[1:])
		if err != nil {
			return err
		}
		call, err := universe.BuildCall(op.Name, vals...)
		if err != nil {
			return err
		}

		var v any = call
		if calldataResolveFlag {
			manifest, err := loadManifest()
			if err != nil {
				return err
			}
			contract, err := manifest.ContractByName(universe.Namespace, call.ContractName)
			if err != nil {
				return err
			}
			v = resolvedCall{
				ContractAddress: contract.Address,
				Entrypoint:      call.Entrypoint,
				Selector:        felt.Selector(call.Entrypoint),
				Calldata:        call.Calldata,
			}
		}

		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	calldataCmd.Flags().BoolVar(&calldataResolveFlag, "resolve", false, "resolve the contract address through the manifest")
}
