package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/universe"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <model> <felts...>",
	Short: "Decode raw model felts into a UniversePlayer or User record",
	Long: `Decode raw model felts into a UniversePlayer or User record.

The model is a type name (User) or tag (universe-User). Felts are given in
schema order, as printed by ` + "`universe schema`" + `.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		schema, ok := universe.SchemaFor(args[0])
		if !ok {
			return fmt.Errorf("unknown model %q (known: UniversePlayer, User)", args[0])
		}
		vals := make([]felt.Felt, 0, len(args)-1)
		for _, a := range args[1:] {
			v, err := felt.Parse(a)
			if err != nil {
				return err
			}
			vals = append(vals, v)
		}

		record, err := decodeRecord(schema.TypeName, vals)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

// userView adds the decoded username to a User.
type userView struct {
	universe.User
	UsernameText string `json:"username_text,omitempty"`
}

func decodeRecord(typeName string, vals []felt.Felt) (any, error) {
	switch typeName {
	case "User":
		u, err := universe.DecodeUser(vals)
		if err != nil {
			return nil, err
		}
		return userView{User: u, UsernameText: felt.DecodeShortString(u.Username)}, nil
	default:
		return universe.DecodeUniversePlayer(vals)
	}
}
