package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/ui"
	"github.com/Mohsinsiddi/universe/internal/universe"
	"github.com/spf13/cobra"
)

var schemaJSONFlag bool

type schemaJSON struct {
	Schemas []schemaEntry     `json:"schemas"`
	Models  map[string]string `json:"models"`
}

type schemaEntry struct {
	Tag    string       `json:"tag"`
	Type   string       `json:"type"`
	Fields []fieldEntry `json:"fields"`
}

type fieldEntry struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Default any    `json:"default"`
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Show the UniversePlayer and User model schemas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		schemas := universe.Schemas()

		if schemaJSONFlag {
			doc := schemaJSON{Models: universe.ModelsMapping()}
			for _, s := range schemas {
				e := schemaEntry{Tag: s.Tag(), Type: s.TypeName}
				for _, f := range s.Fields {
					e.Fields = append(e.Fields, fieldEntry{Name: f.Name, Type: f.CairoType, Default: f.Default})
				}
				doc.Schemas = append(doc.Schemas, e)
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		for _, s := range schemas {
			fmt.Fprintln(out, ui.StyleTitle.Render(s.TypeName+"  "+ui.Meta(s.Tag())))
			t := ui.NewTable([]ui.Column{
				{Title: "#", Width: 3, Align: ui.AlignRight},
				{Title: "Field", Width: 20},
				{Title: "Type", Width: 16},
				{Title: "Default", Width: 10},
			})
			for i, f := range s.Fields {
				t.AddRow(ui.Row{fmt.Sprint(i), f.Name, f.CairoType, defaultString(f.Default)})
			}
			fmt.Fprintln(out, t.Render())
		}
		return nil
	},
}

func defaultString(v any) string {
	switch d := v.(type) {
	case felt.Felt:
		return d.String()
	case string:
		return fmt.Sprintf("%q", d)
	default:
		return fmt.Sprint(d)
	}
}

func init() {
	schemaCmd.Flags().BoolVar(&schemaJSONFlag, "json", false, "print as JSON")
}
