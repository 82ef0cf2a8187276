package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/timvw/tmx/internal/template"
	"gopkg.in/yaml.v3"
)

var flagShowFormat string

var showCmd = &cobra.Command{
	Use:   "show <template>",
	Short: "Print a stored template",
	Long: `Print a stored template.

The default toml format is the on-disk form. yaml and json render the
same structure for use with other tools.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := getStore().Load(args[0])
		if err != nil {
			return err
		}

		out, err := renderTemplate(t, flagShowFormat)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	showCmd.Flags().StringVarP(&flagShowFormat, "format", "o", "toml", "output format: toml, yaml, json")
	rootCmd.AddCommand(showCmd)
}

// renderTemplate encodes t in the named format.
func renderTemplate(t *template.SessionTemplate, format string) ([]byte, error) {
	switch format {
	case "toml", "":
		return template.Encode(t)
	case "yaml":
		return yaml.Marshal(t)
	case "json":
		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unknown format %q (supported: toml, yaml, json)", format)
	}
}
