package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/timvw/tmx/internal/picker"
	"github.com/timvw/tmx/internal/template"
)

var (
	flagTheme      string
	flagPickAttach bool
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Browse templates interactively",
	Long: `Open an interactive browser over the stored templates.

The left column lists templates; the right shows the windows and panes of
the selected one. Enter asks for a session name and launches the template,
d deletes it after confirmation, q quits.

After a launch the client switches to (or attaches to) the new session,
unless --attach=false.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		m, err := getMultiplexer()
		if err != nil {
			return err
		}
		launcher := template.NewLauncher(m)
		launcher.Metrics = getMetrics()

		p := &picker.Picker{
			Store:     getStore(),
			Launcher:  launcher,
			Sessions:  m,
			ThemeName: flagTheme,
		}
		res, err := p.Run(ctx)
		if err != nil {
			return fmt.Errorf("picker: %w", err)
		}
		if res.Launched == "" || !flagPickAttach {
			return nil
		}
		return attachSession(ctx, m, res.Launched)
	},
}

func init() {
	pickCmd.Flags().StringVar(&flagTheme, "theme", "dark", "Color theme: dark, light")
	pickCmd.Flags().BoolVar(&flagPickAttach, "attach", true, "switch to or attach to a launched session")
	rootCmd.AddCommand(pickCmd)
}
