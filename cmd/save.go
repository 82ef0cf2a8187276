package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/timvw/tmx/internal/logger"
	"github.com/timvw/tmx/internal/template"
)

var (
	flagSaveName        string
	flagSaveDescription string
	flagSaveForce       bool
)

var saveCmd = &cobra.Command{
	Use:   "save <session>",
	Short: "Capture a running session as a template",
	Long: `Capture the layout of a running session and store it as a template.

Every window is recorded with its name and working directory, and every
pane with its working directory and a split direction. The template is
named after the session unless --name is given. An existing template is
only replaced with --force.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		session := args[0]

		name := flagSaveName
		if name == "" {
			name = session
		}
		if err := template.ValidateName(name); err != nil {
			return err
		}

		store := getStore()
		if !flagSaveForce && store.Exists(name) {
			return fmt.Errorf("template %q already exists (use --force to overwrite)", name)
		}

		m, err := getMultiplexer()
		if err != nil {
			return err
		}
		if !m.HasSession(ctx, session) {
			return fmt.Errorf("session %q not found", session)
		}

		metrics := getMetrics()
		t, err := template.Capture(ctx, m, session)
		if err != nil {
			metrics.RecordError(ctx, "capture")
			return err
		}
		metrics.RecordCaptured(ctx)

		t.Template.Name = name
		t.Template.Description = flagSaveDescription
		if err := store.Save(t); err != nil {
			metrics.RecordError(ctx, "save")
			return err
		}
		metrics.RecordSaved(ctx)

		logger.Get().Info("template saved", "template", name, "session", session, "path", store.Path(name))
		fmt.Fprintf(os.Stderr, "saved %q (%s) to %s\n", name, t.Summary(), store.Path(name))
		return nil
	},
}

func init() {
	saveCmd.Flags().StringVar(&flagSaveName, "name", "", "template name (default: the session name)")
	saveCmd.Flags().StringVarP(&flagSaveDescription, "description", "d", "", "template description")
	saveCmd.Flags().BoolVarP(&flagSaveForce, "force", "f", false, "overwrite an existing template")
	rootCmd.AddCommand(saveCmd)
}
