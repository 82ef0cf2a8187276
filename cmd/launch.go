package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/timvw/tmx/internal/mux"
	"github.com/timvw/tmx/internal/template"
)

var (
	flagLaunchSession string
	flagLaunchAttach  bool
)

var launchCmd = &cobra.Command{
	Use:   "launch <template>",
	Short: "Create a new session from a template",
	Long: `Create a new detached session from a stored template.

The session is named after the template unless --session is given, and
must not exist yet. Session names may not contain '.' or ':' because tmux
rewrites them; pass --session for templates named that way. Windows are created in template order with their
names and working directories, and the panes of each window are split off
its first pane.

Window N of the template is created as tmux window index N, counting from
0. With "base-index 1" (or any non-zero base-index) in tmux.conf, the
launch fails when renaming the first window.

If a multiplexer command fails part way, the windows and panes created so
far are left in place.

With --attach, the current client switches to the new session (inside
tmux) or the terminal attaches to it (outside tmux).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		t, err := getStore().Load(args[0])
		if err != nil {
			return err
		}

		session := flagLaunchSession
		if session == "" {
			session = t.Template.Name
		}

		if err := mux.ValidateSessionName(session); err != nil {
			return fmt.Errorf("%w (use --session to pick another name)", err)
		}

		m, err := getMultiplexer()
		if err != nil {
			return err
		}
		if m.HasSession(ctx, session) {
			return fmt.Errorf("session %q already exists (use --session to pick another name)", session)
		}

		launcher := template.NewLauncher(m)
		launcher.Metrics = getMetrics()
		if err := launcher.Launch(ctx, t, session); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "launched %q as session %q (%s)\n", t.Template.Name, session, t.Summary())

		if flagLaunchAttach {
			return attachSession(ctx, m, session)
		}
		return nil
	},
}

func init() {
	launchCmd.Flags().StringVarP(&flagLaunchSession, "session", "s", "", "session name (default: the template name)")
	launchCmd.Flags().BoolVarP(&flagLaunchAttach, "attach", "a", false, "switch to or attach to the new session")
	rootCmd.AddCommand(launchCmd)
}
