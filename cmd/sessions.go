package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List running multiplexer sessions",
	Long: `List the sessions of the running multiplexer server, one per line,
with their window count and whether a client is attached.

Any of these sessions can be captured with "tmx save <session>".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		sessions, err := m.ListSessions(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Fprintln(os.Stderr, "no sessions running")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\tWINDOWS\tATTACHED")
		for _, s := range sessions {
			attached := ""
			if s.Attached {
				attached = "yes"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\n", s.Name, s.Windows, attached)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
