package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <template>",
	Aliases: []string{"rm"},
	Short:   "Delete a stored template",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]
		metrics := getMetrics()

		if err := getStore().Delete(name); err != nil {
			metrics.RecordError(ctx, "delete")
			return err
		}
		metrics.RecordDeleted(ctx)
		fmt.Fprintf(os.Stderr, "deleted %q\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
