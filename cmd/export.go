package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/nodaysoff/internal/export"
	"github.com/abhisek/nodaysoff/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write workout history to a Parquet file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			return fmt.Errorf("--out is required")
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		events, err := rt.events.QueryCommits(cmd.Context(), rt.identity.UserID, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if err := export.WriteFile(out, events); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d workout(s) to %s\n", len(events), out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Destination .parquet file")
}
