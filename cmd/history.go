package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/effects"
	"github.com/abhisek/nodaysoff/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print recent completed workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		verbose, _ := cmd.Flags().GetBool("verbose")

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		events, err := rt.events.QueryCommits(cmd.Context(), rt.identity.UserID, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		printHistory(cmd.OutOrStdout(), events, verbose)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Number of workouts to show (0 for all)")
	historyCmd.Flags().BoolP("verbose", "v", false, "List every lift")
}

func printHistory(w io.Writer, events []store.CommitEvent, verbose bool) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No workouts yet.")
		return
	}
	for _, ev := range events {
		fmt.Fprintln(w, formatCommit(ev))
		if verbose {
			for _, line := range formatWeights(ev) {
				fmt.Fprintln(w, line)
			}
		}
	}
}

// formatCommit renders one commit as a single line.
func formatCommit(ev store.CommitEvent) string {
	parts := []string{
		ev.Timestamp.Local().Format("2006-01-02 15:04"),
		fmt.Sprintf("streak %d", ev.StreakAfter),
		fmt.Sprintf("HIIT %ds→%ds", ev.HIITBefore, ev.HIITAfter),
		fmt.Sprintf("VO2 %.1f→%.1f", ev.VO2MaxBefore, ev.VO2MaxAfter),
	}
	if p, ok := catalog.Program(ev.WeightsDay); ok {
		parts = append(parts, p.Name)
	}
	failed := 0
	for _, wc := range ev.Weights {
		if !wc.Passed {
			failed++
		}
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed lift(s)", failed))
	}
	if ev.RestEntered {
		parts = append(parts, "rest recommended")
	}
	if ev.RestCleared {
		parts = append(parts, "rest cleared")
	}
	return strings.Join(parts, "  ")
}

// formatWeights lists every lift in a commit, for verbose output.
func formatWeights(ev store.CommitEvent) []string {
	lines := make([]string, 0, len(ev.Weights))
	for _, wc := range ev.Weights {
		mark := "✓"
		if !wc.Passed {
			mark = "✗"
		}
		lines = append(lines, fmt.Sprintf("  %s %-28s %s → %s", mark, wc.Exercise,
			effects.FormatWeight(wc.Before), effects.FormatWeight(wc.After)))
	}
	return lines
}
