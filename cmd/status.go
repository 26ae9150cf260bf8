package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/nodaysoff/internal/catalog"
	"github.com/abhisek/nodaysoff/internal/effects"
	"github.com/abhisek/nodaysoff/internal/session"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's status, streak and targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		tracker, err := rt.tracker(cmd.Context())
		if err != nil {
			return err
		}
		printStatus(cmd.OutOrStdout(), tracker)
		return nil
	},
}

func printStatus(w io.Writer, t *session.Tracker) {
	st := t.Status()
	rec := t.Record()

	fmt.Fprintln(w, st.Title)
	fmt.Fprintf(w, "  Today:    %s\n", st.Today)
	fmt.Fprintf(w, "  Tomorrow: %s\n", st.Tomorrow)
	if st.Warning != "" {
		fmt.Fprintf(w, "  Warning:  %s\n", st.Warning)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Streak:  %d day(s)\n", rec.ConsecutiveDays)
	if rec.LastWorkout != nil {
		fmt.Fprintf(w, "Last:    %s\n", rec.LastWorkout.Local().Format("Mon 2 Jan 15:04"))
	}
	if st.Resting && rec.RestUntil != nil {
		fmt.Fprintf(w, "Rest:    until %s\n", rec.RestUntil.Local().Format("Mon 2 Jan 15:04"))
	}
	fmt.Fprintf(w, "HIIT:    %ds per exercise\n", rec.HIITTarget)
	fmt.Fprintf(w, "VO2 max: %.1f\n", rec.VO2MaxTarget)

	for _, day := range catalog.Days() {
		p, _ := catalog.Program(day)
		fmt.Fprintf(w, "\nDay %d  %s\n", day.Number(), p.Name)
		for _, ex := range p.Exercises {
			weight := "not yet attempted"
			if v := rec.Weight(day, ex.Name); v > 0 {
				weight = effects.FormatWeight(v)
			}
			fmt.Fprintf(w, "  %-28s %s\n", ex.Name, weight)
		}
	}
}
