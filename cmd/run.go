package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/nodaysoff/internal/app"
	"github.com/abhisek/nodaysoff/internal/coach"
	"github.com/abhisek/nodaysoff/internal/effects"
	"github.com/abhisek/nodaysoff/internal/screens/env"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	rt, err := openRuntime(cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	tracker, err := rt.tracker(ctx)
	if err != nil {
		return err
	}

	fx := effects.New(effects.Options{
		Bell:          rt.cfg.Effects.Bell,
		BellOut:       os.Stderr,
		SpeechCommand: rt.cfg.Effects.SpeechCommand,
		Logger:        rt.logger,
	})

	e := env.New(ctx, tracker, fx)
	e.History = rt.events
	e.Logger = rt.logger
	e.LeadIn = rt.cfg.Timer.LeadInSeconds
	e.BeepWindow = rt.cfg.Timer.BeepSeconds

	c := rt.cfg.Coach
	recaps, err := coach.New(ctx, coach.Config{
		Provider:        c.Provider,
		Model:           c.Model,
		AnthropicAPIKey: c.AnthropicAPIKey,
		OpenAIAPIKey:    c.OpenAIAPIKey,
		OpenAIBaseURL:   c.OpenAIBaseURL,
		GeminiAPIKey:    c.GeminiAPIKey,
		Timeout:         c.Timeout,
		Retry:           rt.retry(),
	}, rt.logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Coach not configured:", err)
		fmt.Fprintln(os.Stderr, "Summaries will use the built-in recap.")
		rt.logger.WarnContext(ctx, "coach disabled", "error", err)
	} else {
		e.Coach = recaps
	}

	defer fx.Stop()
	return app.Run(ctx, e)
}
