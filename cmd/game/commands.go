package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tatianab/silk-route/internal/content"
	"github.com/tatianab/silk-route/internal/engine"
	"github.com/tatianab/silk-route/internal/models"
	"github.com/tatianab/silk-route/internal/player"
)

var (
	simTurns    int
	simScripted bool
	simPrefer   string
)

// simulateCmd lets a player play a throwaway session.
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Let an automated player play through the story",
	Long: `Plays a fresh in-memory session with either a Gemini-backed player
(GEMINI_API_KEY required) or a deterministic scripted player. Your saved
game is not touched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		prefer := content.Alignment(simPrefer)
		if prefer != "" && !prefer.Valid() {
			return fmt.Errorf("unknown alignment %q", simPrefer)
		}

		g, err := loadGraph(cfg.ContentPath)
		if err != nil {
			return fmt.Errorf("failed to load content: %w", err)
		}
		eng := engine.NewEngine(g, models.NewStore(&models.MemoryAdapter{}, g, logger), logger)

		var p player.Player = player.ScriptedPlayer{Prefer: prefer}
		if !simScripted {
			if err := cfg.RequireGemini(); err != nil {
				return err
			}
			gp, err := player.NewGeminiPlayer(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
			if err != nil {
				return err
			}
			defer gp.Close()
			p = gp
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "--- %s ---\n", g.Title())
		res, err := player.Simulate(ctx, eng, p, simTurns, logger)
		for _, ev := range res.Events {
			fmt.Fprintf(out, "[%3d] %-8s %s\n", ev.Turn, ev.Kind, ev.Detail)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\nTurns: %d  Points: %d  Preserver=%d Revealer=%d Exploiter=%d\n",
			res.Turns, res.Points, res.MoralPoints.Preserver, res.MoralPoints.Revealer, res.MoralPoints.Exploiter)
		if res.Completed {
			end, _ := g.Ending(res.Ending)
			fmt.Fprintf(out, "Game Ended: %s (%s)\n", end.Title, res.Ending)
		} else {
			fmt.Fprintln(out, "Game did not reach an ending.")
		}
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a content bundle for authoring defects",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.ContentPath
		if len(args) == 1 {
			path = args[0]
		}
		g, err := loadGraph(path)
		if err != nil {
			return err
		}
		dialogues, puzzles := 0, 0
		for _, ch := range g.Chapters() {
			dialogues += len(ch.Dialogues)
			puzzles += len(ch.Puzzles)
		}
		name := path
		if name == "" {
			name = "embedded bundle"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d chapters, %d dialogues, %d puzzles, %d items)\n",
			name, len(g.Chapters()), dialogues, puzzles, len(g.Items()))
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the saved game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()
		printStatus(cmd, a)
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the saved game and start over",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()
		a.engine.Reset()
		fmt.Fprintf(cmd.OutOrStdout(), "Slot %q reset.\n", cfg.Slot)
		return nil
	},
}

func printStatus(cmd *cobra.Command, a *app) {
	out := cmd.OutOrStdout()
	s := a.engine.Session()
	sum := a.engine.Summary()

	fmt.Fprintf(out, "Slot: %s (%s)\nSession: %s\n", cfg.Slot, cfg.Backend, s.ID)
	if ch, ok := a.engine.CurrentChapter(); ok {
		fmt.Fprintf(out, "Chapter %d: %s\n", ch.ID, ch.Title)
	}
	fmt.Fprintf(out, "Points: %d  Preserver=%d Revealer=%d Exploiter=%d\n",
		sum.Points, sum.MoralPoints.Preserver, sum.MoralPoints.Revealer, sum.MoralPoints.Exploiter)
	for _, ch := range sum.Chapters {
		fmt.Fprintf(out, "  %d. %-28s %s\n", ch.ID, ch.Title, strings.ReplaceAll(string(ch.Status), "_", " "))
	}
	var items []string
	for _, it := range a.engine.AcquiredItems() {
		items = append(items, it.Name)
	}
	if len(items) > 0 {
		fmt.Fprintf(out, "Inventory: %s\n", strings.Join(items, ", "))
	}
	if sum.Ending != nil {
		fmt.Fprintf(out, "Ending: %s\n", sum.Ending.Title)
	}
	if names, err := slots(cfg, a.adapter); err == nil && len(names) > 0 {
		fmt.Fprintf(out, "Saved slots: %s\n", strings.Join(names, ", "))
	}
}
