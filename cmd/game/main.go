package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tatianab/silk-route/internal/config"
	"github.com/tatianab/silk-route/internal/logging"
	"github.com/tatianab/silk-route/internal/tui"
	"go.uber.org/zap"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "silkroute",
	Short: "The Lost Silk Route of Varanasi",
	Long: `A narrative adventure along a forgotten river branch of the Silk Route.

Every choice shifts you toward preserving, revealing or exploiting what you
find. Progress is saved after every move.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger, err = logging.New(cfg)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := openApp(cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()
		return tui.Run(app.engine)
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd, validateCmd, statusCmd, resetCmd)

	simulateCmd.Flags().IntVar(&simTurns, "turns", 60, "maximum number of turns")
	simulateCmd.Flags().BoolVar(&simScripted, "scripted", false, "use the deterministic player instead of Gemini")
	simulateCmd.Flags().StringVar(&simPrefer, "prefer", "", "alignment the scripted player leans toward")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
