package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-check files whenever they change, until interrupted",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}
		applyIgnores(engine, ignoreRules, ignorePaths)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := engine.StartWatching(args, engine.LogReport); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		fmt.Printf("Watching %v for changes (Ctrl+C to stop)\n", args)

		<-ctx.Done()
		if err := engine.StopWatching(); err != nil {
			logger.Error("Failed to stop watching", zap.Error(err))
		}
	},
}

func init() {
	watchCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
	watchCmd.Flags().StringVar(&ignorePaths, "ignore-paths", "", "Comma-separated list of paths to ignore")
	watchCmd.Flags().StringVar(&cacheDir, "cache-dir", "", "Directory for cached results (disabled when empty)")
}
