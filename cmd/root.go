package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gnolang/symbal/lint"
)

const defaultTimeout = 5 * time.Minute

var (
	cfgFile string
	timeout time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "symbal [paths...]",
	Short:            "symbal - checks that brackets, block comments and strings are balanced",
	TraverseChildren: true, // Prioritize subcommands
	SilenceUsage:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		// no subcommand
		if len(args) == 0 {
			// display help when only 'symbal' is entered
			_ = cmd.Help()
			return
		}
		// Format: symbal [path1 path2 ...] => behaves like the check subcommand
		checkCmd.Run(checkCmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", lint.DefaultConfigFile, "Rule configuration file")
	rootCmd.PersistentFlags().Duration("timeout", defaultTimeout, "Abort checking after this duration")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")

	for _, name := range []string{"config", "timeout", "log-level"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
		}
	}

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(reportCmd)
}

// initConfig merges flags with SYMBAL_* environment variables and builds
// the logger shared by all commands.
func initConfig() error {
	viper.SetEnvPrefix("SYMBAL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	cfgFile = viper.GetString("config")
	timeout = viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	l, err := newLogger(viper.GetString("log-level"))
	if err != nil {
		return err
	}
	logger = l
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	return config.Build()
}
