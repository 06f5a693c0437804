package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/newthinker/stagger/internal/config"
)

var (
	cfgFile string
	envFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "stagger",
	Short: "Stagger - staggered-buy commodity strategy analyzer",
	Long: `Stagger sizes a ladder of buy orders between a current and a floor price
and reports the capital it needs, its drawdown, the projected return and a
monthly activity forecast. Use it from the command line or run it as a server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnv(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// loadEnv loads a dotenv file if it exists. Variables already set in the
// environment win.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadConfig reads the config file when one is given, falling back to defaults.
func loadConfig() (*config.Config, bool, error) {
	if cfgFile == "" {
		return config.Defaults(), false, nil
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, true, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, true, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, true, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
