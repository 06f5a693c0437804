package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/commodity"
	"github.com/newthinker/stagger/internal/export"
	"github.com/newthinker/stagger/internal/logger"
)

var reportsCommodity string

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Inspect exported reports",
}

var reportsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exported report paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := openExporter()
		if err != nil {
			return err
		}
		key := reportsCommodity
		if key != "" {
			key = commodity.Normalize(key)
		}
		paths, err := exp.List(cmd.Context(), key)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(cmd.OutOrStdout(), p)
		}
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <path>",
	Short: "Print an exported report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		exp, err := openExporter()
		if err != nil {
			return err
		}
		data, err := exp.Open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	reportsListCmd.Flags().StringVar(&reportsCommodity, "commodity", "", "only list reports for this commodity")
	reportsCmd.AddCommand(reportsListCmd, reportsShowCmd)
	rootCmd.AddCommand(reportsCmd)
}

func openExporter() (*export.Exporter, error) {
	cfg, _, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := cliLogger()
	defer logger.Sync(log)

	a, err := app.FromConfig(cfg, log, nil)
	if err != nil {
		return nil, err
	}
	return a.Exporter()
}
