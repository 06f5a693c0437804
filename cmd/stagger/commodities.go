package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/newthinker/stagger/internal/commodity"
)

var commoditiesCmd = &cobra.Command{
	Use:   "commodities",
	Short: "List the commodity presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		catalog, err := commodity.FromConfig(cfg)
		if err != nil {
			return err
		}

		def, _ := catalog.Default()
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tNAME\tUNIT\tCURRENT\tMIN\tBUY\tSELL\tMARGIN\t")
		for _, c := range catalog.List() {
			key := c.Key
			if key == def.Key {
				key += " *"
			}
			d := c.Defaults
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				key, c.Name, c.Unit,
				num(d.CurrentPrice), num(d.MinPrice), num(d.BuyInterval), num(d.SellInterval), num(d.MarginPerLot))
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(commoditiesCmd)
}

func num(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
