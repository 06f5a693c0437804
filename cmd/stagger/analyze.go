package main

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/logger"
	"github.com/newthinker/stagger/internal/report"
	"github.com/newthinker/stagger/internal/strategy"
)

var (
	analyzeCommodity string
	analyzeFormat    string
	analyzeExport    bool
)

// floatFlags maps numeric flags to the parameter they set.
var floatFlags = []struct {
	name  string
	usage string
	ptr   func(*strategy.Params) **float64
}{
	{"current-price", "current market price", func(p *strategy.Params) **float64 { return &p.CurrentPrice }},
	{"min-price", "lowest price the ladder buys at", func(p *strategy.Params) **float64 { return &p.MinPrice }},
	{"buy-interval", "price step between buy levels", func(p *strategy.Params) **float64 { return &p.BuyInterval }},
	{"sell-interval", "profit target per level above entry", func(p *strategy.Params) **float64 { return &p.SellInterval }},
	{"margin-per-lot", "margin blocked per position", func(p *strategy.Params) **float64 { return &p.MarginPerLot }},
	{"lot-size", "units per lot", func(p *strategy.Params) **float64 { return &p.LotSize }},
	{"atr", "average true range per day", func(p *strategy.Params) **float64 { return &p.ATR }},
	{"average-trading-days-per-month", "trading days per month", func(p *strategy.Params) **float64 { return &p.AverageTradingDaysPerMonth }},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a staggered-buy ladder",
	Long: `Analyze sizes a staggered-buy ladder and prints the report.

Parameters start from the selected commodity preset (the default commodity
when --commodity is omitted); every flag given on the command line
overrides the preset value.`,
	Example: `  stagger analyze
  stagger analyze --commodity gold --buy-interval 500 --format json
  stagger analyze --current-price 110000 --min-price 70000 --trend-bias bullish --export`,
	Args: cobra.NoArgs,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeCommodity, "commodity", "", "commodity preset (see 'stagger commodities')")
	registerParamFlags(f)
	f.StringVarP(&analyzeFormat, "format", "f", "text", "output format: text, json or csv")
	f.BoolVar(&analyzeExport, "export", false, "also write the report to the configured export backend")

	rootCmd.AddCommand(analyzeCmd)
}

func registerParamFlags(f *pflag.FlagSet) {
	for _, ff := range floatFlags {
		f.Float64(ff.name, 0, ff.usage)
	}
	f.String("trend-bias", string(strategy.DefaultTrendBias), "neutral, bullish or bearish")
	f.Bool("use-sip", strategy.DefaultUseSIP, "include SIP capital injection")
}

// paramsFromFlags returns the parameters set explicitly on the command line.
func paramsFromFlags(flags *pflag.FlagSet) (strategy.Params, error) {
	var p strategy.Params
	for _, ff := range floatFlags {
		if !flags.Changed(ff.name) {
			continue
		}
		v, err := flags.GetFloat64(ff.name)
		if err != nil {
			return p, err
		}
		*ff.ptr(&p) = &v
	}
	if flags.Changed("trend-bias") {
		bias, err := flags.GetString("trend-bias")
		if err != nil {
			return p, err
		}
		p.TrendBias = &bias
	}
	if flags.Changed("use-sip") {
		useSIP, err := flags.GetBool("use-sip")
		if err != nil {
			return p, err
		}
		p.UseSIP = &useSIP
	}
	return p, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(analyzeFormat)
	if err != nil {
		return err
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	log := cliLogger()
	defer logger.Sync(log)

	a, err := app.FromConfig(cfg, log, nil)
	if err != nil {
		return err
	}

	params, err := paramsFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	return analyze(cmd, a, analyzeCommodity, params, format, analyzeExport)
}

func analyze(cmd *cobra.Command, a *app.App, key string, params strategy.Params, format report.Format, export bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if export {
		if _, err := a.Exporter(); err != nil {
			return err
		}
	}

	an, err := a.Analyze(ctx, key, params)
	if err != nil {
		return err
	}

	doc := an.Document()
	doc.GeneratedAt = time.Now().UTC()
	if export {
		doc.ID = uuid.NewString()
	}
	if err := report.Write(out, format, doc); err != nil {
		return err
	}

	if !export {
		return nil
	}

	// Text is for the terminal; the archive gets the configured encoding.
	exportFormat := ""
	if format != report.FormatText {
		exportFormat = string(format)
	}
	res, err := a.ExportDocument(ctx, doc, exportFormat)
	if err != nil {
		return err
	}
	printExported(cmd.ErrOrStderr(), res.Path)
	return nil
}

func printExported(w io.Writer, path string) {
	fmt.Fprintf(w, "exported report to %s\n", path)
}

// cliLogger writes warnings and errors only unless --debug is set.
func cliLogger() *zap.Logger {
	log := logger.Must(debug)
	if debug {
		return log
	}
	return log.WithOptions(zap.IncreaseLevel(zapcore.WarnLevel))
}
