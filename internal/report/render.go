package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/newthinker/stagger/internal/core"
	"github.com/newthinker/stagger/internal/strategy"
)

// Format is an output encoding for a report.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatCSV:
		return f, nil
	}
	return "", core.WrapError(core.ErrUnsupportedFormat, fmt.Errorf("%q (want text, json or csv)", s))
}

// Extension returns the file extension used when a report is exported.
func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// ContentType returns the MIME type of the encoding.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Document is a report together with what produced it.
type Document struct {
	ID          string           `json:"id,omitempty"`
	Commodity   string           `json:"commodity"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Params      strategy.Params  `json:"params"`
	Report      *strategy.Report `json:"report"`
}

// Write encodes doc in the given format.
func Write(w io.Writer, f Format, doc Document) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatCSV:
		return WriteCSV(w, doc.Report)
	case FormatText:
		return WriteText(w, doc)
	}
	return core.WrapError(core.ErrUnsupportedFormat, fmt.Errorf("%q", f))
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

var csvHeader = []string{"level", "entry_price", "cost", "drawdown", "return_if_sold_at_target", "volatility_buffer"}

// WriteCSV writes the payoff table, one row per ladder level.
func WriteCSV(w io.Writer, r *strategy.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, row := range r.PayoffTable {
		buffer := ""
		if i < len(r.VolatilityBufferSeries) {
			buffer = Money(r.VolatilityBufferSeries[i].Buffer)
		}
		record := []string{
			strconv.Itoa(row.Level),
			Money(row.EntryPrice),
			Money(row.Cost),
			Money(row.Drawdown),
			Money(row.ReturnIfSoldAtTarget),
			buffer,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText writes a human-readable summary, forecast and payoff table.
func WriteText(w io.Writer, doc Document) error {
	r := doc.Report
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	title := "Strategy Insights"
	if doc.Commodity != "" {
		title = doc.Commodity + " " + title
	}
	fmt.Fprintf(tw, "=== %s ===\n", title)
	for _, c := range Cards(r) {
		fmt.Fprintf(tw, "%s:\t%s\n", c.Label, c.Value)
	}

	fmt.Fprintln(tw, "\n=== Monthly Strategy Forecast ===")
	for _, row := range MonthlyRows(r) {
		fmt.Fprintf(tw, "%s:\t%s\n", row.Label, row.Value)
	}

	fmt.Fprintln(tw, "\n=== Payoff Table ===")
	fmt.Fprintln(tw, "Level\tEntry Price\tCost\tDrawdown\tReturn At Target\tBuffer")
	for i, row := range r.PayoffTable {
		buffer := "-"
		if i < len(r.VolatilityBufferSeries) {
			buffer = Money(r.VolatilityBufferSeries[i].Buffer)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			row.Level, Money(row.EntryPrice), Money(row.Cost), Money(row.Drawdown),
			Money(row.ReturnIfSoldAtTarget), buffer)
	}
	if len(r.PayoffTable) == 0 {
		fmt.Fprintln(tw, "(no buy levels)")
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(tw, "\n=== Warnings ===")
		for _, warn := range r.Warnings {
			fmt.Fprintf(tw, "%s:\t%s\n", warn.Code, warn.Message)
		}
	}

	return tw.Flush()
}
