// internal/api/handler/web/analyzer.go
package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/newthinker/stagger/internal/commodity"
	"github.com/newthinker/stagger/internal/core"
	"github.com/newthinker/stagger/internal/report"
	"github.com/newthinker/stagger/internal/strategy"
)

// Option is a select entry.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// FormField is one numeric parameter input.
type FormField struct {
	Name  string
	Label string
	Value string
	Error string
}

// PayoffView is a payoff table row formatted for display.
type PayoffView struct {
	Level      int
	EntryPrice string
	Cost       string
	Drawdown   string
	Return     string
}

// BufferView is a volatility buffer row formatted for display.
type BufferView struct {
	Position int
	Buffer   string
}

// ResultView holds a computed report ready for the template.
type ResultView struct {
	Cards       []report.Card
	Monthly     []report.Row
	Payoff      []PayoffView
	Volatility  []BufferView
	Warnings    []strategy.Warning
	PayoffChart Chart
	BufferChart Chart
}

// AnalyzerData holds data for the analyzer template
type AnalyzerData struct {
	Title        string
	Dark         bool
	Commodity    commodity.Commodity
	Commodities  []Option
	TrendOptions []Option
	UseSIP       bool
	Fields       []FormField
	Errors       []string
	Result       *ResultView
}

type numericField struct {
	name  string
	label string
	ptr   func(*strategy.Params) **float64
}

var numericFields = []numericField{
	{"currentPrice", "Current Price", func(p *strategy.Params) **float64 { return &p.CurrentPrice }},
	{"minPrice", "Min Price", func(p *strategy.Params) **float64 { return &p.MinPrice }},
	{"buyInterval", "Buy Interval", func(p *strategy.Params) **float64 { return &p.BuyInterval }},
	{"sellInterval", "Sell Interval", func(p *strategy.Params) **float64 { return &p.SellInterval }},
	{"marginPerLot", "Margin Per Lot", func(p *strategy.Params) **float64 { return &p.MarginPerLot }},
	{"lotSize", "Lot Size", func(p *strategy.Params) **float64 { return &p.LotSize }},
	{"atr", "ATR", func(p *strategy.Params) **float64 { return &p.ATR }},
	{"averageTradingDaysPerMonth", "Average Trading Days Per Month", func(p *strategy.Params) **float64 { return &p.AverageTradingDaysPerMonth }},
}

var trendBiases = []strategy.TrendBias{strategy.TrendNeutral, strategy.TrendBullish, strategy.TrendBearish}

// Page renders the analyzer form prefilled from the selected preset.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cm, err := h.selected(q.Get("commodity"))
	if err != nil {
		data := h.newData(commodity.Commodity{}, strategy.Params{}, isDark(q.Get("theme")))
		data.Errors = []string{err.Error()}
		h.render(w, http.StatusNotFound, "analyzer.html", data)
		return
	}

	h.render(w, http.StatusOK, "analyzer.html", h.newData(cm, cm.Defaults, isDark(q.Get("theme"))))
}

// Analyze handles the form submission and renders the report or the field errors.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	dark := isDark(r.PostFormValue("theme"))
	cm, err := h.selected(r.PostFormValue("commodity"))
	if err != nil {
		data := h.newData(commodity.Commodity{}, strategy.Params{}, dark)
		data.Errors = []string{err.Error()}
		h.render(w, http.StatusNotFound, "analyzer.html", data)
		return
	}

	params, parseErrs := parseForm(r)
	data := h.newData(cm, cm.Defaults.Merge(params), dark)
	// Echo exactly what was typed, including unparseable values.
	for i := range data.Fields {
		if v, ok := r.PostForm[data.Fields[i].Name]; ok {
			data.Fields[i].Value = strings.TrimSpace(v[0])
		}
	}

	if parseErrs.HasErrors() {
		data.setFieldErrors(parseErrs)
		h.render(w, http.StatusBadRequest, "analyzer.html", data)
		return
	}

	an, err := h.analyzer.Analyze(r.Context(), cm.Key, params)
	if err != nil {
		var verr *core.ValidationError
		if errors.As(err, &verr) {
			data.setFieldErrors(verr)
			h.render(w, http.StatusBadRequest, "analyzer.html", data)
			return
		}
		h.logger.Error("web analysis failed", zap.String("commodity", cm.Key), zap.Error(err))
		data.Errors = []string{"analysis failed"}
		h.render(w, http.StatusInternalServerError, "analyzer.html", data)
		return
	}

	data.Result = newResultView(an.Report)
	h.render(w, http.StatusOK, "analyzer.html", data)
}

func (h *Handler) selected(key string) (commodity.Commodity, error) {
	if strings.TrimSpace(key) == "" {
		if d, ok := h.commodities.Default(); ok {
			return d, nil
		}
		return commodity.Commodity{Name: "Custom"}, nil
	}
	return h.commodities.Get(key)
}

func (h *Handler) newData(cm commodity.Commodity, p strategy.Params, dark bool) AnalyzerData {
	title := "Strategy Analyzer"
	if cm.Name != "" {
		title = cm.Name + " " + title
	}

	data := AnalyzerData{
		Title:     title,
		Dark:      dark,
		Commodity: cm,
		UseSIP:    strategy.DefaultUseSIP,
	}
	if p.UseSIP != nil {
		data.UseSIP = *p.UseSIP
	}

	for _, c := range h.commodities.List() {
		data.Commodities = append(data.Commodities, Option{Value: c.Key, Label: c.Name, Selected: c.Key == cm.Key})
	}

	bias := string(strategy.DefaultTrendBias)
	if p.TrendBias != nil && *p.TrendBias != "" {
		bias = strings.ToLower(*p.TrendBias)
	}
	for _, b := range trendBiases {
		data.TrendOptions = append(data.TrendOptions, Option{Value: string(b), Label: string(b), Selected: string(b) == bias})
	}

	for _, f := range numericFields {
		field := FormField{Name: f.name, Label: f.label}
		if v := *f.ptr(&p); v != nil {
			field.Value = strconv.FormatFloat(*v, 'f', -1, 64)
		}
		data.Fields = append(data.Fields, field)
	}
	return data
}

func (d *AnalyzerData) setFieldErrors(verr *core.ValidationError) {
	index := make(map[string]int, len(d.Fields))
	for i, f := range d.Fields {
		index[f.Name] = i
	}
	for _, f := range verr.Fields {
		i, ok := index[f.Field]
		if !ok {
			// Violations on non-numeric inputs such as trendBias.
			d.Errors = append(d.Errors, f.Field+" "+f.Reason)
			continue
		}
		if d.Fields[i].Error == "" {
			d.Fields[i].Error = f.Reason
		}
	}
}

// parseForm reads the submitted parameters. Blank numeric inputs are left
// unset so the preset value applies.
func parseForm(r *http.Request) (strategy.Params, *core.ValidationError) {
	var p strategy.Params
	verr := &core.ValidationError{}

	for _, f := range numericFields {
		raw := strings.TrimSpace(r.PostFormValue(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			verr.Add(f.name, raw, "must be a number")
			continue
		}
		*f.ptr(&p) = &v
	}

	if bias := strings.TrimSpace(r.PostFormValue("trendBias")); bias != "" {
		p.TrendBias = &bias
	}
	useSIP := r.PostFormValue("useSip") != ""
	p.UseSIP = &useSIP

	return p, verr
}

func newResultView(rep *strategy.Report) *ResultView {
	view := &ResultView{
		Cards:    report.Cards(rep),
		Monthly:  report.MonthlyRows(rep),
		Warnings: rep.Warnings,
	}

	returns := make([]float64, len(rep.PayoffTable))
	for i, row := range rep.PayoffTable {
		view.Payoff = append(view.Payoff, PayoffView{
			Level:      row.Level,
			EntryPrice: report.Money(row.EntryPrice),
			Cost:       report.Money(row.Cost),
			Drawdown:   report.Money(row.Drawdown),
			Return:     report.Money(row.ReturnIfSoldAtTarget),
		})
		returns[i] = row.ReturnIfSoldAtTarget
	}

	buffers := make([]float64, len(rep.VolatilityBufferSeries))
	for i, pt := range rep.VolatilityBufferSeries {
		view.Volatility = append(view.Volatility, BufferView{Position: pt.Position, Buffer: report.Money(pt.Buffer)})
		buffers[i] = pt.Buffer
	}

	view.PayoffChart = NewChart(returns)
	view.BufferChart = NewChart(buffers)
	return view
}

func isDark(theme string) bool {
	return strings.EqualFold(theme, "dark")
}
