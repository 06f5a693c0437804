package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/commodity"
	"github.com/newthinker/stagger/internal/config"
	"github.com/newthinker/stagger/internal/core"
	"github.com/newthinker/stagger/internal/report"
	"github.com/newthinker/stagger/internal/strategy"
)

func parseFlags(t *testing.T, args ...string) strategy.Params {
	t.Helper()
	f := pflag.NewFlagSet("test", pflag.ContinueOnError)
	registerParamFlags(f)
	require.NoError(t, f.Parse(args))
	p, err := paramsFromFlags(f)
	require.NoError(t, err)
	return p
}

func testCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetContext(context.Background())
	return cmd, &out, &errOut
}

func TestParamsFromFlags_OnlyChanged(t *testing.T) {
	p := parseFlags(t, "--buy-interval", "4000", "--trend-bias", "bearish", "--use-sip=false")

	require.NotNil(t, p.BuyInterval)
	assert.Equal(t, 4000.0, *p.BuyInterval)
	require.NotNil(t, p.TrendBias)
	assert.Equal(t, "bearish", *p.TrendBias)
	require.NotNil(t, p.UseSIP)
	assert.False(t, *p.UseSIP)

	assert.Nil(t, p.CurrentPrice)
	assert.Nil(t, p.ATR)
}

func TestParamsFromFlags_None(t *testing.T) {
	p := parseFlags(t)
	assert.Equal(t, strategy.Params{}, p)
}

func TestAnalyze_TextOutput(t *testing.T) {
	cmd, out, _ := testCommand()
	a := app.New(commodity.Builtin(), nil, nil)

	err := analyze(cmd, a, "", parseFlags(t), report.FormatText, false)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "silver")
	assert.Contains(t, text, "756000")
	assert.Contains(t, text, "47.22%")
}

func TestAnalyze_JSONOverlay(t *testing.T) {
	cmd, out, _ := testCommand()
	a := app.New(commodity.Builtin(), nil, nil)

	err := analyze(cmd, a, "silver", parseFlags(t, "--buy-interval", "4000"), report.FormatJSON, false)
	require.NoError(t, err)

	var doc struct {
		Commodity string `json:"commodity"`
		Report    struct {
			TotalPositions int `json:"totalPositions"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, "silver", doc.Commodity)
	assert.Equal(t, 11, doc.Report.TotalPositions)
}

func TestAnalyze_InvalidInput(t *testing.T) {
	cmd, _, _ := testCommand()
	a := app.New(commodity.Builtin(), nil, nil)

	err := analyze(cmd, a, "silver", parseFlags(t, "--min-price", "-1"), report.FormatText, false)
	assert.True(t, errors.Is(err, core.ErrInvalidInput))
}

func TestAnalyze_Export(t *testing.T) {
	cfg := config.Defaults()
	cfg.Export.Type = config.ExportLocalFS
	cfg.Export.Path = t.TempDir()

	a, err := app.FromConfig(cfg, nil, nil)
	require.NoError(t, err)

	cmd, out, errOut := testCommand()
	err = analyze(cmd, a, "gold", parseFlags(t), report.FormatCSV, true)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "level,entry_price"))
	assert.Contains(t, errOut.String(), "exported report to reports/gold/")
	assert.Contains(t, errOut.String(), ".csv")
}

func TestAnalyze_ExportDisabled(t *testing.T) {
	cmd, _, _ := testCommand()
	a := app.New(commodity.Builtin(), nil, nil)

	err := analyze(cmd, a, "", parseFlags(t), report.FormatText, true)
	assert.True(t, errors.Is(err, core.ErrExportDisabled))
}

func TestAnalyze_ExportKeepsPrintedDocument(t *testing.T) {
	cfg := config.Defaults()
	cfg.Export.Type = config.ExportLocalFS
	cfg.Export.Path = t.TempDir()

	a, err := app.FromConfig(cfg, nil, nil)
	require.NoError(t, err)

	cmd, out, errOut := testCommand()
	err = analyze(cmd, a, "silver", parseFlags(t), report.FormatJSON, true)
	require.NoError(t, err)

	var printed report.Document
	require.NoError(t, json.Unmarshal(out.Bytes(), &printed))
	require.NotEmpty(t, printed.ID)

	path := strings.TrimSpace(strings.TrimPrefix(errOut.String(), "exported report to "))
	assert.Contains(t, path, printed.ID)

	exp, err := a.Exporter()
	require.NoError(t, err)
	data, err := exp.Open(context.Background(), path)
	require.NoError(t, err)

	var archived report.Document
	require.NoError(t, json.Unmarshal(data, &archived))
	assert.Equal(t, printed.ID, archived.ID)
	assert.True(t, printed.GeneratedAt.Equal(archived.GeneratedAt))
	assert.Equal(t, printed.Report.TotalCapitalNeeded, archived.Report.TotalCapitalNeeded)
}
