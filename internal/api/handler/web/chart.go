// internal/api/handler/web/chart.go
package web

import (
	"strconv"
	"strings"
)

const (
	chartWidth   = 600
	chartHeight  = 240
	chartPadding = 12
)

// Chart is an SVG area chart drawn server side.
type Chart struct {
	Width  int
	Height int
	// Points is the polygon outline, closed along the baseline.
	Points string
	Max    float64
}

// Empty reports whether there is nothing to draw.
func (c Chart) Empty() bool {
	return c.Points == ""
}

// NewChart scales values into an area polygon. Negative values are clamped
// to the baseline.
func NewChart(values []float64) Chart {
	c := Chart{Width: chartWidth, Height: chartHeight}
	if len(values) == 0 {
		return c
	}

	for _, v := range values {
		if v > c.Max {
			c.Max = v
		}
	}

	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)
	base := float64(chartHeight - chartPadding)

	step := 0.0
	if len(values) > 1 {
		step = plotW / float64(len(values)-1)
	}

	x := func(i int) float64 { return chartPadding + float64(i)*step }
	y := func(v float64) float64 {
		if c.Max <= 0 || v <= 0 {
			return base
		}
		return base - v/c.Max*plotH
	}

	var b strings.Builder
	writePoint(&b, x(0), base)
	for i, v := range values {
		writePoint(&b, x(i), y(v))
	}
	writePoint(&b, x(len(values)-1), base)

	c.Points = strings.TrimSpace(b.String())
	return c
}

func writePoint(b *strings.Builder, x, y float64) {
	b.WriteString(strconv.FormatFloat(x, 'f', 1, 64))
	b.WriteByte(',')
	b.WriteString(strconv.FormatFloat(y, 'f', 1, 64))
	b.WriteByte(' ')
}
