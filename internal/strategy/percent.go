package strategy

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

const undefinedPercent = "undefined"

// Percent is a ratio expressed in percent. The zero value is undefined.
type Percent struct {
	value   float64
	defined bool
}

// PercentOf returns part/whole*100, or an undefined Percent when whole is zero
// or the result is not finite.
func PercentOf(part, whole float64) Percent {
	if whole == 0 {
		return Percent{}
	}
	v := part / whole * 100
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Percent{}
	}
	return Percent{value: v, defined: true}
}

// Value returns the percentage and whether it is defined.
func (p Percent) Value() (float64, bool) {
	return p.value, p.defined
}

// Defined reports whether the percentage has a value.
func (p Percent) Defined() bool {
	return p.defined
}

// String formats the value with two decimals and a percent sign.
func (p Percent) String() string {
	if !p.defined {
		return undefinedPercent
	}
	return decimal.NewFromFloat(p.value).StringFixed(2) + "%"
}

func (p Percent) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Percent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == undefinedPercent {
		*p = Percent{}
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s, "%"))
	if err != nil {
		return fmt.Errorf("parsing percent %q: %w", s, err)
	}
	*p = Percent{value: d.InexactFloat64(), defined: true}
	return nil
}
