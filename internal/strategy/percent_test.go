package strategy

import (
	"encoding/json"
	"testing"
)

func TestPercentOf(t *testing.T) {
	tests := []struct {
		name    string
		part    float64
		whole   float64
		want    string
		defined bool
	}{
		{"simple", 1, 4, "25.00%", true},
		{"rounds half up", 1, 8, "12.50%", true},
		{"repeating", 420000, 756000, "55.56%", true},
		{"zero part", 0, 10, "0.00%", true},
		{"zero whole", 10, 0, "undefined", false},
		{"zero over zero", 0, 0, "undefined", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PercentOf(tt.part, tt.whole)
			if got := p.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if p.Defined() != tt.defined {
				t.Errorf("Defined() = %v, want %v", p.Defined(), tt.defined)
			}
		})
	}
}

func TestPercent_JSON(t *testing.T) {
	data, err := json.Marshal(ROI{Low: PercentOf(1, 3), High: Percent{}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"low":"33.33%","high":"undefined"}` {
		t.Errorf("unexpected JSON: %s", data)
	}

	var roi ROI
	if err := json.Unmarshal(data, &roi); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if v, ok := roi.Low.Value(); !ok || v != 33.33 {
		t.Errorf("low = %v (defined %v), want 33.33", v, ok)
	}
	if roi.High.Defined() {
		t.Error("high should stay undefined")
	}
}

func TestPercent_UnmarshalInvalid(t *testing.T) {
	var p Percent
	if err := json.Unmarshal([]byte(`"abc%"`), &p); err == nil {
		t.Error("expected error for non-numeric percent")
	}
}
