package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestValueJSON(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"number", Num(12.5), "12.5"},
		{"missing", Missing(), "null"},
		{"nan", Num(math.NaN()), "null"},
		{"inf", Num(math.Inf(-1)), "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal = %s, expected %s", data, tt.want)
			}
		})
	}

	var v Value
	if err := json.Unmarshal([]byte("null"), &v); err != nil || v.Valid {
		t.Errorf("Unmarshal(null) = %+v, %v", v, err)
	}
	if err := json.Unmarshal([]byte("7"), &v); err != nil || v != Num(7) {
		t.Errorf("Unmarshal(7) = %+v, %v", v, err)
	}
}
