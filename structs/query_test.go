package structs

import (
	"math"
	"testing"
)

func TestListTaskParamsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListTaskParams
		want ListTaskParams
	}{
		{"defaults", ListTaskParams{}, ListTaskParams{Page: 1, Limit: 10, Sort: SortNewest}},
		{"negative", ListTaskParams{Page: -2, Limit: -3, Sort: "sideways"}, ListTaskParams{Page: 1, Limit: 10, Sort: SortNewest}},
		{"clamp", ListTaskParams{Page: 3, Limit: 1000, Sort: SortOldest}, ListTaskParams{Page: 3, Limit: 100, Sort: SortOldest}},
		{"huge page", ListTaskParams{Page: math.MaxInt, Limit: 10}, ListTaskParams{Page: MaxPage, Limit: 10, Sort: SortNewest}},
		{"kept", ListTaskParams{Page: 2, Limit: 25, Sort: SortNewest}, ListTaskParams{Page: 2, Limit: 25, Sort: SortNewest}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Normalize()
			if p != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", p, tt.want)
			}
		})
	}
}

func TestListTaskParamsOffset(t *testing.T) {
	p := ListTaskParams{Page: 3, Limit: 20}
	if got := p.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestListTaskParamsOffsetNoOverflow(t *testing.T) {
	p := ListTaskParams{Page: math.MaxInt, Limit: math.MaxInt}
	p.Normalize()
	if got := p.Offset(); got < 0 {
		t.Errorf("Offset() = %d, want non-negative", got)
	}
	if want := (MaxPage - 1) * MaxLimit; p.Offset() != want {
		t.Errorf("Offset() = %d, want %d", p.Offset(), want)
	}
}
