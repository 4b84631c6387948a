package match

import (
	"math"
	"testing"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical texts",
			a:    "black leather wallet",
			b:    "black leather wallet",
			want: 1.0,
		},
		{
			name: "case insensitive",
			a:    "Black Wallet",
			b:    "black wallet",
			want: 1.0,
		},
		{
			name: "no overlap",
			a:    "red umbrella",
			b:    "laptop charger",
			want: 0,
		},
		{
			name: "partial overlap",
			a:    "black wallet",
			b:    "black bag",
			want: 1.0 / 3.0,
		},
		{
			name: "duplicate tokens collapse",
			a:    "wallet wallet wallet",
			b:    "wallet",
			want: 1.0,
		},
		{
			name: "empty left",
			a:    "",
			b:    "wallet",
			want: 0,
		},
		{
			name: "both empty",
			a:    "",
			b:    "",
			want: 0,
		},
		{
			name: "whitespace only",
			a:    "   ",
			b:    "wallet",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetric(t *testing.T) {
	a := "blue backpack with laptop compartment"
	b := "backpack blue found near library"
	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("Similarity is not symmetric: %v vs %v", Similarity(a, b), Similarity(b, a))
	}
}
