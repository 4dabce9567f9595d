package domain

import (
	"math"
	"testing"
)

func TestCleanName(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Gin", "Gin", true},
		{"  Lime juice \t", "Lime juice", true},
		{"", "", false},
		{"   ", "", false},
		{"\n\t", "", false},
	}
	for _, tt := range tests {
		got, ok := CleanName(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("CleanName(%q) = %q,%v want %q,%v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestValidAmount(t *testing.T) {
	for _, a := range []float64{0, 0.5, 10} {
		if !ValidAmount(a) {
			t.Errorf("expected %v valid", a)
		}
	}
	for _, a := range []float64{-1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		if ValidAmount(a) {
			t.Errorf("expected %v invalid", a)
		}
	}
}

func TestValidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []RecipeItem
		want  bool
	}{
		{"empty", nil, false},
		{"single", []RecipeItem{{IngredientID: "a", Amount: 1}}, true},
		{"negative", []RecipeItem{{IngredientID: "a", Amount: -1}}, false},
		{"duplicate", []RecipeItem{{IngredientID: "a", Amount: 1}, {IngredientID: "a", Amount: 2}}, false},
		{"two distinct", []RecipeItem{{IngredientID: "a", Amount: 1}, {IngredientID: "b", Amount: 0}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidItems(tt.items); got != tt.want {
				t.Fatalf("ValidItems = %v, want %v", got, tt.want)
			}
		})
	}
}
