package internal

import (
	"errors"
	"testing"
)

func TestGenerateTimeseries_WindowsAndLabels(t *testing.T) {
	prices := []float64{1, 2, 3, 4, 5}

	windows, err := GenerateTimeseries(prices, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Ровно len(prices)-n окон
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}

	expected := []Window{
		{Features: []float64{1, 2}, Label: 1}, // 3-2
		{Features: []float64{2, 3}, Label: 1}, // 4-3
		{Features: []float64{3, 4}, Label: 1}, // 5-4
	}
	for i, w := range windows {
		if len(w.Features) != 2 || w.Features[0] != expected[i].Features[0] || w.Features[1] != expected[i].Features[1] {
			t.Errorf("window %d: features %v, expected %v", i, w.Features, expected[i].Features)
		}
		if w.Label != expected[i].Label {
			t.Errorf("window %d: label %v, expected %v", i, w.Label, expected[i].Label)
		}
	}
}

func TestGenerateTimeseries_KeepsSourceImmutable(t *testing.T) {
	prices := []float64{10, 20, 30, 40}
	windows, err := GenerateTimeseries(prices, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Мутация окна не должна трогать исходный ряд
	windows[0].Features[0] = -1
	if prices[0] != 10 {
		t.Errorf("source series mutated: %v", prices)
	}
}

func TestGenerateTimeseries_InvalidWindowLength(t *testing.T) {
	prices := []float64{1, 2, 3}

	for _, n := range []int{0, -1, 3, 10} {
		_, err := GenerateTimeseries(prices, n)
		var invalid *ErrInvalidWindowLength
		if !errors.As(err, &invalid) {
			t.Errorf("n=%d: expected ErrInvalidWindowLength, got %v", n, err)
		}
	}
}
