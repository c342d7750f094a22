package chart

import (
	"math"
	"strings"
	"testing"
)

func TestSparkline(t *testing.T) {
	chart := Sparkline([]float64{0, 0.25, 0.5, 0.75, 1, 0.75, 0.5, 0.25, 0}, 4)

	lines := strings.Split(chart, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 9 {
			t.Errorf("line %d has %d columns, want 9", i, n)
		}
	}

	t.Logf("Generated Chart:\n%s", chart)
}

func TestSparkline_Columns(t *testing.T) {
	// height 2 gives 8 sub-blocks; 0.5 fills exactly the bottom line
	chart := Sparkline([]float64{0, 0.5, 1}, 2)
	lines := strings.Split(chart, "\n")
	top, bottom := []rune(lines[0]), []rune(lines[1])

	tests := []struct {
		name   string
		top    rune
		bottom rune
		column int
	}{
		{"zero", '⠀', '⠀', 0},
		{"half", '⠀', '⣿', 1},
		{"full", '⣿', '⣿', 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if top[tt.column] != tt.top {
				t.Errorf("top[%d] = %q, want %q", tt.column, top[tt.column], tt.top)
			}
			if bottom[tt.column] != tt.bottom {
				t.Errorf("bottom[%d] = %q, want %q", tt.column, bottom[tt.column], tt.bottom)
			}
		})
	}
}

func TestSparkline_Partial(t *testing.T) {
	// 0.5 on a single line is two of four sub-blocks
	chart := Sparkline([]float64{0.5, 0.5}, 1)
	if chart != "⣤⣤" {
		t.Errorf("Sparkline() = %q, want %q", chart, "⣤⣤")
	}
}

func TestSparkline_Clamps(t *testing.T) {
	chart := Sparkline([]float64{-1, 2}, 1)
	if chart != "⠀⣿" {
		t.Errorf("Sparkline() = %q, want %q", chart, "⠀⣿")
	}
}

func TestSparkline_TooFewValues(t *testing.T) {
	if chart := Sparkline([]float64{1}, 4); chart != "" {
		t.Errorf("Sparkline() = %q, want empty", chart)
	}
	if chart := Sparkline([]float64{0, 1}, 0); chart != "" {
		t.Errorf("Sparkline() = %q, want empty for zero height", chart)
	}
}

func TestSparkline_SineWave(t *testing.T) {
	var values []float64
	for i := 0; i < 24; i++ {
		values = append(values, 0.5+0.5*math.Sin(float64(i)*2*math.Pi/24))
	}

	chart := Sparkline(values, 6)
	if chart == "" {
		t.Fatal("Chart empty")
	}

	t.Logf("Sine Wave Chart:\n%s", chart)
}
