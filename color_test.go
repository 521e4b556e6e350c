package trail

import (
	"image/color"
	"math"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		hex  string
		want Color
	}{
		{"#ff0000", RGB(1, 0, 0)},
		{"00ff00", RGB(0, 1, 0)},
		{"#fff", White},
		{"0ff", Cyan},
		{"bogus", White},
	}
	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			if got := Hex(tt.hex); got != tt.want {
				t.Errorf("Hex(%q) = %v, want %v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		want    Color
	}{
		{"red", 0, 1, 0.5, RGB(1, 0, 0)},
		{"green", 120, 1, 0.5, RGB(0, 1, 0)},
		{"blue", 240, 1, 0.5, RGB(0, 0, 1)},
		{"wrapped", 360 + 120, 1, 0.5, RGB(0, 1, 0)},
		{"gray", 42, 0, 0.5, RGB(0.5, 0.5, 0.5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HSL(tt.h, tt.s, tt.l)
			for i, v := range got.Array() {
				if math.Abs(float64(v-tt.want.Array()[i])) > 1e-6 {
					t.Errorf("HSL(%v,%v,%v) = %v, want %v", tt.h, tt.s, tt.l, got, tt.want)
					break
				}
			}
		})
	}
}

func TestFromColorAndNRGBA(t *testing.T) {
	c := FromColor(color.NRGBA{R: 255, G: 0, B: 255, A: 128})
	if math.Abs(float64(c.R-1)) > 1e-3 || c.G != 0 || math.Abs(float64(c.B-1)) > 1e-3 {
		t.Errorf("FromColor = %v, want magenta", c)
	}
	n := Magenta.NRGBA(0.5)
	if n.R != 255 || n.G != 0 || n.A != 127 {
		t.Errorf("NRGBA = %v", n)
	}
	if (Color{}).valid() != true || RGB(2, 0, 0).valid() {
		t.Error("valid() misclassified colors")
	}
}
