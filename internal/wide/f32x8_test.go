package wide

import (
	"math"
	"testing"
)

func TestSplatF32(t *testing.T) {
	tests := []struct {
		name  string
		value float32
	}{
		{"zero", 0.0},
		{"one", 1.0},
		{"half", 0.5},
		{"negative", -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SplatF32(tt.value)
			for i, v := range result {
				if v != tt.value {
					t.Errorf("element %d = %f, want %f", i, v, tt.value)
				}
			}
		})
	}
}

func TestLoadF64(t *testing.T) {
	src := []float64{0.5, 1.5, 2.5, 3.5, 4.5, 5.5, 6.5, 7.5, 8.5}
	v := LoadF64(src)
	for i := 0; i < Lanes; i++ {
		if v[i] != float32(src[i]) {
			t.Errorf("element %d = %f, want %f", i, v[i], src[i])
		}
	}

	short := LoadF64(src[:2])
	if short[2] != 0 || short[7] != 0 {
		t.Errorf("LoadF64 short input not zero-padded: %v", short)
	}
}

func TestStoreTruncates(t *testing.T) {
	dst := make([]float32, 3)
	SplatF32(7).Store(dst)
	for i, v := range dst {
		if v != 7 {
			t.Errorf("dst[%d] = %f, want 7", i, v)
		}
	}
}

func TestF32x8_Arithmetic(t *testing.T) {
	a := SplatF32(3)
	b := SplatF32(2)

	tests := []struct {
		name string
		got  F32x8
		want float32
	}{
		{"add", a.Add(b), 5},
		{"mul", a.Mul(b), 6},
		{"muladd", a.MulAdd(b, SplatF32(1)), 7},
		{"sqrt", SplatF32(16).Sqrt(), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i, v := range tt.got {
				if v != tt.want {
					t.Errorf("element %d = %f, want %f", i, v, tt.want)
				}
			}
		})
	}
}

func TestF32x8_Clamp(t *testing.T) {
	nan := float32(math.NaN())
	v := F32x8{-1, 0, 0.25, 0.5, 1, 2, nan, 0.75}
	got := v.Clamp(0, 1)
	want := F32x8{0, 0, 0.25, 0.5, 1, 1, 0, 0.75}
	if got != want {
		t.Errorf("Clamp() = %v, want %v", got, want)
	}
}

func TestF32x8_Lerp(t *testing.T) {
	a := SplatF32(1)
	b := SplatF32(0)
	tt := F32x8{0, 0.125, 0.25, 0.375, 0.5, 0.625, 0.75, 1}
	got := a.Lerp(b, tt)
	for i := range got {
		want := 1 - tt[i]
		if math.Abs(float64(got[i]-want)) > 1e-6 {
			t.Errorf("element %d = %f, want %f", i, got[i], want)
		}
	}
}

func BenchmarkF32x8_Lerp(b *testing.B) {
	x := SplatF32(1)
	y := SplatF32(0)
	t := SplatF32(0.5)
	for i := 0; i < b.N; i++ {
		x = x.Lerp(y, t)
	}
	_ = x
}
