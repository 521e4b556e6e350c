package trail

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestVec3_Arithmetic(t *testing.T) {
	tests := []struct {
		name   string
		got    Vec3
		expect Vec3
	}{
		{"add", V3(1, 2, 3).Add(V3(4, 5, 6)), V3(5, 7, 9)},
		{"sub", V3(5, 7, 9).Sub(V3(4, 5, 6)), V3(1, 2, 3)},
		{"mul", V3(1, -2, 3).Mul(2), V3(2, -4, 6)},
		{"normalize", V3(3, 0, 4).Normalize(), V3(0.6, 0, 0.8)},
		{"normalize zero", Vec3{}.Normalize(), Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.expect, tt.got, cmpopts.EquateApprox(0, 1e-10)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVec3_LengthDistance(t *testing.T) {
	if got := V3(2, 3, 6).Length(); got != 7 {
		t.Errorf("Length() = %v, want 7", got)
	}
	if got := V3(1, 1, 1).Distance(V3(1, 1, 4)); got != 3 {
		t.Errorf("Distance() = %v, want 3", got)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want bool
	}{
		{"finite", V3(1, 2, 3), true},
		{"nan", V3(math.NaN(), 0, 0), false},
		{"inf", V3(0, math.Inf(-1), 0), false},
		{"z inf", V3(0, 0, math.Inf(1)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
