package trail

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultTraceConfigValid(t *testing.T) {
	cfg := DefaultTraceConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultTraceConfig().Validate() = %v", err)
	}
}

func TestTraceConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*TraceConfig)
	}{
		{"max tail length", func(c *TraceConfig) { c.MaxTailLength = 1 }},
		{"zero lifetime", func(c *TraceConfig) { c.TailLifetime = 0 }},
		{"nan lifetime", func(c *TraceConfig) { c.TailLifetime = math.NaN() }},
		{"inf lifetime", func(c *TraceConfig) { c.TailLifetime = math.Inf(1) }},
		{"smoothing", func(c *TraceConfig) { c.Smoothing = SmoothingMode(9) }},
		{"color", func(c *TraceConfig) { c.BaseColor = Color{R: 2} }},
		{"opacity", func(c *TraceConfig) { c.OpacityFade[1] = float32(math.NaN()) }},
		{"min threshold", func(c *TraceConfig) { c.TeleportMinThreshold = -1 }},
		{"window", func(c *TraceConfig) { c.TeleportHistoryWindow = 0 }},
		{"resample points", func(c *TraceConfig) { c.MaxResamplePoints = -1 }},
		{"resample factor", func(c *TraceConfig) { c.ResampleFactor = math.Inf(1) }},
		{"bootstrap offset", func(c *TraceConfig) { c.BootstrapOffset = 0 }},
		{"bootstrap epsilon", func(c *TraceConfig) { c.BootstrapEpsilon = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultTraceConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseSmoothingMode(t *testing.T) {
	for _, m := range []SmoothingMode{Jagged, ApproxSmooth, TrueSmooth} {
		got, err := ParseSmoothingMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseSmoothingMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseSmoothingMode("wobbly"); err == nil {
		t.Error("ParseSmoothingMode(wobbly) should fail")
	}
}

func TestTraceConfigGuardParams(t *testing.T) {
	cfg := DefaultTraceConfig()
	cfg.TeleportHistoryWindow = 16
	cfg.TeleportMinThreshold = 2
	cfg.Teleport.StartupSamples = 5

	p := cfg.guardParams()
	if p.Window != 16 || p.MinThreshold != 2 || p.StartupSamples != 5 {
		t.Errorf("guardParams() = %+v", p)
	}
	if p.MADScale != cfg.Teleport.MADScale {
		t.Errorf("MADScale = %v, want %v", p.MADScale, cfg.Teleport.MADScale)
	}
}
