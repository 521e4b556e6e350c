package trail

import (
	"fmt"
	"math"

	"github.com/gogpu/trail/internal/attrib"
	"github.com/gogpu/trail/internal/guard"
	"github.com/gogpu/trail/internal/smooth"
)

// SmoothingMode selects how a trace's history is turned into the drawn
// polyline.
type SmoothingMode = smooth.Mode

// Smoothing modes.
const (
	// Jagged draws the raw history with two light local-average passes.
	Jagged SmoothingMode = smooth.Jagged

	// ApproxSmooth resamples by arc length, averages and fits one
	// interpolating spline pass.
	ApproxSmooth SmoothingMode = smooth.ApproxSmooth

	// TrueSmooth is ApproxSmooth with a second spline pass.
	TrueSmooth SmoothingMode = smooth.TrueSmooth
)

// ParseSmoothingMode parses a mode name: "jagged", "approx_smooth" or
// "true_smooth".
func ParseSmoothingMode(s string) (SmoothingMode, error) {
	return smooth.ParseMode(s)
}

// Default configuration values.
const (
	DefaultMaxTailLength     = 100
	DefaultTailLifetime      = 1.0
	DefaultBootstrapOffset   = 1e-3
	DefaultBootstrapEpsilon  = 1e-9
	DefaultMaxResamplePoints = smooth.DefaultMaxResamplePoints
	DefaultResampleFactor    = smooth.DefaultResampleFactor
)

// TeleportTuning holds the scale factors of the adaptive discontinuity
// threshold. The threshold is the maximum of the configured minimum,
// median+MADScale*MAD, P90Scale*p90 and P99Scale*p99 of the recent step
// distances; the median and MAD average the two middle values of an even
// count. While the window holds StartupSamples or fewer distances,
// StartupScale times the largest recent step is also a lower bound.
//
// StartupSamples counts step distances, not retained samples. A trace
// that has just bootstrapped holds three samples and one distance, so the
// default of 3 also floors the three steps that follow it. The first
// step after a seed is checked against TeleportMinThreshold alone.
type TeleportTuning struct {
	MADScale       float64
	P90Scale       float64
	P99Scale       float64
	StartupScale   float64
	StartupSamples int
}

// DefaultTeleportTuning returns the default threshold scale factors.
func DefaultTeleportTuning() TeleportTuning {
	return TeleportTuning{
		MADScale:       guard.DefaultMADScale,
		P90Scale:       guard.DefaultP90Scale,
		P99Scale:       guard.DefaultP99Scale,
		StartupScale:   guard.DefaultStartupScale,
		StartupSamples: guard.DefaultStartupSamples,
	}
}

// TraceConfig describes the appearance and behavior of one trace.
// Times are in seconds, distances in scene units.
type TraceConfig struct {
	// MaxTailLength is the maximum number of retained samples (>= 2).
	MaxTailLength int

	// TailLifetime is the age at which a sample is evicted and at which
	// the fade reaches its end values.
	TailLifetime float64

	// OpacityFade and WidthFade are the [head, tail] values interpolated
	// by progress (0 at the newest sample, 1 at TailLifetime).
	OpacityFade [2]float32
	WidthFade   [2]float32

	// GlowFactor scales the glow attribute, which decays by GlowDecay
	// over the tail.
	GlowFactor float32
	GlowDecay  float32

	Smoothing SmoothingMode
	BaseColor Color

	// TeleportMinThreshold is the smallest step ever treated as a
	// discontinuity; TeleportHistoryWindow is the number of recent steps
	// the adaptive threshold is computed from.
	TeleportMinThreshold  float64
	TeleportHistoryWindow int
	Teleport              TeleportTuning

	MaxResamplePoints int
	ResampleFactor    float64

	// BootstrapOffset is the distance of the synthetic predecessor placed
	// behind the seed when a trace first moves. Movements no larger than
	// BootstrapEpsilon do not end bootstrapping.
	BootstrapOffset  float64
	BootstrapEpsilon float64
}

// DefaultTraceConfig returns a white, jagged trace with a one second tail.
func DefaultTraceConfig() TraceConfig {
	return TraceConfig{
		MaxTailLength:         DefaultMaxTailLength,
		TailLifetime:          DefaultTailLifetime,
		OpacityFade:           [2]float32{1, 0},
		WidthFade:             [2]float32{3, 0.5},
		GlowFactor:            1,
		GlowDecay:             attrib.DefaultGlowDecay,
		Smoothing:             Jagged,
		BaseColor:             White,
		TeleportMinThreshold:  guard.DefaultMinThreshold,
		TeleportHistoryWindow: guard.DefaultWindow,
		Teleport:              DefaultTeleportTuning(),
		MaxResamplePoints:     DefaultMaxResamplePoints,
		ResampleFactor:        DefaultResampleFactor,
		BootstrapOffset:       DefaultBootstrapOffset,
		BootstrapEpsilon:      DefaultBootstrapEpsilon,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *TraceConfig) Validate() error {
	switch {
	case c.MaxTailLength < 2:
		return fmt.Errorf("%w: max tail length %d < 2", ErrInvalidConfig, c.MaxTailLength)
	case !(c.TailLifetime > 0) || math.IsInf(c.TailLifetime, 0):
		return fmt.Errorf("%w: tail lifetime %v must be positive and finite", ErrInvalidConfig, c.TailLifetime)
	case !c.Smoothing.Valid():
		return fmt.Errorf("%w: smoothing mode %d", ErrInvalidConfig, uint8(c.Smoothing))
	case !c.BaseColor.valid():
		return fmt.Errorf("%w: base color %v", ErrInvalidConfig, c.BaseColor)
	case !finite32(c.OpacityFade[0], c.OpacityFade[1], c.WidthFade[0], c.WidthFade[1], c.GlowFactor, c.GlowDecay):
		return fmt.Errorf("%w: non-finite fade or glow value", ErrInvalidConfig)
	case c.TeleportMinThreshold < 0 || math.IsNaN(c.TeleportMinThreshold):
		return fmt.Errorf("%w: teleport min threshold %v", ErrInvalidConfig, c.TeleportMinThreshold)
	case c.TeleportHistoryWindow < 1:
		return fmt.Errorf("%w: teleport history window %d < 1", ErrInvalidConfig, c.TeleportHistoryWindow)
	case c.MaxResamplePoints < 0:
		return fmt.Errorf("%w: max resample points %d", ErrInvalidConfig, c.MaxResamplePoints)
	case math.IsNaN(c.ResampleFactor) || math.IsInf(c.ResampleFactor, 0):
		return fmt.Errorf("%w: resample factor %v", ErrInvalidConfig, c.ResampleFactor)
	case !(c.BootstrapOffset > 0) || math.IsInf(c.BootstrapOffset, 0):
		return fmt.Errorf("%w: bootstrap offset %v must be positive", ErrInvalidConfig, c.BootstrapOffset)
	case c.BootstrapEpsilon < 0 || math.IsNaN(c.BootstrapEpsilon):
		return fmt.Errorf("%w: bootstrap epsilon %v", ErrInvalidConfig, c.BootstrapEpsilon)
	}
	return nil
}

func (c *TraceConfig) guardParams() guard.Params {
	return guard.Params{
		Window:         c.TeleportHistoryWindow,
		MinThreshold:   c.TeleportMinThreshold,
		MADScale:       c.Teleport.MADScale,
		P90Scale:       c.Teleport.P90Scale,
		P99Scale:       c.Teleport.P99Scale,
		StartupScale:   c.Teleport.StartupScale,
		StartupSamples: c.Teleport.StartupSamples,
	}
}

func (c *TraceConfig) smoothParams() smooth.Params {
	return smooth.Params{
		Mode:              c.Smoothing,
		MaxResamplePoints: c.MaxResamplePoints,
		ResampleFactor:    c.ResampleFactor,
	}
}

func (c *TraceConfig) attribParams(now float64) attrib.Params {
	return attrib.Params{
		Now:          now,
		Lifetime:     c.TailLifetime,
		WidthStart:   c.WidthFade[0],
		WidthEnd:     c.WidthFade[1],
		OpacityStart: c.OpacityFade[0],
		OpacityEnd:   c.OpacityFade[1],
		GlowFactor:   c.GlowFactor,
		GlowDecay:    c.GlowDecay,
	}
}

func finite32(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
