// Command traildemo renders the trails of a few moving points to a PNG.
//
// Each point follows a Lissajous curve; one of them jumps to the opposite
// side of the scene every -teleport-every frames to show discontinuity
// handling. The final frame's vertex buffer is rasterized on the CPU.
package main

import (
	"flag"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/trail"
)

func main() {
	var (
		traces        = flag.Int("traces", 4, "number of traces")
		frames        = flag.Int("frames", 240, "number of frames to simulate")
		fps           = flag.Float64("fps", 60, "simulation frame rate")
		mode          = flag.String("mode", "approx_smooth", "smoothing mode: jagged, approx_smooth, true_smooth")
		teleportEvery = flag.Int("teleport-every", 90, "frames between teleports of the first trace (0 disables)")
		width         = flag.Int("width", 800, "image width")
		height        = flag.Int("height", 600, "image height")
		output        = flag.String("output", "trails.png", "output file")
		verbose       = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	trail.SetLogger(log)

	smoothing, err := trail.ParseSmoothingMode(*mode)
	if err != nil {
		log.Error("invalid -mode", "err", err)
		os.Exit(2)
	}
	if *fps <= 0 || *traces < 1 || *frames < 1 {
		log.Error("-fps, -traces and -frames must be positive")
		os.Exit(2)
	}

	clock := &sceneClock{}
	b := trail.NewBatch(trail.WithInitialCapacity(*traces * 512))
	for i := 0; i < *traces; i++ {
		cfg := trail.DefaultTraceConfig()
		cfg.Smoothing = smoothing
		cfg.TailLifetime = 1.5
		cfg.MaxTailLength = 240
		cfg.WidthFade = [2]float32{6, 1}
		cfg.BaseColor = trail.HSL(float64(i)/float64(*traces)*360, 0.8, 0.6)

		src := newLissajous(clock, i)
		if i == 0 && *teleportEvery > 0 {
			src.teleportEvery = *teleportEvery
		}
		if _, err := b.RegisterTrace(cfg, src); err != nil {
			log.Error("register trace", "err", err)
			os.Exit(1)
		}
	}

	dt := 1 / *fps
	for f := 0; f < *frames; f++ {
		clock.frame = f
		clock.t += dt
		if err := b.Tick(dt); err != nil {
			log.Error("tick", "frame", f, "err", err)
			os.Exit(1)
		}
	}

	st := b.Stats()
	log.Info("simulation done",
		"frames", st.Ticks,
		"samples", st.Samples,
		"skipped", st.SkippedSamples,
		"resets", st.Resets,
		"fit_fallbacks", st.FitFallbacks,
		"growths", st.Growths,
		"vertices", st.UsedVertices,
		"capacity", st.Capacity)

	vs, _ := b.Published()
	if err := savePNG(*output, vs, *width, *height); err != nil {
		log.Error("save", "err", err)
		os.Exit(1)
	}
	log.Info("trails saved", "output", *output, "width", *width, "height", *height)
}

// sceneClock is the shared simulation time read by the sources.
type sceneClock struct {
	t     float64
	frame int
}

// lissajous is a point moving on a Lissajous curve in [-1, 1]^2.
type lissajous struct {
	clock         *sceneClock
	a, b, phase   float64
	teleportEvery int
}

func newLissajous(clock *sceneClock, i int) *lissajous {
	return &lissajous{
		clock: clock,
		a:     1 + float64(i%3),
		b:     2 + float64(i%2),
		phase: float64(i) * math.Pi / 5,
	}
}

func (l *lissajous) Position() (trail.Vec3, error) {
	t := l.clock.t
	p := trail.V3(0.8*math.Sin(l.a*t+l.phase), 0.8*math.Sin(l.b*t), 0)
	if l.teleportEvery > 0 && (l.clock.frame/l.teleportEvery)%2 == 1 {
		p = p.Mul(-1)
	}
	return p, nil
}
