package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/trail"
)

// background is the canvas fill color.
var background = color.NRGBA{R: 12, G: 14, B: 24, A: 255}

// savePNG rasterizes the line-list vs as width-scaled quads, mapping the
// scene square [-1, 1]^2 onto the image, and writes it to path.
func savePNG(path string, vs []trail.Vertex, w, h int) error {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	scale := float32(min(w, h)) / 2
	cx, cy := float32(w)/2, float32(h)/2
	toScreen := func(p [3]float32) (float32, float32) {
		return cx + p[0]*scale, cy - p[1]*scale
	}

	var z vector.Rasterizer
	for i := 0; i+1 < len(vs); i += 2 {
		a, b := &vs[i], &vs[i+1]
		if a.Color[3] <= 0 && b.Color[3] <= 0 {
			continue
		}
		x0, y0 := toScreen(a.Position)
		x1, y1 := toScreen(b.Position)
		dx, dy := x1-x0, y1-y0
		l := float32(math.Hypot(float64(dx), float64(dy)))
		if l < 1e-3 {
			continue
		}
		// Unit normal scaled to half width at each end.
		nx, ny := -dy/l, dx/l
		ha, hb := a.Width/2, b.Width/2

		z.Reset(w, h)
		z.MoveTo(x0+nx*ha, y0+ny*ha)
		z.LineTo(x1+nx*hb, y1+ny*hb)
		z.LineTo(x1-nx*hb, y1-ny*hb)
		z.LineTo(x0-nx*ha, y0-ny*ha)
		z.ClosePath()

		alpha := (a.Color[3] + b.Color[3]) / 2
		glow := 1 + (a.Glow+b.Glow)/4
		c := trail.RGB(
			float64(a.Color[0]*glow),
			float64(a.Color[1]*glow),
			float64(a.Color[2]*glow),
		).NRGBA(alpha)
		z.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
