// Command tessdemo tessellates a set of demo shapes, reports the mesh sizes
// and GPU upload sizes, and writes a PNG preview rendered from the meshes.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/tess"
	"github.com/gogpu/tess/gpu"
	"github.com/gogpu/tess/raster"
)

type shape struct {
	name  string
	color color.NRGBA
	draw  func(b *tess.PathBuilder) error
}

func main() {
	var (
		width     = flag.Int("width", 800, "image width")
		height    = flag.Int("height", 600, "image height")
		output    = flag.String("output", "demo.png", "output file (empty to skip)")
		ruleName  = flag.String("rule", "NonZero", "fill rule: NonZero, EvenOdd, Positive or Negative")
		tolerance = flag.Float64("tolerance", tess.DefaultTolerance, "curve flattening tolerance")
		verbose   = flag.Bool("v", false, "log tessellation details")
	)
	flag.Parse()

	if *verbose {
		tess.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	rule, err := tess.ParseFillRule(*ruleName)
	if err != nil {
		log.Fatal(err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, *width, *height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.NRGBA{R: 24, G: 28, B: 40, A: 255}), image.Point{}, draw.Src)

	for _, s := range demoShapes() {
		b := tess.NewPathBuilder()
		if err := s.draw(b); err != nil {
			log.Fatalf("%s: %v", s.name, err)
		}
		buf, err := tess.Tessellate(b.Build(), tess.WithFillRule(rule), tess.WithTolerance(*tolerance))
		if err != nil {
			log.Fatalf("%s: %v", s.name, err)
		}

		format := gpu.IndexFormat(buf)
		indices, err := gpu.IndexBytes(buf, format)
		if err != nil {
			log.Fatalf("%s: %v", s.name, err)
		}
		fmt.Printf("%-10s %5d vertices %5d triangles  area %9.1f  %s  %d+%d bytes\n",
			s.name, len(buf.Vertices), buf.TriangleCount(), buf.Area(),
			format, len(gpu.VertexBytes(buf)), len(indices))

		mask := raster.MeshMask(buf, tess.Identity(), *width, *height)
		draw.DrawMask(canvas, canvas.Bounds(), image.NewUniform(s.color), image.Point{}, mask, image.Point{}, draw.Over)
	}

	if *output == "" {
		return
	}
	if err := savePNG(*output, canvas); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d, %s)\n", *output, *width, *height, rule)
}

func demoShapes() []shape {
	return []shape{
		{"square", color.NRGBA{R: 255, G: 204, A: 255}, func(b *tess.PathBuilder) error {
			return b.AddRect(40, 40, 120, 120)
		}},
		{"roundrect", color.NRGBA{R: 80, G: 200, B: 120, A: 220}, func(b *tess.PathBuilder) error {
			return b.AddRoundRect(200, 40, 180, 120, 24)
		}},
		{"donut", color.NRGBA{R: 255, G: 80, B: 80, A: 220}, func(b *tess.PathBuilder) error {
			if err := b.AddCircle(520, 110, 80); err != nil {
				return err
			}
			return b.AddCircle(520, 110, 40)
		}},
		{"star", color.NRGBA{R: 255, G: 255, A: 255}, func(b *tess.PathBuilder) error {
			return b.AddStar(680, 110, 70, 30, 5)
		}},
		{"pentagram", color.NRGBA{R: 120, G: 160, B: 255, A: 230}, pentagram(110, 350, 90)},
		{"wave", color.NRGBA{R: 255, G: 140, B: 0, A: 230}, func(b *tess.PathBuilder) error {
			return drawWave(b, 250, 280, 300, 140)
		}},
		{"polygon", color.NRGBA{R: 200, G: 120, B: 255, A: 230}, func(b *tess.PathBuilder) error {
			return b.AddPolygon(680, 350, 80, 7)
		}},
	}
}

// pentagram returns a self-intersecting five-pointed star drawing.
func pentagram(cx, cy, r float64) func(b *tess.PathBuilder) error {
	return func(b *tess.PathBuilder) error {
		for i := range 5 {
			sin, cos := math.Sincos(-math.Pi/2 + float64(i)*4*math.Pi/5)
			x, y := cx+r*cos, cy+r*sin
			var err error
			if i == 0 {
				err = b.Begin(x, y)
			} else {
				err = b.LineTo(x, y)
			}
			if err != nil {
				return err
			}
		}
		return b.Close()
	}
}

// drawWave draws a closed band bounded by two cubic waves.
func drawWave(b *tess.PathBuilder, x, y, w, h float64) error {
	if err := b.Begin(x, y+h/2); err != nil {
		return err
	}
	if err := b.CubicTo(x+w/4, y, x+w/4, y+h, x+w/2, y+h/2); err != nil {
		return err
	}
	if err := b.CubicTo(x+3*w/4, y, x+3*w/4, y+h, x+w, y+h/2); err != nil {
		return err
	}
	if err := b.LineTo(x+w, y+h); err != nil {
		return err
	}
	if err := b.QuadTo(x+w/2, y+1.5*h, x, y+h); err != nil {
		return err
	}
	return b.End(true)
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
