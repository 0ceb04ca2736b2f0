package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"

	"github.com/meshkit/goply/reader"
)

// Points are splatted at double resolution, then scaled down so isolated
// vertices still leave a visible mark.
const oversample = 2

// preview renders an orthographic XY projection of the vertex element into
// a grayscale PNG of the given size.
func preview(inPath, outPath string, size int) error {
	if size < 16 || size > 4096 {
		return fmt.Errorf("preview size %d out of range [16, 4096]", size)
	}

	xs, ys, err := readPoints(inPath)
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		return fmt.Errorf("document has no vertices to preview")
	}

	minX, maxX := bounds(xs)
	minY, maxY := bounds(ys)
	spanX := maxX - minX
	spanY := maxY - minY
	span := math.Max(spanX, spanY)
	if span == 0 {
		span = 1
	}

	// Splat into the oversampled raster, accumulating brightness so dense
	// regions read brighter than stray points.
	big := size * oversample
	raster := image.NewGray(image.Rect(0, 0, big, big))
	for i := range xs {
		px := int((xs[i] - minX) / span * float64(big-1))
		// Image rows grow downward; flip so +y points up.
		py := big - 1 - int((ys[i]-minY)/span*float64(big-1))
		old := raster.GrayAt(px, py).Y
		v := int(old) + 96
		if v > 255 {
			v = 255
		}
		raster.SetGray(px, py, color.Gray{Y: uint8(v)})
	}

	scaled := image.NewGray(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(scaled, scaled.Bounds(), raster, raster.Bounds(), draw.Over, nil)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, scaled); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	fmt.Printf("Wrote %s (%dx%d, %d points)\n", outPath, size, size, len(xs))
	return nil
}

func readPoints(path string) (xs, ys []float64, err error) {
	r, hdr, err := openAndParse(path)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	v := hdr.Element("vertex")
	if v == nil || v.Property("x") == nil || v.Property("y") == nil {
		return nil, nil, fmt.Errorf("document has no vertex element with x and y")
	}

	xs = make([]float64, 0, v.Count)
	ys = make([]float64, 0, v.Count)
	r.OnValue("vertex", "x", func(arg reader.Argument) error {
		xs = append(xs, arg.Value)
		return nil
	})
	r.OnValue("vertex", "y", func(arg reader.Argument) error {
		ys = append(ys, arg.Value)
		return nil
	})
	if err := r.Read(); err != nil {
		return nil, nil, fmt.Errorf("read: %w", err)
	}
	return xs, ys, nil
}

func bounds(vs []float64) (lo, hi float64) {
	lo, hi = vs[0], vs[0]
	for _, v := range vs[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
