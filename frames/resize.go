package frames

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// tap is one source pixel contributing to a destination pixel.
type tap struct {
	index  int
	weight float64
}

// ResizeArea scales src to width x height by area averaging: every destination pixel is
// the coverage-weighted mean of the source pixels under its footprint. When either axis
// is enlarged, area averaging degenerates, so bilinear interpolation is used instead.
func ResizeArea(src image.Image, width, height int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	if width <= 0 || height <= 0 {
		return dst
	}

	in := toNRGBA(src)
	sw, sh := in.Rect.Dx(), in.Rect.Dy()
	if sw == 0 || sh == 0 {
		return dst
	}
	if width > sw || height > sh {
		draw.BiLinear.Scale(dst, dst.Bounds(), in, in.Bounds(), draw.Src, nil)
		return dst
	}

	xTaps := areaTaps(sw, width)
	yTaps := areaTaps(sh, height)

	// Horizontal pass: sh rows of width pixels.
	tmp := make([]float64, sh*width*4)
	for y := 0; y < sh; y++ {
		row := in.Pix[y*in.Stride : y*in.Stride+sw*4]
		for dx, taps := range xTaps {
			out := tmp[(y*width+dx)*4 : (y*width+dx)*4+4]
			for _, t := range taps {
				p := row[t.index*4 : t.index*4+4]
				for k := 0; k < 4; k++ {
					out[k] += t.weight * float64(p[k])
				}
			}
		}
	}

	// Vertical pass into the destination.
	for dy, taps := range yTaps {
		for dx := 0; dx < width; dx++ {
			var acc [4]float64
			for _, t := range taps {
				p := tmp[(t.index*width+dx)*4 : (t.index*width+dx)*4+4]
				for k := 0; k < 4; k++ {
					acc[k] += t.weight * p[k]
				}
			}
			o := dst.PixOffset(dx, dy)
			for k := 0; k < 4; k++ {
				dst.Pix[o+k] = roundToUint8(acc[k])
			}
		}
	}

	return dst
}

// areaTaps computes, for each of dstN output pixels, the source pixels it covers and the
// normalized overlap weights. Requires srcN >= dstN > 0.
func areaTaps(srcN, dstN int) [][]tap {
	scale := float64(srcN) / float64(dstN)
	out := make([][]tap, dstN)
	for d := 0; d < dstN; d++ {
		start := float64(d) * scale
		end := start + scale

		var taps []tap
		var total float64
		for s := int(math.Floor(start)); s < srcN && float64(s) < end; s++ {
			w := math.Min(end, float64(s+1)) - math.Max(start, float64(s))
			if w <= 1e-9 {
				continue
			}
			taps = append(taps, tap{index: s, weight: w})
			total += w
		}
		for i := range taps {
			taps[i].weight /= total
		}
		out[d] = taps
	}
	return out
}

func roundToUint8(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
