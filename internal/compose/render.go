package compose

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/vector"
)

var gradientStops = [3]color.RGBA{hex(0xfdf9f3), hex(0xfbf3e7), hex(0xf5ede0)}

// paintBackground fills img with a three-stop linear gradient running from
// the top-left corner to the bottom-right corner. Integer math only, so the
// output does not depend on floating point rounding.
func paintBackground(img *image.RGBA) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	den := w*w + h*h
	if den == 0 {
		return
	}
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < w; x++ {
			// Projection of (x, y) onto the diagonal, scaled to [0, 2*den].
			t := 2 * (x*w + y*h)
			from, to := gradientStops[0], gradientStops[1]
			if t > den {
				from, to = gradientStops[1], gradientStops[2]
				t -= den
			}
			i := x * 4
			row[i+0] = lerp(from.R, to.R, t, den)
			row[i+1] = lerp(from.G, to.G, t, den)
			row[i+2] = lerp(from.B, to.B, t, den)
			row[i+3] = 0xff
		}
	}
}

func lerp(a, b uint8, n, d int) uint8 {
	return uint8(int(a) + (int(b)-int(a))*n/d)
}

// render rasterizes page onto a fresh canvas.
func render(page *Page, faces *FaceSet) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, page.Width, page.Height))
	paintBackground(img)

	for _, el := range page.Elements {
		switch el.Kind {
		case KindText:
			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(el.Color),
				Face: faces.Face(el.Role),
				Dot:  baseline(el.X, el.Y),
			}
			d.DrawString(el.Text)
		case KindStrike, KindBand:
			draw.Draw(img, el.Rect, image.NewUniform(el.Color), image.Point{}, draw.Over)
		case KindGlyph:
			drawGlyph(img, el.Rect, el.Glyph, el.Color)
		case KindPortrait:
			if page.Portrait != nil {
				draw.Draw(img, el.Rect, page.Portrait, page.Portrait.Bounds().Min, draw.Over)
			}
		}
	}
	return img
}

// drawGlyph rasterizes a completion marker inside r.
func drawGlyph(dst *image.RGBA, r image.Rectangle, g Glyph, c color.RGBA) {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Over
	fw, fh := float32(w), float32(h)

	switch g {
	case GlyphCheck:
		stroke := fw * 0.14
		pts := [][2]float32{{0.12, 0.55}, {0.40, 0.82}, {0.88, 0.18}}
		for i := 0; i+1 < len(pts); i++ {
			strokeSegment(z, pts[i][0]*fw, pts[i][1]*fh, pts[i+1][0]*fw, pts[i+1][1]*fh, stroke)
		}
	case GlyphCircle:
		cx, cy := fw/2, fh/2
		outer := fw / 2
		ring(z, cx, cy, outer, outer-fw*0.14)
	default:
		return
	}
	z.Draw(dst, r, image.NewUniform(c), image.Point{})
}

// strokeSegment adds a quad of the given thickness around the segment.
func strokeSegment(z *vector.Rasterizer, x0, y0, x1, y1, width float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

// ring adds an annulus. The inner contour winds the opposite way so it cancels.
func ring(z *vector.Rasterizer, cx, cy, outer, inner float32) {
	const steps = 32
	circle := func(r float32, reverse bool) {
		for i := 0; i <= steps; i++ {
			k := i
			if reverse {
				k = steps - i
			}
			a := 2 * math.Pi * float64(k) / steps
			x := cx + r*float32(math.Cos(a))
			y := cy + r*float32(math.Sin(a))
			if i == 0 {
				z.MoveTo(x, y)
			} else {
				z.LineTo(x, y)
			}
		}
		z.ClosePath()
	}
	circle(outer, false)
	circle(inner, true)
}
