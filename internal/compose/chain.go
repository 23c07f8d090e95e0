package compose

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// chainFace draws each rune with the first face that has a glyph for it.
// Metrics come from the first face so line positions match the primary font.
type chainFace struct {
	faces []font.Face
}

func newChainFace(faces ...font.Face) font.Face {
	if len(faces) == 1 {
		return faces[0]
	}
	return &chainFace{faces: faces}
}

func (c *chainFace) pick(r rune) font.Face {
	for _, f := range c.faces {
		if _, ok := f.GlyphAdvance(r); ok {
			return f
		}
	}
	return c.faces[0]
}

func (c *chainFace) Close() error {
	var first error
	for _, f := range c.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (c *chainFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return c.pick(r).Glyph(dot, r)
}

func (c *chainFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return c.pick(r).GlyphBounds(r)
}

func (c *chainFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	return c.pick(r).GlyphAdvance(r)
}

// Kern only applies when both runes come from the same face.
func (c *chainFace) Kern(r0, r1 rune) fixed.Int26_6 {
	f := c.pick(r0)
	if f != c.pick(r1) {
		return 0
	}
	return f.Kern(r0, r1)
}

func (c *chainFace) Metrics() font.Metrics {
	return c.faces[0].Metrics()
}
