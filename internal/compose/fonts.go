package compose

import (
	"context"
	_ "embed"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Role is a typographic role on the page. Each role has a fixed face and size.
type Role int

const (
	RoleTitle Role = iota
	RoleDate
	RoleHeader
	RoleCount
	RolePlaceholder
	RoleBody
	RoleBodyDone
	RoleTime
	RoleThought
	RoleMeta
	RoleEvidence
	RoleFooter
)

var roleNames = [...]string{
	"title", "date", "header", "count", "placeholder", "body",
	"body-done", "time", "thought", "meta", "evidence", "footer",
}

func (r Role) String() string {
	if int(r) < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

type style int

const (
	styleRegular style = iota
	styleBold
	styleItalic
)

type roleSpec struct {
	style style
	size  float64
}

var roleSpecs = map[Role]roleSpec{
	RoleTitle:       {styleBold, 48},
	RoleDate:        {styleRegular, 24},
	RoleHeader:      {styleBold, 36},
	RoleCount:       {styleRegular, 24},
	RolePlaceholder: {styleRegular, 20},
	RoleBody:        {styleRegular, 20},
	RoleBodyDone:    {styleItalic, 20},
	RoleTime:        {styleBold, 20},
	RoleThought:     {styleBold, 22},
	RoleMeta:        {styleRegular, 18},
	RoleEvidence:    {styleItalic, 18},
	RoleFooter:      {styleRegular, 16},
}

// FaceSet holds one face per role.
type FaceSet struct {
	faces    map[Role]font.Face
	Fallback bool
}

func (fs *FaceSet) Face(r Role) font.Face {
	if f, ok := fs.faces[r]; ok {
		return f
	}
	return basicfont.Face7x13
}

// Measure returns the advance width of s in whole pixels.
func (fs *FaceSet) Measure(r Role, s string) int {
	return font.MeasureString(fs.Face(r), s).Ceil()
}

func (fs *FaceSet) Close() error {
	var first error
	for _, f := range fs.faces {
		if err := f.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// FontSource produces the faces used for one composition. Faces may block
// (remote or lazily loaded fonts); callers bound the wait through ctx.
type FontSource interface {
	Faces(ctx context.Context) (*FaceSet, error)
}

// GoFonts serves the Go font family embedded in golang.org/x/image. Runes the
// Go fonts lack (Vietnamese letters such as ạ, ở, ứ) are drawn from embedded
// DejaVu Sans faces of the same weight.
type GoFonts struct{}

//go:embed fonts/DejaVuSans.ttf
var dejaVuRegular []byte

//go:embed fonts/DejaVuSans-Bold.ttf
var dejaVuBold []byte

// fontFamily is the ordered lookup chain for one style.
type fontFamily []*opentype.Font

var (
	parseOnce  sync.Once
	parsed     map[style]fontFamily
	parseError error
)

func parseGoFonts() (map[style]fontFamily, error) {
	parseOnce.Do(func() {
		srcs := map[style][][]byte{
			styleRegular: {goregular.TTF, dejaVuRegular},
			styleBold:    {gobold.TTF, dejaVuBold},
			styleItalic:  {goitalic.TTF, dejaVuRegular},
		}
		out := make(map[style]fontFamily, len(srcs))
		for st, ttfs := range srcs {
			for _, ttf := range ttfs {
				f, err := opentype.Parse(ttf)
				if err != nil {
					parseError = fmt.Errorf("parse font: %w", err)
					return
				}
				out[st] = append(out[st], f)
			}
		}
		parsed = out
	})
	return parsed, parseError
}

func newFamilyFace(fam fontFamily, size float64) (font.Face, error) {
	faces := make([]font.Face, 0, len(fam))
	for _, f := range fam {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			for _, made := range faces {
				_ = made.Close()
			}
			return nil, err
		}
		faces = append(faces, face)
	}
	return newChainFace(faces...), nil
}

func (GoFonts) Faces(ctx context.Context) (*FaceSet, error) {
	fonts, err := parseGoFonts()
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	set := &FaceSet{faces: make(map[Role]font.Face, len(roleSpecs))}
	for role, rs := range roleSpecs {
		face, err := newFamilyFace(fonts[rs.style], rs.size)
		if err != nil {
			_ = set.Close()
			return nil, fmt.Errorf("face %s: %w", role, err)
		}
		set.faces[role] = face
	}
	return set, nil
}

// FallbackFaces uses the built-in 7x13 bitmap face for every role.
func FallbackFaces() *FaceSet {
	set := &FaceSet{faces: make(map[Role]font.Face, len(roleSpecs)), Fallback: true}
	for role := range roleSpecs {
		set.faces[role] = basicfont.Face7x13
	}
	return set
}

// loadFaces waits at most timeout for src. A slow or failing source yields
// the fallback set; only cancellation of ctx itself is returned as an error.
func loadFaces(ctx context.Context, src FontSource, timeout time.Duration, log *zap.Logger) (*FaceSet, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		set *FaceSet
		err error
	}
	ch := make(chan result, 1)
	go func() {
		set, err := src.Faces(waitCtx)
		ch <- result{set, err}
	}()

	select {
	case r := <-ch:
		if r.err == nil && r.set != nil {
			return r.set, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if waitCtx.Err() != nil {
			log.Warn("font load timed out, using fallback", zap.Duration("timeout", timeout))
		} else {
			log.Warn("font load failed, using fallback", zap.Error(r.err))
		}
	case <-waitCtx.Done():
		go func() {
			if r := <-ch; r.set != nil {
				_ = r.set.Close()
			}
		}()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		log.Warn("font load timed out, using fallback", zap.Duration("timeout", timeout))
	}
	return FallbackFaces(), nil
}

// baseline converts a pixel baseline into a drawer dot.
func baseline(x, y int) fixed.Point26_6 {
	return fixed.P(x, y)
}
