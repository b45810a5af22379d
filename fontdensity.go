package img2text

import (
	"fmt"
	"image"
	"math/bits"
	"os"
	"sort"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
)

// Glyph cell size used for ink-density measurement. 8x8 matches the
// proportions of classic terminal fonts and keeps a whole glyph in one
// 64-bit bitmap.
const (
	GlyphWidth  = 8
	GlyphHeight = 8
)

// GlyphBitmap represents an 8x8 rendered glyph as a 64-bit integer.
// Each bit is one pixel: 1 = inked, 0 = background.
type GlyphBitmap uint64

// bit reports whether the pixel at (x, y) is inked.
func (g GlyphBitmap) bit(x, y int) bool {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return false
	}
	return g&(1<<(y*GlyphWidth+x)) != 0
}

// setBit sets the pixel at (x, y).
func (g *GlyphBitmap) setBit(x, y int, value bool) {
	if x < 0 || x >= GlyphWidth || y < 0 || y >= GlyphHeight {
		return
	}
	pos := y*GlyphWidth + x
	if value {
		*g |= 1 << pos
	} else {
		*g &= ^GlyphBitmap(1 << pos)
	}
}

// Coverage returns the number of inked pixels, the glyph's ink density
// on a 0-64 scale. A space renders to coverage 0.
func (g GlyphBitmap) Coverage() int {
	return bits.OnesCount64(uint64(g))
}

// LoadFont loads a TrueType font from file.
func LoadFont(path string) (*truetype.Font, error) {
	fontBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font: %w", err)
	}
	ttf, err := freetype.ParseFont(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return ttf, nil
}

// RenderGlyph renders a single glyph to an 8x8 bitmap.
//
// The glyph is drawn onto an alpha image because TrueType rendering is
// anti-aliased and the alpha channel directly represents pixel
// coverage. A 25% alpha threshold (64/255) decides which pixels count
// as inked; a higher cutoff drops anti-aliased edge pixels and makes
// thin glyphs like '.' or ':' register as near-empty. The baseline is
// placed from the face's ascent/descent metrics so descenders are not
// clipped.
func RenderGlyph(ttf *truetype.Font, r rune) GlyphBitmap {
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    float64(GlyphHeight),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	img := image.NewAlpha(image.Rect(0, 0, GlyphWidth, GlyphHeight))

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(ttf)
	ctx.SetFontSize(float64(GlyphHeight))
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.White)
	ctx.SetHinting(font.HintingFull)

	metrics := face.Metrics()
	ascent := metrics.Ascent >> 6
	descent := metrics.Descent >> 6
	baselineY := (GlyphHeight + int(ascent) - int(descent)) / 2

	pt := freetype.Pt(0, baselineY)
	ctx.DrawString(string(r), pt)

	var bitmap GlyphBitmap
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if img.AlphaAt(x, y).A > 64 {
				bitmap.setBit(x, y, true)
			}
		}
	}
	return bitmap
}

// GlyphDensities measures the ink coverage of each glyph as rendered by
// the given font. Duplicate runes are measured once.
func GlyphDensities(ttf *truetype.Font, glyphs []rune) map[rune]int {
	densities := make(map[rune]int, len(glyphs))
	for _, r := range glyphs {
		if _, ok := densities[r]; ok {
			continue
		}
		densities[r] = RenderGlyph(ttf, r).Coverage()
	}
	return densities
}

// OrderByDensity returns a copy of the palette sorted by measured ink
// coverage, lightest first. Glyphs with equal coverage keep their
// relative order, so the input ordering acts as the tiebreak.
func OrderByDensity(p Palette, densities map[rune]int) Palette {
	ordered := make(Palette, len(p))
	copy(ordered, p)
	sort.SliceStable(ordered, func(i, j int) bool {
		return densities[ordered[i]] < densities[ordered[j]]
	})
	return ordered
}

// CheckPaletteOrder verifies that a palette's glyphs run from lightest
// to densest under the measured densities. It returns the indices at
// which coverage decreases relative to the previous glyph; an empty
// result means the ordering holds for this font.
func CheckPaletteOrder(p Palette, densities map[rune]int) []int {
	var violations []int
	for i := 1; i < len(p); i++ {
		if densities[p[i]] < densities[p[i-1]] {
			violations = append(violations, i)
		}
	}
	return violations
}
