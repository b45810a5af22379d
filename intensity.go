package img2text

import "fmt"

// CharForIntensity quantizes a grayscale sample in [0, 255] to one glyph
// of the palette. The index is floor(intensity/255 * (len(p)-1)),
// computed in integer math, so intensity 0 always selects the first
// glyph and intensity 255 always selects the last.
//
// The floor truncation is load-bearing: substituting rounding shifts the
// bucket boundaries for palette lengths that do not divide 255 evenly.
func CharForIntensity(intensity int, p Palette) (rune, error) {
	if len(p) == 0 {
		return 0, fmt.Errorf("%w: palette is empty", ErrInvalidPalette)
	}
	if intensity < 0 || intensity > 255 {
		return 0, fmt.Errorf("%w: %d outside [0, 255]",
			ErrInvalidIntensity, intensity)
	}
	return p[intensity*(len(p)-1)/255], nil
}
