package img2text

import "errors"

// Sentinel errors for the conversion pipeline. All of them are terminal:
// no stage retries or substitutes a default, and no partial text art is
// ever returned alongside one of these. Callers match with errors.Is.
var (
	// ErrImageNotFound indicates the source image could not be located.
	ErrImageNotFound = errors.New("image not found")

	// ErrImageDecode indicates the source bytes could not be interpreted
	// as an image by any registered decoder.
	ErrImageDecode = errors.New("image decode failed")

	// ErrInvalidWidth indicates a requested output width of zero or less.
	ErrInvalidWidth = errors.New("invalid width")

	// ErrInvalidPalette indicates an empty palette, for which the
	// intensity quantization is undefined.
	ErrInvalidPalette = errors.New("invalid palette")

	// ErrInvalidIntensity indicates a grayscale sample outside [0, 255].
	ErrInvalidIntensity = errors.New("invalid intensity")
)
