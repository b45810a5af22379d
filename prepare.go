package img2text

import (
	"fmt"
	"math"

	"img2text/imageutil"
)

// cellAspectFactor compensates for monospaced character cells being
// roughly twice as tall as they are wide. Without it the rendered art
// appears vertically stretched.
const cellAspectFactor = 0.5

// GridHeight computes the text-art grid height for a requested width
// and the source image dimensions:
//
//	height = max(1, round(width * srcHeight/srcWidth * cellAspectFactor))
func GridHeight(width, srcWidth, srcHeight int) int {
	aspect := float64(srcHeight) / float64(srcWidth)
	height := int(math.Round(float64(width) * aspect * cellAspectFactor))
	if height < 1 {
		height = 1
	}
	return height
}

// Prepare produces the grayscale sample grid for a source image at the
// requested character width. The height follows the source aspect ratio
// corrected for character cell proportions; resampling uses the codec's
// high-quality filter. Returns ErrInvalidWidth if width <= 0.
func Prepare(img *imageutil.RGBAImage, width int) (*imageutil.GrayImage, error) {
	if width <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	height := GridHeight(width, img.Width(), img.Height())
	resized := imageutil.Resize(img, width, height, imageutil.InterpolationHighQuality)
	return imageutil.ToGrayscale(resized), nil
}
