// Package imageutil is the pure Go image codec behind the text-art
// pipeline: decoding, high-quality resizing, grayscale conversion, and
// text persistence. The conversion core treats this package as an opaque
// collaborator whose only contract is one intensity sample in [0, 255]
// per target cell.
package imageutil

import (
	"image"
	"image/color"
)

// RGB represents a color in the RGB color space with 8-bit channels.
type RGB struct {
	R, G, B uint8
}

// RGBAImage wraps image.RGBA with convenience methods for pixel access.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage creates a new RGBAImage with the specified dimensions.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage converts any image.Image to RGBAImage.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return rgba
}

// Width returns the image width.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the image height.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// SetRGB sets the pixel at (x, y) to the given fully-opaque color.
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.RGBA.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
}

// GrayImage is a single-channel intensity grid: one sample in [0, 255]
// per character cell. Once produced by the preparation pipeline it is
// read-only by convention; nothing in the pipeline writes to it after
// the grayscale conversion returns.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage creates a new GrayImage with the specified dimensions.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// Width returns the grid width in samples.
func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

// Height returns the grid height in samples.
func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// SampleAt returns the intensity at (x, y) as an int in [0, 255].
func (img *GrayImage) SampleAt(x, y int) int {
	return int(img.GrayAt(x, y).Y)
}
