package img2text

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"img2text/imageutil"
)

// Renderer converts images to text art with a fixed width and palette.
// All fields are read-only after NewRenderer returns, so a single
// Renderer is safe for any number of concurrent renders; independent
// invocations share no mutable state.
type Renderer struct {
	// TargetWidth is the output width in character cells.
	TargetWidth int

	palette Palette
	sink    EventSink
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Defaults: TargetWidth=100, Neutral palette, no event sink.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		TargetWidth: 100,
		palette:     PaletteFor(EmotionNeutral),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithWidth sets the output width in character cells.
func WithWidth(width int) RendererOption {
	return func(r *Renderer) {
		r.TargetWidth = width
	}
}

// WithEmotion selects the built-in palette for an emotion.
func WithEmotion(e Emotion) RendererOption {
	return func(r *Renderer) {
		r.palette = PaletteFor(e)
	}
}

// WithPalette sets an explicit palette, overriding any emotion choice.
func WithPalette(p Palette) RendererOption {
	return func(r *Renderer) {
		r.palette = p
	}
}

// WithEventSink sets the sink that receives pipeline events.
func WithEventSink(sink EventSink) RendererOption {
	return func(r *Renderer) {
		r.sink = sink
	}
}

// Palette returns the palette the renderer quantizes with.
func (r *Renderer) Palette() Palette {
	return r.palette
}

// RenderGrid converts a grayscale grid to text art with the given
// palette. Traversal is row-major, top-to-bottom then left-to-right;
// output row k corresponds exactly to grid row k and rows are joined by
// a single newline with no trailing newline. Identical inputs always
// produce byte-identical output.
//
// Mapper errors abort the whole render: a text artifact with gap rows
// has no well-defined meaning, so no partial output is ever returned.
func RenderGrid(grid *imageutil.GrayImage, p Palette) (string, error) {
	if len(p) == 0 {
		return "", fmt.Errorf("%w: palette is empty", ErrInvalidPalette)
	}

	width, height := grid.Width(), grid.Height()
	var art strings.Builder
	art.Grow(height * (width + 1))

	for y := 0; y < height; y++ {
		if y > 0 {
			art.WriteByte('\n')
		}
		for x := 0; x < width; x++ {
			ch, err := CharForIntensity(grid.SampleAt(x, y), p)
			if err != nil {
				return "", err
			}
			art.WriteRune(ch)
		}
	}
	return art.String(), nil
}

// RenderImage prepares the grayscale grid for an image at the
// renderer's width and renders it with the renderer's palette.
func (r *Renderer) RenderImage(img *imageutil.RGBAImage) (string, error) {
	start := time.Now()
	grid, err := Prepare(img, r.TargetWidth)
	if err != nil {
		return "", err
	}
	r.emit(Event{
		Stage:   "prepare",
		Message: "grayscale grid ready",
		Width:   grid.Width(),
		Height:  grid.Height(),
		Elapsed: time.Since(start),
	})

	start = time.Now()
	art, err := RenderGrid(grid, r.palette)
	if err != nil {
		return "", err
	}
	r.emit(Event{
		Stage:   "render",
		Message: "text art complete",
		Width:   grid.Width(),
		Height:  grid.Height(),
		Elapsed: time.Since(start),
	})
	return art, nil
}

// RenderFile loads an image from disk and renders it. A missing source
// maps to ErrImageNotFound and undecodable bytes to ErrImageDecode.
func (r *Renderer) RenderFile(path string) (string, error) {
	start := time.Now()
	img, err := imageutil.LoadImage(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrImageDecode, path, err)
	}
	r.emit(Event{
		Stage:   "decode",
		Message: "source image decoded",
		Width:   img.Width(),
		Height:  img.Height(),
		Elapsed: time.Since(start),
	})
	return r.RenderImage(img)
}

// RenderBytes decodes an in-memory image and renders it.
func (r *Renderer) RenderBytes(data []byte) (string, error) {
	start := time.Now()
	img, err := imageutil.DecodeImage(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	r.emit(Event{
		Stage:   "decode",
		Message: "source image decoded",
		Width:   img.Width(),
		Height:  img.Height(),
		Elapsed: time.Since(start),
	})
	return r.RenderImage(img)
}
