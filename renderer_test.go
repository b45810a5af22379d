package img2text

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"img2text/imageutil"
)

// makeGrid builds a GrayImage from row-major intensity values.
func makeGrid(t *testing.T, samples [][]int) *imageutil.GrayImage {
	t.Helper()
	grid := imageutil.NewGrayImage(len(samples[0]), len(samples))
	for y, row := range samples {
		for x, v := range row {
			grid.Gray.SetGray(x, y, color.Gray{Y: uint8(v)})
		}
	}
	return grid
}

func TestRenderGridScenario(t *testing.T) {
	// From the quantization formula with a two-glyph palette:
	// 0 -> " ", 255 -> "#", 128 -> " ", 64 -> " ".
	grid := makeGrid(t, [][]int{{0, 255}, {128, 64}})

	art, err := RenderGrid(grid, Palette(" #"))
	if err != nil {
		t.Fatalf("RenderGrid failed: %v", err)
	}
	if art != " #\n  " {
		t.Errorf("Expected %q, got %q", " #\n  ", art)
	}
}

func TestRenderGridRowOrder(t *testing.T) {
	// Uniform rows at boundary intensities pin the row order: output
	// row k must come from grid row k.
	grid := makeGrid(t, [][]int{
		{0, 0, 0},
		{255, 255, 255},
		{0, 0, 0},
	})

	art, err := RenderGrid(grid, Palette(".@"))
	if err != nil {
		t.Fatalf("RenderGrid failed: %v", err)
	}

	rows := strings.Split(art, "\n")
	want := []string{"...", "@@@", "..."}
	if len(rows) != len(want) {
		t.Fatalf("Expected %d rows, got %d", len(want), len(rows))
	}
	for k, row := range want {
		if rows[k] != row {
			t.Errorf("Row %d: expected %q, got %q", k, row, rows[k])
		}
	}
}

func TestRenderGridShape(t *testing.T) {
	grid := makeGrid(t, [][]int{
		{10, 20, 30, 40, 50},
		{60, 70, 80, 90, 100},
		{110, 120, 130, 140, 150},
	})

	art, err := RenderGrid(grid, PaletteFor(EmotionNeutral))
	if err != nil {
		t.Fatalf("RenderGrid failed: %v", err)
	}
	if strings.HasSuffix(art, "\n") {
		t.Error("Art should not end with a trailing newline")
	}
	rows := strings.Split(art, "\n")
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	for k, row := range rows {
		if len([]rune(row)) != 5 {
			t.Errorf("Row %d: expected 5 glyphs, got %d", k, len([]rune(row)))
		}
	}
}

func TestRenderGridIdempotent(t *testing.T) {
	grid := makeGrid(t, [][]int{{0, 30, 60}, {90, 180, 255}})
	p := PaletteFor(EmotionSad)

	first, err := RenderGrid(grid, p)
	if err != nil {
		t.Fatalf("First render failed: %v", err)
	}
	second, err := RenderGrid(grid, p)
	if err != nil {
		t.Fatalf("Second render failed: %v", err)
	}
	if first != second {
		t.Error("Identical grid and palette should render byte-identical output")
	}
}

func TestRenderGridEmptyPalette(t *testing.T) {
	grid := makeGrid(t, [][]int{{0, 255}})
	if _, err := RenderGrid(grid, Palette{}); !errors.Is(err, ErrInvalidPalette) {
		t.Errorf("Expected ErrInvalidPalette, got %v", err)
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer()
	if r.TargetWidth != 100 {
		t.Errorf("Expected default width 100, got %d", r.TargetWidth)
	}
	if r.Palette().String() != PaletteFor(EmotionNeutral).String() {
		t.Errorf("Expected neutral default palette, got %q", r.Palette().String())
	}
}

func TestNewRendererOptions(t *testing.T) {
	r := NewRenderer(WithWidth(32), WithEmotion(EmotionAngry))
	if r.TargetWidth != 32 {
		t.Errorf("Expected width 32, got %d", r.TargetWidth)
	}
	if r.Palette().String() != "#@&%+" {
		t.Errorf("Expected angry palette, got %q", r.Palette().String())
	}

	r = NewRenderer(WithPalette(Palette(" X")))
	if r.Palette().String() != " X" {
		t.Errorf("Expected explicit palette, got %q", r.Palette().String())
	}
}

// encodePNG returns a PNG encoding of a half-black, half-white image.
func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imageutil.NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x >= width/2 {
				img.SetRGB(x, y, imageutil.RGB{R: 255, G: 255, B: 255})
			} else {
				img.SetRGB(x, y, imageutil.RGB{})
			}
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img.RGBA); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRenderBytes(t *testing.T) {
	data := encodePNG(t, 64, 64)

	r := NewRenderer(WithWidth(16), WithEmotion(EmotionNeutral))
	art, err := r.RenderBytes(data)
	if err != nil {
		t.Fatalf("RenderBytes failed: %v", err)
	}

	rows := strings.Split(art, "\n")
	if len(rows) != 8 {
		t.Fatalf("Expected 8 rows for a square source at width 16, got %d", len(rows))
	}
	// Left edge is black, right edge is white.
	first := []rune(rows[0])
	if first[0] != ' ' {
		t.Errorf("Expected leftmost glyph ' ', got %q", string(first[0]))
	}
	if first[len(first)-1] != '#' {
		t.Errorf("Expected rightmost glyph '#', got %q", string(first[len(first)-1]))
	}
}

func TestRenderBytesInvalid(t *testing.T) {
	r := NewRenderer()
	if _, err := r.RenderBytes([]byte("not an image at all")); !errors.Is(err, ErrImageDecode) {
		t.Errorf("Expected ErrImageDecode, got %v", err)
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	if err := os.WriteFile(path, encodePNG(t, 32, 32), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer(WithWidth(8))
	art, err := r.RenderFile(path)
	if err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}
	if len(strings.Split(art, "\n")) != 4 {
		t.Errorf("Expected 4 rows, got %d", len(strings.Split(art, "\n")))
	}
}

func TestRenderFileNotFound(t *testing.T) {
	r := NewRenderer()
	_, err := r.RenderFile(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("Expected ErrImageNotFound, got %v", err)
	}
}

func TestRenderFileUndecodable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(path, []byte("junk bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRenderer()
	if _, err := r.RenderFile(path); !errors.Is(err, ErrImageDecode) {
		t.Errorf("Expected ErrImageDecode, got %v", err)
	}
}

func TestRendererEvents(t *testing.T) {
	var stages []string
	r := NewRenderer(WithWidth(8), WithEventSink(func(ev Event) {
		stages = append(stages, ev.Stage)
		if ev.Width <= 0 || ev.Height <= 0 {
			t.Errorf("Event %q has empty dimensions: %dx%d",
				ev.Stage, ev.Width, ev.Height)
		}
	}))

	if _, err := r.RenderBytes(encodePNG(t, 32, 32)); err != nil {
		t.Fatalf("RenderBytes failed: %v", err)
	}

	want := []string{"decode", "prepare", "render"}
	if len(stages) != len(want) {
		t.Fatalf("Expected stages %v, got %v", want, stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("Stage %d: expected %q, got %q", i, want[i], stages[i])
		}
	}
}

func TestRendererNilSink(t *testing.T) {
	// No sink configured: rendering must not panic.
	r := NewRenderer(WithWidth(4))
	if _, err := r.RenderBytes(encodePNG(t, 16, 16)); err != nil {
		t.Fatalf("RenderBytes failed: %v", err)
	}
}
