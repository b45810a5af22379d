// Package img2text converts raster images into character-grid text art.
// Brightness is sampled on an aspect-corrected grayscale grid and each
// sample is quantized to a glyph from an ordered palette; the palette may
// be biased by an emotion label.
package img2text

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Emotion selects one of the built-in palette moods.
type Emotion int

const (
	// EmotionNeutral is the zero value and the fallback for any label
	// that does not match a known emotion.
	EmotionNeutral Emotion = iota
	EmotionHappy
	EmotionSad
	EmotionAngry
)

var emotionNames = map[Emotion]string{
	EmotionNeutral: "Neutral",
	EmotionHappy:   "Happy",
	EmotionSad:     "Sad",
	EmotionAngry:   "Angry",
}

// String returns the canonical label for the emotion.
func (e Emotion) String() string {
	if name, ok := emotionNames[e]; ok {
		return name
	}
	return "Neutral"
}

// Emotions returns the known emotions in presentation order.
func Emotions() []Emotion {
	return []Emotion{EmotionHappy, EmotionSad, EmotionAngry, EmotionNeutral}
}

// ParseEmotion resolves a free-form label to an Emotion. Matching is
// case-insensitive and ignores surrounding whitespace. Unknown, empty,
// or malformed labels resolve to EmotionNeutral; this is the documented
// default, not an error.
func ParseEmotion(label string) Emotion {
	label = strings.TrimSpace(label)
	for e, name := range emotionNames {
		if strings.EqualFold(label, name) {
			return e
		}
	}
	return EmotionNeutral
}

// Palette is an ordered, non-empty sequence of glyphs sorted from
// lightest visual weight (index 0, sparsest ink) to heaviest (last
// index, densest ink). Palettes are read-only once constructed and safe
// to share across concurrent renders.
type Palette []rune

// String returns the palette glyphs as a single string, lightest first.
func (p Palette) String() string {
	return string(p)
}

// Built-in palettes, lightest glyph first.
var builtinPalettes = map[Emotion]Palette{
	EmotionHappy:   Palette(" .:*+"),
	EmotionSad:     Palette(".-=#@"),
	EmotionAngry:   Palette("#@&%+"),
	EmotionNeutral: Palette(" .:-=+*#"),
}

// PaletteFor returns the built-in palette for the given emotion. The
// returned slice is shared; callers must not modify it.
func PaletteFor(e Emotion) Palette {
	if p, ok := builtinPalettes[e]; ok {
		return p
	}
	return builtinPalettes[EmotionNeutral]
}

//go:embed palettes.yaml
var defaultPaletteData []byte

// paletteSetFile is the on-disk YAML shape of a palette set.
type paletteSetFile struct {
	Palettes map[string]string `yaml:"palettes"`
}

// PaletteSet maps emotion labels to palettes. A set always contains the
// built-in labels; user files loaded on top may override individual
// labels or add new ones. Sets are immutable after loading.
type PaletteSet struct {
	palettes map[string]Palette
}

// DefaultPaletteSet returns the embedded built-in palette set.
func DefaultPaletteSet() *PaletteSet {
	set, err := parsePaletteSet(defaultPaletteData, nil)
	if err != nil {
		// The embedded data is validated by tests; a parse failure
		// here means a broken build, not a runtime condition.
		panic(fmt.Sprintf("img2text: embedded palette data: %v", err))
	}
	return set
}

// LoadPaletteSet reads a YAML palette file and overlays it on the
// built-in set. Labels present in the file replace the built-in palette
// for that label; labels absent from the file keep their defaults.
func LoadPaletteSet(path string) (*PaletteSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read palette file: %w", err)
	}
	return parsePaletteSet(defaultPaletteData, data)
}

// parsePaletteSet builds a set from base YAML data and an optional
// overlay. Every palette entry must contain at least one glyph.
func parsePaletteSet(base, overlay []byte) (*PaletteSet, error) {
	set := &PaletteSet{palettes: make(map[string]Palette)}
	for _, data := range [][]byte{base, overlay} {
		if data == nil {
			continue
		}
		var file paletteSetFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse palette data: %w", err)
		}
		for label, glyphs := range file.Palettes {
			if len(glyphs) == 0 {
				return nil, fmt.Errorf("%w: palette %q has no glyphs",
					ErrInvalidPalette, label)
			}
			set.palettes[strings.ToLower(strings.TrimSpace(label))] = Palette(glyphs)
		}
	}
	return set, nil
}

// Select resolves a free-form label against the set. Matching is
// case-insensitive and ignores surrounding whitespace; unknown labels
// fall back to the set's neutral palette.
func (s *PaletteSet) Select(label string) Palette {
	key := strings.ToLower(strings.TrimSpace(label))
	if p, ok := s.palettes[key]; ok {
		return p
	}
	if p, ok := s.palettes["neutral"]; ok {
		return p
	}
	return PaletteFor(EmotionNeutral)
}

// Labels returns the set's labels in sorted order.
func (s *PaletteSet) Labels() []string {
	labels := make([]string, 0, len(s.palettes))
	for label := range s.palettes {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Save writes the set to a YAML file in the same shape LoadPaletteSet
// reads.
func (s *PaletteSet) Save(path string) error {
	file := paletteSetFile{Palettes: make(map[string]string, len(s.palettes))}
	for label, p := range s.palettes {
		file.Palettes[label] = string(p)
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("failed to marshal palette set: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write palette file: %w", err)
	}
	return nil
}
