package text

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is used when a run does not carry a size.
const DefaultFontSize = 16.0

// Fonts hands out font faces of one typeface at arbitrary sizes. Faces
// are cached per size. Measure, LineHeight and Ascent may be called from
// several goroutines. A face returned by Face keeps glyph state and must
// not be used concurrently; a goroutine that draws with faces takes its
// own set with Clone.
type Fonts struct {
	font  *truetype.Font
	mu    sync.Mutex
	faces map[float64]font.Face
}

// LoadFonts parses TTF data. It is used to swap in a typeface other than
// the bundled Go Regular.
func LoadFonts(ttf []byte) (*Fonts, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, errors.Wrap(err, "parsing font")
	}
	return &Fonts{font: f, faces: make(map[float64]font.Face)}, nil
}

// DefaultFonts returns the bundled Go Regular typeface.
func DefaultFonts() *Fonts {
	fonts, err := LoadFonts(goregular.TTF)
	if err != nil {
		// the bundled font is known good
		panic(err)
	}
	return fonts
}

// Clone returns a Fonts sharing the parsed typeface but with a face cache
// of its own.
func (f *Fonts) Clone() *Fonts {
	return &Fonts{font: f.font, faces: make(map[float64]font.Face)}
}

// Face returns the face for size, falling back to DefaultFontSize for
// non-positive sizes.
func (f *Fonts) Face(size float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.face(size)
}

// face looks up or creates the face for size. f.mu must be held.
func (f *Fonts) face(size float64) font.Face {
	if size <= 0 {
		size = DefaultFontSize
	}
	if face, ok := f.faces[size]; ok {
		return face
	}
	face := truetype.NewFace(f.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	f.faces[size] = face
	return face
}

// Measure returns the advance width of s and the line height at size.
func (f *Fonts) Measure(s string, size float64) (width, height float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	face := f.face(size)
	adv := font.MeasureString(face, s)
	return float64(adv) / 64, float64(face.Metrics().Height) / 64
}

// LineHeight returns the distance between two baselines at size.
func (f *Fonts) LineHeight(size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.face(size).Metrics().Height) / 64
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Fonts) Ascent(size float64) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.face(size).Metrics().Ascent) / 64
}
