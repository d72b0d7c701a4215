package visualtest

import (
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// CompareResult contains the results of an image comparison
type CompareResult struct {
	Match           bool
	DifferentPixels int
	TotalPixels     int
	MaxDifference   int // Max color channel difference found
}

// Compare compares two images pixel by pixel. A pixel differs when any
// 8-bit channel differs by more than tolerance.
func Compare(actual, expected image.Image, tolerance int) (*CompareResult, error) {
	actualBounds := actual.Bounds()
	expectedBounds := expected.Bounds()
	if actualBounds != expectedBounds {
		return &CompareResult{Match: false},
			errors.Errorf("image dimensions differ: actual=%v, expected=%v", actualBounds, expectedBounds)
	}

	result := &CompareResult{
		Match:       true,
		TotalPixels: actualBounds.Dx() * actualBounds.Dy(),
	}
	for y := actualBounds.Min.Y; y < actualBounds.Max.Y; y++ {
		for x := actualBounds.Min.X; x < actualBounds.Max.X; x++ {
			ar, ag, ab, aa := actual.At(x, y).RGBA()
			er, eg, eb, ea := expected.At(x, y).RGBA()
			diff := maxInt(
				absInt(int(ar>>8)-int(er>>8)),
				absInt(int(ag>>8)-int(eg>>8)),
				absInt(int(ab>>8)-int(eb>>8)),
				absInt(int(aa>>8)-int(ea>>8)),
			)
			if diff > result.MaxDifference {
				result.MaxDifference = diff
			}
			if diff > tolerance {
				result.DifferentPixels++
				result.Match = false
			}
		}
	}
	return result, nil
}

// LoadPNG decodes a PNG file.
func LoadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open image")
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", path)
	}
	return img, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func maxInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
