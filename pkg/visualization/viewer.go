// Package visualization renders microstructure fields and their
// discretization for inspection. It is a display-only consumer of the
// regression core: it reads the bin grid and per-point membership vectors
// produced by the discretizer and imposes no constraint back on the model.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"mksgo/pkg/discretize"
	"mksgo/pkg/field"
)

// Viewer renders 2-D samples of a microstructure field and the per-bin
// membership maps of its discretization as grayscale images.
type Viewer struct {
	// disc provides the bin grid and membership vectors
	disc *discretize.Discretizer
}

// NewViewer creates a viewer backed by the given discretizer.
func NewViewer(disc *discretize.Discretizer) *Viewer {
	return &Viewer{disc: disc}
}

// RenderSample renders one sample of a field with shape (S, rows, cols)
// as a grayscale image. Values are clamped to [0, 1].
func (v *Viewer) RenderSample(f *field.Field, sample int) (image.Image, error) {
	if f.Rank() != 3 {
		return nil, fmt.Errorf("expected a (samples, rows, cols) field, got shape %v", f.Shape)
	}
	if sample < 0 || sample >= f.Shape[0] {
		return nil, fmt.Errorf("sample %d out of range [0, %d)", sample, f.Shape[0])
	}

	rows := f.Shape[1]
	cols := f.Shape[2]

	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			value := uint16(math.Max(0, math.Min(65535, f.At(sample, y, x)*65535)))
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}

	return img, nil
}

// RenderBinMap renders the membership map of one bin for one sample of a
// field with shape (S, rows, cols): each pixel shows how strongly the
// value at that point belongs to the chosen bin level.
func (v *Viewer) RenderBinMap(f *field.Field, sample, bin int) (image.Image, error) {
	if f.Rank() != 3 {
		return nil, fmt.Errorf("expected a (samples, rows, cols) field, got shape %v", f.Shape)
	}
	if sample < 0 || sample >= f.Shape[0] {
		return nil, fmt.Errorf("sample %d out of range [0, %d)", sample, f.Shape[0])
	}
	if bin < 0 || bin >= v.disc.NumBins() {
		return nil, fmt.Errorf("bin %d out of range [0, %d)", bin, v.disc.NumBins())
	}

	rows := f.Shape[1]
	cols := f.Shape[2]

	img := image.NewGray16(image.Rect(0, 0, cols, rows))
	memberships := make([]float64, v.disc.NumBins())
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v.disc.Memberships(f.At(sample, y, x), memberships)
			value := uint16(math.Max(0, math.Min(65535, memberships[bin]*65535)))
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}

	return img, nil
}

// SaveImage saves an image as a JPEG file.
func (v *Viewer) SaveImage(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveBinMaps renders and saves one membership map per bin for the given
// sample, named bin_000.jpg through bin_NNN.jpg in outputDir.
func (v *Viewer) SaveBinMaps(f *field.Field, sample int, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	for bin := 0; bin < v.disc.NumBins(); bin++ {
		img, err := v.RenderBinMap(f, sample, bin)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("bin_%03d.jpg", bin))
		if err := v.SaveImage(img, filename); err != nil {
			return err
		}
	}

	return nil
}
