package renderer

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})
	return img
}

func TestSaveImage(t *testing.T) {
	for _, name := range []string{"out.png", "out.bmp", "nested/dir/out.PNG"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := SaveImage(path, testImage()); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			file, err := os.Open(path)
			if err != nil {
				t.Fatalf("Failed to open output: %v", err)
			}
			defer file.Close()

			decoded, _, err := image.Decode(file)
			if err != nil {
				t.Fatalf("Failed to decode output: %v", err)
			}
			if decoded.Bounds() != image.Rect(0, 0, 3, 2) {
				t.Errorf("Expected 3x2 image, got %v", decoded.Bounds())
			}
			r, g, b, _ := decoded.At(2, 1).RGBA()
			if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
				t.Errorf("Expected (10,20,30), got (%d,%d,%d)", r>>8, g>>8, b>>8)
			}
		})
	}
}

func TestSaveImage_UnsupportedFormat(t *testing.T) {
	for _, name := range []string{"out.jpg", "out"} {
		path := filepath.Join(t.TempDir(), name)
		if err := SaveImage(path, testImage()); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("%s: expected ErrUnsupportedFormat, got %v", name, err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("%s: expected no file to be written", name)
		}
	}
}
