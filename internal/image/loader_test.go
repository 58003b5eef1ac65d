package image

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestPNG writes a small solid-colour PNG and returns its path.
func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "test.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test image: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	path := writeTestPNG(t, 16, 8)

	loader := NewFileLoader()
	img, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != 16 || bounds.Dy() != 8 {
		t.Errorf("Load() image is %dx%d, want 16x8", bounds.Dx(), bounds.Dy())
	}
}

func TestFileLoaderErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{
			name: "empty path",
			path: "",
		},
		{
			name: "nonexistent file",
			path: "/nonexistent/image.png",
		},
	}

	loader := NewFileLoader()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := loader.Load(tt.path); err == nil {
				t.Error("Load() expected error, got nil")
			}
		})
	}
}

func TestFileLoaderDirectory(t *testing.T) {
	loader := NewFileLoader()
	if _, err := loader.Load(t.TempDir()); err == nil {
		t.Error("Load() on a directory should fail")
	}
}

func TestFileLoaderInvalidFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-an-image.png")
	if err := os.WriteFile(path, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	loader := NewFileLoader()
	if _, err := loader.Load(path); err == nil {
		t.Error("Load() on a non-image file should fail")
	}
}

func TestValidateImagePath(t *testing.T) {
	valid := writeTestPNG(t, 4, 4)

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{
			name:    "valid image",
			path:    valid,
			wantErr: false,
		},
		{
			name:    "http url",
			path:    "https://example.com/image.png",
			wantErr: false,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: true,
		},
		{
			name:    "missing file",
			path:    "/nonexistent/image.png",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImagePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImagePath() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetImageDimensions(t *testing.T) {
	path := writeTestPNG(t, 32, 24)

	width, height, err := GetImageDimensions(path)
	if err != nil {
		t.Fatalf("GetImageDimensions() error = %v", err)
	}
	if width != 32 || height != 24 {
		t.Errorf("GetImageDimensions() = %dx%d, want 32x24", width, height)
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		maxDim         int
		wantW, wantH   int
		expectOriginal bool
	}{
		{
			name:   "landscape downscale",
			width:  300,
			height: 150,
			maxDim: 150,
			wantW:  150,
			wantH:  75,
		},
		{
			name:   "portrait downscale",
			width:  100,
			height: 400,
			maxDim: 200,
			wantW:  50,
			wantH:  200,
		},
		{
			name:           "within bound unchanged",
			width:          100,
			height:         80,
			maxDim:         150,
			wantW:          100,
			wantH:          80,
			expectOriginal: true,
		},
		{
			name:           "zero bound disables",
			width:          500,
			height:         500,
			maxDim:         0,
			wantW:          500,
			wantH:          500,
			expectOriginal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewRGBA(image.Rect(0, 0, tt.width, tt.height))
			got := Resize(src, tt.maxDim)

			bounds := got.Bounds()
			if bounds.Dx() != tt.wantW || bounds.Dy() != tt.wantH {
				t.Errorf("Resize() = %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), tt.wantW, tt.wantH)
			}
			if tt.expectOriginal && got != image.Image(src) {
				t.Error("Resize() should return the input unchanged")
			}
		})
	}
}
