package colour

import (
	"image/color"
	"strings"
	"testing"
)

func testPalette() *Palette {
	return NewPalette([]WeightedColour{
		{Colour: RGB{R: 255}, Weight: 0.5},
		{Colour: RGB{G: 255}, Weight: 0.3},
		{Colour: RGB{B: 255}, Weight: 0.2},
	})
}

func TestNewPalette(t *testing.T) {
	palette := testPalette()

	if palette == nil {
		t.Fatal("NewPalette returned nil")
	}
	if palette.Len() != 3 {
		t.Errorf("Expected palette length 3, got %d", palette.Len())
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{
			name:  "red",
			color: color.RGBA{R: 255, A: 255},
			want:  RGB{R: 255},
		},
		{
			name:  "green",
			color: color.RGBA{G: 255, A: 255},
			want:  RGB{G: 255},
		},
		{
			name:  "blue",
			color: color.RGBA{B: 255, A: 255},
			want:  RGB{B: 255},
		},
		{
			name:  "white",
			color: color.RGBA{R: 255, G: 255, B: 255, A: 255},
			want:  RGB{R: 255, G: 255, B: 255},
		},
		{
			name:  "black",
			color: color.RGBA{A: 255},
			want:  RGB{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGB(tt.color)
			if got != tt.want {
				t.Errorf("ToRGB() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{
			name: "red",
			rgb:  RGB{R: 255},
			want: "#ff0000",
		},
		{
			name: "white",
			rgb:  RGB{R: 255, G: 255, B: 255},
			want: "#ffffff",
		},
		{
			name: "black",
			rgb:  RGB{},
			want: "#000000",
		},
		{
			name: "grey",
			rgb:  RGB{R: 128, G: 128, B: 128},
			want: "#808080",
		},
		{
			name: "mixed",
			rgb:  RGB{R: 26, G: 43, B: 60},
			want: "#1a2b3c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	rgb := RGB{R: 255, G: 10, B: 0}
	want := "rgb(255, 10, 0)"
	if got := rgb.String(); got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}

func TestWeightedColourPercent(t *testing.T) {
	wc := WeightedColour{Colour: RGB{R: 255}, Weight: 0.425}
	if got := wc.Percent(); got != 42.5 {
		t.Errorf("Percent() = %g, want 42.5", got)
	}
}

func TestPaletteToHex(t *testing.T) {
	palette := testPalette()
	hexColours := palette.ToHex()

	want := []string{"#ff0000", "#00ff00", "#0000ff"}
	if len(hexColours) != len(want) {
		t.Fatalf("ToHex() returned %d colours, want %d", len(hexColours), len(want))
	}
	for i, got := range hexColours {
		if got != want[i] {
			t.Errorf("ToHex()[%d] = %s, want %s", i, got, want[i])
		}
	}
}

func TestPaletteToJSON(t *testing.T) {
	palette := testPalette()
	jsonBytes, err := palette.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	jsonStr := string(jsonBytes)
	expectedStrings := []string{
		`"count": 3`,
		`"hex": "#ff0000"`,
		`"hex": "#00ff00"`,
		`"percentage": 50`,
		`"r": 255`,
	}

	for _, expected := range expectedStrings {
		if !strings.Contains(jsonStr, expected) {
			t.Errorf("ToJSON() output missing expected string: %s", expected)
		}
	}
}

func TestPaletteGet(t *testing.T) {
	palette := testPalette()

	tests := []struct {
		name    string
		index   int
		wantErr bool
	}{
		{
			name:    "valid index 0",
			index:   0,
			wantErr: false,
		},
		{
			name:    "valid last index",
			index:   2,
			wantErr: false,
		},
		{
			name:    "negative index",
			index:   -1,
			wantErr: true,
		},
		{
			name:    "index out of bounds",
			index:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := palette.Get(tt.index)
			if (err != nil) != tt.wantErr {
				t.Errorf("Get() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaletteAll(t *testing.T) {
	palette := testPalette()

	count := 0
	palette.All()(func(i int, c WeightedColour) bool {
		if i != count {
			t.Errorf("Expected index %d, got %d", count, i)
		}
		if c.Weight <= 0 {
			t.Errorf("Colour at index %d has non-positive weight", i)
		}
		count++
		return true
	})

	if count != 3 {
		t.Errorf("Expected to iterate over 3 colours, got %d", count)
	}
}

func TestPaletteString(t *testing.T) {
	palette := testPalette()
	str := palette.String()

	for _, expected := range []string{"#ff0000", "50.0%", "rgb(0, 255, 0)"} {
		if !strings.Contains(str, expected) {
			t.Errorf("String() output missing %q:\n%s", expected, str)
		}
	}

	if empty := NewPalette(nil).String(); empty != "Empty palette" {
		t.Errorf("String() on empty palette = %q", empty)
	}
}

func TestClampChannel(t *testing.T) {
	tests := []struct {
		name string
		v    float64
		want uint8
	}{
		{
			name: "rounds down",
			v:    127.4,
			want: 127,
		},
		{
			name: "rounds up",
			v:    127.5,
			want: 128,
		},
		{
			name: "clamps negative",
			v:    -3.2,
			want: 0,
		},
		{
			name: "clamps overflow",
			v:    260.0,
			want: 255,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampChannel(tt.v); got != tt.want {
				t.Errorf("clampChannel(%g) = %d, want %d", tt.v, got, tt.want)
			}
		})
	}
}
