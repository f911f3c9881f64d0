package watermark

import (
	"errors"
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		input string
		want  color.NRGBA
	}{
		{"#FFFFFF", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#000000", color.NRGBA{0x00, 0x00, 0x00, 0xff}},
		{"#1a2B3c", color.NRGBA{0x1a, 0x2b, 0x3c, 0xff}},
		{"#f0a", color.NRGBA{0xff, 0x00, 0xaa, 0xff}},
		{"white", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"Red", color.NRGBA{0xff, 0x00, 0x00, 0xff}},
		{" orange ", color.NRGBA{0xff, 0xa5, 0x00, 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseColor(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseColor_Invalid(t *testing.T) {
	for _, input := range []string{"", "#12345", "#GGHHII", "notacolor", "#"} {
		if _, err := ParseColor(input); !errors.Is(err, ErrInvalidColor) {
			t.Errorf("ParseColor(%q): expected ErrInvalidColor, got %v", input, err)
		}
	}
}
