package ansi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripper_BasicStripping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no sequences",
			input:    "Sector  : 1018 in The Federation",
			expected: "Sector  : 1018 in The Federation",
		},
		{
			name:     "simple color sequence",
			input:    "\x1b[31mRed Text\x1b[0m",
			expected: "Red Text",
		},
		{
			name:     "multi-parameter sequence",
			input:    "\x1b[1;36;40mWarps to Sector(s) :\x1b[0m  2 - 3",
			expected: "Warps to Sector(s) :  2 - 3",
		},
		{
			name:     "cursor movement",
			input:    "\x1b[2J\x1b[1;1HFM > 100",
			expected: "FM > 100",
		},
		{
			name:     "non-CSI escape pair consumed",
			input:    "\x1bMabc",
			expected: "abc",
		},
		{
			name:     "escape before plain byte passes through",
			input:    "\x1bzrest",
			expected: "\x1bzrest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(Strip([]byte(tt.input))))
		})
	}
}

func TestStripper_EightBitControls(t *testing.T) {
	// 8-bit CSI with body, then a bare C1 control, then CP437 high glyphs
	input := []byte{0x9b, '3', '1', 'm', 'O', 'K', 0x85, 0xb0, 0xb1}
	assert.Equal(t, []byte{'O', 'K', 0xb0, 0xb1}, Strip(input))
}

func TestStripper_SplitAcrossChunks(t *testing.T) {
	s := NewStripper()

	var out []byte
	for _, chunk := range []string{"\x1b", "[31mRed", "\x1b[0", "m done"} {
		out = append(out, s.Strip([]byte(chunk))...)
	}
	assert.Equal(t, "Red done", string(out))
}

func TestStripper_Reset(t *testing.T) {
	s := NewStripper()
	s.Strip([]byte{0x1b, '['})
	s.Reset()
	assert.Equal(t, "2;3H", string(s.Strip([]byte("2;3H"))))
}
