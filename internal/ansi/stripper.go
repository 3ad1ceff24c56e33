package ansi

// Stripper removes terminal control sequences from raw transcript bytes.
// It maintains state so sequences split across input chunks are still
// removed cleanly.
//
// Recognized forms:
//   - 7-bit CSI: ESC '[' parameter/intermediate bytes, terminated by 0x40-0x7e
//   - 8-bit CSI: 0x9b with the same body
//   - other ESC Fe sequences (two bytes, ESC 0x40-0x5f)
//   - bare 8-bit C1 controls 0x80-0x9f
//
// Everything else, including CP437 high-bit glyphs above 0x9f, passes through
// untouched.
type Stripper struct {
	state int // 0=normal, 1=saw ESC, 2=in CSI body
}

// NewStripper creates a stripper in the normal state.
func NewStripper() *Stripper {
	return &Stripper{}
}

const (
	stNormal = iota
	stEscape
	stCSI
)

// Strip returns data with control sequences removed. The input slice is not
// modified.
func (s *Stripper) Strip(data []byte) []byte {
	out := make([]byte, 0, len(data))

	for _, b := range data {
		switch s.state {
		case stNormal:
			switch {
			case b == 0x1b:
				s.state = stEscape
			case b == 0x9b:
				s.state = stCSI
			case b >= 0x80 && b <= 0x9f:
				// bare C1 control, drop it
			default:
				out = append(out, b)
			}

		case stEscape:
			if b == '[' {
				s.state = stCSI
			} else if b >= 0x40 && b <= 0x5f {
				// two-byte Fe sequence, consumed entirely
				s.state = stNormal
			} else {
				// not a control sequence after all
				out = append(out, 0x1b, b)
				s.state = stNormal
			}

		case stCSI:
			// parameter bytes 0x30-0x3f and intermediates 0x20-0x2f accumulate,
			// a final byte 0x40-0x7e ends the sequence
			if b >= 0x40 && b <= 0x7e {
				s.state = stNormal
			}
		}
	}

	return out
}

// Reset returns the stripper to the normal state, discarding any partial
// sequence.
func (s *Stripper) Reset() {
	s.state = stNormal
}

// Strip removes control sequences from a single self-contained chunk.
func Strip(data []byte) []byte {
	return NewStripper().Strip(data)
}
