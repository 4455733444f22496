package cpu

import (
	"iter"
)

// Link is an operand that refers to a label defined after its use.
type Link struct {
	Label  string // Label to resolve.
	Offset int    // Offset of the operand in Line.Bytes.
	Width  int    // Operand width in bytes, 1 or 2.
}

// Line is a line of assembled source.
type Line struct {
	LineNo  int     // Source line number.
	Address int     // Address of the first byte.
	Text    string  // Source text, without comments.
	Bytes   []uint8 // Generated bytes.
	Links   []Link  // Unresolved operands, filled in at link time.
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
	Label map[string]int
}

// Debug locates the source line covering an address.
type Debug struct {
	*Line
	Index int
}

// Debug returns the line that generated the byte at addr.
// The returned Line is nil if no line covers addr.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, line := range prog.Lines {
		if addr >= line.Address && addr < line.Address+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: addr - line.Address,
			}
			break
		}
	}

	return
}

// Bytes iterates over every generated byte and its address.
func (prog *Program) Bytes() iter.Seq2[int, uint8] {
	return func(yield func(addr int, value uint8) bool) {
		for _, line := range prog.Lines {
			for n, value := range line.Bytes {
				if !yield(line.Address+n, value) {
					return
				}
			}
		}
	}
}

// Origin returns the lowest address holding a generated byte.
func (prog *Program) Origin() (origin int) {
	origin = -1
	for addr := range prog.Bytes() {
		if origin < 0 || addr < origin {
			origin = addr
		}
	}
	if origin < 0 {
		origin = 0
	}
	return
}

// Binary returns the program image starting at Origin(). Gaps between
// .org sections are zero filled.
func (prog *Program) Binary() (bins []uint8) {
	origin := prog.Origin()
	end := origin
	for addr := range prog.Bytes() {
		end = max(end, addr+1)
	}

	if end == origin {
		return
	}

	bins = make([]uint8, end-origin)
	for addr, value := range prog.Bytes() {
		bins[addr-origin] = value
	}

	return
}
