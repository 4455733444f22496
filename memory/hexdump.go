package memory

import (
	"fmt"
	"io"
	"iter"
	"strings"
)

const ROW_SIZE = 16 // Bytes per hexdump row.

// Row is one line of a memory view.
type Row struct {
	Address int
	Bytes   []uint8
}

// Ascii renders the printable bytes of the row, with '.' for the rest.
func (row Row) Ascii() string {
	var sb strings.Builder
	for _, b := range row.Bytes {
		if b >= 32 && b <= 126 {
			sb.WriteByte(b)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// String formats the row as '$AAAA  HH HH ...  ascii'.
func (row Row) String() string {
	hex := make([]string, len(row.Bytes))
	for n, b := range row.Bytes {
		hex[n] = fmt.Sprintf("%02X", b)
	}
	return fmt.Sprintf("$%04X  %-47s  %v", row.Address&MEMORY_MASK, strings.Join(hex, " "), row.Ascii())
}

// Rows iterates over 16-byte rows covering [start, start+length).
// The last row is clipped to the range. Row addresses wrap like every
// other memory access.
func (mem *Memory) Rows(start int, length int) iter.Seq[Row] {
	return func(yield func(row Row) bool) {
		for offset := 0; offset < length; offset += ROW_SIZE {
			row := Row{Address: (start + offset) & MEMORY_MASK}
			for n := range min(ROW_SIZE, length-offset) {
				row.Bytes = append(row.Bytes, mem.ReadByte(row.Address+n))
			}
			if !yield(row) {
				return
			}
		}
	}
}

// Hexdump writes the rows covering [start, start+length) to w.
func (mem *Memory) Hexdump(w io.Writer, start int, length int) (err error) {
	for row := range mem.Rows(start, length) {
		_, err = fmt.Fprintln(w, row.String())
		if err != nil {
			return
		}
	}
	return
}
