package loader

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParseHexText reads one hexadecimal byte per line.
//
// Text after a ';' is a comment. Blank lines, and lines whose first word is
// not a byte value, are skipped. A '$' or '0x' prefix is accepted.
func ParseHexText(r io.Reader) (data []uint8, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		text, _, _ := strings.Cut(scanner.Text(), ";")
		words := strings.Fields(text)
		if len(words) == 0 {
			continue
		}

		word := strings.TrimPrefix(words[0], "$")
		word = strings.TrimPrefix(strings.ToLower(word), "0x")
		value, perr := strconv.ParseUint(word, 16, 8)
		if perr != nil {
			continue
		}
		data = append(data, uint8(value))
	}

	err = scanner.Err()
	return
}
