package loader

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

const (
	IHEX_RECORD_DATA = 0x00 // Data record.
	IHEX_RECORD_EOF  = 0x01 // End of file record.
	IHEX_RECORD_SIZE = 16   // Data bytes per encoded record.
)

// ParseIntelHex reads the data records of an Intel HEX stream.
//
// Data records are concatenated in the order they appear; their address
// field is read but not used to position the data. Each record's length
// and checksum are validated. Other record types are ignored, as are lines
// that do not start with ':'.
func ParseIntelHex(r io.Reader) (data []uint8, err error) {
	scanner := bufio.NewScanner(r)

	var lineno int
	defer func() {
		if err != nil {
			err = &ErrRecord{LineNo: lineno, Err: err}
		}
	}()

	for scanner.Scan() {
		lineno++
		text := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(text, ":") {
			continue
		}

		var record []uint8
		record, err = hex.DecodeString(text[1:])
		if err != nil {
			err = ErrRecordHex
			return
		}

		// count, address (2), type, checksum
		if len(record) < 5 {
			err = ErrRecordShort
			return
		}

		count := int(record[0])
		if len(record) != 5+count {
			err = ErrRecordLength
			return
		}

		var sum uint8
		for _, b := range record {
			sum += b
		}
		if sum != 0 {
			err = ErrRecordChecksum
			return
		}

		if record[3] == IHEX_RECORD_DATA {
			data = append(data, record[4:4+count]...)
		}
	}

	err = scanner.Err()
	return
}

// writeRecord writes a single Intel HEX record, with its checksum.
func writeRecord(w io.Writer, addr int, kind uint8, payload []uint8) (err error) {
	record := make([]uint8, 0, 5+len(payload))
	record = append(record, uint8(len(payload)), uint8(addr>>8), uint8(addr), kind)
	record = append(record, payload...)

	var sum uint8
	for _, b := range record {
		sum += b
	}
	record = append(record, -sum)

	_, err = fmt.Fprintf(w, ":%s\n", strings.ToUpper(hex.EncodeToString(record)))
	return
}

// EncodeIntelHex writes data as 16 byte data records addressed from origin,
// followed by an end of file record.
func EncodeIntelHex(w io.Writer, data []uint8, origin int) (err error) {
	for offset := 0; offset < len(data); offset += IHEX_RECORD_SIZE {
		end := min(offset+IHEX_RECORD_SIZE, len(data))
		err = writeRecord(w, (origin+offset)&0xffff, IHEX_RECORD_DATA, data[offset:end])
		if err != nil {
			return
		}
	}

	err = writeRecord(w, 0, IHEX_RECORD_EOF, nil)
	return
}
