package loader

import (
	"errors"

	"github.com/ezrec/sim6502/translate"
)

var f = translate.From

var (
	ErrRecordHex      = errors.New(f("record has invalid hex digits"))
	ErrRecordShort    = errors.New(f("record too short"))
	ErrRecordLength   = errors.New(f("record length mismatch"))
	ErrRecordChecksum = errors.New(f("record checksum mismatch"))
	ErrImageEmpty     = errors.New(f("image is empty"))
)

// ErrRecord indicates the line of a malformed Intel HEX record.
type ErrRecord struct {
	LineNo int
	Err    error
}

func (err *ErrRecord) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRecord) Unwrap() error {
	return err.Err
}
