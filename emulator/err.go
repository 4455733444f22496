package emulator

import (
	"errors"

	"github.com/ezrec/sim6502/translate"
)

var f = translate.From

var (
	ErrBreakpoint = errors.New(f("breakpoint"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address int
	LineNo  int
	Err     error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("$%04X %v", err.Address, err.Err)
	}
	return f("line %d ($%04X) %v", err.LineNo, err.Address, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
