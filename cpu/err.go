package cpu

import (
	"errors"

	"github.com/ezrec/sim6502/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrLabelInvalid       = errors.New(f("label invalid"))
	ErrDirectiveInvalid   = errors.New(f("directive invalid"))
	ErrDirectiveSyntax    = errors.New(f("directive syntax"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrModeInvalid        = errors.New(f("addressing mode invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrAddressRange       = errors.New(f("address out of range"))
)

// ErrOpcodeUnknown reports an opcode byte with no instruction.
type ErrOpcodeUnknown uint8

func (eo ErrOpcodeUnknown) Error() string {
	return f("unknown opcode $%02X", uint8(eo))
}

func (eo ErrOpcodeUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcodeUnknown)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseCharacter string

func (err ErrParseCharacter) Error() string {
	return f("'%v' is not a character constant", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
