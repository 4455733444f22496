// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

func init() {
	maps.Copy(sysEquate, _cpu_defines)
}

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reIndexed    = regexp.MustCompile(`^(.*?)\s*,\s*([XxYy])$`)
)

// errUnresolved marks a value naming a label that is not yet defined.
var errUnresolved = errors.New("unresolved")

// Assembler is a single pass assembler for the sim6502 instruction set.
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated lines.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	address int // Address of the next generated byte.
}

// Predefine defines a new equate, or redefines an existing one, before Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// resolve returns the value of a single word. A word naming a label that
// has not been defined yet returns errUnresolved.
func (asm *Assembler) resolve(word string) (value int, err error) {
	return asm.resolveDepth(word, 0)
}

func (asm *Assembler) resolveDepth(word string, depth int) (value int, err error) {
	if len(word) == 0 {
		err = ErrOpcodeValueMissing
		return
	}

	if depth > 16 {
		err = ErrParseNumber(word)
		return
	}

	negate := false
	if word[0] == '-' {
		negate = true
		word = word[1:]
		if len(word) == 0 {
			err = ErrParseNumber("-")
			return
		}
	}

	defer func() {
		if err == nil && negate {
			value = -value
		}
	}()

	if reIdentifier.MatchString(word) {
		equate, ok := asm.Equate[word]
		if ok {
			return asm.resolveDepth(equate, depth+1)
		}
		value, ok = asm.Label[word]
		if ok {
			return
		}
		err = errUnresolved
		return
	}

	var v64 int64
	switch {
	case word[0] == '$':
		v64, err = strconv.ParseInt(word[1:], 16, 32)
	case word[0] == '%':
		v64, err = strconv.ParseInt(word[1:], 2, 32)
	default:
		v64, err = strconv.ParseInt(word, 0, 32)
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.resolve(str)
		if err != nil {
			// Ignore equates that are not integers.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// expandLine replaces character constants and $(...) expressions with
// their decimal values, and strips comments.
func (asm *Assembler) expandLine(text string) (line string, err error) {
	line = reCharacter.ReplaceAllStringFunc(text, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			case "0":
				str = "\000"
			default:
				err = ErrParseCharacter(word)
				return word
			}
		}
		return fmt.Sprintf("%d", str[0])
	})
	if err != nil {
		return
	}

	line, _, _ = strings.Cut(line, ";")

	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})

	line = strings.TrimSpace(line)
	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]int, 16)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)
	asm.address = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		line = strings.TrimSpace(text)

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		asm.Equate["LINENO"] = fmt.Sprintf("%d", lineno)

		var code string
		code, err = asm.expandLine(text)
		if err != nil {
			return
		}

		err = asm.parseLine(code, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of forward labels.
	for n := range asm.Lines {
		op := &asm.Lines[n]
		for _, link := range op.Links {
			var value int
			value, err = asm.resolve(link.Label)
			if errors.Is(err, errUnresolved) {
				err = ErrLabelMissing(link.Label)
			}
			if err != nil {
				lineno = op.LineNo
				line = op.Text
				return
			}
			err = putValue(op.Bytes[link.Offset:], value, link.Width)
			if err != nil {
				lineno = op.LineNo
				line = op.Text
				return
			}
		}
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
		Label: maps.Clone(asm.Label),
	}

	return
}

// putValue stores value little-endian into the first width bytes of out.
func putValue(out []uint8, value int, width int) (err error) {
	switch width {
	case 1:
		if value < -0x80 || value > 0xff {
			err = ErrValueRange
			return
		}
		out[0] = uint8(value & 0xff)
	case 2:
		if value < 0 || value > 0xffff {
			err = ErrAddressRange
			return
		}
		out[0] = uint8(value & 0xff)
		out[1] = uint8((value >> 8) & 0xff)
	default:
		panic("invalid operand width")
	}
	return
}

// parseLine evaluates a single expanded line of assembly text.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	rest := line

	// Labels
	for {
		word, after, ok := strings.Cut(rest, ":")
		if !ok || strings.ContainsAny(word, " \t,#$'") {
			break
		}
		label := strings.TrimSpace(word)
		if !reIdentifier.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok = asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.address
		rest = strings.TrimSpace(after)
	}

	if len(rest) == 0 {
		return
	}

	word, operand := rest, ""
	if n := strings.IndexAny(rest, " \t"); n >= 0 {
		word, operand = rest[:n], strings.TrimSpace(rest[n:])
	}

	if word[0] == '.' {
		return asm.parseDirective(strings.ToLower(word), operand, line, lineno)
	}

	return asm.parseInstruction(strings.ToUpper(word), operand, line, lineno)
}

// emit appends generated bytes as a new line.
func (asm *Assembler) emit(lineno int, text string, bytes []uint8, links []Link) (err error) {
	if asm.address+len(bytes) > 0x10000 {
		err = ErrAddressRange
		return
	}

	asm.Lines = append(asm.Lines, Line{
		LineNo:  lineno,
		Address: asm.address,
		Text:    text,
		Bytes:   bytes,
		Links:   links,
	})
	asm.address += len(bytes)

	return
}

// parseDirective handles the .org, .equ, .byte and .word directives.
func (asm *Assembler) parseDirective(directive string, operand string, text string, lineno int) (err error) {
	var args []string
	if len(operand) > 0 {
		args = strings.Split(operand, ",")
		for n := range args {
			args[n] = strings.TrimSpace(args[n])
		}
	}

	switch directive {
	case ".org":
		if len(args) != 1 {
			err = ErrDirectiveSyntax
			return
		}
		var value int
		value, err = asm.resolve(args[0])
		if errors.Is(err, errUnresolved) {
			err = ErrLabelMissing(args[0])
		}
		if err != nil {
			return
		}
		if value < 0 || value > 0xffff {
			err = ErrAddressRange
			return
		}
		asm.address = value
	case ".equ":
		// .equ NAME VALUE
		words := strings.Fields(operand)
		if len(words) != 2 || !reIdentifier.MatchString(words[0]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[0]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[0]] = words[1]
	case ".byte", ".word":
		if len(args) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
		width := 1
		if directive == ".word" {
			width = 2
		}
		bytes := make([]uint8, 0, len(args)*width)
		var links []Link
		for _, arg := range args {
			offset := len(bytes)
			bytes = append(bytes, make([]uint8, width)...)
			var value int
			value, err = asm.resolve(arg)
			if errors.Is(err, errUnresolved) {
				links = append(links, Link{Label: arg, Offset: offset, Width: width})
				err = nil
				continue
			}
			if err != nil {
				return
			}
			err = putValue(bytes[offset:], value, width)
			if err != nil {
				return
			}
		}
		err = asm.emit(lineno, text, bytes, links)
	default:
		err = ErrDirectiveInvalid
	}

	return
}

// parseInstruction assembles a single instruction.
func (asm *Assembler) parseInstruction(mnemonic string, operand string, text string, lineno int) (err error) {
	modes := Instructions().Modes(mnemonic)
	if len(modes) == 0 {
		err = ErrInstructionInvalid
		return
	}

	if len(operand) == 0 {
		ins, ok := modes[MODE_IMP]
		if !ok {
			err = ErrOpcodeValueMissing
			return
		}
		err = asm.emit(lineno, text, []uint8{ins.Opcode}, nil)
		return
	}

	if _, ok := modes[MODE_IMP]; ok {
		err = ErrOpcodeExtraArgs
		return
	}

	zp, abs := MODE_ZP, MODE_ABS
	word := operand
	if strings.HasPrefix(operand, "#") {
		zp, abs = MODE_IMM, MODE_IMM
		word = strings.TrimSpace(operand[1:])
	} else if match := reIndexed.FindStringSubmatch(operand); match != nil {
		word = match[1]
		switch strings.ToUpper(match[2]) {
		case "X":
			zp, abs = MODE_ZPX, MODE_ABX
		case "Y":
			zp, abs = MODE_ZPY, MODE_ABY
		}
	}

	if strings.ContainsAny(word, " \t,") {
		err = ErrOpcodeExtraArgs
		return
	}

	value, err := asm.resolve(word)
	known := err == nil
	if errors.Is(err, errUnresolved) {
		err = nil
	}
	if err != nil {
		return
	}

	zpIns, hasZp := modes[zp]
	absIns, hasAbs := modes[abs]

	var ins *Instruction
	switch {
	case hasZp && known && value >= -0x80 && value <= 0xff:
		ins = zpIns
	case hasAbs:
		ins = absIns
	case hasZp:
		ins = zpIns
	default:
		err = ErrModeInvalid
		return
	}

	width := ins.Mode.OperandSize()
	bytes := make([]uint8, 1+width)
	bytes[0] = ins.Opcode

	var links []Link
	if known {
		if width == 1 && ins.Mode != MODE_IMM && value < 0 {
			err = ErrAddressRange
			return
		}
		err = putValue(bytes[1:], value, width)
		if err != nil {
			return
		}
	} else {
		links = []Link{{Label: word, Offset: 1, Width: width}}
	}

	err = asm.emit(lineno, text, bytes, links)
	return
}
