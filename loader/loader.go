// Package loader reads program images for the simulator.
//
// Images are chosen by file extension:
//
//	.asm   assembly source, placed at its first .org
//	.hex   Intel HEX data records, placed at $0000
//	.txt   one hex byte per line, placed at $0000
//	other  raw binary, placed at $0000
package loader

import (
	"bytes"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/ezrec/sim6502/cpu"
)

// Format of an image source.
type Format int

const (
	FORMAT_RAW  Format = iota // raw
	FORMAT_ASM                // asm
	FORMAT_HEX                // hex
	FORMAT_TEXT               // txt
)

//go:generate go tool stringer -linecomment -type=Format

// Image is a program ready to be placed into memory.
type Image struct {
	Name    string       // Source name.
	Format  Format       // Source format.
	Data    []uint8      // Bytes to place.
	Origin  int          // Address of Data[0].
	Program *cpu.Program // Assembler listing, for FORMAT_ASM only.
}

// FormatOf selects the image format from the extension of name.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".asm":
		return FORMAT_ASM
	case ".hex":
		return FORMAT_HEX
	case ".txt":
		return FORMAT_TEXT
	default:
		return FORMAT_RAW
	}
}

// Load reads the image at path.
func Load(path string, predefines iter.Seq2[string, string]) (img *Image, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	img, err = LoadReader(path, inf, predefines)
	return
}

// LoadFS reads the image named name from filesys.
func LoadFS(filesys fs.FS, name string, predefines iter.Seq2[string, string]) (img *Image, err error) {
	inf, err := filesys.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	img, err = LoadReader(name, inf, predefines)
	return
}

// LoadReader reads an image from r, using name to select the format.
// The predefines are made available to assembly sources as equates.
func LoadReader(name string, r io.Reader, predefines iter.Seq2[string, string]) (img *Image, err error) {
	img = &Image{
		Name:   name,
		Format: FormatOf(name),
	}

	switch img.Format {
	case FORMAT_ASM:
		asm := &cpu.Assembler{}
		if predefines != nil {
			for key, value := range predefines {
				asm.Predefine(key, value)
			}
		}
		img.Program, err = asm.Parse(r)
		if err != nil {
			img = nil
			return
		}
		img.Data = img.Program.Binary()
		img.Origin = img.Program.Origin()
	case FORMAT_HEX:
		img.Data, err = ParseIntelHex(r)
	case FORMAT_TEXT:
		img.Data, err = ParseHexText(r)
	case FORMAT_RAW:
		var buff bytes.Buffer
		_, err = buff.ReadFrom(io.LimitReader(r, 0x10000))
		img.Data = buff.Bytes()
	default:
		panic("unknown format")
	}

	if err != nil {
		img = nil
	}

	return
}

// Save writes the image as Intel HEX.
func (img *Image) Save(w io.Writer) (err error) {
	if len(img.Data) == 0 {
		err = ErrImageEmpty
		return
	}

	err = EncodeIntelHex(w, img.Data, img.Origin)
	return
}
