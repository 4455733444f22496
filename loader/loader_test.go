package loader

import (
	"bytes"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestFormatOf(t *testing.T) {
	assert := assert.New(t)

	table := map[string]Format{
		"prog.asm":     FORMAT_ASM,
		"PROG.ASM":     FORMAT_ASM,
		"dir/prog.hex": FORMAT_HEX,
		"bytes.txt":    FORMAT_TEXT,
		"prog.bin":     FORMAT_RAW,
		"prog":         FORMAT_RAW,
	}

	for name, format := range table {
		assert.Equal(format, FormatOf(name), name)
	}

	assert.Equal("asm", FORMAT_ASM.String())
}

func TestLoadReader(t *testing.T) {
	assert := assert.New(t)

	img, err := LoadReader("prog.asm", strings.NewReader(".org $0600\nLDA #VALUE\nBRK\n"),
		maps.All(map[string]string{"VALUE": "$42"}))
	assert.NoError(err)
	assert.Equal(FORMAT_ASM, img.Format)
	assert.Equal(0x0600, img.Origin)
	assert.Equal([]uint8{0xa9, 0x42, 0x00}, img.Data)
	assert.NotNil(img.Program)

	img, err = LoadReader("prog.hex", strings.NewReader(":03060000A942000C\n:00000001FF\n"), nil)
	assert.NoError(err)
	assert.Equal(0, img.Origin)
	assert.Equal([]uint8{0xa9, 0x42, 0x00}, img.Data)
	assert.Nil(img.Program)

	img, err = LoadReader("prog.txt", strings.NewReader("a9\n42\n00\n"), nil)
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0x42, 0x00}, img.Data)

	img, err = LoadReader("prog.bin", bytes.NewReader([]uint8{0xa9, 0x42, 0x00}), nil)
	assert.NoError(err)
	assert.Equal(FORMAT_RAW, img.Format)
	assert.Equal([]uint8{0xa9, 0x42, 0x00}, img.Data)

	img, err = LoadReader("bad.asm", strings.NewReader("FOO\n"), nil)
	assert.Error(err)
	assert.Nil(img)
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "prog.asm")
	assert.NoError(os.WriteFile(path, []byte(".org $0200\nTAX\n"), 0o644))

	img, err := Load(path, nil)
	assert.NoError(err)
	assert.Equal(path, img.Name)
	assert.Equal(0x0200, img.Origin)
	assert.Equal([]uint8{0xaa}, img.Data)

	_, err = Load(filepath.Join(dir, "missing.bin"), nil)
	assert.True(os.IsNotExist(err))
}

func TestLoadFS(t *testing.T) {
	assert := assert.New(t)

	filesys := fstest.MapFS{
		"progs/add.asm":  {Data: []byte(".org $0300\nADC #1\n")},
		"progs/add.hex":  {Data: []byte(":03060000A942000C\n")},
		"progs/bad.hex":  {Data: []byte(":03060000A942000D\n")},
		"progs/raw.bin":  {Data: []byte{0xe8, 0xe8}},
		"progs/text.txt": {Data: []byte("e8\n")},
	}

	img, err := LoadFS(filesys, "progs/add.asm", nil)
	assert.NoError(err)
	assert.Equal(0x0300, img.Origin)
	assert.Equal([]uint8{0x69, 0x01}, img.Data)

	img, err = LoadFS(filesys, "progs/add.hex", nil)
	assert.NoError(err)
	assert.Equal([]uint8{0xa9, 0x42, 0x00}, img.Data)

	_, err = LoadFS(filesys, "progs/bad.hex", nil)
	assert.ErrorIs(err, ErrRecordChecksum)

	img, err = LoadFS(filesys, "progs/raw.bin", nil)
	assert.NoError(err)
	assert.Equal([]uint8{0xe8, 0xe8}, img.Data)

	img, err = LoadFS(filesys, "progs/text.txt", nil)
	assert.NoError(err)
	assert.Equal([]uint8{0xe8}, img.Data)

	_, err = LoadFS(filesys, "progs/missing.asm", nil)
	assert.ErrorIs(err, fs.ErrNotExist)
}

func TestImage_Save(t *testing.T) {
	assert := assert.New(t)

	img := &Image{Data: []uint8{0xa9, 0x42, 0x00}, Origin: 0x0600}
	var buff bytes.Buffer
	assert.NoError(img.Save(&buff))
	assert.Equal(":03060000A942000C\n:00000001FF\n", buff.String())

	img = &Image{}
	assert.ErrorIs(img.Save(&buff), ErrImageEmpty)
}
