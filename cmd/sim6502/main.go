// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/ezrec/sim6502/emulator"
	"github.com/ezrec/sim6502/loader"
)

// parseAddress accepts $hex, 0x hex, or decimal addresses.
func parseAddress(text string) (addr int, err error) {
	var value int64
	if len(text) > 0 && text[0] == '$' {
		value, err = strconv.ParseInt(text[1:], 16, 32)
	} else {
		value, err = strconv.ParseInt(text, 0, 32)
	}
	addr = int(value)
	return
}

// sampleImage is run when no program file is given: LDA #$42, STA $0002, BRK.
func sampleImage() *loader.Image {
	return &loader.Image{
		Name: "sample",
		Data: []uint8{0xa9, 0x42, 0x8d, 0x02, 0x00, 0x00},
	}
}

// printListing writes the disassembly window, marking the line at PC.
func printListing(w io.Writer, emu *emulator.Emulator, count int) (err error) {
	for _, dis := range emu.Listing(count) {
		mark := " "
		if dis.Address == emu.Pc() {
			mark = ">"
		}
		_, err = fmt.Fprintf(w, "%s %v\n", mark, dis)
		if err != nil {
			return
		}
	}
	return
}

func main() {
	var file string
	var steps int
	var lines int
	var dump string
	var length int
	var save string
	var breaks string
	var verbose bool

	flag.StringVar(&file, "f", "", "Program to load (.asm, .hex, .txt, or raw binary); a sample program if empty")
	flag.IntVar(&steps, "n", 10000, "Maximum instructions to execute, 0 for no limit")
	flag.IntVar(&lines, "l", 0, "Disassembly lines to print after execution")
	flag.StringVar(&dump, "m", "", "Memory address to dump after execution")
	flag.IntVar(&length, "len", 0x100, "Memory dump length")
	flag.StringVar(&save, "s", "", "Save loaded image as Intel HEX, do not execute")
	flag.StringVar(&breaks, "b", "", "Breakpoint address")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if len(file) != 0 {
		img, err := loader.Load(file, emu.Defines())
		if err != nil {
			log.Fatalf("%v: %v", file, err)
		}

		if len(save) != 0 {
			ouf, err := os.Create(save)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			defer ouf.Close()

			err = img.Save(ouf)
			if err != nil {
				log.Fatalf("%v: %v", save, err)
			}
			return
		}

		emu.Load(img)
	} else {
		emu.Load(sampleImage())
	}

	if len(breaks) != 0 {
		addr, err := parseAddress(breaks)
		if err != nil {
			log.Fatalf("-b %v: %v", breaks, err)
		}
		emu.Breakpoint[addr] = true
	}

	ran, done, err := emu.Run(steps)
	if err != nil && !errors.Is(err, emulator.ErrBreakpoint) {
		log.Print(err)
	}
	if verbose {
		log.Printf("%d instructions, done %v", ran, done)
	}

	fmt.Print(emu.Cpu.String())

	if lines > 0 {
		err := printListing(os.Stdout, emu, lines)
		if err != nil {
			log.Fatal(err)
		}
	}

	if len(dump) != 0 {
		addr, err := parseAddress(dump)
		if err != nil {
			log.Fatalf("-m %v: %v", dump, err)
		}
		err = emu.Cpu.Memory.Hexdump(os.Stdout, addr, length)
		if err != nil {
			log.Fatal(err)
		}
	}

	if err != nil && !errors.Is(err, emulator.ErrBreakpoint) {
		os.Exit(1)
	}
}
