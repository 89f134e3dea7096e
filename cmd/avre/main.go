// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"slices"

	"golang.org/x/term"

	"github.com/ezrec/avre/core"
	"github.com/ezrec/avre/emulator"
	"github.com/ezrec/avre/loader"
)

// list disassembles every segment of the image.
func list(w io.Writer, img *loader.Image) {
	for _, seg := range img.Segments {
		words := make([]uint16, 0, len(seg.Data)/2+1)
		for n := 0; n < len(seg.Data); n += 2 {
			data := append(slices.Clone(seg.Data[n:min(n+2, len(seg.Data))]), 0)
			words = append(words, binary.LittleEndian.Uint16(data))
		}

		for n := 0; n < len(words); {
			w0 := words[n]
			var w1 uint16
			if n+1 < len(words) {
				w1 = words[n+1]
			}
			enc := core.Decode(w0)
			fmt.Fprintf(w, "%05x: %04x  %v\n", seg.Address+uint32(n)*2, w0, enc.Disassemble(w0, w1))
			n += enc.Words
		}
	}
}

// ETX is the byte a raw terminal sends for Ctrl-C.
const ETX = 0x03

// interruptReader calls stop when the input carries an ETX. Raw mode
// turns off the terminal's own SIGINT.
type interruptReader struct {
	io.Reader
	stop func()
}

func (ir *interruptReader) Read(p []byte) (n int, err error) {
	n, err = ir.Reader.Read(p)
	if bytes.IndexByte(p[:n], ETX) >= 0 {
		ir.stop()
	}
	return
}

// run executes the image, returning the first failure.
func run(emu *emulator.Emulator, img *loader.Image, input, output string, raw bool) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if input == "-" {
		emu.Usart.Input = os.Stdin
		fd := int(os.Stdin.Fd())
		if raw && term.IsTerminal(fd) {
			var state *term.State
			state, err = term.MakeRaw(fd)
			if err != nil {
				return
			}
			defer func() { _ = term.Restore(fd, state) }()
			emu.Usart.Input = &interruptReader{Reader: os.Stdin, stop: stop}
		}
	} else {
		var inf *os.File
		inf, err = os.Open(input)
		if err != nil {
			return
		}
		defer inf.Close()
		emu.Usart.Input = inf
	}

	if output == "-" {
		emu.Usart.Output = os.Stdout
	} else {
		var ouf *os.File
		ouf, err = os.Create(output)
		if err != nil {
			return
		}
		defer ouf.Close()
		emu.Usart.Output = ouf
	}

	err = emu.Reset()
	if err != nil {
		return
	}
	defer func() { err = errors.Join(err, emu.Close()) }()

	err = emu.Load(img)
	if err != nil {
		return
	}

	err = emu.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return
}

func main() {
	var format string
	var input string
	var output string
	var until string
	var halt bool
	var raw bool
	var disasm bool
	var defines bool
	var verbose bool

	flag.StringVar(&format, "t", "ihex", "Image format (ihex, bin)")
	flag.StringVar(&input, "i", "-", "USART0 input")
	flag.StringVar(&output, "o", "-", "USART0 output")
	flag.StringVar(&until, "u", "", "Stop condition (Starlark expression)")
	flag.BoolVar(&halt, "b", true, "Halt on BREAK")
	flag.BoolVar(&raw, "raw", false, "Put a terminal input in raw mode; Ctrl-C still stops the run")
	flag.BoolVar(&disasm, "d", false, "Disassemble the image, do not execute")
	flag.BoolVar(&defines, "D", false, "List the defines, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Until = until
	emu.HaltOnBreak = halt

	if defines {
		for key, value := range emu.Defines() {
			fmt.Printf("%v=%v\n", key, value)
		}
		return
	}

	if flag.NArg() != 1 {
		log.Fatalf("%v: expected one image file, got %v", os.Args[0], flag.Args())
	}
	image := flag.Arg(0)

	imageFormat, err := loader.ParseFormat(format)
	if err != nil {
		log.Fatalf("%v: %v", format, err)
	}

	img, err := loader.LoadFile(image, imageFormat)
	if err != nil {
		log.Fatalf("%v: %v", image, err)
	}

	if disasm {
		list(os.Stdout, img)
		return
	}

	err = run(emu, img, input, output, raw)
	if verbose || err != nil {
		fmt.Fprint(os.Stderr, emu.Core.String())
	}
	if err != nil {
		log.Fatalf("%v: %v", image, err)
	}
}
