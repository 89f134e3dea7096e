// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package loader reads program images for the core's flash.
package loader

import (
	"io"
	"os"

	"github.com/ezrec/avre/core"
)

// Format is a program image encoding.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_IHEX = Format(0) // ihex
	FORMAT_BIN  = Format(1) // bin
)

// ParseFormat returns the format with the given name.
func ParseFormat(name string) (format Format, err error) {
	for _, format = range []Format{FORMAT_IHEX, FORMAT_BIN} {
		if format.String() == name {
			return
		}
	}

	err = ErrFormatUnknown
	return
}

// Segment is a run of bytes at a flash byte address.
type Segment struct {
	Address uint32
	Data    []byte
}

// Image is a program image, as flash segments.
type Image struct {
	Segments []Segment
}

// Flasher accepts a program image.
type Flasher interface {
	LoadFlash(offset int, data []byte) error
}

var _ Flasher = (*core.Core)(nil)

// add appends data at addr, merging it into the last segment when the
// two are contiguous.
func (img *Image) add(addr uint32, data []byte) (err error) {
	if uint64(addr)+uint64(len(data)) > core.FLASH_SIZE {
		err = ErrAddressRange
		return
	}

	if n := len(img.Segments); n > 0 {
		last := &img.Segments[n-1]
		if last.Address+uint32(len(last.Data)) == addr {
			last.Data = append(last.Data, data...)
			return
		}
	}

	img.Segments = append(img.Segments, Segment{Address: addr, Data: data})
	return
}

// Size returns the number of bytes in the image.
func (img *Image) Size() (size int) {
	for _, seg := range img.Segments {
		size += len(seg.Data)
	}
	return
}

// Install writes the image into flash.
func (img *Image) Install(flash Flasher) (err error) {
	for _, seg := range img.Segments {
		err = flash.LoadFlash(int(seg.Address), seg.Data)
		if err != nil {
			return
		}
	}
	return
}

// Load reads an image in the given format.
func Load(r io.Reader, format Format) (img *Image, err error) {
	switch format {
	case FORMAT_IHEX:
		img, err = LoadIhex(r)
	case FORMAT_BIN:
		img, err = LoadBin(r)
	default:
		err = ErrFormatUnknown
	}
	return
}

// LoadFile reads an image file in the given format.
func LoadFile(path string, format Format) (img *Image, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	img, err = Load(inf, format)
	return
}

// LoadBin reads a raw binary image, placed at flash address 0.
func LoadBin(r io.Reader) (img *Image, err error) {
	data, err := io.ReadAll(io.LimitReader(r, core.FLASH_SIZE+1))
	if err != nil {
		return
	}

	img = &Image{}
	err = img.add(0, data)
	if err != nil {
		img = nil
	}
	return
}
