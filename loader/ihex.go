// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package loader

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"io"
	"strings"
)

// Intel HEX record types.
const (
	IHEX_DATA             = 0x00
	IHEX_EOF              = 0x01
	IHEX_EXTENDED_SEGMENT = 0x02
	IHEX_START_SEGMENT    = 0x03
	IHEX_EXTENDED_LINEAR  = 0x04
	IHEX_START_LINEAR     = 0x05
)

// LoadIhex reads an Intel HEX image. Reading stops at the end of file
// record; the checksum and flash range of every record are verified.
func LoadIhex(r io.Reader) (img *Image, err error) {
	img = &Image{}
	var base uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		var done bool
		done, err = img.record(strings.TrimSpace(scanner.Text()), &base)
		if err != nil {
			err = ErrRecord{Line: lineNo, Err: err}
			img = nil
			return
		}
		if done {
			return
		}
	}

	err = scanner.Err()
	if err == nil {
		err = ErrRecord{Line: lineNo, Err: ErrRecordEOF}
	}
	img = nil
	return
}

// record decodes one line of a hex file into the image.
func (img *Image) record(line string, base *uint32) (done bool, err error) {
	if len(line) == 0 {
		return
	}

	if line[0] != ':' {
		err = ErrRecordSyntax
		return
	}

	raw, err := hex.DecodeString(line[1:])
	if err != nil || len(raw) < 5 || len(raw) != 5+int(raw[0]) {
		err = ErrRecordSyntax
		return
	}

	var sum byte
	for _, b := range raw {
		sum += b
	}
	if sum != 0 {
		err = ErrRecordChecksum
		return
	}

	addr := uint32(raw[1])<<8 | uint32(raw[2])
	data := raw[4 : len(raw)-1]

	switch raw[3] {
	case IHEX_DATA:
		err = img.add(*base+addr, bytes.Clone(data))
	case IHEX_EOF:
		done = true
	case IHEX_EXTENDED_SEGMENT, IHEX_EXTENDED_LINEAR:
		if len(data) != 2 {
			err = ErrRecordSyntax
			return
		}
		*base = uint32(data[0])<<8 | uint32(data[1])
		if raw[3] == IHEX_EXTENDED_SEGMENT {
			*base <<= 4
		} else {
			*base <<= 16
		}
	case IHEX_START_SEGMENT, IHEX_START_LINEAR:
		// The core always starts at address 0.
	default:
		err = ErrRecordType
	}

	return
}
