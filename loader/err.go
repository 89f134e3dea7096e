// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package loader

import (
	"errors"

	"github.com/ezrec/avre/translate"
)

var f = translate.From

var (
	ErrFormatUnknown  = errors.New(f("unknown image format"))
	ErrRecordSyntax   = errors.New(f("malformed hex record"))
	ErrRecordChecksum = errors.New(f("hex record checksum mismatch"))
	ErrRecordType     = errors.New(f("unsupported hex record type"))
	ErrRecordEOF      = errors.New(f("missing end of file record"))
	ErrAddressRange   = errors.New(f("address out of range"))
)

// ErrRecord locates a failure in a hex file.
type ErrRecord struct {
	Line int
	Err  error
}

func (err ErrRecord) Error() string {
	return f("line %d: %v", err.Line, err.Err)
}

func (err ErrRecord) Unwrap() error {
	return err.Err
}
