// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"

	"github.com/ezrec/avre/translate"
)

var f = translate.From

var (
	ErrUntilValue = errors.New(f("stop condition has no value"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Address uint32 // Flash byte address of the program counter.
	Cycle   uint64 // Core cycle count.
	Err     error
}

func (err *ErrRuntime) Error() string {
	return f("%05x (cycle %d): %v", err.Address, err.Cycle, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
