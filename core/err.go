// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

import (
	"errors"

	"github.com/ezrec/avre/translate"
)

var f = translate.From

var (
	ErrHookRange      = errors.New(f("hook address out of range"))
	ErrInterruptRange = errors.New(f("interrupt line out of range"))
	ErrFlashRange     = errors.New(f("flash address out of range"))
)

// ErrIllegal is returned by Step when the fetched word matches no
// encoding. Address is the byte address of the faulting word.
type ErrIllegal struct {
	Word    uint16
	Address uint32
}

func (ei ErrIllegal) Error() string {
	return f("illegal instruction: %02x %02x at %x", ei.Word&0xff, ei.Word>>8, ei.Address)
}

func (ei ErrIllegal) Is(err error) (ok bool) {
	_, ok = err.(ErrIllegal)
	return
}

// ErrUnimplemented is returned by Step when the fetched word is a known
// encoding that this core does not execute.
type ErrUnimplemented struct {
	Name    string
	Word    uint16
	Address uint32
}

func (eu ErrUnimplemented) Error() string {
	return f("unimplemented instruction: %v (%04x) at %x", eu.Name, eu.Word, eu.Address)
}

func (eu ErrUnimplemented) Is(err error) (ok bool) {
	_, ok = err.(ErrUnimplemented)
	return
}

// ErrBreak is returned by Step after executing a BREAK instruction.
// The program counter has already advanced past it.
type ErrBreak struct {
	Address uint32
}

func (eb ErrBreak) Error() string {
	return f("break at %x", eb.Address)
}

func (eb ErrBreak) Is(err error) (ok bool) {
	_, ok = err.(ErrBreak)
	return
}
