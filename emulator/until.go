// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"iter"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/avre/core"
	"github.com/ezrec/avre/internal"
)

// until is a compiled stop condition.
//
// The expression sees the defines as integers, plus:
//
//	pc          program counter, as a flash byte address
//	sp          stack pointer
//	cycles      cycles since reset
//	pending     pending interrupt mask
//	sreg        status register byte
//	C Z N V S H T I   status flags, as booleans
//	r0 .. r31   general registers
//	mem(addr)   data space byte, read without side effects
type until struct {
	source  string
	program *starlark.Program
	defines starlark.StringDict
}

var _until_names = func() (names map[string]bool) {
	names = map[string]bool{
		"pc": true, "sp": true, "cycles": true, "pending": true, "sreg": true, "mem": true,
	}
	for flag := core.FLAG_C; flag <= core.FLAG_I; flag++ {
		names[flag.String()] = true
	}
	for n := range 32 {
		names[fmt.Sprintf("r%d", n)] = true
	}
	return
}()

// compileUntil parses the stop condition.
func compileUntil(expr string, defines iter.Seq2[string, string]) (u *until, err error) {
	u = &until{
		source:  expr,
		defines: starlark.StringDict{},
	}

	for key, value := range internal.IntDefines(defines) {
		u.defines[key] = starlark.MakeInt64(value)
	}

	opts := syntax.FileOptions{}
	isPredeclared := func(name string) bool {
		_, ok := u.defines[name]
		return ok || _until_names[name]
	}

	_, u.program, err = starlark.SourceProgramOptions(&opts, "until", "rc=("+expr+")\n", isPredeclared)
	if err != nil {
		u = nil
		return
	}

	return
}

// eval evaluates the stop condition against the core's state.
func (u *until) eval(c *core.Core) (done bool, err error) {
	pred := starlark.StringDict{}
	for key, value := range u.defines {
		pred[key] = value
	}

	pred["pc"] = starlark.MakeInt(int(c.PC) << 1)
	pred["sp"] = starlark.MakeInt(int(c.Peek(core.SPL)) | int(c.Peek(core.SPH))<<8)
	pred["cycles"] = starlark.MakeUint64(c.Cycles)
	pred["pending"] = starlark.MakeUint(uint(c.Pending()))
	pred["sreg"] = starlark.MakeInt(int(c.Sreg.Byte()))
	for flag := core.FLAG_C; flag <= core.FLAG_I; flag++ {
		pred[flag.String()] = starlark.Bool(c.Sreg.Get(flag))
	}
	for n := range 32 {
		pred[fmt.Sprintf("r%d", n)] = starlark.MakeInt(int(c.Peek(uint16(n))))
	}
	pred["mem"] = starlark.NewBuiltin("mem", func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (value starlark.Value, err error) {
		var addr int
		err = starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &addr)
		if err != nil {
			return
		}
		value = starlark.MakeInt(int(c.Peek(uint16(addr))))
		return
	})

	thread := starlark.Thread{Name: "until"}
	globals, err := u.program.Init(&thread, pred)
	if err != nil {
		return
	}

	rc, ok := globals["rc"]
	if !ok {
		err = ErrUntilValue
		return
	}

	done = bool(rc.Truth())
	return
}
