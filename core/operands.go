// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgKind selects how an encoding lays its operands out in the word.
type ArgKind int

//go:generate go tool stringer -linecomment -type=ArgKind
const (
	ARGS_NONE      = ArgKind(0)  // none
	ARGS_RD_RR     = ArgKind(1)  // rd,rr
	ARGS_RD        = ArgKind(2)  // rd
	ARGS_RD_K8     = ArgKind(3)  // rd,k8
	ARGS_PAIR_PAIR = ArgKind(4)  // pair,pair
	ARGS_HI_HI     = ArgKind(5)  // hi,hi
	ARGS_MID_MID   = ArgKind(6)  // mid,mid
	ARGS_PAIR_K6   = ArgKind(7)  // pair,k6
	ARGS_RD_Q      = ArgKind(8)  // rd,q
	ARGS_RD_K16    = ArgKind(9)  // rd,k16
	ARGS_K22       = ArgKind(10) // k22
	ARGS_RD_A6     = ArgKind(11) // rd,a6
	ARGS_A5_B      = ArgKind(12) // a5,b
	ARGS_RD_B      = ArgKind(13) // rd,b
	ARGS_S_K7      = ArgKind(14) // s,k7
	ARGS_S         = ArgKind(15) // s
	ARGS_K12       = ArgKind(16) // k12
	ARGS_K4        = ArgKind(17) // k4
)

// Operands are the decoded fields of an instruction.
//
// Register numbers are absolute (r0..r31). A is an I/O address
// (0x00..0x3f), not a data space address. K holds immediates, absolute
// addresses and signed relative offsets in words.
type Operands struct {
	Rd int // Destination (or source, for stores) register.
	Rr int // Source register.
	K  int // Constant, address, or relative offset.
	A  int // I/O address.
	B  int // Bit number.
	Q  int // Displacement.
	S  int // Status register bit.
}

func fieldD5(w uint16) int {
	return int((w >> 4) & 0x1f)
}

func fieldR5(w uint16) int {
	return int((w & 0xf) | ((w >> 5) & 0x10))
}

// fieldHi is a 4-bit register field restricted to r16..r31.
func fieldHi(w uint16) int {
	return 16 + int((w>>4)&0xf)
}

func fieldK8(w uint16) byte {
	return byte((w & 0xf) | ((w >> 4) & 0xf0))
}

// fieldPair is the ADIW/SBIW pair: r24, r26, r28 or r30.
func fieldPair(w uint16) int {
	return 24 + 2*int((w>>4)&3)
}

func fieldK6(w uint16) uint16 {
	return (w & 0xf) | ((w >> 2) & 0x30)
}

func fieldQ(w uint16) uint16 {
	return (w & 7) | ((w >> 7) & 0x18) | ((w >> 8) & 0x20)
}

func fieldA6(w uint16) uint16 {
	return (w & 0xf) | ((w >> 5) & 0x30)
}

func fieldA5(w uint16) uint16 {
	return (w >> 3) & 0x1f
}

func fieldB(w uint16) uint {
	return uint(w & 7)
}

// fieldK7 is the signed branch offset, in words.
func fieldK7(w uint16) int {
	k := int((w >> 3) & 0x7f)
	if k&0x40 != 0 {
		k -= 0x80
	}
	return k
}

// fieldK12 is the signed RJMP/RCALL offset, in words.
func fieldK12(w uint16) int {
	k := int(w & 0xfff)
	if k&0x800 != 0 {
		k -= 0x1000
	}
	return k
}

// fieldK22 is the JMP/CALL target. Only the low 16 bits address this
// core's flash.
func fieldK22(w uint16, next uint16) int {
	hi := int((w & 1) | ((w >> 3) & 0x3e))
	return hi<<16 | int(next)
}

// Operands decodes the fields of word. next is the following flash word,
// used only by two-word encodings.
func (enc *Encoding) Operands(w uint16, next uint16) (ops Operands) {
	switch enc.Args {
	case ARGS_RD_RR:
		ops.Rd = fieldD5(w)
		ops.Rr = fieldR5(w)
	case ARGS_RD:
		ops.Rd = fieldD5(w)
	case ARGS_RD_K8:
		ops.Rd = fieldHi(w)
		ops.K = int(fieldK8(w))
	case ARGS_PAIR_PAIR:
		ops.Rd = 2 * int((w>>4)&0xf)
		ops.Rr = 2 * int(w&0xf)
	case ARGS_HI_HI:
		ops.Rd = fieldHi(w)
		ops.Rr = 16 + int(w&0xf)
	case ARGS_MID_MID:
		ops.Rd = 16 + int((w>>4)&7)
		ops.Rr = 16 + int(w&7)
	case ARGS_PAIR_K6:
		ops.Rd = fieldPair(w)
		ops.K = int(fieldK6(w))
	case ARGS_RD_Q:
		ops.Rd = fieldD5(w)
		ops.Q = int(fieldQ(w))
	case ARGS_RD_K16:
		ops.Rd = fieldD5(w)
		ops.K = int(next)
	case ARGS_K22:
		ops.K = fieldK22(w, next)
	case ARGS_RD_A6:
		ops.Rd = fieldD5(w)
		ops.A = int(fieldA6(w))
	case ARGS_A5_B:
		ops.A = int(fieldA5(w))
		ops.B = int(fieldB(w))
	case ARGS_RD_B:
		ops.Rd = fieldD5(w)
		ops.B = int(fieldB(w))
	case ARGS_S_K7:
		ops.S = int(w & 7)
		ops.K = fieldK7(w)
	case ARGS_S:
		ops.S = int((w >> 4) & 7)
	case ARGS_K12:
		ops.K = fieldK12(w)
	case ARGS_K4:
		ops.K = int((w >> 4) & 0xf)
	}

	return
}

// Make assembles the words of the instruction from its operands.
// Out of range operands are truncated to their field widths.
func (enc *Encoding) Make(ops Operands) (words []uint16) {
	w := enc.Pattern
	d5 := uint16(ops.Rd&0x1f) << 4
	switch enc.Args {
	case ARGS_RD_RR:
		w |= d5 | uint16(ops.Rr&0xf) | uint16(ops.Rr&0x10)<<5
	case ARGS_RD:
		w |= d5
	case ARGS_RD_K8:
		w |= uint16((ops.Rd-16)&0xf)<<4 | uint16(ops.K&0xf) | uint16(ops.K&0xf0)<<4
	case ARGS_PAIR_PAIR:
		w |= uint16((ops.Rd/2)&0xf)<<4 | uint16((ops.Rr/2)&0xf)
	case ARGS_HI_HI:
		w |= uint16((ops.Rd-16)&0xf)<<4 | uint16((ops.Rr-16)&0xf)
	case ARGS_MID_MID:
		w |= uint16((ops.Rd-16)&7)<<4 | uint16((ops.Rr-16)&7)
	case ARGS_PAIR_K6:
		w |= uint16(((ops.Rd-24)/2)&3)<<4 | uint16(ops.K&0xf) | uint16(ops.K&0x30)<<2
	case ARGS_RD_Q:
		w |= d5 | uint16(ops.Q&7) | uint16(ops.Q&0x18)<<7 | uint16(ops.Q&0x20)<<8
	case ARGS_RD_K16:
		words = []uint16{w | d5, uint16(ops.K)}
		return
	case ARGS_K22:
		hi := uint16(ops.K >> 16)
		words = []uint16{w | (hi & 1) | (hi&0x3e)<<3, uint16(ops.K)}
		return
	case ARGS_RD_A6:
		w |= d5 | uint16(ops.A&0xf) | uint16(ops.A&0x30)<<5
	case ARGS_A5_B:
		w |= uint16(ops.A&0x1f)<<3 | uint16(ops.B&7)
	case ARGS_RD_B:
		w |= d5 | uint16(ops.B&7)
	case ARGS_S_K7:
		w |= uint16(ops.K&0x7f)<<3 | uint16(ops.S&7)
	case ARGS_S:
		w |= uint16(ops.S&7) << 4
	case ARGS_K12:
		w |= uint16(ops.K & 0xfff)
	case ARGS_K4:
		w |= uint16(ops.K&0xf) << 4
	}

	words = []uint16{w}
	return
}

// Disassemble renders the instruction in assembler syntax.
func (enc *Encoding) Disassemble(w uint16, next uint16) string {
	if enc.Syntax == "" {
		return fmt.Sprintf(".word 0x%04x", w)
	}

	ops := enc.Operands(w, next)
	repl := strings.NewReplacer(
		"{d}", strconv.Itoa(ops.Rd),
		"{r}", strconv.Itoa(ops.Rr),
		"{k}", fmt.Sprintf("0x%02x", ops.K),
		"{o}", fmt.Sprintf(".%+d", ops.K*2),
		"{a}", fmt.Sprintf("0x%02x", ops.A),
		"{b}", strconv.Itoa(ops.B),
		"{q}", strconv.Itoa(ops.Q),
		"{s}", strconv.Itoa(ops.S),
	)

	return repl.Replace(enc.Syntax)
}
