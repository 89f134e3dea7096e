// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

// Flag is a bit position in the status register.
type Flag uint8

//go:generate go tool stringer -linecomment -type=Flag
const (
	FLAG_C = Flag(0) // C
	FLAG_Z = Flag(1) // Z
	FLAG_N = Flag(2) // N
	FLAG_V = Flag(3) // V
	FLAG_S = Flag(4) // S
	FLAG_H = Flag(5) // H
	FLAG_T = Flag(6) // T
	FLAG_I = Flag(7) // I
)

// Sreg is the structured view of the status register.
type Sreg struct {
	C bool // Carry
	Z bool // Zero
	N bool // Negative
	V bool // Two's complement overflow
	S bool // Sign, N xor V
	H bool // Half carry
	T bool // Bit copy storage
	I bool // Global interrupt enable
}

// Byte packs the flags into the SREG byte layout.
func (s Sreg) Byte() (bits byte) {
	for n, set := range s.flags() {
		if set {
			bits |= 1 << n
		}
	}
	return
}

// SetByte unpacks an SREG byte into the flags.
func (s *Sreg) SetByte(bits byte) {
	*s = Sreg{
		C: bits&(1<<FLAG_C) != 0,
		Z: bits&(1<<FLAG_Z) != 0,
		N: bits&(1<<FLAG_N) != 0,
		V: bits&(1<<FLAG_V) != 0,
		S: bits&(1<<FLAG_S) != 0,
		H: bits&(1<<FLAG_H) != 0,
		T: bits&(1<<FLAG_T) != 0,
		I: bits&(1<<FLAG_I) != 0,
	}
}

// Get returns a single flag.
func (s Sreg) Get(flag Flag) bool {
	return s.Byte()&(1<<flag) != 0
}

// Set changes a single flag, leaving the others untouched.
func (s *Sreg) Set(flag Flag, value bool) {
	bits := s.Byte()
	if value {
		bits |= 1 << flag
	} else {
		bits &^= 1 << flag
	}
	s.SetByte(bits)
}

func (s Sreg) flags() [8]bool {
	return [8]bool{s.C, s.Z, s.N, s.V, s.S, s.H, s.T, s.I}
}

// String renders the flags most significant first, upper case when set.
func (s Sreg) String() string {
	out := []byte("ithsvnzc")
	flags := s.flags()
	for n := range flags {
		if flags[n] {
			out[7-n] -= 'a' - 'A'
		}
	}
	return string(out)
}
