// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

// The ALU primitives are pure: they take the incoming flags and operands
// and return the result with the updated flags. Flags an operation does
// not define are passed through.

func (s Sreg) carry() byte {
	if s.C {
		return 1
	}
	return 0
}

// resultFlags sets N, Z and S from an 8-bit result. V must already be set.
func (s Sreg) resultFlags(r byte) Sreg {
	s.N = r&0x80 != 0
	s.Z = r == 0
	s.S = s.N != s.V
	return s
}

// add8 is Rd + Rr + cin (ADD, ADC).
func add8(s Sreg, rd, rr, cin byte) (r byte, out Sreg) {
	r = rd + rr + cin
	carries := (rd & rr) | (rr &^ r) | (^r & rd)
	s.H = carries&0x08 != 0
	s.C = carries&0x80 != 0
	s.V = ((rd&rr&^r)|(^rd&^rr&r))&0x80 != 0
	out = s.resultFlags(r)
	return
}

// sub8 is Rd - Rr - cin (SUB, SUBI, SBC, SBCI, CP, CPC, CPI, NEG). When
// chain is set, Z can only stay set: the previous Z is ANDed with the
// zero test of this byte.
func sub8(s Sreg, rd, rr, cin byte, chain bool) (r byte, out Sreg) {
	r = rd - rr - cin
	borrows := (^rd & rr) | (rr & r) | (r &^ rd)
	s.H = borrows&0x08 != 0
	s.C = borrows&0x80 != 0
	s.V = ((rd&^rr&^r)|(^rd&rr&r))&0x80 != 0
	zero := s.Z
	out = s.resultFlags(r)
	if chain {
		out.Z = zero && r == 0
	}
	return
}

// logic8 sets the flags for AND, OR, EOR and their immediates.
func logic8(s Sreg, r byte) Sreg {
	s.V = false
	return s.resultFlags(r)
}

// com8 is the one's complement.
func com8(s Sreg, rd byte) (r byte, out Sreg) {
	r = ^rd
	out = logic8(s, r)
	out.C = true
	return
}

// neg8 is the two's complement, computed as 0 - Rd.
func neg8(s Sreg, rd byte) (r byte, out Sreg) {
	return sub8(s, 0, rd, 0, false)
}

func inc8(s Sreg, rd byte) (r byte, out Sreg) {
	r = rd + 1
	s.V = r == 0x80
	out = s.resultFlags(r)
	return
}

func dec8(s Sreg, rd byte) (r byte, out Sreg) {
	r = rd - 1
	s.V = r == 0x7f
	out = s.resultFlags(r)
	return
}

// shiftFlags covers the right shifts: C is the bit shifted out, and
// V = N xor C.
func shiftFlags(s Sreg, rd, r byte) Sreg {
	s.C = rd&0x01 != 0
	s.N = r&0x80 != 0
	s.V = s.N != s.C
	s.S = s.N != s.V
	s.Z = r == 0
	return s
}

func asr8(s Sreg, rd byte) (r byte, out Sreg) {
	r = byte(int8(rd) >> 1)
	out = shiftFlags(s, rd, r)
	return
}

func lsr8(s Sreg, rd byte) (r byte, out Sreg) {
	r = rd >> 1
	out = shiftFlags(s, rd, r)
	return
}

func ror8(s Sreg, rd byte) (r byte, out Sreg) {
	r = (rd >> 1) | (s.carry() << 7)
	out = shiftFlags(s, rd, r)
	return
}

// add16 is the register pair add of ADIW.
func add16(s Sreg, rd, k uint16) (r uint16, out Sreg) {
	r = rd + k
	s.V = (^rd&r)&0x8000 != 0
	s.C = (^r&rd)&0x8000 != 0
	out = s.wordFlags(r)
	return
}

// sub16 is the register pair subtract of SBIW.
func sub16(s Sreg, rd, k uint16) (r uint16, out Sreg) {
	r = rd - k
	s.V = (rd&^r)&0x8000 != 0
	s.C = (r&^rd)&0x8000 != 0
	out = s.wordFlags(r)
	return
}

func (s Sreg) wordFlags(r uint16) Sreg {
	s.N = r&0x8000 != 0
	s.Z = r == 0
	s.S = s.N != s.V
	return s
}

// mulFlags sets C from bit 15 of the product and Z from the product.
func mulFlags(s Sreg, r uint16) Sreg {
	s.C = r&0x8000 != 0
	s.Z = r == 0
	return s
}
