package core

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// aluOperands are the corner cases, plus a fixed random sample.
func aluOperands() (values []byte) {
	values = []byte{0x00, 0x01, 0x0f, 0x10, 0x7f, 0x80, 0x81, 0xfe, 0xff}
	rng := rand.New(rand.NewSource(1))
	for range 16 {
		values = append(values, byte(rng.Intn(256)))
	}
	return
}

// expectAdd computes the add flags by widening, independent of the
// product-term formulas.
func expectAdd(rd, rr, cin byte) (r byte, s Sreg) {
	sum := int(rd) + int(rr) + int(cin)
	signed := int(int8(rd)) + int(int8(rr)) + int(cin)
	r = byte(sum)
	s.C = sum > 0xff
	s.H = int(rd&0xf)+int(rr&0xf)+int(cin) > 0xf
	s.V = signed < -128 || signed > 127
	s.N = r&0x80 != 0
	s.Z = r == 0
	s.S = s.N != s.V
	return
}

func expectSub(rd, rr, cin byte, chain bool, prevZ bool) (r byte, s Sreg) {
	diff := int(rd) - int(rr) - int(cin)
	signed := int(int8(rd)) - int(int8(rr)) - int(cin)
	r = byte(diff)
	s.C = diff < 0
	s.H = int(rd&0xf)-int(rr&0xf)-int(cin) < 0
	s.V = signed < -128 || signed > 127
	s.N = r&0x80 != 0
	s.Z = r == 0
	if chain {
		s.Z = s.Z && prevZ
	}
	s.S = s.N != s.V
	return
}

func TestAlu_Add(t *testing.T) {
	assert := assert.New(t)

	values := aluOperands()
	for _, rd := range values {
		for _, rr := range values {
			for _, cin := range []byte{0, 1} {
				name := fmt.Sprintf("%02x+%02x+%d", rd, rr, cin)
				r, s := add8(Sreg{}, rd, rr, cin)
				er, es := expectAdd(rd, rr, cin)
				assert.Equal(er, r, name)
				assert.Equal(es, s, name)
			}
		}
	}
}

func TestAlu_Sub(t *testing.T) {
	assert := assert.New(t)

	values := aluOperands()
	for _, rd := range values {
		for _, rr := range values {
			for _, cin := range []byte{0, 1} {
				for _, chain := range []bool{false, true} {
					for _, prevZ := range []bool{false, true} {
						name := fmt.Sprintf("%02x-%02x-%d chain:%v z:%v", rd, rr, cin, chain, prevZ)
						r, s := sub8(Sreg{Z: prevZ}, rd, rr, cin, chain)
						er, es := expectSub(rd, rr, cin, chain, prevZ)
						assert.Equal(er, r, name)
						assert.Equal(es, s, name)
					}
				}
			}
		}
	}
}

func TestAlu_PassThrough(t *testing.T) {
	assert := assert.New(t)

	in := Sreg{T: true, I: true}
	_, s := add8(in, 1, 2, 0)
	assert.True(s.T)
	assert.True(s.I)

	s = logic8(Sreg{C: true, H: true}, 0x80)
	assert.True(s.C)
	assert.True(s.H)
	assert.False(s.V)
	assert.True(s.N)
	assert.True(s.S)
}

func TestAlu_Unary(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		op     func(s Sreg, rd byte) (byte, Sreg)
		in     Sreg
		rd     byte
		result byte
		flags  Sreg
	}){
		{"com_00", com8, Sreg{}, 0x00, 0xff, Sreg{C: true, N: true, S: true}},
		{"com_ff", com8, Sreg{}, 0xff, 0x00, Sreg{C: true, Z: true}},
		{"neg_00", neg8, Sreg{C: true}, 0x00, 0x00, Sreg{Z: true}},
		{"neg_01", neg8, Sreg{}, 0x01, 0xff, Sreg{C: true, N: true, S: true, H: true}},
		{"neg_80", neg8, Sreg{}, 0x80, 0x80, Sreg{C: true, N: true, V: true}},
		{"inc_7f", inc8, Sreg{C: true}, 0x7f, 0x80, Sreg{C: true, N: true, V: true}},
		{"inc_ff", inc8, Sreg{}, 0xff, 0x00, Sreg{Z: true}},
		{"dec_80", dec8, Sreg{}, 0x80, 0x7f, Sreg{V: true, S: true}},
		{"dec_01", dec8, Sreg{}, 0x01, 0x00, Sreg{Z: true}},
		{"asr_81", asr8, Sreg{}, 0x81, 0xc0, Sreg{C: true, N: true, S: true}},
		{"asr_02", asr8, Sreg{}, 0x02, 0x01, Sreg{}},
		{"lsr_01", lsr8, Sreg{}, 0x01, 0x00, Sreg{C: true, Z: true, V: true, S: true}},
		{"lsr_80", lsr8, Sreg{}, 0x80, 0x40, Sreg{}},
		{"ror_02_c", ror8, Sreg{C: true}, 0x02, 0x81, Sreg{N: true, V: true}},
		{"ror_01", ror8, Sreg{}, 0x01, 0x00, Sreg{C: true, Z: true, V: true, S: true}},
	}

	for _, entry := range table {
		result, flags := entry.op(entry.in, entry.rd)
		assert.Equal(entry.result, result, entry.name)
		assert.Equal(entry.flags, flags, entry.name)
	}
}

func TestAlu_Word(t *testing.T) {
	assert := assert.New(t)

	r, s := add16(Sreg{}, 0xffff, 1)
	assert.Equal(uint16(0), r)
	assert.Equal(Sreg{C: true, Z: true}, s)

	r, s = add16(Sreg{}, 0x7fff, 1)
	assert.Equal(uint16(0x8000), r)
	assert.Equal(Sreg{V: true, N: true}, s)

	r, s = sub16(Sreg{}, 0, 1)
	assert.Equal(uint16(0xffff), r)
	assert.Equal(Sreg{C: true, N: true, S: true}, s)

	r, s = sub16(Sreg{}, 0x8000, 1)
	assert.Equal(uint16(0x7fff), r)
	assert.Equal(Sreg{V: true, S: true}, s)

	r, s = sub16(Sreg{}, 0x0040, 0x3f)
	assert.Equal(uint16(1), r)
	assert.Equal(Sreg{}, s)
}
