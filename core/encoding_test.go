package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode_Exclusive(t *testing.T) {
	assert := assert.New(t)

	for word := range 1 << 16 {
		w := uint16(word)
		var matched []*Encoding
		for _, enc := range Encodings() {
			if enc.Match(w) {
				matched = append(matched, enc)
			}
		}

		if !assert.LessOrEqual(len(matched), 1, fmt.Sprintf("%04x: %v", w, matched)) {
			return
		}

		if len(matched) == 0 {
			assert.Equal(illegal, Decode(w), fmt.Sprintf("%04x", w))
		} else {
			assert.Equal(matched[0], Decode(w), fmt.Sprintf("%04x", w))
		}
	}
}

func TestDecode_Illegal(t *testing.T) {
	assert := assert.New(t)

	for _, w := range []uint16{0x0001, 0x00ff, 0x9003, 0x9204, 0x9205, 0x9206, 0x9207, 0x9404, 0x9528, 0x95b8, 0x9429, 0xf808, 0xffff} {
		assert.Equal("illegal", Decode(w).Name, fmt.Sprintf("%04x", w))
	}
}

func TestEncoding_Words(t *testing.T) {
	assert := assert.New(t)

	for _, enc := range Encodings() {
		switch enc.Name {
		case "jmp", "call", "lds", "sts":
			assert.Equal(2, enc.Words, enc.Name)
		default:
			assert.Equal(1, enc.Words, enc.Name)
		}
		assert.NotNil(enc.Exec, enc.Name)
		assert.Equal(enc.Pattern, enc.Pattern&enc.Mask, enc.Name)
	}
}

func TestEncoding_Make(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		ops    Operands
		words  []uint16
		syntax string
	}){
		{"ldi", Operands{Rd: 16, K: 5}, []uint16{0xe005}, "ldi r16, 0x05"},
		{"add", Operands{Rd: 16, Rr: 17}, []uint16{0x0f01}, "add r16, r17"},
		{"eor", Operands{Rd: 1, Rr: 1}, []uint16{0x2411}, "eor r1, r1"},
		{"sts", Operands{Rd: 16, K: 0x100}, []uint16{0x9300, 0x0100}, "sts 0x100, r16"},
		{"lds", Operands{Rd: 24, K: 0x60}, []uint16{0x9180, 0x0060}, "lds r24, 0x60"},
		{"jmp", Operands{K: 0x1234}, []uint16{0x940c, 0x1234}, "jmp 0x1234"},
		{"call", Operands{K: 0x12345}, []uint16{0x940f, 0x2345}, "call 0x12345"},
		{"rjmp", Operands{K: -1}, []uint16{0xcfff}, "rjmp .-2"},
		{"rcall", Operands{K: 10}, []uint16{0xd00a}, "rcall .+20"},
		{"brbs", Operands{S: 1, K: 2}, []uint16{0xf011}, "brbs 1, .+4"},
		{"brbc", Operands{S: 1, K: -4}, []uint16{0xf7e1}, "brbc 1, .-8"},
		{"in", Operands{Rd: 24, A: 0x3f}, []uint16{0xb78f}, "in r24, 0x3f"},
		{"out", Operands{Rd: 0, A: 0x3f}, []uint16{0xbe0f}, "out 0x3f, r0"},
		{"adiw", Operands{Rd: 24, K: 1}, []uint16{0x9601}, "adiw r24, 0x01"},
		{"sbiw", Operands{Rd: 30, K: 0x3f}, []uint16{0x97ff}, "sbiw r30, 0x3f"},
		{"ldd.y", Operands{Rd: 24, Q: 5}, []uint16{0x818d}, "ldd r24, Y+5"},
		{"std.z", Operands{Rd: 1, Q: 63}, []uint16{0xae17}, "std Z+63, r1"},
		{"movw", Operands{Rd: 24, Rr: 30}, []uint16{0x01cf}, "movw r24, r30"},
		{"muls", Operands{Rd: 16, Rr: 31}, []uint16{0x020f}, "muls r16, r31"},
		{"mulsu", Operands{Rd: 23, Rr: 16}, []uint16{0x0370}, "mulsu r23, r16"},
		{"sbi", Operands{A: 5, B: 3}, []uint16{0x9a2b}, "sbi 0x05, 3"},
		{"bset", Operands{S: 7}, []uint16{0x9478}, "bset 7"},
		{"bclr", Operands{S: 0}, []uint16{0x9488}, "bclr 0"},
		{"bst", Operands{Rd: 3, B: 7}, []uint16{0xfa37}, "bst r3, 7"},
		{"st.x+", Operands{Rd: 16}, []uint16{0x930d}, "st X+, r16"},
		{"push", Operands{Rd: 28}, []uint16{0x93cf}, "push r28"},
		{"des", Operands{K: 15}, []uint16{0x94fb}, "des 0x0f"},
		{"ret", Operands{}, []uint16{0x9508}, "ret"},
	}

	for _, entry := range table {
		enc, ok := Lookup(entry.name)
		if !assert.True(ok, entry.name) {
			continue
		}

		words := enc.Make(entry.ops)
		assert.Equal(entry.words, words, entry.name)
		assert.Equal(enc, Decode(words[0]), entry.name)

		var next uint16
		if len(words) > 1 {
			next = words[1]
		}
		assert.Equal(entry.ops, enc.Operands(words[0], next), entry.name)
		assert.Equal(entry.syntax, enc.Disassemble(words[0], next), entry.name)
	}
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	enc, ok := Lookup("nop")
	assert.True(ok)
	assert.Equal(uint16(0x0000), enc.Pattern)

	enc, ok = Lookup("xch")
	assert.False(ok)
	assert.Nil(enc)

	assert.Equal(".word 0xffff", illegal.Disassemble(0xffff, 0))
}
