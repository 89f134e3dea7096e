package core

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzStep(f *testing.F) {
	for _, enc := range Encodings() {
		f.Add(enc.Pattern, uint16(0x0100), uint8(0x00))
		f.Add(enc.Pattern|^enc.Mask, uint16(0xffff), uint8(0xff))
	}

	f.Fuzz(func(t *testing.T, word uint16, next uint16, sreg uint8) {
		assert := assert.New(t)

		c := NewCore()
		var image []byte
		image = binary.LittleEndian.AppendUint16(image, word)
		image = binary.LittleEndian.AppendUint16(image, next)
		assert.NoError(c.LoadFlash(0x200, image))

		for n := range 32 {
			c.SetRegister(n, byte(0x11*n))
		}
		c.PC = 0x100
		c.SetSP(0x0800)
		c.Sreg.SetByte(sreg &^ (1 << FLAG_I))

		enc := Decode(word)
		before := c.Sreg
		name := fmt.Sprintf("%04x %04x (%v)\n%v", word, next, enc.Disassemble(word, next), c.String())

		cycles, err := c.Step()

		// The status register byte always matches the flags.
		assert.Equal(c.Sreg.Byte(), c.ReadByte(SREG), name)
		assert.Equal(uint64(cycles), c.Cycles, name)

		switch {
		case err == nil:
			assert.GreaterOrEqual(cycles, 1, name)
			assert.LessOrEqual(cycles, 4, name)
		case errors.Is(err, ErrBreak{}):
			assert.Equal("break", enc.Name, name)
			assert.Equal(uint16(0x101), c.PC, name)
			assert.Equal(1, cycles, name)
		case errors.Is(err, ErrIllegal{}), errors.Is(err, ErrUnimplemented{}):
			assert.Equal(uint16(0x100), c.PC, name)
			assert.Equal(0, cycles, name)
			assert.Equal(before, c.Sreg, name)
		default:
			assert.NoError(err, name)
		}
	})
}
