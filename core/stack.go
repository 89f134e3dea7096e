// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

// SP returns the stack pointer.
func (c *Core) SP() uint16 {
	return c.ReadWord(SPL)
}

// SetSP sets the stack pointer.
func (c *Core) SetSP(sp uint16) {
	c.WriteWord(SPL, sp)
}

// PushByte stores a byte at the stack pointer, then decrements it.
func (c *Core) PushByte(value byte) {
	sp := c.SP()
	c.WriteByte(sp, value)
	c.SetSP(sp - 1)
}

// PopByte increments the stack pointer, then loads the byte it points to.
func (c *Core) PopByte() byte {
	sp := c.SP() + 1
	c.SetSP(sp)
	return c.ReadByte(sp)
}

// PushWord pushes the low byte, then the high byte.
func (c *Core) PushWord(value uint16) {
	c.PushByte(byte(value))
	c.PushByte(byte(value >> 8))
}

// PopWord pops the high byte, then the low byte.
func (c *Core) PopWord() uint16 {
	hi := c.PopByte()
	lo := c.PopByte()
	return uint16(lo) | uint16(hi)<<8
}
