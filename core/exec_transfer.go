// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

// Data transfer handlers.

// IndexMode is the pointer update of an indirect load or store.
type IndexMode int

const (
	PLAIN    = IndexMode(0) // Pointer unchanged.
	POST_INC = IndexMode(1) // Access, then increment the pointer.
	PRE_DEC  = IndexMode(2) // Decrement the pointer, then access.
)

// indirect returns the data address for an indirect access through the
// pointer pair at index, applying the pointer update.
func (c *Core) indirect(index int, mode IndexMode) (addr uint16) {
	addr = c.pair(index)
	switch mode {
	case POST_INC:
		c.setPair(index, addr+1)
	case PRE_DEC:
		addr--
		c.setPair(index, addr)
	}
	return
}

func execMov(c *Core, w uint16) (cycles int, err error) {
	c.setReg(fieldD5(w), c.reg(fieldR5(w)))
	cycles = 1
	return
}

func execMovw(c *Core, w uint16) (cycles int, err error) {
	d, r := 2*int((w>>4)&0xf), 2*int(w&0xf)
	c.setReg(d, c.reg(r))
	c.setReg(d+1, c.reg(r+1))
	cycles = 1
	return
}

func execLdi(c *Core, w uint16) (cycles int, err error) {
	c.setReg(fieldHi(w), fieldK8(w))
	cycles = 1
	return
}

func execLd(index int, mode IndexMode) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		addr := c.indirect(index, mode)
		c.setReg(fieldD5(w), c.ReadByte(addr))
		cycles = 2
		return
	}
}

func execSt(index int, mode IndexMode) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		d := fieldD5(w)
		value := c.reg(d)
		addr := c.indirect(index, mode)
		c.WriteByte(addr, value)
		cycles = 2
		return
	}
}

func execLdd(index int) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		addr := c.pair(index) + fieldQ(w)
		c.setReg(fieldD5(w), c.ReadByte(addr))
		cycles = 2
		return
	}
}

func execStd(index int) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		addr := c.pair(index) + fieldQ(w)
		c.WriteByte(addr, c.reg(fieldD5(w)))
		cycles = 2
		return
	}
}

func execLds(c *Core, w uint16) (cycles int, err error) {
	addr := c.fetch()
	c.setReg(fieldD5(w), c.ReadByte(addr))
	cycles = 2
	return
}

func execSts(c *Core, w uint16) (cycles int, err error) {
	addr := c.fetch()
	c.WriteByte(addr, c.reg(fieldD5(w)))
	cycles = 2
	return
}

// execLpm covers LPM and ELPM. The operand-less forms load r0.
// ELPM extends Z with RAMPZ, and its post-increment carries into RAMPZ.
func execLpm(extended bool, postInc bool) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		d := 0
		if w&0xfe00 == 0x9000 {
			d = fieldD5(w)
		}

		addr := uint32(c.pair(REG_Z))
		if extended {
			addr |= uint32(c.ReadByte(RAMPZ)) << 16
		}

		c.setReg(d, c.memory.FlashByte(addr))

		if postInc {
			addr++
			c.setPair(REG_Z, uint16(addr))
			if extended {
				c.WriteByte(RAMPZ, byte(addr>>16))
			}
		}

		cycles = 3
		return
	}
}

func execIn(c *Core, w uint16) (cycles int, err error) {
	c.setReg(fieldD5(w), c.ReadByte(IO_BASE+fieldA6(w)))
	cycles = 1
	return
}

func execOut(c *Core, w uint16) (cycles int, err error) {
	c.WriteByte(IO_BASE+fieldA6(w), c.reg(fieldD5(w)))
	cycles = 1
	return
}

func execPush(c *Core, w uint16) (cycles int, err error) {
	c.PushByte(c.reg(fieldD5(w)))
	cycles = 2
	return
}

func execPop(c *Core, w uint16) (cycles int, err error) {
	c.setReg(fieldD5(w), c.PopByte())
	cycles = 2
	return
}
