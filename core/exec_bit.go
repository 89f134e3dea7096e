// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

// Bit and status register handlers.

func execBset(c *Core, w uint16) (cycles int, err error) {
	c.Sreg.Set(Flag((w>>4)&7), true)
	cycles = 1
	return
}

func execBclr(c *Core, w uint16) (cycles int, err error) {
	c.Sreg.Set(Flag((w>>4)&7), false)
	cycles = 1
	return
}

func execBst(c *Core, w uint16) (cycles int, err error) {
	c.Sreg.T = c.reg(fieldD5(w))&(1<<fieldB(w)) != 0
	cycles = 1
	return
}

func execBld(c *Core, w uint16) (cycles int, err error) {
	d := fieldD5(w)
	value := c.reg(d) &^ (1 << fieldB(w))
	if c.Sreg.T {
		value |= 1 << fieldB(w)
	}
	c.setReg(d, value)
	cycles = 1
	return
}

// execIoBit covers SBI (when set) and CBI.
func execIoBit(set bool) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		addr := IO_BASE + fieldA5(w)
		value := c.ReadByte(addr) &^ (1 << fieldB(w))
		if set {
			value |= 1 << fieldB(w)
		}
		c.WriteByte(addr, value)
		cycles = 2
		return
	}
}

var (
	execSbi = execIoBit(true)
	execCbi = execIoBit(false)
)
