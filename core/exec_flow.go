// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

// Control flow handlers: jumps, calls, returns, branches and skips.

func execRjmp(c *Core, w uint16) (cycles int, err error) {
	c.PC += uint16(fieldK12(w))
	cycles = 2
	return
}

func execRcall(c *Core, w uint16) (cycles int, err error) {
	c.PushWord(c.PC)
	c.PC += uint16(fieldK12(w))
	cycles = 3
	return
}

func execJmp(c *Core, w uint16) (cycles int, err error) {
	next := c.fetch()
	c.PC = uint16(fieldK22(w, next))
	cycles = 3
	return
}

func execCall(c *Core, w uint16) (cycles int, err error) {
	next := c.fetch()
	c.PushWord(c.PC)
	c.PC = uint16(fieldK22(w, next))
	cycles = 4
	return
}

func execIjmp(c *Core, w uint16) (cycles int, err error) {
	c.PC = c.pair(REG_Z)
	cycles = 2
	return
}

func execIcall(c *Core, w uint16) (cycles int, err error) {
	c.PushWord(c.PC)
	c.PC = c.pair(REG_Z)
	cycles = 3
	return
}

func execRet(c *Core, w uint16) (cycles int, err error) {
	c.PC = c.PopWord()
	cycles = 4
	return
}

func execReti(c *Core, w uint16) (cycles int, err error) {
	c.PC = c.PopWord()
	c.Sreg.I = true
	cycles = 4
	return
}

// execBranch covers BRBS (when set) and BRBC.
func execBranch(set bool) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		cycles = 1
		if c.Sreg.Get(Flag(w&7)) == set {
			c.PC += uint16(fieldK7(w))
			cycles = 2
		}
		return
	}
}

// skip steps over the next instruction, returning the cycles that costs.
func (c *Core) skip() (cycles int) {
	words := Decode(c.memory.FlashWord(c.PC)).Words
	c.PC += uint16(words)
	cycles = words
	return
}

func execCpse(c *Core, w uint16) (cycles int, err error) {
	cycles = 1
	if c.reg(fieldD5(w)) == c.reg(fieldR5(w)) {
		cycles += c.skip()
	}
	return
}

// execSkipBit covers SBRS (when set) and SBRC.
func execSkipBit(set bool) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		cycles = 1
		if (c.reg(fieldD5(w))&(1<<fieldB(w)) != 0) == set {
			cycles += c.skip()
		}
		return
	}
}

// execSkipIo covers SBIS (when set) and SBIC.
func execSkipIo(set bool) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		cycles = 1
		if (c.ReadByte(IO_BASE+fieldA5(w))&(1<<fieldB(w)) != 0) == set {
			cycles += c.skip()
		}
		return
	}
}

var (
	execSbis = execSkipIo(true)
	execSbic = execSkipIo(false)
)

func execBreak(c *Core, w uint16) (cycles int, err error) {
	err = ErrBreak{Address: uint32(c.PC-1) << 1}
	cycles = 1
	return
}

// execIllegal rewinds to the faulting word.
func execIllegal(c *Core, w uint16) (cycles int, err error) {
	c.PC--
	err = ErrIllegal{Word: w, Address: uint32(c.PC) << 1}
	return
}

// unimplemented builds the handler of a known encoding this core does
// not execute. Like an illegal word, the PC is rewound.
func unimplemented(name string) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		c.PC--
		err = ErrUnimplemented{Name: name, Word: w, Address: uint32(c.PC) << 1}
		return
	}
}
