// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

// Arithmetic, logic and multiply handlers.

func execNop(c *Core, w uint16) (cycles int, err error) {
	cycles = 1
	return
}

// execAddCarry covers ADD and ADC.
func execAddCarry(useCarry bool) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		d, r := fieldD5(w), fieldR5(w)
		var cin byte
		if useCarry {
			cin = c.Sreg.carry()
		}
		var res byte
		res, c.Sreg = add8(c.Sreg, c.reg(d), c.reg(r), cin)
		c.setReg(d, res)
		cycles = 1
		return
	}
}

var (
	execAdd = execAddCarry(false)
	execAdc = execAddCarry(true)
)

// subtract is the common body of the register and immediate subtracts
// and compares.
func (c *Core) subtract(d int, rr byte, useCarry bool, store bool) {
	var cin byte
	if useCarry {
		cin = c.Sreg.carry()
	}
	var res byte
	res, c.Sreg = sub8(c.Sreg, c.reg(d), rr, cin, useCarry)
	if store {
		c.setReg(d, res)
	}
}

func execSub(c *Core, w uint16) (cycles int, err error) {
	c.subtract(fieldD5(w), c.reg(fieldR5(w)), false, true)
	cycles = 1
	return
}

func execSbc(c *Core, w uint16) (cycles int, err error) {
	c.subtract(fieldD5(w), c.reg(fieldR5(w)), true, true)
	cycles = 1
	return
}

func execCp(c *Core, w uint16) (cycles int, err error) {
	c.subtract(fieldD5(w), c.reg(fieldR5(w)), false, false)
	cycles = 1
	return
}

func execCpc(c *Core, w uint16) (cycles int, err error) {
	c.subtract(fieldD5(w), c.reg(fieldR5(w)), true, false)
	cycles = 1
	return
}

func execSubi(c *Core, w uint16) (cycles int, err error) {
	c.subtract(fieldHi(w), fieldK8(w), false, true)
	cycles = 1
	return
}

func execSbci(c *Core, w uint16) (cycles int, err error) {
	c.subtract(fieldHi(w), fieldK8(w), true, true)
	cycles = 1
	return
}

func execCpi(c *Core, w uint16) (cycles int, err error) {
	c.subtract(fieldHi(w), fieldK8(w), false, false)
	cycles = 1
	return
}

// execLogic covers the register forms of AND, OR and EOR.
func execLogic(op func(a, b byte) byte) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		d := fieldD5(w)
		res := op(c.reg(d), c.reg(fieldR5(w)))
		c.Sreg = logic8(c.Sreg, res)
		c.setReg(d, res)
		cycles = 1
		return
	}
}

// execLogicImm covers ANDI and ORI.
func execLogicImm(op func(a, b byte) byte) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		d := fieldHi(w)
		res := op(c.reg(d), fieldK8(w))
		c.Sreg = logic8(c.Sreg, res)
		c.setReg(d, res)
		cycles = 1
		return
	}
}

func opAnd(a, b byte) byte { return a & b }
func opOr(a, b byte) byte  { return a | b }
func opEor(a, b byte) byte { return a ^ b }

var (
	execAnd  = execLogic(opAnd)
	execOr   = execLogic(opOr)
	execEor  = execLogic(opEor)
	execAndi = execLogicImm(opAnd)
	execOri  = execLogicImm(opOr)
)

// execUnary covers the single register ALU operations.
func execUnary(op func(s Sreg, rd byte) (byte, Sreg)) Handler {
	return func(c *Core, w uint16) (cycles int, err error) {
		d := fieldD5(w)
		var res byte
		res, c.Sreg = op(c.Sreg, c.reg(d))
		c.setReg(d, res)
		cycles = 1
		return
	}
}

func execSwap(c *Core, w uint16) (cycles int, err error) {
	d := fieldD5(w)
	rd := c.reg(d)
	c.setReg(d, rd<<4|rd>>4)
	cycles = 1
	return
}

func execAdiw(c *Core, w uint16) (cycles int, err error) {
	d := fieldPair(w)
	var res uint16
	res, c.Sreg = add16(c.Sreg, c.pair(d), fieldK6(w))
	c.setPair(d, res)
	cycles = 2
	return
}

func execSbiw(c *Core, w uint16) (cycles int, err error) {
	d := fieldPair(w)
	var res uint16
	res, c.Sreg = sub16(c.Sreg, c.pair(d), fieldK6(w))
	c.setPair(d, res)
	cycles = 2
	return
}

// product stores a multiply result in r1:r0.
func (c *Core) product(res uint16) (cycles int, err error) {
	c.Sreg = mulFlags(c.Sreg, res)
	c.setPair(0, res)
	cycles = 2
	return
}

func execMul(c *Core, w uint16) (cycles int, err error) {
	rd, rr := c.reg(fieldD5(w)), c.reg(fieldR5(w))
	return c.product(uint16(rd) * uint16(rr))
}

func execMuls(c *Core, w uint16) (cycles int, err error) {
	rd, rr := c.reg(fieldHi(w)), c.reg(16+int(w&0xf))
	return c.product(uint16(int16(int8(rd)) * int16(int8(rr))))
}

func execMulsu(c *Core, w uint16) (cycles int, err error) {
	rd, rr := c.reg(16+int((w>>4)&7)), c.reg(16+int(w&7))
	return c.product(uint16(int16(int8(rd)) * int16(rr)))
}
