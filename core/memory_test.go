package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemory_HookOrder(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	err := mem.RegisterHook(0x40, HookFuncs{
		Read:  func(addr uint16, value byte) byte { return value * 2 },
		Write: func(addr uint16, value byte) byte { return value / 2 },
	})
	assert.NoError(err)

	mem.WriteByte(0x40, 0x64)
	assert.Equal(byte(0x32), mem.load(0x40))
	assert.Equal(byte(0x64), mem.ReadByte(0x40))
	assert.Equal(byte(0x32), mem.load(0x40))
}

func TestMemory_HookPassThrough(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	var seen []uint16
	err := mem.RegisterHook(0x41, HookFuncs{
		Write: func(addr uint16, value byte) byte {
			seen = append(seen, addr)
			return value
		},
	})
	assert.NoError(err)

	mem.WriteByte(0x41, 0x12)
	assert.Equal(byte(0x12), mem.ReadByte(0x41))
	assert.Equal([]uint16{0x41}, seen)

	err = mem.RegisterHook(0x41, nil)
	assert.NoError(err)
	mem.WriteByte(0x41, 0x13)
	assert.Equal([]uint16{0x41}, seen)
}

func TestMemory_HookRange(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.NoError(mem.RegisterHook(HOOK_SIZE-1, HookFuncs{}))
	assert.ErrorIs(mem.RegisterHook(HOOK_SIZE, HookFuncs{}), ErrHookRange)
}

func TestMemory_WordStraddle(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	var reads, writes int
	err := mem.RegisterHook(0xff, HookFuncs{
		Read: func(addr uint16, value byte) byte {
			reads++
			return value ^ 0xff
		},
		Write: func(addr uint16, value byte) byte {
			writes++
			return value ^ 0xff
		},
	})
	assert.NoError(err)

	mem.WriteWord(0xff, 0x1234)
	assert.Equal(1, writes)
	assert.Equal(byte(0x34^0xff), mem.load(0xff))
	assert.Equal(byte(0x12), mem.load(0x100))

	assert.Equal(uint16(0x1234), mem.ReadWord(0xff))
	assert.Equal(1, reads)
}

func TestMemory_Flash(t *testing.T) {
	assert := assert.New(t)

	mem := &Memory{}
	assert.NoError(mem.LoadFlash(0x10, []byte{0x01, 0xe0, 0x5a}))
	assert.Equal(uint16(0xe001), mem.FlashWord(8))
	assert.Equal(byte(0x5a), mem.FlashByte(0x12))
	assert.Equal(byte(0x5a), mem.FlashByte(FLASH_SIZE+0x12))

	assert.NoError(mem.LoadFlash(FLASH_SIZE-2, []byte{0xff, 0xff}))
	assert.ErrorIs(mem.LoadFlash(FLASH_SIZE-1, []byte{0xff, 0xff}), ErrFlashRange)
	assert.ErrorIs(mem.LoadFlash(-1, []byte{0xff}), ErrFlashRange)
}
