// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package core

const (
	SRAM_SIZE  = 0x10000 // Data space, in bytes.
	HOOK_SIZE  = 0x100   // Hookable window at the bottom of the data space.
	FLASH_SIZE = 0x20000 // Instruction flash, in bytes.
)

// Hook transforms the values moving through one hooked address.
//
// OnRead receives the stored value and returns the value observed by the
// load; storage is left untouched. OnWrite receives the incoming value and
// returns the value actually stored.
type Hook interface {
	OnRead(addr uint16, value byte) byte
	OnWrite(addr uint16, value byte) byte
}

// HookFuncs adapts a pair of optional functions to a Hook. A nil function
// passes the value through unchanged.
type HookFuncs struct {
	Read  func(addr uint16, value byte) byte
	Write func(addr uint16, value byte) byte
}

var _ Hook = HookFuncs{}

func (hf HookFuncs) OnRead(addr uint16, value byte) byte {
	if hf.Read == nil {
		return value
	}
	return hf.Read(addr, value)
}

func (hf HookFuncs) OnWrite(addr uint16, value byte) byte {
	if hf.Write == nil {
		return value
	}
	return hf.Write(addr, value)
}

// Memory is the unified data space plus the instruction flash.
type Memory struct {
	data  [SRAM_SIZE]byte
	flash [FLASH_SIZE]byte
	hook  [HOOK_SIZE]Hook
}

// RegisterHook installs the hook for addr. The last registration wins;
// a nil hook restores pass-through behaviour.
func (mem *Memory) RegisterHook(addr uint16, hook Hook) (err error) {
	if int(addr) >= HOOK_SIZE {
		err = ErrHookRange
		return
	}

	mem.hook[addr] = hook
	return
}

// ReadByte loads one byte, through the read hook if one is installed.
func (mem *Memory) ReadByte(addr uint16) (value byte) {
	value = mem.data[addr]
	if int(addr) < HOOK_SIZE && mem.hook[addr] != nil {
		value = mem.hook[addr].OnRead(addr, value)
	}
	return
}

// WriteByte stores one byte, after the write hook (if any) has
// transformed it.
func (mem *Memory) WriteByte(addr uint16, value byte) {
	if int(addr) < HOOK_SIZE && mem.hook[addr] != nil {
		value = mem.hook[addr].OnWrite(addr, value)
	}
	mem.data[addr] = value
}

// ReadWord loads a little-endian word as two byte reads.
func (mem *Memory) ReadWord(addr uint16) uint16 {
	lo := mem.ReadByte(addr)
	hi := mem.ReadByte(addr + 1)
	return uint16(lo) | (uint16(hi) << 8)
}

// WriteWord stores a little-endian word as two byte writes.
func (mem *Memory) WriteWord(addr uint16, value uint16) {
	mem.WriteByte(addr, byte(value))
	mem.WriteByte(addr+1, byte(value>>8))
}

// load and store bypass the hooks. Only the core uses them, to mirror
// its own state into the data space.
func (mem *Memory) load(addr uint16) byte {
	return mem.data[addr]
}

func (mem *Memory) store(addr uint16, value byte) {
	mem.data[addr] = value
}

// FlashWord returns the instruction word at a word address.
func (mem *Memory) FlashWord(index uint16) uint16 {
	addr := uint32(index) << 1
	return uint16(mem.flash[addr]) | (uint16(mem.flash[addr+1]) << 8)
}

// FlashByte returns the flash byte at addr, wrapping at the flash size.
func (mem *Memory) FlashByte(addr uint32) byte {
	return mem.flash[addr&(FLASH_SIZE-1)]
}

// LoadFlash copies data into flash starting at the byte offset.
func (mem *Memory) LoadFlash(offset int, data []byte) (err error) {
	if offset < 0 || offset+len(data) > FLASH_SIZE {
		err = ErrFlashRange
		return
	}

	copy(mem.flash[offset:], data)
	return
}

// clearWindow zeroes the hookable window without invoking hooks.
func (mem *Memory) clearWindow() {
	clear(mem.data[:HOOK_SIZE])
}
