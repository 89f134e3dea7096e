// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/avre/core"
)

// UCSRA status bits.
const (
	UCSRA_RXC  = byte(0x80) // Receive complete.
	UCSRA_TXC  = byte(0x40) // Transmit complete.
	UCSRA_UDRE = byte(0x20) // Data register empty.
)

// UCSRB control bits.
const (
	UCSRB_RXCIE = byte(0x80) // Receive complete interrupt enable.
	UCSRB_TXCIE = byte(0x40) // Transmit complete interrupt enable.
	UCSRB_UDRIE = byte(0x20) // Data register empty interrupt enable.
	UCSRB_RXEN  = byte(0x10) // Receiver enable.
	UCSRB_TXEN  = byte(0x08) // Transmitter enable.
)

// USART_INPUT_DEPTH is the number of received bytes buffered ahead of
// the receive data register.
const USART_INPUT_DEPTH = 16

// UsartConfig locates a USART in the data space and on the interrupt lines.
type UsartConfig struct {
	Name  string // Prefix of the register defines.
	UDR   uint16 // Data register.
	UCSRA uint16 // Status register.
	UCSRB uint16 // Control register.
	UCSRC uint16 // Frame format register; stored, not interpreted.
	RXC   int    // Receive complete vector.
	DRE   int    // Data register empty vector.
	TXC   int    // Transmit complete vector.
}

// USART0 is the first USART of an ATmega328P.
var USART0 = UsartConfig{
	Name:  "USART0",
	UDR:   0xc6,
	UCSRA: 0xc0,
	UCSRB: 0xc1,
	UCSRC: 0xc2,
	RXC:   18,
	DRE:   19,
	TXC:   20,
}

// Usart is a serial transceiver. Received bytes come from Input, and
// transmitted bytes go to Output; either may be nil.
//
// One byte moves in each direction per Tick.
type Usart struct {
	Verbose bool // Set to enable verbose logging.

	Config UsartConfig
	Input  io.Reader
	Output io.Writer

	core  *core.Core
	input chan byte
	done  chan struct{}

	rdr, tdr     byte
	ucsra, ucsrb byte
}

var _ Peripheral = (*Usart)(nil)
var _ core.Hook = (*Usart)(nil)

// NewUsart creates a USART with the given register map.
func NewUsart(config UsartConfig, input io.Reader, output io.Writer) (u *Usart) {
	u = &Usart{
		Config: config,
		Input:  input,
		Output: output,
	}
	return
}

// Defines returns the register addresses, vectors and bits of the USART.
func (u *Usart) Defines() iter.Seq2[string, string] {
	cf := &u.Config
	defines := map[string]string{
		cf.Name + "_UDR":       fmt.Sprintf("0x%x", cf.UDR),
		cf.Name + "_UCSRA":     fmt.Sprintf("0x%x", cf.UCSRA),
		cf.Name + "_UCSRB":     fmt.Sprintf("0x%x", cf.UCSRB),
		cf.Name + "_UCSRC":     fmt.Sprintf("0x%x", cf.UCSRC),
		cf.Name + "_RX_VECT":   fmt.Sprintf("%d", cf.RXC),
		cf.Name + "_UDRE_VECT": fmt.Sprintf("%d", cf.DRE),
		cf.Name + "_TX_VECT":   fmt.Sprintf("%d", cf.TXC),
		"RXC":                  fmt.Sprintf("0x%x", UCSRA_RXC),
		"TXC":                  fmt.Sprintf("0x%x", UCSRA_TXC),
		"UDRE":                 fmt.Sprintf("0x%x", UCSRA_UDRE),
		"RXCIE":                fmt.Sprintf("0x%x", UCSRB_RXCIE),
		"TXCIE":                fmt.Sprintf("0x%x", UCSRB_TXCIE),
		"UDRIE":                fmt.Sprintf("0x%x", UCSRB_UDRIE),
		"RXEN":                 fmt.Sprintf("0x%x", UCSRB_RXEN),
		"TXEN":                 fmt.Sprintf("0x%x", UCSRB_TXEN),
	}
	return maps.All(defines)
}

// Attach registers the USART's hooks on the core, and starts reading
// Input. The data register starts out empty.
func (u *Usart) Attach(c *core.Core) (err error) {
	if u.core != nil {
		err = ErrAttached
		return
	}

	for _, addr := range u.hooked() {
		err = c.RegisterHook(addr, u)
		if err != nil {
			return
		}
	}

	u.core = c
	u.Reset()

	if u.Input != nil {
		u.input = make(chan byte, USART_INPUT_DEPTH)
		u.done = make(chan struct{})
		go receive(u.Input, u.input, u.done, u.Verbose)
	}

	return
}

// Reset empties both data registers and disables the transceiver.
// Bytes already read from Input stay queued.
func (u *Usart) Reset() {
	u.rdr = 0
	u.tdr = 0
	u.ucsra = UCSRA_UDRE
	u.ucsrb = 0
}

// Close removes the USART's hooks and stops reading Input. A read
// already blocked on Input returns to a stopped receiver, and its byte
// is dropped.
func (u *Usart) Close() (err error) {
	if u.core == nil {
		err = ErrNotAttached
		return
	}

	for _, addr := range u.hooked() {
		err = u.core.RegisterHook(addr, nil)
		if err != nil {
			return
		}
	}

	if u.done != nil {
		close(u.done)
	}

	u.core = nil
	u.input = nil
	u.done = nil

	return
}

func (u *Usart) hooked() []uint16 {
	return []uint16{u.Config.UDR, u.Config.UCSRA, u.Config.UCSRB}
}

// receive pumps the reader into the input channel until it fails, or
// done is closed. It never touches the core.
func receive(r io.Reader, input chan<- byte, done <-chan struct{}, verbose bool) {
	defer close(input)

	var one [1]byte
	for {
		_, err := io.ReadFull(r, one[:])
		if err != nil {
			if verbose && !errors.Is(err, io.EOF) {
				log.Printf("usart: %v", err)
			}
			return
		}

		select {
		case input <- one[0]:
		case <-done:
			return
		}
	}
}

// OnRead implements core.Hook.
func (u *Usart) OnRead(addr uint16, value byte) byte {
	switch addr {
	case u.Config.UDR:
		if u.ucsrb&UCSRB_RXEN != 0 && u.ucsra&UCSRA_RXC != 0 {
			value = u.rdr
			u.ucsra &^= UCSRA_RXC
		}
	case u.Config.UCSRA:
		value |= u.ucsra
	case u.Config.UCSRB:
		value = u.ucsrb
	}
	return value
}

// OnWrite implements core.Hook.
func (u *Usart) OnWrite(addr uint16, value byte) byte {
	switch addr {
	case u.Config.UDR:
		if u.ucsrb&UCSRB_TXEN != 0 && u.ucsra&UCSRA_UDRE != 0 {
			u.tdr = value
			u.ucsra &^= UCSRA_TXC | UCSRA_UDRE
		}
	case u.Config.UCSRA:
		// Writing a one to TXC clears it.
		if value&UCSRA_TXC != 0 {
			u.ucsra &^= UCSRA_TXC
		}
		value &= 0x1f
	case u.Config.UCSRB:
		u.ucsrb = value
	}
	return value
}

// Tick moves at most one byte in each direction, raising the enabled
// interrupts.
func (u *Usart) Tick() (err error) {
	if u.core == nil {
		err = ErrNotAttached
		return
	}

	if u.ucsrb&UCSRB_RXEN != 0 && u.ucsra&UCSRA_RXC == 0 {
		select {
		case b, ok := <-u.input:
			if ok {
				if u.Verbose {
					log.Printf("usart: rx %02x", b)
				}
				u.rdr = b
				u.ucsra |= UCSRA_RXC
				err = u.raise(UCSRB_RXCIE, u.Config.RXC)
				if err != nil {
					return
				}
			} else {
				u.input = nil
			}
		default:
		}
	}

	if u.ucsrb&UCSRB_TXEN != 0 && u.ucsra&UCSRA_UDRE == 0 {
		if u.Verbose {
			log.Printf("usart: tx %02x", u.tdr)
		}
		if u.Output != nil {
			_, err = u.Output.Write([]byte{u.tdr})
			if err != nil {
				return
			}
		}
		u.ucsra |= UCSRA_TXC | UCSRA_UDRE
		err = errors.Join(u.raise(UCSRB_TXCIE, u.Config.TXC), u.raise(UCSRB_UDRIE, u.Config.DRE))
	}

	return
}

// raise signals the vector if its enable bit is set.
func (u *Usart) raise(enable byte, line int) (err error) {
	if u.ucsrb&enable == 0 {
		return
	}
	err = u.core.RaiseInterrupt(line)
	return
}
