package io

import (
	"bytes"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/avre/core"
)

func TestUsart_Attach(t *testing.T) {
	assert := assert.New(t)

	u := NewUsart(USART0, nil, nil)
	assert.ErrorIs(u.Tick(), ErrNotAttached)

	c := core.NewCore()
	assert.NoError(u.Attach(c))
	assert.ErrorIs(u.Attach(c), ErrAttached)
	assert.NoError(u.Tick())

	bad := NewUsart(UsartConfig{UDR: 0x100}, nil, nil)
	assert.ErrorIs(bad.Attach(core.NewCore()), core.ErrHookRange)
}

func TestUsart_Transmit(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	u := NewUsart(USART0, nil, output)
	c := core.NewCore()
	assert.NoError(u.Attach(c))

	assert.Equal(UCSRA_UDRE, c.ReadByte(USART0.UCSRA))

	// Transmitter disabled: the write is stored, not sent.
	c.WriteByte(USART0.UDR, 'x')
	assert.NoError(u.Tick())
	assert.Equal(0, output.Len())
	assert.Equal(UCSRA_UDRE, c.ReadByte(USART0.UCSRA))

	c.WriteByte(USART0.UCSRB, UCSRB_TXEN|UCSRB_TXCIE|UCSRB_UDRIE)
	assert.Equal(UCSRB_TXEN|UCSRB_TXCIE|UCSRB_UDRIE, c.ReadByte(USART0.UCSRB))

	c.WriteByte(USART0.UDR, 'A')
	assert.Equal(byte(0), c.ReadByte(USART0.UCSRA)&UCSRA_UDRE)

	// A second write while the register is full is dropped.
	c.WriteByte(USART0.UDR, 'B')

	assert.NoError(u.Tick())
	assert.Equal("A", output.String())
	assert.Equal(UCSRA_TXC|UCSRA_UDRE, c.ReadByte(USART0.UCSRA))
	assert.Equal(uint32(1<<USART0.TXC|1<<USART0.DRE), c.Pending())

	assert.NoError(u.Tick())
	assert.Equal("A", output.String())

	c.WriteByte(USART0.UCSRA, UCSRA_TXC)
	assert.Equal(UCSRA_UDRE, c.ReadByte(USART0.UCSRA))
}

func TestUsart_Receive(t *testing.T) {
	assert := assert.New(t)

	u := NewUsart(USART0, strings.NewReader("hi"), nil)
	c := core.NewCore()
	assert.NoError(u.Attach(c))

	c.WriteByte(USART0.UCSRB, UCSRB_RXEN|UCSRB_RXCIE)

	received := func() bool {
		assert.NoError(u.Tick())
		return c.ReadByte(USART0.UCSRA)&UCSRA_RXC != 0
	}

	for _, expected := range []byte("hi") {
		assert.Eventually(received, time.Second, time.Millisecond)
		assert.Equal(uint32(1<<USART0.RXC), c.Pending())
		assert.Equal(expected, c.ReadByte(USART0.UDR))
		assert.Equal(byte(0), c.ReadByte(USART0.UCSRA)&UCSRA_RXC)
		c.Reset()
		c.WriteByte(USART0.UCSRB, UCSRB_RXEN|UCSRB_RXCIE)
	}

	assert.Never(received, 50*time.Millisecond, time.Millisecond)
}

func TestUsart_Reset(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	u := NewUsart(USART0, strings.NewReader("r"), output)
	c := core.NewCore()
	assert.NoError(u.Attach(c))

	c.WriteByte(USART0.UCSRB, UCSRB_RXEN|UCSRB_TXEN)
	assert.Eventually(func() bool {
		assert.NoError(u.Tick())
		return c.ReadByte(USART0.UCSRA)&UCSRA_RXC != 0
	}, time.Second, time.Millisecond)
	c.WriteByte(USART0.UDR, 'A')

	c.Reset()
	u.Reset()

	assert.Equal(byte(0), c.ReadByte(USART0.UCSRB))
	assert.Equal(UCSRA_UDRE, c.ReadByte(USART0.UCSRA))
	assert.Equal(byte(0), c.ReadByte(USART0.UDR))

	// Nothing pending goes out once re-enabled.
	c.WriteByte(USART0.UCSRB, UCSRB_TXEN)
	assert.NoError(u.Tick())
	assert.Equal(0, output.Len())
}

func TestUsart_Close(t *testing.T) {
	assert := assert.New(t)

	assert.ErrorIs(NewUsart(USART0, nil, nil).Close(), ErrNotAttached)

	baseline := runtime.NumGoroutine()

	c := core.NewCore()
	for range 10 {
		// More input than the receiver buffers.
		u := NewUsart(USART0, bytes.NewReader(make([]byte, 4*USART_INPUT_DEPTH)), nil)
		assert.NoError(u.Attach(c))
		assert.NoError(u.Close())
		assert.ErrorIs(u.Close(), ErrNotAttached)
		assert.ErrorIs(u.Tick(), ErrNotAttached)
	}

	assert.Eventually(func() bool {
		return runtime.NumGoroutine() <= baseline
	}, time.Second, time.Millisecond)

	// The hooks are gone; UCSRB is plain storage again.
	c.WriteByte(USART0.UCSRB, UCSRB_RXEN)
	assert.Equal(UCSRB_RXEN, c.ReadByte(USART0.UCSRB))
	assert.Equal(byte(0), c.ReadByte(USART0.UCSRA))
}

func TestUsart_Defines(t *testing.T) {
	assert := assert.New(t)

	u := NewUsart(USART0, nil, nil)
	defines := map[string]string{}
	for k, v := range u.Defines() {
		defines[k] = v
	}

	assert.Equal("0xc6", defines["USART0_UDR"])
	assert.Equal("18", defines["USART0_RX_VECT"])
	assert.Equal("0x10", defines["RXEN"])
}
