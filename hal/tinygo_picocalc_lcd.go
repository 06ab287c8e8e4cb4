//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

// ILI9488 commands used by the driver.
const (
	ili9488CASET  = 0x2A
	ili9488PASET  = 0x2B
	ili9488RAMWR  = 0x2C
	ili9488SLPOUT = 0x11
	ili9488DISPON = 0x29
)

type ili9488Cmd struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// ili9488Init configures the PicoCalc panel for 16bpp RGB565 in the carrier's
// mirrored, BGR-ordered wiring.
var ili9488Init = []ili9488Cmd{
	{cmd: 0xC0, data: []byte{0x17, 0x15}},             // PWCTRL1
	{cmd: 0xC1, data: []byte{0x41}},                   // PWCTRL2
	{cmd: 0xC5, data: []byte{0x00, 0x12, 0x80, 0x40}}, // VMCTRL
	{cmd: 0x3A, data: []byte{0x55}},                   // COLMOD 16bpp
	{cmd: 0xB1, data: []byte{0xA0, 0x11}},             // FRMCTRL1
	{cmd: 0xB6, data: []byte{0x02, 0x22, 0x27}},       // DISCTRL, 320 lines
	{cmd: 0x21},                                       // INVON
	{cmd: 0x36, data: []byte{0x40 | 0x04 | 0x08}},     // MADCTL MX|MH|BGR
	{cmd: ili9488SLPOUT, delay: 120 * time.Millisecond},
	{cmd: ili9488DISPON},
}

type ili9488 struct {
	spi machine.SPI
	cs  machine.Pin
	dc  machine.Pin
	rst machine.Pin

	txBuf []byte
}

func initILI9488() (*ili9488, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}

	if err := machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: 40_000_000,
	}); err != nil {
		return nil, err
	}

	lcd := &ili9488{
		spi:   *machine.SPI1,
		cs:    machine.GP13,
		dc:    machine.GP14,
		rst:   machine.GP15,
		txBuf: make([]byte, 4096),
	}
	for _, p := range []machine.Pin{lcd.cs, lcd.dc, lcd.rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	lcd.rst.Low()
	time.Sleep(64 * time.Millisecond)
	lcd.rst.High()
	time.Sleep(140 * time.Millisecond)

	for _, c := range ili9488Init {
		lcd.cmd(c.cmd, c.data...)
		if c.delay > 0 {
			time.Sleep(c.delay)
		}
	}
	return lcd, nil
}

func (d *ili9488) cmd(cmd byte, data ...byte) {
	d.cs.Low()
	d.dc.Low()
	d.spi.Tx([]byte{cmd}, nil)
	d.dc.High()
	if len(data) > 0 {
		d.spi.Tx(data, nil)
	}
	d.cs.High()
}

// blitRows sends rows [y0, y1) of a little-endian RGB565 buffer w pixels wide.
func (d *ili9488) blitRows(buf []byte, w, y0, y1 int) error {
	if w <= 0 || y0 < 0 || y1 <= y0 || len(buf) < w*y1*2 {
		return errors.New("invalid framebuffer")
	}

	x1 := uint16(w - 1)
	d.cmd(ili9488CASET, 0, 0, byte(x1>>8), byte(x1))
	d.cmd(ili9488PASET, byte(y0>>8), byte(y0), byte((y1-1)>>8), byte(y1-1))
	d.cmd(ili9488RAMWR)

	d.cs.Low()
	d.dc.High()
	defer d.cs.High()

	chunk := d.txBuf[:len(d.txBuf)&^1]
	src := buf[w*y0*2 : w*y1*2]
	for len(src) > 0 {
		n := min(len(chunk), len(src))
		// Stored little-endian; the panel expects big-endian.
		for i := 0; i < n; i += 2 {
			chunk[i] = src[i+1]
			chunk[i+1] = src[i]
		}
		d.spi.Tx(chunk[:n], nil)
		src = src[n:]
	}
	return nil
}
