//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdCmd         = 0x09

	picoCalcEvPress   = 0x01
	picoCalcEvRelease = 0x03
)

// Modifier keys never dismiss on their own.
var picoCalcModifiers = map[byte]bool{
	0xA1: true, // Alt
	0xA2: true, // Left shift
	0xA3: true, // Right shift
	0xA5: true, // Ctrl
}

var picoCalcKeyCodes = map[byte]KeyCode{
	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0A: KeyEnter,
	0x0D: KeyEnter,
	0x20: KeySpace,
	0xB1: KeyEscape,
	0xB4: KeyLeft,
	0xB5: KeyUp,
	0xB6: KeyDown,
	0xB7: KeyRight,
}

type i2cKeyboard struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	// The PicoCalc keyboard sits on I2C1; some TinyGo targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		if err := bus.Configure(machine.I2CConfig{
			SCL:       machine.GP7,
			SDA:       machine.GP6,
			Frequency: 100_000,
		}); err != nil {
			continue
		}

		k := &i2cKeyboard{i2c: bus, write: [1]byte{picoCalcKbdCmd}}
		// The keyboard MCU can be slow to answer right after power-up.
		for i := 0; i < 50; i++ {
			if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err == nil {
				return k, nil
			}
			time.Sleep(10 * time.Millisecond)
		}
	}
	return nil, errors.New("I2C keyboard not responding")
}

func (k *i2cKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err != nil {
		return KeyEvent{}, false
	}
	state, key := k.read[0], k.read[1]
	if key == 0 || picoCalcModifiers[key] {
		return KeyEvent{}, false
	}

	var press bool
	switch state {
	case picoCalcEvPress:
		press = true
	case picoCalcEvRelease:
	default:
		return KeyEvent{}, false
	}

	if code, ok := picoCalcKeyCodes[key]; ok {
		return KeyEvent{Code: code, Press: press}, true
	}
	if key >= 0x20 && key < 0x7F {
		return KeyEvent{Press: press, Rune: rune(key)}, true
	}
	return KeyEvent{Code: KeyUnknown, Press: press}, true
}
