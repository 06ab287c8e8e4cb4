//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var hostKeyCodes = map[ebiten.Key]KeyCode{
	ebiten.KeyArrowUp:    KeyUp,
	ebiten.KeyArrowDown:  KeyDown,
	ebiten.KeyArrowLeft:  KeyLeft,
	ebiten.KeyArrowRight: KeyRight,
	ebiten.KeyEnter:      KeyEnter,
	ebiten.KeyEscape:     KeyEscape,
	ebiten.KeyBackspace:  KeyBackspace,
	ebiten.KeyTab:        KeyTab,
	ebiten.KeySpace:      KeySpace,
}

// poll forwards this tick's key transitions. Keys without a KeyCode are
// reported as KeyUnknown so that any key can dismiss the display.
func (k *hostKeyboard) poll() {
	for _, key := range inpututil.AppendJustPressedKeys(nil) {
		k.emit(KeyEvent{Code: hostKeyCodes[key], Press: true})
	}
	for _, key := range inpututil.AppendJustReleasedKeys(nil) {
		k.emit(KeyEvent{Code: hostKeyCodes[key], Press: false})
	}
}
