//go:build !tinygo && !cgo

package hal

import "errors"

var errNoWindow = errors.New("hal: window backend needs cgo; rebuild with CGO_ENABLED=1 or pass -headless")

func RunWindow(_ HostConfig, _ func(h HAL) func() error) error {
	return errNoWindow
}
