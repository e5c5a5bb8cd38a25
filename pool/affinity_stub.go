//go:build !linux

package pool

import "errors"

// Pin reports that CPU pinning is not supported on this platform.
func Pin(int) error {
	return errors.New("pool: cpu pinning not supported on this platform")
}
