//go:build linux

package pool

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin binds the calling OS thread to a single logical CPU. Slot ids beyond
// the CPU count wrap around.
func Pin(cpu int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu % runtime.NumCPU())
	return unix.SchedSetaffinity(0, &set)
}
