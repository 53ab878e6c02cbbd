// Package process terminates the browser process tree left by the browser
// backend.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID rejects PIDs that would target the calling process group.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree force-kills pid and its children. It is best effort: the caller
// still kills the launcher afterwards.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
