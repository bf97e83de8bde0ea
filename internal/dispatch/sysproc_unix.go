//go:build unix

package dispatch

import "syscall"

// detachAttr places the child in a new process group so it outlives the
// launcher and does not receive signals aimed at the launcher's group.
func detachAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setpgid: true}
}
