//go:build !unix

package dispatch

import "syscall"

func detachAttr() *syscall.SysProcAttr {
	return nil
}
