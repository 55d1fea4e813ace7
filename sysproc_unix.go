//go:build linux || darwin || freebsd || netbsd || openbsd

package gupty

import "syscall"

func newSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true, Setctty: true, Ctty: 0}
}
