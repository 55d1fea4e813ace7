//go:build linux || darwin || freebsd || netbsd || openbsd

package gupty

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// spawnChild execs shell with its stdio attached to the pty slave, in a
// new session with the slave as its controlling terminal. The slave fd
// is closed in the parent once the child has it open on 0/1/2.
func spawnChild(shell string, slave *os.File) (*os.Process, error) {
	cmd := exec.Command(shell)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = slave, slave, slave
	cmd.SysProcAttr = newSysProcAttr()

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("gupty: exec %s: %w", shell, err)
	}
	_ = slave.Close()
	return cmd.Process, nil
}

// setWinsize pushes rows/cols onto the pty master. Failure here is
// tolerated by the caller (engine.go), not here — this function always
// reports the real ioctl error.
func setWinsize(fd int, rows, cols int) error {
	ws := &unix.Winsize{Row: uint16(rows), Col: uint16(cols)}
	return unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, ws)
}

func ptyIoctl(fd uintptr, op, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, op, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

func cstrLen(b []byte) int {
	for i := 0; i < len(b); i++ {
		if b[i] == 0 {
			return i
		}
	}
	return len(b)
}

// killChild sends SIGKILL to proc, ignoring the case where the process
// has already exited — teardown must be idempotent against a missing
// child.
func killChild(proc *os.Process) {
	if proc == nil {
		return
	}
	_ = proc.Signal(syscall.SIGKILL)
}
