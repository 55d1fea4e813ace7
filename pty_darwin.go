//go:build darwin && !ios

package gupty

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

func openPTY() (master, slave *os.File, err error) {
	master, err = os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return nil, nil, err
	}

	defer func() {
		if err != nil {
			_ = master.Close()
		}
	}()

	if err = ptyIoctl(master.Fd(), unix.TIOCPTYGRANT, 0); err != nil {
		return nil, nil, fmt.Errorf("ioctl(TIOCPTYGRANT): %w", err)
	}
	if err = ptyIoctl(master.Fd(), unix.TIOCPTYUNLK, 0); err != nil {
		return nil, nil, fmt.Errorf("ioctl(TIOCPTYUNLK): %w", err)
	}

	snameBuf := make([]byte, 128)
	if err = ptyIoctl(master.Fd(), unix.TIOCPTYGNAME, uintptr(unsafe.Pointer(&snameBuf[0]))); err != nil {
		return nil, nil, fmt.Errorf("ioctl(TIOCPTYGNAME): %w", err)
	}
	sname := string(snameBuf[:cstrLen(snameBuf)])

	slave, err = os.OpenFile(sname, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, nil, err
	}

	return master, slave, nil
}
