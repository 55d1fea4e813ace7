//go:build openbsd

package gupty

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// openPTY scans the classic BSD /dev/pty??/dev/tty?? device pairs, since
// OpenBSD's ptmx was only added recently and many base installs still
// rely on the legacy cloning scheme.
func openPTY() (master, slave *os.File, err error) {
	for i := 0; i < 256; i++ {
		masterPath := fmt.Sprintf("/dev/pty%c%x", 'p'+i/16, i%16)
		m, openErr := os.OpenFile(masterPath, os.O_RDWR, 0)
		if openErr != nil {
			continue
		}

		slavePath := fmt.Sprintf("/dev/tty%c%x", 'p'+i/16, i%16)
		s, openErr := os.OpenFile(slavePath, os.O_RDWR|unix.O_NOCTTY, 0)
		if openErr != nil {
			_ = m.Close()
			continue
		}
		return m, s, nil
	}
	return nil, nil, fmt.Errorf("gupty: out of pty devices")
}
