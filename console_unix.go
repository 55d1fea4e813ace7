//go:build linux || darwin || freebsd || netbsd || openbsd

package gupty

import (
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// makeRaw puts fd 0 into raw mode, returning the previous state so it can
// be restored on teardown. The engine only ever raw-modes its own
// stdin, never the pty slave or any other fd.
func makeRaw(fd int) (*term.State, error) {
	return term.MakeRaw(fd)
}

// restoreTerm undoes makeRaw. A nil state is a no-op, so teardown can
// call this unconditionally even if init failed before the snapshot was
// taken.
func restoreTerm(fd int, st *term.State) error {
	if st == nil {
		return nil
	}
	return term.Restore(fd, st)
}

// windowSize reports the real terminal's size in character cells.
func windowSize(fd int) (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Row), int(ws.Col), nil
}
