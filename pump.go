package gupty

import (
	"bytes"
	"io"

	"golang.org/x/sys/unix"
)

// readChunkSize is the buffer size used for each individual read(2) call
// inside ReadFromFD.
const readChunkSize = 4096

// ReadFromFD issues one blocking read on fd, then drains further bytes
// with a non-blocking poll+read loop until nothing more is immediately
// available. A zero-byte read is reported as io.EOF instead of spinning.
func ReadFromFD(fd int) ([]byte, error) {
	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)

	n, err := unix.Read(fd, chunk)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, io.EOF
	}
	buf.Write(chunk[:n])

	for {
		ready, err := pollReadable(fd, 0)
		if err != nil || !ready {
			break
		}
		n, err := unix.Read(fd, chunk)
		if err != nil || n == 0 {
			break
		}
		buf.Write(chunk[:n])
	}
	return buf.Bytes(), nil
}

// WriteToFD loops over write(2) until all of b is written; short writes
// are expected and retried.
func WriteToFD(fd int, b []byte) error {
	for len(b) > 0 {
		n, err := unix.Write(fd, b)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		b = b[n:]
	}
	return nil
}

func pollReadable(fd int, timeoutMs int) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0 && fds[0].Revents&unix.POLLIN != 0, nil
}

// splitIntoKeys breaks a raw byte run from stdin into a queue of keys:
// each element is either one complete, recognized multi-byte named-key
// sequence or a single literal byte.
func splitIntoKeys(b []byte) [][]byte {
	var keys [][]byte
	for len(b) > 0 {
		n := MatchPrefix(b)
		if n == 0 {
			n = 1
		}
		keys = append(keys, b[:n])
		b = b[n:]
	}
	return keys
}

// sendToPty normalizes any '\n' in payload to '\r' before writing. It is
// idempotent: a payload with no '\n' bytes passes through unchanged on a
// repeat call.
func sendToPty(fd int, payload []byte) error {
	out := make([]byte, len(payload))
	for i, b := range payload {
		if b == '\n' {
			b = '\r'
		}
		out[i] = b
	}
	return WriteToFD(fd, out)
}

// sendToStdout gates pty output through mode: ALL passes through, NONE
// and FILTERED (reserved for future output filtering) both drop it.
func sendToStdout(fd int, payload []byte, mode OutputMode) error {
	if mode != OutputAll {
		return nil
	}
	return WriteToFD(fd, payload)
}

// KeySource returns the operator's next key, opportunistically draining
// pty output onto stdout along the way. NextKey blocks; TryNextKey is
// AUTO mode's non-blocking counterpart, a non-blocking check for stdin
// readability.
type KeySource interface {
	NextKey() ([]byte, error)
	TryNextKey() ([]byte, bool, error)
}

// idlePollTimeoutMs bounds each poll cycle inside NextKey so the early
// exit and window-resize flags (signals.go) get rechecked periodically
// instead of blocking indefinitely.
const idlePollTimeoutMs = 200

// pumpKeySource is the real KeySource, wired to the operator's stdin,
// the pty master, and the fd pty output is drained to.
type pumpKeySource struct {
	stdinFd, ptyFd, stdoutFd int
	pending                  [][]byte
	outputMode               func() OutputMode
	onIdle                   func() error
}

func newPumpKeySource(stdinFd, ptyFd, stdoutFd int, outputMode func() OutputMode, onIdle func() error) *pumpKeySource {
	return &pumpKeySource{stdinFd: stdinFd, ptyFd: ptyFd, stdoutFd: stdoutFd, outputMode: outputMode, onIdle: onIdle}
}

func (k *pumpKeySource) popPending() ([]byte, bool) {
	if len(k.pending) == 0 {
		return nil, false
	}
	key := k.pending[0]
	k.pending = k.pending[1:]
	return key, true
}

func (k *pumpKeySource) drainOnce(timeoutMs int) error {
	fds := []unix.PollFd{
		{Fd: int32(k.stdinFd), Events: unix.POLLIN},
		{Fd: int32(k.ptyFd), Events: unix.POLLIN},
	}
	if _, err := unix.Poll(fds, timeoutMs); err != nil {
		if err == unix.EINTR {
			return nil
		}
		return err
	}

	if fds[1].Revents&unix.POLLIN != 0 {
		out, err := ReadFromFD(k.ptyFd)
		if err != nil {
			return err
		}
		if err := sendToStdout(k.stdoutFd, out, k.outputMode()); err != nil {
			return err
		}
	}
	if fds[0].Revents&unix.POLLIN != 0 {
		in, err := ReadFromFD(k.stdinFd)
		if err != nil {
			return err
		}
		k.pending = append(k.pending, splitIntoKeys(in)...)
	}
	return nil
}

func (k *pumpKeySource) NextKey() ([]byte, error) {
	for {
		if key, ok := k.popPending(); ok {
			return key, nil
		}
		if k.onIdle != nil {
			if err := k.onIdle(); err != nil {
				return nil, err
			}
		}
		if err := k.drainOnce(idlePollTimeoutMs); err != nil {
			return nil, err
		}
	}
}

func (k *pumpKeySource) TryNextKey() ([]byte, bool, error) {
	if key, ok := k.popPending(); ok {
		return key, true, nil
	}
	if err := k.drainOnce(0); err != nil {
		return nil, false, err
	}
	key, ok := k.popPending()
	return key, ok, nil
}
