package gupty

import (
	"io"
	"os"
)

func newPipe() (*os.File, *os.File, error) {
	return os.Pipe()
}

func drainPipe(r *os.File) {
	_, _ = io.Copy(io.Discard, r)
}

// fakeKeySource is a scripted KeySource for dispatcher/typing tests: it
// replays a fixed queue of keys instead of ever touching a real pty or
// stdin. Exhausting the queue returns io.EOF-equivalent behavior by
// blocking forever is undesirable in a test, so NextKey instead panics
// with a clear message — a test that runs out of scripted keys has a
// bug in its own setup, not a real blocking condition to wait out.
type fakeKeySource struct {
	queue [][]byte
	auto  [][]byte // keys TryNextKey hands out, one per call, then (nil,false)
}

func (f *fakeKeySource) NextKey() ([]byte, error) {
	if len(f.queue) == 0 {
		panic("fakeKeySource: NextKey called with an empty queue")
	}
	key := f.queue[0]
	f.queue = f.queue[1:]
	return key, nil
}

func (f *fakeKeySource) TryNextKey() ([]byte, bool, error) {
	if len(f.auto) == 0 {
		return nil, false, nil
	}
	key := f.auto[0]
	f.auto = f.auto[1:]
	return key, true, nil
}

// newTestSession builds a Session with no real pty/tty resources, for
// exercising the dispatcher and typing logic in isolation. Handlers that
// touch s.master (sendToPty) are routed to an os.Pipe write end instead.
func newTestSession(keys *fakeKeySource) (*Session, func()) {
	s := &Session{
		tables:     DefaultModeTables(),
		mode:       ModeInsert,
		outputMode: OutputAll,
		autoPilot:  AutoFull,
		lineStatus: LineEmpty,
		keys:       keys,
		sig:        &signalWatcher{},
	}
	s.fns = buildCommandFns(s)

	r, w, err := newPipe()
	if err != nil {
		panic(err)
	}
	s.master = w
	cleanup := func() {
		_ = r.Close()
		_ = w.Close()
	}
	go drainPipe(r)
	return s, cleanup
}
