package gupty

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"golang.org/x/sys/unix"
)

// signalWatcher drains SIGINT/SIGQUIT/SIGWINCH into atomic flags that the
// run loop checks at every blocking point — unwinding directly from a
// signal handler is not portable, so the handler here only ever flips a
// flag.
type signalWatcher struct {
	ch            chan os.Signal
	earlyExit     atomic.Bool
	resizePending atomic.Bool
}

func newSignalWatcher() *signalWatcher {
	w := &signalWatcher{ch: make(chan os.Signal, 8)}
	signal.Notify(w.ch, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGWINCH)
	go w.run()
	return w
}

func (w *signalWatcher) run() {
	for sig := range w.ch {
		switch sig {
		case syscall.SIGINT, syscall.SIGQUIT:
			w.earlyExit.Store(true)
		case syscall.SIGWINCH:
			w.resizePending.Store(true)
		}
	}
}

func (w *signalWatcher) stop() {
	signal.Stop(w.ch)
	close(w.ch)
}

// EarlyExitRequested reports whether SIGINT or SIGQUIT has been received
// since the watcher started, or since the last call to ClearEarlyExit.
func (w *signalWatcher) EarlyExitRequested() bool {
	return w.earlyExit.Load()
}

func (w *signalWatcher) ClearEarlyExit() {
	w.earlyExit.Store(false)
}

// TakeResizePending reports and clears whether a SIGWINCH arrived since
// the last call.
func (w *signalWatcher) TakeResizePending() bool {
	return w.resizePending.Swap(false)
}

// forwardSignal delivers sig to gupty's own process group (pid 0 in
// kill(2) terms), which includes gupty and any `run` command it started.
// The shell is not in that group: spawnChild starts it in a new session.
func forwardSignal(sig syscall.Signal) error {
	return unix.Kill(0, sig)
}
