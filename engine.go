package gupty

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"
)

// PartialLine is the line currently being typed by typeLine,
// with Pos the byte offset of the next scripted character to emit.
type PartialLine struct {
	Line string
	Pos  int
}

// Session is the engine: it owns the pty master, the child shell, the
// mode/output/autopilot state, the script cursor, and the partial-line
// state, and drives the I/O pump and the user-input dispatcher. It is
// used from a single goroutine; the only other goroutine in the
// process is the signalWatcher's signal drain loop.
type Session struct {
	shell       string
	monitorPath string

	master    *os.File
	child     *os.Process
	termState *term.State
	monitor   *os.File

	tables *ModeTables
	fns    map[string]CommandFn

	mode       UserInputMode
	outputMode OutputMode
	autoPilot  AutoPilotMode
	lineStatus LineStatus
	line       PartialLine
	skipping   bool

	commands CommandList
	current  int

	keys KeySource
	sig  *signalWatcher
	log  *slog.Logger

	autoPilotPauseMS int
}

// NewSession builds a Session in its pre-Init state: mode INSERT,
// output ALL, autopilot FULL.
func NewSession(shell, monitorPath string, tables *ModeTables, log *slog.Logger) *Session {
	if tables == nil {
		tables = DefaultModeTables()
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		shell:            shell,
		monitorPath:      monitorPath,
		tables:           tables,
		mode:             ModeInsert,
		outputMode:       OutputAll,
		autoPilot:        AutoFull,
		lineStatus:       LineEmpty,
		log:              log,
		autoPilotPauseMS: 100,
	}
	s.fns = buildCommandFns(s)
	return s
}

func resolveShell(configured string) string {
	if configured != "" {
		return configured
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "sh"
}

// Init opens the monitor file, opens the pty and starts the shell on it,
// snapshots and raw-modes the tty, and syncs the window size. It fails
// atomically: on any error it releases what the earlier steps acquired.
func (s *Session) Init() (err error) {
	defer func() {
		if err == nil {
			return
		}
		killChild(s.child)
		s.child = nil
		if s.master != nil {
			_ = s.master.Close()
			s.master = nil
		}
		if s.monitor != nil {
			_ = s.monitor.Close()
			s.monitor = nil
		}
	}()

	if s.monitorPath != "" {
		f, err := os.OpenFile(s.monitorPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("gupty: open monitor file: %w", err)
		}
		s.monitor = f
	}

	master, slave, err := openPTY()
	if err != nil {
		return fmt.Errorf("gupty: open pty: %w", err)
	}
	s.master = master

	proc, err := spawnChild(resolveShell(s.shell), slave)
	if err != nil {
		_ = slave.Close()
		return err
	}
	s.child = proc

	st, err := makeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("gupty: make raw: %w", err)
	}
	s.termState = st

	if rows, cols, err := windowSize(int(os.Stdin.Fd())); err != nil {
		s.log.Debug("query terminal window size failed", "error", err)
	} else if err := setWinsize(int(s.master.Fd()), rows, cols); err != nil {
		s.log.Debug("set pty window size failed", "error", err)
	}

	s.sig = newSignalWatcher()
	s.keys = newPumpKeySource(int(os.Stdin.Fd()), int(s.master.Fd()), int(os.Stdout.Fd()), func() OutputMode { return s.outputMode }, s.idleCheck)
	return nil
}

// idleCheck is polled by the key source on every idle poll cycle: it
// turns a pending SIGINT/SIGQUIT into an abort, and a pending SIGWINCH
// into a window-size resync, without consuming an operator key.
func (s *Session) idleCheck() error {
	if s.sig.EarlyExitRequested() {
		return ErrEarlyExit
	}
	if s.sig.TakeResizePending() {
		if rows, cols, err := windowSize(int(os.Stdin.Fd())); err == nil {
			_ = setWinsize(int(s.master.Fd()), rows, cols)
		}
	}
	return nil
}

func (s *Session) fetchKey() ([]byte, error) {
	return s.keys.NextKey()
}

// Close tears the session down: mark QUITTING, close the pty master,
// restore the tty, and kill the child. Idempotent against a missing
// child; safe to call after a partially failed Init.
func (s *Session) Close() error {
	s.mode = ModeQuitting
	s.refreshMonitor()

	if s.sig != nil {
		s.sig.stop()
	}

	var firstErr error
	if s.master != nil {
		if err := s.master.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.termState != nil {
		if err := restoreTerm(int(os.Stdin.Fd()), s.termState); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	killChild(s.child)
	if s.monitor != nil {
		_ = s.monitor.Close()
	}
	return firstErr
}

// Run executes the top-level loop over commands.
func (s *Session) Run(commands CommandList) error {
	s.commands = commands
	s.current = 0

	for s.current < len(s.commands) {
		if s.sig.EarlyExitRequested() {
			return ErrEarlyExit
		}

		cmd := s.commands[s.current]

		if s.skipping {
			if cmd.Name == cmdResume {
				if err := s.handleResume(cmd.Arg); err != nil {
					return err
				}
			}
			s.current++
			continue
		}

		s.refreshMonitor()
		fn, ok := s.fns[cmd.Name]
		if !ok {
			return &ErrUnknownCommand{Name: cmd.Name}
		}
		err := fn(cmd.Arg)
		s.refreshMonitor()
		if err != nil {
			return err
		}

		if s.lineStatus == LineReload {
			continue // current is frozen; the handler restarts the line on re-entry
		}
		s.current++
	}

	if s.mode != ModeAuto {
		s.mode = ModePassthrough
		if err := s.handleWaitForEnter(""); err != nil {
			return err
		}
	}
	return ErrNormalExit
}

func (s *Session) sleep(d time.Duration) error {
	deadline := time.Now().Add(d)
	for {
		if s.sig != nil && s.sig.EarlyExitRequested() {
			return ErrEarlyExit
		}
		remaining := deadline.Sub(time.Now())
		if remaining <= 0 {
			return nil
		}
		step := remaining
		if step > 50*time.Millisecond {
			step = 50 * time.Millisecond
		}
		time.Sleep(step)
	}
}

// --- command handlers ---

func (s *Session) handleNote(arg string) error { return nil }

func (s *Session) handleSkip(arg string) error {
	s.skipping = true
	return nil
}

func (s *Session) handleResume(arg string) error {
	s.skipping = false
	return nil
}

func (s *Session) handleSetMode(arg string) error {
	switch arg {
	case modeInsertArg:
		s.mode = ModeInsert
	case modeCommandArg:
		s.mode = ModeCommand
	case modePassthroughArg:
		s.mode = ModePassthrough
	case modeAutoArg:
		s.mode = ModeAuto
	default:
		return fmt.Errorf("gupty: set_mode: unknown mode %q", arg)
	}
	return nil
}

func (s *Session) handlePause(arg string) error {
	ms, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return fmt.Errorf("gupty: pause: %w", err)
	}
	return s.sleep(time.Duration(ms) * time.Millisecond)
}

func (s *Session) handleOutput(arg string) error {
	switch arg {
	case outputAllArg:
		s.outputMode = OutputAll
	case outputNoneArg:
		s.outputMode = OutputNone
	default:
		return fmt.Errorf("gupty: output: unknown mode %q", arg)
	}
	return nil
}

func (s *Session) handleExit(arg string) error { return ErrNormalExit }

func (s *Session) handleRun(arg string) error {
	outFile, err := os.OpenFile(".gupty-run.out", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("gupty: run: %w", err)
	}
	defer outFile.Close()

	errFile, err := os.OpenFile(".gupty-run.err", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("gupty: run: %w", err)
	}
	defer errFile.Close()

	cmd := exec.Command("sh", "-c", arg)
	cmd.Stdout = outFile
	cmd.Stderr = errFile
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("gupty: run %q: %w", arg, err)
	}
	return nil
}

func (s *Session) handleWaitForAnyKey(arg string) error {
	s.line = PartialLine{}
	s.lineStatus = LineEmpty
	return s.processUserInput(true)
}

func (s *Session) handleWaitForEnter(arg string) error {
	s.line = PartialLine{}
	s.lineStatus = LineLoaded
	// dispatchInsert keeps waiting on its own for a no-op backspace
	// against this empty line (applyBackspace never rewinds past pos 0),
	// so the only way out of this call is a Return (in whichever mode
	// is active by then) or an error; a mode switch restarts the wait
	// under the new mode.
	return s.processUserInput(true)
}

func (s *Session) handleWaitForAndSendEnter(arg string) error {
	if err := s.handleWaitForEnter(arg); err != nil {
		return err
	}
	return s.handlePasteKeys(KeyEnter)
}

func (s *Session) handlePaste(arg string) error {
	return sendToPty(int(s.master.Fd()), []byte(arg))
}

func (s *Session) handlePasteLine(arg string) error {
	if err := s.handlePaste(arg); err != nil {
		return err
	}
	return s.handlePasteKeys(KeyEnter)
}

func (s *Session) handlePasteKeys(arg string) error {
	for _, name := range strings.Fields(arg) {
		code, ok := CodeFor(name)
		if !ok {
			// unknown key name - just ignore
			continue
		}
		if err := sendToPty(int(s.master.Fd()), []byte(code)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) handleTypeKeys(arg string) error {
	for _, name := range strings.Fields(arg) {
		code, ok := CodeFor(name)
		if !ok {
			// unknown key name - just ignore
			continue
		}
		if err := s.processUserInput(false); err != nil {
			return err
		}
		if err := sendToPty(int(s.master.Fd()), []byte(code)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) handleTypeLine(arg string) error { return s.typeLine(arg, true) }
func (s *Session) handleType(arg string) error     { return s.typeLine(arg, false) }
