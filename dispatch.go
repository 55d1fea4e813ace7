package gupty

import (
	"os"
	"syscall"
	"time"
)

// processUserInput loops over whichever per-mode dispatcher is active; a
// mode switch inside a dispatcher causes it to restart under the new
// mode within this same call, so callers only ever see processUserInput
// return once an exit condition — not a mode switch — actually fires.
func (s *Session) processUserInput(permitBackspace bool) error {
	for {
		var restart bool
		var err error
		switch s.mode {
		case ModeCommand:
			restart, err = s.dispatchCommand()
		case ModeInsert:
			restart, err = s.dispatchInsert(permitBackspace)
		case ModePassthrough:
			restart, err = s.dispatchPassthrough()
		case ModeAuto:
			restart, err = s.dispatchAuto()
		default:
			return nil
		}
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
	}
}

func (s *Session) dispatchCommand() (restart bool, err error) {
	for {
		if s.sig.EarlyExitRequested() {
			return false, ErrEarlyExit
		}
		key, err := s.fetchKey()
		if err != nil {
			return false, err
		}
		switch s.tables.Command.Get(string(key)) {
		case CommandActionSigInt:
			_ = forwardSignal(syscall.SIGINT)
		case CommandActionSigQuit:
			_ = forwardSignal(syscall.SIGQUIT)
		case CommandActionQuit:
			return false, ErrEarlyExit
		case CommandActionResizeWindow:
			if rows, cols, werr := windowSize(int(os.Stdin.Fd())); werr == nil {
				_ = setWinsize(int(s.master.Fd()), rows, cols)
			}
		case CommandActionSwitchToInsertMode:
			s.mode = ModeInsert
			return true, nil
		case CommandActionSwitchToPassthroughMode:
			s.mode = ModePassthrough
			return true, nil
		case CommandActionSwitchToAutoMode:
			s.mode = ModeAuto
			return true, nil
		case CommandActionTurnOffStdout:
			s.outputMode = OutputNone
		case CommandActionTurnOnStdout:
			s.outputMode = OutputAll
		case CommandActionToggleStdout:
			if s.outputMode == OutputAll {
				s.outputMode = OutputNone
			} else {
				s.outputMode = OutputAll
			}
		case CommandActionNextLine, CommandActionPrevLine:
			// reserved: bound but unimplemented
		case CommandActionReturn:
			return false, nil
		default:
			// unrecognized key: ignored
		}
	}
}

func (s *Session) dispatchInsert(permitBackspace bool) (restart bool, err error) {
	for {
		if s.sig.EarlyExitRequested() {
			return false, ErrEarlyExit
		}
		key, err := s.fetchKey()
		if err != nil {
			return false, err
		}
		action := s.tables.Insert.Get(string(key))

		if s.lineStatus == LineLoaded {
			switch action {
			case InsertActionBackOneCharacter, InsertActionSwitchToCommandMode,
				InsertActionReturn, InsertActionSigInt, InsertActionSigQuit:
				// handled below; every other key is ignored once the
				// line is fully emitted.
			default:
				continue
			}
		}

		switch action {
		case InsertActionSigInt:
			_ = forwardSignal(syscall.SIGINT)
		case InsertActionSigQuit:
			_ = forwardSignal(syscall.SIGQUIT)
		case InsertActionBackOneCharacter:
			if !permitBackspace {
				continue
			}
			wasLoaded := s.lineStatus == LineLoaded
			rewound := s.applyBackspace()
			switch {
			case !rewound && wasLoaded:
				// No-op backspace on an already-empty loaded line: there
				// is nothing to unload and no scripted character to fall
				// through to either, so just keep waiting for a real key
				// (e.g. Return) instead of handing control back.
				continue
			case !rewound:
				// Nothing typed yet to rewind: the key is ignored unless
				// the next scripted byte is itself a backspace, which the
				// typing loop then emits.
				if s.line.Pos < len(s.line.Line) && s.line.Line[s.line.Pos] == 0x7f {
					return false, nil
				}
				continue
			case rewound && s.lineStatus != LineReload:
				// Swallowed mid-line (reached the start, or merely
				// stepped back one position while still typing): wait
				// for another key before resuming, same as the
				// original's cont=true loop.
				continue
			default:
				return false, nil
			}
		case InsertActionSwitchToCommandMode:
			s.mode = ModeCommand
			return true, nil
		case InsertActionReturn:
			return false, nil
		case InsertActionDisabled:
			// consumed, no effect
		default:
			// Not a bound action: hand control back so the typing loop
			// emits the next scripted character.
			return false, nil
		}
	}
}

func (s *Session) dispatchPassthrough() (restart bool, err error) {
	for {
		if s.sig.EarlyExitRequested() {
			return false, ErrEarlyExit
		}
		key, err := s.fetchKey()
		if err != nil {
			return false, err
		}
		if s.tables.Passthrough.Get(string(key)) == PassthroughActionSwitchToCommandMode {
			s.mode = ModeCommand
			return true, nil
		}
		if err := sendToPty(int(s.master.Fd()), key); err != nil {
			return false, err
		}
	}
}

func (s *Session) dispatchAuto() (restart bool, err error) {
	for {
		if s.sig.EarlyExitRequested() {
			return false, ErrEarlyExit
		}

		waiting := s.autoPilot == AutoSemi && s.lineStatus == LineLoaded
		if !waiting {
			key, ok, err := s.keys.TryNextKey()
			if err != nil {
				return false, err
			}
			if ok {
				switch s.tables.Auto.Get(string(key)) {
				case AutoActionSigInt:
					_ = forwardSignal(syscall.SIGINT)
				case AutoActionSigQuit:
					_ = forwardSignal(syscall.SIGQUIT)
				case AutoActionSwitchToCommandMode:
					s.mode = ModeCommand
					return true, nil
				case AutoActionSwitchToFullAuto:
					s.autoPilot = AutoFull
				case AutoActionSwitchToSemiAuto:
					s.autoPilot = AutoSemi
				case AutoActionReturn:
					return false, nil
				default:
				}
			}
		}

		if err := s.sleep(time.Duration(s.autoPilotPauseMS) * time.Millisecond); err != nil {
			return false, err
		}
	}
}

// applyBackspace implements the shared backspace semantics: it is
// called both mid-line (LineInProcess/LineEmpty) and after a line has
// fully loaded (LineLoaded). On an empty line it is a no-op (rewound
// reports false) unless the scripted byte at pos is itself a literal
// backspace, in which case the caller's normal forward path will emit
// it. rewound reports whether a character was actually un-emitted.
//
// A rewind that doesn't reach the start of the line sets INPROCESS, not
// RELOAD, when it happens mid-typing (s.lineStatus was not yet LOADED at
// entry): the typing loop is still inside its character-by-character
// while loop and simply continues from the decremented pos, exactly as
// if the line were being typed fresh from there. RELOAD is reserved for
// a rewind that starts from a fully LOADED line, which is the one case
// where control must be handed back out to typeLine's outer loop to
// re-enter the while loop at all.
func (s *Session) applyBackspace() (rewound bool) {
	if s.line.Pos == 0 {
		return false
	}
	wasLoaded := s.lineStatus == LineLoaded
	_ = sendToPty(int(s.master.Fd()), []byte{0x7f})
	s.line.Pos--
	switch {
	case s.line.Pos == 0:
		s.lineStatus = LineEmpty
	case wasLoaded:
		s.lineStatus = LineReload
	default:
		s.lineStatus = LineInProcess
	}
	return true
}
