package gupty

// UserInputMode is one of the four interchangeable input modes plus the
// terminal QUITTING state.
type UserInputMode int

const (
	ModeInsert UserInputMode = iota
	ModeCommand
	ModePassthrough
	ModeAuto
	ModeQuitting
)

func (m UserInputMode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeInsert:
		return "INSERT"
	case ModePassthrough:
		return "PASSTHROUGH"
	case ModeAuto:
		return "AUTO"
	case ModeQuitting:
		return "QUITTING"
	default:
		return "UNKNOWN"
	}
}

// OutputMode gates whether pty output reaches stdout. FILTERED is
// accepted syntactically but treated as a no-op (dropped), same as
// NONE — reserved for future filtering.
type OutputMode int

const (
	OutputAll OutputMode = iota
	OutputNone
	OutputFiltered
)

func (m OutputMode) String() string {
	switch m {
	case OutputAll:
		return "ALL"
	case OutputNone:
		return "NONE"
	case OutputFiltered:
		return "FILTERED"
	default:
		return "UNKNOWN"
	}
}

// AutoPilotMode controls whether AUTO mode blocks between fully loaded
// lines (SEMI) or streams through without waiting (FULL).
type AutoPilotMode int

const (
	AutoFull AutoPilotMode = iota
	AutoSemi
)

func (m AutoPilotMode) String() string {
	if m == AutoSemi {
		return "SEMI"
	}
	return "FULL"
}

// LineStatus tracks progress of typing one scripted line.
type LineStatus int

const (
	LineEmpty LineStatus = iota
	LineInProcess
	LineLoaded
	LineReload
)

func (s LineStatus) String() string {
	switch s {
	case LineEmpty:
		return "EMPTY"
	case LineInProcess:
		return "INPROCESS"
	case LineLoaded:
		return "LOADED"
	case LineReload:
		return "RELOAD"
	default:
		return "UNKNOWN"
	}
}

// CommandAction is the action set bound by the COMMAND mode keymap.
type CommandAction int

const (
	CommandActionNone CommandAction = iota
	CommandActionSigInt
	CommandActionSigQuit
	CommandActionQuit
	CommandActionResizeWindow
	CommandActionSwitchToInsertMode
	CommandActionSwitchToPassthroughMode
	CommandActionSwitchToAutoMode
	CommandActionTurnOffStdout
	CommandActionTurnOnStdout
	CommandActionToggleStdout
	CommandActionNextLine // reserved: bound but unimplemented
	CommandActionPrevLine // reserved: bound but unimplemented
	CommandActionReturn
)

// InsertAction is the action set bound by the INSERT mode keymap.
type InsertAction int

const (
	InsertActionNone InsertAction = iota
	InsertActionSigInt
	InsertActionSigQuit
	InsertActionBackOneCharacter
	InsertActionSwitchToCommandMode
	InsertActionReturn
	InsertActionDisabled
)

// PassthroughAction is the action set bound by the PASSTHROUGH mode
// keymap.
type PassthroughAction int

const (
	PassthroughActionNone PassthroughAction = iota
	PassthroughActionSwitchToCommandMode
)

// AutoAction is the action set bound by the AUTO mode keymap.
type AutoAction int

const (
	AutoActionNone AutoAction = iota
	AutoActionSigInt
	AutoActionSigQuit
	AutoActionSwitchToCommandMode
	AutoActionSwitchToFullAuto
	AutoActionSwitchToSemiAuto
	AutoActionReturn
)

// ModeTables holds the four per-mode keymaps the dispatcher (dispatch.go)
// consults. Built by DefaultModeTables and optionally adjusted by
// config.ModeOverrides (see config/config.go) before being handed to a
// Session.
type ModeTables struct {
	Command     *Keymap[CommandAction]
	Insert      *Keymap[InsertAction]
	Passthrough *Keymap[PassthroughAction]
	Auto        *Keymap[AutoAction]
}

// DefaultModeTables returns the built-in key bindings (listed in
// SPEC_FULL.md §4.3).
func DefaultModeTables() *ModeTables {
	cmd := NewKeymap[CommandAction](CommandActionNone)
	cmd.Bind("\x03", CommandActionSigInt)            // Ctrl-C
	cmd.Bind("\x1c", CommandActionSigQuit)           // Ctrl-\
	cmd.Bind("q", CommandActionQuit)
	cmd.Bind("\x0c", CommandActionResizeWindow) // Ctrl-L
	cmd.Bind("i", CommandActionSwitchToInsertMode)
	cmd.Bind("p", CommandActionSwitchToPassthroughMode)
	cmd.Bind("a", CommandActionSwitchToAutoMode)
	cmd.Bind("o", CommandActionTurnOffStdout)
	cmd.Bind("O", CommandActionTurnOnStdout)
	cmd.Bind("t", CommandActionToggleStdout)
	cmd.Bind("j", CommandActionNextLine)
	cmd.Bind("k", CommandActionPrevLine)
	cmd.Bind(codeEnter, CommandActionReturn)

	ins := NewKeymap[InsertAction](InsertActionNone)
	ins.Bind("\x03", InsertActionSigInt)
	ins.Bind("\x1c", InsertActionSigQuit)
	ins.Bind(codeBackspace, InsertActionBackOneCharacter)
	ins.Bind("\x01", InsertActionSwitchToCommandMode) // Ctrl-A
	ins.Bind(codeEnter, InsertActionReturn)
	ins.Bind("\x16", InsertActionDisabled) // Ctrl-V

	pass := NewKeymap[PassthroughAction](PassthroughActionNone)
	pass.Bind("\x01", PassthroughActionSwitchToCommandMode) // Ctrl-A

	auto := NewKeymap[AutoAction](AutoActionNone)
	auto.Bind("\x03", AutoActionSigInt)
	auto.Bind("\x1c", AutoActionSigQuit)
	auto.Bind("\x01", AutoActionSwitchToCommandMode)
	auto.Bind("f", AutoActionSwitchToFullAuto)
	auto.Bind("s", AutoActionSwitchToSemiAuto)
	auto.Bind(codeEnter, AutoActionReturn)

	return &ModeTables{Command: cmd, Insert: ins, Passthrough: pass, Auto: auto}
}
