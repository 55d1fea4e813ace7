package gupty

import "strings"

// Recognized script command names.
const (
	cmdNote                = "note"
	cmdSkip                = "skip"
	cmdResume              = "resume"
	cmdSetMode             = "set_mode"
	cmdPause               = "pause"
	cmdOutput              = "output"
	cmdExit                = "exit"
	cmdRun                 = "run"
	cmdWaitForAnyKey       = "wait_for_any_key"
	cmdPasteKeys           = "paste_keys"
	cmdPasteKey            = "paste_key"
	cmdTypeKeys            = "type_keys"
	cmdTypeKey             = "type_key"
	cmdWaitForEnter        = "wait_for_enter"
	cmdWaitForAndSendEnter = "wait_for_and_send_enter"
	cmdPaste               = "paste"
	cmdPasteLine           = "paste_line"
	cmdTypeLine            = "type_line"
	cmdType                = "type"
	cmdInclude             = "include"
)

const (
	modeInsertArg      = "insert"
	modeCommandArg     = "command"
	modePassthroughArg = "passthrough"
	modeAutoArg        = "auto"

	outputAllArg  = "all"
	outputNoneArg = "none"
)

// Command is one parsed script line: a recognized command name plus the
// remainder of the line (possibly empty). Immutable once constructed.
type Command struct {
	Name string
	Arg  string
}

// CommandList is the resolved, flattened sequence of Commands a script
// (and its transitively included files) expands to.
type CommandList []Command

// LineReader reads a script file (or any text file named by an include)
// into its trimmed, non-terminator-split lines. gupty/script.ReadLines
// implements this signature; ResolveCommands never touches the
// filesystem directly — it only ever calls back through this value.
type LineReader func(path string) ([]string, error)

// ResolveCommands parses the lines produced by reading path (via read)
// into a flattened CommandList, recursively splicing in `include`
// targets depth-first. Empty lines and lines starting with '#' are
// skipped, the first space splits name from arg, and an unrecognized
// command name fails the whole resolution.
func ResolveCommands(read LineReader, path string) (CommandList, error) {
	lines, err := read(path)
	if err != nil {
		return nil, err
	}
	return resolveLines(read, lines)
}

func resolveLines(read LineReader, lines []string) (CommandList, error) {
	var out CommandList
	for _, line := range lines {
		if line == "" || line[0] == '\x00' || line[0] == '#' {
			continue
		}

		name, arg := splitCommandLine(line)
		if !isKnownCommand(name) {
			return nil, &ErrUnknownCommand{Name: name}
		}

		if name == cmdInclude {
			sub, err := ResolveCommands(read, arg)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
			continue
		}

		out = append(out, Command{Name: name, Arg: arg})
	}
	return out, nil
}

func splitCommandLine(line string) (name, arg string) {
	if i := strings.IndexByte(line, ' '); i >= 0 {
		return line[:i], line[i+1:]
	}
	return line, ""
}

// knownCommands lists every command name resolveLines will accept,
// including the include directive itself and both alias spellings of
// paste_key(s)/type_key(s).
var knownCommands = map[string]bool{
	cmdNote: true, cmdSkip: true, cmdResume: true, cmdSetMode: true,
	cmdPause: true, cmdOutput: true, cmdExit: true, cmdRun: true,
	cmdWaitForAnyKey: true, cmdPasteKeys: true, cmdPasteKey: true,
	cmdTypeKeys: true, cmdTypeKey: true, cmdWaitForEnter: true,
	cmdWaitForAndSendEnter: true, cmdPaste: true, cmdPasteLine: true,
	cmdTypeLine: true, cmdType: true, cmdInclude: true,
}

func isKnownCommand(name string) bool {
	return knownCommands[name]
}

// CommandFn is the signature every script command handler satisfies: it
// receives the remainder of the line after the command name and runs
// the corresponding Session action.
type CommandFn func(arg string) error

// buildCommandFns wires every known command name to its Session handler
// method. paste_key/paste_keys and type_key/type_keys are alias
// spellings sharing one handler value rather than two separate
// implementations.
func buildCommandFns(s *Session) map[string]CommandFn {
	return map[string]CommandFn{
		cmdNote:                s.handleNote,
		cmdSkip:                s.handleSkip,
		cmdResume:              s.handleResume,
		cmdSetMode:             s.handleSetMode,
		cmdPause:               s.handlePause,
		cmdOutput:              s.handleOutput,
		cmdExit:                s.handleExit,
		cmdRun:                 s.handleRun,
		cmdWaitForAnyKey:       s.handleWaitForAnyKey,
		cmdPasteKeys:           s.handlePasteKeys,
		cmdPasteKey:            s.handlePasteKeys,
		cmdTypeKeys:            s.handleTypeKeys,
		cmdTypeKey:             s.handleTypeKeys,
		cmdWaitForEnter:        s.handleWaitForEnter,
		cmdWaitForAndSendEnter: s.handleWaitForAndSendEnter,
		cmdPaste:               s.handlePaste,
		cmdPasteLine:           s.handlePasteLine,
		cmdTypeLine:            s.handleTypeLine,
		cmdType:                s.handleType,
	}
}
