package gupty

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// monitorPreLines and monitorTotalLines size the windowed command-list
// view: up to monitorPreLines commands are shown before the current one,
// and monitorTotalLines commands are shown in total.
const (
	monitorPreLines   = 10
	monitorTotalLines = 30
)

// monitorWindow computes the [start, end) slice of commands to display
// around current (0-indexed) out of total, honoring monitorPreLines/
// monitorTotalLines. It takes plain integers so the boundary cases
// (short script, current near either end) can be tested without a
// Session.
func monitorWindow(total, current, nPre, nTotal int) (start, end int) {
	if total <= 0 {
		return 0, 0
	}
	if nTotal >= total {
		return 0, total
	}
	if total-current < nTotal-nPre {
		start = total - nTotal
	} else {
		start = current - nPre
		if start < 0 {
			start = 0
		}
	}
	end = start + nTotal
	if end > total {
		end = total
	}
	return start, end
}

var (
	statusQuitting    = color.New(color.BgRed, color.FgWhite)
	statusInsert      = color.New(color.BgHiGreen, color.FgBlack)
	statusCommand     = color.New(color.BgHiYellow, color.FgBlack)
	statusPassthrough = color.New(color.BgHiBlue, color.FgWhite)
	nameHighlight     = color.New(color.FgGreen)
	argHighlight      = color.New(color.Bold)
	noteArgHighlight  = color.New(color.Bold, color.FgCyan)
)

func statusLineColor(mode UserInputMode) *color.Color {
	switch mode {
	case ModeQuitting:
		return statusQuitting
	case ModeInsert:
		return statusInsert
	case ModeCommand:
		return statusCommand
	case ModePassthrough:
		return statusPassthrough
	default:
		return color.New(color.Reset)
	}
}

// refreshMonitor writes the current input mode and a windowed view of
// the command list to the monitor file. A nil monitor file (an empty
// monitor path) makes this a no-op.
func (s *Session) refreshMonitor() {
	if s.monitor == nil {
		return
	}

	var b strings.Builder
	b.WriteString("\x1b[2J\x1b[H")

	sc := statusLineColor(s.mode)
	b.WriteString(sc.Sprintf("Input mode: "))
	b.WriteString(color.New(color.Bold).Sprint(s.mode.String()))
	b.WriteString("\n\n")

	total := len(s.commands)
	digits := len(fmt.Sprintf("%d", total))
	start, end := monitorWindow(total, s.current, monitorPreLines, monitorTotalLines)

	for i := start; i < end; i++ {
		cmd := s.commands[i]
		marker := "     "
		if i == s.current {
			marker = " --> "
		}
		name := nameHighlight.Sprint(cmd.Name)
		arg := argHighlight
		if cmd.Name == cmdNote {
			arg = noteArgHighlight
		}
		fmt.Fprintf(&b, "%s%*d: %s %s\n", marker, digits, i+1, name, arg.Sprint(cmd.Arg))
	}

	fmt.Fprintf(&b, "\nTotal lines: %d\n", total)
	_, _ = s.monitor.WriteString(b.String())
}
