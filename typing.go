package gupty

// typeLine drives the outer/inner typing loop shared by type_line
// (sendEnter=true) and type (sendEnter=false). The dispatcher runs
// before each character is sent so an operator backspace can rewind
// pos before the next scripted byte goes out.
func (s *Session) typeLine(text string, sendEnter bool) error {
	s.line = PartialLine{Line: text, Pos: 0}
	s.lineStatus = LineEmpty

	for {
		for s.line.Pos != len(s.line.Line) {
			if err := s.processUserInput(true); err != nil {
				return err
			}
			if s.lineStatus == LineReload {
				// A rewind that started from a LOADED line: the
				// dispatcher handed control back out instead of looping
				// on its own, so this while loop must be re-entered from
				// scratch. Clear RELOAD here — nothing else does, and
				// leaving it set would make the restarted loop break
				// again on its very next dispatch call without ever
				// emitting the rewound character.
				s.lineStatus = LineInProcess
				break
			}

			n := MatchPrefix([]byte(s.line.Line[s.line.Pos:]))
			if n == 0 {
				n = 1
			}
			chunk := s.line.Line[s.line.Pos : s.line.Pos+n]
			if err := sendToPty(int(s.master.Fd()), []byte(chunk)); err != nil {
				return err
			}
			s.line.Pos += n
			s.lineStatus = LineInProcess
		}
		if s.line.Pos != len(s.line.Line) {
			// The inner loop broke early on a reload rather than running
			// to completion: restart it fresh from the rewound pos.
			continue
		}

		s.lineStatus = LineLoaded
		if err := s.processUserInput(true); err != nil {
			return err
		}
		if s.lineStatus == LineLoaded {
			if sendEnter {
				if err := sendToPty(int(s.master.Fd()), []byte(codeEnter)); err != nil {
					return err
				}
			}
			return nil
		}
		// lineStatus is RELOAD (or EMPTY, if pos unwound all the way
		// back to the start): clear it before restarting the outer loop
		// so the re-entered while loop doesn't see a stale RELOAD on its
		// first dispatch call.
		s.lineStatus = LineInProcess
	}
}
