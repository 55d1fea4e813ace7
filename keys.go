package gupty

import "bytes"

// Named keys recognized on script lines (paste_keys/paste_key/type_keys/
// type_key args) and emitted/matched against raw terminal input. Byte
// sequences are the canonical xterm encodings.
const (
	KeyEnter     = "Enter"
	KeyReturn    = "Return"
	KeyBackspace = "Backspace"
	KeyUp        = "Up"
	KeyDown      = "Down"
	KeyRight     = "Right"
	KeyLeft      = "Left"
	KeyInsert    = "Insert"
	KeyHome      = "Home"
	KeyPageUp    = "PageUp"
	KeyDelete    = "Delete"
	KeyEnd       = "End"
	KeyPageDown  = "PageDown"
)

const (
	codeEnter     = "\r"
	codeReturn    = "\r"
	codeBackspace = "\x7f"
	codeUp        = "\x1bOA"
	codeDown      = "\x1bOB"
	codeRight     = "\x1bOC"
	codeLeft      = "\x1bOD"
	codeInsert    = "\x1b[2~"
	codeHome      = "\x1bOH"
	codePageUp    = "\x1b[5~"
	codeDelete    = "\x1b[3~"
	codeEnd       = "\x1bOF"
	codePageDown  = "\x1b[6~"

	// Legacy ESC [ variants, accepted on input only (emission always uses
	// the ESC O arrow/Home/End forms and ESC [ for the others above).
	codeUpLegacy    = "\x1b[A"
	codeDownLegacy  = "\x1b[B"
	codeRightLegacy = "\x1b[C"
	codeLeftLegacy  = "\x1b[D"
	codeHomeLegacy  = "\x1b[1~"
	codeEndLegacy   = "\x1b[4~"
)

// NamedKeys maps symbolic key names to the raw byte sequence emitted for
// them, for CodeFor and for paste_keys/type_keys lookups.
var NamedKeys = map[string]string{
	KeyEnter:     codeEnter,
	KeyReturn:    codeReturn,
	KeyBackspace: codeBackspace,
	KeyUp:        codeUp,
	KeyDown:      codeDown,
	KeyRight:     codeRight,
	KeyLeft:      codeLeft,
	KeyInsert:    codeInsert,
	KeyHome:      codeHome,
	KeyPageUp:    codePageUp,
	KeyDelete:    codeDelete,
	KeyEnd:       codeEnd,
	KeyPageDown:  codePageDown,
}

// CodeFor returns the byte sequence for a named key and whether it was
// found.
func CodeFor(name string) (string, bool) {
	code, ok := NamedKeys[name]
	return code, ok
}

// namedSequences lists every byte sequence recognized on *input* —
// the emission set above plus the legacy ESC [ arrow/Home/End forms —
// ordered by decreasing length, then lexicographically, so that
// MatchPrefix is deterministic: a 4-byte sequence like "\x1b[3~" is
// tried before any 3-byte sequence that happens to be one of its
// prefixes.
var namedSequences = buildNamedSequences()

func buildNamedSequences() []string {
	seqs := []string{
		codeBackspace,
		codeUp, codeDown, codeRight, codeLeft,
		codeInsert, codeHome, codePageUp, codeDelete, codeEnd, codePageDown,
		codeUpLegacy, codeDownLegacy, codeRightLegacy, codeLeftLegacy,
		codeHomeLegacy, codeEndLegacy,
	}
	// Deduplicate (codeEnter/codeReturn/codeBackspace collide with single
	// bytes already handled as length-1 fallbacks, so they are excluded
	// from the multi-byte scanner entirely except Backspace, which is the
	// only single-byte "named" sequence that matters for edge-case
	// detection in the typing state machine).
	seen := make(map[string]bool, len(seqs))
	out := make([]string, 0, len(seqs))
	for _, s := range seqs {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	sortByLengthDescThenLex(out)
	return out
}

func sortByLengthDescThenLex(seqs []string) {
	for i := 1; i < len(seqs); i++ {
		for j := i; j > 0 && less(seqs[j], seqs[j-1]); j-- {
			seqs[j], seqs[j-1] = seqs[j-1], seqs[j]
		}
	}
}

// less implements str_length_decreasing: longer sequences sort first;
// equal-length sequences sort lexicographically.
func less(a, b string) bool {
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

// MatchPrefix returns the length in bytes of the longest known named-key
// sequence that is a prefix of b, or 0 if none matches.
func MatchPrefix(b []byte) int {
	for _, seq := range namedSequences {
		if bytes.HasPrefix(b, []byte(seq)) {
			return len(seq)
		}
	}
	return 0
}
