// Package script is the trivial text reader gupty's command interpreter
// treats as an external collaborator: it reads a file into lines, with
// no knowledge of the command grammar above it.
package script

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadLines opens path and returns its lines with leading whitespace
// trimmed. It satisfies gupty.LineReader's signature, so
// ResolveCommands(script.ReadLines, path) reads a script file directly
// from disk.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gupty/script: open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scan := bufio.NewScanner(f)
	for scan.Scan() {
		lines = append(lines, strings.TrimLeft(scan.Text(), " \t\r\n"))
	}
	if err := scan.Err(); err != nil {
		return nil, fmt.Errorf("gupty/script: read %s: %w", path, err)
	}
	return lines, nil
}
