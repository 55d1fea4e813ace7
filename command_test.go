package gupty

import (
	"errors"
	"testing"
)

func linesOf(files map[string][]string) LineReader {
	return func(path string) ([]string, error) {
		lines, ok := files[path]
		if !ok {
			return nil, errors.New("no such file: " + path)
		}
		return lines, nil
	}
}

func TestResolveCommandsBasic(t *testing.T) {
	read := linesOf(map[string][]string{
		"main.gupty": {
			"# a comment",
			"",
			"note starting up",
			"exit",
		},
	})

	got, err := ResolveCommands(read, "main.gupty")
	if err != nil {
		t.Fatalf("ResolveCommands: %v", err)
	}
	want := CommandList{
		{Name: cmdNote, Arg: "starting up"},
		{Name: cmdExit, Arg: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d commands, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("command %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestResolveCommandsInclude(t *testing.T) {
	read := linesOf(map[string][]string{
		"main.gupty": {
			"note before",
			"include sub.gupty",
			"note after",
		},
		"sub.gupty": {
			"note nested",
			"pause 1",
		},
	})

	got, err := ResolveCommands(read, "main.gupty")
	if err != nil {
		t.Fatalf("ResolveCommands: %v", err)
	}
	want := []string{"before", "nested", "1", "after"}
	if len(got) != len(want) {
		t.Fatalf("got %d commands, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Arg != w {
			t.Errorf("command %d arg = %q, want %q", i, got[i].Arg, w)
		}
	}
}

func TestResolveCommandsNestedInclude(t *testing.T) {
	read := linesOf(map[string][]string{
		"a.gupty": {"include b.gupty"},
		"b.gupty": {"include c.gupty"},
		"c.gupty": {"exit"},
	})

	got, err := ResolveCommands(read, "a.gupty")
	if err != nil {
		t.Fatalf("ResolveCommands: %v", err)
	}
	if len(got) != 1 || got[0].Name != cmdExit {
		t.Fatalf("got %+v, want a single exit command", got)
	}
}

func TestResolveCommandsUnknownCommand(t *testing.T) {
	read := linesOf(map[string][]string{
		"main.gupty": {"frobnicate everything"},
	})

	_, err := ResolveCommands(read, "main.gupty")
	var unknown *ErrUnknownCommand
	if !errors.As(err, &unknown) {
		t.Fatalf("ResolveCommands error = %v, want *ErrUnknownCommand", err)
	}
	if unknown.Name != "frobnicate" {
		t.Errorf("unknown.Name = %q, want %q", unknown.Name, "frobnicate")
	}
}

func TestResolveCommandsSkipGate(t *testing.T) {
	// "skip" and "resume" are recognized commands even though they're
	// only meaningful to the engine's cursor logic (engine.go), not to
	// the parser itself.
	read := linesOf(map[string][]string{
		"main.gupty": {
			"skip 2",
			"note one",
			"note two",
			"resume",
			"note three",
		},
	})

	got, err := ResolveCommands(read, "main.gupty")
	if err != nil {
		t.Fatalf("ResolveCommands: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("got %d commands, want 5: %+v", len(got), got)
	}
	if got[0].Name != cmdSkip || got[0].Arg != "2" {
		t.Errorf("command 0 = %+v, want skip 2", got[0])
	}
	if got[3].Name != cmdResume {
		t.Errorf("command 3 = %+v, want resume", got[3])
	}
}

func TestResolveCommandsIncludeMissingFile(t *testing.T) {
	read := linesOf(map[string][]string{
		"main.gupty": {"include missing.gupty"},
	})

	if _, err := ResolveCommands(read, "main.gupty"); err == nil {
		t.Fatal("ResolveCommands: want error for missing include target, got nil")
	}
}

func TestSplitCommandLineNoArg(t *testing.T) {
	name, arg := splitCommandLine("exit")
	if name != "exit" || arg != "" {
		t.Errorf("splitCommandLine(exit) = %q, %q, want exit, \"\"", name, arg)
	}
}

func TestSplitCommandLineWithSpacesInArg(t *testing.T) {
	name, arg := splitCommandLine("note hello there world")
	if name != "note" || arg != "hello there world" {
		t.Errorf("splitCommandLine = %q, %q, want note, %q", name, arg, "hello there world")
	}
}

func TestPasteKeyAliasesAreBothKnown(t *testing.T) {
	if !isKnownCommand(cmdPasteKey) || !isKnownCommand(cmdPasteKeys) {
		t.Error("paste_key and paste_keys must both be recognized")
	}
	if !isKnownCommand(cmdTypeKey) || !isKnownCommand(cmdTypeKeys) {
		t.Error("type_key and type_keys must both be recognized")
	}
}
