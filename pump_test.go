package gupty

import (
	"bytes"
	"io"
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestWriteToFDThenReadFromFD(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	payload := []byte("hello pump")
	if err := WriteToFD(int(w.Fd()), payload); err != nil {
		t.Fatalf("WriteToFD: %v", err)
	}

	got, err := ReadFromFD(int(r.Fd()))
	if err != nil {
		t.Fatalf("ReadFromFD: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("ReadFromFD = %q, want %q", got, payload)
	}
}

func TestReadFromFDEOF(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	w.Close() // immediate EOF on the read side

	_, err = ReadFromFD(int(r.Fd()))
	if err != io.EOF {
		t.Errorf("ReadFromFD on closed pipe = %v, want io.EOF", err)
	}
}

func TestSplitIntoKeys(t *testing.T) {
	in := []byte("a\x1b[3~b\x7f")
	got := splitIntoKeys(in)
	want := [][]byte{[]byte("a"), []byte("\x1b[3~"), []byte("b"), []byte("\x7f")}
	if len(got) != len(want) {
		t.Fatalf("splitIntoKeys(%q) = %v, want %v", in, got, want)
	}
	for i := range want {
		if !bytes.Equal(got[i], want[i]) {
			t.Errorf("key %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSendToPtyNormalizesNewline(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if err := sendToPty(int(w.Fd()), []byte("a\nb")); err != nil {
		t.Fatalf("sendToPty: %v", err)
	}

	got, err := ReadFromFD(int(r.Fd()))
	if err != nil {
		t.Fatalf("ReadFromFD: %v", err)
	}
	want := []byte("a\rb")
	if !bytes.Equal(got, want) {
		t.Errorf("pty received %q, want %q", got, want)
	}
	if len(got) != 3 {
		t.Errorf("byte count = %d, want 3 (preserved)", len(got))
	}
}

func TestSendToPtyIdempotentWithoutNewline(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	payload := []byte("no newlines here")
	if err := sendToPty(int(w.Fd()), payload); err != nil {
		t.Fatalf("sendToPty (1st): %v", err)
	}
	got1, _ := ReadFromFD(int(r.Fd()))

	if err := sendToPty(int(w.Fd()), payload); err != nil {
		t.Fatalf("sendToPty (2nd): %v", err)
	}
	got2, _ := ReadFromFD(int(r.Fd()))

	if !bytes.Equal(got1, got2) || !bytes.Equal(got1, payload) {
		t.Errorf("sendToPty not idempotent: %q then %q, want both %q", got1, got2, payload)
	}
}

func TestSendToStdoutGatedByMode(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if err := sendToStdout(int(w.Fd()), []byte("shown"), OutputNone); err != nil {
		t.Fatalf("sendToStdout(NONE): %v", err)
	}
	if err := sendToStdout(int(w.Fd()), []byte("hidden"), OutputFiltered); err != nil {
		t.Fatalf("sendToStdout(FILTERED): %v", err)
	}
	if err := sendToStdout(int(w.Fd()), []byte("visible"), OutputAll); err != nil {
		t.Fatalf("sendToStdout(ALL): %v", err)
	}
	w.Close()

	got, _ := io.ReadAll(r)
	if !bytes.Equal(got, []byte("visible")) {
		t.Errorf("stdout received %q, want only %q (NONE/FILTERED must be dropped)", got, "visible")
	}
}

func TestPollReadable(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	ready, err := pollReadable(int(r.Fd()), 0)
	if err != nil {
		t.Fatalf("pollReadable: %v", err)
	}
	if ready {
		t.Error("pollReadable reported ready before any write")
	}

	if _, err := unix.Write(int(w.Fd()), []byte("x")); err != nil {
		t.Fatalf("unix.Write: %v", err)
	}

	ready, err = pollReadable(int(r.Fd()), 100)
	if err != nil {
		t.Fatalf("pollReadable: %v", err)
	}
	if !ready {
		t.Error("pollReadable reported not-ready after a write")
	}
}
