//go:build linux || darwin || freebsd || netbsd || openbsd

package gupty

import (
	"io"
	"strings"
	"testing"
)

func TestOpenPTYAndSpawn(t *testing.T) {
	master, slave, err := openPTY()
	if err != nil {
		t.Skipf("openPTY unavailable in this environment: %v", err)
	}
	defer master.Close()

	proc, err := spawnChild("/bin/sh", slave)
	if err != nil {
		t.Fatalf("spawnChild: %v", err)
	}
	defer killChild(proc)

	if _, err := master.Write([]byte("echo hello_gupty\nexit\n")); err != nil {
		t.Fatalf("write to pty master: %v", err)
	}

	out, _ := io.ReadAll(master)
	if !strings.Contains(string(out), "hello_gupty") {
		t.Errorf("pty output = %q, want it to contain %q", out, "hello_gupty")
	}

	_, _ = proc.Wait()
}

func TestCstrLen(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int
	}{
		{"NUL in middle", []byte{'a', 'b', 0, 'd'}, 2},
		{"no NUL", []byte{'a', 'b', 'c'}, 3},
		{"leading NUL", []byte{0, 'a'}, 0},
		{"empty", []byte{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cstrLen(tt.in); got != tt.want {
				t.Errorf("cstrLen(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestKillChildNilIsNoop(t *testing.T) {
	killChild(nil) // must not panic
}

func TestSetWinsizeWithSlaveClosed(t *testing.T) {
	master, slave, err := openPTY()
	if err != nil {
		t.Skipf("openPTY unavailable in this environment: %v", err)
	}
	_ = slave.Close()
	defer master.Close()

	if err := setWinsize(int(master.Fd()), 24, 80); err != nil {
		t.Errorf("setWinsize on an open master should succeed, got: %v", err)
	}
}
