package reexec

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestRegisterTwicePanics(t *testing.T) {
	Register("reexec-test-twice", func() {})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register("reexec-test-twice", func() {})
}

func TestInitIgnoresUnknownName(t *testing.T) {
	if Init() {
		t.Fatal("Init ran an initializer for the test binary's own name")
	}
}

func TestInstall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symbolic links need extra privileges on windows")
	}
	dir := t.TempDir()
	link, err := Install(dir, "solc")
	if err != nil {
		t.Fatal(err)
	}
	if link != filepath.Join(dir, "solc") {
		t.Fatalf("unexpected link path %s", link)
	}
	target, err := os.Readlink(link)
	if err != nil {
		t.Fatal(err)
	}
	if target != Self() {
		t.Fatalf("link points at %s, want %s", target, Self())
	}
}
