package workdir

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnterExit(t *testing.T) {
	t.Chdir(t.TempDir())
	before, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}

	h, err := Enter("out")
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}

	inside, _ := os.Getwd()
	if filepath.Base(inside) != "out" {
		t.Errorf("working directory = %s, want .../out", inside)
	}
	if h.Prev() != before {
		t.Errorf("Prev() = %q, want %q", h.Prev(), before)
	}

	if err := h.Exit(); err != nil {
		t.Fatalf("Exit: %v", err)
	}
	after, _ := os.Getwd()
	if after != before {
		t.Errorf("working directory after Exit = %s, want %s", after, before)
	}
}

func TestEnterCreatesNestedDirs(t *testing.T) {
	t.Chdir(t.TempDir())

	h, err := Enter(filepath.Join("a", "b", "c"))
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	defer h.Exit()

	// Dir must resolve even though the working directory has moved.
	if !filepath.IsAbs(h.Dir()) {
		t.Errorf("Dir() = %q, want absolute path", h.Dir())
	}
	info, err := os.Stat(h.Dir())
	if err != nil || !info.IsDir() {
		t.Errorf("Stat(%s) = %v, %v", h.Dir(), info, err)
	}
}

func TestEnterExistingDirIsIdempotent(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := os.MkdirAll("out", 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join("out", "keep.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	h, err := Enter("out")
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	defer h.Exit()

	// Pre-existing contents survive.
	if _, err := os.Stat("keep.txt"); err != nil {
		t.Errorf("existing file lost: %v", err)
	}
}

func TestExitIsIdempotent(t *testing.T) {
	t.Chdir(t.TempDir())

	h, err := Enter("out")
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}
	if err := h.Exit(); err != nil {
		t.Fatalf("first Exit: %v", err)
	}
	// Change elsewhere; a second Exit must not chdir again.
	other := t.TempDir()
	if err := os.Chdir(other); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	if err := h.Exit(); err != nil {
		t.Fatalf("second Exit: %v", err)
	}
	got, _ := os.Getwd()
	if got != other {
		t.Errorf("second Exit moved the working directory to %s", got)
	}
}

func TestExitOnNilHandle(t *testing.T) {
	var h *Handle
	if err := h.Exit(); err != nil {
		t.Errorf("Exit on nil handle: %v", err)
	}
}

func TestExitReportsFailedRestore(t *testing.T) {
	base := t.TempDir()
	victim := filepath.Join(base, "victim")
	if err := os.MkdirAll(victim, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	t.Chdir(victim)

	h, err := Enter(filepath.Join(base, "out"))
	if err != nil {
		t.Fatalf("Enter: %v", err)
	}

	// Remove the directory Exit must return to.
	if err := os.Remove(victim); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	err = h.Exit()
	if !errors.Is(err, ErrRestore) {
		t.Errorf("Exit = %v, want ErrRestore", err)
	}
}

func TestDeferredExitJoinsError(t *testing.T) {
	t.Chdir(t.TempDir())

	failing := func() (err error) {
		h, enterErr := Enter("out")
		if enterErr != nil {
			return enterErr
		}
		defer func() { err = errors.Join(err, h.Exit()) }()
		return errors.New("work failed")
	}

	err := failing()
	if err == nil || err.Error() != "work failed" {
		t.Errorf("err = %v, want work failed", err)
	}
	got, _ := os.Getwd()
	if filepath.Base(got) == "out" {
		t.Error("working directory not restored after failed work")
	}
}
