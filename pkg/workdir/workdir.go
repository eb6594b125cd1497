package workdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrRestore marks a failure to restore the prior working directory on
// scope exit. Restoration is never silently skipped: if chdir back
// fails, the caller learns about it through an error wrapping this
// sentinel.
var ErrRestore = errors.New("restore working directory")

// Handle represents one entered output scope. It records the directory
// that was current before [Enter] and restores it on [Handle.Exit].
type Handle struct {
	prev string
	dir  string
	done bool
}

// Enter makes dir exist (creating ancestors as needed), records the
// current working directory, and changes into dir. Creation is
// idempotent: an already-existing directory is left untouched.
//
// Every successful Enter must be paired with exactly one Exit, and the
// Exit must run on every path out of the scope, including failures of
// the enclosed work. The usual shape is:
//
//	h, err := workdir.Enter(out)
//	if err != nil {
//	    return err
//	}
//	defer func() { err = errors.Join(err, h.Exit()) }()
func Enter(dir string) (*Handle, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}
	// Store the absolute path so Dir stays valid after the chdir.
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	prev, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("record working directory: %w", err)
	}
	if err := os.Chdir(abs); err != nil {
		return nil, fmt.Errorf("enter %s: %w", dir, err)
	}
	return &Handle{prev: prev, dir: abs}, nil
}

// Exit restores the working directory that was current before Enter.
// It is safe to call more than once; only the first call acts. A failed
// restore returns an error wrapping [ErrRestore] rather than being
// dropped, since a process left in the wrong directory is a real fault.
func (h *Handle) Exit() error {
	if h == nil || h.done {
		return nil
	}
	h.done = true
	if err := os.Chdir(h.prev); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrRestore, h.prev, err)
	}
	return nil
}

// Dir returns the absolute path of the directory this scope entered.
func (h *Handle) Dir() string { return h.dir }

// Prev returns the directory that will be restored by Exit.
func (h *Handle) Prev() string { return h.prev }
