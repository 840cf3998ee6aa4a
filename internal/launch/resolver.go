package launch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/log"
)

// consoleExts are run directly inside a fresh console.
var consoleExts = map[string]bool{
	".exe": true,
	".bat": true,
	".cmd": true,
	".com": true,
}

// Resolver maps entries to plans by file-type dispatch on the path's
// extension, case-insensitive. On non-windows hosts an extension-less
// target with the execute bit set also runs in a console.
type Resolver struct {
	interpreters map[string]string
	goos         string
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithInterpreter overrides or adds the interpreter for an extension.
func WithInterpreter(ext, program string) ResolverOption {
	return func(r *Resolver) {
		r.interpreters[strings.ToLower(ext)] = program
	}
}

// NewResolver creates a resolver with the default interpreter table:
// .py/.pyw run under python, .sh under sh.
func NewResolver(opts ...ResolverOption) *Resolver {
	python := "python3"
	if runtime.GOOS == "windows" {
		python = "python"
	}
	r := &Resolver{
		interpreters: map[string]string{
			".py":  python,
			".pyw": python,
			".sh":  "sh",
		},
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces an execution plan for the entry, or reports why none
// exists. Categories are never launchable; a target that has gone missing is
// ErrMissingTarget and the caller must not attempt to launch.
func (r *Resolver) Resolve(e entry.Entry) (Plan, error) {
	if e.IsCategory() {
		return Plan{}, ErrNotLaunchable
	}
	info, err := os.Stat(e.Path())
	if err != nil {
		return Plan{}, fmt.Errorf("%w: %s", ErrMissingTarget, e.Path())
	}

	path := e.Path()
	dir := filepath.Dir(path)
	ext := strings.ToLower(filepath.Ext(path))

	var plan Plan
	switch {
	case r.interpreters[ext] != "":
		plan = Plan{
			Title:    e.Name(),
			Program:  r.interpreters[ext],
			Args:     []string{path},
			Dir:      dir,
			Mode:     ModeConsole,
			HoldOpen: true,
		}
	case consoleExts[ext] || (ext == "" && r.goos != "windows" && info.Mode()&0o111 != 0):
		plan = Plan{
			Title:    e.Name(),
			Program:  path,
			Dir:      dir,
			Mode:     ModeConsole,
			HoldOpen: true,
		}
	default:
		plan = Plan{
			Title:   e.Name(),
			Program: path,
			Dir:     dir,
			Mode:    ModeOpen,
		}
	}

	log.Debug(log.CatLaunch, "resolved plan",
		"entry", e.Name(), "mode", plan.Mode, "program", plan.Program)
	return plan, nil
}
