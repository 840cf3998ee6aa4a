// Package launch maps entries to execution plans and hands plans to the OS.
//
// The Resolver is the policy half: a pure mapping from an entry to a
// declarative plan, testable without touching a process table. The Runner is
// the mechanism half: it turns a plan into an os/exec invocation for the
// current platform and forgets about the process.
package launch

import "errors"

// Resolution errors
var (
	// ErrNotLaunchable means the entry is a category marker.
	ErrNotLaunchable = errors.New("entry is not launchable")
	// ErrMissingTarget means the entry's path no longer exists on disk.
	ErrMissingTarget = errors.New("launch target does not exist")
)

// Mode says how the Runner should surface the program.
type Mode int

const (
	// ModeConsole runs the program inside a freshly spawned terminal.
	ModeConsole Mode = iota
	// ModeOpen hands the path to the platform's default-handler mechanism.
	ModeOpen
)

func (m Mode) String() string {
	switch m {
	case ModeConsole:
		return "console"
	case ModeOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Plan is a declarative description of how to launch an entry. Producing one
// has no side effects.
type Plan struct {
	// Title labels the spawned console window, where the platform supports it.
	Title string
	// Program is what to execute: the interpreter for scripts, the target
	// itself otherwise. For ModeOpen it is the path handed to the handler.
	Program string
	// Args are the program arguments (the script path, for interpreters).
	Args []string
	// Dir is the working directory: the target's containing directory.
	Dir string
	// Mode selects console vs default-handler launching.
	Mode Mode
	// HoldOpen keeps the console open after the program exits so output and
	// errors remain visible.
	HoldOpen bool
}
