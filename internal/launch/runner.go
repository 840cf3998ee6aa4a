package launch

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/zjrosen/launchpad/internal/log"
)

// Runner executes plans. Launches are fire-and-forget: Run returns once the
// process has started and holds no resource tied to its lifetime.
type Runner struct {
	terminal string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTerminal overrides the terminal emulator used for console plans on
// platforms without a built-in console spawner.
func WithTerminal(terminal string) RunnerOption {
	return func(r *Runner) { r.terminal = terminal }
}

// NewRunner creates a runner for the current platform.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the plan's process and returns without awaiting completion.
func (r *Runner) Run(plan Plan) error {
	name, args := r.command(runtime.GOOS, plan)
	cmd := exec.Command(name, args...) //nolint:gosec // G204: launching user-registered programs is the point

	if err := cmd.Start(); err != nil {
		log.ErrorErr(log.CatLaunch, "launch failed", err, "program", plan.Program)
		return fmt.Errorf("launching %s: %w", plan.Title, err)
	}

	log.Info(log.CatLaunch, "launched", "title", plan.Title, "mode", plan.Mode, "pid", cmd.Process.Pid)

	// Reap in the background so finished children do not linger as zombies.
	go func() { _ = cmd.Wait() }()
	return nil
}

// command maps a plan to the platform invocation. Split out by goos so the
// mapping is testable on any host.
func (r *Runner) command(goos string, plan Plan) (string, []string) {
	if plan.Mode == ModeOpen {
		switch goos {
		case "windows":
			// start's first quoted argument is the window title; keep it
			// empty so the path is not mistaken for one.
			return "cmd", []string{"/C", "start", "", plan.Program}
		case "darwin":
			return "open", []string{plan.Program}
		default:
			return "xdg-open", []string{plan.Program}
		}
	}

	switch goos {
	case "windows":
		line := fmt.Sprintf(`cd /d "%s" && %s`, plan.Dir, windowsLine(plan))
		keep := "/C"
		if plan.HoldOpen {
			keep = "/K"
		}
		return "cmd", []string{"/C", "start", plan.Title, "cmd", keep, line}
	case "darwin":
		script := fmt.Sprintf("cd %s && %s", shellQuote(plan.Dir), shellLine(plan))
		return "osascript", []string{"-e",
			fmt.Sprintf(`tell application "Terminal" to do script %q`, script)}
	default:
		script := fmt.Sprintf("cd %s && %s", shellQuote(plan.Dir), shellLine(plan))
		if plan.HoldOpen {
			script += `; echo; read -r -p "Press enter to close..." _`
		}
		return r.terminalEmulator(), []string{"-e", "sh", "-c", script}
	}
}

// terminalEmulator picks the terminal for console plans: explicit override,
// then $TERMINAL, then the Debian alternatives name.
func (r *Runner) terminalEmulator() string {
	if r.terminal != "" {
		return r.terminal
	}
	if term := os.Getenv("TERMINAL"); term != "" {
		return term
	}
	return "x-terminal-emulator"
}

func windowsLine(plan Plan) string {
	parts := []string{fmt.Sprintf("%q", plan.Program)}
	for _, arg := range plan.Args {
		parts = append(parts, fmt.Sprintf("%q", arg))
	}
	return strings.Join(parts, " ")
}

func shellLine(plan Plan) string {
	parts := []string{shellQuote(plan.Program)}
	for _, arg := range plan.Args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

// shellQuote single-quotes a string for POSIX sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
