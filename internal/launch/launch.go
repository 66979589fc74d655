// Package launch spawns the selected application as a detached process. The
// child outlives the launcher: it is started in its own session with its
// standard streams disconnected, and is never waited on.
package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/fling-dev/fling/internal/desktop"
	"github.com/fling-dev/fling/internal/log"
)

var (
	// ErrEmptyCommand is returned for entries whose command line is empty
	// after field-code stripping.
	ErrEmptyCommand = errors.New("empty command line")
	// ErrNoTerminal is returned for terminal entries when no terminal
	// emulator is configured.
	ErrNoTerminal = errors.New("entry requires a terminal but $TERMINAL is not set")
)

// Func spawns an entry. The controller depends on this signature rather than
// on Launcher so tests can substitute a recorder.
type Func func(desktop.Entry) error

// Launcher builds and starts detached commands for desktop entries.
type Launcher struct {
	// Terminal is the emulator used for Terminal=true entries, invoked as
	// `terminal -e cmd args...`. Defaults to $TERMINAL.
	Terminal string
}

// New returns a Launcher picking up the terminal emulator from the
// environment.
func New() *Launcher {
	return &Launcher{Terminal: os.Getenv("TERMINAL")}
}

// Spawn starts the entry's command line detached from the launcher process.
// It returns once the process has started; it never waits for completion.
func (l *Launcher) Spawn(entry desktop.Entry) error {
	words, err := desktop.SplitWords(entry.Exec)
	if err != nil {
		return fmt.Errorf("parsing command for %s: %w", entry.ID, err)
	}
	if len(words) == 0 {
		return fmt.Errorf("launching %s: %w", entry.ID, ErrEmptyCommand)
	}

	if entry.TryExec != "" {
		if _, err := exec.LookPath(entry.TryExec); err != nil {
			return fmt.Errorf("launching %s: %w", entry.ID, err)
		}
	}

	if entry.Terminal {
		if l.Terminal == "" {
			return fmt.Errorf("launching %s: %w", entry.ID, ErrNoTerminal)
		}
		words = append([]string{l.Terminal, "-e"}, words...)
	}

	cmd := exec.Command(words[0], words[1:]...)
	cmd.Dir = entry.Path
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	// New session: the child survives the launcher exiting and never holds
	// the controlling terminal.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", entry.ID, err)
	}
	// Release, don't wait. Reaping is the init system's problem once we
	// exit; until then the zombie is harmless.
	_ = cmd.Process.Release()

	log.Info(log.CatLaunch, "spawned", "id", entry.ID, "exec", entry.Exec)
	return nil
}
