package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/timvw/tmx/internal/mux"
)

// clientSwitcher is implemented by multiplexers that can move the current
// client to another session and attach a fresh terminal to one.
type clientSwitcher interface {
	SwitchClient(ctx context.Context, session string) error
	AttachArgs(session string) []string
}

// attachSession brings session to the foreground. Inside tmux the attached
// client switches; outside, this process is replaced by a tmux client
// (syscall.Exec) and does not return on success.
func attachSession(ctx context.Context, m mux.Multiplexer, session string) error {
	sw, ok := m.(clientSwitcher)
	if !ok {
		return fmt.Errorf("%s does not support attaching; session %q is running detached", m.Name(), session)
	}

	if os.Getenv("TMUX") != "" {
		return sw.SwitchClient(ctx, session)
	}

	tmuxPath, err := exec.LookPath("tmux")
	if err != nil {
		return fmt.Errorf("tmux not found in PATH: %w", err)
	}
	// Telemetry and logs are flushed before the process image is replaced.
	shutdown()
	if err := syscall.Exec(tmuxPath, sw.AttachArgs(session), os.Environ()); err != nil {
		return fmt.Errorf("attaching to %q: %w", session, err)
	}
	return nil
}
