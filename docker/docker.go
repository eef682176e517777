// Package docker manages the local model runtime container. It shells
// out to the docker CLI rather than binding the engine API, so the only
// host requirement is a working docker binary on PATH.
package docker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// ErrDockerUnavailable reports that the docker CLI is missing or the
// daemon is not reachable.
var ErrDockerUnavailable = errors.New("docker unavailable")

// runner executes a docker subcommand and returns its stdout. Tests
// substitute this to avoid requiring a docker daemon.
type runner func(ctx context.Context, args ...string) (string, error)

func execDocker(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "docker", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("docker %s: %s: %w", args[0], msg, err)
		}
		return "", fmt.Errorf("docker %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// Manager controls the lifecycle of a named container hosting the local
// model runtime. It is safe for concurrent use.
type Manager struct {
	container string
	timeout   time.Duration

	mu  sync.Mutex
	run runner
}

// DefaultStartTimeout bounds container start operations.
const DefaultStartTimeout = 60 * time.Second

// NewManager creates a manager for the named container.
func NewManager(container string) *Manager {
	return &Manager{
		container: container,
		timeout:   DefaultStartTimeout,
		run:       execDocker,
	}
}

// Container returns the managed container name.
func (m *Manager) Container() string { return m.container }

// Available reports whether the docker daemon is reachable.
func (m *Manager) Available(ctx context.Context) bool {
	m.mu.Lock()
	run := m.run
	m.mu.Unlock()

	_, err := run(ctx, "info", "--format", "{{.ServerVersion}}")
	return err == nil
}

// Exists reports whether the container exists in any state.
func (m *Manager) Exists(ctx context.Context) (bool, error) {
	out, err := m.listNames(ctx, true)
	if err != nil {
		return false, err
	}
	return containsName(out, m.container), nil
}

// IsRunning reports whether the container is currently running.
func (m *Manager) IsRunning(ctx context.Context) (bool, error) {
	out, err := m.listNames(ctx, false)
	if err != nil {
		return false, err
	}
	return containsName(out, m.container), nil
}

// Start starts the existing (stopped) container.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	run := m.run
	m.mu.Unlock()

	startCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if _, err := run(startCtx, "start", m.container); err != nil {
		return fmt.Errorf("start container %q: %w", m.container, err)
	}

	slog.Debug("container started", slog.String("container", m.container))
	return nil
}

// EnsureRunning makes sure the container is up, starting it if it exists
// but is stopped. A missing container is an error: provisioning the local
// runtime is an installation step, not something done per prompt.
func (m *Manager) EnsureRunning(ctx context.Context) error {
	running, err := m.IsRunning(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDockerUnavailable, err)
	}
	if running {
		return nil
	}

	exists, err := m.Exists(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDockerUnavailable, err)
	}
	if !exists {
		return fmt.Errorf("container %q not found; create it before using local models", m.container)
	}

	slog.Info("starting local runtime container", slog.String("container", m.container))
	return m.Start(ctx)
}

// listNames returns container names, one per line. When all is true,
// stopped containers are included.
func (m *Manager) listNames(ctx context.Context, all bool) (string, error) {
	m.mu.Lock()
	run := m.run
	m.mu.Unlock()

	args := []string{"ps", "--format", "{{.Names}}"}
	if all {
		args = append(args, "--all")
	}
	return run(ctx, args...)
}

func containsName(out, name string) bool {
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == name {
			return true
		}
	}
	return false
}
