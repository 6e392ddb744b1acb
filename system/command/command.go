package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"
)

// cancelGrace is how long a cancelled command gets to exit after SIGTERM
// before it is killed.
const cancelGrace = 10 * time.Second

type ShellCommandExecutor interface {
	Start() error
	Wait() error
	String() string
}

type ShellCommandContexter interface {
	Done() <-chan struct{}
	Err() error
}

type ShellCommandRunner interface {
	Run() error
	Output() ([]byte, error)
	String() string
	GetName() string
	GetArgs() []string
	GetEnvVars() []string
	GetInheritEnvVars() bool
	GetContext() ShellCommandContexter
	GetExecutor() ShellCommandExecutor
}

type ShellCommand struct {
	Name           string
	Args           []string
	EnvVars        []string
	InheritEnvVars bool
	Ctx            ShellCommandContexter
	Cmd            ShellCommandExecutor
	stdout         *redirectWriter
}

var NewShellCommand = func(ctx context.Context, name string, args []string, envVars []string, inheritEnvVars bool) ShellCommandRunner {
	cmd := exec.CommandContext(ctx, name, args...)

	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		slog.Info("Interrupt signal received, cancelling command")
		err := cmd.Process.Signal(syscall.SIGTERM)
		if err != nil {
			slog.Error("Failed to cancel command: " + err.Error())
		}
		return err
	}
	cmd.WaitDelay = cancelGrace
	cmd.Env = envVars
	if inheritEnvVars {
		cmd.Env = append(cmd.Env, os.Environ()...)
	}

	stdout := &redirectWriter{w: os.Stdout}
	cmd.Stdout = stdout
	cmd.Stderr = os.Stderr

	return &ShellCommand{
		Name:           name,
		Args:           args,
		EnvVars:        envVars,
		InheritEnvVars: inheritEnvVars,
		Ctx:            ctx,
		Cmd:            cmd,
		stdout:         stdout,
	}
}

func (s *ShellCommand) Run() error {
	slog.Debug(fmt.Sprintf("Environment variables: %v", s.EnvVars))
	slog.Debug("Running cmd: " + s.String())
	if err := s.Cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command '%s': %w", s.String(), err)
	}

	err := s.Cmd.Wait()
	select {
	case <-s.Ctx.Done():
		slog.Debug("Command was interrupted")
		return s.Ctx.Err()
	default:
		if err != nil {
			return fmt.Errorf("command '%s' failed: %w", s.String(), err)
		}
		slog.Debug("Command finished successfully")
		return nil
	}
}

// Output runs the command and returns what it wrote to stdout instead of
// streaming it to the terminal.
func (s *ShellCommand) Output() ([]byte, error) {
	if s.stdout == nil {
		return nil, fmt.Errorf("command '%s' does not support output capture", s.String())
	}

	var buf bytes.Buffer
	s.stdout.redirect(&buf)
	defer s.stdout.redirect(os.Stdout)

	if err := s.Run(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ShellCommand) String() string {
	return s.Cmd.String()
}

func (s *ShellCommand) GetName() string {
	return s.Name
}

func (s *ShellCommand) GetArgs() []string {
	return s.Args
}

func (s *ShellCommand) GetEnvVars() []string {
	return s.EnvVars
}

func (s *ShellCommand) GetInheritEnvVars() bool {
	return s.InheritEnvVars
}

func (s *ShellCommand) GetContext() ShellCommandContexter {
	return s.Ctx
}

func (s *ShellCommand) GetExecutor() ShellCommandExecutor {
	return s.Cmd
}

// Join renders name and args the way they would be typed in a shell. It is
// only used for logging.
func Join(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}

type redirectWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (r *redirectWriter) redirect(w io.Writer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w = w
}

func (r *redirectWriter) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Write(p)
}
