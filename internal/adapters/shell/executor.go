// Package shell runs task chains as local commands. It owns the meaning of
// every task name the pipeline builder emits.
package shell

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/cid/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.TaskExecutor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{logger: logger}
}

// Submit executes the descriptors in order. The first failure short-circuits
// the chain, except that a cleanup task further down still runs; its error,
// if any, is joined onto the failure.
func (e *Executor) Submit(ctx context.Context, attempt domain.BuildAttempt, tasks []domain.TaskDescriptor) error {
	for i, task := range tasks {
		err := e.runTask(ctx, attempt, task)
		if err == nil {
			continue
		}
		failure := zerr.With(zerr.Wrap(err, "task failed"), "task", task.Name)
		for _, rest := range tasks[i+1:] {
			if rest.Name != domain.TaskCleanup {
				continue
			}
			if cleanupErr := e.runTask(ctx, attempt, rest); cleanupErr != nil {
				failure = errors.Join(failure, zerr.Wrap(cleanupErr, "cleanup failed"))
			}
		}
		return failure
	}
	return nil
}

func (e *Executor) runTask(ctx context.Context, attempt domain.BuildAttempt, task domain.TaskDescriptor) error {
	switch task.Name {
	case domain.TaskSSHInit:
		return e.sshInit()
	case domain.TaskSSHScan:
		return e.sshScan(ctx, attempt, task.Args)
	case domain.TaskGitSync:
		return e.gitSync(ctx, attempt, task.Args)
	case domain.TaskRunPipeline:
		return e.runPipeline(ctx, attempt)
	case domain.TaskLocalExec:
		return e.localExec(ctx, attempt, task.Args)
	case domain.TaskCleanup:
		return e.cleanup(attempt)
	default:
		return zerr.With(zerr.New("unknown task"), "task", task.Name)
	}
}

// sshInit makes sure the calling user has an SSH directory and a known_hosts
// file for ssh-scan to append to.
func (e *Executor) sshInit() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return zerr.Wrap(err, "failed to resolve home directory")
	}
	sshDir := filepath.Join(home, ".ssh")
	if err := os.MkdirAll(sshDir, 0o700); err != nil {
		return zerr.Wrap(err, "failed to create ssh directory")
	}
	f, err := os.OpenFile(filepath.Join(sshDir, "known_hosts"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerr.Wrap(err, "failed to open known_hosts")
	}
	return f.Close()
}

// sshScan records the host's keys in known_hosts. Args are passed to
// ssh-keyscan verbatim, either [host] or [-p port host].
func (e *Executor) sshScan(ctx context.Context, attempt domain.BuildAttempt, args []string) error {
	if len(args) == 0 {
		return zerr.New("ssh-scan needs a host")
	}
	cmd := exec.CommandContext(ctx, "ssh-keyscan", args...)
	cmd.Env = append(os.Environ(), attempt.Environ()...)
	cmd.Stderr = &logWriter{logger: e.logger, stderr: true}
	e.logger.Debug(cmd.String())
	keys, err := cmd.Output()
	if err != nil {
		return zerr.Wrap(err, "ssh-keyscan failed")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return zerr.Wrap(err, "failed to resolve home directory")
	}
	f, err := os.OpenFile(filepath.Join(home, ".ssh", "known_hosts"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerr.Wrap(err, "failed to open known_hosts")
	}
	defer f.Close()
	if _, err := f.Write(keys); err != nil {
		return zerr.Wrap(err, "failed to append host keys")
	}
	return nil
}

// gitSync populates the attempt's workspace slot: clone on a fresh slot,
// fetch on a reused one, then check out the requested branch. Args follow
// the task contract [clone_url, branch, key, history-tracked].
func (e *Executor) gitSync(ctx context.Context, attempt domain.BuildAttempt, args []string) error {
	if len(args) < 2 {
		return zerr.New("git-sync needs a clone URL and branch")
	}
	cloneURL, branch := args[0], args[1]
	dir := attempt.Slot.Dir

	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		if err := e.run(ctx, attempt, dir, "git", "fetch", "origin"); err != nil {
			return err
		}
	} else {
		if err := e.run(ctx, attempt, "", "git", "clone", cloneURL, dir); err != nil {
			return err
		}
	}
	return e.run(ctx, attempt, dir, "git", "checkout", branch)
}

// runPipeline runs the repository's own pipeline script from the fixed path
// inside the synced workspace. A repository without one has nothing to run.
func (e *Executor) runPipeline(ctx context.Context, attempt domain.BuildAttempt) error {
	script := filepath.Join(attempt.Slot.Dir, domain.PipelineScript)
	if _, err := os.Stat(script); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.logger.Info("no pipeline script in '" + attempt.Slot.Dir + "', nothing to run")
			return nil
		}
		return zerr.Wrap(err, "failed to stat pipeline script")
	}
	return e.run(ctx, attempt, attempt.Slot.Dir, "bash", domain.PipelineScript)
}

// localExec runs the named script directly in the workspace.
func (e *Executor) localExec(ctx context.Context, attempt domain.BuildAttempt, args []string) error {
	if len(args) == 0 {
		return zerr.New("localexec needs a script path")
	}
	return e.run(ctx, attempt, attempt.Slot.Dir, "bash", args[0])
}

// cleanup reclaims the slot's workspace directory.
func (e *Executor) cleanup(attempt domain.BuildAttempt) error {
	if attempt.Slot.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(attempt.Slot.Dir); err != nil {
		return zerr.Wrap(err, "failed to remove workspace")
	}
	return nil
}

func (e *Executor) run(ctx context.Context, attempt domain.BuildAttempt, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // task arguments come from operator configuration
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), attempt.Environ()...)
	cmd.Stdout = &logWriter{logger: e.logger}
	cmd.Stderr = &logWriter{logger: e.logger, stderr: true}
	e.logger.Debug(cmd.String())

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}
	return nil
}

// logWriter streams command output through the logger line by line.
type logWriter struct {
	logger ports.Logger
	stderr bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if w.stderr {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}
