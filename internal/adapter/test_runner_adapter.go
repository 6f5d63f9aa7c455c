package adapter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// StatusError is the exit status reported when a trial could not finish on
// its own (timeout, or the go command could not be started).
const StatusError = 2

// waitDelay bounds how long Run waits for output pipes once the process
// group has been killed.
const waitDelay = 5 * time.Second

// TestRunnerAdapter abstracts test execution operations for mutation testing.
type TestRunnerAdapter interface {
	// RunGoTest runs 'go test' on target from workDir, applying the overlay
	// manifest when it is non-empty. It returns the combined output and the
	// process exit status. err is only set when the process could not run.
	RunGoTest(ctx context.Context, workDir, target, overlay string) (output string, status int, err error)
}

// LocalTestRunnerAdapter provides a concrete implementation using os/exec.
type LocalTestRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalTestRunnerAdapter constructs a LocalTestRunnerAdapter. With a
// non-positive timeout only the caller's context bounds a run.
func NewLocalTestRunnerAdapter(timeout time.Duration) *LocalTestRunnerAdapter {
	return &LocalTestRunnerAdapter{
		timeout: timeout,
	}
}

// RunGoTest implements TestRunnerAdapter.
func (a *LocalTestRunnerAdapter) RunGoTest(ctx context.Context, workDir, target, overlay string) (string, int, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "go", goTestArgs(ctx, target, overlay)...)
	cmd.Dir = workDir
	cmd.WaitDelay = waitDelay
	killProcessGroup(cmd)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := stdout.String() + stderr.String()

	if err == nil {
		return output, 0, nil
	}

	if ctx.Err() != nil {
		return output, StatusError, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return output, exitErr.ExitCode(), nil
	}

	return output, StatusError, err
}

// goTestArgs builds the go test command line. A context deadline is passed on
// as -timeout so the test binary stops on its own even if it outlives go.
func goTestArgs(ctx context.Context, target, overlay string) []string {
	args := []string{"test", "-count=1"}

	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline).Round(time.Millisecond)
		if remaining < time.Millisecond {
			remaining = time.Millisecond
		}

		args = append(args, "-timeout="+remaining.String())
	}

	if overlay != "" {
		args = append(args, "-overlay="+overlay)
	}

	return append(args, target)
}
