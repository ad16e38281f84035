package shell

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Runner runs an external tool and blocks until it exits. A non-zero exit is
// returned as an error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

type ExecRunner struct {
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

var _ Runner = (*ExecRunner)(nil)

func NewExecRunner(stdin io.Reader, stdout io.Writer, stderr io.Writer) *ExecRunner {
	return &ExecRunner{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
}

func (e *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w", CommandLine(name, args...), err)
	}
	return nil
}

func CommandLine(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

// Recorder is a Runner that remembers every command instead of running it.
// OnRun, when set, decides the outcome of each command.
type Recorder struct {
	Calls [][]string
	OnRun func(args []string) error
}

var _ Runner = (*Recorder)(nil)

func (r *Recorder) Run(_ context.Context, name string, args ...string) error {
	call := append([]string{name}, args...)
	r.Calls = append(r.Calls, call)
	if r.OnRun == nil {
		return nil
	}
	return r.OnRun(call)
}

// CommandLines is Calls joined with spaces, handy for assertions.
func (r *Recorder) CommandLines() []string {
	ret := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		ret = append(ret, strings.Join(c, " "))
	}
	return ret
}
