package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var out, errOut bytes.Buffer
	r := NewExecRunner(nil, &out, &errOut)
	require.NoError(t, r.Run(context.Background(), "sh", "-c", "echo hello; echo oops 1>&2"))
	assert.Equal(t, "hello\n", out.String())
	assert.Equal(t, "oops\n", errOut.String())

	err := r.Run(context.Background(), "sh", "-c", "exit 3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to run sh -c exit 3")
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestRecorder(t *testing.T) {
	r := &Recorder{
		OnRun: func(args []string) error {
			if args[0] == "twine" {
				return errors.New("upload failed")
			}
			return nil
		},
	}
	require.NoError(t, r.Run(context.Background(), "git", "tag", "-a", "1.0.0", "-m", "1.0.0"))
	require.Error(t, r.Run(context.Background(), "twine", "upload"))
	assert.Equal(t, []string{"git tag -a 1.0.0 -m 1.0.0", "twine upload"}, r.CommandLines())
}
