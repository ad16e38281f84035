package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLoggerSplitsStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewConsoleLogger(&out, &errOut, false)
	l.Infof("build created")
	l.Debugf("hidden")
	l.Warnf("dist folder contains %d files", 3)
	l.Errorf("boom")

	assert.Contains(t, out.String(), "build created")
	assert.NotContains(t, out.String(), "hidden")
	assert.NotContains(t, out.String(), "dist folder")
	assert.Contains(t, errOut.String(), "dist folder contains 3 files")
	assert.Contains(t, errOut.String(), "boom")
}

func TestConsoleLoggerDebug(t *testing.T) {
	var out, errOut bytes.Buffer
	NewConsoleLogger(&out, &errOut, true).Debugf("state %s", "TagCreated")
	assert.Contains(t, out.String(), "state TagCreated")
	assert.Empty(t, errOut.String())
}
