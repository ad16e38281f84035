package logger

import (
	"bytes"
	"io"
	"testing"

	"github.com/sethvargo/go-githubactions"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(s string, args ...interface{})
}

type ghLogger struct {
	action *githubactions.Action
}

func (g *ghLogger) Errorf(s string, args ...interface{}) {
	g.action.Errorf(s, args...)
}

func (g *ghLogger) Warnf(format string, args ...interface{}) {
	g.action.Warningf(format, args...)
}

func (g *ghLogger) Debugf(format string, args ...interface{}) {
	g.action.Debugf(format, args...)
}

func (g *ghLogger) Infof(format string, args ...interface{}) {
	g.action.Infof(format, args...)
}

var _ Logger = (*ghLogger)(nil)

func NewGhLogger(action *githubactions.Action) Logger {
	return &ghLogger{
		action: action,
	}
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (z *zapLogger) Errorf(s string, args ...interface{}) {
	z.sugar.Errorf(s, args...)
}

func (z *zapLogger) Warnf(format string, args ...interface{}) {
	z.sugar.Warnf(format, args...)
}

func (z *zapLogger) Debugf(format string, args ...interface{}) {
	z.sugar.Debugf(format, args...)
}

func (z *zapLogger) Infof(format string, args ...interface{}) {
	z.sugar.Infof(format, args...)
}

var _ Logger = (*zapLogger)(nil)

// NewConsoleLogger writes progress to out and warnings/errors to errOut, so an
// operator watching the terminal sees problems inline on the error stream.
func NewConsoleLogger(out io.Writer, errOut io.Writer, debug bool) Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	encCfg.CallerKey = ""
	enc := zapcore.NewConsoleEncoder(encCfg)
	minLevel := zapcore.InfoLevel
	if debug {
		minLevel = zapcore.DebugLevel
	}
	low := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= minLevel && l < zapcore.WarnLevel
	})
	high := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= zapcore.WarnLevel
	})
	core := zapcore.NewTee(
		zapcore.NewCore(enc, zapcore.AddSync(out), low),
		zapcore.NewCore(enc, zapcore.AddSync(errOut), high),
	)
	return &zapLogger{
		sugar: zap.New(core).Sugar(),
	}
}

type TestLogger struct {
	t *testing.T
}

func (t *TestLogger) Errorf(format string, args ...interface{}) {
	t.t.Helper()
	t.t.Logf("[error] "+format, args...)
}

func (t *TestLogger) Warnf(format string, args ...interface{}) {
	t.t.Helper()
	t.t.Logf("[warn] "+format, args...)
}

func (t *TestLogger) Debugf(format string, args ...interface{}) {
	t.t.Helper()
	t.t.Logf("[debug] "+format, args...)
}

func (t *TestLogger) Infof(format string, args ...interface{}) {
	t.t.Helper()
	t.t.Logf("[info] "+format, args...)
}

func NewTestLogger(t *testing.T) Logger {
	return &TestLogger{
		t: t,
	}
}

type FxLogger struct {
	logger Logger
}

func (f *FxLogger) LogEvent(event fxevent.Event) {
	var buf bytes.Buffer
	cl := fxevent.ConsoleLogger{W: &buf}
	cl.LogEvent(event)
	switch e := event.(type) {
	case *fxevent.Started:
		if e.Err != nil {
			f.logger.Errorf("Failed to start: %v", e.Err)
		} else {
			f.logger.Debugf("Started")
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			f.logger.Errorf("Failed to invoke: %v", e.Err)
		}
	default:
		if buf.Len() > 0 {
			f.logger.Debugf("%s", buf.String())
		}
	}
}

func NewFxLogger(logger Logger) fxevent.Logger {
	return &FxLogger{
		logger: logger,
	}
}
