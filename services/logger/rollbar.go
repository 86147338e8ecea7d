package logsvc

import (
	"io"
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/coursely/coursely/core"
)

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
	levelFatal
)

var levelNames = map[level]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
	levelFatal: "FATAL",
}

// RollbarLogger reports to Rollbar and mirrors every entry to a std logger.
// Debug entries are dropped unless the app runs in debug mode.
type RollbarLogger struct {
	std      *log.Logger
	minLevel level
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Address)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetCustom(map[string]interface{}{"app": conf.AppName})

	minLevel := levelInfo
	if conf.Debug {
		minLevel = levelDebug
	}
	return &RollbarLogger{std: std, minLevel: minLevel}
}

// NewDiscardLogger returns a disabled RollbarLogger writing nowhere, for tests.
func NewDiscardLogger() *RollbarLogger {
	l := &RollbarLogger{std: log.New(io.Discard, "", 0), minLevel: levelFatal}
	l.Enable(false)
	return l
}

func (l RollbarLogger) Enable(enabled bool) {
	rollbar.SetEnabled(enabled)
}

// log expects args as: error, map[string]interface{} (both optional, any order).
func (l RollbarLogger) log(lvl level, msg string, args []interface{}) {
	if lvl < l.minLevel {
		return
	}

	rbArgs := append([]interface{}{msg}, args...)
	switch lvl {
	case levelDebug:
		rollbar.Debug(rbArgs...)
	case levelInfo:
		rollbar.Info(rbArgs...)
	case levelWarn:
		rollbar.Warning(rbArgs...)
	case levelError:
		rollbar.Error(rbArgs...)
	case levelFatal:
		rollbar.Critical(rbArgs...)
		rollbar.Wait()
	}

	l.std.Printf("[%s] %s", levelNames[lvl], msg)
	for _, arg := range args {
		l.std.Printf("%+v", arg)
	}
}

func (l RollbarLogger) Debug(msg string, args ...interface{}) { l.log(levelDebug, msg, args) }
func (l RollbarLogger) Info(msg string, args ...interface{})  { l.log(levelInfo, msg, args) }
func (l RollbarLogger) Warn(msg string, args ...interface{})  { l.log(levelWarn, msg, args) }
func (l RollbarLogger) Error(msg string, args ...interface{}) { l.log(levelError, msg, args) }

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.log(levelFatal, msg, args)
	l.std.Fatal(msg)
}
