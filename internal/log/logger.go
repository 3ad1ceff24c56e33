package log

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// global stores the process-wide logger so every package can log without
// threading a logger through call chains that otherwise carry no state.
var global atomic.Pointer[zap.SugaredLogger]

func init() {
	global.Store(newConsoleLogger(zapcore.WarnLevel).Sugar())
}

// LevelForVerbosity maps the CLI -v 0..3 count onto a zap level.
// Verbosity 3 keeps the Debug level; the per-line trace output it adds is
// gated separately by the ingestion session.
func LevelForVerbosity(v int) zapcore.Level {
	switch {
	case v <= 0:
		return zapcore.WarnLevel
	case v == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Configure replaces the global logger. If filename is non-empty, log output
// goes to a rotated file instead of stderr.
func Configure(verbosity int, filename string) {
	level := LevelForVerbosity(verbosity)

	var core zapcore.Core
	if filename != "" {
		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    10, // MB
			MaxBackups: 3,
		})
		core = zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			writer,
			level,
		)
	} else {
		core = consoleCore(level)
	}

	logger := zap.New(core)
	zap.ReplaceGlobals(logger)
	global.Store(logger.Sugar())
}

func consoleCore(level zapcore.Level) zapcore.Core {
	cfg := zap.NewDevelopmentEncoderConfig()
	return zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), level)
}

func newConsoleLogger(level zapcore.Level) *zap.Logger {
	return zap.New(consoleCore(level))
}

func Debug(msg string, args ...any) { global.Load().Debugw(msg, args...) }
func Info(msg string, args ...any)  { global.Load().Infow(msg, args...) }
func Warn(msg string, args ...any)  { global.Load().Warnw(msg, args...) }
func Error(msg string, args ...any) { global.Load().Errorw(msg, args...) }

// Sync flushes any buffered log entries. Called on process exit.
func Sync() {
	_ = global.Load().Sync()
}
