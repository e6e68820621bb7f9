// Package logger writes a rotating log file under the config directory.
// Debug mode lowers the level and mirrors records to stderr; otherwise the
// terminal is left to the TUI.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/timecapsule/internal/constants"
)

// Logger is nil until Init succeeds; the helpers below drop records then.
var Logger *log.Logger

var rotator *lumberjack.Logger

type Config struct {
	Debug     bool
	ConfigDir string
	// Stderr receives the debug mirror, os.Stderr when nil
	Stderr io.Writer
}

// LogFile is the active log file for a config directory
func LogFile(configDir string) string {
	return filepath.Join(configDir, "logs", constants.BinaryName+".log")
}

func Init(cfg Config) error {
	path := LogFile(cfg.ConfigDir)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if err := Close(); err != nil {
		return err
	}
	rotator = &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	var out io.Writer = rotator
	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
		mirror := cfg.Stderr
		if mirror == nil {
			mirror = os.Stderr
		}
		out = io.MultiWriter(mirror, rotator)
	}

	Logger = log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          constants.BinaryName,
		ReportTimestamp: true,
		ReportCaller:    cfg.Debug,
	})
	return nil
}

// Close releases the log file. Records logged afterwards reopen it.
func Close() error {
	if rotator == nil {
		return nil
	}
	return rotator.Close()
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}
