// Package logger sets up the process-wide session logger: console output plus
// per-session files under the log directory, pruned on startup.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"

	"session_logger/internal/config"
	"session_logger/internal/retention"
)

// DebugDirName is the subdirectory holding debug-level files outside production.
const DebugDirName = "debug"

// Logger writes each message to every destination whose minimum severity
// admits it.
type Logger struct {
	log     *logrus.Logger
	files   []*lumberjack.Logger
	session string
	deleted int
}

type options struct {
	console io.Writer
	now     func() time.Time
}

// Option customises Build.
type Option func(*options)

// WithConsole replaces stdout as the console destination.
func WithConsole(w io.Writer) Option {
	return func(o *options) { o.console = w }
}

// WithClock sets the clock used to name the session files.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Build prepares the log directories and wires the destinations. Retention
// runs before any file is opened, so this must be called once at startup.
func Build(cfg config.Config, opts ...Option) (*Logger, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	debug := !cfg.Environment.IsProduction()
	debugDir := filepath.Join(cfg.Dir, DebugDirName)

	deleted, err := retention.PrepareLogDirectory(cfg.Dir, cfg.MaxSavedLogs)
	if err != nil {
		return nil, fmt.Errorf("prepare log directory: %w", err)
	}
	if debug {
		n, err := retention.PrepareLogDirectory(debugDir, cfg.MaxSavedLogs)
		if err != nil {
			return nil, fmt.Errorf("prepare debug log directory: %w", err)
		}
		deleted += n
	}

	l := &Logger{
		log:     logrus.New(),
		session: retention.ArchiveName(o.now()),
		deleted: deleted,
	}
	l.log.SetOutput(io.Discard)
	l.log.SetLevel(DebugLevel.logrus())
	l.log.SetFormatter(&lineFormatter{})

	console := o.console
	if console == nil {
		console = os.Stdout
	}
	color := useColor(cfg.Color, console)
	if color && console == os.Stdout {
		console = colorable.NewColorableStdout()
	}
	consoleMin := InfoLevel
	if debug {
		consoleMin = DebugLevel
	}
	l.log.AddHook(newDestination("console", console, consoleMin, color))

	l.addFile(cfg.Dir, retention.LatestName, InfoLevel, cfg)
	l.addFile(cfg.Dir, l.session, InfoLevel, cfg)
	if debug {
		l.addFile(debugDir, retention.LatestName, DebugLevel, cfg)
		l.addFile(debugDir, l.session, DebugLevel, cfg)
	}

	l.Debugf("Deleted %d logs as part of cleanup", deleted)
	return l, nil
}

func (l *Logger) addFile(dir, name string, threshold Level, cfg config.Config) {
	w := newFileWriter(dir, name, cfg)
	l.files = append(l.files, w)
	l.log.AddHook(newDestination(w.Filename, w, threshold, false))
}

// Deleted is the number of archival logs removed during startup cleanup.
func (l *Logger) Deleted() int { return l.deleted }

// SessionFile is the archival file name used by this session.
func (l *Logger) SessionFile() string { return l.session }

func (l *Logger) Log(level Level, msg string) { l.log.Log(level.logrus(), msg) }

func (l *Logger) Error(msg string) { l.Log(ErrorLevel, msg) }
func (l *Logger) Warn(msg string)  { l.Log(WarnLevel, msg) }
func (l *Logger) Info(msg string)  { l.Log(InfoLevel, msg) }
func (l *Logger) Debug(msg string) { l.Log(DebugLevel, msg) }

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Log(ErrorLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.Log(WarnLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.Log(InfoLevel, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.Log(DebugLevel, fmt.Sprintf(format, args...))
}

// Writer returns a writer that logs each line written to it at level.
// The caller must close it.
func (l *Logger) Writer(level Level) *io.PipeWriter {
	return l.log.WriterLevel(level.logrus())
}

// Close releases the file destinations. Messages logged afterwards reopen them.
func (l *Logger) Close() error {
	var errs []error
	for _, f := range l.files {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
