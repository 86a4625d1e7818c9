package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"

	"session_logger/internal/config"
)

// destination is a logrus hook that writes entries at or above a minimum
// severity to one output.
type destination struct {
	name      string
	threshold Level
	formatter logrus.Formatter

	mu  sync.Mutex
	out io.Writer
}

func newDestination(name string, out io.Writer, threshold Level, color bool) *destination {
	return &destination{
		name:      name,
		threshold: threshold,
		formatter: &lineFormatter{color: color},
		out:       out,
	}
}

func (d *destination) Levels() []logrus.Level {
	return levelsUpTo(d.threshold)
}

func (d *destination) Fire(e *logrus.Entry) error {
	line, err := d.formatter.Format(e)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.out.Write(line); err != nil {
		return fmt.Errorf("write to %s: %w", d.name, err)
	}
	return nil
}

// newFileWriter opens a size-rotated file in dir. Rotated backups of a single
// session are named by lumberjack and never match the archival pattern.
func newFileWriter(dir, name string, cfg config.Config) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    cfg.MaxSizeMB,  // megabytes
		MaxBackups: cfg.MaxBackups, // rotated files per session
		MaxAge:     cfg.MaxAgeDays, // days
		Compress:   false,
	}
}

// useColor resolves the colour mode against the console writer.
func useColor(mode config.ColorMode, w io.Writer) bool {
	switch mode {
	case config.ColorNever:
		return false
	case config.ColorAuto:
		return isTerminal(w)
	default:
		return true
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
