package logger

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is a message severity. Lower values are more severe.
type Level uint32

const (
	ErrorLevel Level = iota
	WarnLevel
	InfoLevel
	DebugLevel
)

var levelNames = [...]string{"error", "warn", "info", "debug"}

// Display colours, as ANSI SGR sequences.
var levelColors = map[Level]string{
	ErrorLevel: "\x1b[1m\x1b[31m", // bold red
	WarnLevel:  "\x1b[1m\x1b[33m", // bold yellow
	InfoLevel:  "\x1b[36m",        // cyan
	DebugLevel: "\x1b[32m",        // green
}

const colorReset = "\x1b[0m"

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel maps a level name to a Level.
func ParseLevel(s string) (Level, bool) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), true
		}
	}
	return 0, false
}

func (l Level) logrus() logrus.Level {
	return logrus.ErrorLevel + logrus.Level(l)
}

func fromLogrus(lv logrus.Level) (Level, bool) {
	if lv < logrus.ErrorLevel || lv > logrus.DebugLevel {
		return 0, false
	}
	return Level(lv - logrus.ErrorLevel), true
}

// levelsUpTo lists the logrus levels a destination with the given minimum
// severity accepts.
func levelsUpTo(threshold Level) []logrus.Level {
	return logrus.AllLevels[:threshold.logrus()+1]
}
