package logger

import (
	"bytes"
	"strings"

	"github.com/sirupsen/logrus"
)

// TimestampLayout renders entry times like JavaScript's toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// padWidth lines messages up as if the longest level name were seven
// characters, plus one separating space.
const padWidth = 8

// lineFormatter renders "<time> - <LEVEL>:    <pad><message>".
type lineFormatter struct {
	color bool
}

func (f *lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var name string
	if lv, ok := fromLogrus(e.Level); ok {
		name = strings.ToUpper(lv.String())
	} else {
		name = strings.ToUpper(e.Level.String())
	}

	token := name
	if f.color {
		if lv, ok := fromLogrus(e.Level); ok {
			token = levelColors[lv] + name + colorReset
		}
	}

	b := &bytes.Buffer{}
	b.WriteString(e.Time.UTC().Format(TimestampLayout))
	b.WriteString(" - ")
	b.WriteString(token)
	b.WriteString(":    ")
	if pad := padWidth - len(name); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(e.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}
