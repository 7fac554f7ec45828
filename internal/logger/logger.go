// Package logger builds the logrus logger shared by the CLI and the
// installation pipeline.
package logger

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

type plainFormatter int

// Format prints the message followed by sorted key: value pairs.
func (*plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if len(entry.Data) == 0 {
		return []byte(entry.Message + "\n"), nil
	}
	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(entry.Message)
	for _, key := range keys {
		fmt.Fprintf(&b, " %s: %v", key, entry.Data[key])
	}
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// New initializes a plain logger writing to w at the given level.
// An empty level falls back to DefaultLevel.
func New(level string, w io.Writer) (*logrus.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(lvl)
	l.SetFormatter(new(plainFormatter))
	return l, nil
}

// Discard returns a logger that drops every entry.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
