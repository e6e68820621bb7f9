// Package errors renders command failures for the terminal. An error may
// carry a hint naming the command that fixes it.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/timecapsule/internal/logger"
)

type hinted struct {
	err  error
	hint string
}

func (h *hinted) Error() string { return h.err.Error() }
func (h *hinted) Unwrap() error { return h.err }

// WithHint attaches a suggested next step to err. Nil stays nil.
func WithHint(err error, hint string) error {
	if err == nil {
		return nil
	}
	return &hinted{err: err, hint: hint}
}

// Hint returns the outermost hint in err's chain
func Hint(err error) string {
	var h *hinted
	if stderrors.As(err, &h) {
		return h.hint
	}
	return ""
}

// Format renders err as "Error: ..." followed by a "Hint: ..." line when
// one is attached
func Format(err error) string {
	if err == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("Error: ")
	b.WriteString(err.Error())
	if hint := Hint(err); hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(hint)
	}
	return b.String()
}

// Fatal logs err and exits with status 1. A nil err is a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	keyvals := []any{"error", err}
	if hint := Hint(err); hint != "" {
		keyvals = append(keyvals, "hint", hint)
	}
	logger.Error("command failed", keyvals...)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
