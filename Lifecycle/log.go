package Lifecycle

import (
	"io"
	"log/slog"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// L is the logger used by every package of the module. It discards all output until SetLogger is called.
var L = discard

// SetLogger installs l as L. A nil l restores the discarding logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard
	}
	L = l
}
