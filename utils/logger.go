package utils

import (
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// NewLogger returns a logfmt logger stamped with UTC time, filtered at info
// or, with debug set, at debug
func NewLogger(w io.Writer, debug bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	lvl := level.AllowInfo()
	if debug {
		lvl = level.AllowDebug()
	}
	return level.NewFilter(logger, lvl)
}
