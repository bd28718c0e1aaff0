package gostreams

import "go.uber.org/zap"

// logger receives debug events from the engine. It discards everything until SetLogger is called.
var logger = zap.NewNop()

// SetLogger sets the logger used for debug events, such as close handler failures and
// materialization of sorted streams. Passing nil restores the no-op logger.
// SetLogger is not safe to call while pipelines are being consumed.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}

	logger = l.Named("gostreams")
}
