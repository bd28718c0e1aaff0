package gostreams

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	is := is.New(t)

	core, logs := observer.New(zapcore.DebugLevel)

	SetLogger(zap.New(core))
	defer SetLogger(nil)

	ints := Of(3, 1, 2).OnClose(func() error {
		return errors.New("h1 failed")
	}).OnClose(func() error {
		return errors.New("h2 failed")
	})

	_, _ = ToSlice(Sorted(ints))
	_ = ints.Close()

	sorted := logs.FilterMessage("sorted stream materialized").All()
	is.Equal(len(sorted), 1)
	is.Equal(sorted[0].ContextMap()["elements"], int64(3))

	closed := logs.FilterMessage("close handlers failed").All()
	is.Equal(len(closed), 1)
	is.Equal(closed[0].ContextMap()["handlers"], int64(2))
	is.Equal(closed[0].ContextMap()["failures"], int64(2))
	is.Equal(closed[0].LoggerName, "gostreams")
}
