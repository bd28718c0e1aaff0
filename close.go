package gostreams

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// CloseFunc releases a resource held by a stream.
type CloseFunc func() error

// closeChain holds the close handlers shared by a pipeline and all pipelines derived from it.
type closeChain struct {
	handlers []CloseFunc
	closed   bool
}

// add registers handler to run after the handlers registered so far.
// Handlers added after the chain was closed never run.
func (c *closeChain) add(handler CloseFunc) {
	if c.closed {
		return
	}

	c.handlers = append(c.handlers, handler)
}

// close runs all handlers in order of registration, once.
// Every handler runs even if an earlier one fails or panics. Failures are appended to the
// first one using multierr. If a handler panicked, the first panic is resumed after all
// handlers have run.
func (c *closeChain) close() error {
	if c.closed {
		return nil
	}

	c.closed = true

	handlers := c.handlers
	c.handlers = nil

	var (
		err       error
		recovered any
		panicked  bool
	)

	for _, handler := range handlers {
		r, p, handlerErr := runCloseHandler(handler)
		err = multierr.Append(err, handlerErr)

		if p && !panicked {
			recovered, panicked = r, true
		}
	}

	if err != nil {
		logger.Debug("close handlers failed",
			zap.Int("handlers", len(handlers)),
			zap.Int("failures", len(multierr.Errors(err))),
			zap.Error(err))
	}

	if panicked {
		panic(recovered)
	}

	return err
}

// mergeCloseChains returns a chain that closes all of the given chains, in order.
func mergeCloseChains(chains ...*closeChain) *closeChain {
	merged := &closeChain{}

	for _, chain := range chains {
		merged.add(chain.close)
	}

	return merged
}

func runCloseHandler(handler CloseFunc) (recovered any, panicked bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			recovered, panicked = r, true
		}
	}()

	return nil, false, handler()
}
