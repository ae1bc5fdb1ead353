package bridge

import (
	"errors"

	"github.com/roach88/glbridge/internal/ir"
)

var (
	// ErrAlreadyWrapped is returned when Wrap is given a Proxy.
	// Interception does not nest.
	ErrAlreadyWrapped = errors.New("context is already wrapped")

	// ErrFramesInstalled is returned by a second InstallFrames.
	ErrFramesInstalled = errors.New("frame scheduler already installed")

	// ErrNoInvoker is returned by Proxy.Call in local mode when the real
	// context cannot execute calls by name.
	ErrNoInvoker = errors.New("context does not implement gl.Invoker")
)

func configurationError(msg string, cause error) *ir.Error {
	e := ir.NewConfigurationError(msg)
	e.Err = cause
	return e
}
