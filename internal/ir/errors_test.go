package ir

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Message(t *testing.T) {
	err := NewUnsupportedPayloadError("texImage2D", "ImageData payloads are not encodable")
	assert.Equal(t, "UNSUPPORTED_PAYLOAD: texImage2D: ImageData payloads are not encodable", err.Error())

	wrapped := NewTransportError("getParameter", errors.New("host gone"))
	assert.Equal(t, "TRANSPORT: getParameter: host call failed: host gone", wrapped.Error())

	cfg := NewConfigurationError("callback queue is empty")
	assert.Equal(t, "CONFIGURATION: callback queue is empty", cfg.Error())
}

func TestError_Predicates(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", NewTransportError("getError", cause))

	assert.True(t, IsTransportError(err))
	assert.False(t, IsUnsupportedPayload(err))
	assert.False(t, IsConfigurationError(err))
	assert.ErrorIs(t, err, cause)

	assert.True(t, IsConfigurationError(NewConfigurationError("x")))
	assert.True(t, IsUnsupportedPayload(NewUnsupportedPayloadError("", "x")))
	assert.False(t, IsTransportError(cause))
}

func TestError_WithCall(t *testing.T) {
	base := NewUnsupportedPayloadError("", "bad")
	named := base.WithCall("bufferData")

	assert.Equal(t, "", base.Call)
	assert.Equal(t, "bufferData", named.Call)
}
