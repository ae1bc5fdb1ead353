// Package transport defines the two primitives through which the bridge
// reaches its host, plus in-process implementations used for delivery
// ordering, recording and tests.
package transport

// Transport is implemented by a host.
//
// CallAsync accepts a serialized message and must not block the caller.
// Messages from one bridge must be delivered in the order they were issued.
// Failures are never reported back.
//
// CallSync delivers a serialized descriptor and blocks until the host
// replies. The reply is a JSON value, or {"resultString": s} when the
// result is text.
type Transport interface {
	CallSync(msg string) (string, error)
	CallAsync(msg string)
}

// Funcs adapts a pair of functions to Transport. A nil Sync replies
// "null"; a nil Async discards the message.
type Funcs struct {
	Sync  func(msg string) (string, error)
	Async func(msg string)
}

func (f Funcs) CallSync(msg string) (string, error) {
	if f.Sync == nil {
		return "null", nil
	}
	return f.Sync(msg)
}

func (f Funcs) CallAsync(msg string) {
	if f.Async != nil {
		f.Async(msg)
	}
}

// Discard is a Transport that drops asynchronous messages and answers
// every synchronous call with null.
var Discard Transport = Funcs{}
