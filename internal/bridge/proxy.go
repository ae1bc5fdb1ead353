package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/glbridge/internal/calls"
	"github.com/roach88/glbridge/internal/encoder"
	"github.com/roach88/glbridge/internal/gl"
	"github.com/roach88/glbridge/internal/ir"
)

// Proxy is an intercepting gl.Context.
type Proxy struct {
	bridge      *Bridge
	real        gl.Context
	passThrough bool
	width       int
	height      int
}

var _ gl.Context = (*Proxy)(nil)

// Mode returns "local" or "bridged".
func (p *Proxy) Mode() string {
	if p.passThrough {
		return "local"
	}
	return "bridged"
}

// Unwrap returns the real context, which is nil in bridged mode.
func (p *Proxy) Unwrap() gl.Context {
	return p.real
}

// Call invokes a call by name. It reaches calls outside the declared
// surface; in local mode the real context must implement gl.Invoker.
//
// Results are plain Go values: *gl.Handle for creation calls, the decoded
// reply (see ir.ToGo) for sync calls in bridged mode.
func (p *Proxy) Call(name string, args ...any) (any, error) {
	var local func() (any, error)
	if p.passThrough {
		inv, ok := p.real.(gl.Invoker)
		if !ok {
			return nil, configurationError(fmt.Sprintf("%s: cannot call by name", name), ErrNoInvoker)
		}
		local = func() (any, error) { return inv.Invoke(name, args) }
	}
	res, err := p.invoke(calls.Name(name), local, args)
	if err != nil {
		return nil, err
	}
	if v, ok := res.(ir.Value); ok {
		return ir.ToGo(v), nil
	}
	return res, nil
}

// invoke is the single interception path. In local mode it runs local
// first and returns its result; in bridged mode the result comes from the
// encoder or the host's reply.
func (p *Proxy) invoke(name calls.Name, local func() (any, error), args []any) (any, error) {
	b := p.bridge
	var (
		raw any
		enc *encoder.Encoded
		err error
	)
	if p.passThrough {
		if raw, err = local(); err != nil {
			return nil, err
		}
		enc, err = b.encoder.EncodeLocal(name, raw, args)
	} else {
		enc, err = b.encoder.Encode(name, args)
	}
	if err != nil {
		b.logger.Warn("call rejected", "call", name, "error", err)
		return nil, err
	}

	switch enc.Mode {
	case encoder.ModeNone:
		b.logger.Debug("call suppressed", "call", name)
		return enc.Result, nil

	case encoder.ModeAsync:
		if enc.Descriptor.CorrelationID != nil {
			b.logger.Debug("call intercepted", "call", name, "mode", enc.Mode.String(), "correlation_id", *enc.Descriptor.CorrelationID)
		} else {
			b.logger.Debug("call intercepted", "call", name, "mode", enc.Mode.String())
		}
		b.transport.CallAsync(enc.Message)
		if enc.Result != nil {
			return enc.Result, nil
		}
		return raw, nil

	case encoder.ModeSync:
		b.logger.Debug("call intercepted", "call", name, "mode", enc.Mode.String())
		reply, err := b.transport.CallSync(enc.Message)
		if err != nil {
			b.logger.Warn("host call failed", "call", name, "error", err)
			return nil, ir.NewTransportError(string(name), err)
		}
		if p.passThrough {
			return raw, nil
		}
		v, err := b.encoder.Decode(name, reply)
		if err != nil {
			b.logger.Warn("malformed reply", "call", name, "reply", reply, "error", err)
			return nil, err
		}
		return v, nil
	}
	return nil, ir.NewConfigurationError(fmt.Sprintf("unknown delivery mode %v", enc.Mode)).WithCall(string(name))
}

// exec intercepts a call that returns nothing.
func (p *Proxy) exec(name calls.Name, local func() error, args ...any) error {
	_, err := p.invoke(name, func() (any, error) { return nil, local() }, args)
	return err
}

// create intercepts a resource creation call.
func (p *Proxy) create(name calls.Name, local func() (*gl.Handle, error), args ...any) (*gl.Handle, error) {
	res, err := p.invoke(name, func() (any, error) {
		h, err := local()
		if h == nil {
			// A nil *gl.Handle must not reach the encoder as a typed nil.
			return nil, err
		}
		return h, err
	}, args)
	if err != nil || res == nil {
		return nil, err
	}
	h, ok := res.(*gl.Handle)
	if !ok {
		return nil, ir.NewConfigurationError(fmt.Sprintf("creation returned %T, not a handle", res)).WithCall(string(name))
	}
	return h, nil
}

// query intercepts a value-returning call and converts the result to T.
func query[T any](p *Proxy, name calls.Name, local func() (T, error), args ...any) (T, error) {
	var zero T
	res, err := p.invoke(name, func() (any, error) { return local() }, args)
	if err != nil {
		return zero, err
	}
	return convert[T](name, res)
}

// convert turns an intercepted result into T. Local results already have
// type T; bridged replies are ir.Values decoded through their JSON form.
// A nil result converts to the zero value.
func convert[T any](name calls.Name, res any) (T, error) {
	var out T
	switch r := res.(type) {
	case nil:
		return out, nil
	case ir.Value:
		if dst, ok := any(&out).(*any); ok {
			*dst = ir.ToGo(r)
			return out, nil
		}
		data, err := ir.MarshalValue(r)
		if err != nil {
			return out, ir.NewTransportError(string(name), err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return out, ir.NewTransportError(string(name), fmt.Errorf("reply %s does not fit %T: %w", data, out, err))
		}
		return out, nil
	case T:
		return r, nil
	}
	return out, ir.NewTransportError(string(name), fmt.Errorf("unexpected result type %T", res))
}
