// Package encoder classifies intercepted calls and turns them into wire
// descriptors.
package encoder

import (
	"fmt"

	"github.com/roach88/glbridge/internal/calls"
	"github.com/roach88/glbridge/internal/gl"
	"github.com/roach88/glbridge/internal/ident"
	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/normalize"
)

// Mode is the delivery mode of an encoded call.
type Mode int

const (
	// ModeNone means nothing is sent.
	ModeNone Mode = iota
	// ModeAsync means the message is sent fire-and-forget.
	ModeAsync
	// ModeSync means the caller blocks on the host's reply.
	ModeSync
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeAsync:
		return "async"
	case ModeSync:
		return "sync"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Encoded is the outcome of encoding one call.
type Encoded struct {
	// Descriptor is nil when Mode is ModeNone.
	Descriptor *ir.Descriptor

	// Message is the serialized descriptor.
	Message string

	Mode Mode

	// Result is the value the caller receives before any reply is applied:
	// the raw result for suppressed calls, the stamped handle for creation
	// calls, nil otherwise. A local creation that returned nil has a nil
	// Result.
	Result any
}

// Encoder owns classification and id minting for one bridge.
// It is not safe for concurrent use.
type Encoder struct {
	table calls.Table
	ids   *ident.Correlator
}

// New creates an encoder. A nil table uses calls.Default(); a nil
// correlator starts a fresh one.
func New(table calls.Table, ids *ident.Correlator) *Encoder {
	if table == nil {
		table = calls.Default()
	}
	if ids == nil {
		ids = ident.NewCorrelator()
	}
	return &Encoder{table: table, ids: ids}
}

// Correlator returns the id source shared by this encoder.
func (e *Encoder) Correlator() *ident.Correlator {
	return e.ids
}

// Classify returns the table entry for name.
func (e *Encoder) Classify(name calls.Name) calls.Entry {
	return e.table.Lookup(name)
}

// Encode classifies a call made through a bridged proxy and builds its
// descriptor. Creation calls get a fresh handle. args are never modified.
func (e *Encoder) Encode(name calls.Name, args []any) (*Encoded, error) {
	return e.encode(name, nil, args, false)
}

// EncodeLocal is Encode for a call already executed on the real context.
// raw is its result. A nil creation result still mints an id and emits the
// descriptor, but the caller receives nil.
func (e *Encoder) EncodeLocal(name calls.Name, raw any, args []any) (*Encoded, error) {
	return e.encode(name, raw, args, true)
}

func (e *Encoder) encode(name calls.Name, raw any, args []any, local bool) (*Encoded, error) {
	if h, ok := raw.(*gl.Handle); ok && h == nil {
		raw = nil
	}
	entry := e.table.Lookup(name)
	if entry.Class == calls.ClassSuppressed {
		return &Encoded{Mode: ModeNone, Result: raw}, nil
	}

	draft := normalize.NewDraft(string(name), args)
	if entry.Normalize != nil {
		if err := entry.Normalize(draft); err != nil {
			return nil, err
		}
	}
	desc, err := draft.Descriptor()
	if err != nil {
		return nil, err
	}

	out := &Encoded{Descriptor: desc, Mode: ModeAsync}
	switch entry.Class {
	case calls.ClassSync:
		out.Mode = ModeSync
	case calls.ClassCreate:
		if local && raw == nil {
			desc.WithCorrelationID(e.ids.Next())
			break
		}
		h, err := handleFor(entry.Kind, raw)
		if err != nil {
			return nil, ir.NewConfigurationError(err.Error()).WithCall(string(name))
		}
		id := e.ids.Next()
		if err := h.Stamp(id); err != nil {
			return nil, ir.NewConfigurationError(err.Error()).WithCall(string(name))
		}
		desc.WithCorrelationID(id)
		out.Result = h
	}

	out.Message, err = desc.Encode()
	if err != nil {
		return nil, ir.NewUnsupportedPayloadError(string(name), err.Error())
	}
	return out, nil
}

// handleFor returns the handle to stamp for a creation call. Local results
// that are not handles are wrapped; bridged calls get a fresh handle.
func handleFor(kind gl.Kind, raw any) (*gl.Handle, error) {
	switch r := raw.(type) {
	case nil:
		return gl.NewHandle(kind), nil
	case *gl.Handle:
		if r.CorrelationID() != 0 {
			return nil, fmt.Errorf("context returned %s, which is already correlated", r)
		}
		return r, nil
	default:
		return gl.NewNativeHandle(kind, raw), nil
	}
}

// Decode parses the reply to a sync call. Failures are transport errors
// attributed to the call.
func (e *Encoder) Decode(name calls.Name, reply string) (ir.Value, error) {
	v, err := ir.DecodeReply(reply)
	if err != nil {
		return nil, ir.NewTransportError(string(name), err)
	}
	return v, nil
}
