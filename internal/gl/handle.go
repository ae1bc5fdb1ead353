package gl

import "fmt"

// Handle is the in-process stand-in for a host-side resource.
//
// A handle is created by a creation-class call and stamped with its
// correlation id exactly once, by the bridge, before the caller sees it.
// Native holds the real resource in local mode and is nil in bridged mode.
type Handle struct {
	Kind   Kind
	Native any

	id int64
}

// NewHandle creates an unstamped handle of the given kind.
func NewHandle(kind Kind) *Handle {
	return &Handle{Kind: kind}
}

// NewNativeHandle wraps a real resource returned by an underlying context.
func NewNativeHandle(kind Kind, native any) *Handle {
	return &Handle{Kind: kind, Native: native}
}

// CorrelationID returns the id binding this handle to its host resource,
// or 0 if it has not been stamped. Safe on a nil handle.
func (h *Handle) CorrelationID() int64 {
	if h == nil {
		return 0
	}
	return h.id
}

// Stamp assigns the correlation id. A handle can be stamped only once.
func (h *Handle) Stamp(id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid correlation id %d", id)
	}
	if h.id != 0 {
		return fmt.Errorf("%s handle already stamped with id %d", h.Kind, h.id)
	}
	h.id = id
	return nil
}

func (h *Handle) String() string {
	if h == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", h.Kind, h.id)
}
