// Package ir provides the wire representation shared by every glbridge layer.
//
// This package holds the value model for call arguments, the Call
// Descriptor and its JSON form, reply decoding, canonical JSON for hashing,
// and the error taxonomy. All other internal packages import ir; ir imports
// nothing internal.
//
// Key constraints:
//   - Values are a sealed set: Null, String, Int, Float, Bool, Array, Object
//   - Floats must be finite (JSON has no NaN or Inf)
//   - Descriptor field presence, not field value, tells the host the call kind
//   - Canonical JSON (RFC 8785 key order, NFC strings) is used only for hashing
package ir
