package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for message hashes. The version suffix allows the
// algorithm to change without colliding with older recordings.
const (
	DomainDescriptor = "glbridge/descriptor/v1"
	DomainSignal     = "glbridge/signal/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// DescriptorHash returns the content hash of a descriptor's canonical form.
// Two calls with equal name, args and tags hash identically regardless of
// the key order or escaping of their wire form.
func DescriptorHash(d *Descriptor) (string, error) {
	canonical, err := MarshalCanonical(d)
	if err != nil {
		return "", fmt.Errorf("DescriptorHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainDescriptor, canonical), nil
}

// MessageHash hashes a raw transport message: frame signals by name,
// everything else as a descriptor.
func MessageHash(msg string) (string, error) {
	if IsFrameSignal(msg) {
		return hashWithDomain(DomainSignal, []byte(msg)), nil
	}
	d, err := ParseDescriptor(msg)
	if err != nil {
		return "", fmt.Errorf("MessageHash: %w", err)
	}
	return DescriptorHash(d)
}

// MustDescriptorHash is like DescriptorHash but panics on error.
// Use only in tests or when the descriptor is known to be valid.
func MustDescriptorHash(d *Descriptor) string {
	h, err := DescriptorHash(d)
	if err != nil {
		panic(err)
	}
	return h
}
