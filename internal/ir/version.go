package ir

// Version constants for the wire protocol and the bridge.
const (
	// ProtocolVersion is the descriptor schema version.
	ProtocolVersion = "1"

	// BridgeVersion is the glbridge release version.
	BridgeVersion = "0.1.0"
)
