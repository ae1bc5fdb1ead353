package testutil

// FixedSessionGenerator returns the same recording session id every time.
//
// Recording a scenario twice with the same generator produces byte-identical
// message logs, which keeps golden comparisons stable.
//
// Thread-safety: FixedSessionGenerator is stateless and safe for concurrent use.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a generator for the given session id.
// If id is empty, Generate() returns "test-session-default".
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = "test-session-default"
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed session id.
//
// Implements store.SessionGenerator.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
