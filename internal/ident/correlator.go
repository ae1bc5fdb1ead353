// Package ident mints the correlation ids that bind in-process handles to
// host-side resources.
package ident

import (
	"fmt"
	"sync/atomic"

	"github.com/roach88/glbridge/internal/ir"
)

// MaxID is the largest id a JSON host can parse exactly (2^53-1).
const MaxID int64 = 1<<53 - 1

// Correlator is the single source of handle identity for one bridge.
//
// Ids start at 1, strictly increase and are never reused. Running past
// MaxID is a logic error: Next panics with a configuration *ir.Error rather
// than hand out an id the host would round.
//
// Thread-safety: Correlator is safe for concurrent use (atomic operations),
// although a bridge calls Next from one goroutine.
type Correlator struct {
	last atomic.Int64
}

// NewCorrelator creates a correlator whose first id is 1.
func NewCorrelator() *Correlator {
	return &Correlator{}
}

// NewCorrelatorAt creates a correlator that has already issued ids up to
// last. Used to resume numbering when replaying a recording.
func NewCorrelatorAt(last int64) *Correlator {
	c := &Correlator{}
	c.last.Store(last)
	return c
}

// Next mints a new id.
func (c *Correlator) Next() int64 {
	id := c.last.Add(1)
	if id > MaxID || id <= 0 {
		panic(ir.NewConfigurationError(fmt.Sprintf("correlation ids exhausted at %d", MaxID)))
	}
	return id
}

// Current returns the last minted id, or 0 if none has been minted.
func (c *Correlator) Current() int64 {
	return c.last.Load()
}
