package store

import (
	"context"
	"fmt"

	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/transport"
)

// ReplayResult summarizes a replayed session.
type ReplayResult struct {
	Session  string
	Messages int
	Sync     int
	Frames   int

	// Mismatches lists the seqs of sync calls whose reply differs from
	// the recorded one.
	Mismatches []int64
}

// Replay re-sends a recorded session to t in send order. Every record's
// hash is verified before anything is sent, so a corrupted log replays
// nothing.
func Replay(ctx context.Context, st *Store, session string, t transport.Transport) (ReplayResult, error) {
	result := ReplayResult{Session: session}

	records, err := st.ReadSession(ctx, session)
	if err != nil {
		return result, fmt.Errorf("replay: %w", err)
	}
	if len(records) == 0 {
		return result, fmt.Errorf("replay: session %s has no messages", session)
	}
	for _, rec := range records {
		if err := rec.Verify(); err != nil {
			return result, fmt.Errorf("replay: %w", err)
		}
	}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Messages++

		switch rec.Kind {
		case transport.KindAsync:
			if rec.Body == ir.FrameEnd {
				result.Frames++
			}
			t.CallAsync(rec.Body)
		case transport.KindSync:
			result.Sync++
			reply, err := t.CallSync(rec.Body)
			if err != nil {
				return result, fmt.Errorf("replay seq %d: %w", rec.Seq, err)
			}
			if rec.Reply != nil && *rec.Reply != reply {
				result.Mismatches = append(result.Mismatches, rec.Seq)
			}
		default:
			return result, fmt.Errorf("replay seq %d: unknown kind %q", rec.Seq, rec.Kind)
		}
	}
	return result, nil
}
