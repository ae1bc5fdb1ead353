package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/testutil"
	"github.com/roach88/glbridge/internal/transport"
)

func TestTee_RecordsAndForwards(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	session := testutil.NewFixedSessionGenerator("rec-1").Generate()

	next := transport.NewRecorder()
	next.SetReply("getError", "0")
	tee, err := NewTee(ctx, s, session, next, nil)
	require.NoError(t, err)
	assert.Equal(t, "rec-1", tee.Session())

	tee.CallAsync(`{"name":"createTexture","args":[],"correlationId":1}`)
	reply, err := tee.CallSync(`{"name":"getError","args":[]}`)
	require.NoError(t, err)
	assert.Equal(t, "0", reply)
	tee.CallAsync(ir.FrameEnd)
	require.NoError(t, tee.Err())

	assert.Equal(t, []string{
		`{"name":"createTexture","args":[],"correlationId":1}`,
		`{"name":"getError","args":[]}`,
		ir.FrameEnd,
	}, next.Bodies())

	records, err := s.ReadSession(ctx, session)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, transport.KindSync, records[1].Kind)
	require.NotNil(t, records[1].Reply)
	assert.Equal(t, "0", *records[1].Reply)
}

func TestTee_ResumesSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	first, err := NewTee(ctx, s, "s", transport.Discard, nil)
	require.NoError(t, err)
	first.CallAsync(ir.FrameBegin)
	first.CallAsync(ir.FrameEnd)

	second, err := NewTee(ctx, s, "s", transport.Discard, nil)
	require.NoError(t, err)
	second.CallAsync(ir.FrameBegin)

	last, err := s.LastSeq(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(3), last)
}

func TestTee_FailedSyncHasNoReply(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	failing := transport.Funcs{Sync: func(string) (string, error) { return "", errors.New("down") }}

	tee, err := NewTee(ctx, s, "s", failing, nil)
	require.NoError(t, err)
	_, err = tee.CallSync(`{"name":"getError","args":[]}`)
	assert.EqualError(t, err, "down")

	records, err := s.ReadSession(ctx, "s")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Nil(t, records[0].Reply)
}

func TestTee_BadMessageStillForwarded(t *testing.T) {
	s := createTestStore(t)
	next := transport.NewRecorder()
	tee, err := NewTee(context.Background(), s, "s", next, nil)
	require.NoError(t, err)

	tee.CallAsync(`garbage`)
	assert.Equal(t, []string{"garbage"}, next.Bodies())
	require.Error(t, tee.Err())
	assert.Contains(t, tee.Err().Error(), "record session s")
}
