package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startPipeline(t *testing.T, next Transport) (*Pipeline, context.CancelFunc, <-chan error) {
	t.Helper()
	p := NewPipeline(next, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()
	t.Cleanup(cancel)
	return p, cancel, done
}

func TestPipeline_DeliversInOrder(t *testing.T) {
	rec := NewRecorder()
	p, _, done := startPipeline(t, rec)

	for i := 0; i < 100; i++ {
		p.CallAsync(fmt.Sprintf("m%d", i))
	}
	p.Close()
	require.NoError(t, <-done)

	bodies := rec.Bodies()
	require.Len(t, bodies, 100)
	for i, b := range bodies {
		assert.Equal(t, fmt.Sprintf("m%d", i), b)
	}
}

func TestPipeline_SyncFlushesEarlierAsync(t *testing.T) {
	rec := NewRecorder()
	p, _, _ := startPipeline(t, rec)

	p.CallAsync(`{"name":"a","args":[]}`)
	p.CallAsync(`{"name":"b","args":[]}`)
	_, err := p.CallSync(`{"name":"getParameter","args":[]}`)
	require.NoError(t, err)

	assert.Equal(t, []Message{
		{Kind: KindAsync, Body: `{"name":"a","args":[]}`},
		{Kind: KindAsync, Body: `{"name":"b","args":[]}`},
		{Kind: KindSync, Body: `{"name":"getParameter","args":[]}`},
	}, rec.Messages())
}

func TestPipeline_AsyncDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	var mu sync.Mutex
	var got []string
	slow := Funcs{Async: func(msg string) {
		<-release
		mu.Lock()
		got = append(got, msg)
		mu.Unlock()
	}}
	p, _, done := startPipeline(t, slow)

	returned := make(chan struct{})
	go func() {
		p.CallAsync("x")
		p.CallAsync("y")
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("CallAsync blocked on a slow host")
	}

	close(release)
	require.NoError(t, p.Flush())
	enq, del := p.Stats()
	assert.Equal(t, int64(2), enq)
	assert.Equal(t, int64(2), del)

	p.Close()
	require.NoError(t, <-done)
	mu.Lock()
	assert.Equal(t, []string{"x", "y"}, got)
	mu.Unlock()
}

func TestPipeline_CancelFailsPendingSync(t *testing.T) {
	entered := make(chan struct{}, 1)
	release := make(chan struct{})
	stuck := Funcs{Async: func(string) {
		entered <- struct{}{}
		<-release
	}}
	p, cancel, done := startPipeline(t, stuck)

	p.CallAsync("first")
	<-entered // the worker is now inside the first delivery
	p.CallAsync("second")
	cancel()
	close(release)

	assert.True(t, errors.Is(<-done, context.Canceled))

	_, err := p.CallSync(`{"name":"getParameter","args":[]}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 undelivered")
}

func TestPipeline_DropsAfterClose(t *testing.T) {
	rec := NewRecorder()
	p, _, done := startPipeline(t, rec)

	p.CallAsync("kept")
	p.Close()
	require.NoError(t, <-done)
	p.CallAsync("dropped")

	assert.Equal(t, []string{"kept"}, rec.Bodies())
}
