package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTickClock_Steps(t *testing.T) {
	c := NewTickClock(10)
	assert.Equal(t, 0.0, c.Current())
	assert.Equal(t, 10.0, c.Next())
	assert.Equal(t, 20.0, c.Next())
	assert.Equal(t, 20.0, c.Current(), "Current must not advance")
}

func TestTickClock_DefaultStep(t *testing.T) {
	c := NewTickClock(0)
	assert.Equal(t, FrameStep, c.Next())
}

func TestTickClock_Reset(t *testing.T) {
	c := NewTickClock(5)
	c.Next()
	c.Next()
	c.Reset()
	assert.Equal(t, 5.0, c.Next(), "after Reset the first tick is one step again")
}

func TestTickClock_ThreadSafe(t *testing.T) {
	c := NewTickClock(1)
	const goroutines = 20
	const ticks = 50

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < ticks; j++ {
				c.Next()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, float64(goroutines*ticks), c.Current())
}
