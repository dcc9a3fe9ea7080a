package clock_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/dm-api/internal/pkg/clock"
)

func TestManual(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)

	assert.Equal(t, start, clk.Now())
	assert.Equal(t, start.Add(time.Hour), clk.Advance(time.Hour))
	assert.Equal(t, start.Add(time.Hour), clk.Now())
}

func TestManual_ConcurrentAdvance(t *testing.T) {
	start := time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)
	clk := clock.NewManual(start)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clk.Advance(time.Second)
		}()
	}
	wg.Wait()

	assert.Equal(t, start.Add(50*time.Second), clk.Now())
}

func TestNew(t *testing.T) {
	before := time.Now()
	now := clock.New().Now()
	assert.False(t, now.Before(before))
}
