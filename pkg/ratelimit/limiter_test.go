package ratelimit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLimiterStore(t *testing.T) {
	store := NewLimiterStore(rate.Limit(1), 1)

	t.Run("same key returns the same limiter", func(t *testing.T) {
		assert.Same(t, store.GetLimiter("chat-1"), store.GetLimiter("chat-1"))
	})

	t.Run("distinct keys get independent limiters", func(t *testing.T) {
		assert.NotSame(t, store.GetLimiter("chat-1"), store.GetLimiter("chat-2"))
	})

	t.Run("concurrent first access yields one limiter per key", func(t *testing.T) {
		fresh := NewLimiterStore(rate.Limit(1), 1)

		var wg sync.WaitGroup
		results := make([]*rate.Limiter, 8)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = fresh.GetLimiter("chat-1")
			}(i)
		}
		wg.Wait()

		for _, l := range results[1:] {
			assert.Same(t, results[0], l)
		}
	})
}
