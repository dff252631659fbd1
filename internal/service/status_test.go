package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusTracker(t *testing.T) {
	t.Run("unknown valuation is idle", func(t *testing.T) {
		tr := newStatusTracker(time.Second)
		assert.Equal(t, StatusIdle, tr.get("val-1"))
	})

	t.Run("done returns to idle after the delay", func(t *testing.T) {
		tr := newStatusTracker(20 * time.Millisecond)

		gen := tr.begin("val-1")
		assert.Equal(t, StatusCalculating, tr.get("val-1"))

		tr.finish("val-1", gen, true)
		assert.Equal(t, StatusDone, tr.get("val-1"))

		assert.Eventually(t, func() bool {
			return tr.get("val-1") == StatusIdle
		}, time.Second, 5*time.Millisecond)
	})

	t.Run("failure goes straight to idle", func(t *testing.T) {
		tr := newStatusTracker(time.Minute)

		gen := tr.begin("val-1")
		tr.finish("val-1", gen, false)

		assert.Equal(t, StatusIdle, tr.get("val-1"))
	})

	t.Run("stale finish is ignored", func(t *testing.T) {
		tr := newStatusTracker(time.Minute)

		first := tr.begin("val-1")
		second := tr.begin("val-1")
		tr.finish("val-1", first, true)

		assert.Equal(t, StatusCalculating, tr.get("val-1"))

		tr.finish("val-1", second, true)
		assert.Equal(t, StatusDone, tr.get("val-1"))
	})

	t.Run("restart cancels the pending reset", func(t *testing.T) {
		tr := newStatusTracker(20 * time.Millisecond)

		gen := tr.begin("val-1")
		tr.finish("val-1", gen, true)
		tr.begin("val-1")

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, StatusCalculating, tr.get("val-1"))
	})

	t.Run("valuations are tracked independently", func(t *testing.T) {
		tr := newStatusTracker(time.Minute)

		tr.begin("val-1")
		gen := tr.begin("val-2")
		tr.finish("val-2", gen, true)

		assert.Equal(t, StatusCalculating, tr.get("val-1"))
		assert.Equal(t, StatusDone, tr.get("val-2"))
	})
}
