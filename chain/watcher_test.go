package chain

import (
	"context"
	"math/big"
	"sync/atomic"
	"testing"
	"time"
)

func TestNetworkWatcher(t *testing.T) {
	t.Run("fires once on chain change", func(t *testing.T) {
		var observed atomic.Int64
		var fired atomic.Int32

		getChainID := func(ctx context.Context) (*big.Int, error) {
			return big.NewInt(observed.Load()), nil
		}

		observed.Store(11155111)

		w := NewNetworkWatcher(getChainID, big.NewInt(11155111), 5*time.Millisecond, func(id *big.Int) {
			fired.Add(1)
		})
		w.Start()
		defer w.Stop()

		time.Sleep(30 * time.Millisecond)
		if fired.Load() != 0 {
			t.Fatal("watcher fired without a chain change")
		}

		observed.Store(1)
		time.Sleep(50 * time.Millisecond)

		if got := fired.Load(); got != 1 {
			t.Errorf("expected exactly one change notification, got %d", got)
		}
	})

	t.Run("stop is idempotent when never started", func(t *testing.T) {
		w := NewNetworkWatcher(nil, big.NewInt(1), time.Second, nil)
		w.Stop()
	})
}
