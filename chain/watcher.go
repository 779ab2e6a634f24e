package chain

import (
	"context"
	"math/big"
	"time"

	log "github.com/sirupsen/logrus"
)

type ChainIDFunc func(ctx context.Context) (*big.Int, error)

// NetworkWatcher polls the node for its chain identity and reports when
// it no longer matches the chain the contract address is valid for.
// Contract address and ABI validity are network-specific, a change must
// tear the session down.
type NetworkWatcher struct {
	ticker     *time.Ticker
	done       chan bool
	getChainID ChainIDFunc
	expected   *big.Int
	interval   time.Duration
	onChange   func(observed *big.Int)
	fired      bool
}

func NewNetworkWatcher(getChainID ChainIDFunc, expected *big.Int, interval time.Duration, onChange func(observed *big.Int)) *NetworkWatcher {
	return &NetworkWatcher{
		done:       make(chan bool),
		getChainID: getChainID,
		expected:   expected,
		interval:   interval,
		onChange:   onChange,
	}
}

func (w *NetworkWatcher) Start() *NetworkWatcher {
	if w.ticker != nil {
		return w
	}

	w.ticker = time.NewTicker(w.interval)

	go func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		for {
			select {
			case <-w.done:
				return
			case <-w.ticker.C:
				observed, err := w.getChainID(ctx)
				if err != nil {
					log.WithFields(log.Fields{"error": err}).Debug("Network watcher poll failed")
					continue
				}
				if observed.Cmp(w.expected) != 0 {
					if !w.fired {
						w.fired = true
						w.onChange(observed)
					}
					continue
				}
				w.fired = false
			}
		}
	}()

	return w
}

func (w *NetworkWatcher) Stop() {
	if w.ticker == nil {
		return
	}
	w.ticker.Stop()
	w.done <- true
	w.ticker = nil
}
