package rpc

import (
	"context"
	"sync"
	"time"

	"github.com/Mohsinsiddi/universe/internal/starknet"
)

const pingTimeout = 5 * time.Second

// One picker per algorithm lives for the whole process so the fastest cache
// and the round-robin position carry over between Best calls.
var (
	pickersMu sync.Mutex
	pickers   = map[Algorithm]*Picker{}
)

func pickerFor(algo Algorithm) *Picker {
	pickersMu.Lock()
	defer pickersMu.Unlock()
	p, ok := pickers[algo]
	if !ok {
		p = NewPicker(algo)
		pickers[algo] = p
	}
	return p
}

// HealthCheck pings one node. It is healthy when it answers within the ping
// timeout and, if bestBlock > 0, is not stale relative to it.
func HealthCheck(ctx context.Context, url string, bestBlock uint64) (Endpoint, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	latency, blockNum, err := starknet.NewClient(url).Ping(ctx)
	ep := Endpoint{
		URL:         url,
		Latency:     latency,
		BlockNumber: blockNum,
		Healthy:     err == nil,
		Checked:     true,
	}
	if err == nil && bestBlock > 0 && bestBlock > blockNum && bestBlock-blockNum > staleBlockThreshold {
		ep.Healthy = false
	}
	return ep, err
}

// CheckAll health-checks every url in parallel. Results keep the input order.
func CheckAll(ctx context.Context, urls []string) []Endpoint {
	out := make([]Endpoint, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		i, u := i, u
		wg.Add(1)
		go func() {
			defer wg.Done()
			out[i], _ = HealthCheck(ctx, u, 0)
		}()
	}
	wg.Wait()
	return out
}

// Best checks urls and returns the one algo prefers. A single url is returned
// without a network round trip.
func Best(ctx context.Context, urls []string, algo Algorithm) (string, error) {
	switch len(urls) {
	case 0:
		return "", ErrNoHealthyRPC
	case 1:
		return urls[0], nil
	}
	ep, err := pickerFor(algo).Pick(CheckAll(ctx, urls))
	if err != nil {
		return "", err
	}
	return ep.URL, nil
}
