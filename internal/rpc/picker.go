// Package rpc chooses which Starknet node endpoint to talk to.
package rpc

import (
	"errors"
	"sync"
	"time"
)

// ErrNoHealthyRPC is returned when no endpoint qualifies.
var ErrNoHealthyRPC = errors.New("no healthy RPC endpoint available")

// Algorithm names a selection strategy.
type Algorithm string

const (
	AlgorithmFastest    Algorithm = "fastest"
	AlgorithmRoundRobin Algorithm = "round-robin"
	AlgorithmFailover   Algorithm = "failover"

	// Nodes further behind the best block than this are skipped by "fastest".
	staleBlockThreshold = 3
	// How long a "fastest" winner is reused before the next benchmark.
	cacheTTL = 5 * time.Minute
)

// ParseAlgorithm maps a config value to an Algorithm. Empty means fastest.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch a := Algorithm(s); a {
	case "":
		return AlgorithmFastest, true
	case AlgorithmFastest, AlgorithmRoundRobin, AlgorithmFailover:
		return a, true
	default:
		return "", false
	}
}

// Endpoint is a node URL plus what a health check learned about it.
type Endpoint struct {
	URL         string
	Latency     time.Duration
	BlockNumber uint64
	Healthy     bool // only meaningful when Checked
	Checked     bool
}

// Picker selects endpoints. It is safe for concurrent use.
type Picker struct {
	algo Algorithm

	mu          sync.Mutex
	rrIndex     int
	cachedURL   string
	cacheExpiry time.Time
}

// NewPicker creates a Picker for algo.
func NewPicker(algo Algorithm) *Picker {
	return &Picker{algo: algo}
}

// Pick returns the endpoint the algorithm prefers.
func (p *Picker) Pick(endpoints []Endpoint) (*Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoHealthyRPC
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.algo {
	case AlgorithmRoundRobin:
		return p.roundRobin(endpoints)
	case AlgorithmFailover:
		return failover(endpoints)
	default:
		return p.fastest(endpoints)
	}
}

func (p *Picker) fastest(endpoints []Endpoint) (*Endpoint, error) {
	if p.cachedURL != "" && time.Now().Before(p.cacheExpiry) {
		for i := range endpoints {
			if e := &endpoints[i]; e.URL == p.cachedURL && (!e.Checked || e.Healthy) {
				return e, nil
			}
		}
	}
	var bestBlock uint64
	for _, e := range endpoints {
		bestBlock = max(bestBlock, e.BlockNumber)
	}

	var (
		winner    *Endpoint
		bestScore float64
	)
	for _, e := range candidates(endpoints) {
		if bestBlock > 0 && bestBlock-e.BlockNumber > staleBlockThreshold {
			continue
		}
		if s := score(e, bestBlock); winner == nil || s > bestScore {
			winner, bestScore = e, s
		}
	}
	if winner == nil {
		return nil, ErrNoHealthyRPC
	}

	p.cachedURL = winner.URL
	p.cacheExpiry = time.Now().Add(cacheTTL)
	return winner, nil
}

func (p *Picker) roundRobin(endpoints []Endpoint) (*Endpoint, error) {
	pool := candidates(endpoints)
	if len(pool) == 0 {
		return nil, ErrNoHealthyRPC
	}
	idx := p.rrIndex % len(pool)
	p.rrIndex = (idx + 1) % len(pool)
	return pool[idx], nil
}

// failover returns the first endpoint not known to be down.
func failover(endpoints []Endpoint) (*Endpoint, error) {
	for i := range endpoints {
		if e := &endpoints[i]; !e.Checked || e.Healthy {
			return e, nil
		}
	}
	return nil, ErrNoHealthyRPC
}

// score favours low latency, then closeness to the best block.
func score(e *Endpoint, bestBlock uint64) float64 {
	var s float64
	if ms := e.Latency.Milliseconds(); ms > 0 {
		s += 1000.0 / float64(ms)
	} else if e.Latency > 0 {
		s += 1000.0
	}
	if bestBlock > 0 {
		s += float64(10) - float64(bestBlock-e.BlockNumber)
	}
	return s
}

// candidates drops endpoints that were checked and found unhealthy. When no
// endpoint has been checked every one qualifies.
func candidates(endpoints []Endpoint) []*Endpoint {
	out := make([]*Endpoint, 0, len(endpoints))
	for i := range endpoints {
		if e := &endpoints[i]; !e.Checked || e.Healthy {
			out = append(out, e)
		}
	}
	return out
}
