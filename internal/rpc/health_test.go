package rpc

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nodeServer answers starknet_blockNumber with blockNum.
func nodeServer(t *testing.T, blockNum uint64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":1,"result":%d}`, blockNum)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHealthCheckHealthy(t *testing.T) {
	srv := nodeServer(t, 1000)

	ep, err := HealthCheck(context.Background(), srv.URL, 0)
	require.NoError(t, err)
	assert.True(t, ep.Healthy)
	assert.True(t, ep.Checked)
	assert.Equal(t, uint64(1000), ep.BlockNumber)
}

func TestHealthCheckStale(t *testing.T) {
	srv := nodeServer(t, 990)

	ep, err := HealthCheck(context.Background(), srv.URL, 1000)
	require.NoError(t, err)
	assert.False(t, ep.Healthy)
}

func TestHealthCheckAheadOfBestIsHealthy(t *testing.T) {
	srv := nodeServer(t, 1010)

	ep, err := HealthCheck(context.Background(), srv.URL, 1000)
	require.NoError(t, err)
	assert.True(t, ep.Healthy)
}

func TestHealthCheckUnreachable(t *testing.T) {
	ep, err := HealthCheck(context.Background(), "http://127.0.0.1:1", 0)
	require.Error(t, err)
	assert.False(t, ep.Healthy)
	assert.True(t, ep.Checked)
}

func TestCheckAllKeepsOrder(t *testing.T) {
	a, b := nodeServer(t, 1), nodeServer(t, 2)

	eps := CheckAll(context.Background(), []string{a.URL, "http://127.0.0.1:1", b.URL})
	require.Len(t, eps, 3)
	assert.Equal(t, a.URL, eps[0].URL)
	assert.False(t, eps[1].Healthy)
	assert.Equal(t, uint64(2), eps[2].BlockNumber)
}

func TestBestSingleURLSkipsNetwork(t *testing.T) {
	url, err := Best(context.Background(), []string{"http://never.dialed"}, AlgorithmFastest)
	require.NoError(t, err)
	assert.Equal(t, "http://never.dialed", url)
}

func TestBestEmpty(t *testing.T) {
	_, err := Best(context.Background(), nil, AlgorithmFastest)
	assert.ErrorIs(t, err, ErrNoHealthyRPC)
}

func TestBestSkipsDeadNode(t *testing.T) {
	srv := nodeServer(t, 500)

	url, err := Best(context.Background(), []string{"http://127.0.0.1:1", srv.URL}, AlgorithmFailover)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, url)
}

func TestBestRoundRobinRotatesAcrossCalls(t *testing.T) {
	pickersMu.Lock()
	delete(pickers, AlgorithmRoundRobin)
	pickersMu.Unlock()

	a, b := nodeServer(t, 500), nodeServer(t, 500)
	urls := []string{a.URL, b.URL}

	var got []string
	for n := 0; n < 3; n++ {
		url, err := Best(context.Background(), urls, AlgorithmRoundRobin)
		require.NoError(t, err)
		got = append(got, url)
	}
	assert.Equal(t, []string{a.URL, b.URL, a.URL}, got)
}

func TestPickerForIsSharedPerAlgorithm(t *testing.T) {
	assert.Same(t, pickerFor(AlgorithmFastest), pickerFor(AlgorithmFastest))
	assert.NotSame(t, pickerFor(AlgorithmFastest), pickerFor(AlgorithmFailover))
}
