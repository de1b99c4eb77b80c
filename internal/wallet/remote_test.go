package wallet_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/starknet"
	"github.com/Mohsinsiddi/universe/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type walletRequest struct {
	Method string `json:"method"`
	Params struct {
		Calls []struct {
			ContractAddress string   `json:"contract_address"`
			EntryPoint      string   `json:"entry_point"`
			Calldata        []string `json:"calldata"`
		} `json:"calls"`
	} `json:"params"`
}

func walletServer(t *testing.T, got *walletRequest, auth *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(got))
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"transaction_hash":"0xbeef"}}`)) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteAccountExecute(t *testing.T) {
	var got walletRequest
	var auth string
	srv := walletServer(t, &got, &auth)

	acct := wallet.NewRemoteAccount(felt.FromUint64(0xa11ce), starknet.NewClient(srv.URL))
	assert.Equal(t, felt.FromUint64(0xa11ce), acct.Address())

	hash, err := acct.Execute(context.Background(), []dojo.Invocation{{
		ContractAddress: felt.FromUint64(0x600d),
		Entrypoint:      "record_login",
		Calldata:        []felt.Felt{felt.FromUint64(42)},
	}})
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(0xbeef), hash)

	assert.Equal(t, "wallet_addInvokeTransaction", got.Method)
	require.Len(t, got.Params.Calls, 1)
	assert.Equal(t, "0x600d", got.Params.Calls[0].ContractAddress)
	assert.Equal(t, "record_login", got.Params.Calls[0].EntryPoint)
	assert.Equal(t, []string{"0x2a"}, got.Params.Calls[0].Calldata)
	assert.Empty(t, auth)
}

func TestRemoteAccountRPCError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":113,"message":"User refused"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	acct := wallet.NewRemoteAccount(felt.FromUint64(1), starknet.NewClient(srv.URL))
	_, err := acct.Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User refused")
}

func TestManagerOpenAttachesToken(t *testing.T) {
	var got walletRequest
	var auth string
	srv := walletServer(t, &got, &auth)

	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	a, err := mgr.Add("dev", "0x1", srv.URL, "s3cret")
	require.NoError(t, err)

	acct, err := mgr.Open(a)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(1), acct.Address())

	_, err = acct.Execute(context.Background(), []dojo.Invocation{{ContractAddress: felt.FromUint64(2), Entrypoint: "x"}})
	require.NoError(t, err)
	assert.Equal(t, "Bearer s3cret", auth)
}

func TestManagerOpenWaitsForSlowApproval(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"transaction_hash":"0xbeef"}}`)) //nolint:errcheck
	}))
	defer srv.Close()

	mgr := wallet.NewManager(wallet.WithInMemoryStore(), wallet.WithWalletHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	a, err := mgr.Add("dev", "0x1", srv.URL, "")
	require.NoError(t, err)
	acct, err := mgr.Open(a)
	require.NoError(t, err)

	_, err = acct.Execute(context.Background(), nil)
	require.Error(t, err, "an injected client limit applies")

	mgr = wallet.NewManager(wallet.WithInMemoryStore())
	a, err = mgr.Add("dev", "0x1", srv.URL, "")
	require.NoError(t, err)
	acct, err = mgr.Open(a)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hash, err := acct.Execute(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(0xbeef), hash)
}

func TestManagerOpenHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	a, err := mgr.Add("dev", "0x1", srv.URL, "")
	require.NoError(t, err)
	acct, err := mgr.Open(a)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = acct.Execute(ctx, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestManagerOpenWithoutEndpoint(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	a, err := mgr.Add("dev", "0x1", "", "")
	require.NoError(t, err)

	_, err = mgr.Open(a)
	assert.Error(t, err)
}
