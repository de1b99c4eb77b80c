package wallet_test

import (
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addr = "0x0127fd5f1fe78a71f8bcd1fec63e3fe2f0486b6ecd5c86a0466c3a21fa5cfcec"

func TestAddAccount(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())

	a, err := mgr.Add("dev", addr, "http://localhost:5050/wallet", "")
	require.NoError(t, err)
	assert.Equal(t, "dev", a.Name)
	assert.Equal(t, felt.MustParse(addr).Hex(), a.Address)
	assert.True(t, a.IsDefault, "first account becomes default")
	assert.Empty(t, a.TokenRef)
	assert.NotEmpty(t, a.CreatedAt)

	got, err := mgr.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestAddDuplicateAccount(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	_, err := mgr.Add("dup", "0x1", "", "")
	require.NoError(t, err)

	_, err = mgr.Add("dup", "0x2", "", "")
	assert.ErrorIs(t, err, wallet.ErrAccountExists)
}

func TestAddInvalidAddress(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	_, err := mgr.Add("bad", "not-an-address", "", "")
	assert.ErrorIs(t, err, felt.ErrInvalidFelt)
}

func TestAddStoresToken(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(wallet.WithInMemoryStore(), wallet.WithKeystore(ks))

	a, err := mgr.Add("dev", "0x1", "http://w", "secret")
	require.NoError(t, err)
	assert.Equal(t, "universe.dev", a.TokenRef)

	tok, err := mgr.Token(a)
	require.NoError(t, err)
	assert.Equal(t, "secret", tok)
}

func TestListSorted(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	for _, n := range []string{"zed", "amy", "kim"} {
		_, err := mgr.Add(n, "0x1", "", "")
		require.NoError(t, err)
	}

	accounts, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "amy", accounts[0].Name)
	assert.Equal(t, "kim", accounts[1].Name)
	assert.Equal(t, "zed", accounts[2].Name)
}

func TestRemoveAccount(t *testing.T) {
	ks := wallet.NewInMemoryKeystore()
	mgr := wallet.NewManager(wallet.WithInMemoryStore(), wallet.WithKeystore(ks))
	a, err := mgr.Add("dev", "0x1", "", "secret")
	require.NoError(t, err)

	require.NoError(t, mgr.Remove("dev"))

	_, err = mgr.Get("dev")
	assert.ErrorIs(t, err, wallet.ErrAccountNotFound)
	_, err = ks.Retrieve(a.TokenRef)
	assert.ErrorIs(t, err, wallet.ErrTokenNotFound)
}

func TestRemoveMissing(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	assert.ErrorIs(t, mgr.Remove("ghost"), wallet.ErrAccountNotFound)
}

func TestSetDefault(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	_, _ = mgr.Add("a", "0x1", "", "")
	_, _ = mgr.Add("b", "0x2", "", "")

	d, err := mgr.Default()
	require.NoError(t, err)
	assert.Equal(t, "a", d.Name)

	require.NoError(t, mgr.SetDefault("b"))
	d, err = mgr.Default()
	require.NoError(t, err)
	assert.Equal(t, "b", d.Name)

	a, _ := mgr.Get("a")
	assert.False(t, a.IsDefault)

	assert.ErrorIs(t, mgr.SetDefault("ghost"), wallet.ErrAccountNotFound)
}

func TestDefaultEmpty(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	_, err := mgr.Default()
	assert.ErrorIs(t, err, wallet.ErrNoDefault)
}

func TestResolve(t *testing.T) {
	mgr := wallet.NewManager(wallet.WithInMemoryStore())
	_, _ = mgr.Add("a", "0x1", "", "")
	_, _ = mgr.Add("b", "0x2", "", "")

	a, err := mgr.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "a", a.Name)

	b, err := mgr.Resolve("b")
	require.NoError(t, err)
	assert.Equal(t, "b", b.Name)

	_, err = mgr.Resolve("c")
	assert.ErrorIs(t, err, wallet.ErrAccountNotFound)
}

// ---------------------------------------------------------------------------
// JSONStore
// ---------------------------------------------------------------------------

func TestJSONStorePersistsAcrossManagers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")

	mgr := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(path)))
	_, err := mgr.Add("dev", addr, "http://localhost:5050", "")
	require.NoError(t, err)

	again := wallet.NewManager(wallet.WithStore(wallet.NewJSONStore(path)))
	a, err := again.Get("dev")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5050", a.WalletURL)
	assert.True(t, a.IsDefault)
}

func TestJSONStoreLoadMissingFile(t *testing.T) {
	store := wallet.NewJSONStore(filepath.Join(t.TempDir(), "nope.json"))
	accounts, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
