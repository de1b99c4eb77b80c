package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenLeavesDeadlineToContext(t *testing.T) {
	mgr := NewManager()
	a, err := mgr.Add("dev", "0x1", "http://localhost:5050/wallet", "")
	require.NoError(t, err)

	acct, err := mgr.Open(a)
	require.NoError(t, err)
	assert.Zero(t, acct.client.Timeout(), "wallet client must not cut approvals short")
}
