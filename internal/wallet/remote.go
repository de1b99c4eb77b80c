package wallet

import (
	"context"
	"fmt"

	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/Mohsinsiddi/universe/internal/starknet"
)

// RemoteAccount is a dojo.Account whose wallet lives behind an HTTP endpoint
// speaking the Starknet wallet API. The wallet builds, signs and broadcasts
// the transaction.
type RemoteAccount struct {
	address felt.Felt
	client  *starknet.Client
}

// NewRemoteAccount creates an account for address submitting through client.
func NewRemoteAccount(address felt.Felt, client *starknet.Client) *RemoteAccount {
	return &RemoteAccount{address: address, client: client}
}

// Open builds the RemoteAccount for a stored account, attaching its token.
func (m *Manager) Open(a *Account) (*RemoteAccount, error) {
	if a.WalletURL == "" {
		return nil, fmt.Errorf("account %q has no wallet endpoint", a.Name)
	}
	addr, err := felt.Parse(a.Address)
	if err != nil {
		return nil, fmt.Errorf("account %q address: %w", a.Name, err)
	}
	token, err := m.Token(a)
	if err != nil {
		return nil, fmt.Errorf("retrieving token: %w", err)
	}
	opts := []starknet.Option{starknet.WithHTTPClient(m.walletHTTP)}
	if token != "" {
		opts = append(opts, starknet.WithBearerToken(token))
	}
	return NewRemoteAccount(addr, starknet.NewClient(a.WalletURL, opts...)), nil
}

// Address implements dojo.Account.
func (r *RemoteAccount) Address() felt.Felt { return r.address }

type addInvokeParams struct {
	Calls []dojo.Invocation `json:"calls"`
}

type addInvokeResult struct {
	TransactionHash felt.Felt `json:"transaction_hash"`
}

// Execute implements dojo.Account via wallet_addInvokeTransaction.
func (r *RemoteAccount) Execute(ctx context.Context, calls []dojo.Invocation) (felt.Felt, error) {
	var res addInvokeResult
	if err := r.client.Call(ctx, "wallet_addInvokeTransaction", addInvokeParams{Calls: calls}, &res); err != nil {
		return felt.Zero, err
	}
	return res.TransactionHash, nil
}
