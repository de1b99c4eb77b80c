// Package dojo holds the vocabulary shared between typed contract bindings and
// whatever submits their calls: call descriptors, the executor capability,
// accounts, and the world manifest used to resolve contract addresses.
package dojo

import (
	"context"

	"github.com/Mohsinsiddi/universe/internal/felt"
)

// Call describes one entrypoint invocation addressed by contract name. It is
// built fresh per invocation and not modified afterwards.
type Call struct {
	ContractName string      `json:"contractName"`
	Entrypoint   string      `json:"entrypoint"`
	Calldata     []felt.Felt `json:"calldata"`
}

// Invocation is a Call resolved to an on-chain contract address, encoded the
// way the Starknet wallet API expects it.
type Invocation struct {
	ContractAddress felt.Felt   `json:"contract_address"`
	Entrypoint      string      `json:"entry_point"`
	Calldata        []felt.Felt `json:"calldata"`
}

// ExecutionResult is returned once an account accepted an invocation.
type ExecutionResult struct {
	TransactionHash felt.Felt `json:"transaction_hash"`
}

// Account signs and submits invocations. Signing happens behind this
// interface; nothing in this module holds a Stark private key.
type Account interface {
	Address() felt.Felt
	Execute(ctx context.Context, calls []Invocation) (felt.Felt, error)
}

// Executor runs a call on behalf of account within a namespace.
type Executor interface {
	Execute(ctx context.Context, account Account, call Call, namespace string) (*ExecutionResult, error)
}

// Tag returns the "<namespace>-<name>" identifier Dojo uses for contracts and
// models.
func Tag(namespace, name string) string {
	return namespace + "-" + name
}
