package dojo

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/log"
)

// Provider is the Executor that resolves contract names through a manifest and
// hands the resulting invocation to the account. It adds no retries.
type Provider struct {
	manifest *Manifest
	log      log.Logger
}

// NewProvider creates a Provider. A nil logger falls back to the root logger.
func NewProvider(manifest *Manifest, logger log.Logger) *Provider {
	if logger == nil {
		logger = log.Root()
	}
	return &Provider{manifest: manifest, log: logger}
}

// Execute implements Executor.
func (p *Provider) Execute(ctx context.Context, account Account, call Call, namespace string) (*ExecutionResult, error) {
	contract, err := p.manifest.ContractByName(namespace, call.ContractName)
	if err != nil {
		return nil, err
	}
	if !contract.HasSystem(call.Entrypoint) {
		return nil, fmt.Errorf("entrypoint %q is not a system of %s", call.Entrypoint, contract.Tag)
	}

	inv := Invocation{
		ContractAddress: contract.Address,
		Entrypoint:      call.Entrypoint,
		Calldata:        call.Calldata,
	}
	p.log.Debug("Submitting invocation", "contract", contract.Tag, "address", contract.Address.Hex(),
		"entrypoint", call.Entrypoint, "calldata", len(call.Calldata), "account", account.Address().Hex())

	hash, err := account.Execute(ctx, []Invocation{inv})
	if err != nil {
		return nil, err
	}
	return &ExecutionResult{TransactionHash: hash}, nil
}
