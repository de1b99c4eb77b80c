// Package starknet is a minimal JSON-RPC client for Starknet nodes and
// wallet endpoints.
package starknet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Mohsinsiddi/universe/internal/felt"
)

// ErrReceiptTimeout is returned when WaitForReceipt gives up.
var ErrReceiptTimeout = errors.New("timed out waiting for receipt")

// Execution and finality statuses reported in receipts.
const (
	ExecutionSucceeded = "SUCCEEDED"
	ExecutionReverted  = "REVERTED"

	FinalityAcceptedOnL2 = "ACCEPTED_ON_L2"
	FinalityAcceptedOnL1 = "ACCEPTED_ON_L1"
)

// Client talks JSON-RPC 2.0 over HTTP.
type Client struct {
	url    string
	client *http.Client
	token  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithBearerToken sends token in the Authorization header of every request.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// Timeout reports the HTTP client's own per-request limit. Zero means only
// the caller's context bounds a request.
func (c *Client) Timeout() time.Duration { return c.client.Timeout }

// NewClient creates a client pointed at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url: url,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the endpoint the client talks to.
func (c *Client) URL() string { return c.url }

// RPCError is an error object returned by the remote end.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("RPC error %d: %s: %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int    `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *RPCError       `json:"error"`
}

// Call sends one request and decodes the result into out (which may be nil).
func (c *Client) Call(ctx context.Context, method string, params any, out any) error {
	if params == nil {
		params = []any{}
	}
	reqBody, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(reqBody))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("RPC request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("RPC request rejected: %s", resp.Status)
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(body, &rpcResp); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if rpcResp.Error != nil {
		return rpcResp.Error
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("parsing result: %w", err)
	}
	return nil
}

// ChainID returns the chain id, e.g. "0x534e5f5345504f4c4941" (SN_SEPOLIA).
func (c *Client) ChainID(ctx context.Context) (string, error) {
	var id string
	if err := c.Call(ctx, "starknet_chainId", nil, &id); err != nil {
		return "", err
	}
	return id, nil
}

// ChainName decodes a chain id into its short-string name when possible.
func ChainName(chainID string) string {
	f, err := felt.Parse(chainID)
	if err != nil {
		return chainID
	}
	name := felt.DecodeShortString(f)
	if name == "" || strings.ContainsFunc(name, func(r rune) bool { return r < 0x20 || r > 0x7e }) {
		return chainID
	}
	return name
}

// BlockNumber returns the latest accepted block number.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var n uint64
	if err := c.Call(ctx, "starknet_blockNumber", nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// Ping measures the round trip of a block number request.
func (c *Client) Ping(ctx context.Context) (latency time.Duration, blockNum uint64, err error) {
	start := time.Now()
	blockNum, err = c.BlockNumber(ctx)
	latency = time.Since(start)
	return latency, blockNum, err
}

// GetNonce returns the account's nonce at the latest block.
func (c *Client) GetNonce(ctx context.Context, address felt.Felt) (felt.Felt, error) {
	var nonce felt.Felt
	err := c.Call(ctx, "starknet_getNonce", map[string]any{
		"block_id":         "latest",
		"contract_address": address,
	}, &nonce)
	return nonce, err
}

// GetClassHashAt returns the class hash deployed at address.
func (c *Client) GetClassHashAt(ctx context.Context, address felt.Felt) (felt.Felt, error) {
	var hash felt.Felt
	err := c.Call(ctx, "starknet_getClassHashAt", map[string]any{
		"block_id":         "latest",
		"contract_address": address,
	}, &hash)
	return hash, err
}

// Fee is the fee actually charged for a transaction.
type Fee struct {
	Amount felt.Felt `json:"amount"`
	Unit   string    `json:"unit"`
}

// Receipt is the subset of a transaction receipt the CLI reports.
type Receipt struct {
	TransactionHash felt.Felt `json:"transaction_hash"`
	ExecutionStatus string    `json:"execution_status"`
	FinalityStatus  string    `json:"finality_status"`
	RevertReason    string    `json:"revert_reason,omitempty"`
	BlockNumber     uint64    `json:"block_number"`
	ActualFee       Fee       `json:"actual_fee"`
}

// Succeeded reports whether the transaction executed without reverting.
func (r *Receipt) Succeeded() bool { return r.ExecutionStatus == ExecutionSucceeded }

// Final reports whether the receipt will not change execution status again.
func (r *Receipt) Final() bool {
	return r.ExecutionStatus == ExecutionSucceeded || r.ExecutionStatus == ExecutionReverted
}

// GetTransactionReceipt fetches a receipt. Unknown transactions come back as
// an RPCError (code 29, "Transaction hash not found").
func (c *Client) GetTransactionReceipt(ctx context.Context, hash felt.Felt) (*Receipt, error) {
	var r Receipt
	if err := c.Call(ctx, "starknet_getTransactionReceipt", map[string]any{
		"transaction_hash": hash,
	}, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// WaitForReceipt polls every interval until a final receipt is available or
// timeout elapses. Lookup errors while the transaction is pending are retried.
func (c *Client) WaitForReceipt(ctx context.Context, hash felt.Felt, interval, timeout time.Duration) (*Receipt, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		r, err := c.GetTransactionReceipt(ctx, hash)
		if err == nil && r.Final() {
			return r, nil
		}
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s", ErrReceiptTimeout, hash.Hex())
			}
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}
