package config

import "time"

// Timeout constants used across cmd.
const (
	RPCSelectTimeout    = 10 * time.Second // endpoint health checks
	ReceiptPollInterval = 2 * time.Second
	WalletSubmitTimeout = 2 * time.Minute // the wallet may wait for user approval
)

// MaxHistory caps the number of entries kept in history.json.
const MaxHistory = 100
