package config

// Config holds all universe CLI configuration.
type Config struct {
	RPCURLs        []string `json:"rpc_urls"`
	RPCAlgorithm   string   `json:"rpc_algorithm"` // "fastest" | "round-robin" | "failover"
	ManifestPath   string   `json:"manifest_path"` // Dojo manifest; relative paths resolve against the working dir
	DefaultAccount string   `json:"default_account"`
	ReceiptTimeout int      `json:"receipt_timeout"` // seconds

	// internal: config dir path used for Save()
	configDir string
}

// HistoryEntry is one submitted transaction.
type HistoryEntry struct {
	Operation       string `json:"operation"`
	Account         string `json:"account"`
	TransactionHash string `json:"transaction_hash"`
	SubmittedAt     string `json:"submitted_at"`
	Status          string `json:"status,omitempty"`
}

// HistoryFile is the structure of history.json.
type HistoryFile struct {
	Entries []HistoryEntry `json:"entries"`
}

// SyncConfig is the structure of sync.json.
type SyncConfig struct {
	Source     string `json:"source"`
	LastSynced string `json:"last_synced"`
	WorldHash  string `json:"world_class_hash,omitempty"`
}
