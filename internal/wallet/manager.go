// Package wallet manages the accounts the CLI submits transactions from.
// Keys never live here: each account points at a wallet endpoint that signs
// on its behalf, authenticated by a token kept in the OS keychain.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/Mohsinsiddi/universe/internal/felt"
)

// Errors.
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrNoDefault       = errors.New("no default account")
)

// Account is a stored account entry.
type Account struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	WalletURL string `json:"wallet_url"`
	TokenRef  string `json:"token_ref,omitempty"`
	IsDefault bool   `json:"is_default"`
	CreatedAt string `json:"created_at"`
}

// Store persists accounts.
type Store interface {
	Load() ([]*Account, error)
	Save([]*Account) error
}

// Manager handles account CRUD.
type Manager struct {
	store    Store
	ks       KeystoreBackend
	accounts map[string]*Account
	loaded   bool

	// walletHTTP carries wallet submissions. It has no timeout of its own;
	// the caller's context bounds each submission.
	walletHTTP *http.Client
}

// Option configures a Manager.
type Option func(*Manager)

// WithInMemoryStore keeps accounts in memory (for tests).
func WithInMemoryStore() Option {
	return func(m *Manager) { m.store = &memStore{} }
}

// WithStore sets the account store.
func WithStore(s Store) Option {
	return func(m *Manager) { m.store = s }
}

// WithKeystore sets where tokens are kept.
func WithKeystore(ks KeystoreBackend) Option {
	return func(m *Manager) { m.ks = ks }
}

// WithWalletHTTPClient sets the HTTP client used to reach wallet endpoints.
func WithWalletHTTPClient(hc *http.Client) Option {
	return func(m *Manager) { m.walletHTTP = hc }
}

// NewManager creates a Manager. Without options it uses an in-memory store
// and an in-memory keystore.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store:      &memStore{},
		ks:         NewInMemoryKeystore(),
		accounts:   make(map[string]*Account),
		walletHTTP: &http.Client{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Add registers an account. address must be a valid felt; token, when not
// empty, is stored in the keystore.
func (m *Manager) Add(name, address, walletURL, token string) (*Account, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	if _, exists := m.accounts[name]; exists {
		return nil, ErrAccountExists
	}
	addr, err := felt.Parse(address)
	if err != nil {
		return nil, fmt.Errorf("account address: %w", err)
	}

	a := &Account{
		Name:      name,
		Address:   addr.Hex(),
		WalletURL: walletURL,
		IsDefault: len(m.accounts) == 0,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if token != "" {
		if a.TokenRef, err = m.ks.Store(name, token); err != nil {
			return nil, fmt.Errorf("storing token: %w", err)
		}
	}
	m.accounts[name] = a
	return a, m.persist()
}

// Get returns an account by name.
func (m *Manager) Get(name string) (*Account, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	a, ok := m.accounts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, name)
	}
	return a, nil
}

// Remove deletes an account and its stored token.
func (m *Manager) Remove(name string) error {
	if err := m.load(); err != nil {
		return err
	}
	a, ok := m.accounts[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, name)
	}
	if a.TokenRef != "" {
		if err := m.ks.Delete(a.TokenRef); err != nil {
			return fmt.Errorf("deleting token: %w", err)
		}
	}
	delete(m.accounts, name)
	return m.persist()
}

// List returns all accounts sorted by name.
func (m *Manager) List() ([]*Account, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	out := make([]*Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// SetDefault marks one account as the default.
func (m *Manager) SetDefault(name string) error {
	if err := m.load(); err != nil {
		return err
	}
	if _, ok := m.accounts[name]; !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, name)
	}
	for _, a := range m.accounts {
		a.IsDefault = a.Name == name
	}
	return m.persist()
}

// Default returns the default account. A lone account is the default even
// when not marked.
func (m *Manager) Default() (*Account, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	for _, a := range m.accounts {
		if a.IsDefault {
			return a, nil
		}
	}
	if len(m.accounts) == 1 {
		for _, a := range m.accounts {
			return a, nil
		}
	}
	return nil, ErrNoDefault
}

// Resolve returns the named account, or the default when name is empty.
func (m *Manager) Resolve(name string) (*Account, error) {
	if name == "" {
		return m.Default()
	}
	return m.Get(name)
}

// Token returns the wallet endpoint token for a, or "" if none is stored.
func (m *Manager) Token(a *Account) (string, error) {
	if a.TokenRef == "" {
		return "", nil
	}
	return m.ks.Retrieve(a.TokenRef)
}

func (m *Manager) load() error {
	if m.loaded {
		return nil
	}
	accounts, err := m.store.Load()
	if err != nil {
		return err
	}
	for _, a := range accounts {
		m.accounts[a.Name] = a
	}
	m.loaded = true
	return nil
}

func (m *Manager) persist() error {
	accounts := make([]*Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return m.store.Save(accounts)
}

// --- in-memory store ---

type memStore struct {
	accounts []*Account
}

func (s *memStore) Load() ([]*Account, error) { return s.accounts, nil }

func (s *memStore) Save(accounts []*Account) error {
	s.accounts = accounts
	return nil
}

// --- JSON file store ---

// JSONStore persists accounts to a JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON-backed account store.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Load() ([]*Account, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var accounts []*Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return accounts, nil
}

func (s *JSONStore) Save(accounts []*Account) error {
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}
