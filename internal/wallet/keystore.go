package wallet

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/99designs/keyring"
)

const keychainService = "universe"

// TokenEnvVar, when set, overrides every stored wallet endpoint token. Useful
// in CI where no keychain is available.
const TokenEnvVar = "UNIVERSE_WALLET_TOKEN"

// ErrTokenNotFound is returned when no token is stored under a reference.
var ErrTokenNotFound = errors.New("token not found")

// KeystoreBackend stores wallet endpoint tokens.
type KeystoreBackend interface {
	Store(name, token string) (ref string, err error)
	Retrieve(ref string) (string, error)
	Delete(ref string) error
}

// Keystore keeps tokens in the OS keychain.
type Keystore struct {
	ring keyring.Keyring
}

// DefaultKeystore opens the OS keychain, falling back to the encrypted file
// backend on headless Linux.
func DefaultKeystore() *Keystore {
	cfg := keyring.Config{
		ServiceName:              keychainService,
		KeychainTrustApplication: true,
	}
	if runtime.GOOS == "linux" {
		cfg.AllowedBackends = []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KWalletBackend,
			keyring.FileBackend,
		}
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		ring, _ = keyring.Open(keyring.Config{
			ServiceName:     keychainService,
			AllowedBackends: []keyring.BackendType{keyring.FileBackend},
		})
	}
	return &Keystore{ring: ring}
}

// NewKeystore wraps an already opened keyring.
func NewKeystore(ring keyring.Keyring) *Keystore {
	return &Keystore{ring: ring}
}

func tokenRef(name string) string {
	return keychainService + "." + name
}

// Store saves token for the account name and returns its reference.
func (k *Keystore) Store(name, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.New("empty token")
	}
	if k.ring == nil {
		return "", errors.New("keystore not available")
	}
	ref := tokenRef(name)
	if err := k.ring.Set(keyring.Item{Key: ref, Data: []byte(token), Label: "universe wallet token " + name}); err != nil {
		return "", fmt.Errorf("keychain store: %w", err)
	}
	return ref, nil
}

// Retrieve returns the token stored under ref, or the TokenEnvVar value when
// that is set.
func (k *Keystore) Retrieve(ref string) (string, error) {
	if v := strings.TrimSpace(os.Getenv(TokenEnvVar)); v != "" {
		return v, nil
	}
	if k.ring == nil {
		return "", errors.New("keystore not available")
	}
	item, err := k.ring.Get(ref)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, ref)
	}
	if err != nil {
		return "", fmt.Errorf("keychain retrieve: %w", err)
	}
	return string(item.Data), nil
}

// Delete removes a stored token. Deleting a missing token is not an error.
func (k *Keystore) Delete(ref string) error {
	if k.ring == nil {
		return nil
	}
	if err := k.ring.Remove(ref); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return err
	}
	return nil
}

// InMemoryKeystore keeps tokens in a map (for tests).
type InMemoryKeystore struct {
	data map[string]string
}

// NewInMemoryKeystore creates an empty in-memory keystore.
func NewInMemoryKeystore() *InMemoryKeystore {
	return &InMemoryKeystore{data: make(map[string]string)}
}

func (k *InMemoryKeystore) Store(name, token string) (string, error) {
	ref := tokenRef(name)
	k.data[ref] = token
	return ref, nil
}

func (k *InMemoryKeystore) Retrieve(ref string) (string, error) {
	v, ok := k.data[ref]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrTokenNotFound, ref)
	}
	return v, nil
}

func (k *InMemoryKeystore) Delete(ref string) error {
	delete(k.data, ref)
	return nil
}
