package dojo

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/Mohsinsiddi/universe/internal/felt"
)

// Errors.
var (
	ErrContractNotFound = errors.New("contract not found in manifest")
	ErrModelNotFound    = errors.New("model not found in manifest")
)

// World is the world section of a manifest.
type World struct {
	Address   felt.Felt `json:"address"`
	ClassHash felt.Felt `json:"class_hash"`
	Seed      string    `json:"seed"`
	Name      string    `json:"name"`
}

// Contract is a deployed system contract.
type Contract struct {
	Address   felt.Felt `json:"address"`
	ClassHash felt.Felt `json:"class_hash"`
	Tag       string    `json:"tag"`
	Selector  felt.Felt `json:"selector"`
	Systems   []string  `json:"systems"`
}

// HasSystem reports whether entrypoint is listed among the contract's systems.
// Manifests without a systems list accept every entrypoint.
func (c Contract) HasSystem(entrypoint string) bool {
	if len(c.Systems) == 0 {
		return true
	}
	for _, s := range c.Systems {
		if s == entrypoint {
			return true
		}
	}
	return false
}

// Model is a registered model.
type Model struct {
	Tag       string    `json:"tag"`
	ClassHash felt.Felt `json:"class_hash"`
	Selector  felt.Felt `json:"selector"`
}

// Manifest is the subset of a sozo manifest (manifest_<profile>.json) needed
// to address contracts and models.
type Manifest struct {
	World     World      `json:"world"`
	Contracts []Contract `json:"contracts"`
	Models    []Model    `json:"models"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses manifest JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}

// ContractByName returns the contract tagged "<namespace>-<name>".
func (m *Manifest) ContractByName(namespace, name string) (*Contract, error) {
	tag := Tag(namespace, name)
	for i := range m.Contracts {
		if m.Contracts[i].Tag == tag {
			return &m.Contracts[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrContractNotFound, tag)
}

// Model returns the model with the given tag.
func (m *Manifest) Model(tag string) (*Model, error) {
	for i := range m.Models {
		if m.Models[i].Tag == tag {
			return &m.Models[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, tag)
}
