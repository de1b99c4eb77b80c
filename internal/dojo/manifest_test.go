package dojo_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = "testdata/manifest_dev.json"

func TestLoadManifest(t *testing.T) {
	m, err := dojo.LoadManifest(testManifest)
	require.NoError(t, err)

	assert.Equal(t, "universe", m.World.Seed)
	assert.Equal(t, felt.MustParse("0x0525177c8afe8680d7ad1da30ca183e482cfcd6404c1e09d83fd3fa2994fd4b8"), m.World.Address)
	require.Len(t, m.Contracts, 1)
	require.Len(t, m.Models, 2)
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := dojo.LoadManifest(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading manifest")
}

func TestParseManifestCorrupt(t *testing.T) {
	_, err := dojo.ParseManifest([]byte(`{"world":`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing manifest")
}

func TestParseManifestRejectsBadFelt(t *testing.T) {
	_, err := dojo.ParseManifest([]byte(`{"contracts":[{"tag":"universe-game","address":"not-hex"}]}`))
	assert.ErrorIs(t, err, felt.ErrInvalidFelt)
}

func TestContractByName(t *testing.T) {
	m, err := dojo.LoadManifest(testManifest)
	require.NoError(t, err)

	c, err := m.ContractByName("universe", "game")
	require.NoError(t, err)
	assert.Equal(t, "universe-game", c.Tag)
	assert.True(t, c.HasSystem("create_player"))
	assert.False(t, c.HasSystem("self_destruct"))
}

func TestContractByNameWrongNamespace(t *testing.T) {
	m, err := dojo.LoadManifest(testManifest)
	require.NoError(t, err)

	_, err = m.ContractByName("other", "game")
	assert.ErrorIs(t, err, dojo.ErrContractNotFound)
}

func TestModelLookup(t *testing.T) {
	m, err := dojo.LoadManifest(testManifest)
	require.NoError(t, err)

	model, err := m.Model("universe-User")
	require.NoError(t, err)
	assert.Equal(t, "universe-User", model.Tag)

	_, err = m.Model("universe-Ghost")
	assert.ErrorIs(t, err, dojo.ErrModelNotFound)
}

func TestHasSystemWithoutList(t *testing.T) {
	c := dojo.Contract{Tag: "universe-game"}
	assert.True(t, c.HasSystem("anything"))
}

func TestTag(t *testing.T) {
	assert.Equal(t, "universe-UniversePlayer", dojo.Tag("universe", "UniversePlayer"))
}

func TestManifestFromTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"world":{"address":"0x1"},"contracts":[],"models":[]}`), 0o600))

	m, err := dojo.LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(1), m.World.Address)
	assert.Empty(t, m.Contracts)
}
