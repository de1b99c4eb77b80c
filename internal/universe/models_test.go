package universe

import (
	"testing"

	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPlayerAllZero(t *testing.T) {
	vals := DefaultUniversePlayer().Values()
	require.Len(t, vals, 17)
	for i, v := range vals {
		assert.True(t, v.IsZero(), "field %d", i)
	}
}

func TestDefaultUser(t *testing.T) {
	u := DefaultUser()
	assert.Equal(t, "", u.Owner)
	assert.True(t, u.Username.IsZero())
	assert.True(t, u.CreatedAt.IsZero())
}

func TestSchemasShape(t *testing.T) {
	schemas := Schemas()
	require.Len(t, schemas, 2)

	player, user := schemas[0], schemas[1]
	assert.Equal(t, "UniversePlayer", player.TypeName)
	assert.Equal(t, []string{
		"id", "user_id", "created_at", "last_updated_at", "last_login_at",
		"fame", "charisma", "stamina", "strength", "agility", "intelligence",
		"universe_currency", "body_type", "skin_color", "beard_type", "hair_type", "hair_color",
	}, player.FieldNames())
	for _, fl := range player.Fields {
		assert.Equal(t, felt.Zero, fl.Default, fl.Name)
	}

	assert.Equal(t, "User", user.TypeName)
	assert.Equal(t, []string{"owner", "username", "created_at"}, user.FieldNames())
	assert.Equal(t, "", user.Fields[0].Default)
	assert.Equal(t, felt.Zero, user.Fields[1].Default)
	assert.Equal(t, felt.Zero, user.Fields[2].Default)
}

func TestSchemaCairoTypes(t *testing.T) {
	player, _ := SchemaFor("UniversePlayer")
	assert.Equal(t, "felt252", player.Fields[0].CairoType)
	assert.Equal(t, "u64", player.Fields[2].CairoType)
	assert.Equal(t, "u128", player.Fields[11].CairoType)
	assert.Equal(t, "u8", player.Fields[16].CairoType)

	user, _ := SchemaFor("User")
	assert.Equal(t, "ContractAddress", user.Fields[0].CairoType)
}

func TestSchemasAreIndependentCopies(t *testing.T) {
	first := Schemas()
	first[0].Fields[0].Name = "mutated"
	assert.Equal(t, "id", Schemas()[0].Fields[0].Name)
}

func TestSchemaTags(t *testing.T) {
	schemas := Schemas()
	assert.Equal(t, ModelUniversePlayer, schemas[0].Tag())
	assert.Equal(t, ModelUser, schemas[1].Tag())
}

func TestSchemaFor(t *testing.T) {
	s, ok := SchemaFor("universe-User")
	require.True(t, ok)
	assert.Equal(t, "User", s.TypeName)

	s, ok = SchemaFor("UniversePlayer")
	require.True(t, ok)
	assert.Len(t, s.Fields, 17)

	_, ok = SchemaFor("Inventory")
	assert.False(t, ok)
}

func TestModelsMapping(t *testing.T) {
	m := ModelsMapping()
	assert.Equal(t, map[string]string{
		"UniversePlayer": "universe-UniversePlayer",
		"User":           "universe-User",
	}, m)

	m["User"] = "changed"
	assert.Equal(t, "universe-User", ModelsMapping()["User"])
}

func TestPlayerValuesRoundTrip(t *testing.T) {
	p := UniversePlayer{
		ID: felt.FromUint64(7), UserID: felt.FromUint64(3), CreatedAt: felt.FromUint64(1_700_000_000),
		Fame: felt.FromUint64(10), Intelligence: felt.FromUint64(99),
		UniverseCurrency: felt.FromUint64(1500), HairColor: felt.FromUint64(5),
	}
	vals := p.Values()
	assert.Equal(t, felt.FromUint64(7), vals[0])
	assert.Equal(t, felt.FromUint64(1500), vals[11])
	assert.Equal(t, felt.FromUint64(5), vals[16])

	back, err := DecodeUniversePlayer(vals)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}

func TestDecodePlayerWrongCount(t *testing.T) {
	_, err := DecodeUniversePlayer(make([]felt.Felt, 16))
	assert.ErrorIs(t, err, ErrFieldCount)
}

func TestUserValuesRoundTrip(t *testing.T) {
	name, err := felt.EncodeShortString("alice")
	require.NoError(t, err)
	u := User{Owner: "0x5157", Username: name, CreatedAt: felt.FromUint64(1_700_000_000)}

	vals, err := u.Values()
	require.NoError(t, err)
	assert.Equal(t, felt.FromUint64(0x5157), vals[0])

	back, err := DecodeUser(vals)
	require.NoError(t, err)
	assert.Equal(t, u, back)
	assert.Equal(t, "alice", felt.DecodeShortString(back.Username))
}

func TestDefaultUserValues(t *testing.T) {
	vals, err := DefaultUser().Values()
	require.NoError(t, err)
	assert.Equal(t, []felt.Felt{felt.Zero, felt.Zero, felt.Zero}, vals)

	back, err := DecodeUser(vals)
	require.NoError(t, err)
	assert.Equal(t, DefaultUser(), back)
}

func TestUserValuesBadOwner(t *testing.T) {
	_, err := User{Owner: "not-an-address"}.Values()
	assert.ErrorIs(t, err, felt.ErrInvalidFelt)
}

func TestDecodeUserWrongCount(t *testing.T) {
	_, err := DecodeUser(make([]felt.Felt, 2))
	assert.ErrorIs(t, err, ErrFieldCount)
}

func TestCairoTypeHintsAreNotEnforced(t *testing.T) {
	p := DefaultUniversePlayer()
	p.BodyType = felt.FromUint64(300)
	p.Fame = felt.FromUint64(70_000)

	vals := p.Values()
	assert.Equal(t, felt.FromUint64(300), vals[12])

	back, err := DecodeUniversePlayer(vals)
	require.NoError(t, err)
	assert.Equal(t, p, back)
}
