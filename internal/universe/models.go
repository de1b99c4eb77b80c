package universe

import (
	"errors"
	"fmt"

	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/felt"
)

// Model tags. Other services key records by these strings; renaming one
// requires a coordinated migration.
const (
	ModelUniversePlayer = "universe-UniversePlayer"
	ModelUser           = "universe-User"
)

// ErrFieldCount is returned when decoding a record from the wrong number of felts.
var ErrFieldCount = errors.New("wrong number of model fields")

// UniversePlayer holds the members of the universe-UniversePlayer model in
// declaration order. Every member travels as a felt.
type UniversePlayer struct {
	ID               felt.Felt `json:"id"`
	UserID           felt.Felt `json:"user_id"`
	CreatedAt        felt.Felt `json:"created_at"`
	LastUpdatedAt    felt.Felt `json:"last_updated_at"`
	LastLoginAt      felt.Felt `json:"last_login_at"`
	Fame             felt.Felt `json:"fame"`
	Charisma         felt.Felt `json:"charisma"`
	Stamina          felt.Felt `json:"stamina"`
	Strength         felt.Felt `json:"strength"`
	Agility          felt.Felt `json:"agility"`
	Intelligence     felt.Felt `json:"intelligence"`
	UniverseCurrency felt.Felt `json:"universe_currency"`
	BodyType         felt.Felt `json:"body_type"`
	SkinColor        felt.Felt `json:"skin_color"`
	BeardType        felt.Felt `json:"beard_type"`
	HairType         felt.Felt `json:"hair_type"`
	HairColor        felt.Felt `json:"hair_color"`
}

// User holds the members of the universe-User model in declaration order.
type User struct {
	Owner     string    `json:"owner"`
	Username  felt.Felt `json:"username"`
	CreatedAt felt.Felt `json:"created_at"`
}

var playerFields = []string{
	"id", "user_id", "created_at", "last_updated_at", "last_login_at",
	"fame", "charisma", "stamina", "strength", "agility", "intelligence",
	"universe_currency",
	"body_type", "skin_color", "beard_type", "hair_type", "hair_color",
}

var userFields = []string{"owner", "username", "created_at"}

// Assumed Cairo member types, keyed by field name. The generated bindings
// only carry felts, so these widths are inferred from each member's role and
// are display hints, not checked against the deployed model. Members missing
// here are felt252.
var cairoTypes = map[string]string{
	"created_at":        "u64",
	"last_updated_at":   "u64",
	"last_login_at":     "u64",
	"fame":              "u16",
	"charisma":          "u16",
	"stamina":           "u16",
	"strength":          "u16",
	"agility":           "u16",
	"intelligence":      "u16",
	"universe_currency": "u128",
	"body_type":         "u8",
	"skin_color":        "u8",
	"beard_type":        "u8",
	"hair_type":         "u8",
	"hair_color":        "u8",
	"owner":             "ContractAddress",
}

// Values returns the members in schema order.
func (p UniversePlayer) Values() []felt.Felt {
	return []felt.Felt{
		p.ID, p.UserID, p.CreatedAt, p.LastUpdatedAt, p.LastLoginAt,
		p.Fame, p.Charisma, p.Stamina, p.Strength, p.Agility, p.Intelligence,
		p.UniverseCurrency,
		p.BodyType, p.SkinColor, p.BeardType, p.HairType, p.HairColor,
	}
}

// DecodeUniversePlayer is the inverse of UniversePlayer.Values.
func DecodeUniversePlayer(vals []felt.Felt) (UniversePlayer, error) {
	if len(vals) != len(playerFields) {
		return UniversePlayer{}, fmt.Errorf("%w: %s has %d, got %d", ErrFieldCount, ModelUniversePlayer, len(playerFields), len(vals))
	}
	return UniversePlayer{
		ID:               vals[0],
		UserID:           vals[1],
		CreatedAt:        vals[2],
		LastUpdatedAt:    vals[3],
		LastLoginAt:      vals[4],
		Fame:             vals[5],
		Charisma:         vals[6],
		Stamina:          vals[7],
		Strength:         vals[8],
		Agility:          vals[9],
		Intelligence:     vals[10],
		UniverseCurrency: vals[11],
		BodyType:         vals[12],
		SkinColor:        vals[13],
		BeardType:        vals[14],
		HairType:         vals[15],
		HairColor:        vals[16],
	}, nil
}

// Values returns the members in schema order. An empty owner encodes as 0.
func (u User) Values() ([]felt.Felt, error) {
	var owner felt.Felt
	if u.Owner != "" {
		var err error
		if owner, err = felt.Parse(u.Owner); err != nil {
			return nil, fmt.Errorf("user owner: %w", err)
		}
	}
	return []felt.Felt{owner, u.Username, u.CreatedAt}, nil
}

// DecodeUser is the inverse of User.Values. A zero owner decodes as "".
func DecodeUser(vals []felt.Felt) (User, error) {
	if len(vals) != len(userFields) {
		return User{}, fmt.Errorf("%w: %s has %d, got %d", ErrFieldCount, ModelUser, len(userFields), len(vals))
	}
	u := User{Username: vals[1], CreatedAt: vals[2]}
	if !vals[0].IsZero() {
		u.Owner = vals[0].Hex()
	}
	return u, nil
}

// Field is one member of a record schema. Default is felt.Zero for numeric
// members and "" for the address-typed owner.
type Field struct {
	Name      string
	CairoType string
	Default   any
}

// RecordSchema describes a model: its type name and members in declaration
// order, which is the order the contract serialises them in.
type RecordSchema struct {
	Namespace string
	TypeName  string
	Fields    []Field
}

// Tag returns the model tag, e.g. "universe-User".
func (s RecordSchema) Tag() string {
	return dojo.Tag(s.Namespace, s.TypeName)
}

// FieldNames returns the member names in order.
func (s RecordSchema) FieldNames() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

func schemaOf(typeName string, names []string, stringFields ...string) RecordSchema {
	s := RecordSchema{Namespace: Namespace, TypeName: typeName, Fields: make([]Field, len(names))}
	for i, n := range names {
		s.Fields[i] = Field{Name: n, CairoType: "felt252", Default: felt.Zero}
		if t, ok := cairoTypes[n]; ok {
			s.Fields[i].CairoType = t
		}
		for _, sf := range stringFields {
			if n == sf {
				s.Fields[i].Default = ""
			}
		}
	}
	return s
}

// Schemas returns the UniversePlayer and User schemas. Each call builds new
// values, so callers cannot alter what others observe.
func Schemas() []RecordSchema {
	return []RecordSchema{
		schemaOf("UniversePlayer", playerFields),
		schemaOf("User", userFields, "owner"),
	}
}

// SchemaFor returns the schema with the given type name or tag.
func SchemaFor(name string) (RecordSchema, bool) {
	for _, s := range Schemas() {
		if s.TypeName == name || s.Tag() == name {
			return s, true
		}
	}
	return RecordSchema{}, false
}

// DefaultUniversePlayer returns the default player record: every member zero.
func DefaultUniversePlayer() UniversePlayer { return UniversePlayer{} }

// DefaultUser returns the default user record: empty owner, zero username and
// creation time.
func DefaultUser() User { return User{} }

// ModelsMapping maps each model type name to its tag. The returned map is a
// fresh copy.
func ModelsMapping() map[string]string {
	return map[string]string{
		"UniversePlayer": ModelUniversePlayer,
		"User":           ModelUser,
	}
}
