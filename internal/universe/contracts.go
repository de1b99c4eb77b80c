// Package universe provides typed bindings for the universe world: calldata
// builders and an invocation façade for the game contract, and the schemas of
// the UniversePlayer and User models.
package universe

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohsinsiddi/universe/internal/dojo"
	"github.com/Mohsinsiddi/universe/internal/felt"
	"github.com/ethereum/go-ethereum/log"
)

const (
	// Namespace is the Dojo namespace the world registers its resources under.
	Namespace = "universe"
	// GameContract is the name of the system contract holding every entrypoint.
	GameContract = "game"
)

// Entrypoints of the game contract.
const (
	EntrypointAddCurrency      = "add_currency"
	EntrypointAssignUser       = "assign_user"
	EntrypointCreateOrGetUser  = "create_or_get_user"
	EntrypointCreatePlayer     = "create_player"
	EntrypointRecordLogin      = "record_login"
	EntrypointSpendCurrency    = "spend_currency"
	EntrypointUpdateAttributes = "update_attributes"
)

// Errors returned by the generic BuildCall form.
var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrArgumentCount    = errors.New("wrong number of arguments")
)

// Kind tells callers how to read a parameter from text.
type Kind string

const (
	KindFelt        Kind = "felt"        // decimal or 0x-hex integer
	KindAddress     Kind = "address"     // 0x-hex contract address
	KindShortString Kind = "shortstring" // ASCII text of at most 31 bytes, or a raw felt
)

// Param is one declared parameter of an operation.
type Param struct {
	Name string
	Kind Kind
}

// Operation describes one entrypoint of the game contract.
type Operation struct {
	Name       string // camelCase binding name, e.g. "createPlayer"
	Entrypoint string // snake_case remote name, e.g. "create_player"
	Params     []Param
}

func felts(names ...string) []Param {
	ps := make([]Param, len(names))
	for i, n := range names {
		ps[i] = Param{Name: n, Kind: KindFelt}
	}
	return ps
}

var operations = []Operation{
	{Name: "addCurrency", Entrypoint: EntrypointAddCurrency, Params: felts("playerId", "amount")},
	{Name: "assignUser", Entrypoint: EntrypointAssignUser, Params: felts("playerId", "userId")},
	{Name: "createOrGetUser", Entrypoint: EntrypointCreateOrGetUser, Params: []Param{
		{Name: "userAddress", Kind: KindAddress},
		{Name: "username", Kind: KindShortString},
	}},
	{Name: "createPlayer", Entrypoint: EntrypointCreatePlayer,
		Params: felts("playerId", "userId", "bodyType", "skinColor", "beardType", "hairType", "hairColor")},
	{Name: "recordLogin", Entrypoint: EntrypointRecordLogin, Params: felts("playerId")},
	{Name: "spendCurrency", Entrypoint: EntrypointSpendCurrency, Params: felts("playerId", "amount")},
	{Name: "updateAttributes", Entrypoint: EntrypointUpdateAttributes,
		Params: felts("playerId", "fame", "charisma", "stamina", "strength", "agility", "intelligence")},
}

// Operations returns the game contract's operations in declaration order.
// The returned slice is a copy.
func Operations() []Operation {
	out := make([]Operation, len(operations))
	for i, op := range operations {
		op.Params = append([]Param(nil), op.Params...)
		out[i] = op
	}
	return out
}

// LookupOperation finds an operation by binding name or entrypoint name.
func LookupOperation(name string) (Operation, bool) {
	for _, op := range operations {
		if op.Name == name || op.Entrypoint == name {
			op.Params = append([]Param(nil), op.Params...)
			return op, true
		}
	}
	return Operation{}, false
}

func gameCall(entrypoint string, args ...felt.Felt) dojo.Call {
	return dojo.Call{
		ContractName: GameContract,
		Entrypoint:   entrypoint,
		Calldata:     append([]felt.Felt{}, args...),
	}
}

// BuildCall packs args for the named operation. It fails only when the
// operation is unknown or the argument count does not match its declaration.
func BuildCall(op string, args ...felt.Felt) (dojo.Call, error) {
	o, ok := LookupOperation(op)
	if !ok {
		return dojo.Call{}, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	if len(args) != len(o.Params) {
		return dojo.Call{}, fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, o.Name, len(o.Params), len(args))
	}
	return gameCall(o.Entrypoint, args...), nil
}

// BuildAddCurrencyCalldata builds the add_currency call.
func BuildAddCurrencyCalldata(playerID, amount felt.Felt) dojo.Call {
	return gameCall(EntrypointAddCurrency, playerID, amount)
}

// BuildAssignUserCalldata builds the assign_user call.
func BuildAssignUserCalldata(playerID, userID felt.Felt) dojo.Call {
	return gameCall(EntrypointAssignUser, playerID, userID)
}

// BuildCreateOrGetUserCalldata builds the create_or_get_user call. username is
// a short string felt (see felt.EncodeShortString).
func BuildCreateOrGetUserCalldata(userAddress, username felt.Felt) dojo.Call {
	return gameCall(EntrypointCreateOrGetUser, userAddress, username)
}

// BuildCreatePlayerCalldata builds the create_player call.
func BuildCreatePlayerCalldata(playerID, userID, bodyType, skinColor, beardType, hairType, hairColor felt.Felt) dojo.Call {
	return gameCall(EntrypointCreatePlayer, playerID, userID, bodyType, skinColor, beardType, hairType, hairColor)
}

// BuildRecordLoginCalldata builds the record_login call.
func BuildRecordLoginCalldata(playerID felt.Felt) dojo.Call {
	return gameCall(EntrypointRecordLogin, playerID)
}

// BuildSpendCurrencyCalldata builds the spend_currency call.
func BuildSpendCurrencyCalldata(playerID, amount felt.Felt) dojo.Call {
	return gameCall(EntrypointSpendCurrency, playerID, amount)
}

// BuildUpdateAttributesCalldata builds the update_attributes call.
func BuildUpdateAttributesCalldata(playerID, fame, charisma, stamina, strength, agility, intelligence felt.Felt) dojo.Call {
	return gameCall(EntrypointUpdateAttributes, playerID, fame, charisma, stamina, strength, agility, intelligence)
}

// Game invokes the game contract through an Executor. It holds no state
// besides its collaborators and is safe for concurrent use when they are.
type Game struct {
	executor dojo.Executor
	log      log.Logger
}

// NewGame creates a Game. A nil logger falls back to the root logger.
func NewGame(executor dojo.Executor, logger log.Logger) *Game {
	if logger == nil {
		logger = log.Root()
	}
	return &Game{executor: executor, log: logger}
}

// execute hands call to the executor exactly once. A failure is logged and
// returned unchanged.
func (g *Game) execute(ctx context.Context, account dojo.Account, call dojo.Call) (*dojo.ExecutionResult, error) {
	res, err := g.executor.Execute(ctx, account, call, Namespace)
	if err != nil {
		g.log.Error("Contract execution failed", "contract", call.ContractName, "entrypoint", call.Entrypoint, "err", err)
		return nil, err
	}
	return res, nil
}

// Invoke builds and executes the named operation.
func (g *Game) Invoke(ctx context.Context, account dojo.Account, op string, args ...felt.Felt) (*dojo.ExecutionResult, error) {
	call, err := BuildCall(op, args...)
	if err != nil {
		return nil, err
	}
	return g.execute(ctx, account, call)
}

// AddCurrency credits amount to the player's balance.
func (g *Game) AddCurrency(ctx context.Context, account dojo.Account, playerID, amount felt.Felt) (*dojo.ExecutionResult, error) {
	return g.execute(ctx, account, BuildAddCurrencyCalldata(playerID, amount))
}

// AssignUser links a player to a user.
func (g *Game) AssignUser(ctx context.Context, account dojo.Account, playerID, userID felt.Felt) (*dojo.ExecutionResult, error) {
	return g.execute(ctx, account, BuildAssignUserCalldata(playerID, userID))
}

// CreateOrGetUser registers the user owning userAddress, or returns the
// existing one.
func (g *Game) CreateOrGetUser(ctx context.Context, account dojo.Account, userAddress, username felt.Felt) (*dojo.ExecutionResult, error) {
	return g.execute(ctx, account, BuildCreateOrGetUserCalldata(userAddress, username))
}

// CreatePlayer creates a player with the given appearance.
func (g *Game) CreatePlayer(ctx context.Context, account dojo.Account, playerID, userID, bodyType, skinColor, beardType, hairType, hairColor felt.Felt) (*dojo.ExecutionResult, error) {
	return g.execute(ctx, account, BuildCreatePlayerCalldata(playerID, userID, bodyType, skinColor, beardType, hairType, hairColor))
}

// RecordLogin stamps the player's last login time.
func (g *Game) RecordLogin(ctx context.Context, account dojo.Account, playerID felt.Felt) (*dojo.ExecutionResult, error) {
	return g.execute(ctx, account, BuildRecordLoginCalldata(playerID))
}

// SpendCurrency debits amount from the player's balance.
func (g *Game) SpendCurrency(ctx context.Context, account dojo.Account, playerID, amount felt.Felt) (*dojo.ExecutionResult, error) {
	return g.execute(ctx, account, BuildSpendCurrencyCalldata(playerID, amount))
}

// UpdateAttributes overwrites the player's six attribute stats.
func (g *Game) UpdateAttributes(ctx context.Context, account dojo.Account, playerID, fame, charisma, stamina, strength, agility, intelligence felt.Felt) (*dojo.ExecutionResult, error) {
	return g.execute(ctx, account, BuildUpdateAttributesCalldata(playerID, fame, charisma, stamina, strength, agility, intelligence))
}
