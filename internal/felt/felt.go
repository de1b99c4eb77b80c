// Package felt implements the Starknet field element used for every calldata
// word and model member in the universe world.
package felt

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/holiman/uint256"
)

// Errors.
var (
	ErrInvalidFelt = errors.New("invalid felt")
	ErrOutOfRange  = errors.New("felt out of range")
)

// prime is the field modulus P = 2^251 + 17*2^192 + 1.
var prime = func() *uint256.Int {
	p := new(uint256.Int).Lsh(uint256.NewInt(1), 251)
	p.Add(p, new(uint256.Int).Lsh(uint256.NewInt(17), 192))
	return p.AddUint64(p, 1)
}()

// Felt is an element of the Starknet prime field. The zero value is 0.
type Felt struct {
	n uint256.Int
}

// Zero is the zero felt.
var Zero Felt

// Prime returns the field modulus as a big.Int.
func Prime() *big.Int {
	return prime.ToBig()
}

// FromUint64 returns v as a felt. Every uint64 is below the modulus.
func FromUint64(v uint64) Felt {
	var f Felt
	f.n.SetUint64(v)
	return f
}

// FromBig converts b, rejecting negative values and values >= P.
func FromBig(b *big.Int) (Felt, error) {
	if b.Sign() < 0 {
		return Felt{}, fmt.Errorf("%w: negative value %s", ErrOutOfRange, b)
	}
	v, overflow := uint256.FromBig(b)
	if overflow || !v.Lt(prime) {
		return Felt{}, fmt.Errorf("%w: %s", ErrOutOfRange, b)
	}
	return Felt{n: *v}, nil
}

// Parse reads a 0x-prefixed hex or a decimal string. Leading zeros are allowed
// in both forms.
func Parse(s string) (Felt, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Felt{}, fmt.Errorf("%w: empty string", ErrInvalidFelt)
	}

	var (
		b  *big.Int
		ok bool
	)
	if digits, found := strings.CutPrefix(strings.ToLower(s), "0x"); found {
		b, ok = new(big.Int).SetString(digits, 16)
	} else {
		b, ok = new(big.Int).SetString(s, 10)
	}
	if !ok {
		return Felt{}, fmt.Errorf("%w: %q", ErrInvalidFelt, s)
	}
	return FromBig(b)
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Felt {
	f, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Hex returns the minimal 0x-prefixed hex form ("0x0" for zero).
func (f Felt) Hex() string { return f.n.Hex() }

// String returns the decimal form.
func (f Felt) String() string { return f.n.Dec() }

// Uint64 returns the low 64 bits.
func (f Felt) Uint64() uint64 { return f.n.Uint64() }

// IsUint64 reports whether the value fits in a uint64.
func (f Felt) IsUint64() bool { return f.n.IsUint64() }

// IsZero reports whether f is 0.
func (f Felt) IsZero() bool { return f.n.IsZero() }

// Big returns f as a new big.Int.
func (f Felt) Big() *big.Int { return f.n.ToBig() }

// Bytes32 returns the big-endian 32-byte encoding.
func (f Felt) Bytes32() [32]byte { return f.n.Bytes32() }

// Cmp compares f and g and returns -1, 0 or +1.
func (f Felt) Cmp(g Felt) int { return f.n.Cmp(&g.n) }

// MarshalJSON encodes f as a hex string, the form Starknet nodes use.
func (f Felt) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Hex())
}

// UnmarshalJSON accepts a hex or decimal string, or a bare JSON number.
func (f *Felt) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	v, err := Parse(raw)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// Hexes formats a slice of felts as hex strings.
func Hexes(fs []Felt) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Hex()
	}
	return out
}
