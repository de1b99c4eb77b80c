package felt

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// MaxShortStringLen is the number of ASCII bytes that fit in one felt.
const MaxShortStringLen = 31

// Errors.
var (
	ErrShortStringTooLong = errors.New("short string longer than 31 bytes")
	ErrNonASCII           = errors.New("short string contains non-ASCII characters")
)

// EncodeShortString packs an ASCII string of at most 31 bytes into a felt,
// big-endian, the way Cairo encodes felt252 short strings.
func EncodeShortString(s string) (Felt, error) {
	if len(s) > MaxShortStringLen {
		return Felt{}, fmt.Errorf("%w: %q", ErrShortStringTooLong, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return Felt{}, fmt.Errorf("%w: %q", ErrNonASCII, s)
		}
	}
	var f Felt
	f.n.SetBytes([]byte(s))
	return f, nil
}

// DecodeShortString unpacks a felt produced by EncodeShortString.
func DecodeShortString(f Felt) string {
	return string(f.n.Bytes())
}

// Selector returns the Starknet keccak of name: keccak256 truncated to 250 bits.
func Selector(name string) Felt {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(name))

	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	sum[0] &= 0x03

	var f Felt
	f.n.SetBytes32(sum[:])
	return f
}
