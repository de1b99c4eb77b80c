package felt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeShortString(t *testing.T) {
	f, err := EncodeShortString("hello")
	require.NoError(t, err)
	assert.Equal(t, "0x68656c6c6f", f.Hex())
}

func TestShortStringRoundTrip(t *testing.T) {
	for _, s := range []string{"a", "alice", "player_one", strings.Repeat("z", MaxShortStringLen)} {
		f, err := EncodeShortString(s)
		require.NoError(t, err)
		assert.Equal(t, s, DecodeShortString(f))
	}
}

func TestEncodeEmptyShortString(t *testing.T) {
	f, err := EncodeShortString("")
	require.NoError(t, err)
	assert.True(t, f.IsZero())
	assert.Equal(t, "", DecodeShortString(f))
}

func TestEncodeShortStringTooLong(t *testing.T) {
	_, err := EncodeShortString(strings.Repeat("x", MaxShortStringLen+1))
	assert.ErrorIs(t, err, ErrShortStringTooLong)
}

func TestEncodeShortStringNonASCII(t *testing.T) {
	_, err := EncodeShortString("héllo")
	assert.ErrorIs(t, err, ErrNonASCII)
}

func TestSelectorTransfer(t *testing.T) {
	want := MustParse("0x0083afd3f4caedc6eebf44246fe54e38c95e3179a5ec9ea81740eca5b482d12e")
	assert.Equal(t, want, Selector("transfer"))
}

func TestSelectorFitsIn250Bits(t *testing.T) {
	for _, name := range []string{"create_player", "record_login", "add_currency", "update_attributes"} {
		s := Selector(name)
		assert.LessOrEqual(t, s.Big().BitLen(), 250, name)
	}
}

func TestSelectorDeterministic(t *testing.T) {
	assert.Equal(t, Selector("spend_currency"), Selector("spend_currency"))
	assert.NotEqual(t, Selector("spend_currency"), Selector("add_currency"))
}
