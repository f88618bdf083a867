package identity

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "redart/pkg/domain"
)

func mustHex(t *testing.T, s string) [id.HashLength]byte {
	t.Helper()
	raw, err := hex.DecodeString(s)
	require.NoError(t, err)
	require.Len(t, raw, id.HashLength)
	var out [id.HashLength]byte
	copy(out[:], raw)
	return out
}

func TestKeccak256KnownVectors(t *testing.T) {
	assert.Equal(t,
		mustHex(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
		Keccak256(),
		"empty input")
	assert.Equal(t,
		mustHex(t, "ad3228b676f7d3cd4284a5443f17f1962b36e491b30a40b2405849e597ba5fb5"),
		Keccak256(make([]byte, 64)),
		"64 zero bytes")
}

func TestDeriveRUID(t *testing.T) {
	puid := id.PUID(HashString("test_artist_identity"))
	awid := id.AWID(HashString("artwork_content_hash"))

	assert.Equal(t, "0x31dfa7121e62da8ce2c853264b2cb6ef6db09be4aa6268c593377c1430404fc3", puid.String())
	assert.Equal(t, "0x1288c602d710938baf53971e0ad2857446c98b97ffea600a0aea52298d940844", awid.String())

	ruid := DeriveRUID(puid, awid)
	assert.Equal(t, "0xb6b04f2cd433b1fe7670efb6d956ec874c661fe309d6e540806b2597bc2d3937", ruid.String())
	assert.Equal(t, id.RUID(Keccak256(puid[:], awid[:])), ruid)
}

func TestVerify(t *testing.T) {
	puid := id.PUID(HashString("test_artist_identity"))
	awid := id.AWID(HashString("artwork_content_hash"))
	ruid := DeriveRUID(puid, awid)

	t.Run("derived ruid verifies", func(t *testing.T) {
		assert.True(t, Verify(ruid, puid, awid))
	})

	t.Run("unrelated ruid fails", func(t *testing.T) {
		wrong := id.RUID(HashString("wrong_ruid"))
		assert.False(t, Verify(wrong, puid, awid))
	})

	t.Run("operand order matters", func(t *testing.T) {
		assert.False(t, Verify(ruid, id.PUID(awid), id.AWID(puid)))
	})

	t.Run("zero ruid never verifies real inputs", func(t *testing.T) {
		assert.False(t, Verify(id.RUID{}, puid, awid))
	})

	t.Run("any single bit flip fails", func(t *testing.T) {
		for i := 0; i < id.HashLength; i++ {
			flipped := ruid
			flipped[i] ^= 0x01
			require.False(t, Verify(flipped, puid, awid), "byte %d", i)
		}
	})
}
