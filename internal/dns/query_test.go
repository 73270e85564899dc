package dns

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryMarshalWire(t *testing.T) {
	q := Query{Name: "example.com", Type: uint16(TypeA), ID: 0xABCD}

	b, err := q.Marshal()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(b), HeaderSize)

	// ID occupies the first two bytes.
	assert.Equal(t, []byte{0xAB, 0xCD}, b[:2])
	// No flags set; in particular recursion is not requested.
	assert.Equal(t, []byte{0x00, 0x00}, b[2:4])
	// Counts and question section are fixed for a given name and type.
	want, err := hex.DecodeString("0001000000000000076578616d706c6503636f6d0000010001")
	require.NoError(t, err)
	assert.Equal(t, want, b[4:])
}

func TestQueryMarshalNormalizesCase(t *testing.T) {
	upper := Query{Name: "EXAMPLE.COM", Type: uint16(TypeA), ID: 1}
	lower := Query{Name: "example.com", Type: uint16(TypeA), ID: 1}

	ub, err := upper.Marshal()
	require.NoError(t, err)
	lb, err := lower.Marshal()
	require.NoError(t, err)
	assert.Equal(t, lb, ub)
}

func TestQueryMarshalIDNA(t *testing.T) {
	q := Query{Name: "müller.de", Type: uint16(TypeA), ID: 1}

	b, err := q.Marshal()
	require.NoError(t, err)

	p, err := ParsePacket(b)
	require.NoError(t, err)
	require.Len(t, p.Questions, 1)
	assert.Equal(t, "xn--mller-kva.de", p.Questions[0].Name)
}

func TestQueryMarshalInvalidName(t *testing.T) {
	q := Query{Name: "", Type: uint16(TypeA), ID: 1}
	_, err := q.Marshal()
	assert.Error(t, err)
}

func TestNewQuery(t *testing.T) {
	q := NewQuery("example.com", uint16(TypeA))

	assert.Equal(t, "example.com", q.Name)
	assert.Equal(t, uint16(TypeA), q.Type)
	assert.Zero(t, q.Flags)
}

func TestNewIDVaries(t *testing.T) {
	seen := map[uint16]bool{}
	for i := 0; i < 32; i++ {
		seen[NewID()] = true
	}
	// Collisions over 32 draws from a 16-bit space are possible but a
	// single repeated value means the generator is broken.
	assert.Greater(t, len(seen), 1)
}
