package dns

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeName(t *testing.T) {
	b, err := EncodeName("google.com")
	require.NoError(t, err)
	assert.Equal(t, "06676f6f676c6503636f6d00", hex.EncodeToString(b))
}

func TestEncodeName_Root(t *testing.T) {
	b, err := EncodeName(".")
	require.NoError(t, err)
	assert.Equal(t, []byte{0}, b)
}

func TestEncodeName_TrailingDot(t *testing.T) {
	a, err := EncodeName("example.com")
	require.NoError(t, err)
	b, err := EncodeName("example.com.")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEncodeName_Errors(t *testing.T) {
	longLabel := make([]byte, 64)
	for i := range longLabel {
		longLabel[i] = 'a'
	}

	// 4 labels x 63 bytes + separators + length bytes exceeds 255
	label63 := string(longLabel[:63])
	tooLong := label63 + "." + label63 + "." + label63 + "." + label63

	tests := []struct {
		name   string
		domain string
	}{
		{name: "empty", domain: ""},
		{name: "empty-label", domain: "a..b"},
		{name: "leading-dot", domain: ".example.com"},
		{name: "label-too-long", domain: string(longLabel) + ".com"},
		{name: "name-too-long", domain: tooLong},
		{name: "non-ascii", domain: "exämple.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeName(tt.domain)
			assert.ErrorIs(t, err, ErrDNSError)
		})
	}
}

func TestDecodeName_Uncompressed(t *testing.T) {
	msg := []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	c := NewCursor(msg)
	n, err := DecodeName(c)
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", n)
	assert.Equal(t, len(msg), c.Pos())
}

func TestDecodeName_Root(t *testing.T) {
	c := NewCursor([]byte{0})
	n, err := DecodeName(c)
	require.NoError(t, err)
	assert.Equal(t, "", n, "root name decodes to the empty string, not a dot")
}

func TestDecodeName_PointerToFullName(t *testing.T) {
	// "www.example.com" at offset 0, then a bare pointer back to it.
	msg := []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	ptrOff := len(msg)
	msg = append(msg, 0xC0, 0x00)

	c := NewCursor(msg)
	first, err := DecodeName(c)
	require.NoError(t, err)

	require.NoError(t, c.Seek(ptrOff))
	second, err := DecodeName(c)
	require.NoError(t, err)

	assert.Equal(t, first, second, "pointer-only name must decode identically to its target")
	assert.Equal(t, len(msg), c.Pos(), "cursor must end just past the 2 pointer bytes")
}

func TestDecodeName_PointerToSuffix(t *testing.T) {
	// "www.example.com" at offset 0; "ns1" + pointer to offset 4 ("example.com")
	msg := []byte{3, 'w', 'w', 'w', 7, 'e', 'x', 'a', 'm', 'p', 'l', 'e', 3, 'c', 'o', 'm', 0}
	nsOff := len(msg)
	msg = append(msg, 3, 'n', 's', '1', 0xC0, 0x04)

	c := NewCursor(msg)
	require.NoError(t, c.Seek(nsOff))
	n, err := DecodeName(c)
	require.NoError(t, err)
	assert.Equal(t, "ns1.example.com", n)
}

func TestDecodeName_PointerCycle(t *testing.T) {
	tests := []struct {
		name string
		msg  []byte
	}{
		{name: "self-pointer", msg: []byte{0xC0, 0x00}},
		{name: "two-pointer-cycle", msg: []byte{0xC0, 0x02, 0xC0, 0x00}},
		{name: "label-then-cycle", msg: []byte{1, 'a', 0xC0, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.msg)
			_, err := DecodeName(c)
			require.Error(t, err, "pointer cycles must fail, not hang")
			assert.ErrorIs(t, err, ErrDNSError)
		})
	}
}

func TestDecodeName_PointerOutOfBounds(t *testing.T) {
	c := NewCursor([]byte{0xC0, 0x50})
	_, err := DecodeName(c)
	assert.ErrorIs(t, err, ErrDNSError)
}

func TestDecodeName_TruncatedLabel(t *testing.T) {
	c := NewCursor([]byte{5, 'a', 'b'})
	_, err := DecodeName(c)
	assert.ErrorIs(t, err, ErrDNSError)
}

func TestDecodeName_MissingTerminator(t *testing.T) {
	c := NewCursor([]byte{3, 'c', 'o', 'm'})
	_, err := DecodeName(c)
	assert.ErrorIs(t, err, ErrDNSError)
}

func TestDecodeName_ReservedBits(t *testing.T) {
	c := NewCursor([]byte{0x40, 'a', 0})
	_, err := DecodeName(c)
	assert.ErrorIs(t, err, ErrDNSError)
}

func TestDecodeName_RoundTrip(t *testing.T) {
	names := []string{"a", "example.com", "www.example.com", "a.b.c.d.e.f"}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			wire, err := EncodeName(name)
			require.NoError(t, err)
			got, err := DecodeName(NewCursor(wire))
			require.NoError(t, err)
			assert.Equal(t, name, got)
		})
	}
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "example.com", NormalizeName("EXAMPLE.COM."))
	assert.Equal(t, "example.com", NormalizeName("example.com"))
	assert.Equal(t, "", NormalizeName("."))
}
