package dns

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"

	"golang.org/x/net/idna"
)

// Query describes a single DNS question to be sent to a nameserver.
//
// Construct with NewQuery, which randomizes the transaction ID, or set
// the fields directly when the caller controls the ID.
type Query struct {
	// Name is the domain name to query. Unicode names are IDNA-encoded
	// during Marshal.
	Name string

	// Type is the query type (use the Type* constants).
	Type uint16

	// ID is the 16-bit transaction ID echoed by the server.
	ID uint16

	// Flags are the header flags. NewQuery leaves them zero: an iterative
	// resolver walks the delegation chain itself, so it must not request
	// recursion (RD) from the root and authoritative servers it contacts.
	Flags uint16
}

// NewQuery constructs a Query for name/qtype with a random transaction ID
// and all flags cleared.
func NewQuery(name string, qtype uint16) *Query {
	return &Query{Name: name, Type: qtype, ID: NewID()}
}

// NewID returns a random 16-bit transaction ID. Unpredictable IDs make
// off-path response spoofing harder.
func NewID() uint16 {
	var b [2]byte
	rand.Read(b[:])
	return binary.BigEndian.Uint16(b[:])
}

// Marshal serializes the query to DNS wire format: a 12-byte header with
// QDCount=1 followed by one IN question, all fields big-endian.
func (q *Query) Marshal() ([]byte, error) {
	punyName, err := idna.Lookup.ToASCII(NormalizeName(q.Name))
	if err != nil {
		return nil, fmt.Errorf("idna encoding %q: %w", q.Name, err)
	}

	p := Packet{
		Header: Header{ID: q.ID, Flags: q.Flags},
		Questions: []Question{
			{Name: punyName, Type: q.Type, Class: uint16(ClassIN)},
		},
	}
	return p.Marshal()
}
