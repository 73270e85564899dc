package dns

import (
	"encoding/binary"
	"fmt"

	"github.com/jroosing/iterdns/internal/helpers"
)

// RRHeader contains common metadata for DNS resource records.
// This is distinct from Header which is the DNS message header.
type RRHeader struct {
	Name  string
	Class uint16
	TTL   uint32
}

// NewRRHeader creates a new resource record header.
func NewRRHeader(name string, class RecordClass, ttl uint32) RRHeader {
	return RRHeader{Name: name, Class: uint16(class), TTL: ttl}
}

// Record is the interface for DNS resource records.
// All DNS records implement this interface for type-safe handling.
// Records returned by the parser are never mutated afterwards.
type Record interface {
	// Type returns the DNS record type.
	Type() RecordType

	// Header returns the record's metadata.
	Header() RRHeader

	// MarshalRData marshals the record-specific data (RDATA) to wire format.
	MarshalRData() ([]byte, error)
}

// ParseRecord parses a resource record at the cursor position.
// It advances the cursor past the parsed record on success.
func ParseRecord(c *Cursor) (Record, error) {
	name, err := DecodeName(c)
	if err != nil {
		return nil, err
	}
	fixed, err := c.Read(10)
	if err != nil {
		return nil, fmt.Errorf("%w while reading DNS record", err)
	}
	rrType := binary.BigEndian.Uint16(fixed[0:2])
	rrClass := binary.BigEndian.Uint16(fixed[2:4])
	ttl := binary.BigEndian.Uint32(fixed[4:8])
	rdlen := int(binary.BigEndian.Uint16(fixed[8:10]))
	if c.Pos()+rdlen > c.Len() {
		return nil, fmt.Errorf("%w: unexpected EOF while reading DNS record rdata", ErrDNSError)
	}

	h := RRHeader{Name: name, Class: rrClass, TTL: ttl}
	return parseRData(c, RecordType(rrType), h, rdlen)
}

// parseRData parses RDATA into a Record based on record type.
//
// For an iterative resolver, we only interpret the record types its
// decision logic needs:
//   - A/AAAA addresses (answers and glue)
//   - NS/CNAME names (delegations and aliases)
//   - Everything else (TXT, SOA, DNSSEC, ...) is carried opaquely
func parseRData(c *Cursor, rt RecordType, h RRHeader, rdlen int) (Record, error) {
	switch rt {
	case TypeA, TypeAAAA:
		return parseIPRData(c, h, rdlen)
	case TypeNS, TypeCNAME:
		return parseNameRData(c, h, rt, rdlen)
	default:
		return parseOpaqueRData(c, h, rt, rdlen)
	}
}

// MarshalRecord converts a Record to wire-format bytes.
func MarshalRecord(r Record) ([]byte, error) {
	rdata, err := r.MarshalRData()
	if err != nil {
		return nil, err
	}
	if len(rdata) > 65535 {
		return nil, fmt.Errorf("%w: rdata too large: %d bytes (max 65535)", ErrDNSError, len(rdata))
	}

	h := r.Header()
	nameWire, err := EncodeName(h.Name)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(nameWire)+10+len(rdata))
	out = append(out, nameWire...)
	fixed := make([]byte, 10)
	binary.BigEndian.PutUint16(fixed[0:2], uint16(r.Type()))
	binary.BigEndian.PutUint16(fixed[2:4], h.Class)
	binary.BigEndian.PutUint32(fixed[4:8], h.TTL)
	binary.BigEndian.PutUint16(fixed[8:10], helpers.ClampIntToUint16(len(rdata)))
	out = append(out, fixed...)
	out = append(out, rdata...)
	return out, nil
}
