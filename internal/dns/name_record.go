package dns

import "fmt"

// NameRecord represents DNS records whose RDATA is a single domain name
// (NS, CNAME). In responses the target name is frequently compressed.
type NameRecord struct {
	H      RRHeader
	T      RecordType
	Target string
}

// NewNameRecord creates a new name-based record (NS or CNAME).
func NewNameRecord(h RRHeader, rt RecordType, target string) *NameRecord {
	return &NameRecord{H: h, T: rt, Target: target}
}

// NewNSRecord creates a new NS record.
func NewNSRecord(h RRHeader, target string) *NameRecord {
	return NewNameRecord(h, TypeNS, target)
}

// NewCNAMERecord creates a new CNAME record.
func NewCNAMERecord(h RRHeader, target string) *NameRecord {
	return NewNameRecord(h, TypeCNAME, target)
}

// Type returns the record type (NS or CNAME).
func (r *NameRecord) Type() RecordType { return r.T }

// Header returns the record header.
func (r *NameRecord) Header() RRHeader { return r.H }

// MarshalRData marshals the target name to wire format.
func (r *NameRecord) MarshalRData() ([]byte, error) {
	return EncodeName(r.Target)
}

// parseNameRData parses NS or CNAME record RDATA at the cursor position.
// The name is delimited by its own terminator (or pointer), not by
// RDLENGTH; the declared length is verified against the bytes consumed.
func parseNameRData(c *Cursor, h RRHeader, rt RecordType, rdlen int) (*NameRecord, error) {
	start := c.Pos()
	n, err := DecodeName(c)
	if err != nil {
		return nil, err
	}
	if c.Pos()-start != rdlen {
		return nil, fmt.Errorf("%w: name record RDATA length mismatch (RFC 1035 §3.3)", ErrDNSError)
	}
	return &NameRecord{H: h, T: rt, Target: n}, nil
}
