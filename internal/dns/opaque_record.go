package dns

// OpaqueRecord represents a DNS record whose type this resolver does not
// interpret (TXT, SOA, and anything else). The RDATA is carried as raw
// bytes of the declared length.
type OpaqueRecord struct {
	H    RRHeader
	T    RecordType
	Data []byte
}

// NewOpaqueRecord creates a new opaque record.
func NewOpaqueRecord(h RRHeader, rt RecordType, data []byte) *OpaqueRecord {
	return &OpaqueRecord{H: h, T: rt, Data: data}
}

// Type returns the record type.
func (r *OpaqueRecord) Type() RecordType { return r.T }

// Header returns the record header.
func (r *OpaqueRecord) Header() RRHeader { return r.H }

// MarshalRData marshals the opaque data to wire format.
func (r *OpaqueRecord) MarshalRData() ([]byte, error) {
	return r.Data, nil
}

// parseOpaqueRData reads exactly rdlen raw bytes at the cursor position.
func parseOpaqueRData(c *Cursor, h RRHeader, rt RecordType, rdlen int) (*OpaqueRecord, error) {
	raw, err := c.Read(rdlen)
	if err != nil {
		return nil, err
	}
	b := make([]byte, rdlen)
	copy(b, raw)
	return &OpaqueRecord{H: h, T: rt, Data: b}, nil
}
