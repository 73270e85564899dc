package dns

import (
	"fmt"
	"net"
)

// IPRecord represents a DNS A or AAAA record containing an IP address.
// The Type is determined by the IP address version (IPv4 → TypeA, IPv6 → TypeAAAA).
type IPRecord struct {
	H    RRHeader
	Addr net.IP
}

// NewIPRecord creates a new IP record (A or AAAA based on address type).
func NewIPRecord(h RRHeader, addr net.IP) *IPRecord {
	return &IPRecord{H: h, Addr: addr}
}

// Type returns TypeA for IPv4 addresses, TypeAAAA for IPv6.
func (r *IPRecord) Type() RecordType {
	if r.Addr.To4() != nil {
		return TypeA
	}
	return TypeAAAA
}

// Header returns the record header.
func (r *IPRecord) Header() RRHeader { return r.H }

// Address returns the textual form of the address: dotted-decimal for
// IPv4 (e.g. "93.184.216.34"), RFC 5952 format for IPv6.
func (r *IPRecord) Address() string { return r.Addr.String() }

// MarshalRData marshals the IP address to wire format.
func (r *IPRecord) MarshalRData() ([]byte, error) {
	if ip4 := r.Addr.To4(); ip4 != nil {
		return []byte(ip4), nil
	}
	if ip6 := r.Addr.To16(); ip6 != nil {
		return []byte(ip6), nil
	}
	return nil, fmt.Errorf("%w: invalid IP address", ErrDNSError)
}

// parseIPRData parses A or AAAA record RDATA at the cursor position.
func parseIPRData(c *Cursor, h RRHeader, rdlen int) (*IPRecord, error) {
	if rdlen != 4 && rdlen != 16 {
		return nil, fmt.Errorf("%w: A/AAAA record must be 4/16 bytes (RFC 1035 §3.4.1), got %d", ErrDNSError, rdlen)
	}
	raw, err := c.Read(rdlen)
	if err != nil {
		return nil, fmt.Errorf("%w while reading IP record (RFC 1035 §3.4.1)", err)
	}
	b := make([]byte, rdlen)
	copy(b, raw)
	return &IPRecord{H: h, Addr: net.IP(b)}, nil
}
