package dns

import (
	"encoding/binary"
	"fmt"
)

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
//
// Each question specifies what the client is asking for:
//   - Name: The domain name being queried
//   - Type: The record type requested (A, NS, TXT, etc.)
//   - Class: Always ClassIN (Internet) in this resolver
type Question struct {
	Name  string
	Type  uint16
	Class uint16
}

// Marshal serializes the question to DNS wire format.
func (q Question) Marshal() ([]byte, error) {
	name, err := EncodeName(q.Name)
	if err != nil {
		return nil, err
	}
	b := make([]byte, 0, len(name)+4)
	b = append(b, name...)
	buf := make([]byte, 4)
	binary.BigEndian.PutUint16(buf[0:2], q.Type)
	binary.BigEndian.PutUint16(buf[2:4], q.Class)
	b = append(b, buf...)
	return b, nil
}

// ParseQuestion parses a question at the cursor position.
// It advances the cursor past the parsed question on success.
func ParseQuestion(c *Cursor) (Question, error) {
	name, err := DecodeName(c)
	if err != nil {
		return Question{}, err
	}
	qtype, err := c.ReadUint16()
	if err != nil {
		return Question{}, fmt.Errorf("%w while reading DNS question", err)
	}
	qclass, err := c.ReadUint16()
	if err != nil {
		return Question{}, fmt.Errorf("%w while reading DNS question", err)
	}
	return Question{Name: name, Type: qtype, Class: qclass}, nil
}
