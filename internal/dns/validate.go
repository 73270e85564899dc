package dns

import (
	"fmt"

	"golang.org/x/net/idna"
)

// ValidateResponse checks that resp plausibly answers query.
//
// This is basic off-path spoofing hygiene, verifying:
//   - QR flag is set (the packet is a response, not a reflected query)
//   - Transaction ID matches
//   - Exactly one question, echoing the query's name (case-insensitive),
//     type, and class
//
// Any mismatch is reported as ErrInvalidResponse.
func ValidateResponse(query *Query, resp Packet) error {
	if !resp.Header.IsResponse() {
		return fmt.Errorf("%w: QR flag not set", ErrInvalidResponse)
	}
	if resp.Header.ID != query.ID {
		return fmt.Errorf("%w: transaction ID mismatch (sent %d, got %d)",
			ErrInvalidResponse, query.ID, resp.Header.ID)
	}
	if len(resp.Questions) != 1 {
		return fmt.Errorf("%w: expected 1 question, got %d", ErrInvalidResponse, len(resp.Questions))
	}

	want := NormalizeName(query.Name)
	if puny, err := idna.Lookup.ToASCII(want); err == nil {
		want = puny
	}
	got := resp.Questions[0]
	if NormalizeName(got.Name) != NormalizeName(want) {
		return fmt.Errorf("%w: QNAME mismatch (sent %q, got %q)", ErrInvalidResponse, want, got.Name)
	}
	if got.Type != query.Type {
		return fmt.Errorf("%w: QTYPE mismatch (sent %d, got %d)", ErrInvalidResponse, query.Type, got.Type)
	}
	if got.Class != uint16(ClassIN) {
		return fmt.Errorf("%w: QCLASS mismatch (got %d)", ErrInvalidResponse, got.Class)
	}
	return nil
}
