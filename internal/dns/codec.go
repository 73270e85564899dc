package dns

import (
	"fmt"
	"strings"
)

// NormalizeName converts a domain name to lowercase without trailing dots.
// DNS domain names are case-insensitive per RFC 1035 Section 3.1.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, "."))
}

// EncodeName encodes a domain name to DNS wire format (RFC 1035 Section 3.1).
//
// DNS names are encoded as a sequence of labels, where each label is:
//   - 1 byte: length (0-63)
//   - N bytes: label characters
//
// The name is terminated by a zero-length label (single 0x00 byte).
//
// Example: "google.com" encodes as:
//
//	[6]google[3]com[0]
//	0x06 'g' 'o' 'o' 'g' 'l' 'e' 0x03 'c' 'o' 'm' 0x00
//
// Constraints:
//   - Each label max 63 bytes
//   - Total encoded name max 255 bytes
//   - ASCII only (IDN names must be punycoded first, see Query.Marshal)
//
// This function never emits compression pointers; queries built by this
// package are short enough that compression buys nothing.
func EncodeName(domain string) ([]byte, error) {
	if domain == "" {
		return nil, fmt.Errorf("%w: domain name must be non-empty", ErrDNSError)
	}
	domain = trimDot(domain)
	if domain == "" {
		return []byte{0}, nil // Root domain
	}

	out := make([]byte, 0, len(domain)+2)
	labelStart := 0
	for i := 0; i <= len(domain); i++ {
		if i == len(domain) || domain[i] == '.' {
			if i == labelStart {
				return nil, fmt.Errorf("%w: invalid domain name (empty label): %q", ErrDNSError, domain)
			}
			label := domain[labelStart:i]

			// Validate ASCII
			for j := 0; j < len(label); j++ {
				if label[j] > 0x7F {
					return nil, fmt.Errorf("%w: domain name must be ASCII: %q", ErrDNSError, domain)
				}
			}

			// Check label length (max 63 per RFC 1035)
			if len(label) > 63 {
				return nil, fmt.Errorf("%w: DNS label too long (%d > 63): %q", ErrDNSError, len(label), label)
			}

			out = append(out, byte(len(label)))
			out = append(out, label...)
			labelStart = i + 1
		}
	}
	out = append(out, 0) // Terminating zero-length label

	if len(out) > 255 {
		return nil, fmt.Errorf("%w: encoded domain name too long (%d > 255)", ErrDNSError, len(out))
	}
	return out, nil
}

// DecodeName decodes a possibly-compressed DNS name at the cursor position.
//
// DNS name compression (RFC 1035 Section 4.1.4) uses pointers to reduce
// message size. A compression pointer is identified by the two high bits
// of a label length byte being set (11xxxxxx pattern = 0xC0). The pointer
// value is a 14-bit absolute offset from the start of the message:
//
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//	| 1  1|                OFFSET                   |
//	+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+--+
//
// A name terminates at a zero-length label or immediately after a pointer;
// no labels follow a pointer within the same name. The cursor is left just
// past the encoded name (including any pointer bytes).
//
// Nothing stops a malicious message from forming pointer cycles, so the
// decoder tracks visited offsets and bounds indirection depth; both
// conditions fail with a bounded error instead of looping.
//
// Returns an ASCII, dot-separated name without a trailing dot. The root
// name decodes to the empty string, not ".".
func DecodeName(c *Cursor) (string, error) {
	return decodeName(c, 0, map[int]struct{}{})
}

// maxCompressionDepth bounds pointer indirections per name.
const maxCompressionDepth = 20

// decodeName is the recursive implementation of DecodeName.
// It tracks recursion depth and visited offsets to detect compression loops.
func decodeName(c *Cursor, depth int, visited map[int]struct{}) (string, error) {
	if depth > maxCompressionDepth {
		return "", fmt.Errorf("%w: too many DNS compression pointer indirections", ErrDNSError)
	}

	// Pre-allocate for typical domain depth (e.g., www.example.com = 3 labels)
	labels := make([]string, 0, 6)
	for {
		labelLen, err := c.ReadByte()
		if err != nil {
			return "", fmt.Errorf("%w while decoding DNS name", err)
		}

		// Zero-length label marks end of name
		if labelLen == 0 {
			break
		}

		// Check for compression pointer (high 2 bits = 11)
		if isCompressionPointer(labelLen) {
			rest, err := followCompressionPointer(c, labelLen, depth, visited)
			if err != nil {
				return "", err
			}
			if rest != "" {
				labels = append(labels, rest)
			}
			break
		}

		// Check for reserved label type (high 2 bits = 01 or 10)
		if hasReservedBits(labelLen) {
			return "", fmt.Errorf("%w: invalid DNS label length (reserved high bits set)", ErrDNSError)
		}

		// Regular label
		label, err := readLabel(c, int(labelLen))
		if err != nil {
			return "", err
		}
		labels = append(labels, label)
	}

	return joinLabels(labels), nil
}

// isCompressionPointer checks if the label length byte indicates a compression pointer.
// Compression pointers have the two high bits set (11xxxxxx = 0xC0 mask).
func isCompressionPointer(b byte) bool {
	return (b & 0xC0) == 0xC0
}

// hasReservedBits checks if the label uses reserved encoding (01xxxxxx or 10xxxxxx).
// These patterns are reserved for future use per RFC 1035.
func hasReservedBits(b byte) bool {
	return (b & 0xC0) != 0
}

// followCompressionPointer follows a DNS compression pointer and returns the
// name at that offset. The pointer is a 14-bit value: the first byte's low
// 6 bits combined with the next byte. The cursor is restored to just past
// the pointer bytes before returning.
func followCompressionPointer(c *Cursor, firstByte byte, depth int, visited map[int]struct{}) (string, error) {
	second, err := c.ReadByte()
	if err != nil {
		return "", fmt.Errorf("%w while decoding compression pointer", err)
	}

	ptr := int(firstByte&0x3F)<<8 | int(second)
	if ptr >= c.Len() {
		return "", fmt.Errorf("%w: DNS compression pointer out of bounds", ErrDNSError)
	}
	if _, ok := visited[ptr]; ok {
		return "", fmt.Errorf("%w: DNS compression pointer loop detected", ErrDNSError)
	}
	visited[ptr] = struct{}{}

	saved := c.Pos()
	if err := c.Seek(ptr); err != nil {
		return "", err
	}
	name, err := decodeName(c, depth+1, visited)
	if seekErr := c.Seek(saved); seekErr != nil {
		return "", seekErr
	}
	return name, err
}

// readLabel reads a single DNS label of the given length.
func readLabel(c *Cursor, length int) (string, error) {
	b, err := c.Read(length)
	if err != nil {
		return "", fmt.Errorf("%w while reading DNS label", err)
	}

	// Validate ASCII
	for _, ch := range b {
		if ch > 0x7F {
			return "", fmt.Errorf("%w: decoded DNS name was not ASCII", ErrDNSError)
		}
	}
	return string(b), nil
}

// trimDot removes all trailing dots from a string.
func trimDot(s string) string {
	for len(s) > 0 && s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// joinLabels concatenates DNS labels with dots.
func joinLabels(labels []string) string {
	if len(labels) == 0 {
		return ""
	}
	if len(labels) == 1 {
		return labels[0]
	}
	// Pre-calculate size to minimize Builder allocations
	totalSize := len(labels) - 1 // dots
	for _, label := range labels {
		totalSize += len(label)
	}
	var b strings.Builder
	b.Grow(totalSize)
	b.WriteString(labels[0])
	for i := 1; i < len(labels); i++ {
		b.WriteByte('.')
		b.WriteString(labels[i])
	}
	return b.String()
}
