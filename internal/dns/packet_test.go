package dns

import (
	"fmt"
	"math/rand"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPacket() Packet {
	return Packet{
		Header: Header{ID: 0x1234, Flags: QRFlag | AAFlag},
		Questions: []Question{
			{Name: "example.com", Type: uint16(TypeA), Class: uint16(ClassIN)},
		},
		Answers: []Record{
			NewIPRecord(NewRRHeader("example.com", ClassIN, 300), net.IP{93, 184, 216, 34}),
		},
		Authorities: []Record{
			NewNSRecord(NewRRHeader("example.com", ClassIN, 86400), "ns1.example.com"),
		},
		Additionals: []Record{
			NewIPRecord(NewRRHeader("ns1.example.com", ClassIN, 86400), net.IP{192, 0, 2, 53}),
		},
	}
}

func TestPacketMarshalParse(t *testing.T) {
	p := testPacket()

	b, err := p.Marshal()
	require.NoError(t, err)

	got, err := ParsePacket(b)
	require.NoError(t, err)

	assert.Equal(t, p.Header.ID, got.Header.ID)
	assert.Equal(t, p.Header.Flags, got.Header.Flags)
	assert.Equal(t, uint16(1), got.Header.QDCount)
	assert.Equal(t, uint16(1), got.Header.ANCount)
	assert.Equal(t, uint16(1), got.Header.NSCount)
	assert.Equal(t, uint16(1), got.Header.ARCount)
	assert.Equal(t, p.Questions, got.Questions)
	assert.Equal(t, p.Answers, got.Answers)
	assert.Equal(t, p.Authorities, got.Authorities)
	assert.Equal(t, p.Additionals, got.Additionals)
}

func TestPacketSectionOrderPreserved(t *testing.T) {
	p := Packet{
		Header: Header{ID: 1, Flags: QRFlag},
		Answers: []Record{
			NewIPRecord(NewRRHeader("a.example", ClassIN, 1), net.IP{192, 0, 2, 1}),
			NewIPRecord(NewRRHeader("a.example", ClassIN, 1), net.IP{192, 0, 2, 2}),
			NewIPRecord(NewRRHeader("a.example", ClassIN, 1), net.IP{192, 0, 2, 3}),
		},
	}

	b, err := p.Marshal()
	require.NoError(t, err)
	got, err := ParsePacket(b)
	require.NoError(t, err)

	require.Len(t, got.Answers, 3)
	for i, want := range []string{"192.0.2.1", "192.0.2.2", "192.0.2.3"} {
		assert.Equal(t, want, got.Answers[i].(*IPRecord).Address())
	}
}

func TestParsePacket_CountExceedsEntries(t *testing.T) {
	p := Packet{Header: Header{ID: 7}}
	b, err := p.Marshal()
	require.NoError(t, err)

	// Claim one answer that is not present
	b[7] = 1
	_, err = ParsePacket(b)
	assert.ErrorIs(t, err, ErrDNSError)
}

func TestParsePacket_TooShort(t *testing.T) {
	_, err := ParsePacket([]byte{0x12, 0x34})
	assert.ErrorIs(t, err, ErrDNSError)
}

// TestPacketRoundTripRandom checks decode(encode(m)) == m for generated
// messages with random section counts and contents (no compression on
// the encode side).
func TestPacketRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 50; i++ {
		t.Run(fmt.Sprintf("msg-%02d", i), func(t *testing.T) {
			p := randomPacket(rng)

			b, err := p.Marshal()
			require.NoError(t, err)

			got, err := ParsePacket(b)
			require.NoError(t, err)

			assert.Equal(t, p.Header.ID, got.Header.ID)
			assert.Equal(t, p.Header.Flags, got.Header.Flags)
			assert.Equal(t, p.Questions, got.Questions)
			assert.Equal(t, p.Answers, got.Answers)
			assert.Equal(t, p.Authorities, got.Authorities)
			assert.Equal(t, p.Additionals, got.Additionals)

			// Re-encoding the parsed packet must be byte-identical.
			b2, err := got.Marshal()
			require.NoError(t, err)
			assert.Equal(t, b, b2)
		})
	}
}

func randomPacket(rng *rand.Rand) Packet {
	p := Packet{
		Header: Header{
			ID:    uint16(rng.Intn(1 << 16)),
			Flags: QRFlag | uint16(rng.Intn(1<<4)), // response with random RCODE
		},
	}
	for n := rng.Intn(3); n > 0; n-- {
		p.Questions = append(p.Questions, Question{
			Name:  randomName(rng),
			Type:  uint16(TypeA),
			Class: uint16(ClassIN),
		})
	}
	p.Answers = randomRecords(rng)
	p.Authorities = randomRecords(rng)
	p.Additionals = randomRecords(rng)
	return p
}

func randomRecords(rng *rand.Rand) []Record {
	var out []Record
	for n := rng.Intn(4); n > 0; n-- {
		h := NewRRHeader(randomName(rng), ClassIN, uint32(rng.Intn(86400)))
		switch rng.Intn(3) {
		case 0:
			ip := net.IP{byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256)), byte(rng.Intn(256))}
			out = append(out, NewIPRecord(h, ip))
		case 1:
			out = append(out, NewNSRecord(h, randomName(rng)))
		default:
			data := make([]byte, rng.Intn(16)+1)
			rng.Read(data)
			out = append(out, NewOpaqueRecord(h, TypeTXT, data))
		}
	}
	return out
}

func randomName(rng *rand.Rand) string {
	const chars = "abcdefghijklmnopqrstuvwxyz0123456789"
	labels := rng.Intn(3) + 1
	name := ""
	for i := 0; i < labels; i++ {
		if i > 0 {
			name += "."
		}
		n := rng.Intn(10) + 1
		for j := 0; j < n; j++ {
			name += string(chars[rng.Intn(len(chars))])
		}
	}
	return name
}
