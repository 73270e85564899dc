package resolver

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/jroosing/iterdns/internal/pool"
)

// Transport performs one DNS round trip: send a query datagram to a
// nameserver address ("host:port") and return the raw reply payload.
//
// Implementations must be safe for concurrent use; the resolver shares
// one Transport across all resolutions, including nested ones.
type Transport interface {
	Exchange(ctx context.Context, addr string, query []byte) ([]byte, error)
}

// Default UDP transport settings.
const (
	DefaultTimeout  = 3 * time.Second
	DefaultRecvSize = 4096
)

// UDPTransport exchanges DNS messages over UDP.
//
// Each Exchange dials a fresh connected socket, writes the query once
// and reads one reply. There are no retries and no TCP fallback on
// truncation: retry and fallback policy belongs to the caller, not to
// the transport.
//
// The zero value is usable and applies the Default* settings.
type UDPTransport struct {
	// Timeout bounds a single exchange. A sooner context deadline wins.
	Timeout time.Duration

	// RecvSize is the receive buffer size in bytes.
	RecvSize int

	once    sync.Once
	buffers *pool.Buffers
}

// Exchange implements Transport.
func (t *UDPTransport) Exchange(ctx context.Context, addr string, query []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	c, err := net.DialUDP("udp", nil, udpAddr)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	// Set deadline from timeout or context, whichever is sooner
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	_ = c.SetDeadline(deadline)

	if _, err := c.Write(query); err != nil {
		return nil, err
	}

	buf := t.pool().Get()
	defer t.pool().Put(buf)

	n, err := c.Read(buf)
	if err != nil {
		return nil, err
	}

	// Copy the reply out of the pooled buffer
	reply := make([]byte, n)
	copy(reply, buf[:n])
	return reply, nil
}

// pool lazily initializes the shared receive-buffer pool.
func (t *UDPTransport) pool() *pool.Buffers {
	t.once.Do(func() {
		size := t.RecvSize
		if size <= 0 {
			size = DefaultRecvSize
		}
		t.buffers = pool.NewBuffers(size)
	})
	return t.buffers
}
