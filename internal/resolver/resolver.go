// Package resolver implements iterative DNS resolution: walking the
// delegation hierarchy from a root nameserver down to an authoritative
// answer, following glue records where present and resolving nameserver
// names recursively where not.
//
// Resolution state (the current nameserver, recursion depth) is local to
// each Resolve call, so a single Resolver is safe for concurrent use as
// long as its Transport is.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/jroosing/iterdns/internal/dns"
)

// RootServer is the well-known root nameserver IP used to seed a fresh
// resolution (a.root-servers.net).
const RootServer = "198.41.0.4"

const dnsPort = "53"

// Bounds on the delegation walk. Nothing in the protocol guarantees that
// a delegation chain terminates, so both the referral loop and the
// nested nameserver-name resolution are bounded and exceeding a bound is
// an error, never a hang.
const (
	DefaultMaxReferrals = 32 // delegation hops per resolution
	DefaultMaxDepth     = 8  // nested nameserver-name resolutions
)

// Resolution errors.
var (
	// ErrNoProgress means a response carried no answer, no glue, and no
	// delegation, leaving the resolver with nowhere to go.
	ErrNoProgress = errors.New("dns response carried no answer, glue, or delegation")

	// ErrMaxReferrals means the delegation chain exceeded the referral
	// bound, which indicates a delegation loop or a hostile zone.
	ErrMaxReferrals = errors.New("delegation referral limit exceeded")

	// ErrMaxDepth means nameserver-name resolutions nested too deeply.
	ErrMaxDepth = errors.New("nameserver resolution depth exceeded")
)

// Resolver performs iterative DNS resolution starting at a root server.
//
// The zero value is usable: it seeds the walk at RootServer, exchanges
// messages over a default UDPTransport, and applies the Default* bounds.
type Resolver struct {
	// Root is the IP of the nameserver that seeds the walk.
	// Defaults to RootServer.
	Root string

	// Transport performs the per-query network round trips.
	// Defaults to a zero UDPTransport.
	Transport Transport

	// Logger, when set, receives a Debug-level trace of every
	// delegation hop.
	Logger *slog.Logger

	// MaxReferrals bounds delegation hops per resolution.
	MaxReferrals int

	// MaxDepth bounds nested nameserver-name resolutions.
	MaxDepth int
}

// Resolve iteratively resolves name to an IPv4 address in dotted-decimal
// form, walking the delegation chain from the root.
//
// Each response is inspected in priority order:
//  1. an answer A record ends the resolution,
//  2. an additional-section A record (glue) becomes the next nameserver,
//  3. an authority-section NS name is itself resolved to an A record,
//     which becomes the next nameserver,
//  4. none of the above fails with ErrNoProgress.
//
// Within each section the first matching record in wire order wins;
// records are not ranked or deduplicated. Errors from the transport and
// the codec propagate unchanged; nothing is retried.
func (r *Resolver) Resolve(ctx context.Context, name string, qtype uint16) (string, error) {
	return r.resolve(ctx, name, qtype, 0)
}

func (r *Resolver) resolve(ctx context.Context, name string, qtype uint16, depth int) (string, error) {
	if depth > r.maxDepth() {
		return "", fmt.Errorf("%w while resolving %q", ErrMaxDepth, name)
	}

	server := r.Root
	if server == "" {
		server = RootServer
	}

	for hop := 0; hop < r.maxReferrals(); hop++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := r.queryServer(ctx, server, name, qtype)
		if err != nil {
			return "", err
		}

		if ip, ok := firstA(resp.Answers); ok {
			r.logger().Debug("resolved", "name", name, "ip", ip, "server", server)
			return ip, nil
		}

		if glue, ok := firstA(resp.Additionals); ok {
			r.logger().Debug("following glue", "name", name, "server", server, "next", glue)
			server = glue
			continue
		}

		if nsName, ok := firstNS(resp.Authorities); ok {
			r.logger().Debug("resolving nameserver", "name", name, "server", server, "ns", nsName)
			addr, err := r.resolve(ctx, nsName, uint16(dns.TypeA), depth+1)
			if err != nil {
				return "", fmt.Errorf("resolving nameserver %q: %w", nsName, err)
			}
			server = addr
			continue
		}

		return "", fmt.Errorf("%w (queried %s for %q)", ErrNoProgress, server, name)
	}

	return "", fmt.Errorf("%w while resolving %q", ErrMaxReferrals, name)
}

// queryServer sends one query for name/qtype to server and returns the
// parsed, validated response.
func (r *Resolver) queryServer(ctx context.Context, server, name string, qtype uint16) (dns.Packet, error) {
	q := dns.NewQuery(name, qtype)
	wire, err := q.Marshal()
	if err != nil {
		return dns.Packet{}, err
	}

	reply, err := r.transport().Exchange(ctx, net.JoinHostPort(server, dnsPort), wire)
	if err != nil {
		return dns.Packet{}, fmt.Errorf("querying %s: %w", server, err)
	}

	resp, err := dns.ParsePacket(reply)
	if err != nil {
		return dns.Packet{}, fmt.Errorf("response from %s: %w", server, err)
	}
	if err := dns.ValidateResponse(q, resp); err != nil {
		return dns.Packet{}, fmt.Errorf("response from %s: %w", server, err)
	}
	return resp, nil
}

// firstA returns the address of the first A record in wire order.
func firstA(records []dns.Record) (string, bool) {
	for _, rr := range records {
		if ip, ok := rr.(*dns.IPRecord); ok && ip.Type() == dns.TypeA {
			return ip.Address(), true
		}
	}
	return "", false
}

// firstNS returns the target of the first NS record in wire order.
func firstNS(records []dns.Record) (string, bool) {
	for _, rr := range records {
		if nr, ok := rr.(*dns.NameRecord); ok && nr.Type() == dns.TypeNS && nr.Target != "" {
			return nr.Target, true
		}
	}
	return "", false
}

func (r *Resolver) transport() Transport {
	if r.Transport != nil {
		return r.Transport
	}
	return defaultTransport
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return discardLogger
}

func (r *Resolver) maxReferrals() int {
	if r.MaxReferrals > 0 {
		return r.MaxReferrals
	}
	return DefaultMaxReferrals
}

func (r *Resolver) maxDepth() int {
	if r.MaxDepth > 0 {
		return r.MaxDepth
	}
	return DefaultMaxDepth
}

var (
	defaultTransport = &UDPTransport{}
	discardLogger    = slog.New(slog.NewTextHandler(io.Discard, nil))
)
