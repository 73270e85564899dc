// Command iterdns resolves a domain name to an IP address by walking the
// DNS delegation hierarchy from a root nameserver, without relying on a
// recursive resolver.
//
// Usage:
//
//	iterdns [flags] <name>
//	iterdns -verbose example.com
//	iterdns -qtype A -root 198.41.0.4 www.example.com
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jroosing/iterdns/internal/dns"
	"github.com/jroosing/iterdns/internal/logging"
	"github.com/jroosing/iterdns/internal/resolver"
)

func main() {
	var (
		qtypeStr  = flag.String("qtype", "A", "Query type (A, NS, TXT, or numeric)")
		root      = flag.String("root", resolver.RootServer, "Root nameserver IP seeding the walk")
		timeout   = flag.Duration("timeout", 10*time.Second, "Overall resolution timeout")
		logFormat = flag.String("log-format", "text", "Log format (text or json)")
		verbose   = flag.Bool("verbose", false, "Trace every delegation hop")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <name>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	name := flag.Arg(0)

	qtype, err := parseQType(*qtypeStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "iterdns error: %v\n", err)
		os.Exit(1)
	}

	level := "INFO"
	if *verbose {
		level = "DEBUG"
	}
	logger := logging.Configure(logging.Config{Level: level, Format: *logFormat})

	r := &resolver.Resolver{
		Root:      *root,
		Transport: &resolver.UDPTransport{},
		Logger:    logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ip, err := r.Resolve(ctx, name, qtype)
	if err != nil {
		fmt.Fprintf(os.Stderr, "iterdns error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(ip)
}

// parseQType maps a mnemonic or numeric query type to its wire value.
func parseQType(s string) (uint16, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return uint16(dns.TypeA), nil
	case "NS":
		return uint16(dns.TypeNS), nil
	case "TXT":
		return uint16(dns.TypeTXT), nil
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 65535 {
		return uint16(n), nil
	}
	return 0, fmt.Errorf("unsupported query type %q", s)
}
