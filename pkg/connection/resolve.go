package connection

import (
	"context"
	"net"
	"regexp"
	"time"

	"github.com/kaleidescape-community/kaleidescape-go/pkg/discovery"
)

var (
	ipv4Format   = regexp.MustCompile(`^[0-9.]+$`)
	leadingZeros = regexp.MustCompile(`\b0+(\d)`)
)

// mdnsTimeout bounds the mDNS phase of resolution so a host that is not
// advertising falls through to unicast DNS quickly.
const mdnsTimeout = 2 * time.Second

// Resolve turns a configured host into a dialable IPv4 address. IP literals
// pass through with leading zeros stripped from each octet, a convenience
// for installers copying addresses straight off the on-screen display.
// Hostnames are resolved via mDNS first, then unicast DNS.
func Resolve(ctx context.Context, host string) (string, error) {
	if ipv4Format.MatchString(host) {
		return leadingZeros.ReplaceAllString(host, "$1"), nil
	}

	mdnsCtx, cancel := context.WithTimeout(ctx, mdnsTimeout)
	defer cancel()
	if c, err := discovery.Find(mdnsCtx, host); err == nil {
		return c.IP.String(), nil
	}

	ip, err := resolveDNS(ctx, host)
	if err != nil {
		return "", &ResolveError{Host: host, Err: err}
	}
	return ip, nil
}

func resolveDNS(ctx context.Context, host string) (string, error) {
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return "", err
	}
	// Prefer IPv4; the control port only listens on IPv4 on older hardware.
	for _, addr := range addrs {
		if v4 := addr.IP.To4(); v4 != nil {
			return v4.String(), nil
		}
	}
	if len(addrs) > 0 {
		return addrs[0].IP.String(), nil
	}
	return "", &net.DNSError{Err: "no addresses", Name: host}
}
