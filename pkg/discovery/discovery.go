package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/enbility/zeroconf/v3"
)

// mDNS service advertised by components with the control protocol enabled.
const (
	Service = "_kos_control._tcp"
	Domain  = "local."
)

// DefaultTimeout bounds Discover when the caller's context has no deadline.
const DefaultTimeout = 10 * time.Second

// Component is one discovered Kaleidescape component.
type Component struct {
	// Instance is the advertised mDNS instance name.
	Instance string

	// HostName is the advertised hostname, without the trailing dot.
	HostName string

	// IP is the component's IPv4 address.
	IP net.IP

	// Port is the advertised control protocol port.
	Port int
}

func (c Component) String() string {
	return fmt.Sprintf("%s (%s:%d)", c.Instance, c.IP, c.Port)
}

// MatchesHost reports whether a configured host names this component,
// either by mDNS hostname or by instance name. Matching is
// case-insensitive and ignores a trailing dot and the local domain suffix.
func (c Component) MatchesHost(host string) bool {
	want := canonicalHost(host)
	if want == "" {
		return false
	}
	return canonicalHost(c.HostName) == want || canonicalHost(c.Instance) == want
}

func canonicalHost(s string) string {
	s = strings.ToLower(strings.TrimSuffix(s, "."))
	return strings.TrimSuffix(s, ".local")
}

// Browse streams components as they announce themselves, until the context
// is cancelled. The returned channel is closed when browsing stops.
func Browse(ctx context.Context) (<-chan Component, error) {
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	out := make(chan Component)

	go func() {
		_ = zeroconf.Browse(ctx, Service, Domain, entries, removed)
	}()

	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case <-removed:
			case entry, ok := <-entries:
				if !ok {
					return
				}
				c, ok := fromEntry(entry)
				if !ok {
					continue
				}
				select {
				case out <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Discover collects every component that answers within the timeout. A
// timeout of zero means DefaultTimeout.
func Discover(ctx context.Context, timeout time.Duration) ([]Component, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch, err := Browse(ctx)
	if err != nil {
		return nil, err
	}

	var components []Component
	seen := make(map[string]struct{})
	for c := range ch {
		key := c.IP.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		components = append(components, c)
	}
	return components, nil
}

// Find browses until a component matching the host announces itself or the
// context ends.
func Find(ctx context.Context, host string) (Component, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := Browse(ctx)
	if err != nil {
		return Component{}, err
	}

	for c := range ch {
		if c.MatchesHost(host) {
			return c, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return Component{}, err
	}
	return Component{}, fmt.Errorf("component %q not found", host)
}

func fromEntry(entry *zeroconf.ServiceEntry) (Component, bool) {
	if entry == nil || len(entry.AddrIPv4) == 0 {
		return Component{}, false
	}
	return Component{
		Instance: entry.Instance,
		HostName: strings.TrimSuffix(entry.HostName, "."),
		IP:       entry.AddrIPv4[0],
		Port:     entry.Port,
	}, true
}
