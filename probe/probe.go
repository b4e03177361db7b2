// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package probe

import (
	"context"
	"net"
	"net/netip"
	"slices"
	"time"

	"github.com/siemens/netsweep/types"

	"github.com/go-ping/ping"
	"github.com/projectdiscovery/gologger"
)

// Prober probes single hosts for ICMP liveness and TCP port reachability.
// The port set and the per-probe timeout are fixed at construction; a
// Prober is stateless afterwards and safe for concurrent use by multiple
// goroutines.
type Prober struct {
	ports        []uint16      // distinct, ascending.
	timeout      time.Duration // per individual probe, ICMP and TCP alike.
	unprivileged bool          // if true, uses UDP-based pings instead of privileged ICMPs.
}

// ProberOption can be passed to New when creating new Prober objects.
type ProberOption func(*Prober)

// New returns a new [Prober] checking the specified TCP ports. The port
// set is normalized into distinct ascending port numbers, so the probing
// order and the result shape don't depend on how the caller assembled the
// set.
//
// The prober can be configured during creation using several options:
//   - [WithTimeout]
//   - [AsUnprivileged]
func New(ports []uint16, options ...ProberOption) *Prober {
	normalized := slices.Clone(ports)
	slices.Sort(normalized)
	normalized = slices.Compact(normalized)
	prober := &Prober{
		ports:   normalized,
		timeout: 1 * time.Second,
	}
	for _, opt := range options {
		opt(prober)
	}
	return prober
}

// WithTimeout sets the deadline applied to the ICMP echo probe and to each
// individual TCP connect probe.
func WithTimeout(timeout time.Duration) ProberOption {
	return func(p *Prober) {
		p.timeout = timeout
	}
}

// AsUnprivileged tells the Prober to carry out unprivileged pings using
// UDP instead of ICMP packets.
func AsUnprivileged() ProberOption {
	return func(p *Prober) {
		p.unprivileged = true
	}
}

// Ports returns the normalized (distinct, ascending) set of TCP ports this
// Prober checks.
func (p *Prober) Ports() []uint16 {
	return slices.Clone(p.ports)
}

// Probe checks the specified host address for ICMP liveness and then for
// TCP reachability of each configured port, in ascending port order. It
// always returns a complete [types.HostResult] with exactly one port map
// entry per configured port and never an error: all transport failures,
// timeouts, and privilege problems collapse into false outcome flags.
//
// The worst-case latency of a single Probe call is the configured timeout
// times one plus the number of ports. Cancelling the specified context
// aborts the ICMP probe and any not-yet-started TCP probes early, with the
// affected outcomes reported as false.
func (p *Prober) Probe(ctx context.Context, addr netip.Addr) types.HostResult {
	result := types.HostResult{
		Addr:  addr,
		Alive: p.pingHost(ctx, addr),
		Ports: make(map[uint16]bool, len(p.ports)),
	}
	for _, port := range p.ports {
		result.Ports[port] = p.connectPort(ctx, addr, port)
	}
	return result
}

// pingHost sends a single ICMP (or UDP, when unprivileged) echo request to
// the specified address and reports whether a reply came back within the
// timeout.
func (p *Prober) pingHost(ctx context.Context, addr netip.Addr) bool {
	pinger, err := ping.NewPinger(addr.String())
	if err != nil {
		gologger.Debug().Msgf("cannot ping %s: %s", addr, err)
		return false
	}
	pinger.SetPrivileged(!p.unprivileged)
	pinger.Count = 1
	pinger.Timeout = p.timeout
	// While the ping is running we need to monitor the context in case it
	// becomes "done" by either getting cancelled or reaching its deadline.
	// The done channel here works "the other way round" in that it
	// terminates the concurrent context monitoring.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			pinger.Stop()
		case <-done:
		}
	}()
	if err := pinger.Run(); err != nil {
		// Raw socket permission denials end up here as well; a host we may
		// not ping reports just like a host that is down.
		gologger.Debug().Msgf("pinging %s failed: %s", addr, err)
		return false
	}
	if ctx.Err() != nil {
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}

// connectPort attempts to establish a TCP connection to the specified
// address and port within the timeout, reporting success or failure.
// Whatever the outcome, no socket resource stays behind.
func (p *Prober) connectPort(ctx context.Context, addr netip.Addr, port uint16) bool {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", netip.AddrPortFrom(addr, port).String())
	if err != nil {
		// Refused, timed out, filtered, unreachable: indistinguishable at
		// this layer, and deliberately so.
		return false
	}
	conn.Close()
	return true
}
