// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package types

import (
	"net/netip"
	"slices"
)

// HostResult is the outcome of probing a single host: whether it answered an
// ICMP echo, and for each probed TCP port whether a connection could be
// established. A HostResult is created exactly once per scanned address and
// never modified afterwards.
type HostResult struct {
	Addr  netip.Addr      `json:"addr"`  // the probed host address
	Alive bool            `json:"alive"` // answered the ICMP echo
	Ports map[uint16]bool `json:"ports"` // TCP connect outcome per probed port
}

// Reachable returns true if the host answered the ICMP echo or accepted at
// least one TCP connection.
func (r HostResult) Reachable() bool {
	if r.Alive {
		return true
	}
	for _, open := range r.Ports {
		if open {
			return true
		}
	}
	return false
}

// OpenPorts returns the ports the host accepted connections on, in ascending
// order.
func (r HostResult) OpenPorts() []uint16 {
	open := make([]uint16, 0, len(r.Ports))
	for port, isOpen := range r.Ports {
		if isOpen {
			open = append(open, port)
		}
	}
	slices.Sort(open)
	return open
}

// HostUpdate is a single news item on a scan's progress stream: the host
// address, the state its probes are in, and, once Done, the final result.
type HostUpdate struct {
	Addr   netip.Addr `json:"addr"`
	State  ProbeState `json:"state"`
	Result HostResult `json:"result"` // zero value until State is Done
}
