// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package localnet

import (
	"fmt"
	"net"
	"net/netip"
	"slices"

	"github.com/siemens/netsweep/iprange"
)

// clampBits is the widest IPv4 network a discovered attachment may span;
// anything wider gets clamped to the /24 around the interface address.
const clampBits = 24

// Network is an IPv4 network the host is attached to, together with the
// name of the attaching interface and the usable-host address range to
// scan.
type Network struct {
	Interface string        // name of the attaching network interface
	Prefix    netip.Prefix  // the (possibly clamped) network prefix
	Range     iprange.Range // usable host addresses of the prefix
}

// Discover returns the IPv4 networks attached to this host's up,
// non-loopback network interfaces, in ascending prefix address order and
// with duplicates (several addresses on the same clamped prefix) removed.
// A host without any eligible attachment yields an empty, non-nil list.
func Discover() ([]Network, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, fmt.Errorf("cannot discover network interfaces: %w", err)
	}
	networks := []Network{}
	seen := map[netip.Prefix]struct{}{}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipnet.IP.To4()
			if ip == nil {
				continue
			}
			ifaceAddr, ok := netip.AddrFromSlice(ip)
			if !ok {
				continue
			}
			bits, _ := ipnet.Mask.Size()
			if bits < clampBits {
				bits = clampBits
			}
			prefix := netip.PrefixFrom(ifaceAddr, bits).Masked()
			if _, duplicate := seen[prefix]; duplicate {
				continue
			}
			seen[prefix] = struct{}{}
			r, err := iprange.FromPrefix(prefix)
			if err != nil {
				continue
			}
			networks = append(networks, Network{
				Interface: iface.Name,
				Prefix:    prefix,
				Range:     r,
			})
		}
	}
	slices.SortFunc(networks, func(a, b Network) int {
		return a.Prefix.Addr().Compare(b.Prefix.Addr())
	})
	return networks, nil
}
