// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package iprange

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net"
	"net/netip"

	"github.com/projectdiscovery/mapcidr"
)

// ErrInvalidRange indicates that a range could not be constructed from the
// given endpoints: a malformed address literal, endpoints of different
// address families, or a first endpoint beyond the last one. All
// constructors in this package wrap ErrInvalidRange, so callers can test
// with [errors.Is].
var ErrInvalidRange = errors.New("invalid address range")

// Range is an inclusive, non-empty range of host addresses of a single
// address family. The zero Range is invalid; use [New], [Parse],
// [FromPrefix], or [FromCIDR] to obtain valid ones.
type Range struct {
	first netip.Addr
	last  netip.Addr
}

// New returns the inclusive range between the two specified endpoint
// addresses. It fails with an error wrapping [ErrInvalidRange] if the
// endpoints belong to different address families or first orders after
// last.
func New(first, last netip.Addr) (Range, error) {
	if !first.IsValid() || !last.IsValid() {
		return Range{}, fmt.Errorf("%w: invalid endpoint address", ErrInvalidRange)
	}
	first = first.Unmap()
	last = last.Unmap()
	if first.Is4() != last.Is4() {
		return Range{}, fmt.Errorf(
			"%w: %s and %s are of different address families",
			ErrInvalidRange, first, last)
	}
	if first.Compare(last) > 0 {
		return Range{}, fmt.Errorf(
			"%w: first address %s beyond last address %s",
			ErrInvalidRange, first, last)
	}
	return Range{first: first, last: last}, nil
}

// Parse returns the inclusive range between the two specified endpoint
// address literals, failing with an error wrapping [ErrInvalidRange] for
// unparsable literals as well as for endpoints [New] rejects.
func Parse(first, last string) (Range, error) {
	firstAddr, err := netip.ParseAddr(first)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, err)
	}
	lastAddr, err := netip.ParseAddr(last)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, err)
	}
	return New(firstAddr, lastAddr)
}

// FromPrefix returns the range of usable host addresses of the specified
// prefix. For IPv4 prefixes shorter than /31 the all-zeros network address
// and the all-ones broadcast address are left out; /31 and /32 prefixes as
// well as IPv6 prefixes cover all their addresses.
func FromPrefix(prefix netip.Prefix) (Range, error) {
	if !prefix.IsValid() {
		return Range{}, fmt.Errorf("%w: invalid prefix", ErrInvalidRange)
	}
	prefix = netip.PrefixFrom(prefix.Addr().Unmap(), prefix.Bits()).Masked()
	first := prefix.Addr()
	last := lastOf(prefix)
	if prefix.Addr().Is4() && prefix.Bits() < 31 {
		first = first.Next()
		last = last.Prev()
	}
	return New(first, last)
}

// FromCIDR returns the range of usable host addresses of the specified
// prefix in CIDR notation, following the conventions of [FromPrefix]. It
// fails with an error wrapping [ErrInvalidRange] for unparsable prefixes.
func FromCIDR(cidr string) (Range, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return Range{}, fmt.Errorf("%w: %s", ErrInvalidRange, err)
	}
	return FromPrefix(prefix)
}

// lastOf returns the highest address covered by the specified (masked)
// prefix, that is, the prefix address with all host bits set.
func lastOf(prefix netip.Prefix) netip.Addr {
	raw := prefix.Addr().AsSlice()
	bits := prefix.Bits()
	for i := range raw {
		if bits >= 8 {
			bits -= 8
			continue
		}
		raw[i] |= byte(0xff >> bits)
		bits = 0
	}
	last, _ := netip.AddrFromSlice(raw)
	return last
}

// First returns the lowest address of the range.
func (r Range) First() netip.Addr { return r.first }

// Last returns the highest address of the range.
func (r Range) Last() netip.Addr { return r.last }

// IsValid returns true if the range was properly constructed, as opposed to
// a zero Range value.
func (r Range) IsValid() bool { return r.first.IsValid() && r.last.IsValid() }

// String returns the “first-last” textual representation of the range.
func (r Range) String() string {
	return r.first.String() + "-" + r.last.String()
}

// Count returns the number of addresses covered by the range, including
// both endpoints. IPv6 ranges can easily exceed an uint64, so the count is
// a big.Int.
func (r Range) Count() *big.Int {
	if !r.IsValid() {
		return big.NewInt(0)
	}
	first, _, _ := mapcidr.IPToInteger(net.IP(r.first.AsSlice()))
	last, _, _ := mapcidr.IPToInteger(net.IP(r.last.AsSlice()))
	count := &big.Int{}
	return count.Add(count.Sub(last, first), big.NewInt(1))
}

// Stream returns a channel producing every address of the range in
// ascending order, first and last included. The channel is closed after
// the last address has been sent, or early when the specified context gets
// cancelled. Each call enumerates the range anew.
func (r Range) Stream(ctx context.Context) <-chan netip.Addr {
	return StreamAll(ctx, []Range{r})
}

// StreamAll returns a channel producing the addresses of all specified
// ranges, one range after the other, each in ascending order. The channel
// is closed after the last range has been drained, or early when the
// specified context gets cancelled.
func StreamAll(ctx context.Context, ranges []Range) <-chan netip.Addr {
	addrs := make(chan netip.Addr)
	go func() {
		defer close(addrs)
		for _, r := range ranges {
			if !r.IsValid() {
				continue
			}
			for addr := r.first; ; addr = addr.Next() {
				select {
				case addrs <- addr:
				case <-ctx.Done():
					return
				}
				if addr == r.last {
					break
				}
			}
		}
	}()
	return addrs
}
