// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

/*
Package iprange implements inclusive ranges of IPv4 or IPv6 host addresses,
with validation, size arithmetic, and lazy enumeration.

A [Range] is a plain value over two [netip.Addr] endpoints of the same
address family. Construction validates what a scan must never trip over
mid-run: unparsable literals, mixed address families, and inverted
endpoints all fail early, wrapping [ErrInvalidRange]. A successfully
constructed Range is always enumerable.

Enumeration is lazy: [Range.Stream] returns a channel producing the
addresses in ascending order, one after the other, so that even large IPv6
spans never get materialized as a slice. Range sizes are therefore also
reported as [math/big.Int] values, courtesy of [projectdiscovery/mapcidr]'s
address-to-integer conversion.

[projectdiscovery/mapcidr]: https://github.com/projectdiscovery/mapcidr
*/
package iprange
