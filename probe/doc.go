// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

/*
Package probe implements the per-host reachability probe: one ICMP echo
liveness check followed by one TCP connect attempt per configured port,
each bounded by the same timeout.

A [Prober] never reports errors. Whatever goes wrong while probing a host
(timeout, connection refusal, unreachable network, or missing raw-socket
privileges) collapses into the boolean fields of the returned
[types.HostResult]: a closed port and a filtered port are indistinguishable
to this tool, and so are a down host and a host we weren't allowed to ping.
This keeps the scan pipeline free of per-host error handling; only data
flows.

The ICMP echo is pure Go, leveraging [go-ping/ping]. By default it uses a
privileged raw ICMP socket; the [AsUnprivileged] option switches to UDP
echo sockets for environments where raw sockets are off-limits (check your
system's ping_group_range sysctl).

[go-ping/ping]: https://github.com/go-ping/ping
*/
package probe
