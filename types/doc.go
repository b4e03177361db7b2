// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

/*
Package types defines netsweep's information model. Which is rather simple
and revolves around [HostResult] records, the [ProbeState] a host is in while
a scan is running, and [HostUpdate] news items combining the two.

# Design Rationale

netsweep is inherently concurrent: many hosts are probed at the same time and
their outcomes arrive in whatever order the network dictates. All model types
here therefore are plain values that get passed over channels, with no setters
and no shared mutable state. A [HostResult] is produced exactly once by the
probe that worked the host and after that only ever copied: by the scan
coordinator into its working set, by progress consumers into their display
maps, and finally by the report writer into the output rows. Value semantics
plus single-producer life cycles keep the pipeline free of locking beyond the
coordinator's own working set.

The Ports map inside a HostResult is technically mutable, as all Go maps are.
By convention it is written by its producer only; everything downstream
treats it as read-only. The alternative, a sorted slice of port/flag pairs,
makes the common "is port p open?" lookup awkward without buying safety.
*/
package types
