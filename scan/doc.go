// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

/*
Package scan implements the scan coordinator: it fans a stream of host
addresses out over a bounded pool of concurrent host probes, streams
per-host progress news as probing proceeds, and finally aggregates the
completed results into a report ordered by ascending address value,
completely independent of the order in which the probes happened to
finish.

	                +---+
	ch netip.Addr-->| S +-->ch HostUpdate (progress news)
	                +---+
	                  |
	                  +--> []HostResult (sorted, on Scan return)

The pool bound is a hard ceiling on concurrently executing host probes; a
bound of 1 degrades gracefully to a fully sequential scan that produces
bit-for-bit the same report. Concurrency affects only timing, never
results.

A single misbehaving host probe never takes the scan down: a panicking
probe task is contained, logged, and degraded into an all-false result for
the affected address, while every other address still gets probed and
reported.

[Board] accompanies the coordinator on the consumer side: a concurrency-safe
tracking map that progress consumers such as a live terminal display feed
from the news stream and snapshot at their own pace.

# Acknowledgements

Under its hood, [Scanner] leverages [gammazero/workerpool] as the limiting
goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package scan
