// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package scan

import (
	"context"
	"net/netip"
	"slices"
	"sync"

	"github.com/siemens/netsweep/types"

	"github.com/gammazero/workerpool"
	"github.com/projectdiscovery/gologger"
)

// HostProber is the capability the scan coordinator needs from a host
// probe: turn one address into one complete [types.HostResult], without
// ever failing. Implementations must be safe for concurrent use.
type HostProber interface {
	Probe(ctx context.Context, addr netip.Addr) types.HostResult
}

// Scanner coordinates probing a stream of host addresses over a bounded
// worker pool, streaming per-host progress news while the scan is
// running. Scanners use a goroutine-limited worker pool.
type Scanner struct {
	prober   HostProber
	workers  *workerpool.WorkerPool
	news     chan types.HostUpdate // progress news stream channel.
	stopOnce sync.Once
}

// New returns a new [Scanner] with a maximum worker pool of the specified
// size, as well as a progress “news stream”. The news channel sends a
// [types.HostUpdate] when an address gets enqueued, when its probes start
// executing, and finally when its result is in.
//
// A size of 1 yields a fully sequential scan; any larger size only
// shortens the wait, never changes the results.
//
// The news channel is buffered, but only slightly: consumers must keep
// draining it while a scan is running, or the scan will block on its next
// news item. [Board.Track] run in a separate goroutine is one such
// consumer.
func New(prober HostProber, size int) (*Scanner, <-chan types.HostUpdate) {
	news := make(chan types.HostUpdate, size)
	return &Scanner{
		prober:  prober,
		workers: workerpool.New(size),
		news:    news,
	}, news
}

// Scan reads host addresses from the specified channel until it is closed
// (or the context gets cancelled), probing each distinct address exactly
// once. It returns the collected results sorted by ascending address
// value, so the same address stream and the same network state always
// produce the same report, regardless of pool size and probe completion
// order. An address stream that closes without producing any address
// yields an empty, non-nil result.
//
// Scan does not return before all enqueued host probes have finished; it
// then shuts the worker pool down and closes the news channel. A Scanner
// is therefore good for a single Scan only.
//
// In case the specified context gets cancelled, Scan stops enqueueing new
// host probes, waits for the in-flight ones, and returns the results
// gathered so far.
func (s *Scanner) Scan(ctx context.Context, addrs <-chan netip.Addr) []types.HostResult {
	var mu sync.Mutex // protects the result collection across probe tasks.
	results := []types.HostResult{}
	seen := map[netip.Addr]struct{}{}
slurpAddresses:
	for {
		select {
		case addr, ok := <-addrs:
			if !ok {
				break slurpAddresses
			}
			if _, duplicate := seen[addr]; duplicate {
				continue
			}
			seen[addr] = struct{}{}
			s.enqueue(ctx, addr, func(result types.HostResult) {
				mu.Lock()
				defer mu.Unlock()
				results = append(results, result)
			})
		case <-ctx.Done():
			break slurpAddresses
		}
	}
	s.StopWait()
	mu.Lock()
	defer mu.Unlock()
	slices.SortFunc(results, func(a, b types.HostResult) int {
		return a.Addr.Compare(b.Addr)
	})
	return results
}

// enqueue announces the specified address on the news stream and then
// submits its probe task to the worker pool, with the collect callback
// receiving the final result.
func (s *Scanner) enqueue(ctx context.Context, addr netip.Addr, collect func(types.HostResult)) {
	// Announce the enqueued address before its probes even start, so that
	// interactive consumers can show all pending work early.
	select {
	case s.news <- types.HostUpdate{Addr: addr, State: types.Queued}:
	case <-ctx.Done():
		return
	}
	s.workers.Submit(func() {
		// A quick and non-blocking check to see if the context has been
		// cancelled while this task sat in the queue; a cancelled scan
		// must not keep working the backlog.
		select {
		case <-ctx.Done():
			return
		default:
		}
		select {
		case s.news <- types.HostUpdate{Addr: addr, State: types.Probing}:
		case <-ctx.Done():
		}
		result := s.probe(ctx, addr)
		collect(result)
		// Allow cancelling a blocked news send to avoid leaking goroutines.
		// The order in which select checks ctx.Done() and a blocked news
		// channel is random, so a cancelled run may still see spurious
		// final updates.
		select {
		case s.news <- types.HostUpdate{Addr: addr, State: types.Done, Result: result}:
		case <-ctx.Done():
		}
	})
}

// probe runs the host probe for the specified address, containing any
// panic within this one task: a misbehaving probe degrades into an
// all-false result for its address instead of taking the whole scan down.
func (s *Scanner) probe(ctx context.Context, addr netip.Addr) (result types.HostResult) {
	defer func() {
		if r := recover(); r != nil {
			gologger.Warning().Msgf("probing %s failed: %v", addr, r)
			result = types.HostResult{Addr: addr}
		}
	}()
	return s.prober.Probe(ctx, addr)
}

// StopWait waits for all enqueued probe tasks to get processed and then
// finally closes the news channel. Calling StopWait multiple times is
// fine.
func (s *Scanner) StopWait() {
	s.stopOnce.Do(func() {
		s.workers.StopWait()
		close(s.news)
	})
}
