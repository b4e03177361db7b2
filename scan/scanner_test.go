// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package scan

import (
	"context"
	"fmt"
	"net/netip"
	"sync"
	"time"

	"github.com/siemens/netsweep/iprange"
	"github.com/siemens/netsweep/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

// canned is a deterministic HostProber for coordination tests: it serves
// prepared results, counts how often each address gets probed, and
// optionally panics on or stalls selected addresses.
type canned struct {
	mu      sync.Mutex
	results map[netip.Addr]types.HostResult
	probed  map[netip.Addr]int
	panicky map[netip.Addr]struct{}
	delay   time.Duration
}

func newCanned(results map[netip.Addr]types.HostResult) *canned {
	return &canned{
		results: results,
		probed:  map[netip.Addr]int{},
		panicky: map[netip.Addr]struct{}{},
	}
}

func (c *canned) Probe(ctx context.Context, addr netip.Addr) types.HostResult {
	c.mu.Lock()
	c.probed[addr]++
	_, mustPanic := c.panicky[addr]
	c.mu.Unlock()
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
	if mustPanic {
		panic(fmt.Sprintf("socket exhaustion while probing %s", addr))
	}
	if result, ok := c.results[addr]; ok {
		return result
	}
	return types.HostResult{Addr: addr, Ports: map[uint16]bool{}}
}

func (c *canned) probeCount(addr netip.Addr) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.probed[addr]
}

// sweep runs a complete scan over the specified range with a pool of the
// specified size, draining the news stream into a Board on the side.
func sweep(ctx context.Context, prober HostProber, size int, r iprange.Range) ([]types.HostResult, *Board) {
	scanner, news := New(prober, size)
	board := NewBoard()
	trackingDone := make(chan struct{})
	go func() {
		defer GinkgoRecover()
		Expect(board.Track(ctx, news)).To(Succeed())
		close(trackingDone)
	}()
	results := scanner.Scan(ctx, r.Stream(ctx))
	Eventually(trackingDone).WithTimeout(2 * time.Second).Should(BeClosed())
	return results, board
}

var _ = Describe("scan coordinator", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	outcomes := map[netip.Addr]types.HostResult{
		netip.MustParseAddr("10.0.0.1"): {
			Addr:  netip.MustParseAddr("10.0.0.1"),
			Alive: true,
			Ports: map[uint16]bool{80: true, 443: false},
		},
		netip.MustParseAddr("10.0.0.2"): {
			Addr:  netip.MustParseAddr("10.0.0.2"),
			Ports: map[uint16]bool{80: false, 443: false},
		},
		netip.MustParseAddr("10.0.0.3"): {
			Addr:  netip.MustParseAddr("10.0.0.3"),
			Alive: true,
			Ports: map[uint16]bool{80: true, 443: true},
		},
	}

	It("produces the identical report for any pool size", NodeTimeout(30*time.Second), func(ctx context.Context) {
		r := Successful(iprange.Parse("10.0.0.1", "10.0.0.3"))
		var reference []types.HostResult
		for _, size := range []int{1, 3, 16} {
			By(fmt.Sprintf("scanning with a pool of %d", size))
			prober := newCanned(outcomes)
			prober.delay = 10 * time.Millisecond
			results, _ := sweep(ctx, prober, size, r)
			if reference == nil {
				reference = results
				Expect(reference).To(HaveLen(3))
				continue
			}
			Expect(results).To(Equal(reference))
		}
	})

	It("reports hosts in ascending address order", NodeTimeout(30*time.Second), func(ctx context.Context) {
		r := Successful(iprange.Parse("10.0.0.1", "10.0.0.3"))
		prober := newCanned(outcomes)
		results, _ := sweep(ctx, prober, 8, r)
		Expect(results).To(HaveLen(3))
		for idx, result := range results {
			Expect(result.Addr).To(Equal(netip.MustParseAddr(
				fmt.Sprintf("10.0.0.%d", idx+1))))
		}
	})

	It("probes every address exactly once, duplicates included", NodeTimeout(30*time.Second), func(ctx context.Context) {
		prober := newCanned(outcomes)
		scanner, news := New(prober, 4)
		board := NewBoard()
		go func() { _ = board.Track(ctx, news) }()
		addrs := make(chan netip.Addr)
		go func() {
			defer close(addrs)
			for _, a := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.1", "10.0.0.2", "10.0.0.3"} {
				addrs <- netip.MustParseAddr(a)
			}
		}()
		results := scanner.Scan(ctx, addrs)
		Expect(results).To(HaveLen(3))
		for addr := range outcomes {
			Expect(prober.probeCount(addr)).To(Equal(1), "address %s", addr)
		}
	})

	It("returns an empty report for an empty address stream", NodeTimeout(30*time.Second), func(ctx context.Context) {
		scanner, news := New(newCanned(nil), 4)
		go func() {
			for range news {
			}
		}()
		addrs := make(chan netip.Addr)
		close(addrs)
		results := scanner.Scan(ctx, addrs)
		Expect(results).NotTo(BeNil())
		Expect(results).To(BeEmpty())
	})

	It("is idempotent for the same canned network state", NodeTimeout(30*time.Second), func(ctx context.Context) {
		r := Successful(iprange.Parse("10.0.0.1", "10.0.0.3"))
		first, _ := sweep(ctx, newCanned(outcomes), 4, r)
		second, _ := sweep(ctx, newCanned(outcomes), 4, r)
		Expect(second).To(Equal(first))
	})

	It("contains a panicking probe task", NodeTimeout(30*time.Second), func(ctx context.Context) {
		r := Successful(iprange.Parse("10.0.0.1", "10.0.0.3"))
		prober := newCanned(outcomes)
		badAddr := netip.MustParseAddr("10.0.0.2")
		prober.panicky[badAddr] = struct{}{}
		results, _ := sweep(ctx, prober, 4, r)
		Expect(results).To(HaveLen(3), "one bad host must never abort the scan")
		Expect(results[0]).To(Equal(outcomes[netip.MustParseAddr("10.0.0.1")]))
		Expect(results[2]).To(Equal(outcomes[netip.MustParseAddr("10.0.0.3")]))
		Expect(results[1].Addr).To(Equal(badAddr))
		Expect(results[1].Alive).To(BeFalse())
		Expect(results[1].Reachable()).To(BeFalse())
	})

	It("streams queued, probing, and done news for a host", NodeTimeout(30*time.Second), func(ctx context.Context) {
		addr := netip.MustParseAddr("10.0.0.1")
		prober := newCanned(outcomes)
		scanner, news := New(prober, 1)
		addrs := make(chan netip.Addr, 1)
		addrs <- addr
		close(addrs)
		resultsch := make(chan []types.HostResult)
		go func() {
			defer GinkgoRecover()
			resultsch <- scanner.Scan(ctx, addrs)
		}()
		Eventually(news).Should(Receive(Equal(
			types.HostUpdate{Addr: addr, State: types.Queued})))
		Eventually(news).Should(Receive(Equal(
			types.HostUpdate{Addr: addr, State: types.Probing})))
		Eventually(news).Should(Receive(Equal(
			types.HostUpdate{Addr: addr, State: types.Done, Result: outcomes[addr]})))
		Eventually(news).Should(BeClosed())
		Eventually(resultsch).Should(Receive(HaveLen(1)))
	})

	It("handles multiple stops", NodeTimeout(30*time.Second), func(ctx context.Context) {
		scanner, _ := New(newCanned(nil), 1)
		for i := 0; i < 2; i++ {
			By(fmt.Sprintf("%d round", i+1))
			done := make(chan struct{})
			go func() {
				defer GinkgoRecover()
				scanner.StopWait()
				close(done)
			}()
			Eventually(done).WithTimeout(1 * time.Second).Should(BeClosed())
		}
	})

	It("stops enqueueing when the context gets cancelled", NodeTimeout(30*time.Second), func(specctx context.Context) {
		ctx, cancel := context.WithCancel(specctx)
		prober := newCanned(outcomes)
		prober.delay = 50 * time.Millisecond
		scanner, news := New(prober, 1)
		go func() {
			for range news {
			}
		}()
		r := Successful(iprange.Parse("10.0.0.1", "10.0.255.254"))
		go func() {
			time.Sleep(100 * time.Millisecond)
			cancel()
		}()
		results := scanner.Scan(ctx, r.Stream(ctx))
		Expect(len(results)).To(BeNumerically("<", 65000),
			"a cancelled scan must not work the whole range")
	})

})
