// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package probe

import (
	"context"
	"net/netip"
	"os"
	"time"

	"github.com/siemens/netsweep/test"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
	. "github.com/thediveo/success"
)

var _ = Describe("host prober", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).WithTimeout(3 * time.Second).WithPolling(250 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("normalizes its port set", func() {
		prober := New([]uint16{9443, 80, 443, 80})
		Expect(prober.Ports()).To(Equal([]uint16{80, 443, 9443}))
	})

	It("detects an open and a closed TCP port", NodeTimeout(30*time.Second), func(ctx context.Context) {
		svc := Successful(test.NewService())
		defer svc.Close()
		closed := Successful(test.ClosedPort())

		prober := New([]uint16{svc.Port(), closed},
			WithTimeout(2*time.Second), AsUnprivileged())
		result := prober.Probe(ctx, svc.Addr())
		Expect(result.Addr).To(Equal(svc.Addr()))
		Expect(result.Ports).To(HaveLen(2))
		Expect(result.Ports).To(HaveKeyWithValue(svc.Port(), true))
		Expect(result.Ports).To(HaveKeyWithValue(closed, false))
	})

	It("always returns one map entry per configured port", NodeTimeout(30*time.Second), func(ctx context.Context) {
		// An address from TEST-NET-1 that nothing should answer on.
		prober := New([]uint16{80, 443}, WithTimeout(100*time.Millisecond), AsUnprivileged())
		result := prober.Probe(ctx, netip.MustParseAddr("192.0.2.1"))
		Expect(result.Alive).To(BeFalse())
		Expect(result.Ports).To(Equal(map[uint16]bool{80: false, 443: false}))
	})

	It("treats an expired context as unreachable", NodeTimeout(30*time.Second), func(ctx context.Context) {
		svc := Successful(test.NewService())
		defer svc.Close()

		expired, cancel := context.WithCancel(ctx)
		cancel()
		prober := New([]uint16{svc.Port()}, WithTimeout(2*time.Second), AsUnprivileged())
		result := prober.Probe(expired, svc.Addr())
		Expect(result.Alive).To(BeFalse())
		Expect(result.Ports).To(HaveKeyWithValue(svc.Port(), false))
	})

	It("pings localhost", NodeTimeout(30*time.Second), func(ctx context.Context) {
		if os.Getuid() != 0 {
			Skip("needs root")
		}
		prober := New(nil, WithTimeout(2*time.Second))
		result := prober.Probe(ctx, netip.MustParseAddr("127.0.0.1"))
		Expect(result.Alive).To(BeTrue())
		Expect(result.Ports).To(BeEmpty())
	})

	It("reports an unanswering host as not alive", NodeTimeout(30*time.Second), func(ctx context.Context) {
		prober := New(nil, WithTimeout(100*time.Millisecond), AsUnprivileged())
		result := prober.Probe(ctx, netip.MustParseAddr("192.0.2.1"))
		Expect(result.Alive).To(BeFalse())
	})

})
