// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package types

import (
	"net/netip"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("information model", func() {

	Describe("host results", func() {

		It("knows when a host is reachable", func() {
			Expect(HostResult{Alive: true}.Reachable()).To(BeTrue())
			Expect(HostResult{Ports: map[uint16]bool{80: false, 443: true}}.Reachable()).To(BeTrue())
			Expect(HostResult{Ports: map[uint16]bool{80: false}}.Reachable()).To(BeFalse())
			Expect(HostResult{}.Reachable()).To(BeFalse())
		})

		It("lists open ports in ascending order", func() {
			result := HostResult{
				Addr:  netip.MustParseAddr("10.0.0.1"),
				Ports: map[uint16]bool{9443: true, 80: true, 443: false},
			}
			Expect(result.OpenPorts()).To(Equal([]uint16{80, 9443}))
			Expect(HostResult{}.OpenPorts()).To(BeEmpty())
		})

	})

	Describe("probe states", func() {

		It("renders states in clear text", func() {
			Expect(Queued.String()).To(Equal("queued"))
			Expect(Probing.String()).To(Equal("probing"))
			Expect(Done.String()).To(Equal("done"))
			Expect(ProbeState(42).String()).To(Equal("ProbeState(42)"))
		})

		It("knows which states are pending", func() {
			Expect(Queued.IsPending()).To(BeTrue())
			Expect(Probing.IsPending()).To(BeTrue())
			Expect(Done.IsPending()).To(BeFalse())
		})

	})

})
