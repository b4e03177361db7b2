// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package localnet

import (
	"net/netip"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("attached local networks", func() {

	It("discovers only well-formed IPv4 attachments", func() {
		networks, err := Discover()
		Expect(err).NotTo(HaveOccurred())
		Expect(networks).NotTo(BeNil())
		// What exactly is attached depends on the machine running the
		// suite, so check the structural properties of whatever came back.
		seen := map[netip.Prefix]struct{}{}
		for _, network := range networks {
			Expect(network.Interface).NotTo(BeEmpty())
			Expect(network.Prefix.Addr().Is4()).To(BeTrue())
			Expect(network.Prefix.Bits()).To(BeNumerically(">=", clampBits))
			Expect(network.Range.IsValid()).To(BeTrue())
			Expect(network.Prefix.Contains(network.Range.First())).To(BeTrue())
			Expect(network.Prefix.Contains(network.Range.Last())).To(BeTrue())
			Expect(network.Prefix.Addr().IsLoopback()).To(BeFalse())
			_, duplicate := seen[network.Prefix]
			Expect(duplicate).To(BeFalse(), "duplicate network %s", network.Prefix)
			seen[network.Prefix] = struct{}{}
		}
	})

})
