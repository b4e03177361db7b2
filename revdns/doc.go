// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

/*
Package revdns implements a simple limiting DNS client-request execution
pool for reverse (PTR) lookups. netsweep uses a [Pool] of “DNS workers” to
enrich its live display with host names as addresses turn out to be
reachable; the lookups are display sugar only and never make it into the
CSV report.

Usage

	dnsclnt := dns.Client{}
	pool, err := revdns.New(
	    context.Background(),
	    4,                 // number of parallel DNS connections and thus workers
	    &dnsclnt,          // DNS client
	    "127.0.0.1:53",    // address of server/resolver
	)
	pool.LookupAddr(ctx, addr,
	    func(name string, err error) {
	        // do something with the host name, unless there's an error reported
	    })

# Acknowledgements

Under its hood, [Pool] leverages [gammazero/workerpool] as the limiting
goroutine pool.

[gammazero/workerpool]: https://github.com/gammazero/workerpool
*/
package revdns
