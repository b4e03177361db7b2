// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/siemens/netsweep/iprange"
	"github.com/siemens/netsweep/localnet"
	"github.com/siemens/netsweep/ports"
	"github.com/siemens/netsweep/probe"
	"github.com/siemens/netsweep/report"
	"github.com/siemens/netsweep/revdns"
	"github.com/siemens/netsweep/scan"
	"github.com/siemens/netsweep/types"

	"github.com/gosuri/uilive"
	"github.com/miekg/dns"
	"github.com/projectdiscovery/gologger"
)

// SweepAndReport works the address range(s) given on the command line:
// every address gets probed for ICMP liveness and TCP reachability of the
// configured ports, progress shows live on the terminal, and the complete,
// address-ordered outcome lands in the CSV report file. Range validation
// happens up front, before a single probe goes out; a failing report sink
// surfaces only after scanning, as the fatal error of the run.
func SweepAndReport(ctx context.Context, args []string) error {
	tcpPorts, err := ports.Parse(*portSpecs)
	if err != nil {
		return fmt.Errorf("cannot parse port specification: %w", err)
	}
	ranges, err := gatherRanges(args)
	if err != nil {
		return err
	}
	total := big.NewInt(0)
	for _, r := range ranges {
		total.Add(total, r.Count())
	}
	gologger.Info().Msgf("starting scan of %s host(s)...", total)
	start := time.Now()

	// The board tracks per-host progress for the live display; the
	// rendering goroutine snapshots it every few ten milliseconds. The
	// rendering only stops after tracking has finished because the news
	// stream channel has been closed. We then render a final update and
	// end rendering, signalling the end of our activities via
	// renderingDone.
	board := scan.NewBoard()
	names := newNameCache()
	trackingDone := make(chan struct{})
	renderingDone := make(chan struct{})

	go func() {
		// Dunno what uilive's background updating mode using Start() is
		// good for? It may trigger anytime with the rendering into the
		// buffer not yet complete, thus making the terminal output very
		// flickery. So we avoid Start() and instead trigger an explicit
		// flush to the terminal after having completed the rendering.
		term := uilive.New()
		renderer := newRenderer(term, names)
		defer func() {
			renderData(term, renderer, board)
			renderer.Stop()
			close(renderingDone)
		}()
		renderData(term, renderer, board)
		ticker := time.NewTicker(20 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				renderData(term, renderer, board)
			case <-trackingDone:
				return
			}
		}
	}()

	// Now lets put the required processing elements and their plumbing in
	// place.
	//
	//   - address range stream feeding the Scanner.
	//   - Scanner fanning host probes out over the worker pool and
	//     producing progress news.
	//   - Board consuming the news, on the side optionally enriched with
	//     reverse-DNS host names.
	//
	// Rendering is done on the information collected by the Board.
	timeout := time.Duration(*timeoutSecs * float64(time.Second))
	proberOpts := []probe.ProberOption{probe.WithTimeout(timeout)}
	if *unprivileged {
		proberOpts = append(proberOpts, probe.AsUnprivileged())
	}
	prober := probe.New(tcpPorts, proberOpts...)
	scanner, news := scan.New(prober, int(*workerNumber))

	var lookups *revdns.Pool
	if *ptrLookup {
		resolver, err := revdns.SystemResolver()
		if err == nil {
			lookups, err = revdns.New(ctx, int(*workerNumber), &dns.Client{}, resolver)
		}
		if err != nil {
			gologger.Warning().Msgf("disabling PTR lookups: %s", err)
			lookups = nil
		}
	}

	go func() {
		for update := range news {
			board.Update(update)
			switch update.State {
			case types.Queued:
				if lookups != nil {
					addr := update.Addr
					lookups.LookupAddr(ctx, addr, func(name string, err error) {
						if err != nil {
							return // no name is no news
						}
						names.set(addr, name)
					})
				}
			case types.Done:
				gologger.Verbose().Msgf("finished %s | ICMP: %t | TCP open: %s",
					update.Addr, update.Result.Alive, portList(update.Result.OpenPorts()))
			}
		}
		close(trackingDone)
	}()

	hosts := scanner.Scan(ctx, iprange.StreamAll(ctx, ranges))
	<-trackingDone
	if lookups != nil {
		lookups.StopWait()
	}
	<-renderingDone

	if err := report.WriteFile(*outputPath, hosts, tcpPorts); err != nil {
		return fmt.Errorf("cannot save scan results: %w", err)
	}
	reachable := 0
	for _, host := range hosts {
		if host.Reachable() {
			reachable++
		}
	}
	gologger.Info().Msgf("scan complete after %s, %d of %d host(s) reachable, results saved to %s",
		time.Since(start).Round(time.Millisecond), reachable, len(hosts), *outputPath)
	return nil
}

// gatherRanges turns the command line positionals, or the discovered
// attached networks when --local was given, into the ranges to scan.
func gatherRanges(args []string) ([]iprange.Range, error) {
	if *scanLocal {
		networks, err := localnet.Discover()
		if err != nil {
			return nil, fmt.Errorf("cannot discover attached networks: %w", err)
		}
		if len(networks) == 0 {
			return nil, fmt.Errorf("no scannable networks attached to this host")
		}
		ranges := make([]iprange.Range, 0, len(networks))
		for _, network := range networks {
			gologger.Info().Msgf("scanning %s attached via %s (%s)",
				network.Prefix, network.Interface, network.Range)
			ranges = append(ranges, network.Range)
		}
		return ranges, nil
	}
	if len(args) == 1 {
		r, err := iprange.FromCIDR(args[0])
		if err != nil {
			return nil, err
		}
		return []iprange.Range{r}, nil
	}
	r, err := iprange.Parse(args[0], args[1])
	if err != nil {
		return nil, err
	}
	return []iprange.Range{r}, nil
}

// renderData gets the current scan progress data and then renders (and
// flushes) it to the terminal.
func renderData(term *uilive.Writer, r *renderer, board *scan.Board) {
	r.Render(board)
	term.Flush()
}
