// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"net/netip"
	"strings"
	"sync"

	"github.com/siemens/netsweep/scan"
	"github.com/siemens/netsweep/types"
)

// nameCache collects reverse-DNS host names as the lookup pool delivers
// them, for the renderer to decorate its rows with.
type nameCache struct {
	mu sync.Mutex
	m  map[netip.Addr]string
}

func newNameCache() *nameCache {
	return &nameCache{m: map[netip.Addr]string{}}
}

func (c *nameCache) set(addr netip.Addr, name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[addr] = name
}

func (c *nameCache) get(addr netip.Addr) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m[addr]
}

// renderer renders the terminal display, based on the scan progress
// information tracked by a board.
type renderer struct {
	w       io.Writer
	names   *nameCache
	spinner *spinner
}

// newRenderer returns a renderer object rendering to the specified
// io.Writer, decorating its rows with host names from the specified name
// cache.
func newRenderer(w io.Writer, names *nameCache) *renderer {
	sp := newSpinner()
	sp.Start(*spinnerInterval)
	return &renderer{
		w:       w,
		names:   names,
		spinner: sp,
	}
}

// Stop the renderer's background ticker.
func (r *renderer) Stop() {
	r.spinner.Stop()
}

// Render the current scan progress: one row per host currently being
// probed, one row per host that turned out reachable, and a status line
// with the overall counts. Queued and unreachable hosts don't get rows of
// their own; on large ranges they would drown out everything of interest.
func (r *renderer) Render(board *scan.Board) {
	total, done, reachable := board.Counts()
	if total == 0 {
		fmt.Fprintln(r.w, "enumerating addresses...")
		return
	}
	for _, update := range board.Snapshot() {
		switch update.State {
		case types.Probing:
			fmt.Fprintln(r.w, probingStyle.Styled(" "+r.spinner.Spinner()+r.hostLabel(update.Addr)))
		case types.Done:
			if !update.Result.Reachable() {
				continue
			}
			r.renderReachable(update.Result)
		}
	}
	fmt.Fprintf(r.w, "%d/%d host(s) probed, %d reachable\n", done, total, reachable)
}

// renderReachable renders the row of a host that answered at least one
// probe: liveness mark, address, optional host name, open ports.
func (r *renderer) renderReachable(result types.HostResult) {
	mark := " · "
	if result.Alive {
		mark = " ✔ "
	}
	row := reachableStyle.Styled(mark + r.hostLabel(result.Addr))
	if open := result.OpenPorts(); len(open) > 0 {
		row += portStyle.Styled(" tcp:" + portList(open))
	}
	fmt.Fprintln(r.w, row)
}

// hostLabel returns the display label of a host: its address, plus its
// reverse-DNS name when one has been dug up.
func (r *renderer) hostLabel(addr netip.Addr) string {
	if name := r.names.get(addr); name != "" {
		return addr.String() + " (" + name + ")"
	}
	return addr.String()
}

// portList renders port numbers as a comma-separated list, "-" when there
// are none.
func portList(ports []uint16) string {
	if len(ports) == 0 {
		return "-"
	}
	var sb strings.Builder
	for idx, port := range ports {
		if idx > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, "%d", port)
	}
	return sb.String()
}
