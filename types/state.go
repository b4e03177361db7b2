// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package types

import "fmt"

// ProbeState indicates how far a single host has progressed through a scan,
// from sitting in the work queue up to the final probe outcome.
type ProbeState int

// The probing states of a scanned host.
const (
	Queued  ProbeState = iota // host enqueued, probing not yet started.
	Probing                   // host probes in flight.
	Done                      // all probes for this host have finished.
)

// String returns the clear-text representation of a ProbeState value.
func (s ProbeState) String() string {
	switch s {
	case Queued:
		return "queued"
	case Probing:
		return "probing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("ProbeState(%d)", s)
}

// IsPending returns true as long as a host's probes haven't all finished.
func (s ProbeState) IsPending() bool {
	return s != Done
}
