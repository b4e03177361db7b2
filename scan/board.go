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
)

// Board tracks the most recent known state of every host in a running
// scan. A typical use case is consuming the scan coordinator's news
// stream in one goroutine while a display renderer snapshots the board at
// its own pace in another.
type Board struct {
	mu sync.Mutex
	m  map[netip.Addr]types.HostUpdate
}

// NewBoard returns a new and properly initialized Board.
func NewBoard() *Board {
	return &Board{
		m: map[netip.Addr]types.HostUpdate{},
	}
}

// Update the board with a host update. A host only ever progresses, so
// stale updates (news items overtaken by a later state that already
// reached the board) are dropped.
func (b *Board) Update(update types.HostUpdate) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if known, ok := b.m[update.Addr]; ok && update.State <= known.State {
		return
	}
	b.m[update.Addr] = update
}

// Snapshot returns the current state of all tracked hosts, sorted by
// ascending address value.
func (b *Board) Snapshot() []types.HostUpdate {
	b.mu.Lock()
	defer b.mu.Unlock()
	updates := make([]types.HostUpdate, 0, len(b.m))
	for _, update := range b.m {
		updates = append(updates, update)
	}
	slices.SortFunc(updates, func(a, b types.HostUpdate) int {
		return a.Addr.Compare(b.Addr)
	})
	return updates
}

// Counts returns the number of tracked hosts, how many of them have
// finished probing, and how many of the finished ones turned out to be
// reachable.
func (b *Board) Counts() (total, done, reachable int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	total = len(b.m)
	for _, update := range b.m {
		if update.State.IsPending() {
			continue
		}
		done++
		if update.Result.Reachable() {
			reachable++
		}
	}
	return
}

// Track consumes host updates from the specified news channel until the
// channel is closed or the context is done. Track only returns after
// processing all updates or when the context is done.
func (b *Board) Track(ctx context.Context, news <-chan types.HostUpdate) error {
	for {
		select {
		case update, ok := <-news:
			if !ok {
				return nil
			}
			b.Update(update)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
