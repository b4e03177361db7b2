// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package revdns

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"sync"

	"github.com/gammazero/workerpool"
	"github.com/miekg/dns"
)

// Pool is a (size-limited) pool of DNS client connections talking with the
// same DNS resolver address, used for reverse address lookups.
type Pool struct {
	workers *workerpool.WorkerPool
	mu      sync.Mutex // protects the pool of DNS connections
	free    []*dns.Conn
}

// New returns a pool of the specified size of DNS client connections, with
// each connection using the specified context and talking to the same DNS
// resolver address.
//
// Reverse lookups are submitted using [Pool.LookupAddr]; generic DNS tasks
// using [Pool.Submit] in form of task functions receiving a concrete
// [dns.Conn].
//
// The passed context is used for creating (dialing) the DNS client
// connections only. It is not directly passed to the submitted DNS tasks,
// so task submitters are themselves responsible for capturing the
// necessary context in their task function closure.
func New(ctx context.Context, size int, dnsclnt *dns.Client, addr string) (*Pool, error) {
	free := make([]*dns.Conn, 0, size)
	for i := 0; i < size; i++ {
		conn, err := dnsclnt.DialContext(ctx, addr)
		if err != nil {
			// Immediately release all connections created so far.
			for _, conn := range free {
				conn.Close()
			}
			return nil, fmt.Errorf("cannot connect to DNS resolver %s: %w", addr, err)
		}
		free = append(free, conn)
	}
	return &Pool{
		workers: workerpool.New(size),
		free:    free,
	}, nil
}

// Submit a task to the DNS client connection pool, where it gets enqueued
// to be executed on an available DNS client connection.
func (p *Pool) Submit(task func(conn *dns.Conn)) {
	p.workers.Submit(func() { p.task(task) })
}

// LookupAddr is a convenience method for submitting a PTR query for the
// specified address and gathering the result. The resolved host name
// (without its trailing dot) or an error if resolution failed is passed to
// the specified callback function fn; an answerless query counts as a
// failure. fn is called exactly once.
//
// Please note that when the passed context is cancelled this will cancel
// all in-flight as well as scheduled lookup jobs.
func (p *Pool) LookupAddr(ctx context.Context, addr netip.Addr, fn func(string, error)) {
	p.Submit(func(conn *dns.Conn) {
		var name string
		var err error
		defer func() { fn(name, err) }() // ...ensure triggering the result callback on our way out

		// don't fire off the query if the context has been cancelled;
		// trigger the callback immediately with the context error.
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		var reverse string
		reverse, err = dns.ReverseAddr(addr.String())
		if err != nil {
			return
		}
		msg := dns.Msg{
			MsgHdr: dns.MsgHdr{Id: dns.Id()},
		}
		msg.SetQuestion(reverse, dns.TypePTR)
		dnsclnt := dns.Client{}
		var r *dns.Msg
		r, _, err = dnsclnt.ExchangeWithConn(&msg, conn)
		if err != nil {
			return
		}
		for _, rr := range r.Answer {
			if ptr, ok := rr.(*dns.PTR); ok {
				name = strings.TrimSuffix(ptr.Ptr, ".")
				return
			}
		}
		// If we didn't get any PTR answer then we consider this to be an
		// error. This ensures to send an error to the callback together
		// with the empty host name.
		err = fmt.Errorf("LookupAddr: query for %s yields no answers", addr)
	})
}

// task grabs the next free DNS client and passes it to the specified
// function. After the function returns, the connection is put back into
// the free list.
func (p *Pool) task(task func(conn *dns.Conn)) {
	// pop off a free DNS client connection,
	// https://ueokande.github.io/go-slice-tricks/,
	p.mu.Lock()
	if len(p.free) == 0 {
		panic("no free DNS client connection available")
	}
	last := len(p.free) - 1
	conn := p.free[last]
	p.free = p.free[:last]
	p.mu.Unlock()
	// run the task with its assigned DNS client connection...
	task(conn)
	// ...and push the DNS client connection back into the free list.
	p.mu.Lock()
	p.free = append(p.free, conn)
	p.mu.Unlock()
}

// StopWait waits for all enqueued lookup or generic DNS request tasks to
// finish, and then shuts down the pool.
func (p *Pool) StopWait() {
	p.workers.StopWait()
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, conn := range p.free {
		conn.Close()
	}
	p.free = nil
}

// SystemResolver returns the “host:port” address of the first name server
// configured in the system's resolver configuration.
func SystemResolver() (string, error) {
	conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
	if err != nil {
		return "", fmt.Errorf("cannot read resolver configuration: %w", err)
	}
	if len(conf.Servers) == 0 {
		return "", fmt.Errorf("no name servers configured")
	}
	return net.JoinHostPort(conf.Servers[0], conf.Port), nil
}
