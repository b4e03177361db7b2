// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

// Package test provides shared loopback network fixtures for the netsweep
// test suites: a throwaway TCP service standing in for an open port, and a
// port number known to be closed.
package test

import (
	"net"
	"net/netip"
)

// Service is a loopback TCP listener acting as an open-port fixture. It
// accepts incoming connections and immediately closes them again.
type Service struct {
	listener net.Listener
}

// NewService returns a new loopback TCP [Service] on an ephemeral port.
// Close it after use.
func NewService() (*Service, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()
	return &Service{listener: listener}, nil
}

// Addr returns the address the service is listening on.
func (s *Service) Addr() netip.Addr {
	return s.listener.Addr().(*net.TCPAddr).AddrPort().Addr()
}

// Port returns the port the service is listening on.
func (s *Service) Port() uint16 {
	return s.listener.Addr().(*net.TCPAddr).AddrPort().Port()
}

// Close shuts the service down, terminating its accept loop.
func (s *Service) Close() error {
	return s.listener.Close()
}

// ClosedPort returns a loopback port number that currently has no
// listener, by briefly binding an ephemeral port and releasing it again.
// There is an inherent race window, but ephemeral ports don't get reused
// right away.
func ClosedPort() (uint16, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	port := listener.Addr().(*net.TCPAddr).AddrPort().Port()
	listener.Close()
	return port, nil
}
