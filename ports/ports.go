// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package ports

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Parse normalizes a list of TCP port specification tokens into distinct
// port numbers in ascending order. Each token is either a single port
// (“443”), a comma-separated list (“80,443”), or an inclusive range
// (“8000-8100”); forms may be mixed freely and duplicates collapse. Parse
// fails for empty tokens, non-numeric input, inverted ranges, and port
// numbers outside 1..65535.
func Parse(specs []string) ([]uint16, error) {
	seen := map[uint16]struct{}{}
	for _, spec := range specs {
		for _, token := range strings.Split(spec, ",") {
			token = strings.TrimSpace(token)
			if token == "" {
				return nil, fmt.Errorf("empty port specification in %q", spec)
			}
			first, last, found := strings.Cut(token, "-")
			if !found {
				port, err := parsePort(first)
				if err != nil {
					return nil, err
				}
				seen[port] = struct{}{}
				continue
			}
			from, err := parsePort(first)
			if err != nil {
				return nil, err
			}
			to, err := parsePort(last)
			if err != nil {
				return nil, err
			}
			if from > to {
				return nil, fmt.Errorf("inverted port range %q", token)
			}
			for port := uint(from); port <= uint(to); port++ {
				seen[uint16(port)] = struct{}{}
			}
		}
	}
	ports := make([]uint16, 0, len(seen))
	for port := range seen {
		ports = append(ports, port)
	}
	slices.Sort(ports)
	return ports, nil
}

// parsePort parses a single TCP port number, enforcing 1..65535.
func parsePort(s string) (uint16, error) {
	port, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil || port == 0 {
		return 0, fmt.Errorf("invalid port number %q, expected 1..65535", s)
	}
	return uint16(port), nil
}
