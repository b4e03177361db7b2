// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

/*
Package localnet discovers the IPv4 networks the host is attached to, so a
scan can cover “everything around me” without the operator spelling out
range endpoints. Only up, non-loopback interfaces count, and networks
wider than a /24 get clamped to the /24 around the interface address: an
attached /8 is no invitation to sweep sixteen million hosts.
*/
package localnet
