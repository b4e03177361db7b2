// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

/*
Package ports parses and normalizes TCP port specifications as they arrive
from the command line. Whatever mixture of single ports, comma lists, and
“8000-8100” ranges the user throws at [Parse], the outcome is always the
same canonical form: distinct port numbers, sorted ascending. The report
column order and the per-host probing order both derive from this canonical
form, keeping scan output reproducible no matter how the ports were
spelled.
*/
package ports
