// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

/*
Package report serializes scan results into the CSV report format:

	ip,icmp,tcp_80,tcp_443
	10.0.0.1,True,True,False
	10.0.0.2,False,False,False

One row per scanned host, rows in the order given by the caller (the scan
coordinator already orders them by ascending address value), one “tcp_”
column per probed port in ascending port order. The boolean flags are
spelled True/False with a capital letter; the report format predates this
implementation and its consumers parse exactly that spelling.

[WriteFile] writes atomically: the report materializes under a temporary
name in the target directory first and only gets renamed into place after
a successful write and sync. A failing run never leaves a truncated file
behind that claims to be a report.
*/
package report
