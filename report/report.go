// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/siemens/netsweep/types"
)

// Header returns the CSV header row for the specified probed ports: "ip"
// and "icmp", followed by one "tcp_<port>" column per port. The ports are
// expected in their canonical distinct-ascending form, as the column order
// follows the slice order.
func Header(ports []uint16) []string {
	header := make([]string, 0, 2+len(ports))
	header = append(header, "ip", "icmp")
	for _, port := range ports {
		header = append(header, fmt.Sprintf("tcp_%d", port))
	}
	return header
}

// WriteCSV writes the CSV report for the specified hosts to the specified
// writer: the header row first, then one row per host in the given order.
// A port missing from a host's outcome map, as left behind by the degraded
// result of a contained probe fault, serializes as False.
func WriteCSV(w io.Writer, hosts []types.HostResult, ports []uint16) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(ports)); err != nil {
		return fmt.Errorf("cannot write report header: %w", err)
	}
	row := make([]string, 0, 2+len(ports))
	for _, host := range hosts {
		row = row[:0]
		row = append(row, host.Addr.String(), formatBool(host.Alive))
		for _, port := range ports {
			row = append(row, formatBool(host.Ports[port]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write report row for %s: %w", host.Addr, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return nil
}

// WriteFile writes the CSV report for the specified hosts to the file at
// the specified path, atomically: the report is first written and synced
// to a temporary file in the target directory and then renamed into
// place. On any failure the temporary file is removed and an error
// returned; the path then either still holds its previous content or
// nothing, but never a partial report.
func WriteFile(path string, hosts []types.HostResult, ports []uint16) error {
	dir := filepath.Dir(path)
	tmpf, err := os.CreateTemp(dir, ".netsweep-*.csv")
	if err != nil {
		return fmt.Errorf("cannot create report file: %w", err)
	}
	tmpname := tmpf.Name()
	if err := WriteCSV(tmpf, hosts, ports); err != nil {
		tmpf.Close()
		os.Remove(tmpname)
		return err
	}
	if err := tmpf.Sync(); err != nil {
		tmpf.Close()
		os.Remove(tmpname)
		return fmt.Errorf("cannot sync report file: %w", err)
	}
	if err := tmpf.Close(); err != nil {
		os.Remove(tmpname)
		return fmt.Errorf("cannot close report file: %w", err)
	}
	if err := os.Rename(tmpname, path); err != nil {
		os.Remove(tmpname)
		return fmt.Errorf("cannot move report into place: %w", err)
	}
	return nil
}

// formatBool spells booleans the way the report format demands.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
