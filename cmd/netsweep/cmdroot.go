// (c) Siemens AG 2026
//
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/spf13/cobra"
)

var (
	portSpecs       *[]string
	outputPath      *string
	timeoutSecs     *float64
	workerNumber    *uint
	verbose         *bool
	unprivileged    *bool
	ptrLookup       *bool
	scanLocal       *bool
	spinnerInterval *time.Duration
)

func newRootCmd() (rootCmd *cobra.Command) {
	rootCmd = &cobra.Command{
		Use:     "netsweep [flags] start_ip end_ip | cidr",
		Short:   "netsweep scans an IP address range for ICMP liveness and open TCP ports",
		Version: "1.0",
		Args:    cobra.MaximumNArgs(2),
		PersistentPreRunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 && !*scanLocal {
				return fmt.Errorf("requires either start_ip and end_ip, a single CIDR, or --local")
			}
			if len(args) > 0 && *scanLocal {
				return fmt.Errorf("--local cannot be combined with an explicit range")
			}
			if *workerNumber < 1 || *workerNumber > 4096 {
				return fmt.Errorf("--workers out of range [1..4096]")
			}
			if *timeoutSecs <= 0 {
				return fmt.Errorf("--timeout must be greater than zero")
			}
			if *spinnerInterval < 10*time.Millisecond {
				return fmt.Errorf("--spinner must be at least 10ms")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if *verbose {
				gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
				gologger.Verbose().Msg("verbose logging enabled")
			}
			return SweepAndReport(context.Background(), args)
		},
	}
	// Sets up the flags.
	portSpecs = rootCmd.PersistentFlags().StringSliceP(
		"ports", "p", []string{"80", "443", "9443"}, "TCP ports to probe, single ports and ranges like 8000-8100")
	outputPath = rootCmd.PersistentFlags().StringP(
		"output", "o", "scan_results.csv", "path of the CSV report file")
	timeoutSecs = rootCmd.PersistentFlags().Float64P(
		"timeout", "t", 1.0, "per-probe timeout in seconds, for ICMP and TCP alike")
	workerNumber = rootCmd.PersistentFlags().UintP(
		"workers", "w", 20, "number of concurrent host probes, 1 scans sequentially")
	verbose = rootCmd.PersistentFlags().BoolP(
		"verbose", "v", false, "enable per-host probe output")
	unprivileged = rootCmd.PersistentFlags().Bool(
		"unprivileged", false, "use unprivileged UDP echos instead of raw ICMP sockets")
	ptrLookup = rootCmd.PersistentFlags().Bool(
		"ptr", false, "enrich the live display with reverse-DNS host names")
	scanLocal = rootCmd.PersistentFlags().Bool(
		"local", false, "scan the networks attached to this host instead of an explicit range")
	spinnerInterval = rootCmd.PersistentFlags().Duration(
		"spinner", 100*time.Millisecond, "spinner interval")
	return
}
