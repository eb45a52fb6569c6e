package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/workload"
)

var simulateSteps bool

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().BoolVar(&simulateSteps, "steps", true, "Print every step, not just the summary")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <workload.yaml>",
		Short: "Replay a workload against a real allocator",
		Long: `The simulate command builds the allocator a workload file describes,
replays its steps, and reports each step's outcome together with peak and
final usage. Allocation failures are part of the report; malformed workloads
(freeing an unknown name, reusing a live name) stop the replay with an error.

Example:
  arenactl simulate frame.yaml
  arenactl simulate frame.yaml --steps=false
  arenactl simulate frame.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.Context(), args)
		},
	}
	return cmd
}

type simulateReport struct {
	Workload  string           `json:"workload"`
	Name      string           `json:"name,omitempty"`
	Allocator alloc.Config     `json:"allocator"`
	Result    *workload.Result `json:"result"`
}

func runSimulate(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	path := args[0]
	printVerbose("Loading workload: %s\n", path)

	w, err := workload.Load(path)
	if err != nil {
		return err
	}
	r, err := w.Build()
	if err != nil {
		return fmt.Errorf("failed to build allocator: %w", err)
	}
	defer r.Close()

	res, runErr := workload.Run(ctx, r, w.Steps, nil)

	if jsonOut {
		if err := printJSON(simulateReport{Workload: path, Name: w.Name, Allocator: w.Allocator, Result: res}); err != nil {
			return err
		}
		return runErr
	}

	title := path
	if w.Name != "" {
		title = fmt.Sprintf("%s (%s)", w.Name, path)
	}
	printInfo("%s\n", paint(headerStyle, "Workload: "+title))
	printInfo("  Allocator: %s, footprint %s\n", w.Allocator.Kind, bytesLabel(res.Final.MaxSize))

	if simulateSteps {
		printInfo("\n  %4s  %-7s  %-12s %8s %6s  %-6s %10s %10s\n",
			"#", "OP", "NAME", "SIZE", "ALIGN", "RESULT", "OFFSET", "USAGE")
		for _, o := range res.Steps {
			printInfo("  %4d  %-7s  %-12s %8s %6s  %s %10s %10d\n",
				o.Index, o.Op, o.Name, blankZero(o.Size), blankZero(o.Align),
				outcomeLabel(o.OK), offsetLabel(o.Offset), o.Usage)
		}
	}

	printInfo("\n%s\n", paint(headerStyle, "Summary:"))
	printInfo("  Steps:       %d of %d\n", len(res.Steps), len(w.Steps))
	printInfo("  Failures:    %d\n", res.Failures)
	printInfo("  Peak usage:  %s in %d allocations\n", bytesLabel(res.PeakUsage), res.PeakCount)
	printInfo("  Final usage: %s in %d allocations\n", bytesLabel(res.Final.MemoryUsage), res.Final.AllocationCount)
	printTiers(res.Final.Tiers)

	return runErr
}

func printTiers(tiers []alloc.TierStats) {
	if len(tiers) == 0 {
		return
	}
	printInfo("\n%s\n", paint(headerStyle, "Tiers:"))
	printInfo("  %-5s %10s %6s %9s %10s %9s\n", "TIER", "BLOCK", "FREE", "ALLOCATED", "SPLIT AWAY", "BORROWED")
	for _, t := range tiers {
		printInfo("  %-5d %10d %6d %9d %10d %9d\n", t.Depth, t.BlockSize, t.Free, t.Allocated, t.SplitAway, t.Borrowed)
	}
}

func outcomeLabel(ok bool) string {
	if ok {
		return paint(okStyle, "ok    ")
	}
	return paint(failStyle, "FAILED")
}

func offsetLabel(off int) string {
	if off < 0 {
		return "-"
	}
	return count(off)
}

func blankZero(n int) string {
	if n == 0 {
		return ""
	}
	return count(n)
}
