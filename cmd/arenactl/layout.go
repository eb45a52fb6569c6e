package main

import (
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

var layoutFlags allocFlags

func init() {
	cmd := newLayoutCmd()
	layoutFlags.register(cmd)
	rootCmd.AddCommand(cmd)
}

func newLayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the arena layout of an allocator configuration",
		Long: `The layout command plans an allocator without creating it and prints
the arena size, the block header table, and for pools the offset, stride,
block size and guaranteed alignment of every tier.

Example:
  arenactl layout --kind multipool --blocks 16 --block-size 4096 --depth 4
  arenactl layout --kind stack --capacity 65536
  arenactl layout -c pool.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout()
		},
	}
	return cmd
}

type tierReport struct {
	alloc.TierLayout
	Align int `json:"align"`
}

type layoutReport struct {
	Config    alloc.Config `json:"config"`
	Footprint int          `json:"footprint"`
	ArenaSize int          `json:"arena_size"`
	Headers   int          `json:"headers"`
	Unit      int          `json:"unit,omitempty"`
	Tiers     []tierReport `json:"tiers,omitempty"`
}

func buildLayoutReport(cfg alloc.Config) (layoutReport, error) {
	footprint, err := cfg.Footprint()
	if err != nil {
		return layoutReport{}, err
	}
	rep := layoutReport{Config: cfg, Footprint: footprint, ArenaSize: footprint}
	if cfg.Kind == alloc.KindStack {
		return rep, nil
	}

	l, err := cfg.Layout()
	if err != nil {
		return layoutReport{}, err
	}
	rep.ArenaSize = l.ArenaSize
	rep.Headers = l.Slots
	rep.Unit = l.Unit
	base := baseAlign(cfg)
	for d, t := range l.Tiers {
		rep.Tiers = append(rep.Tiers, tierReport{TierLayout: t, Align: l.TierAlign(d, base)})
	}
	return rep, nil
}

func runLayout() error {
	cfg, err := layoutFlags.resolve()
	if err != nil {
		return err
	}
	rep, err := buildLayoutReport(cfg)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(rep)
	}

	printInfo("%s\n", paint(headerStyle, "Allocator: "+string(cfg.Kind)))
	printInfo("  Arena:     %s\n", bytesLabel(rep.ArenaSize))
	if rep.Headers > 0 {
		printInfo("  Headers:   %d x %d bytes\n", rep.Headers, alloc.HeaderSize)
		printInfo("  Unit:      %d bytes\n", rep.Unit)
	}
	printInfo("  Footprint: %s\n", bytesLabel(rep.Footprint))
	printVerbose("  Backing:   %s\n", cfg.Backing)

	if len(rep.Tiers) == 0 {
		return nil
	}
	printInfo("\n%s\n", paint(headerStyle, "Tiers:"))
	printInfo("  %-5s %10s %10s %7s %7s %12s\n", "TIER", "BLOCK", "STRIDE", "ALIGN", "COUNT", "OFFSET")
	for _, t := range rep.Tiers {
		printInfo("  %-5d %10d %10d %7d %7d %12d\n", t.Depth, t.BlockSize, t.Stride, t.Align, t.Count, t.Offset)
	}
	return nil
}
