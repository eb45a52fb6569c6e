package main

import (
	"fmt"

	sigar "github.com/cloudfoundry/gosigar"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
)

var infoFlags allocFlags

func init() {
	cmd := newInfoCmd()
	infoFlags.register(cmd)
	rootCmd.AddCommand(cmd)
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Compare an allocator's footprint with host memory",
		Long: `The info command reports host memory alongside the footprint an
allocator configuration would claim, and warns when the arena would not fit
in the memory currently available.

Example:
  arenactl info --kind pool --blocks 65536 --block-size 256
  arenactl info -c multipool.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
	return cmd
}

// hostMemory is a snapshot of system memory in bytes.
type hostMemory struct {
	Total      uint64 `json:"total"`
	Used       uint64 `json:"used"`
	Free       uint64 `json:"free"`
	ActualFree uint64 `json:"actual_free"` // free plus reclaimable caches
}

// readHostMemory is replaced in tests.
var readHostMemory = func() (hostMemory, error) {
	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		return hostMemory{}, fmt.Errorf("failed to read host memory: %w", err)
	}
	return hostMemory{Total: mem.Total, Used: mem.Used, Free: mem.Free, ActualFree: mem.ActualFree}, nil
}

type infoReport struct {
	Config    alloc.Config `json:"config"`
	Footprint int          `json:"footprint"`
	Host      hostMemory   `json:"host"`
	Fits      bool         `json:"fits"`
	Share     float64      `json:"share"` // footprint / total memory
}

func buildInfoReport(cfg alloc.Config, host hostMemory) (infoReport, error) {
	footprint, err := cfg.Footprint()
	if err != nil {
		return infoReport{}, err
	}
	rep := infoReport{
		Config:    cfg,
		Footprint: footprint,
		Host:      host,
		Fits:      uint64(footprint) <= host.ActualFree,
	}
	if host.Total > 0 {
		rep.Share = float64(footprint) / float64(host.Total)
	}
	return rep, nil
}

func runInfo() error {
	cfg, err := infoFlags.resolve()
	if err != nil {
		return err
	}
	host, err := readHostMemory()
	if err != nil {
		return err
	}
	rep, err := buildInfoReport(cfg, host)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(rep)
	}

	printInfo("%s\n", paint(headerStyle, "Host Memory:"))
	printInfo("  Total:     %s\n", bytesLabel(int(host.Total)))
	printInfo("  Used:      %s\n", bytesLabel(int(host.Used)))
	printInfo("  Available: %s\n", bytesLabel(int(host.ActualFree)))

	printInfo("\n%s\n", paint(headerStyle, "Allocator: "+string(cfg.Kind)))
	printInfo("  Footprint: %s\n", bytesLabel(rep.Footprint))
	printInfo("  Share:     %.2f%% of total memory\n", rep.Share*100)

	if rep.Fits {
		printInfo("  %s\n", paint(okStyle, "✓ fits in available memory"))
	} else {
		printInfo("  %s\n", paint(warnStyle, "! exceeds available memory"))
	}
	return nil
}
