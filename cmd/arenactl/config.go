package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/arena"
)

// allocFlags describes an allocator on the command line.
type allocFlags struct {
	config     string
	kind       string
	capacity   int
	blockCount int
	blockSize  int
	depth      int
	backing    string
}

func (f *allocFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "YAML allocator config (overrides the other allocator flags)")
	cmd.Flags().StringVar(&f.kind, "kind", "multipool", "Allocator kind: stack, pool or multipool")
	cmd.Flags().IntVar(&f.capacity, "capacity", 0, "Stack capacity in bytes")
	cmd.Flags().IntVar(&f.blockCount, "blocks", 0, "Blocks per tier (pool, multipool)")
	cmd.Flags().IntVar(&f.blockSize, "block-size", 0, "Tier 0 block size in bytes (pool, multipool)")
	cmd.Flags().IntVar(&f.depth, "depth", 1, "Number of tiers (multipool)")
	cmd.Flags().StringVar(&f.backing, "backing", "heap", "Arena backing: heap or mapped")
}

// resolve builds and validates the alloc.Config the flags describe.
func (f *allocFlags) resolve() (alloc.Config, error) {
	if f.config != "" {
		return loadConfig(f.config)
	}
	kind, err := alloc.ParseKind(f.kind)
	if err != nil {
		return alloc.Config{}, err
	}
	cfg := alloc.Config{
		Kind:       kind,
		Capacity:   f.capacity,
		BlockCount: f.blockCount,
		BlockSize:  f.blockSize,
		PoolDepth:  f.depth,
		Backing:    f.backing,
	}
	if kind == alloc.KindPool {
		cfg.PoolDepth = 0
	}
	if err := cfg.Validate(); err != nil {
		return alloc.Config{}, err
	}
	return cfg, nil
}

func loadConfig(path string) (alloc.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return alloc.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	var cfg alloc.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return alloc.Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return alloc.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// baseAlign is the arena base alignment cfg's backing will provide.
func baseAlign(cfg alloc.Config) int {
	if b, _ := arena.ParseBacking(cfg.Backing); b == arena.Mapped {
		return os.Getpagesize()
	}
	return arena.BaseAlign
}
