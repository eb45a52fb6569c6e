package alloc

import (
	"fmt"
	"strings"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/buf"
)

// Kind names an allocation strategy.
type Kind string

const (
	KindStack     Kind = "stack"
	KindPool      Kind = "pool"
	KindMultipool Kind = "multipool"
)

// ParseKind accepts a strategy name in any case.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindStack, KindPool, KindMultipool:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// Config describes an allocator in configuration files.
//
// Stack uses Capacity. Pool uses BlockCount and BlockSize. Multipool also uses
// PoolDepth, which defaults to 1.
type Config struct {
	Kind       Kind   `yaml:"kind" json:"kind"`
	Capacity   int    `yaml:"capacity,omitempty" json:"capacity,omitempty"`
	BlockCount int    `yaml:"block_count,omitempty" json:"block_count,omitempty"`
	BlockSize  int    `yaml:"block_size,omitempty" json:"block_size,omitempty"`
	PoolDepth  int    `yaml:"pool_depth,omitempty" json:"pool_depth,omitempty"`
	Backing    string `yaml:"backing,omitempty" json:"backing,omitempty"`
	Lock       bool   `yaml:"lock,omitempty" json:"lock,omitempty"`
}

func (c Config) depth() int {
	if c.PoolDepth == 0 {
		return 1
	}
	return c.PoolDepth
}

// Validate checks the parameters New would reject.
func (c Config) Validate() error {
	if _, err := arena.ParseBacking(c.Backing); err != nil {
		return err
	}
	switch c.Kind {
	case KindStack:
		if c.Capacity <= 0 {
			return fmt.Errorf("%w: %d", ErrZeroCapacity, c.Capacity)
		}
		return nil
	case KindPool:
		_, err := Plan(c.BlockCount, c.BlockSize, 1)
		return err
	case KindMultipool:
		_, err := Plan(c.BlockCount, c.BlockSize, c.depth())
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
}

// Layout returns the tier plan for Pool and Multipool configs.
func (c Config) Layout() (Layout, error) {
	switch c.Kind {
	case KindPool:
		return Plan(c.BlockCount, c.BlockSize, 1)
	case KindMultipool:
		return Plan(c.BlockCount, c.BlockSize, c.depth())
	case KindStack:
		return Layout{}, fmt.Errorf("alloc: %s has no tier layout", c.Kind)
	default:
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
}

// Footprint returns what MaxSize will report for the configured allocator.
func (c Config) Footprint() (int, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	if c.Kind == KindStack {
		return c.Capacity, nil
	}
	l, err := c.Layout()
	if err != nil {
		return 0, err
	}
	n, err := buf.Footprint(l.Slots, 0, HeaderSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTooLarge, err)
	}
	total, ok := buf.AddOverflowSafe(l.ArenaSize, n)
	if !ok {
		return 0, fmt.Errorf("%w: footprint overflows", ErrTooLarge)
	}
	return total, nil
}

// New validates cfg and builds the allocator it describes. Unlike the plain
// constructors it reports every failure, including mapping errors, as an
// error.
func New(cfg Config) (Region, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	backing, _ := arena.ParseBacking(cfg.Backing)
	opts := arena.Options{Backing: backing, Lock: cfg.Lock}

	if cfg.Kind == KindStack {
		a, err := arena.New(cfg.Capacity, opts)
		if err != nil {
			return nil, fmt.Errorf("alloc: stack arena: %w", err)
		}
		return NewStackOn(a), nil
	}

	l, err := cfg.Layout()
	if err != nil {
		return nil, err
	}
	a, err := arena.New(l.ArenaSize, opts)
	if err != nil {
		return nil, fmt.Errorf("alloc: %s arena: %w", cfg.Kind, err)
	}
	if cfg.Kind == KindPool {
		p := &Pool{}
		p.init(a, l)
		return p, nil
	}
	m := &Multipool{}
	m.init(a, l)
	return m, nil
}
