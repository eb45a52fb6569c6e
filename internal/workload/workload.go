// Package workload replays scripted allocation sequences against an
// allocator. Workloads are YAML documents naming an allocator configuration
// and a list of steps:
//
//	allocator:
//	  kind: multipool
//	  block_count: 4
//	  block_size: 256
//	  pool_depth: 3
//	steps:
//	  - {op: alloc, name: mesh, size: 200}
//	  - {op: alloc, name: index, size: 48, align: 16}
//	  - {op: free, name: mesh}
//	  - {op: clear}
//
// Steps refer to allocations by name so a workload can free or resize what it
// allocated earlier.
package workload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/buf"
)

// Op is a workload step kind.
type Op string

const (
	OpAlloc   Op = "alloc"
	OpFree    Op = "free"
	OpRealloc Op = "realloc"
	OpClear   Op = "clear"
)

var (
	// ErrUnknownOp indicates a step whose op is not one of the Op constants.
	ErrUnknownOp = errors.New("workload: unknown op")

	// ErrUnknownName indicates a free or realloc of a name with no live allocation.
	ErrUnknownName = errors.New("workload: no live allocation with that name")

	// ErrDuplicateName indicates an alloc reusing the name of a live allocation.
	ErrDuplicateName = errors.New("workload: name already live")

	// ErrBadStep indicates a step with missing or invalid fields.
	ErrBadStep = errors.New("workload: invalid step")
)

// Step is one operation in a workload.
type Step struct {
	Op    Op     `yaml:"op" json:"op"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Size  int    `yaml:"size,omitempty" json:"size,omitempty"`
	Align int    `yaml:"align,omitempty" json:"align,omitempty"`
}

// Workload is a parsed workload file.
type Workload struct {
	Name      string       `yaml:"name,omitempty" json:"name,omitempty"`
	Allocator alloc.Config `yaml:"allocator" json:"allocator"`
	Steps     []Step       `yaml:"steps" json:"steps"`
}

// Load reads and parses a workload file.
func Load(path string) (*Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("workload: %w", err)
	}
	w, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return w, nil
}

// Parse decodes a workload document, rejecting unknown fields, and validates
// its allocator and steps. Steps without an align get alloc.MaxAlign.
func Parse(data []byte) (*Workload, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var w Workload
	if err := dec.Decode(&w); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrBadStep)
		}
		return nil, fmt.Errorf("workload: decode: %w", err)
	}
	if err := w.Allocator.Validate(); err != nil {
		return nil, fmt.Errorf("workload: allocator: %w", err)
	}
	for i := range w.Steps {
		if err := normalize(&w.Steps[i]); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return &w, nil
}

// normalize fills defaults and checks the fields each op needs.
func normalize(s *Step) error {
	switch s.Op {
	case OpAlloc, OpRealloc:
		if s.Name == "" {
			return fmt.Errorf("%w: %s needs a name", ErrBadStep, s.Op)
		}
		if s.Size <= 0 {
			return fmt.Errorf("%w: %s %q size %d", ErrBadStep, s.Op, s.Name, s.Size)
		}
	case OpFree:
		if s.Name == "" {
			return fmt.Errorf("%w: free needs a name", ErrBadStep)
		}
	case OpClear:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, s.Op)
	}

	if s.Op == OpAlloc {
		if s.Align == 0 {
			s.Align = alloc.MaxAlign
		}
		if !buf.IsPow2(s.Align) {
			return fmt.Errorf("%w: align %d is not a power of two", ErrBadStep, s.Align)
		}
	}
	return nil
}

// Build creates the allocator the workload describes.
func (w *Workload) Build() (alloc.Region, error) {
	return alloc.New(w.Allocator)
}
