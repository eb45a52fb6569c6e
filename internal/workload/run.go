package workload

import (
	"context"
	"fmt"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/internal/check"
	"github.com/joshuapare/arenakit/internal/logger"
)

// Outcome records what one step did.
type Outcome struct {
	Index  int    `json:"index"`
	Op     Op     `json:"op"`
	Name   string `json:"name,omitempty"`
	Size   int    `json:"size,omitempty"`
	Align  int    `json:"align,omitempty"`
	OK     bool   `json:"ok"`
	Offset int    `json:"offset"` // arena offset of the result, -1 when none
	Usage  int    `json:"usage"`  // MemoryUsage after the step
	Count  int    `json:"count"`  // AllocationCount after the step
}

// Stats is the allocator's introspection surface at one point in time.
type Stats struct {
	MaxSize         int               `json:"max_size"`
	MemoryUsage     int               `json:"memory_usage"`
	AllocationCount int               `json:"allocation_count"`
	Tiers           []alloc.TierStats `json:"tiers,omitempty"`
}

// Result summarizes a run.
type Result struct {
	Steps     []Outcome `json:"steps"`
	Failures  int       `json:"failures"` // allocs and reallocs that returned nil
	PeakUsage int       `json:"peak_usage"`
	PeakCount int       `json:"peak_count"`
	Final     Stats     `json:"final"`
}

// Observer is called after every step. It may be nil.
type Observer func(Outcome)

type tiered interface {
	Tiers() []alloc.TierStats
}

type arenaOwner interface {
	Arena() *arena.Arena
}

// Snapshot reads r's introspection surface, including per-tier statistics for
// pool allocators.
func Snapshot(r alloc.Region) Stats {
	s := Stats{
		MaxSize:         r.MaxSize(),
		MemoryUsage:     r.MemoryUsage(),
		AllocationCount: r.AllocationCount(),
	}
	if t, ok := r.(tiered); ok {
		s.Tiers = t.Tiers()
	}
	return s
}

// Run replays steps against r. Allocation failures are recorded, not
// returned; errors are reserved for malformed sequences (unknown names,
// duplicate names), cancellation, and precondition panics raised by checked
// builds. The partial Result is returned alongside any error.
func Run(ctx context.Context, r alloc.Region, steps []Step, obs Observer) (res *Result, err error) {
	res = &Result{Steps: make([]Outcome, 0, len(steps))}
	live := make(map[string][]byte)

	var a *arena.Arena
	if o, ok := r.(arenaOwner); ok {
		a = o.Arena()
	}
	offset := func(b []byte) int {
		if a == nil || b == nil {
			return -1
		}
		return a.Offset(b)
	}

	i := 0
	defer func() {
		if p := recover(); p != nil {
			v := check.Recover(p)
			if v == nil {
				panic(p)
			}
			err = fmt.Errorf("workload: step %d: %w", i, v)
		}
		res.Final = Snapshot(r)
	}()

	for ; i < len(steps); i++ {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("workload: stopped before step %d: %w", i, err)
		}

		s := steps[i]
		out := Outcome{Index: i, Op: s.Op, Name: s.Name, Size: s.Size, Align: s.Align, Offset: -1}

		switch s.Op {
		case OpAlloc:
			if _, ok := live[s.Name]; ok {
				return res, fmt.Errorf("step %d: %w: %q", i, ErrDuplicateName, s.Name)
			}
			align := s.Align
			if align == 0 {
				align = alloc.MaxAlign
			}
			out.Align = align
			if b := r.Allocate(s.Size, align); b != nil {
				live[s.Name] = b
				out.OK, out.Offset = true, offset(b)
			}

		case OpFree:
			b, ok := live[s.Name]
			if !ok {
				return res, fmt.Errorf("step %d: %w: %q", i, ErrUnknownName, s.Name)
			}
			out.Offset = offset(b)
			r.Free(b)
			delete(live, s.Name)
			out.OK = true

		case OpRealloc:
			b, ok := live[s.Name]
			if !ok {
				return res, fmt.Errorf("step %d: %w: %q", i, ErrUnknownName, s.Name)
			}
			if nb := r.Reallocate(b, s.Size); nb != nil {
				live[s.Name] = nb
				out.OK, out.Offset = true, offset(nb)
			}

		case OpClear:
			r.Clear()
			clear(live)
			out.OK = true

		default:
			return res, fmt.Errorf("step %d: %w: %q", i, ErrUnknownOp, s.Op)
		}

		out.Usage = r.MemoryUsage()
		out.Count = r.AllocationCount()
		if !out.OK {
			res.Failures++
		}
		res.PeakUsage = max(res.PeakUsage, out.Usage)
		res.PeakCount = max(res.PeakCount, out.Count)
		res.Steps = append(res.Steps, out)

		logger.Debug("workload step", "index", i, "op", string(s.Op), "name", s.Name,
			"size", s.Size, "ok", out.OK, "offset", out.Offset, "usage", out.Usage)
		if obs != nil {
			obs(out)
		}
	}
	return res, nil
}
