package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/joshuapare/arenakit/alloc"
	"github.com/joshuapare/arenakit/internal/logger"
	"github.com/joshuapare/arenakit/internal/workload"
)

var watchInterval time.Duration

func init() {
	cmd := newWatchCmd()
	cmd.Flags().DurationVar(&watchInterval, "interval", 250*time.Millisecond, "Delay between replayed steps")
	rootCmd.AddCommand(cmd)
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <workload.yaml>",
		Short: "Animate a workload replay in the terminal",
		Long: `The watch command replays a workload step by step, drawing overall arena
usage and per-tier occupancy as progress bars. Press q to stop.

Logs never go to the terminal while the UI runs; with --verbose they are
written under ~/.arenactl/logs unless --log-dir says otherwise.

Example:
  arenactl watch frame.yaml
  arenactl watch frame.yaml --interval 50ms`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), args)
		},
	}
	return cmd
}

// stepMsg carries one replayed step and the allocator state after it.
type stepMsg struct {
	out   workload.Outcome
	stats workload.Stats
}

// doneMsg ends a replay.
type doneMsg struct {
	res *workload.Result
	err error
}

// replay runs the workload on its own goroutine, emitting a stepMsg per step
// and pausing interval between steps. The allocator is only touched from that
// goroutine; the UI sees snapshots.
func replay(ctx context.Context, r alloc.Region, steps []workload.Step, interval time.Duration) <-chan tea.Msg {
	ch := make(chan tea.Msg)
	go func() {
		defer close(ch)

		var tick <-chan time.Time
		if interval > 0 {
			t := time.NewTicker(interval)
			defer t.Stop()
			tick = t.C
		}

		res, err := workload.Run(ctx, r, steps, func(o workload.Outcome) {
			select {
			case ch <- stepMsg{out: o, stats: workload.Snapshot(r)}:
			case <-ctx.Done():
				return
			}
			if tick != nil {
				select {
				case <-tick:
				case <-ctx.Done():
				}
			}
		})
		select {
		case ch <- doneMsg{res: res, err: err}:
		case <-ctx.Done():
		}
	}()
	return ch
}

// waitFor delivers the next replay message to the program.
func waitFor(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

const maxRecent = 8

// watchModel is the bubbletea model for a replay.
type watchModel struct {
	title  string
	total  int
	events <-chan tea.Msg
	cancel context.CancelFunc

	stats  workload.Stats
	recent []workload.Outcome
	steps  int
	fails  int

	usage progress.Model
	tiers []progress.Model
	width int

	done bool
	err  error
}

func newWatchModel(title string, total int, events <-chan tea.Msg, cancel context.CancelFunc) watchModel {
	return watchModel{
		title:  title,
		total:  total,
		events: events,
		cancel: cancel,
		usage:  newBar(),
		width:  80,
	}
}

func newBar() progress.Model {
	if noColor {
		return progress.New(progress.WithoutPercentage(), progress.WithSolidFill(""), progress.WithFillCharacters('#', '.'))
	}
	return progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
}

func (m watchModel) Init() tea.Cmd {
	return waitFor(m.events)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.resize()

	case stepMsg:
		m.steps++
		if !msg.out.OK {
			m.fails++
		}
		m.stats = msg.stats
		m.recent = append(m.recent, msg.out)
		if len(m.recent) > maxRecent {
			m.recent = m.recent[len(m.recent)-maxRecent:]
		}
		for len(m.tiers) < len(msg.stats.Tiers) {
			m.tiers = append(m.tiers, newBar())
		}
		m.resize()
		return m, waitFor(m.events)

	case doneMsg:
		m.done = true
		m.err = msg.err
		if msg.res != nil {
			m.stats = msg.res.Final
		}
		return m, nil
	}
	return m, nil
}

func (m *watchModel) resize() {
	w := max(m.width-30, 10)
	m.usage.Width = w
	for i := range m.tiers {
		m.tiers[i].Width = w
	}
}

func fraction(n, of int) float64 {
	if of <= 0 {
		return 0
	}
	return float64(n) / float64(of)
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(paint(headerStyle, "arenactl watch: "+m.title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Step %s/%s   failures %s\n\n", count(m.steps), count(m.total), count(m.fails))

	fmt.Fprintf(&b, "%-12s %s %s\n", "usage", m.usage.ViewAs(fraction(m.stats.MemoryUsage, m.stats.MaxSize)),
		bytesLabel(m.stats.MemoryUsage))
	for d, t := range m.stats.Tiers {
		if d >= len(m.tiers) {
			break
		}
		held := t.Free + t.Allocated
		label := fmt.Sprintf("tier %d %s", d, humanBlock(t.BlockSize))
		fmt.Fprintf(&b, "%-12s %s %d/%d\n", label, m.tiers[d].ViewAs(fraction(t.Allocated, held)), t.Allocated, held)
	}

	b.WriteString("\n")
	for _, o := range m.recent {
		result := paint(okStyle, "ok")
		if !o.OK {
			result = paint(failStyle, "FAILED")
		}
		fmt.Fprintf(&b, "  #%-4d %-7s %-12s %s\n", o.Index, o.Op, o.Name, result)
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(paint(failStyle, "Error: "+m.err.Error()))
	case m.done:
		b.WriteString(paint(okStyle, "Replay complete."))
	}
	b.WriteString(paint(mutedStyle, "  q quit"))
	b.WriteString("\n")
	return b.String()
}

func humanBlock(n int) string {
	if n >= 1024 && n%1024 == 0 {
		return fmt.Sprintf("%dK", n/1024)
	}
	return fmt.Sprintf("%dB", n)
}

// watchLogDir keeps log records off the terminal while the UI is drawn.
func watchLogDir() string {
	if logDir != "" {
		return logDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".arenactl", "logs")
	}
	return filepath.Join(os.TempDir(), "arenactl")
}

func runWatch(ctx context.Context, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if verbose {
		if err := logger.Init(logger.Options{
			Enabled: true,
			Level:   slog.LevelDebug,
			JSON:    logFormat == "json",
			LogDir:  watchLogDir(),
		}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
		}
	}

	w, err := workload.Load(args[0])
	if err != nil {
		return err
	}
	r, err := w.Build()
	if err != nil {
		return fmt.Errorf("failed to build allocator: %w", err)
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	title := w.Name
	if title == "" {
		title = filepath.Base(args[0])
	}
	events := replay(ctx, r, w.Steps, watchInterval)
	m := newWatchModel(title, len(w.Steps), events, cancel)

	finalModel, err := tea.NewProgram(m, tea.WithAltScreen()).Run()

	// The replay goroutine must be gone before the allocator is closed.
	cancel()
	for range events {
	}

	if err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("error running TUI: %w", err)
	}

	if fm, ok := finalModel.(watchModel); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
