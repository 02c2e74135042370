package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/g-m-twostay/go-nx/Lifecycle"
	"github.com/spf13/cobra"
)

type globals struct {
	verbose bool
	jsonOut bool
	alloc   string
	limit   uint64
	failAt  uint
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:   "nxbench",
		Short: "Drive go-nx containers through fixed workloads",
		Long: `nxbench runs the containers of go-nx through fixed workloads and reports what
they did to the allocator: allocations, frees, refusals and live/peak bytes.

Allocation failures can be injected with --limit and --fail-at to watch the
containers recover.`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.verbose {
				Lifecycle.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log allocator and resize events to stderr")
	cmd.PersistentFlags().BoolVar(&g.jsonOut, "json", false, "Output in JSON format")
	cmd.PersistentFlags().StringVar(&g.alloc, "alloc", "heap", "Backing allocator: heap or mmap")
	cmd.PersistentFlags().Uint64Var(&g.limit, "limit", 0, "Refuse allocations beyond this many live bytes (0: unlimited)")
	cmd.PersistentFlags().UintVar(&g.failAt, "fail-at", 0, "Refuse exactly the n-th allocation (0: never)")

	cmd.AddCommand(newListCmd(g), newArrayCmd(g), newMapCmd(g))
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// budget builds the accounting allocator over the selected backing allocator.
func (g *globals) budget() (*Lifecycle.Budget, error) {
	var base Lifecycle.Allocator
	switch g.alloc {
	case "heap":
		base = Lifecycle.Heap
	case "mmap":
		base = Lifecycle.Mmap
	default:
		return nil, fmt.Errorf("unknown allocator %q", g.alloc)
	}
	b := Lifecycle.NewBudget(base, uintptr(g.limit))
	b.FailAt = g.failAt
	return b, nil
}

// report is what every workload prints.
type report struct {
	Workload string            `json:"workload"`
	Results  map[string]any    `json:"results"`
	Stats    Lifecycle.Stats   `json:"allocator"`
	Errors   map[string]string `json:"errors,omitempty"`
}

func (g *globals) print(w io.Writer, r report) error {
	if g.jsonOut {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	}
	fmt.Fprintf(w, "%s\n", r.Workload)
	for _, k := range sortedKeys(r.Results) {
		fmt.Fprintf(w, "  %-14s %v\n", k+":", r.Results[k])
	}
	for _, k := range sortedKeys(r.Errors) {
		fmt.Fprintf(w, "  %-14s %s\n", k+":", r.Errors[k])
	}
	s := r.Stats
	fmt.Fprintf(w, "allocator\n  allocs: %d  frees: %d  refused: %d  live: %d  peak: %d\n",
		s.Allocs, s.Frees, s.Refused, s.Live, s.Peak)
	return nil
}
