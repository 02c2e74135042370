package main

import (
	"github.com/g-m-twostay/go-nx/Lifecycle"
	"github.com/g-m-twostay/go-nx/Lists"
	"github.com/spf13/cobra"
)

func newListCmd(g *globals) *cobra.Command {
	var n, resize int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Append, resize and compact a List",
		Long: `The list command appends 0..n-1 to a List of ints, resizes it, checks the
surviving values and compacts it.

Example:
  nxbench list -n 1000 --resize 500
  nxbench list -n 100000 --limit 65536 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := g.budget()
			if err != nil {
				return err
			}
			r := runList(b, n, resize)
			return g.print(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 1000, "Number of values to append")
	cmd.Flags().IntVar(&resize, "resize", 500, "Size to resize to after appending")
	return cmd
}

func runList(b *Lifecycle.Budget, n, resize int) (r report) {
	r = report{Workload: "list", Results: map[string]any{}}
	l := Lists.New(Lifecycle.Env[int]{Alloc: b})
	defer func() {
		l.Destroy()
		r.Stats = b.Stats()
	}()

	appended := 0
	for i := range n {
		if r.record("append", l.Append(i)) {
			break
		}
		appended++
	}
	r.Results["appended"] = appended
	r.Results["grown_capacity"] = l.Capacity()
	if !r.record("resize", l.Resize(resize)) {
		intact := true
		for i, v := range l.All() {
			if i < appended && v != i {
				intact = false
				break
			}
		}
		r.Results["intact"] = intact
	}
	r.record("compact", l.Compact())
	r.Results["size"] = l.Size()
	r.Results["capacity"] = l.Capacity()
	return r
}
