package main

import (
	"slices"

	"github.com/g-m-twostay/go-nx/Arrays"
	"github.com/g-m-twostay/go-nx/Lifecycle"
	"github.com/spf13/cobra"
)

func newArrayCmd(g *globals) *cobra.Command {
	var values []int
	var fillLen, fill int
	cmd := &cobra.Command{
		Use:   "array",
		Short: "Create, copy and fill fixed Arrays",
		Long: `The array command creates an Array from the given values, copies it into a
fresh Array of the same length and fills a third one.

Example:
  nxbench array --values 10,20,30,40,50 --fill-len 100 --fill 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := g.budget()
			if err != nil {
				return err
			}
			return g.print(cmd.OutOrStdout(), runArray(b, values, fillLen, fill))
		},
	}
	cmd.Flags().IntSliceVar(&values, "values", []int{10, 20, 30, 40, 50}, "Values of the source array")
	cmd.Flags().IntVar(&fillLen, "fill-len", 100, "Length of the filled array")
	cmd.Flags().IntVar(&fill, "fill", 42, "Fill value")
	return cmd
}

func runArray(b *Lifecycle.Budget, values []int, fillLen, fill int) (r report) {
	r = report{Workload: "array", Results: map[string]any{}}
	env := Lifecycle.Env[int]{Alloc: b}
	defer func() {
		r.Stats = b.Stats()
	}()

	src, err := Arrays.CreateFrom(env, values...)
	if r.record("create_from", err) {
		return
	}
	defer src.Destroy()
	r.Results["source"] = slices.Clone(src.Slice())

	dst, err := Arrays.Create(env, src.Len())
	if r.record("create", err) {
		return
	}
	defer dst.Destroy()
	if !r.record("copy", Arrays.Copy(src, 0, dst, 0, src.Len())) {
		r.Results["copy_equal"] = slices.Equal(src.Slice(), dst.Slice())
	}

	filled, err := Arrays.Create(env, fillLen)
	if r.record("create_fill", err) {
		return
	}
	defer filled.Destroy()
	if !r.record("fill", Arrays.Fill(filled, 0, fillLen, fill)) {
		r.Results["fill_ok"] = !slices.ContainsFunc(filled.Slice(), func(v int) bool { return v != fill })
	}
	return
}
