package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/g-m-twostay/go-nx/Lifecycle"
	"github.com/g-m-twostay/go-nx/Maps/FlatMap"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type mapOpts struct {
	n          int
	remove     float64
	configPath string
	dumpConfig bool
	strKeys    bool
}

func newMapCmd(g *globals) *cobra.Command {
	o := &mapOpts{}
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Insert into and remove from a FlatMap",
		Long: `The map command inserts n keys into a FlatMap, verifies them, then removes a
fraction of them and verifies the rest, reporting how the table resized.

The resize policy can be read from a YAML file:
  grow_at: 0.75
  shrink_at: 0.25
  grow_by: 2
  shrink_by: 0.5
  min_capacity: 8

Example:
  nxbench map -n 100000 --remove 0.9
  nxbench map --config policy.yaml --dump-config`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(o.configPath)
			if err != nil {
				return err
			}
			if o.dumpConfig {
				out, err := yaml.Marshal(cfg)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(out)
				return err
			}
			if o.remove < 0 || o.remove > 1 {
				return fmt.Errorf("--remove %v not in [0, 1]", o.remove)
			}
			b, err := g.budget()
			if err != nil {
				return err
			}
			var r report
			if o.strKeys {
				r = runMap(b, cfg, o, strconv.Itoa)
			} else {
				r = runMap(b, cfg, o, func(i int) int { return i })
			}
			return g.print(cmd.OutOrStdout(), r)
		},
	}
	cmd.Flags().IntVarP(&o.n, "count", "n", 10000, "Number of keys to insert")
	cmd.Flags().Float64Var(&o.remove, "remove", 0.5, "Fraction of the keys to remove afterward")
	cmd.Flags().StringVar(&o.configPath, "config", "", "YAML file with the resize policy")
	cmd.Flags().BoolVar(&o.dumpConfig, "dump-config", false, "Print the effective resize policy and exit")
	cmd.Flags().BoolVar(&o.strKeys, "string-keys", false, "Use decimal strings instead of ints as keys")
	return cmd
}

func loadConfig(path string) (FlatMap.Config, error) {
	if path == "" {
		return FlatMap.DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return FlatMap.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return FlatMap.ParseConfig(data)
}

func runMap[K comparable](b *Lifecycle.Budget, cfg FlatMap.Config, o *mapOpts, key func(int) K) (r report) {
	r = report{Workload: "map", Results: map[string]any{}}
	defer func() {
		r.Stats = b.Stats()
	}()
	m, err := FlatMap.New[K, int](FlatMap.WithConfig(cfg), FlatMap.WithAllocator(b))
	if r.record("new", err) {
		return
	}
	defer m.Destroy()

	inserted := 0
	for i := range o.n {
		if _, _, err = m.Insert(key(i), i); r.record("insert", err) {
			break
		}
		inserted++
	}
	r.Results["inserted"] = inserted
	r.Results["peak_capacity"] = m.Capacity()
	r.Results["peak_width"] = m.IndexWidth()
	r.Results["found"] = count(m, key, 0, inserted)

	removed := int(float64(inserted) * o.remove)
	for i := range removed {
		m.Remove(key(i))
	}
	r.Results["removed"] = removed
	r.Results["found_after"] = count(m, key, removed, inserted)
	r.Results["size"] = m.Size()
	r.Results["capacity"] = m.Capacity()
	r.Results["load"] = strconv.FormatFloat(m.Load(), 'f', 3, 64)
	r.Results["width"] = m.IndexWidth()
	return
}

// count of the keys in [lo, hi) present with the right value.
func count[K comparable](m *FlatMap.Map[K, int], key func(int) K, lo, hi int) int {
	n := 0
	for i := lo; i < hi; i++ {
		if v, ok := m.Get(key(i)); ok && v == i {
			n++
		}
	}
	return n
}
