package FlatMap

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Config holds the resize policy of a Map. It's immutable; build one with NewConfig or ParseConfig.
type Config struct {
	growAt, shrinkAt, growBy, shrinkBy float64
	minCapacity                        int
}

var defaultConfig = Config{growAt: 0.75, shrinkAt: 0.25, growBy: 2, shrinkBy: 0.5, minCapacity: 8}

// DefaultConfig grows at load 0.75 by 2x and shrinks at load 0.25 by half, down to 8 slots.
func DefaultConfig() Config {
	return defaultConfig
}

func (c Config) GrowAt() float64   { return c.growAt }
func (c Config) ShrinkAt() float64 { return c.shrinkAt }
func (c Config) GrowBy() float64   { return c.growBy }
func (c Config) ShrinkBy() float64 { return c.shrinkBy }
func (c Config) MinCapacity() int  { return c.minCapacity }

func (c Config) validate() error {
	switch {
	case !(c.growAt > 0 && c.growAt < 1):
		return fmt.Errorf("%w: grow_at %v not in (0, 1)", ErrInvalidConfig, c.growAt)
	case !(c.shrinkAt >= 0 && c.shrinkAt < c.growAt):
		return fmt.Errorf("%w: shrink_at %v not in [0, grow_at)", ErrInvalidConfig, c.shrinkAt)
	case !(c.growBy > 1) || math.IsInf(c.growBy, 0):
		return fmt.Errorf("%w: grow_by %v not greater than 1", ErrInvalidConfig, c.growBy)
	case !(c.shrinkBy > 0 && c.shrinkBy < 1):
		return fmt.Errorf("%w: shrink_by %v not in (0, 1)", ErrInvalidConfig, c.shrinkBy)
	case c.minCapacity < 1:
		return fmt.Errorf("%w: min_capacity %d less than 1", ErrInvalidConfig, c.minCapacity)
	// a freshly resized table must not immediately qualify for the opposite resize.
	case c.shrinkAt >= c.growAt*c.shrinkBy || c.shrinkAt >= c.growAt/c.growBy:
		return fmt.Errorf("%w: shrink_at %v leaves no hysteresis", ErrInvalidConfig, c.shrinkAt)
	}
	return nil
}

// grown is the capacity after growing from m until n entries stay within the grow threshold.
func (c Config) grown(m, n int) int {
	m = max(m, c.minCapacity)
	for float64(n) > c.growAt*float64(m) {
		nm := int(math.Ceil(float64(m) * c.growBy))
		if nm <= m {
			nm = m + 1
		}
		m = nm
	}
	return m
}

// shrunk is the capacity to shrink to after a removal left n entries in m slots, or m.
func (c Config) shrunk(m, n int) int {
	if m <= c.minCapacity || float64(n) > c.shrinkAt*float64(m) {
		return m
	}
	nm := max(c.minCapacity, int(float64(m)*c.shrinkBy))
	if float64(n) > c.growAt*float64(nm) {
		return m
	}
	return nm
}

// Builder assembles a Config starting from the defaults.
type Builder struct {
	c Config
}

func NewConfig() *Builder {
	return &Builder{c: defaultConfig}
}

func (u *Builder) GrowAt(f float64) *Builder {
	u.c.growAt = f
	return u
}

func (u *Builder) ShrinkAt(f float64) *Builder {
	u.c.shrinkAt = f
	return u
}

func (u *Builder) GrowBy(f float64) *Builder {
	u.c.growBy = f
	return u
}

func (u *Builder) ShrinkBy(f float64) *Builder {
	u.c.shrinkBy = f
	return u
}

func (u *Builder) MinCapacity(n int) *Builder {
	u.c.minCapacity = n
	return u
}

// Build validates the thresholds.
func (u *Builder) Build() (Config, error) {
	if err := u.c.validate(); err != nil {
		return Config{}, err
	}
	return u.c, nil
}

type configYAML struct {
	GrowAt      *float64 `yaml:"grow_at,omitempty"`
	ShrinkAt    *float64 `yaml:"shrink_at,omitempty"`
	GrowBy      *float64 `yaml:"grow_by,omitempty"`
	ShrinkBy    *float64 `yaml:"shrink_by,omitempty"`
	MinCapacity *int     `yaml:"min_capacity,omitempty"`
}

// ParseConfig reads a YAML document such as
//
//	grow_at: 0.8
//	min_capacity: 64
//
// Missing keys keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	var y configYAML
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	b := NewConfig()
	if y.GrowAt != nil {
		b.GrowAt(*y.GrowAt)
	}
	if y.ShrinkAt != nil {
		b.ShrinkAt(*y.ShrinkAt)
	}
	if y.GrowBy != nil {
		b.GrowBy(*y.GrowBy)
	}
	if y.ShrinkBy != nil {
		b.ShrinkBy(*y.ShrinkBy)
	}
	if y.MinCapacity != nil {
		b.MinCapacity(*y.MinCapacity)
	}
	return b.Build()
}

// MarshalYAML writes every field, so the output round trips through ParseConfig.
func (c Config) MarshalYAML() (any, error) {
	return configYAML{&c.growAt, &c.shrinkAt, &c.growBy, &c.shrinkBy, &c.minCapacity}, nil
}
