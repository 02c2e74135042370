package Ptr

import (
	"errors"
	"testing"

	"github.com/g-m-twostay/go-nx/Lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tracked = Lifecycle.Tracked

func setup(n int) (*Lifecycle.Budget, *Lifecycle.Counted, Lifecycle.Env[tracked]) {
	b, c := Lifecycle.NewBudget(nil, 0), Lifecycle.NewCounted(n, 0)
	return b, c, Lifecycle.Env[tracked]{Alloc: b, Life: c}
}

func TestUnique_DropOnce(t *testing.T) {
	b, c, env := setup(4)
	u, err := Make(env)
	require.NoError(t, err)
	u.Get().Val = 5
	assert.False(t, u.Empty())

	u.Close()
	u.Close()
	assert.True(t, u.Empty())
	assert.Equal(t, 1, c.Destroys)
	assert.Equal(t, uint(1), b.Stats().Frees)
	assert.Zero(t, b.Stats().Live)
}

func TestUnique_ReleaseAndReset(t *testing.T) {
	_, c, env := setup(4)
	u, err := Make(env)
	require.NoError(t, err)

	p := u.Release()
	id := p.ID
	assert.True(t, u.Empty())
	u.Close()
	assert.Zero(t, c.Destroys)

	u.Reset(p)
	u.Reset(p)
	assert.Zero(t, c.Destroys)
	q, err := Lifecycle.New(env)
	require.NoError(t, err)
	u.Reset(q)
	assert.Equal(t, []int{id}, c.Destroyed)
	assert.Same(t, q, u.Get())
	u.Close()
	assert.True(t, c.Balanced())
}

func TestUnique_Move(t *testing.T) {
	_, c, env := setup(4)
	u, err := Make(env)
	require.NoError(t, err)
	p := u.Get()

	v := u.Move()
	assert.True(t, u.Empty())
	assert.Same(t, p, v.Get())
	u.Close()
	assert.Zero(t, c.Destroys)
	v.Close()
	assert.Equal(t, 1, c.Destroys)
}

func TestUnique_DeferOnEveryExit(t *testing.T) {
	_, c, env := setup(8)
	early := func(bail bool) int {
		u, err := Make(env)
		require.NoError(t, err)
		defer u.Close()
		if bail {
			return 0
		}
		return u.Get().ID
	}
	early(true)
	early(false)
	assert.Panics(t, func() {
		u, _ := Make(env)
		defer u.Close()
		panic("unwind")
	})
	assert.Equal(t, 3, c.Destroys)
	assert.Zero(t, c.Live())
}

func TestUnique_MakeFailure(t *testing.T) {
	b, _, env := setup(4)
	b.FailAt = 1
	u, err := Make(env)
	require.ErrorIs(t, err, Lifecycle.ErrOutOfMemory)
	assert.True(t, u.Empty())
}

func TestWrap_NilDrop(t *testing.T) {
	x := 3
	u := Wrap(&x, nil)
	u.Close()
	assert.True(t, u.Empty())
	assert.Equal(t, 3, x)
}

func TestArray(t *testing.T) {
	b, c, env := setup(16)
	a, err := MakeArray(env, 8)
	require.NoError(t, err)
	require.Equal(t, 8, a.Len())
	for i := range a.Len() {
		a.At(i).Val = 2*i + 4
	}
	for i, e := range a.Slice() {
		assert.Equal(t, 2*i+4, e.Val)
	}

	a.Close()
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2, 1, 0}, c.Destroyed)
	assert.Zero(t, b.Stats().Live)
	a.Close()
	assert.Equal(t, 8, c.Destroys)
}

func TestArray_Empty(t *testing.T) {
	b, _, env := setup(1)
	a, err := MakeArray(env, 0)
	require.NoError(t, err)
	assert.Zero(t, a.Len())
	assert.Nil(t, a.Slice())
	a.Close()
	assert.Zero(t, b.Stats().Allocs)
}

func TestArray_MoveAndRelease(t *testing.T) {
	_, c, env := setup(16)
	a, err := MakeArray(env, 3)
	require.NoError(t, err)
	m := a.Move()
	assert.True(t, a.Empty())
	assert.Equal(t, 3, m.Len())
	a.Close()
	assert.Zero(t, c.Destroys)

	p, n := m.Release()
	assert.Equal(t, 3, n)
	m.Close()
	assert.Zero(t, c.Destroys)
	m.Reset(p, n)
	m.Close()
	assert.Equal(t, 3, c.Destroys)
}

func TestArray_Failures(t *testing.T) {
	b, c, env := setup(16)
	c.FailAt = 3
	_, err := MakeArray(env, 5)
	require.True(t, errors.Is(err, Lifecycle.ErrInjected))
	assert.True(t, c.Balanced())
	assert.Zero(t, b.Stats().Live)

	b.FailAt = b.Stats().Allocs + 1
	_, err = MakeArray(env, 5)
	require.ErrorIs(t, err, Lifecycle.ErrOutOfMemory)
}
