package Lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructRange_RollsBackInReverse(t *testing.T) {
	c := NewCounted(16, 0)
	c.FailAt = 5
	s := AllocBlock[Tracked](Heap, 8)

	err := ConstructRange(c, s)
	require.ErrorIs(t, err, ErrInjected)
	var ce *ConstructError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 4, ce.Index)
	assert.Equal(t, []int{3, 2, 1, 0}, c.Destroyed)
	assert.True(t, c.Balanced())
	assert.Zero(t, c.Live())
}

func TestConstructRange_FailFirst(t *testing.T) {
	c := NewCounted(4, 0)
	c.FailAt = 1
	err := ConstructRange(c, AllocBlock[Tracked](Heap, 3))
	require.ErrorIs(t, err, ErrInjected)
	assert.Zero(t, c.Destroys)
	assert.Zero(t, c.Constructed())
}

func TestConstructRange_FastPath(t *testing.T) {
	c := NewCounted(16, AllNoFail)
	s := AllocBlock[Tracked](Heap, 8)
	require.NoError(t, ConstructRange(c, s))
	assert.Equal(t, 8, c.Inits)
	assert.Equal(t, 8, c.Live())
	for i := range s {
		assert.Equal(t, i, s[i].ID)
	}
	DestroyRange(c, s)
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2, 1, 0}, c.Destroyed)
	assert.True(t, c.Balanced())
}

func TestConstructRange_Empty(t *testing.T) {
	c := NewCounted(1, 0)
	require.NoError(t, ConstructRange(c, nil))
	assert.Zero(t, c.Constructed())
}

func TestConstructRange_InfallibleFailureIsFatal(t *testing.T) {
	c := NewCounted(8, InitNoFail)
	c.FailAt = 3
	fe := catchFatal(t, func() {
		_ = ConstructRange(c, AllocBlock[Tracked](Heap, 4))
	})
	assert.Equal(t, "init", fe.Op)
	assert.Equal(t, 2, fe.Index)
	assert.ErrorIs(t, fe, ErrInjected)
}

func TestConstructRange_RollbackDestroyFailureIsFatal(t *testing.T) {
	c := NewCounted(8, 0)
	c.FailAt = 4
	c.FailDestroyAt = 2
	fe := catchFatal(t, func() {
		_ = ConstructRange(c, AllocBlock[Tracked](Heap, 6))
	})
	assert.Equal(t, "rollback", fe.Op)
	assert.Equal(t, 1, fe.Index)
}

type panicky struct {
	*Counted
	at int
}

func (p panicky) Init(x *Tracked) error {
	if p.Constructed() == p.at {
		panic("boom")
	}
	return p.Counted.Init(x)
}

func TestConstructRange_PanicRollsBack(t *testing.T) {
	c := NewCounted(8, 0)
	require.PanicsWithValue(t, "boom", func() {
		_ = ConstructRange[Tracked](panicky{c, 3}, AllocBlock[Tracked](Heap, 5))
	})
	assert.Equal(t, []int{2, 1, 0}, c.Destroyed)
	assert.True(t, c.Balanced())
}

func TestConstructRangeByCopy(t *testing.T) {
	c := NewCounted(32, 0)
	src := constructed(t, c, 10, 20, 30, 40)
	dst := AllocBlock[Tracked](Heap, 4)

	require.NoError(t, ConstructRangeByCopy(c, dst, src))
	assert.Equal(t, 4, c.Copies)
	for i := range src {
		assert.Equal(t, src[i].Val, dst[i].Val)
		assert.NotEqual(t, src[i].ID, dst[i].ID)
	}
	DestroyRange(c, dst)
	DestroyRange(c, src)
	assert.True(t, c.Balanced())
	assert.Zero(t, c.Live())
}

func TestConstructRangeByCopy_RollsBack(t *testing.T) {
	c := NewCounted(32, 0)
	src := constructed(t, c, 1, 2, 3, 4, 5)
	c.FailAt = c.Constructed() + 3
	dst := AllocBlock[Tracked](Heap, 5)

	err := ConstructRangeByCopy(c, dst, src)
	var ce *ConstructError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 2, ce.Index)
	assert.Equal(t, []int{6, 5}, c.Destroyed)
	assert.Equal(t, 5, c.Live())
}

func TestConstructRangeByMove_Moves(t *testing.T) {
	c := NewCounted(32, MoveNoFail)
	src := constructed(t, c, 7, 8, 9)
	ids := []int{src[0].ID, src[1].ID, src[2].ID}
	dst := AllocBlock[Tracked](Heap, 3)

	require.NoError(t, ConstructRangeByMove(c, dst, src))
	assert.Equal(t, 3, c.Moves)
	assert.Zero(t, c.Copies)
	for i := range dst {
		assert.Equal(t, ids[i], dst[i].ID)
		assert.Equal(t, 7+i, dst[i].Val)
		assert.Equal(t, -1, src[i].ID)
	}
	DestroyRange(c, src)
	DestroyRange(c, dst)
	assert.True(t, c.Balanced())
	assert.Zero(t, c.Live())
}

func TestConstructRangeByMove_FallsBackToCopy(t *testing.T) {
	c := NewCounted(32, InitNoFail|CopyNoFail)
	src := constructed(t, c, 7, 8, 9)
	dst := AllocBlock[Tracked](Heap, 3)

	require.NoError(t, ConstructRangeByMove(c, dst, src))
	assert.Zero(t, c.Moves)
	assert.Equal(t, 3, c.Copies)
	for i := range dst {
		assert.Equal(t, src[i].Val, dst[i].Val)
		assert.NotEqual(t, -1, src[i].ID)
	}
}

func TestMoveAt(t *testing.T) {
	c := NewCounted(8, 0)
	src := constructed(t, c, 42)
	var dst Tracked
	require.NoError(t, MoveAt[Tracked](c, &dst, &src[0]))
	assert.Equal(t, 1, c.Copies)
	assert.Equal(t, 42, src[0].Val)

	c = NewCounted(8, AllNoFail)
	src = constructed(t, c, 42)
	require.NoError(t, MoveAt[Tracked](c, &dst, &src[0]))
	assert.Equal(t, 1, c.Moves)
	assert.Equal(t, -1, src[0].ID)
}

func TestDestroyAt_FailureIsFatal(t *testing.T) {
	c := NewCounted(4, 0)
	s := constructed(t, c, 1)
	c.FailDestroyAt = 1
	fe := catchFatal(t, func() {
		DestroyAt[Tracked](c, &s[0])
	})
	assert.Equal(t, "destroy", fe.Op)
	assert.Equal(t, -1, fe.Index)
}

func TestNewDelete(t *testing.T) {
	b := NewBudget(nil, 0)
	c := NewCounted(4, 0)
	env := Env[Tracked]{b, c}

	p, err := New(env)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Inits)
	Delete(env, p)
	assert.True(t, c.Balanced())
	st := b.Stats()
	assert.Equal(t, uint(1), st.Allocs)
	assert.Equal(t, uint(1), st.Frees)
	assert.Zero(t, st.Live)

	Delete(env, nil)
	assert.Equal(t, uint(1), b.Stats().Frees)
}

func TestNew_Failures(t *testing.T) {
	b := &Budget{FailAt: 1}
	_, err := New(Env[int]{Alloc: b})
	require.ErrorIs(t, err, ErrOutOfMemory)

	b = NewBudget(nil, 0)
	c := NewCounted(4, 0)
	c.FailAt = 1
	_, err = New(Env[Tracked]{b, c})
	require.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, b.Stats().Allocs, b.Stats().Frees)
}

func TestPlain(t *testing.T) {
	var lc Lifecycle[[]int] = Plain[[]int]{}
	src := []int{1, 2}
	var dst []int
	require.NoError(t, lc.Move(&dst, &src))
	assert.Nil(t, src)
	assert.Equal(t, []int{1, 2}, dst)
	require.NoError(t, lc.Destroy(&dst))
	assert.Nil(t, dst)
	assert.True(t, lc.Caps().Has(AllNoFail))
}

func TestEnvResolve(t *testing.T) {
	e := Env[int]{}.Resolve()
	assert.Equal(t, Heap, e.Alloc)
	assert.Equal(t, Lifecycle[int](Plain[int]{}), e.Life)
}
