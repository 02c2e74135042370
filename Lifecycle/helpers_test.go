package Lifecycle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// catchFatal replaces Terminate for the duration of the test and returns the *FatalError f ends with.
func catchFatal(t *testing.T, f func()) (fe *FatalError) {
	t.Helper()
	old := Terminate
	Terminate = func(err error) { panic(err) }
	t.Cleanup(func() { Terminate = old })
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a fatal failure")
		err, ok := r.(error)
		require.True(t, ok)
		require.True(t, errors.As(err, &fe))
	}()
	f()
	return
}

func constructed(t *testing.T, c *Counted, vals ...int) []Tracked {
	t.Helper()
	s := AllocBlock[Tracked](Heap, len(vals))
	require.NoError(t, ConstructRange(c, s))
	for i, v := range vals {
		s[i].Val = v
	}
	return s
}
