package build_test

import (
	"errors"
	"testing"

	"github.com/sghaida/brownstone/build"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naturals yields 1, 2, 3, ... forever and counts how many it produced.
func naturals(produced *int) func(yield func(int) bool) {
	return func(yield func(int) bool) {
		for i := 1; ; i++ {
			*produced++
			if !yield(i) {
				return
			}
		}
	}
}

// countingIter is an Iterator without a size hint.
type countingIter struct {
	items []int
	pulls int
}

func (c *countingIter) Next() (int, bool) {
	c.pulls++
	if len(c.items) == 0 {
		return 0, false
	}
	v := c.items[0]
	c.items = c.items[1:]
	return v, true
}

// lyingIter claims more elements than it has.
type lyingIter struct{ countingIter }

func (l *lyingIter) SizeHint() (int, int, bool) { return 100, 100, true }

//
// -----------------------------------------------------------------------------
// Seq
// -----------------------------------------------------------------------------

func TestFromSeq_InfiniteSourceTakesFirstN(t *testing.T) {
	t.Parallel()

	produced := 0
	arr := build.FromSeq(5, naturals(&produced))

	assert.Equal(t, []int{1, 2, 3, 4, 5}, arr)
	assert.Equal(t, 5, produced)
}

func TestTryFromSeq_ShortSourceFails(t *testing.T) {
	t.Parallel()

	seq := func(yield func(int) bool) {
		for _, v := range []int{1, 2, 3} {
			if !yield(v) {
				return
			}
		}
	}

	arr, ok := build.TryFromSeq(10, seq)
	assert.False(t, ok)
	assert.Nil(t, arr)
}

func TestFromSeq_ShortSourcePanics(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, build.ErrTooFewElements))
	}()

	build.FromSeq(2, func(yield func(int) bool) { yield(1) })
}

//
// -----------------------------------------------------------------------------
// Iterator
// -----------------------------------------------------------------------------

func TestTryFromIter_SizeHintFailsFastWithoutConsuming(t *testing.T) {
	t.Parallel()

	it := build.NewSliceIter([]int{1, 2, 3})

	arr, ok := build.TryFromIter[int](10, it)
	assert.False(t, ok)
	assert.Nil(t, arr)

	lower, upper, bounded := it.SizeHint()
	assert.Equal(t, 3, lower)
	assert.Equal(t, 3, upper)
	assert.True(t, bounded)
}

func TestTryFromIter_SliceIterExact(t *testing.T) {
	t.Parallel()

	it := build.NewSliceIter([]string{"a", "b", "c", "d"})

	arr, ok := build.TryFromIter[string](3, it)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, arr)

	// One element left for the next consumer.
	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "d", v)
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestTryFromIter_NoHintStopsAtExhaustion(t *testing.T) {
	t.Parallel()

	it := &countingIter{items: []int{1, 2}}

	arr, ok := build.TryFromIter[int](5, it)
	assert.False(t, ok)
	assert.Nil(t, arr)
	// Two elements plus the pull that found the end.
	assert.Equal(t, 3, it.pulls)
}

func TestTryFromIter_WrongHintIsStillCorrect(t *testing.T) {
	t.Parallel()

	it := &lyingIter{countingIter{items: []int{1, 2}}}

	arr, ok := build.TryFromIter[int](4, it)
	assert.False(t, ok)
	assert.Nil(t, arr)
}

func TestFromIter_PanicsWhenShort(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		build.FromIter[int](3, build.NewSliceIter([]int{1}))
	})
}

func TestFromIter_ZeroLengthPullsNothing(t *testing.T) {
	t.Parallel()

	it := &countingIter{}
	arr := build.FromIter[int](0, it)

	assert.Empty(t, arr)
	assert.Equal(t, 0, it.pulls)
}

func TestPullSeq_StopReleasesSequence(t *testing.T) {
	t.Parallel()

	finished := false
	it := build.PullSeq(func(yield func(int) bool) {
		defer func() { finished = true }()
		for i := 0; ; i++ {
			if !yield(i) {
				return
			}
		}
	})

	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 0, v)

	it.Stop()
	assert.True(t, finished)
}
