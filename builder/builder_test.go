package builder_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/sghaida/brownstone/builder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// New / queries
func TestNew_Queries(t *testing.T) {
	t.Parallel()

	b := builder.New[int](4)
	require.NotNil(t, b)
	assert.True(t, b.IsEmpty())
	assert.False(t, b.IsFull())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 4, b.Cap())
}

func TestNew_ZeroLengthIsFullImmediately(t *testing.T) {
	t.Parallel()

	b := builder.New[int](0)
	assert.True(t, b.IsFull())

	arr := b.Finish()
	require.NotNil(t, arr)
	assert.Empty(t, arr)
}

// TryPush / Push
func TestTryPush_ReportsFullOnLastElement(t *testing.T) {
	t.Parallel()

	b := builder.New[string](3)

	res, err := b.TryPush("a")
	require.NoError(t, err)
	assert.Equal(t, builder.NotFull, res)

	res, err = b.TryPush("b")
	require.NoError(t, err)
	assert.Equal(t, builder.NotFull, res)

	res, err = b.TryPush("c")
	require.NoError(t, err)
	assert.Equal(t, builder.Full, res)

	assert.Equal(t, []string{"a", "b", "c"}, b.Finish())
}

func TestTryPush_OverflowReturnsExactValue(t *testing.T) {
	t.Parallel()

	type payload struct{ items []int }

	b := builder.New[*payload](1)
	_, err := b.TryPush(&payload{items: []int{1}})
	require.NoError(t, err)

	rejected := &payload{items: []int{2, 3}}
	_, err = b.TryPush(rejected)
	require.Error(t, err)
	assert.True(t, errors.Is(err, builder.ErrOverflow))

	var ov builder.OverflowError[*payload]
	require.True(t, errors.As(err, &ov))
	assert.Same(t, rejected, ov.Value)

	// The builder is unaffected by the rejected push.
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []int{1}, b.FinishedSlice()[0].items)
}

func TestPush_PanicsOnOverflow(t *testing.T) {
	t.Parallel()

	b := builder.New[int](1)
	assert.Equal(t, builder.Full, b.Push(1))

	assert.PanicsWithError(t, "builder: push overflow", func() {
		b.Push(2)
	})
}

func TestPush_PanicsWithTryPushError(t *testing.T) {
	t.Parallel()

	tryB := builder.New[string](0)
	_, tryErr := tryB.TryPush("x")
	require.Error(t, tryErr)

	b := builder.New[string](0)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.Equal(t, tryErr, err)

		var ov builder.OverflowError[string]
		require.True(t, errors.As(err, &ov))
		assert.Equal(t, "x", ov.Value)
	}()
	b.Push("x")
}

func TestPushUnchecked_MatchesPush(t *testing.T) {
	t.Parallel()

	b := builder.New[int](2)
	assert.Equal(t, builder.NotFull, b.PushUnchecked(1))
	assert.Equal(t, builder.Full, b.PushUnchecked(2))
	assert.Equal(t, []int{1, 2}, b.FinishUnchecked())
}

// TryFinish / Finish
func TestTryFinish_IncompleteKeepsBuilder(t *testing.T) {
	t.Parallel()

	b := builder.New[int](2)
	b.Push(1)

	arr, ok := b.TryFinish()
	assert.False(t, ok)
	assert.Nil(t, arr)

	// Still usable.
	assert.Equal(t, builder.Full, b.Push(2))
	arr, ok = b.TryFinish()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, arr)
}

func TestFinish_PanicsWhenIncomplete(t *testing.T) {
	t.Parallel()

	b := builder.New[int](3)
	b.Push(1)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, builder.ErrIncomplete))
		assert.Contains(t, err.Error(), "1 / 3")
	}()
	b.Finish()
}

// FinishedSlice
func TestFinishedSlice_ShowsPrefixOnly(t *testing.T) {
	t.Parallel()

	b := builder.New[int](5)
	b.Push(3)
	b.Push(4)

	s := b.FinishedSlice()
	assert.Equal(t, []int{3, 4}, s)
	assert.Equal(t, 2, cap(s))

	s[1] = 40
	assert.Equal(t, []int{3, 40}, b.FinishedSlice())
}

// Extend / TryExtend
func TestExtend_FillsFromSeq(t *testing.T) {
	t.Parallel()

	b := builder.New[int](3)
	b.Extend(slices.Values([]int{1, 2}))
	b.Extend(slices.Values([]int{3}))

	assert.True(t, b.IsFull())
	assert.Equal(t, []int{1, 2, 3}, b.Finish())
}

func TestExtend_PanicsOnOverflow(t *testing.T) {
	t.Parallel()

	b := builder.New[int](2)
	assert.Panics(t, func() {
		b.Extend(slices.Values([]int{1, 2, 3}))
	})
	assert.Equal(t, []int{1, 2}, b.FinishedSlice())
}

func TestTryExtend_StopsAtOverflow(t *testing.T) {
	t.Parallel()

	pulled := 0
	seq := func(yield func(int) bool) {
		for i := 1; i <= 10; i++ {
			pulled++
			if !yield(i) {
				return
			}
		}
	}

	b := builder.New[int](3)
	err := b.TryExtend(seq)
	require.Error(t, err)

	var ov builder.OverflowError[int]
	require.True(t, errors.As(err, &ov))
	assert.Equal(t, 4, ov.Value)
	assert.Equal(t, 4, pulled)
	assert.Equal(t, []int{1, 2, 3}, b.Finish())
}

func TestTryExtend_ShortSeqIsNotAnError(t *testing.T) {
	t.Parallel()

	b := builder.New[int](3)
	require.NoError(t, b.TryExtend(slices.Values([]int{1})))
	assert.Equal(t, 1, b.Len())
}

// Discard / Clone / String
func TestDiscard_RejectsFurtherPushes(t *testing.T) {
	t.Parallel()

	b := builder.New[int](3)
	b.Push(1)
	b.Discard()

	assert.Equal(t, 0, b.Len())
	_, err := b.TryPush(2)
	assert.ErrorIs(t, err, builder.ErrOverflow)
	_, ok := b.TryFinish()
	assert.False(t, ok)
}

func TestClone_ProgressesIndependently(t *testing.T) {
	t.Parallel()

	b := builder.New[int](2)
	b.Push(1)

	c := b.Clone()
	c.Push(2)
	b.Push(3)

	assert.Equal(t, []int{1, 3}, b.Finish())
	assert.Equal(t, []int{1, 2}, c.Finish())
}

func TestString_ShowsProgress(t *testing.T) {
	t.Parallel()

	b := builder.New[int](4)
	b.Push(1)
	b.Push(2)

	assert.Equal(t, "Builder{array: [1 2], progress: 2 / 4}", b.String())
}

func TestPushResult_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   builder.PushResult
		want string
	}{
		{in: builder.NotFull, want: "NotFull"},
		{in: builder.Full, want: "Full"},
		{in: builder.PushResult(9), want: "PushResult(9)"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.want, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.in.String())
		})
	}
}
