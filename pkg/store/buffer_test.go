package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer("test", Options{})

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())
	assert.Equal(t, DefaultCeiling, b.Ceiling())
	assert.Empty(t, b.Bytes())
}

func TestBuffer_ExactGrowth(t *testing.T) {
	b := NewBuffer("test", Options{Growth: GrowExact})

	window, err := b.Extend(4)
	require.NoError(t, err)
	copy(window, "Ada\x00")
	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 4, b.Cap())

	window, err = b.Extend(4)
	require.NoError(t, err)
	copy(window, "Lin\x00")

	// Zero slack after every append
	assert.Equal(t, 8, b.Len())
	assert.Equal(t, 8, b.Cap())
	assert.Equal(t, []byte("Ada\x00Lin\x00"), b.Bytes())
}

func TestBuffer_DoublingGrowth(t *testing.T) {
	b := NewBuffer("test", Options{Growth: GrowDoubling, Ceiling: 64})

	for i := 0; i < 5; i++ {
		window, err := b.Extend(4)
		require.NoError(t, err)
		copy(window, []byte{byte(i), byte(i), byte(i), byte(i)})
	}

	assert.Equal(t, 20, b.Len())
	assert.Equal(t, 32, b.Cap())
	assert.Equal(t, byte(4), b.Bytes()[19])

	// Capacity is clamped to the ceiling
	_, err := b.Extend(40)
	require.NoError(t, err)
	assert.Equal(t, 60, b.Len())
	assert.Equal(t, 64, b.Cap())
}

func TestBuffer_ReservePreservesContents(t *testing.T) {
	b := NewBuffer("test", Options{})
	window, err := b.Extend(3)
	require.NoError(t, err)
	copy(window, "abc")

	require.NoError(t, b.Reserve(10))
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, 10, b.Cap())
	assert.Equal(t, []byte("abc"), b.Bytes())
}

func TestBuffer_CeilingExceeded(t *testing.T) {
	b := NewBuffer("test", Options{Ceiling: 8})

	_, err := b.Extend(8)
	require.NoError(t, err, "a request equal to the ceiling is allowed")

	_, err = b.Extend(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceLimitExceeded))
	assert.Equal(t, KindResourceLimit, KindOf(err))

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 9, se.Size)
	assert.Equal(t, 8, se.Ceiling)

	// The whole arena is released
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())
}

func TestBuffer_AllocationFailure(t *testing.T) {
	calls := 0
	alloc := AllocatorFunc(func(n int) ([]byte, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("out of memory")
		}
		return make([]byte, n), nil
	})
	b := NewBuffer("test", Options{Allocator: alloc})

	_, err := b.Extend(4)
	require.NoError(t, err)

	_, err = b.Extend(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllocationFailure))
	assert.False(t, errors.Is(err, ErrResourceLimitExceeded))
	assert.Contains(t, err.Error(), "out of memory")
	assert.Equal(t, 0, b.Len())
}

func TestBuffer_ShortAllocation(t *testing.T) {
	alloc := AllocatorFunc(func(n int) ([]byte, error) {
		return make([]byte, n/2), nil
	})
	b := NewBuffer("test", Options{Allocator: alloc})

	_, err := b.Extend(8)
	assert.True(t, errors.Is(err, ErrAllocationFailure))
	assert.Equal(t, 0, b.Len())
}

func TestBuffer_NegativeReserveReleases(t *testing.T) {
	b := NewBuffer("test", Options{})
	window, err := b.Extend(6)
	require.NoError(t, err)
	copy(window, "hello\x00")

	err = b.Reserve(-1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllocationFailure))
	assert.Contains(t, err.Error(), "negative size")
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())
	assert.Empty(t, b.Bytes())
}

func TestHeapAllocator_RecoversPanic(t *testing.T) {
	buf, err := HeapAllocator{}.Alloc(-1)
	assert.Error(t, err)
	assert.Nil(t, buf)

	buf, err = HeapAllocator{}.Alloc(16)
	require.NoError(t, err)
	assert.Len(t, buf, 16)
}

func TestBuffer_Remove(t *testing.T) {
	b := NewBuffer("test", Options{})
	window, err := b.Extend(12)
	require.NoError(t, err)
	copy(window, "Ada\x00Lin\x00Bob\x00")

	b.Remove(4, 4)
	assert.Equal(t, []byte("Ada\x00Bob\x00"), b.Bytes())
	assert.Equal(t, 8, b.Len())

	// Out of range removals are ignored
	b.Remove(6, 10)
	b.Remove(-1, 2)
	b.Remove(0, 0)
	assert.Equal(t, []byte("Ada\x00Bob\x00"), b.Bytes())

	// Growth after a removal keeps the surviving bytes
	window, err = b.Extend(4)
	require.NoError(t, err)
	copy(window, "Eve\x00")
	assert.Equal(t, []byte("Ada\x00Bob\x00Eve\x00"), b.Bytes())
}

func TestBuffer_Release(t *testing.T) {
	b := NewBuffer("test", Options{})
	_, err := b.Extend(16)
	require.NoError(t, err)

	b.Release()
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cap())

	b.Release()
	assert.Equal(t, 0, b.Len())
}

func TestParseGrowthPolicy(t *testing.T) {
	p, err := ParseGrowthPolicy("")
	require.NoError(t, err)
	assert.Equal(t, GrowExact, p)

	p, err = ParseGrowthPolicy("doubling")
	require.NoError(t, err)
	assert.Equal(t, GrowDoubling, p)
	assert.Equal(t, "doubling", p.String())

	_, err = ParseGrowthPolicy("tripling")
	assert.Error(t, err)
}
