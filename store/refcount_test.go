package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferenceCountingScenarioB(t *testing.T) {
	var released int
	rc := NewAtomicRefCounted(true, func() error {
		released++
		return nil
	})
	ownerA := NewReferenceOwner("A")
	ownerB := NewReferenceOwner("B")

	require.EqualValues(t, 1, rc.RefCount())

	require.NoError(t, rc.Reserve(ownerA))
	require.EqualValues(t, 2, rc.RefCount())

	require.NoError(t, rc.Reserve(ownerB))
	require.EqualValues(t, 3, rc.RefCount())

	require.NoError(t, rc.Release(ownerA))
	require.EqualValues(t, 2, rc.RefCount())

	require.NoError(t, rc.Release(ownerB))
	require.EqualValues(t, 1, rc.RefCount())

	require.NoError(t, rc.ReleaseLast())
	require.EqualValues(t, 0, rc.RefCount())
	require.Equal(t, 1, released)
}

func TestDoubleReleaseFails(t *testing.T) {
	rc := NewAtomicRefCounted(true, nil)
	owner := NewReferenceOwner("x")
	require.NoError(t, rc.Reserve(owner))
	require.NoError(t, rc.Release(owner))
	err := rc.Release(owner)
	require.ErrorIs(t, err, ErrUnknownOwner)
}

func TestReleaseByUnknownOwnerFails(t *testing.T) {
	rc := NewAtomicRefCounted(true, nil)
	err := rc.Release(NewReferenceOwner("ghost"))
	require.ErrorIs(t, err, ErrUnknownOwner)
}

func TestReleaseLastFailsIfOthersOutstanding(t *testing.T) {
	rc := NewAtomicRefCounted(false, nil)
	owner := NewReferenceOwner("x")
	require.NoError(t, rc.Reserve(owner))
	err := rc.ReleaseLast()
	require.ErrorIs(t, err, ErrNotLastHolder)
}

func TestClosedStoreFailsOperations(t *testing.T) {
	var released int
	rc := NewAtomicRefCounted(false, func() error { released++; return nil })
	require.NoError(t, rc.ReleaseLast())
	require.Equal(t, 1, released)
	err := rc.Release(NewReferenceOwner("late"))
	require.ErrorIs(t, err, ErrClosed)
}

func TestPerformReleaseRunsExactlyOnceConcurrently(t *testing.T) {
	var released int
	rc := NewAtomicRefCounted(false, func() error { released++; return nil })
	owners := make([]ReferenceOwner, 32)
	for i := range owners {
		owners[i] = NewReferenceOwner("c")
		require.NoError(t, rc.Reserve(owners[i]))
	}
	done := make(chan struct{})
	for i := range owners {
		go func(o ReferenceOwner) {
			rc.Release(o)
			done <- struct{}{}
		}(owners[i])
	}
	for range owners {
		<-done
	}
	require.NoError(t, rc.ReleaseLast())
	require.Equal(t, 1, released)
}
