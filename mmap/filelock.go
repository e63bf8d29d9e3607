package mmap

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// LockScope stands in for the "thread" a reentrant file lock is scoped
// to. Go goroutines carry no stable OS-thread identity short of
// runtime.LockOSThread, so callers that want reentrant acquisition
// construct one LockScope per logical thread of control and pass the
// same value on every nested Lock/TryLock/Unlock call; a different
// LockScope value is treated as a different holder even within the same
// goroutine.
type LockScope struct {
	id uint64
}

var lockScopeSeq uint64

// NewLockScope returns a fresh, unique lock scope.
func NewLockScope() LockScope {
	return LockScope{id: atomic.AddUint64(&lockScopeSeq, 1)}
}

// FileLock is a reentrant, scope-aware advisory lock over an entire open
// file. A LockScope may acquire it any number of times without
// blocking itself; the underlying OS lock is released only when the
// holding scope's acquisition count returns to zero, at which point a
// waiting scope (if any) is woken to attempt acquisition in turn.
type FileLock struct {
	fd   int
	mu   sync.Mutex
	cond *sync.Cond

	holder  LockScope
	held    bool
	depth   int
}

// NewFileLock wraps fd, an open file descriptor, with reentrant locking.
// The caller retains ownership of fd; closing the file implicitly
// releases any OS-level lock still held.
func NewFileLock(fd int) *FileLock {
	fl := &FileLock{fd: fd}
	fl.cond = sync.NewCond(&fl.mu)
	return fl
}

// Lock blocks until scope holds the lock, nesting if scope already does.
func (fl *FileLock) Lock(scope LockScope) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	for fl.held && fl.holder != scope {
		fl.cond.Wait()
	}
	if !fl.held {
		if err := unix.Flock(fl.fd, unix.LOCK_EX); err != nil {
			return err
		}
		fl.held = true
		fl.holder = scope
	}
	fl.depth++
	return nil
}

// TryLock attempts to acquire the lock for scope without blocking. It
// returns false, nil if another scope currently holds it.
func (fl *FileLock) TryLock(scope LockScope) (bool, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.held && fl.holder != scope {
		return false, nil
	}
	if !fl.held {
		err := unix.Flock(fl.fd, unix.LOCK_EX|unix.LOCK_NB)
		if err == unix.EWOULDBLOCK {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		fl.held = true
		fl.holder = scope
	}
	fl.depth++
	return true, nil
}

// Unlock releases one level of scope's nested acquisition. When the
// count reaches zero the OS-level lock is released and a waiting scope
// is woken.
func (fl *FileLock) Unlock(scope LockScope) error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if !fl.held || fl.holder != scope {
		return ErrNotLockHolder
	}
	fl.depth--
	if fl.depth == 0 {
		if err := unix.Flock(fl.fd, unix.LOCK_UN); err != nil {
			return err
		}
		fl.held = false
		fl.cond.Broadcast()
	}
	return nil
}

// IsHeld reports whether any scope currently holds the lock.
func (fl *FileLock) IsHeld() bool {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.held
}
