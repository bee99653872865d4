//go:build !windows

// pkg/sigqueue/queue.go
package sigqueue

import "syscall"

// pendingQueue is a fixed-capacity FIFO of signal numbers with the invariant
// that no signal appears more than once. Capacity equals the managed-set
// size, since at most one entry per signal can ever be pending. A bitset
// tracks membership so dedup checks never scan. ("[If] multiple instances
// of a standard signal are delivered while that signal is currently
// blocked, then only one instance is queued.") - signal(7)
//
// pendingQueue does no allocation after construction and is not
// goroutine-safe; callers hold the session lock.
type pendingQueue struct {
	slots   []syscall.Signal
	head    int
	count   int
	members uint64
}

func newPendingQueue(capacity int) *pendingQueue {
	return &pendingQueue{slots: make([]syscall.Signal, capacity)}
}

func sigBit(sig syscall.Signal) uint64 {
	return uint64(1) << uint(sig)
}

// push appends sig unless it is already queued. Returns whether an entry
// was added.
func (q *pendingQueue) push(sig syscall.Signal) bool {
	if q.members&sigBit(sig) != 0 {
		return false
	}
	if q.count == len(q.slots) {
		// Unreachable while capacity equals the managed-set size.
		return false
	}
	q.slots[(q.head+q.count)%len(q.slots)] = sig
	q.count++
	q.members |= sigBit(sig)
	return true
}

// pop removes and returns the oldest entry.
func (q *pendingQueue) pop() (syscall.Signal, bool) {
	if q.count == 0 {
		return 0, false
	}
	sig := q.slots[q.head]
	q.head = (q.head + 1) % len(q.slots)
	q.count--
	q.members &^= sigBit(sig)
	return sig, true
}

// remove evicts sig from the queue, preserving the order of the remaining
// entries. Returns whether sig was queued.
func (q *pendingQueue) remove(sig syscall.Signal) bool {
	if q.members&sigBit(sig) == 0 {
		return false
	}
	kept := 0
	for i := 0; i < q.count; i++ {
		s := q.slots[(q.head+i)%len(q.slots)]
		if s == sig {
			continue
		}
		q.slots[(q.head+kept)%len(q.slots)] = s
		kept++
	}
	q.count = kept
	q.members &^= sigBit(sig)
	return true
}

// drain removes and returns all entries in FIFO order.
func (q *pendingQueue) drain() []syscall.Signal {
	out := make([]syscall.Signal, 0, q.count)
	for {
		sig, ok := q.pop()
		if !ok {
			return out
		}
		out = append(out, sig)
	}
}

func (q *pendingQueue) empty() bool {
	return q.count == 0
}
