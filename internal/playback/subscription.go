package playback

import "sync"

// Subscription delivers snapshots to one subscriber.
//
// Updates has capacity one and always holds the most recent snapshot:
// a slow reader skips intermediate states but never sees a stale one.
type Subscription struct {
	Updates <-chan Snapshot
	Done    <-chan struct{}

	// Internal write channels
	updatesCh chan Snapshot
	doneCh    chan struct{}

	owner     *Synchronizer
	counted   bool
	closeOnce sync.Once
	unsubOnce sync.Once
}

// newSubscription creates a subscription owned by s.
func newSubscription(s *Synchronizer, counted bool) *Subscription {
	sub := &Subscription{
		updatesCh: make(chan Snapshot, 1),
		doneCh:    make(chan struct{}),
		owner:     s,
		counted:   counted,
	}
	sub.Updates = sub.updatesCh
	sub.Done = sub.doneCh
	return sub
}

// Unsubscribe detaches the subscriber. Safe to call more than once.
func (sub *Subscription) Unsubscribe() {
	sub.unsubOnce.Do(func() {
		if sub.owner != nil {
			sub.owner.unsubscribe(sub)
		}
	})
}

// close signals the subscriber to stop by closing doneCh.
func (sub *Subscription) close() {
	sub.closeOnce.Do(func() { close(sub.doneCh) })
}

// send replaces any pending snapshot with snap (non-blocking).
// Callers serialize sends.
func (sub *Subscription) send(snap Snapshot) {
	for {
		select {
		case sub.updatesCh <- snap:
			return
		default:
		}
		// Drop the stale snapshot
		select {
		case <-sub.updatesCh:
		default:
		}
	}
}
