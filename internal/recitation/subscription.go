package recitation

const snapshotBufferSize = 16

// Subscription delivers state snapshots to one subscriber.
type Subscription struct {
	Snapshots <-chan Snapshot
	Done      <-chan struct{}

	// Internal write channels
	snapshotCh chan Snapshot
	doneCh     chan struct{}
}

// newSubscription creates a subscription with a buffered snapshot channel.
func newSubscription() *Subscription {
	s := &Subscription{
		snapshotCh: make(chan Snapshot, snapshotBufferSize),
		doneCh:     make(chan struct{}),
	}
	s.Snapshots = s.snapshotCh
	s.Done = s.doneCh
	return s
}

// close signals the subscriber to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers a snapshot (non-blocking).
// A slow subscriber drops intermediate snapshots; each snapshot is complete,
// so the latest delivered one is always a valid render state.
func (s *Subscription) send(snap Snapshot) {
	select {
	case s.snapshotCh <- snap:
	default:
	}
}
