package preview

// TransformObserver is notified after every committed change.
type TransformObserver func(t Transform, action Action)

// Store holds the committed transform of one open preview.
//
// Update calls made before the scheduled frame runs are queued and merged in
// call order, so a burst of updates produces a single commit and a single
// notification. Store does not validate values; bounds belong to Zoomer.
// Store is not safe for concurrent use; it lives on the event loop.
type Store struct {
	scheduler Scheduler
	current   Transform

	queue      []Patch
	lastAction Action
	cancel     func()

	observers []storeObserver
	nextObs   int
}

type storeObserver struct {
	id int
	fn TransformObserver
}

// NewStore creates a Store at the identity transform.
func NewStore(scheduler Scheduler) *Store {
	return &Store{
		scheduler: scheduler,
		current:   Identity(),
	}
}

// Transform returns the committed transform.
func (s *Store) Transform() Transform {
	return s.current
}

// Latest returns the committed transform with the queued updates applied,
// i.e. what the next frame will commit.
func (s *Store) Latest() Transform {
	t := s.current
	for _, p := range s.queue {
		t = p.Apply(t)
	}
	return t
}

// Pending reports whether queued updates are waiting for a frame.
func (s *Store) Pending() bool {
	return s.cancel != nil
}

// Subscribe registers an observer and returns a func removing it.
// Observers are notified in subscription order.
func (s *Store) Subscribe(fn TransformObserver) func() {
	id := s.nextObs
	s.nextObs++
	s.observers = append(s.observers, storeObserver{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Update queues a partial update for the next frame.
func (s *Store) Update(p Patch, action Action) {
	if s.cancel == nil {
		s.queue = s.queue[:0]
		s.cancel = s.scheduler.Schedule(s.flush)
	}
	s.queue = append(s.queue, p)
	s.lastAction = action
}

// Reset commits the identity transform immediately and drops any queued
// updates. Observers are notified only if the transform actually changed.
func (s *Store) Reset(action Action) {
	s.dropPending()

	prev := s.current
	s.current = Identity()
	if prev != s.current {
		s.notify(s.current, action)
	}
}

// Close cancels any pending frame. The committed transform is kept.
func (s *Store) Close() {
	s.dropPending()
}

func (s *Store) dropPending() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.queue = s.queue[:0]
}

func (s *Store) flush() {
	s.cancel = nil

	merged := Patch{}
	for _, p := range s.queue {
		merged = merged.Merge(p)
	}
	s.queue = s.queue[:0]

	s.current = merged.Apply(s.current)
	s.notify(s.current, s.lastAction)
}

func (s *Store) notify(t Transform, action Action) {
	for _, o := range s.observers {
		o.fn(t, action)
	}
}
