package canopy

// Signal is a one-shot completion notice. Subscribers run synchronously
// when the signal fires; a cancelled signal never runs them.
type Signal struct {
	fired     bool
	cancelled bool
	subs      []*Subscription
	done      chan struct{}
}

// Subscription is a cancellable registration on a Signal.
type Subscription struct {
	sig *Signal
	fn  func()
}

func newSignal() *Signal {
	return &Signal{done: make(chan struct{})}
}

// Subscribe registers fn to run when s fires. If s has already fired, fn
// runs immediately.
func (s *Signal) Subscribe(fn func()) *Subscription {
	sub := &Subscription{sig: s, fn: fn}
	switch {
	case s.fired:
		fn()
	case !s.cancelled:
		s.subs = append(s.subs, sub)
	}
	return sub
}

// Cancel revokes the subscription. Safe to call more than once.
func (sub *Subscription) Cancel() {
	s := sub.sig
	if s == nil {
		return
	}
	sub.sig = nil
	for i, o := range s.subs {
		if o == sub {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// Done returns a channel closed once s fires or is cancelled.
func (s *Signal) Done() <-chan struct{} {
	return s.done
}

// Fired reports whether s fired.
func (s *Signal) Fired() bool {
	return s.fired
}

// Cancelled reports whether s was cancelled before firing.
func (s *Signal) Cancelled() bool {
	return s.cancelled
}

func (s *Signal) fire() {
	if s.fired || s.cancelled {
		return
	}
	s.fired = true
	subs := s.subs
	s.subs = nil
	close(s.done)
	for _, sub := range subs {
		if sub.sig != nil {
			sub.sig = nil
			sub.fn()
		}
	}
}

func (s *Signal) cancel() {
	if s.fired || s.cancelled {
		return
	}
	s.cancelled = true
	s.subs = nil
	close(s.done)
}
