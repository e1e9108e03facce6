package canopy

// Timeline is a shared millisecond clock. Running animations register with
// it and are stepped by Advance.
type Timeline struct {
	current float64
	rate    float64
	paused  bool
	active  []*Animation
}

// NewTimeline returns a timeline at time zero running at normal speed.
func NewTimeline() *Timeline {
	return &Timeline{rate: 1}
}

// CurrentTime returns the clock in milliseconds.
func (tl *Timeline) CurrentTime() float64 {
	return tl.current
}

// PlaybackRate returns the clock speed multiplier.
func (tl *Timeline) PlaybackRate() float64 {
	return tl.rate
}

// SetPlaybackRate changes the clock speed multiplier.
func (tl *Timeline) SetPlaybackRate(rate float64) {
	tl.rate = rate
}

// Pause stops the clock.
func (tl *Timeline) Pause() {
	tl.paused = true
}

// Resume restarts a paused clock.
func (tl *Timeline) Resume() {
	tl.paused = false
}

// Paused reports whether the clock is stopped.
func (tl *Timeline) Paused() bool {
	return tl.paused
}

// Advance moves the clock forward by dt milliseconds scaled by the
// playback rate and steps every running animation. Animation completion
// callbacks run before Advance returns.
func (tl *Timeline) Advance(dt float64) {
	if tl.paused {
		return
	}
	tl.current += dt * tl.rate
	tl.step()
}

// Len returns the number of running animations.
func (tl *Timeline) Len() int {
	return len(tl.active)
}

func (tl *Timeline) step() {
	if len(tl.active) == 0 {
		return
	}
	snapshot := append([]*Animation(nil), tl.active...)
	for _, a := range snapshot {
		if a.state == AnimationRunning && a.timeline == tl {
			a.tick(tl.current)
		}
	}
}

func (tl *Timeline) add(a *Animation) {
	tl.active = append(tl.active, a)
}

func (tl *Timeline) remove(a *Animation) {
	for i, o := range tl.active {
		if o == a {
			tl.active = append(tl.active[:i], tl.active[i+1:]...)
			return
		}
	}
}
