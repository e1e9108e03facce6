package canopy

import (
	"math"
	"testing"

	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

// Animation progress goes through float32 tweens.
const tweenEpsilon = 1e-4

func radius(n *Node) float64 {
	return n.floatAttr("borderRadius")
}

func assertRadius(t *testing.T, n *Node, want float64) {
	t.Helper()
	if got := radius(n); math.Abs(got-want) > tweenEpsilon {
		t.Errorf("borderRadius = %v, want %v", got, want)
	}
}

func attachedSprite() (*Layer, *Node) {
	l := NewLayer(nil)
	n := sprite(map[string]any{"size": Size{10, 10}})
	l.AppendChild(n)
	return l, n
}

func TestAnimateLinearToCompletion(t *testing.T) {
	l, n := attachedSprite()
	a := n.Animate([]Keyframe{{"borderRadius": 0}, {"borderRadius": 10}}, Timing{Duration: 100})

	if a.State() != AnimationRunning {
		t.Fatalf("State = %v, want running", a.State())
	}
	if a.Timeline() != l.Timeline() {
		t.Error("animation not bound to the layer timeline")
	}

	l.Tick(50)
	assertRadius(t, n, 5)
	if !l.NeedsRender() {
		t.Error("animated change did not request a repaint")
	}

	done := 0
	a.Finished().Subscribe(func() { done++ })
	l.Tick(50)
	assertRadius(t, n, 10)
	if a.State() != AnimationFinished {
		t.Errorf("State = %v, want finished", a.State())
	}
	if done != 1 {
		t.Errorf("finished callbacks = %d, want 1", done)
	}
	if len(n.Animations()) != 0 {
		t.Errorf("Animations = %d, want 0 after finishing", len(n.Animations()))
	}
	if l.Timeline().Len() != 0 {
		t.Errorf("timeline Len = %d, want 0", l.Timeline().Len())
	}
}

func TestAnimatePendingUntilAttached(t *testing.T) {
	n := sprite(map[string]any{"size": Size{10, 10}})
	a := n.Animate([]Keyframe{{"borderRadius": 10}}, Timing{Duration: 100})
	if a.State() != AnimationIdle || a.Timeline() != nil {
		t.Fatalf("State = %v, Timeline = %v, want idle and unbound", a.State(), a.Timeline())
	}

	l := NewLayer(nil)
	l.Tick(1000)
	g := NewGroup(Options{})
	g.AppendChild(n)
	if a.State() != AnimationIdle {
		t.Fatal("animation started under a detached group")
	}
	l.AppendChild(g)
	if a.State() != AnimationRunning {
		t.Fatalf("State = %v, want running once attached", a.State())
	}
	if a.Timeline() != l.Timeline() {
		t.Error("animation not bound to the layer timeline")
	}

	l.Tick(50)
	assertRadius(t, n, 5)
}

func TestAnimateCancelledOnDisconnect(t *testing.T) {
	l, n := attachedSprite()
	a := n.Animate([]Keyframe{{"borderRadius": 0}, {"borderRadius": 10}}, Timing{Duration: 100})
	fired := false
	a.Finished().Subscribe(func() { fired = true })

	l.Tick(50)
	l.RemoveChild(n)

	if a.State() != AnimationCancelled {
		t.Errorf("State = %v, want cancelled", a.State())
	}
	if !a.Finished().Cancelled() {
		t.Error("finished signal not cancelled")
	}
	if len(n.Animations()) != 0 {
		t.Errorf("Animations = %d, want 0", len(n.Animations()))
	}

	l.Tick(100)
	if fired {
		t.Error("completion ran after cancellation")
	}
	assertRadius(t, n, 5)

	l.AppendChild(n)
	if a.State() != AnimationCancelled {
		t.Error("cancelled animation restarted on reattach")
	}
}

func TestAnimationCancelIdempotent(t *testing.T) {
	_, n := attachedSprite()
	a := n.Animate([]Keyframe{{"borderRadius": 10}}, Timing{Duration: 100})
	a.Cancel()
	a.Cancel()
	if a.State() != AnimationCancelled {
		t.Errorf("State = %v", a.State())
	}

	idle, err := NewAnimation(n, []Keyframe{{"borderRadius": 10}}, Timing{Duration: 100})
	if err != nil {
		t.Fatal(err)
	}
	idle.Cancel()
	if idle.State() != AnimationCancelled {
		t.Errorf("State = %v, want cancelled before play", idle.State())
	}
}

func TestAnimationDelay(t *testing.T) {
	l, n := attachedSprite()
	n.Animate([]Keyframe{{"borderRadius": 0}, {"borderRadius": 10}}, Timing{Duration: 100, Delay: 50})
	l.Tick(25)
	assertRadius(t, n, 0)
	l.Tick(75)
	assertRadius(t, n, 5)
}

func TestAnimationFillNone(t *testing.T) {
	l, n := attachedSprite()
	n.SetAttr("borderRadius", 3)
	a := n.Animate([]Keyframe{{"borderRadius": 10}}, Timing{Duration: 100, Fill: FillNone})
	l.Tick(50)
	assertRadius(t, n, 6.5)
	l.Tick(60)
	assertRadius(t, n, 3)
	if a.State() != AnimationFinished {
		t.Errorf("State = %v", a.State())
	}
}

func TestAnimationIterations(t *testing.T) {
	l, n := attachedSprite()
	a := n.Animate([]Keyframe{{"borderRadius": 0}, {"borderRadius": 10}}, Timing{Duration: 100, Iterations: 2})
	l.Tick(150)
	assertRadius(t, n, 5)
	if a.State() != AnimationRunning {
		t.Errorf("State = %v, want running in the second iteration", a.State())
	}
	l.Tick(50)
	if a.State() != AnimationFinished {
		t.Errorf("State = %v, want finished", a.State())
	}
}

func TestAnimationEvenOffsets(t *testing.T) {
	l, n := attachedSprite()
	n.Animate([]Keyframe{
		{"borderRadius": 0},
		{"borderRadius": 10},
		{"borderRadius": 0},
	}, Timing{Duration: 100})
	l.Tick(25)
	assertRadius(t, n, 5)
	l.Tick(25)
	assertRadius(t, n, 10)
	l.Tick(25)
	assertRadius(t, n, 5)
}

func TestAnimationExplicitOffset(t *testing.T) {
	l, n := attachedSprite()
	n.Animate([]Keyframe{
		{"borderRadius": 0},
		{"borderRadius": 10, "offset": 0.25},
		{"borderRadius": 20},
	}, Timing{Duration: 100})
	l.Tick(25)
	assertRadius(t, n, 10)
	l.Tick(50)
	assertRadius(t, n, 16.6667)
}

func TestAnimationEasing(t *testing.T) {
	l, n := attachedSprite()
	n.Animate([]Keyframe{{"borderRadius": 0}, {"borderRadius": 10}}, Timing{Duration: 100, Easing: "inQuad"})
	l.Tick(50)
	assertRadius(t, n, 2.5)
}

func TestAnimationCompositeValues(t *testing.T) {
	l, n := attachedSprite()
	n.Animate([]Keyframe{
		{"pos": []any{0, 0}, "bgcolor": "black", "size": []any{10, 10}},
		{"pos": []any{100, 50}, "bgcolor": "white", "size": []any{20, 30}},
	}, Timing{Duration: 100})
	l.Tick(50)

	pos := n.vecAttr("pos")
	assertNear(t, "pos.X", pos.X, 50)
	assertNear(t, "pos.Y", pos.Y, 25)
	if got := n.sizeAttr(); got != (Size{15, 20}) {
		t.Errorf("size = %v, want {15 20}", got)
	}
	c := n.colorAttr("bgcolor")
	if math.Abs(c.R-0.5) > tweenEpsilon || c.A != 1 {
		t.Errorf("bgcolor = %v, want mid grey", c)
	}
}

func TestLerpValueSteps(t *testing.T) {
	if got := lerpValue("a", "b", 0.4); got != "a" {
		t.Errorf("lerpValue at 0.4 = %v, want a", got)
	}
	if got := lerpValue("a", "b", 0.5); got != "b" {
		t.Errorf("lerpValue at 0.5 = %v, want b", got)
	}
	auto := Size{Auto, 10}
	if got := lerpValue(Size{10, 10}, auto, 0.2); got != (Size{10, 10}) {
		t.Errorf("lerpValue to auto = %v, want step", got)
	}
	if got := lerpValue(0, 10, 0.26); got != 3 {
		t.Errorf("lerpValue int = %v, want 3", got)
	}
	m := lerpValue(geom.Identity, geom.Translate(10, 0), 0.5).(geom.Matrix)
	assertNear(t, "tx", m[4], 5)
	b := lerpValue(Border{Width: 0, Color: canvas.Black}, Border{Width: 4, Color: canvas.Black}, 0.5).(Border)
	assertNear(t, "border width", b.Width, 2)
}

func TestNewAnimationErrors(t *testing.T) {
	n := sprite(nil)
	if _, err := NewAnimation(n, nil, Timing{Duration: 1}); err == nil {
		t.Error("no keyframes: expected error")
	}
	if _, err := NewAnimation(n, []Keyframe{{"pos": 1}}, Timing{Easing: "wobble"}); err == nil {
		t.Error("unknown easing: expected error")
	}
	if _, err := NewAnimation(n, []Keyframe{{"size": []any{1, 2, 3}}}, Timing{}); err == nil {
		t.Error("bad keyframe value: expected error")
	}

	defer func() {
		if recover() == nil {
			t.Error("Animate with a bad keyframe did not panic")
		}
	}()
	n.Animate([]Keyframe{{"size": "huge"}}, Timing{})
}

func TestPlayWithoutTimelinePanics(t *testing.T) {
	a, err := NewAnimation(sprite(nil), []Keyframe{{"borderRadius": 1}}, Timing{Duration: 1})
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.Play()
}

func TestTimelineControls(t *testing.T) {
	tl := NewTimeline()
	tl.SetPlaybackRate(2)
	tl.Advance(10)
	assertNear(t, "CurrentTime", tl.CurrentTime(), 20)

	tl.Pause()
	tl.Advance(10)
	if !tl.Paused() || tl.CurrentTime() != 20 {
		t.Errorf("paused timeline advanced to %v", tl.CurrentTime())
	}
	tl.Resume()
	tl.Advance(5)
	assertNear(t, "CurrentTime", tl.CurrentTime(), 30)
}

func TestSignal(t *testing.T) {
	s := newSignal()
	calls := 0
	sub := s.Subscribe(func() { calls++ })
	other := s.Subscribe(func() { calls += 10 })
	other.Cancel()
	other.Cancel()

	s.fire()
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done not closed after fire")
	}

	s.Subscribe(func() { calls += 100 })
	if calls != 101 {
		t.Errorf("late subscriber not called immediately, calls = %d", calls)
	}
	sub.Cancel()

	c := newSignal()
	c.Subscribe(func() { t.Error("cancelled signal called a subscriber") })
	c.cancel()
	c.fire()
	if !c.Cancelled() || c.Fired() {
		t.Errorf("Cancelled = %v, Fired = %v", c.Cancelled(), c.Fired())
	}
}

func TestAddAnimation(t *testing.T) {
	n := sprite(map[string]any{"size": Size{10, 10}})
	a, err := NewAnimation(n, []Keyframe{{"borderRadius": 0}, {"borderRadius": 10}}, Timing{Duration: 100})
	if err != nil {
		t.Fatal(err)
	}
	n.AddAnimation(a)
	if a.State() != AnimationIdle {
		t.Errorf("State = %v off-layer, want idle", a.State())
	}
	l := NewLayer(nil)
	l.AppendChild(n)
	l.Tick(100)
	assertRadius(t, n, 10)
}

func TestAddAnimationPanics(t *testing.T) {
	_, n := attachedSprite()
	other := sprite(nil)
	foreign, _ := NewAnimation(other, []Keyframe{{"borderRadius": 1}}, Timing{Duration: 10})
	running := n.Animate([]Keyframe{{"borderRadius": 1}}, Timing{Duration: 10})

	for name, a := range map[string]*Animation{"foreign": foreign, "running": running} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			n.AddAnimation(a)
		})
	}
}

func TestCancelledAnimationsArePruned(t *testing.T) {
	_, n := attachedSprite()
	a := n.Animate([]Keyframe{{"borderRadius": 0}, {"borderRadius": 10}}, Timing{Duration: 100})
	a.Cancel()
	if len(n.Animations()) != 0 {
		t.Errorf("Animations = %d after Cancel, want 0", len(n.Animations()))
	}
}
