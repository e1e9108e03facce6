package canopy

import (
	"fmt"
	"math"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

// Keyframe maps attribute names to values. The optional "offset" key, a
// number in [0, 1], places the frame within one iteration; frames without
// one are spaced evenly.
type Keyframe map[string]any

// Fill modes.
const (
	FillNone     = "none"     // restore the starting values when finished
	FillForwards = "forwards" // keep the last frame when finished
)

// Timing controls an animation's playback. Times are in milliseconds.
type Timing struct {
	Duration float64
	Delay    float64
	// Iterations is the number of repeats; 0 means 1. Use math.Inf(1) to
	// repeat forever.
	Iterations float64
	// Easing names an easing function, see Easings.
	Easing string
	// Fill is FillNone or FillForwards; empty means FillForwards.
	Fill string
}

// Easings maps easing names to functions.
var Easings = map[string]ease.TweenFunc{
	"":            ease.Linear,
	"linear":      ease.Linear,
	"ease":        ease.InOutSine,
	"ease-in":     ease.InCubic,
	"ease-out":    ease.OutCubic,
	"ease-in-out": ease.InOutCubic,
	"inQuad":      ease.InQuad,
	"outQuad":     ease.OutQuad,
	"inOutQuad":   ease.InOutQuad,
	"inCubic":     ease.InCubic,
	"outCubic":    ease.OutCubic,
	"inOutCubic":  ease.InOutCubic,
	"inSine":      ease.InSine,
	"outSine":     ease.OutSine,
	"inOutSine":   ease.InOutSine,
	"inExpo":      ease.InExpo,
	"outExpo":     ease.OutExpo,
	"inBack":      ease.InBack,
	"outBack":     ease.OutBack,
	"outBounce":   ease.OutBounce,
	"outElastic":  ease.OutElastic,
}

// AnimationState is the playback state of an Animation.
type AnimationState uint8

const (
	AnimationIdle AnimationState = iota
	AnimationRunning
	AnimationFinished
	AnimationCancelled
)

func (s AnimationState) String() string {
	switch s {
	case AnimationIdle:
		return "idle"
	case AnimationRunning:
		return "running"
	case AnimationFinished:
		return "finished"
	case AnimationCancelled:
		return "cancelled"
	}
	return "unknown"
}

type frame struct {
	offset float64
	values map[string]any
}

// Animation interpolates a node's attributes through keyframes, driven by
// a Timeline.
type Animation struct {
	target   *Node
	frames   []frame
	timing   Timing
	timeline *Timeline
	state    AnimationState
	start    float64
	initial  map[string]any
	progress *gween.Tween
	finished *Signal
}

// NewAnimation creates an idle animation of target. Keyframe values are
// decoded with the target's schema.
func NewAnimation(target *Node, frames []Keyframe, timing Timing) (*Animation, error) {
	if timing.Iterations == 0 {
		timing.Iterations = 1
	}
	if timing.Fill == "" {
		timing.Fill = FillForwards
	}
	fn, ok := Easings[timing.Easing]
	if !ok {
		return nil, fmt.Errorf("canopy: unknown easing %q", timing.Easing)
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("canopy: animation needs at least one keyframe")
	}
	a := &Animation{
		target:   target,
		timing:   timing,
		finished: newSignal(),
		progress: gween.New(0, 1, float32(math.Max(timing.Duration, 1)), fn),
	}
	for i, kf := range frames {
		f := frame{offset: math.NaN(), values: make(map[string]any, len(kf))}
		for k, v := range kf {
			if k == "offset" {
				off, err := toFloat(v)
				if err != nil {
					return nil, fmt.Errorf("canopy: keyframe %d offset: %w", i, err)
				}
				f.offset = off
				continue
			}
			dv, err := target.Schema().Decode(k, v)
			if err != nil {
				return nil, fmt.Errorf("canopy: keyframe %d: %w", i, err)
			}
			f.values[k] = dv
		}
		a.frames = append(a.frames, f)
	}
	spaceOffsets(a.frames)
	return a, nil
}

// spaceOffsets fills in missing offsets evenly between their neighbors.
func spaceOffsets(frames []frame) {
	n := len(frames)
	if n == 1 {
		if math.IsNaN(frames[0].offset) {
			frames[0].offset = 1
		}
		return
	}
	if math.IsNaN(frames[0].offset) {
		frames[0].offset = 0
	}
	if math.IsNaN(frames[n-1].offset) {
		frames[n-1].offset = 1
	}
	prev := 0
	for i := 1; i < n; i++ {
		if math.IsNaN(frames[i].offset) {
			continue
		}
		gap := i - prev
		for j := prev + 1; j < i; j++ {
			frames[j].offset = frames[prev].offset + (frames[i].offset-frames[prev].offset)*float64(j-prev)/float64(gap)
		}
		prev = i
	}
	sort.SliceStable(frames, func(i, j int) bool { return frames[i].offset < frames[j].offset })
}

// Target returns the animated node.
func (a *Animation) Target() *Node {
	return a.target
}

// Timing returns the animation's timing.
func (a *Animation) Timing() Timing {
	return a.timing
}

// State returns the playback state.
func (a *Animation) State() AnimationState {
	return a.state
}

// Finished returns the signal fired when playback completes. It is
// cancelled, not fired, when the animation is cancelled.
func (a *Animation) Finished() *Signal {
	return a.finished
}

// Timeline returns the clock the animation is bound to.
func (a *Animation) Timeline() *Timeline {
	return a.timeline
}

// SetTimeline binds the animation to tl. A running animation moves to the
// new clock and restarts from its beginning.
func (a *Animation) SetTimeline(tl *Timeline) {
	if a.timeline == tl {
		return
	}
	running := a.state == AnimationRunning
	if running {
		a.timeline.remove(a)
	}
	a.timeline = tl
	if running {
		a.start = tl.CurrentTime()
		tl.add(a)
	}
}

// Play starts the animation at the timeline's current time. Playing a
// running or finished animation does nothing.
func (a *Animation) Play() {
	if a.state != AnimationIdle {
		return
	}
	if a.timeline == nil {
		panic("canopy: Play on an animation without a timeline")
	}
	a.initial = make(map[string]any)
	for _, f := range a.frames {
		for k := range f.values {
			if _, ok := a.initial[k]; !ok {
				a.initial[k] = a.target.Attr(k)
			}
		}
	}
	a.state = AnimationRunning
	a.start = a.timeline.CurrentTime()
	a.timeline.add(a)
}

// Cancel stops the animation where it is and cancels its finished signal.
// Attribute values are left as they are. Safe to call repeatedly and
// before Play.
func (a *Animation) Cancel() {
	if a.state == AnimationFinished || a.state == AnimationCancelled {
		return
	}
	if a.state == AnimationRunning {
		a.timeline.remove(a)
	}
	a.state = AnimationCancelled
	a.finished.cancel()
}

// tick applies the animation at clock time now.
func (a *Animation) tick(now float64) {
	local := now - a.start - a.timing.Delay
	if local < 0 {
		return
	}
	d := a.timing.Duration
	if d <= 0 || local >= d*a.timing.Iterations {
		a.finish()
		return
	}
	iterTime := math.Mod(local, d)
	eased, _ := a.progress.Set(float32(iterTime))
	a.target.SetAttrs(a.valuesAt(float64(eased)))
}

func (a *Animation) finish() {
	a.timeline.remove(a)
	a.state = AnimationFinished
	if a.timing.Fill == FillNone {
		a.target.SetAttrs(a.initial)
	} else {
		a.target.SetAttrs(a.valuesAt(1))
	}
	a.finished.fire()
}

// valuesAt interpolates the frames at progress p in [0, 1]. A missing
// frame at offset 0 or 1 is taken from the starting values.
func (a *Animation) valuesAt(p float64) map[string]any {
	frames := a.frames
	if frames[0].offset > 0 {
		frames = append([]frame{{offset: 0, values: a.initial}}, frames...)
	}
	if frames[len(frames)-1].offset < 1 {
		frames = append(frames, frame{offset: 1, values: a.initial})
	}
	i := 1
	for i < len(frames)-1 && p > frames[i].offset {
		i++
	}
	from, to := frames[i-1], frames[i]
	t := 1.0
	if span := to.offset - from.offset; span > 0 {
		t = (p - from.offset) / span
	}
	out := make(map[string]any)
	for k, v := range to.values {
		fv, ok := from.values[k]
		if !ok {
			fv = a.initial[k]
		}
		out[k] = lerpValue(fv, v, t)
	}
	for k, v := range from.values {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpValue interpolates numeric attribute types component-wise and steps
// everything else at the midpoint.
func lerpValue(from, to any, t float64) any {
	switch b := to.(type) {
	case float64:
		if a, err := toFloat(from); err == nil {
			return lerp(a, b, t)
		}
	case int:
		if a, err := toFloat(from); err == nil {
			return int(math.Round(lerp(a, float64(b), t)))
		}
	case geom.Vec2:
		if a, ok := from.(geom.Vec2); ok {
			return geom.Vec2{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
		}
	case Size:
		if a, ok := from.(Size); ok && !a.IsAuto() && !b.IsAuto() {
			return Size{lerp(a.Width, b.Width, t), lerp(a.Height, b.Height, t)}
		}
	case Padding:
		if a, ok := from.(Padding); ok {
			return Padding{
				Top:    lerp(a.Top, b.Top, t),
				Right:  lerp(a.Right, b.Right, t),
				Bottom: lerp(a.Bottom, b.Bottom, t),
				Left:   lerp(a.Left, b.Left, t),
			}
		}
	case Border:
		if a, ok := from.(Border); ok {
			return Border{Width: lerp(a.Width, b.Width, t), Color: a.Color.Lerp(b.Color, t)}
		}
	case canvas.Color:
		if a, ok := from.(canvas.Color); ok {
			return a.Lerp(b, t)
		}
	case geom.Matrix:
		if a, ok := from.(geom.Matrix); ok {
			var m geom.Matrix
			for i := range m {
				m[i] = lerp(a[i], b[i], t)
			}
			return m
		}
	}
	if t < 0.5 {
		return from
	}
	return to
}
