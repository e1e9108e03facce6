package canopy

// animationBinding ties an animation to the node that owns it. sub is the
// completion subscription, held from the moment the animation starts.
type animationBinding struct {
	anim *Animation
	sub  *Subscription
}

// Animate creates an animation of n. If n is attached to a layer the
// animation starts at once on the layer's timeline; otherwise it waits
// until n is attached. Finished animations are dropped from n's active
// set. Animate panics on keyframes that cannot be decoded or an unknown
// easing, like other construction errors.
func (n *Node) Animate(frames []Keyframe, timing Timing) *Animation {
	a, err := NewAnimation(n, frames, timing)
	if err != nil {
		panic(err)
	}
	n.AddAnimation(a)
	return a
}

// AddAnimation binds an idle animation of n to n's lifecycle, as Animate
// does for the animations it creates.
func (n *Node) AddAnimation(a *Animation) {
	if a.Target() != n {
		panic("canopy: animation targets another node")
	}
	if a.State() != AnimationIdle {
		panic("canopy: animation already " + a.State().String())
	}
	n.pruneCancelled()
	b := &animationBinding{anim: a}
	n.animations = append(n.animations, b)
	if tl := n.Timeline(); tl != nil {
		n.startBinding(b, tl)
	}
}

// Animations returns the node's active animations.
func (n *Node) Animations() []*Animation {
	n.pruneCancelled()
	out := make([]*Animation, len(n.animations))
	for i, b := range n.animations {
		out[i] = b.anim
	}
	return out
}

func (n *Node) startBinding(b *animationBinding, tl *Timeline) {
	b.anim.SetTimeline(tl)
	b.sub = b.anim.Finished().Subscribe(func() {
		n.dropBinding(b)
	})
	b.anim.Play()
}

// startPending starts every animation that has not started yet.
func (n *Node) startPending(tl *Timeline) {
	for _, b := range append([]*animationBinding(nil), n.animations...) {
		if b.sub == nil && b.anim.State() == AnimationIdle {
			n.startBinding(b, tl)
		}
	}
}

// cancelAnimations revokes every completion subscription and cancels every
// active animation, started or not.
func (n *Node) cancelAnimations() {
	bindings := n.animations
	n.animations = nil
	for _, b := range bindings {
		if b.sub != nil {
			b.sub.Cancel()
		}
		b.anim.Cancel()
	}
}

func (n *Node) dropBinding(b *animationBinding) {
	for i, o := range n.animations {
		if o == b {
			n.animations = append(n.animations[:i], n.animations[i+1:]...)
			return
		}
	}
}

// pruneCancelled forgets bindings whose animation was cancelled directly.
func (n *Node) pruneCancelled() {
	live := n.animations[:0]
	for _, b := range n.animations {
		if b.anim.State() == AnimationCancelled {
			if b.sub != nil {
				b.sub.Cancel()
			}
			continue
		}
		live = append(live, b)
	}
	clear(n.animations[len(live):])
	n.animations = live
}
