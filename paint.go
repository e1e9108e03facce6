package canopy

import (
	"math"

	"github.com/phanxgames/canopy/canvas"
	"github.com/phanxgames/canopy/geom"
)

// RenderFunc is an ad-hoc paint callback. It receives the node's
// content-local context, the frame time and its own record.
type RenderFunc func(ctx canvas.Context, t float64, r *Renderer)

// Renderer is a registered paint callback.
type Renderer struct {
	Fn RenderFunc
	// AutoRemove drops the callback after it has run once.
	AutoRemove bool
}

// Render paints the node at time t (milliseconds) and returns the context
// translated to content-local coordinates. The caller is expected to have
// translated and transformed ctx to the node's position.
func (n *Node) Render(t float64, ctx canvas.Context) canvas.Context {
	ctx, painted := n.paintBox(ctx)
	if !painted {
		return ctx
	}
	switch n.Type {
	case NodeTypeLabel:
		n.renderText(ctx)
	case NodeTypeGroup:
		n.renderChildren(t, ctx)
	default:
		if n.hooks.RenderContent != nil {
			n.hooks.RenderContent(n, t, ctx)
		}
	}
	return ctx
}

// PaintBox draws the border and background and returns ctx translated to
// content-local coordinates. A node with a zero offset dimension draws
// nothing and gets ctx back untouched.
func (n *Node) PaintBox(ctx canvas.Context) canvas.Context {
	ctx, _ = n.paintBox(ctx)
	return ctx
}

func (n *Node) paintBox(ctx canvas.Context) (canvas.Context, bool) {
	n.paths = n.paths[:0]

	offset := n.OffsetSize()
	if offset.Width == 0 || offset.Height == 0 {
		Logger().Debug("canopy: skipping zero-size node", "serial", n.serial, "id", n.ID())
		return ctx, false
	}

	origin := n.OriginRect()
	ctx.Translate(origin.X, origin.Y)

	border := n.borderAttr()
	radius := n.floatAttr("borderRadius")
	grads := n.gradientsAttr()
	bgcolor := n.colorAttr("bgcolor")
	client := n.ClientSize()
	bw := border.Width

	ctx.Save()

	if bw > 0 || grads.Border != nil {
		ctx.SetLineWidth(bw)
		x, y := bw/2, bw/2
		w, h := offset.Width-bw, offset.Height-bw

		p := canvas.NewPath()
		p.RoundRect(x, y, w, h, radius)

		if grads.Border != nil {
			ctx.SetStrokeStyle(grads.Border.Resolve(geom.Rect{X: x, Y: y, Width: w, Height: h}))
		} else if !border.Color.IsZero() {
			ctx.SetStrokeStyle(border.Color)
		}
		if err := ctx.Stroke(p); err != nil {
			Logger().Warn("canopy: stroke border", "serial", n.serial, "err", err)
		}
	}

	if !bgcolor.IsZero() || grads.Bgcolor != nil {
		x, y := bw, bw
		w, h := client.Width, client.Height

		p := canvas.NewPath()
		p.RoundRect(x, y, w, h, math.Max(0, radius-bw/2))

		if grads.Bgcolor != nil {
			ctx.SetFillStyle(grads.Bgcolor.Resolve(geom.Rect{X: x, Y: y, Width: w, Height: h}))
		} else {
			ctx.SetFillStyle(bgcolor)
		}
		if err := ctx.Fill(p); err != nil {
			Logger().Warn("canopy: fill background", "serial", n.serial, "err", err)
		}
	}

	ctx.Restore()

	pad := n.paddingAttr()
	ctx.Translate(pad.Left, pad.Top)
	n.context = ctx
	return ctx, true
}

// Context returns the context of the most recent render, or nil.
func (n *Node) Context() canvas.Context {
	return n.context
}

// Draw registers fn to run after every render of the node and requests a
// repaint. clearCache drops the node's cached context first; autoRemove
// runs fn only once.
func (n *Node) Draw(fn RenderFunc, clearCache, autoRemove bool) *Renderer {
	r := &Renderer{Fn: fn, AutoRemove: autoRemove}
	n.renderers = append(n.renderers, r)
	n.ForceUpdate(clearCache)
	return r
}

// DrawOnce registers fn to run after the next render only.
func (n *Node) DrawOnce(fn RenderFunc) *Renderer {
	return n.Draw(fn, true, true)
}

// UserRender runs the registered paint callbacks in registration order and
// then drops the ones marked AutoRemove. Callbacks registered while it runs
// are kept for the next frame.
func (n *Node) UserRender(t float64, ctx canvas.Context) {
	if len(n.renderers) == 0 {
		return
	}
	run := n.renderers
	n.renderers = nil
	kept := make([]*Renderer, 0, len(run))
	for _, r := range run {
		r.Fn(ctx, t, r)
		if !r.AutoRemove {
			kept = append(kept, r)
		}
	}
	n.renderers = append(kept, n.renderers...)
}

// Renderers returns the registered paint callbacks. The returned slice
// must not be mutated.
func (n *Node) Renderers() []*Renderer {
	return n.renderers
}

// CreatePath returns a new path in content-local coordinates and registers
// it for hit testing until the next render.
func (n *Node) CreatePath() *canvas.Path {
	p := canvas.NewPath()
	n.paths = append(n.paths, p)
	return p
}

// FindPaths returns the registered paths containing the point (x, y),
// given in the same origin space as Event.OffsetX/OffsetY. A node that has
// not been rendered has no paths.
func (n *Node) FindPaths(x, y float64) []*canvas.Path {
	if n.context == nil {
		return nil
	}
	o := n.contentOrigin()
	lx, ly := x-o.X, y-o.Y
	var out []*canvas.Path
	for _, p := range n.paths {
		if p.Contains(lx, ly) {
			out = append(out, p)
		}
	}
	return out
}

// drawChild paints child at its position within ctx.
func drawChild(t float64, ctx canvas.Context, child *Node) {
	pos := child.vecAttr("pos")
	ctx.Save()
	ctx.Translate(pos.X, pos.Y)
	if m := child.Transform(); !m.IsIdentity() {
		ctx.Transform(m)
	}
	out := child.Render(t, ctx)
	child.UserRender(t, out)
	ctx.Restore()
}
