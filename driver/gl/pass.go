// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"errors"

	"github.com/RayGyoe/LLGL/driver"
)

// renderPass implements driver.RenderPass.
// GL has no render pass objects; the pass only records the
// attachment descriptions so pass begin can apply load ops
// and pass end can apply store ops.
type renderPass struct {
	g    *GPU
	atts []driver.Attachment
}

// NewRenderPass creates a new render pass.
func (g *GPU) NewRenderPass(att []driver.Attachment) (driver.RenderPass, error) {
	atts := make([]driver.Attachment, len(att))
	copy(atts, att)
	nds := 0
	for i := range atts {
		if atts[i].Format.IsDepthStencil() {
			nds++
		}
	}
	if nds > 1 {
		panic("gl: render pass has more than one depth/stencil attachment")
	}
	return &renderPass{g: g, atts: atts}, nil
}

// framebuf implements driver.Framebuf as a framebuffer
// object. Rendering into an FBO happens with a lower-left
// origin, so passes targeting it run with the Y flip on.
type framebuf struct {
	pass   *renderPass
	id     uint32
	width  int
	height int
	// Draw buffer index per color attachment of the pass.
	colorIdx []int
}

// NewFB creates a new framebuffer.
func (r *renderPass) NewFB(iv []driver.ImageView, width, height, layers int) (driver.Framebuf, error) {
	if len(iv) != len(r.atts) {
		panic("gl: framebuffer attachment count mismatch")
	}
	s := r.g.state
	id := s.fn.CreateFramebuffer()
	if id == 0 {
		return nil, driver.ErrFatal
	}
	s.PushBoundFramebuffer(DRAW_FRAMEBUFFER)
	s.BindFramebuffer(DRAW_FRAMEBUFFER, id)
	var bufs []Enum
	colorIdx := make([]int, len(iv))
	for i := range iv {
		v := iv[i].(*imageView)
		var att Enum
		switch pf := r.atts[i].Format; {
		case pf.IsDepth() && pf.IsStencil():
			att = DEPTH_STENCIL_ATTACHMENT
			colorIdx[i] = -1
		case pf.IsDepth():
			att = DEPTH_ATTACHMENT
			colorIdx[i] = -1
		case pf.IsStencil():
			att = STENCIL_ATTACHMENT
			colorIdx[i] = -1
		default:
			att = COLOR_ATTACHMENT0 + Enum(len(bufs))
			colorIdx[i] = len(bufs)
			bufs = append(bufs, att)
		}
		switch {
		case v.img.rb != 0:
			s.fn.FramebufferRenderbuffer(DRAW_FRAMEBUFFER, att, v.img.rb)
		case layers > 1 || v.layers > 1:
			// Views are texture view objects, so their
			// subresources are renumbered from zero; 0/0 is
			// the view's configured base level and layer.
			s.fn.FramebufferTextureLayer(DRAW_FRAMEBUFFER, att, v.id, 0, 0)
		default:
			s.fn.FramebufferTexture2D(DRAW_FRAMEBUFFER, att, v.target, v.id, 0)
		}
	}
	s.fn.DrawBuffers(bufs)
	status := s.fn.CheckFramebufferStatus(DRAW_FRAMEBUFFER)
	s.PopBoundFramebuffer()
	if status != FRAMEBUFFER_COMPLETE {
		s.NotifyFramebufferRelease(id)
		s.fn.DeleteFramebuffer(id)
		return nil, errors.New("gl: incomplete framebuffer")
	}
	return &framebuf{
		pass:     r,
		id:       id,
		width:    width,
		height:   height,
		colorIdx: colorIdx,
	}, nil
}

// Destroy destroys the framebuffer.
func (f *framebuf) Destroy() {
	if f.pass != nil {
		s := f.pass.g.state
		s.NotifyFramebufferRelease(f.id)
		s.fn.DeleteFramebuffer(f.id)
	}
	*f = framebuf{}
}

// Destroy destroys the render pass.
func (r *renderPass) Destroy() { *r = renderPass{} }
