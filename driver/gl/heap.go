// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"github.com/RayGyoe/LLGL/driver"
)

// resourceHeap implements driver.ResourceHeap.
// GL has no descriptor objects; the heap records bindings
// and plays them through the state manager when set on a
// command buffer.
type resourceHeap struct {
	s    *StateManager
	bind []driver.Binding
}

// NewResourceHeap creates a new resource heap.
func (g *GPU) NewResourceHeap(bind []driver.Binding) (driver.ResourceHeap, error) {
	for i := range bind {
		if bind[i].Slot < 0 || bind[i].Slot >= maxResourceSlots {
			panic("gl: resource slot out of range")
		}
	}
	h := &resourceHeap{s: g.state}
	h.bind = make([]driver.Binding, len(bind))
	copy(h.bind, bind)
	return h, nil
}

// apply binds every resource of the heap.
func (h *resourceHeap) apply() {
	s := h.s
	for i := range h.bind {
		b := &h.bind[i]
		switch b.Kind {
		case driver.BStorage:
			buf := b.Buffer.(*buffer)
			if b.BufSize > 0 {
				s.BindBufferRange(SHADER_STORAGE_BUFFER, b.Slot, buf.id, int(b.BufOff), int(b.BufSize))
			} else {
				s.BindBufferBase(SHADER_STORAGE_BUFFER, b.Slot, buf.id)
			}
		case driver.BConstant:
			buf := b.Buffer.(*buffer)
			if b.BufSize > 0 {
				s.BindBufferRange(UNIFORM_BUFFER, b.Slot, buf.id, int(b.BufOff), int(b.BufSize))
			} else {
				s.BindBufferBase(UNIFORM_BUFFER, b.Slot, buf.id)
			}
		case driver.BTexture:
			v := b.View.(*imageView)
			s.BindTexture(b.Slot, v.target, v.id)
		case driver.BImage:
			v := b.View.(*imageView)
			internal, _, _, _ := convPixelFmt(v.img.pf)
			layered := v.layers > 1
			s.fn.BindImageTexture(b.Slot, v.id, 0, layered, 0, READ_WRITE, internal)
		case driver.BSampler:
			s.BindSampler(b.Slot, b.Sampler.(*sampler).id)
		}
	}
}

// Destroy destroys the resource heap.
func (h *resourceHeap) Destroy() { *h = resourceHeap{} }
