// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"github.com/RayGyoe/LLGL/driver"
)

// buffer implements driver.Buffer.
// Host visible buffers are created with immutable storage
// and kept persistently mapped for their whole lifetime.
type buffer struct {
	s       *StateManager
	id      uint32
	size    int64
	visible bool
	mapped  []byte
}

// NewBuffer creates a new buffer.
func (g *GPU) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	if size <= 0 {
		panic("gl: buffer size must be greater than 0")
	}
	s := g.state
	id := s.fn.CreateBuffer()
	if id == 0 {
		return nil, driver.ErrFatal
	}
	flags := DYNAMIC_STORAGE_BIT
	if visible {
		flags |= MAP_READ_BIT | MAP_WRITE_BIT | MAP_PERSISTENT_BIT | MAP_COHERENT_BIT
	}
	s.PushBoundBuffer(COPY_WRITE_BUFFER)
	s.BindBuffer(COPY_WRITE_BUFFER, id)
	s.fn.BufferStorage(COPY_WRITE_BUFFER, int(size), flags)
	var mapped []byte
	if visible {
		mapped = s.fn.MapBufferRange(COPY_WRITE_BUFFER, 0, int(size), MAP_READ_BIT|MAP_WRITE_BIT|MAP_PERSISTENT_BIT|MAP_COHERENT_BIT)
	}
	s.PopBoundBuffer()
	if visible && mapped == nil {
		s.NotifyBufferRelease(id)
		s.fn.DeleteBuffer(id)
		return nil, driver.ErrNoDeviceMemory
	}
	return &buffer{
		s:       s,
		id:      id,
		size:    size,
		visible: visible,
		mapped:  mapped,
	}, nil
}

// Visible returns whether the buffer is host visible.
func (b *buffer) Visible() bool { return b.visible }

// Bytes returns the persistent mapping of a host visible
// buffer, or nil.
func (b *buffer) Bytes() []byte { return b.mapped }

// Cap returns the buffer's capacity in bytes.
func (b *buffer) Cap() int64 { return b.size }

// Destroy destroys the buffer.
func (b *buffer) Destroy() {
	if b.s != nil {
		if b.mapped != nil {
			b.s.PushBoundBuffer(COPY_WRITE_BUFFER)
			b.s.BindBuffer(COPY_WRITE_BUFFER, b.id)
			b.s.fn.UnmapBuffer(COPY_WRITE_BUFFER)
			b.s.PopBoundBuffer()
		}
		b.s.NotifyBufferRelease(b.id)
		b.s.fn.DeleteBuffer(b.id)
	}
	*b = buffer{}
}
