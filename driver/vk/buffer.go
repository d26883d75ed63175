// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// buffer implements driver.Buffer.
type buffer struct {
	g    *GPU
	buf  vk.Buffer
	mem  *memory
	size int64
}

// convBufferUsage converts a driver.Usage to a
// vk.BufferUsageFlags.
func convBufferUsage(usg driver.Usage) vk.BufferUsageFlags {
	var flags vk.BufferUsageFlagBits
	if usg&(driver.UShaderRead|driver.UShaderWrite) != 0 {
		flags |= vk.BufferUsageStorageBufferBit
	}
	if usg&driver.UShaderConst != 0 {
		flags |= vk.BufferUsageUniformBufferBit
	}
	if usg&driver.UVertexData != 0 {
		flags |= vk.BufferUsageVertexBufferBit
	}
	if usg&driver.UIndexData != 0 {
		flags |= vk.BufferUsageIndexBufferBit
	}
	if usg&driver.UCopySrc != 0 {
		flags |= vk.BufferUsageTransferSrcBit
	}
	if usg&driver.UCopyDst != 0 {
		flags |= vk.BufferUsageTransferDstBit
	}
	return vk.BufferUsageFlags(flags)
}

// NewBuffer creates a new buffer.
func (g *GPU) NewBuffer(size int64, visible bool, usg driver.Usage) (driver.Buffer, error) {
	if size <= 0 {
		panic("vk: buffer size must be greater than 0")
	}
	info := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(size),
		Usage:       convBufferUsage(usg),
		SharingMode: vk.SharingModeExclusive,
	}
	var buf vk.Buffer
	if res := vk.CreateBuffer(g.dev, &info, nil, &buf); res != vk.Success {
		return nil, errFor(res)
	}
	var req vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(g.dev, buf, &req)
	req.Deref()
	mem, err := g.alloc(&req, visible)
	if err != nil {
		vk.DestroyBuffer(g.dev, buf, nil)
		return nil, err
	}
	if res := vk.BindBufferMemory(g.dev, buf, mem.c.mem, vk.DeviceSize(mem.offset)); res != vk.Success {
		mem.free()
		vk.DestroyBuffer(g.dev, buf, nil)
		return nil, errFor(res)
	}
	return &buffer{g: g, buf: buf, mem: mem, size: size}, nil
}

// Visible returns whether the buffer is host visible.
func (b *buffer) Visible() bool { return b.mem.data != nil }

// Bytes returns a slice referring to the underlying data,
// or nil for device-local buffers.
func (b *buffer) Bytes() []byte { return b.mem.data }

// Cap returns the capacity of the buffer in bytes.
func (b *buffer) Cap() int64 { return b.mem.size }

// Destroy destroys the buffer.
func (b *buffer) Destroy() {
	if b.g != nil {
		b.g.waitPending()
		vk.DestroyBuffer(b.g.dev, b.buf, nil)
		b.mem.free()
	}
	*b = buffer{}
}
