// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
	"github.com/RayGyoe/LLGL/internal/bitvec"
)

const (
	// blockSize is the sub-allocation granularity, in bytes.
	blockSize = 256

	// chunkSize is the preferred size of a device memory
	// chunk. Requests larger than this get a dedicated chunk.
	chunkSize = 16 << 20
)

// blocksFor returns the number of blocks needed to hold
// size bytes.
func blocksFor(size int64) int {
	return int((size + blockSize - 1) / blockSize)
}

// memChunk is a single native device memory allocation from
// which regions are carved at block granularity.
type memChunk struct {
	g       *GPU
	mem     vk.DeviceMemory
	typ     uint32
	size    int64
	visible bool
	ptr     unsafe.Pointer
	bv      bitvec.V[uint64]
	nused   int
}

// memory is a region of a chunk bound to a single resource.
// offset is the aligned bind offset; the reserved block run
// starts at blockOff and may precede it due to alignment
// padding.
type memory struct {
	c        *memChunk
	blockOff int
	nblocks  int
	offset   int64
	size     int64
	data     []byte
}

// reserve claims a run of n free blocks.
func (c *memChunk) reserve(n int) (blockOff int, ok bool) {
	blockOff, ok = c.bv.SearchRange(n)
	if ok {
		c.bv.SetRange(blockOff, n)
		c.nused += n
	}
	return
}

// release returns a run of blocks claimed by reserve.
func (c *memChunk) release(blockOff, n int) {
	c.bv.UnsetRange(blockOff, n)
	c.nused -= n
}

// region creates the memory view of a reserved block run,
// aligning the bind offset within it.
func (c *memChunk) region(blockOff, nblocks int, align, size int64) *memory {
	off := int64(blockOff) * blockSize
	off = (off + align - 1) &^ (align - 1)
	m := &memory{
		c:        c,
		blockOff: blockOff,
		nblocks:  nblocks,
		offset:   off,
		size:     size,
	}
	if c.visible {
		m.data = unsafe.Slice((*byte)(c.ptr), c.size)[off : off+size : off+size]
	}
	return m
}

// free releases the region. The backing chunk is destroyed
// when it was dedicated to this region and becomes empty.
func (m *memory) free() {
	if m.c == nil {
		return
	}
	g := m.c.g
	g.mmu.Lock()
	m.c.release(m.blockOff, m.nblocks)
	if m.c.nused == 0 && m.c.size > chunkSize {
		for i, c := range g.chunks {
			if c == m.c {
				g.chunks = append(g.chunks[:i], g.chunks[i+1:]...)
				break
			}
		}
		m.c.destroy()
	}
	g.mmu.Unlock()
	*m = memory{}
}

func (c *memChunk) destroy() {
	if c.visible {
		vk.UnmapMemory(c.g.dev, c.mem)
	}
	vk.FreeMemory(c.g.dev, c.mem, nil)
	*c = memChunk{}
}

// selectMemory picks a memory type index from typeBits that
// has all the wanted property flags.
func (g *GPU) selectMemory(typeBits uint32, want vk.MemoryPropertyFlags) (uint32, bool) {
	for i := uint32(0); i < g.memProps.MemoryTypeCount; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		g.memProps.MemoryTypes[i].Deref()
		if g.memProps.MemoryTypes[i].PropertyFlags&want == want {
			return i, true
		}
	}
	return 0, false
}

// newChunk allocates and optionally maps a new chunk.
// Callers must hold g.mmu.
func (g *GPU) newChunk(size int64, typ uint32, visible bool) (*memChunk, error) {
	info := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(size),
		MemoryTypeIndex: typ,
	}
	var mem vk.DeviceMemory
	if res := vk.AllocateMemory(g.dev, &info, nil, &mem); res != vk.Success {
		return nil, errFor(res)
	}
	c := &memChunk{g: g, mem: mem, typ: typ, size: size, visible: visible}
	if visible {
		var ptr unsafe.Pointer
		if res := vk.MapMemory(g.dev, mem, 0, vk.DeviceSize(size), 0, &ptr); res != vk.Success {
			vk.FreeMemory(g.dev, mem, nil)
			return nil, errFor(res)
		}
		c.ptr = ptr
	}
	c.bv.Grow(int(size) / blockSize / 64)
	g.chunks = append(g.chunks, c)
	return c, nil
}

// alloc binds a memory region satisfying the requirements.
// Host visible regions come from mapped, coherent memory.
func (g *GPU) alloc(req *vk.MemoryRequirements, visible bool) (*memory, error) {
	size := int64(req.Size)
	align := int64(req.Alignment)
	if align < blockSize {
		align = blockSize
	}
	// Pad the run so an aligned offset always fits inside it.
	padded := size + align - blockSize
	n := blocksFor(padded)

	want := vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
	if visible {
		want = vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	}
	typ, ok := g.selectMemory(req.MemoryTypeBits, want)
	if !ok && !visible {
		// Integrated devices may expose no device-local type
		// for these bits.
		typ, ok = g.selectMemory(req.MemoryTypeBits, 0)
	}
	if !ok {
		return nil, driver.ErrNoDeviceMemory
	}

	g.mmu.Lock()
	defer g.mmu.Unlock()
	for _, c := range g.chunks {
		if c.visible != visible || c.typ != typ {
			continue
		}
		if off, ok := c.reserve(n); ok {
			return c.region(off, n, align, size), nil
		}
	}
	csize := int64(chunkSize)
	if padded > csize {
		csize = (padded + blockSize - 1) &^ (blockSize - 1)
	}
	// Chunk sizes stay multiples of 64 blocks so the bit
	// vector maps them exactly.
	const chunkAlign = 64 * blockSize
	csize = (csize + chunkAlign - 1) &^ (chunkAlign - 1)
	c, err := g.newChunk(csize, typ, visible)
	if err != nil {
		return nil, err
	}
	off, _ := c.reserve(n)
	return c.region(off, n, align, size), nil
}

// freeMemory releases every chunk. Called on driver close.
func (g *GPU) freeMemory() {
	g.mmu.Lock()
	for _, c := range g.chunks {
		c.destroy()
	}
	g.chunks = nil
	g.mmu.Unlock()
}
