// Copyright 2024 RayGyoe. All rights reserved.

package vk

import "testing"

func TestBlocksFor(t *testing.T) {
	for _, c := range [...]struct {
		size int64
		want int
	}{
		{1, 1},
		{blockSize - 1, 1},
		{blockSize, 1},
		{blockSize + 1, 2},
		{4096, 16},
		{chunkSize, chunkSize / blockSize},
	} {
		if n := blocksFor(c.size); n != c.want {
			t.Fatalf("blocksFor(%d):\nhave %d\nwant %d", c.size, n, c.want)
		}
	}
}

func TestChunkReserve(t *testing.T) {
	var c memChunk
	c.size = 256 * blockSize
	c.bv.Grow(4)
	off1, ok := c.reserve(4)
	if !ok || off1 != 0 {
		t.Fatalf("reserve(4):\nhave %d, %t\nwant 0, true", off1, ok)
	}
	off2, ok := c.reserve(4)
	if !ok || off2 != 4 {
		t.Fatalf("reserve(4):\nhave %d, %t\nwant 4, true", off2, ok)
	}
	if c.nused != 8 {
		t.Fatalf("nused:\nhave %d\nwant 8", c.nused)
	}
	// First fit skips the still-reserved second run.
	c.release(off1, 4)
	off3, ok := c.reserve(8)
	if !ok || off3 != 8 {
		t.Fatalf("reserve(8):\nhave %d, %t\nwant 8, true", off3, ok)
	}
	// The freed first run serves later requests that fit.
	off4, ok := c.reserve(4)
	if !ok || off4 != 0 {
		t.Fatalf("reserve(4):\nhave %d, %t\nwant 0, true", off4, ok)
	}
	if c.nused != 16 {
		t.Fatalf("nused:\nhave %d\nwant 16", c.nused)
	}
}

func TestChunkExhaustion(t *testing.T) {
	var c memChunk
	c.size = 64 * blockSize
	c.bv.Grow(1)
	if _, ok := c.reserve(65); ok {
		t.Fatal("reserve beyond chunk capacity:\nhave ok\nwant !ok")
	}
	off, ok := c.reserve(64)
	if !ok || off != 0 {
		t.Fatalf("reserve(64):\nhave %d, %t\nwant 0, true", off, ok)
	}
	if _, ok := c.reserve(1); ok {
		t.Fatal("reserve of full chunk:\nhave ok\nwant !ok")
	}
	c.release(off, 64)
	if c.nused != 0 {
		t.Fatalf("nused after release:\nhave %d\nwant 0", c.nused)
	}
}

func TestRegionAlignment(t *testing.T) {
	var c memChunk
	c.size = 256 * blockSize
	c.bv.Grow(4)
	const size = 512
	for _, x := range [...]struct {
		blockOff int
		align    int64
		wantOff  int64
	}{
		{0, blockSize, 0},
		{1, blockSize, blockSize},
		{1, 1024, 1024},
		{3, 4096, 4096},
	} {
		// Runs are padded the way alloc pads them, so an
		// aligned offset always fits inside.
		n := blocksFor(size + x.align - blockSize)
		m := c.region(x.blockOff, n, x.align, size)
		if m.offset != x.wantOff {
			t.Fatalf("region(%d, %d, %d, %d) offset:\nhave %d\nwant %d",
				x.blockOff, n, x.align, size, m.offset, x.wantOff)
		}
		if m.offset%x.align != 0 {
			t.Fatalf("region offset %d not aligned to %d", m.offset, x.align)
		}
		if m.size != size {
			t.Fatalf("region size:\nhave %d\nwant %d", m.size, size)
		}
		if m.data != nil {
			t.Fatal("region of device-local chunk:\nhave data\nwant nil")
		}
		end := int64(x.blockOff+n) * blockSize
		if m.offset+m.size > end {
			t.Fatalf("region [%d, %d) spills past block run end %d",
				m.offset, m.offset+m.size, end)
		}
	}
}
