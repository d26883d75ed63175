// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	"testing"

	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

func TestPickImageCount(t *testing.T) {
	for _, c := range [...]struct {
		req      int
		min, max uint32
		want     uint32
	}{
		{1, 2, 3, 2},
		{10, 2, 3, 3},
		{2, 1, 3, 2},
		{3, 2, 0, 3},
		// A zero max means the surface places no upper bound;
		// the driver still caps at three buffers.
		{10, 2, 0, 3},
		{0, 1, 0, 3},
		{0, 4, 0, 4},
	} {
		if n := pickImageCount(c.req, c.min, c.max); n != c.want {
			t.Fatalf("pickImageCount(%d, %d, %d):\nhave %d\nwant %d",
				c.req, c.min, c.max, n, c.want)
		}
	}
}

func TestPickPresentMode(t *testing.T) {
	all := []vk.PresentMode{
		vk.PresentModeImmediate,
		vk.PresentModeMailbox,
		vk.PresentModeFifo,
	}
	noMailbox := []vk.PresentMode{
		vk.PresentModeImmediate,
		vk.PresentModeFifo,
	}
	fifoOnly := []vk.PresentMode{vk.PresentModeFifo}
	for _, c := range [...]struct {
		modes []vk.PresentMode
		vsync int
		want  vk.PresentMode
	}{
		{all, 0, vk.PresentModeMailbox},
		{noMailbox, 0, vk.PresentModeImmediate},
		{fifoOnly, 0, vk.PresentModeFifo},
		{all, 1, vk.PresentModeFifo},
		{noMailbox, 1, vk.PresentModeFifo},
	} {
		if m := pickPresentMode(c.modes, c.vsync); m != c.want {
			t.Fatalf("pickPresentMode(%v, %d):\nhave %d\nwant %d",
				c.modes, c.vsync, m, c.want)
		}
	}
}

func TestPickSurfaceFormat(t *testing.T) {
	srgb := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	unorm := vk.SurfaceFormat{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	rgba := vk.SurfaceFormat{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	odd := vk.SurfaceFormat{Format: vk.FormatR5g6b5UnormPack16, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	undef := vk.SurfaceFormat{Format: vk.FormatUndefined, ColorSpace: vk.ColorSpaceSrgbNonlinear}
	for _, c := range [...]struct {
		sf   []vk.SurfaceFormat
		want vk.Format
	}{
		{[]vk.SurfaceFormat{rgba, unorm, srgb}, vk.FormatB8g8r8a8Srgb},
		{[]vk.SurfaceFormat{rgba, unorm}, vk.FormatB8g8r8a8Unorm},
		{[]vk.SurfaceFormat{odd, rgba}, vk.FormatR8g8b8a8Unorm},
		{[]vk.SurfaceFormat{odd}, vk.FormatR5g6b5UnormPack16},
		// A lone undefined advertisement accepts any format
		// and must yield the concrete default.
		{[]vk.SurfaceFormat{undef}, vk.FormatB8g8r8a8Srgb},
	} {
		if f := pickSurfaceFormat(c.sf); f.Format != c.want {
			t.Fatalf("pickSurfaceFormat:\nhave %d\nwant %d", f.Format, c.want)
		}
	}
	f := pickSurfaceFormat([]vk.SurfaceFormat{undef})
	if f.ColorSpace != vk.ColorSpaceSrgbNonlinear {
		t.Fatalf("undefined pick color space:\nhave %d\nwant %d",
			f.ColorSpace, vk.ColorSpaceSrgbNonlinear)
	}
	if backPixelFmt(f.Format) == driver.FInvalid {
		t.Fatalf("undefined pick maps to FInvalid: %d", f.Format)
	}
}

func TestDepthFormatsFor(t *testing.T) {
	for _, c := range [...]struct {
		depth, stencil int
		wantFirst      driver.PixelFmt
		wantNone       bool
	}{
		{0, 0, driver.FInvalid, true},
		{16, 0, driver.D16un, false},
		{24, 0, driver.D32f, false},
		{32, 0, driver.D32f, false},
		{0, 8, driver.S8ui, false},
		{24, 8, driver.D24unS8ui, false},
		{32, 8, driver.D32fS8ui, false},
	} {
		fmts := depthFormatsFor(c.depth, c.stencil)
		if c.wantNone {
			if fmts != nil {
				t.Fatalf("depthFormatsFor(%d, %d):\nhave %v\nwant nil", c.depth, c.stencil, fmts)
			}
			continue
		}
		if len(fmts) == 0 || fmts[0] != c.wantFirst {
			t.Fatalf("depthFormatsFor(%d, %d):\nhave %v\nwant first %d",
				c.depth, c.stencil, fmts, c.wantFirst)
		}
		// Every candidate covers the requested aspects.
		for _, pf := range fmts {
			if c.depth > 0 && !pf.IsDepth() {
				t.Fatalf("depthFormatsFor(%d, %d): %d has no depth", c.depth, c.stencil, pf)
			}
			if c.stencil > 0 && !pf.IsStencil() {
				t.Fatalf("depthFormatsFor(%d, %d): %d has no stencil", c.depth, c.stencil, pf)
			}
		}
	}
}

func TestResizeNoOp(t *testing.T) {
	// A swapchain without a device would fail any native
	// call; a resize to the current extent must return
	// before making one.
	s := &swapchain{
		conf:   driver.SwapchainConfig{Width: 800, Height: 600},
		extent: vk.Extent2D{Width: 800, Height: 600},
	}
	if err := s.Resize(800, 600); err != nil {
		t.Fatalf("Resize to current extent:\nhave %v\nwant nil", err)
	}
}

func TestClampExtent(t *testing.T) {
	undef := vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	min := vk.Extent2D{Width: 64, Height: 64}
	max := vk.Extent2D{Width: 4096, Height: 4096}
	for _, c := range [...]struct {
		w, h    int
		current vk.Extent2D
		want    vk.Extent2D
	}{
		// A defined current extent is authoritative.
		{1024, 768, vk.Extent2D{Width: 800, Height: 600}, vk.Extent2D{Width: 800, Height: 600}},
		{1024, 768, undef, vk.Extent2D{Width: 1024, Height: 768}},
		{16, 16, undef, min},
		{8192, 8192, undef, max},
	} {
		if e := clampExtent(c.w, c.h, c.current, min, max); e != c.want {
			t.Fatalf("clampExtent(%d, %d):\nhave %dx%d\nwant %dx%d",
				c.w, c.h, e.Width, e.Height, c.want.Width, c.want.Height)
		}
	}
}
