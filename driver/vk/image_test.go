// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	"testing"

	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

func TestMipExtent(t *testing.T) {
	for _, c := range [...]struct {
		base, level, want int
	}{
		{256, 0, 256},
		{256, 1, 128},
		{256, 8, 1},
		{256, 9, 1},
		{300, 1, 150},
		{300, 2, 75},
		{1, 0, 1},
		{1, 4, 1},
	} {
		if e := mipExtent(c.base, c.level); e != c.want {
			t.Fatalf("mipExtent(%d, %d):\nhave %d\nwant %d", c.base, c.level, e, c.want)
		}
	}
}

func TestMipLevels(t *testing.T) {
	for _, c := range [...]struct {
		w, h, want int
	}{
		{1, 1, 1},
		{2, 2, 2},
		{256, 256, 9},
		{256, 1, 9},
		{1024, 1, 11},
		{640, 480, 10},
	} {
		if n := mipLevels(c.w, c.h); n != c.want {
			t.Fatalf("mipLevels(%d, %d):\nhave %d\nwant %d", c.w, c.h, n, c.want)
		}
	}
}

func TestLayoutStageAccess(t *testing.T) {
	for _, c := range [...]struct {
		layout     driver.Layout
		wantStage  vk.PipelineStageFlags
		wantAccess vk.AccessFlags
	}{
		{
			driver.LUndefined,
			vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit),
			0,
		},
		{
			driver.LCopySrc,
			vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			vk.AccessFlags(vk.AccessTransferReadBit),
		},
		{
			driver.LCopyDst,
			vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			vk.AccessFlags(vk.AccessTransferWriteBit),
		},
		{
			driver.LColorTarget,
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
		},
		{
			driver.LPresent,
			vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit),
			0,
		},
	} {
		stage, access := layoutStageAccess(c.layout)
		if stage != c.wantStage || access != c.wantAccess {
			t.Fatalf("layoutStageAccess(%d):\nhave %#x, %#x\nwant %#x, %#x",
				c.layout, stage, access, c.wantStage, c.wantAccess)
		}
	}
	// Shader-read images must be visible to every shader
	// stage that can sample them.
	stage, access := layoutStageAccess(driver.LShaderRead)
	if stage&vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit) == 0 ||
		stage&vk.PipelineStageFlags(vk.PipelineStageComputeShaderBit) == 0 {
		t.Fatalf("LShaderRead stages:\nhave %#x\nwant fragment and compute bits", stage)
	}
	if access != vk.AccessFlags(vk.AccessShaderReadBit) {
		t.Fatalf("LShaderRead access:\nhave %#x\nwant %#x", access, vk.AccessShaderReadBit)
	}
}

func TestPixelFmtRoundTrip(t *testing.T) {
	fmts := [...]driver.PixelFmt{
		driver.RGBA8un, driver.RGBA8sRGB, driver.BGRA8un, driver.BGRA8sRGB,
		driver.RG8un, driver.R8un, driver.RGBA16f, driver.RG16f, driver.R16f,
		driver.RGBA32f, driver.RG32f, driver.R32f, driver.D16un, driver.D32f,
		driver.S8ui, driver.D24unS8ui, driver.D32fS8ui,
	}
	for _, pf := range fmts {
		if back := backPixelFmt(convPixelFmt(pf)); back != pf {
			t.Fatalf("pixel format round trip:\nhave %d\nwant %d", back, pf)
		}
	}
	if pf := backPixelFmt(vk.FormatR5g6b5UnormPack16); pf != driver.FInvalid {
		t.Fatalf("backPixelFmt of foreign format:\nhave %d\nwant %d", pf, driver.FInvalid)
	}
}

func TestAspectOf(t *testing.T) {
	for _, c := range [...]struct {
		pf   driver.PixelFmt
		want vk.ImageAspectFlags
	}{
		{driver.RGBA8un, vk.ImageAspectFlags(vk.ImageAspectColorBit)},
		{driver.D32f, vk.ImageAspectFlags(vk.ImageAspectDepthBit)},
		{driver.S8ui, vk.ImageAspectFlags(vk.ImageAspectStencilBit)},
		{driver.D24unS8ui, vk.ImageAspectFlags(vk.ImageAspectDepthBit | vk.ImageAspectStencilBit)},
	} {
		if a := aspectOf(c.pf); a != c.want {
			t.Fatalf("aspectOf(%d):\nhave %#x\nwant %#x", c.pf, a, c.want)
		}
	}
}

func TestConvImageUsage(t *testing.T) {
	usg := convImageUsage(driver.UShaderSample|driver.UCopyDst, driver.RGBA8un)
	want := vk.ImageUsageFlags(vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit)
	if usg != want {
		t.Fatalf("convImageUsage:\nhave %#x\nwant %#x", usg, want)
	}
	// Render target usage splits on the format's aspect.
	if u := convImageUsage(driver.URenderTarget, driver.RGBA8un); u != vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit) {
		t.Fatalf("color render target usage:\nhave %#x\nwant %#x", u, vk.ImageUsageColorAttachmentBit)
	}
	if u := convImageUsage(driver.URenderTarget, driver.D32f); u != vk.ImageUsageFlags(vk.ImageUsageDepthStencilAttachmentBit) {
		t.Fatalf("depth render target usage:\nhave %#x\nwant %#x", u, vk.ImageUsageDepthStencilAttachmentBit)
	}
}

func TestFillPattern(t *testing.T) {
	for _, c := range [...]struct {
		value byte
		want  uint32
	}{
		{0x00, 0x00000000},
		{0xAB, 0xABABABAB},
		{0xFF, 0xFFFFFFFF},
		{0x01, 0x01010101},
	} {
		if p := fillPattern(c.value); p != c.want {
			t.Fatalf("fillPattern(%#x):\nhave %#x\nwant %#x", c.value, p, c.want)
		}
	}
}
