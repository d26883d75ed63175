// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// convImageUsage converts a driver.Usage to a
// vk.ImageUsageFlags.
func convImageUsage(usg driver.Usage, pf driver.PixelFmt) vk.ImageUsageFlags {
	var flags vk.ImageUsageFlagBits
	if usg&driver.UShaderSample != 0 {
		flags |= vk.ImageUsageSampledBit
	}
	if usg&(driver.UShaderRead|driver.UShaderWrite) != 0 {
		flags |= vk.ImageUsageStorageBit
	}
	if usg&driver.URenderTarget != 0 {
		if pf.IsDepthStencil() {
			flags |= vk.ImageUsageDepthStencilAttachmentBit
		} else {
			flags |= vk.ImageUsageColorAttachmentBit
		}
	}
	if usg&driver.UCopySrc != 0 {
		flags |= vk.ImageUsageTransferSrcBit
	}
	if usg&driver.UCopyDst != 0 {
		flags |= vk.ImageUsageTransferDstBit
	}
	return vk.ImageUsageFlags(flags)
}

// mipExtent returns the extent of a given mip level.
func mipExtent(base, level int) int {
	e := base >> level
	if e < 1 {
		return 1
	}
	return e
}

// mipLevels returns the length of the full mip chain for
// the given base extents.
func mipLevels(width, height int) int {
	n := 1
	for width > 1 || height > 1 {
		width = mipExtent(width, 1)
		height = mipExtent(height, 1)
		n++
	}
	return n
}

// image implements driver.Image.
type image struct {
	g       *GPU
	img     vk.Image
	mem     *memory
	pf      driver.PixelFmt
	size    driver.Dim3D
	layers  int
	levels  int
	samples int
	usg     driver.Usage
}

// NewImage creates a new image.
func (g *GPU) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	switch {
	case size.Width < 1 || size.Height < 1 || size.Depth < 1:
		panic("vk: image size must be greater than 0")
	case layers < 1 || levels < 1 || samples < 1:
		panic("vk: image layers/levels/samples must be greater than 0")
	case samples&(samples-1) != 0:
		panic("vk: image samples must be a power of 2")
	}
	typ := vk.ImageType2d
	switch {
	case size.Depth > 1:
		typ = vk.ImageType3d
	case size.Height <= 1:
		typ = vk.ImageType1d
	}
	var flags vk.ImageCreateFlags
	if typ == vk.ImageType2d && size.Width == size.Height && layers >= 6 {
		flags = vk.ImageCreateFlags(vk.ImageCreateCubeCompatibleBit)
	}
	nusg := convImageUsage(usg, pf)
	if levels > 1 {
		// Mip generation blits between levels of the chain.
		nusg |= vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit | vk.ImageUsageTransferDstBit)
	}
	info := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		Flags:     flags,
		ImageType: typ,
		Format:    convPixelFmt(pf),
		Extent: vk.Extent3D{
			Width:  uint32(size.Width),
			Height: uint32(size.Height),
			Depth:  uint32(size.Depth),
		},
		MipLevels:     uint32(levels),
		ArrayLayers:   uint32(layers),
		Samples:       convSamples(samples),
		Tiling:        vk.ImageTilingOptimal,
		Usage:         nusg,
		SharingMode:   vk.SharingModeExclusive,
		InitialLayout: vk.ImageLayoutUndefined,
	}
	var img vk.Image
	if res := vk.CreateImage(g.dev, &info, nil, &img); res != vk.Success {
		return nil, errFor(res)
	}
	var req vk.MemoryRequirements
	vk.GetImageMemoryRequirements(g.dev, img, &req)
	req.Deref()
	mem, err := g.alloc(&req, false)
	if err != nil {
		vk.DestroyImage(g.dev, img, nil)
		return nil, err
	}
	if res := vk.BindImageMemory(g.dev, img, mem.c.mem, vk.DeviceSize(mem.offset)); res != vk.Success {
		mem.free()
		vk.DestroyImage(g.dev, img, nil)
		return nil, errFor(res)
	}
	return &image{
		g:       g,
		img:     img,
		mem:     mem,
		pf:      pf,
		size:    size,
		layers:  layers,
		levels:  levels,
		samples: samples,
		usg:     usg,
	}, nil
}

// imageView implements driver.ImageView.
type imageView struct {
	img    *image
	view   vk.ImageView
	typ    driver.ViewType
	layer  int
	layers int
	level  int
	levels int
}

// NewView creates a new image view.
func (m *image) NewView(typ driver.ViewType, layer, layers, level, levels int) (driver.ImageView, error) {
	switch {
	case layer < 0 || layers < 1 || layer+layers > m.layers:
		panic("vk: view layer range out of bounds")
	case level < 0 || levels < 1 || level+levels > m.levels:
		panic("vk: view level range out of bounds")
	}
	info := vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    m.img,
		ViewType: convViewType(typ),
		Format:   convPixelFmt(m.pf),
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectOf(m.pf),
			BaseMipLevel:   uint32(level),
			LevelCount:     uint32(levels),
			BaseArrayLayer: uint32(layer),
			LayerCount:     uint32(layers),
		},
	}
	var view vk.ImageView
	if res := vk.CreateImageView(m.g.dev, &info, nil, &view); res != vk.Success {
		return nil, errFor(res)
	}
	return &imageView{
		img:    m,
		view:   view,
		typ:    typ,
		layer:  layer,
		layers: layers,
		level:  level,
		levels: levels,
	}, nil
}

// Destroy destroys the image view.
func (v *imageView) Destroy() {
	if v.img != nil {
		v.img.g.waitPending()
		vk.DestroyImageView(v.img.g.dev, v.view, nil)
	}
	*v = imageView{}
}

// Destroy destroys the image.
func (m *image) Destroy() {
	if m.g != nil && m.mem != nil {
		// Swapchain images have no region of their own and
		// are destroyed with the swapchain.
		m.g.waitPending()
		vk.DestroyImage(m.g.dev, m.img, nil)
		m.mem.free()
	}
	*m = image{}
}
