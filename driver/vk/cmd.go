// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	"errors"

	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// cmdBuffer implements driver.CmdBuffer.
// Commands record directly into a native command buffer
// allocated from a pool of its own, so buffers can record
// concurrently.
type cmdBuffer struct {
	g          *GPU
	pool       vk.CommandPool
	cb         vk.CommandBuffer
	recording  bool
	ready      bool
	inPass     bool
	debugDepth int
}

// NewCmdBuffer creates a new command buffer.
func (g *GPU) NewCmdBuffer() (driver.CmdBuffer, error) {
	pinfo := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
		QueueFamilyIndex: g.qfam,
	}
	var pool vk.CommandPool
	if res := vk.CreateCommandPool(g.dev, &pinfo, nil, &pool); res != vk.Success {
		return nil, errFor(res)
	}
	ainfo := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: 1,
	}
	cbs := make([]vk.CommandBuffer, 1)
	if res := vk.AllocateCommandBuffers(g.dev, &ainfo, cbs); res != vk.Success {
		vk.DestroyCommandPool(g.dev, pool, nil)
		return nil, errFor(res)
	}
	return &cmdBuffer{g: g, pool: pool, cb: cbs[0]}, nil
}

// Begin prepares the command buffer for recording.
func (c *cmdBuffer) Begin() error {
	if c.recording {
		return errors.New("vk: command buffer is already recording")
	}
	if c.ready {
		return errors.New("vk: command buffer awaiting commit")
	}
	info := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	if res := vk.BeginCommandBuffer(c.cb, &info); res != vk.Success {
		return errFor(res)
	}
	c.recording = true
	c.inPass = false
	c.debugDepth = 0
	return nil
}

// End ends command recording.
func (c *cmdBuffer) End() error {
	if !c.recording {
		return errors.New("vk: command buffer is not recording")
	}
	if c.inPass || c.debugDepth != 0 {
		c.Reset()
		return errors.New("vk: unbalanced command buffer")
	}
	c.recording = false
	if res := vk.EndCommandBuffer(c.cb); res != vk.Success {
		c.Reset()
		return errFor(res)
	}
	c.ready = true
	return nil
}

// Reset discards all recorded commands.
func (c *cmdBuffer) Reset() error {
	c.recording = false
	c.ready = false
	c.inPass = false
	c.debugDepth = 0
	return errFor(vk.ResetCommandBuffer(c.cb, 0))
}

// Destroy destroys the command buffer.
func (c *cmdBuffer) Destroy() {
	if c.g != nil {
		c.g.waitPending()
		vk.DestroyCommandPool(c.g.dev, c.pool, nil)
	}
	*c = cmdBuffer{}
}

func (c *cmdBuffer) record() {
	if !c.recording {
		panic("vk: command recorded outside Begin/End")
	}
}

// BeginPass begins a render pass targeting fb.
func (c *cmdBuffer) BeginPass(pass driver.RenderPass, fb driver.Framebuf, clear []driver.ClearValue) {
	c.record()
	if c.inPass {
		panic("vk: BeginPass within render pass")
	}
	p := pass.(*renderPass)
	f := fb.(*framebuf)
	// Clear values are consumed in attachment order by the
	// attachments whose load op clears.
	cvs := make([]vk.ClearValue, len(p.atts))
	next := 0
	for i := range p.atts {
		if p.atts[i].Load != driver.LClear || next >= len(clear) {
			continue
		}
		if p.atts[i].Format.IsDepthStencil() {
			cvs[i].SetDepthStencil(clear[next].Depth, clear[next].Stencil)
		} else {
			cvs[i].SetColor(clear[next].Color[:])
		}
		next++
	}
	info := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  p.pass,
		Framebuffer: f.fb,
		RenderArea: vk.Rect2D{
			Extent: vk.Extent2D{
				Width:  uint32(f.width),
				Height: uint32(f.height),
			},
		},
		ClearValueCount: uint32(len(cvs)),
		PClearValues:    cvs,
	}
	vk.CmdBeginRenderPass(c.cb, &info, vk.SubpassContentsInline)
	c.inPass = true
}

// EndPass ends the current render pass.
func (c *cmdBuffer) EndPass() {
	c.record()
	if !c.inPass {
		panic("vk: EndPass outside render pass")
	}
	vk.CmdEndRenderPass(c.cb)
	c.inPass = false
}

// SetPipeline sets the pipeline.
func (c *cmdBuffer) SetPipeline(pl driver.Pipeline) {
	c.record()
	p := pl.(*pipeline)
	vk.CmdBindPipeline(c.cb, p.point, p.pl)
}

// SetViewport sets the bounds of one or more viewports.
func (c *cmdBuffer) SetViewport(vp []driver.Viewport) {
	c.record()
	nvp := make([]vk.Viewport, len(vp))
	for i := range vp {
		nvp[i] = vk.Viewport{
			X:        vp[i].X,
			Y:        vp[i].Y,
			Width:    vp[i].Width,
			Height:   vp[i].Height,
			MinDepth: vp[i].Znear,
			MaxDepth: vp[i].Zfar,
		}
	}
	vk.CmdSetViewport(c.cb, 0, uint32(len(nvp)), nvp)
}

// SetScissor sets the rectangles of one or more viewport
// scissors.
func (c *cmdBuffer) SetScissor(sciss []driver.Scissor) {
	c.record()
	nsc := make([]vk.Rect2D, len(sciss))
	for i := range sciss {
		nsc[i] = vk.Rect2D{
			Offset: vk.Offset2D{X: int32(sciss[i].X), Y: int32(sciss[i].Y)},
			Extent: vk.Extent2D{Width: uint32(sciss[i].Width), Height: uint32(sciss[i].Height)},
		}
	}
	vk.CmdSetScissor(c.cb, 0, uint32(len(nsc)), nsc)
}

// SetBlendColor sets the constant blend color.
func (c *cmdBuffer) SetBlendColor(r, g, b, a float32) {
	c.record()
	vk.CmdSetBlendConstants(c.cb, &[4]float32{r, g, b, a})
}

// SetStencilRef sets the stencil reference value.
func (c *cmdBuffer) SetStencilRef(value uint32) {
	c.record()
	vk.CmdSetStencilReference(c.cb, vk.StencilFaceFlags(vk.StencilFrontAndBack), value)
}

// SetResourceHeap sets the resource heap.
// The heap's descriptor set is bound for both pipeline
// kinds; the shared layout keeps them compatible.
func (c *cmdBuffer) SetResourceHeap(h driver.ResourceHeap) {
	c.record()
	rh := h.(*resourceHeap)
	layout := rh.g.shared.pipeln
	sets := []vk.DescriptorSet{rh.set}
	vk.CmdBindDescriptorSets(c.cb, vk.PipelineBindPointGraphics, layout, 0, 1, sets, 0, nil)
	vk.CmdBindDescriptorSets(c.cb, vk.PipelineBindPointCompute, layout, 0, 1, sets, 0, nil)
}

// SetVertexBuf sets one or more vertex buffers.
func (c *cmdBuffer) SetVertexBuf(start int, buf []driver.Buffer, off []int64) {
	c.record()
	if len(buf) != len(off) {
		panic("vk: vertex buffer/offset count mismatch")
	}
	nbuf := make([]vk.Buffer, len(buf))
	noff := make([]vk.DeviceSize, len(off))
	for i := range buf {
		nbuf[i] = buf[i].(*buffer).buf
		noff[i] = vk.DeviceSize(off[i])
	}
	vk.CmdBindVertexBuffers(c.cb, uint32(start), uint32(len(nbuf)), nbuf, noff)
}

// SetIndexBuf sets the index buffer.
func (c *cmdBuffer) SetIndexBuf(format driver.IndexFmt, buf driver.Buffer, off int64) {
	c.record()
	typ := vk.IndexTypeUint16
	if format == driver.Index32 {
		typ = vk.IndexTypeUint32
	}
	vk.CmdBindIndexBuffer(c.cb, buf.(*buffer).buf, vk.DeviceSize(off), typ)
}

// Draw draws primitives.
func (c *cmdBuffer) Draw(vertCount, instCount, baseVert, baseInst int) {
	c.record()
	if !c.inPass {
		panic("vk: Draw outside render pass")
	}
	vk.CmdDraw(c.cb, uint32(vertCount), uint32(instCount), uint32(baseVert), uint32(baseInst))
}

// DrawIndexed draws indexed primitives.
func (c *cmdBuffer) DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) {
	c.record()
	if !c.inPass {
		panic("vk: DrawIndexed outside render pass")
	}
	vk.CmdDrawIndexed(c.cb, uint32(idxCount), uint32(instCount), uint32(baseIdx), int32(vertOff), uint32(baseInst))
}

// Dispatch dispatches compute thread groups.
func (c *cmdBuffer) Dispatch(grpCountX, grpCountY, grpCountZ int) {
	c.record()
	if c.inPass {
		panic("vk: Dispatch within render pass")
	}
	vk.CmdDispatch(c.cb, uint32(grpCountX), uint32(grpCountY), uint32(grpCountZ))
}

// CopyBuffer copies data between buffers.
func (c *cmdBuffer) CopyBuffer(param *driver.BufferCopy) {
	c.record()
	region := []vk.BufferCopy{{
		SrcOffset: vk.DeviceSize(param.FromOff),
		DstOffset: vk.DeviceSize(param.ToOff),
		Size:      vk.DeviceSize(param.Size),
	}}
	vk.CmdCopyBuffer(c.cb, param.From.(*buffer).buf, param.To.(*buffer).buf, 1, region)
}

// transitionImage records a layout transition of an image
// subresource range, with stage and access masks derived
// from the two layouts.
func (c *cmdBuffer) transitionImage(m *image, before, after driver.Layout, layer, layers, level, levels int) {
	srcStage, srcAccess := layoutStageAccess(before)
	dstStage, dstAccess := layoutStageAccess(after)
	barrier := []vk.ImageMemoryBarrier{{
		SType:               vk.StructureTypeImageMemoryBarrier,
		SrcAccessMask:       srcAccess,
		DstAccessMask:       dstAccess,
		OldLayout:           convLayout(before),
		NewLayout:           convLayout(after),
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               m.img,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     aspectOf(m.pf),
			BaseMipLevel:   uint32(level),
			LevelCount:     uint32(levels),
			BaseArrayLayer: uint32(layer),
			LayerCount:     uint32(layers),
		},
	}}
	vk.CmdPipelineBarrier(c.cb, srcStage, dstStage, 0, 0, nil, 0, nil, 1, barrier)
}

// subresourceLayers describes one mip level of a layer range
// for a copy command.
func subresourceLayers(m *image, layer, layers, level int) vk.ImageSubresourceLayers {
	return vk.ImageSubresourceLayers{
		AspectMask:     aspectOf(m.pf),
		MipLevel:       uint32(level),
		BaseArrayLayer: uint32(layer),
		LayerCount:     uint32(layers),
	}
}

// CopyImage copies data between images.
// Both images are brought into copy layouts for the native
// command and restored to the layouts given in param.
func (c *cmdBuffer) CopyImage(param *driver.ImageCopy) {
	c.record()
	from := param.From.(*image)
	to := param.To.(*image)
	layers := param.Layers
	if layers < 1 {
		layers = 1
	}
	if param.FromLayout != driver.LCopySrc {
		c.transitionImage(from, param.FromLayout, driver.LCopySrc, param.FromLayer, layers, param.FromLevel, 1)
	}
	if param.ToLayout != driver.LCopyDst {
		c.transitionImage(to, param.ToLayout, driver.LCopyDst, param.ToLayer, layers, param.ToLevel, 1)
	}
	extent := vk.Extent3D{
		Width:  uint32(param.Size.Width),
		Height: uint32(param.Size.Height),
		Depth:  uint32(param.Size.Depth),
	}
	srcOff := vk.Offset3D{X: int32(param.FromOff.X), Y: int32(param.FromOff.Y), Z: int32(param.FromOff.Z)}
	dstOff := vk.Offset3D{X: int32(param.ToOff.X), Y: int32(param.ToOff.Y), Z: int32(param.ToOff.Z)}
	if from.samples > 1 && to.samples == 1 {
		region := []vk.ImageResolve{{
			SrcSubresource: subresourceLayers(from, param.FromLayer, layers, param.FromLevel),
			SrcOffset:      srcOff,
			DstSubresource: subresourceLayers(to, param.ToLayer, layers, param.ToLevel),
			DstOffset:      dstOff,
			Extent:         extent,
		}}
		vk.CmdResolveImage(c.cb, from.img, vk.ImageLayoutTransferSrcOptimal, to.img, vk.ImageLayoutTransferDstOptimal, 1, region)
	} else {
		region := []vk.ImageCopy{{
			SrcSubresource: subresourceLayers(from, param.FromLayer, layers, param.FromLevel),
			SrcOffset:      srcOff,
			DstSubresource: subresourceLayers(to, param.ToLayer, layers, param.ToLevel),
			DstOffset:      dstOff,
			Extent:         extent,
		}}
		vk.CmdCopyImage(c.cb, from.img, vk.ImageLayoutTransferSrcOptimal, to.img, vk.ImageLayoutTransferDstOptimal, 1, region)
	}
	if param.FromLayout != driver.LCopySrc {
		c.transitionImage(from, driver.LCopySrc, param.FromLayout, param.FromLayer, layers, param.FromLevel, 1)
	}
	if param.ToLayout != driver.LCopyDst {
		c.transitionImage(to, driver.LCopyDst, param.ToLayout, param.ToLayer, layers, param.ToLevel, 1)
	}
}

// bufImgRegion builds the native region of a buffer/image
// copy.
func bufImgRegion(param *driver.BufImgCopy) []vk.BufferImageCopy {
	m := param.Img.(*image)
	layers := param.Layers
	if layers < 1 {
		layers = 1
	}
	return []vk.BufferImageCopy{{
		BufferOffset:      vk.DeviceSize(param.BufOff),
		BufferRowLength:   uint32(param.Stride[0]),
		BufferImageHeight: uint32(param.Stride[1]),
		ImageSubresource:  subresourceLayers(m, param.Layer, layers, param.Level),
		ImageOffset: vk.Offset3D{
			X: int32(param.ImgOff.X),
			Y: int32(param.ImgOff.Y),
			Z: int32(param.ImgOff.Z),
		},
		ImageExtent: vk.Extent3D{
			Width:  uint32(param.Size.Width),
			Height: uint32(param.Size.Height),
			Depth:  uint32(param.Size.Depth),
		},
	}}
}

// CopyBufToImg copies data from a buffer to an image.
func (c *cmdBuffer) CopyBufToImg(param *driver.BufImgCopy) {
	c.record()
	m := param.Img.(*image)
	layers := param.Layers
	if layers < 1 {
		layers = 1
	}
	if param.ImgLayout != driver.LCopyDst {
		c.transitionImage(m, param.ImgLayout, driver.LCopyDst, param.Layer, layers, param.Level, 1)
	}
	vk.CmdCopyBufferToImage(c.cb, param.Buf.(*buffer).buf, m.img, vk.ImageLayoutTransferDstOptimal, 1, bufImgRegion(param))
	if param.ImgLayout != driver.LCopyDst {
		c.transitionImage(m, driver.LCopyDst, param.ImgLayout, param.Layer, layers, param.Level, 1)
	}
}

// CopyImgToBuf copies data from an image to a buffer.
func (c *cmdBuffer) CopyImgToBuf(param *driver.BufImgCopy) {
	c.record()
	m := param.Img.(*image)
	layers := param.Layers
	if layers < 1 {
		layers = 1
	}
	if param.ImgLayout != driver.LCopySrc {
		c.transitionImage(m, param.ImgLayout, driver.LCopySrc, param.Layer, layers, param.Level, 1)
	}
	vk.CmdCopyImageToBuffer(c.cb, m.img, vk.ImageLayoutTransferSrcOptimal, param.Buf.(*buffer).buf, 1, bufImgRegion(param))
	if param.ImgLayout != driver.LCopySrc {
		c.transitionImage(m, driver.LCopySrc, param.ImgLayout, param.Layer, layers, param.Level, 1)
	}
}

// fillPattern replicates a byte value into the 32-bit fill
// word.
func fillPattern(value byte) uint32 {
	v := uint32(value)
	return v | v<<8 | v<<16 | v<<24
}

// Fill fills a buffer range with copies of a byte value.
func (c *cmdBuffer) Fill(buf driver.Buffer, off int64, value byte, size int64) {
	c.record()
	if off%4 != 0 || size%4 != 0 {
		panic("vk: misaligned buffer fill")
	}
	vk.CmdFillBuffer(c.cb, buf.(*buffer).buf, vk.DeviceSize(off), vk.DeviceSize(size), fillPattern(value))
}

// GenMips generates the full mip chain of img, one layer at
// a time in ascending level order. Each level is blitted
// from the one above it, so every level derives from the
// base. img must be in the LShaderRead layout and every
// level is left in it.
func (c *cmdBuffer) GenMips(img driver.Image) {
	c.record()
	if c.inPass {
		panic("vk: GenMips within render pass")
	}
	m := img.(*image)
	for layer := 0; layer < m.layers; layer++ {
		for level := 1; level < m.levels; level++ {
			c.transitionImage(m, driver.LShaderRead, driver.LCopySrc, layer, 1, level-1, 1)
			c.transitionImage(m, driver.LShaderRead, driver.LCopyDst, layer, 1, level, 1)
			blit := []vk.ImageBlit{{
				SrcSubresource: subresourceLayers(m, layer, 1, level-1),
				SrcOffsets: [2]vk.Offset3D{{}, {
					X: int32(mipExtent(m.size.Width, level-1)),
					Y: int32(mipExtent(m.size.Height, level-1)),
					Z: int32(mipExtent(m.size.Depth, level-1)),
				}},
				DstSubresource: subresourceLayers(m, layer, 1, level),
				DstOffsets: [2]vk.Offset3D{{}, {
					X: int32(mipExtent(m.size.Width, level)),
					Y: int32(mipExtent(m.size.Height, level)),
					Z: int32(mipExtent(m.size.Depth, level)),
				}},
			}}
			vk.CmdBlitImage(c.cb, m.img, vk.ImageLayoutTransferSrcOptimal, m.img, vk.ImageLayoutTransferDstOptimal, 1, blit, vk.FilterLinear)
			c.transitionImage(m, driver.LCopySrc, driver.LShaderRead, layer, 1, level-1, 1)
			c.transitionImage(m, driver.LCopyDst, driver.LShaderRead, layer, 1, level, 1)
		}
	}
}

// Barrier inserts a number of global barriers.
func (c *cmdBuffer) Barrier(b []driver.Barrier) {
	c.record()
	if len(b) == 0 {
		return
	}
	var srcStage, dstStage vk.PipelineStageFlags
	nb := make([]vk.MemoryBarrier, len(b))
	for i := range b {
		srcStage |= convSync(b[i].SyncBefore)
		dstStage |= convSync(b[i].SyncAfter)
		nb[i] = vk.MemoryBarrier{
			SType:         vk.StructureTypeMemoryBarrier,
			SrcAccessMask: convAccess(b[i].AccessBefore),
			DstAccessMask: convAccess(b[i].AccessAfter),
		}
	}
	if srcStage == 0 {
		srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
	}
	if dstStage == 0 {
		dstStage = vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)
	}
	vk.CmdPipelineBarrier(c.cb, srcStage, dstStage, 0, uint32(len(nb)), nb, 0, nil, 0, nil)
}

// Transition inserts a number of image layout transitions.
// Explicit synchronization scopes take precedence; when a
// transition leaves them zero, the masks derive from the
// two layouts.
func (c *cmdBuffer) Transition(t []driver.Transition) {
	c.record()
	for i := range t {
		layers := t[i].Layers
		if layers < 1 {
			layers = 1
		}
		levels := t[i].Levels
		if levels < 1 {
			levels = 1
		}
		m := t[i].Img.(*image)
		if t[i].Barrier == (driver.Barrier{}) {
			c.transitionImage(m, t[i].LayoutBefore, t[i].LayoutAfter, t[i].Layer, layers, t[i].Level, levels)
			continue
		}
		srcStage := convSync(t[i].SyncBefore)
		dstStage := convSync(t[i].SyncAfter)
		if srcStage == 0 {
			srcStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		}
		if dstStage == 0 {
			dstStage = vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit)
		}
		barrier := []vk.ImageMemoryBarrier{{
			SType:               vk.StructureTypeImageMemoryBarrier,
			SrcAccessMask:       convAccess(t[i].AccessBefore),
			DstAccessMask:       convAccess(t[i].AccessAfter),
			OldLayout:           convLayout(t[i].LayoutBefore),
			NewLayout:           convLayout(t[i].LayoutAfter),
			SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
			DstQueueFamilyIndex: vk.QueueFamilyIgnored,
			Image:               m.img,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask:     aspectOf(m.pf),
				BaseMipLevel:   uint32(t[i].Level),
				LevelCount:     uint32(levels),
				BaseArrayLayer: uint32(t[i].Layer),
				LayerCount:     uint32(layers),
			},
		}}
		vk.CmdPipelineBarrier(c.cb, srcStage, dstStage, 0, 0, nil, 0, nil, 1, barrier)
	}
}

// PushDebugGroup opens a named debug group.
// Labels need an instance extension the driver does not
// enable; groups only take part in End balancing.
func (c *cmdBuffer) PushDebugGroup(name string) {
	c.record()
	c.debugDepth++
}

// PopDebugGroup closes the innermost debug group.
func (c *cmdBuffer) PopDebugGroup() {
	c.record()
	if c.debugDepth == 0 {
		panic("vk: PopDebugGroup without matching push")
	}
	c.debugDepth--
}
