// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"errors"

	"github.com/RayGyoe/LLGL/driver"
)

// cmdBuffer implements driver.CmdBuffer.
// Recording appends tagged opcodes to a byte stream; commit
// replays the stream front to back on the context thread,
// so execution order always equals recording order.
type cmdBuffer struct {
	g          *GPU
	cs         cmdStream
	recording  bool
	ready      bool
	inPass     bool
	debugDepth int
}

// NewCmdBuffer creates a new command buffer.
func (g *GPU) NewCmdBuffer() (driver.CmdBuffer, error) {
	return &cmdBuffer{g: g}, nil
}

// Begin prepares the command buffer for recording.
func (cb *cmdBuffer) Begin() error {
	switch {
	case cb.recording:
		return errors.New("gl: Begin called on recording command buffer")
	case cb.ready:
		return errors.New("gl: Begin called on pending command buffer")
	}
	cb.recording = true
	return nil
}

// End ends command recording.
func (cb *cmdBuffer) End() error {
	if !cb.recording {
		return errors.New("gl: End called on non-recording command buffer")
	}
	if cb.inPass || cb.debugDepth != 0 {
		cb.Reset()
		return errors.New("gl: End called with unbalanced pass or debug group")
	}
	cb.recording = false
	cb.ready = true
	return nil
}

// Reset discards all recorded commands.
func (cb *cmdBuffer) Reset() error {
	cb.cs.reset()
	cb.recording = false
	cb.ready = false
	cb.inPass = false
	cb.debugDepth = 0
	return nil
}

// Destroy destroys the command buffer.
func (cb *cmdBuffer) Destroy() { *cb = cmdBuffer{} }

func (cb *cmdBuffer) record() *cmdStream {
	if !cb.recording {
		panic("gl: command recorded outside Begin/End")
	}
	return &cb.cs
}

// BeginPass begins a render pass.
func (cb *cmdBuffer) BeginPass(pass driver.RenderPass, fb driver.Framebuf, clear []driver.ClearValue) {
	s := cb.record()
	if cb.inPass {
		panic("gl: BeginPass within render pass")
	}
	cb.inPass = true
	s.op(opBeginPass)
	s.ref(pass.(*renderPass))
	s.ref(fb.(*framebuf))
	s.i32(len(clear))
	for i := range clear {
		for _, v := range clear[i].Color {
			s.f32(v)
		}
		s.f32(clear[i].Depth)
		s.u32(clear[i].Stencil)
	}
}

// EndPass ends the current render pass.
func (cb *cmdBuffer) EndPass() {
	s := cb.record()
	if !cb.inPass {
		panic("gl: EndPass outside render pass")
	}
	cb.inPass = false
	s.op(opEndPass)
}

// SetPipeline sets the pipeline.
func (cb *cmdBuffer) SetPipeline(pl driver.Pipeline) {
	s := cb.record()
	s.op(opSetPipeline)
	s.ref(pl.(*pipeline))
}

// SetViewport sets the bounds of one or more viewports.
func (cb *cmdBuffer) SetViewport(vp []driver.Viewport) {
	s := cb.record()
	s.op(opSetViewport)
	s.i32(len(vp))
	for i := range vp {
		s.f32(vp[i].X)
		s.f32(vp[i].Y)
		s.f32(vp[i].Width)
		s.f32(vp[i].Height)
		s.f32(vp[i].Znear)
		s.f32(vp[i].Zfar)
	}
}

// SetScissor sets the rectangles of one or more scissors.
func (cb *cmdBuffer) SetScissor(sciss []driver.Scissor) {
	s := cb.record()
	s.op(opSetScissor)
	s.i32(len(sciss))
	for i := range sciss {
		s.i32(sciss[i].X)
		s.i32(sciss[i].Y)
		s.i32(sciss[i].Width)
		s.i32(sciss[i].Height)
	}
}

// SetBlendColor sets the constant blend color.
func (cb *cmdBuffer) SetBlendColor(r, g, b, a float32) {
	s := cb.record()
	s.op(opSetBlendColor)
	s.f32(r)
	s.f32(g)
	s.f32(b)
	s.f32(a)
}

// SetStencilRef sets the stencil reference value.
func (cb *cmdBuffer) SetStencilRef(value uint32) {
	s := cb.record()
	s.op(opSetStencilRef)
	s.u32(value)
}

// SetResourceHeap sets the resource heap.
func (cb *cmdBuffer) SetResourceHeap(h driver.ResourceHeap) {
	s := cb.record()
	s.op(opSetResourceHeap)
	s.ref(h.(*resourceHeap))
}

// SetVertexBuf sets one or more vertex buffers.
func (cb *cmdBuffer) SetVertexBuf(start int, buf []driver.Buffer, off []int64) {
	s := cb.record()
	if len(buf) != len(off) {
		panic("gl: vertex buffer/offset count mismatch")
	}
	s.op(opSetVertexBuf)
	s.i32(start)
	s.i32(len(buf))
	for i := range buf {
		s.ref(buf[i].(*buffer))
		s.i64(off[i])
	}
}

// SetIndexBuf sets the index buffer.
func (cb *cmdBuffer) SetIndexBuf(format driver.IndexFmt, buf driver.Buffer, off int64) {
	s := cb.record()
	s.op(opSetIndexBuf)
	s.u32(uint32(format))
	s.ref(buf.(*buffer))
	s.i64(off)
}

// Draw draws primitives.
func (cb *cmdBuffer) Draw(vertCount, instCount, baseVert, baseInst int) {
	s := cb.record()
	if !cb.inPass {
		panic("gl: Draw outside render pass")
	}
	s.op(opDraw)
	s.i32(vertCount)
	s.i32(instCount)
	s.i32(baseVert)
	s.i32(baseInst)
}

// DrawIndexed draws indexed primitives.
func (cb *cmdBuffer) DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int) {
	s := cb.record()
	if !cb.inPass {
		panic("gl: DrawIndexed outside render pass")
	}
	s.op(opDrawIndexed)
	s.i32(idxCount)
	s.i32(instCount)
	s.i32(baseIdx)
	s.i32(vertOff)
	s.i32(baseInst)
}

// Dispatch dispatches compute thread groups.
func (cb *cmdBuffer) Dispatch(grpCountX, grpCountY, grpCountZ int) {
	s := cb.record()
	if cb.inPass {
		panic("gl: Dispatch within render pass")
	}
	s.op(opDispatch)
	s.i32(grpCountX)
	s.i32(grpCountY)
	s.i32(grpCountZ)
}

// CopyBuffer copies data between buffers.
func (cb *cmdBuffer) CopyBuffer(param *driver.BufferCopy) {
	s := cb.record()
	s.op(opCopyBuffer)
	s.ref(param.From.(*buffer))
	s.ref(param.To.(*buffer))
	s.i64(param.FromOff)
	s.i64(param.ToOff)
	s.i64(param.Size)
}

// CopyImage copies data between images.
// Layouts are tracked by the GL driver itself, so the
// layout fields are ignored.
func (cb *cmdBuffer) CopyImage(param *driver.ImageCopy) {
	s := cb.record()
	s.op(opCopyImage)
	s.ref(param.From.(*image))
	s.ref(param.To.(*image))
	s.i32(param.FromOff.X)
	s.i32(param.FromOff.Y)
	s.i32(param.FromOff.Z)
	s.i32(param.FromLayer)
	s.i32(param.FromLevel)
	s.i32(param.ToOff.X)
	s.i32(param.ToOff.Y)
	s.i32(param.ToOff.Z)
	s.i32(param.ToLayer)
	s.i32(param.ToLevel)
	s.i32(param.Size.Width)
	s.i32(param.Size.Height)
	s.i32(param.Size.Depth)
	s.i32(param.Layers)
}

func (cb *cmdBuffer) copyBufImg(op opcode, param *driver.BufImgCopy) {
	s := cb.record()
	s.op(op)
	s.ref(param.Buf.(*buffer))
	s.ref(param.Img.(*image))
	s.i64(param.BufOff)
	s.i64(param.Stride[0])
	s.i64(param.Stride[1])
	s.i32(param.ImgOff.X)
	s.i32(param.ImgOff.Y)
	s.i32(param.ImgOff.Z)
	s.i32(param.Layer)
	s.i32(param.Layers)
	s.i32(param.Level)
	s.i32(param.Size.Width)
	s.i32(param.Size.Height)
	s.i32(param.Size.Depth)
}

// CopyBufToImg copies data from a buffer to an image.
func (cb *cmdBuffer) CopyBufToImg(param *driver.BufImgCopy) {
	cb.copyBufImg(opCopyBufToImg, param)
}

// CopyImgToBuf copies data from an image to a buffer.
func (cb *cmdBuffer) CopyImgToBuf(param *driver.BufImgCopy) {
	cb.copyBufImg(opCopyImgToBuf, param)
}

// Fill fills a buffer range with copies of a byte value.
func (cb *cmdBuffer) Fill(buf driver.Buffer, off int64, value byte, size int64) {
	s := cb.record()
	if off&3 != 0 || size&3 != 0 {
		panic("gl: fill range not aligned to 4 bytes")
	}
	s.op(opFill)
	s.ref(buf.(*buffer))
	s.i64(off)
	s.u32(uint32(value))
	s.i64(size)
}

// GenMips generates the full mip chain of img.
func (cb *cmdBuffer) GenMips(img driver.Image) {
	s := cb.record()
	s.op(opGenMips)
	s.ref(img.(*image))
}

// Barrier inserts a number of global barriers.
func (cb *cmdBuffer) Barrier(b []driver.Barrier) {
	s := cb.record()
	if len(b) == 0 {
		return
	}
	s.op(opBarrier)
}

// Transition inserts a number of layout transitions.
// GL tracks image layouts implicitly, so nothing needs to
// be recorded.
func (cb *cmdBuffer) Transition(t []driver.Transition) {
	cb.record()
}

// PushDebugGroup opens a named debug group.
func (cb *cmdBuffer) PushDebugGroup(name string) {
	s := cb.record()
	cb.debugDepth++
	s.op(opPushDebugGroup)
	s.str(name)
}

// PopDebugGroup closes the innermost debug group.
func (cb *cmdBuffer) PopDebugGroup() {
	s := cb.record()
	if cb.debugDepth == 0 {
		panic("gl: PopDebugGroup without matching push")
	}
	cb.debugDepth--
	s.op(opPopDebugGroup)
}

// imgName returns the native object of an image for use in
// raw copies.
func imgName(m *image) (uint32, Enum) {
	if m.rb != 0 {
		return m.rb, RENDERBUFFER
	}
	return m.id, m.target
}

// isArrayTarget returns whether layers map to the Z
// coordinate of a target.
func isArrayTarget(t Enum) bool {
	switch t {
	case TEXTURE_1D_ARRAY, TEXTURE_2D_ARRAY, TEXTURE_CUBE_MAP, TEXTURE_CUBE_MAP_ARRAY, TEXTURE_2D_MULTISAMPLE_ARRAY:
		return true
	}
	return false
}

// zRange maps an offset/extent plus layer range to the Z
// coordinate space of a target.
func zRange(t Enum, z, depth, layer, layers int) (int, int) {
	if isArrayTarget(t) {
		return layer, layers
	}
	if t == TEXTURE_3D {
		return z, depth
	}
	return 0, 1
}

// replay executes the recorded stream against the context.
// It panics on a corrupt stream, since replaying past an
// unknown opcode would misinterpret every byte after it.
func (cb *cmdBuffer) replay() {
	s := cb.g.state
	fn := s.fn
	var pl *pipeline
	var pass *renderPass
	var idxType Enum
	var idxSize int
	var idxOff int64
	r := cmdReader{s: &cb.cs}
	for r.more() {
		switch op := r.op(); op {
		case opBeginPass:
			pass = r.ref().(*renderPass)
			fb := r.ref().(*framebuf)
			n := r.i32()
			clear := make([]driver.ClearValue, n)
			for i := range clear {
				for j := range clear[i].Color {
					clear[i].Color[j] = r.f32()
				}
				clear[i].Depth = r.f32()
				clear[i].Stencil = r.u32()
			}
			s.BindFramebuffer(FRAMEBUFFER, fb.id)
			s.SetRenderTarget(fb.height, true)
			// Load op clears ignore the scissor.
			s.PushCapability(SCISSOR_TEST)
			s.SetCapability(SCISSOR_TEST, false)
			for i := range pass.atts {
				if pass.atts[i].Load != driver.LClear || i >= len(clear) {
					continue
				}
				if ci := fb.colorIdx[i]; ci >= 0 {
					s.ClearColorAttachment(ci, clear[i].Color)
				} else {
					pf := pass.atts[i].Format
					s.ClearDepthStencilAttachment(pf.IsDepth(), pf.IsStencil(), clear[i].Depth, int(clear[i].Stencil))
				}
			}
			s.PopCapability()
		case opEndPass:
			pass = nil
		case opSetPipeline:
			pl = r.ref().(*pipeline)
			pl.bind()
		case opSetViewport:
			n := r.i32()
			vp := make([]driver.Viewport, n)
			for i := range vp {
				vp[i].X = r.f32()
				vp[i].Y = r.f32()
				vp[i].Width = r.f32()
				vp[i].Height = r.f32()
				vp[i].Znear = r.f32()
				vp[i].Zfar = r.f32()
			}
			s.SetViewports(vp)
		case opSetScissor:
			n := r.i32()
			sciss := make([]driver.Scissor, n)
			for i := range sciss {
				sciss[i].X = r.i32()
				sciss[i].Y = r.i32()
				sciss[i].Width = r.i32()
				sciss[i].Height = r.i32()
			}
			s.SetScissors(sciss)
		case opSetBlendColor:
			c := [4]float32{r.f32(), r.f32(), r.f32(), r.f32()}
			s.SetBlendColor(c[0], c[1], c[2], c[3])
		case opSetStencilRef:
			s.SetStencilRef(int(r.u32()))
		case opSetResourceHeap:
			r.ref().(*resourceHeap).apply()
		case opSetVertexBuf:
			start := r.i32()
			n := r.i32()
			for i := 0; i < n; i++ {
				buf := r.ref().(*buffer)
				off := r.i64()
				binding := start + i
				stride := 0
				if pl != nil && binding < len(pl.strides) {
					stride = pl.strides[binding]
				}
				fn.BindVertexBuffer(binding, buf.id, int(off), stride)
			}
		case opSetIndexBuf:
			format := driver.IndexFmt(r.u32())
			buf := r.ref().(*buffer)
			idxOff = r.i64()
			if format == driver.Index16 {
				idxType, idxSize = UNSIGNED_SHORT, 2
			} else {
				idxType, idxSize = UNSIGNED_INT, 4
			}
			s.BindBuffer(ELEMENT_ARRAY_BUFFER, buf.id)
		case opDraw:
			vertCount := r.i32()
			instCount := r.i32()
			baseVert := r.i32()
			baseInst := r.i32()
			fn.DrawArraysInstancedBaseInstance(pl.topology, baseVert, vertCount, instCount, baseInst)
		case opDrawIndexed:
			idxCount := r.i32()
			instCount := r.i32()
			baseIdx := r.i32()
			vertOff := r.i32()
			baseInst := r.i32()
			indices := uintptr(idxOff) + uintptr(baseIdx*idxSize)
			fn.DrawElementsInstancedBaseVertexBaseInstance(pl.topology, idxCount, idxType, indices, instCount, vertOff, baseInst)
		case opDispatch:
			x := r.i32()
			y := r.i32()
			z := r.i32()
			fn.DispatchCompute(x, y, z)
		case opCopyBuffer:
			from := r.ref().(*buffer)
			to := r.ref().(*buffer)
			fromOff := r.i64()
			toOff := r.i64()
			size := r.i64()
			s.BindBuffer(COPY_READ_BUFFER, from.id)
			s.BindBuffer(COPY_WRITE_BUFFER, to.id)
			fn.CopyBufferSubData(COPY_READ_BUFFER, COPY_WRITE_BUFFER, int(fromOff), int(toOff), int(size))
		case opCopyImage:
			from := r.ref().(*image)
			to := r.ref().(*image)
			fx, fy, fz := r.i32(), r.i32(), r.i32()
			fromLayer := r.i32()
			fromLevel := r.i32()
			tx, ty, tz := r.i32(), r.i32(), r.i32()
			toLayer := r.i32()
			toLevel := r.i32()
			w, h, d := r.i32(), r.i32(), r.i32()
			layers := r.i32()
			srcName, srcTarget := imgName(from)
			dstName, dstTarget := imgName(to)
			sz, sd := zRange(srcTarget, fz, d, fromLayer, layers)
			dz, _ := zRange(dstTarget, tz, d, toLayer, layers)
			fn.CopyImageSubData(srcName, srcTarget, fromLevel, fx, fy, sz, dstName, dstTarget, toLevel, tx, ty, dz, w, h, sd)
		case opCopyBufToImg:
			buf := r.ref().(*buffer)
			img := r.ref().(*image)
			bufOff := r.i64()
			rowLen := r.i64()
			imgHeight := r.i64()
			x, y, z := r.i32(), r.i32(), r.i32()
			layer := r.i32()
			layers := r.i32()
			level := r.i32()
			w, h, d := r.i32(), r.i32(), r.i32()
			_, format, typ, _ := convPixelFmt(img.pf)
			zz, dd := zRange(img.target, z, d, layer, layers)
			s.BindBuffer(PIXEL_UNPACK_BUFFER, buf.id)
			fn.PixelStorei(UNPACK_ROW_LENGTH, int(rowLen))
			fn.PixelStorei(UNPACK_IMAGE_HEIGHT, int(imgHeight))
			s.PushBoundTexture(0, img.target)
			s.BindTexture(0, img.target, img.id)
			fn.TexSubImage3D(img.target, level, x, y, zz, w, h, dd, format, typ, uintptr(bufOff))
			s.PopBoundTexture()
			fn.PixelStorei(UNPACK_ROW_LENGTH, 0)
			fn.PixelStorei(UNPACK_IMAGE_HEIGHT, 0)
			s.BindBuffer(PIXEL_UNPACK_BUFFER, 0)
		case opCopyImgToBuf:
			buf := r.ref().(*buffer)
			img := r.ref().(*image)
			bufOff := r.i64()
			rowLen := r.i64()
			imgHeight := r.i64()
			x, y, z := r.i32(), r.i32(), r.i32()
			layer := r.i32()
			layers := r.i32()
			level := r.i32()
			w, h, d := r.i32(), r.i32(), r.i32()
			_, format, typ, _ := convPixelFmt(img.pf)
			zz, dd := zRange(img.target, z, d, layer, layers)
			s.BindBuffer(PIXEL_PACK_BUFFER, buf.id)
			fn.PixelStorei(PACK_ROW_LENGTH, int(rowLen))
			fn.PixelStorei(PACK_IMAGE_HEIGHT, int(imgHeight))
			fn.GetTextureSubImage(img.id, level, x, y, zz, w, h, dd, format, typ, int(buf.size-bufOff), uintptr(bufOff))
			fn.PixelStorei(PACK_ROW_LENGTH, 0)
			fn.PixelStorei(PACK_IMAGE_HEIGHT, 0)
			s.BindBuffer(PIXEL_PACK_BUFFER, 0)
		case opFill:
			buf := r.ref().(*buffer)
			off := r.i64()
			value := byte(r.u32())
			size := r.i64()
			s.BindBuffer(COPY_WRITE_BUFFER, buf.id)
			fn.ClearBufferSubData(COPY_WRITE_BUFFER, R8, int(off), int(size), RED, UNSIGNED_BYTE, []byte{value})
		case opGenMips:
			img := r.ref().(*image)
			s.PushBoundTexture(0, img.target)
			s.BindTexture(0, img.target, img.id)
			fn.GenerateMipmap(img.target)
			s.PopBoundTexture()
		case opBarrier:
			fn.MemoryBarrier(ALL_BARRIER_BITS)
		case opPushDebugGroup:
			fn.PushDebugGroup(r.str())
		case opPopDebugGroup:
			fn.PopDebugGroup()
		default:
			panic("gl: unknown opcode in command stream")
		}
	}
}
