// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
)

// glFuncs implements Funcs by calling into a loaded GL 4.6
// core context.
type glFuncs struct{}

// loadFuncs loads the native entry points of the current
// context. A context must be current on the calling thread.
func loadFuncs() (Funcs, error) {
	if err := gl.Init(); err != nil {
		return nil, err
	}
	return glFuncs{}, nil
}

func (glFuncs) Enable(c Enum)  { gl.Enable(uint32(c)) }
func (glFuncs) Disable(c Enum) { gl.Disable(uint32(c)) }

func (glFuncs) ActiveTexture(unit Enum) { gl.ActiveTexture(uint32(unit)) }

func (glFuncs) BindBuffer(target Enum, b uint32) { gl.BindBuffer(uint32(target), b) }

func (glFuncs) BindBufferBase(target Enum, index int, b uint32) {
	gl.BindBufferBase(uint32(target), uint32(index), b)
}

func (glFuncs) BindBufferRange(target Enum, index int, b uint32, off, size int) {
	gl.BindBufferRange(uint32(target), uint32(index), b, off, size)
}

func (glFuncs) BindBuffersBase(target Enum, first int, bs []uint32) {
	var p *uint32
	if len(bs) > 0 {
		p = &bs[0]
	}
	gl.BindBuffersBase(uint32(target), uint32(first), int32(len(bs)), p)
}

func (glFuncs) BindTexture(target Enum, t uint32) { gl.BindTexture(uint32(target), t) }

func (glFuncs) BindTextures(first int, ts []uint32) {
	var p *uint32
	if len(ts) > 0 {
		p = &ts[0]
	}
	gl.BindTextures(uint32(first), int32(len(ts)), p)
}

func (glFuncs) BindImageTexture(unit int, t uint32, level int, layered bool, layer int, access, format Enum) {
	gl.BindImageTexture(uint32(unit), t, int32(level), layered, int32(layer), uint32(access), uint32(format))
}

func (glFuncs) BindSampler(unit int, s uint32) { gl.BindSampler(uint32(unit), s) }

func (glFuncs) BindSamplers(first int, ss []uint32) {
	var p *uint32
	if len(ss) > 0 {
		p = &ss[0]
	}
	gl.BindSamplers(uint32(first), int32(len(ss)), p)
}

func (glFuncs) BindFramebuffer(target Enum, f uint32) { gl.BindFramebuffer(uint32(target), f) }

func (glFuncs) BindRenderbuffer(target Enum, r uint32) { gl.BindRenderbuffer(uint32(target), r) }

func (glFuncs) BindVertexArray(a uint32) { gl.BindVertexArray(a) }

func (glFuncs) UseProgram(p uint32) { gl.UseProgram(p) }

func (glFuncs) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (glFuncs) ViewportIndexed(index int, x, y, width, height float32) {
	gl.ViewportIndexedf(uint32(index), x, y, width, height)
}

func (glFuncs) DepthRangeIndexed(index int, znear, zfar float64) {
	gl.DepthRangeIndexed(uint32(index), znear, zfar)
}

func (glFuncs) Scissor(x, y, width, height int) {
	gl.Scissor(int32(x), int32(y), int32(width), int32(height))
}

func (glFuncs) ScissorIndexed(index int, x, y, width, height int) {
	gl.ScissorIndexed(uint32(index), int32(x), int32(y), int32(width), int32(height))
}

func (glFuncs) FrontFace(dir Enum) { gl.FrontFace(uint32(dir)) }

func (glFuncs) CullFace(mode Enum) { gl.CullFace(uint32(mode)) }

func (glFuncs) PolygonMode(mode Enum) { gl.PolygonMode(uint32(FRONT_AND_BACK), uint32(mode)) }

func (glFuncs) PolygonOffset(factor, units float32) { gl.PolygonOffset(factor, units) }

func (glFuncs) LineWidth(width float32) { gl.LineWidth(width) }

func (glFuncs) DepthFunc(fn Enum) { gl.DepthFunc(uint32(fn)) }

func (glFuncs) DepthMask(write bool) { gl.DepthMask(write) }

func (glFuncs) StencilFuncSeparate(face, fn Enum, ref int, mask uint32) {
	gl.StencilFuncSeparate(uint32(face), uint32(fn), int32(ref), mask)
}

func (glFuncs) StencilOpSeparate(face, sfail, dpfail, dppass Enum) {
	gl.StencilOpSeparate(uint32(face), uint32(sfail), uint32(dpfail), uint32(dppass))
}

func (glFuncs) StencilMaskSeparate(face Enum, mask uint32) {
	gl.StencilMaskSeparate(uint32(face), mask)
}

func (glFuncs) ColorMask(r, g, b, a bool) { gl.ColorMask(r, g, b, a) }

func (glFuncs) ColorMaski(buf int, r, g, b, a bool) { gl.ColorMaski(uint32(buf), r, g, b, a) }

func (glFuncs) BlendEquationSeparate(modeRGB, modeAlpha Enum) {
	gl.BlendEquationSeparate(uint32(modeRGB), uint32(modeAlpha))
}

func (glFuncs) BlendEquationSeparatei(buf int, modeRGB, modeAlpha Enum) {
	gl.BlendEquationSeparatei(uint32(buf), uint32(modeRGB), uint32(modeAlpha))
}

func (glFuncs) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	gl.BlendFuncSeparate(uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (glFuncs) BlendFuncSeparatei(buf int, srcRGB, dstRGB, srcAlpha, dstAlpha Enum) {
	gl.BlendFuncSeparatei(uint32(buf), uint32(srcRGB), uint32(dstRGB), uint32(srcAlpha), uint32(dstAlpha))
}

func (glFuncs) BlendColor(r, g, b, a float32) { gl.BlendColor(r, g, b, a) }

func (glFuncs) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (glFuncs) ClearDepth(d float64) { gl.ClearDepth(d) }

func (glFuncs) ClearStencil(s int) { gl.ClearStencil(int32(s)) }

func (glFuncs) Clear(mask Enum) { gl.Clear(uint32(mask)) }

func (glFuncs) ClearBufferfv(buffer Enum, drawBuf int, v [4]float32) {
	gl.ClearBufferfv(uint32(buffer), int32(drawBuf), &v[0])
}

func (glFuncs) ClearBufferiv(buffer Enum, drawBuf int, v [4]int32) {
	gl.ClearBufferiv(uint32(buffer), int32(drawBuf), &v[0])
}

func (glFuncs) ClearBufferfi(buffer Enum, drawBuf int, depth float32, stencil int) {
	gl.ClearBufferfi(uint32(buffer), int32(drawBuf), depth, int32(stencil))
}

func (glFuncs) DrawArraysInstancedBaseInstance(mode Enum, first, count, instCount, baseInst int) {
	gl.DrawArraysInstancedBaseInstance(uint32(mode), int32(first), int32(count), int32(instCount), uint32(baseInst))
}

func (glFuncs) DrawElementsInstancedBaseVertexBaseInstance(mode Enum, count int, typ Enum, indices uintptr, instCount, baseVert, baseInst int) {
	gl.DrawElementsInstancedBaseVertexBaseInstance(uint32(mode), int32(count), uint32(typ), gl.PtrOffset(int(indices)), int32(instCount), int32(baseVert), uint32(baseInst))
}

func (glFuncs) DispatchCompute(x, y, z int) {
	gl.DispatchCompute(uint32(x), uint32(y), uint32(z))
}

func (glFuncs) MemoryBarrier(barriers Enum) { gl.MemoryBarrier(uint32(barriers)) }

func (glFuncs) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (glFuncs) DeleteBuffer(b uint32) { gl.DeleteBuffers(1, &b) }

func (glFuncs) BufferStorage(target Enum, size int, flags Enum) {
	gl.BufferStorage(uint32(target), size, nil, uint32(flags))
}

func (glFuncs) BufferSubData(target Enum, off int, data []byte) {
	gl.BufferSubData(uint32(target), off, len(data), gl.Ptr(data))
}

func (glFuncs) CopyBufferSubData(readTarget, writeTarget Enum, readOff, writeOff, size int) {
	gl.CopyBufferSubData(uint32(readTarget), uint32(writeTarget), readOff, writeOff, size)
}

func (glFuncs) ClearBufferSubData(target, internalFmt Enum, off, size int, format, typ Enum, data []byte) {
	gl.ClearBufferSubData(uint32(target), uint32(internalFmt), off, size, uint32(format), uint32(typ), gl.Ptr(data))
}

func (glFuncs) MapBufferRange(target Enum, off, length int, access Enum) []byte {
	p := gl.MapBufferRange(uint32(target), off, length, uint32(access))
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), length)
}

func (glFuncs) UnmapBuffer(target Enum) bool { return gl.UnmapBuffer(uint32(target)) }

func (glFuncs) CreateTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (glFuncs) DeleteTexture(t uint32) { gl.DeleteTextures(1, &t) }

func (glFuncs) TexStorage2D(target Enum, levels int, internalFmt Enum, width, height int) {
	gl.TexStorage2D(uint32(target), int32(levels), uint32(internalFmt), int32(width), int32(height))
}

func (glFuncs) TexStorage3D(target Enum, levels int, internalFmt Enum, width, height, depth int) {
	gl.TexStorage3D(uint32(target), int32(levels), uint32(internalFmt), int32(width), int32(height), int32(depth))
}

func (glFuncs) TexStorage2DMultisample(target Enum, samples int, internalFmt Enum, width, height int, fixedLoc bool) {
	gl.TexStorage2DMultisample(uint32(target), int32(samples), uint32(internalFmt), int32(width), int32(height), fixedLoc)
}

func (glFuncs) TexStorage3DMultisample(target Enum, samples int, internalFmt Enum, width, height, depth int, fixedLoc bool) {
	gl.TexStorage3DMultisample(uint32(target), int32(samples), uint32(internalFmt), int32(width), int32(height), int32(depth), fixedLoc)
}

func (glFuncs) TexSubImage3D(target Enum, level, x, y, z, width, height, depth int, format, typ Enum, off uintptr) {
	gl.TexSubImage3D(uint32(target), int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), uint32(format), uint32(typ), gl.PtrOffset(int(off)))
}

func (glFuncs) GetTexImage(target Enum, level int, format, typ Enum, off uintptr) {
	gl.GetTexImage(uint32(target), int32(level), uint32(format), uint32(typ), gl.PtrOffset(int(off)))
}

func (glFuncs) GetTextureSubImage(t uint32, level, x, y, z, width, height, depth int, format, typ Enum, bufSize int, off uintptr) {
	gl.GetTextureSubImage(t, int32(level), int32(x), int32(y), int32(z), int32(width), int32(height), int32(depth), uint32(format), uint32(typ), int32(bufSize), gl.PtrOffset(int(off)))
}

func (glFuncs) CopyImageSubData(src uint32, srcTarget Enum, srcLevel, srcX, srcY, srcZ int, dst uint32, dstTarget Enum, dstLevel, dstX, dstY, dstZ, width, height, depth int) {
	gl.CopyImageSubData(src, uint32(srcTarget), int32(srcLevel), int32(srcX), int32(srcY), int32(srcZ), dst, uint32(dstTarget), int32(dstLevel), int32(dstX), int32(dstY), int32(dstZ), int32(width), int32(height), int32(depth))
}

func (glFuncs) GenerateMipmap(target Enum) { gl.GenerateMipmap(uint32(target)) }

func (glFuncs) TextureView(view uint32, target Enum, orig uint32, internalFmt Enum, minLevel, levels, minLayer, layers int) {
	gl.TextureView(view, uint32(target), orig, uint32(internalFmt), uint32(minLevel), uint32(levels), uint32(minLayer), uint32(layers))
}

func (glFuncs) PixelStorei(pname Enum, param int) { gl.PixelStorei(uint32(pname), int32(param)) }

func (glFuncs) CreateRenderbuffer() uint32 {
	var r uint32
	gl.GenRenderbuffers(1, &r)
	return r
}

func (glFuncs) DeleteRenderbuffer(r uint32) { gl.DeleteRenderbuffers(1, &r) }

func (glFuncs) RenderbufferStorageMultisample(target Enum, samples int, internalFmt Enum, width, height int) {
	gl.RenderbufferStorageMultisample(uint32(target), int32(samples), uint32(internalFmt), int32(width), int32(height))
}

func (glFuncs) CreateSampler() uint32 {
	var s uint32
	gl.GenSamplers(1, &s)
	return s
}

func (glFuncs) DeleteSampler(s uint32) { gl.DeleteSamplers(1, &s) }

func (glFuncs) SamplerParameteri(s uint32, pname Enum, param int) {
	gl.SamplerParameteri(s, uint32(pname), int32(param))
}

func (glFuncs) SamplerParameterf(s uint32, pname Enum, param float32) {
	gl.SamplerParameterf(s, uint32(pname), param)
}

func (glFuncs) CreateFramebuffer() uint32 {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return f
}

func (glFuncs) DeleteFramebuffer(f uint32) { gl.DeleteFramebuffers(1, &f) }

func (glFuncs) FramebufferTexture2D(target, att, texTarget Enum, t uint32, level int) {
	gl.FramebufferTexture2D(uint32(target), uint32(att), uint32(texTarget), t, int32(level))
}

func (glFuncs) FramebufferTextureLayer(target, att Enum, t uint32, level, layer int) {
	gl.FramebufferTextureLayer(uint32(target), uint32(att), t, int32(level), int32(layer))
}

func (glFuncs) FramebufferRenderbuffer(target, att Enum, r uint32) {
	gl.FramebufferRenderbuffer(uint32(target), uint32(att), gl.RENDERBUFFER, r)
}

func (glFuncs) CheckFramebufferStatus(target Enum) Enum {
	return Enum(gl.CheckFramebufferStatus(uint32(target)))
}

func (glFuncs) DrawBuffers(bufs []Enum) {
	var p *uint32
	if len(bufs) > 0 {
		p = (*uint32)(&bufs[0])
	}
	gl.DrawBuffers(int32(len(bufs)), p)
}

func (glFuncs) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum) {
	gl.BlitFramebuffer(int32(sx0), int32(sy0), int32(sx1), int32(sy1), int32(dx0), int32(dy0), int32(dx1), int32(dy1), uint32(mask), uint32(filter))
}

func (glFuncs) CreateVertexArray() uint32 {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return a
}

func (glFuncs) DeleteVertexArray(a uint32) { gl.DeleteVertexArrays(1, &a) }

func (glFuncs) EnableVertexAttribArray(attr int) { gl.EnableVertexAttribArray(uint32(attr)) }

func (glFuncs) DisableVertexAttribArray(attr int) { gl.DisableVertexAttribArray(uint32(attr)) }

func (glFuncs) VertexAttribFormat(attr, size int, typ Enum, normalized bool, relOff int) {
	gl.VertexAttribFormat(uint32(attr), int32(size), uint32(typ), normalized, uint32(relOff))
}

func (glFuncs) VertexAttribBinding(attr, binding int) {
	gl.VertexAttribBinding(uint32(attr), uint32(binding))
}

func (glFuncs) VertexBindingDivisor(binding, divisor int) {
	gl.VertexBindingDivisor(uint32(binding), uint32(divisor))
}

func (glFuncs) BindVertexBuffer(binding int, b uint32, off, stride int) {
	gl.BindVertexBuffer(uint32(binding), b, off, int32(stride))
}

func (glFuncs) CreateShader(typ Enum) uint32 { return gl.CreateShader(uint32(typ)) }

func (glFuncs) DeleteShader(s uint32) { gl.DeleteShader(s) }

func (glFuncs) ShaderSource(s uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(s, 1, csrc, nil)
}

func (glFuncs) CompileShader(s uint32) { gl.CompileShader(s) }

func (glFuncs) GetShaderi(s uint32, pname Enum) int {
	var v int32
	gl.GetShaderiv(s, uint32(pname), &v)
	return int(v)
}

func (glFuncs) GetShaderInfoLog(s uint32) string {
	var n int32
	gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := make([]byte, n)
	gl.GetShaderInfoLog(s, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (glFuncs) CreateProgram() uint32 { return gl.CreateProgram() }

func (glFuncs) DeleteProgram(p uint32) { gl.DeleteProgram(p) }

func (glFuncs) AttachShader(p, s uint32) { gl.AttachShader(p, s) }

func (glFuncs) LinkProgram(p uint32) { gl.LinkProgram(p) }

func (glFuncs) GetProgrami(p uint32, pname Enum) int {
	var v int32
	gl.GetProgramiv(p, uint32(pname), &v)
	return int(v)
}

func (glFuncs) GetProgramInfoLog(p uint32) string {
	var n int32
	gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &n)
	if n <= 1 {
		return ""
	}
	buf := make([]byte, n)
	gl.GetProgramInfoLog(p, n, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}

func (glFuncs) PushDebugGroup(msg string) {
	gl.PushDebugGroup(gl.DEBUG_SOURCE_APPLICATION, 0, int32(len(msg)), gl.Str(msg+"\x00"))
}

func (glFuncs) PopDebugGroup() { gl.PopDebugGroup() }

func (glFuncs) GetInteger(pname Enum) int {
	var v int32
	gl.GetIntegerv(uint32(pname), &v)
	return int(v)
}

func (glFuncs) GetIntegeri(pname Enum, index int) int {
	var v int32
	gl.GetIntegeri_v(uint32(pname), uint32(index), &v)
	return int(v)
}

func (glFuncs) GetFloats(pname Enum, dst []float32) {
	gl.GetFloatv(uint32(pname), &dst[0])
}

func (glFuncs) GetString(pname Enum) string {
	return gl.GoStr(gl.GetString(uint32(pname)))
}

func (glFuncs) Finish() { gl.Finish() }

func (glFuncs) Flush() { gl.Flush() }
