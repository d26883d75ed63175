// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"fmt"
	"strings"
	"testing"

	"github.com/RayGyoe/LLGL/driver"
)

// fakeFuncs records every native call it receives.
// Object creation hands out sequential non-zero names.
type fakeFuncs struct {
	calls  []string
	nextID uint32
}

func newFake() *fakeFuncs { return &fakeFuncs{} }

func (f *fakeFuncs) log(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeFuncs) genID() uint32 {
	f.nextID++
	return f.nextID
}

// reset discards recorded calls, keeping the name counter.
func (f *fakeFuncs) reset() { f.calls = f.calls[:0] }

// count returns how many recorded calls have the given
// prefix.
func (f *fakeFuncs) count(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

// index returns the position of the first recorded call
// with the given prefix, or -1.
func (f *fakeFuncs) index(prefix string) int {
	for i, c := range f.calls {
		if strings.HasPrefix(c, prefix) {
			return i
		}
	}
	return -1
}

func (f *fakeFuncs) Enable(c Enum)             { f.log("Enable(%#x)", c) }
func (f *fakeFuncs) Disable(c Enum)            { f.log("Disable(%#x)", c) }
func (f *fakeFuncs) ActiveTexture(unit Enum)   { f.log("ActiveTexture(%d)", unit-TEXTURE0) }
func (f *fakeFuncs) BindBuffer(t Enum, b uint32) {
	f.log("BindBuffer(%#x, %d)", t, b)
}
func (f *fakeFuncs) BindBufferBase(t Enum, i int, b uint32) {
	f.log("BindBufferBase(%#x, %d, %d)", t, i, b)
}
func (f *fakeFuncs) BindBufferRange(t Enum, i int, b uint32, off, size int) {
	f.log("BindBufferRange(%#x, %d, %d, %d, %d)", t, i, b, off, size)
}
func (f *fakeFuncs) BindBuffersBase(t Enum, first int, bs []uint32) {
	f.log("BindBuffersBase(%#x, %d, %v)", t, first, bs)
}
func (f *fakeFuncs) BindTexture(t Enum, x uint32) { f.log("BindTexture(%#x, %d)", t, x) }
func (f *fakeFuncs) BindTextures(first int, ts []uint32) {
	f.log("BindTextures(%d, %v)", first, ts)
}
func (f *fakeFuncs) BindImageTexture(unit int, t uint32, level int, layered bool, layer int, access, format Enum) {
	f.log("BindImageTexture(%d, %d)", unit, t)
}
func (f *fakeFuncs) BindSampler(unit int, s uint32) { f.log("BindSampler(%d, %d)", unit, s) }
func (f *fakeFuncs) BindSamplers(first int, ss []uint32) {
	f.log("BindSamplers(%d, %v)", first, ss)
}
func (f *fakeFuncs) BindFramebuffer(t Enum, x uint32)  { f.log("BindFramebuffer(%#x, %d)", t, x) }
func (f *fakeFuncs) BindRenderbuffer(t Enum, x uint32) { f.log("BindRenderbuffer(%d)", x) }
func (f *fakeFuncs) BindVertexArray(a uint32)          { f.log("BindVertexArray(%d)", a) }
func (f *fakeFuncs) UseProgram(p uint32)               { f.log("UseProgram(%d)", p) }
func (f *fakeFuncs) Viewport(x, y, w, h int)           { f.log("Viewport(%d, %d, %d, %d)", x, y, w, h) }
func (f *fakeFuncs) ViewportIndexed(i int, x, y, w, h float32) {
	f.log("ViewportIndexed(%d, %g, %g, %g, %g)", i, x, y, w, h)
}
func (f *fakeFuncs) DepthRangeIndexed(i int, zn, zf float64) {
	f.log("DepthRangeIndexed(%d, %g, %g)", i, zn, zf)
}
func (f *fakeFuncs) Scissor(x, y, w, h int) { f.log("Scissor(%d, %d, %d, %d)", x, y, w, h) }
func (f *fakeFuncs) ScissorIndexed(i, x, y, w, h int) {
	f.log("ScissorIndexed(%d, %d, %d, %d, %d)", i, x, y, w, h)
}
func (f *fakeFuncs) FrontFace(dir Enum) {
	if dir == CCW {
		f.log("FrontFace(CCW)")
	} else {
		f.log("FrontFace(CW)")
	}
}
func (f *fakeFuncs) CullFace(mode Enum)               { f.log("CullFace(%#x)", mode) }
func (f *fakeFuncs) PolygonMode(mode Enum)            { f.log("PolygonMode(%#x)", mode) }
func (f *fakeFuncs) PolygonOffset(fac, units float32) { f.log("PolygonOffset(%g, %g)", fac, units) }
func (f *fakeFuncs) LineWidth(w float32)              { f.log("LineWidth(%g)", w) }
func (f *fakeFuncs) DepthFunc(fn Enum)                { f.log("DepthFunc(%#x)", fn) }
func (f *fakeFuncs) DepthMask(w bool)                 { f.log("DepthMask(%t)", w) }
func (f *fakeFuncs) StencilFuncSeparate(face, fn Enum, ref int, mask uint32) {
	f.log("StencilFuncSeparate(%#x, %#x, %d, %#x)", face, fn, ref, mask)
}
func (f *fakeFuncs) StencilOpSeparate(face, sf, dpf, dpp Enum) {
	f.log("StencilOpSeparate(%#x)", face)
}
func (f *fakeFuncs) StencilMaskSeparate(face Enum, mask uint32) {
	f.log("StencilMaskSeparate(%#x, %#x)", face, mask)
}
func (f *fakeFuncs) ColorMask(r, g, b, a bool) {
	f.log("ColorMask(%t, %t, %t, %t)", r, g, b, a)
}
func (f *fakeFuncs) ColorMaski(buf int, r, g, b, a bool) {
	f.log("ColorMaski(%d, %t, %t, %t, %t)", buf, r, g, b, a)
}
func (f *fakeFuncs) BlendEquationSeparate(rgb, a Enum) { f.log("BlendEquationSeparate") }
func (f *fakeFuncs) BlendEquationSeparatei(buf int, rgb, a Enum) {
	f.log("BlendEquationSeparatei(%d)", buf)
}
func (f *fakeFuncs) BlendFuncSeparate(sr, dr, sa, da Enum) { f.log("BlendFuncSeparate") }
func (f *fakeFuncs) BlendFuncSeparatei(buf int, sr, dr, sa, da Enum) {
	f.log("BlendFuncSeparatei(%d)", buf)
}
func (f *fakeFuncs) BlendColor(r, g, b, a float32) {
	f.log("BlendColor(%g, %g, %g, %g)", r, g, b, a)
}
func (f *fakeFuncs) ClearColor(r, g, b, a float32) { f.log("ClearColor(%g, %g, %g, %g)", r, g, b, a) }
func (f *fakeFuncs) ClearDepth(d float64)          { f.log("ClearDepth(%g)", d) }
func (f *fakeFuncs) ClearStencil(s int)            { f.log("ClearStencil(%d)", s) }
func (f *fakeFuncs) Clear(mask Enum)               { f.log("Clear(%#x)", mask) }
func (f *fakeFuncs) ClearBufferfv(buf Enum, i int, v [4]float32) {
	f.log("ClearBufferfv(%#x, %d, %v)", buf, i, v)
}
func (f *fakeFuncs) ClearBufferiv(buf Enum, i int, v [4]int32) {
	f.log("ClearBufferiv(%#x, %d, %v)", buf, i, v)
}
func (f *fakeFuncs) ClearBufferfi(buf Enum, i int, d float32, s int) {
	f.log("ClearBufferfi(%#x, %d, %g, %d)", buf, i, d, s)
}
func (f *fakeFuncs) DrawArraysInstancedBaseInstance(mode Enum, first, count, inst, base int) {
	f.log("DrawArrays(%#x, %d, %d, %d, %d)", mode, first, count, inst, base)
}
func (f *fakeFuncs) DrawElementsInstancedBaseVertexBaseInstance(mode Enum, count int, typ Enum, indices uintptr, inst, baseVert, baseInst int) {
	f.log("DrawElements(%#x, %d, %#x, %d, %d, %d, %d)", mode, count, typ, indices, inst, baseVert, baseInst)
}
func (f *fakeFuncs) DispatchCompute(x, y, z int) { f.log("DispatchCompute(%d, %d, %d)", x, y, z) }
func (f *fakeFuncs) MemoryBarrier(b Enum)        { f.log("MemoryBarrier") }
func (f *fakeFuncs) CreateBuffer() uint32        { return f.genID() }
func (f *fakeFuncs) DeleteBuffer(b uint32)       { f.log("DeleteBuffer(%d)", b) }
func (f *fakeFuncs) BufferStorage(t Enum, size int, flags Enum) {
	f.log("BufferStorage(%#x, %d)", t, size)
}
func (f *fakeFuncs) BufferSubData(t Enum, off int, data []byte) {
	f.log("BufferSubData(%#x, %d, %d)", t, off, len(data))
}
func (f *fakeFuncs) CopyBufferSubData(rt, wt Enum, ro, wo, size int) {
	f.log("CopyBufferSubData(%d, %d, %d)", ro, wo, size)
}
func (f *fakeFuncs) ClearBufferSubData(t, ifmt Enum, off, size int, format, typ Enum, data []byte) {
	f.log("ClearBufferSubData(%d, %d, %#x)", off, size, data[0])
}
func (f *fakeFuncs) MapBufferRange(t Enum, off, length int, access Enum) []byte {
	f.log("MapBufferRange(%#x, %d, %d)", t, off, length)
	return make([]byte, length)
}
func (f *fakeFuncs) UnmapBuffer(t Enum) bool { f.log("UnmapBuffer(%#x)", t); return true }
func (f *fakeFuncs) CreateTexture() uint32   { return f.genID() }
func (f *fakeFuncs) DeleteTexture(t uint32)  { f.log("DeleteTexture(%d)", t) }
func (f *fakeFuncs) TexStorage2D(t Enum, levels int, ifmt Enum, w, h int) {
	f.log("TexStorage2D(%#x, %d, %d, %d)", t, levels, w, h)
}
func (f *fakeFuncs) TexStorage3D(t Enum, levels int, ifmt Enum, w, h, d int) {
	f.log("TexStorage3D(%#x, %d, %d, %d, %d)", t, levels, w, h, d)
}
func (f *fakeFuncs) TexStorage2DMultisample(t Enum, samples int, ifmt Enum, w, h int, fixed bool) {
	f.log("TexStorage2DMultisample(%#x, %d, %d, %d)", t, samples, w, h)
}
func (f *fakeFuncs) TexStorage3DMultisample(t Enum, samples int, ifmt Enum, w, h, d int, fixed bool) {
	f.log("TexStorage3DMultisample(%#x, %d, %d, %d, %d)", t, samples, w, h, d)
}
func (f *fakeFuncs) TexSubImage3D(t Enum, level, x, y, z, w, h, d int, format, typ Enum, off uintptr) {
	f.log("TexSubImage3D(%#x, %d, %d, %d, %d, %d, %d, %d, %d)", t, level, x, y, z, w, h, d, off)
}
func (f *fakeFuncs) GetTexImage(t Enum, level int, format, typ Enum, off uintptr) {
	f.log("GetTexImage(%#x, %d, %d)", t, level, off)
}
func (f *fakeFuncs) GetTextureSubImage(t uint32, level, x, y, z, w, h, d int, format, typ Enum, bufSize int, off uintptr) {
	f.log("GetTextureSubImage(%d, %d, %d, %d, %d, %d, %d, %d, %d)", t, level, x, y, z, w, h, d, off)
}
func (f *fakeFuncs) CopyImageSubData(src uint32, st Enum, sl, sx, sy, sz int, dst uint32, dt Enum, dl, dx, dy, dz, w, h, d int) {
	f.log("CopyImageSubData(%d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d, %d)", src, sx, sy, sz, dst, dx, dy, dz, w, h, d, sl, dl)
}
func (f *fakeFuncs) GenerateMipmap(t Enum) { f.log("GenerateMipmap(%#x)", t) }
func (f *fakeFuncs) TextureView(view uint32, t Enum, orig uint32, ifmt Enum, minLevel, levels, minLayer, layers int) {
	f.log("TextureView(%d, %d, %d, %d, %d, %d)", view, orig, minLevel, levels, minLayer, layers)
}
func (f *fakeFuncs) PixelStorei(p Enum, v int)   { f.log("PixelStorei(%#x, %d)", p, v) }
func (f *fakeFuncs) CreateRenderbuffer() uint32  { return f.genID() }
func (f *fakeFuncs) DeleteRenderbuffer(r uint32) { f.log("DeleteRenderbuffer(%d)", r) }
func (f *fakeFuncs) RenderbufferStorageMultisample(t Enum, samples int, ifmt Enum, w, h int) {
	f.log("RenderbufferStorage(%d, %d, %d)", samples, w, h)
}
func (f *fakeFuncs) CreateSampler() uint32  { return f.genID() }
func (f *fakeFuncs) DeleteSampler(s uint32) { f.log("DeleteSampler(%d)", s) }
func (f *fakeFuncs) SamplerParameteri(s uint32, p Enum, v int) {
	f.log("SamplerParameteri(%d, %#x, %d)", s, p, v)
}
func (f *fakeFuncs) SamplerParameterf(s uint32, p Enum, v float32) {
	f.log("SamplerParameterf(%d, %#x, %g)", s, p, v)
}
func (f *fakeFuncs) CreateFramebuffer() uint32  { return f.genID() }
func (f *fakeFuncs) DeleteFramebuffer(x uint32) { f.log("DeleteFramebuffer(%d)", x) }
func (f *fakeFuncs) FramebufferTexture2D(t, att, tt Enum, x uint32, level int) {
	f.log("FramebufferTexture2D(%#x, %d)", att, x)
}
func (f *fakeFuncs) FramebufferTextureLayer(t, att Enum, x uint32, level, layer int) {
	f.log("FramebufferTextureLayer(%#x, %d)", att, x)
}
func (f *fakeFuncs) FramebufferRenderbuffer(t, att Enum, r uint32) {
	f.log("FramebufferRenderbuffer(%#x, %d)", att, r)
}
func (f *fakeFuncs) CheckFramebufferStatus(t Enum) Enum { return FRAMEBUFFER_COMPLETE }
func (f *fakeFuncs) DrawBuffers(bufs []Enum)            { f.log("DrawBuffers(%d)", len(bufs)) }
func (f *fakeFuncs) BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum) {
	f.log("BlitFramebuffer")
}
func (f *fakeFuncs) CreateVertexArray() uint32      { return f.genID() }
func (f *fakeFuncs) DeleteVertexArray(a uint32)     { f.log("DeleteVertexArray(%d)", a) }
func (f *fakeFuncs) EnableVertexAttribArray(a int)  { f.log("EnableVertexAttribArray(%d)", a) }
func (f *fakeFuncs) DisableVertexAttribArray(a int) { f.log("DisableVertexAttribArray(%d)", a) }
func (f *fakeFuncs) VertexAttribFormat(a, size int, typ Enum, norm bool, off int) {
	f.log("VertexAttribFormat(%d, %d)", a, size)
}
func (f *fakeFuncs) VertexAttribBinding(a, b int)    { f.log("VertexAttribBinding(%d, %d)", a, b) }
func (f *fakeFuncs) VertexBindingDivisor(b, d int)   { f.log("VertexBindingDivisor(%d, %d)", b, d) }
func (f *fakeFuncs) BindVertexBuffer(binding int, b uint32, off, stride int) {
	f.log("BindVertexBuffer(%d, %d, %d, %d)", binding, b, off, stride)
}
func (f *fakeFuncs) CreateShader(typ Enum) uint32       { return f.genID() }
func (f *fakeFuncs) DeleteShader(s uint32)              {}
func (f *fakeFuncs) ShaderSource(s uint32, src string)  {}
func (f *fakeFuncs) CompileShader(s uint32)             {}
func (f *fakeFuncs) GetShaderi(s uint32, p Enum) int    { return 1 }
func (f *fakeFuncs) GetShaderInfoLog(s uint32) string   { return "" }
func (f *fakeFuncs) CreateProgram() uint32              { return f.genID() }
func (f *fakeFuncs) DeleteProgram(p uint32)             { f.log("DeleteProgram(%d)", p) }
func (f *fakeFuncs) AttachShader(p, s uint32)           {}
func (f *fakeFuncs) LinkProgram(p uint32)               {}
func (f *fakeFuncs) GetProgrami(p uint32, pn Enum) int  { return 1 }
func (f *fakeFuncs) GetProgramInfoLog(p uint32) string  { return "" }
func (f *fakeFuncs) PushDebugGroup(msg string)          { f.log("PushDebugGroup(%s)", msg) }
func (f *fakeFuncs) PopDebugGroup()                     { f.log("PopDebugGroup") }
func (f *fakeFuncs) GetInteger(pname Enum) int {
	switch pname {
	case MAX_COMBINED_TEXTURE_IMAGE_UNITS:
		return 16
	case MAX_VIEWPORTS, MAX_DRAW_BUFFERS:
		return 8
	case MAX_UNIFORM_BUFFER_BINDINGS, MAX_SHADER_STORAGE_BUFFER_BINDINGS:
		return 64
	default:
		return 1024
	}
}
func (f *fakeFuncs) GetIntegeri(pname Enum, i int) int { return 65535 }
func (f *fakeFuncs) GetFloats(pname Enum, dst []float32) {
	if pname == ALIASED_LINE_WIDTH_RANGE {
		dst[0], dst[1] = 1, 8
	}
}
func (f *fakeFuncs) GetString(pname Enum) string { return "fake" }
func (f *fakeFuncs) Finish()                     {}
func (f *fakeFuncs) Flush()                      {}

func newTestState() (*StateManager, *fakeFuncs) {
	f := newFake()
	s := NewStateManager(f)
	f.reset()
	return s, f
}

func TestSetCapability(t *testing.T) {
	s, f := newTestState()
	s.SetCapability(BLEND, true)
	s.SetCapability(BLEND, true)
	if n := f.count("Enable"); n != 1 {
		t.Fatalf("Enable count:\nhave %d\nwant 1", n)
	}
	if !s.HasCapability(BLEND) {
		t.Fatal("HasCapability(BLEND):\nhave false\nwant true")
	}
	s.SetCapability(BLEND, false)
	s.SetCapability(BLEND, false)
	if n := f.count("Disable"); n != 1 {
		t.Fatalf("Disable count:\nhave %d\nwant 1", n)
	}
}

func TestCapabilityStack(t *testing.T) {
	s, f := newTestState()
	s.SetCapability(SCISSOR_TEST, true)
	s.PushCapability(SCISSOR_TEST)
	s.SetCapability(SCISSOR_TEST, false)
	s.PopCapability()
	if !s.HasCapability(SCISSOR_TEST) {
		t.Fatal("HasCapability(SCISSOR_TEST):\nhave false\nwant true")
	}
	if n := f.count("Enable"); n != 2 {
		t.Fatalf("Enable count:\nhave %d\nwant 2", n)
	}
	// Pop with an unchanged value must not reissue.
	s.PushCapability(SCISSOR_TEST)
	s.PopCapability()
	if n := f.count("Enable"); n != 2 {
		t.Fatalf("Enable count:\nhave %d\nwant 2", n)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("PopCapability on empty stack: no panic")
		}
	}()
	s.PopCapability()
}

func TestBindBuffer(t *testing.T) {
	s, f := newTestState()
	s.BindBuffer(ARRAY_BUFFER, 7)
	s.BindBuffer(ARRAY_BUFFER, 7)
	if n := f.count("BindBuffer("); n != 1 {
		t.Fatalf("BindBuffer count:\nhave %d\nwant 1", n)
	}
	// A different target is a different binding point.
	s.BindBuffer(ELEMENT_ARRAY_BUFFER, 7)
	if n := f.count("BindBuffer("); n != 2 {
		t.Fatalf("BindBuffer count:\nhave %d\nwant 2", n)
	}
	s.PushBoundBuffer(ARRAY_BUFFER)
	s.BindBuffer(ARRAY_BUFFER, 9)
	s.PopBoundBuffer()
	want := "BindBuffer(0x8892, 7)"
	if c := f.calls[len(f.calls)-1]; c != want {
		t.Fatalf("last call:\nhave %s\nwant %s", c, want)
	}
}

func TestNotifyBufferRelease(t *testing.T) {
	s, f := newTestState()
	s.BindBuffer(ARRAY_BUFFER, 7)
	s.NotifyBufferRelease(7)
	// Name 7 may be reused by an unrelated buffer; the bind
	// must be issued again.
	s.BindBuffer(ARRAY_BUFFER, 7)
	if n := f.count("BindBuffer("); n != 2 {
		t.Fatalf("BindBuffer count:\nhave %d\nwant 2", n)
	}
}

func TestBindBufferBase(t *testing.T) {
	s, f := newTestState()
	s.BindBufferBase(UNIFORM_BUFFER, 3, 5)
	s.BindBufferBase(UNIFORM_BUFFER, 3, 5)
	if n := f.count("BindBufferBase"); n != 1 {
		t.Fatalf("BindBufferBase count:\nhave %d\nwant 1", n)
	}
	// The native call also rebinds the generic point.
	s.BindBuffer(UNIFORM_BUFFER, 5)
	if n := f.count("BindBuffer("); n != 0 {
		t.Fatalf("BindBuffer count:\nhave %d\nwant 0", n)
	}
}

func TestBindTexture(t *testing.T) {
	s, f := newTestState()
	s.BindTexture(2, TEXTURE_2D, 4)
	if n := f.index("ActiveTexture(2)"); n != 0 {
		t.Fatalf("ActiveTexture(2) index:\nhave %d\nwant 0", n)
	}
	s.BindTexture(2, TEXTURE_2D, 4)
	if n := f.count("BindTexture"); n != 1 {
		t.Fatalf("BindTexture count:\nhave %d\nwant 1", n)
	}
	// Same name on another target of the same unit.
	s.BindTexture(2, TEXTURE_3D, 4)
	if n := f.count("BindTexture"); n != 2 {
		t.Fatalf("BindTexture count:\nhave %d\nwant 2", n)
	}
	s.NotifyTextureRelease(4)
	s.BindTexture(2, TEXTURE_2D, 4)
	if n := f.count("BindTexture"); n != 3 {
		t.Fatalf("BindTexture count:\nhave %d\nwant 3", n)
	}
}

func TestBindTextures(t *testing.T) {
	s, f := newTestState()
	s.BindTextures(1, TEXTURE_2D, []uint32{4, 5, 6})
	s.BindTextures(1, TEXTURE_2D, []uint32{4, 5, 6})
	if n := f.count("BindTextures"); n != 1 {
		t.Fatalf("BindTextures count:\nhave %d\nwant 1", n)
	}
	// Per-unit shadow: single binds of the same names are
	// elided.
	s.BindTexture(2, TEXTURE_2D, 5)
	if n := f.count("BindTexture("); n != 0 {
		t.Fatalf("BindTexture count:\nhave %d\nwant 0", n)
	}
	// A zero name unbinds every target of its unit.
	s.BindTexture(1, TEXTURE_3D, 9)
	s.BindTextures(1, TEXTURE_2D, []uint32{0})
	s.BindTexture(1, TEXTURE_3D, 9)
	if n := f.count("BindTexture("); n != 2 {
		t.Fatalf("BindTexture count:\nhave %d\nwant 2", n)
	}
}

func TestBindSamplers(t *testing.T) {
	s, f := newTestState()
	s.BindSamplers(0, []uint32{1, 2})
	s.BindSamplers(0, []uint32{1, 2})
	if n := f.count("BindSamplers"); n != 1 {
		t.Fatalf("BindSamplers count:\nhave %d\nwant 1", n)
	}
	s.BindSampler(1, 2)
	if n := f.count("BindSampler("); n != 0 {
		t.Fatalf("BindSampler count:\nhave %d\nwant 0", n)
	}
}

func TestRenderbufferStack(t *testing.T) {
	s, f := newTestState()
	s.BindRenderbuffer(3)
	s.PushBoundRenderbuffer()
	s.BindRenderbuffer(5)
	s.PopBoundRenderbuffer()
	want := "BindRenderbuffer(3)"
	if c := f.calls[len(f.calls)-1]; c != want {
		t.Fatalf("last call:\nhave %s\nwant %s", c, want)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("PopBoundRenderbuffer on empty stack: no panic")
		}
	}()
	s.PopBoundRenderbuffer()
}

func TestClearPreservesMasks(t *testing.T) {
	s, f := newTestState()
	s.SetColorMask(false, false, true, true)
	s.SetDepthMask(false)
	f.reset()
	s.Clear(COLOR_BUFFER_BIT | DEPTH_BUFFER_BIT)
	want := []string{
		"ColorMask(true, true, true, true)",
		"DepthMask(true)",
		"Clear(0x4100)",
		"ColorMask(false, false, true, true)",
		"DepthMask(false)",
	}
	if len(f.calls) != len(want) {
		t.Fatalf("calls:\nhave %v\nwant %v", f.calls, want)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("calls[%d]:\nhave %s\nwant %s", i, f.calls[i], want[i])
		}
	}
}

func TestClearPreservesPerBufferMasks(t *testing.T) {
	s, f := newTestState()
	s.SetColorMaski(0, true, false, true, false)
	s.SetColorMaski(1, false, true, false, true)
	s.Clear(COLOR_BUFFER_BIT)
	// The forced full mask is reverted buffer by buffer.
	if n := f.count("ColorMaski(0, true, false, true, false)"); n != 2 {
		t.Fatalf("ColorMaski(0) count:\nhave %d\nwant 2", n)
	}
	if n := f.count("ColorMaski(1, false, true, false, true)"); n != 2 {
		t.Fatalf("ColorMaski(1) count:\nhave %d\nwant 2", n)
	}
	// The shadow agrees with the restored state.
	s.SetColorMaski(0, true, false, true, false)
	if n := f.count("ColorMaski(0, true, false, true, false)"); n != 2 {
		t.Fatalf("ColorMaski(0) count after rebind:\nhave %d\nwant 2", n)
	}
}

func TestClearColorAttachment(t *testing.T) {
	s, f := newTestState()
	s.SetColorMask(false, false, false, false)
	f.reset()
	s.ClearColorAttachment(1, [4]float32{1, 0, 0, 1})
	want := []string{
		"ColorMaski(1, true, true, true, true)",
		"ClearBufferfv(0x1800, 1, [1 0 0 1])",
		"ColorMaski(1, false, false, false, false)",
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("calls[%d]:\nhave %s\nwant %s", i, f.calls[i], want[i])
		}
	}
}

func TestViewportFlip(t *testing.T) {
	s, f := newTestState()
	s.SetRenderTarget(100, true)
	s.SetViewports([]driver.Viewport{{X: 10, Y: 20, Width: 30, Height: 40, Zfar: 1}})
	want := "ViewportIndexed(0, 10, 40, 30, 40)"
	if n := f.index(want); n < 0 {
		t.Fatalf("calls:\nhave %v\nwant %s", f.calls, want)
	}
	s.SetScissors([]driver.Scissor{{X: 0, Y: 0, Width: 100, Height: 10}})
	want = "ScissorIndexed(0, 0, 90, 100, 10)"
	if n := f.index(want); n < 0 {
		t.Fatalf("calls:\nhave %v\nwant %s", f.calls, want)
	}
}

func TestFrontFaceFlip(t *testing.T) {
	s, f := newTestState()
	// CCW front faces on a flipped target wind clockwise.
	s.SetRenderTarget(100, true)
	if n := f.index("FrontFace(CW)"); n < 0 {
		t.Fatalf("calls:\nhave %v\nwant FrontFace(CW)", f.calls)
	}
	f.reset()
	s.SetFrontFace(false)
	if n := f.index("FrontFace(CCW)"); n < 0 {
		t.Fatalf("calls:\nhave %v\nwant FrontFace(CCW)", f.calls)
	}
	f.reset()
	s.SetRenderTarget(100, false)
	if n := f.index("FrontFace(CW)"); n < 0 {
		t.Fatalf("calls:\nhave %v\nwant FrontFace(CW)", f.calls)
	}
}

func TestLineWidthClamp(t *testing.T) {
	s, f := newTestState()
	s.SetLineWidth(20)
	if n := f.index("LineWidth(8)"); n < 0 {
		t.Fatalf("calls:\nhave %v\nwant LineWidth(8)", f.calls)
	}
	f.reset()
	s.SetLineWidth(0.25)
	if n := f.index("LineWidth(1)"); n < 0 {
		t.Fatalf("calls:\nhave %v\nwant LineWidth(1)", f.calls)
	}
	// Clamped to the same value again; no call.
	s.SetLineWidth(0.5)
	if n := f.count("LineWidth"); n != 1 {
		t.Fatalf("LineWidth count:\nhave %d\nwant 1", n)
	}
}

func TestVertexArrayInvalidatesElemBuf(t *testing.T) {
	s, f := newTestState()
	s.BindBuffer(ELEMENT_ARRAY_BUFFER, 3)
	s.BindVertexArray(5)
	f.reset()
	// VAO state overrides the element array binding, so the
	// bind must be issued again.
	s.BindBuffer(ELEMENT_ARRAY_BUFFER, 3)
	if n := f.count("BindBuffer("); n != 1 {
		t.Fatalf("BindBuffer count:\nhave %d\nwant 1", n)
	}
}

func TestBufferStackUnderflow(t *testing.T) {
	s, _ := newTestState()
	defer func() {
		if recover() == nil {
			t.Fatal("PopBoundBuffer on empty stack: no panic")
		}
	}()
	s.PopBoundBuffer()
}

func TestUseProgram(t *testing.T) {
	s, f := newTestState()
	s.UseProgram(6)
	s.UseProgram(6)
	if n := f.count("UseProgram"); n != 1 {
		t.Fatalf("UseProgram count:\nhave %d\nwant 1", n)
	}
	s.PushProgram()
	s.UseProgram(8)
	s.PopProgram()
	want := "UseProgram(6)"
	if c := f.calls[len(f.calls)-1]; c != want {
		t.Fatalf("last call:\nhave %s\nwant %s", c, want)
	}
	s.NotifyProgramRelease(6)
	s.UseProgram(6)
	if n := f.count("UseProgram"); n != 4 {
		t.Fatalf("UseProgram count:\nhave %d\nwant 4", n)
	}
}
