// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"errors"
	"testing"

	"github.com/RayGyoe/LLGL/driver"
)

func newTestGPU() (*GPU, *fakeFuncs) {
	f := newFake()
	g := &GPU{state: NewStateManager(f)}
	f.reset()
	return g, f
}

func TestReplayOrder(t *testing.T) {
	g, f := newTestGPU()
	b1, err := g.NewBuffer(256, false, driver.UCopySrc)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	b2, err := g.NewBuffer(256, false, driver.UCopyDst)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	cb, _ := g.NewCmdBuffer()
	if err := cb.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	cb.PushDebugGroup("upload")
	cb.CopyBuffer(&driver.BufferCopy{From: b1, To: b2, FromOff: 16, ToOff: 32, Size: 64})
	cb.Fill(b2, 0, 0xAB, 128)
	cb.PopDebugGroup()
	if err := cb.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	f.reset()
	ch := make(chan error, 1)
	g.Commit([]driver.CmdBuffer{cb}, ch)
	if err := <-ch; err != nil {
		t.Fatalf("Commit: %v", err)
	}
	// Replay is FIFO: group push, copy, fill, group pop.
	push := f.index("PushDebugGroup(upload)")
	cp := f.index("CopyBufferSubData(16, 32, 64)")
	fill := f.index("ClearBufferSubData(0, 128, 0xab)")
	pop := f.index("PopDebugGroup")
	if push < 0 || cp < 0 || fill < 0 || pop < 0 {
		t.Fatalf("missing replayed calls:\n%v", f.calls)
	}
	if !(push < cp && cp < fill && fill < pop) {
		t.Fatalf("replay order:\nhave %d, %d, %d, %d\nwant ascending", push, cp, fill, pop)
	}
	// The stream is consumed by the commit.
	if n := len(cb.(*cmdBuffer).cs.buf); n != 0 {
		t.Fatalf("stream length after commit:\nhave %d\nwant 0", n)
	}
}

func TestRenderPassReplay(t *testing.T) {
	g, f := newTestGPU()
	img, err := g.NewImage(driver.RGBA8un, driver.Dim3D{Width: 64, Height: 64, Depth: 1}, 1, 1, 1, driver.URenderTarget|driver.UShaderSample)
	if err != nil {
		t.Fatalf("NewImage: %v", err)
	}
	iv, err := img.NewView(driver.IView2D, 0, 1, 0, 1)
	if err != nil {
		t.Fatalf("NewView: %v", err)
	}
	pass, err := g.NewRenderPass([]driver.Attachment{
		{Format: driver.RGBA8un, Samples: 1, Load: driver.LClear, Store: driver.SStore},
	})
	if err != nil {
		t.Fatalf("NewRenderPass: %v", err)
	}
	fb, err := pass.NewFB([]driver.ImageView{iv}, 64, 64, 1)
	if err != nil {
		t.Fatalf("NewFB: %v", err)
	}
	vc, _ := g.NewShaderCode([]byte("void main() {}"))
	pl, err := g.NewPipeline(&driver.GraphState{
		VertFunc: driver.ShaderFunc{Code: vc, Name: "main"},
		FragFunc: driver.ShaderFunc{Code: vc, Name: "main"},
		Input: []driver.VertexIn{
			{Format: driver.Float32x3, Nr: 0},
		},
		Topology: driver.TTriangle,
		Raster:   driver.RasterState{Cull: driver.CBack},
		Blend: driver.BlendState{
			Color: []driver.ColorBlend{{WriteMask: driver.CAll}},
		},
	})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	vb, err := g.NewBuffer(1024, false, driver.UVertexData)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	cb, _ := g.NewCmdBuffer()
	if err := cb.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	cb.BeginPass(pass, fb, []driver.ClearValue{{Color: [4]float32{1, 0, 0, 1}}})
	cb.SetPipeline(pl)
	cb.SetViewport([]driver.Viewport{{Width: 64, Height: 64, Zfar: 1}})
	cb.SetVertexBuf(0, []driver.Buffer{vb}, []int64{0})
	cb.Draw(3, 1, 0, 0)
	cb.EndPass()
	if err := cb.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	f.reset()
	ch := make(chan error, 1)
	g.Commit([]driver.CmdBuffer{cb}, ch)
	if err := <-ch; err != nil {
		t.Fatalf("Commit: %v", err)
	}
	clear := f.index("ClearBufferfv(0x1800, 0, [1 0 0 1])")
	if clear < 0 {
		t.Fatalf("missing load op clear:\n%v", f.calls)
	}
	// 12-byte stride inferred from the vertex format.
	if n := f.index("BindVertexBuffer(0, "); n < 0 || f.calls[n] != "BindVertexBuffer(0, 8, 0, 12)" {
		t.Fatalf("vertex buffer bind:\nhave %v\nwant BindVertexBuffer(0, 8, 0, 12)", f.calls)
	}
	draw := f.index("DrawArrays(0x4, 0, 3, 1, 0)")
	if draw < 0 {
		t.Fatalf("missing draw:\n%v", f.calls)
	}
	if clear > draw {
		t.Fatalf("clear after draw:\nhave %d > %d", clear, draw)
	}
}

func TestIndexedDraw(t *testing.T) {
	g, f := newTestGPU()
	ib, err := g.NewBuffer(1024, false, driver.UIndexData)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	img, _ := g.NewImage(driver.RGBA8un, driver.Dim3D{Width: 4, Height: 4, Depth: 1}, 1, 1, 1, driver.URenderTarget|driver.UShaderSample)
	iv, _ := img.NewView(driver.IView2D, 0, 1, 0, 1)
	pass, _ := g.NewRenderPass([]driver.Attachment{{Format: driver.RGBA8un, Samples: 1}})
	fb, _ := pass.NewFB([]driver.ImageView{iv}, 4, 4, 1)
	vc, _ := g.NewShaderCode([]byte("void main() {}"))
	pl, err := g.NewPipeline(&driver.GraphState{
		VertFunc: driver.ShaderFunc{Code: vc, Name: "main"},
		Topology: driver.TTriangle,
	})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	cb, _ := g.NewCmdBuffer()
	cb.Begin()
	cb.BeginPass(pass, fb, nil)
	cb.SetPipeline(pl)
	cb.SetIndexBuf(driver.Index16, ib, 256)
	cb.DrawIndexed(6, 2, 3, 10, 1)
	cb.EndPass()
	if err := cb.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	f.reset()
	ch := make(chan error, 1)
	g.Commit([]driver.CmdBuffer{cb}, ch)
	if err := <-ch; err != nil {
		t.Fatalf("Commit: %v", err)
	}
	// Index offset 256 plus 3 indices of 2 bytes each.
	want := "DrawElements(0x4, 6, 0x1403, 262, 2, 10, 1)"
	if n := f.index(want); n < 0 {
		t.Fatalf("calls:\nhave %v\nwant %s", f.calls, want)
	}
}

func TestUnknownOpcode(t *testing.T) {
	g, _ := newTestGPU()
	cb := &cmdBuffer{g: g, ready: true}
	cb.cs.buf = append(cb.cs.buf, 0xEE)
	defer func() {
		if recover() == nil {
			t.Fatal("replay of unknown opcode: no panic")
		}
	}()
	ch := make(chan error, 1)
	g.Commit([]driver.CmdBuffer{cb}, ch)
}

func TestEndUnbalanced(t *testing.T) {
	g, _ := newTestGPU()
	cb, _ := g.NewCmdBuffer()
	cb.Begin()
	cb.PushDebugGroup("leak")
	if err := cb.End(); err == nil {
		t.Fatal("End with open debug group:\nhave nil\nwant error")
	}
	// The failed End resets the buffer.
	if n := len(cb.(*cmdBuffer).cs.buf); n != 0 {
		t.Fatalf("stream length after failed End:\nhave %d\nwant 0", n)
	}
	if err := cb.Begin(); err != nil {
		t.Fatalf("Begin after reset: %v", err)
	}
}

func TestCommitUnended(t *testing.T) {
	g, _ := newTestGPU()
	cb, _ := g.NewCmdBuffer()
	cb.Begin()
	ch := make(chan error, 1)
	g.Commit([]driver.CmdBuffer{cb}, ch)
	if err := <-ch; err == nil {
		t.Fatal("Commit of recording command buffer:\nhave nil\nwant error")
	}
}

func TestComputeWithoutShader(t *testing.T) {
	g, _ := newTestGPU()
	_, err := g.NewPipeline(&driver.CompState{})
	if !errors.Is(err, driver.ErrInvalidShader) {
		t.Fatalf("NewPipeline:\nhave %v\nwant %v", err, driver.ErrInvalidShader)
	}
}

func TestDispatchInPass(t *testing.T) {
	g, _ := newTestGPU()
	img, _ := g.NewImage(driver.RGBA8un, driver.Dim3D{Width: 4, Height: 4, Depth: 1}, 1, 1, 1, driver.URenderTarget|driver.UShaderSample)
	iv, _ := img.NewView(driver.IView2D, 0, 1, 0, 1)
	pass, _ := g.NewRenderPass([]driver.Attachment{{Format: driver.RGBA8un, Samples: 1}})
	fb, _ := pass.NewFB([]driver.ImageView{iv}, 4, 4, 1)
	cb, _ := g.NewCmdBuffer()
	cb.Begin()
	cb.BeginPass(pass, fb, nil)
	defer func() {
		if recover() == nil {
			t.Fatal("Dispatch within render pass: no panic")
		}
	}()
	cb.Dispatch(1, 1, 1)
}
