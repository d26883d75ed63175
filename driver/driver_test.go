// Copyright 2024 RayGyoe. All rights reserved.

package driver

import "testing"

type nilDriver struct{ name string }

func (d *nilDriver) Open() (GPU, error) { return nil, ErrNotInstalled }
func (d *nilDriver) Name() string       { return d.name }
func (d *nilDriver) Close()             {}

func TestRegister(t *testing.T) {
	n := len(Drivers())
	a := &nilDriver{name: "a"}
	Register(a)
	if x := len(Drivers()); x != n+1 {
		t.Fatalf("len(Drivers):\nhave %d\nwant %d", x, n+1)
	}
	b := &nilDriver{name: "b"}
	Register(b)
	if x := len(Drivers()); x != n+2 {
		t.Fatalf("len(Drivers):\nhave %d\nwant %d", x, n+2)
	}
	// Same name replaces rather than appends.
	a2 := &nilDriver{name: "a"}
	Register(a2)
	drv := Drivers()
	if x := len(drv); x != n+2 {
		t.Fatalf("len(Drivers):\nhave %d\nwant %d", x, n+2)
	}
	var found bool
	for i := range drv {
		if drv[i] == Driver(a2) {
			found = true
		}
		if drv[i] == Driver(a) {
			t.Fatal("Drivers: replaced driver still registered")
		}
	}
	if !found {
		t.Fatal("Drivers: replacement driver not registered")
	}
}

func TestDriversCopy(t *testing.T) {
	Register(&nilDriver{name: "c"})
	drv := Drivers()
	drv[0] = nil
	if x := Drivers()[0]; x == nil {
		t.Fatal("Drivers: returned slice aliases registry")
	}
}

func TestPixelFmt(t *testing.T) {
	for _, x := range [...]struct {
		pf             PixelFmt
		size           int
		depth, stencil bool
	}{
		{FInvalid, 0, false, false},
		{R8un, 1, false, false},
		{RGBA8un, 4, false, false},
		{BGRA8sRGB, 4, false, false},
		{RGBA16f, 8, false, false},
		{RGBA32f, 16, false, false},
		{D16un, 2, true, false},
		{D32f, 4, true, false},
		{S8ui, 1, false, true},
		{D24unS8ui, 4, true, true},
		{D32fS8ui, 8, true, true},
	} {
		if n := x.pf.Size(); n != x.size {
			t.Fatalf("PixelFmt(%d).Size:\nhave %d\nwant %d", x.pf, n, x.size)
		}
		if b := x.pf.IsDepth(); b != x.depth {
			t.Fatalf("PixelFmt(%d).IsDepth:\nhave %t\nwant %t", x.pf, b, x.depth)
		}
		if b := x.pf.IsStencil(); b != x.stencil {
			t.Fatalf("PixelFmt(%d).IsStencil:\nhave %t\nwant %t", x.pf, b, x.stencil)
		}
		if b := x.pf.IsDepthStencil(); b != (x.depth || x.stencil) {
			t.Fatalf("PixelFmt(%d).IsDepthStencil:\nhave %t\nwant %t", x.pf, b, x.depth || x.stencil)
		}
	}
}
