// Copyright 2024 RayGyoe. All rights reserved.

package bitvec

import (
	"testing"
	"unsafe"
)

func TestNbit(t *testing.T) {
	for _, x := range [...][2]int{
		{int(unsafe.Sizeof(uint(0))) * 8, (&V[uint]{}).nbit()},
		{int(unsafe.Sizeof(uint8(0))) * 8, (&V[uint8]{}).nbit()},
		{int(unsafe.Sizeof(uint16(0))) * 8, (&V[uint16]{}).nbit()},
		{int(unsafe.Sizeof(uint32(0))) * 8, (&V[uint32]{}).nbit()},
		{int(unsafe.Sizeof(uint64(0))) * 8, (&V[uint64]{}).nbit()},
		{int(unsafe.Sizeof(uintptr(0))) * 8, (&V[uintptr]{}).nbit()},
	} {
		if x[0] != x[1] {
			t.Fatalf("V[T].nbit:\nhave %d\nwant %d", x[0], x[1])
		}
	}
}

func TestZero(t *testing.T) {
	var v16 V[uint16]
	if v16.s != nil {
		t.Fatalf("v16.s:\nhave %d\nwant nil", v16.s)
	}
	if n := v16.Len(); n != 0 {
		t.Fatalf("v16.Len:\nhave %d\nwant 0", n)
	}
	if n := v16.Rem(); n != 0 {
		t.Fatalf("v16.Rem:\nhave %d\nwant 0", n)
	}
}

func TestGrow(t *testing.T) {
	var v32 V[uint32]
	for _, x := range [...]struct {
		nplus, wantLen int
	}{
		{1, 32},
		{2, 96},
		{0, 96},
		{16, 608},
		{-1, 608},
	} {
		if n, i := v32.Len(), v32.Grow(x.nplus); n != i {
			t.Fatalf("v32.Grow:\nhave %d\nwant %d", i, n)
		}
		if n := v32.Len(); n != x.wantLen {
			t.Fatalf("v32.Grow: Len:\nhave %d\nwant %d", n, x.wantLen)
		}
		if n := v32.Rem(); n != x.wantLen {
			t.Fatalf("v32.Grow: Rem:\nhave %d\nwant %d", n, x.wantLen)
		}
	}
}

func TestSetUnset(t *testing.T) {
	var v8 V[uint8]
	v8.Grow(2)
	v8.Set(6)
	if v8.s[0] != 0x40 {
		t.Fatalf("v8.s[0]:\nhave 0x%x\nwant 0x40", v8.s[0])
	}
	v8.Set(6)
	if n := v8.Rem(); n != 15 {
		t.Fatalf("v8.Rem:\nhave %d\nwant 15", n)
	}
	v8.Set(9)
	if v8.s[1] != 0x02 {
		t.Fatalf("v8.s[1]:\nhave 0x%x\nwant 0x02", v8.s[1])
	}
	if !v8.IsSet(6) || !v8.IsSet(9) || v8.IsSet(0) {
		t.Fatal("v8.IsSet: wrong bit state")
	}
	v8.Unset(6)
	v8.Unset(6)
	if v8.IsSet(6) {
		t.Fatal("v8.IsSet(6):\nhave true\nwant false")
	}
	if n := v8.Rem(); n != 15 {
		t.Fatalf("v8.Rem:\nhave %d\nwant 15", n)
	}
}

func TestSetUnsetRange(t *testing.T) {
	var v32 V[uint32]
	v32.Grow(2)
	v32.SetRange(30, 4)
	for i := 0; i < v32.Len(); i++ {
		want := i >= 30 && i < 34
		if have := v32.IsSet(i); have != want {
			t.Fatalf("v32.IsSet(%d):\nhave %t\nwant %t", i, have, want)
		}
	}
	if n := v32.Rem(); n != 60 {
		t.Fatalf("v32.Rem:\nhave %d\nwant 60", n)
	}
	v32.UnsetRange(30, 4)
	if n := v32.Rem(); n != 64 {
		t.Fatalf("v32.Rem:\nhave %d\nwant 64", n)
	}
}

func TestSearch(t *testing.T) {
	var v16 V[uint16]
	if _, ok := v16.Search(); ok {
		t.Fatal("v16.Search: ok:\nhave true\nwant false")
	}
	v16.Grow(1)
	for i := 0; i < 16; i++ {
		idx, ok := v16.Search()
		if !ok {
			t.Fatalf("v16.Search: ok (i=%d):\nhave false\nwant true", i)
		}
		if idx != i {
			t.Fatalf("v16.Search:\nhave %d\nwant %d", idx, i)
		}
		v16.Set(idx)
	}
	if _, ok := v16.Search(); ok {
		t.Fatal("v16.Search: ok:\nhave true\nwant false")
	}
	v16.Unset(11)
	if idx, ok := v16.Search(); !ok || idx != 11 {
		t.Fatalf("v16.Search:\nhave %d, %t\nwant 11, true", idx, ok)
	}
}

func TestSearchRange(t *testing.T) {
	var v8 V[uint8]
	v8.Grow(4)
	v8.SetRange(0, 7)
	v8.SetRange(12, 3)
	// Unset runs: [7,12), [15,32).
	for _, x := range [...]struct {
		n, wantIdx int
		wantOK     bool
	}{
		{1, 7, true},
		{5, 7, true},
		{6, 15, true},
		{17, 15, true},
		{18, 0, false},
	} {
		idx, ok := v8.SearchRange(x.n)
		if ok != x.wantOK {
			t.Fatalf("v8.SearchRange(%d): ok:\nhave %t\nwant %t", x.n, ok, x.wantOK)
		}
		if ok && idx != x.wantIdx {
			t.Fatalf("v8.SearchRange(%d):\nhave %d\nwant %d", x.n, idx, x.wantIdx)
		}
	}
	// Range spanning multiple Uints.
	var v16 V[uint16]
	v16.Grow(3)
	v16.SetRange(0, 10)
	if idx, ok := v16.SearchRange(38); !ok || idx != 10 {
		t.Fatalf("v16.SearchRange(38):\nhave %d, %t\nwant 10, true", idx, ok)
	}
}

func TestClear(t *testing.T) {
	var v64 V[uint64]
	v64.Grow(2)
	v64.SetRange(3, 77)
	v64.Clear()
	if n := v64.Rem(); n != v64.Len() {
		t.Fatalf("v64.Rem:\nhave %d\nwant %d", n, v64.Len())
	}
	for i := 0; i < v64.Len(); i++ {
		if v64.IsSet(i) {
			t.Fatalf("v64.IsSet(%d):\nhave true\nwant false", i)
		}
	}
}
