// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"errors"
	"log"

	"github.com/RayGyoe/LLGL/driver"
)

const driverName = "gl"

// Driver implements driver.Driver.
type Driver struct {
	gpu *GPU
}

var drv Driver

func init() { driver.Register(&drv) }

// Open initializes the driver.
// A GL context must be current on the calling thread, and
// every further call into the returned GPU must happen on
// that same thread.
func (d *Driver) Open() (driver.GPU, error) {
	if d.gpu != nil {
		return d.gpu, nil
	}
	fn, err := loadFuncs()
	if err != nil {
		log.Printf("[!] gl: %v", err)
		return nil, driver.ErrNotInstalled
	}
	d.gpu = &GPU{state: NewStateManager(fn)}
	log.Printf("gl: using %s (%s)", fn.GetString(RENDERER), fn.GetString(VERSION))
	return d.gpu, nil
}

// Name returns the driver name.
func (d *Driver) Name() string { return driverName }

// Close deinitializes the driver.
func (d *Driver) Close() { *d = Driver{} }

// GPU implements driver.GPU.
type GPU struct {
	state *StateManager
}

// Driver returns the Driver that owns the GPU.
func (g *GPU) Driver() driver.Driver { return &drv }

// Commit commits a batch of command buffers for execution.
// The recorded streams are replayed in batch order on the
// calling goroutine, which must hold the context thread.
func (g *GPU) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	var err error
	for i := range cb {
		c, ok := cb[i].(*cmdBuffer)
		if !ok || c.g != g {
			err = errors.New("gl: commit of foreign command buffer")
			break
		}
		if !c.ready {
			err = errors.New("gl: commit of unended command buffer")
			break
		}
	}
	if err == nil {
		for i := range cb {
			c := cb[i].(*cmdBuffer)
			c.replay()
			c.ready = false
			c.cs.reset()
		}
		g.state.fn.Flush()
	}
	ch <- err
}

// Limits returns the implementation limits.
func (g *GPU) Limits() driver.Limits {
	l := &g.state.lim
	slots := maxResourceSlots
	if l.maxUBBindings < slots {
		slots = l.maxUBBindings
	}
	if l.maxSSBBindings < slots {
		slots = l.maxSSBBindings
	}
	return driver.Limits{
		MaxImage2D:       l.maxTexSize,
		MaxImage3D:       l.max3DTexSize,
		MaxLayers:        l.maxLayers,
		MaxResourceSlots: slots,
		MaxTextureUnits:  l.maxTextureUnits,
		MaxColorTargets:  min(l.maxColorAtts, l.maxDrawBufs),
		MaxFBSize:        l.maxFBSize,
		MaxViewports:     l.maxViewports,
		LineWidthRange:   l.lineWidthRange,
		MaxVertexIn:      l.maxVertexAttrs,
		MaxDispatch:      l.maxDispatch,
	}
}
