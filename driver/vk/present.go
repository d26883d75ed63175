// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// maxBackbuffers caps the number of swapchain color buffers
// regardless of what the surface allows.
const maxBackbuffers = 3

// pickSurfaceFormat selects the color format of a swapchain.
// BGRA8 with sRGB encoding in the nonlinear color space is
// preferred when available. A surface that advertises a
// single undefined format accepts any format and gets that
// preference.
func pickSurfaceFormat(sf []vk.SurfaceFormat) vk.SurfaceFormat {
	if len(sf) == 1 && sf[0].Format == vk.FormatUndefined {
		return vk.SurfaceFormat{
			Format:     vk.FormatB8g8r8a8Srgb,
			ColorSpace: vk.ColorSpaceSrgbNonlinear,
		}
	}
	for i := range sf {
		if sf[i].Format == vk.FormatB8g8r8a8Srgb && sf[i].ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return sf[i]
		}
	}
	for i := range sf {
		if sf[i].Format == vk.FormatB8g8r8a8Unorm && sf[i].ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return sf[i]
		}
	}
	for i := range sf {
		if backPixelFmt(sf[i].Format) != driver.FInvalid {
			return sf[i]
		}
	}
	return sf[0]
}

// pickPresentMode selects the presentation mode for a given
// vsync interval. FIFO is the only mode the specification
// guarantees, so it is the fallback either way.
func pickPresentMode(modes []vk.PresentMode, vsync int) vk.PresentMode {
	if vsync == 0 {
		better := vk.PresentMode(-1)
		for _, m := range modes {
			switch m {
			case vk.PresentModeMailbox:
				return m
			case vk.PresentModeImmediate:
				better = m
			}
		}
		if better != vk.PresentMode(-1) {
			return better
		}
	}
	return vk.PresentModeFifo
}

// pickImageCount clamps a requested buffer count to what the
// surface supports. A max of zero means unbounded.
func pickImageCount(req int, min, max uint32) uint32 {
	n := uint32(maxBackbuffers)
	if req > 0 && uint32(req) < n {
		n = uint32(req)
	}
	if n < min {
		n = min
	}
	if max != 0 && n > max {
		n = max
	}
	return n
}

// depthFormatsFor returns the depth/stencil formats suitable
// for the requested bit depths, most preferred first. A nil
// result means no depth/stencil buffer was requested.
func depthFormatsFor(depthBits, stencilBits int) []driver.PixelFmt {
	switch {
	case depthBits == 0 && stencilBits == 0:
		return nil
	case stencilBits == 0:
		if depthBits <= 16 {
			return []driver.PixelFmt{driver.D16un, driver.D32f, driver.D24unS8ui}
		}
		return []driver.PixelFmt{driver.D32f, driver.D24unS8ui, driver.D32fS8ui}
	case depthBits == 0:
		return []driver.PixelFmt{driver.S8ui, driver.D24unS8ui, driver.D32fS8ui}
	case depthBits <= 24:
		return []driver.PixelFmt{driver.D24unS8ui, driver.D32fS8ui}
	default:
		return []driver.PixelFmt{driver.D32fS8ui, driver.D24unS8ui}
	}
}

// clampExtent resolves the swapchain extent from a request
// and the surface bounds. An undefined current extent lets
// the request through, clamped to the min/max bounds.
func clampExtent(width, height int, current, min, max vk.Extent2D) vk.Extent2D {
	if current.Width != vk.MaxUint32 {
		return current
	}
	e := vk.Extent2D{Width: uint32(width), Height: uint32(height)}
	if e.Width < min.Width {
		e.Width = min.Width
	}
	if max.Width != 0 && e.Width > max.Width {
		e.Width = max.Width
	}
	if e.Height < min.Height {
		e.Height = min.Height
	}
	if max.Height != 0 && e.Height > max.Height {
		e.Height = max.Height
	}
	return e
}

// swapchain implements driver.Swapchain.
type swapchain struct {
	g    *GPU
	surf vk.Surface
	sc   vk.Swapchain
	conf driver.SwapchainConfig

	format  vk.SurfaceFormat
	pf      driver.PixelFmt
	depthPF driver.PixelFmt
	extent  vk.Extent2D

	imgs      []*image
	views     []driver.ImageView
	depthImg  driver.Image
	depthView driver.ImageView

	// sems is a ring of binary semaphores linking acquire,
	// submission and presentation.
	sems []vk.Semaphore
	next int

	acquired []bool
	nacq     int
}

// NewSwapchain creates a new swapchain.
// The window must carry a ready-made native surface; the
// driver performs no windowing itself.
func (g *GPU) NewSwapchain(config *driver.SwapchainConfig) (driver.Swapchain, error) {
	if !g.presentable {
		return nil, driver.ErrCannotPresent
	}
	if config.Window.Surface == 0 {
		return nil, driver.ErrWindow
	}
	surf := vk.SurfaceFromPointer(uintptr(config.Window.Surface))
	var supported vk.Bool32
	res := vk.GetPhysicalDeviceSurfaceSupport(g.phys, g.qfam, surf, &supported)
	if res != vk.Success || supported != vk.True {
		return nil, driver.ErrWindow
	}
	s := &swapchain{g: g, surf: surf, conf: *config}

	var n uint32
	vk.GetPhysicalDeviceSurfaceFormats(g.phys, surf, &n, nil)
	if n == 0 {
		return nil, driver.ErrWindow
	}
	formats := make([]vk.SurfaceFormat, n)
	vk.GetPhysicalDeviceSurfaceFormats(g.phys, surf, &n, formats)
	for i := range formats {
		formats[i].Deref()
	}
	s.format = pickSurfaceFormat(formats)
	s.pf = backPixelFmt(s.format.Format)

	s.depthPF = driver.FInvalid
	for _, pf := range depthFormatsFor(config.DepthBits, config.StencilBits) {
		var props vk.FormatProperties
		vk.GetPhysicalDeviceFormatProperties(g.phys, convPixelFmt(pf), &props)
		props.Deref()
		feat := vk.FormatFeatureFlags(vk.FormatFeatureDepthStencilAttachmentBit)
		if props.OptimalTilingFeatures&feat == feat {
			s.depthPF = pf
			break
		}
	}

	if err := s.create(vk.NullSwapchain); err != nil {
		return nil, err
	}
	return s, nil
}

// create builds the native swapchain and its dependent
// resources, replacing old if given.
func (s *swapchain) create(old vk.Swapchain) error {
	g := s.g
	var caps vk.SurfaceCapabilities
	if res := vk.GetPhysicalDeviceSurfaceCapabilities(g.phys, s.surf, &caps); res != vk.Success {
		return errFor(res)
	}
	caps.Deref()
	caps.CurrentExtent.Deref()
	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	var n uint32
	vk.GetPhysicalDeviceSurfacePresentModes(g.phys, s.surf, &n, nil)
	modes := make([]vk.PresentMode, n)
	vk.GetPhysicalDeviceSurfacePresentModes(g.phys, s.surf, &n, modes)
	mode := pickPresentMode(modes, s.conf.VsyncInterval)

	extent := clampExtent(s.conf.Width, s.conf.Height, caps.CurrentExtent, caps.MinImageExtent, caps.MaxImageExtent)
	count := pickImageCount(s.conf.BufferCount, caps.MinImageCount, caps.MaxImageCount)

	info := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          s.surf,
		MinImageCount:    count,
		ImageFormat:      s.format.Format,
		ImageColorSpace:  s.format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferDstBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      mode,
		Clipped:          vk.True,
		OldSwapchain:     old,
	}
	var sc vk.Swapchain
	if res := vk.CreateSwapchain(g.dev, &info, nil, &sc); res != vk.Success {
		return errFor(res)
	}
	if old != vk.NullSwapchain {
		vk.DestroySwapchain(g.dev, old, nil)
	}
	s.sc = sc
	s.extent = extent

	var imgCount uint32
	vk.GetSwapchainImages(g.dev, sc, &imgCount, nil)
	nimgs := make([]vk.Image, imgCount)
	vk.GetSwapchainImages(g.dev, sc, &imgCount, nimgs)

	s.imgs = make([]*image, len(nimgs))
	s.views = make([]driver.ImageView, len(nimgs))
	for i := range nimgs {
		s.imgs[i] = &image{
			g:   g,
			img: nimgs[i],
			pf:  s.pf,
			size: driver.Dim3D{
				Width:  int(extent.Width),
				Height: int(extent.Height),
				Depth:  1,
			},
			layers:  1,
			levels:  1,
			samples: 1,
			usg:     driver.URenderTarget | driver.UCopyDst,
		}
		view, err := s.imgs[i].NewView(driver.IView2D, 0, 1, 0, 1)
		if err != nil {
			return err
		}
		s.views[i] = view
	}

	if s.depthPF != driver.FInvalid {
		samples := s.conf.Samples
		if samples < 2 {
			samples = 1
		}
		img, err := g.NewImage(s.depthPF, driver.Dim3D{
			Width:  int(extent.Width),
			Height: int(extent.Height),
			Depth:  1,
		}, 1, 1, samples, driver.URenderTarget)
		if err != nil {
			return err
		}
		typ := driver.IView2D
		if samples > 1 {
			typ = driver.IView2DMS
		}
		view, err := img.NewView(typ, 0, 1, 0, 1)
		if err != nil {
			img.Destroy()
			return err
		}
		s.depthImg = img
		s.depthView = view
	}

	nsem := 2 * (len(nimgs) + 1)
	s.sems = make([]vk.Semaphore, nsem)
	for i := range s.sems {
		sinfo := vk.SemaphoreCreateInfo{SType: vk.StructureTypeSemaphoreCreateInfo}
		if res := vk.CreateSemaphore(g.dev, &sinfo, nil, &s.sems[i]); res != vk.Success {
			return errFor(res)
		}
	}
	s.next = 0
	s.acquired = make([]bool, len(nimgs))
	s.nacq = 0
	return nil
}

// release destroys the resources dependent on the current
// native swapchain, leaving the swapchain itself to the
// caller.
func (s *swapchain) release() {
	g := s.g
	g.waitPending()
	g.qmu.Lock()
	vk.QueueWaitIdle(g.queue)
	g.qmu.Unlock()
	for _, v := range s.views {
		v.Destroy()
	}
	s.views = nil
	s.imgs = nil
	if s.depthView != nil {
		s.depthView.Destroy()
		s.depthView = nil
	}
	if s.depthImg != nil {
		s.depthImg.Destroy()
		s.depthImg = nil
	}
	for _, sem := range s.sems {
		vk.DestroySemaphore(g.dev, sem, nil)
	}
	s.sems = nil
}

// nextSem returns the next semaphore of the ring.
func (s *swapchain) nextSem() vk.Semaphore {
	sem := s.sems[s.next]
	s.next = (s.next + 1) % len(s.sems)
	return sem
}

// Views returns the swapchain's color buffer views.
func (s *swapchain) Views() []driver.ImageView { return s.views }

// DepthView returns the view of the depth/stencil buffer.
func (s *swapchain) DepthView() driver.ImageView { return s.depthView }

// Next returns the index of the next writable view.
// The acquire semaphore is consumed right away by an empty
// queue submission, so later commits need no semaphore
// plumbing of their own.
func (s *swapchain) Next() (int, error) {
	if s.nacq == len(s.imgs) {
		return -1, driver.ErrNoBackbuffer
	}
	sem := s.nextSem()
	var idx uint32
	res := vk.AcquireNextImage(s.g.dev, s.sc, vk.MaxUint64, sem, vk.NullFence, &idx)
	switch res {
	case vk.Success, vk.Suboptimal:
	case vk.NotReady, vk.Timeout:
		return -1, driver.ErrNoBackbuffer
	case vk.ErrorOutOfDate:
		return -1, driver.ErrSwapchain
	default:
		return -1, errFor(res)
	}
	sub := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{sem},
		PWaitDstStageMask:  []vk.PipelineStageFlags{vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit)},
	}}
	s.g.qmu.Lock()
	sres := vk.QueueSubmit(s.g.queue, 1, sub, vk.NullFence)
	s.g.qmu.Unlock()
	if sres != vk.Success {
		return -1, errFor(sres)
	}
	s.acquired[idx] = true
	s.nacq++
	return int(idx), nil
}

// Present presents the view identified by index.
func (s *swapchain) Present(index int) error {
	if index < 0 || index >= len(s.imgs) || !s.acquired[index] {
		panic("vk: present of unacquired view")
	}
	s.acquired[index] = false
	s.nacq--
	sem := s.nextSem()
	sub := []vk.SubmitInfo{{
		SType:                vk.StructureTypeSubmitInfo,
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{sem},
	}}
	info := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{sem},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.sc},
		PImageIndices:      []uint32{uint32(index)},
	}
	s.g.qmu.Lock()
	res := vk.QueueSubmit(s.g.queue, 1, sub, vk.NullFence)
	if res == vk.Success {
		res = vk.QueuePresent(s.g.queue, &info)
	}
	s.g.qmu.Unlock()
	switch res {
	case vk.Success, vk.Suboptimal:
		return nil
	case vk.ErrorOutOfDate:
		return driver.ErrSwapchain
	default:
		return errFor(res)
	}
}

// Resize updates the size of the swapchain's buffers.
func (s *swapchain) Resize(width, height int) error {
	if int(s.extent.Width) == width && int(s.extent.Height) == height {
		return nil
	}
	s.conf.Width = width
	s.conf.Height = height
	return s.Recreate()
}

// SetVsync updates the vsync interval.
// The swapchain is only recreated when the new interval
// selects a different presentation mode.
func (s *swapchain) SetVsync(interval int) error {
	var n uint32
	vk.GetPhysicalDeviceSurfacePresentModes(s.g.phys, s.surf, &n, nil)
	modes := make([]vk.PresentMode, n)
	vk.GetPhysicalDeviceSurfacePresentModes(s.g.phys, s.surf, &n, modes)
	oldMode := pickPresentMode(modes, s.conf.VsyncInterval)
	newMode := pickPresentMode(modes, interval)
	s.conf.VsyncInterval = interval
	if oldMode == newMode {
		return nil
	}
	return s.Recreate()
}

// Recreate recreates the swapchain.
func (s *swapchain) Recreate() error {
	if s.nacq != 0 {
		panic("vk: swapchain recreated with acquired views")
	}
	s.release()
	return s.create(s.sc)
}

// Format returns the PixelFmt of the color buffers.
func (s *swapchain) Format() driver.PixelFmt { return s.pf }

// DepthFormat returns the PixelFmt of the depth/stencil
// buffer, or FInvalid if there is none.
func (s *swapchain) DepthFormat() driver.PixelFmt { return s.depthPF }

// Extent returns the current size of the buffers.
func (s *swapchain) Extent() (width, height int) {
	return int(s.extent.Width), int(s.extent.Height)
}

// Destroy destroys the swapchain.
// The native surface belongs to the windowing layer that
// created it and is left alone.
func (s *swapchain) Destroy() {
	if s.g != nil {
		s.release()
		vk.DestroySwapchain(s.g.dev, s.sc, nil)
	}
	*s = swapchain{}
}
