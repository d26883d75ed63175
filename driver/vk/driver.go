// Copyright 2024 RayGyoe. All rights reserved.

// Package vk implements the driver interfaces on top of
// Vulkan 1.0, with device memory managed by a chunked
// sub-allocator and image layouts tracked explicitly.
package vk

import (
	"errors"
	"fmt"
	"log"
	"sync"

	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

const driverName = "vulkan"

// Driver implements driver.Driver.
type Driver struct {
	gpu *GPU
}

var drv Driver

func init() { driver.Register(&drv) }

// errFor converts a native result into one of the driver's
// sentinel errors.
func errFor(res vk.Result) error {
	switch res {
	case vk.Success:
		return nil
	case vk.ErrorOutOfHostMemory:
		return driver.ErrNoHostMemory
	case vk.ErrorOutOfDeviceMemory:
		return driver.ErrNoDeviceMemory
	case vk.ErrorDeviceLost, vk.ErrorInitializationFailed:
		return driver.ErrFatal
	case vk.ErrorSurfaceLost:
		return driver.ErrWindow
	case vk.ErrorOutOfDate:
		return driver.ErrSwapchain
	default:
		return fmt.Errorf("vk: result %d", int32(res))
	}
}

// Open initializes the driver.
func (d *Driver) Open() (driver.GPU, error) {
	if d.gpu != nil {
		return d.gpu, nil
	}
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		log.Printf("[!] vk: %v", err)
		return nil, driver.ErrNotInstalled
	}
	if err := vk.Init(); err != nil {
		log.Printf("[!] vk: %v", err)
		return nil, driver.ErrNotInstalled
	}
	g := &GPU{}
	if err := g.initInstance(); err != nil {
		return nil, err
	}
	if err := g.initDevice(); err != nil {
		vk.DestroyInstance(g.inst, nil)
		return nil, err
	}
	g.setLimits()
	d.gpu = g
	return g, nil
}

// Name returns the driver name.
func (d *Driver) Name() string { return driverName }

// Close deinitializes the driver.
func (d *Driver) Close() {
	if d.gpu != nil {
		g := d.gpu
		g.waitPending()
		g.qmu.Lock()
		vk.QueueWaitIdle(g.queue)
		g.qmu.Unlock()
		g.freeMemory()
		if g.shared != nil {
			g.shared.destroy(g)
		}
		vk.DestroyDevice(g.dev, nil)
		vk.DestroyInstance(g.inst, nil)
	}
	*d = Driver{}
}

// GPU implements driver.GPU.
type GPU struct {
	inst  vk.Instance
	phys  vk.PhysicalDevice
	dev   vk.Device
	queue vk.Queue
	qfam  uint32

	// qmu guards queue access, which Vulkan requires to be
	// externally synchronized.
	qmu sync.Mutex

	// pending counts committed batches whose fences have not
	// signaled yet. Destroy paths wait on it so a native
	// handle is never destroyed while the GPU may still use
	// it.
	pending sync.WaitGroup

	props    vk.PhysicalDeviceProperties
	memProps vk.PhysicalDeviceMemoryProperties
	lim      driver.Limits

	// mmu guards the memory chunk list.
	mmu    sync.Mutex
	chunks []*memChunk

	// dmu guards lazy creation of the shared descriptor
	// layout that heaps and pipelines agree on.
	dmu    sync.Mutex
	shared *descLayout

	presentable bool
}

func (g *GPU) initInstance() error {
	appInfo := vk.ApplicationInfo{
		SType:            vk.StructureTypeApplicationInfo,
		PApplicationName: "llgl\x00",
		ApiVersion:       uint32(vk.MakeVersion(1, 0, 0)),
	}
	var exts []string
	var n uint32
	if vk.EnumerateInstanceExtensionProperties("", &n, nil) == vk.Success && n > 0 {
		props := make([]vk.ExtensionProperties, n)
		vk.EnumerateInstanceExtensionProperties("", &n, props)
		for i := range props {
			props[i].Deref()
			name := vk.ToString(props[i].ExtensionName[:])
			switch name {
			case "VK_KHR_surface", "VK_KHR_xcb_surface", "VK_KHR_xlib_surface",
				"VK_KHR_wayland_surface", "VK_KHR_win32_surface", "VK_EXT_metal_surface",
				"VK_KHR_android_surface":
				exts = append(exts, name+"\x00")
			}
		}
	}
	info := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(exts)),
		PpEnabledExtensionNames: exts,
	}
	var inst vk.Instance
	if res := vk.CreateInstance(&info, nil, &inst); res != vk.Success {
		return errFor(res)
	}
	g.inst = inst
	vk.InitInstance(inst)
	return nil
}

func (g *GPU) initDevice() error {
	var n uint32
	if res := vk.EnumeratePhysicalDevices(g.inst, &n, nil); res != vk.Success || n == 0 {
		return driver.ErrNoDevice
	}
	devs := make([]vk.PhysicalDevice, n)
	vk.EnumeratePhysicalDevices(g.inst, &n, devs)

	// Prefer a discrete GPU; settle for anything that has a
	// graphics+compute queue.
	pick := -1
	pickFam := -1
	pickDiscrete := false
	for i, pd := range devs {
		var qn uint32
		vk.GetPhysicalDeviceQueueFamilyProperties(pd, &qn, nil)
		qprops := make([]vk.QueueFamilyProperties, qn)
		vk.GetPhysicalDeviceQueueFamilyProperties(pd, &qn, qprops)
		fam := -1
		for j := range qprops {
			qprops[j].Deref()
			flags := vk.QueueFlags(vk.QueueGraphicsBit | vk.QueueComputeBit)
			if qprops[j].QueueFlags&flags == flags {
				fam = j
				break
			}
		}
		if fam < 0 {
			continue
		}
		var props vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(pd, &props)
		props.Deref()
		discrete := props.DeviceType == vk.PhysicalDeviceTypeDiscreteGpu
		if pick < 0 || (discrete && !pickDiscrete) {
			pick, pickFam, pickDiscrete = i, fam, discrete
			g.props = props
		}
	}
	if pick < 0 {
		return driver.ErrNoDevice
	}
	g.phys = devs[pick]
	g.qfam = uint32(pickFam)

	var exts []string
	var en uint32
	if vk.EnumerateDeviceExtensionProperties(g.phys, "", &en, nil) == vk.Success && en > 0 {
		eprops := make([]vk.ExtensionProperties, en)
		vk.EnumerateDeviceExtensionProperties(g.phys, "", &en, eprops)
		for i := range eprops {
			eprops[i].Deref()
			if vk.ToString(eprops[i].ExtensionName[:]) == "VK_KHR_swapchain" {
				exts = append(exts, "VK_KHR_swapchain\x00")
				g.presentable = true
				break
			}
		}
	}

	prio := []float32{1}
	qinfo := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: g.qfam,
		QueueCount:       1,
		PQueuePriorities: prio,
	}}
	info := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    1,
		PQueueCreateInfos:       qinfo,
		EnabledExtensionCount:   uint32(len(exts)),
		PpEnabledExtensionNames: exts,
	}
	var dev vk.Device
	if res := vk.CreateDevice(g.phys, &info, nil, &dev); res != vk.Success {
		return errFor(res)
	}
	g.dev = dev
	var queue vk.Queue
	vk.GetDeviceQueue(g.dev, g.qfam, 0, &queue)
	g.queue = queue
	vk.GetPhysicalDeviceMemoryProperties(g.phys, &g.memProps)
	g.memProps.Deref()
	g.props.Limits.Deref()
	log.Printf("vk: using %s", vk.ToString(g.props.DeviceName[:]))
	return nil
}

func (g *GPU) setLimits() {
	l := &g.props.Limits
	slots := 64
	if n := int(l.MaxPerStageDescriptorUniformBuffers); n < slots {
		slots = n
	}
	if n := int(l.MaxPerStageDescriptorStorageBuffers); n < slots {
		slots = n
	}
	g.lim = driver.Limits{
		MaxImage2D:       int(l.MaxImageDimension2D),
		MaxImage3D:       int(l.MaxImageDimension3D),
		MaxLayers:        int(l.MaxImageArrayLayers),
		MaxResourceSlots: slots,
		MaxTextureUnits:  int(l.MaxPerStageDescriptorSampledImages),
		MaxColorTargets:  int(l.MaxColorAttachments),
		MaxFBSize:        [2]int{int(l.MaxFramebufferWidth), int(l.MaxFramebufferHeight)},
		MaxViewports:     int(l.MaxViewports),
		LineWidthRange:   [2]float32{l.LineWidthRange[0], l.LineWidthRange[1]},
		MaxVertexIn:      int(l.MaxVertexInputAttributes),
		MaxDispatch: [3]int{
			int(l.MaxComputeWorkGroupCount[0]),
			int(l.MaxComputeWorkGroupCount[1]),
			int(l.MaxComputeWorkGroupCount[2]),
		},
	}
}

// waitPending blocks until every committed batch has
// completed.
func (g *GPU) waitPending() { g.pending.Wait() }

// Driver returns the Driver that owns the GPU.
func (g *GPU) Driver() driver.Driver { return &drv }

// Limits returns the implementation limits.
func (g *GPU) Limits() driver.Limits { return g.lim }

// Commit commits a batch of command buffers for execution.
// The batch is submitted in order in a single native call
// and the result is sent to ch when the submission's fence
// signals.
func (g *GPU) Commit(cb []driver.CmdBuffer, ch chan<- error) {
	ncb := make([]vk.CommandBuffer, len(cb))
	for i := range cb {
		c, ok := cb[i].(*cmdBuffer)
		if !ok || c.g != g {
			ch <- errors.New("vk: commit of foreign command buffer")
			return
		}
		if !c.ready {
			ch <- errors.New("vk: commit of unended command buffer")
			return
		}
		ncb[i] = c.cb
	}
	finfo := vk.FenceCreateInfo{SType: vk.StructureTypeFenceCreateInfo}
	var fence vk.Fence
	if res := vk.CreateFence(g.dev, &finfo, nil, &fence); res != vk.Success {
		ch <- errFor(res)
		return
	}
	sub := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		CommandBufferCount: uint32(len(ncb)),
		PCommandBuffers:    ncb,
	}}
	g.qmu.Lock()
	res := vk.QueueSubmit(g.queue, 1, sub, fence)
	g.qmu.Unlock()
	if res != vk.Success {
		vk.DestroyFence(g.dev, fence, nil)
		ch <- errFor(res)
		return
	}
	g.pending.Add(1)
	go func() {
		res := vk.WaitForFences(g.dev, 1, []vk.Fence{fence}, vk.True, vk.MaxUint64)
		vk.DestroyFence(g.dev, fence, nil)
		for i := range cb {
			cb[i].(*cmdBuffer).ready = false
		}
		g.pending.Done()
		ch <- errFor(res)
	}()
}
