// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// descLayout is the descriptor set layout shared by every
// resource heap and pipeline of a GPU.
// Each binding kind occupies its own plane of slot numbers,
// so any heap's descriptor set is compatible with any
// pipeline's layout. Only statically used bindings need a
// valid descriptor, so heaps write just their own slots.
type descLayout struct {
	set    vk.DescriptorSetLayout
	pipeln vk.PipelineLayout
	slots  int
}

// descBinding returns the native binding number of a
// (kind, slot) pair.
func (d *descLayout) descBinding(kind driver.BindingKind, slot int) uint32 {
	return uint32(int(kind)*d.slots + slot)
}

// descTypeOf converts a driver.BindingKind to a
// vk.DescriptorType.
func descTypeOf(kind driver.BindingKind) vk.DescriptorType {
	switch kind {
	case driver.BStorage:
		return vk.DescriptorTypeStorageBuffer
	case driver.BConstant:
		return vk.DescriptorTypeUniformBuffer
	case driver.BTexture:
		return vk.DescriptorTypeSampledImage
	case driver.BImage:
		return vk.DescriptorTypeStorageImage
	case driver.BSampler:
		return vk.DescriptorTypeSampler
	}
	panic("vk: invalid binding kind")
}

// sharedLayout returns the GPU's shared layout, creating it
// on first use.
func (g *GPU) sharedLayout() (*descLayout, error) {
	g.dmu.Lock()
	defer g.dmu.Unlock()
	if g.shared != nil {
		return g.shared, nil
	}
	slots := g.lim.MaxResourceSlots
	kinds := []driver.BindingKind{
		driver.BStorage, driver.BConstant, driver.BTexture, driver.BImage, driver.BSampler,
	}
	d := &descLayout{slots: slots}
	binds := make([]vk.DescriptorSetLayoutBinding, 0, slots*len(kinds))
	for _, k := range kinds {
		for s := 0; s < slots; s++ {
			binds = append(binds, vk.DescriptorSetLayoutBinding{
				Binding:         d.descBinding(k, s),
				DescriptorType:  descTypeOf(k),
				DescriptorCount: 1,
				StageFlags:      vk.ShaderStageFlags(vk.ShaderStageAll),
			})
		}
	}
	linfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(binds)),
		PBindings:    binds,
	}
	if res := vk.CreateDescriptorSetLayout(g.dev, &linfo, nil, &d.set); res != vk.Success {
		return nil, errFor(res)
	}
	pinfo := vk.PipelineLayoutCreateInfo{
		SType:          vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount: 1,
		PSetLayouts:    []vk.DescriptorSetLayout{d.set},
	}
	if res := vk.CreatePipelineLayout(g.dev, &pinfo, nil, &d.pipeln); res != vk.Success {
		vk.DestroyDescriptorSetLayout(g.dev, d.set, nil)
		return nil, errFor(res)
	}
	g.shared = d
	return d, nil
}

func (d *descLayout) destroy(g *GPU) {
	vk.DestroyPipelineLayout(g.dev, d.pipeln, nil)
	vk.DestroyDescriptorSetLayout(g.dev, d.set, nil)
	*d = descLayout{}
}

// resourceHeap implements driver.ResourceHeap as a single
// descriptor set.
type resourceHeap struct {
	g    *GPU
	pool vk.DescriptorPool
	set  vk.DescriptorSet
}

// NewResourceHeap creates a new resource heap from a set of
// slot bindings.
func (g *GPU) NewResourceHeap(bind []driver.Binding) (driver.ResourceHeap, error) {
	d, err := g.sharedLayout()
	if err != nil {
		return nil, err
	}
	for i := range bind {
		if bind[i].Slot < 0 || bind[i].Slot >= d.slots {
			panic("vk: resource heap slot out of range")
		}
	}
	// The pool serves exactly one set; rebinding a (kind,
	// slot) pair overwrites through write ordering below.
	count := make(map[vk.DescriptorType]uint32)
	for i := range bind {
		count[descTypeOf(bind[i].Kind)]++
	}
	sizes := make([]vk.DescriptorPoolSize, 0, len(count))
	for typ, n := range count {
		sizes = append(sizes, vk.DescriptorPoolSize{Type: typ, DescriptorCount: n})
	}
	if len(sizes) == 0 {
		// Pools cannot be empty; an empty heap still binds.
		sizes = append(sizes, vk.DescriptorPoolSize{
			Type:            vk.DescriptorTypeSampler,
			DescriptorCount: 1,
		})
	}
	pinfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       1,
		PoolSizeCount: uint32(len(sizes)),
		PPoolSizes:    sizes,
	}
	var pool vk.DescriptorPool
	if res := vk.CreateDescriptorPool(g.dev, &pinfo, nil, &pool); res != vk.Success {
		return nil, errFor(res)
	}
	ainfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     pool,
		DescriptorSetCount: 1,
		PSetLayouts:        []vk.DescriptorSetLayout{d.set},
	}
	sets := make([]vk.DescriptorSet, 1)
	if res := vk.AllocateDescriptorSets(g.dev, &ainfo, &sets[0]); res != vk.Success {
		vk.DestroyDescriptorPool(g.dev, pool, nil)
		return nil, errFor(res)
	}
	set := sets[0]

	writes := make([]vk.WriteDescriptorSet, 0, len(bind))
	for i := range bind {
		b := &bind[i]
		w := vk.WriteDescriptorSet{
			SType:           vk.StructureTypeWriteDescriptorSet,
			DstSet:          set,
			DstBinding:      d.descBinding(b.Kind, b.Slot),
			DescriptorCount: 1,
			DescriptorType:  descTypeOf(b.Kind),
		}
		switch b.Kind {
		case driver.BStorage, driver.BConstant:
			size := vk.DeviceSize(b.BufSize)
			if b.BufSize == 0 {
				size = vk.DeviceSize(vk.WholeSize)
			}
			w.PBufferInfo = []vk.DescriptorBufferInfo{{
				Buffer: b.Buffer.(*buffer).buf,
				Offset: vk.DeviceSize(b.BufOff),
				Range:  size,
			}}
		case driver.BTexture:
			w.PImageInfo = []vk.DescriptorImageInfo{{
				ImageView:   b.View.(*imageView).view,
				ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
			}}
		case driver.BImage:
			w.PImageInfo = []vk.DescriptorImageInfo{{
				ImageView:   b.View.(*imageView).view,
				ImageLayout: vk.ImageLayoutGeneral,
			}}
		case driver.BSampler:
			w.PImageInfo = []vk.DescriptorImageInfo{{
				Sampler: b.Sampler.(*sampler).splr,
			}}
		}
		writes = append(writes, w)
	}
	if len(writes) > 0 {
		vk.UpdateDescriptorSets(g.dev, uint32(len(writes)), writes, 0, nil)
	}
	return &resourceHeap{g: g, pool: pool, set: set}, nil
}

// Destroy destroys the resource heap.
func (h *resourceHeap) Destroy() {
	if h.g != nil {
		h.g.waitPending()
		vk.DestroyDescriptorPool(h.g.dev, h.pool, nil)
	}
	*h = resourceHeap{}
}
