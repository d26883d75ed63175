// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// sampler implements driver.Sampler.
type sampler struct {
	g    *GPU
	splr vk.Sampler
}

// NewSampler creates a new sampler.
func (g *GPU) NewSampler(spln *driver.Sampling) (driver.Sampler, error) {
	info := vk.SamplerCreateInfo{
		SType:        vk.StructureTypeSamplerCreateInfo,
		MagFilter:    convFilter(spln.Mag),
		MinFilter:    convFilter(spln.Min),
		AddressModeU: convAddrMode(spln.AddrU),
		AddressModeV: convAddrMode(spln.AddrV),
		AddressModeW: convAddrMode(spln.AddrW),
		MinLod:       spln.MinLOD,
		MaxLod:       spln.MaxLOD,
	}
	switch spln.Mipmap {
	case driver.FLinear:
		info.MipmapMode = vk.SamplerMipmapModeLinear
	case driver.FNoMipmap:
		// Clamping LOD below one restricts sampling to the
		// base level.
		info.MipmapMode = vk.SamplerMipmapModeNearest
		info.MinLod = 0
		info.MaxLod = 0.25
	default:
		info.MipmapMode = vk.SamplerMipmapModeNearest
	}
	if spln.MaxAniso > 1 {
		info.AnisotropyEnable = vk.True
		info.MaxAnisotropy = float32(spln.MaxAniso)
	}
	if spln.Compare {
		info.CompareEnable = vk.True
		info.CompareOp = convCmpFunc(spln.Cmp)
	}
	var splr vk.Sampler
	if res := vk.CreateSampler(g.dev, &info, nil, &splr); res != vk.Success {
		return nil, errFor(res)
	}
	return &sampler{g: g, splr: splr}, nil
}

// Destroy destroys the sampler.
func (s *sampler) Destroy() {
	if s.g != nil {
		s.g.waitPending()
		vk.DestroySampler(s.g.dev, s.splr, nil)
	}
	*s = sampler{}
}
