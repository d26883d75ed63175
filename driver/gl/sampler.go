// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"github.com/RayGyoe/LLGL/driver"
)

// convMinFilter converts minification and mip filters to a
// single GL minification filter.
func convMinFilter(min, mip driver.Filter) Enum {
	switch mip {
	case driver.FNoMipmap:
		if min == driver.FNearest {
			return NEAREST
		}
		return LINEAR
	case driver.FNearest:
		if min == driver.FNearest {
			return NEAREST_MIPMAP_NEAREST
		}
		return LINEAR_MIPMAP_NEAREST
	default:
		if min == driver.FNearest {
			return NEAREST_MIPMAP_LINEAR
		}
		return LINEAR_MIPMAP_LINEAR
	}
}

func convAddrMode(m driver.AddrMode) Enum {
	switch m {
	case driver.AMirror:
		return MIRRORED_REPEAT
	case driver.AClamp:
		return CLAMP_TO_EDGE
	default:
		return REPEAT
	}
}

func convCmpFunc(f driver.CmpFunc) Enum {
	switch f {
	case driver.CNever:
		return NEVER
	case driver.CLess:
		return LESS
	case driver.CEqual:
		return EQUAL
	case driver.CLessEqual:
		return LEQUAL
	case driver.CGreater:
		return GREATER
	case driver.CNotEqual:
		return NOTEQUAL
	case driver.CGreaterEqual:
		return GEQUAL
	default:
		return ALWAYS
	}
}

// sampler implements driver.Sampler.
type sampler struct {
	s  *StateManager
	id uint32
}

// NewSampler creates a new sampler.
func (g *GPU) NewSampler(spln *driver.Sampling) (driver.Sampler, error) {
	s := g.state
	id := s.fn.CreateSampler()
	if id == 0 {
		return nil, driver.ErrFatal
	}
	fn := s.fn
	fn.SamplerParameteri(id, TEXTURE_MIN_FILTER, int(convMinFilter(spln.Min, spln.Mipmap)))
	if spln.Mag == driver.FNearest {
		fn.SamplerParameteri(id, TEXTURE_MAG_FILTER, int(NEAREST))
	} else {
		fn.SamplerParameteri(id, TEXTURE_MAG_FILTER, int(LINEAR))
	}
	fn.SamplerParameteri(id, TEXTURE_WRAP_S, int(convAddrMode(spln.AddrU)))
	fn.SamplerParameteri(id, TEXTURE_WRAP_T, int(convAddrMode(spln.AddrV)))
	fn.SamplerParameteri(id, TEXTURE_WRAP_R, int(convAddrMode(spln.AddrW)))
	if spln.MaxAniso > 1 {
		fn.SamplerParameterf(id, TEXTURE_MAX_ANISOTROPY, float32(spln.MaxAniso))
	}
	if spln.Compare {
		fn.SamplerParameteri(id, TEXTURE_COMPARE_MODE, int(COMPARE_REF_TO_TEXTURE))
		fn.SamplerParameteri(id, TEXTURE_COMPARE_FUNC, int(convCmpFunc(spln.Cmp)))
	} else {
		fn.SamplerParameteri(id, TEXTURE_COMPARE_MODE, int(NONE))
	}
	fn.SamplerParameterf(id, TEXTURE_MIN_LOD, spln.MinLOD)
	fn.SamplerParameterf(id, TEXTURE_MAX_LOD, spln.MaxLOD)
	return &sampler{s: s, id: id}, nil
}

// Destroy destroys the sampler.
func (p *sampler) Destroy() {
	if p.s != nil {
		p.s.NotifySamplerRelease(p.id)
		p.s.fn.DeleteSampler(p.id)
	}
	*p = sampler{}
}
