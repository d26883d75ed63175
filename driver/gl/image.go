// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"github.com/RayGyoe/LLGL/driver"
)

// convPixelFmt converts a driver.PixelFmt to a sized
// internal format plus the matching pixel transfer format
// and type.
func convPixelFmt(pf driver.PixelFmt) (internal, format, typ Enum, ok bool) {
	ok = true
	switch pf {
	case driver.RGBA8un:
		internal, format, typ = RGBA8, RGBA, UNSIGNED_BYTE
	case driver.RGBA8sRGB:
		internal, format, typ = SRGB8_ALPHA8, RGBA, UNSIGNED_BYTE
	case driver.BGRA8un:
		internal, format, typ = RGBA8, BGRA, UNSIGNED_BYTE
	case driver.BGRA8sRGB:
		internal, format, typ = SRGB8_ALPHA8, BGRA, UNSIGNED_BYTE
	case driver.RG8un:
		internal, format, typ = RG8, RG, UNSIGNED_BYTE
	case driver.R8un:
		internal, format, typ = R8, RED, UNSIGNED_BYTE
	case driver.RGBA16f:
		internal, format, typ = RGBA16F, RGBA, HALF_FLOAT
	case driver.RG16f:
		internal, format, typ = RG16F, RG, HALF_FLOAT
	case driver.R16f:
		internal, format, typ = R16F, RED, HALF_FLOAT
	case driver.RGBA32f:
		internal, format, typ = RGBA32F, RGBA, FLOAT
	case driver.RG32f:
		internal, format, typ = RG32F, RG, FLOAT
	case driver.R32f:
		internal, format, typ = R32F, RED, FLOAT
	case driver.D16un:
		internal, format, typ = DEPTH_COMPONENT16, DEPTH_COMPONENT, UNSIGNED_SHORT
	case driver.D32f:
		internal, format, typ = DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT
	case driver.S8ui:
		internal, format, typ = STENCIL_INDEX8, STENCIL_INDEX, UNSIGNED_BYTE
	case driver.D24unS8ui:
		internal, format, typ = DEPTH24_STENCIL8, DEPTH_STENCIL, UNSIGNED_INT_24_8
	case driver.D32fS8ui:
		internal, format, typ = DEPTH32F_STENCIL8, DEPTH_STENCIL, FLOAT_32_UNSIGNED_INT_24_8_REV
	default:
		ok = false
	}
	return
}

// texTargetFor selects the texture target of an image from
// its dimensionality, layer count and sampling.
func texTargetFor(size driver.Dim3D, layers, samples int) Enum {
	switch {
	case samples > 1 && layers > 1:
		return TEXTURE_2D_MULTISAMPLE_ARRAY
	case samples > 1:
		return TEXTURE_2D_MULTISAMPLE
	case size.Depth > 1:
		return TEXTURE_3D
	case size.Height <= 1 && layers > 1:
		return TEXTURE_1D_ARRAY
	case size.Height <= 1:
		return TEXTURE_1D
	case layers > 1:
		return TEXTURE_2D_ARRAY
	default:
		return TEXTURE_2D
	}
}

// image implements driver.Image.
// Images that are only ever render targets are backed by a
// renderbuffer; everything else is an immutable texture.
type image struct {
	s       *StateManager
	id      uint32
	rb      uint32
	target  Enum
	pf      driver.PixelFmt
	size    driver.Dim3D
	layers  int
	levels  int
	samples int
	usg     driver.Usage
}

// NewImage creates a new image.
func (g *GPU) NewImage(pf driver.PixelFmt, size driver.Dim3D, layers, levels, samples int, usg driver.Usage) (driver.Image, error) {
	switch {
	case size.Width < 1 || size.Height < 1 || size.Depth < 1:
		panic("gl: image size must be greater than 0")
	case layers < 1 || levels < 1 || samples < 1:
		panic("gl: image layers/levels/samples must be greater than 0")
	case samples&(samples-1) != 0:
		panic("gl: image samples must be a power of 2")
	}
	internal, _, _, ok := convPixelFmt(pf)
	if !ok {
		panic("gl: unsupported pixel format")
	}
	s := g.state
	if usg&^driver.URenderTarget == 0 {
		// Never sampled, copied or written by shaders.
		rb := s.fn.CreateRenderbuffer()
		if rb == 0 {
			return nil, driver.ErrFatal
		}
		s.BindRenderbuffer(rb)
		s.fn.RenderbufferStorageMultisample(RENDERBUFFER, samples, internal, size.Width, size.Height)
		return &image{
			s:       s,
			rb:      rb,
			pf:      pf,
			size:    size,
			layers:  layers,
			levels:  levels,
			samples: samples,
			usg:     usg,
		}, nil
	}
	target := texTargetFor(size, layers, samples)
	id := s.fn.CreateTexture()
	if id == 0 {
		return nil, driver.ErrFatal
	}
	s.PushBoundTexture(0, target)
	s.BindTexture(0, target, id)
	switch target {
	case TEXTURE_1D:
		s.fn.TexStorage2D(target, levels, internal, size.Width, 1)
	case TEXTURE_1D_ARRAY:
		s.fn.TexStorage2D(target, levels, internal, size.Width, layers)
	case TEXTURE_2D:
		s.fn.TexStorage2D(target, levels, internal, size.Width, size.Height)
	case TEXTURE_2D_ARRAY:
		s.fn.TexStorage3D(target, levels, internal, size.Width, size.Height, layers)
	case TEXTURE_3D:
		s.fn.TexStorage3D(target, levels, internal, size.Width, size.Height, size.Depth)
	case TEXTURE_2D_MULTISAMPLE:
		s.fn.TexStorage2DMultisample(target, samples, internal, size.Width, size.Height, true)
	case TEXTURE_2D_MULTISAMPLE_ARRAY:
		s.fn.TexStorage3DMultisample(target, samples, internal, size.Width, size.Height, layers, true)
	}
	s.PopBoundTexture()
	return &image{
		s:       s,
		id:      id,
		target:  target,
		pf:      pf,
		size:    size,
		layers:  layers,
		levels:  levels,
		samples: samples,
		usg:     usg,
	}, nil
}

// viewTarget converts a driver.ViewType to the texture
// target of a view.
func viewTarget(typ driver.ViewType) Enum {
	switch typ {
	case driver.IView1D:
		return TEXTURE_1D
	case driver.IView2D:
		return TEXTURE_2D
	case driver.IView3D:
		return TEXTURE_3D
	case driver.IViewCube:
		return TEXTURE_CUBE_MAP
	case driver.IView2DArray:
		return TEXTURE_2D_ARRAY
	case driver.IView2DMS:
		return TEXTURE_2D_MULTISAMPLE
	default:
		panic("gl: unknown view type")
	}
}

// imageView implements driver.ImageView as a texture view
// sharing the image's storage.
type imageView struct {
	img    *image
	id     uint32
	target Enum
	layer  int
	layers int
	level  int
	levels int
}

// NewView creates a new image view.
func (m *image) NewView(typ driver.ViewType, layer, layers, level, levels int) (driver.ImageView, error) {
	switch {
	case layer < 0 || layers < 1 || layer+layers > m.layers:
		panic("gl: view layer range out of bounds")
	case level < 0 || levels < 1 || level+levels > m.levels:
		panic("gl: view level range out of bounds")
	}
	if m.rb != 0 {
		// Renderbuffers have no subresources to select.
		return &imageView{img: m, layers: layers, levels: levels}, nil
	}
	s := m.s
	internal, _, _, _ := convPixelFmt(m.pf)
	target := viewTarget(typ)
	id := s.fn.CreateTexture()
	if id == 0 {
		return nil, driver.ErrFatal
	}
	s.fn.TextureView(id, target, m.id, internal, level, levels, layer, layers)
	return &imageView{
		img:    m,
		id:     id,
		target: target,
		layer:  layer,
		layers: layers,
		level:  level,
		levels: levels,
	}, nil
}

// Destroy destroys the image view.
func (v *imageView) Destroy() {
	if v.img != nil && v.id != 0 {
		v.img.s.NotifyTextureRelease(v.id)
		v.img.s.fn.DeleteTexture(v.id)
	}
	*v = imageView{}
}

// Destroy destroys the image.
func (m *image) Destroy() {
	if m.s != nil {
		if m.rb != 0 {
			m.s.NotifyRenderbufferRelease(m.rb)
			m.s.fn.DeleteRenderbuffer(m.rb)
		} else {
			m.s.NotifyTextureRelease(m.id)
			m.s.fn.DeleteTexture(m.id)
		}
	}
	*m = image{}
}
