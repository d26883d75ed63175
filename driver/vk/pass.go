// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// renderPass implements driver.RenderPass.
type renderPass struct {
	g    *GPU
	pass vk.RenderPass
	atts []driver.Attachment
}

// NewRenderPass creates a new render pass.
func (g *GPU) NewRenderPass(att []driver.Attachment) (driver.RenderPass, error) {
	descs := make([]vk.AttachmentDescription, len(att))
	var colorRefs []vk.AttachmentReference
	var dsRef *vk.AttachmentReference
	for i := range att {
		load := convLoadOp(att[i].Load)
		store := convStoreOp(att[i].Store)
		descs[i] = vk.AttachmentDescription{
			Format:         convPixelFmt(att[i].Format),
			Samples:        convSamples(att[i].Samples),
			LoadOp:         load,
			StoreOp:        store,
			StencilLoadOp:  vk.AttachmentLoadOpDontCare,
			StencilStoreOp: vk.AttachmentStoreOpDontCare,
			InitialLayout:  vk.ImageLayoutUndefined,
		}
		if att[i].Format.IsDepthStencil() {
			if dsRef != nil {
				panic("vk: render pass with multiple depth/stencil attachments")
			}
			if att[i].Format.IsStencil() {
				descs[i].StencilLoadOp = load
				descs[i].StencilStoreOp = store
			}
			descs[i].FinalLayout = vk.ImageLayoutDepthStencilAttachmentOptimal
			if att[i].Load == driver.LLoad {
				descs[i].InitialLayout = vk.ImageLayoutDepthStencilAttachmentOptimal
			}
			dsRef = &vk.AttachmentReference{
				Attachment: uint32(i),
				Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
			}
		} else {
			descs[i].FinalLayout = vk.ImageLayoutColorAttachmentOptimal
			if att[i].Load == driver.LLoad {
				descs[i].InitialLayout = vk.ImageLayoutColorAttachmentOptimal
			}
			colorRefs = append(colorRefs, vk.AttachmentReference{
				Attachment: uint32(i),
				Layout:     vk.ImageLayoutColorAttachmentOptimal,
			})
		}
	}
	subpass := vk.SubpassDescription{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    uint32(len(colorRefs)),
		PColorAttachments:       colorRefs,
		PDepthStencilAttachment: dsRef,
	}
	info := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(descs)),
		PAttachments:    descs,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
	}
	var pass vk.RenderPass
	if res := vk.CreateRenderPass(g.dev, &info, nil, &pass); res != vk.Success {
		return nil, errFor(res)
	}
	atts := make([]driver.Attachment, len(att))
	copy(atts, att)
	return &renderPass{g: g, pass: pass, atts: atts}, nil
}

// framebuf implements driver.Framebuf.
type framebuf struct {
	pass   *renderPass
	fb     vk.Framebuffer
	width  int
	height int
	layers int
}

// NewFB creates a new framebuffer.
func (p *renderPass) NewFB(iv []driver.ImageView, width, height, layers int) (driver.Framebuf, error) {
	if len(iv) != len(p.atts) {
		panic("vk: framebuffer attachment count mismatch")
	}
	views := make([]vk.ImageView, len(iv))
	for i := range iv {
		views[i] = iv[i].(*imageView).view
	}
	info := vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      p.pass,
		AttachmentCount: uint32(len(views)),
		PAttachments:    views,
		Width:           uint32(width),
		Height:          uint32(height),
		Layers:          uint32(layers),
	}
	var fb vk.Framebuffer
	if res := vk.CreateFramebuffer(p.g.dev, &info, nil, &fb); res != vk.Success {
		return nil, errFor(res)
	}
	return &framebuf{pass: p, fb: fb, width: width, height: height, layers: layers}, nil
}

// Destroy destroys the framebuffer.
func (f *framebuf) Destroy() {
	if f.pass != nil {
		f.pass.g.waitPending()
		vk.DestroyFramebuffer(f.pass.g.dev, f.fb, nil)
	}
	*f = framebuf{}
}

// Destroy destroys the render pass.
func (p *renderPass) Destroy() {
	if p.g != nil {
		p.g.waitPending()
		vk.DestroyRenderPass(p.g.dev, p.pass, nil)
	}
	*p = renderPass{}
}
