// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// pipeline implements driver.Pipeline.
type pipeline struct {
	g     *GPU
	pl    vk.Pipeline
	point vk.PipelineBindPoint
}

// NewPipeline creates a new pipeline.
func (g *GPU) NewPipeline(state any) (driver.Pipeline, error) {
	switch s := state.(type) {
	case *driver.GraphState:
		return g.newGraphics(s)
	case *driver.CompState:
		return g.newCompute(s)
	default:
		panic("vk: state is neither *driver.GraphState nor *driver.CompState")
	}
}

// convColorMask converts a driver.ColorMask to a
// vk.ColorComponentFlags.
func convColorMask(m driver.ColorMask) vk.ColorComponentFlags {
	var flags vk.ColorComponentFlagBits
	if m&driver.CRed != 0 {
		flags |= vk.ColorComponentRBit
	}
	if m&driver.CGreen != 0 {
		flags |= vk.ColorComponentGBit
	}
	if m&driver.CBlue != 0 {
		flags |= vk.ColorComponentBBit
	}
	if m&driver.CAlpha != 0 {
		flags |= vk.ColorComponentABit
	}
	return vk.ColorComponentFlags(flags)
}

// convStencil converts a driver.StencilT to a
// vk.StencilOpState. Compare masks are static; the
// reference value is dynamic.
func convStencil(t *driver.StencilT) vk.StencilOpState {
	return vk.StencilOpState{
		FailOp:      convStencilOp(t.FailOp),
		PassOp:      convStencilOp(t.PassOp),
		DepthFailOp: convStencilOp(t.DepthFail),
		CompareOp:   convCmpFunc(t.Cmp),
		CompareMask: t.ReadMask,
		WriteMask:   t.WriteMask,
	}
}

func (g *GPU) newGraphics(gs *driver.GraphState) (driver.Pipeline, error) {
	if gs.VertFunc.Code == nil {
		return nil, driver.ErrInvalidShader
	}
	if gs.Pass == nil {
		panic("vk: graphics state without render pass")
	}
	d, err := g.sharedLayout()
	if err != nil {
		return nil, err
	}
	pass := gs.Pass.(*renderPass)

	stages := []vk.PipelineShaderStageCreateInfo{{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  vk.ShaderStageVertexBit,
		Module: gs.VertFunc.Code.(*shaderCode).mod,
		PName:  gs.VertFunc.Name + "\x00",
	}}
	if gs.FragFunc.Code != nil {
		stages = append(stages, vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: gs.FragFunc.Code.(*shaderCode).mod,
			PName:  gs.FragFunc.Name + "\x00",
		})
	}

	vbind := make([]vk.VertexInputBindingDescription, len(gs.Input))
	vattr := make([]vk.VertexInputAttributeDescription, len(gs.Input))
	for i, in := range gs.Input {
		stride := in.Stride
		if stride == 0 {
			stride = in.Format.Size()
		}
		vbind[i] = vk.VertexInputBindingDescription{
			Binding:   uint32(in.Nr),
			Stride:    uint32(stride),
			InputRate: vk.VertexInputRateVertex,
		}
		vattr[i] = vk.VertexInputAttributeDescription{
			Location: uint32(i),
			Binding:  uint32(in.Nr),
			Format:   convVertexFmt(in.Format),
		}
	}
	vertInput := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(vbind)),
		PVertexBindingDescriptions:      vbind,
		VertexAttributeDescriptionCount: uint32(len(vattr)),
		PVertexAttributeDescriptions:    vattr,
	}
	assembly := vk.PipelineInputAssemblyStateCreateInfo{
		SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology: convTopology(gs.Topology),
	}
	viewport := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	cull := vk.CullModeFlagBits(vk.CullModeNone)
	switch gs.Raster.Cull {
	case driver.CFront:
		cull = vk.CullModeFrontBit
	case driver.CBack:
		cull = vk.CullModeBackBit
	}
	fill := vk.PolygonModeFill
	if gs.Raster.Fill == driver.FLines {
		fill = vk.PolygonModeLine
	}
	front := vk.FrontFaceCounterClockwise
	if gs.Raster.Clockwise {
		front = vk.FrontFaceClockwise
	}
	lw := gs.Raster.LineWidth
	if lw == 0 {
		lw = 1
	}
	raster := vk.PipelineRasterizationStateCreateInfo{
		SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
		PolygonMode: fill,
		CullMode:    vk.CullModeFlags(cull),
		FrontFace:   front,
		LineWidth:   lw,
	}
	if gs.Raster.DepthBias {
		raster.DepthBiasEnable = vk.True
		raster.DepthBiasConstantFactor = gs.Raster.BiasValue
		raster.DepthBiasSlopeFactor = gs.Raster.BiasSlope
		raster.DepthBiasClamp = gs.Raster.BiasClamp
	}
	multisample := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: convSamples(gs.Samples),
	}

	ds := vk.PipelineDepthStencilStateCreateInfo{
		SType:          vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthCompareOp: convCmpFunc(gs.DS.DepthCmp),
		Front:          convStencil(&gs.DS.Front),
		Back:           convStencil(&gs.DS.Back),
	}
	if gs.DS.DepthTest {
		ds.DepthTestEnable = vk.True
	}
	if gs.DS.DepthWrite {
		ds.DepthWriteEnable = vk.True
	}
	if gs.DS.StencilTest {
		ds.StencilTestEnable = vk.True
	}

	ncolor := 0
	for i := range pass.atts {
		if !pass.atts[i].Format.IsDepthStencil() {
			ncolor++
		}
	}
	blend := make([]vk.PipelineColorBlendAttachmentState, ncolor)
	for i := range blend {
		cb := driver.ColorBlend{WriteMask: driver.CAll}
		if len(gs.Blend.Color) > 0 {
			if gs.Blend.IndependentBlend && i < len(gs.Blend.Color) {
				cb = gs.Blend.Color[i]
			} else {
				cb = gs.Blend.Color[0]
			}
		}
		blend[i] = vk.PipelineColorBlendAttachmentState{
			ColorWriteMask: convColorMask(cb.WriteMask),
		}
		if cb.Blend {
			blend[i].BlendEnable = vk.True
			blend[i].ColorBlendOp = convBlendOp(cb.Op[0])
			blend[i].AlphaBlendOp = convBlendOp(cb.Op[1])
			blend[i].SrcColorBlendFactor = convBlendFac(cb.SrcFac[0])
			blend[i].SrcAlphaBlendFactor = convBlendFac(cb.SrcFac[1])
			blend[i].DstColorBlendFactor = convBlendFac(cb.DstFac[0])
			blend[i].DstAlphaBlendFactor = convBlendFac(cb.DstFac[1])
		}
	}
	colorBlend := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blend)),
		PAttachments:    blend,
	}

	dynamics := []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
		vk.DynamicStateBlendConstants,
		vk.DynamicStateStencilReference,
	}
	dynamic := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(dynamics)),
		PDynamicStates:    dynamics,
	}

	info := []vk.GraphicsPipelineCreateInfo{{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   &vertInput,
		PInputAssemblyState: &assembly,
		PViewportState:      &viewport,
		PRasterizationState: &raster,
		PMultisampleState:   &multisample,
		PDepthStencilState:  &ds,
		PColorBlendState:    &colorBlend,
		PDynamicState:       &dynamic,
		Layout:              d.pipeln,
		RenderPass:          pass.pass,
	}}
	pls := make([]vk.Pipeline, 1)
	if res := vk.CreateGraphicsPipelines(g.dev, vk.NullPipelineCache, 1, info, nil, pls); res != vk.Success {
		return nil, errFor(res)
	}
	return &pipeline{g: g, pl: pls[0], point: vk.PipelineBindPointGraphics}, nil
}

func (g *GPU) newCompute(cs *driver.CompState) (driver.Pipeline, error) {
	if cs.Func.Code == nil {
		return nil, driver.ErrInvalidShader
	}
	d, err := g.sharedLayout()
	if err != nil {
		return nil, err
	}
	info := []vk.ComputePipelineCreateInfo{{
		SType: vk.StructureTypeComputePipelineCreateInfo,
		Stage: vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageComputeBit,
			Module: cs.Func.Code.(*shaderCode).mod,
			PName:  cs.Func.Name + "\x00",
		},
		Layout: d.pipeln,
	}}
	pls := make([]vk.Pipeline, 1)
	if res := vk.CreateComputePipelines(g.dev, vk.NullPipelineCache, 1, info, nil, pls); res != vk.Success {
		return nil, errFor(res)
	}
	return &pipeline{g: g, pl: pls[0], point: vk.PipelineBindPointCompute}, nil
}

// Destroy destroys the pipeline.
func (p *pipeline) Destroy() {
	if p.g != nil {
		p.g.waitPending()
		vk.DestroyPipeline(p.g.dev, p.pl, nil)
	}
	*p = pipeline{}
}
