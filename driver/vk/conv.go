// Copyright 2024 RayGyoe. All rights reserved.

package vk

import (
	vk "github.com/goki/vulkan"

	"github.com/RayGyoe/LLGL/driver"
)

// convPixelFmt converts a driver.PixelFmt to a vk.Format.
func convPixelFmt(pf driver.PixelFmt) vk.Format {
	switch pf {
	case driver.RGBA8un:
		return vk.FormatR8g8b8a8Unorm
	case driver.RGBA8sRGB:
		return vk.FormatR8g8b8a8Srgb
	case driver.BGRA8un:
		return vk.FormatB8g8r8a8Unorm
	case driver.BGRA8sRGB:
		return vk.FormatB8g8r8a8Srgb
	case driver.RG8un:
		return vk.FormatR8g8Unorm
	case driver.R8un:
		return vk.FormatR8Unorm
	case driver.RGBA16f:
		return vk.FormatR16g16b16a16Sfloat
	case driver.RG16f:
		return vk.FormatR16g16Sfloat
	case driver.R16f:
		return vk.FormatR16Sfloat
	case driver.RGBA32f:
		return vk.FormatR32g32b32a32Sfloat
	case driver.RG32f:
		return vk.FormatR32g32Sfloat
	case driver.R32f:
		return vk.FormatR32Sfloat
	case driver.D16un:
		return vk.FormatD16Unorm
	case driver.D32f:
		return vk.FormatD32Sfloat
	case driver.S8ui:
		return vk.FormatS8Uint
	case driver.D24unS8ui:
		return vk.FormatD24UnormS8Uint
	case driver.D32fS8ui:
		return vk.FormatD32SfloatS8Uint
	}
	panic("vk: invalid pixel format")
}

// backPixelFmt converts a vk.Format to a driver.PixelFmt.
// Formats outside the driver's set map to FInvalid.
func backPixelFmt(f vk.Format) driver.PixelFmt {
	switch f {
	case vk.FormatR8g8b8a8Unorm:
		return driver.RGBA8un
	case vk.FormatR8g8b8a8Srgb:
		return driver.RGBA8sRGB
	case vk.FormatB8g8r8a8Unorm:
		return driver.BGRA8un
	case vk.FormatB8g8r8a8Srgb:
		return driver.BGRA8sRGB
	case vk.FormatR8g8Unorm:
		return driver.RG8un
	case vk.FormatR8Unorm:
		return driver.R8un
	case vk.FormatR16g16b16a16Sfloat:
		return driver.RGBA16f
	case vk.FormatR16g16Sfloat:
		return driver.RG16f
	case vk.FormatR16Sfloat:
		return driver.R16f
	case vk.FormatR32g32b32a32Sfloat:
		return driver.RGBA32f
	case vk.FormatR32g32Sfloat:
		return driver.RG32f
	case vk.FormatR32Sfloat:
		return driver.R32f
	case vk.FormatD16Unorm:
		return driver.D16un
	case vk.FormatD32Sfloat:
		return driver.D32f
	case vk.FormatS8Uint:
		return driver.S8ui
	case vk.FormatD24UnormS8Uint:
		return driver.D24unS8ui
	case vk.FormatD32SfloatS8Uint:
		return driver.D32fS8ui
	}
	return driver.FInvalid
}

// aspectOf returns the image aspect flags of a pixel format.
func aspectOf(pf driver.PixelFmt) vk.ImageAspectFlags {
	var flags vk.ImageAspectFlagBits
	if pf.IsDepth() {
		flags |= vk.ImageAspectDepthBit
	}
	if pf.IsStencil() {
		flags |= vk.ImageAspectStencilBit
	}
	if flags == 0 {
		flags = vk.ImageAspectColorBit
	}
	return vk.ImageAspectFlags(flags)
}

// convLayout converts a driver.Layout to a vk.ImageLayout.
func convLayout(l driver.Layout) vk.ImageLayout {
	switch l {
	case driver.LUndefined:
		return vk.ImageLayoutUndefined
	case driver.LCommon:
		return vk.ImageLayoutGeneral
	case driver.LColorTarget:
		return vk.ImageLayoutColorAttachmentOptimal
	case driver.LDSTarget:
		return vk.ImageLayoutDepthStencilAttachmentOptimal
	case driver.LCopySrc:
		return vk.ImageLayoutTransferSrcOptimal
	case driver.LCopyDst:
		return vk.ImageLayoutTransferDstOptimal
	case driver.LShaderRead:
		return vk.ImageLayoutShaderReadOnlyOptimal
	case driver.LPresent:
		return vk.ImageLayoutPresentSrc
	}
	panic("vk: invalid image layout")
}

// layoutStageAccess returns the pipeline stages and memory
// accesses that must be synchronized for an image in the
// given layout. Transition barriers combine the pair of the
// old layout (first scope) with the pair of the new layout
// (second scope).
func layoutStageAccess(l driver.Layout) (vk.PipelineStageFlags, vk.AccessFlags) {
	switch l {
	case driver.LUndefined:
		return vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit), 0
	case driver.LCommon:
		return vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit),
			vk.AccessFlags(vk.AccessMemoryReadBit | vk.AccessMemoryWriteBit)
	case driver.LColorTarget:
		return vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
			vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit)
	case driver.LDSTarget:
		return vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit),
			vk.AccessFlags(vk.AccessDepthStencilAttachmentReadBit | vk.AccessDepthStencilAttachmentWriteBit)
	case driver.LCopySrc:
		return vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			vk.AccessFlags(vk.AccessTransferReadBit)
	case driver.LCopyDst:
		return vk.PipelineStageFlags(vk.PipelineStageTransferBit),
			vk.AccessFlags(vk.AccessTransferWriteBit)
	case driver.LShaderRead:
		return vk.PipelineStageFlags(vk.PipelineStageVertexShaderBit | vk.PipelineStageFragmentShaderBit | vk.PipelineStageComputeShaderBit),
			vk.AccessFlags(vk.AccessShaderReadBit)
	case driver.LPresent:
		return vk.PipelineStageFlags(vk.PipelineStageBottomOfPipeBit), 0
	}
	panic("vk: invalid image layout")
}

// convSync converts a driver.Sync to a vk.PipelineStageFlags.
func convSync(s driver.Sync) vk.PipelineStageFlags {
	if s&driver.SAll != 0 {
		return vk.PipelineStageFlags(vk.PipelineStageAllCommandsBit)
	}
	var flags vk.PipelineStageFlagBits
	if s&driver.SVertexInput != 0 {
		flags |= vk.PipelineStageVertexInputBit
	}
	if s&driver.SVertexShading != 0 {
		flags |= vk.PipelineStageVertexShaderBit
	}
	if s&driver.SFragmentShading != 0 {
		flags |= vk.PipelineStageFragmentShaderBit
	}
	if s&driver.SComputeShading != 0 {
		flags |= vk.PipelineStageComputeShaderBit
	}
	if s&driver.SColorOutput != 0 {
		flags |= vk.PipelineStageColorAttachmentOutputBit
	}
	if s&driver.SDSOutput != 0 {
		flags |= vk.PipelineStageEarlyFragmentTestsBit | vk.PipelineStageLateFragmentTestsBit
	}
	if s&driver.SCopy != 0 {
		flags |= vk.PipelineStageTransferBit
	}
	return vk.PipelineStageFlags(flags)
}

// convAccess converts a driver.Access to a vk.AccessFlags.
func convAccess(a driver.Access) vk.AccessFlags {
	var flags vk.AccessFlagBits
	if a&driver.AVertexBufRead != 0 {
		flags |= vk.AccessVertexAttributeReadBit
	}
	if a&driver.AIndexBufRead != 0 {
		flags |= vk.AccessIndexReadBit
	}
	if a&driver.AColorRead != 0 {
		flags |= vk.AccessColorAttachmentReadBit
	}
	if a&driver.AColorWrite != 0 {
		flags |= vk.AccessColorAttachmentWriteBit
	}
	if a&driver.ADSRead != 0 {
		flags |= vk.AccessDepthStencilAttachmentReadBit
	}
	if a&driver.ADSWrite != 0 {
		flags |= vk.AccessDepthStencilAttachmentWriteBit
	}
	if a&driver.ACopyRead != 0 {
		flags |= vk.AccessTransferReadBit
	}
	if a&driver.ACopyWrite != 0 {
		flags |= vk.AccessTransferWriteBit
	}
	if a&driver.AShaderRead != 0 {
		flags |= vk.AccessShaderReadBit
	}
	if a&driver.AShaderWrite != 0 {
		flags |= vk.AccessShaderWriteBit
	}
	if a&driver.AAnyRead != 0 {
		flags |= vk.AccessMemoryReadBit
	}
	if a&driver.AAnyWrite != 0 {
		flags |= vk.AccessMemoryWriteBit
	}
	return vk.AccessFlags(flags)
}

// convSamples converts a sample count to a
// vk.SampleCountFlagBits.
func convSamples(n int) vk.SampleCountFlagBits {
	switch n {
	case 0, 1:
		return vk.SampleCount1Bit
	case 2:
		return vk.SampleCount2Bit
	case 4:
		return vk.SampleCount4Bit
	case 8:
		return vk.SampleCount8Bit
	case 16:
		return vk.SampleCount16Bit
	}
	panic("vk: invalid sample count")
}

// convCmpFunc converts a driver.CmpFunc to a vk.CompareOp.
func convCmpFunc(f driver.CmpFunc) vk.CompareOp {
	switch f {
	case driver.CNever:
		return vk.CompareOpNever
	case driver.CLess:
		return vk.CompareOpLess
	case driver.CEqual:
		return vk.CompareOpEqual
	case driver.CLessEqual:
		return vk.CompareOpLessOrEqual
	case driver.CGreater:
		return vk.CompareOpGreater
	case driver.CNotEqual:
		return vk.CompareOpNotEqual
	case driver.CGreaterEqual:
		return vk.CompareOpGreaterOrEqual
	case driver.CAlways:
		return vk.CompareOpAlways
	}
	panic("vk: invalid comparison function")
}

// convStencilOp converts a driver.StencilOp to a
// vk.StencilOp.
func convStencilOp(op driver.StencilOp) vk.StencilOp {
	switch op {
	case driver.SKeep:
		return vk.StencilOpKeep
	case driver.SZero:
		return vk.StencilOpZero
	case driver.SReplace:
		return vk.StencilOpReplace
	case driver.SIncClamp:
		return vk.StencilOpIncrementAndClamp
	case driver.SDecClamp:
		return vk.StencilOpDecrementAndClamp
	case driver.SInvert:
		return vk.StencilOpInvert
	case driver.SIncWrap:
		return vk.StencilOpIncrementAndWrap
	case driver.SDecWrap:
		return vk.StencilOpDecrementAndWrap
	}
	panic("vk: invalid stencil operation")
}

// convBlendOp converts a driver.BlendOp to a vk.BlendOp.
func convBlendOp(op driver.BlendOp) vk.BlendOp {
	switch op {
	case driver.BAdd:
		return vk.BlendOpAdd
	case driver.BSubtract:
		return vk.BlendOpSubtract
	case driver.BRevSubtract:
		return vk.BlendOpReverseSubtract
	case driver.BMin:
		return vk.BlendOpMin
	case driver.BMax:
		return vk.BlendOpMax
	}
	panic("vk: invalid blend operation")
}

// convBlendFac converts a driver.BlendFac to a
// vk.BlendFactor.
func convBlendFac(f driver.BlendFac) vk.BlendFactor {
	switch f {
	case driver.BZero:
		return vk.BlendFactorZero
	case driver.BOne:
		return vk.BlendFactorOne
	case driver.BSrcColor:
		return vk.BlendFactorSrcColor
	case driver.BInvSrcColor:
		return vk.BlendFactorOneMinusSrcColor
	case driver.BSrcAlpha:
		return vk.BlendFactorSrcAlpha
	case driver.BInvSrcAlpha:
		return vk.BlendFactorOneMinusSrcAlpha
	case driver.BDstColor:
		return vk.BlendFactorDstColor
	case driver.BInvDstColor:
		return vk.BlendFactorOneMinusDstColor
	case driver.BDstAlpha:
		return vk.BlendFactorDstAlpha
	case driver.BInvDstAlpha:
		return vk.BlendFactorOneMinusDstAlpha
	case driver.BSrcAlphaSaturated:
		return vk.BlendFactorSrcAlphaSaturate
	case driver.BBlendColor:
		return vk.BlendFactorConstantColor
	case driver.BInvBlendColor:
		return vk.BlendFactorOneMinusConstantColor
	}
	panic("vk: invalid blend factor")
}

// convTopology converts a driver.Topology to a
// vk.PrimitiveTopology.
func convTopology(t driver.Topology) vk.PrimitiveTopology {
	switch t {
	case driver.TPoint:
		return vk.PrimitiveTopologyPointList
	case driver.TLine:
		return vk.PrimitiveTopologyLineList
	case driver.TLnStrip:
		return vk.PrimitiveTopologyLineStrip
	case driver.TTriangle:
		return vk.PrimitiveTopologyTriangleList
	case driver.TTriStrip:
		return vk.PrimitiveTopologyTriangleStrip
	}
	panic("vk: invalid primitive topology")
}

// convVertexFmt converts a driver.VertexFmt to a vk.Format.
func convVertexFmt(f driver.VertexFmt) vk.Format {
	switch f {
	case driver.Float32x4:
		return vk.FormatR32g32b32a32Sfloat
	case driver.Float32x3:
		return vk.FormatR32g32b32Sfloat
	case driver.Float32x2:
		return vk.FormatR32g32Sfloat
	case driver.Float32:
		return vk.FormatR32Sfloat
	case driver.Int32x4:
		return vk.FormatR32g32b32a32Sint
	case driver.Int32x3:
		return vk.FormatR32g32b32Sint
	case driver.Int32x2:
		return vk.FormatR32g32Sint
	case driver.Int32:
		return vk.FormatR32Sint
	}
	panic("vk: invalid vertex format")
}

// convFilter converts a driver.Filter to a vk.Filter.
func convFilter(f driver.Filter) vk.Filter {
	if f == driver.FLinear {
		return vk.FilterLinear
	}
	return vk.FilterNearest
}

// convAddrMode converts a driver.AddrMode to a
// vk.SamplerAddressMode.
func convAddrMode(m driver.AddrMode) vk.SamplerAddressMode {
	switch m {
	case driver.AWrap:
		return vk.SamplerAddressModeRepeat
	case driver.AMirror:
		return vk.SamplerAddressModeMirroredRepeat
	case driver.AClamp:
		return vk.SamplerAddressModeClampToEdge
	}
	panic("vk: invalid address mode")
}

// convViewType converts a driver.ViewType to a
// vk.ImageViewType.
func convViewType(t driver.ViewType) vk.ImageViewType {
	switch t {
	case driver.IView1D:
		return vk.ImageViewType1d
	case driver.IView2D, driver.IView2DMS:
		return vk.ImageViewType2d
	case driver.IView3D:
		return vk.ImageViewType3d
	case driver.IViewCube:
		return vk.ImageViewTypeCube
	case driver.IView2DArray:
		return vk.ImageViewType2dArray
	}
	panic("vk: invalid view type")
}

// convLoadOp converts a driver.LoadOp to a
// vk.AttachmentLoadOp.
func convLoadOp(op driver.LoadOp) vk.AttachmentLoadOp {
	switch op {
	case driver.LDontCare:
		return vk.AttachmentLoadOpDontCare
	case driver.LClear:
		return vk.AttachmentLoadOpClear
	case driver.LLoad:
		return vk.AttachmentLoadOpLoad
	}
	panic("vk: invalid load operation")
}

// convStoreOp converts a driver.StoreOp to a
// vk.AttachmentStoreOp.
func convStoreOp(op driver.StoreOp) vk.AttachmentStoreOp {
	if op == driver.SStore {
		return vk.AttachmentStoreOpStore
	}
	return vk.AttachmentStoreOpDontCare
}
