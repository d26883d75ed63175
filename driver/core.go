// Copyright 2024 RayGyoe. All rights reserved.

package driver

// GPU is the main interface to an underlying driver
// implementation.
// It is used to create other types and to execute commands.
// A GPU is obtained from a call to Driver.Open.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// Commit commits a batch of command buffers to the GPU
	// for execution.
	// The order of command buffers in cb is meaningful:
	// execution order equals batch order, which in turn
	// preserves each buffer's recording order.
	// This method sends the result to ch when all commands
	// complete execution. Command buffers in cb cannot be
	// used for recording until then.
	Commit(cb []CmdBuffer, ch chan<- error)

	// NewCmdBuffer creates a new command buffer.
	NewCmdBuffer() (CmdBuffer, error)

	// NewRenderPass creates a new render pass.
	NewRenderPass(att []Attachment) (RenderPass, error)

	// NewShaderCode creates a new shader code object from
	// an opaque compilation result.
	NewShaderCode(data []byte) (ShaderCode, error)

	// NewResourceHeap creates a new resource heap from a
	// set of slot bindings.
	// Slot indices must be less than Limits.MaxResourceSlots.
	NewResourceHeap(bind []Binding) (ResourceHeap, error)

	// NewPipeline creates a new pipeline.
	// The state parameter must be a pointer to a GraphState
	// or a pointer to a CompState.
	// Creation fails before any native object exists if the
	// state's shader functions are incomplete.
	NewPipeline(state any) (Pipeline, error)

	// NewBuffer creates a new buffer.
	NewBuffer(size int64, visible bool, usg Usage) (Buffer, error)

	// NewImage creates a new image.
	NewImage(pf PixelFmt, size Dim3D, layers, levels, samples int, usg Usage) (Image, error)

	// NewSampler creates a new sampler.
	NewSampler(spln *Sampling) (Sampler, error)

	// Limits returns the implementation limits.
	// They are immutable for the lifetime of the GPU.
	// Calling code must validate slot/layer indices against
	// these limits; backends treat violations as programming
	// errors rather than recoverable conditions.
	Limits() Limits
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may own native objects
// that are not managed by GC, so Destroy must be called
// explicitly to ensure such objects are released.
// Destroying a resource notifies any backend state tracker
// that references it, so a later allocation reusing the same
// native handle is never mistaken for the destroyed one.
type Destroyer interface {
	Destroy()
}

// CmdBuffer is the interface that defines a command buffer.
// Commands are recorded into command buffers and later
// committed to the GPU for execution. Replay order always
// equals record order.
// Backends without a native deferred command concept encode
// recorded commands as a tagged opcode stream and replay it
// on commit.
type CmdBuffer interface {
	Destroyer

	// Begin prepares the command buffer for recording.
	Begin() error

	// BeginPass begins a render pass targeting fb.
	// clear provides one value per attachment that has a
	// clear load op.
	BeginPass(pass RenderPass, fb Framebuf, clear []ClearValue)

	// EndPass ends the current render pass.
	EndPass()

	// SetPipeline sets the pipeline.
	// There is a separate binding point for each type of
	// pipeline.
	SetPipeline(pl Pipeline)

	// SetViewport sets the bounds of one or more viewports.
	// len(vp) must not exceed Limits.MaxViewports.
	SetViewport(vp []Viewport)

	// SetScissor sets the rectangles of one or more
	// viewport scissors.
	SetScissor(sciss []Scissor)

	// SetBlendColor sets the constant blend color.
	SetBlendColor(r, g, b, a float32)

	// SetStencilRef sets the stencil reference value.
	SetStencilRef(value uint32)

	// SetResourceHeap sets the resource heap that shaders
	// of the bound pipeline will access.
	SetResourceHeap(h ResourceHeap)

	// SetVertexBuf sets one or more vertex buffers.
	SetVertexBuf(start int, buf []Buffer, off []int64)

	// SetIndexBuf sets the index buffer.
	SetIndexBuf(format IndexFmt, buf Buffer, off int64)

	// Draw draws primitives.
	// It must only be called during a render pass.
	Draw(vertCount, instCount, baseVert, baseInst int)

	// DrawIndexed draws indexed primitives.
	// It must only be called during a render pass.
	DrawIndexed(idxCount, instCount, baseIdx, vertOff, baseInst int)

	// Dispatch dispatches compute thread groups.
	// It must not be called during a render pass.
	Dispatch(grpCountX, grpCountY, grpCountZ int)

	// CopyBuffer copies data between buffers.
	CopyBuffer(param *BufferCopy)

	// CopyImage copies data between images.
	// Source and destination are transitioned into copy
	// layouts around the native call and restored to the
	// layouts given in param afterwards.
	CopyImage(param *ImageCopy)

	// CopyBufToImg copies data from a buffer to an image.
	CopyBufToImg(param *BufImgCopy)

	// CopyImgToBuf copies data from an image to a buffer.
	CopyImgToBuf(param *BufImgCopy)

	// Fill fills a buffer range with copies of a byte value.
	// off and size must be aligned to 4 bytes.
	Fill(buf Buffer, off int64, value byte, size int64)

	// GenMips generates the full mip chain of img from its
	// base level, one layer at a time in ascending level
	// order. img must be in the LShaderRead layout and is
	// left in that layout.
	GenMips(img Image)

	// Barrier inserts a number of global barriers in the
	// command buffer.
	Barrier(b []Barrier)

	// Transition inserts a number of image layout
	// transitions in the command buffer.
	// The old layout must match the image's actual layout;
	// a mismatch is a correctness bug in the caller, not a
	// recoverable error.
	Transition(t []Transition)

	// PushDebugGroup opens a named debug group.
	// Groups are strictly nested.
	PushDebugGroup(name string)

	// PopDebugGroup closes the innermost debug group.
	PopDebugGroup()

	// End ends command recording and prepares the command
	// buffer for execution.
	// Upon failure, the command buffer is reset.
	End() error

	// Reset discards all recorded commands from the
	// command buffer.
	Reset() error
}

// BufferCopy describes the parameters of a copy command
// that copies data from one buffer to another.
type BufferCopy struct {
	From    Buffer
	FromOff int64
	To      Buffer
	ToOff   int64
	Size    int64
}

// ImageCopy describes the parameters of a copy command
// that copies data from one image to another.
// FromLayout/ToLayout give the current layouts of the
// images; both are restored after the copy.
type ImageCopy struct {
	From       Image
	FromOff    Off3D
	FromLayer  int
	FromLevel  int
	FromLayout Layout
	To         Image
	ToOff      Off3D
	ToLayer    int
	ToLevel    int
	ToLayout   Layout
	Size       Dim3D
	Layers     int
}

// BufImgCopy describes the parameters of a copy command
// that copies data between a buffer and an image.
type BufImgCopy struct {
	Buf    Buffer
	BufOff int64
	// Stride specifies the addressing of image data in the
	// buffer, in pixels. Stride[0] is the row length and
	// Stride[1] is the image height.
	Stride [2]int64
	Img    Image
	// ImgLayout gives the image's current layout, restored
	// after the copy.
	ImgLayout Layout
	ImgOff    Off3D
	Layer     int
	Layers    int
	Level     int
	Size      Dim3D
}

// Sync is the type of a synchronization scope.
type Sync int

// Synchronization scopes.
const (
	SVertexInput Sync = 1 << iota
	SVertexShading
	SFragmentShading
	SComputeShading
	SColorOutput
	SDSOutput
	SCopy
	SAll
	SNone Sync = 0
)

// Access is the type of a memory access scope.
type Access int

// Memory access scopes.
const (
	AVertexBufRead Access = 1 << iota
	AIndexBufRead
	AColorRead
	AColorWrite
	ADSRead
	ADSWrite
	ACopyRead
	ACopyWrite
	AShaderRead
	AShaderWrite
	AAnyRead
	AAnyWrite
	ANone Access = 0
)

// Layout is the type of an image layout.
// Backends that track layouts implicitly may ignore it.
type Layout int

// Image layouts.
const (
	LUndefined Layout = iota
	LCommon
	LColorTarget
	LDSTarget
	LCopySrc
	LCopyDst
	LShaderRead
	LPresent
)

// Barrier represents a synchronization barrier.
type Barrier struct {
	SyncBefore   Sync
	SyncAfter    Sync
	AccessBefore Access
	AccessAfter  Access
}

// Transition represents a layout transition on a specific
// image subresource range.
type Transition struct {
	Barrier

	LayoutBefore Layout
	LayoutAfter  Layout
	Img          Image
	Layer        int
	Layers       int
	Level        int
	Levels       int
}

// LoadOp is the type of an attachment's load operation.
type LoadOp int

// Load operations.
const (
	LDontCare LoadOp = iota
	LClear
	LLoad
)

// StoreOp is the type of an attachment's store operation.
type StoreOp int

// Store operations.
const (
	SDontCare StoreOp = iota
	SStore
)

// Attachment describes the configuration of a single render
// target for use in a render pass.
type Attachment struct {
	Format  PixelFmt
	Samples int
	Load    LoadOp
	Store   StoreOp
}

// RenderPass is the interface that defines a render pass
// into which draw commands operate.
type RenderPass interface {
	Destroyer

	// NewFB creates a new framebuffer.
	// Each image view in iv corresponds to the render pass'
	// attachment of same index. A view's pixel format and
	// sample count must match the attachment's.
	// All framebuffers created from a given render pass
	// must be destroyed before the render pass itself.
	NewFB(iv []ImageView, width, height, layers int) (Framebuf, error)
}

// Framebuf is the interface that defines the render targets
// of a render pass.
type Framebuf interface {
	Destroyer
}

// ClearValue defines clear values for color or depth/stencil
// aspects of a render target.
type ClearValue struct {
	Color   [4]float32
	Depth   float32
	Stencil uint32
}

// ShaderCode is the interface that defines a shader binary
// for execution in a programmable pipeline stage.
// Shader compilation itself happens elsewhere; the driver
// consumes its result opaquely.
type ShaderCode interface {
	Destroyer
}

// ShaderFunc specifies a function within a shader binary.
type ShaderFunc struct {
	Code ShaderCode
	Name string
}

// BindingKind is the type of a resource heap binding.
type BindingKind int

// Binding kinds.
const (
	// Read/write buffer.
	BStorage BindingKind = iota
	// Constant buffer.
	BConstant
	// Sampled texture.
	BTexture
	// Read/write image.
	BImage
	// Texture sampler.
	BSampler
)

// Binding assigns one resource to a numbered slot of a
// resource heap. At most one resource occupies a given
// (kind, slot) pair; rebinding overwrites.
type Binding struct {
	Kind    BindingKind
	Slot    int
	Buffer  Buffer
	BufOff  int64
	BufSize int64
	View    ImageView
	Sampler Sampler
}

// ResourceHeap is the interface that defines a set of
// resources made accessible to shaders as a unit.
type ResourceHeap interface {
	Destroyer
}

// IndexFmt describes the format of index buffer data.
type IndexFmt int

// Index formats. The value is the index size in bytes.
const (
	Index16 IndexFmt = 2
	Index32 IndexFmt = 4
)

// Viewport defines the bounds of a viewport.
type Viewport struct {
	X, Y, Width, Height, Znear, Zfar float32
}

// Scissor defines a scissor rectangle.
type Scissor struct {
	X, Y, Width, Height int
}

// VertexFmt describes the format of a vertex input.
type VertexFmt int

// Vertex formats.
const (
	Float32x4 VertexFmt = iota
	Float32x3
	Float32x2
	Float32
	Int32x4
	Int32x3
	Int32x2
	Int32
)

// Size returns the size of the vertex format, in bytes.
func (f VertexFmt) Size() int {
	switch f {
	case Float32x4, Int32x4:
		return 16
	case Float32x3, Int32x3:
		return 12
	case Float32x2, Int32x2:
		return 8
	case Float32, Int32:
		return 4
	}
	return 0
}

// VertexIn describes a single vertex input.
type VertexIn struct {
	Format VertexFmt
	// Byte stride between consecutive elements of the
	// bound vertex buffer. Zero means tightly packed.
	Stride int
	// Input/buffer slot number.
	Nr int
}

// Topology is the type of primitive topologies.
type Topology int

// Primitive topologies.
const (
	TPoint Topology = iota
	TLine
	TLnStrip
	TTriangle
	TTriStrip
)

// CullMode is the type of cull modes.
type CullMode int

// Cull modes.
const (
	CNone CullMode = iota
	CFront
	CBack
)

// FillMode is the type of triangle fill modes.
type FillMode int

// Triangle fill modes.
const (
	FFill FillMode = iota
	FLines
)

// RasterState defines the rasterization state of a
// graphics pipeline.
type RasterState struct {
	// Winding order is either clockwise or counter-clockwise.
	Clockwise bool
	Cull      CullMode
	Fill      FillMode
	LineWidth float32
	// DepthBias enables depth bias computation.
	DepthBias bool
	BiasValue float32
	BiasSlope float32
	BiasClamp float32
}

// CmpFunc is the type of comparison functions.
type CmpFunc int

// Comparison functions.
const (
	CNever CmpFunc = iota
	CLess
	CEqual
	CLessEqual
	CGreater
	CNotEqual
	CGreaterEqual
	CAlways
)

// StencilOp is the type of stencil operations.
type StencilOp int

// Stencil operations.
const (
	SKeep StencilOp = iota
	SZero
	SReplace
	SIncClamp
	SDecClamp
	SInvert
	SIncWrap
	SDecWrap
)

// StencilT defines stencil test parameters for one face.
type StencilT struct {
	FailOp    StencilOp
	DepthFail StencilOp
	PassOp    StencilOp
	ReadMask  uint32
	WriteMask uint32
	Cmp       CmpFunc
}

// DSState defines the depth/stencil state of a graphics
// pipeline.
type DSState struct {
	DepthTest   bool
	DepthWrite  bool
	DepthCmp    CmpFunc
	StencilTest bool
	Front       StencilT
	Back        StencilT
}

// BlendOp is the type of blend operations.
type BlendOp int

// Blend operations.
const (
	BAdd BlendOp = iota
	BSubtract
	BRevSubtract
	BMin
	BMax
)

// BlendFac is the type of blend factors.
type BlendFac int

// Blend factors.
const (
	BZero BlendFac = iota
	BOne
	BSrcColor
	BInvSrcColor
	BSrcAlpha
	BInvSrcAlpha
	BDstColor
	BInvDstColor
	BDstAlpha
	BInvDstAlpha
	BSrcAlphaSaturated
	BBlendColor
	BInvBlendColor
)

// ColorMask is the type of a color write mask.
type ColorMask int

// Color write masks.
const (
	CRed ColorMask = 1 << iota
	CGreen
	CBlue
	CAlpha
	// Write to all channels.
	CAll ColorMask = 1<<iota - 1
)

// ColorBlend defines a render target's blend parameters for
// the color blend state of a graphics pipeline.
type ColorBlend struct {
	// Blend enables blending.
	Blend bool
	// WriteMask specifies which color channels to write.
	// Native clear operations are masked by the current
	// write masks, so backends must force full writes
	// around clears and restore the configured masks.
	WriteMask ColorMask
	// In the arrays that follow, [0] is for color and
	// [1] is for alpha.
	Op     [2]BlendOp
	SrcFac [2]BlendFac
	DstFac [2]BlendFac
}

// BlendState defines the color blend state of a graphics
// pipeline.
type BlendState struct {
	// IndependentBlend enables each render target to use
	// different blend parameters.
	IndependentBlend bool
	// Color contains color blend parameters for each render
	// target. If IndependentBlend is false, only Color[0]
	// is used.
	Color []ColorBlend
}

// GraphState defines the combination of programmable and
// fixed stages of a graphics pipeline.
// Graphics pipelines are created from graphics states.
type GraphState struct {
	VertFunc ShaderFunc
	FragFunc ShaderFunc
	Input    []VertexIn
	Topology Topology
	Raster   RasterState
	Samples  int
	DS       DSState
	Blend    BlendState
	Pass     RenderPass
}

// CompState defines the state of a compute pipeline.
// The Func field must reference a compute shader; creation
// fails otherwise.
type CompState struct {
	Func ShaderFunc
}

// Pipeline is the interface that defines a GPU pipeline.
type Pipeline interface {
	Destroyer
}

// Usage is a mask indicating valid uses for a resource.
type Usage int

// Usage flags for Buffer and Image.
const (
	// The resource can be read in shaders.
	UShaderRead Usage = 1 << iota
	// The resource can be written in shaders.
	UShaderWrite
	// The resource can provide constant data for shaders.
	// Valid only for Buffer.
	UShaderConst
	// The resource can be sampled in shaders.
	// Valid only for Image.
	UShaderSample
	// The resource can provide vertex data for draw calls.
	// Valid only for Buffer.
	UVertexData
	// The resource can provide index data for draw calls.
	// Valid only for Buffer.
	UIndexData
	// The resource can be used as render target.
	// Valid only for Image.
	URenderTarget
	// The resource can be the source of a copy.
	UCopySrc
	// The resource can be the destination of a copy.
	UCopyDst
	// The resource can be used for any purpose.
	UGeneric Usage = 1<<iota - 1
)

// Buffer is the interface that defines a GPU buffer.
// The size of the buffer is fixed.
type Buffer interface {
	Destroyer

	// Visible returns whether the buffer is host visible.
	Visible() bool

	// Bytes returns a slice of length Cap referring to the
	// underlying data. If the buffer is not host visible,
	// it returns nil instead.
	// Reading back GPU-written data through this slice may
	// require waiting on a commit's completion first.
	Bytes() []byte

	// Cap returns the capacity of the buffer in bytes,
	// which may be greater than the size requested during
	// buffer creation.
	Cap() int64
}

// PixelFmt describes the format of a pixel.
type PixelFmt int

// Pixel formats.
const (
	FInvalid PixelFmt = iota
	// Color, 8-bit channels.
	RGBA8un
	RGBA8sRGB
	BGRA8un
	BGRA8sRGB
	RG8un
	R8un
	// Color, 16-bit channels.
	RGBA16f
	RG16f
	R16f
	// Color, 32-bit channels.
	RGBA32f
	RG32f
	R32f
	// Depth/Stencil.
	D16un
	D32f
	S8ui
	D24unS8ui
	D32fS8ui
)

// Size returns the size of a single pixel, in bytes.
func (f PixelFmt) Size() int {
	switch f {
	case R8un, S8ui:
		return 1
	case RG8un, R16f, D16un:
		return 2
	case RGBA8un, RGBA8sRGB, BGRA8un, BGRA8sRGB, RG16f, R32f, D32f, D24unS8ui:
		return 4
	case RGBA16f, RG32f, D32fS8ui:
		return 8
	case RGBA32f:
		return 16
	}
	return 0
}

// IsDepth returns whether f has a depth component.
func (f PixelFmt) IsDepth() bool {
	switch f {
	case D16un, D32f, D24unS8ui, D32fS8ui:
		return true
	}
	return false
}

// IsStencil returns whether f has a stencil component.
func (f PixelFmt) IsStencil() bool {
	switch f {
	case S8ui, D24unS8ui, D32fS8ui:
		return true
	}
	return false
}

// IsDepthStencil returns whether f has a depth or stencil
// component.
func (f PixelFmt) IsDepthStencil() bool { return f.IsDepth() || f.IsStencil() }

// Dim3D is a three-dimensional size.
type Dim3D struct {
	Width, Height, Depth int
}

// Off3D is a three-dimensional offset.
type Off3D struct {
	X, Y, Z int
}

// Image is the interface that defines a GPU image.
// Direct access to image memory is not provided, so copying
// data from the CPU to an image resource requires the use of
// a staging buffer.
type Image interface {
	Destroyer

	// NewView creates a new image view.
	// All views created from a given image must be
	// destroyed before the image itself is destroyed.
	NewView(typ ViewType, layer, layers, level, levels int) (ImageView, error)
}

// ViewType is the type of a resource view.
type ViewType int

// View types.
const (
	IView1D ViewType = iota
	IView2D
	IView3D
	IViewCube
	IView2DArray
	IView2DMS
)

// ImageView is the interface that defines a typed view of
// an Image resource.
type ImageView interface {
	Destroyer
}

// Filter is the type of sampler filters.
type Filter int

// Filters.
const (
	FNearest Filter = iota
	FLinear
	// FNoMipmap forces mip level 0 to be used.
	// It is only valid as the mip filter of a sampler.
	FNoMipmap
)

// AddrMode is the type of sampler address modes.
type AddrMode int

// Address modes.
const (
	AWrap AddrMode = iota
	AMirror
	AClamp
)

// Sampler is the interface that defines an image sampler.
type Sampler interface {
	Destroyer
}

// Sampling describes image sampler state.
type Sampling struct {
	Min      Filter
	Mag      Filter
	Mipmap   Filter
	AddrU    AddrMode
	AddrV    AddrMode
	AddrW    AddrMode
	MaxAniso int
	// Cmp is only meaningful when Compare is set.
	Compare bool
	Cmp     CmpFunc
	MinLOD  float32
	MaxLOD  float32
}

// Limits describes implementation limits.
// These may vary across drivers and devices.
// The driver does not re-validate calls against limits;
// exceeding them is a programming error.
type Limits struct {
	// Maximum width and height of 2D images.
	MaxImage2D int
	// Maximum width, height and depth of 3D images.
	MaxImage3D int
	// Maximum number of layers in an image.
	MaxLayers int

	// Maximum number of slots in a resource heap.
	MaxResourceSlots int
	// Maximum number of bound textures/samplers.
	MaxTextureUnits int

	// Maximum number of color render targets in a
	// render pass.
	MaxColorTargets int
	// Maximum width/height for a framebuffer.
	MaxFBSize [2]int
	// Maximum number of viewports.
	MaxViewports int
	// Supported range of rasterization line widths.
	LineWidthRange [2]float32

	// Maximum number of vertex inputs in a vertex shader.
	MaxVertexIn int

	// Maximum dispatch count.
	MaxDispatch [3]int
}
