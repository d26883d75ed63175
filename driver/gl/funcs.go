// Copyright 2024 RayGyoe. All rights reserved.

// Package gl implements the driver interfaces on top of
// OpenGL 4.6 core contexts.
// OpenGL is a global state machine, so this backend keeps a
// shadow copy of the context state and drops redundant
// native calls (see StateManager). Command buffers encode
// recorded commands as a byte stream of tagged opcodes and
// replay them on commit.
package gl

// Enum is the type of GL enumeration values.
type Enum uint32

// GL constants used by this package.
const (
	// Capabilities.
	BLEND                         Enum = 0x0BE2
	COLOR_LOGIC_OP                Enum = 0x0BF2
	CULL_FACE                     Enum = 0x0B44
	DEPTH_CLAMP                   Enum = 0x864F
	DEPTH_TEST                    Enum = 0x0B71
	DITHER                        Enum = 0x0BD0
	FRAMEBUFFER_SRGB              Enum = 0x8DB9
	LINE_SMOOTH                   Enum = 0x0B20
	MULTISAMPLE                   Enum = 0x809D
	POLYGON_OFFSET_FILL           Enum = 0x8037
	POLYGON_OFFSET_LINE           Enum = 0x2A02
	POLYGON_OFFSET_POINT          Enum = 0x2A01
	POLYGON_SMOOTH                Enum = 0x0B41
	PRIMITIVE_RESTART             Enum = 0x8F9D
	PRIMITIVE_RESTART_FIXED_INDEX Enum = 0x8D69
	RASTERIZER_DISCARD            Enum = 0x8C89
	SAMPLE_ALPHA_TO_COVERAGE      Enum = 0x809E
	SAMPLE_ALPHA_TO_ONE           Enum = 0x809F
	SAMPLE_COVERAGE               Enum = 0x80A0
	SAMPLE_SHADING                Enum = 0x8C36
	SAMPLE_MASK                   Enum = 0x8E51
	SCISSOR_TEST                  Enum = 0x0C11
	STENCIL_TEST                  Enum = 0x0B90
	TEXTURE_CUBE_MAP_SEAMLESS     Enum = 0x884F
	PROGRAM_POINT_SIZE            Enum = 0x8642

	// Buffer targets.
	ARRAY_BUFFER              Enum = 0x8892
	ATOMIC_COUNTER_BUFFER     Enum = 0x92C0
	COPY_READ_BUFFER          Enum = 0x8F36
	COPY_WRITE_BUFFER         Enum = 0x8F37
	DISPATCH_INDIRECT_BUFFER  Enum = 0x90EE
	DRAW_INDIRECT_BUFFER      Enum = 0x8F3F
	ELEMENT_ARRAY_BUFFER      Enum = 0x8893
	PIXEL_PACK_BUFFER         Enum = 0x88EB
	PIXEL_UNPACK_BUFFER       Enum = 0x88EC
	QUERY_BUFFER              Enum = 0x9192
	SHADER_STORAGE_BUFFER     Enum = 0x90D2
	TEXTURE_BUFFER            Enum = 0x8C2A
	TRANSFORM_FEEDBACK_BUFFER Enum = 0x8C8E
	UNIFORM_BUFFER            Enum = 0x8A11

	// Texture targets.
	TEXTURE_1D                   Enum = 0x0DE0
	TEXTURE_2D                   Enum = 0x0DE1
	TEXTURE_3D                   Enum = 0x806F
	TEXTURE_1D_ARRAY             Enum = 0x8C18
	TEXTURE_2D_ARRAY             Enum = 0x8C1A
	TEXTURE_RECTANGLE            Enum = 0x84F5
	TEXTURE_CUBE_MAP             Enum = 0x8513
	TEXTURE_CUBE_MAP_ARRAY       Enum = 0x9009
	TEXTURE_2D_MULTISAMPLE       Enum = 0x9100
	TEXTURE_2D_MULTISAMPLE_ARRAY Enum = 0x9102
	TEXTURE0                     Enum = 0x84C0

	// Framebuffer targets and attachments.
	FRAMEBUFFER              Enum = 0x8D40
	DRAW_FRAMEBUFFER         Enum = 0x8CA9
	READ_FRAMEBUFFER         Enum = 0x8CA8
	RENDERBUFFER             Enum = 0x8D41
	COLOR_ATTACHMENT0        Enum = 0x8CE0
	DEPTH_ATTACHMENT         Enum = 0x8D00
	STENCIL_ATTACHMENT       Enum = 0x8D20
	DEPTH_STENCIL_ATTACHMENT Enum = 0x821A
	FRAMEBUFFER_COMPLETE     Enum = 0x8CD5

	// Clear/blit masks.
	COLOR_BUFFER_BIT   Enum = 0x4000
	DEPTH_BUFFER_BIT   Enum = 0x0100
	STENCIL_BUFFER_BIT Enum = 0x0400

	// ClearBuffer* buffer selectors.
	COLOR   Enum = 0x1800
	DEPTH   Enum = 0x1801
	STENCIL Enum = 0x1802

	// Image unit access.
	READ_ONLY  Enum = 0x88B8
	WRITE_ONLY Enum = 0x88B9
	READ_WRITE Enum = 0x88BA

	// Primitive modes.
	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	LINE_STRIP     Enum = 0x0003
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005

	// Winding and faces.
	CW             Enum = 0x0900
	CCW            Enum = 0x0901
	FRONT          Enum = 0x0404
	BACK           Enum = 0x0405
	FRONT_AND_BACK Enum = 0x0408

	// Polygon modes.
	LINE Enum = 0x1B01
	FILL Enum = 0x1B02

	// Comparison functions.
	NEVER    Enum = 0x0200
	LESS     Enum = 0x0201
	EQUAL    Enum = 0x0202
	LEQUAL   Enum = 0x0203
	GREATER  Enum = 0x0204
	NOTEQUAL Enum = 0x0205
	GEQUAL   Enum = 0x0206
	ALWAYS   Enum = 0x0207

	// Stencil operations.
	ZERO      Enum = 0x0000
	KEEP      Enum = 0x1E00
	REPLACE   Enum = 0x1E01
	INCR      Enum = 0x1E02
	DECR      Enum = 0x1E03
	INVERT    Enum = 0x150A
	INCR_WRAP Enum = 0x8507
	DECR_WRAP Enum = 0x8508

	// Blend factors (ZERO above doubles as a factor).
	ONE                      Enum = 0x0001
	SRC_COLOR                Enum = 0x0300
	ONE_MINUS_SRC_COLOR      Enum = 0x0301
	SRC_ALPHA                Enum = 0x0302
	ONE_MINUS_SRC_ALPHA      Enum = 0x0303
	DST_ALPHA                Enum = 0x0304
	ONE_MINUS_DST_ALPHA      Enum = 0x0305
	DST_COLOR                Enum = 0x0306
	ONE_MINUS_DST_COLOR      Enum = 0x0307
	SRC_ALPHA_SATURATE       Enum = 0x0308
	CONSTANT_COLOR           Enum = 0x8001
	ONE_MINUS_CONSTANT_COLOR Enum = 0x8002

	// Blend equations.
	FUNC_ADD              Enum = 0x8006
	MIN                   Enum = 0x8007
	MAX                   Enum = 0x8008
	FUNC_SUBTRACT         Enum = 0x800A
	FUNC_REVERSE_SUBTRACT Enum = 0x800B

	// Sized internal formats.
	R8                 Enum = 0x8229
	RG8                Enum = 0x822B
	RGBA8              Enum = 0x8058
	SRGB8_ALPHA8       Enum = 0x8C43
	R16F               Enum = 0x822D
	RG16F              Enum = 0x822F
	RGBA16F            Enum = 0x881A
	R32F               Enum = 0x822E
	RG32F              Enum = 0x8230
	RGBA32F            Enum = 0x8814
	DEPTH_COMPONENT16  Enum = 0x81A5
	DEPTH_COMPONENT32F Enum = 0x8CAC
	STENCIL_INDEX8     Enum = 0x8D48
	DEPTH24_STENCIL8   Enum = 0x88F0
	DEPTH32F_STENCIL8  Enum = 0x8CAD

	// Pixel transfer formats and types.
	RED                            Enum = 0x1903
	RG                             Enum = 0x8227
	RGBA                           Enum = 0x1908
	BGRA                           Enum = 0x80E1
	DEPTH_COMPONENT                Enum = 0x1902
	DEPTH_STENCIL                  Enum = 0x84F9
	STENCIL_INDEX                  Enum = 0x1901
	UNSIGNED_BYTE                  Enum = 0x1401
	UNSIGNED_SHORT                 Enum = 0x1403
	UNSIGNED_INT                   Enum = 0x1405
	UNSIGNED_INT_24_8              Enum = 0x84FA
	FLOAT                          Enum = 0x1406
	HALF_FLOAT                     Enum = 0x140B
	FLOAT_32_UNSIGNED_INT_24_8_REV Enum = 0x8DAD

	// Vertex attribute types.
	BYTE  Enum = 0x1400
	SHORT Enum = 0x1402
	INT   Enum = 0x1404

	// Buffer storage flags.
	MAP_READ_BIT        Enum = 0x0001
	MAP_WRITE_BIT       Enum = 0x0002
	MAP_PERSISTENT_BIT  Enum = 0x0040
	MAP_COHERENT_BIT    Enum = 0x0080
	DYNAMIC_STORAGE_BIT Enum = 0x0100
	CLIENT_STORAGE_BIT  Enum = 0x0200

	// Sampler parameters and values.
	TEXTURE_MAG_FILTER     Enum = 0x2800
	TEXTURE_MIN_FILTER     Enum = 0x2801
	TEXTURE_WRAP_S         Enum = 0x2802
	TEXTURE_WRAP_T         Enum = 0x2803
	TEXTURE_WRAP_R         Enum = 0x8072
	TEXTURE_MIN_LOD        Enum = 0x813A
	TEXTURE_MAX_LOD        Enum = 0x813B
	TEXTURE_COMPARE_MODE   Enum = 0x884C
	TEXTURE_COMPARE_FUNC   Enum = 0x884D
	TEXTURE_MAX_ANISOTROPY Enum = 0x84FE
	COMPARE_REF_TO_TEXTURE Enum = 0x884E
	NONE                   Enum = 0x0000
	NEAREST                Enum = 0x2600
	LINEAR                 Enum = 0x2601
	NEAREST_MIPMAP_NEAREST Enum = 0x2700
	LINEAR_MIPMAP_NEAREST  Enum = 0x2701
	NEAREST_MIPMAP_LINEAR  Enum = 0x2702
	LINEAR_MIPMAP_LINEAR   Enum = 0x2703
	REPEAT                 Enum = 0x2901
	MIRRORED_REPEAT        Enum = 0x8370
	CLAMP_TO_EDGE          Enum = 0x812F

	// Shader types and queries.
	FRAGMENT_SHADER Enum = 0x8B30
	VERTEX_SHADER   Enum = 0x8B31
	COMPUTE_SHADER  Enum = 0x91B9
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82

	// Memory barrier bits.
	ALL_BARRIER_BITS Enum = 0xFFFFFFFF

	// Implementation limits.
	MAX_TEXTURE_SIZE                   Enum = 0x0D33
	MAX_3D_TEXTURE_SIZE                Enum = 0x8073
	MAX_ARRAY_TEXTURE_LAYERS           Enum = 0x88FF
	MAX_COMBINED_TEXTURE_IMAGE_UNITS   Enum = 0x8B4D
	MAX_COLOR_ATTACHMENTS              Enum = 0x8CDF
	MAX_DRAW_BUFFERS                   Enum = 0x8824
	MAX_FRAMEBUFFER_WIDTH              Enum = 0x9315
	MAX_FRAMEBUFFER_HEIGHT             Enum = 0x9316
	MAX_VIEWPORTS                      Enum = 0x825B
	MAX_VERTEX_ATTRIBS                 Enum = 0x8869
	MAX_UNIFORM_BUFFER_BINDINGS        Enum = 0x8A2F
	MAX_SHADER_STORAGE_BUFFER_BINDINGS Enum = 0x90DD
	MAX_COMPUTE_WORK_GROUP_COUNT       Enum = 0x91BE
	ALIASED_LINE_WIDTH_RANGE           Enum = 0x846E
)

// Funcs is the set of native GL entry points the backend
// issues. The StateManager filters calls through a shadow
// copy of the context state before they reach a Funcs, so
// implementations must not assume every bind they receive
// changes state. Tests substitute a recording fake.
type Funcs interface {
	// State.
	Enable(c Enum)
	Disable(c Enum)
	ActiveTexture(unit Enum)
	BindBuffer(target Enum, b uint32)
	BindBufferBase(target Enum, index int, b uint32)
	BindBufferRange(target Enum, index int, b uint32, off, size int)
	BindBuffersBase(target Enum, first int, bs []uint32)
	BindTexture(target Enum, t uint32)
	BindTextures(first int, ts []uint32)
	BindImageTexture(unit int, t uint32, level int, layered bool, layer int, access, format Enum)
	BindSampler(unit int, s uint32)
	BindSamplers(first int, ss []uint32)
	BindFramebuffer(target Enum, f uint32)
	BindRenderbuffer(target Enum, r uint32)
	BindVertexArray(a uint32)
	UseProgram(p uint32)
	Viewport(x, y, width, height int)
	ViewportIndexed(index int, x, y, width, height float32)
	DepthRangeIndexed(index int, znear, zfar float64)
	Scissor(x, y, width, height int)
	ScissorIndexed(index int, x, y, width, height int)
	FrontFace(dir Enum)
	CullFace(mode Enum)
	PolygonMode(mode Enum)
	PolygonOffset(factor, units float32)
	LineWidth(width float32)
	DepthFunc(fn Enum)
	DepthMask(write bool)
	StencilFuncSeparate(face, fn Enum, ref int, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass Enum)
	StencilMaskSeparate(face Enum, mask uint32)
	ColorMask(r, g, b, a bool)
	ColorMaski(buf int, r, g, b, a bool)
	BlendEquationSeparate(modeRGB, modeAlpha Enum)
	BlendEquationSeparatei(buf int, modeRGB, modeAlpha Enum)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendFuncSeparatei(buf int, srcRGB, dstRGB, srcAlpha, dstAlpha Enum)
	BlendColor(r, g, b, a float32)

	// Clears.
	ClearColor(r, g, b, a float32)
	ClearDepth(d float64)
	ClearStencil(s int)
	Clear(mask Enum)
	ClearBufferfv(buffer Enum, drawBuf int, v [4]float32)
	ClearBufferiv(buffer Enum, drawBuf int, v [4]int32)
	ClearBufferfi(buffer Enum, drawBuf int, depth float32, stencil int)

	// Draws and dispatches.
	DrawArraysInstancedBaseInstance(mode Enum, first, count, instCount, baseInst int)
	DrawElementsInstancedBaseVertexBaseInstance(mode Enum, count int, typ Enum, indices uintptr, instCount, baseVert, baseInst int)
	DispatchCompute(x, y, z int)
	MemoryBarrier(barriers Enum)

	// Buffers.
	CreateBuffer() uint32
	DeleteBuffer(b uint32)
	BufferStorage(target Enum, size int, flags Enum)
	BufferSubData(target Enum, off int, data []byte)
	CopyBufferSubData(readTarget, writeTarget Enum, readOff, writeOff, size int)
	ClearBufferSubData(target, internalFmt Enum, off, size int, format, typ Enum, data []byte)
	MapBufferRange(target Enum, off, length int, access Enum) []byte
	UnmapBuffer(target Enum) bool

	// Textures and renderbuffers.
	CreateTexture() uint32
	DeleteTexture(t uint32)
	TexStorage2D(target Enum, levels int, internalFmt Enum, width, height int)
	TexStorage3D(target Enum, levels int, internalFmt Enum, width, height, depth int)
	TexStorage2DMultisample(target Enum, samples int, internalFmt Enum, width, height int, fixedLoc bool)
	TexStorage3DMultisample(target Enum, samples int, internalFmt Enum, width, height, depth int, fixedLoc bool)
	TexSubImage3D(target Enum, level, x, y, z, width, height, depth int, format, typ Enum, off uintptr)
	GetTexImage(target Enum, level int, format, typ Enum, off uintptr)
	GetTextureSubImage(t uint32, level, x, y, z, width, height, depth int, format, typ Enum, bufSize int, off uintptr)
	CopyImageSubData(src uint32, srcTarget Enum, srcLevel, srcX, srcY, srcZ int, dst uint32, dstTarget Enum, dstLevel, dstX, dstY, dstZ, width, height, depth int)
	GenerateMipmap(target Enum)
	TextureView(view uint32, target Enum, orig uint32, internalFmt Enum, minLevel, levels, minLayer, layers int)
	PixelStorei(pname Enum, param int)
	CreateRenderbuffer() uint32
	DeleteRenderbuffer(r uint32)
	RenderbufferStorageMultisample(target Enum, samples int, internalFmt Enum, width, height int)

	// Samplers.
	CreateSampler() uint32
	DeleteSampler(s uint32)
	SamplerParameteri(s uint32, pname Enum, param int)
	SamplerParameterf(s uint32, pname Enum, param float32)

	// Framebuffers.
	CreateFramebuffer() uint32
	DeleteFramebuffer(f uint32)
	FramebufferTexture2D(target, att, texTarget Enum, t uint32, level int)
	FramebufferTextureLayer(target, att Enum, t uint32, level, layer int)
	FramebufferRenderbuffer(target, att Enum, r uint32)
	CheckFramebufferStatus(target Enum) Enum
	DrawBuffers(bufs []Enum)
	BlitFramebuffer(sx0, sy0, sx1, sy1, dx0, dy0, dx1, dy1 int, mask, filter Enum)

	// Vertex arrays.
	CreateVertexArray() uint32
	DeleteVertexArray(a uint32)
	EnableVertexAttribArray(attr int)
	DisableVertexAttribArray(attr int)
	VertexAttribFormat(attr, size int, typ Enum, normalized bool, relOff int)
	VertexAttribBinding(attr, binding int)
	VertexBindingDivisor(binding, divisor int)
	BindVertexBuffer(binding int, b uint32, off, stride int)

	// Shaders and programs.
	CreateShader(typ Enum) uint32
	DeleteShader(s uint32)
	ShaderSource(s uint32, src string)
	CompileShader(s uint32)
	GetShaderi(s uint32, pname Enum) int
	GetShaderInfoLog(s uint32) string
	CreateProgram() uint32
	DeleteProgram(p uint32)
	AttachShader(p, s uint32)
	LinkProgram(p uint32)
	GetProgrami(p uint32, pname Enum) int
	GetProgramInfoLog(p uint32) string

	// Debug.
	PushDebugGroup(msg string)
	PopDebugGroup()

	// Queries and synchronization.
	GetInteger(pname Enum) int
	GetIntegeri(pname Enum, index int) int
	GetFloats(pname Enum, dst []float32)
	GetString(pname Enum) string
	Finish()
	Flush()
}

// PixelStorei parameter, pack/unpack row length and height.
const (
	PACK_ROW_LENGTH     Enum = 0x0D02
	PACK_IMAGE_HEIGHT   Enum = 0x806C
	UNPACK_ROW_LENGTH   Enum = 0x0CF2
	UNPACK_IMAGE_HEIGHT Enum = 0x806E
)

// GetString names.
const (
	VENDOR   Enum = 0x1F00
	RENDERER Enum = 0x1F01
	VERSION  Enum = 0x1F02
)
