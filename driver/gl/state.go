// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"github.com/chewxy/math32"

	"github.com/RayGyoe/LLGL/driver"
)

// maxResourceSlots is the number of indexed binding slots
// tracked per buffer target, and the upper bound on heap
// slot indices.
const maxResourceSlots = 64

// invalidID is a shadow value that never compares equal to
// a real object name, so the next bind is always issued.
const invalidID = ^uint32(0)

// Capabilities tracked by the state manager, in shadow
// array order.
var trackedCaps = [...]Enum{
	BLEND,
	COLOR_LOGIC_OP,
	CULL_FACE,
	DEPTH_CLAMP,
	DEPTH_TEST,
	DITHER,
	FRAMEBUFFER_SRGB,
	LINE_SMOOTH,
	MULTISAMPLE,
	POLYGON_OFFSET_FILL,
	POLYGON_OFFSET_LINE,
	POLYGON_OFFSET_POINT,
	POLYGON_SMOOTH,
	PRIMITIVE_RESTART,
	PRIMITIVE_RESTART_FIXED_INDEX,
	PROGRAM_POINT_SIZE,
	RASTERIZER_DISCARD,
	SAMPLE_ALPHA_TO_COVERAGE,
	SAMPLE_ALPHA_TO_ONE,
	SAMPLE_COVERAGE,
	SAMPLE_SHADING,
	SAMPLE_MASK,
	SCISSOR_TEST,
	STENCIL_TEST,
	TEXTURE_CUBE_MAP_SEAMLESS,
}

// capIndex returns the shadow array index of a tracked
// capability. It panics on untracked values, since those
// would silently corrupt the shadow state.
func capIndex(c Enum) int {
	for i := range trackedCaps {
		if trackedCaps[i] == c {
			return i
		}
	}
	panic("gl: untracked capability")
}

// Buffer targets with indexed binding points, in shadow
// array order.
var indexedTargets = [...]Enum{
	UNIFORM_BUFFER,
	SHADER_STORAGE_BUFFER,
	ATOMIC_COUNTER_BUFFER,
	TRANSFORM_FEEDBACK_BUFFER,
}

func indexedTargetIndex(target Enum) int {
	for i := range indexedTargets {
		if indexedTargets[i] == target {
			return i
		}
	}
	panic("gl: buffer target has no indexed binding points")
}

// Buffer targets with a generic binding point, in shadow
// array order.
var bufferTargets = [...]Enum{
	ARRAY_BUFFER,
	ELEMENT_ARRAY_BUFFER,
	UNIFORM_BUFFER,
	SHADER_STORAGE_BUFFER,
	COPY_READ_BUFFER,
	COPY_WRITE_BUFFER,
	PIXEL_PACK_BUFFER,
	PIXEL_UNPACK_BUFFER,
	DRAW_INDIRECT_BUFFER,
	DISPATCH_INDIRECT_BUFFER,
	ATOMIC_COUNTER_BUFFER,
	TRANSFORM_FEEDBACK_BUFFER,
	QUERY_BUFFER,
	TEXTURE_BUFFER,
}

func bufferTargetIndex(target Enum) int {
	for i := range bufferTargets {
		if bufferTargets[i] == target {
			return i
		}
	}
	panic("gl: unknown buffer target")
}

// Texture targets, in shadow array order.
var textureTargets = [...]Enum{
	TEXTURE_1D,
	TEXTURE_2D,
	TEXTURE_3D,
	TEXTURE_1D_ARRAY,
	TEXTURE_2D_ARRAY,
	TEXTURE_RECTANGLE,
	TEXTURE_CUBE_MAP,
	TEXTURE_CUBE_MAP_ARRAY,
	TEXTURE_2D_MULTISAMPLE,
	TEXTURE_2D_MULTISAMPLE_ARRAY,
	TEXTURE_BUFFER,
}

func textureTargetIndex(target Enum) int {
	for i := range textureTargets {
		if textureTargets[i] == target {
			return i
		}
	}
	panic("gl: unknown texture target")
}

// ctxLimits holds context limits queried once at startup.
type ctxLimits struct {
	maxTexSize      int
	max3DTexSize    int
	maxLayers       int
	maxTextureUnits int
	maxColorAtts    int
	maxDrawBufs     int
	maxFBSize       [2]int
	maxViewports    int
	maxVertexAttrs  int
	maxUBBindings   int
	maxSSBBindings  int
	maxDispatch     [3]int
	lineWidthRange  [2]float32
}

func queryLimits(f Funcs) ctxLimits {
	var l ctxLimits
	l.maxTexSize = f.GetInteger(MAX_TEXTURE_SIZE)
	l.max3DTexSize = f.GetInteger(MAX_3D_TEXTURE_SIZE)
	l.maxLayers = f.GetInteger(MAX_ARRAY_TEXTURE_LAYERS)
	l.maxTextureUnits = f.GetInteger(MAX_COMBINED_TEXTURE_IMAGE_UNITS)
	l.maxColorAtts = f.GetInteger(MAX_COLOR_ATTACHMENTS)
	l.maxDrawBufs = f.GetInteger(MAX_DRAW_BUFFERS)
	l.maxFBSize[0] = f.GetInteger(MAX_FRAMEBUFFER_WIDTH)
	l.maxFBSize[1] = f.GetInteger(MAX_FRAMEBUFFER_HEIGHT)
	l.maxViewports = f.GetInteger(MAX_VIEWPORTS)
	l.maxVertexAttrs = f.GetInteger(MAX_VERTEX_ATTRIBS)
	l.maxUBBindings = f.GetInteger(MAX_UNIFORM_BUFFER_BINDINGS)
	l.maxSSBBindings = f.GetInteger(MAX_SHADER_STORAGE_BUFFER_BINDINGS)
	for i := 0; i < 3; i++ {
		l.maxDispatch[i] = f.GetIntegeri(MAX_COMPUTE_WORK_GROUP_COUNT, i)
	}
	f.GetFloats(ALIASED_LINE_WIDTH_RANGE, l.lineWidthRange[:])
	return l
}

// texUnit is the shadow of one texture unit.
type texUnit [len(textureTargets)]uint32

// StateManager keeps a shadow copy of the state of one GL
// context and forwards only state-changing calls to the
// native Funcs. There is exactly one StateManager per
// context, and it is only valid on the thread where that
// context is current.
//
// The shadow assumes it is the sole writer of context
// state. Code that bypasses it must invalidate the affected
// entries (or the whole manager) afterwards.
type StateManager struct {
	fn  Funcs
	lim ctxLimits

	caps     [len(trackedCaps)]bool
	capStack []capEntry

	bufs      [len(bufferTargets)]uint32
	bufStack  []bufEntry
	idxBufs   [len(indexedTargets)][maxResourceSlots]uint32
	vertexArr uint32

	activeUnit int
	texUnits   []texUnit
	texStack   []texEntry
	samplers   []uint32

	drawFB   uint32
	readFB   uint32
	fbStack  []fbEntry
	renderbf uint32
	rbStack  []uint32

	program   uint32
	progStack []uint32

	colorMask [4]bool
	// colorMasks overrides colorMask per draw buffer while a
	// pipeline with independent blend state is bound.
	colorMasks [][4]bool
	maskSplit  bool

	depthMask   bool
	stencilMask uint32

	clearColor   [4]float32
	clearDepth   float64
	clearStencil int

	frontCCW  bool
	flipFaces bool

	flipY        bool
	targetHeight int

	lineWidth float32

	blendColor [4]float32

	stencilRef      int
	stencilFunc     [2]Enum
	stencilFuncMask [2]uint32
}

type capEntry struct {
	cap Enum
	on  bool
}

type bufEntry struct {
	target Enum
	id     uint32
}

type texEntry struct {
	unit   int
	target Enum
	id     uint32
}

type fbEntry struct {
	target Enum
	id     uint32
}

// NewStateManager creates a state manager for the context
// current on the calling thread and resets the tracked
// native state to the shadow's initial values.
func NewStateManager(fn Funcs) *StateManager {
	s := &StateManager{
		fn:  fn,
		lim: queryLimits(fn),
	}
	s.texUnits = make([]texUnit, s.lim.maxTextureUnits)
	s.samplers = make([]uint32, s.lim.maxTextureUnits)
	s.colorMasks = make([][4]bool, s.lim.maxDrawBufs)
	s.Reset()
	return s
}

// Limits returns the context limits.
func (s *StateManager) Limits() *ctxLimits { return &s.lim }

// Funcs returns the native function table.
// Calls made directly on it bypass the shadow.
func (s *StateManager) Funcs() Funcs { return s.fn }

// Reset sets every shadow entry and the corresponding
// native state to known defaults.
func (s *StateManager) Reset() {
	for i := range s.caps {
		s.caps[i] = false
		s.fn.Disable(trackedCaps[i])
	}
	s.capStack = s.capStack[:0]
	for i := range s.bufs {
		s.bufs[i] = 0
		s.fn.BindBuffer(bufferTargets[i], 0)
	}
	s.bufStack = s.bufStack[:0]
	for i := range s.idxBufs {
		for j := range s.idxBufs[i] {
			s.idxBufs[i][j] = 0
		}
	}
	s.vertexArr = 0
	s.fn.BindVertexArray(0)
	s.activeUnit = 0
	s.fn.ActiveTexture(TEXTURE0)
	for i := range s.texUnits {
		s.texUnits[i] = texUnit{}
		s.samplers[i] = 0
	}
	s.texStack = s.texStack[:0]
	s.drawFB, s.readFB = 0, 0
	s.fn.BindFramebuffer(FRAMEBUFFER, 0)
	s.fbStack = s.fbStack[:0]
	s.renderbf = 0
	s.rbStack = s.rbStack[:0]
	s.program = 0
	s.fn.UseProgram(0)
	s.progStack = s.progStack[:0]
	s.colorMask = [4]bool{true, true, true, true}
	s.fn.ColorMask(true, true, true, true)
	for i := range s.colorMasks {
		s.colorMasks[i] = s.colorMask
	}
	s.maskSplit = false
	s.depthMask = true
	s.fn.DepthMask(true)
	s.stencilMask = ^uint32(0)
	s.fn.StencilMaskSeparate(FRONT_AND_BACK, s.stencilMask)
	s.clearColor = [4]float32{0, 0, 0, 0}
	s.clearDepth = 1
	s.clearStencil = 0
	s.frontCCW = true
	s.flipFaces = false
	s.fn.FrontFace(CCW)
	s.flipY = false
	s.targetHeight = 0
	s.lineWidth = 1
	s.blendColor = [4]float32{}
	s.stencilRef = 0
	s.stencilFunc = [2]Enum{ALWAYS, ALWAYS}
	s.stencilFuncMask = [2]uint32{^uint32(0), ^uint32(0)}
}

// SetCapability enables or disables a server-side
// capability, skipping the native call when the shadow
// already has the requested value.
func (s *StateManager) SetCapability(c Enum, on bool) {
	i := capIndex(c)
	if s.caps[i] == on {
		return
	}
	s.caps[i] = on
	if on {
		s.fn.Enable(c)
	} else {
		s.fn.Disable(c)
	}
}

// HasCapability returns the shadow value of a capability.
func (s *StateManager) HasCapability(c Enum) bool {
	return s.caps[capIndex(c)]
}

// PushCapability saves the current value of a capability on
// the capability stack.
func (s *StateManager) PushCapability(c Enum) {
	s.capStack = append(s.capStack, capEntry{c, s.caps[capIndex(c)]})
}

// PopCapability restores the most recently pushed
// capability. It panics if the stack is empty.
func (s *StateManager) PopCapability() {
	n := len(s.capStack)
	if n == 0 {
		panic("gl: capability stack underflow")
	}
	e := s.capStack[n-1]
	s.capStack = s.capStack[:n-1]
	s.SetCapability(e.cap, e.on)
}

// BindBuffer binds a buffer to the generic binding point of
// target, skipping the native call when the shadow already
// has it bound.
func (s *StateManager) BindBuffer(target Enum, id uint32) {
	i := bufferTargetIndex(target)
	if s.bufs[i] == id {
		return
	}
	s.bufs[i] = id
	s.fn.BindBuffer(target, id)
}

// PushBoundBuffer saves the buffer bound to target on the
// buffer binding stack.
func (s *StateManager) PushBoundBuffer(target Enum) {
	s.bufStack = append(s.bufStack, bufEntry{target, s.bufs[bufferTargetIndex(target)]})
}

// PopBoundBuffer restores the most recently pushed buffer
// binding. It panics if the stack is empty.
func (s *StateManager) PopBoundBuffer() {
	n := len(s.bufStack)
	if n == 0 {
		panic("gl: buffer binding stack underflow")
	}
	e := s.bufStack[n-1]
	s.bufStack = s.bufStack[:n-1]
	s.BindBuffer(e.target, e.id)
}

// BindBufferBase binds a buffer to an indexed binding point.
// The native call also rebinds the generic binding point,
// so both shadows are updated.
func (s *StateManager) BindBufferBase(target Enum, index int, id uint32) {
	ti := indexedTargetIndex(target)
	if s.idxBufs[ti][index] == id && s.bufs[bufferTargetIndex(target)] == id {
		return
	}
	s.idxBufs[ti][index] = id
	s.bufs[bufferTargetIndex(target)] = id
	s.fn.BindBufferBase(target, index, id)
}

// BindBufferRange binds a range of a buffer to an indexed
// binding point. Ranged binds are not shadowed beyond the
// object name, so the call is always issued.
func (s *StateManager) BindBufferRange(target Enum, index int, id uint32, off, size int) {
	s.idxBufs[indexedTargetIndex(target)][index] = id
	s.bufs[bufferTargetIndex(target)] = id
	s.fn.BindBufferRange(target, index, id, off, size)
}

// BindBuffersBase binds consecutive indexed binding points
// in a single native call. The generic binding point is
// left untouched by the native call and so is its shadow.
func (s *StateManager) BindBuffersBase(target Enum, first int, ids []uint32) {
	ti := indexedTargetIndex(target)
	diff := false
	for i, id := range ids {
		if s.idxBufs[ti][first+i] != id {
			diff = true
		}
		s.idxBufs[ti][first+i] = id
	}
	if diff {
		s.fn.BindBuffersBase(target, first, ids)
	}
}

// ActiveTexture selects the active texture unit.
func (s *StateManager) ActiveTexture(unit int) {
	if s.activeUnit == unit {
		return
	}
	s.activeUnit = unit
	s.fn.ActiveTexture(TEXTURE0 + Enum(unit))
}

// BindTexture binds a texture to a target of the given
// texture unit.
func (s *StateManager) BindTexture(unit int, target Enum, id uint32) {
	i := textureTargetIndex(target)
	if s.texUnits[unit][i] == id {
		return
	}
	s.ActiveTexture(unit)
	s.texUnits[unit][i] = id
	s.fn.BindTexture(target, id)
}

// BindTextures binds textures to consecutive units in a
// single native call. The native call binds each texture to
// its own target and unbinds every target of units given a
// zero name, so a zero clears the unit's whole shadow while
// a nonzero updates the entry for target.
func (s *StateManager) BindTextures(first int, target Enum, ids []uint32) {
	ti := textureTargetIndex(target)
	diff := false
	for i, id := range ids {
		u := &s.texUnits[first+i]
		if u[ti] != id {
			diff = true
		}
		if id == 0 {
			*u = texUnit{}
		} else {
			u[ti] = id
		}
	}
	if diff {
		s.fn.BindTextures(first, ids)
	}
}

// PushBoundTexture saves the texture bound to a unit/target
// pair on the texture binding stack.
func (s *StateManager) PushBoundTexture(unit int, target Enum) {
	s.texStack = append(s.texStack, texEntry{unit, target, s.texUnits[unit][textureTargetIndex(target)]})
}

// PopBoundTexture restores the most recently pushed texture
// binding. It panics if the stack is empty.
func (s *StateManager) PopBoundTexture() {
	n := len(s.texStack)
	if n == 0 {
		panic("gl: texture binding stack underflow")
	}
	e := s.texStack[n-1]
	s.texStack = s.texStack[:n-1]
	s.BindTexture(e.unit, e.target, e.id)
}

// BindSampler binds a sampler to a texture unit.
func (s *StateManager) BindSampler(unit int, id uint32) {
	if s.samplers[unit] == id {
		return
	}
	s.samplers[unit] = id
	s.fn.BindSampler(unit, id)
}

// BindSamplers binds samplers to consecutive units in a
// single native call.
func (s *StateManager) BindSamplers(first int, ids []uint32) {
	diff := false
	for i, id := range ids {
		if s.samplers[first+i] != id {
			diff = true
		}
		s.samplers[first+i] = id
	}
	if diff {
		s.fn.BindSamplers(first, ids)
	}
}

// BindFramebuffer binds a framebuffer. Binding to
// FRAMEBUFFER updates both the draw and read shadows.
func (s *StateManager) BindFramebuffer(target Enum, id uint32) {
	switch target {
	case FRAMEBUFFER:
		if s.drawFB == id && s.readFB == id {
			return
		}
		s.drawFB, s.readFB = id, id
	case DRAW_FRAMEBUFFER:
		if s.drawFB == id {
			return
		}
		s.drawFB = id
	case READ_FRAMEBUFFER:
		if s.readFB == id {
			return
		}
		s.readFB = id
	default:
		panic("gl: unknown framebuffer target")
	}
	s.fn.BindFramebuffer(target, id)
}

// PushBoundFramebuffer saves the framebuffer bound to
// target on the framebuffer binding stack.
func (s *StateManager) PushBoundFramebuffer(target Enum) {
	id := s.drawFB
	if target == READ_FRAMEBUFFER {
		id = s.readFB
	}
	s.fbStack = append(s.fbStack, fbEntry{target, id})
}

// PopBoundFramebuffer restores the most recently pushed
// framebuffer binding. It panics if the stack is empty.
func (s *StateManager) PopBoundFramebuffer() {
	n := len(s.fbStack)
	if n == 0 {
		panic("gl: framebuffer binding stack underflow")
	}
	e := s.fbStack[n-1]
	s.fbStack = s.fbStack[:n-1]
	s.BindFramebuffer(e.target, e.id)
}

// BindRenderbuffer binds a renderbuffer.
func (s *StateManager) BindRenderbuffer(id uint32) {
	if s.renderbf == id {
		return
	}
	s.renderbf = id
	s.fn.BindRenderbuffer(RENDERBUFFER, id)
}

// PushBoundRenderbuffer saves the bound renderbuffer on the
// renderbuffer binding stack.
func (s *StateManager) PushBoundRenderbuffer() {
	s.rbStack = append(s.rbStack, s.renderbf)
}

// PopBoundRenderbuffer restores the most recently pushed
// renderbuffer binding. It panics if the stack is empty.
func (s *StateManager) PopBoundRenderbuffer() {
	n := len(s.rbStack)
	if n == 0 {
		panic("gl: renderbuffer binding stack underflow")
	}
	id := s.rbStack[n-1]
	s.rbStack = s.rbStack[:n-1]
	s.BindRenderbuffer(id)
}

// BindVertexArray binds a vertex array object.
// The element array buffer binding is part of VAO state, so
// its shadow is invalidated on a change of VAO.
func (s *StateManager) BindVertexArray(id uint32) {
	if s.vertexArr == id {
		return
	}
	s.vertexArr = id
	s.bufs[bufferTargetIndex(ELEMENT_ARRAY_BUFFER)] = invalidID
	s.fn.BindVertexArray(id)
}

// UseProgram makes a program current.
func (s *StateManager) UseProgram(id uint32) {
	if s.program == id {
		return
	}
	s.program = id
	s.fn.UseProgram(id)
}

// PushProgram saves the current program on the program
// stack.
func (s *StateManager) PushProgram() {
	s.progStack = append(s.progStack, s.program)
}

// PopProgram restores the most recently pushed program.
// It panics if the stack is empty.
func (s *StateManager) PopProgram() {
	n := len(s.progStack)
	if n == 0 {
		panic("gl: program stack underflow")
	}
	id := s.progStack[n-1]
	s.progStack = s.progStack[:n-1]
	s.UseProgram(id)
}

// NotifyBufferRelease invalidates all shadow entries that
// refer to a buffer about to be deleted. GL reuses object
// names, so a stale shadow entry would elide the bind of an
// unrelated future buffer that happens to get the same name.
func (s *StateManager) NotifyBufferRelease(id uint32) {
	for i := range s.bufs {
		if s.bufs[i] == id {
			s.bufs[i] = invalidID
		}
	}
	for i := range s.idxBufs {
		for j := range s.idxBufs[i] {
			if s.idxBufs[i][j] == id {
				s.idxBufs[i][j] = invalidID
			}
		}
	}
	for i := range s.bufStack {
		if s.bufStack[i].id == id {
			s.bufStack[i].id = 0
		}
	}
}

// NotifyTextureRelease invalidates all shadow entries that
// refer to a texture about to be deleted.
func (s *StateManager) NotifyTextureRelease(id uint32) {
	for i := range s.texUnits {
		for j := range s.texUnits[i] {
			if s.texUnits[i][j] == id {
				s.texUnits[i][j] = invalidID
			}
		}
	}
	for i := range s.texStack {
		if s.texStack[i].id == id {
			s.texStack[i].id = 0
		}
	}
}

// NotifySamplerRelease invalidates all shadow entries that
// refer to a sampler about to be deleted.
func (s *StateManager) NotifySamplerRelease(id uint32) {
	for i := range s.samplers {
		if s.samplers[i] == id {
			s.samplers[i] = invalidID
		}
	}
}

// NotifyFramebufferRelease invalidates all shadow entries
// that refer to a framebuffer about to be deleted.
func (s *StateManager) NotifyFramebufferRelease(id uint32) {
	if s.drawFB == id {
		s.drawFB = invalidID
	}
	if s.readFB == id {
		s.readFB = invalidID
	}
	for i := range s.fbStack {
		if s.fbStack[i].id == id {
			s.fbStack[i].id = 0
		}
	}
}

// NotifyRenderbufferRelease invalidates the shadow entry of
// a renderbuffer about to be deleted.
func (s *StateManager) NotifyRenderbufferRelease(id uint32) {
	if s.renderbf == id {
		s.renderbf = invalidID
	}
	for i := range s.rbStack {
		if s.rbStack[i] == id {
			s.rbStack[i] = 0
		}
	}
}

// NotifyVertexArrayRelease invalidates the shadow entry of
// a vertex array about to be deleted.
func (s *StateManager) NotifyVertexArrayRelease(id uint32) {
	if s.vertexArr == id {
		s.vertexArr = invalidID
	}
}

// NotifyProgramRelease invalidates all shadow entries that
// refer to a program about to be deleted.
func (s *StateManager) NotifyProgramRelease(id uint32) {
	if s.program == id {
		s.program = invalidID
	}
	for i := range s.progStack {
		if s.progStack[i] == id {
			s.progStack[i] = 0
		}
	}
}

// SetColorMask sets the color write mask of every draw
// buffer, collapsing any per-buffer overrides.
func (s *StateManager) SetColorMask(r, g, b, a bool) {
	m := [4]bool{r, g, b, a}
	if !s.maskSplit && s.colorMask == m {
		return
	}
	s.colorMask = m
	for i := range s.colorMasks {
		s.colorMasks[i] = m
	}
	s.maskSplit = false
	s.fn.ColorMask(r, g, b, a)
}

// SetColorMaski sets the color write mask of one draw
// buffer.
func (s *StateManager) SetColorMaski(buf int, r, g, b, a bool) {
	m := [4]bool{r, g, b, a}
	if s.colorMasks[buf] == m {
		return
	}
	s.colorMasks[buf] = m
	s.maskSplit = false
	for i := range s.colorMasks {
		if s.colorMasks[i] != s.colorMask {
			s.maskSplit = true
			break
		}
	}
	s.fn.ColorMaski(buf, r, g, b, a)
}

// SetDepthMask sets the depth write mask.
func (s *StateManager) SetDepthMask(write bool) {
	if s.depthMask == write {
		return
	}
	s.depthMask = write
	s.fn.DepthMask(write)
}

// SetStencilMask sets the stencil write mask for both faces.
func (s *StateManager) SetStencilMask(mask uint32) {
	if s.stencilMask == mask {
		return
	}
	s.stencilMask = mask
	s.fn.StencilMaskSeparate(FRONT_AND_BACK, mask)
}

// SetClearColor sets the color clear value.
func (s *StateManager) SetClearColor(r, g, b, a float32) {
	c := [4]float32{r, g, b, a}
	if s.clearColor == c {
		return
	}
	s.clearColor = c
	s.fn.ClearColor(r, g, b, a)
}

// SetClearDepth sets the depth clear value.
func (s *StateManager) SetClearDepth(d float64) {
	if s.clearDepth == d {
		return
	}
	s.clearDepth = d
	s.fn.ClearDepth(d)
}

// SetClearStencil sets the stencil clear value.
func (s *StateManager) SetClearStencil(v int) {
	if s.clearStencil == v {
		return
	}
	s.clearStencil = v
	s.fn.ClearStencil(v)
}

// Clear clears the buffers selected by mask.
// Native clears are limited by the current write masks, so
// disabled channels are forced on around the clear and the
// configured masks restored afterwards. The pipeline's
// write masks are therefore unchanged by a clear.
func (s *StateManager) Clear(mask Enum) {
	colorMask := s.colorMask
	depthMask := s.depthMask
	stencilMask := s.stencilMask
	split := s.maskSplit
	var perBuf [][4]bool
	if split {
		perBuf = append(perBuf, s.colorMasks...)
	}
	if mask&COLOR_BUFFER_BIT != 0 {
		s.SetColorMask(true, true, true, true)
	}
	if mask&DEPTH_BUFFER_BIT != 0 {
		s.SetDepthMask(true)
	}
	if mask&STENCIL_BUFFER_BIT != 0 {
		s.SetStencilMask(^uint32(0))
	}
	s.fn.Clear(mask)
	s.SetColorMask(colorMask[0], colorMask[1], colorMask[2], colorMask[3])
	for i := range perBuf {
		s.SetColorMaski(i, perBuf[i][0], perBuf[i][1], perBuf[i][2], perBuf[i][3])
	}
	s.SetDepthMask(depthMask)
	s.SetStencilMask(stencilMask)
}

// ClearColorAttachment clears one color attachment of the
// bound draw framebuffer, forcing the full color write mask
// on for the clear and restoring the configured one.
func (s *StateManager) ClearColorAttachment(drawBuf int, rgba [4]float32) {
	m := s.colorMasks[drawBuf]
	s.SetColorMaski(drawBuf, true, true, true, true)
	s.fn.ClearBufferfv(COLOR, drawBuf, rgba)
	s.SetColorMaski(drawBuf, m[0], m[1], m[2], m[3])
}

// ClearDepthStencilAttachment clears the depth and/or
// stencil attachment of the bound draw framebuffer,
// forcing the write masks on for the clear and restoring
// the configured ones.
func (s *StateManager) ClearDepthStencilAttachment(depth, stencil bool, d float32, sv int) {
	dm, sm := s.depthMask, s.stencilMask
	switch {
	case depth && stencil:
		s.SetDepthMask(true)
		s.SetStencilMask(^uint32(0))
		s.fn.ClearBufferfi(DEPTH_STENCIL, 0, d, sv)
	case depth:
		s.SetDepthMask(true)
		s.fn.ClearBufferfv(DEPTH, 0, [4]float32{d})
	case stencil:
		s.SetStencilMask(^uint32(0))
		s.fn.ClearBufferiv(STENCIL, 0, [4]int32{int32(sv)})
	}
	s.SetDepthMask(dm)
	s.SetStencilMask(sm)
}

// SetRenderTarget tells the manager about the bounds and
// orientation of the current render target. flipY selects
// emulation of an upper-left origin: viewport rectangles
// are mirrored vertically and front faces inverted.
func (s *StateManager) SetRenderTarget(height int, flipY bool) {
	s.targetHeight = height
	if s.flipFaces != flipY {
		s.flipFaces = flipY
		s.emitFrontFace()
	}
	s.flipY = flipY
}

// SetViewports sets the bounds of count viewports starting
// at index 0, applying the Y flip when configured.
func (s *StateManager) SetViewports(vp []driver.Viewport) {
	for i := range vp {
		x, y := vp[i].X, vp[i].Y
		w, h := vp[i].Width, vp[i].Height
		if s.flipY {
			y = float32(s.targetHeight) - y - h
		}
		s.fn.ViewportIndexed(i, x, y, w, h)
		s.fn.DepthRangeIndexed(i, float64(vp[i].Znear), float64(vp[i].Zfar))
	}
}

// SetScissors sets the rectangles of count scissors
// starting at index 0, applying the Y flip when configured.
func (s *StateManager) SetScissors(sciss []driver.Scissor) {
	for i := range sciss {
		x, y := sciss[i].X, sciss[i].Y
		w, h := sciss[i].Width, sciss[i].Height
		if s.flipY {
			y = s.targetHeight - y - h
		}
		s.fn.ScissorIndexed(i, x, y, w, h)
	}
}

// SetFrontFace sets the winding order that selects front
// faces. The emitted value is inverted while a flipped
// render target is active.
func (s *StateManager) SetFrontFace(ccw bool) {
	if s.frontCCW == ccw {
		return
	}
	s.frontCCW = ccw
	s.emitFrontFace()
}

func (s *StateManager) emitFrontFace() {
	ccw := s.frontCCW
	if s.flipFaces {
		ccw = !ccw
	}
	if ccw {
		s.fn.FrontFace(CCW)
	} else {
		s.fn.FrontFace(CW)
	}
}

// SetLineWidth sets the rasterization line width, clamped
// to the supported range.
func (s *StateManager) SetLineWidth(w float32) {
	w = math32.Max(s.lim.lineWidthRange[0], math32.Min(s.lim.lineWidthRange[1], w))
	if s.lineWidth == w {
		return
	}
	s.lineWidth = w
	s.fn.LineWidth(w)
}

// SetBlendColor sets the constant blend color.
func (s *StateManager) SetBlendColor(r, g, b, a float32) {
	c := [4]float32{r, g, b, a}
	if s.blendColor == c {
		return
	}
	s.blendColor = c
	s.fn.BlendColor(r, g, b, a)
}

// SetStencilFunc sets the stencil comparison of one face
// and records it so a later reference change can reissue it.
func (s *StateManager) SetStencilFunc(face Enum, fn Enum, ref int, mask uint32) {
	i := 0
	if face == BACK {
		i = 1
	}
	s.stencilFunc[i] = fn
	s.stencilFuncMask[i] = mask
	s.stencilRef = ref
	s.fn.StencilFuncSeparate(face, fn, ref, mask)
}

// SetStencilRef updates the stencil reference value,
// reissuing the recorded comparison state of both faces.
func (s *StateManager) SetStencilRef(ref int) {
	if s.stencilRef == ref {
		return
	}
	s.stencilRef = ref
	if s.stencilFunc[0] == s.stencilFunc[1] && s.stencilFuncMask[0] == s.stencilFuncMask[1] {
		s.fn.StencilFuncSeparate(FRONT_AND_BACK, s.stencilFunc[0], ref, s.stencilFuncMask[0])
		return
	}
	s.fn.StencilFuncSeparate(FRONT, s.stencilFunc[0], ref, s.stencilFuncMask[0])
	s.fn.StencilFuncSeparate(BACK, s.stencilFunc[1], ref, s.stencilFuncMask[1])
}
