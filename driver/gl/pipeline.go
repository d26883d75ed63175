// Copyright 2024 RayGyoe. All rights reserved.

package gl

import (
	"errors"
	"log"

	"github.com/RayGyoe/LLGL/driver"
)

// shaderCode implements driver.ShaderCode.
// It holds GLSL source; compilation is deferred to pipeline
// creation, when the stage is known.
type shaderCode struct {
	src string
}

// NewShaderCode creates a new shader code object.
func (g *GPU) NewShaderCode(data []byte) (driver.ShaderCode, error) {
	if len(data) == 0 {
		return nil, driver.ErrInvalidShader
	}
	return &shaderCode{src: string(data)}, nil
}

// Destroy destroys the shader code.
func (c *shaderCode) Destroy() { *c = shaderCode{} }

// compileShader compiles a single shader stage.
func compileShader(fn Funcs, typ Enum, src string) (uint32, error) {
	s := fn.CreateShader(typ)
	if s == 0 {
		return 0, driver.ErrFatal
	}
	fn.ShaderSource(s, src)
	fn.CompileShader(s)
	if fn.GetShaderi(s, COMPILE_STATUS) == 0 {
		log.Printf("[!] gl: shader compilation failed:\n%s", fn.GetShaderInfoLog(s))
		fn.DeleteShader(s)
		return 0, errors.New("gl: shader compilation failed")
	}
	return s, nil
}

// linkProgram links a program from compiled stages.
// The shader objects are deleted in either case.
func linkProgram(fn Funcs, shd ...uint32) (uint32, error) {
	p := fn.CreateProgram()
	if p == 0 {
		return 0, driver.ErrFatal
	}
	for _, s := range shd {
		fn.AttachShader(p, s)
	}
	fn.LinkProgram(p)
	for _, s := range shd {
		fn.DeleteShader(s)
	}
	if fn.GetProgrami(p, LINK_STATUS) == 0 {
		log.Printf("[!] gl: program linking failed:\n%s", fn.GetProgramInfoLog(p))
		fn.DeleteProgram(p)
		return 0, errors.New("gl: program linking failed")
	}
	return p, nil
}

// convTopology converts a driver.Topology to a GL primitive
// mode.
func convTopology(t driver.Topology) Enum {
	switch t {
	case driver.TPoint:
		return POINTS
	case driver.TLine:
		return LINES
	case driver.TLnStrip:
		return LINE_STRIP
	case driver.TTriStrip:
		return TRIANGLE_STRIP
	default:
		return TRIANGLES
	}
}

func convStencilOp(op driver.StencilOp) Enum {
	switch op {
	case driver.SZero:
		return ZERO
	case driver.SReplace:
		return REPLACE
	case driver.SIncClamp:
		return INCR
	case driver.SDecClamp:
		return DECR
	case driver.SInvert:
		return INVERT
	case driver.SIncWrap:
		return INCR_WRAP
	case driver.SDecWrap:
		return DECR_WRAP
	default:
		return KEEP
	}
}

func convBlendOp(op driver.BlendOp) Enum {
	switch op {
	case driver.BSubtract:
		return FUNC_SUBTRACT
	case driver.BRevSubtract:
		return FUNC_REVERSE_SUBTRACT
	case driver.BMin:
		return MIN
	case driver.BMax:
		return MAX
	default:
		return FUNC_ADD
	}
}

func convBlendFac(f driver.BlendFac) Enum {
	switch f {
	case driver.BZero:
		return ZERO
	case driver.BSrcColor:
		return SRC_COLOR
	case driver.BInvSrcColor:
		return ONE_MINUS_SRC_COLOR
	case driver.BSrcAlpha:
		return SRC_ALPHA
	case driver.BInvSrcAlpha:
		return ONE_MINUS_SRC_ALPHA
	case driver.BDstColor:
		return DST_COLOR
	case driver.BInvDstColor:
		return ONE_MINUS_DST_COLOR
	case driver.BDstAlpha:
		return DST_ALPHA
	case driver.BInvDstAlpha:
		return ONE_MINUS_DST_ALPHA
	case driver.BSrcAlphaSaturated:
		return SRC_ALPHA_SATURATE
	case driver.BBlendColor:
		return CONSTANT_COLOR
	case driver.BInvBlendColor:
		return ONE_MINUS_CONSTANT_COLOR
	default:
		return ONE
	}
}

// convVertexFmt converts a driver.VertexFmt to a component
// count and type.
func convVertexFmt(f driver.VertexFmt) (size int, typ Enum) {
	switch f {
	case driver.Float32x4:
		return 4, FLOAT
	case driver.Float32x3:
		return 3, FLOAT
	case driver.Float32x2:
		return 2, FLOAT
	case driver.Float32:
		return 1, FLOAT
	case driver.Int32x4:
		return 4, INT
	case driver.Int32x3:
		return 3, INT
	case driver.Int32x2:
		return 2, INT
	default:
		return 1, INT
	}
}

// pipeline implements driver.Pipeline.
// A graphics pipeline bundles a linked program, a VAO
// holding the vertex input layout and the fixed-function
// state; binding it drives everything through the state
// manager so redundant switches are dropped.
type pipeline struct {
	s       *StateManager
	prog    uint32
	vao     uint32
	compute bool

	topology Enum
	strides  []int

	raster driver.RasterState
	ds     driver.DSState
	blend  driver.BlendState
}

// NewPipeline creates a new pipeline.
func (g *GPU) NewPipeline(state any) (driver.Pipeline, error) {
	switch st := state.(type) {
	case *driver.GraphState:
		return g.newGraphics(st)
	case *driver.CompState:
		return g.newCompute(st)
	default:
		panic("gl: state is neither *driver.GraphState nor *driver.CompState")
	}
}

func (g *GPU) newGraphics(st *driver.GraphState) (driver.Pipeline, error) {
	if st.VertFunc.Code == nil {
		return nil, driver.ErrInvalidShader
	}
	fn := g.state.fn
	vs, err := compileShader(fn, VERTEX_SHADER, st.VertFunc.Code.(*shaderCode).src)
	if err != nil {
		return nil, err
	}
	shd := []uint32{vs}
	if st.FragFunc.Code != nil {
		fs, err := compileShader(fn, FRAGMENT_SHADER, st.FragFunc.Code.(*shaderCode).src)
		if err != nil {
			fn.DeleteShader(vs)
			return nil, err
		}
		shd = append(shd, fs)
	}
	prog, err := linkProgram(fn, shd...)
	if err != nil {
		return nil, err
	}
	vao := fn.CreateVertexArray()
	if vao == 0 {
		fn.DeleteProgram(prog)
		return nil, driver.ErrFatal
	}
	g.state.BindVertexArray(vao)
	var maxNr int
	for i := range st.Input {
		if st.Input[i].Nr > maxNr {
			maxNr = st.Input[i].Nr
		}
	}
	strides := make([]int, maxNr+1)
	for i := range st.Input {
		in := &st.Input[i]
		size, typ := convVertexFmt(in.Format)
		fn.EnableVertexAttribArray(in.Nr)
		fn.VertexAttribFormat(in.Nr, size, typ, false, 0)
		fn.VertexAttribBinding(in.Nr, in.Nr)
		stride := in.Stride
		if stride == 0 {
			stride = in.Format.Size()
		}
		strides[in.Nr] = stride
	}
	pl := &pipeline{
		s:        g.state,
		prog:     prog,
		vao:      vao,
		topology: convTopology(st.Topology),
		strides:  strides,
		raster:   st.Raster,
		ds:       st.DS,
	}
	pl.blend.IndependentBlend = st.Blend.IndependentBlend
	pl.blend.Color = make([]driver.ColorBlend, len(st.Blend.Color))
	copy(pl.blend.Color, st.Blend.Color)
	return pl, nil
}

func (g *GPU) newCompute(st *driver.CompState) (driver.Pipeline, error) {
	if st.Func.Code == nil {
		// Reject before any native object is created.
		return nil, driver.ErrInvalidShader
	}
	fn := g.state.fn
	cs, err := compileShader(fn, COMPUTE_SHADER, st.Func.Code.(*shaderCode).src)
	if err != nil {
		return nil, err
	}
	prog, err := linkProgram(fn, cs)
	if err != nil {
		return nil, err
	}
	return &pipeline{s: g.state, prog: prog, compute: true}, nil
}

// bind makes the pipeline's state current.
func (pl *pipeline) bind() {
	s := pl.s
	s.UseProgram(pl.prog)
	if pl.compute {
		return
	}
	s.BindVertexArray(pl.vao)

	r := &pl.raster
	s.SetFrontFace(!r.Clockwise)
	switch r.Cull {
	case driver.CNone:
		s.SetCapability(CULL_FACE, false)
	case driver.CFront:
		s.SetCapability(CULL_FACE, true)
		s.fn.CullFace(FRONT)
	case driver.CBack:
		s.SetCapability(CULL_FACE, true)
		s.fn.CullFace(BACK)
	}
	if r.Fill == driver.FLines {
		s.fn.PolygonMode(LINE)
		s.SetLineWidth(r.LineWidth)
	} else {
		s.fn.PolygonMode(FILL)
	}
	s.SetCapability(POLYGON_OFFSET_FILL, r.DepthBias)
	s.SetCapability(POLYGON_OFFSET_LINE, r.DepthBias)
	if r.DepthBias {
		s.fn.PolygonOffset(r.BiasSlope, r.BiasValue)
	}

	d := &pl.ds
	s.SetCapability(DEPTH_TEST, d.DepthTest)
	if d.DepthTest {
		s.fn.DepthFunc(convCmpFunc(d.DepthCmp))
	}
	s.SetDepthMask(d.DepthWrite)
	s.SetCapability(STENCIL_TEST, d.StencilTest)
	if d.StencilTest {
		f, b := &d.Front, &d.Back
		s.SetStencilFunc(FRONT, convCmpFunc(f.Cmp), s.stencilRef, f.ReadMask)
		s.SetStencilFunc(BACK, convCmpFunc(b.Cmp), s.stencilRef, b.ReadMask)
		s.fn.StencilOpSeparate(FRONT, convStencilOp(f.FailOp), convStencilOp(f.DepthFail), convStencilOp(f.PassOp))
		s.fn.StencilOpSeparate(BACK, convStencilOp(b.FailOp), convStencilOp(b.DepthFail), convStencilOp(b.PassOp))
		s.fn.StencilMaskSeparate(FRONT, f.WriteMask)
		s.fn.StencilMaskSeparate(BACK, b.WriteMask)
		s.stencilMask = f.WriteMask
	}

	bl := &pl.blend
	var enable bool
	for i := range bl.Color {
		if bl.Color[i].Blend {
			enable = true
		}
	}
	s.SetCapability(BLEND, enable)
	if len(bl.Color) > 0 {
		if bl.IndependentBlend {
			for i := range bl.Color {
				pl.bindColorBlend(i, &bl.Color[i])
			}
		} else {
			c := &bl.Color[0]
			if c.Blend {
				s.fn.BlendEquationSeparate(convBlendOp(c.Op[0]), convBlendOp(c.Op[1]))
				s.fn.BlendFuncSeparate(convBlendFac(c.SrcFac[0]), convBlendFac(c.DstFac[0]), convBlendFac(c.SrcFac[1]), convBlendFac(c.DstFac[1]))
			}
			m := c.WriteMask
			s.SetColorMask(m&driver.CRed != 0, m&driver.CGreen != 0, m&driver.CBlue != 0, m&driver.CAlpha != 0)
		}
	}
}

func (pl *pipeline) bindColorBlend(i int, c *driver.ColorBlend) {
	s := pl.s
	if c.Blend {
		s.fn.BlendEquationSeparatei(i, convBlendOp(c.Op[0]), convBlendOp(c.Op[1]))
		s.fn.BlendFuncSeparatei(i, convBlendFac(c.SrcFac[0]), convBlendFac(c.DstFac[0]), convBlendFac(c.SrcFac[1]), convBlendFac(c.DstFac[1]))
	}
	m := c.WriteMask
	s.SetColorMaski(i, m&driver.CRed != 0, m&driver.CGreen != 0, m&driver.CBlue != 0, m&driver.CAlpha != 0)
}

// Destroy destroys the pipeline.
func (pl *pipeline) Destroy() {
	if pl.s != nil {
		pl.s.NotifyProgramRelease(pl.prog)
		pl.s.fn.DeleteProgram(pl.prog)
		if pl.vao != 0 {
			pl.s.NotifyVertexArrayRelease(pl.vao)
			pl.s.fn.DeleteVertexArray(pl.vao)
		}
	}
	*pl = pipeline{}
}
