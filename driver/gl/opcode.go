// Copyright 2024 RayGyoe. All rights reserved.

package gl

import "math"

// opcode tags one recorded command in a command buffer's
// byte stream. The tag is a single byte followed by the
// command's payload, so the stream can only be walked
// front to back.
type opcode uint8

const (
	opBeginPass opcode = iota + 1
	opEndPass
	opSetPipeline
	opSetViewport
	opSetScissor
	opSetBlendColor
	opSetStencilRef
	opSetResourceHeap
	opSetVertexBuf
	opSetIndexBuf
	opDraw
	opDrawIndexed
	opDispatch
	opCopyBuffer
	opCopyImage
	opCopyBufToImg
	opCopyImgToBuf
	opFill
	opGenMips
	opBarrier
	opPushDebugGroup
	opPopDebugGroup
)

// cmdStream is the encoded form of a command buffer.
// Commands are appended during recording and replayed in
// the same order. Go object references are kept out of the
// byte stream; payloads refer to them by index into refs.
type cmdStream struct {
	buf  []byte
	refs []any
}

func (s *cmdStream) reset() {
	s.buf = s.buf[:0]
	for i := range s.refs {
		s.refs[i] = nil
	}
	s.refs = s.refs[:0]
}

func (s *cmdStream) op(o opcode) { s.buf = append(s.buf, byte(o)) }

func (s *cmdStream) u32(v uint32) {
	s.buf = append(s.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (s *cmdStream) i32(v int) { s.u32(uint32(int32(v))) }

func (s *cmdStream) i64(v int64) {
	s.u32(uint32(v))
	s.u32(uint32(v >> 32))
}

func (s *cmdStream) f32(v float32) { s.u32(math.Float32bits(v)) }

func (s *cmdStream) ref(v any) {
	s.u32(uint32(len(s.refs)))
	s.refs = append(s.refs, v)
}

func (s *cmdStream) str(v string) {
	s.i32(len(v))
	s.buf = append(s.buf, v...)
}

// cmdReader walks an encoded stream front to back.
// Reads must mirror the writes of the recording side
// exactly; the stream carries no self-description.
type cmdReader struct {
	s   *cmdStream
	off int
}

func (r *cmdReader) more() bool { return r.off < len(r.s.buf) }

func (r *cmdReader) op() opcode {
	o := opcode(r.s.buf[r.off])
	r.off++
	return o
}

func (r *cmdReader) u32() uint32 {
	b := r.s.buf[r.off:]
	r.off += 4
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (r *cmdReader) i32() int { return int(int32(r.u32())) }

func (r *cmdReader) i64() int64 {
	lo := uint64(r.u32())
	hi := uint64(r.u32())
	return int64(lo | hi<<32)
}

func (r *cmdReader) f32() float32 { return math.Float32frombits(r.u32()) }

func (r *cmdReader) ref() any { return r.s.refs[r.u32()] }

func (r *cmdReader) str() string {
	n := r.i32()
	v := string(r.s.buf[r.off : r.off+n])
	r.off += n
	return v
}
