package bridge

import (
	"github.com/roach88/glbridge/internal/calls"
	"github.com/roach88/glbridge/internal/gl"
)

// DrawingBufferWidth reads through to the real context in local mode and
// reports the creation width in bridged mode. It is never intercepted.
func (p *Proxy) DrawingBufferWidth() int {
	if p.passThrough {
		return p.real.DrawingBufferWidth()
	}
	return p.width
}

// DrawingBufferHeight is the height counterpart of DrawingBufferWidth.
func (p *Proxy) DrawingBufferHeight() int {
	if p.passThrough {
		return p.real.DrawingBufferHeight()
	}
	return p.height
}

func (p *Proxy) CreateBuffer() (*gl.Handle, error) {
	return p.create(calls.CreateBuffer, func() (*gl.Handle, error) { return p.real.CreateBuffer() })
}

func (p *Proxy) CreateFramebuffer() (*gl.Handle, error) {
	return p.create(calls.CreateFramebuffer, func() (*gl.Handle, error) { return p.real.CreateFramebuffer() })
}

func (p *Proxy) CreateProgram() (*gl.Handle, error) {
	return p.create(calls.CreateProgram, func() (*gl.Handle, error) { return p.real.CreateProgram() })
}

func (p *Proxy) CreateRenderbuffer() (*gl.Handle, error) {
	return p.create(calls.CreateRenderbuffer, func() (*gl.Handle, error) { return p.real.CreateRenderbuffer() })
}

func (p *Proxy) CreateShader(shaderType gl.Enum) (*gl.Handle, error) {
	return p.create(calls.CreateShader, func() (*gl.Handle, error) { return p.real.CreateShader(shaderType) }, shaderType)
}

func (p *Proxy) CreateTexture() (*gl.Handle, error) {
	return p.create(calls.CreateTexture, func() (*gl.Handle, error) { return p.real.CreateTexture() })
}

func (p *Proxy) GetUniformLocation(program *gl.Handle, name string) (*gl.Handle, error) {
	return p.create(calls.GetUniformLocation, func() (*gl.Handle, error) { return p.real.GetUniformLocation(program, name) }, program, name)
}

func (p *Proxy) GetActiveAttrib(program *gl.Handle, index uint32) (*gl.ActiveInfo, error) {
	return query(p, calls.GetActiveAttrib, func() (*gl.ActiveInfo, error) { return p.real.GetActiveAttrib(program, index) }, program, index)
}

func (p *Proxy) GetActiveUniform(program *gl.Handle, index uint32) (*gl.ActiveInfo, error) {
	return query(p, calls.GetActiveUniform, func() (*gl.ActiveInfo, error) { return p.real.GetActiveUniform(program, index) }, program, index)
}

func (p *Proxy) GetAttribLocation(program *gl.Handle, name string) (int, error) {
	return query(p, calls.GetAttribLocation, func() (int, error) { return p.real.GetAttribLocation(program, name) }, program, name)
}

func (p *Proxy) GetParameter(pname gl.Enum) (any, error) {
	return query(p, calls.GetParameter, func() (any, error) { return p.real.GetParameter(pname) }, pname)
}

func (p *Proxy) GetProgramParameter(program *gl.Handle, pname gl.Enum) (any, error) {
	return query(p, calls.GetProgramParameter, func() (any, error) { return p.real.GetProgramParameter(program, pname) }, program, pname)
}

func (p *Proxy) GetShaderInfoLog(shader *gl.Handle) (string, error) {
	return query(p, calls.GetShaderInfoLog, func() (string, error) { return p.real.GetShaderInfoLog(shader) }, shader)
}

func (p *Proxy) GetShaderParameter(shader *gl.Handle, pname gl.Enum) (any, error) {
	return query(p, calls.GetShaderParameter, func() (any, error) { return p.real.GetShaderParameter(shader, pname) }, shader, pname)
}

func (p *Proxy) GetShaderPrecisionFormat(shaderType, precisionType gl.Enum) (*gl.ShaderPrecisionFormat, error) {
	return query(p, calls.GetShaderPrecisionFormat, func() (*gl.ShaderPrecisionFormat, error) {
		return p.real.GetShaderPrecisionFormat(shaderType, precisionType)
	}, shaderType, precisionType)
}

func (p *Proxy) GetExtension(name string) (any, error) {
	return query(p, calls.GetExtension, func() (any, error) { return p.real.GetExtension(name) }, name)
}

func (p *Proxy) ActiveTexture(texture gl.Enum) error {
	return p.exec(calls.ActiveTexture, func() error { return p.real.ActiveTexture(texture) }, texture)
}

func (p *Proxy) AttachShader(program, shader *gl.Handle) error {
	return p.exec(calls.AttachShader, func() error { return p.real.AttachShader(program, shader) }, program, shader)
}

func (p *Proxy) BindAttribLocation(program *gl.Handle, index uint32, name string) error {
	return p.exec(calls.BindAttribLocation, func() error { return p.real.BindAttribLocation(program, index, name) }, program, index, name)
}

func (p *Proxy) BindBuffer(target gl.Enum, buffer *gl.Handle) error {
	return p.exec(calls.BindBuffer, func() error { return p.real.BindBuffer(target, buffer) }, target, buffer)
}

func (p *Proxy) BindFramebuffer(target gl.Enum, framebuffer *gl.Handle) error {
	return p.exec(calls.BindFramebuffer, func() error { return p.real.BindFramebuffer(target, framebuffer) }, target, framebuffer)
}

func (p *Proxy) BindRenderbuffer(target gl.Enum, renderbuffer *gl.Handle) error {
	return p.exec(calls.BindRenderbuffer, func() error { return p.real.BindRenderbuffer(target, renderbuffer) }, target, renderbuffer)
}

func (p *Proxy) BindTexture(target gl.Enum, texture *gl.Handle) error {
	return p.exec(calls.BindTexture, func() error { return p.real.BindTexture(target, texture) }, target, texture)
}

func (p *Proxy) BlendFunc(sfactor, dfactor gl.Enum) error {
	return p.exec(calls.BlendFunc, func() error { return p.real.BlendFunc(sfactor, dfactor) }, sfactor, dfactor)
}

func (p *Proxy) BufferData(target gl.Enum, data any, usage gl.Enum) error {
	return p.exec(calls.BufferData, func() error { return p.real.BufferData(target, data, usage) }, target, data, usage)
}

func (p *Proxy) BufferSubData(target gl.Enum, offset int, data any) error {
	return p.exec(calls.BufferSubData, func() error { return p.real.BufferSubData(target, offset, data) }, target, offset, data)
}

func (p *Proxy) Clear(mask gl.Bitfield) error {
	return p.exec(calls.Clear, func() error { return p.real.Clear(mask) }, mask)
}

func (p *Proxy) ClearColor(red, green, blue, alpha float32) error {
	return p.exec(calls.ClearColor, func() error { return p.real.ClearColor(red, green, blue, alpha) }, red, green, blue, alpha)
}

func (p *Proxy) ClearDepth(depth float32) error {
	return p.exec(calls.ClearDepth, func() error { return p.real.ClearDepth(depth) }, depth)
}

func (p *Proxy) CompileShader(shader *gl.Handle) error {
	return p.exec(calls.CompileShader, func() error { return p.real.CompileShader(shader) }, shader)
}

func (p *Proxy) CullFace(mode gl.Enum) error {
	return p.exec(calls.CullFace, func() error { return p.real.CullFace(mode) }, mode)
}

func (p *Proxy) DeleteBuffer(buffer *gl.Handle) error {
	return p.exec(calls.DeleteBuffer, func() error { return p.real.DeleteBuffer(buffer) }, buffer)
}

func (p *Proxy) DeleteFramebuffer(framebuffer *gl.Handle) error {
	return p.exec(calls.DeleteFramebuffer, func() error { return p.real.DeleteFramebuffer(framebuffer) }, framebuffer)
}

func (p *Proxy) DeleteProgram(program *gl.Handle) error {
	return p.exec(calls.DeleteProgram, func() error { return p.real.DeleteProgram(program) }, program)
}

func (p *Proxy) DeleteRenderbuffer(renderbuffer *gl.Handle) error {
	return p.exec(calls.DeleteRenderbuffer, func() error { return p.real.DeleteRenderbuffer(renderbuffer) }, renderbuffer)
}

func (p *Proxy) DeleteShader(shader *gl.Handle) error {
	return p.exec(calls.DeleteShader, func() error { return p.real.DeleteShader(shader) }, shader)
}

func (p *Proxy) DeleteTexture(texture *gl.Handle) error {
	return p.exec(calls.DeleteTexture, func() error { return p.real.DeleteTexture(texture) }, texture)
}

func (p *Proxy) DepthFunc(fn gl.Enum) error {
	return p.exec(calls.DepthFunc, func() error { return p.real.DepthFunc(fn) }, fn)
}

func (p *Proxy) DepthMask(flag bool) error {
	return p.exec(calls.DepthMask, func() error { return p.real.DepthMask(flag) }, flag)
}

func (p *Proxy) Disable(capability gl.Enum) error {
	return p.exec(calls.Disable, func() error { return p.real.Disable(capability) }, capability)
}

func (p *Proxy) DisableVertexAttribArray(index uint32) error {
	return p.exec(calls.DisableVertexAttribArray, func() error { return p.real.DisableVertexAttribArray(index) }, index)
}

func (p *Proxy) DrawArrays(mode gl.Enum, first, count int) error {
	return p.exec(calls.DrawArrays, func() error { return p.real.DrawArrays(mode, first, count) }, mode, first, count)
}

func (p *Proxy) DrawElements(mode gl.Enum, count int, typ gl.Enum, offset int) error {
	return p.exec(calls.DrawElements, func() error { return p.real.DrawElements(mode, count, typ, offset) }, mode, count, typ, offset)
}

func (p *Proxy) Enable(capability gl.Enum) error {
	return p.exec(calls.Enable, func() error { return p.real.Enable(capability) }, capability)
}

func (p *Proxy) EnableVertexAttribArray(index uint32) error {
	return p.exec(calls.EnableVertexAttribArray, func() error { return p.real.EnableVertexAttribArray(index) }, index)
}

func (p *Proxy) Finish() error {
	return p.exec(calls.Finish, func() error { return p.real.Finish() })
}

func (p *Proxy) Flush() error {
	return p.exec(calls.Flush, func() error { return p.real.Flush() })
}

func (p *Proxy) FramebufferRenderbuffer(target, attachment, renderbufferTarget gl.Enum, renderbuffer *gl.Handle) error {
	return p.exec(calls.FramebufferRenderbuffer, func() error {
		return p.real.FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer)
	}, target, attachment, renderbufferTarget, renderbuffer)
}

func (p *Proxy) FramebufferTexture2D(target, attachment, textureTarget gl.Enum, texture *gl.Handle, level int) error {
	return p.exec(calls.FramebufferTexture2D, func() error { return p.real.FramebufferTexture2D(target, attachment, textureTarget, texture, level) }, target, attachment, textureTarget, texture, level)
}

func (p *Proxy) GenerateMipmap(target gl.Enum) error {
	return p.exec(calls.GenerateMipmap, func() error { return p.real.GenerateMipmap(target) }, target)
}

func (p *Proxy) LinkProgram(program *gl.Handle) error {
	return p.exec(calls.LinkProgram, func() error { return p.real.LinkProgram(program) }, program)
}

func (p *Proxy) PixelStorei(pname gl.Enum, param int) error {
	return p.exec(calls.PixelStorei, func() error { return p.real.PixelStorei(pname, param) }, pname, param)
}

func (p *Proxy) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) error {
	return p.exec(calls.RenderbufferStorage, func() error { return p.real.RenderbufferStorage(target, internalFormat, width, height) }, target, internalFormat, width, height)
}

func (p *Proxy) Scissor(x, y, width, height int) error {
	return p.exec(calls.Scissor, func() error { return p.real.Scissor(x, y, width, height) }, x, y, width, height)
}

func (p *Proxy) ShaderSource(shader *gl.Handle, source string) error {
	return p.exec(calls.ShaderSource, func() error { return p.real.ShaderSource(shader, source) }, shader, source)
}

func (p *Proxy) TexParameterf(target, pname gl.Enum, param float32) error {
	return p.exec(calls.TexParameterf, func() error { return p.real.TexParameterf(target, pname, param) }, target, pname, param)
}

func (p *Proxy) TexParameteri(target, pname gl.Enum, param int) error {
	return p.exec(calls.TexParameteri, func() error { return p.real.TexParameteri(target, pname, param) }, target, pname, param)
}

func (p *Proxy) Uniform1f(location *gl.Handle, x float32) error {
	return p.exec(calls.Uniform1f, func() error { return p.real.Uniform1f(location, x) }, location, x)
}

func (p *Proxy) Uniform1i(location *gl.Handle, x int) error {
	return p.exec(calls.Uniform1i, func() error { return p.real.Uniform1i(location, x) }, location, x)
}

func (p *Proxy) Uniform2f(location *gl.Handle, x, y float32) error {
	return p.exec(calls.Uniform2f, func() error { return p.real.Uniform2f(location, x, y) }, location, x, y)
}

func (p *Proxy) Uniform3f(location *gl.Handle, x, y, z float32) error {
	return p.exec(calls.Uniform3f, func() error { return p.real.Uniform3f(location, x, y, z) }, location, x, y, z)
}

func (p *Proxy) Uniform4f(location *gl.Handle, x, y, z, w float32) error {
	return p.exec(calls.Uniform4f, func() error { return p.real.Uniform4f(location, x, y, z, w) }, location, x, y, z, w)
}

func (p *Proxy) Uniform1fv(location *gl.Handle, v []float32) error {
	return p.exec(calls.Uniform1fv, func() error { return p.real.Uniform1fv(location, v) }, location, v)
}

func (p *Proxy) Uniform3fv(location *gl.Handle, v []float32) error {
	return p.exec(calls.Uniform3fv, func() error { return p.real.Uniform3fv(location, v) }, location, v)
}

func (p *Proxy) Uniform4fv(location *gl.Handle, v []float32) error {
	return p.exec(calls.Uniform4fv, func() error { return p.real.Uniform4fv(location, v) }, location, v)
}

func (p *Proxy) UniformMatrix3fv(location *gl.Handle, transpose bool, v []float32) error {
	return p.exec(calls.UniformMatrix3fv, func() error { return p.real.UniformMatrix3fv(location, transpose, v) }, location, transpose, v)
}

func (p *Proxy) UniformMatrix4fv(location *gl.Handle, transpose bool, v []float32) error {
	return p.exec(calls.UniformMatrix4fv, func() error { return p.real.UniformMatrix4fv(location, transpose, v) }, location, transpose, v)
}

func (p *Proxy) UseProgram(program *gl.Handle) error {
	return p.exec(calls.UseProgram, func() error { return p.real.UseProgram(program) }, program)
}

func (p *Proxy) VertexAttribPointer(index uint32, size int, typ gl.Enum, normalized bool, stride, offset int) error {
	return p.exec(calls.VertexAttribPointer, func() error { return p.real.VertexAttribPointer(index, size, typ, normalized, stride, offset) }, index, size, typ, normalized, stride, offset)
}

func (p *Proxy) Viewport(x, y, width, height int) error {
	return p.exec(calls.Viewport, func() error { return p.real.Viewport(x, y, width, height) }, x, y, width, height)
}

// TexImage2D accepts both upload shapes; see gl.Context.
func (p *Proxy) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, rest ...any) error {
	args := append([]any{target, level, internalFormat}, rest...)
	return p.exec(calls.TexImage2D, func() error {
		return p.real.TexImage2D(target, level, internalFormat, rest...)
	}, args...)
}
