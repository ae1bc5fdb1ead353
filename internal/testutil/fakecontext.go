package testutil

import (
	"sync"

	"github.com/roach88/glbridge/internal/gl"
)

// FakeCall is one call received by a FakeContext.
type FakeCall struct {
	Name string
	Args []any
}

// FakeContext is an in-memory gl.Context that records calls and answers
// queries from canned results. Creation calls return native handles
// numbered from 1 in creation order.
//
// Thread-safety: all methods are safe for concurrent use.
type FakeContext struct {
	Width, Height int

	mu      sync.Mutex
	calls   []FakeCall
	results map[string]any
	errs    map[string]error
	nils    map[string]bool
	native  uint32
}

var (
	_ gl.Context = (*FakeContext)(nil)
	_ gl.Invoker = (*FakeContext)(nil)
)

// NewFakeContext creates a fake with the given drawing buffer size.
func NewFakeContext(width, height int) *FakeContext {
	return &FakeContext{
		Width:   width,
		Height:  height,
		results: make(map[string]any),
		errs:    make(map[string]error),
		nils:    make(map[string]bool),
	}
}

// SetResult sets the value returned by the named call.
func (f *FakeContext) SetResult(name string, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results[name] = v
}

// SetError makes the named call fail.
func (f *FakeContext) SetError(name string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[name] = err
}

// SetNilHandle makes the named creation call return a nil handle, as
// getUniformLocation does for an inactive uniform.
func (f *FakeContext) SetNilHandle(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nils[name] = true
}

// Calls returns the calls received so far.
func (f *FakeContext) Calls() []FakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FakeCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// Names returns the names of the calls received so far.
func (f *FakeContext) Names() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Name
	}
	return out
}

func (f *FakeContext) record(name string, args ...any) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, FakeCall{Name: name, Args: args})
	if err := f.errs[name]; err != nil {
		return nil, err
	}
	return f.results[name], nil
}

func (f *FakeContext) create(kind gl.Kind, name string, args ...any) (*gl.Handle, error) {
	if _, err := f.record(name, args...); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nils[name] {
		return nil, nil
	}
	f.native++
	return gl.NewNativeHandle(kind, f.native), nil
}

// Invoke implements gl.Invoker for calls outside the declared surface.
func (f *FakeContext) Invoke(name string, args []any) (any, error) {
	return f.record(name, args...)
}

func (f *FakeContext) DrawingBufferWidth() int  { return f.Width }
func (f *FakeContext) DrawingBufferHeight() int { return f.Height }

func (f *FakeContext) CreateBuffer() (*gl.Handle, error) {
	return f.create(gl.KindBuffer, "createBuffer")
}

func (f *FakeContext) CreateFramebuffer() (*gl.Handle, error) {
	return f.create(gl.KindFramebuffer, "createFramebuffer")
}

func (f *FakeContext) CreateProgram() (*gl.Handle, error) {
	return f.create(gl.KindProgram, "createProgram")
}

func (f *FakeContext) CreateRenderbuffer() (*gl.Handle, error) {
	return f.create(gl.KindRenderbuffer, "createRenderbuffer")
}

func (f *FakeContext) CreateShader(shaderType gl.Enum) (*gl.Handle, error) {
	return f.create(gl.KindShader, "createShader", shaderType)
}

func (f *FakeContext) CreateTexture() (*gl.Handle, error) {
	return f.create(gl.KindTexture, "createTexture")
}

func (f *FakeContext) GetUniformLocation(program *gl.Handle, name string) (*gl.Handle, error) {
	return f.create(gl.KindUniformLocation, "getUniformLocation", program, name)
}

func (f *FakeContext) GetActiveAttrib(program *gl.Handle, index uint32) (*gl.ActiveInfo, error) {
	res, err := f.record("getActiveAttrib", program, index)
	v, _ := res.(*gl.ActiveInfo)
	return v, err
}

func (f *FakeContext) GetActiveUniform(program *gl.Handle, index uint32) (*gl.ActiveInfo, error) {
	res, err := f.record("getActiveUniform", program, index)
	v, _ := res.(*gl.ActiveInfo)
	return v, err
}

func (f *FakeContext) GetAttribLocation(program *gl.Handle, name string) (int, error) {
	res, err := f.record("getAttribLocation", program, name)
	v, _ := res.(int)
	return v, err
}

func (f *FakeContext) GetParameter(pname gl.Enum) (any, error) {
	return f.record("getParameter", pname)
}

func (f *FakeContext) GetProgramParameter(program *gl.Handle, pname gl.Enum) (any, error) {
	return f.record("getProgramParameter", program, pname)
}

func (f *FakeContext) GetShaderInfoLog(shader *gl.Handle) (string, error) {
	res, err := f.record("getShaderInfoLog", shader)
	v, _ := res.(string)
	return v, err
}

func (f *FakeContext) GetShaderParameter(shader *gl.Handle, pname gl.Enum) (any, error) {
	return f.record("getShaderParameter", shader, pname)
}

func (f *FakeContext) GetShaderPrecisionFormat(shaderType, precisionType gl.Enum) (*gl.ShaderPrecisionFormat, error) {
	res, err := f.record("getShaderPrecisionFormat", shaderType, precisionType)
	v, _ := res.(*gl.ShaderPrecisionFormat)
	return v, err
}

func (f *FakeContext) GetExtension(name string) (any, error) {
	return f.record("getExtension", name)
}

func (f *FakeContext) ActiveTexture(texture gl.Enum) error {
	_, err := f.record("activeTexture", texture)
	return err
}

func (f *FakeContext) AttachShader(program, shader *gl.Handle) error {
	_, err := f.record("attachShader", program, shader)
	return err
}

func (f *FakeContext) BindAttribLocation(program *gl.Handle, index uint32, name string) error {
	_, err := f.record("bindAttribLocation", program, index, name)
	return err
}

func (f *FakeContext) BindBuffer(target gl.Enum, buffer *gl.Handle) error {
	_, err := f.record("bindBuffer", target, buffer)
	return err
}

func (f *FakeContext) BindFramebuffer(target gl.Enum, framebuffer *gl.Handle) error {
	_, err := f.record("bindFramebuffer", target, framebuffer)
	return err
}

func (f *FakeContext) BindRenderbuffer(target gl.Enum, renderbuffer *gl.Handle) error {
	_, err := f.record("bindRenderbuffer", target, renderbuffer)
	return err
}

func (f *FakeContext) BindTexture(target gl.Enum, texture *gl.Handle) error {
	_, err := f.record("bindTexture", target, texture)
	return err
}

func (f *FakeContext) BlendFunc(sfactor, dfactor gl.Enum) error {
	_, err := f.record("blendFunc", sfactor, dfactor)
	return err
}

func (f *FakeContext) BufferData(target gl.Enum, data any, usage gl.Enum) error {
	_, err := f.record("bufferData", target, data, usage)
	return err
}

func (f *FakeContext) BufferSubData(target gl.Enum, offset int, data any) error {
	_, err := f.record("bufferSubData", target, offset, data)
	return err
}

func (f *FakeContext) Clear(mask gl.Bitfield) error {
	_, err := f.record("clear", mask)
	return err
}

func (f *FakeContext) ClearColor(red, green, blue, alpha float32) error {
	_, err := f.record("clearColor", red, green, blue, alpha)
	return err
}

func (f *FakeContext) ClearDepth(depth float32) error {
	_, err := f.record("clearDepth", depth)
	return err
}

func (f *FakeContext) CompileShader(shader *gl.Handle) error {
	_, err := f.record("compileShader", shader)
	return err
}

func (f *FakeContext) CullFace(mode gl.Enum) error {
	_, err := f.record("cullFace", mode)
	return err
}

func (f *FakeContext) DeleteBuffer(buffer *gl.Handle) error {
	_, err := f.record("deleteBuffer", buffer)
	return err
}

func (f *FakeContext) DeleteFramebuffer(framebuffer *gl.Handle) error {
	_, err := f.record("deleteFramebuffer", framebuffer)
	return err
}

func (f *FakeContext) DeleteProgram(program *gl.Handle) error {
	_, err := f.record("deleteProgram", program)
	return err
}

func (f *FakeContext) DeleteRenderbuffer(renderbuffer *gl.Handle) error {
	_, err := f.record("deleteRenderbuffer", renderbuffer)
	return err
}

func (f *FakeContext) DeleteShader(shader *gl.Handle) error {
	_, err := f.record("deleteShader", shader)
	return err
}

func (f *FakeContext) DeleteTexture(texture *gl.Handle) error {
	_, err := f.record("deleteTexture", texture)
	return err
}

func (f *FakeContext) DepthFunc(fn gl.Enum) error {
	_, err := f.record("depthFunc", fn)
	return err
}

func (f *FakeContext) DepthMask(flag bool) error {
	_, err := f.record("depthMask", flag)
	return err
}

func (f *FakeContext) Disable(capability gl.Enum) error {
	_, err := f.record("disable", capability)
	return err
}

func (f *FakeContext) DisableVertexAttribArray(index uint32) error {
	_, err := f.record("disableVertexAttribArray", index)
	return err
}

func (f *FakeContext) DrawArrays(mode gl.Enum, first, count int) error {
	_, err := f.record("drawArrays", mode, first, count)
	return err
}

func (f *FakeContext) DrawElements(mode gl.Enum, count int, typ gl.Enum, offset int) error {
	_, err := f.record("drawElements", mode, count, typ, offset)
	return err
}

func (f *FakeContext) Enable(capability gl.Enum) error {
	_, err := f.record("enable", capability)
	return err
}

func (f *FakeContext) EnableVertexAttribArray(index uint32) error {
	_, err := f.record("enableVertexAttribArray", index)
	return err
}

func (f *FakeContext) Finish() error {
	_, err := f.record("finish")
	return err
}

func (f *FakeContext) Flush() error {
	_, err := f.record("flush")
	return err
}

func (f *FakeContext) FramebufferRenderbuffer(target, attachment, renderbufferTarget gl.Enum, renderbuffer *gl.Handle) error {
	_, err := f.record("framebufferRenderbuffer", target, attachment, renderbufferTarget, renderbuffer)
	return err
}

func (f *FakeContext) FramebufferTexture2D(target, attachment, textureTarget gl.Enum, texture *gl.Handle, level int) error {
	_, err := f.record("framebufferTexture2D", target, attachment, textureTarget, texture, level)
	return err
}

func (f *FakeContext) GenerateMipmap(target gl.Enum) error {
	_, err := f.record("generateMipmap", target)
	return err
}

func (f *FakeContext) LinkProgram(program *gl.Handle) error {
	_, err := f.record("linkProgram", program)
	return err
}

func (f *FakeContext) PixelStorei(pname gl.Enum, param int) error {
	_, err := f.record("pixelStorei", pname, param)
	return err
}

func (f *FakeContext) RenderbufferStorage(target, internalFormat gl.Enum, width, height int) error {
	_, err := f.record("renderbufferStorage", target, internalFormat, width, height)
	return err
}

func (f *FakeContext) Scissor(x, y, width, height int) error {
	_, err := f.record("scissor", x, y, width, height)
	return err
}

func (f *FakeContext) ShaderSource(shader *gl.Handle, source string) error {
	_, err := f.record("shaderSource", shader, source)
	return err
}

func (f *FakeContext) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, rest ...any) error {
	_, err := f.record("texImage2D", append([]any{target, level, internalFormat}, rest...)...)
	return err
}

func (f *FakeContext) TexParameterf(target, pname gl.Enum, param float32) error {
	_, err := f.record("texParameterf", target, pname, param)
	return err
}

func (f *FakeContext) TexParameteri(target, pname gl.Enum, param int) error {
	_, err := f.record("texParameteri", target, pname, param)
	return err
}

func (f *FakeContext) Uniform1f(location *gl.Handle, x float32) error {
	_, err := f.record("uniform1f", location, x)
	return err
}

func (f *FakeContext) Uniform1i(location *gl.Handle, x int) error {
	_, err := f.record("uniform1i", location, x)
	return err
}

func (f *FakeContext) Uniform2f(location *gl.Handle, x, y float32) error {
	_, err := f.record("uniform2f", location, x, y)
	return err
}

func (f *FakeContext) Uniform3f(location *gl.Handle, x, y, z float32) error {
	_, err := f.record("uniform3f", location, x, y, z)
	return err
}

func (f *FakeContext) Uniform4f(location *gl.Handle, x, y, z, w float32) error {
	_, err := f.record("uniform4f", location, x, y, z, w)
	return err
}

func (f *FakeContext) Uniform1fv(location *gl.Handle, v []float32) error {
	_, err := f.record("uniform1fv", location, v)
	return err
}

func (f *FakeContext) Uniform3fv(location *gl.Handle, v []float32) error {
	_, err := f.record("uniform3fv", location, v)
	return err
}

func (f *FakeContext) Uniform4fv(location *gl.Handle, v []float32) error {
	_, err := f.record("uniform4fv", location, v)
	return err
}

func (f *FakeContext) UniformMatrix3fv(location *gl.Handle, transpose bool, v []float32) error {
	_, err := f.record("uniformMatrix3fv", location, transpose, v)
	return err
}

func (f *FakeContext) UniformMatrix4fv(location *gl.Handle, transpose bool, v []float32) error {
	_, err := f.record("uniformMatrix4fv", location, transpose, v)
	return err
}

func (f *FakeContext) UseProgram(program *gl.Handle) error {
	_, err := f.record("useProgram", program)
	return err
}

func (f *FakeContext) VertexAttribPointer(index uint32, size int, typ gl.Enum, normalized bool, stride, offset int) error {
	_, err := f.record("vertexAttribPointer", index, size, typ, normalized, stride, offset)
	return err
}

func (f *FakeContext) Viewport(x, y, width, height int) error {
	_, err := f.record("viewport", x, y, width, height)
	return err
}
