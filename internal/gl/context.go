package gl

// Context is the declared graphics capability surface.
//
// Every method returns an error so that a bridged implementation can report
// host failures through the same contract a local implementation uses.
// Methods that create host resources return *Handle; query methods return
// their decoded value.
type Context interface {
	// Data members. These are read through, never intercepted.
	DrawingBufferWidth() int
	DrawingBufferHeight() int

	// Resource creation.
	CreateBuffer() (*Handle, error)
	CreateFramebuffer() (*Handle, error)
	CreateProgram() (*Handle, error)
	CreateRenderbuffer() (*Handle, error)
	CreateShader(shaderType Enum) (*Handle, error)
	CreateTexture() (*Handle, error)
	GetUniformLocation(program *Handle, name string) (*Handle, error)

	// Queries answered by the host.
	GetActiveAttrib(program *Handle, index uint32) (*ActiveInfo, error)
	GetActiveUniform(program *Handle, index uint32) (*ActiveInfo, error)
	GetAttribLocation(program *Handle, name string) (int, error)
	GetParameter(pname Enum) (any, error)
	GetProgramParameter(program *Handle, pname Enum) (any, error)
	GetShaderInfoLog(shader *Handle) (string, error)
	GetShaderParameter(shader *Handle, pname Enum) (any, error)
	GetShaderPrecisionFormat(shaderType, precisionType Enum) (*ShaderPrecisionFormat, error)
	GetExtension(name string) (any, error)

	// State and draw calls.
	ActiveTexture(texture Enum) error
	AttachShader(program, shader *Handle) error
	BindAttribLocation(program *Handle, index uint32, name string) error
	BindBuffer(target Enum, buffer *Handle) error
	BindFramebuffer(target Enum, framebuffer *Handle) error
	BindRenderbuffer(target Enum, renderbuffer *Handle) error
	BindTexture(target Enum, texture *Handle) error
	BlendFunc(sfactor, dfactor Enum) error
	BufferData(target Enum, data any, usage Enum) error
	BufferSubData(target Enum, offset int, data any) error
	Clear(mask Bitfield) error
	ClearColor(red, green, blue, alpha float32) error
	ClearDepth(depth float32) error
	CompileShader(shader *Handle) error
	CullFace(mode Enum) error
	DeleteBuffer(buffer *Handle) error
	DeleteFramebuffer(framebuffer *Handle) error
	DeleteProgram(program *Handle) error
	DeleteRenderbuffer(renderbuffer *Handle) error
	DeleteShader(shader *Handle) error
	DeleteTexture(texture *Handle) error
	DepthFunc(fn Enum) error
	DepthMask(flag bool) error
	Disable(capability Enum) error
	DisableVertexAttribArray(index uint32) error
	DrawArrays(mode Enum, first, count int) error
	DrawElements(mode Enum, count int, typ Enum, offset int) error
	Enable(capability Enum) error
	EnableVertexAttribArray(index uint32) error
	Finish() error
	Flush() error
	FramebufferRenderbuffer(target, attachment, renderbufferTarget Enum, renderbuffer *Handle) error
	FramebufferTexture2D(target, attachment, textureTarget Enum, texture *Handle, level int) error
	GenerateMipmap(target Enum) error
	LinkProgram(program *Handle) error
	PixelStorei(pname Enum, param int) error
	RenderbufferStorage(target, internalFormat Enum, width, height int) error
	Scissor(x, y, width, height int) error
	ShaderSource(shader *Handle, source string) error
	// TexImage2D accepts both upload shapes:
	//	(target, level, internalFormat, width, height, border, format, type, pixels)
	//	(target, level, internalFormat, format, type, source)
	TexImage2D(target Enum, level int, internalFormat Enum, rest ...any) error
	TexParameterf(target, pname Enum, param float32) error
	TexParameteri(target, pname Enum, param int) error
	Uniform1f(location *Handle, x float32) error
	Uniform1i(location *Handle, x int) error
	Uniform2f(location *Handle, x, y float32) error
	Uniform3f(location *Handle, x, y, z float32) error
	Uniform4f(location *Handle, x, y, z, w float32) error
	Uniform1fv(location *Handle, v []float32) error
	Uniform3fv(location *Handle, v []float32) error
	Uniform4fv(location *Handle, v []float32) error
	UniformMatrix3fv(location *Handle, transpose bool, v []float32) error
	UniformMatrix4fv(location *Handle, transpose bool, v []float32) error
	UseProgram(program *Handle) error
	VertexAttribPointer(index uint32, size int, typ Enum, normalized bool, stride, offset int) error
	Viewport(x, y, width, height int) error
}

// Invoker is implemented by contexts that can execute a call by name. The
// bridge uses it in local mode for calls outside the declared surface.
type Invoker interface {
	Invoke(name string, args []any) (any, error)
}
