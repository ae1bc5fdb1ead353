package calls

// Name identifies an intercepted call by its wire name.
type Name string

// Calls of the declared surface.
const (
	ActiveTexture            Name = "activeTexture"
	AttachShader             Name = "attachShader"
	BindAttribLocation       Name = "bindAttribLocation"
	BindBuffer               Name = "bindBuffer"
	BindFramebuffer          Name = "bindFramebuffer"
	BindRenderbuffer         Name = "bindRenderbuffer"
	BindTexture              Name = "bindTexture"
	BlendFunc                Name = "blendFunc"
	BufferData               Name = "bufferData"
	BufferSubData            Name = "bufferSubData"
	Clear                    Name = "clear"
	ClearColor               Name = "clearColor"
	ClearDepth               Name = "clearDepth"
	CompileShader            Name = "compileShader"
	CreateBuffer             Name = "createBuffer"
	CreateFramebuffer        Name = "createFramebuffer"
	CreateProgram            Name = "createProgram"
	CreateRenderbuffer       Name = "createRenderbuffer"
	CreateShader             Name = "createShader"
	CreateTexture            Name = "createTexture"
	CullFace                 Name = "cullFace"
	DeleteBuffer             Name = "deleteBuffer"
	DeleteFramebuffer        Name = "deleteFramebuffer"
	DeleteProgram            Name = "deleteProgram"
	DeleteRenderbuffer       Name = "deleteRenderbuffer"
	DeleteShader             Name = "deleteShader"
	DeleteTexture            Name = "deleteTexture"
	DepthFunc                Name = "depthFunc"
	DepthMask                Name = "depthMask"
	Disable                  Name = "disable"
	DisableVertexAttribArray Name = "disableVertexAttribArray"
	DrawArrays               Name = "drawArrays"
	DrawElements             Name = "drawElements"
	Enable                   Name = "enable"
	EnableVertexAttribArray  Name = "enableVertexAttribArray"
	Finish                   Name = "finish"
	Flush                    Name = "flush"
	FramebufferRenderbuffer  Name = "framebufferRenderbuffer"
	FramebufferTexture2D     Name = "framebufferTexture2D"
	GenerateMipmap           Name = "generateMipmap"
	GetActiveAttrib          Name = "getActiveAttrib"
	GetActiveUniform         Name = "getActiveUniform"
	GetAttribLocation        Name = "getAttribLocation"
	GetExtension             Name = "getExtension"
	GetParameter             Name = "getParameter"
	GetProgramParameter      Name = "getProgramParameter"
	GetShaderInfoLog         Name = "getShaderInfoLog"
	GetShaderParameter       Name = "getShaderParameter"
	GetShaderPrecisionFormat Name = "getShaderPrecisionFormat"
	GetUniformLocation       Name = "getUniformLocation"
	LinkProgram              Name = "linkProgram"
	PixelStorei              Name = "pixelStorei"
	RenderbufferStorage      Name = "renderbufferStorage"
	Scissor                  Name = "scissor"
	ShaderSource             Name = "shaderSource"
	TexImage2D               Name = "texImage2D"
	TexParameterf            Name = "texParameterf"
	TexParameteri            Name = "texParameteri"
	Uniform1f                Name = "uniform1f"
	Uniform1i                Name = "uniform1i"
	Uniform2f                Name = "uniform2f"
	Uniform3f                Name = "uniform3f"
	Uniform4f                Name = "uniform4f"
	Uniform1fv               Name = "uniform1fv"
	Uniform3fv               Name = "uniform3fv"
	Uniform4fv               Name = "uniform4fv"
	UniformMatrix3fv         Name = "uniformMatrix3fv"
	UniformMatrix4fv         Name = "uniformMatrix4fv"
	UseProgram               Name = "useProgram"
	VertexAttribPointer      Name = "vertexAttribPointer"
	Viewport                 Name = "viewport"
)
