package gl

// Constants used by the bridge, its tests and scenarios. Values match the
// WebGL 1.0 / OpenGL ES 2.0 enumerants.
const (
	DEPTH_BUFFER_BIT   Bitfield = 0x00000100
	STENCIL_BUFFER_BIT Bitfield = 0x00000400
	COLOR_BUFFER_BIT   Bitfield = 0x00004000

	POINTS         Enum = 0x0000
	LINES          Enum = 0x0001
	TRIANGLES      Enum = 0x0004
	TRIANGLE_STRIP Enum = 0x0005

	ARRAY_BUFFER         Enum = 0x8892
	ELEMENT_ARRAY_BUFFER Enum = 0x8893
	STATIC_DRAW          Enum = 0x88E4
	DYNAMIC_DRAW         Enum = 0x88E8

	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	FLOAT          Enum = 0x1406

	FRAGMENT_SHADER   Enum = 0x8B30
	VERTEX_SHADER     Enum = 0x8B31
	COMPILE_STATUS    Enum = 0x8B81
	LINK_STATUS       Enum = 0x8B82
	ACTIVE_UNIFORMS   Enum = 0x8B86
	ACTIVE_ATTRIBUTES Enum = 0x8B89

	LOW_FLOAT    Enum = 0x8DF0
	MEDIUM_FLOAT Enum = 0x8DF1
	HIGH_FLOAT   Enum = 0x8DF2

	DEPTH_TEST Enum = 0x0B71
	BLEND      Enum = 0x0BE2
	CULL_FACE  Enum = 0x0B44
	BACK       Enum = 0x0405
	LESS       Enum = 0x0201
	LEQUAL     Enum = 0x0203

	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303

	VERSION          Enum = 0x1F02
	MAX_TEXTURE_SIZE Enum = 0x0D33

	TEXTURE_2D          Enum = 0x0DE1
	TEXTURE0            Enum = 0x84C0
	TEXTURE_MIN_FILTER  Enum = 0x2801
	TEXTURE_MAG_FILTER  Enum = 0x2800
	NEAREST             Enum = 0x2600
	LINEAR              Enum = 0x2601
	RGBA                Enum = 0x1908
	RGB                 Enum = 0x1907
	UNPACK_FLIP_Y_WEBGL Enum = 0x9240

	FRAMEBUFFER       Enum = 0x8D40
	RENDERBUFFER      Enum = 0x8D41
	COLOR_ATTACHMENT0 Enum = 0x8CE0
	DEPTH_ATTACHMENT  Enum = 0x8D00
	DEPTH_COMPONENT16 Enum = 0x81A5
)
