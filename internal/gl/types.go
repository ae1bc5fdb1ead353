package gl

import "image"

type (
	Enum     uint32
	Bitfield uint32
)

// Kind identifies the host resource a Handle stands in for.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindShader
	KindProgram
	KindBuffer
	KindTexture
	KindUniformLocation
	KindFramebuffer
	KindRenderbuffer
)

var kindNames = map[Kind]string{
	KindUnknown:         "unknown",
	KindShader:          "shader",
	KindProgram:         "program",
	KindBuffer:          "buffer",
	KindTexture:         "texture",
	KindUniformLocation: "uniform_location",
	KindFramebuffer:     "framebuffer",
	KindRenderbuffer:    "renderbuffer",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind returns the Kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for k, s := range kindNames {
		if s == name && k != KindUnknown {
			return k, true
		}
	}
	return KindUnknown, false
}

// ActiveInfo describes an active attribute or uniform.
type ActiveInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
	Type Enum   `json:"type"`
}

// ShaderPrecisionFormat describes the range and precision of a shader numeric format.
type ShaderPrecisionFormat struct {
	RangeMin  int `json:"rangeMin"`
	RangeMax  int `json:"rangeMax"`
	Precision int `json:"precision"`
}

// Canvas is a drawable surface that can export its pixels as a data URL,
// e.g. "data:image/png;base64,iVBOR...".
type Canvas interface {
	Bounds() image.Rectangle
	DataURL() (string, error)
}

// ImageData is a raw RGBA pixel view (the browser's ImageData shape).
type ImageData struct {
	Width  int
	Height int
	Data   []uint8
}

// VideoFrame is implemented by decoded video frame sources.
type VideoFrame interface {
	VideoFrame()
}
