package normalize

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"

	xdraw "golang.org/x/image/draw"

	"github.com/roach88/glbridge/internal/gl"
	"github.com/roach88/glbridge/internal/ir"
)

// texImageSourceArgs is the argument count of the element-source upload
// shape: texImage2D(target, level, internalFormat, format, type, source).
const texImageSourceArgs = 6

// TexImageSource replaces the source argument of a six-argument texture
// upload with the base64 PNG content of that source. Canvases are exported
// directly; images are first rasterized into an offscreen canvas. Pixel
// arrays, video frames and anything else fail: they cannot be encoded, and
// dropping them would leave the host rendering a different texture.
//
// The nine-argument shape carries its pixels as a numeric array and is left
// to the generic serializer.
func TexImageSource(d *Draft) error {
	if len(d.Args) != texImageSourceArgs {
		return nil
	}
	last := texImageSourceArgs - 1

	var (
		encoded string
		err     error
	)
	switch src := d.Args[last].(type) {
	case gl.Canvas:
		encoded, err = CanvasBase64(src)
	case *gl.ImageData, gl.ImageData:
		return ir.NewUnsupportedPayloadError(d.Name, "pixel data sources cannot be encoded")
	case gl.VideoFrame:
		return ir.NewUnsupportedPayloadError(d.Name, "video frame sources cannot be encoded")
	case image.Image:
		encoded, err = ImageBase64(src)
	default:
		return ir.NewUnsupportedPayloadError(d.Name, fmt.Sprintf("unsupported texture source %T", src))
	}
	if err != nil {
		return ir.NewUnsupportedPayloadError(d.Name, err.Error())
	}
	d.Args[last] = encoded
	return nil
}

// CanvasBase64 exports a canvas and strips the data-URI prefix.
func CanvasBase64(c gl.Canvas) (string, error) {
	url, err := c.DataURL()
	if err != nil {
		return "", fmt.Errorf("export canvas: %w", err)
	}
	return StripDataURL(url), nil
}

// ImageBase64 rasterizes img into an offscreen canvas and returns its
// base64 PNG content.
func ImageBase64(img image.Image) (string, error) {
	c, err := NewOffscreen(img)
	if err != nil {
		return "", err
	}
	return CanvasBase64(c)
}

// StripDataURL returns everything after the first comma of a data URL.
// A string without a comma is returned unchanged.
func StripDataURL(url string) string {
	return url[strings.IndexByte(url, ',')+1:]
}

// Offscreen is an in-memory canvas. Its pixels are RGBA with the origin at
// (0, 0), whatever the bounds of the image it was drawn from.
type Offscreen struct {
	pix *image.RGBA
}

// NewOffscreen allocates a canvas the size of img and draws img into it.
func NewOffscreen(img image.Image) (*Offscreen, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("empty image %dx%d", b.Dx(), b.Dy())
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(dst, image.Point{}, img, b, xdraw.Over, nil)
	return &Offscreen{pix: dst}, nil
}

func (o *Offscreen) Bounds() image.Rectangle { return o.pix.Bounds() }

// RGBA exposes the canvas pixels.
func (o *Offscreen) RGBA() *image.RGBA { return o.pix }

// DataURL encodes the canvas as a PNG data URL. Encoding is deterministic:
// equal pixels always produce byte-identical output.
func (o *Offscreen) DataURL() (string, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, o.pix); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
