package testutil

import (
	"encoding/base64"
	"image"
	"image/color"
)

// SolidImage returns a w x h RGBA image filled with c.
func SolidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// CheckerImage returns a w x h image alternating a and b per pixel.
func CheckerImage(w, h int, a, b color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, a)
			} else {
				img.Set(x, y, b)
			}
		}
	}
	return img
}

// StubCanvas is a gl.Canvas whose data URL is fixed.
type StubCanvas struct {
	Width, Height int
	URL           string
	Err           error
}

// NewStubCanvas returns a canvas reporting payload as a base64 PNG data URL.
func NewStubCanvas(w, h int, payload []byte) *StubCanvas {
	return &StubCanvas{
		Width:  w,
		Height: h,
		URL:    "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload),
	}
}

func (c *StubCanvas) Bounds() image.Rectangle { return image.Rect(0, 0, c.Width, c.Height) }

func (c *StubCanvas) DataURL() (string, error) {
	if c.Err != nil {
		return "", c.Err
	}
	return c.URL, nil
}

// StubVideoFrame satisfies gl.VideoFrame.
type StubVideoFrame struct{}

func (StubVideoFrame) VideoFrame() {}
