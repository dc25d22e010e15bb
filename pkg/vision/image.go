package vision

import "fmt"

// ImageFrame is a dense pixel buffer with explicit shape.
//
// Pix is row-major with 8 bits per channel: the pixel at (x, y) starts at
// Pix[(y*Width+x)*Channels]. Channel order for 3-channel frames is BGR to
// match OpenCV conventions.
type ImageFrame struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Channels int    `json:"channels"`
	Pix      []byte `json:"data"`
}

// NewFrame allocates a zeroed frame with the given shape.
func NewFrame(width, height, channels int) *ImageFrame {
	return &ImageFrame{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]byte, width*height*channels),
	}
}

// Validate checks the frame shape against its buffer.
// All failures wrap ErrInvalidImage.
func (f *ImageFrame) Validate() error {
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidImage)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: zero-sized frame %dx%d", ErrInvalidImage, f.Width, f.Height)
	}
	switch f.Channels {
	case 1, 3, 4:
	default:
		return fmt.Errorf("%w: unsupported channel count %d", ErrInvalidImage, f.Channels)
	}
	if want := f.Width * f.Height * f.Channels; len(f.Pix) != want {
		return fmt.Errorf("%w: buffer is %d bytes, shape requires %d", ErrInvalidImage, len(f.Pix), want)
	}
	return nil
}
