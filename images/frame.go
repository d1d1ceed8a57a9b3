package images

import "image"

// ChannelOrder names the byte order of a frame's packed pixel channels.
type ChannelOrder string

// ChannelOrder constants
const (
	// OrderBGR is the native order produced by camera and video pipelines.
	OrderBGR ChannelOrder = "bgr"
	// OrderRGB is the canonical order for extracted segments.
	OrderRGB ChannelOrder = "rgb"
)

// Frame is a raw 3-channel image buffer: packed 3-byte pixels, row-major,
// no padding between rows.
type Frame struct {
	// The packed pixel data, Width*Height*3 bytes.
	Data []byte
	// The width of the frame in pixels.
	Width int
	// The height of the frame in pixels.
	Height int
	// The channel order of each pixel.
	Order ChannelOrder
}

// NewFrame allocates a zeroed frame of the given size and order.
func NewFrame(width, height int, order ChannelOrder) *Frame {
	size := 0
	if width > 0 && height > 0 {
		size = width * height * 3
	}
	return &Frame{
		Data:   make([]byte, size),
		Width:  width,
		Height: height,
		Order:  order,
	}
}

// Empty reports whether the frame covers no pixels.
func (f *Frame) Empty() bool { return f.Width <= 0 || f.Height <= 0 }

// Crop copies the region of f covered by box, clamped to the frame bounds.
// A box that falls entirely outside the frame produces an empty frame with
// zero width or height and no data; this is not an error.
func (f *Frame) Crop(box Rect) *Frame {
	c := box.Clamp(f.Width, f.Height)
	out := &Frame{
		Width:  c.Width(),
		Height: c.Height(),
		Order:  f.Order,
	}
	if out.Width == 0 || out.Height == 0 {
		// Keep the clamped extent so callers can still see which axis
		// collapsed, with no backing data.
		return out
	}

	out.Data = make([]byte, out.Width*out.Height*3)
	srcStride := f.Width * 3
	dstStride := out.Width * 3
	for row := 0; row < out.Height; row++ {
		srcOff := (c.Y1+row)*srcStride + c.X1*3
		copy(out.Data[row*dstStride:(row+1)*dstStride], f.Data[srcOff:srcOff+dstStride])
	}
	return out
}

// Converted returns a copy of f with its channels reordered to the target
// order. Converting to the frame's own order still copies.
func (f *Frame) Converted(target ChannelOrder) *Frame {
	out := &Frame{
		Data:   make([]byte, len(f.Data)),
		Width:  f.Width,
		Height: f.Height,
		Order:  target,
	}
	if f.Order == target {
		copy(out.Data, f.Data)
		return out
	}
	// BGR<->RGB is a swap of the first and third channel of every pixel.
	for i := 0; i+2 < len(f.Data); i += 3 {
		out.Data[i] = f.Data[i+2]
		out.Data[i+1] = f.Data[i+1]
		out.Data[i+2] = f.Data[i]
	}
	return out
}

// FromImage packs an image.Image into a frame with the given channel order.
func FromImage(img image.Image, order ChannelOrder) *Frame {
	bounds := img.Bounds()
	f := NewFrame(bounds.Dx(), bounds.Dy(), order)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if order == OrderBGR {
				f.Data[i] = byte(b >> 8)
				f.Data[i+1] = byte(g >> 8)
				f.Data[i+2] = byte(r >> 8)
			} else {
				f.Data[i] = byte(r >> 8)
				f.Data[i+1] = byte(g >> 8)
				f.Data[i+2] = byte(b >> 8)
			}
			i += 3
		}
	}
	return f
}

// ToImage unpacks the frame into an image.RGBA regardless of the frame's
// native order. Empty frames produce an empty image.
func (f *Frame) ToImage() *image.RGBA {
	if f.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i, p := 0, 0; i+2 < len(f.Data); i, p = i+3, p+4 {
		if f.Order == OrderBGR {
			img.Pix[p] = f.Data[i+2]
			img.Pix[p+1] = f.Data[i+1]
			img.Pix[p+2] = f.Data[i]
		} else {
			img.Pix[p] = f.Data[i]
			img.Pix[p+1] = f.Data[i+1]
			img.Pix[p+2] = f.Data[i+2]
		}
		img.Pix[p+3] = 0xff
	}
	return img
}
