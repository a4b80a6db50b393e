package renderer

import (
	"image"
	"image/color"
)

// PixelBuffer holds 8-bit RGB triples in row-major order, top row first
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewPixelBuffer creates a black buffer of the given size
func NewPixelBuffer(width, height int) *PixelBuffer {
	return &PixelBuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// offset returns the index of the red channel of pixel (x, row)
func (pb *PixelBuffer) offset(x, row int) int {
	return (row*pb.Width + x) * 3
}

// At returns the RGB triple at column x of the given row (0 = top)
func (pb *PixelBuffer) At(x, row int) [3]uint8 {
	i := pb.offset(x, row)
	return [3]uint8{pb.Pix[i], pb.Pix[i+1], pb.Pix[i+2]}
}

// Set writes the RGB triple at column x of the given row (0 = top)
func (pb *PixelBuffer) Set(x, row int, rgb [3]uint8) {
	i := pb.offset(x, row)
	copy(pb.Pix[i:i+3], rgb[:])
}

// Rows returns a view of rows [minRow, maxRow) sharing the same backing array
func (pb *PixelBuffer) Rows(minRow, maxRow int) *PixelBuffer {
	return &PixelBuffer{
		Width:  pb.Width,
		Height: maxRow - minRow,
		Pix:    pb.Pix[pb.offset(0, minRow):pb.offset(0, maxRow)],
	}
}

// ToRGBA converts the buffer to an opaque image
func (pb *PixelBuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, pb.Width, pb.Height))
	for row := 0; row < pb.Height; row++ {
		for x := 0; x < pb.Width; x++ {
			rgb := pb.At(x, row)
			img.SetRGBA(x, row, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}
