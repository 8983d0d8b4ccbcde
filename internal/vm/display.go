package vm

import "strings"

const (
	// DisplayWidth is the number of pixel columns.
	DisplayWidth = 64
	// DisplayHeight is the number of pixel rows.
	DisplayHeight = 32
	// DisplaySize is the number of pixels.
	DisplaySize = DisplayWidth * DisplayHeight

	spriteWidth = 8
)

// Frame is a row-major snapshot of the display, each cell is 0 or 1.
type Frame [DisplaySize]uint8

// Pixel returns whether the pixel at the wrapped coordinates is set.
func (f Frame) Pixel(x, y int) bool {
	return f[index(x, y)] == 1
}

// Lit returns the number of set pixels.
func (f Frame) Lit() int {
	n := 0
	for _, p := range f {
		n += int(p)
	}
	return n
}

// String renders the frame as text, one line per row.
func (f Frame) String() string {
	var sb strings.Builder
	sb.Grow(DisplaySize + DisplayHeight)
	for y := range DisplayHeight {
		for x := range DisplayWidth {
			if f[y*DisplayWidth+x] == 1 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Frame returns a snapshot of the display.
func (vm *VM) Frame() Frame {
	return vm.display
}

func index(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}

func (f *Frame) clear() {
	*f = Frame{}
}

// drawSprite XORs rows of 8 pixels onto the frame at the wrapped position
// and returns whether any set pixel was cleared.
func (f *Frame) drawSprite(x, y int, rows []byte) bool {
	collision := false
	for row, bits := range rows {
		for col := range spriteWidth {
			if (bits>>(spriteWidth-1-col))&1 == 0 {
				continue
			}
			i := index(x+col, y+row)
			if f[i] == 1 {
				collision = true
			}
			f[i] ^= 1
		}
	}
	return collision
}
