package app

import (
	"fmt"
	"image/color"
	"strings"

	"abacus/abacusos/kernel"
	"abacus/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// installPanicHandler routes a task panic to the log and paints it on
// the display, then halts. A calculator with a dead task is not usable,
// so there is no recovery path past this point.
func installPanicHandler(k *kernel.Kernel, h hal.HAL) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("abacus panic: task=%d panic=%v", info.TaskID, info.Value))
			for _, line := range strings.Split(string(info.Stack), "\n") {
				if line != "" {
					l.WriteLineString(line)
				}
			}
		}

		disp := h.Display()
		if disp == nil {
			select {}
		}
		fb := disp.Framebuffer()
		if fb == nil || fb.Buffer() == nil {
			select {}
		}

		fb.ClearRGB(128, 0, 0)

		font := &proggy.TinySZ8pt7b
		const fontHeight, fontOffset = int16(10), int16(6)
		_, w := tinyfont.LineWidth(font, "0")
		fontWidth := int16(w)
		if fontWidth <= 0 {
			fontWidth = 6
		}

		d := panicDisplay{fb: fb}
		fg := color.RGBA{R: 255, G: 255, B: 255, A: 255}

		lines := []string{
			"abacus panic",
			fmt.Sprintf("task: %d", info.TaskID),
			fmt.Sprintf("panic: %v", info.Value),
		}
		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}

		cols := int16(fb.Width()) / fontWidth
		if cols <= 0 {
			cols = 1
		}
		y := fontOffset
		for _, line := range lines {
			for len(line) > 0 && y < int16(fb.Height()) {
				n := int(cols)
				if n > len(line) {
					n = len(line)
				}
				drawTextLine(d, font, fontWidth, 0, y, line[:n], fg)
				y += fontHeight
				line = line[n:]
			}
		}

		_ = fb.Present()
		select {}
	})
}

func drawTextLine(d panicDisplay, font tinyfont.Fonter, fontWidth, x0, y0 int16, s string, fg color.RGBA) {
	x := x0
	for _, r := range s {
		tinyfont.DrawChar(d, font, x, y0, r, fg)
		x += fontWidth
	}
}

// panicDisplay is a throwaway tinyfont target; it draws straight into
// the framebuffer with no terminal state.
type panicDisplay struct {
	fb hal.Framebuffer
}

func (d panicDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d panicDisplay) SetPixel(x, y int16, c color.RGBA) {
	if d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if buf == nil || ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	pixel := (uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F)
	off := iy*d.fb.StrideBytes() + ix*2
	if off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d panicDisplay) Display() error { return nil }
