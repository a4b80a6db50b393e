// Package preview shows a rendered image in the terminal. Each character cell
// holds two pixels stacked vertically using the upper half block glyph, with
// the foreground set to the upper pixel and the background to the lower one.
package preview

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

const halfBlock = '▀'

// Layout fits an image into a screen of the given size, leaving the last
// line for the status text. It returns the number of cells used and the
// number of image pixels per cell column.
func Layout(screenW, screenH, imageW, imageH int) (cols, rows int, scale float64) {
	availRows := screenH - 1
	if screenW <= 0 || availRows <= 0 || imageW <= 0 || imageH <= 0 {
		return 0, 0, 0
	}

	scaleX := float64(imageW) / float64(screenW)
	scaleY := float64(imageH) / float64(2*availRows)
	scale = max(scaleX, scaleY)

	cols = min(screenW, int(float64(imageW)/scale))
	rows = min(availRows, (int(float64(imageH)/scale)+1)/2)
	return cols, rows, scale
}

// Draw paints the buffer and a status line onto the screen. The caller is
// responsible for calling Show.
func Draw(s tcell.Screen, buf *renderer.PixelBuffer, status string) {
	s.Clear()
	w, h := s.Size()

	cols, rows, scale := Layout(w, h, buf.Width, buf.Height)
	for cy := 0; cy < rows; cy++ {
		top := min(buf.Height-1, int(float64(2*cy)*scale))
		bottom := min(buf.Height-1, int(float64(2*cy+1)*scale))
		for cx := 0; cx < cols; cx++ {
			x := min(buf.Width-1, int(float64(cx)*scale))
			style := tcell.StyleDefault.
				Foreground(pixelColor(buf.At(x, top))).
				Background(pixelColor(buf.At(x, bottom)))
			s.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	if h > 0 {
		drawText(s, 0, h-1, tcell.StyleDefault.Foreground(tcell.ColorDarkGray), status)
	}
}

func pixelColor(rgb [3]uint8) tcell.Color {
	return tcell.NewRGBColor(int32(rgb[0]), int32(rgb[1]), int32(rgb[2]))
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for i, r := range []rune(str) {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// Show opens the terminal, displays the buffer and waits until the user
// presses Esc, Ctrl-C or q
func Show(buf *renderer.PixelBuffer, status string) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()

	return run(s, buf, status)
}

// run is the event loop on an initialized screen
func run(s tcell.Screen, buf *renderer.PixelBuffer, status string) error {
	Draw(s, buf, status)
	s.Show()

	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			// Screen finalized
			return nil
		case *tcell.EventResize:
			s.Sync()
			Draw(s, buf, status)
			s.Show()
		case *tcell.EventKey:
			if isQuitKey(ev) {
				return nil
			}
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}
