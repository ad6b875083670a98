package main

import (
	"bytes"
	"image/color"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"
)

// Shared font source, set by InitGraphics.
var globalFontSource *text.GoTextFaceSource

// InitGraphics initializes the global font source for text rendering
func InitGraphics() error {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return err
	}
	globalFontSource = s
	return nil
}

// newFace returns a face of the shared font, or nil before InitGraphics.
func newFace(size float64) *text.GoTextFace {
	if globalFontSource == nil {
		return nil
	}
	return &text.GoTextFace{Source: globalFontSource, Size: size}
}

// DrawText draws text with its top-left corner at x, y.
func DrawText(screen *ebiten.Image, s string, face *text.GoTextFace, x, y float64, c color.RGBA) {
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// MeasureText returns the size of s in face, zero before InitGraphics.
func MeasureText(s string, face *text.GoTextFace) (float64, float64) {
	if face == nil {
		return 0, 0
	}
	return text.Measure(s, face, 0)
}

// DrawFilledRect draws filled rectangles with float64 coordinates
func DrawFilledRect(screen *ebiten.Image, x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), c, false)
}

// DrawStrokeRect draws a rectangle outline.
func DrawStrokeRect(screen *ebiten.Image, x, y, w, h, width float64, c color.RGBA) {
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), float32(width), c, false)
}

// CreateFallbackImage creates the placeholder shown for an image that failed
// to load.
func CreateFallbackImage(width, height int, filename, errorMsg string) *ebiten.Image {
	if width <= 0 || height <= 0 {
		width, height = 400, 300
	}

	img := ebiten.NewImage(width, height)
	img.Fill(color.RGBA{60, 60, 60, 255})
	DrawStrokeRect(img, 1.5, 1.5, float64(width)-3, float64(height)-3, 3, colorLightGray)

	face := newFace(18)
	if face == nil {
		return img
	}

	fileText := filepath.Base(filename)
	reasonText := errorMsg
	// roughly 9px per glyph at this size
	maxChars := (width - 20) / 9
	if maxChars > 3 {
		fileText = truncate(fileText, maxChars)
		reasonText = truncate(reasonText, maxChars)
	}

	DrawText(img, "Image failed to load", face, 10, 20, colorWhite)
	DrawText(img, fileText, face, 10, 50, colorLightGray)
	DrawText(img, reasonText, face, 10, 80, colorLightRed)
	return img
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
