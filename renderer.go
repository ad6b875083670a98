package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/internal/preview"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorGray      = color.RGBA{180, 180, 180, 255}
	colorLightGray = color.RGBA{192, 192, 192, 255}
	colorYellow    = color.RGBA{255, 255, 100, 255}
	colorCyan      = color.RGBA{100, 255, 255, 255}
	colorLightBlue = color.RGBA{200, 200, 255, 255}
	colorGreen     = color.RGBA{100, 255, 100, 255}
	colorOrange    = color.RGBA{255, 200, 100, 255}
	colorLightRed  = color.RGBA{255, 150, 150, 255}

	// Background colors for semi-transparent overlays
	bgColorLight  = color.RGBA{0, 0, 0, 128}
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}

	colorGalleryBg = color.RGBA{32, 32, 32, 255}
	colorCellBg    = color.RGBA{48, 48, 48, 255}
	colorMask      = color.RGBA{0, 0, 0, 115}
)

const (
	controlSize   = 40.0
	controlMargin = 16.0
	toolbarGap    = 12.0
)

// toolbarButton is one action button of the preview toolbar.
type toolbarButton struct {
	Action string
	Label  string
	Rect   preview.Rect
}

// previewControls is the screen layout of the overlay controls.
type previewControls struct {
	Close   preview.Rect
	Prev    preview.Rect
	Next    preview.Rect
	Toolbar []toolbarButton
}

var toolbarActions = []struct{ action, label string }{
	{"flip_y", "⇅"},
	{"flip_x", "⇆"},
	{"rotate_left", "↺"},
	{"rotate_right", "↻"},
	{"zoom_out", "−"},
	{"zoom_in", "+"},
	{"reset", "1:1"},
}

// layoutControls places the overlay controls for a w x h screen: close at the
// top right, switches at the side centers, the toolbar along the bottom.
func layoutControls(w, h float64) previewControls {
	c := previewControls{
		Close: preview.Rect{Left: w - controlMargin - controlSize, Top: controlMargin, Width: controlSize, Height: controlSize},
		Prev:  preview.Rect{Left: controlMargin, Top: (h - controlSize) / 2, Width: controlSize, Height: controlSize},
		Next:  preview.Rect{Left: w - controlMargin - controlSize, Top: (h - controlSize) / 2, Width: controlSize, Height: controlSize},
	}

	n := float64(len(toolbarActions))
	total := n*controlSize + (n-1)*toolbarGap
	x := (w - total) / 2
	y := h - controlMargin - controlSize
	for _, a := range toolbarActions {
		c.Toolbar = append(c.Toolbar, toolbarButton{
			Action: a.action,
			Label:  a.label,
			Rect:   preview.Rect{Left: x, Top: y, Width: controlSize, Height: controlSize},
		})
		x += controlSize + toolbarGap
	}
	return c
}

func contains(r preview.Rect, x, y float64) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// hit returns the action of the control under x, y. Switches only count when
// visible.
func (c previewControls) hit(x, y float64, hasSwitches, canPrev, canNext bool) (string, bool) {
	if contains(c.Close, x, y) {
		return "close", true
	}
	for _, b := range c.Toolbar {
		if contains(b.Rect, x, y) {
			return b.Action, true
		}
	}
	if hasSwitches && canPrev && contains(c.Prev, x, y) {
		return "previous", true
	}
	if hasSwitches && canNext && contains(c.Next, x, y) {
		return "next", true
	}
	return "", false
}

// imageGeoM maps an image of the given natural size onto the screen: fitted
// into layout, then rotated, flipped and scaled about its center and moved by
// the transform's translation.
func imageGeoM(natural preview.Size, layout preview.Rect, t DisplayTransform) ebiten.GeoM {
	var g ebiten.GeoM
	if natural.Width <= 0 || natural.Height <= 0 {
		return g
	}
	fit := layout.Width / natural.Width

	g.Translate(-natural.Width/2, -natural.Height/2)
	g.Scale(fit, fit)
	g.Rotate(t.Rotate * math.Pi / 180)

	sx, sy := t.Scale, t.Scale
	if t.FlipX {
		sx = -sx
	}
	if t.FlipY {
		sy = -sy
	}
	g.Scale(sx, sy)
	g.Translate(layout.Left+layout.Width/2+t.X, layout.Top+layout.Height/2+t.Y)
	return g
}

// openGeoM shrinks g toward origin while the overlay fades in.
func openGeoM(g ebiten.GeoM, progress float64, origin preview.Point) ebiten.GeoM {
	if progress >= 1 {
		return g
	}
	g.Translate(-origin.X, -origin.Y)
	g.Scale(progress, progress)
	g.Translate(origin.X, origin.Y)
	return g
}

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	return &Renderer{renderState: renderState}
}

// Draw renders the entire screen
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorGalleryBg)
	r.drawGallery(screen)

	if r.renderState.IsPreviewVisible() {
		r.drawPreview(screen)
	}

	if r.renderState.IsShowingInfo() {
		r.drawInfoDisplay(screen)
	}
	if r.renderState.IsShowingHelp() {
		r.drawHelpOverlay(screen)
	}
	if r.renderState.GetOverlayMessage() != "" && time.Since(r.renderState.GetOverlayMessageTime()) < overlayMessageDuration {
		r.drawOverlayMessage(screen)
	}
}

func (r *Renderer) drawGallery(screen *ebiten.Image) {
	gallery := r.renderState.GetGallery()
	if gallery == nil {
		return
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	face := newFace(r.renderState.GetFontSize() * 0.7)

	for i, it := range gallery.Items() {
		cell := gallery.CellRect(i, w)
		if cell.Top+cell.Height < 0 || cell.Top > float64(h) {
			continue
		}
		DrawFilledRect(screen, cell.Left, cell.Top, cell.Width, cell.Height, colorCellBg)

		switch {
		case it.Failed:
			DrawStrokeRect(screen, cell.Left+1, cell.Top+1, cell.Width-2, cell.Height-2, 2, colorLightRed)
			DrawText(screen, "!", face, cell.Left+cell.Width/2-4, cell.Top+cell.Height/2-10, colorLightRed)
		case it.Thumb == nil:
			DrawText(screen, "...", face, cell.Left+cell.Width/2-8, cell.Top+cell.Height/2-10, colorGray)
		default:
			tw, th := float64(it.Thumb.Bounds().Dx()), float64(it.Thumb.Bounds().Dy())
			op := &ebiten.DrawImageOptions{}
			op.Filter = ebiten.FilterLinear
			op.GeoM.Translate(cell.Left+(cell.Width-tw)/2, cell.Top+(cell.Height-th)/2)
			screen.DrawImage(it.Thumb, op)
		}
	}
}

func (r *Renderer) drawPreview(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	progress, origin, fromOrigin := r.renderState.GetOpenProgress()
	if !fromOrigin {
		origin = preview.Point{X: w / 2, Y: h / 2}
	}

	mask := colorMask
	mask.A = uint8(float64(mask.A) * progress)
	DrawFilledRect(screen, 0, 0, w, h, mask)

	if img := r.renderState.GetPreviewImage(); img != nil {
		natural := preview.Size{Width: float64(img.Bounds().Dx()), Height: float64(img.Bounds().Dy())}
		g := imageGeoM(natural, r.renderState.GetPreviewLayout(), r.renderState.GetDisplayTransform())

		op := &ebiten.DrawImageOptions{}
		op.Filter = ebiten.FilterLinear
		op.GeoM = openGeoM(g, progress, origin)
		op.ColorScale.ScaleAlpha(float32(progress))
		screen.DrawImage(img, op)
	}

	// controls are hidden while a closed overlay fades out
	if !r.renderState.IsPreviewOpen() {
		return
	}
	r.drawControls(screen, layoutControls(w, h))
}

func (r *Renderer) drawControls(screen *ebiten.Image, c previewControls) {
	face := newFace(r.renderState.GetFontSize())
	hasSwitches, canPrev, canNext := r.renderState.CanNavigate()

	drawButton := func(rect preview.Rect, label string, fg color.RGBA) {
		DrawFilledRect(screen, rect.Left, rect.Top, rect.Width, rect.Height, bgColorLight)
		tw, th := MeasureText(label, face)
		DrawText(screen, label, face, rect.Left+(rect.Width-tw)/2, rect.Top+(rect.Height-th)/2, fg)
	}

	drawButton(c.Close, "×", colorWhite)
	for _, b := range c.Toolbar {
		drawButton(b.Rect, b.Label, colorWhite)
	}

	if hasSwitches {
		if canPrev {
			drawButton(c.Prev, "‹", colorWhite)
		}
		if canNext {
			drawButton(c.Next, "›", colorWhite)
		}

		cur, total := r.renderState.GetProgress()
		progressText := fmt.Sprintf("%d / %d", cur, total)
		tw, _ := MeasureText(progressText, face)
		sw := float64(screen.Bounds().Dx())
		DrawText(screen, progressText, face, (sw-tw)/2, controlMargin+8, colorWhite)
	}
}

// buildInfoString returns the status line shown at the bottom right.
func (r *Renderer) buildInfoString() string {
	parts := []string{}
	if r.renderState.IsPreviewOpen() {
		t := r.renderState.GetDisplayTransform()
		cur, total := r.renderState.GetProgress()
		parts = append(parts,
			fmt.Sprintf("[%d/%d] %s", cur, total, r.renderState.GetCurrentTitle()),
			fmt.Sprintf("%.0f%%", t.Scale*100),
			fmt.Sprintf("%.0f°", t.Rotate))
	} else if g := r.renderState.GetGallery(); g != nil {
		parts = append(parts, fmt.Sprintf("%d images", len(g.Items())))
	}
	parts = append(parts, "Sort: "+r.renderState.GetSortMethodName())
	return strings.Join(parts, " | ")
}

func (r *Renderer) drawInfoDisplay(screen *ebiten.Image) {
	infoFont := newFace(r.renderState.GetFontSize())
	infoText := r.buildInfoString()
	textWidth, textHeight := MeasureText(infoText, infoFont)

	// Position at bottom right corner, above the toolbar while previewing
	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding
	if r.renderState.IsPreviewOpen() {
		textY -= controlSize + controlMargin
	}

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding, textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)
	DrawText(screen, infoText, infoFont, textX, textY, colorWhite)
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image) {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	padding := 40.0
	fontSize := r.renderState.GetFontSize()
	helpFont := newFace(fontSize)

	keybindings := r.renderState.GetKeybindings()
	mousebindings := r.renderState.GetMousebindings()
	configStatus := r.renderState.GetConfigStatus()

	DrawFilledRect(screen, 0, 0, w, h, bgColorLight)
	DrawFilledRect(screen, padding, padding, w-padding*2, h-padding*2, bgColorMedium)

	titleY := padding + 30
	DrawText(screen, "HELP:", helpFont, padding+20, titleY, colorWhite)

	currentY := titleY + fontSize*2
	lineHeight := fontSize * 1.5

	DrawText(screen, "Controls (Keyboard | Mouse):", helpFont, padding+20, currentY, colorWhite)
	currentY += lineHeight * 1.5

	// First pass: column widths
	maxActionWidth, maxInputWidth := 0.0, 0.0
	for _, def := range actionDefinitions {
		aw, _ := MeasureText(def.Name, helpFont)
		iw, _ := MeasureText(bindingsText(keybindings[def.Name], mousebindings[def.Name]), helpFont)
		maxActionWidth = math.Max(maxActionWidth, aw)
		maxInputWidth = math.Max(maxInputWidth, iw)
	}

	actionColumnX := padding + 40
	arrowColumnX := actionColumnX + maxActionWidth + 20
	inputColumnX := arrowColumnX + 30
	descColumnX := inputColumnX + maxInputWidth + 20

	for _, def := range actionDefinitions {
		keys := keybindings[def.Name]
		mouseActions := mousebindings[def.Name]
		if len(keys) == 0 && len(mouseActions) == 0 {
			continue
		}
		if currentY > h-padding-lineHeight*3 {
			break
		}

		DrawText(screen, def.Name, helpFont, actionColumnX, currentY, colorLightBlue)
		DrawText(screen, "→", helpFont, arrowColumnX, currentY, colorWhite)

		x := inputColumnX
		if len(keys) > 0 {
			keysList := strings.Join(keys, ", ")
			DrawText(screen, keysList, helpFont, x, currentY, colorYellow)
			kw, _ := MeasureText(keysList, helpFont)
			x += kw
		}
		if len(keys) > 0 && len(mouseActions) > 0 {
			DrawText(screen, " | ", helpFont, x, currentY, colorWhite)
			sw, _ := MeasureText(" | ", helpFont)
			x += sw
		}
		if len(mouseActions) > 0 {
			DrawText(screen, strings.Join(mouseActions, ", "), helpFont, x, currentY, colorCyan)
		}

		DrawText(screen, def.Description, helpFont, descColumnX, currentY, colorGray)
		currentY += lineHeight
	}

	currentY += lineHeight
	DrawText(screen, "Wheel zooms the preview; drag pans; double click toggles 1:1.", helpFont, padding+20, currentY, colorGray)
	currentY += lineHeight * 1.5

	statusColor := colorGreen
	if configStatus.Status == ConfigStatusWarning || configStatus.Status == ConfigStatusError {
		statusColor = colorOrange
	}
	DrawText(screen, "Config Status: "+configStatus.Status, helpFont, padding+20, currentY, statusColor)
	currentY += lineHeight

	for i, warning := range configStatus.Warnings {
		if i >= 2 {
			break
		}
		DrawText(screen, "• "+truncate(warning, 60), helpFont, padding+40, currentY, colorLightRed)
		currentY += lineHeight
	}
}

// bindingsText joins keyboard and mouse bindings the way the help screen
// shows them.
func bindingsText(keys, mouseActions []string) string {
	var parts []string
	if len(keys) > 0 {
		parts = append(parts, strings.Join(keys, ", "))
	}
	if len(mouseActions) > 0 {
		parts = append(parts, strings.Join(mouseActions, ", "))
	}
	return strings.Join(parts, " | ")
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	messageFont := newFace(r.renderState.GetFontSize())
	message := r.renderState.GetOverlayMessage()
	textWidth, textHeight := MeasureText(message, messageFont)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, messageFont, boxX+padding, boxY+padding, colorWhite)
}
