package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/internal/preview"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// RenderState provides read-only access to app state for the renderer
type RenderState interface {
	IsFullscreen() bool

	// Gallery
	GetGallery() *Gallery

	// Preview overlay
	IsPreviewOpen() bool
	IsPreviewVisible() bool
	GetPreviewImage() *ebiten.Image
	GetPreviewLayout() preview.Rect
	GetDisplayTransform() DisplayTransform
	GetOpenProgress() (progress float64, origin preview.Point, fromOrigin bool)
	GetProgress() (current, total int)
	CanNavigate() (hasSwitches, canPrev, canNext bool)
	GetCurrentTitle() string

	// UI state
	IsShowingHelp() bool
	IsShowingInfo() bool
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time

	// Display data
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetSortMethodName() string
	GetKeybindings() map[string][]string
	GetMousebindings() map[string][]string
}

// InputActions provides action methods for the input handler
type InputActions interface {
	// Application control
	Exit()

	// Display toggles
	ToggleHelp()
	ToggleInfo()
	ToggleFullscreen()

	// Gallery
	OpenPreview(id int, x, y float64)
	ScrollGallery(dy float64)
	CycleSortMethod()

	// Preview; ClosePreview reports whether an open overlay was closed and
	// the navigation calls whether the key was consumed.
	ClosePreview() bool
	NavigateNext() bool
	NavigatePrevious() bool
	ZoomIn()
	ZoomOut()
	RotateLeft()
	RotateRight()
	FlipHorizontal()
	FlipVertical()
	ResetTransform()

	// Messages
	ShowOverlayMessage(message string)
}

// InputState provides read-only access to input-related state
type InputState interface {
	IsPreviewOpen() bool
	IsMaskClosable() bool
}
