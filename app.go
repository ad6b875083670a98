package main

import (
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/internal/group"
	"lightbox/internal/preview"
)

// App is the ebiten.Game: a thumbnail gallery whose images open in a shared
// preview overlay.
type App struct {
	config       Config
	configStatus ConfigLoadResult
	configPath   string

	registry     *group.Registry
	gallery      *Gallery
	thumbs       *ThumbnailLoader
	imageManager ImageManager

	frames   *preview.FrameQueue
	window   *preview.Target
	session  *preview.Session
	coord    *group.Coordinator
	animator *Animator

	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
	input               *InputHandler
	renderer            *Renderer

	screenW, screenH int
	fullscreen       bool
	savedWinW        int
	savedWinH        int

	showHelp           bool
	showInfo           bool
	overlayMessage     string
	overlayMessageTime time.Time
	quitting           bool

	currentImage   *ebiten.Image
	currentSrc     string
	galleryVersion int
}

// NewApp wires the gallery, the preview session and its group coordinator.
func NewApp(status ConfigLoadResult, configPath string, paths []ImagePath) *App {
	config := status.Config
	a := &App{
		config:       config,
		configStatus: status,
		configPath:   configPath,
		screenW:      config.WindowWidth,
		screenH:      config.WindowHeight,
		registry:     group.NewRegistry(),
		frames:       preview.NewFrameQueue(),
		window:       preview.NewTarget(),
		animator:     NewAnimator(config.TransitionSeconds),
	}

	a.gallery = NewGallery(a.registry, paths, config.ThumbnailSize)
	a.thumbs = NewThumbnailLoader(config.ThumbnailSize, nil)
	a.imageManager = NewImageManager(config.CacheSize, config.PreloadCount, config.PreloadEnabled)

	a.session = preview.NewSession(preview.Config{
		Options:   config.PreviewOptions(),
		Scheduler: a.frames,
		Viewport: preview.ViewportFunc(func() preview.Size {
			return preview.Size{Width: float64(a.screenW), Height: float64(a.screenH)}
		}),
		Window: a.window,
		OnTransform: func(t preview.Transform, action preview.Action) {
			debugLog("transform %s: %+v", action, t)
			a.animator.Retarget(t, a.session.TransitionEnabled())
		},
	})
	a.coord = group.NewCoordinator(a.registry, a.session)
	a.session.OnVisibleChange(a.visibleChanged)
	a.coord.OnChange(a.currentChanged)

	a.keybindingManager = NewKeybindingManager(config.Keybindings)
	a.mousebindingManager = NewMousebindingManager(config.Mousebindings, config.Mouse)
	a.input = NewInputHandler(a, a, a, a.keybindingManager, a.mousebindingManager)
	a.renderer = NewRenderer(a)

	a.syncNavigation()
	a.thumbs.Load(a.gallery.Items())
	return a
}

func (a *App) visibleChanged(open bool) {
	if !open {
		a.animator.Close()
		return
	}
	var origin *preview.Point
	if p, ok := a.session.Origin(); ok {
		origin = &p
	}
	a.animator.Open(origin)
	a.loadCurrent()
	a.imageManager.StartPreload(a.coord.Current(), NavigationJump)
}

func (a *App) currentChanged(next, prev int) {
	a.loadCurrent()
	a.imageManager.StartPreload(next, directionOf(next, prev))
}

// loadCurrent shows the coordinator's current image. A failed load shows the
// fallback placeholder returned by the image manager.
func (a *App) loadCurrent() {
	item, ok := a.coord.CurrentItem()
	if !ok {
		a.currentImage = nil
		a.currentSrc = ""
		a.session.SetImageSize(preview.Size{})
		return
	}
	img, err := a.imageManager.GetImage(a.coord.Current())
	if err != nil {
		debugLog("showing fallback for %s: %v", item.Data.Src, err)
	}
	a.currentImage = img
	a.currentSrc = item.Data.Src
	if img != nil {
		a.session.SetImageSize(preview.Size{Width: float64(img.Bounds().Dx()), Height: float64(img.Bounds().Dy())})
	}
}

// syncNavigation hands the navigable paths to the image manager after the
// gallery changed, keeping the shown image current when it is still there.
func (a *App) syncNavigation() {
	if a.gallery.Version() == a.galleryVersion {
		return
	}
	a.galleryVersion = a.gallery.Version()
	a.imageManager.SetPaths(a.gallery.NavigablePaths())

	if a.currentSrc == "" {
		return
	}
	for i, item := range a.registry.Items() {
		if item.Data.Src == a.currentSrc {
			a.coord.SetCurrent(i)
			return
		}
	}
	// the shown image left the group
	a.coord.SetCurrent(a.coord.Current())
	if a.session.IsOpen() {
		a.loadCurrent()
	}
}

func (a *App) drainThumbnails() {
	for _, r := range a.thumbs.Drain() {
		if r.Err != nil {
			log.Printf("Warning: Failed to load thumbnail for image %d: %v", r.ID, r.Err)
			a.gallery.MarkFailed(r.ID, r.Err)
			continue
		}
		a.gallery.SetThumbnail(r.ID, ebiten.NewImageFromImage(r.Img))
	}
}

// Update advances one tick.
func (a *App) Update() error {
	if a.quitting {
		return ebiten.Termination
	}

	a.input.HandleInput()
	a.frames.Tick()
	a.drainThumbnails()
	a.syncNavigation()
	a.animator.Update(1 / float32(ebiten.TPS()))
	return nil
}

// Draw renders the frame and lets the session re-enable transitions.
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen)
	a.session.EndFrame()
}

// Layout tracks the window size; the preview viewport follows it.
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.screenW, a.screenH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (a *App) saveCurrentWindowSize() {
	if a.fullscreen {
		if a.savedWinW > 0 && a.savedWinH > 0 {
			a.config.WindowWidth = a.savedWinW
			a.config.WindowHeight = a.savedWinH
		}
	} else {
		a.config.WindowWidth, a.config.WindowHeight = ebiten.WindowSize()
	}
	if err := saveConfigToPath(a.config, a.configPath); err != nil {
		log.Printf("Warning: Failed to save config: %v", err)
	}
}

func (a *App) shutdown() {
	a.thumbs.Stop()
	a.imageManager.StopPreload()
	a.session.Destroy()
	a.gallery.Close()
}

// InputActions

func (a *App) Exit() {
	if a.quitting {
		return
	}
	a.saveCurrentWindowSize()
	a.shutdown()
	a.quitting = true
}

func (a *App) ToggleHelp() {
	a.showHelp = !a.showHelp
}

func (a *App) ToggleInfo() {
	a.showInfo = !a.showInfo
}

func (a *App) ToggleFullscreen() {
	a.fullscreen = !a.fullscreen
	if a.fullscreen {
		a.savedWinW, a.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if a.savedWinW > 0 && a.savedWinH > 0 {
		ebiten.SetWindowSize(a.savedWinW, a.savedWinH)
	}
}

func (a *App) OpenPreview(id int, x, y float64) {
	src := ""
	if it, ok := a.gallery.Item(id); ok {
		src = it.Path.Path
	}
	a.coord.PreviewFrom(id, src, x, y)
}

func (a *App) ScrollGallery(dy float64) {
	a.gallery.Scroll(dy, a.screenW, a.screenH)
}

func (a *App) CycleSortMethod() {
	a.config.SortMethod = nextSortMethod(a.config.SortMethod)
	a.gallery.Resort(GetSortStrategy(a.config.SortMethod))
	a.thumbs.Load(a.gallery.Items())
	a.syncNavigation()
	a.ShowOverlayMessage("Sort: " + getSortMethodName(a.config.SortMethod))
}

func (a *App) ClosePreview() bool {
	if !a.session.IsOpen() {
		return false
	}
	a.coord.Close()
	return true
}

func (a *App) NavigateNext() bool {
	return a.session.Key(preview.KeyEvent{Key: preview.KeyRight}, a.coord)
}

func (a *App) NavigatePrevious() bool {
	return a.session.Key(preview.KeyEvent{Key: preview.KeyLeft}, a.coord)
}

func (a *App) ZoomIn()         { a.session.ZoomIn() }
func (a *App) ZoomOut()        { a.session.ZoomOut() }
func (a *App) RotateLeft()     { a.session.RotateLeft() }
func (a *App) RotateRight()    { a.session.RotateRight() }
func (a *App) FlipHorizontal() { a.session.FlipX() }
func (a *App) FlipVertical()   { a.session.FlipY() }
func (a *App) ResetTransform() { a.session.Reset() }

func (a *App) ShowOverlayMessage(message string) {
	a.overlayMessage = message
	a.overlayMessageTime = time.Now()
}

// InputState

func (a *App) IsPreviewOpen() bool  { return a.session.IsOpen() }
func (a *App) IsMaskClosable() bool { return a.config.MaskClosable }

// PointerTargets

func (a *App) GetScreenSize() (int, int)        { return a.screenW, a.screenH }
func (a *App) PreviewSession() *preview.Session { return a.session }
func (a *App) PreviewWindow() *preview.Target   { return a.window }

// PreviewImageRect returns the on-screen box of the displayed image.
func (a *App) PreviewImageRect() preview.Rect {
	layout := a.session.Layout()
	return transformedRect(layout, a.animator.Displayed())
}

// transformedRect returns the axis aligned box of layout under t.
func transformedRect(layout preview.Rect, t DisplayTransform) preview.Rect {
	g := imageGeoM(preview.Size{Width: layout.Width, Height: layout.Height}, layout, t)
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{0, 0}, {layout.Width, 0}, {0, layout.Height}, {layout.Width, layout.Height}} {
		x, y := g.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return preview.Rect{Left: minX, Top: minY, Width: maxX - minX, Height: maxY - minY}
}

// RenderState

func (a *App) IsFullscreen() bool     { return a.fullscreen }
func (a *App) GetGallery() *Gallery   { return a.gallery }
func (a *App) IsPreviewVisible() bool { return a.session.IsOpen() || a.animator.Visible() }

func (a *App) GetPreviewImage() *ebiten.Image        { return a.currentImage }
func (a *App) GetPreviewLayout() preview.Rect        { return a.session.Layout() }
func (a *App) GetDisplayTransform() DisplayTransform { return a.animator.Displayed() }
func (a *App) GetProgress() (current, total int)     { return a.coord.Progress() }

func (a *App) GetOpenProgress() (float64, preview.Point, bool) {
	return a.animator.OpenProgress()
}

func (a *App) CanNavigate() (hasSwitches, canPrev, canNext bool) {
	return a.coord.HasSwitches(), a.coord.CanPrev(), a.coord.CanNext()
}

func (a *App) GetCurrentTitle() string {
	if item, ok := a.coord.CurrentItem(); ok {
		return item.Data.Alt
	}
	return ""
}

func (a *App) IsShowingHelp() bool                   { return a.showHelp }
func (a *App) IsShowingInfo() bool                   { return a.showInfo }
func (a *App) GetOverlayMessage() string             { return a.overlayMessage }
func (a *App) GetOverlayMessageTime() time.Time      { return a.overlayMessageTime }
func (a *App) GetFontSize() float64                  { return a.config.FontSize }
func (a *App) GetConfigStatus() ConfigLoadResult     { return a.configStatus }
func (a *App) GetSortMethodName() string             { return getSortMethodName(a.config.SortMethod) }
func (a *App) GetKeybindings() map[string][]string   { return a.keybindingManager.GetKeybindings() }
func (a *App) GetMousebindings() map[string][]string { return a.mousebindingManager.GetMousebindings() }
