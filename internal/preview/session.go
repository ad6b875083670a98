package preview

// Options configures a preview session.
type Options struct {
	MinScale  float64
	MaxScale  float64
	ScaleStep float64
	Movable   bool
}

// DefaultOptions returns the stock zoom bounds with dragging enabled.
func DefaultOptions() Options {
	return Options{
		MinScale:  DefaultMinScale,
		MaxScale:  DefaultMaxScale,
		ScaleStep: DefaultScaleStep,
		Movable:   true,
	}
}

// normalized replaces unusable values with defaults.
func (o Options) normalized() Options {
	if o.MinScale <= 0 {
		o.MinScale = DefaultMinScale
	}
	if o.MaxScale < o.MinScale {
		o.MaxScale = o.MinScale
	}
	if o.ScaleStep <= 0 {
		o.ScaleStep = DefaultScaleStep
	}
	return o
}

// Navigator switches between the images of a group.
type Navigator interface {
	Count() int
	Active(offset int)
}

// Config wires a Session to its collaborators.
type Config struct {
	Options   Options
	Scheduler Scheduler
	Viewport  Viewport

	// Element is the previewed image. When nil the session lays out an
	// image of NaturalSize itself; see SetImageSize.
	Element     Element
	NaturalSize Size

	// Window receives window level pointer and touch events. Parent is an
	// optional embedding context the pointer listeners are mirrored to.
	Window EventTarget
	Parent EventTarget

	OnTransform TransformObserver
}

// Session is one open preview: its transform, gestures and actions.
type Session struct {
	opts     Options
	store    *Store
	zoomer   *Zoomer
	viewport Viewport
	image    *ImageElement

	pointer *PointerHandler
	touch   *TouchHandler

	open          bool
	origin        *Point
	transitionOff bool
	onVisible     []func(bool)
}

// NewSession creates a closed session.
func NewSession(cfg Config) *Session {
	opts := cfg.Options.normalized()
	s := &Session{
		opts:     opts,
		store:    NewStore(cfg.Scheduler),
		viewport: cfg.Viewport,
	}

	el := cfg.Element
	if el == nil {
		s.image = NewImageElement(cfg.NaturalSize, cfg.Viewport, s.store.Latest)
		el = s.image
	}
	s.zoomer = NewZoomer(s.store, el, cfg.Viewport, Limits{MinScale: opts.MinScale, MaxScale: opts.MaxScale})

	g := gesture{
		store:    s.store,
		zoomer:   s.zoomer,
		element:  el,
		viewport: cfg.Viewport,
		open:     s.IsOpen,
	}
	s.pointer = newPointerHandler(g, opts.ScaleStep, cfg.Window, cfg.Parent)
	s.touch = newTouchHandler(g, opts.MinScale, cfg.Window)

	if cfg.OnTransform != nil {
		s.store.Subscribe(cfg.OnTransform)
	}
	s.SetMovable(opts.Movable)
	return s
}

// Options returns the normalized options.
func (s *Session) Options() Options {
	return s.opts
}

// Transform returns the committed transform.
func (s *Session) Transform() Transform {
	return s.store.Transform()
}

// Store exposes the underlying transform store.
func (s *Session) Store() *Store {
	return s.store
}

// Pointer returns the mouse gesture handler.
func (s *Session) Pointer() *PointerHandler {
	return s.pointer
}

// Touch returns the touch gesture handler.
func (s *Session) Touch() *TouchHandler {
	return s.touch
}

// OnTransform registers an observer and returns a func removing it.
func (s *Session) OnTransform(fn TransformObserver) func() {
	return s.store.Subscribe(fn)
}

// OnVisibleChange registers a callback fired when the session opens or closes.
func (s *Session) OnVisibleChange(fn func(open bool)) {
	s.onVisible = append(s.onVisible, fn)
}

// SetImageSize updates the natural size of the session-owned element.
func (s *Session) SetImageSize(size Size) {
	if s.image != nil {
		s.image.SetNaturalSize(size)
	}
}

// Layout returns the box of the previewed image at the identity transform.
func (s *Session) Layout() Rect {
	return s.zoomer.element.Layout()
}

// SetMovable enables or disables mouse and touch panning.
func (s *Session) SetMovable(movable bool) {
	s.opts.Movable = movable
	s.pointer.SetMovable(movable)
	s.touch.SetMovable(movable)
}

// IsOpen reports whether the overlay is shown.
func (s *Session) IsOpen() bool {
	return s.open
}

// Origin returns the screen point the overlay opened from, if any.
func (s *Session) Origin() (Point, bool) {
	if s.origin == nil {
		return Point{}, false
	}
	return *s.origin, true
}

// Open shows the overlay. origin is the click position the opening
// animation grows from; nil opens from the viewport center.
func (s *Session) Open(origin *Point) {
	if origin != nil {
		p := *origin
		s.origin = &p
	} else {
		s.origin = nil
	}
	if s.open {
		return
	}
	s.open = true
	s.touch.sync()
	for _, fn := range s.onVisible {
		fn(true)
	}
}

// Close hides the overlay, ends any gesture and resets the transform.
func (s *Session) Close() {
	if !s.open {
		return
	}
	s.open = false
	s.origin = nil
	s.pointer.cancel()
	s.touch.cancel()
	s.touch.sync()
	s.store.Reset(ActionClose)
	for _, fn := range s.onVisible {
		fn(false)
	}
}

// Destroy releases every listener and pending frame.
func (s *Session) Destroy() {
	s.store.Close()
	s.pointer.Close()
	s.touch.Close()
}

// Switch prepares for showing another image: the next transition is not
// animated and the transform goes back to identity.
func (s *Session) Switch(action Action) {
	s.transitionOff = true
	s.store.Reset(action)
}

// Moving reports whether a mouse drag is in progress.
func (s *Session) Moving() bool {
	return s.pointer.Moving()
}

// TransitionEnabled reports whether the presentation should animate toward
// the committed transform this frame.
func (s *Session) TransitionEnabled() bool {
	return !s.transitionOff && !s.pointer.Moving() && !s.touch.Touching()
}

// EndFrame is called once the presentation has drawn a frame.
func (s *Session) EndFrame() {
	s.transitionOff = false
}

// ZoomIn zooms one step around the viewport center.
func (s *Session) ZoomIn() {
	s.zoomer.Zoom(baseScaleRatio+s.opts.ScaleStep, ActionZoomIn, nil, false)
}

// ZoomOut undoes one ZoomIn step.
func (s *Session) ZoomOut() {
	s.zoomer.Zoom(baseScaleRatio/(baseScaleRatio+s.opts.ScaleStep), ActionZoomOut, nil, false)
}

// RotateLeft rotates 90 degrees counter-clockwise.
func (s *Session) RotateLeft() {
	s.store.Update(RotateTo(s.store.Latest().Rotate-90), ActionRotateLeft)
}

// RotateRight rotates 90 degrees clockwise.
func (s *Session) RotateRight() {
	s.store.Update(RotateTo(s.store.Latest().Rotate+90), ActionRotateRight)
}

// FlipX mirrors horizontally.
func (s *Session) FlipX() {
	s.store.Update(Patch{FlipX: ptr(!s.store.Latest().FlipX)}, ActionFlipX)
}

// FlipY mirrors vertically.
func (s *Session) FlipY() {
	s.store.Update(Patch{FlipY: ptr(!s.store.Latest().FlipY)}, ActionFlipY)
}

// Reset returns to the identity transform.
func (s *Session) Reset() {
	s.store.Reset(ActionReset)
}

// Key handles a key press. Escape always closes; the arrow keys switch
// images only when nav is non-nil and holds more than one image.
func (s *Session) Key(ev KeyEvent, nav Navigator) bool {
	if !s.open {
		return false
	}
	switch ev.Key {
	case KeyEscape:
		s.Close()
		return true
	case KeyLeft, KeyRight:
		if nav == nil || nav.Count() <= 1 {
			return false
		}
		if ev.Key == KeyLeft {
			nav.Active(-1)
		} else {
			nav.Active(1)
		}
		return true
	}
	return false
}
