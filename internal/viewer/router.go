package viewer

// Key identifies a pressed key by name, mirroring the toolkit's key
// names without importing it, so routing stays testable headless.
type Key string

// Keys the router reacts to.
const (
	KeyEscape Key = "Escape"
	KeyLeft   Key = "Left"
	KeyRight  Key = "Right"
	KeyReturn Key = "Return"
	KeyEnter  Key = "Enter"
	KeySpace  Key = "Space"
)

// DefaultSwipeThreshold is the horizontal displacement, in logical
// pixels, a touch gesture must cover to count as a swipe.
const DefaultSwipeThreshold float32 = 50

// Router normalizes heterogeneous input events into the viewer's
// navigation commands. It holds no navigation state of its own beyond
// the gesture in progress.
type Router struct {
	viewer         *Viewer
	swipeThreshold float32

	touchStartX float32
	tracking    bool
}

// NewRouter creates a router dispatching to v. A non-positive threshold
// falls back to DefaultSwipeThreshold.
func NewRouter(v *Viewer, swipeThreshold float32) *Router {
	if swipeThreshold <= 0 {
		swipeThreshold = DefaultSwipeThreshold
	}
	return &Router{viewer: v, swipeThreshold: swipeThreshold}
}

// ThumbnailTapped handles pointer activation of the thumbnail at i.
func (r *Router) ThumbnailTapped(i int) {
	r.viewer.Open(i)
}

// ThumbnailKey handles a key press on a focused thumbnail. Only the
// activate keys open the viewer.
func (r *Router) ThumbnailKey(i int, k Key) {
	switch k {
	case KeyReturn, KeyEnter, KeySpace:
		r.viewer.Open(i)
	}
}

// KeyPressed handles a viewer-level key press. All keyboard navigation
// is ignored while the viewer is closed.
func (r *Router) KeyPressed(k Key) {
	if !r.viewer.IsOpen() {
		return
	}
	switch k {
	case KeyEscape:
		r.viewer.Close()
	case KeyLeft:
		r.viewer.Prev()
	case KeyRight:
		r.viewer.Next()
	}
}

// PrevTapped handles the dedicated previous control. The UI must stop
// the event there; it may not also reach the background dismiss.
func (r *Router) PrevTapped() {
	r.viewer.Prev()
}

// NextTapped handles the dedicated next control.
func (r *Router) NextTapped() {
	r.viewer.Next()
}

// BackgroundTapped handles a pointer tap on the viewer background,
// outside the image and controls, which dismisses the viewer.
func (r *Router) BackgroundTapped() {
	r.viewer.Close()
}

// TouchStart records the horizontal position at gesture start.
func (r *Router) TouchStart(x float32) {
	r.touchStartX = x
	r.tracking = true
}

// TouchEnd classifies the finished gesture. Displacement beyond the
// threshold is a swipe: finger moving right-to-left (start > end)
// advances, the opposite goes back. Vertical movement is ignored;
// gestures under the threshold emit nothing.
func (r *Router) TouchEnd(x float32) {
	if !r.tracking {
		return
	}
	r.tracking = false

	diff := r.touchStartX - x
	switch {
	case diff > r.swipeThreshold:
		r.viewer.Next()
	case diff < -r.swipeThreshold:
		r.viewer.Prev()
	}
}
