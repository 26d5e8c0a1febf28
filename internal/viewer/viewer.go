// Package viewer owns the lightbox navigation state machine. Every
// input source requests transitions through one mediator; nothing else
// may set the state.
package viewer

import (
	"sync"

	"fynebox/internal/catalog"
)

// Presenter is the rendering surface the state machine drives. The
// viewer calls it on every transition; it does not know how anything is
// drawn.
type Presenter interface {
	// ShowPhoto displays a photo full-screen with its caption.
	ShowPhoto(p catalog.Photo)
	// SetNavEnabled updates the prev/next control affordances.
	SetNavEnabled(prevEnabled, nextEnabled bool)
	// HideViewer dismisses the viewer and releases the displayed
	// full-size image reference.
	HideViewer()
}

// Preloader schedules lookahead fetches around a focal index.
type Preloader interface {
	Schedule(i int)
}

// Viewer is the navigation state machine: either closed, or open at a
// valid catalog index. Transitions are serialized; each one fully
// applies, including presenter side effects, before the next begins.
type Viewer struct {
	mu        sync.Mutex
	cat       *catalog.Catalog
	presenter Presenter
	preloader Preloader
	onChange  func(index int, open bool)

	open  bool
	index int
}

// New creates a closed viewer over a catalog. preloader may be nil to
// disable lookahead.
func New(cat *catalog.Catalog, presenter Presenter, preloader Preloader) *Viewer {
	return &Viewer{cat: cat, presenter: presenter, preloader: preloader}
}

// SetOnChange registers a callback invoked after every applied
// transition with the resulting state. No-op boundary commands do not
// fire it. The callback runs with the viewer locked and must not call
// back into it.
func (v *Viewer) SetOnChange(fn func(index int, open bool)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onChange = fn
}

// Current returns the open photo index, or false when closed.
func (v *Viewer) Current() (int, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.index, v.open
}

// IsOpen reports whether the viewer is showing a photo.
func (v *Viewer) IsOpen() bool {
	_, open := v.Current()
	return open
}

// Open shows the photo at index i. Valid from any state. An index
// outside the catalog is a caller bug and returns ErrOutOfRange with no
// state change.
func (v *Viewer) Open(i int) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.cat.InRange(i) {
		return catalog.ErrOutOfRange
	}
	v.show(i)
	return nil
}

// Next advances to the following photo. A no-op when closed or already
// at the last photo; the boundary is absorbed, not an error, because
// commands arrive from overlapping sources (key repeat, rapid swipes)
// and must be safe to over-issue.
func (v *Viewer) Next() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.open || v.index >= v.cat.Size()-1 {
		return
	}
	v.show(v.index + 1)
}

// Prev moves to the preceding photo. A no-op when closed or at the
// first photo.
func (v *Viewer) Prev() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.open || v.index <= 0 {
		return
	}
	v.show(v.index - 1)
}

// Close dismisses the viewer. Idempotent: closing a closed viewer does
// nothing, with no presenter calls.
func (v *Viewer) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.open {
		return
	}
	v.open = false
	v.presenter.HideViewer()
	if v.onChange != nil {
		v.onChange(v.index, false)
	}
}

// show applies an open transition. Callers hold the lock and have
// validated i.
func (v *Viewer) show(i int) {
	v.open = true
	v.index = i

	photo, err := v.cat.At(i)
	if err != nil {
		// Unreachable: callers validate. Keep the state consistent
		// rather than panic in a UI path.
		v.open = false
		return
	}
	v.presenter.ShowPhoto(photo)
	// Affordances are recomputed on every transition into the open
	// state: prev iff not first, next iff not last.
	v.presenter.SetNavEnabled(i > 0, i < v.cat.Size()-1)
	if v.preloader != nil {
		v.preloader.Schedule(i)
	}
	if v.onChange != nil {
		v.onChange(i, true)
	}
}
