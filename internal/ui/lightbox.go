package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fynebox/internal/catalog"
	"fynebox/internal/viewer"
)

// Lightbox is the full-screen photo overlay. It renders whatever the
// navigation core tells it to show and forwards its pointer and touch
// events back to the router.
type Lightbox struct {
	win    fyne.Window
	images *ImageManager
	router *viewer.Router

	// OnTypedKey receives key presses while the overlay holds focus,
	// so window-level bindings keep working with the viewer open.
	OnTypedKey func(ev *fyne.KeyEvent)
	// OnUserNav fires on manual navigation input, before the command
	// is routed. The slideshow pauses on it.
	OnUserNav func()

	image      *swipeImage
	caption    *widget.Label
	prevBtn    *widget.Button
	nextBtn    *widget.Button
	background *dismissArea
	overlay    fyne.CanvasObject
	visible    bool

	// wantSrc is the location of the photo the overlay currently
	// shows. Fetch completions for any other location are stale and
	// get dropped.
	wantSrc string
}

// NewLightbox creates the hidden overlay for win.
func NewLightbox(win fyne.Window, images *ImageManager) *Lightbox {
	lb := &Lightbox{win: win, images: images}

	lb.image = newSwipeImage(lb)
	lb.caption = widget.NewLabel("")
	lb.caption.Alignment = fyne.TextAlignCenter
	lb.prevBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() {
		lb.userNav()
		if lb.router != nil {
			lb.router.PrevTapped()
		}
	})
	lb.nextBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() {
		lb.userNav()
		if lb.router != nil {
			lb.router.NextTapped()
		}
	})
	closeBtn := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		lb.userNav()
		if lb.router != nil {
			lb.router.BackgroundTapped()
		}
	})
	lb.background = newDismissArea(lb)

	lb.overlay = container.NewStack(
		lb.background,
		container.NewBorder(
			container.NewHBox(layout.NewSpacer(), closeBtn),
			lb.caption,
			container.NewCenter(lb.prevBtn),
			container.NewCenter(lb.nextBtn),
			lb.image,
		),
	)
	return lb
}

// SetRouter attaches the router the overlay controls dispatch to. Must
// be called whenever a new catalog is loaded.
func (lb *Lightbox) SetRouter(r *viewer.Router) {
	lb.router = r
}

func (lb *Lightbox) userNav() {
	if lb.OnUserNav != nil {
		lb.OnUserNav()
	}
}

// ShowPhoto displays p full-screen with its caption, raising the
// overlay if it is not up yet.
func (lb *Lightbox) ShowPhoto(p catalog.Photo) {
	lb.caption.SetText(fmt.Sprintf("%s (%s)", p.Filename, p.CaptionDate()))
	src := lb.images.FullSizeLocation(p)
	lb.wantSrc = src
	lb.image.SetResource(lb.images.FullSize(p, func(res fyne.Resource) {
		lb.completeFullSize(src, res)
	}))
	if !lb.visible {
		lb.visible = true
		lb.win.Canvas().Overlays().Add(lb.overlay)
	}
	lb.win.Canvas().Focus(lb.image)
}

// SetNavEnabled updates the prev/next control affordances.
func (lb *Lightbox) SetNavEnabled(prevEnabled, nextEnabled bool) {
	if prevEnabled {
		lb.prevBtn.Enable()
	} else {
		lb.prevBtn.Disable()
	}
	if nextEnabled {
		lb.nextBtn.Enable()
	} else {
		lb.nextBtn.Disable()
	}
}

// HideViewer dismisses the overlay and drops the full-size resource so
// it can be collected.
func (lb *Lightbox) HideViewer() {
	if !lb.visible {
		return
	}
	lb.visible = false
	lb.wantSrc = ""
	lb.win.Canvas().Overlays().Remove(lb.overlay)
	lb.image.SetResource(nil)
	lb.win.Canvas().Unfocus()
}

// completeFullSize installs a finished fetch, unless the overlay has
// moved on to another photo or closed since the fetch started.
func (lb *Lightbox) completeFullSize(src string, res fyne.Resource) {
	if src != lb.wantSrc {
		return
	}
	lb.image.SetResource(res)
}

// swipeImage shows the full-size photo and translates horizontal drags
// into the router's touch events. Taps on the image are absorbed so
// they do not reach the dismiss area underneath.
type swipeImage struct {
	widget.BaseWidget
	image *canvas.Image
	lb    *Lightbox

	dragging bool
	lastX    float32
}

func newSwipeImage(lb *Lightbox) *swipeImage {
	s := &swipeImage{
		image: canvas.NewImageFromResource(nil),
		lb:    lb,
	}
	s.image.FillMode = canvas.ImageFillContain
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (s *swipeImage) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.image)
}

// SetResource updates the displayed photo and refreshes.
func (s *swipeImage) SetResource(res fyne.Resource) {
	s.image.Resource = res
	canvas.Refresh(s.image)
}

// Tapped absorbs the tap. Only the area outside the image dismisses.
func (s *swipeImage) Tapped(_ *fyne.PointEvent) {}

// Dragged tracks an in-progress horizontal gesture.
func (s *swipeImage) Dragged(ev *fyne.DragEvent) {
	if s.lb.router == nil {
		return
	}
	if !s.dragging {
		s.dragging = true
		s.lb.router.TouchStart(ev.Position.X - ev.Dragged.DX)
	}
	s.lastX = ev.Position.X
}

// DragEnd classifies the finished gesture.
func (s *swipeImage) DragEnd() {
	if !s.dragging || s.lb.router == nil {
		return
	}
	s.dragging = false
	s.lb.userNav()
	s.lb.router.TouchEnd(s.lastX)
}

// FocusGained satisfies fyne.Focusable so key events reach the overlay.
func (s *swipeImage) FocusGained() {}

// FocusLost satisfies fyne.Focusable.
func (s *swipeImage) FocusLost() {}

// TypedRune satisfies fyne.Focusable.
func (s *swipeImage) TypedRune(_ rune) {}

// TypedKey forwards keys pressed while the overlay holds focus.
func (s *swipeImage) TypedKey(ev *fyne.KeyEvent) {
	if s.lb.OnTypedKey != nil {
		s.lb.OnTypedKey(ev)
	}
}

// dismissArea is the dark backdrop behind the photo. Tapping it closes
// the viewer.
type dismissArea struct {
	widget.BaseWidget
	rect *canvas.Rectangle
	lb   *Lightbox
}

func newDismissArea(lb *Lightbox) *dismissArea {
	d := &dismissArea{
		rect: canvas.NewRectangle(color.NRGBA{A: 0xE6}),
		lb:   lb,
	}
	d.ExtendBaseWidget(d)
	return d
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (d *dismissArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.rect)
}

// Tapped closes the viewer.
func (d *dismissArea) Tapped(_ *fyne.PointEvent) {
	d.lb.userNav()
	if d.lb.router != nil {
		d.lb.router.BackgroundTapped()
	}
}
