package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"fynebox/internal/viewer"
)

// thumbnail is a custom widget for one grid cell. It opens the photo on
// tap and, when focused, on the activate keys.
type thumbnail struct {
	widget.BaseWidget
	image  *canvas.Image
	border *canvas.Rectangle
	index  int
	router *viewer.Router
}

// newThumbnail creates a thumbnail widget for the photo at index.
func newThumbnail(res fyne.Resource, index int, router *viewer.Router) *thumbnail {
	t := &thumbnail{
		image:  canvas.NewImageFromResource(res),
		border: canvas.NewRectangle(color.Transparent),
		index:  index,
		router: router,
	}
	t.image.FillMode = canvas.ImageFillContain
	t.border.StrokeWidth = 2
	t.ExtendBaseWidget(t) // Important: call this to register the widget
	return t
}

// CreateRenderer is a mandatory method for a Fyne widget.
func (t *thumbnail) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(t.image, t.border))
}

// Tapped is called when the widget is tapped.
func (t *thumbnail) Tapped(_ *fyne.PointEvent) {
	t.router.ThumbnailTapped(t.index)
}

// SetResource updates the image resource and refreshes.
func (t *thumbnail) SetResource(res fyne.Resource) {
	t.image.Resource = res
	canvas.Refresh(t.image)
}

// SetMinSize sets the minimum size of the thumbnail cell.
func (t *thumbnail) SetMinSize(size fyne.Size) {
	t.image.SetMinSize(size)
}

// FocusGained marks the cell so keyboard users can see where they are.
func (t *thumbnail) FocusGained() {
	t.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
	t.border.Refresh()
}

// FocusLost clears the focus marker.
func (t *thumbnail) FocusLost() {
	t.border.StrokeColor = color.Transparent
	t.border.Refresh()
}

// TypedRune satisfies fyne.Focusable.
func (t *thumbnail) TypedRune(_ rune) {}

// TypedKey forwards activate keys for the focused cell.
func (t *thumbnail) TypedKey(ev *fyne.KeyEvent) {
	t.router.ThumbnailKey(t.index, viewer.Key(ev.Name))
}
