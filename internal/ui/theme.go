package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// galleryTheme wraps the active theme and tightens the padding so grid
// rows sit close together.
type galleryTheme struct {
	fyne.Theme
}

// Ensure galleryTheme implements fyne.Theme
var _ fyne.Theme = (*galleryTheme)(nil)

// Size overrides the default theme size for padding.
func (t *galleryTheme) Size(name fyne.ThemeSizeName) float32 {
	if name == theme.SizeNamePadding {
		return 2.0
	}
	return t.Theme.Size(name)
}

func (t *galleryTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.Theme.Color(name, variant)
}

func (t *galleryTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.Theme.Font(style)
}

func (t *galleryTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.Theme.Icon(name)
}

// NewGalleryTheme creates the padding-reducing wrapper around base.
func NewGalleryTheme(base fyne.Theme) fyne.Theme {
	return &galleryTheme{Theme: base}
}
