// Package ui  Shortcuts for keyboard actions
package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"fynebox/internal/viewer"
)

func (a *App) buildKeyboardShortcuts() {
	// ctrl+q to quit application
	a.UI.MainWin.Canvas().AddShortcut(&desktop.CustomShortcut{
		KeyName:  fyne.KeyQ,
		Modifier: a.UI.mainModKey,
	}, func(_ fyne.Shortcut) { a.app.Quit() })

	a.UI.MainWin.Canvas().SetOnTypedKey(a.handleKey)
	a.lightbox.OnTypedKey = a.handleKey
}

// handleKey serves both the window canvas and the open lightbox.
func (a *App) handleKey(key *fyne.KeyEvent) {
	switch key.Name {
	case fyne.KeyEscape, fyne.KeyLeft, fyne.KeyRight:
		a.pauseSlideshowForUser()
		if a.router != nil {
			a.router.KeyPressed(viewer.Key(key.Name))
		}
	case fyne.KeyP, fyne.KeySpace:
		// Space on a focused thumbnail activates it instead; that
		// path never reaches the canvas handler.
		a.toggleSlideshow()
	case fyne.KeyBackspace:
		a.showPreviouslyViewed()
	case fyne.KeyQ:
		a.app.Quit()
	}
}
