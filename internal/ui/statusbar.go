package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const defaultMaxStatusMessages = 100

// StatusManager owns the status bar at the bottom of the window: the
// rolling message log and the browse controls for it.
type StatusManager struct {
	messages []string
	current  int
	max      int

	label   *widget.Label
	upBtn   *widget.Button
	downBtn *widget.Button
}

// NewStatusManager creates the status bar state. maxMessages not
// positive falls back to the default.
func NewStatusManager(maxMessages int) *StatusManager {
	if maxMessages <= 0 {
		maxMessages = defaultMaxStatusMessages
	}
	sm := &StatusManager{
		messages: make([]string, 0, maxMessages),
		current:  -1,
		max:      maxMessages,
	}
	sm.label = widget.NewLabel("")
	sm.upBtn = widget.NewButtonWithIcon("", theme.MoveUpIcon(), sm.showPrevious)
	sm.downBtn = widget.NewButtonWithIcon("", theme.MoveDownIcon(), sm.showNext)
	sm.update()
	return sm
}

// Bar returns the status bar container for the window layout.
func (sm *StatusManager) Bar() fyne.CanvasObject {
	return container.NewVBox(
		widget.NewSeparator(),
		container.NewHBox(sm.upBtn, sm.downBtn, sm.label, layout.NewSpacer()),
	)
}

// AddMessage appends a status message, trimming the oldest when over
// the cap. Must run on the UI thread.
func (sm *StatusManager) AddMessage(message string) {
	sm.messages = append(sm.messages, message)
	if len(sm.messages) > sm.max {
		sm.messages = sm.messages[len(sm.messages)-sm.max:]
	}
	sm.current = len(sm.messages) - 1
	sm.update()
}

func (sm *StatusManager) showPrevious() {
	if sm.current <= 0 {
		return
	}
	sm.current--
	sm.update()
}

func (sm *StatusManager) showNext() {
	if sm.current >= len(sm.messages)-1 {
		return
	}
	sm.current++
	sm.update()
}

func (sm *StatusManager) update() {
	if len(sm.messages) == 0 {
		sm.label.SetText("")
		sm.upBtn.Disable()
		sm.downBtn.Disable()
		return
	}
	sm.label.SetText(fmt.Sprintf("[%d/%d] %s", sm.current+1, len(sm.messages), sm.messages[sm.current]))
	if sm.current <= 0 {
		sm.upBtn.Disable()
	} else {
		sm.upBtn.Enable()
	}
	if sm.current >= len(sm.messages)-1 {
		sm.downBtn.Disable()
	} else {
		sm.downBtn.Enable()
	}
}
