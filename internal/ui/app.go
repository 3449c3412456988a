package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"

	"InkBoard/internal/paper"
	"InkBoard/internal/tool"
)

// RunApp builds the window around the board, hooks up refresh and keyboard
// shortcuts, and blocks until the window closes.
func RunApp(board *BoardWidget, mgr *paper.Manager, machine *tool.Machine) {
	a := app.New()
	win := a.NewWindow("InkBoard")
	win.Resize(fyne.NewSize(1024, 768))

	mgr.OnChange = func() { board.Refresh() }
	machine.OnPreview = func() { board.Refresh() }

	toolbar := NewToolbar(win, board, mgr, machine)
	win.SetContent(container.NewBorder(toolbar, nil, nil, nil, board))
	win.Canvas().Focus(board)

	undoShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierControl}
	win.Canvas().AddShortcut(undoShortcut, func(fyne.Shortcut) { mgr.Undo() })
	redoShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierControl}
	win.Canvas().AddShortcut(redoShortcut, func(fyne.Shortcut) { mgr.Redo() })

	win.SetOnClosed(func() {
		machine.Finalize()
		mgr.FlushSave()
	})

	win.ShowAndRun()
}
