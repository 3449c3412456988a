package ui

import (
	"fmt"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"InkBoard/internal/export"
	"InkBoard/internal/paper"
	"InkBoard/internal/tool"
)

// --- Custom widget for color swatches ---

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// --- The main toolbar ---

func NewToolbar(win fyne.Window, board *BoardWidget, mgr *paper.Manager, machine *tool.Machine) fyne.CanvasObject {
	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			machine.SetTool(tool.Pen)
		}),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			machine.SetTool(tool.Eraser)
		}),
		widget.NewToolbarAction(theme.MediaStopIcon(), func() {
			machine.SetTool(tool.Rectangle)
		}),
		widget.NewToolbarAction(theme.DocumentIcon(), func() {
			machine.SetTool(tool.Text)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			mgr.Undo()
		}),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() {
			mgr.Redo()
		}),
	)

	files := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			machine.Finalize()
			mgr.NewPaper("Untitled")
		}),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() {
			machine.Finalize()
			if _, err := mgr.Save(); err != nil {
				dialog.ShowError(err, win)
			}
		}),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() {
			showOpenDialog(win, mgr, machine)
		}),
		widget.NewToolbarAction(theme.DownloadIcon(), func() {
			showExportDialog(win, mgr)
		}),
	)

	onColorTapped := func(c color.Color) {
		s := machine.Settings()
		hex := hexOf(c)
		s.StrokeColor = hex
		s.RectColor = hex
		s.TextColor = hex
		machine.SetSettings(s)
	}
	colorBox := container.NewHBox(
		newColorSwatch(color.Black, onColorTapped),
		newColorSwatch(color.NRGBA{R: 220, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{G: 160, A: 255}, onColorTapped),
		newColorSwatch(color.NRGBA{B: 220, A: 255}, onColorTapped),
	)

	widthSlider := widget.NewSlider(1, 30)
	widthSlider.SetValue(float64(machine.Settings().StrokeWidth))
	widthSlider.OnChanged = func(val float64) {
		s := machine.Settings()
		s.StrokeWidth = float32(val)
		machine.SetSettings(s)
	}
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), widthSlider)

	gridSelect := widget.NewSelect(
		[]string{"none", "horizontal", "vertical", "square"},
		func(chosen string) {
			t := paper.GridType(chosen)
			mgr.SetGrid(paper.GridPatch{Type: &t})
		},
	)
	gridSelect.SetSelected(string(mgr.Grid().Type))

	return container.NewHBox(
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewLabel("Size:"),
		sliderBox,
		widget.NewSeparator(),
		widget.NewLabel("Grid:"),
		gridSelect,
		layout.NewSpacer(),
		files,
	)
}

func showOpenDialog(win fyne.Window, mgr *paper.Manager, machine *tool.Machine) {
	saved := mgr.ListSaved()
	if len(saved) == 0 {
		dialog.ShowInformation("Open", "No saved papers yet", win)
		return
	}

	list := widget.NewList(
		func() int { return len(saved) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			s := saved[i]
			obj.(*widget.Label).SetText(fmt.Sprintf("%s (%d elements)", s.Name, s.ElementCount))
		},
	)

	d := dialog.NewCustom("Open paper", "Cancel", container.NewGridWrap(fyne.NewSize(320, 240), list), win)
	list.OnSelected = func(i widget.ListItemID) {
		machine.Finalize()
		if err := mgr.Load(saved[i].ID); err != nil {
			log.Printf("ui: load paper: %v", err)
			dialog.ShowError(err, win)
		}
		d.Hide()
	}
	d.Show()
}

func showExportDialog(win fyne.Window, mgr *paper.Manager) {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if err := export.PDF(writer, mgr.Snapshot()); err != nil {
			log.Printf("ui: export pdf: %v", err)
			dialog.ShowError(err, win)
		}
	}, win)
}
