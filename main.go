package main

import (
	"log"
	"os"
	"path/filepath"

	"InkBoard/internal/input"
	"InkBoard/internal/paper"
	"InkBoard/internal/store"
	"InkBoard/internal/tool"
	"InkBoard/internal/ui"
)

func main() {
	st := openStore()
	mgr := paper.NewManager(st)
	machine := tool.NewMachine()
	norm := input.NewNormalizer()

	// Tool output feeds the document.
	machine.OnCommit = func(e paper.Element) { mgr.AddElement(e) }
	machine.OnErase = func(r paper.Rect) { mgr.EraseInRect(r) }

	// Normalized gestures feed the tool machine.
	norm.On(input.EventStrokeStart, func(e input.Event) {
		machine.GestureStart(e.X, e.Y, e.Pressure)
	})
	norm.On(input.EventStrokeMove, func(e input.Event) {
		machine.GestureMove(e.X, e.Y, e.Pressure)
	})
	norm.On(input.EventStrokeEnd, func(e input.Event) {
		machine.GestureEnd(e.X, e.Y, e.Pressure)
	})
	norm.On(input.EventClick, func(e input.Event) {
		machine.Click(e.X, e.Y)
	})
	norm.On(input.EventPenButton, func(e input.Event) {
		if e.PenTool == input.PenHintEraser {
			machine.SetTool(tool.Eraser)
		} else {
			machine.SetTool(tool.Pen)
		}
	})
	norm.On(input.EventKey, func(e input.Event) {
		if machine.HandleKey(e.Key) {
			return
		}
		// Unconsumed keys act as tool shortcuts.
		switch e.Key.Key {
		case "p":
			machine.SetTool(tool.Pen)
		case "e":
			machine.SetTool(tool.Eraser)
		case "r":
			machine.SetTool(tool.Rectangle)
		case "t":
			machine.SetTool(tool.Text)
		}
	})

	board := ui.NewBoardWidget(mgr, machine)
	norm.Attach(board)

	ui.RunApp(board, mgr, machine)
}

func openStore() store.Store {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("no home directory, papers will not persist: %v", err)
		return store.NewMemory()
	}
	st, err := store.OpenDir(filepath.Join(home, ".inkboard"))
	if err != nil {
		log.Printf("opening paper store: %v, papers will not persist", err)
		return store.NewMemory()
	}
	return st
}
