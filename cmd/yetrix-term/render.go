package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/view"
)

var shapeColors = [board.ShapeCount]tcell.Color{
	tcell.ColorAqua,
	tcell.ColorBlue,
	tcell.ColorOrange,
	tcell.ColorYellow,
	tcell.ColorGreen,
	tcell.ColorRed,
	tcell.ColorPurple,
}

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	frozenStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

func quitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func intentFor(ev *tcell.EventKey) (game.Intent, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return game.IntentLeft, true
	case tcell.KeyRight:
		return game.IntentRight, true
	case tcell.KeyUp:
		return game.IntentRotate, true
	case tcell.KeyDown:
		return game.IntentDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			return game.IntentLeft, true
		case 'd':
			return game.IntentRight, true
		case 'w':
			return game.IntentRotate, true
		case 's':
			return game.IntentDown, true
		case ' ':
			return game.IntentDrop, true
		}
	}
	return 0, false
}

// draw renders the board two columns per cell with row 0 at the bottom of the well.
func draw(screen tcell.Screen, c *game.Controller, scene *view.Scene) {
	screen.Clear()

	cfg := c.Config().Board
	_, h := screen.Size()
	top := 2
	height := max(cfg.SpawnY+2, cfg.CheckHeight+1)
	floor := min(top+height, h-1)

	put := func(x, y int, r rune, style tcell.Style) {
		row := floor - y
		if row < top {
			return
		}
		screen.SetContent(2*x, row, r, nil, style)
		screen.SetContent(2*x+1, row, r, nil, style)
	}

	for y := 0; y <= cfg.CheckHeight; y++ {
		put(0, y, '#', wallStyle)
		put(cfg.RightBorderX, y, '#', wallStyle)
	}
	for x := 1; x < cfg.RightBorderX; x++ {
		put(x, 0, '#', wallStyle)
	}

	b := c.Board()
	blockSize := scene.BlockSize()
	for _, a := range scene.Actors() {
		pos := a.Pos()
		x := int(math.Round(pos.X / blockSize))
		y := int(math.Round(pos.Y / blockSize))

		style := frozenStyle
		if cell, ok := b.Cell(a.ID); ok && !cell.Frozen() {
			if p, ok := b.Piece(cell.Piece); ok {
				style = tcell.StyleDefault.Foreground(shapeColors[p.Shape])
			}
		}
		r := '█'
		if a.Destroying() {
			r = '░'
		} else if pos.Depth > 0 {
			r = '▓'
		}
		put(x, y, r, style)
	}

	snap := c.Snapshot()
	writeText(screen, 0, 0, fmt.Sprintf("score %s  %s  x%.2f", scene.ScoreText(), snap.Phase, snap.SpeedMult), textStyle)
	if n := scene.GameOvers(); n > 0 {
		score, hi := scene.LastGameOver()
		writeText(screen, 0, 1, fmt.Sprintf("last game %d (best %d)", score, hi), textStyle)
	}

	screen.Show()
}

func writeText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
