package main

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/yetrix/board"
	"github.com/plus3/yetrix/debugui"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/internal/session"
	"github.com/plus3/yetrix/view"
)

var shapeColors = [board.ShapeCount]color.RGBA{
	{179, 229, 252, 255},
	{186, 225, 255, 255},
	{255, 223, 186, 255},
	{255, 255, 186, 255},
	{186, 255, 201, 255},
	{255, 179, 186, 255},
	{217, 186, 255, 255},
}

var (
	frozenColor   = color.RGBA{150, 150, 160, 255}
	wallColor     = color.RGBA{70, 70, 80, 255}
	selectedColor = color.RGBA{255, 80, 80, 255}
)

var keyIntents = []struct {
	keys   []ebiten.Key
	intent game.Intent
}{
	{[]ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}, game.IntentLeft},
	{[]ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}, game.IntentRight},
	{[]ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}, game.IntentRotate},
	{[]ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}, game.IntentDown},
	{[]ebiten.Key{ebiten.KeySpace}, game.IntentDrop},
}

// Game implements ebiten.Game on top of the controller and its scene.
type Game struct {
	session *session.Session
	scene   *view.Scene
	overlay *debugui.Overlay
	cells   *debugui.CellBrowser
	tick    float64
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.overlay != nil && inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Toggle()
	}

	if g.overlay == nil || !g.overlay.WantsKeyboard() {
		for _, binding := range keyIntents {
			for _, key := range binding.keys {
				if inpututil.IsKeyJustPressed(key) {
					g.session.Controller.Apply(binding.intent)
				}
			}
		}
	}

	g.session.Controller.Advance(g.tick)
	g.scene.Update(g.tick)

	if g.overlay != nil {
		g.overlay.Update()
	}
	return nil
}

func (g *Game) save() {
	if err := g.session.Controller.Save(context.Background()); err != nil {
		g.session.Log.Error("save failed", "err", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor(g.scene.Light()))

	cfg := g.session.Config.Board
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	cellPx := math.Min(float64(w)/float64(cfg.RightBorderX+1), float64(h)/float64(cfg.SpawnY+3))
	originX := (float64(w) - cellPx*float64(cfg.RightBorderX+1)) / 2
	floorY := float64(h) - cellPx

	for y := 0; y <= cfg.CheckHeight; y++ {
		drawCell(screen, originX, floorY-float64(y)*cellPx, cellPx, wallColor)
		drawCell(screen, originX+float64(cfg.RightBorderX)*cellPx, floorY-float64(y)*cellPx, cellPx, wallColor)
	}
	for x := 1; x < cfg.RightBorderX; x++ {
		drawCell(screen, originX+float64(x)*cellPx, floorY, cellPx, wallColor)
	}

	blockSize := g.scene.BlockSize()
	b := g.session.Controller.Board()
	selected, hasSelected := board.CellID(0), false
	if g.cells != nil {
		selected, hasSelected = g.cells.Selected()
	}
	for _, a := range g.scene.Actors() {
		pos := a.Pos()
		// cells lifted toward the viewer draw larger
		scale := 1 + pos.Depth/(blockSize*6)
		size := cellPx * scale
		cx := originX + pos.X/blockSize*cellPx + cellPx/2
		cy := floorY - pos.Y/blockSize*cellPx + cellPx/2

		clr := frozenColor
		if cell, ok := b.Cell(a.ID); ok && !cell.Frozen() {
			if p, ok := b.Piece(cell.Piece); ok {
				clr = shapeColors[p.Shape]
			}
		}
		if hasSelected && a.ID == selected {
			drawCell(screen, cx-size/2-2, cy-size/2-2, size+4, selectedColor)
		}
		drawCell(screen, cx-size/2, cy-size/2, size, fade(clr, a.Alpha()))
	}

	snap := g.session.Controller.Snapshot()
	ebitenutil.DebugPrintAt(screen, g.scene.ScoreText(), 10, 10)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s  x%.2f", snap.Phase, snap.SpeedMult), 10, 26)
	if n := g.scene.GameOvers(); n > 0 {
		score, hi := g.scene.LastGameOver()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("last game %d (best %d)", score, hi), 10, 42)
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

func drawCell(dst *ebiten.Image, x, y, size float64, clr color.RGBA) {
	const gap = 1
	vector.DrawFilledRect(dst, float32(x+gap), float32(y+gap), float32(size-2*gap), float32(size-2*gap), clr, false)
}

// fade scales a color by alpha. Colors are premultiplied.
func fade(c color.RGBA, alpha float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

// skyColor brightens the background as the sun climbs.
func skyColor(angle float64) color.RGBA {
	t := math.Max(0, math.Min(1, (angle+10)/90))
	return color.RGBA{
		R: uint8(20 + 60*t),
		G: uint8(24 + 90*t),
		B: uint8(40 + 140*t),
		A: 255,
	}
}
