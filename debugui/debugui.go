// Package debugui draws Dear ImGui inspection windows over the ebiten frontend: scheduler
// timing, the controller state and a browser of the board cells.
package debugui

import (
	"time"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
)

// Window is one ImGui window rendered every frame.
type Window interface {
	Render(deltaTime float32)
}

// Overlay owns the ImGui backend and the windows drawn on top of the game.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend
	windows []Window
	timer   *FrameTimer
	visible bool
}

// NewOverlay creates the ebiten window through the ImGui backend. It must run before
// ebiten.RunGame.
func NewOverlay(title string, width, height int, windows ...Window) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		backend: backend,
		windows: windows,
		timer:   NewFrameTimer(),
		visible: true,
	}
}

func (o *Overlay) Toggle() { o.visible = !o.visible }

// WantsKeyboard reports whether ImGui consumes keyboard input this frame.
func (o *Overlay) WantsKeyboard() bool {
	return o.visible && imgui.CurrentIO().WantCaptureKeyboard()
}

// Update builds the ImGui frame. Call it from ebiten's Update.
func (o *Overlay) Update() {
	dt := o.timer.GetDeltaTime()

	o.backend.BeginFrame()
	if o.visible {
		for _, w := range o.windows {
			w.Render(dt)
		}
	}
	o.backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}

type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float32 {
	now := time.Now()
	delta := float32(now.Sub(ft.lastFrameTime).Seconds())
	ft.lastFrameTime = now
	return delta
}
