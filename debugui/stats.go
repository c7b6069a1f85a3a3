package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/yetrix/game"
)

// FrameHistory is a ring of recent frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	index   int
	filled  int
}

func NewFrameHistory(frames int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(frames, 1))}
}

// Add records one frame of deltaTime seconds.
func (h *FrameHistory) Add(deltaTime float32) {
	h.samples[h.index] = deltaTime * 1000
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average is the mean frame time over the recorded frames.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ms := range h.samples {
		total += ms
	}
	return total / float32(h.filled)
}

// StatsWindow shows frame time and per-system timings of the simulation.
type StatsWindow struct {
	controller *game.Controller
	history    *FrameHistory
}

func NewStatsWindow(c *game.Controller, historyFrames int) *StatsWindow {
	return &StatsWindow{controller: c, history: NewFrameHistory(historyFrames)}
}

func (w *StatsWindow) Render(deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	w.history.Add(deltaTime)
	stats := w.controller.Stats()

	imgui.Text(fmt.Sprintf("Ticks: %d (%.2fs simulated)", stats.Ticks, stats.SimTime))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))

	avg := w.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000.0/avg))
	}

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &w.history.samples[0], int32(len(w.history.samples)))

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// StateWindow shows the controller snapshot and a few controls.
type StateWindow struct {
	controller *game.Controller
	onSave     func()
}

// NewStateWindow builds the window. onSave runs when the save button is pressed.
func NewStateWindow(c *game.Controller, onSave func()) *StateWindow {
	return &StateWindow{controller: c, onSave: onSave}
}

func (w *StateWindow) Render(float32) {
	if !imgui.BeginV("Game State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := w.controller.Snapshot()
	imgui.Text(fmt.Sprintf("Phase: %s (%.2fs left)", snap.Phase, snap.PhaseTimer))
	if snap.Phase == game.Rotating {
		imgui.BulletText(fmt.Sprintf("stage %s", snap.Stage))
	}
	imgui.Text(fmt.Sprintf("Score: %d  Hi: %d  Games over: %d", snap.Score, snap.HiScore, snap.GamesOver))
	imgui.Text(fmt.Sprintf("Speed: x%.3f (still %.3fs, drop %.3fs)", snap.SpeedMult, snap.StillDuration, snap.DropDuration))
	imgui.Text(fmt.Sprintf("Condition: %d (worst %d)", snap.Condition, snap.WorstCond))
	imgui.Text(fmt.Sprintf("Pending: left %d right %d rotate %d quick %v",
		snap.PendingLeft, snap.PendingRight, snap.PendingRotate, snap.QuickDrop))
	imgui.Text(fmt.Sprintf("Pieces: %d  Cells: %d  Light: %.1f", snap.Pieces, snap.Cells, snap.LightAngle))

	imgui.Separator()
	if imgui.Button("Reset") {
		w.controller.ResetGame()
	}
	imgui.SameLine()
	if imgui.Button("Save") && w.onSave != nil {
		w.onSave()
	}

	imgui.End()
}
