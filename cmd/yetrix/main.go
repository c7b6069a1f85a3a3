package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/plus3/yetrix/config"
	"github.com/plus3/yetrix/debugui"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/internal/session"
	"github.com/plus3/yetrix/sound"
	"github.com/plus3/yetrix/view"
)

const (
	ScreenWidth  = 720
	ScreenHeight = 960
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults to $YETRIX_CONFIG).")
	logMode := flag.String("log", "", "Log mode: dev, prod or silent. Overrides the config.")
	debug := flag.Bool("debug", false, "Show the ImGui debug windows (toggle with F1).")
	flag.Parse()

	sounder, err := newEbitenSounder()
	if err != nil {
		log.Fatalf("audio: %v", err)
	}

	var scene *view.Scene
	opts := session.Options{ConfigPath: *configPath, LogMode: *logMode}
	s, err := session.Open(opts, func(cfg config.Config, l *slog.Logger) []game.Option {
		scene = view.NewScene(cfg, sounder, l)
		return []game.Option{game.WithPresenter(scene), game.WithListener(scene)}
	})
	if err != nil {
		log.Fatalf("start: %v", err)
	}
	s.Restore(context.Background())

	g := &Game{
		session: s,
		scene:   scene,
		tick:    1.0 / float64(ebiten.TPS()),
	}

	if *debug {
		g.cells = debugui.NewCellBrowser(s.Controller.Board(), 40)
		g.overlay = debugui.NewOverlay("Yetrix", ScreenWidth, ScreenHeight,
			debugui.NewStatsWindow(s.Controller, 120),
			debugui.NewStateWindow(s.Controller, g.save),
			g.cells,
		)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("Yetrix")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	runErr := ebiten.RunGame(g)
	if err := s.Close(context.Background()); err != nil {
		s.Log.Error("final save failed", "err", err)
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}

// ebitenSounder plays pre-rendered PCM through the ebiten audio context.
type ebitenSounder struct {
	ctx *audio.Context
	pcm map[string][]byte
}

func newEbitenSounder() (*ebitenSounder, error) {
	s := &ebitenSounder{
		ctx: audio.NewContext(int(sound.SampleRate)),
		pcm: make(map[string][]byte),
	}
	for _, name := range sound.Names() {
		data, err := sound.PCM16(name, sound.SampleRate)
		if err != nil {
			return nil, err
		}
		s.pcm[name] = data
	}
	return s, nil
}

func (s *ebitenSounder) Play(name string) bool {
	data, ok := s.pcm[name]
	if !ok {
		return false
	}
	s.ctx.NewPlayerFromBytes(data).Play()
	return true
}
