// Command snek-inspect plays snake in an ebiten window with the scene inspector open.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/ReeCocho/Snek/audio"
	"github.com/ReeCocho/Snek/config"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/ecs/debugui"
	debugui_ebiten "github.com/ReeCocho/Snek/ecs/debugui/ebiten"
	"github.com/ReeCocho/Snek/engine"
	"github.com/ReeCocho/Snek/input"
	"github.com/ReeCocho/Snek/logging"
	"github.com/ReeCocho/Snek/render/ebitenrender"
	"github.com/ReeCocho/Snek/snake"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Game hosts the engine inside ebiten's update loop. The scene ticks between the imgui
// frame markers so inspector windows can draw during PreRender.
type Game struct {
	engine   *engine.Engine
	backend  *ebitenrender.Backend
	keyboard *ebitenrender.Keyboard
	imgui    *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	if g.engine.Stopped() || g.keyboard.ShouldClose() {
		return ebiten.Termination
	}
	g.imgui.BeginFrame()
	g.engine.Step(g.engine.Delta())
	g.imgui.EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// The render worker publishes a finished frame on Present.
	g.backend.Draw(screen)
	g.imgui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.SetSize(outsideWidth, outsideHeight)
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "snek-inspect:", err)
		os.Exit(1)
	}
}

func run() error {
	width := flag.Int("width", 18, "Board width in cells.")
	height := flag.Int("height", 18, "Board height in cells.")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer log.Sync()

	keymap := input.DefaultKeymap()
	if cfg.Input.Keymap != "" {
		if keymap, err = input.LoadKeymap(cfg.Input.Keymap); err != nil {
			return err
		}
	}

	imguiBackend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	backend := ebitenrender.New(cfg.Window.Width, cfg.Window.Height)
	keyboard := ebitenrender.NewKeyboard()

	in := input.New(keyboard)
	in.Apply(keymap)

	e := engine.New(cfg.Engine, backend, in, engine.WithLogger(log))
	defer e.Close()
	scene := e.Scene()

	player, err := audio.NewPlayer(cfg.Audio, log.Named("audio"))
	if err != nil {
		log.Warn("audio unavailable", zap.Error(err))
		player, _ = audio.NewPlayer(config.AudioConfig{}, log.Named("audio"))
	}
	defer player.Close()
	ecs.SetResource(scene, player)

	board := snake.Build(scene, snake.Settings{
		Width:      *width,
		Height:     *height,
		CameraSize: cfg.Window.CameraSize,
	})
	ecs.Add[*audio.Beeper](board.Snake.Entity())
	debugui.Spawn(scene)

	ebiten.SetWindowTitle(cfg.Window.Title)
	game := &Game{
		engine:   e,
		backend:  backend,
		keyboard: keyboard,
		imgui:    imguiBackend,
	}
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}

	log.Info("game finished",
		zap.Stringer("outcome", board.Snake.Outcome()),
		zap.Int("eaten", board.Snake.Eaten()))
	return nil
}
