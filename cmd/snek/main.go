// Command snek plays snake in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ReeCocho/Snek/audio"
	"github.com/ReeCocho/Snek/config"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/engine"
	"github.com/ReeCocho/Snek/input"
	"github.com/ReeCocho/Snek/logging"
	"github.com/ReeCocho/Snek/render/terminal"
	"github.com/ReeCocho/Snek/script"
	"github.com/ReeCocho/Snek/snake"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "snek:", err)
		os.Exit(1)
	}
}

func run() error {
	logPath := flag.String("log", "snek.log", "File to write logs to. Empty logs to stderr.")
	width := flag.Int("width", 18, "Board width in cells.")
	height := flag.Int("height", 18, "Board height in cells.")
	flag.Parse()

	// A missing .env file is fine, anything else set there lands in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	var log *zap.Logger
	if *logPath != "" {
		log, err = logging.ToFile(cfg.Logging, *logPath)
	} else {
		log, err = logging.New(cfg.Logging)
	}
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

	screen, err := terminal.New(terminal.WithLogger(log.Named("terminal")))
	if err != nil {
		return err
	}
	defer screen.Close()

	in := input.New(screen)
	in.Apply(keymap)

	e := engine.New(cfg.Engine, screen, in, engine.WithLogger(log))
	defer e.Close()
	scene := e.Scene()

	player, err := audio.NewPlayer(cfg.Audio, log.Named("audio"))
	if err != nil {
		log.Warn("audio unavailable", zap.Error(err))
		player, _ = audio.NewPlayer(config.AudioConfig{}, log.Named("audio"))
	}
	defer player.Close()
	ecs.SetResource(scene, player)

	if cfg.Script.Dir != "" {
		scripts := script.NewEngine(scene, log.Named("script"))
		defer scripts.Close()
		if err := scripts.LoadDir(cfg.Script.Dir); err != nil {
			return err
		}
	}

	board := snake.Build(scene, snake.Settings{
		Width:      *width,
		Height:     *height,
		CameraSize: cfg.Window.CameraSize,
	})
	head := board.Snake.Entity()
	ecs.Add[*audio.Beeper](head)
	if scripts, ok := ecs.Resource[*script.Engine](scene); ok && scripts.Has("snake_tick") {
		ecs.Add[*script.Behaviour](head).Bind(scripts, "snake")
	}
	ecs.Add[*quitButton](scene.Create())
	status := ecs.Add[*statusLine](scene.Create())
	status.screen, status.snake = screen, board.Snake

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	screen.Close()
	fmt.Printf("%s with %d food eaten (length %d)\n",
		board.Snake.Outcome(), board.Snake.Eaten(), len(board.Snake.Body()))
	return nil
}

// quitButton stops the engine when the Quit button is held.
type quitButton struct {
	ecs.ComponentBase

	in     *input.Input
	engine *engine.Engine
}

func (q *quitButton) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhaseBegin, ecs.PhaseTick)
}

func (q *quitButton) OnBegin() {
	q.in = ecs.MustResource[*input.Input](q.Scene())
	q.engine = ecs.MustResource[*engine.Engine](q.Scene())
}

func (q *quitButton) OnTick(float32) {
	if q.in.Button("Quit") {
		q.engine.Stop()
	}
}

// statusLine shows the score and outcome on the top terminal row.
type statusLine struct {
	ecs.ComponentBase

	screen *terminal.Screen
	snake  *snake.Snake
}

func (s *statusLine) DefaultPhases() ecs.Phases {
	return ecs.PhasesOf(ecs.PhasePreRender)
}

func (s *statusLine) OnPreRender(float32) {
	s.screen.SetStatus(fmt.Sprintf(" score %d  %s  [esc] quit", s.snake.Eaten(), s.snake.Outcome()))
}
