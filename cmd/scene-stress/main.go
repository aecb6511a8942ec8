// Command scene-stress drives a headless engine with a large, churning scene and prints a
// markdown report of frame times, phase timings and memory use.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/ReeCocho/Snek/config"
	"github.com/ReeCocho/Snek/ecs"
	"github.com/ReeCocho/Snek/engine"
	"github.com/ReeCocho/Snek/input"
	"github.com/ReeCocho/Snek/logging"
	"github.com/ReeCocho/Snek/render"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	churn := flag.Float64("churn", 0.01, "Fraction of entities destroyed, spawned and re-parented every tick.")
	workers := flag.Int("workers", 1, "Number of task workers.")
	seed := flag.Uint64("seed", 1, "Random seed.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := logging.New(config.LoggingConfig{Level: "info"})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "":
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *profileMode))
	}

	log.Info("starting scene stress test")

	backend := &countingBackend{width: 320, height: 240}
	e := engine.New(config.EngineConfig{Workers: *workers}, backend, input.New(input.NewFakeSource()),
		engine.WithLogger(log))
	defer e.Close()

	scene := e.Scene()
	cam := ecs.Add[*render.Camera](scene.Create())
	cam.Size = 120
	e.Renderer().SetMainCamera(cam)

	c := ecs.Add[*churner](scene.Create())
	c.Rate = *churn
	c.Rand = rand.New(rand.NewPCG(*seed, *seed))
	c.mesh = render.QuadMesh()
	c.material = render.NewMaterial("particle", mgl32.Vec4{1, 1, 1, 1})

	log.Info("populating scene", zap.Int("entities", *entityCount))
	for range *entityCount {
		c.spawn()
	}
	// Nest a fraction of the initial population so transform updates cascade.
	for range *entityCount / 4 {
		child := c.entities[c.Rand.IntN(len(c.entities))]
		parent := c.entities[c.Rand.IntN(len(c.entities))]
		reparent(child.Transform(), parent.Transform())
	}
	c.created, c.reparented = 0, 0

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Churn:          *churn,
		Workers:        *workers,
		Types:          scene.Registry().Count(),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			dt := e.Delta()

			updateStart := time.Now()
			e.Step(dt)
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}
	e.Pool().Wait()

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Created = c.created
	report.Destroyed = c.destroyed
	report.Reparented = c.reparented
	report.Draws = backend.draws
	report.Scene = scene.CollectStats()
	report.Pool = e.Pool().Stats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished", zap.Int64("updates", totalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatal("failed to generate report", zap.Error(err))
	}
	fmt.Println("--- End of Report ---")
}

// countingBackend discards geometry and only counts what reaches it.
type countingBackend struct {
	width, height int
	draws         uint64
}

func (b *countingBackend) BindRenderContext()                                  {}
func (b *countingBackend) BindMainContext()                                    {}
func (b *countingBackend) Clear()                                              {}
func (b *countingBackend) DrawMesh(mgl32.Mat4, *render.Mesh, *render.Material) { b.draws++ }
func (b *countingBackend) Present()                                            {}
func (b *countingBackend) Size() (int, int)                                    { return b.width, b.height }
