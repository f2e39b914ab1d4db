package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/config"
	"github.com/milk9111/parkour/engine"
	"github.com/milk9111/parkour/motion"
	"github.com/milk9111/parkour/probe"
	"github.com/milk9111/parkour/scenario"
	"github.com/milk9111/parkour/telemetry"
)

// defaultScript sprints forward and jumps every second or so; enough to see
// the engine move without authoring a scenario file.
const defaultScript = `
update := func(sim, state, tick) {
	sim.move(0, 1)
	sim.hold("sprint")
	if tick % 60 == 30 {
		sim.press("jump")
	}
}
`

func main() {
	tuningPath := flag.String("tuning", "", "tuning YAML file (defaults baked in when empty)")
	watch := flag.Bool("watch", false, "hot-reload the tuning file on change")
	scriptPath := flag.String("script", "", "scenario script driving the input")
	ticks := flag.Int("ticks", 600, "number of simulation ticks to run")
	rate := flag.Float64("rate", 60, "tick rate in Hz")
	telemetryAddr := flag.String("telemetry", "", "serve live snapshots on this address (e.g. :8090)")
	realtime := flag.Bool("realtime", false, "pace ticks to wall clock")
	flag.Parse()

	tun := config.Default()
	if *tuningPath != "" {
		loaded, err := config.Load(*tuningPath)
		if err != nil {
			log.Fatal(err)
		}
		tun = loaded
	}

	var watcher *config.Watcher
	if *watch {
		if *tuningPath == "" {
			log.Fatal("-watch requires -tuning")
		}
		w, err := config.Watch(*tuningPath)
		if err != nil {
			log.Fatal(err)
		}
		watcher = w
		defer watcher.Close()
	}

	driver, err := loadDriver(*scriptPath)
	if err != nil {
		log.Fatal(err)
	}

	world := buildStage(tun)
	eng := engine.New(tun, world, world, driver)

	var tel *telemetry.Server
	if *telemetryAddr != "" {
		tel = telemetry.NewServer()
		go func() {
			if err := tel.ListenAndServe(*telemetryAddr); err != nil {
				log.Printf("telemetry: %v", err)
			}
		}()
	}

	dt := 1.0 / *rate
	interval := time.Duration(float64(time.Second) * dt)
	prevMode := eng.Mode()

	for i := 0; i < *ticks; i++ {
		if watcher != nil {
			select {
			case fresh := <-watcher.Tunings:
				eng.SetTuning(fresh)
				log.Printf("tuning reloaded from %s", *tuningPath)
			case err := <-watcher.Errors:
				log.Printf("tuning reload failed: %v", err)
			default:
			}
		}

		eng.Tick(dt)
		ctx := eng.Context()
		events := eng.Events()

		if mode := eng.Mode(); mode != prevMode {
			fmt.Printf("tick=%d mode %s -> %s pos=(%.2f, %.2f, %.2f) speed=%.2f\n",
				ctx.TickCount, prevMode, mode,
				ctx.Position.X(), ctx.Position.Y(), ctx.Position.Z(),
				motion.HorizontalSpeed(ctx.Velocity))
			prevMode = mode
		}

		driver.Observe(scenario.Observation{
			Mode:     eng.Mode().String(),
			Position: ctx.Position,
			Velocity: ctx.Velocity,
			Grounded: ctx.Grounded,
		})

		if tel != nil {
			pres := eng.Presentation()
			tel.Publish(telemetry.Snapshot{
				Tick:     ctx.TickCount,
				Mode:     eng.Mode().String(),
				Position: [3]float64{ctx.Position.X(), ctx.Position.Y(), ctx.Position.Z()},
				Velocity: [3]float64{ctx.Velocity.X(), ctx.Velocity.Y(), ctx.Velocity.Z()},
				Speed:    motion.HorizontalSpeed(ctx.Velocity),
				Grounded: ctx.Grounded,
				Height:   pres.Height,
				FOV:      pres.FOV,
				Events:   telemetry.EventNames(events),
			})
		}

		if *realtime || tel != nil {
			time.Sleep(interval)
		}
	}

	ctx := eng.Context()
	fmt.Printf("done: ticks=%d mode=%s pos=(%.2f, %.2f, %.2f)\n",
		ctx.TickCount, eng.Mode(),
		ctx.Position.X(), ctx.Position.Y(), ctx.Position.Z())
}

func loadDriver(path string) (*scenario.Driver, error) {
	if path != "" {
		return scenario.Load(path)
	}
	return scenario.New([]byte(defaultScript))
}

// buildStage lays out a small parkour course: a main floor, a runnable wall,
// a climbable tower with a mantle ledge, a grapple block, and a water pool.
func buildStage(tun *config.Tuning) *probe.World {
	w := probe.NewWorld(tun.Body.Radius, tun.Body.StandingHeight)

	w.AddFloor(-50, -50, 50, 200, 0)

	// Wall-run wall along the right of the lane.
	w.AddBox(probe.Box{
		Min: mgl64.Vec3{4, 0, 20},
		Max: mgl64.Vec3{6, 8, 60},
	})

	// Climbable tower with a ledge on top.
	w.AddBox(probe.Box{
		Min:     mgl64.Vec3{-8, 0, 80},
		Max:     mgl64.Vec3{-4, 5, 90},
		Layer:   motion.LayerDefault | motion.LayerClimbable,
		Surface: motion.SurfaceClimbable,
	})

	// Grapple block hanging over the lane.
	w.AddBox(probe.Box{
		Min:   mgl64.Vec3{-2, 14, 110},
		Max:   mgl64.Vec3{2, 18, 114},
		Layer: motion.LayerDefault | motion.LayerGrapple,
	})

	// Water pool cut into the floor further out.
	w.AddWater(mgl64.Vec3{-10, -4, 140}, mgl64.Vec3{10, 0.5, 170})

	w.SetPosition(mgl64.Vec3{0, 0, 0})
	return w
}
