// Package scenario drives the movement engine from tengo scripts: a script
// defines update(sim, state, tick) and steers the character through the sim
// object (move, look, press, hold, release), which makes repeatable movement
// scenarios cheap to author without recording real input.
package scenario

import (
	"fmt"
	"os"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/milk9111/parkour/motion"
)

const dispatchScript = `
if __phase == "update" {
	update(__sim, __state, __tick)
}
`

var buttonNames = map[string]motion.Button{
	"jump":    motion.ButtonJump,
	"crouch":  motion.ButtonCrouch,
	"sprint":  motion.ButtonSprint,
	"dash":    motion.ButtonDash,
	"grapple": motion.ButtonGrapple,
	"fly":     motion.ButtonFly,
}

// Driver compiles a scenario script once and replays it as a motion.Source.
// Holds persist across ticks until released; press is a one-tick tap. The
// press/release edges in the produced samples are derived from the held
// transitions, so scripts never manage edge state themselves.
type Driver struct {
	compiled *tengo.Compiled
	state    *tengo.Map

	tick     uint64
	held     motion.Button
	prevHeld motion.Button
	taps     motion.Button
	move     mgl64.Vec2
	look     mgl64.Vec2

	obs Observation
}

// Observation is the engine state snapshot scripts can read back.
type Observation struct {
	Mode     string
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Grounded bool
}

// Load reads and compiles a scenario script from disk.
func Load(path string) (*Driver, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", path, err)
	}
	d, err := New(src)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", path, err)
	}
	return d, nil
}

// New compiles a scenario script from source.
func New(src []byte) (*Driver, error) {
	script := tengo.NewScript(append(append([]byte{}, src...), []byte("\n"+dispatchScript)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__sim", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__tick", int64(0))

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile: %w", err)
	}

	return &Driver{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Observe feeds the engine state the script will see on its next update.
// Call it right after each engine tick.
func (d *Driver) Observe(obs Observation) {
	d.obs = obs
}

// Sample runs the script's update for one tick and returns the input it
// produced. Script errors zero the input for the tick rather than halting
// the simulation.
func (d *Driver) Sample() motion.Sample {
	d.move = mgl64.Vec2{}
	d.look = mgl64.Vec2{}
	d.taps = 0

	if err := d.run("update"); err != nil {
		fmt.Printf("scenario: tick=%d script error: %v\n", d.tick, err)
	}
	d.tick++

	held := d.held | d.taps
	s := motion.Sample{
		Move:     d.move,
		Look:     d.look,
		Held:     held,
		Pressed:  held &^ d.prevHeld,
		Released: d.prevHeld &^ held,
	}
	d.prevHeld = held
	return s
}

func (d *Driver) run(phase string) error {
	if err := d.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := d.compiled.Set("__sim", d.simObject()); err != nil {
		return err
	}
	if err := d.compiled.Set("__state", d.state); err != nil {
		return err
	}
	if err := d.compiled.Set("__tick", int64(d.tick)); err != nil {
		return err
	}
	return d.compiled.Run()
}

func (d *Driver) simObject() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["move"] = &tengo.UserFunction{Name: "move", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		d.move = mgl64.Vec2{objectAsFloat(args[0]), objectAsFloat(args[1])}
		return tengo.TrueValue, nil
	}}

	values["look"] = &tengo.UserFunction{Name: "look", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		d.look = mgl64.Vec2{objectAsFloat(args[0]), objectAsFloat(args[1])}
		return tengo.TrueValue, nil
	}}

	values["press"] = d.buttonFunc("press", func(b motion.Button) { d.taps |= b })
	values["hold"] = d.buttonFunc("hold", func(b motion.Button) { d.held |= b })
	values["release"] = d.buttonFunc("release", func(b motion.Button) { d.held &^= b })

	values["mode"] = &tengo.UserFunction{Name: "mode", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: d.obs.Mode}, nil
	}}

	values["grounded"] = &tengo.UserFunction{Name: "grounded", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if d.obs.Grounded {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["position"] = vecFunc("position", func() mgl64.Vec3 { return d.obs.Position })
	values["velocity"] = vecFunc("velocity", func() mgl64.Vec3 { return d.obs.Velocity })

	values["speed"] = &tengo.UserFunction{Name: "speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: motion.HorizontalSpeed(d.obs.Velocity)}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func (d *Driver) buttonFunc(name string, apply func(motion.Button)) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		b, ok := buttonNames[strings.TrimSpace(strings.ToLower(objectAsString(args[0])))]
		if !ok {
			return tengo.FalseValue, nil
		}
		apply(b)
		return tengo.TrueValue, nil
	}}
}

func vecFunc(name string, get func() mgl64.Vec3) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		v := get()
		return &tengo.ImmutableArray{Value: []tengo.Object{
			&tengo.Float{Value: v.X()},
			&tengo.Float{Value: v.Y()},
			&tengo.Float{Value: v.Z()},
		}}, nil
	}}
}

func objectAsString(o tengo.Object) string {
	if s, ok := o.(*tengo.String); ok {
		return s.Value
	}
	return o.String()
}

func objectAsFloat(o tengo.Object) float64 {
	switch v := o.(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	}
	return 0
}
