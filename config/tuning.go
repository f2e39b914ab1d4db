package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning is the full movement tuning sheet. Values are world units and
// seconds. Loading clamps bad values to safe minimums instead of erroring;
// a broken tuning file should never take the simulation down.
type Tuning struct {
	Gravity          float64 `yaml:"gravity"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	MaxSpeed         float64 `yaml:"max_speed"`
	GroundSnapSpeed  float64 `yaml:"ground_snap_speed"`
	LookSensitivity  float64 `yaml:"look_sensitivity"`

	Ground       GroundTuning       `yaml:"ground"`
	Jump         JumpTuning         `yaml:"jump"`
	Slide        SlideTuning        `yaml:"slide"`
	WallRun      WallRunTuning      `yaml:"wallrun"`
	Grapple      GrappleTuning      `yaml:"grapple"`
	Mantle       MantleTuning       `yaml:"mantle"`
	Climb        ClimbTuning        `yaml:"climb"`
	Swim         SwimTuning         `yaml:"swim"`
	Fly          FlyTuning          `yaml:"fly"`
	Dash         DashTuning         `yaml:"dash"`
	Stamina      PoolTuning         `yaml:"stamina"`
	Fuel         PoolTuning         `yaml:"fuel"`
	Body         BodyTuning         `yaml:"body"`
	Presentation PresentationTuning `yaml:"presentation"`
}

type GroundTuning struct {
	WalkSpeed   float64 `yaml:"walk_speed"`
	RunSpeed    float64 `yaml:"run_speed"`
	SprintSpeed float64 `yaml:"sprint_speed"`
	// WalkThreshold is the input magnitude below which the character walks.
	WalkThreshold float64 `yaml:"walk_threshold"`
	Accel         float64 `yaml:"accel"`
	Decel         float64 `yaml:"decel"`
	// SprintStaminaRate drains stamina per second while sprinting.
	SprintStaminaRate float64 `yaml:"sprint_stamina_rate"`
}

type JumpTuning struct {
	Force        float64 `yaml:"force"`
	AirJumpForce float64 `yaml:"air_jump_force"`
	MaxAirJumps  int     `yaml:"max_air_jumps"`
	CoyoteTime   float64 `yaml:"coyote_time"`
	BufferTime   float64 `yaml:"buffer_time"`
	// CutMultiplier is the one-shot multiplicative cut applied to upward
	// velocity when jump is released while ascending.
	CutMultiplier float64 `yaml:"cut_multiplier"`
	AirControl    float64 `yaml:"air_control"`
	AirSpeed      float64 `yaml:"air_speed"`

	HardLandSpeed    float64 `yaml:"hard_land_speed"`
	HardLandRecovery float64 `yaml:"hard_land_recovery"`
	SoftLandSpeed    float64 `yaml:"soft_land_speed"`
	SoftLandRecovery float64 `yaml:"soft_land_recovery"`
	// RecoverySpeedScale dampens ground speed while recovering from a hard
	// landing.
	RecoverySpeedScale float64 `yaml:"recovery_speed_scale"`
}

type SlideTuning struct {
	MinSpeed  float64 `yaml:"min_speed"`
	BaseSpeed float64 `yaml:"base_speed"`
	Duration  float64 `yaml:"duration"`
	Cooldown  float64 `yaml:"cooldown"`
	// SteerRate is how fast lateral input rotates the slide direction,
	// radians per second.
	SteerRate      float64 `yaml:"steer_rate"`
	SlopeAccel     float64 `yaml:"slope_accel"`
	FlatDecel      float64 `yaml:"flat_decel"`
	StopSpeed      float64 `yaml:"stop_speed"`
	SlopeBoost     float64 `yaml:"slope_boost"`
	SlopeThreshold float64 `yaml:"slope_threshold"`
	// JumpBoostFraction of the slide velocity carries into a jump out of
	// the slide.
	JumpBoostFraction float64 `yaml:"jump_boost_fraction"`
	ClearanceRadius   float64 `yaml:"clearance_radius"`
}

type WallRunTuning struct {
	Speed    float64 `yaml:"speed"`
	Duration float64 `yaml:"duration"`
	MinSpeed float64 `yaml:"min_speed"`
	// MinHeight the wall must extend above the contact for a run to start.
	MinHeight   float64 `yaml:"min_height"`
	ProbeRange  float64 `yaml:"probe_range"`
	InitialLift float64 `yaml:"initial_lift"`
	// WallGravity is the small downward speed the vertical component decays
	// toward over the run.
	WallGravity float64 `yaml:"wall_gravity"`
	StickForce  float64 `yaml:"stick_force"`
	// IncidenceTolerance widens the near-vertical acceptance band around
	// 90 degrees, in degrees.
	IncidenceTolerance float64 `yaml:"incidence_tolerance"`

	JumpSideForce float64 `yaml:"jump_side_force"`
	JumpUpForce   float64 `yaml:"jump_up_force"`
	JumpCooldown  float64 `yaml:"jump_cooldown"`
}

type GrappleTuning struct {
	SubMode     string  `yaml:"sub_mode"` // pull, swing, hybrid
	Speed       float64 `yaml:"speed"`
	MinDistance float64 `yaml:"min_distance"`
	MaxDistance float64 `yaml:"max_distance"`
	RopeLength  float64 `yaml:"rope_length"`
	// SpringStrength scales the corrective impulse applied per unit of
	// rope overstretch in swing mode.
	SpringStrength       float64 `yaml:"spring_strength"`
	LateralInfluence     float64 `yaml:"lateral_influence"`
	DownwardBias         float64 `yaml:"downward_bias"`
	DetachDistance       float64 `yaml:"detach_distance"`
	Cooldown             float64 `yaml:"cooldown"`
	MomentumPreservation float64 `yaml:"momentum_preservation"`
	LaunchBoost          float64 `yaml:"launch_boost"`
}

type MantleTuning struct {
	ForwardReach    float64 `yaml:"forward_reach"`
	ChestHeight     float64 `yaml:"chest_height"`
	MinLedgeHeight  float64 `yaml:"min_ledge_height"`
	MaxLedgeHeight  float64 `yaml:"max_ledge_height"`
	ScanStep        float64 `yaml:"scan_step"`
	MaxSurfaceAngle float64 `yaml:"max_surface_angle"`
	// QuickSpeed is the pre-mantle horizontal speed at or above which the
	// single-phase arc trajectory is used.
	QuickSpeed    float64 `yaml:"quick_speed"`
	QuickDuration float64 `yaml:"quick_duration"`
	ArcLift       float64 `yaml:"arc_lift"`
	LiftDuration  float64 `yaml:"lift_duration"`
	PushDuration  float64 `yaml:"push_duration"`
	// Final stand point = ledge + up*VerticalOffset - wallNormal*ForwardOffset.
	VerticalOffset float64 `yaml:"vertical_offset"`
	ForwardOffset  float64 `yaml:"forward_offset"`
	Cooldown       float64 `yaml:"cooldown"`
}

type ClimbTuning struct {
	Speed       float64 `yaml:"speed"`
	StaminaRate float64 `yaml:"stamina_rate"`
	MaxTime     float64 `yaml:"max_time"`
	ProbeRange  float64 `yaml:"probe_range"`
}

type SwimTuning struct {
	Speed         float64 `yaml:"speed"`
	VerticalSpeed float64 `yaml:"vertical_speed"`
	// Buoyancy in [0, 1]: 1 cancels gravity entirely.
	Buoyancy float64 `yaml:"buoyancy"`
	Drag     float64 `yaml:"drag"`
}

type FlyTuning struct {
	Speed         float64 `yaml:"speed"`
	VerticalSpeed float64 `yaml:"vertical_speed"`
	FuelRate      float64 `yaml:"fuel_rate"`
}

type DashTuning struct {
	Speed        float64 `yaml:"speed"`
	Duration     float64 `yaml:"duration"`
	Cooldown     float64 `yaml:"cooldown"`
	StaminaCost  float64 `yaml:"stamina_cost"`
	ExitMomentum float64 `yaml:"exit_momentum"`
}

type PoolTuning struct {
	Max        float64 `yaml:"max"`
	RegenRate  float64 `yaml:"regen_rate"`
	RegenDelay float64 `yaml:"regen_delay"`
}

type BodyTuning struct {
	Radius         float64 `yaml:"radius"`
	StandingHeight float64 `yaml:"standing_height"`
	CrouchHeight   float64 `yaml:"crouch_height"`
	GroundCheck    float64 `yaml:"ground_check"`
	MaxGroundSlope float64 `yaml:"max_ground_slope"`
}

type PresentationTuning struct {
	HeightLerpRate float64 `yaml:"height_lerp_rate"`
	WallRunTilt    float64 `yaml:"wallrun_tilt"`
	SlideTilt      float64 `yaml:"slide_tilt"`
	TiltLerpRate   float64 `yaml:"tilt_lerp_rate"`
	BaseFOV        float64 `yaml:"base_fov"`
	MaxFOVBoost    float64 `yaml:"max_fov_boost"`
	FOVLerpRate    float64 `yaml:"fov_lerp_rate"`
}

// Default returns the stock tuning sheet.
func Default() *Tuning {
	return &Tuning{
		Gravity:          25,
		TerminalVelocity: 40,
		MaxSpeed:         45,
		GroundSnapSpeed:  2,
		LookSensitivity:  1,
		Ground: GroundTuning{
			WalkSpeed:         4,
			RunSpeed:          8,
			SprintSpeed:       12,
			WalkThreshold:     0.5,
			Accel:             60,
			Decel:             45,
			SprintStaminaRate: 8,
		},
		Jump: JumpTuning{
			Force:              11,
			AirJumpForce:       10,
			MaxAirJumps:        1,
			CoyoteTime:         0.15,
			BufferTime:         0.1,
			CutMultiplier:      0.45,
			AirControl:         30,
			AirSpeed:           9,
			HardLandSpeed:      15,
			HardLandRecovery:   0.45,
			SoftLandSpeed:      10,
			SoftLandRecovery:   0.2,
			RecoverySpeedScale: 0.35,
		},
		Slide: SlideTuning{
			MinSpeed:          5,
			BaseSpeed:         15,
			Duration:          1.1,
			Cooldown:          0.8,
			SteerRate:         1.6,
			SlopeAccel:        18,
			FlatDecel:         9,
			StopSpeed:         1.5,
			SlopeBoost:        10,
			SlopeThreshold:    5,
			JumpBoostFraction: 0.35,
			ClearanceRadius:   0.3,
		},
		WallRun: WallRunTuning{
			Speed:              11,
			Duration:           2,
			MinSpeed:           5,
			MinHeight:          1.6,
			ProbeRange:         0.9,
			InitialLift:        1.5,
			WallGravity:        2.5,
			StickForce:         1.2,
			IncidenceTolerance: 10,
			JumpSideForce:      8,
			JumpUpForce:        9,
			JumpCooldown:       0.35,
		},
		Grapple: GrappleTuning{
			SubMode:              "hybrid",
			Speed:                18,
			MinDistance:          3,
			MaxDistance:          35,
			RopeLength:           20,
			SpringStrength:       12,
			LateralInfluence:     6,
			DownwardBias:         1.5,
			DetachDistance:       1.5,
			Cooldown:             1,
			MomentumPreservation: 0.8,
			LaunchBoost:          1.3,
		},
		Mantle: MantleTuning{
			ForwardReach:    0.9,
			ChestHeight:     1.2,
			MinLedgeHeight:  0.8,
			MaxLedgeHeight:  2.4,
			ScanStep:        0.2,
			MaxSurfaceAngle: 45,
			QuickSpeed:      7,
			QuickDuration:   0.35,
			ArcLift:         0.5,
			LiftDuration:    0.35,
			PushDuration:    0.25,
			VerticalOffset:  0.1,
			ForwardOffset:   0.45,
			Cooldown:        0.4,
		},
		Climb: ClimbTuning{
			Speed:       3,
			StaminaRate: 12,
			MaxTime:     2.5,
			ProbeRange:  0.7,
		},
		Swim: SwimTuning{
			Speed:         4.5,
			VerticalSpeed: 3,
			Buoyancy:      0.9,
			Drag:          1.5,
		},
		Fly: FlyTuning{
			Speed:         14,
			VerticalSpeed: 8,
			FuelRate:      10,
		},
		Dash: DashTuning{
			Speed:        22,
			Duration:     0.18,
			Cooldown:     1.2,
			StaminaCost:  15,
			ExitMomentum: 0.5,
		},
		Stamina: PoolTuning{Max: 100, RegenRate: 20, RegenDelay: 0.75},
		Fuel:    PoolTuning{Max: 100, RegenRate: 15, RegenDelay: 1.5},
		Body: BodyTuning{
			Radius:         0.35,
			StandingHeight: 1.8,
			CrouchHeight:   0.95,
			GroundCheck:    0.25,
			MaxGroundSlope: 50,
		},
		Presentation: PresentationTuning{
			HeightLerpRate: 10,
			WallRunTilt:    12,
			SlideTilt:      6,
			TiltLerpRate:   9,
			BaseFOV:        90,
			MaxFOVBoost:    12,
			FOVLerpRate:    6,
		},
	}
}

// Load reads a tuning sheet from path. Missing keys keep their defaults and
// every loaded value is clamped by Sanitize.
func Load(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	tun := Default()
	if err := yaml.Unmarshal(data, tun); err != nil {
		return nil, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	tun.Sanitize()
	return tun, nil
}

// Sanitize clamps configuration to safe minimums: negative durations become
// zero, zero max speeds fall back to defaults, fractions stay in range. Bad
// values never propagate into the simulation.
func (t *Tuning) Sanitize() {
	if t == nil {
		return
	}
	def := Default()

	posOr := func(v *float64, fallback float64) {
		if *v <= 0 {
			*v = fallback
		}
	}
	nonNeg := func(v *float64) {
		if *v < 0 {
			*v = 0
		}
	}
	frac := func(v *float64, fallback float64) {
		if *v <= 0 || *v > 1 {
			*v = fallback
		}
	}

	posOr(&t.Gravity, def.Gravity)
	posOr(&t.TerminalVelocity, def.TerminalVelocity)
	posOr(&t.MaxSpeed, def.MaxSpeed)
	nonNeg(&t.GroundSnapSpeed)
	posOr(&t.LookSensitivity, def.LookSensitivity)

	posOr(&t.Ground.WalkSpeed, def.Ground.WalkSpeed)
	posOr(&t.Ground.RunSpeed, def.Ground.RunSpeed)
	posOr(&t.Ground.SprintSpeed, def.Ground.SprintSpeed)
	frac(&t.Ground.WalkThreshold, def.Ground.WalkThreshold)
	posOr(&t.Ground.Accel, def.Ground.Accel)
	posOr(&t.Ground.Decel, def.Ground.Decel)
	nonNeg(&t.Ground.SprintStaminaRate)

	posOr(&t.Jump.Force, def.Jump.Force)
	posOr(&t.Jump.AirJumpForce, def.Jump.AirJumpForce)
	if t.Jump.MaxAirJumps < 0 {
		t.Jump.MaxAirJumps = 0
	}
	nonNeg(&t.Jump.CoyoteTime)
	nonNeg(&t.Jump.BufferTime)
	frac(&t.Jump.CutMultiplier, def.Jump.CutMultiplier)
	nonNeg(&t.Jump.AirControl)
	posOr(&t.Jump.AirSpeed, def.Jump.AirSpeed)
	posOr(&t.Jump.HardLandSpeed, def.Jump.HardLandSpeed)
	nonNeg(&t.Jump.HardLandRecovery)
	posOr(&t.Jump.SoftLandSpeed, def.Jump.SoftLandSpeed)
	nonNeg(&t.Jump.SoftLandRecovery)
	frac(&t.Jump.RecoverySpeedScale, def.Jump.RecoverySpeedScale)

	posOr(&t.Slide.MinSpeed, def.Slide.MinSpeed)
	posOr(&t.Slide.BaseSpeed, def.Slide.BaseSpeed)
	nonNeg(&t.Slide.Duration)
	nonNeg(&t.Slide.Cooldown)
	nonNeg(&t.Slide.SteerRate)
	nonNeg(&t.Slide.SlopeAccel)
	nonNeg(&t.Slide.FlatDecel)
	nonNeg(&t.Slide.StopSpeed)
	nonNeg(&t.Slide.SlopeBoost)
	nonNeg(&t.Slide.SlopeThreshold)
	frac(&t.Slide.JumpBoostFraction, def.Slide.JumpBoostFraction)
	posOr(&t.Slide.ClearanceRadius, def.Slide.ClearanceRadius)

	posOr(&t.WallRun.Speed, def.WallRun.Speed)
	nonNeg(&t.WallRun.Duration)
	nonNeg(&t.WallRun.MinSpeed)
	posOr(&t.WallRun.MinHeight, def.WallRun.MinHeight)
	posOr(&t.WallRun.ProbeRange, def.WallRun.ProbeRange)
	nonNeg(&t.WallRun.InitialLift)
	nonNeg(&t.WallRun.WallGravity)
	nonNeg(&t.WallRun.StickForce)
	if t.WallRun.IncidenceTolerance <= 0 || t.WallRun.IncidenceTolerance >= 90 {
		t.WallRun.IncidenceTolerance = def.WallRun.IncidenceTolerance
	}
	nonNeg(&t.WallRun.JumpSideForce)
	nonNeg(&t.WallRun.JumpUpForce)
	nonNeg(&t.WallRun.JumpCooldown)

	switch t.Grapple.SubMode {
	case "pull", "swing", "hybrid":
	default:
		t.Grapple.SubMode = def.Grapple.SubMode
	}
	posOr(&t.Grapple.Speed, def.Grapple.Speed)
	nonNeg(&t.Grapple.MinDistance)
	posOr(&t.Grapple.MaxDistance, def.Grapple.MaxDistance)
	if t.Grapple.MaxDistance < t.Grapple.MinDistance {
		t.Grapple.MaxDistance = t.Grapple.MinDistance
	}
	posOr(&t.Grapple.RopeLength, def.Grapple.RopeLength)
	nonNeg(&t.Grapple.SpringStrength)
	nonNeg(&t.Grapple.LateralInfluence)
	nonNeg(&t.Grapple.DownwardBias)
	posOr(&t.Grapple.DetachDistance, def.Grapple.DetachDistance)
	nonNeg(&t.Grapple.Cooldown)
	frac(&t.Grapple.MomentumPreservation, def.Grapple.MomentumPreservation)
	posOr(&t.Grapple.LaunchBoost, def.Grapple.LaunchBoost)

	posOr(&t.Mantle.ForwardReach, def.Mantle.ForwardReach)
	posOr(&t.Mantle.ChestHeight, def.Mantle.ChestHeight)
	posOr(&t.Mantle.MinLedgeHeight, def.Mantle.MinLedgeHeight)
	posOr(&t.Mantle.MaxLedgeHeight, def.Mantle.MaxLedgeHeight)
	if t.Mantle.MaxLedgeHeight < t.Mantle.MinLedgeHeight {
		t.Mantle.MaxLedgeHeight = t.Mantle.MinLedgeHeight
	}
	posOr(&t.Mantle.ScanStep, def.Mantle.ScanStep)
	if t.Mantle.MaxSurfaceAngle <= 0 || t.Mantle.MaxSurfaceAngle >= 90 {
		t.Mantle.MaxSurfaceAngle = def.Mantle.MaxSurfaceAngle
	}
	nonNeg(&t.Mantle.QuickSpeed)
	posOr(&t.Mantle.QuickDuration, def.Mantle.QuickDuration)
	nonNeg(&t.Mantle.ArcLift)
	posOr(&t.Mantle.LiftDuration, def.Mantle.LiftDuration)
	posOr(&t.Mantle.PushDuration, def.Mantle.PushDuration)
	nonNeg(&t.Mantle.VerticalOffset)
	nonNeg(&t.Mantle.ForwardOffset)
	nonNeg(&t.Mantle.Cooldown)

	posOr(&t.Climb.Speed, def.Climb.Speed)
	nonNeg(&t.Climb.StaminaRate)
	posOr(&t.Climb.MaxTime, def.Climb.MaxTime)
	posOr(&t.Climb.ProbeRange, def.Climb.ProbeRange)

	posOr(&t.Swim.Speed, def.Swim.Speed)
	posOr(&t.Swim.VerticalSpeed, def.Swim.VerticalSpeed)
	frac(&t.Swim.Buoyancy, def.Swim.Buoyancy)
	nonNeg(&t.Swim.Drag)

	posOr(&t.Fly.Speed, def.Fly.Speed)
	posOr(&t.Fly.VerticalSpeed, def.Fly.VerticalSpeed)
	nonNeg(&t.Fly.FuelRate)

	posOr(&t.Dash.Speed, def.Dash.Speed)
	posOr(&t.Dash.Duration, def.Dash.Duration)
	nonNeg(&t.Dash.Cooldown)
	nonNeg(&t.Dash.StaminaCost)
	frac(&t.Dash.ExitMomentum, def.Dash.ExitMomentum)

	posOr(&t.Stamina.Max, def.Stamina.Max)
	nonNeg(&t.Stamina.RegenRate)
	nonNeg(&t.Stamina.RegenDelay)
	posOr(&t.Fuel.Max, def.Fuel.Max)
	nonNeg(&t.Fuel.RegenRate)
	nonNeg(&t.Fuel.RegenDelay)

	posOr(&t.Body.Radius, def.Body.Radius)
	posOr(&t.Body.StandingHeight, def.Body.StandingHeight)
	posOr(&t.Body.CrouchHeight, def.Body.CrouchHeight)
	if t.Body.CrouchHeight > t.Body.StandingHeight {
		t.Body.CrouchHeight = t.Body.StandingHeight
	}
	posOr(&t.Body.GroundCheck, def.Body.GroundCheck)
	if t.Body.MaxGroundSlope <= 0 || t.Body.MaxGroundSlope >= 90 {
		t.Body.MaxGroundSlope = def.Body.MaxGroundSlope
	}

	posOr(&t.Presentation.HeightLerpRate, def.Presentation.HeightLerpRate)
	nonNeg(&t.Presentation.WallRunTilt)
	nonNeg(&t.Presentation.SlideTilt)
	posOr(&t.Presentation.TiltLerpRate, def.Presentation.TiltLerpRate)
	posOr(&t.Presentation.BaseFOV, def.Presentation.BaseFOV)
	nonNeg(&t.Presentation.MaxFOVBoost)
	posOr(&t.Presentation.FOVLerpRate, def.Presentation.FOVLerpRate)
}
