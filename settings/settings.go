package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/oerror"
	"github.com/oomph-ac/traverse/probe"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings contains every tunable value of the character. A single value is passed to each constructor.
type Settings struct {
	// Debug enables verbose probe and decision tracing.
	Debug bool `toml:"debug" yaml:"debug"`

	Layers Layers `toml:"layers" yaml:"layers"`
	Player Player `toml:"player" yaml:"player"`
	Ledge  Ledge  `toml:"ledge" yaml:"ledge"`
	Climb  Climb  `toml:"climb" yaml:"climb"`
	IK     IK     `toml:"ik" yaml:"ik"`
}

// Layers are the collision layer masks used by the probes.
type Layers struct {
	// Climbable is the mask of surfaces a ledge can be found on.
	Climbable probe.LayerMask `toml:"climbable" yaml:"climbable"`
	// Obstacle is the mask of everything that blocks the character.
	Obstacle probe.LayerMask `toml:"obstacle" yaml:"obstacle"`
	// Anchor is the mask of discrete hop targets.
	Anchor probe.LayerMask `toml:"anchor" yaml:"anchor"`
	// Ground is the mask probed by the air-state classifier.
	Ground probe.LayerMask `toml:"ground" yaml:"ground"`
}

// Player holds the body shape, air-state classification and locomotion settings.
type Player struct {
	CapsuleCenter mgl32.Vec3 `toml:"capsule_center" yaml:"capsule_center"`
	CapsuleRadius float32    `toml:"capsule_radius" yaml:"capsule_radius"`
	CapsuleHeight float32    `toml:"capsule_height" yaml:"capsule_height"`

	// GroundProbeHeight is how far above the pivot the downward ground probe starts.
	GroundProbeHeight   float32 `toml:"ground_probe_height" yaml:"ground_probe_height"`
	GroundProbeRadius   float32 `toml:"ground_probe_radius" yaml:"ground_probe_radius"`
	GroundProbeDistance float32 `toml:"ground_probe_distance" yaml:"ground_probe_distance"`
	// GroundingThreshold is the probe distance under which the character is grounded.
	GroundingThreshold float32 `toml:"grounding_threshold" yaml:"grounding_threshold"`
	// FallingThreshold is the probe distance over which the character is falling.
	FallingThreshold float32 `toml:"falling_threshold" yaml:"falling_threshold"`

	WalkSpeed     float32 `toml:"walk_speed" yaml:"walk_speed"`
	SprintSpeed   float32 `toml:"sprint_speed" yaml:"sprint_speed"`
	SpeedLerpRate float32 `toml:"speed_lerp_rate" yaml:"speed_lerp_rate"`
	JumpVelocity  float32 `toml:"jump_velocity" yaml:"jump_velocity"`
}

// Capsule returns the collision capsule of the character.
func (p Player) Capsule() probe.Capsule {
	return probe.Capsule{Center: p.CapsuleCenter, Radius: p.CapsuleRadius, Height: p.CapsuleHeight}
}

// Ledge holds the ledge perception settings. Offsets are local to the character or to the wall-facing frame.
type Ledge struct {
	// ClimbOriginDown is the origin of the downward probe, local to the character.
	ClimbOriginDown mgl32.Vec3 `toml:"climb_origin_down" yaml:"climb_origin_down"`
	MinStepHeight   float32    `toml:"min_step_height" yaml:"min_step_height"`
	DownProbeRadius float32    `toml:"down_probe_radius" yaml:"down_probe_radius"`

	// ForwardProbeDrop is how far below the down hit the forward probe starts.
	ForwardProbeDrop float32 `toml:"forward_probe_drop" yaml:"forward_probe_drop"`
	// ForwardProbeBack is how far behind the character the forward probe starts.
	ForwardProbeBack     float32 `toml:"forward_probe_back" yaml:"forward_probe_back"`
	ForwardProbeDistance float32 `toml:"forward_probe_distance" yaml:"forward_probe_distance"`

	WallAngleMax   float32 `toml:"wall_angle_max" yaml:"wall_angle_max"`
	GroundAngleMax float32 `toml:"ground_angle_max" yaml:"ground_angle_max"`

	EndVerticalBias   float32    `toml:"end_vertical_bias" yaml:"end_vertical_bias"`
	EndOffset         mgl32.Vec3 `toml:"end_offset" yaml:"end_offset"`
	PenetrationMargin float32    `toml:"penetration_margin" yaml:"penetration_margin"`
	// InflateMargin is subtracted from the capsule radius for the climb-over clearance sweeps.
	InflateMargin float32 `toml:"inflate_margin" yaml:"inflate_margin"`

	SideProbeStandoff   float32 `toml:"side_probe_standoff" yaml:"side_probe_standoff"`
	SideProbeHeight     float32 `toml:"side_probe_height" yaml:"side_probe_height"`
	SideProbeDistance   float32 `toml:"side_probe_distance" yaml:"side_probe_distance"`
	WrapOverlapRadius   float32 `toml:"wrap_overlap_radius" yaml:"wrap_overlap_radius"`
	CornerProbeBack     float32 `toml:"corner_probe_back" yaml:"corner_probe_back"`
	CornerProbeDistance float32 `toml:"corner_probe_distance" yaml:"corner_probe_distance"`
	MinCornerAngle      float32 `toml:"min_corner_angle" yaml:"min_corner_angle"`
	MaxCornerAngle      float32 `toml:"max_corner_angle" yaml:"max_corner_angle"`

	// BraceOffset is the origin of the brace probe in the wall-facing frame of the forward hit.
	BraceOffset   mgl32.Vec3 `toml:"brace_offset" yaml:"brace_offset"`
	BraceRadius   float32    `toml:"brace_radius" yaml:"brace_radius"`
	BraceDistance float32    `toml:"brace_distance" yaml:"brace_distance"`

	BracedLeftHand  mgl32.Vec3 `toml:"braced_left_hand" yaml:"braced_left_hand"`
	BracedRightHand mgl32.Vec3 `toml:"braced_right_hand" yaml:"braced_right_hand"`
	FreeLeftHand    mgl32.Vec3 `toml:"free_left_hand" yaml:"free_left_hand"`
	FreeRightHand   mgl32.Vec3 `toml:"free_right_hand" yaml:"free_right_hand"`
	BracedHop       mgl32.Vec3 `toml:"braced_hop" yaml:"braced_hop"`
	FreeHop         mgl32.Vec3 `toml:"free_hop" yaml:"free_hop"`
	VaultOffset     mgl32.Vec3 `toml:"vault_offset" yaml:"vault_offset"`
	ClimbOverOffset mgl32.Vec3 `toml:"climb_over_offset" yaml:"climb_over_offset"`

	AnchorStandoff float32 `toml:"anchor_standoff" yaml:"anchor_standoff"`
	AnchorRadius   float32 `toml:"anchor_radius" yaml:"anchor_radius"`
	AnchorDistance float32 `toml:"anchor_distance" yaml:"anchor_distance"`

	// HoldRadius is the radius around the held point that the grabbed surface must still overlap.
	HoldRadius float32 `toml:"hold_radius" yaml:"hold_radius"`
}

// Climb holds the decision thresholds and timings of the climb state machine.
type Climb struct {
	StepHeight  float32 `toml:"step_height" yaml:"step_height"`
	VaultHeight float32 `toml:"vault_height" yaml:"vault_height"`
	HangHeight  float32 `toml:"hang_height" yaml:"hang_height"`
	// HandReach is the height above the pivot that the hands reach while airborne.
	HandReach float32 `toml:"hand_reach" yaml:"hand_reach"`
	// ProximityGate is how far the ledge may be from HandReach for an airborne grab.
	ProximityGate float32 `toml:"proximity_gate" yaml:"proximity_gate"`

	// RegrabCooldown is how long, in seconds, decisions are suppressed after a hang, vault or drop.
	RegrabCooldown float32 `toml:"regrab_cooldown" yaml:"regrab_cooldown"`
	IntentLerpRate float32 `toml:"intent_lerp_rate" yaml:"intent_lerp_rate"`
	MoveDeadzone   float32 `toml:"move_deadzone" yaml:"move_deadzone"`
	// RotateSpeed is the rate, in degrees per second, of the rotation correction towards a target pose.
	RotateSpeed  float32 `toml:"rotate_speed" yaml:"rotate_speed"`
	HopCrossFade float32 `toml:"hop_cross_fade" yaml:"hop_cross_fade"`
	// ShuffleSpeed is the speed, in metres per second, of lateral movement along a held ledge at full intent.
	ShuffleSpeed float32 `toml:"shuffle_speed" yaml:"shuffle_speed"`
	DropImpulse  float32 `toml:"drop_impulse" yaml:"drop_impulse"`
}

// IK holds the limb correction settings.
type IK struct {
	HandIK bool `toml:"hand_ik" yaml:"hand_ik"`
	FootIK bool `toml:"foot_ik" yaml:"foot_ik"`

	// HandRayOffset is added to the forward hit, local to the character, to find the hand ray origins.
	HandRayOffset      mgl32.Vec3 `toml:"hand_ray_offset" yaml:"hand_ray_offset"`
	LeftHandIKOffset   mgl32.Vec3 `toml:"left_hand_ik_offset" yaml:"left_hand_ik_offset"`
	RightHandIKOffset  mgl32.Vec3 `toml:"right_hand_ik_offset" yaml:"right_hand_ik_offset"`
	LeftFootRayOffset  mgl32.Vec3 `toml:"left_foot_ray_offset" yaml:"left_foot_ray_offset"`
	RightFootRayOffset mgl32.Vec3 `toml:"right_foot_ray_offset" yaml:"right_foot_ray_offset"`
	LeftFootIKOffset   mgl32.Vec3 `toml:"left_foot_ik_offset" yaml:"left_foot_ik_offset"`
	RightFootIKOffset  mgl32.Vec3 `toml:"right_foot_ik_offset" yaml:"right_foot_ik_offset"`
	// GroundDistance is the height the feet are kept above the ground while not hanging.
	GroundDistance float32 `toml:"ground_distance" yaml:"ground_distance"`
}

// DefaultSettings returns the reference tuning of the character.
func DefaultSettings() Settings {
	s := Settings{}

	s.Layers.Climbable = probe.Layers(probe.LayerClimbable)
	s.Layers.Obstacle = probe.Layers(probe.LayerDefault, probe.LayerClimbable)
	s.Layers.Anchor = probe.Layers(probe.LayerAnchor)
	s.Layers.Ground = probe.Layers(probe.LayerDefault, probe.LayerClimbable)

	s.Player.CapsuleCenter = mgl32.Vec3{0, 0.9, 0}
	s.Player.CapsuleRadius = 0.3
	s.Player.CapsuleHeight = 1.8
	s.Player.GroundProbeHeight = 1
	s.Player.GroundProbeRadius = 0.4
	s.Player.GroundProbeDistance = 5
	s.Player.GroundingThreshold = 1.1
	s.Player.FallingThreshold = 2
	s.Player.WalkSpeed = 1
	s.Player.SprintSpeed = 2
	s.Player.SpeedLerpRate = 3
	s.Player.JumpVelocity = 5.5

	s.Ledge.ClimbOriginDown = mgl32.Vec3{0, 2.6, 0.8}
	s.Ledge.MinStepHeight = 0.25
	s.Ledge.DownProbeRadius = 0.1
	s.Ledge.ForwardProbeDrop = 0.1
	s.Ledge.ForwardProbeBack = 0.3
	s.Ledge.ForwardProbeDistance = 1.5
	s.Ledge.WallAngleMax = 45
	s.Ledge.GroundAngleMax = 45
	s.Ledge.EndVerticalBias = 0.05
	s.Ledge.EndOffset = mgl32.Vec3{0, 0, 0.5}
	s.Ledge.PenetrationMargin = 0.02
	s.Ledge.InflateMargin = 0.05
	s.Ledge.SideProbeStandoff = 0.15
	s.Ledge.SideProbeHeight = -0.05
	s.Ledge.SideProbeDistance = 0.6
	s.Ledge.WrapOverlapRadius = 0.1
	s.Ledge.CornerProbeBack = 0.45
	s.Ledge.CornerProbeDistance = 1.2
	s.Ledge.MinCornerAngle = 30
	s.Ledge.MaxCornerAngle = 120
	s.Ledge.BraceOffset = mgl32.Vec3{0, -1.3, -0.4}
	s.Ledge.BraceRadius = 0.2
	s.Ledge.BraceDistance = 0.7
	s.Ledge.BracedLeftHand = mgl32.Vec3{-0.25, 0, -0.05}
	s.Ledge.BracedRightHand = mgl32.Vec3{0.25, 0, -0.05}
	s.Ledge.FreeLeftHand = mgl32.Vec3{-0.2, 0, -0.08}
	s.Ledge.FreeRightHand = mgl32.Vec3{0.2, 0, -0.08}
	s.Ledge.BracedHop = mgl32.Vec3{0, 0, -0.05}
	s.Ledge.FreeHop = mgl32.Vec3{0, 0, -0.08}
	s.Ledge.AnchorStandoff = 0.3
	s.Ledge.AnchorRadius = 0.2
	s.Ledge.AnchorDistance = 1.5
	s.Ledge.HoldRadius = 0.1

	s.Climb.StepHeight = 0.5
	s.Climb.VaultHeight = 1.2
	s.Climb.HangHeight = 2.6
	s.Climb.HandReach = 1.9
	s.Climb.ProximityGate = 0.6
	s.Climb.RegrabCooldown = 1
	s.Climb.IntentLerpRate = 3
	s.Climb.MoveDeadzone = 0.1
	s.Climb.RotateSpeed = 180
	s.Climb.HopCrossFade = 0.1
	s.Climb.ShuffleSpeed = 0.6
	s.Climb.DropImpulse = 1.5

	s.IK.HandIK = true
	s.IK.FootIK = true
	s.IK.HandRayOffset = mgl32.Vec3{0, 0.3, 0.1}
	s.IK.LeftHandIKOffset = mgl32.Vec3{0, 0, -0.05}
	s.IK.RightHandIKOffset = mgl32.Vec3{0, 0, -0.05}
	s.IK.LeftFootRayOffset = mgl32.Vec3{0, -0.1, 0}
	s.IK.RightFootRayOffset = mgl32.Vec3{0, -0.1, 0}
	s.IK.LeftFootIKOffset = mgl32.Vec3{0, 0, -0.1}
	s.IK.RightFootIKOffset = mgl32.Vec3{0, 0, -0.1}
	s.IK.GroundDistance = 0.1
	return s
}

// Validate checks the setup-time preconditions of the settings. The first violation found is returned.
func (s Settings) Validate() error {
	angles := []struct {
		name  string
		value float32
	}{
		{"ledge.wall_angle_max", s.Ledge.WallAngleMax},
		{"ledge.ground_angle_max", s.Ledge.GroundAngleMax},
		{"ledge.min_corner_angle", s.Ledge.MinCornerAngle},
		{"ledge.max_corner_angle", s.Ledge.MaxCornerAngle},
	}
	for _, a := range angles {
		if a.value < 0 || a.value > 180 {
			return invalid("%s must be within [0, 180], got %v", a.name, a.value)
		}
	}
	if s.Ledge.MinCornerAngle > s.Ledge.MaxCornerAngle {
		return invalid("ledge.min_corner_angle (%v) exceeds ledge.max_corner_angle (%v)", s.Ledge.MinCornerAngle, s.Ledge.MaxCornerAngle)
	}
	if !(s.Climb.StepHeight < s.Climb.VaultHeight && s.Climb.VaultHeight < s.Climb.HangHeight) {
		return invalid("climb heights must satisfy step < vault < hang, got %v, %v, %v", s.Climb.StepHeight, s.Climb.VaultHeight, s.Climb.HangHeight)
	}
	if s.Player.GroundingThreshold >= s.Player.FallingThreshold {
		return invalid("player.grounding_threshold (%v) must be below player.falling_threshold (%v)", s.Player.GroundingThreshold, s.Player.FallingThreshold)
	}
	if s.Ledge.ClimbOriginDown.Y() <= s.Ledge.MinStepHeight {
		return invalid("ledge.climb_origin_down height (%v) must exceed ledge.min_step_height (%v)", s.Ledge.ClimbOriginDown.Y(), s.Ledge.MinStepHeight)
	}

	positive := []struct {
		name  string
		value float32
	}{
		{"player.capsule_radius", s.Player.CapsuleRadius},
		{"player.capsule_height", s.Player.CapsuleHeight},
		{"player.ground_probe_radius", s.Player.GroundProbeRadius},
		{"player.ground_probe_distance", s.Player.GroundProbeDistance},
		{"ledge.down_probe_radius", s.Ledge.DownProbeRadius},
		{"ledge.forward_probe_distance", s.Ledge.ForwardProbeDistance},
		{"ledge.side_probe_distance", s.Ledge.SideProbeDistance},
		{"ledge.corner_probe_distance", s.Ledge.CornerProbeDistance},
		{"ledge.brace_radius", s.Ledge.BraceRadius},
		{"ledge.brace_distance", s.Ledge.BraceDistance},
		{"ledge.anchor_radius", s.Ledge.AnchorRadius},
		{"ledge.anchor_distance", s.Ledge.AnchorDistance},
		{"ledge.hold_radius", s.Ledge.HoldRadius},
		{"climb.rotate_speed", s.Climb.RotateSpeed},
		{"climb.shuffle_speed", s.Climb.ShuffleSpeed},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return invalid("%s must be positive, got %v", p.name, p.value)
		}
	}
	if s.Player.CapsuleRadius <= s.Ledge.InflateMargin {
		return invalid("player.capsule_radius (%v) must exceed ledge.inflate_margin (%v)", s.Player.CapsuleRadius, s.Ledge.InflateMargin)
	}
	if s.Player.CapsuleHeight < s.Player.CapsuleRadius*2 {
		return invalid("player.capsule_height (%v) must be at least twice the radius", s.Player.CapsuleHeight)
	}
	if s.Ledge.PenetrationMargin < 0 || s.Climb.RegrabCooldown < 0 || s.Climb.DropImpulse < 0 {
		return invalid("margins, cooldowns and impulses must not be negative")
	}
	if s.Layers.Climbable == 0 || s.Layers.Obstacle == 0 || s.Layers.Ground == 0 {
		return invalid("climbable, obstacle and ground layer masks must not be empty")
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("invalid settings: %w", oerror.New(format, args...))
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return errors.New("settings file already exists")
	}
	data, err := encode(path, DefaultSettings())
	if err != nil {
		return fmt.Errorf("failed encoding default settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed creating settings directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed creating settings file: %w", err)
	}
	return nil
}

// Load will load the settings from your settings file over the defaults, and return an error if the file does not
// exist or the result does not validate. Files ending in .yaml or .yml are decoded as YAML, anything else as TOML.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, errors.New("settings file doesn't exist")
		}
		return Settings{}, fmt.Errorf("error reading config: %w", err)
	}

	s := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = toml.Unmarshal(data, &s)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func encode(path string, s Settings) ([]byte, error) {
	if isYAML(path) {
		return yaml.Marshal(s)
	}
	return toml.Marshal(s)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
