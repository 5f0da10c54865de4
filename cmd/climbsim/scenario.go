package main

import (
	"fmt"
	"sort"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/player/climb"
	"github.com/oomph-ac/traverse/probe"
	"github.com/oomph-ac/traverse/world"
)

// scenario is a scene and the input script played in it. The script runs before every fixed tick.
type scenario struct {
	description string
	scene       func() *world.World
	script      func() func(c *traverse.Character, tick int)
}

var scenarios = map[string]scenario{
	"wall": {
		description: "jump onto a wall, hang and climb over it",
		scene:       func() *world.World { return sceneWithWall(cube.Box(-3, 0, 0.6, 3, 2.5, 3.6)) },
		script: func() func(*traverse.Character, int) {
			var climbed bool
			return func(c *traverse.Character, tick int) {
				jumpAt(c, tick, 10)
				if !climbed && settled(c) {
					climbed = true
					press(c)
				}
			}
		},
	},
	"vault": {
		description: "vault onto a waist high box",
		scene:       func() *world.World { return sceneWithWall(cube.Box(-3, 0, 0.6, 3, 1, 3.6)) },
		script: func() func(*traverse.Character, int) {
			return func(c *traverse.Character, tick int) {
				if tick == 10 {
					c.Jump(true)
				}
				if tick == 20 {
					c.Jump(false)
				}
			}
		},
	},
	"step": {
		description: "walk over a low step",
		scene:       func() *world.World { return sceneWithWall(cube.Box(-3, 0, 0.6, 3, 0.3, 3.6)) },
		script: func() func(*traverse.Character, int) {
			return func(c *traverse.Character, tick int) {
				if tick == 10 {
					c.Move(mgl32.Vec2{0, 1})
				}
			}
		},
	},
	"drop": {
		description: "jump onto a wall, hang and let go",
		scene:       func() *world.World { return sceneWithWall(cube.Box(-3, 0, 0.6, 3, 2.5, 3.6)) },
		script: func() func(*traverse.Character, int) {
			var dropped bool
			return func(c *traverse.Character, tick int) {
				jumpAt(c, tick, 10)
				if !dropped && settled(c) {
					dropped = true
					c.Drop()
				}
			}
		},
	},
	"corner": {
		description: "hang on a wall and shuffle right into an inner corner",
		scene: func() *world.World {
			w := sceneWithWall(cube.Box(-3, 0, 0.6, 1.2, 2.5, 3.6))
			w.AddBox("side wall", cube.Box(1.2, 0, -2, 3.2, 2.5, 3.6), probe.LayerClimbable)
			return w
		},
		script: func() func(*traverse.Character, int) {
			return func(c *traverse.Character, tick int) {
				jumpAt(c, tick, 10)
				if settled(c) {
					c.Move(mgl32.Vec2{1, 0})
				}
			}
		},
	},
}

// scenarioNames returns the names of every scenario, sorted.
func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupScenario(name string) (scenario, error) {
	s, ok := scenarios[name]
	if !ok {
		return scenario{}, fmt.Errorf("unknown scenario %q, expected one of %v", name, scenarioNames())
	}
	return s, nil
}

func sceneWithWall(wall cube.BBox) *world.World {
	w := world.New()
	w.AddBox("ground", cube.Box(-10, -1, -10, 10, 0, 10), probe.LayerDefault)
	w.AddBox("wall", wall, probe.LayerClimbable)
	return w
}

func jumpAt(c *traverse.Character, tick, at int) {
	if tick == at {
		press(c)
	}
}

func press(c *traverse.Character) {
	c.Jump(true)
	c.Jump(false)
}

// settled returns true once the character hangs still, with its hang animation playing.
func settled(c *traverse.Character) bool {
	if c.ClimbState().Kind != climb.Hanging {
		return false
	}
	id := c.AnimationState().ID
	return id == anim.BracedHang || id == anim.FreeHang
}
