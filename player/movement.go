package player

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/traverse/anim"
	"github.com/oomph-ac/traverse/game"
)

// Move sets the movement input. Inputs longer than one are normalised.
func (c *Controller) Move(v mgl32.Vec2) {
	if v.Len() > 1 {
		v = v.Normalize()
	}
	c.move = v
}

// MoveInput returns the raw movement input.
func (c *Controller) MoveInput() mgl32.Vec2 {
	return c.move
}

// Sprint sets whether the sprint button is held.
func (c *Controller) Sprint(held bool) {
	c.sprint = held
}

// PressJump fires the jump trigger if the character is grounded and moved by input. The takeoff itself happens
// once the jump animation calls Jump.
func (c *Controller) PressJump() bool {
	if c.state != Grounded || !c.locomotion {
		return false
	}
	c.params.SetTrigger(anim.Jump)
	return true
}

// tickMovement smooths the movement input and speed and moves the character along its local axes.
func (c *Controller) tickMovement(dt float32) {
	s := c.settings.Player
	target := s.WalkSpeed
	if c.sprint {
		target = s.SprintSpeed
	}
	t := s.SpeedLerpRate * dt
	c.speed = game.Lerp(c.speed, target, t)
	c.smoothMove = game.LerpVec2(c.smoothMove, c.move, t)

	v := c.smoothMove.Mul(c.speed)
	c.params.SetFloat(anim.Speed, v.Len())
	c.params.SetFloat(anim.SpeedX, v.X())
	c.params.SetFloat(anim.SpeedZ, v.Y())
	if v.Len() < 1e-4 {
		return
	}

	pose := c.transform.Pose()
	pose.Position = pose.TransformPoint(mgl32.Vec3{v.X() * dt, 0, v.Y() * dt})
	c.transform.SetPose(pose)
}
