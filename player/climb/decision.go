package climb

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/traverse/player"
	"github.com/oomph-ac/traverse/settings"
)

// Decision is the outcome of the climb decision pass.
type Decision uint8

const (
	// None is returned when the ledge matches no branch.
	None Decision = iota
	Hang
	Vault
	// Step is returned for ledges below the step height, which are walked over without any action.
	Step
)

func (d Decision) String() string {
	switch d {
	case None:
		return "none"
	case Hang:
		return "hang"
	case Vault:
		return "vault"
	case Step:
		return "step"
	}
	return "unknown"
}

// Classify decides how to deal with a ledge at ledgeY. The jump height is measured from takeoffY while the
// character is off the ground, and from posY otherwise. The branches are evaluated in order and the returned
// jump height is the one they were evaluated with.
func Classify(c settings.Climb, m player.MovementState, ledgeY, posY, takeoffY float32, jumpHeld bool) (Decision, float32) {
	jumpHeight := ledgeY - posY
	if m != player.Grounded {
		jumpHeight = ledgeY - takeoffY
	}
	switch {
	case m == player.Falling && posY+c.VaultHeight/2 < ledgeY:
		return Hang, jumpHeight
	case m == player.Airborne && c.VaultHeight < jumpHeight && jumpHeight <= c.HangHeight &&
		math32.Abs(ledgeY-(posY+c.HandReach)) <= c.ProximityGate:
		return Hang, jumpHeight
	case c.StepHeight < jumpHeight && jumpHeight <= c.VaultHeight && jumpHeld:
		return Vault, jumpHeight
	case jumpHeight < c.StepHeight:
		return Step, jumpHeight
	}
	return None, jumpHeight
}
