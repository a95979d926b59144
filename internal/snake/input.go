package snake

// Key codes understood by VelocityForKeyCode (DOM keyCode numbering).
const (
	KeyCodeLeft  = 37
	KeyCodeUp    = 38
	KeyCodeRight = 39
	KeyCodeDown  = 40
)

var keyCodeVelocities = map[int]Velocity{
	KeyCodeLeft:  VelocityLeft,
	KeyCodeUp:    VelocityUp,
	KeyCodeRight: VelocityRight,
	KeyCodeDown:  VelocityDown,
}

// VelocityForKeyCode maps an arrow key code to a velocity.
// ok is false for any other code, which callers treat as a no-op.
func VelocityForKeyCode(code int) (v Velocity, ok bool) {
	v, ok = keyCodeVelocities[code]
	return v, ok
}
