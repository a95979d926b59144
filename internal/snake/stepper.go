package snake

// Rand is the random source used for apple placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// StepResult is the outcome of a single Step.
type StepResult struct {
	State GameState

	// Ate is set when the head landed on the apple. Multiplier is then the
	// factor to apply to the frame interval.
	Ate        bool
	Multiplier float64

	// Reset is set when the head ran into the trail. Tail size is already
	// back to DefaultTailSize; the caller resets the frame interval.
	Reset bool
}

// Step computes the state that follows state when the head moves by v on a
// gridSize x gridSize torus. It has no side effects apart from drawing from rng
// when an apple is eaten.
func Step(state GameState, v Velocity, d Difficulty, gridSize int, rng Rand) StepResult {
	head := wrap(state.PlayerPosition.Add(v), gridSize)
	tailSize := state.TailSize
	res := StepResult{}

	// The pre-move trail is checked, so the cell the head is about to enter is
	// lethal even though the head never shared it with the body. A head that
	// did not move cannot run into itself.
	if head != state.PlayerPosition && state.Trail.Contains(head) {
		tailSize = DefaultTailSize
		res.Reset = true
	}

	apple := state.ApplePosition
	if head == apple {
		tailSize++
		res.Ate = true
		res.Multiplier = float64(d)
		apple = randomPosition(gridSize, rng)
	}

	trail := state.Trail.Clone()
	if last, ok := trail.Last(); !ok || last != head {
		trail = append(trail, head)
		if len(trail) > tailSize {
			trail = trail[len(trail)-tailSize:]
		}
	}

	res.State = GameState{
		PlayerPosition: head,
		ApplePosition:  apple,
		Trail:          trail,
		TailSize:       tailSize,
	}
	return res
}

// wrap folds each axis back onto the grid independently.
func wrap(p Position, gridSize int) Position {
	if p.X < 0 {
		p.X = gridSize - 1
	}
	if p.X > gridSize-1 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = gridSize - 1
	}
	if p.Y > gridSize-1 {
		p.Y = 0
	}
	return p
}

// randomPosition samples a cell uniformly; the snake body is not excluded.
func randomPosition(gridSize int, rng Rand) Position {
	return Position{X: rng.Intn(gridSize), Y: rng.Intn(gridSize)}
}
