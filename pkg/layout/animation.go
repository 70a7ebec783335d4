package layout

// Animator is the external animation facility. The engine never animates;
// it only brackets every committing pass so frame changes made during the
// pass are not treated as animatable.
type Animator interface {
	// DisableActions turns implicit animation off and returns the function
	// that restores the previous state.
	DisableActions() (restore func())
}

// ActionGate is an Animator that tracks how many passes currently hold
// implicit animation disabled. Nested passes nest the bracket.
type ActionGate struct {
	depth   int
	entered int
}

// DisableActions implements Animator.
func (g *ActionGate) DisableActions() func() {
	g.depth++
	g.entered++
	return func() { g.depth-- }
}

// Animating reports whether position changes are currently animatable.
func (g *ActionGate) Animating() bool { return g.depth == 0 }

// Entered returns how many times the bracket has been entered.
func (g *ActionGate) Entered() int { return g.entered }

// withoutAnimation runs fn with implicit animation disabled. The restore
// runs even if fn panics.
func withoutAnimation(a Animator, fn func()) {
	if a == nil {
		fn()
		return
	}
	restore := a.DisableActions()
	defer restore()
	fn()
}
