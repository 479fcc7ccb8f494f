package pausable

// Checker evaluates a guard for one call.
type Checker interface {
	Check(polarity Polarity, opts GuardOptions) error
}

type component struct{ c Guardable }

func (g component) Check(polarity Polarity, opts GuardOptions) error {
	return check(g.c.Env(), g.c, func(label string) (bool, error) {
		return g.c.PaIsPaused(label), nil
	}, polarity, opts)
}

// Of adapts a generated component to a Checker.
func Of(c Guardable) Checker { return component{c: c} }

// Check reports whether a call to the operation guarded by opts may proceed.
func Check(c Guardable, polarity Polarity, opts GuardOptions) error {
	return Of(c).Check(polarity, opts)
}

// Guard is the statement injected at the top of annotated methods. It aborts
// the call when Check fails.
func Guard(c Guardable, polarity Polarity, opts GuardOptions) {
	Abort(Check(c, polarity, opts))
}

// Wrap returns fn guarded by opts.
func Wrap(ch Checker, polarity Polarity, opts GuardOptions, fn func() error) func() error {
	return func() error {
		if err := ch.Check(polarity, opts); err != nil {
			return err
		}
		return fn()
	}
}

// Call runs fn when the guard passes.
func Call[R any](ch Checker, polarity Polarity, opts GuardOptions, fn func() (R, error)) (R, error) {
	if err := ch.Check(polarity, opts); err != nil {
		var zero R
		return zero, err
	}
	return fn()
}

func check(env Env, owner Owner, isPaused func(string) (bool, error), polarity Polarity, opts GuardOptions) error {
	if opts.Label == "" {
		return ErrMissingLabel
	}
	checkPaused := true
	caller := env.PredecessorAccountID()
	if opts.Except.Self && caller == env.CurrentAccountID() {
		checkPaused = false
	}
	if opts.Except.Owner {
		if o, ok := owner.OwnerGet(); ok && o == caller {
			checkPaused = false
		}
	}
	if !checkPaused {
		return nil
	}
	paused, err := isPaused(opts.Label)
	if err != nil {
		return err
	}
	if paused != polarity.expectPaused() {
		return &GuardError{Label: opts.Label, Polarity: polarity}
	}
	return nil
}
