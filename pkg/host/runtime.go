package host

import (
	"fmt"
	"sync"

	"github.com/go-park/pausable/pkg/pausable"
	"github.com/sirupsen/logrus"
)

// Runtime hosts a single component identity. Calls are serialized; a call that
// aborts leaves neither storage changes nor events behind.
type Runtime struct {
	mu      sync.Mutex
	store   Store
	current pausable.Identity
	log     logrus.FieldLogger
}

type Option func(*Runtime)

func WithLogger(l logrus.FieldLogger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRuntime(store Store, current pausable.Identity, opts ...Option) *Runtime {
	r := &Runtime{
		store:   store,
		current: current,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Call runs fn on behalf of caller and returns the events it emitted.
func (r *Runtime) Call(caller pausable.Identity, fn func(env pausable.Env)) ([]pausable.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []pausable.Event
	err := r.store.Atomic(func(s pausable.Storage) (err error) {
		env := &callEnv{Storage: s, predecessor: caller, current: r.current}
		defer func() {
			if v := recover(); v != nil {
				err = Recovered(v)
			}
		}()
		fn(env)
		events = env.events
		return nil
	})
	log := r.log.WithFields(logrus.Fields{"caller": caller, "component": r.current})
	if err != nil {
		log.WithError(err).Warn("call aborted")
		return nil, err
	}
	for _, e := range events {
		log.Info(e.String())
	}
	return events, nil
}

// Recovered converts a recovered panic value into the error of an aborted call.
func Recovered(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("host: call aborted: %v", v)
}

type callEnv struct {
	pausable.Storage
	predecessor pausable.Identity
	current     pausable.Identity
	events      []pausable.Event
}

func (e *callEnv) PredecessorAccountID() pausable.Identity { return e.predecessor }
func (e *callEnv) CurrentAccountID() pausable.Identity     { return e.current }
func (e *callEnv) EmitEvent(ev pausable.Event)             { e.events = append(e.events, ev) }
