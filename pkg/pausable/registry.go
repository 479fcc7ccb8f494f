package pausable

import (
	"fmt"

	"github.com/go-park/pausable/pkg/tools/collections"
	"github.com/sirupsen/logrus"
)

// Labels is the set of currently paused labels.
type Labels = collections.Set[string]

var _ Checker = (*Registry)(nil)

// Registry is the persisted pause state of one component. It holds no state of its
// own between calls: every read goes to storage, and the entry under the storage key
// is removed rather than written empty.
type Registry struct {
	env   Env
	owner Owner
	key   []byte
	codec Codec
	log   logrus.FieldLogger
}

func NewRegistry(env Env, owner Owner, opts ...RegistryOption) *Registry {
	r := &Registry{
		env:   env,
		owner: owner,
		key:   []byte(DefaultStorageKey),
		codec: MsgpackCodec,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// For builds the registry of a component from its own Env and ownership capability.
func For(c Component, opts ...RegistryOption) *Registry {
	return NewRegistry(c.Env(), c, opts...)
}

func WithLogger(l logrus.FieldLogger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

func (r *Registry) StorageKey() []byte {
	return append([]byte(nil), r.key...)
}

// IsPaused reports whether label, or AllLabel, is in the registry.
func (r *Registry) IsPaused(label string) (bool, error) {
	labels, ok, err := r.AllPaused()
	if err != nil || !ok {
		return false, err
	}
	return labels.Has(label) || labels.Has(AllLabel), nil
}

// AllPaused returns the paused labels; ok is false when nothing was ever paused.
func (r *Registry) AllPaused() (Labels, bool, error) {
	raw, ok, err := r.env.StorageRead(r.key)
	if err != nil {
		return nil, false, fmt.Errorf("pausable: read %q: %w", r.key, err)
	}
	if !ok {
		return nil, false, nil
	}
	list, err := r.codec.Unmarshal(raw)
	if err != nil {
		return nil, false, &CorruptedError{Key: string(r.key), Cause: err}
	}
	return collections.NewSet(list...), true, nil
}

func (r *Registry) PauseFeature(label string) error {
	if err := r.onlyOwner(); err != nil {
		return err
	}
	labels, err := r.load()
	if err != nil {
		return err
	}
	labels.Insert(label)

	by := r.env.PredecessorAccountID()
	r.env.EmitEvent(NewEvent(EventPause, Pause{By: by, Key: label}))
	r.log.WithFields(logrus.Fields{"key": label, "by": by}).Debug("feature paused")
	return r.store(labels)
}

func (r *Registry) UnpauseFeature(label string) error {
	if err := r.onlyOwner(); err != nil {
		return err
	}
	labels, err := r.load()
	if err != nil {
		return err
	}
	labels.Remove(label)

	by := r.env.PredecessorAccountID()
	r.env.EmitEvent(NewEvent(EventUnpause, Unpause{By: by, Key: label}))
	r.log.WithFields(logrus.Fields{"key": label, "by": by}).Debug("feature unpaused")
	if labels.Len() == 0 {
		if err := r.env.StorageRemove(r.key); err != nil {
			return fmt.Errorf("pausable: remove %q: %w", r.key, err)
		}
		return nil
	}
	return r.store(labels)
}

// Check evaluates a guard against this registry.
func (r *Registry) Check(polarity Polarity, opts GuardOptions) error {
	return check(r.env, r.owner, r.IsPaused, polarity, opts)
}

func (r *Registry) load() (Labels, error) {
	labels, ok, err := r.AllPaused()
	if err != nil {
		return nil, err
	}
	if !ok {
		labels = collections.NewSet[string]()
	}
	return labels, nil
}

func (r *Registry) store(labels Labels) error {
	raw, err := r.codec.Marshal(labels.Sorted())
	if err != nil {
		return fmt.Errorf("pausable: unexpected error serializing keys: %w", err)
	}
	if err := r.env.StorageWrite(r.key, raw); err != nil {
		return fmt.Errorf("pausable: write %q: %w", r.key, err)
	}
	return nil
}

func (r *Registry) onlyOwner() error {
	caller := r.env.PredecessorAccountID()
	owner, ok := r.owner.OwnerGet()
	if !ok {
		return &UnauthorizedError{Caller: caller}
	}
	if owner != caller {
		return &UnauthorizedError{Caller: caller, Owner: owner}
	}
	return nil
}
