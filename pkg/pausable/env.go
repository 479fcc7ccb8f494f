// Package pausable keeps a persisted set of paused feature labels for a component
// and guards operations against it.
//
// Everything the package needs from the execution environment (storage, caller
// identity, event emission) arrives through Env, so components can run against the
// in-memory or sqlite hosts in pkg/host as well as a real runtime.
package pausable

type Identity string

func (i Identity) String() string { return string(i) }

// Storage is the key-value capability of the host.
type Storage interface {
	StorageRead(key []byte) ([]byte, bool, error)
	StorageWrite(key, value []byte) error
	StorageRemove(key []byte) error
}

// Env is the per-call view of the host.
type Env interface {
	Storage
	// PredecessorAccountID is the identity of the immediate caller.
	PredecessorAccountID() Identity
	// CurrentAccountID is the identity of the component itself.
	CurrentAccountID() Identity
	EmitEvent(e Event)
}

// Owner is the ownership capability a pausable component must carry.
type Owner interface {
	OwnerGet() (Identity, bool)
}

// Component is what the generated Pa* methods require from an annotated type.
type Component interface {
	Owner
	Env() Env
}

// Pausable is the capability generated for a @Pausable type.
type Pausable interface {
	PaStorageKey() []byte
	PaIsPaused(key string) bool
	PaAllPaused() (Labels, bool)
	PaPauseFeature(key string)
	PaUnpauseFeature(key string)
}

// Guardable is accepted by Guard and Check.
type Guardable interface {
	Component
	PaIsPaused(key string) bool
}
