package pausable

const (
	// DefaultStorageKey is used when @Pausable carries no pausedStorageKey.
	DefaultStorageKey = "__PAUSE__"
	// AllLabel pauses every guarded operation regardless of its own label.
	AllLabel = "ALL"
)

type PauseOptions struct {
	StorageKey string
}

func DefaultPauseOptions() PauseOptions {
	return PauseOptions{StorageKey: DefaultStorageKey}
}

// Except lists the callers for which pause enforcement is skipped.
// Either flag matching the caller disables the check.
type Except struct {
	Owner bool
	Self  bool
}

type GuardOptions struct {
	Label  string
	Except Except
}

type Polarity int

const (
	// ForbidWhilePaused rejects calls while the label is paused.
	ForbidWhilePaused Polarity = iota
	// RequireWhilePaused rejects calls unless the label is paused.
	RequireWhilePaused
)

func (p Polarity) String() string {
	switch p {
	case ForbidWhilePaused:
		return "ForbidWhilePaused"
	case RequireWhilePaused:
		return "RequireWhilePaused"
	}
	return "Polarity(?)"
}

// expectPaused is the value isPaused must have for a call to proceed.
func (p Polarity) expectPaused() bool { return p == RequireWhilePaused }

// Message is the fixed abort message for a violated guard.
func (p Polarity) Message() string {
	if p == RequireWhilePaused {
		return "Method must be paused"
	}
	return "Method is paused"
}

type (
	RegistryOption func(*Registry)
)

func WithStorageKey(key string) RegistryOption {
	return func(r *Registry) {
		if len(key) > 0 {
			r.key = []byte(key)
		}
	}
}

func WithCodec(c Codec) RegistryOption {
	return func(r *Registry) {
		if c != nil {
			r.codec = c
		}
	}
}

func WithPauseOptions(opts PauseOptions) RegistryOption {
	return WithStorageKey(opts.StorageKey)
}
