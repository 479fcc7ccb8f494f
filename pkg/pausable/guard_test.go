package pausable_test

import (
	"errors"
	"testing"

	"github.com/go-park/pausable/pkg/pausable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_Polarity(t *testing.T) {
	tests := []struct {
		name     string
		paused   []string
		label    string
		polarity pausable.Polarity
		wantErr  error
	}{
		{name: "forbid not paused", label: "x", polarity: pausable.ForbidWhilePaused},
		{name: "forbid paused", paused: []string{"x"}, label: "x", polarity: pausable.ForbidWhilePaused, wantErr: pausable.ErrMethodPaused},
		{name: "forbid other paused", paused: []string{"z"}, label: "x", polarity: pausable.ForbidWhilePaused},
		{name: "forbid all", paused: []string{pausable.AllLabel}, label: "x", polarity: pausable.ForbidWhilePaused, wantErr: pausable.ErrMethodPaused},
		{name: "require not paused", label: "y", polarity: pausable.RequireWhilePaused, wantErr: pausable.ErrMethodNotPaused},
		{name: "require paused", paused: []string{"y"}, label: "y", polarity: pausable.RequireWhilePaused},
		{name: "require all", paused: []string{pausable.AllLabel}, label: "y", polarity: pausable.RequireWhilePaused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, _ := newRuntime(t)
			pause(t, rt, tt.paused...)
			_, err := call(rt, bob, func(_ *pausable.Registry, v *vaultComponent) {
				pausable.Guard(v, tt.polarity, pausable.GuardOptions{Label: tt.label})
			})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			var guardErr *pausable.GuardError
			require.ErrorAs(t, err, &guardErr)
			assert.Equal(t, tt.label, guardErr.Label)
		})
	}
}

func TestCheck_Messages(t *testing.T) {
	assert.Equal(t, "Pausable: Method is paused",
		(&pausable.GuardError{Polarity: pausable.ForbidWhilePaused}).Error())
	assert.Equal(t, "Pausable: Method must be paused",
		(&pausable.GuardError{Polarity: pausable.RequireWhilePaused}).Error())
}

func TestCheck_Bypass(t *testing.T) {
	tests := []struct {
		name    string
		caller  pausable.Identity
		except  pausable.Except
		blocked bool
	}{
		{name: "no bypass owner", caller: alice, blocked: true},
		{name: "no bypass self", caller: vault, blocked: true},
		{name: "owner bypass owner", caller: alice, except: pausable.Except{Owner: true}},
		{name: "owner bypass stranger", caller: bob, except: pausable.Except{Owner: true}, blocked: true},
		{name: "owner bypass self", caller: vault, except: pausable.Except{Owner: true}, blocked: true},
		{name: "self bypass self", caller: vault, except: pausable.Except{Self: true}},
		{name: "self bypass owner", caller: alice, except: pausable.Except{Self: true}, blocked: true},
		{name: "both owner", caller: alice, except: pausable.Except{Owner: true, Self: true}},
		{name: "both self", caller: vault, except: pausable.Except{Owner: true, Self: true}},
		{name: "both stranger", caller: bob, except: pausable.Except{Owner: true, Self: true}, blocked: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, _ := newRuntime(t)
			pause(t, rt, "withdraw")
			_, err := call(rt, tt.caller, func(_ *pausable.Registry, v *vaultComponent) {
				pausable.Guard(v, pausable.ForbidWhilePaused, pausable.GuardOptions{Label: "withdraw", Except: tt.except})
			})
			if tt.blocked {
				assert.ErrorIs(t, err, pausable.ErrMethodPaused)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheck_OwnerBypassWithoutOwner(t *testing.T) {
	rt, store := newRuntime(t)
	labels, err := pausable.MsgpackCodec.Marshal([]string{"withdraw"})
	require.NoError(t, err)
	require.NoError(t, store.StorageWrite([]byte(pausable.DefaultStorageKey), labels))

	_, err = rt.Call("", func(env pausable.Env) {
		v := &vaultComponent{env: env}
		pausable.Guard(v, pausable.ForbidWhilePaused, pausable.GuardOptions{Label: "withdraw", Except: pausable.Except{Owner: true}})
	})
	assert.ErrorIs(t, err, pausable.ErrMethodPaused)
}

func TestCheck_MissingLabel(t *testing.T) {
	rt, _ := newRuntime(t)
	_, err := call(rt, bob, func(_ *pausable.Registry, v *vaultComponent) {
		pausable.Guard(v, pausable.ForbidWhilePaused, pausable.GuardOptions{})
	})
	assert.ErrorIs(t, err, pausable.ErrMissingLabel)
}

func TestWrap(t *testing.T) {
	rt, _ := newRuntime(t)
	pause(t, rt, "withdraw")
	errInner := errors.New("inner")

	_, err := call(rt, bob, func(r *pausable.Registry, _ *vaultComponent) {
		calls := 0
		withdraw := pausable.Wrap(r, pausable.ForbidWhilePaused, pausable.GuardOptions{Label: "withdraw"}, func() error {
			calls++
			return nil
		})
		deposit := pausable.Wrap(r, pausable.ForbidWhilePaused, pausable.GuardOptions{Label: "deposit"}, func() error {
			calls++
			return errInner
		})
		assert.ErrorIs(t, withdraw(), pausable.ErrMethodPaused)
		assert.ErrorIs(t, deposit(), errInner)
		assert.Equal(t, 1, calls)

		got, err := pausable.Call(r, pausable.RequireWhilePaused, pausable.GuardOptions{Label: "withdraw"}, func() (int, error) {
			return 42, nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 42, got)

		got, err = pausable.Call(r, pausable.RequireWhilePaused, pausable.GuardOptions{Label: "deposit"}, func() (int, error) {
			return 42, nil
		})
		assert.ErrorIs(t, err, pausable.ErrMethodNotPaused)
		assert.Zero(t, got)
	})
	require.NoError(t, err)
}

func TestCheck_OfComponentMatchesRegistry(t *testing.T) {
	rt, _ := newRuntime(t)
	pause(t, rt, pausable.AllLabel)
	_, err := call(rt, bob, func(r *pausable.Registry, v *vaultComponent) {
		opts := pausable.GuardOptions{Label: "anything"}
		assert.Equal(t,
			r.Check(pausable.ForbidWhilePaused, opts),
			pausable.Of(v).Check(pausable.ForbidWhilePaused, opts))
	})
	require.NoError(t, err)
}
