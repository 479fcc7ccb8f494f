package host

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-park/pausable/pkg/pausable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	gs, err := OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"gorm":   gs,
	}
}

func TestStore_ReadWriteRemove(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.StorageRead([]byte("k"))
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.StorageWrite([]byte("k"), []byte("v1")))
			require.NoError(t, s.StorageWrite([]byte("k"), []byte("v2")))
			v, ok, err := s.StorageRead([]byte("k"))
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte("v2"), v)

			require.NoError(t, s.StorageRemove([]byte("k")))
			require.NoError(t, s.StorageRemove([]byte("k")))
			_, ok, err = s.StorageRead([]byte("k"))
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestStore_AtomicRollback(t *testing.T) {
	errBoom := errors.New("boom")
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.StorageWrite([]byte("keep"), []byte("1")))
			err := s.Atomic(func(tx pausable.Storage) error {
				require.NoError(t, tx.StorageWrite([]byte("new"), []byte("x")))
				require.NoError(t, tx.StorageRemove([]byte("keep")))
				return errBoom
			})
			assert.ErrorIs(t, err, errBoom)

			_, ok, err := s.StorageRead([]byte("new"))
			require.NoError(t, err)
			assert.False(t, ok)
			v, ok, err := s.StorageRead([]byte("keep"))
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, []byte("1"), v)

			require.NoError(t, s.Atomic(func(tx pausable.Storage) error {
				return tx.StorageWrite([]byte("new"), []byte("x"))
			}))
			_, ok, err = s.StorageRead([]byte("new"))
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestRuntime_Call(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			rt := NewRuntime(s, "counter.near")
			events, err := rt.Call("alice", func(env pausable.Env) {
				assert.Equal(t, pausable.Identity("alice"), env.PredecessorAccountID())
				assert.Equal(t, pausable.Identity("counter.near"), env.CurrentAccountID())
				pausable.Abort(env.StorageWrite([]byte("a"), []byte("1")))
				env.EmitEvent(pausable.NewEvent("test", nil))
			})
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, "test", events[0].Kind)

			errAbort := errors.New("abort")
			events, err = rt.Call("alice", func(env pausable.Env) {
				pausable.Abort(env.StorageWrite([]byte("b"), []byte("1")))
				env.EmitEvent(pausable.NewEvent("test", nil))
				pausable.Abort(errAbort)
			})
			assert.ErrorIs(t, err, errAbort)
			assert.Empty(t, events)
			_, ok, err := s.StorageRead([]byte("b"))
			require.NoError(t, err)
			assert.False(t, ok)

			_, err = rt.Call("alice", func(pausable.Env) { panic("plain panic") })
			assert.EqualError(t, err, "host: call aborted: plain panic")
		})
	}
}
