package astutils

import (
	"testing"

	"github.com/go-park/pausable/pkg/pausable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePauseOptions(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr string
	}{
		{name: "empty", raw: "", want: "__PAUSE__"},
		{name: "custom key", raw: `pausedStorageKey="__COUNTER__"`, want: "__COUNTER__"},
		{name: "raw string", raw: "pausedStorageKey=`K`", want: "K"},
		{name: "spaces", raw: ` pausedStorageKey = "K" `, want: "K"},
		{name: "unknown key", raw: `storage="K"`, wantErr: `@Pausable "storage": unknown key`},
		{name: "bool value", raw: `pausedStorageKey=true`, wantErr: `@Pausable "pausedStorageKey": expected a string, found bool`},
		{name: "empty value", raw: `pausedStorageKey=""`, wantErr: `@Pausable "pausedStorageKey": must not be empty`},
		{name: "duplicate", raw: `pausedStorageKey="a", pausedStorageKey="b"`, wantErr: `@Pausable "pausedStorageKey": given more than once`},
		{name: "missing value", raw: `pausedStorageKey=`, wantErr: "@Pausable: missing value for pausedStorageKey"},
		{name: "unterminated", raw: `pausedStorageKey="abc`, wantErr: "@Pausable: literal not terminated"},
		{name: "garbage", raw: `"abc"`, wantErr: `@Pausable: expected key, found "\"abc\""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePauseOptions(tt.raw)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidArgs)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StorageKey)
		})
	}
}

func TestParseGuardOptions(t *testing.T) {
	tests := []struct {
		name    string
		anno    Annotation
		raw     string
		want    pausable.GuardOptions
		wantErr string
	}{
		{
			name: "pause default label",
			anno: CommentPause,
			want: pausable.GuardOptions{Label: "Withdraw"},
		},
		{
			name: "pause named",
			anno: CommentPause,
			raw:  `name="withdraw"`,
			want: pausable.GuardOptions{Label: "withdraw"},
		},
		{
			name: "except flags",
			anno: CommentPause,
			raw:  `name="withdraw", except(owner, self)`,
			want: pausable.GuardOptions{Label: "withdraw", Except: pausable.Except{Owner: true, Self: true}},
		},
		{
			name: "except bools",
			anno: CommentPause,
			raw:  `except(owner=true, self=false)`,
			want: pausable.GuardOptions{Label: "Withdraw", Except: pausable.Except{Owner: true}},
		},
		{
			name: "except empty",
			anno: CommentPause,
			raw:  `except()`,
			want: pausable.GuardOptions{Label: "Withdraw"},
		},
		{
			name: "if paused named",
			anno: CommentIfPaused,
			raw:  `except(self), name="withdraw"`,
			want: pausable.GuardOptions{Label: "withdraw", Except: pausable.Except{Self: true}},
		},
		{
			name:    "if paused requires name",
			anno:    CommentIfPaused,
			raw:     `except(owner)`,
			wantErr: `@IfPaused "name": is required`,
		},
		{
			name:    "unknown key",
			anno:    CommentPause,
			raw:     `label="x"`,
			wantErr: `@Pause "label": unknown key`,
		},
		{
			name:    "unknown except key",
			anno:    CommentPause,
			raw:     `except(admin)`,
			wantErr: `@Pause "admin": unknown except key`,
		},
		{
			name:    "except not a group",
			anno:    CommentPause,
			raw:     `except`,
			wantErr: `@Pause "except": expected except(owner, self)`,
		},
		{
			name:    "except string",
			anno:    CommentPause,
			raw:     `except(owner="yes")`,
			wantErr: `@Pause "owner": expected a flag or bool, found string`,
		},
		{
			name:    "unclosed group",
			anno:    CommentPause,
			raw:     `except(owner`,
			wantErr: `@Pause: missing ) after except(`,
		},
		{
			name:    "duplicate except key",
			anno:    CommentPause,
			raw:     `except(owner, owner)`,
			wantErr: `@Pause "owner": given more than once`,
		},
		{
			name:    "name flag",
			anno:    CommentPause,
			raw:     `name`,
			wantErr: `@Pause "name": expected a string, found flag`,
		},
		{
			name:    "not a guard",
			anno:    CommentPausable,
			wantErr: `@Pausable: not a guard annotation`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGuardOptions(tt.anno, tt.raw, "Withdraw")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidArgs)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
