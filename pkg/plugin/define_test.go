package plugin

import (
	"go/ast"
	"testing"

	"github.com/go-park/pausable/pkg/pausable"
	"github.com/stretchr/testify/assert"
)

func TestComponent_Receiver(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{name: "Counter", want: "c"},
		{name: "bank", want: "b"},
		{name: "Ünicode", want: "ü"},
		{name: "_hidden", want: "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewComponent(WithComponentName(tt.name))
			assert.Equal(t, tt.want, c.Receiver())
		})
	}
}

func TestComponent_DefaultOptions(t *testing.T) {
	c := NewComponent(WithComponentName("Counter"), WithComponentPkg("example.com/counter", "counter"))
	assert.Equal(t, pausable.DefaultStorageKey, c.Options().StorageKey)
	assert.Equal(t, "counter", c.PkgName())
}

func TestMethod(t *testing.T) {
	decl := &ast.FuncDecl{Name: ast.NewIdent("Withdraw")}
	opts := pausable.GuardOptions{Label: "Withdraw", Except: pausable.Except{Owner: true}}
	m := NewMethod(
		WithMethodDecl(decl),
		WithMethodReceiver("b", "Bank"),
		WithMethodGuard(pausable.ForbidWhilePaused, opts),
	)
	assert.Equal(t, "Withdraw", m.Name())
	recv, typ := m.Receiver()
	assert.Equal(t, "b", recv)
	assert.Equal(t, "Bank", typ)
	assert.Equal(t, pausable.ForbidWhilePaused, m.Polarity())
	assert.Equal(t, opts, m.Options())
	assert.Same(t, decl, m.Decl())
}
