package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/go-park/pausable/pkg/astutils"
	"github.com/go-park/pausable/pkg/plugin"
)

type componentData struct {
	Package    string
	ImportPath string
	Type       string
	Recv       string
	StorageKey string
}

var componentTpl = template.Must(template.New("component").Parse(`// Code generated by pausable. DO NOT EDIT.

package {{.Package}}

import (
	"{{.ImportPath}}"
)

var (
	_ pausable.Component = (*{{.Type}})(nil)
	_ pausable.Pausable  = (*{{.Type}})(nil)
)

func ({{.Recv}} *{{.Type}}) paRegistry() *pausable.Registry {
	return pausable.For({{.Recv}}, pausable.WithStorageKey({{printf "%q" .StorageKey}}))
}

// PaStorageKey returns the key the paused labels are stored under.
func ({{.Recv}} *{{.Type}}) PaStorageKey() []byte {
	return {{.Recv}}.paRegistry().StorageKey()
}

// PaIsPaused reports whether key, or "ALL", is paused.
func ({{.Recv}} *{{.Type}}) PaIsPaused(key string) bool {
	paused, err := {{.Recv}}.paRegistry().IsPaused(key)
	pausable.Abort(err)
	return paused
}

// PaAllPaused returns the paused labels; ok is false if nothing was ever paused.
func ({{.Recv}} *{{.Type}}) PaAllPaused() (pausable.Labels, bool) {
	labels, ok, err := {{.Recv}}.paRegistry().AllPaused()
	pausable.Abort(err)
	return labels, ok
}

// PaPauseFeature pauses key. Only the owner may call it.
func ({{.Recv}} *{{.Type}}) PaPauseFeature(key string) {
	pausable.Abort({{.Recv}}.paRegistry().PauseFeature(key))
}

// PaUnpauseFeature unpauses key. Only the owner may call it.
func ({{.Recv}} *{{.Type}}) PaUnpauseFeature(key string) {
	pausable.Abort({{.Recv}}.paRegistry().UnpauseFeature(key))
}
`))

func renderComponent(c plugin.Component) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	err := componentTpl.Execute(&buf, componentData{
		Package:    c.PkgName(),
		ImportPath: astutils.PausableImportPath,
		Type:       c.Name(),
		Recv:       c.Receiver(),
		StorageKey: c.Options().StorageKey,
	})
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", c.Name(), err)
	}
	return &buf, nil
}

// guardStmt renders the statement injected at the top of a guarded method, with
// pkg the local name of the pausable package.
func guardStmt(pkg string, m plugin.Method) string {
	recv, _ := m.Receiver()
	opts := m.Options()
	var b strings.Builder
	fmt.Fprintf(&b, "%s.Guard(%s, %s.%s, %s.GuardOptions{Label: %q", pkg, recv, pkg, m.Polarity(), pkg, opts.Label)
	if opts.Except.Owner || opts.Except.Self {
		var except []string
		if opts.Except.Owner {
			except = append(except, "Owner: true")
		}
		if opts.Except.Self {
			except = append(except, "Self: true")
		}
		fmt.Fprintf(&b, ", Except: %s.Except{%s}", pkg, strings.Join(except, ", "))
	}
	b.WriteString("})")
	return b.String()
}
