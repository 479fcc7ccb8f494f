package plugin

import (
	"go/ast"

	"github.com/go-park/pausable/pkg/pausable"
)

type (
	Option[T any] func(*T)
)

func WithComponentPkg(path, name string) Option[component] {
	return func(o *component) {
		o.pkgPath = path
		o.pkgName = name
	}
}

func WithComponentName(name string) Option[component] {
	return func(o *component) {
		o.name = name
	}
}

func WithComponentFile(filename string) Option[component] {
	return func(o *component) {
		o.filename = filename
	}
}

func WithComponentOptions(opts pausable.PauseOptions) Option[component] {
	return func(o *component) {
		o.opts = opts
	}
}

func WithMethodDecl(decl *ast.FuncDecl) Option[method] {
	return func(o *method) {
		o.f = decl
		o.name = decl.Name.Name
	}
}

func WithMethodReceiver(name, typ string) Option[method] {
	return func(o *method) {
		o.recv = name
		o.recvType = typ
	}
}

func WithMethodGuard(polarity pausable.Polarity, opts pausable.GuardOptions) Option[method] {
	return func(o *method) {
		o.polarity = polarity
		o.opts = opts
	}
}
