package plugin

import (
	"go/ast"
	"unicode"
	"unicode/utf8"

	"github.com/go-park/pausable/pkg/pausable"
)

var (
	_ Component = (*component)(nil)
	_ Method    = (*method)(nil)
)

type (
	Nameable interface {
		Name() string
	}

	// Component
	Component interface {
		Nameable
		PkgPath() string
		PkgName() string
		Filename() string
		Options() pausable.PauseOptions
		// Receiver is the receiver name used by generated methods.
		Receiver() string
	}

	// Method
	Method interface {
		Nameable
		Decl() *ast.FuncDecl
		Receiver() (name, typ string)
		Polarity() pausable.Polarity
		Options() pausable.GuardOptions
	}
)

type (
	// implement Component
	component struct {
		name     string
		pkgPath  string
		pkgName  string
		filename string
		opts     pausable.PauseOptions
	}
	// implement Method
	method struct {
		name     string
		f        *ast.FuncDecl
		recv     string
		recvType string
		polarity pausable.Polarity
		opts     pausable.GuardOptions
	}
)

func NewComponent(opts ...Option[component]) Component {
	c := &component{opts: pausable.DefaultPauseOptions()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewMethod(opts ...Option[method]) Method {
	m := &method{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (p *component) Name() string { return p.name }
func (p *method) Name() string    { return p.name }

func (p *component) PkgPath() string                { return p.pkgPath }
func (p *component) PkgName() string                { return p.pkgName }
func (p *component) Filename() string               { return p.filename }
func (p *component) Options() pausable.PauseOptions { return p.opts }

func (p *component) Receiver() string {
	r, _ := utf8.DecodeRuneInString(p.name)
	if !unicode.IsLetter(r) {
		return "c"
	}
	return string(unicode.ToLower(r))
}

func (p *method) Decl() *ast.FuncDecl            { return p.f }
func (p *method) Receiver() (string, string)     { return p.recv, p.recvType }
func (p *method) Polarity() pausable.Polarity    { return p.polarity }
func (p *method) Options() pausable.GuardOptions { return p.opts }
