package astutils

import (
	"bytes"
	"go/ast"
	"go/token"

	"github.com/go-park/pausable/pkg/plugin"
	"github.com/go-park/pausable/pkg/tools/collections"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// File holds a single parsed file and associated data.
type File struct {
	Pkg     *Package  // Package to which this file belongs.
	File    *ast.File // Parsed AST.
	Path    string
	Src     []byte          // Source the AST was parsed from; nil means read Path.
	Guards  []plugin.Method // Guards to inject.
	Wrapped []plugin.Method // Annotated methods that already carry a guard.
}

type Package struct {
	Path        string
	Name        string
	Fset        *token.FileSet
	Files       []*File
	Components  map[string]plugin.Component
	OutputFiles map[string][]byte
	FileBuf     map[string]*bytes.Buffer
	Log         logrus.FieldLogger

	errs *multierror.Error
}

func NewPackage(path, name string, fset *token.FileSet, log logrus.FieldLogger) *Package {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Package{
		Path:        path,
		Name:        name,
		Fset:        fset,
		Components:  map[string]plugin.Component{},
		OutputFiles: map[string][]byte{},
		FileBuf:     map[string]*bytes.Buffer{},
		Log:         log,
	}
}

func (p *Package) AddFile(file *ast.File, path string, src []byte) *File {
	f := &File{Pkg: p, File: file, Path: path, Src: src}
	p.Files = append(p.Files, f)
	return f
}

// Err returns every generation error found in the package so far.
func (p *Package) Err() error { return p.errs.ErrorOrNil() }

func (p *Package) AddErr(err error) {
	p.errs = multierror.Append(p.errs, err)
}

// Inspect collects the annotated declarations of the file.
func (f *File) Inspect() {
	ast.Inspect(f.File, f.InspectGenDecl)
	ast.Inspect(f.File, f.InspectFuncDecl)
}

// InspectGenDecl processes one node.
func (f *File) InspectGenDecl(node ast.Node) bool {
	switch decl := node.(type) {
	case *ast.GenDecl:
		return f.genDecl(decl)
	case *ast.FuncDecl:
		return false
	}
	return true
}

// InspectFuncDecl processes one node.
func (f *File) InspectFuncDecl(node ast.Node) bool {
	switch decl := node.(type) {
	case *ast.FuncDecl:
		return f.funcDecl(decl)
	case *ast.GenDecl:
		return false
	}
	return true
}

func (f *File) fail(err error, pos token.Pos) {
	f.Pkg.AddErr(withPos(err, f.Pkg.Fset.Position(pos)))
}

func (f *File) declError(anno Annotation, name string, pos token.Pos, msg string) {
	f.Pkg.AddErr(&DeclError{Annotation: anno, Name: name, Message: msg, Pos: f.Pkg.Fset.Position(pos)})
}

// genDecl processes one type declaration clause.
func (f *File) genDecl(decl *ast.GenDecl) bool {
	if decl.Tok != token.TYPE {
		return false
	}
	for _, s := range decl.Specs {
		spec, ok := s.(*ast.TypeSpec)
		if !ok {
			continue
		}
		doc := spec.Doc
		if doc == nil && len(decl.Specs) == 1 {
			doc = decl.Doc
		}
		tags, err := ParseTags(doc)
		if err != nil {
			f.fail(err, doc.Pos())
			continue
		}
		name := spec.Name.Name
		var found []Tag
		for _, tag := range tags {
			if tag.Annotation != CommentPausable {
				f.declError(tag.Annotation, name, tag.Pos, "only applies to methods")
				continue
			}
			found = append(found, tag)
		}
		if len(found) == 0 {
			continue
		}
		tag := found[0]
		if len(found) > 1 {
			f.declError(CommentPausable, name, found[1].Pos, "given more than once")
			continue
		}
		if _, ok := spec.Type.(*ast.StructType); !ok {
			f.declError(CommentPausable, name, tag.Pos, "requires a struct type")
			continue
		}
		if spec.TypeParams != nil {
			f.declError(CommentPausable, name, tag.Pos, "generic types are not supported")
			continue
		}
		opts, err := ParsePauseOptions(tag.Args)
		if err != nil {
			f.fail(err, tag.Pos)
			continue
		}
		f.Pkg.Components[name] = plugin.NewComponent(
			plugin.WithComponentName(name),
			plugin.WithComponentPkg(f.Pkg.Path, f.Pkg.Name),
			plugin.WithComponentFile(f.Path),
			plugin.WithComponentOptions(opts),
		)
	}
	return false
}

// funcDecl processes one function declaration clause. Methods that are already
// wrapped are set aside before their arguments are looked at.
func (f *File) funcDecl(decl *ast.FuncDecl) bool {
	wrapped := IsWrapped(f.File, decl)
	name := decl.Name.Name
	tags, err := ParseTags(decl.Doc)
	if err != nil {
		if wrapped {
			f.Pkg.Log.WithField("method", name).WithError(err).Debug("already wrapped, annotation ignored")
			return false
		}
		f.fail(err, decl.Doc.Pos())
		return false
	}
	allPosAnno := annotations(tags)
	if collections.Contains(allPosAnno, CommentPausable) && !wrapped {
		f.declError(CommentPausable, name, decl.Pos(), "only applies to struct types")
	}
	if !collections.ContainsAny(allPosAnno, GuardAnnotationList()...) {
		return false
	}
	if wrapped {
		f.wrapped(decl, tags)
		return false
	}
	method, err := f.guardMethod(decl, tags)
	if err != nil {
		f.Pkg.AddErr(err)
		return false
	}
	f.Guards = append(f.Guards, method)
	return false
}

// wrapped records an already guarded method for drift reporting. Problems with its
// annotation are logged only: the method is left as it is either way.
func (f *File) wrapped(decl *ast.FuncDecl, tags []Tag) {
	log := f.Pkg.Log.WithField("method", decl.Name.Name)
	method, err := f.guardMethod(decl, tags)
	if err != nil {
		log.WithError(err).Warn("already wrapped, annotation not checked")
		return
	}
	_, typ := method.Receiver()
	log.WithField("type", typ).Debug("already guarded, skipping")
	f.Wrapped = append(f.Wrapped, method)
}

// guardMethod validates a guard annotated declaration and decodes its arguments.
func (f *File) guardMethod(decl *ast.FuncDecl, tags []Tag) (plugin.Method, error) {
	name := decl.Name.Name
	var guards []Tag
	for _, tag := range tags {
		if collections.Contains(GuardAnnotationList(), tag.Annotation) {
			guards = append(guards, tag)
		}
	}
	tag := guards[0]
	declErr := func(pos token.Pos, msg string) error {
		return &DeclError{Annotation: tag.Annotation, Name: name, Message: msg, Pos: f.Pkg.Fset.Position(pos)}
	}
	if len(guards) > 1 {
		return nil, declErr(guards[1].Pos, "only one of @Pause and @IfPaused may be given")
	}
	if decl.Recv == nil || len(decl.Recv.List) == 0 {
		return nil, declErr(tag.Pos, "requires a method")
	}
	recv := decl.Recv.List[0]
	if len(recv.Names) == 0 || recv.Names[0].Name == "_" {
		return nil, declErr(tag.Pos, "requires a named receiver")
	}
	typ, ok := receiverType(recv.Type)
	if !ok {
		return nil, declErr(tag.Pos, "unsupported receiver type")
	}
	if decl.Body == nil {
		return nil, declErr(tag.Pos, "requires a body")
	}
	polarity, _ := Polarity(tag.Annotation)
	opts, err := ParseGuardOptions(tag.Annotation, tag.Args, name)
	if err != nil {
		return nil, withPos(err, f.Pkg.Fset.Position(tag.Pos))
	}
	return plugin.NewMethod(
		plugin.WithMethodDecl(decl),
		plugin.WithMethodReceiver(recv.Names[0].Name, typ),
		plugin.WithMethodGuard(polarity, opts),
	), nil
}
