package gen

import (
	"bytes"
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"slices"
	"strings"

	"github.com/go-park/pausable/pkg/astutils"
	"github.com/go-park/pausable/pkg/tools/collections"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/tools/go/packages"
	"golang.org/x/tools/imports"
)

// Generator holds the state of the analysis. Primarily used to buffer
// the output for format.Source.
type Generator struct {
	options
	pkgList []*astutils.Package // Package we are scanning.
	errs    *multierror.Error
}

func NewGenerator(opts ...Option) *Generator {
	ge := &Generator{
		options: DefaultOptions(),
		pkgList: []*astutils.Package{},
	}
	for _, opt := range opts {
		opt.apply(&ge.options)
	}
	return ge
}

// Err returns every error met so far, nil if there was none.
func (g *Generator) Err() error { return g.errs.ErrorOrNil() }

func (g *Generator) addErr(err error) {
	g.errs = multierror.Append(g.errs, err)
}

// ParsePackage loads the packages matching the patterns and tags.
func (g *Generator) ParsePackage() *Generator {
	// Without NeedTypes the loader does not hand out its file set, so it is
	// owned here.
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedFiles |
			packages.NeedCompiledGoFiles |
			packages.NeedSyntax,
		Fset:       fset,
		Tests:      false,
		BuildFlags: []string{fmt.Sprintf("-tags=%s", strings.Join(g.tags, ","))},
		Logf:       g.log.Debugf,
	}
	patterns := g.patterns
	if g.recursive {
		var err error
		if patterns, err = getAllPathPatterns(patterns); err != nil {
			g.addErr(err)
			return g
		}
	}
	if len(patterns) == 0 {
		g.addErr(errors.New("no package patterns to load"))
		return g
	}
	pkgList, err := packages.Load(cfg, patterns...)
	if err != nil {
		g.addErr(fmt.Errorf("load %v: %w", patterns, err))
		return g
	}
	g.log.WithField("patterns", patterns).Debugf("loaded %d packages", len(pkgList))
	g.addPackage(fset, pkgList...)
	return g
}

// addPackage adds a parsed Package and its syntax files to the generator.
func (g *Generator) addPackage(fset *token.FileSet, list ...*packages.Package) {
	for _, pkg := range list {
		// directories without Go files come back from the expansion as packages
		// carrying only a "no Go files" error
		if len(pkg.GoFiles) == 0 {
			g.log.WithField("pkg", pkg.PkgPath).Debug("no Go files, skipping")
			continue
		}
		for _, e := range pkg.Errors {
			g.addErr(e)
		}
		item := astutils.NewPackage(pkg.PkgPath, pkg.Name, fset, g.log)
		for _, file := range pkg.Syntax {
			item.AddFile(file, fset.Position(file.Package).Filename, nil)
		}
		g.pkgList = append(g.pkgList, item)
	}
}

// AddSource parses one file as a package of its own, bypassing the loader. A nil
// src reads filename.
func (g *Generator) AddSource(filename string, src []byte) error {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return err
	}
	pkg := astutils.NewPackage(file.Name.Name, file.Name.Name, fset, g.log)
	pkg.AddFile(file, filename, src)
	g.pkgList = append(g.pkgList, pkg)
	return nil
}

// Generate inspects the annotated declarations and buffers the generated sources.
func (g *Generator) Generate() *Generator {
	for _, pkg := range g.pkgList {
		for _, file := range pkg.Files {
			file.Inspect()
		}
		if err := pkg.Err(); err != nil {
			g.addErr(err)
			continue
		}
		for _, c := range pkg.Components {
			buf, err := renderComponent(c)
			if err != nil {
				g.addErr(err)
				continue
			}
			name := outputName(c, g.suffix)
			pkg.FileBuf[name] = buf
			g.log.WithFields(logrus.Fields{"component": c.Name(), "pkg": c.PkgPath(), "file": name}).Debug("declarations rendered")
		}
		for _, file := range pkg.Files {
			g.generateGuards(pkg, file)
		}
	}
	return g
}

func (g *Generator) generateGuards(pkg *astutils.Package, file *astutils.File) {
	for _, m := range file.Wrapped {
		if got, want, drift := guardDrift(file, m); drift {
			g.log.WithFields(logrus.Fields{
				"method": m.Name(),
				"file":   file.Path,
				"have":   got,
				"want":   want,
			}).Warn("existing guard differs from its annotation, remove it to regenerate")
		}
	}
	for _, m := range file.Guards {
		_, typ := m.Receiver()
		if _, ok := pkg.Components[typ]; !ok {
			g.log.WithFields(logrus.Fields{"method": m.Name(), "type": typ}).
				Warn("receiver type is not @Pausable in this package, it must implement PaIsPaused itself")
		}
	}
	if !g.rewrite || len(file.Guards) == 0 {
		return
	}
	src, err := rewriteFile(file)
	if err != nil {
		g.addErr(err)
		return
	}
	pkg.FileBuf[file.Path] = bytes.NewBuffer(src)
}

// Format returns the gofmt-ed contents of the Generator's buffer.
func (g *Generator) Format() *Generator {
	for _, pkg := range g.pkgList {
		for k, v := range pkg.FileBuf {
			src, err := imports.Process(k, v.Bytes(), &imports.Options{
				Comments:   true,
				TabIndent:  true,
				TabWidth:   8,
				FormatOnly: true,
			})
			if err != nil {
				g.addErr(fmt.Errorf("internal error: invalid Go generated for %s: %w", k, err))
				continue
			}
			pkg.OutputFiles[k] = src
		}
	}
	return g
}

// Output writes the formatted files, or prints them on a dry run. Nothing is
// written when any earlier stage failed.
func (g *Generator) Output() *Generator {
	if err := g.Err(); err != nil {
		g.log.WithError(err).Error("generation failed, no file written")
		return g
	}
	results := g.Results()
	names := collections.Keys(results)
	slices.Sort(names)
	for _, name := range names {
		src := results[name]
		if g.dryRun != nil {
			fmt.Fprintf(g.dryRun, "// >>> %s\n%s\n", name, src)
			continue
		}
		if old, err := os.ReadFile(name); err == nil && bytes.Equal(old, src) {
			g.log.WithField("file", name).Debug("unchanged")
			continue
		}
		if err := os.WriteFile(name, src, 0o644); err != nil {
			g.addErr(fmt.Errorf("writing output: %w", err))
			continue
		}
		g.log.WithField("file", name).Info("written")
	}
	return g
}

// Results returns the formatted output of every package keyed by file name.
func (g *Generator) Results() map[string][]byte {
	results := map[string][]byte{}
	for _, pkg := range g.pkgList {
		for k, v := range pkg.OutputFiles {
			results[k] = v
		}
	}
	return results
}

// GenerateSource runs generation on one in-memory file and returns the produced
// files keyed by name. Nothing is written.
func GenerateSource(filename string, src []byte, opts ...Option) (map[string][]byte, error) {
	g := NewGenerator(opts...)
	if err := g.AddSource(filename, src); err != nil {
		return nil, err
	}
	g.Generate().Format()
	if err := g.Err(); err != nil {
		return nil, err
	}
	return g.Results(), nil
}

func Do(opts ...Option) error {
	return NewGenerator(opts...).ParsePackage().Generate().Format().Output().Err()
}
