package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/printer"
	"go/token"
	"os"
	"slices"
	"strings"

	"github.com/go-park/pausable/pkg/astutils"
	"github.com/go-park/pausable/pkg/plugin"
	"golang.org/x/tools/go/ast/astutil"
)

// rewriteFile returns the source of f with a guard statement opening the body of
// every method in f.Guards. Nothing else in the file changes.
func rewriteFile(f *astutils.File) ([]byte, error) {
	src := f.Src
	if src == nil {
		var err error
		if src, err = os.ReadFile(f.Path); err != nil {
			return nil, err
		}
	}
	pkgName := astutils.ImportName(f.File, astutils.PausableImportPath, astutils.PausablePkgName)
	needImport := false
	switch pkgName {
	case "":
		pkgName, needImport = astutils.PausablePkgName, true
	case "_", ".":
		return nil, fmt.Errorf("%s: %s is imported as %q, import it by name to inject guards",
			f.Path, astutils.PausableImportPath, pkgName)
	}
	tf := f.Pkg.Fset.File(f.File.Pos())
	if tf == nil || tf.Size() != len(src) {
		return nil, fmt.Errorf("%s: source changed since it was parsed", f.Path)
	}

	guards := slices.Clone(f.Guards)
	// insert back to front so earlier offsets stay valid
	slices.SortFunc(guards, func(a, b plugin.Method) int {
		return int(b.Decl().Body.Lbrace) - int(a.Decl().Body.Lbrace)
	})
	out := slices.Clone(src)
	for _, m := range guards {
		off := tf.Offset(m.Decl().Body.Lbrace) + 1
		stmt := "\n" + guardStmt(pkgName, m)
		if off >= len(out) || out[off] != '\n' {
			stmt += "\n"
		}
		out = slices.Insert(out, off, []byte(stmt)...)
	}
	if !needImport {
		return out, nil
	}
	return addImport(f.Path, out)
}

func addImport(filename string, src []byte) ([]byte, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("reparse %s: %w", filename, err)
	}
	astutil.AddImport(fset, file, astutils.PausableImportPath)
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, file); err != nil {
		return nil, fmt.Errorf("print %s: %w", filename, err)
	}
	return buf.Bytes(), nil
}

// guardDrift reports whether the guard already opening m differs from the one
// its annotation produces now.
func guardDrift(f *astutils.File, m plugin.Method) (got, want string, drift bool) {
	call := astutils.GuardCall(f.File, m.Decl())
	if call == nil {
		return "", "", false
	}
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, f.Pkg.Fset, call); err != nil {
		return "", "", false
	}
	got = buf.String()
	pkgName := astutils.ImportName(f.File, astutils.PausableImportPath, astutils.PausablePkgName)
	want = guardStmt(pkgName, m)
	return got, want, compact(got) != compact(want)
}

// compact drops layout differences: white space and trailing commas.
func compact(s string) string {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, ",}", "}")
	return strings.ReplaceAll(s, ",)", ")")
}
