package astutils

import (
	"go/ast"
)

const (
	PausableImportPath = "github.com/go-park/pausable/pkg/pausable"
	PausablePkgName    = "pausable"
	guardFuncName      = "Guard"
)

// IsWrapped reports whether decl was already produced or rewritten by a generation
// pass: it lives in a generated file, or its body already opens with a Guard call.
// The check is syntactic only.
func IsWrapped(file *ast.File, decl *ast.FuncDecl) bool {
	if ast.IsGenerated(file) {
		return true
	}
	return GuardCall(file, decl) != nil
}

// GuardCall returns the Guard call that opens the body of decl, if any.
func GuardCall(file *ast.File, decl *ast.FuncDecl) *ast.CallExpr {
	name := ImportName(file, PausableImportPath, PausablePkgName)
	if name == "" || name == "_" || decl.Body == nil || len(decl.Body.List) == 0 {
		return nil
	}
	stmt, ok := decl.Body.List[0].(*ast.ExprStmt)
	if !ok {
		return nil
	}
	call, ok := stmt.X.(*ast.CallExpr)
	if !ok {
		return nil
	}
	switch fun := call.Fun.(type) {
	case *ast.SelectorExpr:
		if x, ok := fun.X.(*ast.Ident); ok && x.Name == name && fun.Sel.Name == guardFuncName {
			return call
		}
	case *ast.Ident:
		if name == "." && fun.Name == guardFuncName {
			return call
		}
	}
	return nil
}
