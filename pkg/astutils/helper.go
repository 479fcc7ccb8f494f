package astutils

import (
	"go/ast"
	"go/token"
	"regexp"
	"strings"
)

var regexAnnotation = regexp.MustCompile(`^(@[A-Z][a-zA-Z]*)(.*)$`)

// Tag is one occurrence of a known annotation in a doc comment.
type Tag struct {
	Annotation Annotation
	Args       string
	Pos        token.Pos
}

func commentLines(c *ast.Comment) []string {
	text := c.Text
	if strings.HasPrefix(text, "//") {
		return []string{text[2:]}
	}
	text = strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(strings.TrimSpace(l), "*")
	}
	return lines
}

// ParseTags returns the known annotations of a doc comment in source order.
// Unknown annotations are ignored.
func ParseTags(c *ast.CommentGroup) ([]Tag, error) {
	if c == nil {
		return nil, nil
	}
	var tags []Tag
	for _, cm := range c.List {
		for _, line := range commentLines(cm) {
			ss := regexAnnotation.FindStringSubmatch(strings.TrimSpace(line))
			if len(ss) < 3 {
				continue
			}
			anno := Annotation(ss[1])
			if !IsSystemAnnotation(anno) {
				continue
			}
			rest := strings.TrimSpace(ss[2])
			tag := Tag{Annotation: anno, Pos: cm.Pos()}
			if !isTrailer(rest) {
				args, trailer, ok := splitArgs(rest)
				if !ok || !isTrailer(trailer) {
					return nil, argErrorf(anno, "", "expected %s(...), found %q", anno, rest)
				}
				tag.Args = strings.TrimSpace(args)
			}
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// isTrailer reports whether s may follow an annotation: nothing, or a comment.
func isTrailer(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.HasPrefix(s, "//")
}

// splitArgs splits "(args) trailer" at the parenthesis closing the first one,
// skipping parentheses inside string literals.
func splitArgs(s string) (args, trailer string, ok bool) {
	if !strings.HasPrefix(s, "(") {
		return "", "", false
	}
	depth := 0
	var quote byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' && quote == '"' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '"' || c == '`':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth--; depth == 0 {
				return s[1:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

func annotations(tags []Tag) []Annotation {
	list := make([]Annotation, 0, len(tags))
	for _, t := range tags {
		list = append(list, t.Annotation)
	}
	return list
}

// receiverType returns the name of the receiver's base type for T, *T, T[K] and *T[K].
func receiverType(expr ast.Expr) (string, bool) {
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name, true
	case *ast.IndexExpr:
		return receiverType(t.X)
	case *ast.IndexListExpr:
		return receiverType(t.X)
	}
	return "", false
}

// ImportName returns the name under which file imports path, or "" if it does not.
func ImportName(file *ast.File, path, defaultName string) string {
	for _, imp := range file.Imports {
		if strings.Trim(imp.Path.Value, "\"`") != path {
			continue
		}
		if imp.Name != nil {
			return imp.Name.Name
		}
		return defaultName
	}
	return ""
}
