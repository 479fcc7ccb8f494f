package astutils

import (
	"errors"
	"fmt"
	"go/token"
	"strings"
)

var (
	// ErrInvalidArgs indicates malformed, unknown or missing annotation arguments.
	ErrInvalidArgs = errors.New("pausable: invalid annotation arguments")
	// ErrInvalidDecl indicates an annotation placed on a declaration it cannot apply to.
	ErrInvalidDecl = errors.New("pausable: invalid annotated declaration")
)

// ArgError reports a problem with the arguments of one annotation.
type ArgError struct {
	Annotation Annotation
	Key        string // empty when the problem is not tied to a key
	Message    string
	Pos        token.Position
}

func (e *ArgError) Error() string {
	var b strings.Builder
	if e.Pos.IsValid() {
		b.WriteString(e.Pos.String())
		b.WriteString(": ")
	}
	b.WriteString(e.Annotation.String())
	if e.Key != "" {
		fmt.Fprintf(&b, " %q", e.Key)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	return b.String()
}

func (e *ArgError) Is(target error) bool { return target == ErrInvalidArgs }

// DeclError reports an annotation on an unsupported declaration.
type DeclError struct {
	Annotation Annotation
	Name       string
	Message    string
	Pos        token.Position
}

func (e *DeclError) Error() string {
	prefix := ""
	if e.Pos.IsValid() {
		prefix = e.Pos.String() + ": "
	}
	return fmt.Sprintf("%s%s on %s: %s", prefix, e.Annotation, e.Name, e.Message)
}

func (e *DeclError) Is(target error) bool { return target == ErrInvalidDecl }

func argErrorf(anno Annotation, key AnnotationKey, format string, args ...any) *ArgError {
	return &ArgError{Annotation: anno, Key: string(key), Message: fmt.Sprintf(format, args...)}
}

// withPos sets the position of an ArgError that does not have one yet.
func withPos(err error, pos token.Position) error {
	var argErr *ArgError
	if errors.As(err, &argErr) && !argErr.Pos.IsValid() {
		argErr.Pos = pos
	}
	return err
}
