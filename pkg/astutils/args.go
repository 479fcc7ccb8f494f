package astutils

import (
	"strconv"
	"strings"
	"text/scanner"

	"github.com/go-park/pausable/pkg/pausable"
)

type argKind int

const (
	argFlag argKind = iota // bare key
	argString
	argBool
	argGroup
)

func (k argKind) String() string {
	switch k {
	case argFlag:
		return "flag"
	case argString:
		return "string"
	case argBool:
		return "bool"
	}
	return "group"
}

// arg is one element of an annotation argument list:
//
//	key="value" | key=true | key | key(arg, ...)
type arg struct {
	key   AnnotationKey
	kind  argKind
	str   string
	b     bool
	group []arg
}

type argParser struct {
	anno Annotation
	s    scanner.Scanner
	tok  rune
	err  error
}

func parseArgs(anno Annotation, raw string) ([]arg, error) {
	p := &argParser{anno: anno}
	p.s.Init(strings.NewReader(raw))
	p.s.Mode = scanner.ScanIdents | scanner.ScanStrings | scanner.ScanRawStrings
	p.s.Error = func(_ *scanner.Scanner, msg string) {
		p.fail("%s", msg)
	}
	p.next()
	list := p.list()
	if p.err == nil && p.tok != scanner.EOF {
		p.fail("unexpected %q", p.s.TokenText())
	}
	return list, p.err
}

func (p *argParser) next() {
	if p.err == nil {
		p.tok = p.s.Scan()
	}
}

func (p *argParser) fail(format string, args ...any) {
	if p.err == nil {
		p.err = argErrorf(p.anno, "", format, args...)
	}
	p.tok = scanner.EOF
}

func (p *argParser) list() []arg {
	var list []arg
	if p.tok == scanner.EOF || p.tok == ')' {
		return list
	}
	for p.err == nil {
		list = append(list, p.arg())
		if p.tok != ',' {
			break
		}
		p.next()
	}
	return list
}

func (p *argParser) arg() arg {
	if p.tok != scanner.Ident {
		p.fail("expected key, found %q", p.s.TokenText())
		return arg{}
	}
	a := arg{key: AnnotationKey(p.s.TokenText()), kind: argFlag}
	p.next()
	switch p.tok {
	case '=':
		p.next()
		p.value(&a)
	case '(':
		p.next()
		a.kind = argGroup
		a.group = p.list()
		if p.tok != ')' {
			p.fail("missing ) after %s(", a.key)
			return a
		}
		p.next()
	}
	return a
}

func (p *argParser) value(a *arg) {
	text := p.s.TokenText()
	switch p.tok {
	case scanner.String, scanner.RawString:
		s, err := strconv.Unquote(text)
		if err != nil {
			p.fail("bad string %s for %s", text, a.key)
			return
		}
		a.kind, a.str = argString, s
	case scanner.Ident:
		if text != "true" && text != "false" {
			p.fail("%s: expected string or bool, found %s", a.key, text)
			return
		}
		a.kind, a.b = argBool, text == "true"
	case scanner.EOF, ',', ')':
		p.fail("missing value for %s", a.key)
		return
	default:
		p.fail("%s: expected string or bool, found %s", a.key, text)
		return
	}
	p.next()
}

func (a arg) stringValue(anno Annotation) (string, error) {
	if a.kind != argString {
		return "", argErrorf(anno, a.key, "expected a string, found %s", a.kind)
	}
	if a.str == "" {
		return "", argErrorf(anno, a.key, "must not be empty")
	}
	return a.str, nil
}

func (a arg) boolValue(anno Annotation) (bool, error) {
	switch a.kind {
	case argFlag:
		return true, nil
	case argBool:
		return a.b, nil
	}
	return false, argErrorf(anno, a.key, "expected a flag or bool, found %s", a.kind)
}

func checkDuplicate(anno Annotation, seen map[AnnotationKey]struct{}, key AnnotationKey) error {
	if _, ok := seen[key]; ok {
		return argErrorf(anno, key, "given more than once")
	}
	seen[key] = struct{}{}
	return nil
}

// ParsePauseOptions decodes the arguments of @Pausable.
func ParsePauseOptions(raw string) (pausable.PauseOptions, error) {
	opts := pausable.DefaultPauseOptions()
	args, err := parseArgs(CommentPausable, raw)
	if err != nil {
		return opts, err
	}
	seen := map[AnnotationKey]struct{}{}
	for _, a := range args {
		if err := checkDuplicate(CommentPausable, seen, a.key); err != nil {
			return opts, err
		}
		switch a.key {
		case CommentKeyStorageKey:
			if opts.StorageKey, err = a.stringValue(CommentPausable); err != nil {
				return opts, err
			}
		default:
			return opts, argErrorf(CommentPausable, a.key, "unknown key")
		}
	}
	return opts, nil
}

// ParseGuardOptions decodes the arguments of @Pause or @IfPaused. method is the
// label used when @Pause carries no name; @IfPaused must always name its label.
func ParseGuardOptions(anno Annotation, raw, method string) (pausable.GuardOptions, error) {
	var opts pausable.GuardOptions
	polarity, ok := Polarity(anno)
	if !ok {
		return opts, argErrorf(anno, "", "not a guard annotation")
	}
	args, err := parseArgs(anno, raw)
	if err != nil {
		return opts, err
	}
	seen := map[AnnotationKey]struct{}{}
	for _, a := range args {
		if err := checkDuplicate(anno, seen, a.key); err != nil {
			return opts, err
		}
		switch a.key {
		case CommentKeyName:
			if opts.Label, err = a.stringValue(anno); err != nil {
				return opts, err
			}
		case CommentKeyExcept:
			if opts.Except, err = parseExcept(anno, a); err != nil {
				return opts, err
			}
		default:
			return opts, argErrorf(anno, a.key, "unknown key")
		}
	}
	if opts.Label == "" {
		if polarity == pausable.RequireWhilePaused {
			return opts, argErrorf(anno, CommentKeyName, "is required")
		}
		opts.Label = method
	}
	return opts, nil
}

func parseExcept(anno Annotation, a arg) (pausable.Except, error) {
	var except pausable.Except
	if a.kind != argGroup {
		return except, argErrorf(anno, a.key, "expected except(owner, self)")
	}
	seen := map[AnnotationKey]struct{}{}
	for _, sub := range a.group {
		if err := checkDuplicate(anno, seen, sub.key); err != nil {
			return except, err
		}
		var err error
		switch sub.key {
		case CommentKeyOwner:
			except.Owner, err = sub.boolValue(anno)
		case CommentKeySelf:
			except.Self, err = sub.boolValue(anno)
		default:
			err = argErrorf(anno, sub.key, "unknown except key")
		}
		if err != nil {
			return except, err
		}
	}
	return except, nil
}
