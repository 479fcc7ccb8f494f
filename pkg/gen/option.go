package gen

import (
	"io"

	"github.com/sirupsen/logrus"
)

const defaultSuffix = "_pausable.gen.go"

type (
	options struct {
		patterns  []string
		tags      []string
		recursive bool
		rewrite   bool
		suffix    string
		dryRun    io.Writer
		log       logrus.FieldLogger
	}
	Option     interface{ apply(*options) }
	optionFunc func(g *options)
)

func (f optionFunc) apply(o *options) {
	f(o)
}

func DefaultOptions() options {
	return options{
		patterns:  []string{"."},
		tags:      []string{},
		recursive: true,
		rewrite:   true,
		suffix:    defaultSuffix,
		log:       logrus.StandardLogger(),
	}
}

func WithPatterns(patterns ...string) Option {
	return optionFunc(
		func(o *options) {
			patterns = filterEmptyStr(patterns...)
			if len(patterns) > 0 {
				o.patterns = patterns
			}
		})
}

func WithTags(tags ...string) Option {
	return optionFunc(
		func(o *options) {
			tags = filterEmptyStr(tags...)
			if len(tags) > 0 {
				o.tags = tags
			}
		})
}

func WithRecursive(recursive bool) Option {
	return optionFunc(
		func(o *options) {
			o.recursive = recursive
		})
}

// WithRewrite controls whether guard statements are injected into annotated methods.
func WithRewrite(rewrite bool) Option {
	return optionFunc(
		func(o *options) {
			o.rewrite = rewrite
		})
}

// WithSuffix sets the file name suffix of generated declaration files.
func WithSuffix(suffix string) Option {
	return optionFunc(
		func(o *options) {
			if len(suffix) > 0 {
				o.suffix = suffix
			}
		})
}

// WithDryRun prints the output to w instead of writing files.
func WithDryRun(w io.Writer) Option {
	return optionFunc(
		func(o *options) {
			o.dryRun = w
		})
}

func WithLogger(l logrus.FieldLogger) Option {
	return optionFunc(
		func(o *options) {
			if l != nil {
				o.log = l
			}
		})
}
