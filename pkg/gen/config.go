package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the file form of the generator options, usually .pausable.yaml.
type Config struct {
	Patterns  []string `yaml:"patterns"`
	Tags      []string `yaml:"tags"`
	Recursive *bool    `yaml:"recursive"`
	Rewrite   *bool    `yaml:"rewrite"`
	Suffix    string   `yaml:"suffix"`
	Verbose   bool     `yaml:"verbose"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &c, nil
}

// Options converts the fields that are set into generator options.
func (c *Config) Options() []Option {
	if c == nil {
		return nil
	}
	opts := []Option{
		WithPatterns(c.Patterns...),
		WithTags(c.Tags...),
		WithSuffix(c.Suffix),
	}
	if c.Recursive != nil {
		opts = append(opts, WithRecursive(*c.Recursive))
	}
	if c.Rewrite != nil {
		opts = append(opts, WithRewrite(*c.Rewrite))
	}
	return opts
}
