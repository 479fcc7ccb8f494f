package main

import (
	"fmt"
	"os"

	"github.com/go-park/pausable/pkg/gen"
	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

var (
	buildTags  []string
	recursive  bool
	rewrite    bool
	dryRun     bool
	suffix     string
	configFile string
	verbose    bool
)

// Usage is a replacement usage function for the flags package.
func Usage() {
	fmt.Fprintf(os.Stderr, "Usage of pausable:\n")
	fmt.Fprintf(os.Stderr, "\tpausable [flags] [packages]\n")
	fmt.Fprintf(os.Stderr, "For more information, see:\n")
	fmt.Fprintf(os.Stderr, "\thttps://github.com/go-park/pausable\n")
	fmt.Fprintf(os.Stderr, "Flags:\n")
	flag.PrintDefaults()
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log := logrus.WithField("cmd", "pausable")

	flag.StringSliceVar(&buildTags, "tags", nil, "comma-separated list of build tags to apply")
	flag.BoolVarP(&recursive, "recursive", "r", true, "load packages recursively")
	flag.BoolVar(&rewrite, "rewrite", true, "inject guards into methods annotated with @Pause or @IfPaused")
	flag.BoolVar(&dryRun, "dry-run", false, "print generated files instead of writing them")
	flag.StringVar(&suffix, "suffix", "", "file name suffix of generated files (default \"_pausable.gen.go\")")
	flag.StringVarP(&configFile, "config", "c", "", "YAML config file; flags override its values")
	flag.BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	flag.Usage = Usage
	flag.Parse()

	var opts []gen.Option
	if configFile != "" {
		cfg, err := gen.LoadConfig(configFile)
		if err != nil {
			log.Fatal(err)
		}
		verbose = verbose || cfg.Verbose
		opts = append(opts, cfg.Options()...)
	}
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	opts = append(opts, gen.WithLogger(log), gen.WithPatterns(flag.Args()...), gen.WithTags(buildTags...), gen.WithSuffix(suffix))
	if configFile == "" || flag.CommandLine.Changed("recursive") {
		opts = append(opts, gen.WithRecursive(recursive))
	}
	if configFile == "" || flag.CommandLine.Changed("rewrite") {
		opts = append(opts, gen.WithRewrite(rewrite))
	}
	if dryRun {
		opts = append(opts, gen.WithDryRun(os.Stdout))
	}

	if err := gen.Do(opts...); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
