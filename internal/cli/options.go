package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/fzzyhmstrs/fconfig-sub004/internal/engine"
	"github.com/fzzyhmstrs/fconfig-sub004/internal/lexer"
)

// CommonFlags are the command-line flags every tool accepts. Flags that are
// set explicitly override the config file.
type CommonFlags struct {
	ConfigPath string
	Family     string
	Flags      string
	Color      string
	Jobs       int
	MaxErrors  int
	Verbose    bool
	Debug      bool
	Version    bool
	JSON       bool
}

// RegisterCommonFlags defines the shared flags on fs.
func RegisterCommonFlags(fs *flag.FlagSet) *CommonFlags {
	def := DefaultConfig()
	f := &CommonFlags{}
	fs.StringVar(&f.ConfigPath, "config", DefaultConfigFile, "JSON config file")
	fs.StringVar(&f.Family, "family", def.Family, "tokenizer family, name or name@constraint")
	fs.StringVar(&f.Flags, "flags", def.Flags, "comma-separated driver flags: eol, print, frequency, timing")
	fs.StringVar(&f.Color, "color", def.Color, "color output: auto, always or never")
	fs.IntVar(&f.Jobs, "j", def.Jobs, "number of documents processed concurrently")
	fs.IntVar(&f.MaxErrors, "max-errors", def.MaxErrors, "maximum number of errors reported (0 = no limit)")
	fs.BoolVar(&f.Verbose, "verbose", false, "verbose output")
	fs.BoolVar(&f.Debug, "debug", false, "debug output")
	fs.BoolVar(&f.Version, "version", false, "show version information")
	fs.BoolVar(&f.JSON, "json", false, "JSON output")
	return f
}

// Load reads the config file and applies the flags set on fs over it.
func (f *CommonFlags) Load(fs *flag.FlagSet) (*Config, error) {
	cfg, err := LoadConfig(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "family":
			cfg.Family = f.Family
		case "flags":
			cfg.Flags = f.Flags
		case "color":
			cfg.Color = f.Color
		case "j":
			cfg.Jobs = f.Jobs
		case "max-errors":
			cfg.MaxErrors = f.MaxErrors
		case "verbose":
			cfg.Verbose = f.Verbose
		case "debug":
			cfg.Debug = f.Debug
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// EngineOptions resolves the family and parses the driver flags.
func (c *Config) EngineOptions(reg *lexer.Registry, out io.Writer) (engine.Options, error) {
	if reg == nil {
		reg = lexer.DefaultRegistry
	}
	family, err := reg.ResolveSpec(c.Family)
	if err != nil {
		return engine.Options{}, err
	}
	flags, err := engine.ParseFlags(c.Flags)
	if err != nil {
		return engine.Options{}, fmt.Errorf("flags: %w", err)
	}
	return engine.Options{Family: family, Flags: flags, Out: out, Registry: reg}, nil
}
