// Package config reads quartz.toml, which tunes the code generator and the simulator.
package config

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// FileName is the configuration file looked up next to the sources
const FileName = "quartz.toml"

// Compiler holds the constants baked into generated code
type Compiler struct {
	Pragma            string
	GasStipend        uint64
	FreeMemoryPointer uint64
	FreeMemoryStart   uint64
}

// Simulator holds the execution defaults of the Yul simulator
type Simulator struct {
	StepLimit int
	Caller    string
	Gas       uint64
}

type Log struct {
	Verbosity int
}

type Config struct {
	Compiler  Compiler
	Simulator Simulator
	Log       Log
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Compiler: Compiler{
			Pragma:            "^0.5.12",
			GasStipend:        2300,
			FreeMemoryPointer: 0x40,
			FreeMemoryStart:   0x60,
		},
		Simulator: Simulator{
			StepLimit: 1000000,
			Caller:    "0x00000000000000000000000000000000000000aa",
			Gas:       1000000,
		},
	}
}

// Load reads a configuration file and overlays it on the defaults
func Load(path string) (*Config, error) {
	tree, err := toml.LoadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	cfg, err := fromTree(tree)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return cfg, nil
}

// Parse reads configuration text and overlays it on the defaults
func Parse(data []byte) (*Config, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, errors.Wrap(err, "parsing configuration")
	}
	return fromTree(tree)
}

func fromTree(tree *toml.Tree) (*Config, error) {
	cfg := Default()
	r := reader{tree: tree}

	cfg.Compiler.Pragma = r.str("compiler.pragma", cfg.Compiler.Pragma)
	cfg.Compiler.GasStipend = r.unsigned("compiler.gas-stipend", cfg.Compiler.GasStipend)
	cfg.Compiler.FreeMemoryPointer = r.unsigned("compiler.free-memory-pointer", cfg.Compiler.FreeMemoryPointer)
	cfg.Compiler.FreeMemoryStart = r.unsigned("compiler.free-memory-start", cfg.Compiler.FreeMemoryStart)

	cfg.Simulator.StepLimit = int(r.unsigned("simulator.step-limit", uint64(cfg.Simulator.StepLimit)))
	cfg.Simulator.Caller = r.str("simulator.caller", cfg.Simulator.Caller)
	cfg.Simulator.Gas = r.unsigned("simulator.gas", cfg.Simulator.Gas)

	cfg.Log.Verbosity = int(r.integer("log.verbosity", int64(cfg.Log.Verbosity)))

	if r.err != nil {
		return nil, r.err
	}
	if cfg.Compiler.FreeMemoryStart < cfg.Compiler.FreeMemoryPointer+32 {
		return nil, errors.Errorf("free-memory-start %#x overlaps the free memory pointer at %#x",
			cfg.Compiler.FreeMemoryStart, cfg.Compiler.FreeMemoryPointer)
	}
	if !strings.HasPrefix(cfg.Simulator.Caller, "0x") {
		return nil, errors.Errorf("simulator.caller %q must be a 0x-prefixed address", cfg.Simulator.Caller)
	}
	return cfg, nil
}

// reader pulls typed values out of a tree, keeping the first type error
type reader struct {
	tree *toml.Tree
	err  error
}

func (r *reader) get(key string) (interface{}, bool) {
	if r.err != nil || !r.tree.Has(key) {
		return nil, false
	}
	return r.tree.Get(key), true
}

func (r *reader) str(key, def string) string {
	v, ok := r.get(key)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		r.err = typeError(key, "a string", v)
		return def
	}
	return s
}

func (r *reader) integer(key string, def int64) int64 {
	v, ok := r.get(key)
	if !ok {
		return def
	}
	n, ok := v.(int64)
	if !ok {
		r.err = typeError(key, "an integer", v)
		return def
	}
	return n
}

func (r *reader) unsigned(key string, def uint64) uint64 {
	n := r.integer(key, int64(def))
	if n < 0 {
		r.err = errors.Errorf("%s must not be negative, got %d", key, n)
		return def
	}
	return uint64(n)
}

func typeError(key, want string, got interface{}) error {
	return errors.New(fmt.Sprintf("%s must be %s, got %T", key, want, got))
}
