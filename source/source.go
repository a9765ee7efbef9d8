// Package source gathers raw string values for named inputs from layered
// providers: explicit --key value flags, positional config files, and
// environment variables, in that fixed precedence order.
package source

import (
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/clifun/internal/logging"
)

// Source is a layered key→string lookup built once per invocation. Config
// files are read eagerly at construction; flag and env lookups are in-memory.
type Source struct {
	args      Arguments
	configs   []map[string]string
	lookupEnv func(string) (string, bool)
	logger    *slog.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithLookupEnv replaces the environment lookup, normally os.LookupEnv.
// Tests inject synthetic environments through this.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(s *Source) {
		s.lookupEnv = fn
	}
}

// WithLogger sets a structured logger for debug output during construction
// and lookup. Defaults to a discarding logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		s.logger = logger
	}
}

// New builds a Source from scanned arguments. Every positional path is
// loaded as a config file; a path that does not exist fails the whole
// construction. Later-listed files take precedence over earlier ones, so the
// loaded maps are kept in reverse command-line order.
func New(args Arguments, opts ...Option) (*Source, error) {
	s := &Source{
		args:      args,
		lookupEnv: os.LookupEnv,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	for i := len(args.Positional) - 1; i >= 0; i-- {
		path := args.Positional[i]
		cfg, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("loaded config file", "path", path, "keys", len(cfg))
		s.configs = append(s.configs, cfg)
	}
	return s, nil
}

// FromArgv scans argv and builds a Source from the result.
func FromArgv(argv []string, opts ...Option) (*Source, error) {
	args, err := ParseArguments(argv)
	if err != nil {
		return nil, err
	}
	return New(args, opts...)
}

// Get looks key up across the layers, first hit wins: flags, then config
// files in precedence order, then the environment variable named by
// upper-casing key (dots preserved, so "f.a" reads F.A). The second return
// is false only when no layer has the key; an explicit empty string is a
// hit.
func (s *Source) Get(key string) (string, bool) {
	if v, ok := s.args.Keyword[key]; ok {
		return v, true
	}
	for _, cfg := range s.configs {
		if v, ok := cfg[key]; ok {
			return v, true
		}
	}
	if v, ok := s.lookupEnv(strings.ToUpper(key)); ok {
		return v, true
	}
	return "", false
}

// Help reports whether the scanned arguments requested help.
func (s *Source) Help() bool {
	return s.args.Help
}

// Keyword returns the explicit flag layer, for validation of flag names
// against the discovered input set.
func (s *Source) Keyword() map[string]string {
	return s.args.Keyword
}
