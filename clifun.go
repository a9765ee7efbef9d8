package clifun

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/aretw0/clifun/internal/logging"
	"github.com/aretw0/clifun/interpret"
	"github.com/aretw0/clifun/source"
)

// settings holds the configuration of one Build/Call pass.
type settings struct {
	argv         []string
	interpreters *interpret.Registry
	lookupEnv    func(string) (string, bool)
	logger       *slog.Logger
	out          io.Writer
	errOut       io.Writer
	program      string
	description  string
	exit         func(int)
}

// Option defines a functional option for configuring a resolution pass.
type Option func(*settings)

// WithArgs sets the argument vector, excluding the program name.
// Defaults to os.Args[1:].
func WithArgs(argv []string) Option {
	return func(s *settings) {
		s.argv = argv
	}
}

// WithInterpreters replaces the default interpreter registry. Use this to
// add converters for custom scalar types.
func WithInterpreters(reg *interpret.Registry) Option {
	return func(s *settings) {
		s.interpreters = reg
	}
}

// WithLookupEnv replaces the environment lookup, normally os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) Option {
	return func(s *settings) {
		s.lookupEnv = fn
	}
}

// WithLogger sets a structured logger for debug output during resolution.
// Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithOutput redirects usage and diagnostic output, normally stdout.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		s.out = w
		s.errOut = w
	}
}

// WithProgramName overrides the program name shown in the usage header.
// Defaults to the base name of os.Args[0].
func WithProgramName(name string) Option {
	return func(s *settings) {
		s.program = name
	}
}

// WithDescription sets a one-line summary printed above the usage header.
func WithDescription(desc string) Option {
	return func(s *settings) {
		s.description = desc
	}
}

// withExit replaces the process-exit hook, normally os.Exit. Tests use this
// to observe Main's exit codes without terminating the test binary.
func withExit(fn func(int)) Option {
	return func(s *settings) {
		s.exit = fn
	}
}

func newSettings(opts []Option) *settings {
	s := &settings{
		argv:         os.Args[1:],
		interpreters: interpret.Default(),
		lookupEnv:    os.LookupEnv,
		logger:       logging.NewNop(),
		out:          os.Stdout,
		errOut:       os.Stderr,
		program:      filepath.Base(os.Args[0]),
		exit:         os.Exit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HelpRequested is returned by Build and Call when -h/--help was supplied.
// It carries the rendered usage text.
type HelpRequested struct {
	Usage string
}

func (e *HelpRequested) Error() string {
	return "help requested"
}

// UsageError aggregates every user-facing resolution failure of one pass:
// flag names matching no input, required inputs no layer supplied, and
// supplied values the interpreter rejected. It carries the rendered usage
// text for reporting.
type UsageError struct {
	Unknown []string
	Missing []string
	Invalid []InvalidValue
	Usage   string
}

func (e *UsageError) Error() string {
	var parts []string
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("Unknown arguments: {%s}", strings.Join(e.Unknown, ", ")))
	}
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("Missing arguments: {%s}", strings.Join(e.Missing, ", ")))
	}
	if len(e.Invalid) > 0 {
		descs := make([]string, len(e.Invalid))
		for i, inv := range e.Invalid {
			descs[i] = fmt.Sprintf("%s (%v)", inv.Name, inv.Err)
		}
		parts = append(parts, fmt.Sprintf("Invalid arguments: {%s}", strings.Join(descs, ", ")))
	}
	if len(parts) == 0 {
		return "usage error"
	}
	return strings.Join(parts, "\n")
}

// Build assembles a value of struct type T from command-line arguments,
// config files, and environment variables.
//
// The pass is fully ordered: discovery over T, source construction (config
// files read eagerly), per-leaf resolution, then assembly. Returns
// *HelpRequested when help was asked for and *UsageError when the supplied
// inputs do not satisfy T.
func Build[T any](opts ...Option) (T, error) {
	var target T
	s := newSettings(opts)

	leaves, err := Discover(reflect.TypeFor[T](), s.interpreters)
	if err != nil {
		return target, err
	}

	src, err := source.FromArgv(s.argv,
		source.WithLookupEnv(s.lookupEnv),
		source.WithLogger(s.logger),
	)
	if err != nil {
		return target, err
	}

	if src.Help() {
		return target, &HelpRequested{Usage: s.usage(leaves)}
	}

	uerr := &UsageError{Unknown: unknownArguments(src.Keyword(), leaves)}
	if len(uerr.Unknown) > 0 {
		uerr.Usage = s.usage(leaves)
		return target, uerr
	}

	res := Resolve(leaves, src, s.interpreters, s.logger)
	if !res.OK() {
		uerr.Missing = res.Missing
		uerr.Invalid = res.Invalid
		uerr.Usage = s.usage(leaves)
		return target, uerr
	}

	if err := assemble(&target, res.Values); err != nil {
		return target, err
	}
	return target, nil
}

// Call assembles the argument struct A from the layered sources and invokes
// fn with it. Go reflection exposes no function parameter names, so the
// callable convention is a single struct parameter carrying the named
// inputs.
func Call[A, R any](fn func(A) (R, error), opts ...Option) (R, error) {
	a, err := Build[A](opts...)
	if err != nil {
		var zero R
		return zero, err
	}
	return fn(a)
}

// Main is the CLI entry point: it builds A, reports failures as usage text,
// and exits with the documented status codes. Help exits 0; unknown,
// missing, or invalid arguments print the aggregate report plus usage and
// exit 1; any other failure (unreadable config file, mis-declared target
// type, fn itself failing) prints the error and exits 1.
func Main[A any](fn func(A) error, opts ...Option) {
	s := newSettings(opts)
	a, err := Build[A](opts...)
	if err != nil {
		var help *HelpRequested
		var uerr *UsageError
		switch {
		case errors.As(err, &help):
			fmt.Fprint(s.out, help.Usage)
			s.exit(0)
		case errors.As(err, &uerr):
			fmt.Fprintln(s.out, uerr.Error())
			fmt.Fprint(s.out, uerr.Usage)
			s.exit(1)
		default:
			fmt.Fprintln(s.errOut, err)
			s.exit(1)
		}
		return
	}
	if err := fn(a); err != nil {
		fmt.Fprintln(s.errOut, err)
		s.exit(1)
	}
}

func (s *settings) usage(leaves []LeafInput) string {
	var b strings.Builder
	renderUsage(&b, s.program, s.description, leaves)
	return b.String()
}
