/*
Package clifun binds command-line arguments, config files, and environment
variables to a struct type, then hands the populated struct to your code.

It reflects over the struct's fields to discover the named inputs it needs
(recursing into nested structs with dotted-path names), gathers a raw string
for each from layered sources in fixed precedence, interprets each string
into the declared field type, validates the whole set at once, and either
constructs the struct or reports every missing, unknown, and invalid input
together with usage text.

# Concept

A struct is a declaration of the inputs a program needs. Instead of wiring
flag definitions by hand, declare the shape once:

	type Config struct {
		Addr    string `default:"localhost:8080"`
		Retries int
		Trace   *bool
	}

	func main() {
		clifun.Main(func(cfg Config) error {
			// cfg is fully populated and validated here.
			return run(cfg)
		})
	}

Every field becomes a --flag of the same (first-rune-lowered) name, an entry
in any supplied JSON/YAML/TOML config file, and an upper-cased environment
variable. Nested structs expand into dotted names: a field F of struct type
with field A is addressed as --f.a.

# Precedence

First hit wins, per key: explicit --key value flags, then config files
supplied as positional arguments (later files override earlier ones), then
the environment variable named by upper-casing the dotted key.

# Optionality and defaults

A pointer field is optional: when no layer supplies it, it stays nil instead
of failing resolution. A `default:"..."` tag supplies a fallback raw string,
interpreted exactly like user input. A non-pointer field with no default is
required; omitting it fails the run with a report naming every missing key.

# Custom types

Register a converter for your own scalar types and they become usable as
fields anywhere in the shape:

	reg := interpret.Default()
	reg.Register(reflect.TypeFor[Level](), parseLevel)
	cfg, err := clifun.Build[Config](clifun.WithInterpreters(reg))

Collection-typed fields (slices, maps) are not supported as leaves, and the
grammar has no subcommands, repeated flags, or bare booleans: every flag
takes exactly one explicit value token.
*/
package clifun
