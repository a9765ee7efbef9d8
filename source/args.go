package source

import "fmt"

// Arguments is the result of scanning a raw argument vector.
type Arguments struct {
	// Positional holds config-file paths in command-line order.
	Positional []string
	// Keyword holds --name value pairs. An empty value string is a real
	// value, distinct from the key being absent.
	Keyword map[string]string
	// Help is set when -h or --help was seen. When set, Positional and
	// Keyword are empty: help short-circuits all other scanning.
	Help bool
}

// ParseArguments scans argv (the argument vector without the program name)
// left to right. "-h" and "--help" terminate the scan immediately. A token
// starting with "--" names a flag and consumes exactly the next token as its
// value; it is an error for such a token to be last. Every other token is a
// positional config-file path.
func ParseArguments(argv []string) (Arguments, error) {
	args := Arguments{Keyword: make(map[string]string)}
	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		if tok == "-h" || tok == "--help" {
			return Arguments{Keyword: map[string]string{}, Help: true}, nil
		}
		if len(tok) >= 2 && tok[:2] == "--" {
			if tok == "--" {
				return Arguments{}, fmt.Errorf("missing argument name before %q", "--")
			}
			if i+1 >= len(argv) {
				return Arguments{}, fmt.Errorf("missing value for argument: %s", tok[2:])
			}
			args.Keyword[tok[2:]] = argv[i+1]
			i++
			continue
		}
		args.Positional = append(args.Positional, tok)
	}
	return args, nil
}
