// Package args resolves the command line and the options document into a
// single immutable RunConfig.
//
// Resolution happens in two steps. Scan makes one pass over argv and
// records the positional file names and every flag with the values that
// follow it. The resolve methods on Parsed then apply precedence:
// command-line flag, then options document, then built-in default.
package args

import (
	"strconv"
	"strings"
)

// Canonical flag names.
const (
	FlagHelp        = "--help"
	FlagVersion     = "--version"
	FlagModel       = "--model"
	FlagTemperature = "--temperature"
	FlagAPIKey      = "--apiKey"
	FlagOutput      = "--output"
	FlagMarkdown    = "--markdown"
	FlagHTML        = "--html"
	FlagTokenUsage  = "--token-usage"
	FlagProvider    = "--provider"
	FlagBaseURL     = "--base-url"
	FlagVerbose     = "--verbose"
)

var aliases = map[string]string{
	"-h":           FlagHelp,
	"-v":           FlagVersion,
	"-m":           FlagModel,
	"-o":           FlagOutput,
	"-t":           FlagTokenUsage,
	"--tokenUsage": FlagTokenUsage,
	"--api-key":    FlagAPIKey,
	"--baseURL":    FlagBaseURL,
}

var known = map[string]bool{
	FlagHelp:        true,
	FlagVersion:     true,
	FlagModel:       true,
	FlagTemperature: true,
	FlagAPIKey:      true,
	FlagOutput:      true,
	FlagMarkdown:    true,
	FlagHTML:        true,
	FlagTokenUsage:  true,
	FlagProvider:    true,
	FlagBaseURL:     true,
	FlagVerbose:     true,
}

// Parsed is the structured form of an argument vector.
type Parsed struct {
	// Positionals are the tokens before the first flag-like token.
	Positionals []string
	// Flags maps a canonical flag name to the tokens that followed it up
	// to the next flag. A flag given more than once accumulates values.
	Flags map[string][]string
	// Unknown lists flag-like tokens that are not recognised, in order.
	Unknown []string
}

// Scan walks args once. Tokens starting with "-" are flags; "--name=value"
// is split into a flag and its first value. After a flag, a negative number
// such as "-0.5" is a value, not a flag.
func Scan(args []string) *Parsed {
	p := &Parsed{Flags: make(map[string][]string)}

	current := ""
	for _, arg := range args {
		if !isFlag(arg) || (current != "" && isNumber(arg)) {
			if current == "" {
				p.Positionals = append(p.Positionals, arg)
			} else {
				p.Flags[current] = append(p.Flags[current], arg)
			}
			continue
		}

		name, value, hasValue := strings.Cut(arg, "=")
		name = canonical(name)
		if !known[name] {
			p.Unknown = append(p.Unknown, name)
		}
		if _, ok := p.Flags[name]; !ok {
			p.Flags[name] = nil
		}
		if hasValue {
			p.Flags[name] = append(p.Flags[name], value)
		}
		current = name
	}
	return p
}

// Has reports whether the flag (or one of its aliases) was present.
func (p *Parsed) Has(flag string) bool {
	_, ok := p.Flags[canonical(flag)]
	return ok
}

// Value returns the first value given to flag.
func (p *Parsed) Value(flag string) (string, bool) {
	values := p.Flags[canonical(flag)]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Values returns every value following flag.
func (p *Parsed) Values(flag string) []string {
	return p.Flags[canonical(flag)]
}

// A lone "-" is treated as a flag-like token as well, matching the rule
// that any token beginning with "-" ends the file list.
func isFlag(arg string) bool {
	return strings.HasPrefix(arg, "-")
}

func isNumber(arg string) bool {
	_, err := strconv.ParseFloat(arg, 64)
	return err == nil
}

func canonical(name string) string {
	if c, ok := aliases[name]; ok {
		return c
	}
	return name
}
