package engine

import (
	"fmt"
	"sort"
	"strings"
)

// Flags are the string switches that tune a run.
type Flags struct {
	EOL       bool // emit end-of-line markers
	Print     bool // print the token stream to Options.Out
	Frequency bool // tally token-type frequency
	Timing    bool // record a timing breakdown
}

var flagNames = map[string]func(*Flags){
	"eol":       func(f *Flags) { f.EOL = true },
	"print":     func(f *Flags) { f.Print = true },
	"frequency": func(f *Flags) { f.Frequency = true },
	"timing":    func(f *Flags) { f.Timing = true },
}

// ParseFlags parses a comma-separated flag list such as "eol,timing". Names
// are case-insensitive; empty entries are ignored.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	var unknown []string
	for _, name := range strings.Split(s, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		set, ok := flagNames[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		set(&f)
	}
	if len(unknown) > 0 {
		return Flags{}, fmt.Errorf("unknown flag(s) %s (known: %s)", strings.Join(unknown, ", "), strings.Join(KnownFlags(), ", "))
	}
	return f, nil
}

// KnownFlags lists the accepted flag names.
func KnownFlags() []string {
	names := make([]string, 0, len(flagNames))
	for name := range flagNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f Flags) String() string {
	var set []string
	if f.EOL {
		set = append(set, "eol")
	}
	if f.Frequency {
		set = append(set, "frequency")
	}
	if f.Print {
		set = append(set, "print")
	}
	if f.Timing {
		set = append(set, "timing")
	}
	return strings.Join(set, ",")
}
