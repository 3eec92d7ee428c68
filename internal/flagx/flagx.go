// Package flagx contains helpers for multi-stage flag parsing: each config
// stage parses only the flags it owns, so stages can be combined without
// tripping over each other's arguments.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// Keep returns the subset of args containing only the given flag names and
// their values. Both "-f value" and "-f=value" forms are recognized.
func Keep(args []string, names []string) []string {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name, _, _ := strings.Cut(arg, "=")
			if _, ok := wanted[name]; ok {
				kept = append(kept, arg)
			}
			continue
		}

		if _, ok := wanted[arg]; ok {
			kept = append(kept, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				kept = append(kept, args[i+1])
				i++
			}
		}
	}
	return kept
}

// ConfigFilePath extracts the JSON config file path from the -c/-config
// flags, ignoring all other arguments. Returns "" when neither is present.
func ConfigFilePath() string {
	var path string

	args := Keep(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("configfile", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(args)

	return path
}
