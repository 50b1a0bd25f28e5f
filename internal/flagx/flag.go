// Package flagx holds small helpers for picking a subset of command-line
// flags out of os.Args so several loaders can parse their own flags without
// tripping over each other.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps only the flags named in allowed, together with their
// values. Both "-f value" and "-f=value" forms are recognised; a value is
// only consumed when the next argument does not itself look like a flag.
func FilterArgs(args []string, allowed []string) []string {
	keep := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		keep[f] = struct{}{}
	}

	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if _, ok := keep[name]; ok {
				out = append(out, arg)
			}
			continue
		}

		if _, ok := keep[arg]; !ok {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// lookupString parses a single string flag registered under every name in
// names. The last occurrence wins. Parse errors yield "".
func lookupString(args []string, usage string, names ...string) string {
	var v string

	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	allowed := make([]string, 0, len(names))
	for _, n := range names {
		fs.StringVar(&v, n, "", usage)
		allowed = append(allowed, "-"+n)
	}
	if err := fs.Parse(FilterArgs(args, allowed)); err != nil {
		return ""
	}

	return v
}

// JsonConfigFlags returns the JSON config path given with -c or -config, or
// "" when neither is present.
func JsonConfigFlags(args []string) string {
	return lookupString(args, "path to JSON config file", "c", "config")
}

// EnvFileFlags returns the dotenv path given with -e or -env, or "".
func EnvFileFlags(args []string) string {
	return lookupString(args, "path to .env file", "e", "env")
}
