// Package flagx picks individual flags out of os.Args so that several
// parsers can share one command line.
package flagx

import (
	"flag"
	"path/filepath"
	"strings"
)

// FilterArgs keeps only the allowedFlags from args, together with their
// values. Both "-c conf.yaml" and "--config=conf.yaml" forms are kept; a
// token starting with "-" is never taken as a value.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// ConfigFormat is the decoder a config file needs.
type ConfigFormat int

const (
	FormatJSON ConfigFormat = iota
	FormatYAML
)

func (f ConfigFormat) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// ConfigFile names the server config file given on the command line.
type ConfigFile struct {
	Path   string
	Format ConfigFormat
}

// FormatOf picks the decoder by extension: .yaml and .yml are YAML,
// anything else is JSON.
func FormatOf(path string) ConfigFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ConfigFileFlag extracts -c, -config or --config from args; the last one
// wins. Other arguments are ignored. A zero ConfigFile means no file.
func ConfigFileFlag(args []string) ConfigFile {
	var path string

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to a JSON or YAML config file")
	fs.StringVar(&path, "c", "", "path to a JSON or YAML config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config", "--config"}))

	if path == "" {
		return ConfigFile{}
	}
	return ConfigFile{Path: path, Format: FormatOf(path)}
}
