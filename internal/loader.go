package internal

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Loader reads a table file, skipping banner rows above the header
type Loader interface {
	Load(path string, skipRows int) (RawTable, error)
}

// LoaderFunc is a function that implements Loader
type LoaderFunc func(path string, skipRows int) (RawTable, error)

func (f LoaderFunc) Load(path string, skipRows int) (RawTable, error) {
	return f(path, skipRows)
}

// loaders is the registry of available table formats
var loaders = map[string]Loader{}

// RegisterLoader registers a loader with the given format name
func RegisterLoader(format string, l Loader) {
	loaders[format] = l
}

// GetLoader returns the loader for the given format
func GetLoader(format string) (Loader, error) {
	l, ok := loaders[format]
	if !ok {
		return nil, fmt.Errorf("unknown table format: %s (available: %v)", format, AvailableFormats())
	}
	return l, nil
}

// AvailableFormats returns the registered format names, sorted
func AvailableFormats() []string {
	var formats []string
	for name := range loaders {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// IsKnownFormat returns true if the name is a registered format
func IsKnownFormat(name string) bool {
	_, ok := loaders[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "xlsx:gas.xlsx" → ("xlsx", "gas.xlsx")
// Example: "C:\data\gas.csv" → ("", "C:\data\gas.csv")
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownFormat(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg
}

// formatFor picks the format of a file argument: explicit prefix first, then extension
func formatFor(arg string) (format, path string) {
	format, path = ParseFileArg(arg)
	if format != "" {
		return format, path
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if IsKnownFormat(ext) {
		return ext, path
	}
	return "csv", path
}

// LoadTable reads a table with the loader matching its prefix or extension.
// Every call reads the file again.
func LoadTable(arg string, skipRows int) (RawTable, error) {
	format, path := formatFor(arg)
	l, err := GetLoader(format)
	if err != nil {
		return RawTable{}, err
	}
	return l.Load(path, skipRows)
}

// rectangular pads short rows to the header width and drops cells beyond it
func rectangular(header []string, rows [][]string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		r := make([]string, len(header))
		copy(r, row)
		out = append(out, r)
	}
	return out
}

func init() {
	// Register built-in loaders
	RegisterLoader("csv", LoaderFunc(LoadCSV))
	RegisterLoader("xlsx", LoaderFunc(LoadXLSX))
}
