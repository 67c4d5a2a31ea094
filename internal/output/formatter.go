package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rpgo/projection-engine/internal/domain"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(report *domain.Report) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// FormatterFunc adapter to allow ordinary functions to act as a Formatter.
type FormatterFunc struct {
	ID string
	F  func(*domain.Report) ([]byte, error)
}

func (ff FormatterFunc) Format(r *domain.Report) ([]byte, error) { return ff.F(r) }
func (ff FormatterFunc) Name() string                          { return ff.ID }

// extensions maps formatter names to output file extensions
var extensions = map[string]string{
	"console": "txt",
	"csv":     "csv",
	"json":    "json",
}

// WriteFormatted runs a formatter and writes the output to a timestamped file in dir.
func WriteFormatted(f Formatter, report *domain.Report, dir string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", err
	}
	ext, ok := extensions[f.Name()]
	if !ok {
		ext = "out"
	}
	stamp := report.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, fmt.Sprintf("projection_report_%s.%s", stamp.Format("20060102_150405"), ext))
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return "", err
	}
	return filename, nil
}

// builtInFormatters stores available formatters
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	CSVFormatter{},
	JSONFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// LookupFormatter is GetFormatterByName with an error for unknown names.
func LookupFormatter(name string) (Formatter, error) {
	if f := GetFormatterByName(name); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnsupportedFormat, name, strings.Join(AvailableFormatterNames(), ", "))
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"table":       "console",
	"csv-tables":  "csv",
	"json-pretty": "json",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
