package envfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/mmr-tortoise/useenv/internal/model"
)

// Format identifies an env file syntax.
type Format string

const (
	FormatDotenv Format = "dotenv"
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
)

// DetectFormat picks the syntax for path from its extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json", ".jsonc":
		return FormatJSON
	default:
		return FormatDotenv
	}
}

// Loader reads env files from FS.
type Loader struct {
	FS afero.Fs
}

// NewLoader creates a Loader backed by the OS filesystem.
func NewLoader() *Loader {
	return &Loader{FS: afero.NewOsFs()}
}

// Load reads path and returns its variables. A leading "~" is expanded
// to the user's home directory.
func (l *Loader) Load(path string) ([]model.Assignment, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", path, err)
	}

	data, err := afero.ReadFile(l.FS, expanded)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file: %w", err)
	}

	vars, err := Parse(DetectFormat(expanded), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse env file %s: %w", path, err)
	}
	return vars, nil
}

// LoadAll loads every path in order and concatenates the results.
func (l *Loader) LoadAll(paths []string) ([]model.Assignment, error) {
	var all []model.Assignment
	for _, p := range paths {
		vars, err := l.Load(p)
		if err != nil {
			return nil, err
		}
		all = append(all, vars...)
	}
	return all, nil
}

// Parse decodes data in the given format.
func Parse(format Format, data []byte) ([]model.Assignment, error) {
	var (
		vars []model.Assignment
		err  error
	)
	switch format {
	case FormatYAML:
		vars, err = parseYAML(data)
	case FormatJSON:
		vars, err = parseJSON(data)
	default:
		vars, err = parseDotenv(data)
	}
	if err != nil {
		return nil, err
	}

	for _, v := range vars {
		if err := model.ValidateName(v.Name); err != nil {
			return nil, err
		}
	}
	return vars, nil
}

func parseDotenv(data []byte) ([]model.Assignment, error) {
	m, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return sortedAssignments(m), nil
}

// parseYAML walks the node tree rather than decoding into a map so that
// document order survives.
func parseYAML(data []byte) ([]model.Assignment, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: top level must be a mapping of NAME: VALUE", root.Line)
	}

	vars := make([]model.Assignment, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: value of %q must be a scalar", val.Line, key.Value)
		}
		value := val.Value
		if val.Tag == "!!null" {
			value = ""
		}
		vars = append(vars, model.Assignment{Name: key.Value, Value: value})
	}
	return vars, nil
}

func parseJSON(data []byte) ([]model.Assignment, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	m := make(map[string]string, len(raw))
	for name, v := range raw {
		switch tv := v.(type) {
		case nil:
			m[name] = ""
		case string:
			m[name] = tv
		case json.Number:
			m[name] = tv.String()
		case bool:
			m[name] = strconv.FormatBool(tv)
		default:
			return nil, fmt.Errorf("value of %q must be a string, number, boolean or null", name)
		}
	}
	return sortedAssignments(m), nil
}

func sortedAssignments(m map[string]string) []model.Assignment {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]model.Assignment, 0, len(names))
	for _, name := range names {
		vars = append(vars, model.Assignment{Name: name, Value: m[name]})
	}
	return vars
}
