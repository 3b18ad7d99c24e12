package layout

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed layout.schema.json
var schemaJSON []byte

const schemaURL = "layout.schema.json"

var layoutSchema = compileSchema()

func compileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("layout schema: %v", err))
	}
	return compiler.MustCompile(schemaURL)
}

// Load reads a layout file, choosing the decoder by extension
// (.toml, .yaml/.yml or .json), and validates the result.
// A layout without a name takes the file's base name.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(path))
	l, err := Parse(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, nil
}

// Parse decodes layout data in the format named by ext (".toml", ".yaml",
// ".yml" or ".json") and validates it.
func Parse(data []byte, ext string) (*Layout, error) {
	var l Layout
	switch ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &l); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case ".json":
		if err := checkSchema(data); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported layout format %q", ext)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// checkSchema validates raw JSON against the embedded layout schema.
// Structural errors are reported with JSON pointers to the offending node.
func checkSchema(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if err := layoutSchema.Validate(doc); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// Encode writes l in the format named by ext. Used to export the built-in
// layout as a starting point for custom ones.
func Encode(l *Layout, ext string) ([]byte, error) {
	switch ext {
	case ".toml":
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(l); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case ".yaml", ".yml":
		return yaml.Marshal(l)
	case ".json":
		return json.MarshalIndent(l, "", "  ")
	}
	return nil, fmt.Errorf("unsupported layout format %q", ext)
}
