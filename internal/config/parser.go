package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads a sweep configuration from a file.
//
// The file format is determined by extension:
//   - .yaml, .yml -> YAML
//   - .json -> JSON
//
// The returned configuration has defaults applied and has been validated.
func LoadConfig(path string) (*SweepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, err
	}

	ApplyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseConfig checks data against the configuration schema and decodes it.
//
// The format is determined by the file extension in path, or defaults to YAML
// if the path is empty or has an unknown extension. Defaults are not applied.
func ParseConfig(data []byte, path string) (*SweepConfig, error) {
	var config SweepConfig
	var doc interface{}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	return &config, nil
}

// validateSchema validates a decoded document against jsonSchema. YAML
// documents are round-tripped through JSON first so the validator only sees
// JSON value types.
func validateSchema(doc interface{}) error {
	if doc == nil {
		doc = map[string]interface{}{}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}
	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return fmt.Errorf("config is not representable as JSON: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("sweep.json", strings.NewReader(jsonSchema)); err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}
	schema, err := compiler.Compile("sweep.json")
	if err != nil {
		return fmt.Errorf("invalid schema: %w", err)
	}

	if err := schema.Validate(normalized); err != nil {
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			errs := &ValidationErrors{}
			collectSchemaErrors(verr, errs)
			if errs.HasErrors() {
				return errs
			}
		}
		return err
	}
	return nil
}

// collectSchemaErrors flattens the leaf causes of a schema validation error.
func collectSchemaErrors(err *jsonschema.ValidationError, errs *ValidationErrors) {
	if len(err.Causes) == 0 {
		errs.Add(schemaField(err.InstanceLocation), err.Message)
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, errs)
	}
}

// schemaField converts a JSON pointer ("/tests/0/k") to the dotted field
// names used by Validate ("tests[0].k").
func schemaField(pointer string) string {
	pointer = strings.TrimPrefix(pointer, "/")
	if pointer == "" {
		return ""
	}
	var sb strings.Builder
	for i, part := range strings.Split(pointer, "/") {
		if isIndex(part) {
			sb.WriteString("[" + part + "]")
			continue
		}
		if i > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(part)
	}
	return sb.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
