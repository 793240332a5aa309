package config

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	// parse schema
	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	// convert config to JSON and make sure every top-level section is known to the schema
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	var configMap map[string]interface{}
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	if props := schemaProperties(schema); props != nil {
		for key := range configMap {
			if _, ok := props[key]; !ok {
				return fmt.Errorf("section %q is not described by schema", key)
			}
		}
	}

	// basic validation - check required fields match
	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// schemaProperties returns top-level properties of the Config definition, resolving $ref if present
func schemaProperties(schema map[string]interface{}) map[string]interface{} {
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		return props
	}
	defs, ok := schema["$defs"].(map[string]interface{})
	if !ok {
		return nil
	}
	cfgDef, ok := defs["Config"].(map[string]interface{})
	if !ok {
		return nil
	}
	props, _ := cfgDef["properties"].(map[string]interface{})
	return props
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	if cfg.Store.Type == "sqlite" && cfg.Store.DSN == "" {
		return fmt.Errorf("store.dsn is required for sqlite store")
	}
	if cfg.Store.Type == "bolt" && cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required for bolt store")
	}
	if cfg.Schedule.Interval == 0 {
		return fmt.Errorf("schedule.interval is required")
	}
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("at least one source is required")
	}

	if cfg.Server.Enabled {
		if cfg.Server.Listen == "" {
			return fmt.Errorf("server.listen is required when server is enabled")
		}
		if cfg.Server.Timeout == 0 {
			return fmt.Errorf("server.timeout is required when server is enabled")
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
