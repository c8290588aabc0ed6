package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goyek/goyek/v2"
	"github.com/invopop/jsonschema"

	"github.com/spachava753/arthas-copy/internal/config"
)

// GenSchema generates the JSON schema for arthas-copy configuration
var GenSchema = goyek.Define(goyek.Task{
	Name:  "gen-schema",
	Usage: "Generate JSON schema for arthas-copy configuration files",
	Action: func(a *goyek.A) {
		schemaJSON, err := configSchema()
		if err != nil {
			a.Fatalf("Failed to build schema: %v", err)
		}

		// Get the GOMOD from environment to find the module root
		gomod := os.Getenv("GOMOD")
		var moduleRoot string
		if gomod != "" {
			moduleRoot = filepath.Dir(gomod)
		} else {
			wd, err := os.Getwd()
			if err != nil {
				a.Fatalf("Failed to get working directory: %v", err)
			}
			moduleRoot = findModuleRoot(wd)
		}

		schemaPath := filepath.Join(moduleRoot, "schema", "arthas-copy-config-schema.json")
		if err := os.MkdirAll(filepath.Dir(schemaPath), 0755); err != nil {
			a.Fatalf("Failed to create schema directory: %v", err)
		}
		if err := os.WriteFile(schemaPath, schemaJSON, 0644); err != nil {
			a.Fatalf("Failed to write schema file: %v", err)
		}

		fmt.Printf("Generated schema: %s\n", schemaPath)
	},
})

func configSchema() ([]byte, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		RequiredFromJSONSchemaTags: true,
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Title = "arthas-copy Configuration Schema"
	schema.Description = "JSON Schema for arthas-copy configuration files"
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.ID = "https://raw.githubusercontent.com/spachava753/arthas-copy/refs/heads/main/schema/arthas-copy-config-schema.json"

	return json.MarshalIndent(schema, "", "  ")
}

func findModuleRoot(start string) string {
	current := start
	for {
		if _, err := os.Stat(filepath.Join(current, "go.mod")); err == nil {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return current
		}
		current = parent
	}
}
