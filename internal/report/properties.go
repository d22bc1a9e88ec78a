package report

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed properties.cue
var propertiesSchema string

// Properties describe the application under test and its authors in an
// EARL report.
type Properties struct {
	ApplicationURI         string   `json:"applicationUri"`
	ApplicationNameFull    string   `json:"applicationNameFull,omitempty"`
	ApplicationNameNpm     string   `json:"applicationNameNpm,omitempty"`
	ApplicationDescription string   `json:"applicationDescription,omitempty"`
	ApplicationHomepageURL string   `json:"applicationHomepageUrl,omitempty"`
	ApplicationBugsURL     string   `json:"applicationBugsUrl,omitempty"`
	ProgrammingLanguage    string   `json:"programmingLanguage,omitempty"`
	LicenseURI             string   `json:"licenseUri,omitempty"`
	Version                string   `json:"version,omitempty"`
	ReportURI              string   `json:"reportUri,omitempty"`
	Authors                []Author `json:"authors,omitempty"`
	SpecificationURIs      []string `json:"specificationUris,omitempty"`
}

// Author is a developer of the application under test.
type Author struct {
	URI      string `json:"uri,omitempty"`
	Name     string `json:"name,omitempty"`
	Homepage string `json:"homepage,omitempty"`
}

// ParseProperties validates data against the properties schema and decodes it.
func ParseProperties(data []byte) (*Properties, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(propertiesSchema, cue.Filename("properties.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile properties schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Properties"))

	value := ctx.CompileBytes(data, cue.Filename("properties.json"))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("invalid properties: %w", err)
	}

	var props Properties
	if err := unified.Decode(&props); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return &props, nil
}

// LoadProperties reads and validates a properties file.
func LoadProperties(path string) (*Properties, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}
	props, err := ParseProperties(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return props, nil
}

// WriteProperties writes props to path as indented JSON.
func WriteProperties(path string, props *Properties) error {
	data, err := json.MarshalIndent(props, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal properties: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write properties: %w", err)
	}
	return nil
}
