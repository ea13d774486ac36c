// Package schemas validates data artifacts against embedded JSON Schemas.
// The schemas document the agent's JSON contracts: the structured resume,
// the keyword set, the extracted job info and the tailoring result.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFS embed.FS

// Schema names.
const (
	StructuredResume = "structured_resume.schema.json"
	KeywordSet       = "keyword_set.schema.json"
	JobInfo          = "job_info.schema.json"
	TailorResult     = "tailor_result.schema.json"
)

// FieldError is a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates the field errors from one validation run.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "validation against %s failed:\n", e.Schema)
	for i, fe := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
	}
	return sb.String()
}

var (
	compileOnce sync.Once
	compiled    map[string]*gojsonschema.Schema
	compileErr  error
)

// compile loads every embedded schema into one loader so cross-schema $ref
// resolution works, then compiles each schema once.
func compile() {
	names := []string{StructuredResume, KeywordSet, JobInfo, TailorResult}
	compiled = make(map[string]*gojsonschema.Schema, len(names))

	for _, name := range names {
		loader := gojsonschema.NewSchemaLoader()

		// Register referenced schemas before compiling the target
		for _, dep := range names {
			if dep == name {
				continue
			}
			data, err := schemaFS.ReadFile(dep)
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", dep, err)
				return
			}
			if err := loader.AddSchema(dep, gojsonschema.NewBytesLoader(data)); err != nil {
				compileErr = fmt.Errorf("registering schema %s: %w", dep, err)
				return
			}
		}

		data, err := schemaFS.ReadFile(name)
		if err != nil {
			compileErr = fmt.Errorf("reading schema %s: %w", name, err)
			return
		}
		schema, err := loader.Compile(gojsonschema.NewBytesLoader(data))
		if err != nil {
			compileErr = fmt.Errorf("compiling schema %s: %w", name, err)
			return
		}
		compiled[name] = schema
	}
}

// Validate checks a JSON document against the named embedded schema.
func Validate(name string, document []byte) error {
	compileOnce.Do(compile)
	if compileErr != nil {
		return compileErr
	}

	schema, ok := compiled[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("validating against %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Schema: name}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{Field: desc.Field(), Message: desc.Description()})
	}
	return ve
}
