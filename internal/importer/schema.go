package importer

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/tododoc/internal/domain"
	"github.com/alexanderramin/tododoc/internal/tree"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaText string

var documentSchema = jsonschema.MustCompileString("schema.json", schemaText)

// Schema returns the JSON schema that import files are checked against.
func Schema() string { return schemaText }

// InvalidError collects every problem found in an import file.
type InvalidError struct {
	Errs []error
}

func (e *InvalidError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid document (%d problems): %s", len(e.Errs), strings.Join(msgs, "; "))
}

func (e *InvalidError) Unwrap() []error { return e.Errs }

// ValidateJSON checks raw document JSON against the schema. It returns one
// error per failing leaf, each prefixed with the JSON pointer of the value.
func ValidateJSON(data []byte) []error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return []error{fmt.Errorf("parsing document: %w", err)}
	}
	err := documentSchema.Validate(v)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return []error{err}
	}
	var errs []error
	collectLeaves(ve, &errs)
	return errs
}

func collectLeaves(ve *jsonschema.ValidationError, out *[]error) {
	if len(ve.Causes) == 0 {
		loc := ve.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, fmt.Errorf("%s: %s", loc, ve.Message))
		return
	}
	for _, c := range ve.Causes {
		collectLeaves(c, out)
	}
}

// Parse validates data against the schema, decodes it and checks the
// structural invariants the schema cannot express, such as id uniqueness.
func Parse(data []byte) (*domain.Root, error) {
	if errs := ValidateJSON(data); len(errs) > 0 {
		return nil, &InvalidError{Errs: errs}
	}
	var root domain.Root
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if violations := tree.Validate(&root); len(violations) > 0 {
		errs := make([]error, len(violations))
		for i, v := range violations {
			errs[i] = v
		}
		return nil, &InvalidError{Errs: errs}
	}
	return &root, nil
}

// Load reads and parses a document JSON file.
func Load(path string) (*domain.Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
