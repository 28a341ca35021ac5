package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema validates extracted payloads before they are decoded into records.
type Schema struct {
	name string
	sch  *jsonschema.Schema
}

// MustCompileSchema compiles an embedded JSON schema and panics if it is invalid.
func MustCompileSchema(name, raw string) *Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}
	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return &Schema{name: name, sch: sch}
}

// Validate checks a JSON document against the schema. The returned error
// lists every failing location.
func (s *Schema) Validate(doc string) error {
	inst, err := jsonschema.UnmarshalJSON(strings.NewReader(doc))
	if err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	err = s.sch.Validate(inst)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	var msgs []string
	collectCauses(ve, &msgs)
	return fmt.Errorf("%s: %s", s.name, strings.Join(msgs, "; "))
}

func collectCauses(ve *jsonschema.ValidationError, msgs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/" + strings.Join(ve.InstanceLocation, "/")
		*msgs = append(*msgs, fmt.Sprintf("%s: %s", loc, ve.Error()))
		return
	}
	for _, c := range ve.Causes {
		collectCauses(c, msgs)
	}
}

// Decode validates doc against s (when non-nil) and unmarshals it into T.
func Decode[T any](doc string, s *Schema) (T, error) {
	var out T
	if s != nil {
		if err := s.Validate(doc); err != nil {
			return out, err
		}
	}
	if err := json.Unmarshal([]byte(doc), &out); err != nil {
		return out, fmt.Errorf("decode payload: %w", err)
	}
	return out, nil
}
