package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "mem:///todos/schema.json"

// Problem is a schema violation in the stored value
type Problem struct {
	Path string // e.g. [0].todos[2].priority
	Err  error
}

func (p *Problem) Error() string {
	if p.Path != "" {
		return fmt.Sprintf("%s: %s", p.Path, p.Err)
	}
	return p.Err.Error()
}

// Unwrap returns the underlying error.
func (p *Problem) Unwrap() error {
	return p.Err
}

// Check validates the raw stored value against the project list schema.
// A missing key has no problems. Check never modifies the stored value.
func (s *Store) Check() ([]*Problem, error) {
	raw, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return []*Problem{{Err: fmt.Errorf("not valid JSON: %w", err)}}, nil
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	var problems []*Problem
	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, err
		}
		collectProblems(&problems, ve)
	}
	return problems, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

func collectProblems(out *[]*Problem, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*out = append(*out, &Problem{
			Path: pointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectProblems(out, cause)
	}
}

// pointerToPath turns a JSON pointer like /0/todos/1/title into [0].todos[1].title
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
