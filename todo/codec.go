package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	internalstrings "github.com/amonks/neotodo/internal/strings"
)

//go:embed todos.schema.json
var payloadSchemaJSON []byte

const payloadSchemaURL = "todos.schema.json"

var payloadSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(payloadSchemaURL, bytes.NewReader(payloadSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add payload schema: %w", err)
	}
	schema, err := compiler.Compile(payloadSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile payload schema: %w", err)
	}
	return schema, nil
})

// Encode serializes todos as a JSON array. A nil slice encodes as [].
func Encode(todos []Todo) ([]byte, error) {
	if todos == nil {
		todos = []Todo{}
	}
	data, err := json.Marshal(todos)
	if err != nil {
		return nil, fmt.Errorf("marshal todos: %w", err)
	}
	return data, nil
}

// Decode parses a payload produced by Encode.
//
// The payload must match the persisted schema, every record must pass
// ValidateTodo, and IDs must be unique. Any failure wraps ErrMalformedPayload.
func Decode(data []byte) ([]Todo, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}

	var document any
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	schema, err := payloadSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(document); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, schemaError(err))
	}

	var todos []Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	// IDs resolve case-insensitively, so two that differ only in case collide.
	seen := make(map[string]struct{}, len(todos))
	for i := range todos {
		todos[i].CreatedAt = normalizeTime(todos[i].CreatedAt)
		todos[i].UpdatedAt = normalizeTimePtr(todos[i].UpdatedAt)
		todos[i].DueDate = normalizeTimePtr(todos[i].DueDate)

		path := fmt.Sprintf("[%d]", i)
		if err := ValidateTodo(&todos[i]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, &ValidationError{Path: path, Err: err})
		}
		folded := internalstrings.NormalizeLower(string(todos[i].ID))
		if _, ok := seen[folded]; ok {
			err := fmt.Errorf("%w: %s", ErrDuplicateID, todos[i].ID)
			return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, &ValidationError{Path: path + ".id", Err: err})
		}
		seen[folded] = struct{}{}
	}

	return todos, nil
}

// schemaError reduces a schema failure to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{
		Path: jsonPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
